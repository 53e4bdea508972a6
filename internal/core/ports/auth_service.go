package ports

import (
	"context"

	"github.com/careerhub/jobboard-web/internal/core/domain"
)

// AuthService runs the account flows and owns session writes.
type AuthService interface {
	// Login stores the session and returns the landing route for its role.
	Login(ctx context.Context, sid, email, password string) (string, error)
	Register(ctx context.Context, in RegisterInput, confirm string) error
	VerifyEmail(ctx context.Context, email, code string) error
	SendResetCode(ctx context.Context, email string) (string, error)
	VerifyResetCode(ctx context.Context, email, code string) (string, error)
	ResetPassword(ctx context.Context, email, password, confirm string) (string, error)
	ChangePassword(ctx context.Context, sess domain.Session, current, next string) (string, error)
	Logout(ctx context.Context, sid string, sess domain.Session) error
	DeleteAccount(ctx context.Context, sid string, sess domain.Session) (string, error)
}
