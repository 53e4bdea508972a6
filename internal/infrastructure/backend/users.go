package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/careerhub/jobboard-web/internal/core/domain"
	"github.com/careerhub/jobboard-web/internal/core/ports"
)

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type emailCode struct {
	Email            string `json:"email"`
	VerificationCode string `json:"verificationCode"`
}

// Login exchanges credentials for a token. The login answer is not
// enveloped.
func (c *Client) Login(ctx context.Context, email, password string) (*domain.LoginResult, error) {
	var out domain.LoginResult
	_, err := c.call(ctx, request{
		method:   http.MethodPost,
		endpoint: "/user/login",
		path:     "/user/login",
		body:     credentials{Email: email, Password: password},
		whole:    true,
	}, &out)
	if err != nil {
		return nil, err
	}
	if out.Token == "" {
		return nil, fmt.Errorf("login: %w: no token in response", domain.ErrInvalidCredentials)
	}
	return &out, nil
}

func (c *Client) Register(ctx context.Context, in ports.RegisterInput) error {
	_, err := c.call(ctx, request{
		method:   http.MethodPost,
		endpoint: "/user/register",
		path:     "/user/register",
		body:     in,
	}, nil)
	return err
}

func (c *Client) VerifyEmail(ctx context.Context, email, code string) error {
	_, err := c.call(ctx, request{
		method:   http.MethodPost,
		endpoint: "/user/verify-email",
		path:     "/user/verify-email",
		body:     emailCode{Email: email, VerificationCode: code},
	}, nil)
	return err
}

func (c *Client) SendResetCode(ctx context.Context, email string) (string, error) {
	return c.call(ctx, request{
		method:   http.MethodPost,
		endpoint: "/user/forgot-password",
		path:     "/user/forgot-password",
		body:     map[string]string{"email": email},
	}, nil)
}

func (c *Client) VerifyResetCode(ctx context.Context, email, code string) (string, error) {
	return c.call(ctx, request{
		method:   http.MethodPost,
		endpoint: "/user/verify-verification-code",
		path:     "/user/verify-verification-code",
		body:     emailCode{Email: email, VerificationCode: code},
	}, nil)
}

func (c *Client) ResetPassword(ctx context.Context, email, newPassword string) (string, error) {
	return c.call(ctx, request{
		method:   http.MethodPost,
		endpoint: "/user/update-forgot-password",
		path:     "/user/update-forgot-password",
		body:     map[string]string{"email": email, "newPassword": newPassword},
	}, nil)
}

func (c *Client) ChangePassword(ctx context.Context, token, current, next string) (string, error) {
	return c.call(ctx, request{
		method:   http.MethodPut,
		endpoint: "/user/update-user-password",
		path:     "/user/update-user-password",
		token:    token,
		body:     map[string]string{"currentPassword": current, "newPassword": next},
	}, nil)
}

func (c *Client) Logout(ctx context.Context, token string) error {
	_, err := c.call(ctx, request{
		method:   http.MethodGet,
		endpoint: "/user/logout",
		path:     "/user/logout",
		token:    token,
	}, nil)
	return err
}

// DeleteAccount removes the caller's account. Only employers and
// jobseekers can delete themselves.
func (c *Client) DeleteAccount(ctx context.Context, token string, role domain.Role) (string, error) {
	if role != domain.RoleEmployer && role != domain.RoleJobseeker {
		return "", fmt.Errorf("delete account: %w: %q", domain.ErrInvalidRole, role)
	}
	return c.call(ctx, request{
		method:   http.MethodDelete,
		endpoint: "/user/" + string(role),
		path:     "/user/" + string(role),
		token:    token,
	}, nil)
}
