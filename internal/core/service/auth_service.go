package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/careerhub/jobboard-web/internal/core/domain"
	"github.com/careerhub/jobboard-web/internal/core/ports"
	"github.com/careerhub/jobboard-web/internal/pkg/sessionid"
	"github.com/careerhub/jobboard-web/internal/validation"
)

// AuthService implements the account flows. It is the only writer of
// sessions apart from the profile flag flip after a first save.
type AuthService struct {
	api      ports.UserAPI
	sessions ports.SessionStore
	validate *validation.Validator
	tasks    ports.TaskQueue
	logger   zerolog.Logger
}

func NewAuthService(api ports.UserAPI, sessions ports.SessionStore, validate *validation.Validator, tasks ports.TaskQueue, logger zerolog.Logger) *AuthService {
	return &AuthService{api: api, sessions: sessions, validate: validate, tasks: tasks, logger: logger}
}

// Login authenticates against the backend, stores the session in one write
// and returns the route the actor lands on.
func (s *AuthService) Login(ctx context.Context, sid, email, password string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return "", domain.ErrInvalidCredentials
	}

	res, err := s.api.Login(ctx, email, password)
	if err != nil {
		// A plain 401 or 404 here means bad credentials, not an expired session.
		if !errors.Is(err, domain.ErrEmailNotVerified) &&
			(errors.Is(err, domain.ErrUnauthenticated) || errors.Is(err, domain.ErrNotFound)) {
			return "", fmt.Errorf("%w: %v", domain.ErrInvalidCredentials, err)
		}
		return "", err
	}

	role, err := domain.ParseRole(res.Role)
	if err != nil {
		s.logger.Warn().Str("role", res.Role).Msg("login returned an unknown role")
		return "", fmt.Errorf("login: %w: %q", err, res.Role)
	}
	sess := domain.Session{
		Token:      res.Token,
		Role:       role,
		HasProfile: res.HasProfile,
		UserID:     res.UserID,
		Email:      email,
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := s.sessions.Set(ctx, sid, sess); err != nil {
		s.logger.Error().Err(err).Msg("failed to store session")
		return "", err
	}

	s.logger.Info().Str("role", string(role)).Bool("has_profile", sess.HasProfile).Msg("user logged in")
	return sess.LandingRoute(), nil
}

// Register creates an unverified account. The caller continues with the
// email verification step.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput, confirm string) error {
	in.Email = strings.TrimSpace(in.Email)
	if in.Role != domain.RoleJobseeker && in.Role != domain.RoleEmployer {
		return domain.ErrInvalidRole
	}
	if err := validation.Join(
		s.validate.Email(in.Email),
		s.validate.PasswordsMatch(in.Password, confirm),
	); err != nil {
		return err
	}
	return s.api.Register(ctx, in)
}

func (s *AuthService) VerifyEmail(ctx context.Context, email, code string) error {
	if err := validation.Join(s.validate.Email(email), s.validate.VerificationCode(code)); err != nil {
		return err
	}
	return s.api.VerifyEmail(ctx, strings.TrimSpace(email), code)
}

func (s *AuthService) SendResetCode(ctx context.Context, email string) (string, error) {
	if err := s.validate.Email(email); err != nil {
		return "", err
	}
	return s.api.SendResetCode(ctx, strings.TrimSpace(email))
}

func (s *AuthService) VerifyResetCode(ctx context.Context, email, code string) (string, error) {
	if err := validation.Join(s.validate.Email(email), s.validate.VerificationCode(code)); err != nil {
		return "", err
	}
	return s.api.VerifyResetCode(ctx, strings.TrimSpace(email), code)
}

func (s *AuthService) ResetPassword(ctx context.Context, email, password, confirm string) (string, error) {
	if err := validation.Join(s.validate.Email(email), s.validate.PasswordsMatch(password, confirm)); err != nil {
		return "", err
	}
	return s.api.ResetPassword(ctx, strings.TrimSpace(email), password)
}

func (s *AuthService) ChangePassword(ctx context.Context, sess domain.Session, current, next string) (string, error) {
	if !sess.Authenticated() {
		return "", domain.ErrUnauthenticated
	}
	if err := s.validate.NewPassword(next); err != nil {
		return "", err
	}
	return s.api.ChangePassword(ctx, sess.Token, current, next)
}

// Logout clears the local session first. The backend is told afterwards on
// the background queue and its answer is ignored.
func (s *AuthService) Logout(ctx context.Context, sid string, sess domain.Session) error {
	if err := s.sessions.Clear(ctx, sid); err != nil {
		s.logger.Error().Err(err).Msg("failed to clear session")
		return err
	}
	if sess.Token == "" {
		return nil
	}
	token := sess.Token
	queued := s.tasks.Enqueue(ports.Task{
		Key:  sessionid.Digest(sid),
		Name: "logout",
		Run: func(ctx context.Context) error {
			return s.api.Logout(ctx, token)
		},
	})
	if !queued {
		s.logger.Warn().Msg("logout notification dropped")
	}
	return nil
}

// DeleteAccount removes the account upstream and then the local session.
func (s *AuthService) DeleteAccount(ctx context.Context, sid string, sess domain.Session) (string, error) {
	if !sess.Authenticated() {
		return "", domain.ErrUnauthenticated
	}
	msg, err := s.api.DeleteAccount(ctx, sess.Token, sess.Role)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := s.sessions.Clear(ctx, sid); err != nil {
		return "", err
	}
	s.logger.Info().Str("role", string(sess.Role)).Msg("account deleted")
	return msg, nil
}
