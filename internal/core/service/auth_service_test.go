package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/careerhub/jobboard-web/internal/core/domain"
	"github.com/careerhub/jobboard-web/internal/core/ports"
	"github.com/careerhub/jobboard-web/internal/infrastructure/memory"
	"github.com/careerhub/jobboard-web/internal/validation"
)

const testSID = "7f1c3d2e-9a4b-4c5d-8e6f-0a1b2c3d4e5f"

func newAuthService(api *stubBackend) (*AuthService, *memory.SessionStore, *syncQueue) {
	sessions := memory.NewSessionStore()
	q := &syncQueue{}
	return NewAuthService(api, sessions, testValidator(), q, nopLogger()), sessions, q
}

func TestAuthService_Login_LandingRoutes(t *testing.T) {
	tests := []struct {
		role       string
		hasProfile bool
		want       string
	}{
		{"admin", false, "/admin"},
		{"jobseeker", false, "/dashboard/myapplication"},
		{"jobseeker", true, "/dashboard"},
		{"employer", false, "/employer-dashboard/create-profile"},
		{"employer", true, "/employer-dashboard"},
	}
	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			api := &stubBackend{login: func(string, string) (*domain.LoginResult, error) {
				return &domain.LoginResult{Token: "tok", Role: tt.role, HasProfile: tt.hasProfile}, nil
			}}
			svc, sessions, _ := newAuthService(api)

			route, err := svc.Login(context.Background(), testSID, "ada@example.com", "secret123")
			if err != nil {
				t.Fatalf("Login returned error: %v", err)
			}
			if route != tt.want {
				t.Fatalf("route = %q, want %q", route, tt.want)
			}

			sess, _ := sessions.Get(context.Background(), testSID)
			if sess.Token != "tok" || string(sess.Role) != tt.role || sess.HasProfile != tt.hasProfile {
				t.Fatalf("unexpected session: %+v", sess)
			}
			if sess.Email != "ada@example.com" {
				t.Fatalf("email not stored: %+v", sess)
			}
			if !sess.Role.Valid() {
				t.Fatalf("stored role %q is not a known role", sess.Role)
			}
		})
	}
}

func TestAuthService_Login_UnknownRole(t *testing.T) {
	for _, role := range []string{"superuser", "recruiter", ""} {
		t.Run(role, func(t *testing.T) {
			api := &stubBackend{login: func(string, string) (*domain.LoginResult, error) {
				return &domain.LoginResult{Token: "tok", Role: role, HasProfile: true}, nil
			}}
			svc, sessions, _ := newAuthService(api)

			route, err := svc.Login(context.Background(), testSID, "ada@example.com", "secret123")
			if !errors.Is(err, domain.ErrInvalidRole) {
				t.Fatalf("expected ErrInvalidRole, got route=%q err=%v", route, err)
			}
			sess, _ := sessions.Get(context.Background(), testSID)
			if sess.Authenticated() || sess.Role != "" {
				t.Fatalf("session must not be written for an unknown role: %+v", sess)
			}
		})
	}
}

func TestAuthService_Login_Unverified(t *testing.T) {
	api := &stubBackend{login: func(string, string) (*domain.LoginResult, error) {
		return nil, domain.ErrEmailNotVerified
	}}
	svc, sessions, _ := newAuthService(api)

	_, err := svc.Login(context.Background(), testSID, "ada@example.com", "secret123")
	if !errors.Is(err, domain.ErrEmailNotVerified) {
		t.Fatalf("expected ErrEmailNotVerified, got %v", err)
	}
	if sess, _ := sessions.Get(context.Background(), testSID); sess.Authenticated() {
		t.Fatalf("session must not be written on failed login")
	}
}

func TestAuthService_Login_EmptyCredentials(t *testing.T) {
	api := &stubBackend{}
	svc, _, _ := newAuthService(api)

	if _, err := svc.Login(context.Background(), testSID, " ", "x"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if api.count("Login") != 0 {
		t.Fatalf("backend must not be called")
	}
}

func TestAuthService_Login_CancelledBeforeStore(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	api := &stubBackend{login: func(string, string) (*domain.LoginResult, error) {
		cancel()
		return &domain.LoginResult{Token: "tok", Role: "admin"}, nil
	}}
	svc, sessions, _ := newAuthService(api)

	if _, err := svc.Login(ctx, testSID, "ada@example.com", "secret123"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if sess, _ := sessions.Get(context.Background(), testSID); sess.Authenticated() {
		t.Fatalf("cancelled login must not store a session")
	}
}

func TestAuthService_Register(t *testing.T) {
	var got ports.RegisterInput
	api := &stubBackend{register: func(in ports.RegisterInput) error {
		got = in
		return nil
	}}
	svc, _, _ := newAuthService(api)

	in := ports.RegisterInput{Role: domain.RoleEmployer, Email: " ada@example.com ", Password: "secret123"}
	if err := svc.Register(context.Background(), in, "secret123"); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if got.Email != "ada@example.com" || got.Role != domain.RoleEmployer {
		t.Fatalf("unexpected register payload: %+v", got)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	api := &stubBackend{}
	svc, _, _ := newAuthService(api)

	err := svc.Register(context.Background(), ports.RegisterInput{Role: domain.RoleJobseeker, Email: "bad", Password: "a"}, "b")
	ve, ok := validation.AsError(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(ve.Violations) != 2 {
		t.Fatalf("expected 2 violations, got %v", ve.Messages())
	}

	if err := svc.Register(context.Background(), ports.RegisterInput{Role: domain.RoleAdmin, Email: "a@b.co", Password: "x"}, "x"); !errors.Is(err, domain.ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
	if api.count("Register") != 0 {
		t.Fatalf("backend must not be called on invalid input")
	}
}

func TestAuthService_ChangePassword(t *testing.T) {
	api := &stubBackend{}
	svc, _, _ := newAuthService(api)
	sess := domain.Session{Token: "tok", Role: domain.RoleJobseeker}

	_, err := svc.ChangePassword(context.Background(), sess, "old", "short")
	if ve, ok := validation.AsError(err); !ok || ve.Messages()[0] != "Password must be at least 8 characters long." {
		t.Fatalf("expected password length violation, got %v", err)
	}

	if _, err := svc.ChangePassword(context.Background(), sess, "old", "longenough"); err != nil {
		t.Fatalf("ChangePassword returned error: %v", err)
	}
	if _, err := svc.ChangePassword(context.Background(), domain.Session{}, "old", "longenough"); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestAuthService_ResetFlow(t *testing.T) {
	api := &stubBackend{}
	svc, _, _ := newAuthService(api)
	ctx := context.Background()

	if _, err := svc.SendResetCode(ctx, "not-an-email"); err == nil {
		t.Fatalf("expected invalid email to be rejected")
	}
	if _, err := svc.SendResetCode(ctx, "ada@example.com"); err != nil {
		t.Fatalf("SendResetCode: %v", err)
	}
	if _, err := svc.VerifyResetCode(ctx, "ada@example.com", "12ab56"); err == nil {
		t.Fatalf("expected bad code to be rejected")
	}
	if _, err := svc.VerifyResetCode(ctx, "ada@example.com", "123456"); err != nil {
		t.Fatalf("VerifyResetCode: %v", err)
	}
	if _, err := svc.ResetPassword(ctx, "ada@example.com", "newpass1", "newpass2"); err == nil {
		t.Fatalf("expected mismatched passwords to be rejected")
	}
	if _, err := svc.ResetPassword(ctx, "ada@example.com", "newpass1", "newpass1"); err != nil {
		t.Fatalf("ResetPassword: %v", err)
	}
	if api.count("ResetPassword") != 1 {
		t.Fatalf("expected one reset call, got %d", api.count("ResetPassword"))
	}
}

func TestAuthService_Logout(t *testing.T) {
	var loggedOut string
	api := &stubBackend{logout: func(token string) error {
		loggedOut = token
		return errors.New("backend down")
	}}
	svc, sessions, q := newAuthService(api)
	ctx := context.Background()
	sess := domain.Session{Token: "tok", Role: domain.RoleEmployer}
	_ = sessions.Set(ctx, testSID, sess)

	if err := svc.Logout(ctx, testSID, sess); err != nil {
		t.Fatalf("Logout returned error: %v", err)
	}
	if got, _ := sessions.Get(ctx, testSID); got.Authenticated() {
		t.Fatalf("session not cleared")
	}
	if len(q.tasks) != 1 || loggedOut != "tok" {
		t.Fatalf("expected a background logout call with the old token")
	}
}

func TestAuthService_Logout_DroppedNotificationStillClears(t *testing.T) {
	svc, sessions, q := newAuthService(&stubBackend{})
	q.drop = true
	ctx := context.Background()
	sess := domain.Session{Token: "tok", Role: domain.RoleAdmin}
	_ = sessions.Set(ctx, testSID, sess)

	if err := svc.Logout(ctx, testSID, sess); err != nil {
		t.Fatalf("Logout returned error: %v", err)
	}
	if got, _ := sessions.Get(ctx, testSID); got.Authenticated() {
		t.Fatalf("session not cleared")
	}
}

func TestAuthService_DeleteAccount(t *testing.T) {
	var role domain.Role
	api := &stubBackend{deleteAccount: func(_ string, r domain.Role) (string, error) {
		role = r
		return "Account deleted", nil
	}}
	svc, sessions, _ := newAuthService(api)
	ctx := context.Background()
	sess := domain.Session{Token: "tok", Role: domain.RoleJobseeker}
	_ = sessions.Set(ctx, testSID, sess)

	msg, err := svc.DeleteAccount(ctx, testSID, sess)
	if err != nil {
		t.Fatalf("DeleteAccount returned error: %v", err)
	}
	if msg != "Account deleted" || role != domain.RoleJobseeker {
		t.Fatalf("unexpected result %q for role %q", msg, role)
	}
	if got, _ := sessions.Get(ctx, testSID); got.Authenticated() {
		t.Fatalf("session not cleared")
	}
}

func TestAuthService_DeleteAccount_FailureKeepsSession(t *testing.T) {
	api := &stubBackend{deleteAccount: func(string, domain.Role) (string, error) {
		return "", domain.ErrUpstreamUnavailable
	}}
	svc, sessions, _ := newAuthService(api)
	ctx := context.Background()
	sess := domain.Session{Token: "tok", Role: domain.RoleEmployer}
	_ = sessions.Set(ctx, testSID, sess)

	if _, err := svc.DeleteAccount(ctx, testSID, sess); !errors.Is(err, domain.ErrUpstreamUnavailable) {
		t.Fatalf("expected ErrUpstreamUnavailable, got %v", err)
	}
	if got, _ := sessions.Get(ctx, testSID); !got.Authenticated() {
		t.Fatalf("session must survive a failed deletion")
	}
}

func TestAuthService_Login_RejectedCredentials(t *testing.T) {
	api := &stubBackend{login: func(string, string) (*domain.LoginResult, error) {
		return nil, fmt.Errorf("backend /user/login: %w", domain.ErrUnauthenticated)
	}}
	svc, _, _ := newAuthService(api)

	_, err := svc.Login(context.Background(), testSID, "ada@example.com", "wrong")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}
