package handler

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/careerhub/jobboard-web/internal/api/middleware"
	"github.com/careerhub/jobboard-web/internal/core/domain"
	"github.com/careerhub/jobboard-web/internal/core/ports"
	"github.com/careerhub/jobboard-web/internal/formstate"
	"github.com/careerhub/jobboard-web/internal/validation"
)

const testSID = "0b6f5c1e-2d3a-4e8f-9a7b-1c2d3e4f5a6b"

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = validation.MustNew(func() time.Time { return testNow })
	return e
}

// newContext builds an echo context. A non-nil sess is placed on it the way
// the guard does.
func newContext(e *echo.Echo, method, target, body string, sess *domain.Session) (echo.Context, *httptest.ResponseRecorder) {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("sid", testSID)
	if sess != nil {
		middleware.SetSession(c, *sess)
	}
	return c, rec
}

func jobseeker() *domain.Session {
	return &domain.Session{Token: "tok", Role: domain.RoleJobseeker, HasProfile: true}
}

func employer() *domain.Session {
	return &domain.Session{Token: "tok", Role: domain.RoleEmployer, HasProfile: true}
}

func admin() *domain.Session {
	return &domain.Session{Token: "tok", Role: domain.RoleAdmin}
}

// --- auth ---

type stubAuthService struct {
	loginFn    func(ctx context.Context, sid, email, password string) (string, error)
	registerFn func(ctx context.Context, in ports.RegisterInput, confirm string) error
	logoutFn   func(ctx context.Context, sid string, sess domain.Session) error
	deleteFn   func(ctx context.Context, sid string, sess domain.Session) (string, error)
}

func (s *stubAuthService) Login(ctx context.Context, sid, email, password string) (string, error) {
	return s.loginFn(ctx, sid, email, password)
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput, confirm string) error {
	return s.registerFn(ctx, in, confirm)
}

func (s *stubAuthService) VerifyEmail(context.Context, string, string) error { return nil }

func (s *stubAuthService) SendResetCode(context.Context, string) (string, error) {
	return "Code sent", nil
}

func (s *stubAuthService) VerifyResetCode(context.Context, string, string) (string, error) {
	return "", nil
}

func (s *stubAuthService) ResetPassword(context.Context, string, string, string) (string, error) {
	return "", nil
}

func (s *stubAuthService) ChangePassword(context.Context, domain.Session, string, string) (string, error) {
	return "Password updated", nil
}

func (s *stubAuthService) Logout(ctx context.Context, sid string, sess domain.Session) error {
	return s.logoutFn(ctx, sid, sess)
}

func (s *stubAuthService) DeleteAccount(ctx context.Context, sid string, sess domain.Session) (string, error) {
	return s.deleteFn(ctx, sid, sess)
}

// --- records ---

type stubRecordService struct {
	openFn   func(ctx context.Context, sid string, sess domain.Session, ref ports.FormRef) (formstate.Tree, error)
	editFn   func(ctx context.Context, sid string, ref ports.FormRef, op formstate.Op) (formstate.Tree, error)
	submitFn func(ctx context.Context, sid string, sess domain.Session, ref ports.FormRef) (*ports.SubmitResult, error)
}

func (s *stubRecordService) Open(ctx context.Context, sid string, sess domain.Session, ref ports.FormRef) (formstate.Tree, error) {
	return s.openFn(ctx, sid, sess, ref)
}

func (s *stubRecordService) Draft(context.Context, string, ports.FormRef) (formstate.Tree, error) {
	return nil, domain.ErrDraftNotFound
}

func (s *stubRecordService) Edit(ctx context.Context, sid string, ref ports.FormRef, op formstate.Op) (formstate.Tree, error) {
	return s.editFn(ctx, sid, ref, op)
}

func (s *stubRecordService) Submit(ctx context.Context, sid string, sess domain.Session, ref ports.FormRef) (*ports.SubmitResult, error) {
	return s.submitFn(ctx, sid, sess, ref)
}

// --- search ---

type stubSearchService struct {
	searchFn func(ctx context.Context, q domain.SearchQuery) (*domain.SearchResult, error)
}

func (s *stubSearchService) Search(ctx context.Context, q domain.SearchQuery) (*domain.SearchResult, error) {
	return s.searchFn(ctx, q)
}

// --- applications ---

type stubApplicationService struct {
	ports.ApplicationService

	dashboardFn func(ctx context.Context, sess domain.Session) (*ports.JobseekerDashboard, error)
	applyFn     func(ctx context.Context, sid string, sess domain.Session, jobID string) (string, error)
	appliedFn   func(ctx context.Context, sess domain.Session) ([]domain.Application, error)
	interviewFn func(ctx context.Context, sess domain.Session, id string, iv domain.Interview) error
}

func (s *stubApplicationService) JobseekerDashboard(ctx context.Context, sess domain.Session) (*ports.JobseekerDashboard, error) {
	return s.dashboardFn(ctx, sess)
}

func (s *stubApplicationService) Apply(ctx context.Context, sid string, sess domain.Session, jobID string) (string, error) {
	return s.applyFn(ctx, sid, sess, jobID)
}

func (s *stubApplicationService) AppliedJobs(ctx context.Context, sess domain.Session) ([]domain.Application, error) {
	return s.appliedFn(ctx, sess)
}

func (s *stubApplicationService) ScheduleInterview(ctx context.Context, sess domain.Session, id string, iv domain.Interview) error {
	return s.interviewFn(ctx, sess, id, iv)
}

// --- admin ---

type stubAdminService struct {
	ports.AdminService

	banFn    func(ctx context.Context, sess domain.Session, userID, reason string) error
	statusFn func(ctx context.Context, sess domain.Session, jobID string, status domain.JobStatus) (*domain.JobPosting, error)
}

func (s *stubAdminService) Ban(ctx context.Context, sess domain.Session, userID, reason string) error {
	return s.banFn(ctx, sess, userID, reason)
}

func (s *stubAdminService) SetJobStatus(ctx context.Context, sess domain.Session, jobID string, status domain.JobStatus) (*domain.JobPosting, error) {
	return s.statusFn(ctx, sess, jobID, status)
}

// --- files ---

type stubFileService struct {
	uploadFn   func(ctx context.Context, sess domain.Session, filename, contentType string, size int64, body io.Reader) (string, error)
	documentFn func(ctx context.Context, sess domain.Session, filename string) (*ports.Document, error)
}

func (s *stubFileService) UploadResume(ctx context.Context, sess domain.Session, filename, contentType string, size int64, body io.Reader) (string, error) {
	return s.uploadFn(ctx, sess, filename, contentType, size, body)
}

func (s *stubFileService) Document(ctx context.Context, sess domain.Session, filename string) (*ports.Document, error) {
	return s.documentFn(ctx, sess, filename)
}
