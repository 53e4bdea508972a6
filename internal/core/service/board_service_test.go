package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/careerhub/jobboard-web/internal/core/domain"
	"github.com/careerhub/jobboard-web/internal/core/ports"
	"github.com/careerhub/jobboard-web/internal/infrastructure/memory"
	"github.com/careerhub/jobboard-web/internal/validation"
)

var jobseeker = domain.Session{Token: "tok", Role: domain.RoleJobseeker, HasProfile: true}

func newApplicationService(api *stubBackend) (*ApplicationService, *memory.SubmitLock) {
	locks := memory.NewSubmitLock()
	return NewApplicationService(api, locks, testValidator(), 0, nopLogger()), locks
}

func TestSearchService_PagingKeepsKeyword(t *testing.T) {
	var seen []domain.SearchQuery
	api := &stubBackend{search: func(q domain.SearchQuery) (*domain.SearchResult, error) {
		seen = append(seen, q)
		return &domain.SearchResult{Pagination: domain.Pagination{CurrentPage: q.Page, TotalPages: 3}}, nil
	}}
	svc := NewSearchService(api, nopLogger())
	ctx := context.Background()

	q := domain.NewSearchQuery("golang", 1, nil)
	if _, err := svc.Search(ctx, q); err != nil {
		t.Fatalf("Search: %v", err)
	}
	res, err := svc.Search(ctx, q.WithPage(2))
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	if seen[1].Keyword != "golang" || seen[1].Page != 2 {
		t.Fatalf("paging must keep the keyword, got %+v", seen[1])
	}
	if res.Jobs == nil || !res.Empty() {
		t.Fatalf("an empty page must be an empty list, got %v", res.Jobs)
	}
}

func TestSearchService_DropsUnknownFilters(t *testing.T) {
	var seen domain.SearchQuery
	api := &stubBackend{search: func(q domain.SearchQuery) (*domain.SearchResult, error) {
		seen = q
		return &domain.SearchResult{}, nil
	}}
	svc := NewSearchService(api, nopLogger())

	_, err := svc.Search(context.Background(), domain.SearchQuery{Page: 0, Filters: map[string]string{"salary": "1", "skill": "go"}})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if seen.Page != 1 || len(seen.Filters) != 1 || seen.Filters["skill"] != "go" {
		t.Fatalf("query not normalised: %+v", seen)
	}
}

func TestApplicationService_DashboardSectionsAreIndependent(t *testing.T) {
	api := &stubBackend{
		appTotals: func() (*domain.ApplicationTotals, error) { return nil, domain.ErrUpstreamUnavailable },
		matching: func() ([]domain.JobPosting, error) {
			return []domain.JobPosting{{ID: "j1", Title: "Go dev"}}, nil
		},
	}
	svc, _ := newApplicationService(api)

	dash, err := svc.JobseekerDashboard(context.Background(), jobseeker)
	if err != nil {
		t.Fatalf("JobseekerDashboard: %v", err)
	}
	if dash.Totals != nil || len(dash.MatchingJobs) != 1 {
		t.Fatalf("unexpected dashboard: %+v", dash)
	}
	if len(dash.Failed) != 1 || dash.Failed[0] != "totals" {
		t.Fatalf("expected totals to be reported failed, got %v", dash.Failed)
	}
}

func TestApplicationService_DashboardAllFailed(t *testing.T) {
	api := &stubBackend{
		empTotals: func() (*domain.EmployerTotals, error) { return nil, domain.ErrUnauthenticated },
		myJobs:    func() ([]domain.JobPosting, error) { return nil, domain.ErrUnauthenticated },
	}
	svc, _ := newApplicationService(api)

	if _, err := svc.EmployerDashboard(context.Background(), domain.Session{Token: "tok"}); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestApplicationService_AppliedJobsWithInterviews(t *testing.T) {
	var lookups atomic.Int32
	api := &stubBackend{
		applied: func() ([]domain.Application, error) {
			return []domain.Application{{ID: "a1"}, {ID: "a2"}, {ID: "a3"}}, nil
		},
		interview: func(id string) (*domain.Interview, error) {
			lookups.Add(1)
			switch id {
			case "a1":
				return &domain.Interview{Date: "2026-04-01", Time: "10:00"}, nil
			case "a2":
				return nil, errors.New("boom")
			}
			return nil, nil
		},
	}
	svc, _ := newApplicationService(api)

	apps, err := svc.AppliedJobs(context.Background(), jobseeker)
	if err != nil {
		t.Fatalf("AppliedJobs: %v", err)
	}
	if lookups.Load() != 3 {
		t.Fatalf("expected 3 interview lookups, got %d", lookups.Load())
	}
	if apps[0].Interview == nil || apps[0].Interview.Time != "10:00" {
		t.Fatalf("interview not attached: %+v", apps[0])
	}
	if apps[1].Interview != nil || apps[2].Interview != nil {
		t.Fatalf("missing interviews must stay empty")
	}
}

func TestApplicationService_ApplyRejectsDoubleSubmit(t *testing.T) {
	api := &stubBackend{}
	svc, locks := newApplicationService(api)
	ctx := context.Background()

	msg, err := svc.Apply(ctx, testSID, jobseeker, "j1")
	if err != nil || msg != "Applied successfully" {
		t.Fatalf("Apply = %q, %v", msg, err)
	}

	key := editKey(testSID, ports.FormRef{Kind: "apply", ID: "j1"})
	_, _, _ = locks.Acquire(ctx, key, defaultSubmitLockTTL)
	if _, err := svc.Apply(ctx, testSID, jobseeker, "j1"); !errors.Is(err, domain.ErrSubmitInFlight) {
		t.Fatalf("expected ErrSubmitInFlight, got %v", err)
	}
	if api.count("Apply") != 1 {
		t.Fatalf("expected a single backend call, got %d", api.count("Apply"))
	}
}

func TestApplicationService_WithdrawRefetches(t *testing.T) {
	api := &stubBackend{}
	svc, _ := newApplicationService(api)

	if _, err := svc.Withdraw(context.Background(), jobseeker, "j1"); err != nil {
		t.Fatalf("Withdraw: %v", err)
	}
	if api.count("Withdraw") != 1 || api.count("AppliedJobs") != 1 {
		t.Fatalf("expected withdraw then re-fetch, calls: %v", api.calls)
	}
}

func TestApplicationService_ScheduleInterviewInPast(t *testing.T) {
	api := &stubBackend{}
	svc, _ := newApplicationService(api)
	employer := domain.Session{Token: "tok", Role: domain.RoleEmployer}

	err := svc.ScheduleInterview(context.Background(), employer, "a1", domain.Interview{Date: "2026-02-01", Time: "09:00"})
	if ve, ok := validation.AsError(err); !ok || ve.Messages()[0] != "Interview date should be in the future." {
		t.Fatalf("expected interview date violation, got %v", err)
	}
	if err := svc.ScheduleInterview(context.Background(), employer, "a1", domain.Interview{Date: "2026-04-01", Time: "09:00"}); err != nil {
		t.Fatalf("ScheduleInterview: %v", err)
	}
	if api.count("ScheduleInterview") != 1 {
		t.Fatalf("expected one schedule call")
	}
}

func TestBlogService_ListExcerpts(t *testing.T) {
	long := "<p>" + strings.Repeat("word ", 100) + "</p>"
	api := &stubBackend{blogs: func() ([]domain.Blog, error) {
		return []domain.Blog{
			{ID: "b1", Title: "Short", Content: "<h1>Hello</h1>\n<p>  <b>world</b></p>"},
			{ID: "b2", Title: "Long", Content: long, Tags: []string{"go"}},
		}, nil
	}}
	svc := NewBlogService(api, nopLogger())

	cards, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if cards[0].Excerpt != "Hello world" {
		t.Fatalf("unexpected excerpt %q", cards[0].Excerpt)
	}
	if cards[0].Tags == nil {
		t.Fatalf("tags must be an empty list, not null")
	}
	if !strings.HasSuffix(cards[1].Excerpt, "...") || len([]rune(cards[1].Excerpt)) > ExcerptLength+3 {
		t.Fatalf("long excerpt not truncated: %q", cards[1].Excerpt)
	}
}

func TestExcerpt_Runes(t *testing.T) {
	if got := Excerpt("<p>héllo wörld</p>", 5); got != "héllo..." {
		t.Fatalf("Excerpt = %q", got)
	}
}

func TestAdminService_Users(t *testing.T) {
	api := &stubBackend{
		jobseekers: func() ([]domain.UserSummary, error) { return []domain.UserSummary{{ID: "u1"}}, nil },
		employers:  func() ([]domain.UserSummary, error) { return nil, domain.ErrUpstreamUnavailable },
	}
	svc := NewAdminService(api, nopLogger())

	users, err := svc.Users(context.Background(), domain.Session{Token: "tok", Role: domain.RoleAdmin})
	if err != nil {
		t.Fatalf("Users: %v", err)
	}
	if len(users.Jobseekers) != 1 || len(users.Failed) != 1 || users.Failed[0] != "employers" {
		t.Fatalf("unexpected users view: %+v", users)
	}
}

func TestAdminService_BanNeedsReason(t *testing.T) {
	api := &stubBackend{}
	svc := NewAdminService(api, nopLogger())
	admin := domain.Session{Token: "tok", Role: domain.RoleAdmin}

	if _, ok := validation.AsError(svc.Ban(context.Background(), admin, "u1", "  ")); !ok {
		t.Fatalf("expected a validation error for an empty reason")
	}
	if err := svc.Ban(context.Background(), admin, "u1", "spam"); err != nil {
		t.Fatalf("Ban: %v", err)
	}
	if api.count("Ban") != 1 {
		t.Fatalf("expected one ban call")
	}
}

func TestAdminService_SetJobStatus(t *testing.T) {
	api := &stubBackend{}
	svc := NewAdminService(api, nopLogger())
	admin := domain.Session{Token: "tok", Role: domain.RoleAdmin}

	job, err := svc.SetJobStatus(context.Background(), admin, "j1", domain.JobApproved)
	if err != nil || job.Status != domain.JobApproved {
		t.Fatalf("SetJobStatus = %+v, %v", job, err)
	}
	if _, err := svc.SetJobStatus(context.Background(), admin, "j1", "archived"); err == nil {
		t.Fatalf("expected unknown status to be rejected")
	}
}

func TestFileService_UploadChecks(t *testing.T) {
	api := &stubBackend{}
	svc := NewFileService(api, 1, nopLogger())
	ctx := context.Background()
	pdf := func() io.Reader { return strings.NewReader("%PDF-1.4") }

	url, err := svc.UploadResume(ctx, jobseeker, "cv.pdf", "application/pdf", 8, pdf())
	if err != nil || url != "uploads/cv.pdf" {
		t.Fatalf("UploadResume = %q, %v", url, err)
	}

	bad := []struct {
		name, ct string
		size     int64
	}{
		{"cv.docx", "application/pdf", 8},
		{"cv.pdf", "text/plain", 8},
		{"../cv.pdf", "application/pdf", 8},
		{"cv.pdf", "application/pdf", 2 << 20},
	}
	for _, b := range bad {
		if _, err := svc.UploadResume(ctx, jobseeker, b.name, b.ct, b.size, pdf()); !errors.Is(err, domain.ErrInvalidUpload) {
			t.Fatalf("%s (%s, %d): expected ErrInvalidUpload, got %v", b.name, b.ct, b.size, err)
		}
	}
}

func TestFileService_UploadCapsBody(t *testing.T) {
	api := &stubBackend{}
	svc := NewFileService(api, 1, nopLogger())
	body := strings.NewReader(strings.Repeat("x", (1<<20)+10))

	// the declared size lies; the body is still capped
	if _, err := svc.UploadResume(context.Background(), jobseeker, "cv.pdf", "application/pdf", 10, body); !errors.Is(err, domain.ErrInvalidUpload) {
		t.Fatalf("expected ErrInvalidUpload, got %v", err)
	}
}

func TestFileService_DocumentRejectsPaths(t *testing.T) {
	svc := NewFileService(&stubBackend{}, 5, nopLogger())
	for _, name := range []string{"", "..", "a/b.pdf", `a\b.pdf`} {
		if _, err := svc.Document(context.Background(), jobseeker, name); !errors.Is(err, domain.ErrInvalidUpload) {
			t.Fatalf("%q: expected ErrInvalidUpload, got %v", name, err)
		}
	}
}
