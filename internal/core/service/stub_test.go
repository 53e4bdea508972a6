package service

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/careerhub/jobboard-web/internal/core/domain"
	"github.com/careerhub/jobboard-web/internal/core/ports"
	"github.com/careerhub/jobboard-web/internal/validation"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func testValidator() *validation.Validator {
	return validation.MustNew(func() time.Time { return testNow })
}

// stubBackend answers every backend call. Unset hooks return zero values.
type stubBackend struct {
	mu    sync.Mutex
	calls []string

	login         func(email, password string) (*domain.LoginResult, error)
	logout        func(token string) error
	deleteAccount func(token string, role domain.Role) (string, error)
	register      func(in ports.RegisterInput) error

	myResume     func() (*domain.Resume, error)
	createResume func(r *domain.Resume, key string) error
	updateResume func(r *domain.Resume) error
	upload       func(filename string, body io.Reader) (string, error)

	myCompany   func() (*domain.CompanyProfile, error)
	saveCompany func(p *domain.CompanyProfile) error

	search    func(q domain.SearchQuery) (*domain.SearchResult, error)
	job       func(id string) (*domain.JobPosting, error)
	createJob func(j *domain.JobPosting, key string) error
	updateJob func(id string, j *domain.JobPosting) error
	myJobs    func() ([]domain.JobPosting, error)
	matching  func() ([]domain.JobPosting, error)
	empTotals func() (*domain.EmployerTotals, error)

	apply       func(jobID string) (string, error)
	applied     func() ([]domain.Application, error)
	appTotals   func() (*domain.ApplicationTotals, error)
	interview   func(id string) (*domain.Interview, error)
	schedule    func(id string, iv domain.Interview) error
	blogs       func() ([]domain.Blog, error)
	jobseekers  func() ([]domain.UserSummary, error)
	employers   func() ([]domain.UserSummary, error)
	ban         func(id, reason string) error
	setStatus   func(id string, st domain.JobStatus) (*domain.JobPosting, error)
	createBlog  func(b *domain.Blog) error
	resumePDF   func(filename string) (*ports.Document, error)
	withdrawHit func(jobID string) error
}

func (b *stubBackend) record(name string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = append(b.calls, name)
}

func (b *stubBackend) count(name string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, c := range b.calls {
		if c == name {
			n++
		}
	}
	return n
}

func (b *stubBackend) Ping(context.Context) error { return nil }

func (b *stubBackend) Login(_ context.Context, email, password string) (*domain.LoginResult, error) {
	b.record("Login")
	if b.login != nil {
		return b.login(email, password)
	}
	return &domain.LoginResult{Token: "tok", Role: "jobseeker"}, nil
}

func (b *stubBackend) Register(_ context.Context, in ports.RegisterInput) error {
	b.record("Register")
	if b.register != nil {
		return b.register(in)
	}
	return nil
}

func (b *stubBackend) VerifyEmail(context.Context, string, string) error {
	b.record("VerifyEmail")
	return nil
}

func (b *stubBackend) SendResetCode(context.Context, string) (string, error) {
	b.record("SendResetCode")
	return "code sent", nil
}

func (b *stubBackend) VerifyResetCode(context.Context, string, string) (string, error) {
	b.record("VerifyResetCode")
	return "code verified", nil
}

func (b *stubBackend) ResetPassword(context.Context, string, string) (string, error) {
	b.record("ResetPassword")
	return "password updated", nil
}

func (b *stubBackend) ChangePassword(context.Context, string, string, string) (string, error) {
	b.record("ChangePassword")
	return "password changed", nil
}

func (b *stubBackend) Logout(_ context.Context, token string) error {
	b.record("Logout")
	if b.logout != nil {
		return b.logout(token)
	}
	return nil
}

func (b *stubBackend) DeleteAccount(_ context.Context, token string, role domain.Role) (string, error) {
	b.record("DeleteAccount")
	if b.deleteAccount != nil {
		return b.deleteAccount(token, role)
	}
	return "deleted", nil
}

func (b *stubBackend) MyResume(context.Context, string) (*domain.Resume, error) {
	b.record("MyResume")
	if b.myResume != nil {
		return b.myResume()
	}
	return nil, domain.ErrNotFound
}

func (b *stubBackend) CreateResume(_ context.Context, _ string, r *domain.Resume, key string) error {
	b.record("CreateResume")
	if b.createResume != nil {
		return b.createResume(r, key)
	}
	return nil
}

func (b *stubBackend) UpdateResume(_ context.Context, _ string, r *domain.Resume) error {
	b.record("UpdateResume")
	if b.updateResume != nil {
		return b.updateResume(r)
	}
	return nil
}

func (b *stubBackend) UploadResumePDF(_ context.Context, _ string, filename string, body io.Reader) (string, error) {
	b.record("UploadResumePDF")
	if b.upload != nil {
		return b.upload(filename, body)
	}
	_, err := io.Copy(io.Discard, body)
	return "uploads/" + filename, err
}

func (b *stubBackend) ResumePDF(_ context.Context, _ string, filename string) (*ports.Document, error) {
	b.record("ResumePDF")
	if b.resumePDF != nil {
		return b.resumePDF(filename)
	}
	return nil, domain.ErrNotFound
}

func (b *stubBackend) MyCompany(context.Context, string) (*domain.CompanyProfile, error) {
	b.record("MyCompany")
	if b.myCompany != nil {
		return b.myCompany()
	}
	return nil, domain.ErrNotFound
}

func (b *stubBackend) SaveCompany(_ context.Context, _ string, p *domain.CompanyProfile, _ string) error {
	b.record("SaveCompany")
	if b.saveCompany != nil {
		return b.saveCompany(p)
	}
	return nil
}

func (b *stubBackend) Companies(context.Context, string) ([]domain.CompanyProfile, error) {
	b.record("Companies")
	return nil, nil
}

func (b *stubBackend) SearchJobs(_ context.Context, q domain.SearchQuery) (*domain.SearchResult, error) {
	b.record("SearchJobs")
	if b.search != nil {
		return b.search(q)
	}
	return &domain.SearchResult{}, nil
}

func (b *stubBackend) Job(_ context.Context, _ string, id string) (*domain.JobPosting, error) {
	b.record("Job")
	if b.job != nil {
		return b.job(id)
	}
	return nil, domain.ErrNotFound
}

func (b *stubBackend) CreateJob(_ context.Context, _ string, j *domain.JobPosting, key string) error {
	b.record("CreateJob")
	if b.createJob != nil {
		return b.createJob(j, key)
	}
	return nil
}

func (b *stubBackend) UpdateJob(_ context.Context, _ string, id string, j *domain.JobPosting) error {
	b.record("UpdateJob")
	if b.updateJob != nil {
		return b.updateJob(id, j)
	}
	return nil
}

func (b *stubBackend) DeleteJob(context.Context, string, string) error {
	b.record("DeleteJob")
	return nil
}

func (b *stubBackend) MyJobs(context.Context, string) ([]domain.JobPosting, error) {
	b.record("MyJobs")
	if b.myJobs != nil {
		return b.myJobs()
	}
	return nil, nil
}

func (b *stubBackend) EmployerTotals(context.Context, string) (*domain.EmployerTotals, error) {
	b.record("EmployerTotals")
	if b.empTotals != nil {
		return b.empTotals()
	}
	return &domain.EmployerTotals{}, nil
}

func (b *stubBackend) MatchingJobs(context.Context, string) ([]domain.JobPosting, error) {
	b.record("MatchingJobs")
	if b.matching != nil {
		return b.matching()
	}
	return nil, nil
}

func (b *stubBackend) PendingJobs(context.Context, string) ([]domain.JobPosting, error) {
	b.record("PendingJobs")
	return nil, nil
}

func (b *stubBackend) SetJobStatus(_ context.Context, _ string, id string, st domain.JobStatus) (*domain.JobPosting, error) {
	b.record("SetJobStatus")
	if b.setStatus != nil {
		return b.setStatus(id, st)
	}
	return &domain.JobPosting{ID: id, Status: st}, nil
}

func (b *stubBackend) JobsWithApplicants(context.Context, string) ([]domain.JobPosting, error) {
	b.record("JobsWithApplicants")
	return nil, nil
}

func (b *stubBackend) Apply(_ context.Context, _ string, jobID, _ string) (string, error) {
	b.record("Apply")
	if b.apply != nil {
		return b.apply(jobID)
	}
	return "Applied successfully", nil
}

func (b *stubBackend) Withdraw(_ context.Context, _ string, jobID string) error {
	b.record("Withdraw")
	if b.withdrawHit != nil {
		return b.withdrawHit(jobID)
	}
	return nil
}

func (b *stubBackend) AppliedJobs(context.Context, string) ([]domain.Application, error) {
	b.record("AppliedJobs")
	if b.applied != nil {
		return b.applied()
	}
	return nil, nil
}

func (b *stubBackend) ApplicationTotals(context.Context, string) (*domain.ApplicationTotals, error) {
	b.record("ApplicationTotals")
	if b.appTotals != nil {
		return b.appTotals()
	}
	return &domain.ApplicationTotals{}, nil
}

func (b *stubBackend) Applicants(context.Context, string, string) ([]domain.Application, error) {
	b.record("Applicants")
	if b.applied != nil {
		return b.applied()
	}
	return nil, nil
}

func (b *stubBackend) JobApplications(context.Context, string, string) ([]domain.Application, error) {
	b.record("JobApplications")
	return nil, nil
}

func (b *stubBackend) ScheduleInterview(_ context.Context, _ string, id string, iv domain.Interview) error {
	b.record("ScheduleInterview")
	if b.schedule != nil {
		return b.schedule(id, iv)
	}
	return nil
}

func (b *stubBackend) Interview(_ context.Context, _ string, id string) (*domain.Interview, error) {
	b.record("Interview")
	if b.interview != nil {
		return b.interview(id)
	}
	return nil, nil
}

func (b *stubBackend) Accept(context.Context, string, string) error {
	b.record("Accept")
	return nil
}

func (b *stubBackend) Reject(context.Context, string, string) error {
	b.record("Reject")
	return nil
}

func (b *stubBackend) SendResumes(context.Context, string, string) (string, error) {
	b.record("SendResumes")
	return "Resumes sent", nil
}

func (b *stubBackend) Blogs(context.Context) ([]domain.Blog, error) {
	b.record("Blogs")
	if b.blogs != nil {
		return b.blogs()
	}
	return nil, nil
}

func (b *stubBackend) Blog(context.Context, string) (*domain.Blog, error) {
	b.record("Blog")
	return nil, domain.ErrNotFound
}

func (b *stubBackend) CreateBlog(_ context.Context, _ string, blog *domain.Blog, _ string) error {
	b.record("CreateBlog")
	if b.createBlog != nil {
		return b.createBlog(blog)
	}
	return nil
}

func (b *stubBackend) UpdateBlog(context.Context, string, string, *domain.Blog) error {
	b.record("UpdateBlog")
	return nil
}

func (b *stubBackend) DeleteBlog(context.Context, string, string) error {
	b.record("DeleteBlog")
	return nil
}

func (b *stubBackend) Jobseekers(context.Context, string) ([]domain.UserSummary, error) {
	b.record("Jobseekers")
	if b.jobseekers != nil {
		return b.jobseekers()
	}
	return nil, nil
}

func (b *stubBackend) Employers(context.Context, string) ([]domain.UserSummary, error) {
	b.record("Employers")
	if b.employers != nil {
		return b.employers()
	}
	return nil, nil
}

func (b *stubBackend) Ban(_ context.Context, _ string, id, reason string) error {
	b.record("Ban")
	if b.ban != nil {
		return b.ban(id, reason)
	}
	return nil
}

func (b *stubBackend) Unban(context.Context, string, string) error {
	b.record("Unban")
	return nil
}

func (b *stubBackend) CompanyDetails(context.Context, string, string) (*domain.CompanyProfile, error) {
	b.record("CompanyDetails")
	return &domain.CompanyProfile{}, nil
}

func (b *stubBackend) JobseekerDetails(context.Context, string, string) (*domain.Resume, error) {
	b.record("JobseekerDetails")
	return &domain.Resume{}, nil
}

var _ ports.Backend = (*stubBackend)(nil)

// syncQueue runs tasks inline so tests can observe them.
type syncQueue struct {
	tasks []ports.Task
	drop  bool
}

func (q *syncQueue) Enqueue(t ports.Task) bool {
	if q.drop {
		return false
	}
	q.tasks = append(q.tasks, t)
	_ = t.Run(context.Background())
	return true
}

func nopLogger() zerolog.Logger { return zerolog.Nop() }
