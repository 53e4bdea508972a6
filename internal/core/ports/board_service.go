package ports

import (
	"context"
	"io"

	"github.com/careerhub/jobboard-web/internal/core/domain"
)

// SearchService runs the public vacancy search.
type SearchService interface {
	Search(ctx context.Context, q domain.SearchQuery) (*domain.SearchResult, error)
}

// JobseekerDashboard is the jobseeker landing view. A section whose fetch
// failed is nil and named in Failed.
type JobseekerDashboard struct {
	Totals       *domain.ApplicationTotals
	MatchingJobs []domain.JobPosting
	Failed       []string
}

// EmployerDashboard is the employer landing view.
type EmployerDashboard struct {
	Totals     *domain.EmployerTotals
	PostedJobs []domain.JobPosting
	Failed     []string
}

// AdminUsers lists both account kinds for moderation.
type AdminUsers struct {
	Jobseekers []domain.UserSummary
	Employers  []domain.UserSummary
	Failed     []string
}

// ApplicationService covers dashboards, applications and interviews.
type ApplicationService interface {
	JobseekerDashboard(ctx context.Context, sess domain.Session) (*JobseekerDashboard, error)
	EmployerDashboard(ctx context.Context, sess domain.Session) (*EmployerDashboard, error)
	Job(ctx context.Context, sess domain.Session, id string) (*domain.JobPosting, error)
	Apply(ctx context.Context, sid string, sess domain.Session, jobID string) (string, error)
	Withdraw(ctx context.Context, sess domain.Session, jobID string) ([]domain.Application, error)
	AppliedJobs(ctx context.Context, sess domain.Session) ([]domain.Application, error)
	PostedJobs(ctx context.Context, sess domain.Session) ([]domain.JobPosting, error)
	DeleteJob(ctx context.Context, sess domain.Session, jobID string) error
	Applicants(ctx context.Context, sess domain.Session, jobID string) ([]domain.Application, error)
	ScheduleInterview(ctx context.Context, sess domain.Session, applicationID string, iv domain.Interview) error
	Companies(ctx context.Context, sess domain.Session) ([]domain.CompanyProfile, error)
	MyCompany(ctx context.Context, sess domain.Session) (*domain.CompanyProfile, error)
	MyResume(ctx context.Context, sess domain.Session) (*domain.Resume, error)
}

// BlogService serves blog listings and deletion.
type BlogService interface {
	List(ctx context.Context) ([]domain.BlogCard, error)
	Get(ctx context.Context, id string) (*domain.Blog, error)
	Delete(ctx context.Context, sess domain.Session, id string) error
}

// AdminService covers moderation pages.
type AdminService interface {
	Users(ctx context.Context, sess domain.Session) (*AdminUsers, error)
	Ban(ctx context.Context, sess domain.Session, userID, reason string) error
	Unban(ctx context.Context, sess domain.Session, userID string) error
	PendingJobs(ctx context.Context, sess domain.Session) ([]domain.JobPosting, error)
	SetJobStatus(ctx context.Context, sess domain.Session, jobID string, status domain.JobStatus) (*domain.JobPosting, error)
	JobsWithApplicants(ctx context.Context, sess domain.Session) ([]domain.JobPosting, error)
	JobApplications(ctx context.Context, sess domain.Session, jobID string) ([]domain.Application, error)
	Accept(ctx context.Context, sess domain.Session, applicationID string) error
	Reject(ctx context.Context, sess domain.Session, applicationID string) error
	SendResumes(ctx context.Context, sess domain.Session, jobID string) (string, error)
	CompanyDetails(ctx context.Context, sess domain.Session, id string) (*domain.CompanyProfile, error)
	JobseekerDetails(ctx context.Context, sess domain.Session, resumeID string) (*domain.Resume, error)
}

// FileService proxies resume documents.
type FileService interface {
	UploadResume(ctx context.Context, sess domain.Session, filename, contentType string, size int64, body io.Reader) (string, error)
	Document(ctx context.Context, sess domain.Session, filename string) (*Document, error)
}
