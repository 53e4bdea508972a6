package ports

import (
	"context"
	"io"

	"github.com/careerhub/jobboard-web/internal/core/domain"
)

// Document is an uploaded file streamed back from the backend.
type Document struct {
	Body        io.ReadCloser
	ContentType string
	Size        int64
}

// RegisterInput is the registration form.
type RegisterInput struct {
	Role     domain.Role `json:"role"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
}

// UserAPI covers the account endpoints.
type UserAPI interface {
	Login(ctx context.Context, email, password string) (*domain.LoginResult, error)
	Register(ctx context.Context, in RegisterInput) error
	VerifyEmail(ctx context.Context, email, code string) error
	SendResetCode(ctx context.Context, email string) (string, error)
	VerifyResetCode(ctx context.Context, email, code string) (string, error)
	ResetPassword(ctx context.Context, email, newPassword string) (string, error)
	ChangePassword(ctx context.Context, token, current, next string) (string, error)
	Logout(ctx context.Context, token string) error
	DeleteAccount(ctx context.Context, token string, role domain.Role) (string, error)
}

// ResumeAPI covers resume records and resume documents.
type ResumeAPI interface {
	MyResume(ctx context.Context, token string) (*domain.Resume, error)
	CreateResume(ctx context.Context, token string, r *domain.Resume, idempotencyKey string) error
	UpdateResume(ctx context.Context, token string, r *domain.Resume) error
	UploadResumePDF(ctx context.Context, token, filename string, body io.Reader) (string, error)
	ResumePDF(ctx context.Context, token, filename string) (*Document, error)
}

// CompanyAPI covers company profiles.
type CompanyAPI interface {
	MyCompany(ctx context.Context, token string) (*domain.CompanyProfile, error)
	SaveCompany(ctx context.Context, token string, p *domain.CompanyProfile, idempotencyKey string) error
	Companies(ctx context.Context, token string) ([]domain.CompanyProfile, error)
}

// JobAPI covers job postings and the public search.
type JobAPI interface {
	SearchJobs(ctx context.Context, q domain.SearchQuery) (*domain.SearchResult, error)
	Job(ctx context.Context, token, id string) (*domain.JobPosting, error)
	CreateJob(ctx context.Context, token string, j *domain.JobPosting, idempotencyKey string) error
	UpdateJob(ctx context.Context, token, id string, j *domain.JobPosting) error
	DeleteJob(ctx context.Context, token, id string) error
	MyJobs(ctx context.Context, token string) ([]domain.JobPosting, error)
	EmployerTotals(ctx context.Context, token string) (*domain.EmployerTotals, error)
	MatchingJobs(ctx context.Context, token string) ([]domain.JobPosting, error)
	PendingJobs(ctx context.Context, token string) ([]domain.JobPosting, error)
	SetJobStatus(ctx context.Context, token, id string, status domain.JobStatus) (*domain.JobPosting, error)
	JobsWithApplicants(ctx context.Context, token string) ([]domain.JobPosting, error)
}

// ApplicationAPI covers applications and interviews.
type ApplicationAPI interface {
	Apply(ctx context.Context, token, jobID, idempotencyKey string) (string, error)
	Withdraw(ctx context.Context, token, jobID string) error
	AppliedJobs(ctx context.Context, token string) ([]domain.Application, error)
	ApplicationTotals(ctx context.Context, token string) (*domain.ApplicationTotals, error)
	Applicants(ctx context.Context, token, jobID string) ([]domain.Application, error)
	JobApplications(ctx context.Context, token, jobID string) ([]domain.Application, error)
	ScheduleInterview(ctx context.Context, token, applicationID string, iv domain.Interview) error
	Interview(ctx context.Context, token, applicationID string) (*domain.Interview, error)
	Accept(ctx context.Context, token, applicationID string) error
	Reject(ctx context.Context, token, applicationID string) error
	SendResumes(ctx context.Context, token, jobID string) (string, error)
}

// BlogAPI covers blog posts.
type BlogAPI interface {
	Blogs(ctx context.Context) ([]domain.Blog, error)
	Blog(ctx context.Context, id string) (*domain.Blog, error)
	CreateBlog(ctx context.Context, token string, b *domain.Blog, idempotencyKey string) error
	UpdateBlog(ctx context.Context, token, id string, b *domain.Blog) error
	DeleteBlog(ctx context.Context, token, id string) error
}

// AdminAPI covers account moderation.
type AdminAPI interface {
	Jobseekers(ctx context.Context, token string) ([]domain.UserSummary, error)
	Employers(ctx context.Context, token string) ([]domain.UserSummary, error)
	Ban(ctx context.Context, token, userID, reason string) error
	Unban(ctx context.Context, token, userID string) error
	CompanyDetails(ctx context.Context, token, id string) (*domain.CompanyProfile, error)
	JobseekerDetails(ctx context.Context, token, resumeID string) (*domain.Resume, error)
}

// Backend is the whole external REST API.
type Backend interface {
	UserAPI
	ResumeAPI
	CompanyAPI
	JobAPI
	ApplicationAPI
	BlogAPI
	AdminAPI
	Pinger
}

// RecordAPI is the part of the backend the form pages read and write.
type RecordAPI interface {
	ResumeAPI
	CompanyAPI
	JobAPI
	BlogAPI
}
