package backend

import (
	"context"
	"errors"
	"net/http"

	"github.com/careerhub/jobboard-web/internal/core/domain"
)

// Apply submits the caller's resume for a job.
func (c *Client) Apply(ctx context.Context, token, jobID, idempotencyKey string) (string, error) {
	return c.call(ctx, request{
		method:         http.MethodPost,
		endpoint:       "/apply/applied-jobs/:jobId",
		path:           "/apply/applied-jobs/" + escape(jobID),
		token:          token,
		idempotencyKey: idempotencyKey,
	}, nil)
}

func (c *Client) Withdraw(ctx context.Context, token, jobID string) error {
	_, err := c.call(ctx, request{
		method:   http.MethodDelete,
		endpoint: "/apply/applied-jobs/:id",
		path:     "/apply/applied-jobs/" + escape(jobID),
		token:    token,
	}, nil)
	return err
}

func (c *Client) applications(ctx context.Context, token, endpoint, path string) ([]domain.Application, error) {
	var out []domain.Application
	if _, err := c.call(ctx, request{
		method:   http.MethodGet,
		endpoint: endpoint,
		path:     path,
		token:    token,
	}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) AppliedJobs(ctx context.Context, token string) ([]domain.Application, error) {
	return c.applications(ctx, token, "/apply/all-applied", "/apply/all-applied")
}

// Applicants lists the applications to one of the employer's jobs.
func (c *Client) Applicants(ctx context.Context, token, jobID string) ([]domain.Application, error) {
	return c.applications(ctx, token, "/apply/get-application/:jobId", "/apply/get-application/"+escape(jobID))
}

// JobApplications is the admin view of a job's applications.
func (c *Client) JobApplications(ctx context.Context, token, jobID string) ([]domain.Application, error) {
	return c.applications(ctx, token, "/apply/get-applied-job/:jobId", "/apply/get-applied-job/"+escape(jobID))
}

// ApplicationTotals answers without an envelope.
func (c *Client) ApplicationTotals(ctx context.Context, token string) (*domain.ApplicationTotals, error) {
	var out domain.ApplicationTotals
	if _, err := c.call(ctx, request{
		method:   http.MethodGet,
		endpoint: "/apply/total-applied",
		path:     "/apply/total-applied",
		token:    token,
	}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ScheduleInterview(ctx context.Context, token, applicationID string, iv domain.Interview) error {
	_, err := c.call(ctx, request{
		method:   http.MethodPost,
		endpoint: "/apply/set-interview/:applicantId",
		path:     "/apply/set-interview/" + escape(applicationID),
		token:    token,
		body:     iv,
	}, nil)
	return err
}

// Interview returns the schedule for an application, or nil when none has
// been set.
func (c *Client) Interview(ctx context.Context, token, applicationID string) (*domain.Interview, error) {
	var out *domain.Interview
	_, err := c.call(ctx, request{
		method:   http.MethodGet,
		endpoint: "/apply/get-interview/:applicantId",
		path:     "/apply/get-interview/" + escape(applicationID),
		token:    token,
	}, &out)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if out != nil && !out.Scheduled() {
		return nil, nil
	}
	return out, nil
}

func (c *Client) Accept(ctx context.Context, token, applicationID string) error {
	_, err := c.call(ctx, request{
		method:   http.MethodPut,
		endpoint: "/apply/accept-applied-job/:applicantId",
		path:     "/apply/accept-applied-job/" + escape(applicationID),
		token:    token,
	}, nil)
	return err
}

func (c *Client) Reject(ctx context.Context, token, applicationID string) error {
	_, err := c.call(ctx, request{
		method:   http.MethodPut,
		endpoint: "/apply/reject-applied-job/:applicantId",
		path:     "/apply/reject-applied-job/" + escape(applicationID),
		token:    token,
	}, nil)
	return err
}

// SendResumes forwards the accepted resumes of a job to its employer.
func (c *Client) SendResumes(ctx context.Context, token, jobID string) (string, error) {
	return c.call(ctx, request{
		method:   http.MethodPost,
		endpoint: "/apply/send-resumes/:jobId",
		path:     "/apply/send-resumes/" + escape(jobID),
		token:    token,
	}, nil)
}
