package backend

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"

	"github.com/careerhub/jobboard-web/internal/core/domain"
	"github.com/careerhub/jobboard-web/internal/core/ports"
)

// PDFField is the multipart field the upload endpoint reads.
const PDFField = "pdfFile"

func (c *Client) MyResume(ctx context.Context, token string) (*domain.Resume, error) {
	var out domain.Resume
	if _, err := c.call(ctx, request{
		method:   http.MethodGet,
		endpoint: "/resume/resume/me",
		path:     "/resume/resume/me",
		token:    token,
	}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateResume(ctx context.Context, token string, r *domain.Resume, idempotencyKey string) error {
	_, err := c.call(ctx, request{
		method:         http.MethodPost,
		endpoint:       "/resume",
		path:           "/resume",
		token:          token,
		body:           r,
		idempotencyKey: idempotencyKey,
	}, nil)
	return err
}

func (c *Client) UpdateResume(ctx context.Context, token string, r *domain.Resume) error {
	_, err := c.call(ctx, request{
		method:   http.MethodPut,
		endpoint: "/resume/resume",
		path:     "/resume/resume",
		token:    token,
		body:     r,
	}, nil)
	return err
}

type uploadResult struct {
	Message string `json:"message"`
	URL     string `json:"url"`
}

// UploadResumePDF posts the file as multipart form data and returns the
// stored file's URL.
func (c *Client) UploadResumePDF(ctx context.Context, token, filename string, body io.Reader) (string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile(PDFField, filename)
	if err != nil {
		return "", fmt.Errorf("upload: %w", err)
	}
	if _, err := io.Copy(part, body); err != nil {
		return "", fmt.Errorf("upload: read file: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("upload: %w", err)
	}

	var out uploadResult
	if _, err := c.call(ctx, request{
		method:      http.MethodPost,
		endpoint:    "/resume/upload-pdf",
		path:        "/resume/upload-pdf",
		token:       token,
		rawBody:     &buf,
		contentType: w.FormDataContentType(),
		whole:       true,
	}, &out); err != nil {
		return "", err
	}
	return out.URL, nil
}

// ResumePDF streams a stored document. The caller closes Body.
func (c *Client) ResumePDF(ctx context.Context, token, filename string) (*ports.Document, error) {
	resp, err := c.send(ctx, request{
		method:   http.MethodGet,
		endpoint: "/:filename",
		path:     "/" + escape(filename),
		token:    token,
	})
	if err != nil {
		return nil, err
	}
	ct := resp.Header.Get("Content-Type")
	if ct == "" {
		ct = "application/pdf"
	}
	return &ports.Document{Body: resp.Body, ContentType: ct, Size: resp.ContentLength}, nil
}

func (c *Client) MyCompany(ctx context.Context, token string) (*domain.CompanyProfile, error) {
	var out domain.CompanyProfile
	if _, err := c.call(ctx, request{
		method:   http.MethodGet,
		endpoint: "/company/profile/me",
		path:     "/company/profile/me",
		token:    token,
	}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SaveCompany upserts the caller's company profile.
func (c *Client) SaveCompany(ctx context.Context, token string, p *domain.CompanyProfile, idempotencyKey string) error {
	_, err := c.call(ctx, request{
		method:         http.MethodPut,
		endpoint:       "/company/profile",
		path:           "/company/profile",
		token:          token,
		body:           p,
		idempotencyKey: idempotencyKey,
	}, nil)
	return err
}

func (c *Client) Companies(ctx context.Context, token string) ([]domain.CompanyProfile, error) {
	var out []domain.CompanyProfile
	if _, err := c.call(ctx, request{
		method:   http.MethodGet,
		endpoint: "/company/company/all",
		path:     "/company/company/all",
		token:    token,
	}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SearchJobs runs the public vacancy search. The answer carries data,
// filters and pagination side by side, so it is decoded whole.
func (c *Client) SearchJobs(ctx context.Context, q domain.SearchQuery) (*domain.SearchResult, error) {
	params := url.Values{}
	params.Set("keyword", q.Keyword)
	params.Set("page", strconv.Itoa(max(q.Page, 1)))
	for k, v := range q.Filters {
		if domain.AllowedFilter(k) && v != "" {
			params.Set(k, v)
		}
	}
	var out domain.SearchResult
	if _, err := c.call(ctx, request{
		method:   http.MethodGet,
		endpoint: "/job/alljob",
		path:     "/job/alljob",
		query:    params,
		whole:    true,
	}, &out); err != nil {
		return nil, err
	}
	if out.Pagination.CurrentPage == 0 {
		out.Pagination.CurrentPage = max(q.Page, 1)
	}
	return &out, nil
}

func (c *Client) Job(ctx context.Context, token, id string) (*domain.JobPosting, error) {
	var out domain.JobPosting
	if _, err := c.call(ctx, request{
		method:   http.MethodGet,
		endpoint: "/job/:id",
		path:     "/job/" + escape(id),
		token:    token,
	}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateJob(ctx context.Context, token string, j *domain.JobPosting, idempotencyKey string) error {
	_, err := c.call(ctx, request{
		method:         http.MethodPost,
		endpoint:       "/job/job",
		path:           "/job/job",
		token:          token,
		body:           j,
		idempotencyKey: idempotencyKey,
	}, nil)
	return err
}

func (c *Client) UpdateJob(ctx context.Context, token, id string, j *domain.JobPosting) error {
	_, err := c.call(ctx, request{
		method:   http.MethodPut,
		endpoint: "/job/job/:id",
		path:     "/job/job/" + escape(id),
		token:    token,
		body:     j,
	}, nil)
	return err
}

func (c *Client) DeleteJob(ctx context.Context, token, id string) error {
	_, err := c.call(ctx, request{
		method:   http.MethodDelete,
		endpoint: "/job/job/:id",
		path:     "/job/job/" + escape(id),
		token:    token,
	}, nil)
	return err
}

func (c *Client) jobs(ctx context.Context, token, path string) ([]domain.JobPosting, error) {
	var out []domain.JobPosting
	if _, err := c.call(ctx, request{
		method:   http.MethodGet,
		endpoint: path,
		path:     path,
		token:    token,
	}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MyJobs lists the employer's own postings.
func (c *Client) MyJobs(ctx context.Context, token string) ([]domain.JobPosting, error) {
	return c.jobs(ctx, token, "/job/job/user")
}

func (c *Client) MatchingJobs(ctx context.Context, token string) ([]domain.JobPosting, error) {
	return c.jobs(ctx, token, "/job/matching-job/user")
}

// PendingJobs lists every posting for admin approval.
func (c *Client) PendingJobs(ctx context.Context, token string) ([]domain.JobPosting, error) {
	return c.jobs(ctx, token, "/job/job")
}

func (c *Client) JobsWithApplicants(ctx context.Context, token string) ([]domain.JobPosting, error) {
	return c.jobs(ctx, token, "/job/job-applicant")
}

func (c *Client) EmployerTotals(ctx context.Context, token string) (*domain.EmployerTotals, error) {
	var out domain.EmployerTotals
	if _, err := c.call(ctx, request{
		method:   http.MethodGet,
		endpoint: "/job/total-job",
		path:     "/job/total-job",
		token:    token,
	}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SetJobStatus answers with {"job": ...} rather than the usual envelope.
func (c *Client) SetJobStatus(ctx context.Context, token, id string, status domain.JobStatus) (*domain.JobPosting, error) {
	var out struct {
		Job *domain.JobPosting `json:"job"`
	}
	if _, err := c.call(ctx, request{
		method:   http.MethodPut,
		endpoint: "/job/status/:id",
		path:     "/job/status/" + escape(id),
		token:    token,
		body:     map[string]domain.JobStatus{"status": status},
		whole:    true,
	}, &out); err != nil {
		return nil, err
	}
	if out.Job == nil {
		return &domain.JobPosting{ID: id, Status: status}, nil
	}
	return out.Job, nil
}
