package backend

import (
	"context"
	"net/http"

	"github.com/careerhub/jobboard-web/internal/core/domain"
)

func (c *Client) users(ctx context.Context, token, path string) ([]domain.UserSummary, error) {
	var out []domain.UserSummary
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

func (c *Client) Jobseekers(ctx context.Context, token string) ([]domain.UserSummary, error) {
	return c.users(ctx, token, "/admin/jobseekers")
}

func (c *Client) Employers(ctx context.Context, token string) ([]domain.UserSummary, error) {
	return c.users(ctx, token, "/admin/employers")
}

func (c *Client) Ban(ctx context.Context, token, userID, reason string) error {
	_, err := c.call(ctx, request{
		method:   http.MethodPost,
		endpoint: "/admin/ban/:id",
		path:     "/admin/ban/" + escape(userID),
		token:    token,
		body:     map[string]string{"banReason": reason},
	}, nil)
	return err
}

func (c *Client) Unban(ctx context.Context, token, userID string) error {
	_, err := c.call(ctx, request{
		method:   http.MethodPost,
		endpoint: "/admin/unban/:id",
		path:     "/admin/unban/" + escape(userID),
		token:    token,
	}, nil)
	return err
}

func (c *Client) CompanyDetails(ctx context.Context, token, id string) (*domain.CompanyProfile, error) {
	var out domain.CompanyProfile
	if _, err := c.call(ctx, request{
		method:   http.MethodGet,
		endpoint: "/admin/company-details/:id",
		path:     "/admin/company-details/" + escape(id),
		token:    token,
	}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) JobseekerDetails(ctx context.Context, token, resumeID string) (*domain.Resume, error) {
	var out domain.Resume
	if _, err := c.call(ctx, request{
		method:   http.MethodGet,
		endpoint: "/admin/jobseeker-details/:resumeId",
		path:     "/admin/jobseeker-details/" + escape(resumeID),
		token:    token,
	}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
