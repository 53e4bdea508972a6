package backend

import (
	"context"
	"net/http"

	"github.com/careerhub/jobboard-web/internal/core/domain"
)

// Blogs lists published posts. It needs no token.
func (c *Client) Blogs(ctx context.Context) ([]domain.Blog, error) {
	var out []domain.Blog
	if _, err := c.call(ctx, request{
		method:   http.MethodGet,
		endpoint: "/blog/blogs",
		path:     "/blog/blogs",
	}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Blog(ctx context.Context, id string) (*domain.Blog, error) {
	var out domain.Blog
	if _, err := c.call(ctx, request{
		method:   http.MethodGet,
		endpoint: "/blog/:id",
		path:     "/blog/" + escape(id),
	}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateBlog(ctx context.Context, token string, b *domain.Blog, idempotencyKey string) error {
	_, err := c.call(ctx, request{
		method:         http.MethodPost,
		endpoint:       "/blog/blogs",
		path:           "/blog/blogs",
		token:          token,
		body:           b,
		idempotencyKey: idempotencyKey,
	}, nil)
	return err
}

func (c *Client) UpdateBlog(ctx context.Context, token, id string, b *domain.Blog) error {
	_, err := c.call(ctx, request{
		method:   http.MethodPut,
		endpoint: "/blog/blogs/:id",
		path:     "/blog/blogs/" + escape(id),
		token:    token,
		body:     b,
	}, nil)
	return err
}

func (c *Client) DeleteBlog(ctx context.Context, token, id string) error {
	_, err := c.call(ctx, request{
		method:   http.MethodDelete,
		endpoint: "/blog/blogs/:id",
		path:     "/blog/blogs/" + escape(id),
		token:    token,
	}, nil)
	return err
}
