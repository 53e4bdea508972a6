package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/careerhub/jobboard-web/internal/core/ports"
)

const adminBlogsRoute = "/admin/all-blog"

// BlogHandler serves the public blog pages and the admin blog list.
type BlogHandler struct {
	blogs ports.BlogService
}

func NewBlogHandler(blogs ports.BlogService) *BlogHandler {
	return &BlogHandler{blogs: blogs}
}

// List renders blog cards with plain-text excerpts.
//
// @Summary      Blogs
// @Tags         blogs
// @Produce      json
// @Success      200  {object}  Page
// @Router       /blogs [get]
// @Router       /admin/all-blog [get]
func (h *BlogHandler) List(c echo.Context) error {
	cards, err := h.blogs.List(c.Request().Context())
	if err != nil {
		return err
	}
	if len(cards) == 0 {
		return renderEmpty(c, "blogs", cards, "No blogs yet")
	}
	return render(c, "blogs", cards)
}

// Get renders one blog.
//
// @Summary      Read a blog
// @Tags         blogs
// @Produce      json
// @Param        id   path      string  true  "Blog ID"
// @Success      200  {object}  Page
// @Failure      404  {object}  ErrorResponse
// @Router       /blogs/{id} [get]
func (h *BlogHandler) Get(c echo.Context) error {
	blog, err := h.blogs.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return render(c, "blog", blog)
}

// Delete removes a blog.
//
// @Summary      Delete a blog
// @Tags         blogs
// @Param        id   path  string  true  "Blog ID"
// @Success      303
// @Router       /admin/blogs/{id}/delete [post]
func (h *BlogHandler) Delete(c echo.Context) error {
	_, sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	if err := h.blogs.Delete(c.Request().Context(), sess, c.Param("id")); err != nil {
		return err
	}
	n := success("Blog deleted successfully")
	return seeOther(c, adminBlogsRoute, &n)
}
