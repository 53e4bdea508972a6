package handler

import (
	"net/url"
	"sort"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/careerhub/jobboard-web/internal/api/metrics"
	"github.com/careerhub/jobboard-web/internal/core/domain"
	"github.com/careerhub/jobboard-web/internal/core/ports"
)

const searchRoute = "/jobs"

// SearchHandler serves the public vacancy search.
type SearchHandler struct {
	search ports.SearchService
}

func NewSearchHandler(search ports.SearchService) *SearchHandler {
	return &SearchHandler{search: search}
}

type searchLinks struct {
	Prev  string `json:"prev,omitempty"`
	Next  string `json:"next,omitempty"`
	Reset string `json:"reset"`
}

type searchView struct {
	Keyword    string               `json:"keyword"`
	Filters    map[string]string    `json:"filters"`
	Jobs       []domain.JobPosting  `json:"jobs"`
	Options    domain.SearchFilters `json:"options"`
	Pagination domain.Pagination    `json:"pagination"`
	Links      searchLinks          `json:"links"`
}

// queryFromRequest reads keyword, page and the allowed filters. Anything
// else in the query string is ignored.
func queryFromRequest(c echo.Context) domain.SearchQuery {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	filters := map[string]string{}
	for _, name := range []string{domain.FilterLocation, domain.FilterSkill, domain.FilterJobType} {
		if v := c.QueryParam(name); v != "" {
			filters[name] = v
		}
	}
	return domain.NewSearchQuery(c.QueryParam("keyword"), page, filters)
}

// searchURL renders q back into a link on the search page.
func searchURL(q domain.SearchQuery) string {
	v := url.Values{}
	if q.Keyword != "" {
		v.Set("keyword", q.Keyword)
	}
	names := make([]string, 0, len(q.Filters))
	for name := range q.Filters {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		v.Set(name, q.Filters[name])
	}
	if q.Page > 1 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if len(v) == 0 {
		return searchRoute
	}
	return searchRoute + "?" + v.Encode()
}

// Search lists vacancies matching the keyword and filters.
//
// @Summary      Search vacancies
// @Tags         search
// @Produce      json
// @Param        keyword   query     string  false  "Free-text keyword"
// @Param        page      query     int     false  "Page, from 1"
// @Param        location  query     string  false  "Location filter"
// @Param        skill     query     string  false  "Skill filter"
// @Param        jobType   query     string  false  "Job type filter"
// @Success      200       {object}  Page
// @Failure      502       {object}  ErrorResponse
// @Router       /jobs [get]
func (h *SearchHandler) Search(c echo.Context) error {
	q := queryFromRequest(c)
	res, err := h.search.Search(c.Request().Context(), q)
	if err != nil {
		metrics.SearchRequestsTotal.WithLabelValues("error").Inc()
		return err
	}

	view := searchView{
		Keyword:    q.Keyword,
		Filters:    q.Filters,
		Jobs:       res.Jobs,
		Options:    res.Filters,
		Pagination: res.Pagination,
		Links:      searchLinks{Reset: searchURL(q.Reset())},
	}
	if q.Page > 1 {
		view.Links.Prev = searchURL(q.WithPage(q.Page - 1))
	}
	if q.Page < res.Pagination.TotalPages {
		view.Links.Next = searchURL(q.WithPage(q.Page + 1))
	}

	if res.Empty() {
		metrics.SearchRequestsTotal.WithLabelValues("empty").Inc()
		return renderEmpty(c, "jobs", view, "No jobs found")
	}
	metrics.SearchRequestsTotal.WithLabelValues("results").Inc()
	return render(c, "jobs", view)
}
