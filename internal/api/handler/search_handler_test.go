package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/careerhub/jobboard-web/internal/core/domain"
)

type searchPage struct {
	View  string     `json:"view"`
	Empty string     `json:"empty"`
	Data  searchView `json:"data"`
}

func TestSearchHandler_PagingKeepsKeyword(t *testing.T) {
	e := newEcho()
	var got domain.SearchQuery
	stub := &stubSearchService{
		searchFn: func(_ context.Context, q domain.SearchQuery) (*domain.SearchResult, error) {
			got = q
			return &domain.SearchResult{
				Jobs:       []domain.JobPosting{{ID: "j1", Title: "Go developer"}},
				Pagination: domain.Pagination{CurrentPage: 2, TotalPages: 3},
			}, nil
		},
	}
	handler := NewSearchHandler(stub)

	c, rec := newContext(e, http.MethodGet, "/jobs?keyword=golang&page=2&location=Berlin&salary=high", "", nil)
	if err := handler.Search(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if got.Keyword != "golang" || got.Page != 2 || got.Filters["location"] != "Berlin" {
		t.Fatalf("unexpected query: %+v", got)
	}
	if _, ok := got.Filters["salary"]; ok {
		t.Fatalf("unknown filter passed through")
	}

	var page searchPage
	if err := json.Unmarshal(rec.Body.Bytes(), &page); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if page.Data.Links.Next != "/jobs?keyword=golang&location=Berlin&page=3" {
		t.Fatalf("unexpected next link %q", page.Data.Links.Next)
	}
	if page.Data.Links.Prev != "/jobs?keyword=golang&location=Berlin" {
		t.Fatalf("unexpected prev link %q", page.Data.Links.Prev)
	}
	if page.Data.Links.Reset != "/jobs" {
		t.Fatalf("unexpected reset link %q", page.Data.Links.Reset)
	}
}

func TestSearchHandler_EmptyState(t *testing.T) {
	e := newEcho()
	stub := &stubSearchService{
		searchFn: func(context.Context, domain.SearchQuery) (*domain.SearchResult, error) {
			return &domain.SearchResult{Jobs: []domain.JobPosting{}}, nil
		},
	}
	handler := NewSearchHandler(stub)

	c, rec := newContext(e, http.MethodGet, "/jobs?keyword=cobol&page=0", "", nil)
	if err := handler.Search(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("empty results are not an error, got %d", rec.Code)
	}

	var page searchPage
	_ = json.Unmarshal(rec.Body.Bytes(), &page)
	if page.Empty != "No jobs found" {
		t.Fatalf("expected empty state, got %+v", page)
	}
	if page.Data.Links.Next != "" || page.Data.Links.Prev != "" {
		t.Fatalf("no paging links expected on an empty first page: %+v", page.Data.Links)
	}
}

func TestSearchURL(t *testing.T) {
	q := domain.NewSearchQuery("go", 1, map[string]string{"skill": "sql", "jobType": "remote"})
	if got := searchURL(q); got != "/jobs?jobType=remote&keyword=go&skill=sql" {
		t.Fatalf("unexpected url %q", got)
	}
	if got := searchURL(q.WithFilter("location", "Paris")); got != "/jobs?jobType=remote&location=Paris&skill=sql" {
		t.Fatalf("filter change must clear the keyword, got %q", got)
	}
}
