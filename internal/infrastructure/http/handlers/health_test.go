package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/careerhub/jobboard-web/internal/core/ports"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func readiness(t *testing.T, deps map[string]ports.Pinger) (int, readinessResponse) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := NewHealthDependenciesHandler(deps).Readiness(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var body readinessResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	return rec.Code, body
}

func TestReadiness_AllHealthy(t *testing.T) {
	ok := pingFunc(func(context.Context) error { return nil })
	code, body := readiness(t, map[string]ports.Pinger{"redis": ok, "backend": ok})

	if code != http.StatusOK || body.Status != "ok" {
		t.Fatalf("expected 200/ok, got %d/%s", code, body.Status)
	}
	if len(body.Dependencies) != 2 {
		t.Fatalf("expected 2 dependencies, got %v", body.Dependencies)
	}
}

func TestReadiness_Degraded(t *testing.T) {
	ok := pingFunc(func(context.Context) error { return nil })
	down := pingFunc(func(context.Context) error { return errors.New("connection refused") })
	code, body := readiness(t, map[string]ports.Pinger{"mongodb": down, "backend": ok})

	if code != http.StatusServiceUnavailable || body.Status != "degraded" {
		t.Fatalf("expected 503/degraded, got %d/%s", code, body.Status)
	}
	if body.Dependencies["mongodb"].Error != "connection refused" {
		t.Fatalf("expected mongodb error to be reported, got %+v", body.Dependencies["mongodb"])
	}
	if body.Dependencies["backend"].Status != "ok" {
		t.Fatalf("expected backend ok, got %+v", body.Dependencies["backend"])
	}
}

func TestLiveness(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), rec)

	if err := NewHealthHandler().Liveness(c); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
