package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/careerhub/jobboard-web/internal/pkg/sessionid"
)

func TestSession_IssuesCookie(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var sid string
	h := Session(SessionCookie{Name: "sid", TTL: time.Hour, Secure: true})(func(c echo.Context) error {
		sid = SessionID(c)
		return c.NoContent(http.StatusOK)
	})
	if err := h(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if !sessionid.Valid(sid) {
		t.Fatalf("expected a fresh session id, got %q", sid)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected one cookie, got %d", len(cookies))
	}
	ck := cookies[0]
	if ck.Value != sid || !ck.HttpOnly || !ck.Secure || ck.MaxAge != 3600 {
		t.Fatalf("unexpected cookie: %+v", ck)
	}
}

func TestSession_KeepsValidCookie(t *testing.T) {
	e := echo.New()
	existing := sessionid.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: existing})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := Session(SessionCookie{Name: "sid"})(func(c echo.Context) error {
		if SessionID(c) != existing {
			t.Fatalf("session id replaced")
		}
		return nil
	})
	_ = h(c)

	if len(rec.Result().Cookies()) != 0 {
		t.Fatalf("no cookie should be issued for a valid id")
	}
}

func TestSession_ReplacesForgedCookie(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: "admin"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := Session(SessionCookie{Name: "sid"})(func(c echo.Context) error {
		if SessionID(c) == "admin" {
			t.Fatalf("malformed id accepted")
		}
		return nil
	})
	_ = h(c)
}

func TestRotate(t *testing.T) {
	e := echo.New()
	old := sessionid.New()
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: old})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := Session(SessionCookie{Name: "sid"})(func(c echo.Context) error {
		sid := Rotate(c)
		if sid == old || SessionID(c) != sid {
			t.Fatalf("rotate did not replace the id")
		}
		return nil
	})
	_ = h(c)

	if cookies := rec.Result().Cookies(); len(cookies) != 1 || cookies[0].Name != "sid" {
		t.Fatalf("expected rotated cookie, got %+v", cookies)
	}
}
