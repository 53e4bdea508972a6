package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/careerhub/jobboard-web/internal/core/domain"
	"github.com/careerhub/jobboard-web/internal/pkg/sessionid"
)

// Context keys set by the session middleware and the guard.
const (
	ctxSessionID = "sid"
	ctxSession   = "session"
	ctxCookies   = "session_cookies"
)

// SessionCookie describes the cookie carrying the session ID.
type SessionCookie struct {
	Name   string
	TTL    time.Duration
	Secure bool
}

// Session makes sure every request carries a session ID. A missing or
// malformed cookie is replaced with a fresh ID; the session itself is only
// loaded by Guard.
func Session(cfg SessionCookie) echo.MiddlewareFunc {
	if cfg.Name == "" {
		cfg.Name = "jobboard_sid"
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(ctxCookies, &cfg)

			sid := ""
			if ck, err := c.Cookie(cfg.Name); err == nil && sessionid.Valid(ck.Value) {
				sid = ck.Value
			}
			if sid == "" {
				sid = issue(c, &cfg)
			}
			c.Set(ctxSessionID, sid)
			return next(c)
		}
	}
}

// Rotate replaces the session ID with a fresh one and returns it. Login
// calls it before writing the session so a pre-login ID never becomes
// authenticated.
func Rotate(c echo.Context) string {
	cfg, _ := c.Get(ctxCookies).(*SessionCookie)
	if cfg == nil {
		cfg = &SessionCookie{Name: "jobboard_sid"}
	}
	sid := issue(c, cfg)
	c.Set(ctxSessionID, sid)
	return sid
}

func issue(c echo.Context, cfg *SessionCookie) string {
	sid := sessionid.New()
	ck := &http.Cookie{
		Name:     cfg.Name,
		Value:    sid,
		Path:     "/",
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	if cfg.TTL > 0 {
		ck.MaxAge = int(cfg.TTL.Seconds())
	}
	c.SetCookie(ck)
	return sid
}

// SessionID returns the ID set by Session, or "".
func SessionID(c echo.Context) string {
	sid, _ := c.Get(ctxSessionID).(string)
	return sid
}

// CurrentSession returns the session the guard admitted the request with.
func CurrentSession(c echo.Context) (domain.Session, bool) {
	sess, ok := c.Get(ctxSession).(domain.Session)
	return sess, ok
}

// SetSession places sess on the context. Public pages that only need to
// know who is looking use it through LoadSession.
func SetSession(c echo.Context, sess domain.Session) {
	c.Set(ctxSession, sess)
}
