package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/careerhub/jobboard-web/internal/api/middleware"
	"github.com/careerhub/jobboard-web/internal/core/domain"
)

const ctxFormKind = "form_kind"

// ctxSession returns the session the guard admitted. Its absence means the
// route was registered outside a guarded group, so it fails fast with 401.
func ctxSession(c echo.Context) (string, domain.Session, error) {
	sess, ok := middleware.CurrentSession(c)
	if !ok || !sess.Authenticated() {
		return "", domain.Session{}, echo.NewHTTPError(http.StatusUnauthorized, "missing session")
	}
	return middleware.SessionID(c), sess, nil
}

// FixedForm pins the form kind of a route that does not carry it in the path,
// e.g. /dashboard/myapplication.
func FixedForm(kind string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(ctxFormKind, kind)
			return next(c)
		}
	}
}

// AllowForms restricts :kind to the forms a route group may edit.
func AllowForms(kinds ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(kinds))
	for _, k := range kinds {
		allowed[k] = struct{}{}
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if kind := c.Param("kind"); kind != "" {
				if _, ok := allowed[kind]; !ok {
					return domain.ErrUnknownForm
				}
			}
			return next(c)
		}
	}
}

func formKind(c echo.Context) string {
	if kind, ok := c.Get(ctxFormKind).(string); ok {
		return kind
	}
	return c.Param("kind")
}
