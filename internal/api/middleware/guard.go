package middleware

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/careerhub/jobboard-web/internal/api/metrics"
	"github.com/careerhub/jobboard-web/internal/core/domain"
	"github.com/careerhub/jobboard-web/internal/core/ports"
)

// Redirect targets of the guard.
const (
	LoginRoute        = "/login"
	UnauthorizedRoute = "/unauthorized"
)

// Guard decision labels.
const (
	decisionAllow        = "allow"
	decisionLogin        = "login"
	decisionUnauthorized = "unauthorized"
	decisionExpired      = "expired"
	decisionError        = "error"
)

// GuardOptions tunes a Guard. The zero value is usable.
type GuardOptions struct {
	Log zerolog.Logger
	// Now is the clock used for token expiry. Defaults to time.Now.
	Now func() time.Time
}

// Guard admits a request into a route group only when the persisted session
// has a token and the required role. The session is re-read on every
// request.
//
//   - no token: 302 to /login
//   - token past its exp claim: session cleared, 302 to /login
//   - role differs or is absent: 302 to /unauthorized
//
// The token check always runs first.
func Guard(store ports.SessionStore, role domain.Role, opts GuardOptions) echo.MiddlewareFunc {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	log := opts.Log
	required := string(role)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			decide := func(result, to string) error {
				metrics.GuardDecisionsTotal.WithLabelValues(required, result).Inc()
				log.Debug().
					Str("path", c.Request().URL.Path).
					Str("required_role", required).
					Str("result", result).
					Msg("guard redirect")
				return c.Redirect(http.StatusFound, to)
			}

			sid := SessionID(c)
			if sid == "" {
				return decide(decisionLogin, LoginRoute)
			}

			ctx := c.Request().Context()
			sess, err := store.Get(ctx, sid)
			if err != nil {
				log.Error().Err(err).Str("path", c.Request().URL.Path).Msg("guard: session read failed")
				return decide(decisionError, LoginRoute)
			}

			if !sess.Authenticated() {
				return decide(decisionLogin, LoginRoute)
			}
			if TokenExpired(sess.Token, now()) {
				if err := store.Clear(ctx, sid); err != nil {
					log.Warn().Err(err).Msg("guard: clearing expired session failed")
				}
				return decide(decisionExpired, LoginRoute)
			}
			if sess.Role != role {
				return decide(decisionUnauthorized, UnauthorizedRoute)
			}

			metrics.GuardDecisionsTotal.WithLabelValues(required, decisionAllow).Inc()
			SetSession(c, sess)
			return next(c)
		}
	}
}

// TokenExpired reports whether token is a JWT whose exp claim is not after
// now. The signature is not checked: the backend owns verification. Opaque
// tokens and tokens without exp never expire here.
func TokenExpired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return !exp.After(now)
}

// LoadSession reads the session for public pages without enforcing
// anything. Failures leave the request anonymous.
func LoadSession(store ports.SessionStore, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if sid := SessionID(c); sid != "" {
				sess, err := store.Get(c.Request().Context(), sid)
				if err != nil {
					log.Warn().Err(err).Msg("session read failed")
				} else if sess.Authenticated() {
					SetSession(c, sess)
				}
			}
			return next(c)
		}
	}
}
