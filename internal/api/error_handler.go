package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/careerhub/jobboard-web/internal/api/handler"
	"github.com/careerhub/jobboard-web/internal/core/domain"
	"github.com/careerhub/jobboard-web/internal/formstate"
	"github.com/careerhub/jobboard-web/internal/infrastructure/backend"
	"github.com/careerhub/jobboard-web/internal/validation"
)

type errorResponse = handler.ErrorResponse

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps domain, validation and upstream errors to HTTP status codes.
//   - Renders violations as one notification each.
//   - Logs unexpected errors internally without leaking details to the client.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, resp := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, resp)
	}
}

func notice(msg string) []handler.Notification {
	return []handler.Notification{{Kind: handler.NoticeError, Message: msg}}
}

func fail(code int, msg string) (int, errorResponse) {
	return code, errorResponse{Error: msg, Notifications: notice(msg)}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorResponse) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorResponse{Error: fmt.Sprintf("%v", he.Message)}
	}

	if ve, ok := validation.AsError(err); ok {
		notes := make([]handler.Notification, len(ve.Violations))
		for i, v := range ve.Violations {
			notes[i] = handler.Notification{Kind: handler.NoticeError, Message: v.Message}
		}
		return http.StatusUnprocessableEntity, errorResponse{Error: "validation failed", Notifications: notes}
	}

	switch {
	case errors.Is(err, domain.ErrEmailNotVerified):
		return fail(http.StatusForbidden, "Please verify your email before logging in.")
	case errors.Is(err, domain.ErrInvalidCredentials):
		return fail(http.StatusUnauthorized, "Invalid email or password.")
	case errors.Is(err, domain.ErrUnauthenticated):
		return fail(http.StatusUnauthorized, "Your session has expired. Please log in again.")
	case errors.Is(err, domain.ErrForbidden):
		return fail(http.StatusForbidden, "access forbidden")
	case errors.Is(err, domain.ErrSubmitInFlight):
		return fail(http.StatusConflict, "This form is already being submitted.")
	case errors.Is(err, domain.ErrDraftNotFound):
		return fail(http.StatusNotFound, "The form was not open. Reload it and try again.")
	case errors.Is(err, domain.ErrUnknownForm):
		return fail(http.StatusNotFound, "unknown form")
	case errors.Is(err, domain.ErrInvalidRole):
		return fail(http.StatusBadRequest, "invalid role")
	case errors.Is(err, domain.ErrInvalidUpload):
		return fail(http.StatusBadRequest, err.Error())
	case errors.Is(err, formstate.ErrInvalidPath),
		errors.Is(err, formstate.ErrUnknownField),
		errors.Is(err, formstate.ErrNotScalar),
		errors.Is(err, formstate.ErrNotList),
		errors.Is(err, formstate.ErrMissingIndex):
		return fail(http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		log.Warn().Err(err).Str("path", c.Path()).Msg("backend unavailable")
		return fail(http.StatusBadGateway, "The service is temporarily unavailable. Please try again.")
	case errors.Is(err, domain.ErrNotFound):
		return fail(http.StatusNotFound, "not found")
	}

	// Remaining 4xx from the backend carry a message meant for the user.
	if apiErr, ok := backend.IsAPIError(err); ok && apiErr.Status >= 400 && apiErr.Status < 500 {
		msg := apiErr.Message
		if msg == "" {
			msg = http.StatusText(apiErr.Status)
		}
		return fail(apiErr.Status, msg)
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, errorResponse{Error: "internal server error"}
}
