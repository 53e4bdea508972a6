package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/careerhub/jobboard-web/internal/api/metrics"
	"github.com/careerhub/jobboard-web/internal/validation"
)

// bind decodes the request into req and runs its validate tags through the
// echo validator. Decode failures are 400; tag failures come back as a
// *validation.Error for the error handler.
func bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if c.Echo().Validator == nil {
		return nil
	}
	return c.Validate(req)
}

// countViolations records violations carried by err under the given form.
func countViolations(form string, err error) {
	if ve, ok := validation.AsError(err); ok {
		metrics.ValidationViolationsTotal.WithLabelValues(form).Add(float64(len(ve.Violations)))
	}
}
