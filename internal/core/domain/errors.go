package domain

import "errors"

var (
	ErrInvalidRole         = errors.New("invalid role")
	ErrUnauthenticated     = errors.New("not authenticated")
	ErrForbidden           = errors.New("access forbidden")
	ErrNotFound            = errors.New("not found")
	ErrEmailNotVerified    = errors.New("email not verified")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrUpstreamUnavailable = errors.New("backend unavailable")
	ErrDraftNotFound       = errors.New("no draft open for this form")
	ErrSubmitInFlight      = errors.New("a submission for this form is already in progress")
	ErrUnknownForm         = errors.New("unknown form")
	ErrInvalidUpload       = errors.New("invalid upload")
)
