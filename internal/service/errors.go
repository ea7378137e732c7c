package service

import (
	"errors"
	"fmt"
)

// Service-level errors mapped to HTTP statuses by the handlers.
var (
	// ErrEmailRegistered is returned when signing up with an email already on file
	ErrEmailRegistered = errors.New("email already registered")

	// ErrEmailNotFound is returned when logging in with an unknown email
	ErrEmailNotFound = errors.New("email not found")

	// ErrIncorrectPassword is returned when the submitted password does not match
	ErrIncorrectPassword = errors.New("incorrect password")

	// ErrForbidden is returned when a resource belongs to another user
	ErrForbidden = errors.New("not authorized to access this resource")

	// ErrOAuthNotConfigured is returned when the Google client id is unset
	ErrOAuthNotConfigured = errors.New("google oauth client id not configured")

	// ErrMissingEmail is returned when the provider profile carries no email claim
	ErrMissingEmail = errors.New("email not provided by google")
)

// UpstreamError reports a failed call to the identity provider. The provider's
// response body is preserved verbatim for diagnostics. The failed exchange is
// never retried: authorization codes are single-use, so replaying the same
// request would deterministically fail again.
type UpstreamError struct {
	Op     string
	Detail string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("failed to %s: %s", e.Op, e.Detail)
}
