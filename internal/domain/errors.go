package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
type HTTPError interface {
	error
	StatusCode() int
}

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("already exists")
	ErrValidation        = errors.New("validation failed")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrForbidden         = errors.New("forbidden")
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrPersistence       = errors.New("persistence failure")
	ErrUpstream          = errors.New("upstream failure")
)

// ErrInvalidArgument is the validation sentinel under the name used by the
// partitioning pipeline (non-positive part counts and the like).
var ErrInvalidArgument = ErrValidation

// Domain error types implementing HTTPError interface
type (
	// NotFoundError indicates a resource was not found
	NotFoundError struct {
		Resource string
		ID       any
	}

	// ValidationError indicates invalid input
	ValidationError struct {
		Message string
	}

	// UnsupportedFormatError indicates a file extension outside the known format set
	UnsupportedFormatError struct {
		Extension string
	}

	// UpstreamError wraps a failed call to another service
	UpstreamError struct {
		Service string
		Cause   error
	}
)

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %v not found", e.Resource, e.ID)
}

func (e *ValidationError) Error() string { return e.Message }

func (e *UnsupportedFormatError) Error() string {
	if e.Extension == "" {
		return "unsupported format: file has no extension"
	}
	return fmt.Sprintf("unsupported format: %s", e.Extension)
}

func (e *UpstreamError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("%s call failed", e.Service)
	}
	return fmt.Sprintf("%s call failed: %v", e.Service, e.Cause)
}

// StatusCode implementations (HTTPError interface)
func (e *NotFoundError) StatusCode() int          { return http.StatusNotFound }
func (e *ValidationError) StatusCode() int        { return http.StatusBadRequest }
func (e *UnsupportedFormatError) StatusCode() int { return http.StatusUnsupportedMediaType }
func (e *UpstreamError) StatusCode() int          { return http.StatusBadGateway }

// Is allows errors.Is() to match the typed errors against their sentinels
func (e *NotFoundError) Is(target error) bool          { return target == ErrNotFound }
func (e *ValidationError) Is(target error) bool        { return target == ErrValidation }
func (e *UnsupportedFormatError) Is(target error) bool { return target == ErrUnsupportedFormat }
func (e *UpstreamError) Is(target error) bool          { return target == ErrUpstream }

// Unwrap exposes the cause of an upstream failure
func (e *UpstreamError) Unwrap() error { return e.Cause }

// InnerError returns the innermost wrapped error, used when logging both
// the outer and inner failure detail of an operation.
func InnerError(err error) error {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err
		}
		err = next
	}
}
