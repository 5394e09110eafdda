package domain

import (
	"errors"
	"fmt"
	"time"
)

// Domain errors represent run-terminating conditions and invalid input.
var (
	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidKeywords indicates the keyword table failed validation.
	ErrInvalidKeywords = errors.New("invalid keyword table")

	// ErrUnsupportedBackend indicates an unknown repository system.
	ErrUnsupportedBackend = errors.New("unsupported backend")

	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// Run Errors.

	// ErrRateLimited indicates the upstream service throttled the run.
	ErrRateLimited = errors.New("rate limited")

	// ErrTransport indicates a page request could not be completed.
	ErrTransport = errors.New("transport failure")

	// ErrMalformedResponse indicates a page body was not a commit list.
	ErrMalformedResponse = errors.New("malformed response")

	// ErrInterrupted indicates the run was cancelled from outside.
	// Results gathered before the interruption are kept.
	ErrInterrupted = errors.New("interrupted")
)

// FailureKind is a bounded classification of why a run failed.
type FailureKind string

// Failure kinds. FailureNone marks a run that finished.
const (
	FailureNone        FailureKind = ""
	FailureRateLimited FailureKind = "rate_limited"
	FailureTransport   FailureKind = "transport"
	FailureMalformed   FailureKind = "malformed"
	FailureInterrupted FailureKind = "interrupted"
	FailureOther       FailureKind = "other"
)

// ClassifyFailure maps a run error onto a FailureKind.
func ClassifyFailure(err error) FailureKind {
	switch {
	case err == nil:
		return FailureNone
	case errors.Is(err, ErrRateLimited):
		return FailureRateLimited
	case errors.Is(err, ErrInterrupted):
		return FailureInterrupted
	case errors.Is(err, ErrMalformedResponse):
		return FailureMalformed
	case errors.Is(err, ErrTransport):
		return FailureTransport
	}
	return FailureOther
}

// RateLimitError carries the upstream throttling message verbatim.
type RateLimitError struct {
	Message string
	ResetAt time.Time
}

func (e *RateLimitError) Error() string {
	if e.ResetAt.IsZero() {
		return fmt.Sprintf("rate limited: %s", e.Message)
	}
	return fmt.Sprintf("rate limited: %s (resets at %s)", e.Message, e.ResetAt.Format(time.RFC3339))
}

// Unwrap lets errors.Is match ErrRateLimited.
func (e *RateLimitError) Unwrap() error {
	return ErrRateLimited
}
