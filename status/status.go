package status

import (
	"context"
	"errors"
	"fmt"
)

// Status is the unified terminal status type. A Status with CodeOK is
// not an error condition; readers return it to signal end of data.
type Status struct {
	// Code is a machine-readable status code.
	Code Code `json:"code"`
	// Message is a human-readable description.
	Message string `json:"message"`
	// Retryable indicates if the operation can be retried.
	Retryable bool `json:"retryable"`
	// Details contains additional context for the status.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error, if any.
	Cause error `json:"-"`
}

// Error returns the string representation of the status.
func (s *Status) Error() string {
	if s.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", s.Code, s.Message, s.Cause)
	}
	return fmt.Sprintf("%s: %s", s.Code, s.Message)
}

// Unwrap returns the underlying cause of the status.
func (s *Status) Unwrap() error { return s.Cause }

// OK reports whether the status carries no error.
func (s *Status) OK() bool { return s == nil || s.Code == CodeOK }

// WithCause sets the underlying cause and returns the receiver.
func (s *Status) WithCause(cause error) *Status {
	s.Cause = cause
	return s
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (s *Status) WithDetail(key string, value any) *Status {
	if s.Details == nil {
		s.Details = make(map[string]any)
	}
	s.Details[key] = value
	return s
}

// New creates a Status with automatic retryable detection.
func New(code Code, message string) *Status {
	return &Status{
		Code:      code,
		Message:   message,
		Retryable: IsRetryableCode(code),
	}
}

// Newf creates a Status with a formatted message.
func Newf(code Code, format string, args ...any) *Status {
	return New(code, fmt.Sprintf(format, args...))
}

// --- Common Status Constructors ---

// OK returns the success status.
func OK() *Status {
	return &Status{Code: CodeOK, Message: "ok"}
}

// Unavailable creates a Status for a temporarily unavailable service.
func Unavailable(service string) *Status {
	return &Status{
		Code: CodeUnavailable, Message: fmt.Sprintf("The %s is temporarily unavailable. Please try again.", service),
		Retryable: true,
		Details:   map[string]any{"service": service},
	}
}

// DeadlineExceeded creates a Status for an operation that timed out.
func DeadlineExceeded(operation string) *Status {
	return &Status{
		Code: CodeDeadlineExceeded, Message: "The operation took too long.",
		Retryable: true,
		Details:   map[string]any{"operation": operation},
	}
}

// ResourceExhausted creates a Status for a rate-limited or quota-bound call.
func ResourceExhausted(resource string) *Status {
	return &Status{
		Code: CodeResourceExhausted, Message: fmt.Sprintf("Quota exhausted for %s. Please wait and retry.", resource),
		Retryable: true,
		Details:   map[string]any{"resource": resource},
	}
}

// Cancelled creates a Status for a caller-cancelled operation.
func Cancelled(operation string) *Status {
	return &Status{
		Code: CodeCancelled, Message: "The operation was cancelled.",
		Retryable: false,
		Details:   map[string]any{"operation": operation},
	}
}

// NotFound creates a Status for a missing entity.
func NotFound(resource, id string) *Status {
	details := map[string]any{"resource": resource}
	if id != "" {
		details["id"] = id
	}
	return &Status{
		Code: CodeNotFound, Message: fmt.Sprintf("The requested %s was not found.", resource),
		Retryable: false, Details: details,
	}
}

// InvalidArgument creates a Status for a bad caller argument.
func InvalidArgument(field, reason string) *Status {
	details := make(map[string]any)
	if field != "" {
		details["field"] = field
	}
	return &Status{
		Code: CodeInvalidArgument, Message: fmt.Sprintf("Invalid argument: %s", reason),
		Retryable: false, Details: details,
	}
}

// OutOfRange creates a Status for a request past the end of a collection.
func OutOfRange(reason string) *Status {
	return &Status{
		Code: CodeOutOfRange, Message: reason,
		Retryable: false,
	}
}

// FailedPrecondition creates a Status for an operation attempted in the
// wrong state.
func FailedPrecondition(reason string) *Status {
	return &Status{
		Code: CodeFailedPrecondition, Message: reason,
		Retryable: false,
	}
}

// Internal creates a Status for an internal error.
func Internal(cause error) *Status {
	return &Status{
		Code: CodeInternal, Message: "An unexpected error occurred.",
		Retryable: false, Cause: cause,
	}
}

// Unknown creates a Status wrapping an unclassified error.
func Unknown(cause error) *Status {
	return &Status{
		Code: CodeUnknown, Message: "Unknown error.",
		Retryable: false, Cause: cause,
	}
}

// --- Conversion helpers ---

// FromError promotes an arbitrary error to a Status. A nil error maps
// to OK. Context errors map to CANCELLED and DEADLINE_EXCEEDED. An
// error that already is (or wraps) a Status is returned as-is.
func FromError(err error) *Status {
	if err == nil {
		return OK()
	}
	var s *Status
	if errors.As(err, &s) {
		return s
	}
	switch {
	case errors.Is(err, context.Canceled):
		return Cancelled("").WithCause(err)
	case errors.Is(err, context.DeadlineExceeded):
		return &Status{Code: CodeDeadlineExceeded, Message: "The operation took too long.", Retryable: true, Cause: err}
	}
	return Unknown(err).WithCause(err)
}

// CodeOf returns the code of an error, or CodeUnknown for errors that
// carry no Status. A nil error maps to CodeOK.
func CodeOf(err error) Code {
	return FromError(err).Code
}

// IsRetryable reports whether an error is safe to retry. It honors the
// Retryable flag of an embedded Status and falls back to code-based
// classification.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	var s *Status
	if errors.As(err, &s) {
		return s.Retryable
	}
	return IsRetryableCode(CodeOf(err))
}
