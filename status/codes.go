package status

// Code represents a machine-readable status code.
type Code string

// Success.
const (
	// CodeOK indicates the operation completed successfully. An OK status
	// returned by a reader means end of data, not failure.
	CodeOK Code = "OK"
)

// Transient errors (retryable)
const (
	// CodeUnavailable indicates the service is temporarily unavailable.
	CodeUnavailable Code = "UNAVAILABLE"
	// CodeDeadlineExceeded indicates the operation timed out.
	CodeDeadlineExceeded Code = "DEADLINE_EXCEEDED"
	// CodeResourceExhausted indicates a quota or rate limit was hit.
	CodeResourceExhausted Code = "RESOURCE_EXHAUSTED"
	// CodeAborted indicates the operation was aborted, typically due to
	// a concurrency conflict.
	CodeAborted Code = "ABORTED"
)

// Caller errors
const (
	// CodeCancelled indicates the caller cancelled the operation.
	CodeCancelled Code = "CANCELLED"
	// CodeInvalidArgument indicates the caller supplied a bad argument.
	CodeInvalidArgument Code = "INVALID_ARGUMENT"
	// CodeNotFound indicates the requested entity was not found.
	CodeNotFound Code = "NOT_FOUND"
	// CodeAlreadyExists indicates the entity already exists.
	CodeAlreadyExists Code = "ALREADY_EXISTS"
	// CodeOutOfRange indicates the operation ran past a valid range,
	// for example requesting a page beyond the end of a collection.
	CodeOutOfRange Code = "OUT_OF_RANGE"
	// CodeFailedPrecondition indicates the system is not in a state
	// required for the operation.
	CodeFailedPrecondition Code = "FAILED_PRECONDITION"
)

// Auth errors
const (
	// CodeUnauthenticated indicates missing or invalid credentials.
	CodeUnauthenticated Code = "UNAUTHENTICATED"
	// CodePermissionDenied indicates the caller lacks permission.
	CodePermissionDenied Code = "PERMISSION_DENIED"
)

// Internal errors
const (
	// CodeInternal indicates an internal error.
	CodeInternal Code = "INTERNAL"
	// CodeUnknown indicates an error of unknown origin.
	CodeUnknown Code = "UNKNOWN"
)

var retryableCodes = map[Code]bool{
	CodeUnavailable:       true,
	CodeDeadlineExceeded:  true,
	CodeResourceExhausted: true,
	CodeAborted:           true,
}

// IsRetryableCode reports whether a code is safe to retry by default.
func IsRetryableCode(code Code) bool {
	return retryableCodes[code]
}
