package errors

import (
	stderrors "errors"
	"fmt"
)

// Error is the unified patchkit error type.
type Error struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Retryable indicates if the operation can be retried.
	Retryable bool `json:"retryable"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *Error) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *Error) WithDetail(key string, value any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new Error with automatic retryable detection.
func New(code ErrorCode, message string) *Error {
	return &Error{
		Code:      code,
		Message:   message,
		Retryable: IsRetryableCode(code),
	}
}

// CodeOf extracts the ErrorCode from err, unwrapping as needed.
// Returns ErrCodeInternal for non-patchkit errors and "" for nil.
func CodeOf(err error) ErrorCode {
	if err == nil {
		return ""
	}
	var e *Error
	if stderrors.As(err, &e) {
		return e.Code
	}
	return ErrCodeInternal
}

// --- Common Error Constructors ---

// InvalidConfiguration creates an Error for a config value that makes the
// requested operation impossible.
func InvalidConfiguration(field, reason string) *Error {
	return &Error{
		Code: ErrCodeInvalidConfiguration, Message: fmt.Sprintf("invalid configuration: %s", reason),
		Retryable: false,
		Details:   map[string]any{"field": field},
	}
}

// MissingField creates an Error for a missing required config field.
func MissingField(field string) *Error {
	return &Error{
		Code: ErrCodeMissingField, Message: fmt.Sprintf("missing required field: %s", field),
		Retryable: false,
		Details:   map[string]any{"field": field},
	}
}

// InferenceFailed creates an Error for an inference backend failure on the
// given batch index.
func InferenceFailed(batch int, cause error) *Error {
	return &Error{
		Code: ErrCodeInferenceFailed, Message: fmt.Sprintf("inference failed on batch %d", batch),
		Retryable: false, Cause: cause,
		Details: map[string]any{"batch": batch},
	}
}

// ShortInference creates an Error for an inference result whose length does
// not match the submitted batch.
func ShortInference(batch, want, got int) *Error {
	return &Error{
		Code: ErrCodeShortInference, Message: fmt.Sprintf("inference returned %d results for a batch of %d", got, want),
		Retryable: false,
		Details:   map[string]any{"batch": batch, "want": want, "got": got},
	}
}

// ProviderUnavailable creates an Error for an inference provider that is not
// ready to serve requests.
func ProviderUnavailable(name string) *Error {
	return &Error{
		Code: ErrCodeProviderUnavailable, Message: fmt.Sprintf("inference provider %q is unavailable", name),
		Retryable: true,
		Details:   map[string]any{"provider": name},
	}
}

// Internal creates an Error for an unexpected internal failure.
func Internal(message string, cause error) *Error {
	return &Error{
		Code: ErrCodeInternal, Message: message,
		Retryable: false, Cause: cause,
	}
}

// Validation creates an Error for a failed config validation.
func Validation(message string) *Error {
	return &Error{
		Code: ErrCodeInvalidConfiguration, Message: message,
		Retryable: false,
	}
}

// --- stdlib re-exports so callers need a single errors import ---

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool { return stderrors.Is(err, target) }

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool { return stderrors.As(err, target) }
