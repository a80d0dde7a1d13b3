package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Configuration errors
const (
	// ErrCodeInvalidConfiguration indicates a config value that makes the
	// extraction impossible (e.g. a non-positive batch size).
	ErrCodeInvalidConfiguration ErrorCode = "INVALID_CONFIGURATION"
	// ErrCodeMissingField indicates a required config field is missing.
	ErrCodeMissingField ErrorCode = "MISSING_FIELD"
)

// Extraction errors
const (
	// ErrCodeInferenceFailed indicates the inference backend failed on a batch.
	// The whole extraction run is aborted; no partial results are returned.
	ErrCodeInferenceFailed ErrorCode = "INFERENCE_FAILED"
	// ErrCodeShortInference indicates the backend returned a result count
	// that does not match the submitted batch size.
	ErrCodeShortInference ErrorCode = "SHORT_INFERENCE"
	// ErrCodeProviderUnavailable indicates the inference provider is not
	// ready to serve requests.
	ErrCodeProviderUnavailable ErrorCode = "PROVIDER_UNAVAILABLE"
)

// Internal errors
const (
	// ErrCodeInternal indicates an unexpected internal error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

var retryableCodes = map[ErrorCode]bool{
	ErrCodeProviderUnavailable: true,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
