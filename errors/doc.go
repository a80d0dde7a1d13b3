// Package errors provides structured error handling for patchkit.
// It implements a coded error type so callers can distinguish configuration
// mistakes from inference failures without string matching.
package errors
