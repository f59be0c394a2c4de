package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents a Forge error code.
type ErrorCode string

const (
	ErrInvalidRequest ErrorCode = "INVALID_REQUEST" // 400
	ErrDecode         ErrorCode = "DECODE_ERROR"    // 400
	ErrNotFound       ErrorCode = "NOT_FOUND"       // 404
	ErrStaleRequest   ErrorCode = "STALE_REQUEST"   // 409
	ErrEmptyResponse  ErrorCode = "EMPTY_RESPONSE"  // 502
	ErrBackendFailure ErrorCode = "BACKEND_FAILURE" // 502
	ErrInternal       ErrorCode = "INTERNAL"        // 500
)

// ForgeError represents a structured error with code, status, and details.
type ForgeError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *ForgeError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *ForgeError {
	return &ForgeError{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewDecode creates a 400 error for a share token that could not be decoded.
func NewDecode(reason string) *ForgeError {
	return &ForgeError{
		Code:    ErrDecode,
		Status:  400,
		Message: "invalid share token",
		Details: map[string]any{"reason": reason},
	}
}

// NewNotFound creates a 404 error for a missing history entry.
func NewNotFound(identifier string) *ForgeError {
	return &ForgeError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("history entry not found: %s", identifier),
		Details: map[string]any{"identifier": identifier},
	}
}

// NewPageNotFound creates a 404 error for an unknown content page.
func NewPageNotFound(page string) *ForgeError {
	return &ForgeError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("page not found: %s", page),
		Details: map[string]any{"page": page},
	}
}

// NewStaleRequest creates a 409 error for a generation result superseded by a newer request.
func NewStaleRequest(seq, current uint64) *ForgeError {
	return &ForgeError{
		Code:    ErrStaleRequest,
		Status:  409,
		Message: "request superseded by a newer request",
		Details: map[string]any{"seq": seq, "current": current},
	}
}

// NewEmptyResponse creates a 502 error when the backend returns no text.
func NewEmptyResponse() *ForgeError {
	return &ForgeError{
		Code:    ErrEmptyResponse,
		Status:  502,
		Message: "Received an empty response from the AI.",
	}
}

// NewBackendFailure creates a 502 error for any transport, auth, or rate-limit failure.
func NewBackendFailure(msg string) *ForgeError {
	return &ForgeError{
		Code:    ErrBackendFailure,
		Status:  502,
		Message: msg,
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
// The message stays generic; the cause is kept in Details for logging.
func NewInternal(err error) *ForgeError {
	details := map[string]any{}
	if err != nil {
		details["internal_error"] = err.Error()
	}
	return &ForgeError{
		Code:    ErrInternal,
		Status:  500,
		Message: "an internal error occurred",
		Details: details,
	}
}

// Is checks if an error is (or wraps) a ForgeError with the given code.
func Is(err error, code ErrorCode) bool {
	var fErr *ForgeError
	if stderrors.As(err, &fErr) {
		return fErr.Code == code
	}
	return false
}

// As returns the ForgeError in err's chain, or nil.
func As(err error) *ForgeError {
	var fErr *ForgeError
	if stderrors.As(err, &fErr) {
		return fErr
	}
	return nil
}
