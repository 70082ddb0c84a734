package authsdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/aussiebroadwan/emailauth/pkg/httpx"
)

// ============================================================================
// Error Codes
// ============================================================================

const (
	ErrorCodeInvalidRequest    = "invalid_request"
	ErrorCodeValidation        = "validation_error"
	ErrorCodeCodePending       = "code_pending"
	ErrorCodeInvalidGrant      = "invalid_grant"
	ErrorCodeInvalidToken      = "invalid_token"
	ErrorCodeAccessDenied      = "access_denied"
	ErrorCodeNotFound          = "not_found"
	ErrorCodeRateLimitExceeded = "rate_limit_exceeded"
	ErrorCodeServerError       = "server_error"
)

// ============================================================================
// Error
// ============================================================================

// Error is an error response from the service. It implements the error
// interface and is used both by the server (to write HTTP responses) and by
// the SDK client (to represent errors).
type Error struct {
	// StatusCode is the HTTP status code for this error
	StatusCode int `json:"-"`

	// Code is the error code (e.g., "invalid_request", "invalid_grant")
	Code string `json:"error"`

	// Description is a human-readable description of the error
	Description string `json:"error_description"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// Is matches errors with the same status, code and description, so callers
// can write errors.Is(err, authsdk.ErrCodePending) against a parsed response.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return *e == *t
}

// WriteError writes this Error to an HTTP response writer. 401 responses
// carry a bearer challenge.
func (e *Error) WriteError(w http.ResponseWriter) {
	if e.StatusCode == http.StatusUnauthorized && e.Code == ErrorCodeInvalidToken {
		httpx.WriteBearerError(w, e.Description)
		return
	}
	httpx.WriteJSON(w, e.StatusCode, ErrorResponse{
		Error:            e.Code,
		ErrorDescription: e.Description,
	})
}

// ============================================================================
// Predefined Errors
// ============================================================================

var (
	// ErrInvalidRequest is returned when the body is not the expected JSON.
	ErrInvalidRequest = &Error{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidRequest,
		Description: "the request is malformed or missing required parameters",
	}

	// ErrCodePending is returned when a code for the address is still live.
	ErrCodePending = &Error{
		StatusCode:  http.StatusConflict,
		Code:        ErrorCodeCodePending,
		Description: "a code was already sent to this address",
	}

	// ErrInvalidGrant is returned for every code exchange rejection except
	// expiry. The checks that failed are not distinguished.
	ErrInvalidGrant = &Error{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidGrant,
		Description: "invalid credentials",
	}

	// ErrCodeExpired is returned when an otherwise valid code has expired.
	ErrCodeExpired = &Error{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidGrant,
		Description: "code expired",
	}

	// ErrUnauthenticated is returned when no usable carrier was presented.
	ErrUnauthenticated = &Error{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidToken,
		Description: "unauthenticated",
	}

	// ErrInvalidToken is returned when the token is unknown or revoked.
	ErrInvalidToken = &Error{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidToken,
		Description: "invalid token",
	}

	// ErrTokenExpired is returned when the token is past its expiry.
	ErrTokenExpired = &Error{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidToken,
		Description: "token expired",
	}

	// ErrAccessDenied is returned when the caller may not act on the target.
	ErrAccessDenied = &Error{
		StatusCode:  http.StatusForbidden,
		Code:        ErrorCodeAccessDenied,
		Description: "forbidden",
	}

	// ErrNotFound is returned when the addressed record does not exist.
	ErrNotFound = &Error{
		StatusCode:  http.StatusNotFound,
		Code:        ErrorCodeNotFound,
		Description: "not found",
	}

	// ErrServerError is returned when the service hit an unexpected condition.
	ErrServerError = &Error{
		StatusCode:  http.StatusInternalServerError,
		Code:        ErrorCodeServerError,
		Description: "internal server error",
	}
)

// NewError creates a new Error with the given status code, error code, and description.
func NewError(statusCode int, code, description string) *Error {
	return &Error{
		StatusCode:  statusCode,
		Code:        code,
		Description: description,
	}
}

// ============================================================================
// Validation Errors
// ============================================================================

// ValidationError carries per-field messages for a rejected request.
type ValidationError struct {
	Message string
	Details map[string]string
}

// NewValidationError converts the result of a Validate method. Errors that
// are not per-field are reported under the "body" key.
func NewValidationError(err error) *ValidationError {
	details := make(map[string]string)

	var fields validation.Errors
	if errors.As(err, &fields) {
		for name, fieldErr := range fields {
			if fieldErr != nil {
				details[name] = fieldErr.Error()
			}
		}
	} else if err != nil {
		details["body"] = err.Error()
	}

	return &ValidationError{Message: "request validation failed", Details: details}
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Details))
	for k := range e.Details {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	msg := e.Message
	for _, k := range keys {
		msg += fmt.Sprintf("; %s: %s", k, e.Details[k])
	}
	return msg
}

// WriteError writes a 400 validation response.
func (e *ValidationError) WriteError(w http.ResponseWriter) {
	httpx.WriteJSON(w, http.StatusBadRequest, ValidationErrorResponse{
		Code:    ErrorCodeValidation,
		Message: e.Message,
		Details: e.Details,
	})
}

// ============================================================================
// Error Parsing Helpers
// ============================================================================

// parseErrorResponse attempts to parse an HTTP error response into a typed error.
// Returns nil if the response indicates success (2xx status code).
func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var valErr ValidationErrorResponse
	if err := json.Unmarshal(body, &valErr); err == nil && valErr.Code == ErrorCodeValidation {
		return &ValidationError{Message: valErr.Message, Details: valErr.Details}
	}

	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return &Error{
			StatusCode:  resp.StatusCode,
			Code:        errResp.Error,
			Description: errResp.ErrorDescription,
		}
	}

	// Fallback: create generic error from status code
	return &Error{
		StatusCode:  resp.StatusCode,
		Code:        ErrorCodeServerError,
		Description: fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}
