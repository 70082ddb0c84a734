package authsdk

import (
	"regexp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// ============================================================================
// Error Response Types
// ============================================================================

// ErrorResponse is the body of every non-validation error response.
type ErrorResponse struct {
	// Error is the machine readable error code (e.g., "invalid_token")
	Error string `json:"error"`

	// ErrorDescription is a human-readable description of the error
	ErrorDescription string `json:"error_description"`
}

// ValidationErrorResponse represents a validation error response.
// This is returned when request validation fails.
type ValidationErrorResponse struct {
	// Code is always "validation_error"
	Code string `json:"code"`

	// Message is a human-readable error message
	Message string `json:"message"`

	// Details contains field-specific validation errors (field name: error message)
	Details map[string]string `json:"details,omitempty"`
}

// ============================================================================
// Login Types
// ============================================================================

// emailCodePattern matches the fixed width numeric codes the service issues.
var emailCodePattern = regexp.MustCompile(`^[0-9]{8}$`)

// LoginRequest asks for a one-time code to be emailed to Email.
type LoginRequest struct {
	Email string `json:"email" example:"a@b.com"`
}

// Validate checks the request. The error, if any, is validation.Errors keyed
// by JSON field name.
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, validation.Length(3, 254), is.Email),
	)
}

// AuthenticateRequest exchanges an emailed code for an API token.
type AuthenticateRequest struct {
	Email      string `json:"email" example:"a@b.com"`
	EmailToken string `json:"emailToken" example:"04817263"`
}

// Validate checks the request. The error, if any, is validation.Errors keyed
// by JSON field name.
func (r AuthenticateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, validation.Length(3, 254), is.Email),
		validation.Field(&r.EmailToken,
			validation.Required,
			validation.Match(emailCodePattern).Error("must be an 8 digit code"),
		),
	)
}

// AuthenticateResponse is the body of a successful exchange. The carrier
// itself travels in the Authorization response header.
type AuthenticateResponse struct {
	// TokenType is always "Bearer"
	TokenType string `json:"token_type" example:"Bearer"`

	// ExpiresIn is the lifetime of the API token in seconds
	ExpiresIn int `json:"expires_in" example:"43200"`
}

// ============================================================================
// Identity Types
// ============================================================================

// MeResponse describes the authorization facts derived for the caller's token.
type MeResponse struct {
	TokenID                 int64   `json:"tokenId" example:"12"`
	IdentityID              int64   `json:"identityId" example:"7"`
	IsAdmin                 bool    `json:"isAdmin" example:"false"`
	AdministeredResourceIDs []int64 `json:"administeredResourceIds"`
}

// UserResponse is the public view of an identity.
type UserResponse struct {
	ID        int64     `json:"id" example:"7"`
	Email     string    `json:"email" example:"a@b.com"`
	IsAdmin   bool      `json:"isAdmin" example:"false"`
	CreatedAt time.Time `json:"createdAt"`
}

// MemberResponse is one membership of a resource.
type MemberResponse struct {
	IdentityID int64     `json:"identityId" example:"7"`
	Role       string    `json:"role" example:"ADMINISTRATOR"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ResourceMembersResponse lists the members of a resource.
type ResourceMembersResponse struct {
	ResourceID int64            `json:"resourceId" example:"3"`
	Members    []MemberResponse `json:"members"`
}

// ============================================================================
// Health Types
// ============================================================================

// StatusResponse is the body of the root status endpoint.
type StatusResponse struct {
	Up bool `json:"up" example:"true"`
}

// HealthResponse represents the response structure for health check endpoints.
// Used by both /livez and /readyz endpoints (readyz includes additional Checks field).
type HealthResponse struct {
	// Status indicates the overall health status (e.g., "ok")
	Status string `json:"status"`

	// Uptime is the service uptime duration as a string (e.g., "1h23m45s")
	Uptime string `json:"uptime,omitempty"`

	// Version is the service version string
	Version string `json:"version,omitempty"`

	// Checks contains readiness check results for critical dependencies (only for /readyz)
	Checks *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks represents the status of critical service dependencies.
type HealthChecks struct {
	// Database indicates the database connection status
	Database string `json:"database"`

	// Signer indicates whether a signing secret is loaded
	Signer string `json:"signer"`
}
