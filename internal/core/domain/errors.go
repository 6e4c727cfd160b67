package domain

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Domain errors represent flow failures that callers branch on.
var (
	// ErrInvalidInput indicates malformed or invalid user input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrSetupRequired indicates login cannot start with the current configuration.
	ErrSetupRequired = errors.New("setup required")

	// ErrAuthorizationDenied indicates the provider declined the authorization request.
	ErrAuthorizationDenied = errors.New("authorization denied")

	// ErrStateMismatch indicates the redirect state did not match the outstanding token.
	// The redirect may be forged or replayed and must never be retried silently.
	ErrStateMismatch = errors.New("state mismatch")

	// ErrFetchInProgress indicates a fetch is already running.
	ErrFetchInProgress = errors.New("fetch in progress")

	// ErrLoginInProgress indicates a login round trip is already running.
	ErrLoginInProgress = errors.New("login in progress")

	// ErrNotConnected indicates no access token is held by the session.
	ErrNotConnected = errors.New("not connected")
)

// ValidationError is bad user input caught before any network call.
type ValidationError struct {
	// Field is the input the UI should focus or reveal.
	Field InputField
	// Message is the user-facing explanation.
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Unwrap allows errors.Is(err, ErrInvalidInput).
func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// SetupError reports configuration that blocks login.
type SetupError struct {
	Message string
}

func (e *SetupError) Error() string {
	return e.Message
}

// Unwrap allows errors.Is(err, ErrSetupRequired).
func (e *SetupError) Unwrap() error {
	return ErrSetupRequired
}

// OAuthProviderError carries the error parameters of a declined authorization.
type OAuthProviderError struct {
	Code        string
	Description string
}

func (e *OAuthProviderError) Error() string {
	return "OAuth error: " + e.Reason()
}

// Reason returns the description, falling back to the error code.
func (e *OAuthProviderError) Reason() string {
	if e.Description != "" {
		return e.Description
	}
	return e.Code
}

// Unwrap allows errors.Is(err, ErrAuthorizationDenied).
func (e *OAuthProviderError) Unwrap() error {
	return ErrAuthorizationDenied
}

// OAuthSecurityError reports a redirect that failed the anti-forgery check.
type OAuthSecurityError struct {
	Reason string
}

func (e *OAuthSecurityError) Error() string {
	return "OAuth blocked: " + e.Reason
}

// Unwrap allows errors.Is(err, ErrStateMismatch).
func (e *OAuthSecurityError) Unwrap() error {
	return ErrStateMismatch
}

// APIError is a transport or application failure from the graph API.
// StatusCode is 0 when no HTTP response was received.
type APIError struct {
	StatusCode int
	Message    string
	Payload    ProviderResponse
	URL        string
}

func (e *APIError) Error() string {
	return e.Message
}

// ComposeErrorDetail formats the provider's error object as
// "<message> (type: <type>) (code: <code>)", omitting absent parts.
// It returns "" when the payload has no error.message.
func ComposeErrorDetail(payload ProviderResponse) string {
	m, ok := payload.(map[string]any)
	if !ok {
		return ""
	}
	errObj, ok := m["error"].(map[string]any)
	if !ok {
		return ""
	}
	msg := StringAt(errObj, "message")
	if msg == "" {
		return ""
	}

	var b strings.Builder
	b.WriteString(msg)
	if t := StringAt(errObj, "type"); t != "" {
		fmt.Fprintf(&b, " (type: %s)", t)
	}
	if c, ok := errObj["code"]; ok && c != nil {
		fmt.Fprintf(&b, " (code: %s)", StringAt(errObj, "code"))
	}
	return b.String()
}

// ErrorCategory groups API failures by what the user can do about them.
type ErrorCategory string

// API failure categories.
const (
	CategoryAuth      ErrorCategory = "auth"
	CategoryNotFound  ErrorCategory = "not_found"
	CategoryRateLimit ErrorCategory = "rate_limit"
	CategoryGeneric   ErrorCategory = "generic"
)

// CategoryForStatus maps an HTTP status to its failure category.
func CategoryForStatus(status int) ErrorCategory {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return CategoryAuth
	case http.StatusNotFound:
		return CategoryNotFound
	case http.StatusTooManyRequests:
		return CategoryRateLimit
	default:
		return CategoryGeneric
	}
}

// FetchError is an API failure mapped to a category and a display message.
// Rate limits are reported, never retried.
type FetchError struct {
	Category ErrorCategory
	Message  string
	Cause    *APIError
}

func (e *FetchError) Error() string {
	return e.Message
}

// Unwrap returns the underlying API error.
func (e *FetchError) Unwrap() error {
	if e.Cause == nil {
		return nil
	}
	return e.Cause
}

// NewFetchError categorises an API error and builds its display message.
func NewFetchError(cause *APIError) *FetchError {
	category := CategoryForStatus(cause.StatusCode)

	var msg string
	switch category {
	case CategoryAuth:
		msg = fmt.Sprintf("Authentication/permission error (%d): %s", cause.StatusCode, cause.Message)
	case CategoryNotFound:
		msg = fmt.Sprintf("Not found (%d): %s", cause.StatusCode, cause.Message)
	case CategoryRateLimit:
		msg = fmt.Sprintf("Rate limit (%d): Too many requests. Try again later. (%s)", cause.StatusCode, cause.Message)
	default:
		msg = "Failed API request: " + cause.Message
	}

	return &FetchError{Category: category, Message: msg, Cause: cause}
}

// Payload returns the raw payload to show for diagnostics: the provider's
// body when present, otherwise a summary of the failed request.
func (e *FetchError) Payload() any {
	if e.Cause == nil {
		return map[string]any{"error": e.Message}
	}
	if e.Cause.Payload != nil {
		return e.Cause.Payload
	}
	return map[string]any{
		"error":  e.Cause.Message,
		"status": e.Cause.StatusCode,
		"url":    e.Cause.URL,
	}
}

// IsRateLimited checks if the error is a 429 from the API.
func IsRateLimited(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusTooManyRequests
	}
	return false
}

// IsUnauthorized checks if the error is a 401 or 403 from the API.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return CategoryForStatus(apiErr.StatusCode) == CategoryAuth
	}
	return false
}

// IsNotFound checks if the error is a 404 from the API.
func IsNotFound(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusNotFound
	}
	return false
}
