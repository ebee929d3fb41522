package dandolo

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Error codes returned on *Error. Callers branch on Code for fine-grained
// handling, or treat every *Error uniformly for coarse handling.
const (
	ErrCodeAuthentication    = "authentication_error"
	ErrCodeRateLimit         = "rate_limit_error"
	ErrCodeModelNotFound     = "model_not_found"
	ErrCodeValidation        = "validation_error"
	ErrCodeServer            = "server_error"
	ErrCodeTimeout           = "timeout_error"
	ErrCodeConnection        = "connection_error"
	ErrCodeUnsupportedMethod = "unsupported_method"
	ErrCodeMaxRetries        = "max_retries_exceeded"
	ErrCodeAPI               = "api_error"
)

// Error is the error type for all API failures. Code identifies the failure
// kind; StatusCode is the HTTP status that produced it, or zero when the
// failure happened before a response was received.
type Error struct {
	Code       string
	Message    string
	StatusCode int

	// RetryAfter holds the Retry-After header value on rate-limit errors,
	// empty when the server sent none.
	RetryAfter string
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("dandolo: %s (%s, status %d)", e.Message, e.Code, e.StatusCode)
	}
	return fmt.Sprintf("dandolo: %s (%s)", e.Message, e.Code)
}

// IsAuthentication reports whether err is an invalid-key failure.
func IsAuthentication(err error) bool { return hasCode(err, ErrCodeAuthentication) }

// IsRateLimit reports whether err is a rate-limit failure.
func IsRateLimit(err error) bool { return hasCode(err, ErrCodeRateLimit) }

// IsModelNotFound reports whether err is a missing-model failure.
func IsModelNotFound(err error) bool { return hasCode(err, ErrCodeModelNotFound) }

// IsValidation reports whether err is a request-validation failure.
func IsValidation(err error) bool { return hasCode(err, ErrCodeValidation) }

func hasCode(err error, code string) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Code == code
}

// errorResponse is the wire shape of a non-200 body. Every field is optional;
// some upstream providers return bare text or nothing at all.
type errorResponse struct {
	Error struct {
		Message string `json:"message"`
		Code    string `json:"code"`
		Type    string `json:"type"`
	} `json:"error"`
}

// errorMessage pulls error.message out of a response body, falling back when
// the body is empty, malformed, or missing the field.
func errorMessage(body []byte, fallback string) string {
	if len(body) == 0 {
		return fallback
	}
	var resp errorResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return fallback
	}
	if resp.Error.Message == "" {
		return fallback
	}
	return resp.Error.Message
}
