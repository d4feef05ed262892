package dto

import "net/http"

// Error codes surfaced by the API. Domain errors carry these codes
// directly; the table below maps them to HTTP status.
const (
	ErrCodeInternal       = "INTERNAL"
	ErrCodeBadRequest     = "BAD_REQUEST"
	ErrCodeInvalidJSON    = "INVALID_JSON"
	ErrCodeValidation     = "VALIDATION"
	ErrCodeInvalidInput   = "INVALID_INPUT"
	ErrCodeUnauthorized   = "UNAUTHORIZED"
	ErrCodeNotFound       = "NOT_FOUND"
	ErrCodeMockupNotFound = "MOCKUP_NOT_FOUND"
	ErrCodeAlreadyExists  = "ALREADY_EXISTS"
	ErrCodeInvalidState   = "INVALID_STATE"
	ErrCodeRateLimited    = "RATE_LIMITED"
	ErrCodeProviderFailed = "PROVIDER_FAILED"
	ErrCodeTimeout        = "TIMEOUT"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:     http.StatusInternalServerError,
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidJSON:  http.StatusBadRequest,
	ErrCodeValidation:   http.StatusBadRequest,
	ErrCodeInvalidInput: http.StatusBadRequest,

	ErrCodeUnauthorized: http.StatusUnauthorized,

	// A missing mockup context is a 404 so clients can prompt the
	// customer to regenerate rather than retry the same request
	ErrCodeNotFound:       http.StatusNotFound,
	ErrCodeMockupNotFound: http.StatusNotFound,
	ErrCodeAlreadyExists:  http.StatusConflict,
	ErrCodeInvalidState:   http.StatusUnprocessableEntity,

	ErrCodeRateLimited: http.StatusTooManyRequests,

	// Provider degradation surfaces as gateway errors
	ErrCodeProviderFailed: http.StatusBadGateway,
	ErrCodeTimeout:        http.StatusGatewayTimeout,
}

// GetHTTPStatus returns the HTTP status for an error code, defaulting to 500
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
