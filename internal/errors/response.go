package errors

import (
	"fmt"
	"net/http"
)

// ErrorResponse is the body of every failed request. The dashboard reads the
// "error" field; code and trace_id are for support and log correlation.
type ErrorResponse struct {
	Message string   `json:"error"`
	Code    string   `json:"code"`
	Details []string `json:"details,omitempty"`
	TraceID string   `json:"trace_id,omitempty"`
}

// ErrorOption is a functional option for configuring error responses
type ErrorOption func(*ErrorResponse)

// WithDetails adds detail messages to the error response
func WithDetails(details ...string) ErrorOption {
	return func(er *ErrorResponse) {
		er.Details = details
	}
}

// WithMessage overrides the default message for the error code
func WithMessage(message string) ErrorOption {
	return func(er *ErrorResponse) {
		er.Message = message
	}
}

// NewErrorResponse creates a standardized error response with the given error code and trace ID
// Optional details can be added using functional options
func NewErrorResponse(code ErrorCode, traceID string, opts ...ErrorOption) *ErrorResponse {
	response := &ErrorResponse{
		Message: GetErrorMessage(code),
		Code:    string(code),
		TraceID: traceID,
	}

	for _, opt := range opts {
		opt(response)
	}

	return response
}

// FromError builds a response whose message is the failure's own message.
// Upstream and aggregation failures are surfaced this way so the dashboard
// can show what went wrong.
func FromError(code ErrorCode, err error, traceID string) *ErrorResponse {
	response := NewErrorResponse(code, traceID)
	if err != nil {
		response.Message = err.Error()
	}
	return response
}

// GetHTTPStatus returns the appropriate HTTP status code for the error code
func GetHTTPStatus(code ErrorCode) int {
	switch code {
	case ValidationGeneral, ValidationInvalidFormat, ValidationOutOfRange, ValidationUnknownValue:
		return http.StatusBadRequest

	case ResourceNotFound:
		return http.StatusNotFound

	case ResourceMethodNotAllowed:
		return http.StatusMethodNotAllowed

	case SystemRateLimitExceeded:
		return http.StatusTooManyRequests

	case SystemServiceUnavailable:
		return http.StatusServiceUnavailable

	// Upstream failures are reported as plain 500s; the dashboard treats
	// every failed statistic the same way.
	case UpstreamUnavailable, UpstreamMalformedResponse,
		SystemInternalError, SystemAggregationError, SystemUnexpectedError:
		return http.StatusInternalServerError

	default:
		return http.StatusInternalServerError
	}
}

// GetHTTPStatus returns the HTTP status code for the error response
func (er *ErrorResponse) GetHTTPStatus() int {
	return GetHTTPStatus(ErrorCode(er.Code))
}

// IsServerError returns true if the error is a 5xx server error
func (er *ErrorResponse) IsServerError() bool {
	return er.GetHTTPStatus() >= 500
}

// String returns a string representation of the error response
func (er *ErrorResponse) String() string {
	return fmt.Sprintf("[%s] %s (trace: %s)", er.Code, er.Message, er.TraceID)
}
