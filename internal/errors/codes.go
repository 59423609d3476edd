package errors

// ErrorCode represents a standardized error code used throughout the API
type ErrorCode string

// Validation error codes (VALIDATION_*)
const (
	ValidationGeneral       ErrorCode = "VALIDATION_001"
	ValidationInvalidFormat ErrorCode = "VALIDATION_002"
	ValidationOutOfRange    ErrorCode = "VALIDATION_003"
	ValidationUnknownValue  ErrorCode = "VALIDATION_004"
)

// Resource error codes (RESOURCE_*)
const (
	ResourceNotFound         ErrorCode = "RESOURCE_001"
	ResourceMethodNotAllowed ErrorCode = "RESOURCE_002"
)

// Upstream error codes (UPSTREAM_*)
const (
	UpstreamUnavailable       ErrorCode = "UPSTREAM_001"
	UpstreamMalformedResponse ErrorCode = "UPSTREAM_002"
)

// System error codes (SYSTEM_*)
const (
	SystemInternalError      ErrorCode = "SYSTEM_001"
	SystemAggregationError   ErrorCode = "SYSTEM_002"
	SystemServiceUnavailable ErrorCode = "SYSTEM_003"
	SystemUnexpectedError    ErrorCode = "SYSTEM_005"
	SystemRateLimitExceeded  ErrorCode = "SYSTEM_006"
)

// errorMessages maps error codes to their default human-readable messages
var errorMessages = map[ErrorCode]string{
	// Validation errors
	ValidationGeneral:       "Validation failed",
	ValidationInvalidFormat: "Invalid parameter format",
	ValidationOutOfRange:    "Parameter value is out of allowed range",
	ValidationUnknownValue:  "Parameter value is not recognised",

	// Resource errors
	ResourceNotFound:         "Resource not found",
	ResourceMethodNotAllowed: "Method not allowed",

	// Upstream errors
	UpstreamUnavailable:       "Record API request failed",
	UpstreamMalformedResponse: "Record API returned an unexpected payload",

	// System errors
	SystemInternalError:      "An unexpected error occurred. Please contact support with trace ID",
	SystemAggregationError:   "Failed to compute statistics",
	SystemServiceUnavailable: "Service temporarily unavailable",
	SystemUnexpectedError:    "An unexpected error occurred",
	SystemRateLimitExceeded:  "Rate limit exceeded. Please try again later",
}

// GetErrorMessage returns the default message for a given error code
// If the error code is not found, it returns a generic error message
func GetErrorMessage(code ErrorCode) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}
	return "An error occurred"
}
