package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	apierrors "asset-dashboard-api/internal/errors"
	"asset-dashboard-api/internal/services"

	"github.com/labstack/echo/v4"
)

// Error responses
//
// Handlers never build error bodies themselves:
//
//   - SendError for rejected requests (bad query parameters, unknown collection)
//   - SendServiceError for anything returned by a service; upstream and
//     aggregation failures become a single 500 carrying the failure message
//
// Successful responses are the bare JSON documents the dashboard reads.

const (
	// TraceIDContextKey is the context key for storing the trace ID
	TraceIDContextKey = "trace_id"
)

// ErrorResponse is an alias for the standardized error response type
type ErrorResponse = apierrors.ErrorResponse

// GetTraceID extracts the trace ID stored by the request ID middleware
func GetTraceID(c echo.Context) string {
	traceID, ok := c.Get(TraceIDContextKey).(string)
	if !ok {
		return ""
	}
	return traceID
}

// SendError sends a standardized error response with trace ID from context
func SendError(c echo.Context, code apierrors.ErrorCode, opts ...apierrors.ErrorOption) error {
	traceID := GetTraceID(c)
	errorResponse := apierrors.NewErrorResponse(code, traceID, opts...)
	return c.JSON(errorResponse.GetHTTPStatus(), errorResponse)
}

// SendServiceError maps a service failure onto an error response and logs it
func SendServiceError(c echo.Context, err error) error {
	traceID := GetTraceID(c)

	if errors.Is(err, services.ErrUnknownCollection) {
		return SendError(c, apierrors.ValidationUnknownValue, apierrors.WithDetails(err.Error()))
	}

	var malformedErr *services.MalformedResponseError
	var upstreamErr *services.UpstreamError
	var aggregationErr *services.AggregationError

	var code apierrors.ErrorCode
	switch {
	case errors.As(err, &malformedErr):
		code = apierrors.UpstreamMalformedResponse
	case errors.As(err, &upstreamErr):
		code = apierrors.UpstreamUnavailable
	case errors.As(err, &aggregationErr):
		code = apierrors.SystemAggregationError
	default:
		slog.ErrorContext(c.Request().Context(), "unexpected service error",
			"trace_id", traceID,
			"path", c.Request().URL.Path,
			"client_ip", ClientIP(c),
			"error", err,
		)
		return c.JSON(http.StatusInternalServerError, apierrors.NewErrorResponse(apierrors.SystemInternalError, traceID))
	}

	errorResponse := apierrors.FromError(code, err, traceID)
	slog.ErrorContext(c.Request().Context(), "request failed",
		"trace_id", traceID,
		"path", c.Request().URL.Path,
		"client_ip", ClientIP(c),
		"response", errorResponse.String(),
	)
	return c.JSON(errorResponse.GetHTTPStatus(), errorResponse)
}
