package middleware

import (
	"asset-dashboard-api/internal/handlers"
	"asset-dashboard-api/internal/logging"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	// TraceIDHeader is the header name for the trace ID
	TraceIDHeader = "X-Trace-ID"

	maxTraceIDLength = 128
)

// RequestID assigns every request a trace ID. An incoming X-Trace-ID is
// reused so a dashboard request can be followed across services. The ID is
// stored on the echo context, on the request context for service logging, and
// echoed back in the response header.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()

			traceID := req.Header.Get(TraceIDHeader)
			if traceID == "" || len(traceID) > maxTraceIDLength {
				traceID = uuid.New().String()
			}

			c.Set(handlers.TraceIDContextKey, traceID)
			c.SetRequest(req.WithContext(logging.WithTraceID(req.Context(), traceID)))
			c.Response().Header().Set(TraceIDHeader, traceID)
			return next(c)
		}
	}
}
