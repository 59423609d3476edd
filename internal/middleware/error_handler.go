package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	apierrors "asset-dashboard-api/internal/errors"
	"asset-dashboard-api/internal/handlers"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ErrorHandler formats errors that reach echo (unknown routes, wrong
// methods, errors returned by middleware) as standard error responses.
type ErrorHandler struct {
	errorsTotal *prometheus.CounterVec
}

// NewErrorHandler registers the api_errors_total counter on reg.
func NewErrorHandler(reg prometheus.Registerer) *ErrorHandler {
	return &ErrorHandler{
		errorsTotal: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "api_errors_total",
				Help: "Total number of API errors by code, endpoint, and status",
			},
			[]string{"code", "endpoint", "status"},
		),
	}
}

// Handle implements echo.HTTPErrorHandler.
func (h *ErrorHandler) Handle(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	traceID := handlers.GetTraceID(c)
	if traceID == "" {
		traceID = "unknown"
	}

	var errorResponse *apierrors.ErrorResponse
	var httpStatus int

	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		httpStatus = echoErr.Code
		errorResponse = apierrors.NewErrorResponse(
			mapHTTPStatusToErrorCode(echoErr.Code),
			traceID,
			apierrors.WithMessage(fmt.Sprintf("%v", echoErr.Message)),
		)
	} else {
		httpStatus = http.StatusInternalServerError
		errorResponse = apierrors.NewErrorResponse(apierrors.SystemInternalError, traceID)
	}

	logLevel := slog.LevelWarn
	if errorResponse.IsServerError() {
		logLevel = slog.LevelError
	}

	slog.Log(c.Request().Context(), logLevel, "HTTP error occurred",
		"trace_id", traceID,
		"error_code", errorResponse.Code,
		"status", httpStatus,
		"path", c.Request().URL.Path,
		"method", c.Request().Method,
		"error", err.Error(),
	)

	h.errorsTotal.WithLabelValues(
		errorResponse.Code,
		c.Path(),
		fmt.Sprintf("%d", httpStatus),
	).Inc()

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(httpStatus)
	} else {
		err = c.JSON(httpStatus, errorResponse)
	}
	if err != nil {
		slog.Error("Failed to send error response",
			"trace_id", traceID,
			"error", err.Error(),
		)
	}
}

// mapHTTPStatusToErrorCode maps HTTP status codes to error codes
func mapHTTPStatusToErrorCode(status int) apierrors.ErrorCode {
	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return apierrors.ValidationGeneral
	case http.StatusNotFound:
		return apierrors.ResourceNotFound
	case http.StatusMethodNotAllowed:
		return apierrors.ResourceMethodNotAllowed
	case http.StatusTooManyRequests:
		return apierrors.SystemRateLimitExceeded
	case http.StatusInternalServerError:
		return apierrors.SystemInternalError
	case http.StatusServiceUnavailable:
		return apierrors.SystemServiceUnavailable
	default:
		return apierrors.SystemUnexpectedError
	}
}
