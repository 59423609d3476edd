package handlers

import (
	"net/http"
	"time"

	"asset-dashboard-api/internal/dto"

	"github.com/labstack/echo/v4"
)

// HealthCheckHandler handles the health check endpoint
type HealthCheckHandler struct {
	now func() time.Time
}

// NewHealthCheckHandler creates a new health check handler
func NewHealthCheckHandler() *HealthCheckHandler {
	return &HealthCheckHandler{now: time.Now}
}

// HealthCheck reports liveness. The record API is not contacted so the check
// stays cheap and independent of upstream availability.
//
// Method: GET /health
//
// Success Response: 200 OK
//   - status: "ok"
//   - timestamp: RFC 3339 UTC time
func (h *HealthCheckHandler) HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, dto.HealthResponse{
		Status:    "ok",
		Timestamp: h.now().UTC().Format(time.RFC3339),
	})
}
