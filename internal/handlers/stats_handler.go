package handlers

import (
	"net/http"

	"asset-dashboard-api/internal/dto"
	"asset-dashboard-api/internal/services"

	"github.com/labstack/echo/v4"
)

type StatsHandler struct {
	statsService services.StatsServiceInterface
}

func NewStatsHandler(statsService services.StatsServiceInterface) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// GetSummary returns the dashboard headline counts
//
// Method: GET /api/stats/summary
//
// Success Response: 200 OK
//   - totalAssets, activeAssets, inactiveAssets: asset counts
//   - totalInstances, totalBuildings, totalSRBRecords: collection sizes
//   - totalSRBAmount: sum of SRB amounts
//   - avgSRBAmount: totalSRBAmount / totalSRBRecords, 0 when there are none
//
// Error Responses:
//   - 500: Record API failure or aggregation failure
func (h *StatsHandler) GetSummary(c echo.Context) error {
	summary, err := h.statsService.GetSummary(c.Request().Context())
	if err != nil {
		return SendServiceError(c, err)
	}

	return c.JSON(http.StatusOK, dto.NewSummaryResponse(summary))
}

// GetAmountDistribution returns SRB records bucketed by amount
//
// Method: GET /api/stats/srb-amount-distribution
//
// Success Response: 200 OK
//   - ranges: aboveThreshold3, threshold2To3, threshold1To2, belowThreshold1
//     and noAmount, each with count, total and items
//   - totalRecords: number of SRB records
//   - totalAmount: sum of all bucket totals
//
// Error Responses:
//   - 500: Record API failure or aggregation failure
func (h *StatsHandler) GetAmountDistribution(c echo.Context) error {
	distribution, err := h.statsService.GetAmountDistribution(c.Request().Context())
	if err != nil {
		return SendServiceError(c, err)
	}

	return c.JSON(http.StatusOK, dto.NewAmountDistributionResponse(distribution))
}

// GetCategoryBreakdown returns SRB records grouped by asset category
//
// Method: GET /api/stats/asset-by-category
//
// Success Response: 200 OK
//   - categories: groups sorted by count, largest first
//   - totalCategories: number of groups
//   - totalRecords: number of SRB records
//
// Error Responses:
//   - 500: Record API failure or aggregation failure
func (h *StatsHandler) GetCategoryBreakdown(c echo.Context) error {
	breakdown, err := h.statsService.GetCategoryBreakdown(c.Request().Context())
	if err != nil {
		return SendServiceError(c, err)
	}

	return c.JSON(http.StatusOK, dto.NewCategoryBreakdownResponse(breakdown))
}
