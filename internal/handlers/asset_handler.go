package handlers

import (
	"net/http"

	"asset-dashboard-api/internal/dto"
	"asset-dashboard-api/internal/models"
	"asset-dashboard-api/internal/services"

	"github.com/labstack/echo/v4"
)

type AssetHandler struct {
	assetService services.AssetServiceInterface
}

func NewAssetHandler(assetService services.AssetServiceInterface) *AssetHandler {
	return &AssetHandler{assetService: assetService}
}

// ListAssets returns one page of asset records, optionally filtered
//
// Method: GET /api/assets
//
// Query parameters:
//   - pageSize: records requested from the record API (optional)
//   - building: keep assets whose Building_Id equals this value (optional)
//   - status: "active", "inactive" or a raw Is_Active value (optional)
//
// Success Response: 200 OK
//   - array of asset records as returned by the record API
//
// Error Responses:
//   - 400: Invalid pageSize
//   - 500: Record API failure
func (h *AssetHandler) ListAssets(c echo.Context) error {
	var query dto.AssetListQuery
	if err := bindAndValidate(c, &query); err != nil {
		return sendInvalidParams(c, err)
	}

	assets, err := h.assetService.ListAssets(c.Request().Context(), models.AssetFilter{
		PageSize: query.PageSize,
		Building: query.Building,
		Status:   query.Status,
	})
	if err != nil {
		return SendServiceError(c, err)
	}

	return c.JSON(http.StatusOK, nonNilRecords(assets))
}

// ListBuildings returns every building record
//
// Method: GET /api/buildings
//
// Success Response: 200 OK
//   - array of building records
//
// Error Responses:
//   - 500: Record API failure
func (h *AssetHandler) ListBuildings(c echo.Context) error {
	buildings, err := h.assetService.ListBuildings(c.Request().Context())
	if err != nil {
		return SendServiceError(c, err)
	}

	return c.JSON(http.StatusOK, nonNilRecords(buildings))
}

// ListCollection returns every record of an allow-listed collection
//
// Method: GET /api/collections/:collection
//
// Query parameters:
//   - pageSize: page size used while walking the collection (optional)
//
// Success Response: 200 OK
//   - array of records
//
// Error Responses:
//   - 400: Unknown collection or invalid pageSize
//   - 500: Record API failure
func (h *AssetHandler) ListCollection(c echo.Context) error {
	var query dto.CollectionListQuery
	if err := bindAndValidate(c, &query); err != nil {
		return sendInvalidParams(c, err)
	}

	records, err := h.assetService.ListCollection(c.Request().Context(), query.Collection, query.PageSize)
	if err != nil {
		return SendServiceError(c, err)
	}

	return c.JSON(http.StatusOK, nonNilRecords(records))
}

func nonNilRecords(records []models.Record) []models.Record {
	if records == nil {
		return []models.Record{}
	}
	return records
}
