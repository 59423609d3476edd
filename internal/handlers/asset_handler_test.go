package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"asset-dashboard-api/internal/models"
	"asset-dashboard-api/internal/services"
	"asset-dashboard-api/internal/services/service_mocks"

	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
)

type AssetHandlerTestSuite struct {
	suite.Suite
	ctrl             *gomock.Controller
	echo             *echo.Echo
	mockAssetService *service_mocks.MockAssetServiceInterface
	handler          *AssetHandler
}

func TestAssetHandlerSuite(t *testing.T) {
	suite.Run(t, new(AssetHandlerTestSuite))
}

func (s *AssetHandlerTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.echo = echo.New()
	s.echo.Validator = NewValidator()
	s.mockAssetService = service_mocks.NewMockAssetServiceInterface(s.ctrl)
	s.handler = NewAssetHandler(s.mockAssetService)
}

func (s *AssetHandlerTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *AssetHandlerTestSuite) newContext(target string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	return s.echo.NewContext(req, rec), rec
}

func (s *AssetHandlerTestSuite) TestListAssets_PassesFilters() {
	c, rec := s.newContext("/api/assets?pageSize=25&building=1&status=active")

	s.mockAssetService.EXPECT().
		ListAssets(gomock.Any(), models.AssetFilter{PageSize: 25, Building: "1", Status: "active"}).
		Return([]models.Record{{"id": json.Number("1"), "Building_Id": json.Number("1")}}, nil)

	err := s.handler.ListAssets(c)

	s.Require().NoError(err)
	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`[{"id":1,"Building_Id":1}]`, rec.Body.String())
}

func (s *AssetHandlerTestSuite) TestListAssets_BuildingFilterEndToEnd() {
	c, rec := s.newContext("/api/assets?building=1")

	s.mockAssetService.EXPECT().
		ListAssets(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ interface{}, filter models.AssetFilter) ([]models.Record, error) {
			records := []models.Record{
				{"id": json.Number("1"), "Building_Id": json.Number("1")},
				{"id": json.Number("2"), "Building_Id": json.Number("2")},
				{"id": json.Number("3"), "Building_Id": nil},
			}
			return services.FilterAssets(records, filter), nil
		})

	err := s.handler.ListAssets(c)

	s.Require().NoError(err)
	s.JSONEq(`[{"id":1,"Building_Id":1}]`, rec.Body.String())
}

func (s *AssetHandlerTestSuite) TestListAssets_EmptyResultIsArray() {
	c, rec := s.newContext("/api/assets")

	s.mockAssetService.EXPECT().ListAssets(gomock.Any(), models.AssetFilter{}).Return(nil, nil)

	err := s.handler.ListAssets(c)

	s.Require().NoError(err)
	s.Equal("[]\n", rec.Body.String())
}

func (s *AssetHandlerTestSuite) TestListAssets_NonNumericPageSize() {
	c, rec := s.newContext("/api/assets?pageSize=lots")

	err := s.handler.ListAssets(c)

	s.Require().NoError(err)
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Contains(rec.Body.String(), "VALIDATION_002")
}

func (s *AssetHandlerTestSuite) TestListAssets_PageSizeOutOfRange() {
	c, rec := s.newContext("/api/assets?pageSize=-3")

	err := s.handler.ListAssets(c)

	s.Require().NoError(err)
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Contains(rec.Body.String(), "VALIDATION_003")
	s.Contains(rec.Body.String(), "pageSize")
}

func (s *AssetHandlerTestSuite) TestListAssets_UpstreamFailure() {
	c, rec := s.newContext("/api/assets")

	s.mockAssetService.EXPECT().ListAssets(gomock.Any(), gomock.Any()).
		Return(nil, &services.UpstreamError{Collection: models.CollectionAsset, Err: errors.New("connection refused")})

	err := s.handler.ListAssets(c)

	s.Require().NoError(err)
	s.Equal(http.StatusInternalServerError, rec.Code)
	s.Contains(rec.Body.String(), "connection refused")
}

func (s *AssetHandlerTestSuite) TestListBuildings_Success() {
	c, rec := s.newContext("/api/buildings")

	s.mockAssetService.EXPECT().ListBuildings(gomock.Any()).
		Return([]models.Record{{"id": json.Number("1"), "Name": "North Wing"}}, nil)

	err := s.handler.ListBuildings(c)

	s.Require().NoError(err)
	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`[{"id":1,"Name":"North Wing"}]`, rec.Body.String())
}

func (s *AssetHandlerTestSuite) TestListCollection_Success() {
	c, rec := s.newContext("/api/collections/Vendor?pageSize=200")
	c.SetPath("/api/collections/:collection")
	c.SetParamNames("collection")
	c.SetParamValues("Vendor")

	s.mockAssetService.EXPECT().ListCollection(gomock.Any(), "Vendor", 200).
		Return([]models.Record{{"id": json.Number("4")}}, nil)

	err := s.handler.ListCollection(c)

	s.Require().NoError(err)
	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`[{"id":4}]`, rec.Body.String())
}

func (s *AssetHandlerTestSuite) TestListCollection_UnknownCollection() {
	c, rec := s.newContext("/api/collections/users")
	c.SetPath("/api/collections/:collection")
	c.SetParamNames("collection")
	c.SetParamValues("users")

	err := s.handler.ListCollection(c)

	s.Require().NoError(err)
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Contains(rec.Body.String(), "VALIDATION_004")
}
