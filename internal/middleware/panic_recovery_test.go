package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	apierrors "asset-dashboard-api/internal/errors"
	"asset-dashboard-api/internal/handlers"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
)

type PanicRecoveryTestSuite struct {
	suite.Suite
	echo *echo.Echo
}

func (s *PanicRecoveryTestSuite) SetupTest() {
	s.echo = echo.New()
}

func TestPanicRecoveryTestSuite(t *testing.T) {
	suite.Run(t, new(PanicRecoveryTestSuite))
}

func (s *PanicRecoveryTestSuite) run(traceID string, h echo.HandlerFunc) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/stats/summary", nil)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)
	if traceID != "" {
		c.Set(handlers.TraceIDContextKey, traceID)
	}

	s.NotPanics(func() {
		_ = PanicRecovery()(h)(c)
	})
	return rec
}

func (s *PanicRecoveryTestSuite) TestRecoversWithStandardBody() {
	rec := s.run("test-trace-id", func(c echo.Context) error {
		panic("test panic")
	})

	s.Equal(http.StatusInternalServerError, rec.Code)
	var body apierrors.ErrorResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	s.Equal("SYSTEM_001", body.Code)
	s.Equal("test-trace-id", body.TraceID)
	s.NotContains(body.Message, "test panic")
}

func (s *PanicRecoveryTestSuite) TestUnknownTraceID() {
	rec := s.run("", func(c echo.Context) error {
		panic("test panic")
	})

	var body apierrors.ErrorResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	s.Equal("unknown", body.TraceID)
}

func (s *PanicRecoveryTestSuite) TestNormalFlowUntouched() {
	rec := s.run("", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	s.Equal(http.StatusOK, rec.Code)
}

func (s *PanicRecoveryTestSuite) TestDifferentPanicValues() {
	values := map[string]interface{}{
		"string": "string panic",
		"int":    42,
		"error":  &json.SyntaxError{},
		"struct": struct{ msg string }{"error"},
	}

	for name, v := range values {
		s.Run(name, func() {
			rec := s.run("trace", func(c echo.Context) error {
				panic(v)
			})
			s.Equal(http.StatusInternalServerError, rec.Code)
		})
	}
}

func (s *PanicRecoveryTestSuite) TestAbortHandlerIsRepanicked() {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := s.echo.NewContext(req, httptest.NewRecorder())

	s.PanicsWithValue(http.ErrAbortHandler, func() {
		_ = PanicRecovery()(func(c echo.Context) error {
			panic(http.ErrAbortHandler)
		})(c)
	})
}
