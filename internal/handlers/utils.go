package handlers

import (
	"errors"
	"fmt"
	"strings"

	apierrors "asset-dashboard-api/internal/errors"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// bindAndValidate binds path and query parameters into dst and validates it
func bindAndValidate(c echo.Context, dst interface{}) error {
	if err := c.Bind(dst); err != nil {
		return err
	}
	return c.Validate(dst)
}

// sendInvalidParams reports a bind or validation failure as a 400
func sendInvalidParams(c echo.Context, err error) error {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		code := apierrors.ValidationOutOfRange
		details := make([]string, 0, len(validationErrs))
		for _, fe := range validationErrs {
			if fe.Tag() == "collection" {
				code = apierrors.ValidationUnknownValue
			}
			details = append(details, fmt.Sprintf("%s: %s", fe.Field(), describeFieldError(fe)))
		}
		return SendError(c, code, apierrors.WithDetails(details...))
	}

	var bindErr *echo.BindingError
	if errors.As(err, &bindErr) {
		return SendError(c, apierrors.ValidationInvalidFormat,
			apierrors.WithDetails(fmt.Sprintf("%s: must be a whole number", bindErr.Field)))
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return SendError(c, apierrors.ValidationInvalidFormat, apierrors.WithDetails(fmt.Sprintf("%v", httpErr.Message)))
	}

	return SendError(c, apierrors.ValidationGeneral, apierrors.WithDetails(err.Error()))
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "collection":
		return fmt.Sprintf("unknown collection %q", fe.Value())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters long", fe.Param())
	default:
		return fmt.Sprintf("failed validation for '%s'", fe.Tag())
	}
}

// ClientIP returns the first X-Forwarded-For address, then X-Real-IP, then
// the connection's remote address.
func ClientIP(c echo.Context) string {
	xff := c.Request().Header.Get("X-Forwarded-For")
	if xff != "" {
		ips := strings.Split(xff, ",")
		if len(ips) > 0 {
			return strings.TrimSpace(ips[0])
		}
	}

	xri := c.Request().Header.Get("X-Real-IP")
	if xri != "" {
		return xri
	}

	return c.RealIP()
}
