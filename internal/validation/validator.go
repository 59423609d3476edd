package validation

import (
	"reflect"
	"strings"
	"sync"

	"asset-dashboard-api/internal/models"

	"github.com/go-playground/validator/v10"
)

// Validator wraps the go-playground validator with custom rules and error formatting
type Validator struct {
	validate *validator.Validate
}

// GetValidate returns the underlying validator.Validate instance for use with Echo
func (v *Validator) GetValidate() *validator.Validate {
	return v.validate
}

var (
	instance     *Validator
	instanceOnce sync.Once
)

// GetValidator returns the shared validator instance. It is safe to call from
// multiple goroutines.
func GetValidator() *Validator {
	instanceOnce.Do(func() {
		instance = NewValidator()
	})
	return instance
}

// NewValidator creates a new validator instance with custom rules and configuration.
// Field names in errors are the query or path parameter names.
func NewValidator() *Validator {
	v := validator.New()

	_ = v.RegisterValidation("collection", validateCollection)

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"query", "param", "json"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})

	return &Validator{validate: v}
}

// validateCollection accepts only collections that may be listed through the API
func validateCollection(fl validator.FieldLevel) bool {
	return models.IsKnownCollection(fl.Field().String())
}
