package services

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"asset-dashboard-api/internal/models"

	"github.com/shopspring/decimal"
)

const (
	UnknownCategory = "Unknown"
	nullCategory    = "NULL"
	flagYes         = "Yes"
)

// NormalizeAmount reads an amount field. Numbers and numeric strings parse;
// anything else, including a missing field or a value outside the float64
// range, is zero.
func NormalizeAmount(v any) decimal.Decimal {
	switch val := v.(type) {
	case json.Number:
		return parseDecimal(string(val))
	case string:
		return parseDecimal(strings.TrimSpace(val))
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return decimal.Zero
		}
		return decimal.NewFromFloat(val)
	case float32:
		if math.IsNaN(float64(val)) || math.IsInf(float64(val), 0) {
			return decimal.Zero
		}
		return decimal.NewFromFloat32(val)
	case int:
		return decimal.NewFromInt(int64(val))
	case int64:
		return decimal.NewFromInt(val)
	case int32:
		return decimal.NewFromInt32(val)
	default:
		return decimal.Zero
	}
}

func parseDecimal(s string) decimal.Decimal {
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil || math.IsInf(d.InexactFloat64(), 0) {
		return decimal.Zero
	}
	return d
}

// NormalizeCategoryCode returns the grouping key of a category field.
// Missing, null, empty and the literal "NULL" collapse into UnknownCategory.
func NormalizeCategoryCode(v any) string {
	switch val := v.(type) {
	case string:
		if val == "" || val == nullCategory {
			return UnknownCategory
		}
		return val
	case json.Number:
		return val.String()
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	default:
		return UnknownCategory
	}
}

// NormalizeFlag reports whether a Yes/No field is set. Only the exact string
// "Yes" counts.
func NormalizeFlag(v any) bool {
	s, ok := v.(string)
	return ok && s == flagYes
}

// ClassifyAmount places an amount into its distribution bucket. Zero means
// no usable amount; negative amounts fall below the first threshold.
func ClassifyAmount(amount decimal.Decimal) models.AmountBucket {
	switch {
	case amount.IsZero():
		return models.BucketNoAmount
	case amount.GreaterThanOrEqual(models.AmountThreshold3):
		return models.BucketAboveThreshold3
	case amount.GreaterThanOrEqual(models.AmountThreshold2):
		return models.BucketThreshold2To3
	case amount.GreaterThanOrEqual(models.AmountThreshold1):
		return models.BucketThreshold1To2
	default:
		return models.BucketBelowThreshold1
	}
}

// LooseEqual compares a record value with a query string value. When both
// sides are numeric they compare as numbers, so 1, "1" and "1.0" match;
// otherwise the textual forms must be identical. A missing value never
// matches.
func LooseEqual(value any, query string) bool {
	if value == nil {
		return false
	}

	text, ok := scalarText(value)
	if !ok {
		return false
	}

	if a, err := decimal.NewFromString(strings.TrimSpace(text)); err == nil {
		if b, err := decimal.NewFromString(strings.TrimSpace(query)); err == nil {
			return a.Equal(b)
		}
	}

	return text == query
}

func scalarText(v any) (string, bool) {
	switch val := v.(type) {
	case string:
		return val, true
	case json.Number:
		return val.String(), true
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), true
	case int:
		return strconv.Itoa(val), true
	case int64:
		return strconv.FormatInt(val, 10), true
	case bool:
		return strconv.FormatBool(val), true
	default:
		return "", false
	}
}
