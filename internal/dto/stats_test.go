package dto

import (
	"encoding/json"
	"testing"

	"asset-dashboard-api/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSummaryResponse(t *testing.T) {
	resp := NewSummaryResponse(&models.DashboardSummary{
		TotalAssets:     10,
		ActiveAssets:    7,
		InactiveAssets:  3,
		TotalInstances:  4,
		TotalBuildings:  2,
		TotalSRBRecords: 2,
		TotalSRBAmount:  decimal.RequireFromString("1500.50"),
		AvgSRBAmount:    decimal.RequireFromString("750.25"),
	})

	assert.Equal(t, 7, resp.ActiveAssets)
	assert.Equal(t, 1500.50, resp.TotalSRBAmount)
	assert.Equal(t, 750.25, resp.AvgSRBAmount)
}

func TestNewAmountDistributionResponse_AllBucketsPresent(t *testing.T) {
	dist := &models.AmountDistribution{
		Ranges: map[models.AmountBucket]*models.BucketStats{
			models.BucketBelowThreshold1: {
				Count: 1,
				Total: decimal.NewFromInt(500),
				Items: []models.AmountItem{{ID: json.Number("3"), SRBNo: "SRB-3", Amount: decimal.NewFromInt(500), AssetCode: "LAB"}},
			},
		},
		TotalRecords: 1,
		TotalAmount:  decimal.NewFromInt(500),
	}

	data, err := json.Marshal(NewAmountDistributionResponse(dist))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))

	ranges := decoded["ranges"].(map[string]any)
	for _, name := range []string{"aboveThreshold3", "threshold2To3", "threshold1To2", "belowThreshold1", "noAmount"} {
		bucket, ok := ranges[name].(map[string]any)
		require.True(t, ok, name)
		assert.NotNil(t, bucket["items"], "items must be an array, not null: %s", name)
	}

	below := ranges["belowThreshold1"].(map[string]any)
	assert.Equal(t, float64(1), below["count"])
	item := below["items"].([]any)[0].(map[string]any)
	assert.Equal(t, float64(3), item["id"])
	assert.Equal(t, "LAB", item["assetCode"])
	assert.Nil(t, item["description"])
	assert.Equal(t, float64(500), decoded["totalAmount"])
}

func TestNewCategoryBreakdownResponse_KeepsOrder(t *testing.T) {
	breakdown := &models.CategoryBreakdown{
		Categories: []models.CategoryGroup{
			{AssetCode: "B", Count: 7, TotalAmount: decimal.NewFromInt(70)},
			{AssetCode: "A", Count: 3, TotalAmount: decimal.NewFromInt(30)},
		},
		TotalCategories: 2,
		TotalRecords:    10,
	}

	resp := NewCategoryBreakdownResponse(breakdown)

	require.Len(t, resp.Categories, 2)
	assert.Equal(t, "B", resp.Categories[0].AssetCode)
	assert.Equal(t, "A", resp.Categories[1].AssetCode)
	assert.NotNil(t, resp.Categories[0].Items)
	assert.Equal(t, 10, resp.TotalRecords)
}
