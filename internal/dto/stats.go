package dto

import (
	"math"

	"asset-dashboard-api/internal/models"

	"github.com/shopspring/decimal"
)

type SummaryResponse struct {
	TotalAssets     int     `json:"totalAssets"`
	ActiveAssets    int     `json:"activeAssets"`
	InactiveAssets  int     `json:"inactiveAssets"`
	TotalInstances  int     `json:"totalInstances"`
	TotalBuildings  int     `json:"totalBuildings"`
	TotalSRBRecords int     `json:"totalSRBRecords"`
	TotalSRBAmount  float64 `json:"totalSRBAmount"`
	AvgSRBAmount    float64 `json:"avgSRBAmount"`
}

// ---------- Amount distribution ----------

type AmountItemResponse struct {
	ID          any     `json:"id"`
	SRBNo       any     `json:"srbNo"`
	Amount      float64 `json:"amount"`
	AssetCode   string  `json:"assetCode"`
	Description any     `json:"description"`
}

type BucketResponse struct {
	Count int                  `json:"count"`
	Total float64              `json:"total"`
	Items []AmountItemResponse `json:"items"`
}

type AmountRangesResponse struct {
	AboveThreshold3 BucketResponse `json:"aboveThreshold3"`
	Threshold2To3   BucketResponse `json:"threshold2To3"`
	Threshold1To2   BucketResponse `json:"threshold1To2"`
	BelowThreshold1 BucketResponse `json:"belowThreshold1"`
	NoAmount        BucketResponse `json:"noAmount"`
}

type AmountDistributionResponse struct {
	Ranges       AmountRangesResponse `json:"ranges"`
	TotalRecords int                  `json:"totalRecords"`
	TotalAmount  float64              `json:"totalAmount"`
}

// ---------- Category breakdown ----------

type CategoryItemResponse struct {
	ID          any     `json:"id"`
	SRBNo       any     `json:"srbNo"`
	Amount      float64 `json:"amount"`
	Description any     `json:"description"`
}

type CategoryGroupResponse struct {
	AssetCode   string                 `json:"assetCode"`
	Count       int                    `json:"count"`
	TotalAmount float64                `json:"totalAmount"`
	Items       []CategoryItemResponse `json:"items"`
}

type CategoryBreakdownResponse struct {
	Categories      []CategoryGroupResponse `json:"categories"`
	TotalCategories int                     `json:"totalCategories"`
	TotalRecords    int                     `json:"totalRecords"`
}

// ---------- Health ----------

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

func NewSummaryResponse(s *models.DashboardSummary) SummaryResponse {
	return SummaryResponse{
		TotalAssets:     s.TotalAssets,
		ActiveAssets:    s.ActiveAssets,
		InactiveAssets:  s.InactiveAssets,
		TotalInstances:  s.TotalInstances,
		TotalBuildings:  s.TotalBuildings,
		TotalSRBRecords: s.TotalSRBRecords,
		TotalSRBAmount:  amountValue(s.TotalSRBAmount),
		AvgSRBAmount:    amountValue(s.AvgSRBAmount),
	}
}

func NewAmountDistributionResponse(d *models.AmountDistribution) AmountDistributionResponse {
	return AmountDistributionResponse{
		Ranges: AmountRangesResponse{
			AboveThreshold3: newBucketResponse(d.Bucket(models.BucketAboveThreshold3)),
			Threshold2To3:   newBucketResponse(d.Bucket(models.BucketThreshold2To3)),
			Threshold1To2:   newBucketResponse(d.Bucket(models.BucketThreshold1To2)),
			BelowThreshold1: newBucketResponse(d.Bucket(models.BucketBelowThreshold1)),
			NoAmount:        newBucketResponse(d.Bucket(models.BucketNoAmount)),
		},
		TotalRecords: d.TotalRecords,
		TotalAmount:  amountValue(d.TotalAmount),
	}
}

func newBucketResponse(b *models.BucketStats) BucketResponse {
	items := make([]AmountItemResponse, 0, len(b.Items))
	for _, it := range b.Items {
		items = append(items, AmountItemResponse{
			ID:          it.ID,
			SRBNo:       it.SRBNo,
			Amount:      amountValue(it.Amount),
			AssetCode:   it.AssetCode,
			Description: it.Description,
		})
	}
	return BucketResponse{
		Count: b.Count,
		Total: amountValue(b.Total),
		Items: items,
	}
}

func NewCategoryBreakdownResponse(b *models.CategoryBreakdown) CategoryBreakdownResponse {
	categories := make([]CategoryGroupResponse, 0, len(b.Categories))
	for _, g := range b.Categories {
		items := make([]CategoryItemResponse, 0, len(g.Items))
		for _, it := range g.Items {
			items = append(items, CategoryItemResponse{
				ID:          it.ID,
				SRBNo:       it.SRBNo,
				Amount:      amountValue(it.Amount),
				Description: it.Description,
			})
		}
		categories = append(categories, CategoryGroupResponse{
			AssetCode:   g.AssetCode,
			Count:       g.Count,
			TotalAmount: amountValue(g.TotalAmount),
			Items:       items,
		})
	}
	return CategoryBreakdownResponse{
		Categories:      categories,
		TotalCategories: b.TotalCategories,
		TotalRecords:    b.TotalRecords,
	}
}

// amountValue converts an amount to a JSON number. Sums beyond the float64
// range are clamped since encoding/json rejects infinities.
func amountValue(d decimal.Decimal) float64 {
	f := d.InexactFloat64()
	switch {
	case math.IsInf(f, 1):
		return math.MaxFloat64
	case math.IsInf(f, -1):
		return -math.MaxFloat64
	}
	return f
}
