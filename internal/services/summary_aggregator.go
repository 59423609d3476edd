package services

import (
	"asset-dashboard-api/internal/models"

	"github.com/shopspring/decimal"
)

// SummaryInput holds the full record sets the summary is computed from.
type SummaryInput struct {
	Assets     []models.Record
	Instances  []models.Record
	Buildings  []models.Record
	SRBRecords []models.Record
}

// AggregateSummary computes the dashboard headline counts. An asset is
// active when its Is_Active flag is "Yes"; every other asset is inactive.
func AggregateSummary(in SummaryInput) *models.DashboardSummary {
	active := 0
	for _, asset := range in.Assets {
		if v, _ := asset.Get(models.FieldAssetIsActive); NormalizeFlag(v) {
			active++
		}
	}

	total := decimal.Zero
	for _, srb := range in.SRBRecords {
		v, _ := srb.Get(models.FieldSRBAmount)
		total = total.Add(NormalizeAmount(v))
	}

	avg := decimal.Zero
	if len(in.SRBRecords) > 0 {
		avg = total.Div(decimal.NewFromInt(int64(len(in.SRBRecords))))
	}

	return &models.DashboardSummary{
		TotalAssets:     len(in.Assets),
		ActiveAssets:    active,
		InactiveAssets:  len(in.Assets) - active,
		TotalInstances:  len(in.Instances),
		TotalBuildings:  len(in.Buildings),
		TotalSRBRecords: len(in.SRBRecords),
		TotalSRBAmount:  total,
		AvgSRBAmount:    avg,
	}
}
