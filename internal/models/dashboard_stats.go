package models

import "github.com/shopspring/decimal"

// DashboardSummary holds the headline counts shown on the dashboard.
type DashboardSummary struct {
	TotalAssets     int
	ActiveAssets    int
	InactiveAssets  int
	TotalInstances  int
	TotalBuildings  int
	TotalSRBRecords int
	TotalSRBAmount  decimal.Decimal
	AvgSRBAmount    decimal.Decimal
}

// AmountItem is the lightweight view of an SRB record kept inside a bucket.
// ID, SRBNo and Description are passed through as the upstream sent them.
type AmountItem struct {
	ID          any
	SRBNo       any
	Amount      decimal.Decimal
	AssetCode   string
	Description any
}

// BucketStats accumulates the records that fell into one AmountBucket.
type BucketStats struct {
	Count int
	Total decimal.Decimal
	Items []AmountItem
}

// AmountDistribution always carries an entry for every bucket in
// AllAmountBuckets, even when the bucket is empty.
type AmountDistribution struct {
	Ranges       map[AmountBucket]*BucketStats
	TotalRecords int
	TotalAmount  decimal.Decimal
}

// Bucket returns the stats for b, or an empty entry if b is missing.
func (d *AmountDistribution) Bucket(b AmountBucket) *BucketStats {
	if stats, ok := d.Ranges[b]; ok && stats != nil {
		return stats
	}
	return &BucketStats{Total: decimal.Zero, Items: []AmountItem{}}
}

// CategoryItem is the lightweight view of an SRB record inside a category group.
type CategoryItem struct {
	ID          any
	SRBNo       any
	Amount      decimal.Decimal
	Description any
}

// CategoryGroup aggregates the SRB records sharing one category code.
type CategoryGroup struct {
	AssetCode   string
	Count       int
	TotalAmount decimal.Decimal
	Items       []CategoryItem
}

// CategoryBreakdown is the category distribution, Categories sorted by Count
// descending with first-seen order kept among equal counts.
type CategoryBreakdown struct {
	Categories      []CategoryGroup
	TotalCategories int
	TotalRecords    int
}

// AssetFilter narrows the asset list. Empty fields do not filter.
type AssetFilter struct {
	PageSize int
	Building string
	Status   string
}
