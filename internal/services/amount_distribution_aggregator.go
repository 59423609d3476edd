package services

import (
	"asset-dashboard-api/internal/models"

	"github.com/shopspring/decimal"
)

// AggregateAmountDistribution partitions SRB records into amount buckets.
// Every bucket is present in the result, empty or not.
func AggregateAmountDistribution(records []models.Record) *models.AmountDistribution {
	ranges := make(map[models.AmountBucket]*models.BucketStats, len(models.AllAmountBuckets))
	for _, b := range models.AllAmountBuckets {
		ranges[b] = &models.BucketStats{Total: decimal.Zero, Items: []models.AmountItem{}}
	}

	for _, r := range records {
		rawAmount, _ := r.Get(models.FieldSRBAmount)
		amount := NormalizeAmount(rawAmount)
		bucket := ranges[ClassifyAmount(amount)]

		id, _ := r.Get(models.FieldID)
		srbNo, _ := r.Get(models.FieldSRBNumber)
		code, _ := r.Get(models.FieldAssetCode)
		description, _ := r.Get(models.FieldDescription)

		bucket.Count++
		bucket.Total = bucket.Total.Add(amount)
		bucket.Items = append(bucket.Items, models.AmountItem{
			ID:          id,
			SRBNo:       srbNo,
			Amount:      amount,
			AssetCode:   NormalizeCategoryCode(code),
			Description: description,
		})
	}

	total := decimal.Zero
	for _, b := range models.AllAmountBuckets {
		total = total.Add(ranges[b].Total)
	}

	return &models.AmountDistribution{
		Ranges:       ranges,
		TotalRecords: len(records),
		TotalAmount:  total,
	}
}
