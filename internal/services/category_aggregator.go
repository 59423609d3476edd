package services

import (
	"sort"

	"asset-dashboard-api/internal/models"

	"github.com/shopspring/decimal"
)

// AggregateCategories groups SRB records by category code. Groups are
// ordered by count, largest first; equal counts keep first-seen order.
func AggregateCategories(records []models.Record) *models.CategoryBreakdown {
	groups := make([]models.CategoryGroup, 0)
	index := make(map[string]int)

	for _, r := range records {
		code, _ := r.Get(models.FieldAssetCode)
		key := NormalizeCategoryCode(code)

		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, models.CategoryGroup{
				AssetCode:   key,
				TotalAmount: decimal.Zero,
				Items:       []models.CategoryItem{},
			})
		}

		rawAmount, _ := r.Get(models.FieldSRBAmount)
		amount := NormalizeAmount(rawAmount)
		id, _ := r.Get(models.FieldID)
		srbNo, _ := r.Get(models.FieldSRBNumber)
		description, _ := r.Get(models.FieldDescription)

		g := &groups[i]
		g.Count++
		g.TotalAmount = g.TotalAmount.Add(amount)
		g.Items = append(g.Items, models.CategoryItem{
			ID:          id,
			SRBNo:       srbNo,
			Amount:      amount,
			Description: description,
		})
	}

	sort.SliceStable(groups, func(a, b int) bool {
		return groups[a].Count > groups[b].Count
	})

	return &models.CategoryBreakdown{
		Categories:      groups,
		TotalCategories: len(groups),
		TotalRecords:    len(records),
	}
}
