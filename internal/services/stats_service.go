package services

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"asset-dashboard-api/internal/cache"
	"asset-dashboard-api/internal/config"
	"asset-dashboard-api/internal/logging"
	"asset-dashboard-api/internal/models"

	"golang.org/x/sync/singleflight"
)

// Cache key names of the dashboard statistics.
const (
	StatSummary            = "stats:summary"
	StatAmountDistribution = "stats:srb-amount-distribution"
	StatCategoryBreakdown  = "stats:asset-by-category"
)

// StatsService computes dashboard statistics from full collection walks and
// keeps each result in the response cache until it expires.
type StatsService struct {
	fetcher  CollectionFetcherInterface
	cache    cache.Cache[any]
	group    singleflight.Group
	pageSize int
	metrics  MetricsRecorderInterface
	logger   *slog.Logger

	summarize  func(SummaryInput) *models.DashboardSummary
	distribute func([]models.Record) *models.AmountDistribution
	categorize func([]models.Record) *models.CategoryBreakdown
}

func NewStatsService(
	fetcher CollectionFetcherInterface,
	store cache.Cache[any],
	cfg config.FetchConfig,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) StatsServiceInterface {
	return &StatsService{
		fetcher:    fetcher,
		cache:      store,
		pageSize:   cfg.PageSize,
		metrics:    metrics,
		logger:     logger,
		summarize:  AggregateSummary,
		distribute: AggregateAmountDistribution,
		categorize: AggregateCategories,
	}
}

// GetSummary returns the headline counts. The four collections are walked
// one after another.
func (s *StatsService) GetSummary(ctx context.Context) (*models.DashboardSummary, error) {
	v, err := cachedLookup(ctx, s.cache, &s.group, s.metrics, StatSummary, s.key(StatSummary), func(ctx context.Context) (any, error) {
		var in SummaryInput
		var err error

		if in.Assets, err = s.fetcher.FetchAll(ctx, models.CollectionAsset, s.pageSize); err != nil {
			return nil, fmt.Errorf("failed to fetch assets: %w", err)
		}
		if in.Instances, err = s.fetcher.FetchAll(ctx, models.CollectionInstance, s.pageSize); err != nil {
			return nil, fmt.Errorf("failed to fetch instances: %w", err)
		}
		if in.Buildings, err = s.fetcher.FetchAll(ctx, models.CollectionBuildings, s.pageSize); err != nil {
			return nil, fmt.Errorf("failed to fetch buildings: %w", err)
		}
		if in.SRBRecords, err = s.fetcher.FetchAll(ctx, models.CollectionSRBDetails, s.pageSize); err != nil {
			return nil, fmt.Errorf("failed to fetch SRB records: %w", err)
		}

		summary, err := runAggregation(StatSummary, func() *models.DashboardSummary {
			return s.summarize(in)
		})
		if err != nil {
			return nil, err
		}

		s.logger.InfoContext(ctx, "summary computed",
			"total_assets", summary.TotalAssets,
			"total_srb_records", summary.TotalSRBRecords,
			"trace_id", logging.TraceID(ctx),
		)
		return summary, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*models.DashboardSummary), nil
}

// GetAmountDistribution returns SRB records partitioned by amount.
func (s *StatsService) GetAmountDistribution(ctx context.Context) (*models.AmountDistribution, error) {
	v, err := cachedLookup(ctx, s.cache, &s.group, s.metrics, StatAmountDistribution, s.key(StatAmountDistribution), func(ctx context.Context) (any, error) {
		records, err := s.fetcher.FetchAll(ctx, models.CollectionSRBDetails, s.pageSize)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch SRB records: %w", err)
		}

		distribution, err := runAggregation(StatAmountDistribution, func() *models.AmountDistribution {
			return s.distribute(records)
		})
		if err != nil {
			return nil, err
		}
		return distribution, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*models.AmountDistribution), nil
}

// GetCategoryBreakdown returns SRB records grouped by category code.
func (s *StatsService) GetCategoryBreakdown(ctx context.Context) (*models.CategoryBreakdown, error) {
	v, err := cachedLookup(ctx, s.cache, &s.group, s.metrics, StatCategoryBreakdown, s.key(StatCategoryBreakdown), func(ctx context.Context) (any, error) {
		records, err := s.fetcher.FetchAll(ctx, models.CollectionSRBDetails, s.pageSize)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch SRB records: %w", err)
		}

		breakdown, err := runAggregation(StatCategoryBreakdown, func() *models.CategoryBreakdown {
			return s.categorize(records)
		})
		if err != nil {
			return nil, err
		}
		return breakdown, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*models.CategoryBreakdown), nil
}

func (s *StatsService) key(name string) string {
	return cache.Key(name, map[string]string{"pageSize": strconv.Itoa(s.pageSize)})
}
