package services

import (
	"context"
	"time"

	"asset-dashboard-api/internal/models"
)

// PageQuery selects one window of a collection. Page is 1-based.
type PageQuery struct {
	Page     int
	PageSize int
}

// RecordSourceClientInterface performs single list requests against the
// record API.
type RecordSourceClientInterface interface {
	ListPage(ctx context.Context, collection string, query PageQuery) (*models.Page, error)
}

// CollectionFetcherInterface walks every page of a collection.
type CollectionFetcherInterface interface {
	FetchAll(ctx context.Context, collection string, pageSize int) ([]models.Record, error)
}

// StatsServiceInterface serves the cached dashboard statistics
type StatsServiceInterface interface {
	GetSummary(ctx context.Context) (*models.DashboardSummary, error)
	GetAmountDistribution(ctx context.Context) (*models.AmountDistribution, error)
	GetCategoryBreakdown(ctx context.Context) (*models.CategoryBreakdown, error)
}

// AssetServiceInterface serves the cached record lists
type AssetServiceInterface interface {
	ListAssets(ctx context.Context, filter models.AssetFilter) ([]models.Record, error)
	ListBuildings(ctx context.Context) ([]models.Record, error)
	ListCollection(ctx context.Context, collection string, pageSize int) ([]models.Record, error)
}

type MetricsRecorderInterface interface {
	IncrementCounter(name string, tags map[string]string)
	RecordProcessingTime(name string, duration time.Duration)
	RecordGauge(name string, value float64, tags map[string]string)
}

type CircuitBreakerInterface interface {
	IsOpen() bool
	RecordSuccess()
	RecordFailure()
	GetState() models.CircuitBreakerState
}
