package services

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"asset-dashboard-api/internal/cache"
	"asset-dashboard-api/internal/config"
	"asset-dashboard-api/internal/models"

	"golang.org/x/sync/singleflight"
)

// Cache key names of the record lists.
const (
	ListAssetsKey      = "assets:list"
	ListBuildingsKey   = "buildings:list"
	ListCollectionsKey = "collections:list"
)

// Asset status filter values with flag semantics.
const (
	AssetStatusActive   = "active"
	AssetStatusInactive = "inactive"
)

// AssetService serves record lists straight from the record API.
type AssetService struct {
	client            RecordSourceClientInterface
	fetcher           CollectionFetcherInterface
	cache             cache.Cache[[]models.Record]
	group             singleflight.Group
	assetListPageSize int
	fetchPageSize     int
	metrics           MetricsRecorderInterface
	logger            *slog.Logger
}

func NewAssetService(
	client RecordSourceClientInterface,
	fetcher CollectionFetcherInterface,
	store cache.Cache[[]models.Record],
	cfg config.FetchConfig,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) AssetServiceInterface {
	return &AssetService{
		client:            client,
		fetcher:           fetcher,
		cache:             store,
		assetListPageSize: cfg.AssetListPageSize,
		fetchPageSize:     cfg.PageSize,
		metrics:           metrics,
		logger:            logger,
	}
}

// ListAssets returns the first page of assets, filtered in memory by
// building and status.
func (s *AssetService) ListAssets(ctx context.Context, filter models.AssetFilter) ([]models.Record, error) {
	if filter.PageSize <= 0 {
		filter.PageSize = s.assetListPageSize
	}

	key := cache.Key(ListAssetsKey, map[string]string{
		"pageSize": strconv.Itoa(filter.PageSize),
		"building": filter.Building,
		"status":   filter.Status,
	})

	return cachedLookup(ctx, s.cache, &s.group, s.metrics, ListAssetsKey, key, func(ctx context.Context) ([]models.Record, error) {
		page, err := s.client.ListPage(ctx, models.CollectionAsset, PageQuery{Page: 1, PageSize: filter.PageSize})
		if err != nil {
			return nil, fmt.Errorf("failed to list assets: %w", err)
		}

		assets := FilterAssets(page.Records, filter)
		s.logger.DebugContext(ctx, "asset list filtered",
			"records", len(page.Records),
			"matched", len(assets),
			"building", filter.Building,
			"status", filter.Status,
		)
		return assets, nil
	})
}

// ListBuildings returns every building record.
func (s *AssetService) ListBuildings(ctx context.Context) ([]models.Record, error) {
	return s.ListCollection(ctx, models.CollectionBuildings, 0)
}

// ListCollection returns every record of an allow-listed collection.
func (s *AssetService) ListCollection(ctx context.Context, collection string, pageSize int) ([]models.Record, error) {
	if !models.IsKnownCollection(collection) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCollection, collection)
	}
	if pageSize <= 0 {
		pageSize = s.fetchPageSize
	}

	name := ListCollectionsKey
	params := map[string]string{"collection": collection, "pageSize": strconv.Itoa(pageSize)}
	if collection == models.CollectionBuildings {
		name = ListBuildingsKey
		delete(params, "collection")
	}

	return cachedLookup(ctx, s.cache, &s.group, s.metrics, name, cache.Key(name, params), func(ctx context.Context) ([]models.Record, error) {
		records, err := s.fetcher.FetchAll(ctx, collection, pageSize)
		if err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", collection, err)
		}
		return records, nil
	})
}

// FilterAssets keeps the records matching every non-empty filter field.
func FilterAssets(records []models.Record, filter models.AssetFilter) []models.Record {
	result := make([]models.Record, 0, len(records))
	for _, r := range records {
		if filter.Building != "" {
			if v, _ := r.Get(models.FieldAssetBuilding); !LooseEqual(v, filter.Building) {
				continue
			}
		}
		if filter.Status != "" && !matchesStatus(r, filter.Status) {
			continue
		}
		result = append(result, r)
	}
	return result
}

// matchesStatus treats "active" and "inactive" as the Is_Active flag; any
// other value is compared with the raw field.
func matchesStatus(r models.Record, status string) bool {
	v, _ := r.Get(models.FieldAssetIsActive)
	switch strings.ToLower(status) {
	case AssetStatusActive:
		return NormalizeFlag(v)
	case AssetStatusInactive:
		return !NormalizeFlag(v)
	default:
		return LooseEqual(v, status)
	}
}
