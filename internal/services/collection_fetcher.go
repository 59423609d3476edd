package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"asset-dashboard-api/internal/config"
	"asset-dashboard-api/internal/logging"
	"asset-dashboard-api/internal/models"
)

type fetchState int

const (
	fetchStateFetching fetchState = iota
	fetchStateDone
	fetchStateFailed
)

func (s fetchState) String() string {
	switch s {
	case fetchStateFetching:
		return "fetching"
	case fetchStateDone:
		return "done"
	case fetchStateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// collectionWalk is the pagination state of one FetchAll call.
type collectionWalk struct {
	collection string
	pageSize   int
	page       int
	pages      int
	state      fetchState
	records    []models.Record
	err        error
}

func newCollectionWalk(collection string, pageSize int) *collectionWalk {
	return &collectionWalk{
		collection: collection,
		pageSize:   pageSize,
		page:       1,
		state:      fetchStateFetching,
		records:    make([]models.Record, 0),
	}
}

// advance consumes one page and decides whether another is needed.
// meta.count, when reported, wins over the short-page heuristic.
func (w *collectionWalk) advance(p *models.Page) {
	w.pages++
	w.records = append(w.records, p.Records...)

	switch {
	case len(p.Records) == 0:
		w.state = fetchStateDone
	case p.Total != nil:
		if len(w.records) >= *p.Total {
			w.records = w.records[:*p.Total]
			w.state = fetchStateDone
		}
	case len(p.Records) < w.pageSize:
		w.state = fetchStateDone
	}

	if w.state == fetchStateFetching {
		w.page++
	}
}

// fail aborts the walk. Records gathered so far are dropped.
func (w *collectionWalk) fail(err error) {
	w.state = fetchStateFailed
	w.err = err
	w.records = nil
}

// CollectionFetcher materializes a whole collection by walking its pages in
// order, one request at a time.
type CollectionFetcher struct {
	client          RecordSourceClientInterface
	defaultPageSize int
	maxPages        int
	metrics         MetricsRecorderInterface
	logger          *slog.Logger
}

func NewCollectionFetcher(
	client RecordSourceClientInterface,
	cfg config.FetchConfig,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) CollectionFetcherInterface {
	return &CollectionFetcher{
		client:          client,
		defaultPageSize: cfg.PageSize,
		maxPages:        cfg.MaxPages,
		metrics:         metrics,
		logger:          logger,
	}
}

// FetchAll returns every record of collection in upstream order. A
// non-positive pageSize uses the configured default.
func (f *CollectionFetcher) FetchAll(ctx context.Context, collection string, pageSize int) ([]models.Record, error) {
	if pageSize <= 0 {
		pageSize = f.defaultPageSize
	}

	start := time.Now()
	walk := newCollectionWalk(collection, pageSize)

	for walk.state == fetchStateFetching {
		if f.maxPages > 0 && walk.page > f.maxPages {
			walk.fail(&UpstreamError{
				Collection: collection,
				Err:        fmt.Errorf("%w: stopped after %d pages", ErrPageLimitExceeded, f.maxPages),
			})
			break
		}

		page, err := f.client.ListPage(ctx, collection, PageQuery{Page: walk.page, PageSize: pageSize})
		if err != nil {
			walk.fail(fmt.Errorf("fetch %s page %d: %w", collection, walk.page, err))
			break
		}

		f.metrics.IncrementCounter(MetricUpstreamPages, map[string]string{"collection": collection})
		walk.advance(page)
	}

	if walk.state == fetchStateFailed {
		f.logger.WarnContext(ctx, "collection walk failed",
			"collection", collection,
			"page", walk.page,
			"error", walk.err,
			"duration_ms", time.Since(start).Milliseconds(),
			"trace_id", logging.TraceID(ctx),
		)
		return nil, walk.err
	}

	f.metrics.RecordGauge(MetricFetchedRecords, float64(len(walk.records)), map[string]string{"collection": collection})
	f.logger.InfoContext(ctx, "collection fetched",
		"collection", collection,
		"pages", walk.pages,
		"records", len(walk.records),
		"duration_ms", time.Since(start).Milliseconds(),
		"trace_id", logging.TraceID(ctx),
	)

	return walk.records, nil
}
