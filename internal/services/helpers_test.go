package services

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"asset-dashboard-api/internal/models"

	"github.com/prometheus/client_golang/prometheus"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestMetrics() MetricsRecorderInterface {
	return NewPrometheusMetrics(prometheus.NewRegistry())
}

func intPtr(n int) *int {
	return &n
}

// makeRecords builds n SRB-like records with sequential ids starting at from.
func makeRecords(from, n int) []models.Record {
	records := make([]models.Record, 0, n)
	for i := 0; i < n; i++ {
		records = append(records, models.Record{models.FieldID: from + i})
	}
	return records
}

// scriptedClient serves pre-computed pages keyed by page number.
type scriptedClient struct {
	mu      sync.Mutex
	pages   map[int]*models.Page
	errs    map[int]error
	queries []PageQuery
}

func newScriptedClient() *scriptedClient {
	return &scriptedClient{
		pages: make(map[int]*models.Page),
		errs:  make(map[int]error),
	}
}

func (c *scriptedClient) ListPage(_ context.Context, _ string, query PageQuery) (*models.Page, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.queries = append(c.queries, query)
	if err, ok := c.errs[query.Page]; ok {
		return nil, err
	}
	if p, ok := c.pages[query.Page]; ok {
		return p, nil
	}
	return &models.Page{Records: []models.Record{}}, nil
}

func (c *scriptedClient) calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.queries)
}

// countingFetcher returns fixed collections and counts walks per collection.
type countingFetcher struct {
	mu          sync.Mutex
	collections map[string][]models.Record
	errs        map[string]error
	walks       map[string]int
	delay       time.Duration
}

func newCountingFetcher() *countingFetcher {
	return &countingFetcher{
		collections: make(map[string][]models.Record),
		errs:        make(map[string]error),
		walks:       make(map[string]int),
	}
}

func (f *countingFetcher) FetchAll(_ context.Context, collection string, _ int) ([]models.Record, error) {
	if f.delay > 0 {
		time.Sleep(f.delay)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.walks[collection]++
	if err, ok := f.errs[collection]; ok {
		return nil, err
	}
	return f.collections[collection], nil
}

func (f *countingFetcher) walkCount(collection string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.walks[collection]
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
