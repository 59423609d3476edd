package services

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"asset-dashboard-api/internal/cache"
	"asset-dashboard-api/internal/config"
	"asset-dashboard-api/internal/models"

	"github.com/stretchr/testify/suite"
)

type StatsServiceTestSuite struct {
	suite.Suite
	clock   *fakeClock
	fetcher *countingFetcher
	store   *cache.TTLCache[any]
	service *StatsService
}

func TestStatsServiceTestSuite(t *testing.T) {
	suite.Run(t, new(StatsServiceTestSuite))
}

func (s *StatsServiceTestSuite) SetupTest() {
	s.clock = &fakeClock{now: time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)}
	s.fetcher = newCountingFetcher()
	s.store = cache.NewTTLCache[any](5*time.Minute, cache.WithClock[any](s.clock.Now))
	s.service = NewStatsService(s.fetcher, s.store, config.FetchConfig{PageSize: 100}, newTestMetrics(), discardLogger()).(*StatsService)

	s.fetcher.collections[models.CollectionAsset] = []models.Record{
		{models.FieldAssetIsActive: "Yes"},
		{models.FieldAssetIsActive: "No"},
	}
	s.fetcher.collections[models.CollectionInstance] = makeRecords(1, 4)
	s.fetcher.collections[models.CollectionBuildings] = makeRecords(1, 2)
	s.fetcher.collections[models.CollectionSRBDetails] = []models.Record{
		srbRecord(1, json.Number("12000000"), "IT"),
		srbRecord(2, "150000", "IT"),
		srbRecord(3, nil, "LAB"),
	}
}

func (s *StatsServiceTestSuite) TestGetSummary() {
	summary, err := s.service.GetSummary(context.Background())

	s.Require().NoError(err)
	s.Equal(2, summary.TotalAssets)
	s.Equal(1, summary.ActiveAssets)
	s.Equal(1, summary.InactiveAssets)
	s.Equal(4, summary.TotalInstances)
	s.Equal(2, summary.TotalBuildings)
	s.Equal(3, summary.TotalSRBRecords)
	s.Equal("12150000", summary.TotalSRBAmount.String())
}

func (s *StatsServiceTestSuite) TestGetSummary_CachedWithinTTL() {
	first, err := s.service.GetSummary(context.Background())
	s.Require().NoError(err)

	s.clock.Advance(4 * time.Minute)
	second, err := s.service.GetSummary(context.Background())
	s.Require().NoError(err)

	s.Same(first, second)
	s.Equal(1, s.fetcher.walkCount(models.CollectionAsset))
	s.Equal(1, s.fetcher.walkCount(models.CollectionSRBDetails))
}

func (s *StatsServiceTestSuite) TestGetSummary_RefetchedAfterExpiry() {
	_, err := s.service.GetSummary(context.Background())
	s.Require().NoError(err)

	s.fetcher.collections[models.CollectionBuildings] = makeRecords(1, 5)
	s.clock.Advance(5 * time.Minute)

	summary, err := s.service.GetSummary(context.Background())
	s.Require().NoError(err)

	s.Equal(5, summary.TotalBuildings)
	s.Equal(2, s.fetcher.walkCount(models.CollectionBuildings))
}

func (s *StatsServiceTestSuite) TestGetSummary_FailureIsNotCached() {
	s.fetcher.errs[models.CollectionInstance] = &UpstreamError{Collection: models.CollectionInstance, StatusCode: 502, Err: ErrUnexpectedStatus}

	_, err := s.service.GetSummary(context.Background())

	var upstream *UpstreamError
	s.Require().True(errors.As(err, &upstream))
	s.Equal(0, s.fetcher.walkCount(models.CollectionSRBDetails))
	s.Equal(0, s.store.Size())

	delete(s.fetcher.errs, models.CollectionInstance)
	_, err = s.service.GetSummary(context.Background())
	s.NoError(err)
}

func (s *StatsServiceTestSuite) TestGetAmountDistribution() {
	d, err := s.service.GetAmountDistribution(context.Background())

	s.Require().NoError(err)
	s.Equal(3, d.TotalRecords)
	s.Equal(1, d.Bucket(models.BucketAboveThreshold3).Count)
	s.Equal(1, d.Bucket(models.BucketThreshold1To2).Count)
	s.Equal(1, d.Bucket(models.BucketNoAmount).Count)
}

func (s *StatsServiceTestSuite) TestGetCategoryBreakdown() {
	b, err := s.service.GetCategoryBreakdown(context.Background())

	s.Require().NoError(err)
	s.Require().Len(b.Categories, 2)
	s.Equal("IT", b.Categories[0].AssetCode)
	s.Equal(2, b.Categories[0].Count)
}

func (s *StatsServiceTestSuite) TestStatisticsAreCachedSeparately() {
	_, err := s.service.GetAmountDistribution(context.Background())
	s.Require().NoError(err)
	_, err = s.service.GetCategoryBreakdown(context.Background())
	s.Require().NoError(err)

	s.Equal(2, s.fetcher.walkCount(models.CollectionSRBDetails))
	s.Equal(2, s.store.Size())
}

func (s *StatsServiceTestSuite) TestAggregationPanicBecomesAggregationError() {
	s.service.categorize = func([]models.Record) *models.CategoryBreakdown {
		panic("index out of range")
	}

	_, err := s.service.GetCategoryBreakdown(context.Background())

	var aggErr *AggregationError
	s.Require().True(errors.As(err, &aggErr))
	s.Equal(StatCategoryBreakdown, aggErr.Statistic)
	s.Equal(0, s.store.Size())
}

func (s *StatsServiceTestSuite) TestConcurrentMissesShareOneWalk() {
	s.fetcher.delay = 20 * time.Millisecond

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.service.GetAmountDistribution(context.Background())
			s.NoError(err)
		}()
	}
	wg.Wait()

	s.Equal(1, s.fetcher.walkCount(models.CollectionSRBDetails))
}
