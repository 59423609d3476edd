package services

import (
	"context"
	"errors"
	"time"

	"asset-dashboard-api/internal/cache"

	"golang.org/x/sync/singleflight"
)

// cachedLookup returns the cached value for key or computes and stores it.
// Concurrent misses on the same key share one computation. The computation
// is detached from the caller's cancellation so one client going away does
// not fail the others waiting on it.
func cachedLookup[T any](
	ctx context.Context,
	store cache.Cache[T],
	group *singleflight.Group,
	metrics MetricsRecorderInterface,
	cacheName, key string,
	compute func(ctx context.Context) (T, error),
) (T, error) {
	tags := map[string]string{"cache": cacheName}

	if v, ok := store.Get(key); ok {
		metrics.IncrementCounter(MetricCacheHit, tags)
		return v, nil
	}
	metrics.IncrementCounter(MetricCacheMiss, tags)

	v, err, _ := group.Do(key, func() (any, error) {
		if v, ok := store.Get(key); ok {
			return v, nil
		}

		start := time.Now()
		v, err := compute(context.WithoutCancel(ctx))
		metrics.RecordProcessingTime(MetricStatisticCompute, time.Since(start))
		if err != nil {
			metrics.IncrementCounter(MetricStatisticFailed, map[string]string{
				"statistic": cacheName,
				"reason":    failureReason(err),
			})
			return nil, err
		}

		store.Set(key, v)
		return v, nil
	})

	var zero T
	if err != nil {
		return zero, err
	}
	return v.(T), nil
}

// runAggregation calls fn and turns a panic into an AggregationError.
func runAggregation[T any](statistic string, fn func() T) (result T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &AggregationError{Statistic: statistic, Cause: r}
		}
	}()
	return fn(), nil
}

func failureReason(err error) string {
	var upstreamErr *UpstreamError
	var malformedErr *MalformedResponseError
	var aggregationErr *AggregationError

	switch {
	case errors.As(err, &malformedErr):
		return "malformed_response"
	case errors.As(err, &upstreamErr):
		return "upstream"
	case errors.As(err, &aggregationErr):
		return "aggregation"
	default:
		return "other"
	}
}
