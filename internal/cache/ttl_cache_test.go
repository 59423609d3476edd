package cache

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

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

type TTLCacheTestSuite struct {
	suite.Suite
	clock *fakeClock
	cache *TTLCache[string]
}

func TestTTLCacheTestSuite(t *testing.T) {
	suite.Run(t, new(TTLCacheTestSuite))
}

func (s *TTLCacheTestSuite) SetupTest() {
	s.clock = &fakeClock{now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	s.cache = NewTTLCache[string](5*time.Minute, WithClock[string](s.clock.Now))
}

func (s *TTLCacheTestSuite) TestGet_Miss() {
	_, ok := s.cache.Get("missing")
	s.False(ok)
}

func (s *TTLCacheTestSuite) TestGet_HitWithinTTL() {
	s.cache.Set("k", "v")
	s.clock.Advance(5*time.Minute - time.Nanosecond)

	got, ok := s.cache.Get("k")
	s.True(ok)
	s.Equal("v", got)
}

func (s *TTLCacheTestSuite) TestGet_ExpiredAtExactTTL() {
	s.cache.Set("k", "v")
	s.clock.Advance(5 * time.Minute)

	_, ok := s.cache.Get("k")
	s.False(ok)
	s.Equal(0, s.cache.Size())
}

func (s *TTLCacheTestSuite) TestSet_OverwriteRestartsClock() {
	s.cache.Set("k", "old")
	s.clock.Advance(4 * time.Minute)
	s.cache.Set("k", "new")
	s.clock.Advance(4 * time.Minute)

	got, ok := s.cache.Get("k")
	s.True(ok)
	s.Equal("new", got)
}

func (s *TTLCacheTestSuite) TestCleanExpired_RemovesOnlyExpired() {
	s.cache.Set("old", "1")
	s.clock.Advance(3 * time.Minute)
	s.cache.Set("fresh", "2")
	s.clock.Advance(2 * time.Minute)

	removed := s.cache.CleanExpired()

	s.Equal(1, removed)
	s.Equal(1, s.cache.Size())
	_, ok := s.cache.Get("fresh")
	s.True(ok)
}

func (s *TTLCacheTestSuite) TestConcurrentAccess() {
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := string(rune('a' + i%26))
			s.cache.Set(key, key)
			s.cache.Get(key)
			s.cache.CleanExpired()
		}(i)
	}
	wg.Wait()

	s.LessOrEqual(s.cache.Size(), 26)
}
