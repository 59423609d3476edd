package cache

import (
	"log/slog"
	"sort"
	"strings"
	"time"
)

// Cache defines a generic cache interface
type Cache[T any] interface {
	// Get retrieves a value from the cache
	Get(key string) (T, bool)

	// Set stores a value in the cache
	Set(key string, data T)
}

// Cleaner interface for caches that support cleanup
type Cleaner interface {
	CleanExpired() int
	// Size reports the entries still held, expired or not
	Size() int
}

// Manager periodically sweeps expired entries out of registered caches.
type Manager struct {
	caches      []Cleaner
	stopCleanup chan struct{}
	cleanupDone chan struct{}
	started     bool
}

// NewManager creates a new cache manager
func NewManager() *Manager {
	return &Manager{
		caches:      make([]Cleaner, 0),
		stopCleanup: make(chan struct{}),
		cleanupDone: make(chan struct{}),
	}
}

// Register adds a cache to the manager for cleanup
func (m *Manager) Register(cache Cleaner) {
	m.caches = append(m.caches, cache)
}

// StartCleanup begins periodic cleanup of all registered caches
func (m *Manager) StartCleanup(interval time.Duration) {
	m.started = true
	go m.cleanup(interval)
}

// Sweep runs one cleanup pass and returns the number of removed entries.
func (m *Manager) Sweep() int {
	total := 0
	for _, cache := range m.caches {
		total += cache.CleanExpired()
	}
	return total
}

// Size returns the number of entries held across all registered caches.
func (m *Manager) Size() int {
	total := 0
	for _, cache := range m.caches {
		total += cache.Size()
	}
	return total
}

func (m *Manager) cleanup(interval time.Duration) {
	defer close(m.cleanupDone)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if removed := m.Sweep(); removed > 0 {
				slog.Debug("expired cache entries removed", "removed", removed, "remaining", m.Size())
			}
		case <-m.stopCleanup:
			return
		}
	}
}

// Stop gracefully stops the cleanup routine
func (m *Manager) Stop() {
	if !m.started {
		return
	}
	m.started = false
	close(m.stopCleanup)
	<-m.cleanupDone
}

// Key builds a deterministic cache key from a statistic name and the
// parameters that affect its result. Parameters are sorted by name so the
// caller's map iteration order never matters; empty values are kept so
// "building=" and an absent building filter share a key.
func Key(name string, params map[string]string) string {
	names := make([]string, 0, len(params))
	for k := range params {
		names = append(names, k)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString(name)
	for _, k := range names {
		b.WriteByte('|')
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(escapeKeyPart(params[k]))
	}
	return b.String()
}

// escapeKeyPart keeps parameter values from forging separators.
func escapeKeyPart(v string) string {
	return strings.NewReplacer(`\`, `\\`, "|", `\|`, "=", `\=`).Replace(v)
}
