package metrics

import (
	"sync"
	"time"
)

// Metrics tracks counters for one running dashboard process.
type Metrics struct {
	mu sync.RWMutex

	// Counters
	FeedsFetched       int64
	FetchErrors        int64
	ItemsProcessed     int64
	DuplicatesFiltered int64
	DigestsComposed    int64
	CacheHits          int64

	// Timings
	LastRenderTime    time.Duration
	AverageRenderTime time.Duration
	TotalRenderTime   time.Duration
	RenderCount       int64

	// Status
	LastRunTime   time.Time
	LastErrorTime time.Time
	LastError     string
	IsHealthy     bool
}

var Global = &Metrics{IsHealthy: true}

func (m *Metrics) IncrementFeedsFetched() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FeedsFetched++
}

func (m *Metrics) IncrementFetchErrors() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FetchErrors++
}

func (m *Metrics) AddItemsProcessed(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ItemsProcessed += int64(n)
}

func (m *Metrics) IncrementDuplicatesFiltered() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DuplicatesFiltered++
}

func (m *Metrics) IncrementDigestsComposed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DigestsComposed++
}

func (m *Metrics) IncrementCacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheHits++
}

func (m *Metrics) RecordRenderTime(duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.LastRenderTime = duration
	m.TotalRenderTime += duration
	m.RenderCount++

	if m.RenderCount > 0 {
		m.AverageRenderTime = m.TotalRenderTime / time.Duration(m.RenderCount)
	}
}

func (m *Metrics) SetLastRun() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastRunTime = time.Now()
	m.IsHealthy = true
}

func (m *Metrics) SetError(err string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastError = err
	m.LastErrorTime = time.Now()
	m.IsHealthy = false
}

func (m *Metrics) GetStats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]interface{}{
		"feeds_fetched":          m.FeedsFetched,
		"fetch_errors":           m.FetchErrors,
		"items_processed":        m.ItemsProcessed,
		"duplicates_filtered":    m.DuplicatesFiltered,
		"digests_composed":       m.DigestsComposed,
		"cache_hits":             m.CacheHits,
		"last_render_time_ms":    m.LastRenderTime.Milliseconds(),
		"average_render_time_ms": m.AverageRenderTime.Milliseconds(),
		"last_run_time":          m.LastRunTime.Format(time.RFC3339),
		"last_error_time":        m.LastErrorTime.Format(time.RFC3339),
		"last_error":             m.LastError,
		"is_healthy":             m.IsHealthy,
	}
}
