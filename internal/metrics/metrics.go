package metrics

import (
	"sync"
	"time"
)

type Metrics struct {
	mu sync.RWMutex

	// Counters
	RequestsTotal        int64
	Successes            int64
	Translated           int64
	EnglishBypassed      int64
	SummariesAnnounced   int64
	DuplicatesSuppressed int64
	Failures             map[string]int64

	// Timings
	LastProcessingTime    time.Duration
	AverageProcessingTime time.Duration
	TotalProcessingTime   time.Duration
	ProcessingCount       int64

	// Status
	LastRunTime   time.Time
	LastErrorTime time.Time
	LastError     string
}

func New() *Metrics {
	return &Metrics{Failures: make(map[string]int64)}
}

func (m *Metrics) IncrementRequests() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RequestsTotal++
}

func (m *Metrics) IncrementSuccesses() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Successes++
	m.LastRunTime = time.Now()
}

func (m *Metrics) IncrementTranslated() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Translated++
}

func (m *Metrics) IncrementEnglishBypassed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.EnglishBypassed++
}

func (m *Metrics) IncrementAnnounced() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SummariesAnnounced++
}

func (m *Metrics) IncrementDuplicatesSuppressed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DuplicatesSuppressed++
}

// RecordFailure counts a failed run under its category.
func (m *Metrics) RecordFailure(category, message string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Failures == nil {
		m.Failures = make(map[string]int64)
	}
	m.Failures[category]++
	m.LastError = message
	m.LastErrorTime = time.Now()
}

func (m *Metrics) RecordProcessingTime(duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.LastProcessingTime = duration
	m.TotalProcessingTime += duration
	m.ProcessingCount++

	if m.ProcessingCount > 0 {
		m.AverageProcessingTime = m.TotalProcessingTime / time.Duration(m.ProcessingCount)
	}
}

func (m *Metrics) GetStats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	failures := make(map[string]int64, len(m.Failures))
	var failed int64
	for k, v := range m.Failures {
		failures[k] = v
		failed += v
	}

	return map[string]interface{}{
		"requests_total":             m.RequestsTotal,
		"successes":                  m.Successes,
		"failures_total":             failed,
		"failures":                   failures,
		"translated":                 m.Translated,
		"english_bypassed":           m.EnglishBypassed,
		"summaries_announced":        m.SummariesAnnounced,
		"duplicates_suppressed":      m.DuplicatesSuppressed,
		"last_processing_time_ms":    m.LastProcessingTime.Milliseconds(),
		"average_processing_time_ms": m.AverageProcessingTime.Milliseconds(),
		"last_run_time":              m.LastRunTime.Format(time.RFC3339),
		"last_error_time":            m.LastErrorTime.Format(time.RFC3339),
		"last_error":                 m.LastError,
	}
}
