package metrics

import (
	"sync"
	"time"
)

type Metrics struct {
	mu sync.RWMutex

	// Counters
	AggregationsServed     int64
	ArticlesProcessed      int64
	InsufficientContent    int64
	ArticleErrors          int64
	SummariesGenerated     int64
	FailedSummaries        int64
	SuccessfulTranslations int64
	FailedTranslations     int64
	FetchErrors            int64

	// Timings
	LastProcessingTime    time.Duration
	AverageProcessingTime time.Duration
	TotalProcessingTime   time.Duration
	ProcessingCount       int64

	// Status
	LastRunTime   time.Time
	LastErrorTime time.Time
	LastError     string
	IsHealthy     bool
}

var Global = New()

func New() *Metrics {
	return &Metrics{IsHealthy: true}
}

func (m *Metrics) IncrementAggregations() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AggregationsServed++
}

func (m *Metrics) IncrementArticlesProcessed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ArticlesProcessed++
}

func (m *Metrics) IncrementInsufficientContent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.InsufficientContent++
}

func (m *Metrics) IncrementArticleErrors() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ArticleErrors++
}

func (m *Metrics) IncrementSummariesGenerated() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SummariesGenerated++
}

func (m *Metrics) IncrementFailedSummaries() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FailedSummaries++
}

func (m *Metrics) IncrementSuccessfulTranslations() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SuccessfulTranslations++
}

func (m *Metrics) IncrementFailedTranslations() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FailedTranslations++
}

func (m *Metrics) IncrementFetchErrors() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FetchErrors++
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

func (m *Metrics) Healthy() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.IsHealthy
}

func (m *Metrics) GetStats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]interface{}{
		"aggregations_served":        m.AggregationsServed,
		"articles_processed":         m.ArticlesProcessed,
		"insufficient_content":       m.InsufficientContent,
		"article_errors":             m.ArticleErrors,
		"summaries_generated":        m.SummariesGenerated,
		"failed_summaries":           m.FailedSummaries,
		"successful_translations":    m.SuccessfulTranslations,
		"failed_translations":        m.FailedTranslations,
		"fetch_errors":               m.FetchErrors,
		"last_processing_time_ms":    m.LastProcessingTime.Milliseconds(),
		"average_processing_time_ms": m.AverageProcessingTime.Milliseconds(),
		"last_run_time":              m.LastRunTime.Format(time.RFC3339),
		"last_error_time":            m.LastErrorTime.Format(time.RFC3339),
		"last_error":                 m.LastError,
		"is_healthy":                 m.IsHealthy,
	}
}
