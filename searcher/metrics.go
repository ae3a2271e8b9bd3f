package searcher

import (
	"sync/atomic"
	"time"
)

// SearchMetrics describes the work done for a single move.
type SearchMetrics struct {
	StartTime    time.Time
	Duration     time.Duration
	Goroutines   int
	Episodes     int64
	FullPlayouts int64
}

type MetricsCollector interface {
	Start(goroutines int)
	AddFullPlayout()
	AddEpisode()
	Complete() SearchMetrics
}

type metricsCollector struct {
	startTime    time.Time
	goroutines   int
	episodes     atomic.Int64
	fullPlayouts atomic.Int64
}

func NewMetricsCollector() MetricsCollector {
	return &metricsCollector{}
}

func (m *metricsCollector) Start(goroutines int) {
	m.startTime = time.Now()
	m.goroutines = goroutines
}

func (m *metricsCollector) AddFullPlayout() {
	m.fullPlayouts.Add(1)
}

func (m *metricsCollector) AddEpisode() {
	m.episodes.Add(1)
}

func (m *metricsCollector) Complete() SearchMetrics {
	return SearchMetrics{
		StartTime:    m.startTime,
		Duration:     time.Since(m.startTime),
		Goroutines:   m.goroutines,
		Episodes:     m.episodes.Load(),
		FullPlayouts: m.fullPlayouts.Load(),
	}
}

type noMetricsCollector struct{}

func NewNoMetricsCollector() MetricsCollector {
	return &noMetricsCollector{}
}

func (m *noMetricsCollector) Start(int)               {}
func (m *noMetricsCollector) AddFullPlayout()         {}
func (m *noMetricsCollector) AddEpisode()             {}
func (m *noMetricsCollector) Complete() SearchMetrics { return SearchMetrics{} }
