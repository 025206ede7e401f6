package searcher

import (
	"sync/atomic"
	"time"
)

// SearchMetrics summarizes one ChooseAction call.
type SearchMetrics struct {
	StartTime    time.Time
	Duration     time.Duration
	Nodes        int64
	Episodes     int64
	FullPlayouts int64
	FallbackUsed bool
}

type MetricsCollector interface {
	Start()
	AddNodes(n int64)
	AddEpisode()
	AddFullPlayout()
	SetFallback()
	Complete() SearchMetrics
}

type metricsCollector struct {
	startTime    time.Time
	nodes        atomic.Int64
	episodes     atomic.Int64
	fullPlayouts atomic.Int64
	fallbackUsed atomic.Bool
}

func NewMetricsCollector() MetricsCollector {
	return &metricsCollector{}
}

func (m *metricsCollector) Start() {
	m.startTime = time.Now()
	m.nodes.Store(0)
	m.episodes.Store(0)
	m.fullPlayouts.Store(0)
	m.fallbackUsed.Store(false)
}

func (m *metricsCollector) AddNodes(n int64) {
	m.nodes.Add(n)
}

func (m *metricsCollector) AddEpisode() {
	m.episodes.Add(1)
}

func (m *metricsCollector) AddFullPlayout() {
	m.fullPlayouts.Add(1)
}

func (m *metricsCollector) SetFallback() {
	m.fallbackUsed.Store(true)
}

func (m *metricsCollector) Complete() SearchMetrics {
	return SearchMetrics{
		StartTime:    m.startTime,
		Duration:     time.Since(m.startTime),
		Nodes:        m.nodes.Load(),
		Episodes:     m.episodes.Load(),
		FullPlayouts: m.fullPlayouts.Load(),
		FallbackUsed: m.fallbackUsed.Load(),
	}
}

type noMetricsCollector struct{}

func NewNoMetricsCollector() MetricsCollector {
	return &noMetricsCollector{}
}

func (noMetricsCollector) Start()                  {}
func (noMetricsCollector) AddNodes(int64)          {}
func (noMetricsCollector) AddEpisode()             {}
func (noMetricsCollector) AddFullPlayout()         {}
func (noMetricsCollector) SetFallback()            {}
func (noMetricsCollector) Complete() SearchMetrics { return SearchMetrics{} }
