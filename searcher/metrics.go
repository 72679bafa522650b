package searcher

import (
	"sync/atomic"
	"time"
)

type SearchMetrics struct {
	StartTime    time.Time
	Duration     time.Duration
	Episodes     int64
	FullPlayouts int64 // Playouts that reached a won or lost game before the cutoff
}

type metricsCollector struct {
	startTime    time.Time
	episodes     atomic.Int64
	fullPlayouts atomic.Int64
}

func (m *metricsCollector) start() {
	m.startTime = time.Now()
}

func (m *metricsCollector) addEpisode() {
	m.episodes.Add(1)
}

func (m *metricsCollector) addFullPlayout() {
	m.fullPlayouts.Add(1)
}

func (m *metricsCollector) complete() SearchMetrics {
	return SearchMetrics{
		StartTime:    m.startTime,
		Duration:     time.Since(m.startTime),
		Episodes:     m.episodes.Load(),
		FullPlayouts: m.fullPlayouts.Load(),
	}
}
