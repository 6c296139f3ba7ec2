package server

import (
	"sync/atomic"
	"time"
)

// Metrics holds server runtime metrics
type Metrics struct {
	ConnectionsTotal  atomic.Int64
	ActiveConnections atomic.Int64
	AcceptErrors      atomic.Int64
	ReadErrors        atomic.Int64
	WriteErrors       atomic.Int64

	RequestsTotal atomic.Int64
	BadRequests   atomic.Int64
	Panics        atomic.Int64
	Errors4xx     atomic.Int64
	Errors5xx     atomic.Int64

	// Latency tracking (simplified - use histogram in production)
	TotalLatencyNs atomic.Int64
}

// NewMetrics creates a new metrics instance
func NewMetrics() *Metrics {
	return &Metrics{}
}

func (m *Metrics) connectionOpened() {
	m.ConnectionsTotal.Add(1)
	m.ActiveConnections.Add(1)
}

func (m *Metrics) connectionClosed() {
	m.ActiveConnections.Add(-1)
}

// RecordRequest records a response that was written in full
func (m *Metrics) RecordRequest(statusCode int, duration time.Duration) {
	m.RequestsTotal.Add(1)
	m.TotalLatencyNs.Add(duration.Nanoseconds())

	if statusCode >= 400 && statusCode < 500 {
		m.Errors4xx.Add(1)
	} else if statusCode >= 500 {
		m.Errors5xx.Add(1)
	}
}

// AverageLatency returns average request latency
func (m *Metrics) AverageLatency() time.Duration {
	totalReqs := m.RequestsTotal.Load()
	if totalReqs == 0 {
		return 0
	}

	avgNs := m.TotalLatencyNs.Load() / totalReqs
	return time.Duration(avgNs)
}

// MetricsSnapshot is a point-in-time copy of Metrics.
type MetricsSnapshot struct {
	ConnectionsTotal  int64
	ActiveConnections int64
	AcceptErrors      int64
	ReadErrors        int64
	WriteErrors       int64
	RequestsTotal     int64
	BadRequests       int64
	Panics            int64
	Errors4xx         int64
	Errors5xx         int64
	AverageLatency    time.Duration
}

func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		ConnectionsTotal:  m.ConnectionsTotal.Load(),
		ActiveConnections: m.ActiveConnections.Load(),
		AcceptErrors:      m.AcceptErrors.Load(),
		ReadErrors:        m.ReadErrors.Load(),
		WriteErrors:       m.WriteErrors.Load(),
		RequestsTotal:     m.RequestsTotal.Load(),
		BadRequests:       m.BadRequests.Load(),
		Panics:            m.Panics.Load(),
		Errors4xx:         m.Errors4xx.Load(),
		Errors5xx:         m.Errors5xx.Load(),
		AverageLatency:    m.AverageLatency(),
	}
}

// Fields renders the snapshot as log fields.
func (s MetricsSnapshot) Fields() []Field {
	return []Field{
		{"connections", s.ConnectionsTotal},
		{"active", s.ActiveConnections},
		{"requests", s.RequestsTotal},
		{"bad_requests", s.BadRequests},
		{"accept_errors", s.AcceptErrors},
		{"read_errors", s.ReadErrors},
		{"write_errors", s.WriteErrors},
		{"panics", s.Panics},
		{"errors_4xx", s.Errors4xx},
		{"errors_5xx", s.Errors5xx},
		{"avg_latency", s.AverageLatency.String()},
	}
}
