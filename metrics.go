package calchub

import (
	"runtime"
	"sync"
	"time"
)

// Error kind labels used by the metrics counters.
const (
	errKindLex    = "lex"
	errKindSyntax = "syntax"
	errKindMath   = "math"
)

// Metrics collects calchub operational metrics.
type Metrics struct {
	mu           sync.Mutex
	Evaluations  int64
	LexErrors    int64
	SyntaxErrors int64
	MathErrors   int64
	BySource     map[string]int64
	StartedAt    time.Time
}

// NewMetrics creates a new metrics collector.
func NewMetrics() *Metrics {
	return &Metrics{
		BySource:  make(map[string]int64),
		StartedAt: time.Now(),
	}
}

// RecordEvaluation counts one evaluation from source. errKind is one of
// the error kind labels, or empty for a successful evaluation.
func (m *Metrics) RecordEvaluation(source, errKind string) {
	m.mu.Lock()
	m.Evaluations++
	m.BySource[source]++
	switch errKind {
	case errKindLex:
		m.LexErrors++
	case errKindSyntax:
		m.SyntaxErrors++
	case errKindMath:
		m.MathErrors++
	}
	m.mu.Unlock()
}

// MetricsSnapshot is a point-in-time metrics report.
type MetricsSnapshot struct {
	Evaluations   int64            `json:"evaluations"`
	LexErrors     int64            `json:"lex_errors"`
	SyntaxErrors  int64            `json:"syntax_errors"`
	MathErrors    int64            `json:"math_errors"`
	BySource      map[string]int64 `json:"by_source"`
	UptimeSeconds int              `json:"uptime_seconds"`
	Goroutines    int              `json:"goroutines"`
	HeapAllocMB   float64          `json:"heap_alloc_mb"`
}

// Snapshot returns a point-in-time copy of all metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	bySource := make(map[string]int64, len(m.BySource))
	for k, v := range m.BySource {
		bySource[k] = v
	}

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	return MetricsSnapshot{
		Evaluations:   m.Evaluations,
		LexErrors:     m.LexErrors,
		SyntaxErrors:  m.SyntaxErrors,
		MathErrors:    m.MathErrors,
		BySource:      bySource,
		UptimeSeconds: int(time.Since(m.StartedAt).Seconds()),
		Goroutines:    runtime.NumGoroutine(),
		HeapAllocMB:   float64(memStats.HeapAlloc) / (1024 * 1024),
	}
}
