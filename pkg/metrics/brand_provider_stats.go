// Package metrics tracks per-provider call outcomes and latency percentiles.
package metrics

import (
	"sort"
	"sync"
	"time"
)

// Outcome classifies one provider call.
type Outcome string

const (
	OutcomeSuccess   Outcome = "success"
	OutcomeFailure   Outcome = "failure"   // transport, auth or quota error
	OutcomeMalformed Outcome = "malformed" // call succeeded, payload unusable
	OutcomeTimeout   Outcome = "timeout"
	OutcomeRejected  Outcome = "rejected" // breaker open
)

// LatencyTracker keeps a fixed window of recent latencies.
type LatencyTracker struct {
	mu      sync.Mutex
	samples []time.Duration
	next    int
	full    bool
}

// NewLatencyTracker creates a tracker holding the last windowSize samples.
func NewLatencyTracker(windowSize int) *LatencyTracker {
	if windowSize <= 0 {
		windowSize = 500
	}
	return &LatencyTracker{samples: make([]time.Duration, windowSize)}
}

// Record records a latency measurement.
func (lt *LatencyTracker) Record(d time.Duration) {
	lt.mu.Lock()
	defer lt.mu.Unlock()

	lt.samples[lt.next] = d
	lt.next++
	if lt.next == len(lt.samples) {
		lt.next = 0
		lt.full = true
	}
}

// Stats returns latency statistics for the current window.
func (lt *LatencyTracker) Stats() LatencyStats {
	lt.mu.Lock()
	n := lt.next
	if lt.full {
		n = len(lt.samples)
	}
	window := make([]time.Duration, n)
	copy(window, lt.samples[:n])
	lt.mu.Unlock()

	if n == 0 {
		return LatencyStats{}
	}
	sort.Slice(window, func(i, j int) bool { return window[i] < window[j] })

	var sum time.Duration
	for _, v := range window {
		sum += v
	}
	pct := func(p float64) time.Duration { return window[int(float64(n-1)*p)] }

	return LatencyStats{
		Samples: n,
		Min:     window[0],
		Max:     window[n-1],
		Avg:     sum / time.Duration(n),
		P50:     pct(0.50),
		P95:     pct(0.95),
		P99:     pct(0.99),
	}
}

// LatencyStats holds latency statistics.
type LatencyStats struct {
	Samples int           `json:"samples"`
	Min     time.Duration `json:"min"`
	Max     time.Duration `json:"max"`
	Avg     time.Duration `json:"avg"`
	P50     time.Duration `json:"p50"`
	P95     time.Duration `json:"p95"`
	P99     time.Duration `json:"p99"`
}

// ToMap renders durations in milliseconds.
func (s LatencyStats) ToMap() map[string]any {
	ms := func(d time.Duration) float64 { return float64(d.Microseconds()) / 1000 }
	return map[string]any{
		"samples": s.Samples,
		"min_ms":  ms(s.Min),
		"max_ms":  ms(s.Max),
		"avg_ms":  ms(s.Avg),
		"p50_ms":  ms(s.P50),
		"p95_ms":  ms(s.P95),
		"p99_ms":  ms(s.P99),
	}
}

// ProviderStats is the snapshot of one provider.
type ProviderStats struct {
	Provider string            `json:"provider"`
	Calls    int64             `json:"calls"`
	Outcomes map[Outcome]int64 `json:"outcomes"`
	Latency  map[string]any    `json:"latency"`
	LastErr  string            `json:"lastError,omitempty"`
	LastSeen time.Time         `json:"lastSeen"`
}

type providerEntry struct {
	latency  *LatencyTracker
	outcomes map[Outcome]int64
	calls    int64
	lastErr  string
	lastSeen time.Time
}

// ProviderRegistry aggregates call outcomes per provider.
type ProviderRegistry struct {
	mu      sync.Mutex
	entries map[string]*providerEntry
	window  int
}

// NewProviderRegistry creates an empty registry.
func NewProviderRegistry(windowSize int) *ProviderRegistry {
	return &ProviderRegistry{entries: make(map[string]*providerEntry), window: windowSize}
}

// Record stores one completed call. err may be nil.
func (r *ProviderRegistry) Record(provider string, outcome Outcome, d time.Duration, err error) {
	r.mu.Lock()
	e, ok := r.entries[provider]
	if !ok {
		e = &providerEntry{latency: NewLatencyTracker(r.window), outcomes: make(map[Outcome]int64)}
		r.entries[provider] = e
	}
	e.calls++
	e.outcomes[outcome]++
	e.lastSeen = time.Now()
	if err != nil {
		e.lastErr = err.Error()
	}
	r.mu.Unlock()

	// Rejected calls never reached the provider.
	if outcome != OutcomeRejected {
		e.latency.Record(d)
	}
}

// Snapshot returns stats for every provider seen so far, sorted by name.
func (r *ProviderRegistry) Snapshot() []ProviderStats {
	r.mu.Lock()
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]ProviderStats, 0, len(names))
	trackers := make([]*LatencyTracker, 0, len(names))
	for _, name := range names {
		e := r.entries[name]
		outcomes := make(map[Outcome]int64, len(e.outcomes))
		for k, v := range e.outcomes {
			outcomes[k] = v
		}
		out = append(out, ProviderStats{
			Provider: name,
			Calls:    e.calls,
			Outcomes: outcomes,
			LastErr:  e.lastErr,
			LastSeen: e.lastSeen,
		})
		trackers = append(trackers, e.latency)
	}
	r.mu.Unlock()

	for i, tr := range trackers {
		out[i].Latency = tr.Stats().ToMap()
	}
	return out
}
