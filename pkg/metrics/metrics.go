// Package metrics provides observability primitives for the cipherkit
// library.
//
// The package includes:
//   - A generator statistics collector (bytes produced, reseeds, failures)
//   - Latency histograms for collection and generation paths
//   - Pluggable tracing with an OpenTelemetry adapter (build tag "otel")
//   - Structured logging with levels
package metrics

import (
	"sync/atomic"
	"time"
)

// Collector aggregates statistics from generator and provider engines.
// All methods are safe for concurrent use.
type Collector struct {
	// Generator metrics
	bytesGenerated atomic.Uint64
	requests       atomic.Uint64
	reseeds        atomic.Uint64

	// Provider metrics
	collections      atomic.Uint64
	entropyFailures  atomic.Uint64
	selfTestFailures atomic.Uint64

	// Performance histograms
	collectLatency  *Histogram
	generateLatency *Histogram

	// Creation time for uptime tracking
	createdAt time.Time

	// Labels for this collector instance
	labels Labels
}

// Labels represents key-value pairs for metric labeling.
type Labels map[string]string

// Default bucket configurations for histograms.
var (
	// CollectLatencyBuckets for entropy collection passes (microseconds).
	CollectLatencyBuckets = []float64{50, 100, 250, 500, 1000, 2500, 5000, 10000, 25000}

	// GenerateLatencyBuckets for generate requests (microseconds).
	GenerateLatencyBuckets = []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000}
)

// NewCollector creates a new statistics collector.
func NewCollector(labels Labels) *Collector {
	if labels == nil {
		labels = make(Labels)
	}
	return &Collector{
		collectLatency:  NewHistogram(CollectLatencyBuckets),
		generateLatency: NewHistogram(GenerateLatencyBuckets),
		createdAt:       time.Now(),
		labels:          labels,
	}
}

// RecordGenerate records a completed generate request.
func (c *Collector) RecordGenerate(n int, elapsed time.Duration) {
	c.bytesGenerated.Add(uint64(n))
	c.requests.Add(1)
	c.generateLatency.Observe(float64(elapsed.Microseconds()))
}

// RecordReseed records a reseed operation.
func (c *Collector) RecordReseed() {
	c.reseeds.Add(1)
}

// RecordCollection records a completed entropy collection pass.
func (c *Collector) RecordCollection(elapsed time.Duration) {
	c.collections.Add(1)
	c.collectLatency.Observe(float64(elapsed.Microseconds()))
}

// RecordEntropyFailure records a provider that could not produce bytes.
func (c *Collector) RecordEntropyFailure() {
	c.entropyFailures.Add(1)
}

// RecordSelfTestFailure records a failed health or continuity check.
func (c *Collector) RecordSelfTestFailure() {
	c.selfTestFailures.Add(1)
}

// Snapshot is a point-in-time view of collector state.
type Snapshot struct {
	BytesGenerated   uint64
	Requests         uint64
	Reseeds          uint64
	Collections      uint64
	EntropyFailures  uint64
	SelfTestFailures uint64
	Uptime           time.Duration
	Labels           Labels
}

// Snapshot returns the current counter values.
func (c *Collector) Snapshot() Snapshot {
	labels := make(Labels, len(c.labels))
	for k, v := range c.labels {
		labels[k] = v
	}
	return Snapshot{
		BytesGenerated:   c.bytesGenerated.Load(),
		Requests:         c.requests.Load(),
		Reseeds:          c.reseeds.Load(),
		Collections:      c.collections.Load(),
		EntropyFailures:  c.entropyFailures.Load(),
		SelfTestFailures: c.selfTestFailures.Load(),
		Uptime:           time.Since(c.createdAt),
		Labels:           labels,
	}
}

// CollectLatency returns the collection latency histogram.
func (c *Collector) CollectLatency() *Histogram { return c.collectLatency }

// GenerateLatency returns the generate latency histogram.
func (c *Collector) GenerateLatency() *Histogram { return c.generateLatency }

// --- Global Collector ---

var globalCollector atomic.Pointer[Collector]

func init() {
	globalCollector.Store(NewCollector(nil))
}

// SetCollector replaces the global collector.
func SetCollector(c *Collector) {
	globalCollector.Store(c)
}

// GetCollector returns the global collector.
func GetCollector() *Collector {
	return globalCollector.Load()
}
