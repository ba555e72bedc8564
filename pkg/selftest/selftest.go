// Package selftest implements conditional health checks for the entropy
// providers and generators.
//
// The checks follow the SP800-90B health-test pattern: generator output
// must be non-zero, non-repeating, and show byte-level variation, and a
// continuous test compares every draw with the previous one. Strict mode
// panics on failure to prevent use of a compromised source; the default
// returns errors.
package selftest

import (
	"bytes"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/qseclabs/cipherkit/pkg/metrics"
)

// ByteSource is any generator or provider whose output can be checked.
type ByteSource interface {
	GetBytes(out []byte) error
}

// Config configures conditional self-test behavior.
type Config struct {
	// EnableHealthCheck enables periodic output health checks.
	EnableHealthCheck bool

	// Strict panics on check failure instead of returning an error.
	Strict bool

	// HealthCheckInterval is the number of checked draws between full
	// health checks.
	HealthCheckInterval uint64
}

// DefaultConfig returns the default self-test configuration.
func DefaultConfig() Config {
	return Config{
		EnableHealthCheck:   true,
		Strict:              false,
		HealthCheckInterval: 1000,
	}
}

// Result contains the outcome of one self-test.
type Result struct {
	Passed bool
	Error  error
}

// Checker wraps a byte source with continuous and periodic health tests.
type Checker struct {
	src    ByteSource
	config Config

	mu    sync.Mutex
	last  []byte
	draws atomic.Uint64
}

// NewChecker wraps src with the given configuration.
func NewChecker(src ByteSource, config Config) *Checker {
	return &Checker{src: src, config: config}
}

// HealthCheck draws two samples and verifies they are non-zero,
// distinct, and show variation.
func (c *Checker) HealthCheck() *Result {
	sample1 := make([]byte, 32)
	sample2 := make([]byte, 32)

	if err := c.src.GetBytes(sample1); err != nil {
		return &Result{Error: fmt.Errorf("health check read 1 failed: %w", err)}
	}
	if err := c.src.GetBytes(sample2); err != nil {
		return &Result{Error: fmt.Errorf("health check read 2 failed: %w", err)}
	}

	for i, s := range [][]byte{sample1, sample2} {
		if allZero(s) {
			return &Result{Error: fmt.Errorf("source produced all-zero sample %d", i+1)}
		}
		if allSame(s) {
			return &Result{Error: fmt.Errorf("source sample %d has no variation", i+1)}
		}
	}
	if bytes.Equal(sample1, sample2) {
		return &Result{Error: fmt.Errorf("source produced identical consecutive samples")}
	}
	return &Result{Passed: true}
}

// ContinuousTest compares output against the previous draw; equal
// consecutive outputs fail.
func (c *Checker) ContinuousTest(output []byte) *Result {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.last == nil {
		c.last = append([]byte(nil), output...)
		return &Result{Passed: true}
	}
	if len(output) == len(c.last) && bytes.Equal(output, c.last) {
		return &Result{Error: fmt.Errorf("source repeated its previous output")}
	}
	if len(c.last) != len(output) {
		c.last = make([]byte, len(output))
	}
	copy(c.last, output)
	return &Result{Passed: true}
}

// GetBytes draws from the wrapped source and applies the continuous test
// plus the periodic health check.
func (c *Checker) GetBytes(out []byte) error {
	if err := c.src.GetBytes(out); err != nil {
		return err
	}

	if r := c.ContinuousTest(out); !r.Passed {
		return c.fail("continuous test", r.Error)
	}

	if c.config.EnableHealthCheck {
		n := c.draws.Add(1)
		if c.config.HealthCheckInterval > 0 && n%c.config.HealthCheckInterval == 0 {
			if r := c.HealthCheck(); !r.Passed {
				return c.fail("health check", r.Error)
			}
		}
	}
	return nil
}

func (c *Checker) fail(kind string, err error) error {
	metrics.GetCollector().RecordSelfTestFailure()
	if c.config.Strict {
		panic(fmt.Sprintf("selftest: %s failed: %v", kind, err))
	}
	return fmt.Errorf("selftest: %s failed: %w", kind, err)
}

func allZero(b []byte) bool {
	var acc byte
	for _, v := range b {
		acc |= v
	}
	return acc == 0
}

func allSame(b []byte) bool {
	for i := 1; i < len(b); i++ {
		if b[i] != b[0] {
			return false
		}
	}
	return true
}
