package provider

import (
	"encoding/binary"
	"os"
	"runtime"
	"time"

	"golang.org/x/sys/cpu"

	"github.com/qseclabs/cipherkit/internal/constants"
	qerrors "github.com/qseclabs/cipherkit/internal/errors"
	"github.com/qseclabs/cipherkit/internal/intutils"
	"github.com/qseclabs/cipherkit/pkg/ahx"
	"github.com/qseclabs/cipherkit/pkg/bcg"
	"github.com/qseclabs/cipherkit/pkg/kdf"
	"github.com/qseclabs/cipherkit/pkg/keccak"
	"github.com/qseclabs/cipherkit/pkg/keymat"
	"github.com/qseclabs/cipherkit/pkg/metrics"
)

// jitterSamples is the number of timer/arithmetic interleavings harvested
// per collection pass.
const jitterSamples = 64

// ACP is the two-stage auto-collection provider. Collection concatenates
// timer jitter, OS CSPRNG output, and process/system/memory/time
// statistics into a staging buffer, compresses the buffer through
// Keccak-512, and keys a 38-round AHX counter stage with the digest. The
// counter start value and the cipher distribution code come from the OS
// CSPRNG. Output is the encryption of the incrementing counter.
//
// ACP is not safe for concurrent use; run one instance per goroutine.
type ACP struct {
	cipher    *ahx.Cipher
	gen       *bcg.Generator
	csp       *CSP
	hasTsc    bool
	hasRdrand bool
	available bool
	sources   []string
}

// NewACP constructs and seeds an auto-collection provider. It fails with
// EntropyUnavailable when fewer than two sources contribute.
func NewACP() (*ACP, error) {
	p := &ACP{
		csp: NewCSP(),
		// the monotonic clock stands in for a raw cycle counter on
		// platforms without one; rdrand is recorded for auditability
		// but the portable collector does not issue it directly
		hasTsc:    true,
		hasRdrand: cpu.X86.HasRDRAND,
	}
	if err := p.Reset(); err != nil {
		return nil, err
	}
	return p, nil
}

// Reset re-runs collection and compression, re-keying the counter stage.
func (p *ACP) Reset() error {
	start := time.Now()
	staging, sources := p.collect()
	if len(sources) < constants.ACPMinSources {
		p.available = false
		metrics.GetCollector().RecordEntropyFailure()
		return qerrors.NewCryptoError("acp.Reset", qerrors.ErrEntropyUnavailable)
	}

	digest := keccak.Sum512(staging)
	intutils.Clear(staging)

	cipher, err := ahx.New(ahx.WithDigest(kdf.SHA512), ahx.WithRounds(constants.ACPRounds))
	if err != nil {
		return err
	}

	info := make([]byte, cipher.DistributionCodeMax())
	if err := p.csp.GetBytes(info); err != nil {
		return err
	}
	if err := cipher.Initialize(keymat.KeyMaterial{Key: digest[:], Info: info}); err != nil {
		return err
	}
	intutils.Clear(digest[:])
	intutils.Clear(info)

	iv := make([]byte, constants.BlockSize)
	if err := p.csp.GetBytes(iv); err != nil {
		return err
	}
	gen := bcg.New(cipher, false)
	if err := gen.Initialize(iv); err != nil {
		return err
	}
	intutils.Clear(iv)

	p.cipher = cipher
	p.gen = gen
	p.sources = sources
	p.available = true

	metrics.GetCollector().RecordCollection(time.Since(start))
	metrics.Debug("acp: collection complete", metrics.Fields{
		"sources": len(sources),
		"rdrand":  p.hasRdrand,
	})
	return nil
}

// collect concatenates every contributing source into a staging buffer
// and returns the source names for auditability.
func (p *ACP) collect() ([]byte, []string) {
	staging := make([]byte, 0, constants.ACPStateCap)
	var sources []string

	if p.hasTsc {
		staging = append(staging, p.jitterInfo()...)
		sources = append(sources, "jitter")
	}

	osBlock := make([]byte, 64)
	if p.csp.GetBytes(osBlock) == nil {
		staging = append(staging, osBlock...)
		sources = append(sources, "csp")
	}

	staging = append(staging, p.processInfo()...)
	sources = append(sources, "process")

	staging = append(staging, p.memoryInfo()...)
	sources = append(sources, "memory")

	staging = append(staging, p.timeInfo()...)
	sources = append(sources, "time")

	return filter(staging), sources
}

// jitterInfo interleaves monotonic timer reads with short arithmetic
// chains and harvests the deltas.
func (p *ACP) jitterInfo() []byte {
	out := make([]byte, 0, jitterSamples*8)
	base := time.Now()
	acc := uint64(0x9E3779B97F4A7C15)
	for i := 0; i < jitterSamples; i++ {
		for j := 0; j < 16+i%7; j++ {
			acc = acc*6364136223846793005 + 1442695040888963407
			acc ^= acc >> 29
		}
		sample := uint64(time.Since(base).Nanoseconds()) ^ acc
		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], sample)
		out = append(out, b[:]...)
	}
	return out
}

// processInfo gathers process identity and scheduler statistics.
func (p *ACP) processInfo() []byte {
	var b [40]byte
	binary.LittleEndian.PutUint64(b[0:], uint64(os.Getpid()))
	binary.LittleEndian.PutUint64(b[8:], uint64(os.Getppid()))
	binary.LittleEndian.PutUint64(b[16:], uint64(runtime.NumGoroutine()))
	binary.LittleEndian.PutUint64(b[24:], uint64(runtime.NumCPU()))
	binary.LittleEndian.PutUint64(b[32:], uint64(runtime.NumCgoCall()))
	return b[:]
}

// memoryInfo gathers allocator and collector statistics.
func (p *ACP) memoryInfo() []byte {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	var b [64]byte
	binary.LittleEndian.PutUint64(b[0:], ms.Alloc)
	binary.LittleEndian.PutUint64(b[8:], ms.TotalAlloc)
	binary.LittleEndian.PutUint64(b[16:], ms.Sys)
	binary.LittleEndian.PutUint64(b[24:], ms.Mallocs)
	binary.LittleEndian.PutUint64(b[32:], ms.Frees)
	binary.LittleEndian.PutUint64(b[40:], ms.HeapObjects)
	binary.LittleEndian.PutUint64(b[48:], ms.PauseTotalNs)
	binary.LittleEndian.PutUint64(b[56:], uint64(ms.NumGC))
	return b[:]
}

// timeInfo gathers wall-clock and monotonic readings.
func (p *ACP) timeInfo() []byte {
	var b [16]byte
	now := time.Now()
	binary.LittleEndian.PutUint64(b[0:], uint64(now.UnixNano()))
	binary.LittleEndian.PutUint64(b[8:], uint64(now.Sub(processStart).Nanoseconds()))
	return b[:]
}

var processStart = time.Now()

// filter drops zero bytes from the staging buffer so degenerate sources
// cannot dilute the compression input.
func filter(state []byte) []byte {
	out := state[:0]
	for _, b := range state {
		if b != 0 {
			out = append(out, b)
		}
	}
	return out
}

// GetBytes fills out with provider output.
func (p *ACP) GetBytes(out []byte) error {
	if !p.available {
		return qerrors.NewCryptoError("acp.GetBytes", qerrors.ErrEntropyUnavailable)
	}
	return p.gen.Generate(out)
}

// GetBytesAt fills out[off:off+length] with provider output.
func (p *ACP) GetBytesAt(out []byte, off, length int) error {
	if off < 0 || length < 0 || off+length > len(out) {
		return qerrors.NewCryptoError("acp.GetBytes", qerrors.ErrInvalidLength)
	}
	return p.GetBytes(out[off : off+length])
}

// Next returns a 32-bit sample.
func (p *ACP) Next() (uint32, error) {
	var b [4]byte
	if err := p.GetBytes(b[:]); err != nil {
		return 0, err
	}
	return intutils.Le32(b[:], 0), nil
}

// Name returns the provider identity.
func (p *ACP) Name() string { return "ACP" }

// Available reports whether collection succeeded.
func (p *ACP) Available() bool { return p.available }

// Sources lists the entropy sources that contributed to the current seed.
func (p *ACP) Sources() []string {
	return append([]string(nil), p.sources...)
}

// HasRdrand reports whether the CPU advertises a hardware random source.
func (p *ACP) HasRdrand() bool { return p.hasRdrand }

// Clear zeroizes the counter stage; the provider requires Reset before
// further use.
func (p *ACP) Clear() {
	if p.gen != nil {
		p.gen.Reset()
	}
	if p.cipher != nil {
		p.cipher.Clear()
	}
	p.available = false
}
