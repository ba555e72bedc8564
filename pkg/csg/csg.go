// Package csg implements a cSHAKE-based deterministic random bit
// generator (CSG).
//
// The initialization parameters select the underlying construction: a key
// alone invokes SHAKE, a key with a nonce invokes simple-cSHAKE with the
// nonce as the customization string, and a key with both nonce and info
// invokes cSHAKE with the info as the function name. An optional entropy
// provider enables predictive resistance: once the reseed threshold is
// crossed the generator absorbs fresh seed material and re-permutes.
//
// Multi-lane generation maintains 4 or 8 independent sponge states
// differentiated by the low byte of the nonce and interleaves their
// output rate-block by rate-block. The lane count is fixed by
// configuration, never by CPU detection, so a stream is reproducible
// across machines; SIMD only accelerates the permutation.
package csg

import (
	"github.com/qseclabs/cipherkit/internal/constants"
	qerrors "github.com/qseclabs/cipherkit/internal/errors"
	"github.com/qseclabs/cipherkit/internal/intutils"
	"github.com/qseclabs/cipherkit/pkg/keccak"
	"github.com/qseclabs/cipherkit/pkg/keymat"
	"github.com/qseclabs/cipherkit/pkg/metrics"
)

// ShakeMode selects the sponge rate.
type ShakeMode = constants.ShakeMode

// Re-exported mode names.
const (
	SHAKE128 = constants.SHAKE128
	SHAKE256 = constants.SHAKE256
)

// Generation limits.
const (
	// MaxRequest is the largest single Generate request in bytes.
	MaxRequest = constants.CSGMaxRequest

	// MaxOutput is the cumulative output bound of one instance.
	MaxOutput = constants.CSGMaxOutput

	// MaxReseed is the maximum number of reseed operations.
	MaxReseed = constants.CSGMaxReseed
)

// SeedProvider supplies fresh seed material for predictive resistance.
type SeedProvider interface {
	GetBytes(out []byte) error
}

// phase tracks the sponge state machine.
type phase uint8

const (
	phaseUninit phase = iota
	phaseAbsorbed
	phaseSqueezing
)

// Generator is a CSG instance. It is not safe for concurrent use.
type Generator struct {
	mode     ShakeMode
	rate     int
	domain   byte
	lanes    int
	provider SeedProvider

	states    []keccak.State
	buffer    []byte
	bufIdx    int
	firstFill bool

	custom []byte
	name   []byte

	seedSize        int
	reseedCounter   uint64
	reseedThreshold uint64
	reseedRequests  uint64
	totalOut        uint64

	state phase
}

// Option configures a Generator at construction.
type Option func(*Generator) error

// WithProvider attaches an entropy provider, enabling predictive
// resistance reseeding.
func WithProvider(p SeedProvider) Option {
	return func(g *Generator) error {
		g.provider = p
		return nil
	}
}

// WithLanes selects multi-lane generation with 4 or 8 independent sponge
// states. Multi-lane initialization requires a nonce.
func WithLanes(n int) Option {
	return func(g *Generator) error {
		if n != 1 && n != 4 && n != 8 {
			return qerrors.NewCryptoError("csg.New", qerrors.ErrInvalidLength)
		}
		g.lanes = n
		return nil
	}
}

// WithReseedThreshold sets the byte count that triggers a reseed when a
// provider is attached.
func WithReseedThreshold(n uint64) Option {
	return func(g *Generator) error {
		if n == 0 {
			return qerrors.NewCryptoError("csg.New", qerrors.ErrInvalidLength)
		}
		g.reseedThreshold = n
		return nil
	}
}

// New constructs a CSG over the given SHAKE mode.
func New(mode ShakeMode, opts ...Option) (*Generator, error) {
	if !mode.IsSupported() {
		return nil, qerrors.NewCryptoError("csg.New", qerrors.ErrInvalidDigest)
	}
	g := &Generator{
		mode:  mode,
		rate:  mode.Rate(),
		lanes: 1,
	}
	g.reseedThreshold = uint64(g.rate) * 1000
	for _, opt := range opts {
		if err := opt(g); err != nil {
			return nil, err
		}
	}
	g.states = make([]keccak.State, g.lanes)
	g.buffer = make([]byte, g.rate*g.lanes)
	return g, nil
}

// LegalKeySizes returns the accepted seed sizes: the minimum required,
// the recommended size, and the rate-saturating maximum.
func (g *Generator) LegalKeySizes() []keymat.SymmetricKeySize {
	min := 16
	if g.mode == SHAKE256 {
		min = 32
	}
	return []keymat.SymmetricKeySize{
		{KeySize: min, NonceSize: 8},
		{KeySize: 2 * min, NonceSize: 8},
		{KeySize: g.rate, NonceSize: 8},
	}
}

// IsInitialized reports whether the generator is seeded.
func (g *Generator) IsInitialized() bool { return g.state != phaseUninit }

// ReseedThreshold returns the configured reseed interval in bytes.
func (g *Generator) ReseedThreshold() uint64 { return g.reseedThreshold }

// ReseedCount returns the number of reseed operations performed.
func (g *Generator) ReseedCount() uint64 { return g.reseedRequests }

// Lanes returns the configured lane count.
func (g *Generator) Lanes() int { return g.lanes }

// Name returns the generator identity.
func (g *Generator) Name() string {
	return "CSG-" + g.mode.String()
}

// legalSeed reports whether n is one of the legal seed sizes.
func (g *Generator) legalSeed(n int) bool {
	return keymat.ContainsKey(g.LegalKeySizes(), n)
}

// Initialize seeds the generator. The nonce and info parameters are
// optional; their presence selects SHAKE, simple-cSHAKE, or cSHAKE.
func (g *Generator) Initialize(km keymat.KeyMaterial) error {
	if !g.legalSeed(len(km.Key)) {
		return qerrors.NewCryptoError("csg.Initialize", qerrors.ErrInvalidSeedSize)
	}
	if g.lanes > 1 && len(km.Nonce) == 0 {
		return qerrors.NewCryptoError("csg.Initialize", qerrors.ErrInvalidNonceSize)
	}

	g.wipe()
	g.states = make([]keccak.State, g.lanes)
	g.buffer = make([]byte, g.rate*g.lanes)

	switch {
	case len(km.Nonce) == 0 && len(km.Info) == 0:
		g.domain = constants.SHAKEDomain
	default:
		g.domain = constants.CSHAKEDomain
		g.custom = append([]byte(nil), km.Nonce...)
		g.name = append([]byte(nil), km.Info...)
	}

	for i := 0; i < g.lanes; i++ {
		if g.domain == constants.CSHAKEDomain {
			g.customize(&g.states[i], g.laneCustom(i))
		}
		g.absorbSeed(&g.states[i], km.Key)
	}

	g.seedSize = len(km.Key)
	g.bufIdx = len(g.buffer)
	g.firstFill = true
	g.state = phaseAbsorbed
	return nil
}

// laneCustom returns the customization string for lane i: the nonce with
// its low byte offset by the lane index.
func (g *Generator) laneCustom(i int) []byte {
	if g.lanes == 1 || len(g.custom) == 0 {
		return g.custom
	}
	c := append([]byte(nil), g.custom...)
	c[0] += byte(i)
	return c
}

// customize absorbs the cSHAKE header bytepad(encode_string(N) ||
// encode_string(S), rate) and permutes.
func (g *Generator) customize(st *keccak.State, custom []byte) {
	var enc [9]byte
	header := make([]byte, 0, g.rate)

	header = append(header, enc[:keccak.LeftEncode(enc[:], uint64(g.rate))]...)
	header = append(header, enc[:keccak.LeftEncode(enc[:], uint64(8*len(g.name)))]...)
	header = append(header, g.name...)
	header = append(header, enc[:keccak.LeftEncode(enc[:], uint64(8*len(g.custom)))]...)
	header = append(header, custom...)

	for len(header) >= g.rate {
		keccak.AbsorbBlock(st, header[:g.rate])
		keccak.Permute(st)
		header = header[g.rate:]
	}
	if len(header) > 0 {
		block := make([]byte, g.rate)
		copy(block, header)
		keccak.AbsorbBlock(st, block)
		keccak.Permute(st)
		intutils.Clear(block)
	}
}

// absorbSeed absorbs the seed with domain-separated padding and permutes,
// leaving the state holding its first output block.
func (g *Generator) absorbSeed(st *keccak.State, seed []byte) {
	for len(seed) >= g.rate {
		keccak.AbsorbBlock(st, seed[:g.rate])
		keccak.Permute(st)
		seed = seed[g.rate:]
	}
	block := make([]byte, g.rate)
	copy(block, seed)
	keccak.Pad(block, len(seed), g.domain)
	keccak.AbsorbBlock(st, block)
	keccak.Permute(st)
	intutils.Clear(block)
}

// fill squeezes one rate block per lane into the output buffer.
func (g *Generator) fill() {
	if !g.firstFill {
		keccak.PermuteAll(g.states)
	}
	g.firstFill = false
	for i := range g.states {
		keccak.SqueezeBlock(g.buffer[i*g.rate:(i+1)*g.rate], &g.states[i])
	}
	g.bufIdx = 0
	g.state = phaseSqueezing
}

// Generate fills out with pseudo-random bytes.
func (g *Generator) Generate(out []byte) error {
	return g.GenerateAt(out, 0, len(out))
}

// GenerateAt fills out[off:off+length] with pseudo-random bytes. Requests
// of zero bytes are no-ops. A single request may not exceed MaxRequest;
// the cumulative output of the instance may not exceed MaxOutput.
func (g *Generator) GenerateAt(out []byte, off, length int) error {
	if g.state == phaseUninit {
		return qerrors.NewCryptoError("csg.Generate", qerrors.ErrNotInitialized)
	}
	if length < 0 || off < 0 || off+length > len(out) {
		return qerrors.NewCryptoError("csg.Generate", qerrors.ErrInvalidLength)
	}
	if length == 0 {
		return nil
	}
	if length > MaxRequest {
		return qerrors.NewCryptoError("csg.Generate", qerrors.ErrRequestTooLarge)
	}
	if g.totalOut+uint64(length) > MaxOutput {
		return qerrors.NewCryptoError("csg.Generate", qerrors.ErrOutputExhausted)
	}

	remaining := length
	pos := off
	for remaining > 0 {
		if g.bufIdx == len(g.buffer) {
			g.fill()
		}
		n := len(g.buffer) - g.bufIdx
		if n > remaining {
			n = remaining
		}
		copy(out[pos:pos+n], g.buffer[g.bufIdx:g.bufIdx+n])
		g.bufIdx += n
		pos += n
		remaining -= n
		g.totalOut += uint64(n)
		g.reseedCounter += uint64(n)

		for g.provider != nil && g.reseedCounter >= g.reseedThreshold {
			if err := g.reseed(); err != nil {
				return err
			}
			g.reseedCounter -= g.reseedThreshold
		}
	}
	return nil
}

// reseed draws fresh seed material from the provider and updates the
// generator state.
func (g *Generator) reseed() error {
	if g.reseedRequests+1 > MaxReseed {
		return qerrors.NewCryptoError("csg.Generate", qerrors.ErrReseedExhausted)
	}
	seed := make([]byte, g.seedSize)
	if err := g.provider.GetBytes(seed); err != nil {
		return err
	}
	if err := g.update(seed); err != nil {
		return err
	}
	intutils.Clear(seed)
	g.reseedRequests++
	metrics.GetCollector().RecordReseed()
	return nil
}

// Update refreshes the generator keying material: the domain separator,
// the new seed, and the existing customization are absorbed into every
// lane and the states are re-permuted. The seed must be a legal size.
func (g *Generator) Update(seed []byte) error {
	if g.state == phaseUninit {
		return qerrors.NewCryptoError("csg.Update", qerrors.ErrNotInitialized)
	}
	if !g.legalSeed(len(seed)) {
		return qerrors.NewCryptoError("csg.Update", qerrors.ErrInvalidSeedSize)
	}
	return g.update(seed)
}

func (g *Generator) update(seed []byte) error {
	for i := range g.states {
		material := make([]byte, 0, 1+len(seed)+len(g.custom))
		material = append(material, g.domain)
		material = append(material, seed...)
		material = append(material, g.laneCustom(i)...)
		g.absorbSeed(&g.states[i], material)
		intutils.Clear(material)
	}
	// discard buffered output from the previous seed epoch
	g.bufIdx = len(g.buffer)
	g.firstFill = true
	g.state = phaseAbsorbed
	return nil
}

// wipe zeroizes all secret state.
func (g *Generator) wipe() {
	for i := range g.states {
		keccak.Clear(&g.states[i])
	}
	intutils.Clear(g.buffer)
	intutils.Clear(g.custom)
	intutils.Clear(g.name)
	g.custom = nil
	g.name = nil
}

// Reset zeroizes the generator and returns it to the uninitialized
// state. The mode, lane count, provider, and threshold configuration
// survive so the instance can be re-initialized.
func (g *Generator) Reset() {
	g.wipe()
	g.bufIdx = len(g.buffer)
	g.firstFill = false
	g.seedSize = 0
	g.reseedCounter = 0
	g.reseedRequests = 0
	g.totalOut = 0
	g.state = phaseUninit
}
