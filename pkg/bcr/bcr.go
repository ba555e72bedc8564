// Package bcr implements a buffered block-cipher counter-mode PRNG.
//
// The generator wraps a counter-mode keystream (pkg/bcg) over a
// configurable block cipher and buffers its output for fine-grained
// extraction of bytes and typed integers. Identical seeds produce
// identical streams; when no seed is supplied the named entropy provider
// contributes one at construction.
package bcr

import (
	"github.com/qseclabs/cipherkit/internal/constants"
	qerrors "github.com/qseclabs/cipherkit/internal/errors"
	"github.com/qseclabs/cipherkit/internal/intutils"
	"github.com/qseclabs/cipherkit/pkg/ahx"
	"github.com/qseclabs/cipherkit/pkg/bcg"
	"github.com/qseclabs/cipherkit/pkg/kdf"
	"github.com/qseclabs/cipherkit/pkg/keymat"
	"github.com/qseclabs/cipherkit/pkg/provider"
	"github.com/qseclabs/cipherkit/pkg/shx"
)

// Re-exported engine and provider selectors.
const (
	AHX = constants.AHX
	SHX = constants.SHXCipher

	ProviderNone = constants.ProviderNone
	ProviderCSP  = constants.ProviderCSP
	ProviderACP  = constants.ProviderACP
)

// Rng is a buffered counter-mode PRNG. It is not safe for concurrent use.
type Rng struct {
	engineType constants.BlockCipherType
	parallel   bool
	seed       []byte
	buffer     []byte
	bufIdx     int
	gen        *bcg.Generator
	cipherKey  int
}

// keySizeFor returns the cipher key length for an engine type.
func keySizeFor(engine constants.BlockCipherType) (int, error) {
	switch engine {
	case constants.AHX, constants.SHXCipher:
		return 32, nil
	default:
		return 0, qerrors.NewCryptoError("bcr.New", qerrors.ErrInvalidDigest)
	}
}

// newCipher constructs and keys the underlying block cipher.
func newCipher(engine constants.BlockCipherType, key []byte) (bcg.BlockCipher, error) {
	switch engine {
	case constants.AHX:
		c, err := ahx.New(ahx.WithDigest(kdf.SHA256), ahx.WithRounds(22))
		if err != nil {
			return nil, err
		}
		if err := c.Initialize(keymat.KeyMaterial{Key: key}); err != nil {
			return nil, err
		}
		return c, nil
	case constants.SHXCipher:
		c, err := shx.New()
		if err != nil {
			return nil, err
		}
		if err := c.Initialize(true, keymat.KeyMaterial{Key: key}); err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, qerrors.NewCryptoError("bcr.New", qerrors.ErrInvalidDigest)
	}
}

// New constructs a PRNG seeded from the named provider.
func New(engine constants.BlockCipherType, providerType constants.ProviderType, parallel bool) (*Rng, error) {
	keySize, err := keySizeFor(engine)
	if err != nil {
		return nil, err
	}

	var src provider.Provider
	switch providerType {
	case constants.ProviderCSP, constants.ProviderNone:
		// the OS CSPRNG is the default seed source
		src = provider.NewCSP()
	case constants.ProviderACP:
		src, err = provider.NewACP()
		if err != nil {
			return nil, err
		}
	default:
		return nil, qerrors.NewCryptoError("bcr.New", qerrors.ErrEntropyUnavailable)
	}

	seed := make([]byte, keySize+constants.BlockSize)
	if err := src.GetBytes(seed); err != nil {
		return nil, err
	}
	return NewWithSeed(seed, engine, parallel)
}

// NewWithSeed constructs a PRNG from an explicit seed of length
// keySize+16: the leading bytes key the cipher and the trailing 16 bytes
// start the counter. The same seed yields the same stream.
func NewWithSeed(seed []byte, engine constants.BlockCipherType, parallel bool) (*Rng, error) {
	keySize, err := keySizeFor(engine)
	if err != nil {
		return nil, err
	}
	if len(seed) != keySize+constants.BlockSize {
		return nil, qerrors.NewCryptoError("bcr.New", qerrors.ErrInvalidSeedSize)
	}

	r := &Rng{
		engineType: engine,
		parallel:   parallel,
		seed:       append([]byte(nil), seed...),
		buffer:     make([]byte, constants.BCRBufferSize),
		cipherKey:  keySize,
	}
	if err := r.restart(); err != nil {
		return nil, err
	}
	return r, nil
}

// restart re-keys the generator from the stored seed and empties the
// buffer.
func (r *Rng) restart() error {
	cipher, err := newCipher(r.engineType, r.seed[:r.cipherKey])
	if err != nil {
		return err
	}
	gen := bcg.New(cipher, r.parallel)
	if err := gen.Initialize(r.seed[r.cipherKey:]); err != nil {
		return err
	}
	r.gen = gen
	intutils.Clear(r.buffer)
	r.bufIdx = len(r.buffer)
	return nil
}

// Name returns the generator identity.
func (r *Rng) Name() string {
	return "BCR-" + r.engineType.String()
}

// refill regenerates the whole buffer in one generator call.
func (r *Rng) refill() error {
	if err := r.gen.Generate(r.buffer); err != nil {
		return err
	}
	r.bufIdx = 0
	return nil
}

// GetBytes fills out with pseudo-random bytes.
func (r *Rng) GetBytes(out []byte) error {
	pos := 0
	for pos < len(out) {
		if r.bufIdx == len(r.buffer) {
			if err := r.refill(); err != nil {
				return err
			}
		}
		n := len(r.buffer) - r.bufIdx
		if n > len(out)-pos {
			n = len(out) - pos
		}
		copy(out[pos:pos+n], r.buffer[r.bufIdx:r.bufIdx+n])
		r.bufIdx += n
		pos += n
	}
	return nil
}

// GetBytesAt fills out[off:off+length] with pseudo-random bytes.
func (r *Rng) GetBytesAt(out []byte, off, length int) error {
	if off < 0 || length < 0 || off+length > len(out) {
		return qerrors.NewCryptoError("bcr.GetBytes", qerrors.ErrInvalidLength)
	}
	return r.GetBytes(out[off : off+length])
}

// NextUInt16 returns a pseudo-random 16-bit integer.
func (r *Rng) NextUInt16() (uint16, error) {
	var b [2]byte
	if err := r.GetBytes(b[:]); err != nil {
		return 0, err
	}
	return intutils.Le16(b[:], 0), nil
}

// NextUInt32 returns a pseudo-random 32-bit integer.
func (r *Rng) NextUInt32() (uint32, error) {
	var b [4]byte
	if err := r.GetBytes(b[:]); err != nil {
		return 0, err
	}
	return intutils.Le32(b[:], 0), nil
}

// NextUInt64 returns a pseudo-random 64-bit integer.
func (r *Rng) NextUInt64() (uint64, error) {
	var b [8]byte
	if err := r.GetBytes(b[:]); err != nil {
		return 0, err
	}
	return intutils.Le64(b[:], 0), nil
}

// Reset restarts the stream from the stored seed.
func (r *Rng) Reset() error {
	return r.restart()
}

// Clear zeroizes the seed and buffer; the instance is unusable afterwards.
func (r *Rng) Clear() {
	intutils.Clear(r.seed)
	intutils.Clear(r.buffer)
	if r.gen != nil {
		r.gen.Reset()
	}
	r.seed = nil
	r.buffer = nil
	r.gen = nil
}
