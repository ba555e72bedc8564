// Package ahx implements the extended Rijndael block cipher (AHX).
//
// The round function is the bitsliced, constant-time ct64 realization
// processing four blocks per dispatch. Two key schedules are supported:
// the classical Rijndael schedule for 16/24/32-byte keys (10/12/14
// rounds, interoperable with standard AES), and an HKDF schedule over an
// injected digest that extends the cipher to 10-38 rounds for the
// counter-mode entropy and PRNG stages.
//
// The engine is encrypt-only: its consumers run it exclusively in counter
// mode, where decryption is another encryption of the same counter stream.
package ahx

import (
	"fmt"

	"github.com/qseclabs/cipherkit/internal/constants"
	qerrors "github.com/qseclabs/cipherkit/internal/errors"
	"github.com/qseclabs/cipherkit/internal/intutils"
	"github.com/qseclabs/cipherkit/pkg/kdf"
	"github.com/qseclabs/cipherkit/pkg/keymat"
)

// BlockSize is the cipher block length in bytes.
const BlockSize = constants.BlockSize

// defaultInfo is the distribution code used when the caller supplies none.
var defaultInfo = []byte("AHX version 1 information string")

// Cipher is an AHX engine instance. It is not safe for concurrent use.
type Cipher struct {
	skExp         []uint64
	rounds        int
	digest        kdf.Digest
	hasDigest     bool
	info          []byte
	infoMax       int
	keyBits       int
	initialized   bool
	legalKeySizes []keymat.SymmetricKeySize
}

// Option configures a Cipher at construction.
type Option func(*Cipher) error

// WithDigest selects the HKDF key schedule over the given digest.
func WithDigest(d kdf.Digest) Option {
	return func(c *Cipher) error {
		if !d.Valid() {
			return qerrors.NewCryptoError("ahx.New", qerrors.ErrInvalidDigest)
		}
		c.digest = d
		c.hasDigest = true
		return nil
	}
}

// WithRounds selects the round count for the HKDF schedule. Legal counts
// are even numbers from 10 through 38. The classical schedule ignores
// this setting.
func WithRounds(rounds int) Option {
	return func(c *Cipher) error {
		if rounds < constants.AHXMinRounds || rounds > constants.AHXMaxRounds || rounds%2 != 0 {
			return qerrors.NewCryptoError("ahx.New", qerrors.ErrInvalidRounds)
		}
		c.rounds = rounds
		return nil
	}
}

// New constructs an AHX engine. The zero configuration is the classical
// Rijndael schedule.
func New(opts ...Option) (*Cipher, error) {
	c := &Cipher{rounds: 22}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	c.loadState()
	return c, nil
}

func (c *Cipher) loadState() {
	if !c.hasDigest {
		c.infoMax = 0
		c.legalKeySizes = []keymat.SymmetricKeySize{
			{KeySize: 16, NonceSize: BlockSize},
			{KeySize: 24, NonceSize: BlockSize},
			{KeySize: 32, NonceSize: BlockSize},
		}
		return
	}
	c.infoMax = c.digest.InfoMax()
	c.legalKeySizes = []keymat.SymmetricKeySize{
		{KeySize: c.digest.Size, NonceSize: BlockSize, InfoSize: c.infoMax},
		{KeySize: c.digest.BlockSize, NonceSize: BlockSize, InfoSize: c.infoMax},
		{KeySize: c.digest.BlockSize * 2, NonceSize: BlockSize, InfoSize: c.infoMax},
	}
}

// LegalKeySizes returns the accepted (key, nonce, info) size triples.
func (c *Cipher) LegalKeySizes() []keymat.SymmetricKeySize {
	return c.legalKeySizes
}

// DistributionCodeMax returns the maximum info length in bytes.
func (c *Cipher) DistributionCodeMax() int { return c.infoMax }

// Rounds returns the active round count.
func (c *Cipher) Rounds() int { return c.rounds }

// IsInitialized reports whether the engine is keyed.
func (c *Cipher) IsInitialized() bool { return c.initialized }

// BlockSize returns the cipher block length in bytes.
func (c *Cipher) BlockSize() int { return BlockSize }

// Name returns the engine identity: Rijndael<bits> under the classical
// schedule, AHX<bits> with a KDF digest.
func (c *Cipher) Name() string {
	base := "Rijndael"
	if c.hasDigest {
		base = "AHX"
	}
	if c.keyBits == 0 {
		return base
	}
	return fmt.Sprintf("%s%d", base, c.keyBits)
}

// Initialize expands the key. A prior schedule is zeroized first.
func (c *Cipher) Initialize(km keymat.KeyMaterial) error {
	if !keymat.ContainsKey(c.legalKeySizes, len(km.Key)) {
		return qerrors.NewCryptoError("ahx.Initialize", qerrors.ErrInvalidKeySize)
	}
	if c.hasDigest && len(km.Info) > c.infoMax {
		return qerrors.NewCryptoError("ahx.Initialize", qerrors.ErrInvalidInfoSize)
	}

	c.Clear()

	if len(km.Info) > 0 {
		c.info = append([]byte(nil), km.Info...)
	} else {
		c.info = append([]byte(nil), defaultInfo...)
	}

	var words []uint32
	if c.hasDigest {
		keyWords := 4 * (c.rounds + 1)
		raw := make([]byte, keyWords*4)
		var err error
		if len(km.Key) > c.digest.BlockSize {
			err = kdf.ExtractAndExpand(c.digest, km.Key[:c.digest.BlockSize], km.Key[c.digest.BlockSize:], c.info, raw)
		} else {
			err = kdf.Expand(c.digest, km.Key, c.info, raw)
		}
		if err != nil {
			return err
		}
		words = make([]uint32, keyWords)
		for i := range words {
			words[i] = intutils.Le32(raw, i*4)
		}
		intutils.Clear(raw)
	} else {
		words, c.rounds = standardKeySchedule(km.Key)
	}

	comp := make([]uint64, len(words)/2)
	compressSchedule(comp, words)
	c.skExp = make([]uint64, 8*(c.rounds+1))
	expandSchedule(c.skExp, c.rounds, comp)

	intutils.ClearUint32(words)
	memwipeU64(comp)

	c.keyBits = len(km.Key) * 8
	c.initialized = true
	return nil
}

// Transform encrypts one 16-byte block.
func (c *Cipher) Transform(in []byte, inOff int, out []byte, outOff int) error {
	if !c.initialized {
		return qerrors.NewCryptoError("ahx.Transform", qerrors.ErrNotInitialized)
	}
	if inOff < 0 || outOff < 0 || inOff+BlockSize > len(in) || outOff+BlockSize > len(out) {
		return qerrors.NewCryptoError("ahx.Transform", qerrors.ErrInvalidLength)
	}
	var q [8]uint64
	load4(&q, in[inOff:])
	encryptRounds(c.rounds, c.skExp, &q)
	store4(out[outOff:], &q)
	memwipeU64(q[:])
	return nil
}

// Transform512 encrypts 4 consecutive blocks (64 bytes) in one bitsliced
// dispatch.
func (c *Cipher) Transform512(in []byte, inOff int, out []byte, outOff int) error {
	if !c.initialized {
		return qerrors.NewCryptoError("ahx.Transform512", qerrors.ErrNotInitialized)
	}
	if inOff < 0 || outOff < 0 || inOff+4*BlockSize > len(in) || outOff+4*BlockSize > len(out) {
		return qerrors.NewCryptoError("ahx.Transform512", qerrors.ErrInvalidLength)
	}
	var q [8]uint64
	load16(&q, in[inOff:])
	encryptRounds(c.rounds, c.skExp, &q)
	store16(out[outOff:], &q)
	memwipeU64(q[:])
	return nil
}

// Clear zeroizes the key schedule and distribution code. The configured
// digest and rounds survive so the engine can be re-initialized.
func (c *Cipher) Clear() {
	memwipeU64(c.skExp)
	intutils.Clear(c.info)
	c.skExp = nil
	c.info = nil
	c.keyBits = 0
	c.initialized = false
}
