// Package shx implements the extended Serpent block cipher (SHX).
//
// With no digest configured the engine runs the classical Serpent key
// schedule: 16/24/32-byte keys expand with the 8-word rotating polynomial
// over 32 rounds, and a 64-byte key switches to a 16-word polynomial with
// taps 16,13,11,10,8,5,3,1 and 40 rounds. With an HKDF digest configured
// the schedule is replaced by HKDF Extract-and-Expand over the digest,
// unlocking 32/40/48/56/64-round variants keyed by digest-sized secrets.
//
// Bulk transforms process 4, 8 or 16 blocks per call through lane-vector
// registers; their output is bitwise identical to the scalar transform
// applied to each block in order.
package shx

import (
	"fmt"

	"github.com/qseclabs/cipherkit/internal/constants"
	qerrors "github.com/qseclabs/cipherkit/internal/errors"
	"github.com/qseclabs/cipherkit/internal/intutils"
	"github.com/qseclabs/cipherkit/pkg/kdf"
	"github.com/qseclabs/cipherkit/pkg/keymat"
	"github.com/qseclabs/cipherkit/pkg/serpent"
)

// BlockSize is the cipher block length in bytes.
const BlockSize = constants.BlockSize

// defaultInfo is the distribution code used when the caller supplies none.
var defaultInfo = []byte("SHX version 1 information string")

// KeyMaterial re-exports the shared key container for convenience.
type KeyMaterial = keymat.KeyMaterial

// Cipher is an SHX engine instance. It is not safe for concurrent use.
type Cipher struct {
	expKey        []uint32
	rounds        int
	digest        kdf.Digest
	hasDigest     bool
	info          []byte
	infoMax       int
	keyBits       int
	encrypting    bool
	initialized   bool
	legalKeySizes []keymat.SymmetricKeySize
}

// Option configures a Cipher at construction.
type Option func(*Cipher) error

// WithDigest selects the HKDF key schedule over the given digest.
func WithDigest(d kdf.Digest) Option {
	return func(c *Cipher) error {
		if !d.Valid() {
			return qerrors.NewCryptoError("shx.New", qerrors.ErrInvalidDigest)
		}
		c.digest = d
		c.hasDigest = true
		return nil
	}
}

// WithRounds selects the round count for the HKDF schedule. Legal counts
// are 32, 40, 48, 56 and 64. The classical schedule ignores this setting
// and derives the count from the key length.
func WithRounds(rounds int) Option {
	return func(c *Cipher) error {
		if rounds < constants.SHXMinRounds || rounds > constants.SHXMaxRounds || rounds%8 != 0 {
			return qerrors.NewCryptoError("shx.New", qerrors.ErrInvalidRounds)
		}
		c.rounds = rounds
		return nil
	}
}

// New constructs an SHX engine. The zero configuration is the classical
// Serpent schedule.
func New(opts ...Option) (*Cipher, error) {
	c := &Cipher{rounds: constants.SHXStandardRounds}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	c.loadState()
	return c, nil
}

// loadState computes the legal key sizes for the configured schedule.
func (c *Cipher) loadState() {
	if !c.hasDigest {
		c.infoMax = 0
		c.legalKeySizes = []keymat.SymmetricKeySize{
			{KeySize: 16, NonceSize: BlockSize},
			{KeySize: 24, NonceSize: BlockSize},
			{KeySize: 32, NonceSize: BlockSize},
			{KeySize: 64, NonceSize: BlockSize},
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

// LegalRounds returns the accepted round counts for the configured schedule.
func (c *Cipher) LegalRounds() []int {
	if !c.hasDigest {
		return []int{32, 40}
	}
	return []int{32, 40, 48, 56, 64}
}

// DistributionCodeMax returns the maximum info length in bytes.
func (c *Cipher) DistributionCodeMax() int { return c.infoMax }

// Rounds returns the active round count.
func (c *Cipher) Rounds() int { return c.rounds }

// IsEncryption reports whether the engine was initialized for encryption.
func (c *Cipher) IsEncryption() bool { return c.encrypting }

// IsInitialized reports whether the engine is keyed.
func (c *Cipher) IsInitialized() bool { return c.initialized }

// BlockSize returns the cipher block length in bytes.
func (c *Cipher) BlockSize() int { return BlockSize }

// Name returns the engine identity: Serpent<bits> under the classical
// schedule, SHX<bits> with a KDF digest.
func (c *Cipher) Name() string {
	base := "Serpent"
	if c.hasDigest {
		base = "SHX"
	}
	if c.keyBits == 0 {
		return base
	}
	return fmt.Sprintf("%s%d", base, c.keyBits)
}

// Initialize expands the key and readies the engine for the requested
// direction. A prior schedule is zeroized before expansion.
func (c *Cipher) Initialize(encrypting bool, km keymat.KeyMaterial) error {
	if !keymat.ContainsKey(c.legalKeySizes, len(km.Key)) {
		return qerrors.NewCryptoError("shx.Initialize", qerrors.ErrInvalidKeySize)
	}
	if c.hasDigest && len(km.Info) > c.infoMax {
		return qerrors.NewCryptoError("shx.Initialize", qerrors.ErrInvalidInfoSize)
	}

	c.Clear()

	if len(km.Info) > 0 {
		c.info = append([]byte(nil), km.Info...)
	} else {
		c.info = append([]byte(nil), defaultInfo...)
	}

	var err error
	if c.hasDigest {
		err = c.secureExpand(km.Key)
	} else {
		err = c.standardExpand(km.Key)
	}
	if err != nil {
		return err
	}

	c.keyBits = len(km.Key) * 8
	c.encrypting = encrypting
	c.initialized = true
	return nil
}

// secureExpand builds the schedule with HKDF over the configured digest.
// A key longer than the digest block splits into (prefix=key, suffix=salt)
// and runs Extract-then-Expand; shorter keys run Expand directly with the
// distribution code as the HKDF info parameter.
func (c *Cipher) secureExpand(key []byte) error {
	keyWords := 4 * (c.rounds + 1)
	raw := make([]byte, keyWords*4)

	var err error
	if len(key) > c.digest.BlockSize {
		k := key[:c.digest.BlockSize]
		salt := key[c.digest.BlockSize:]
		err = kdf.ExtractAndExpand(c.digest, k, salt, c.info, raw)
	} else {
		err = kdf.Expand(c.digest, key, c.info, raw)
	}
	if err != nil {
		return err
	}

	c.expKey = make([]uint32, keyWords)
	for i := range c.expKey {
		c.expKey[i] = intutils.Le32(raw, i*4)
	}
	intutils.Clear(raw)
	return nil
}

// standardExpand builds the classical rotating-polynomial schedule.
// A 64-byte key selects the 16-word polynomial and forces 40 rounds;
// all other sizes run the 8-word polynomial over 32 rounds.
func (c *Cipher) standardExpand(key []byte) error {
	if len(key) == 64 {
		c.rounds = constants.SHXExtendedRounds
	} else {
		c.rounds = constants.SHXStandardRounds
	}
	keyWords := 4 * (c.rounds + 1)
	rk := make([]uint32, keyWords)

	if len(key) == 64 {
		var w [32]uint32
		for i := 0; i < 16; i++ {
			w[i] = intutils.Le32(key, i*4)
		}
		for i := 16; i < 32; i++ {
			x := w[i-16] ^ w[i-13] ^ w[i-11] ^ w[i-10] ^ w[i-8] ^ w[i-5] ^ w[i-3] ^ w[i-1] ^
				constants.SerpentPHI ^ uint32(i-16)
			w[i] = intutils.RotL32(x, 11)
			rk[i-16] = w[i]
		}
		for i := 16; i < keyWords; i++ {
			x := rk[i-16] ^ rk[i-13] ^ rk[i-11] ^ rk[i-10] ^ rk[i-8] ^ rk[i-5] ^ rk[i-3] ^ rk[i-1] ^
				constants.SerpentPHI ^ uint32(i)
			rk[i] = intutils.RotL32(x, 11)
		}
		intutils.ClearUint32(w[:])
	} else {
		var w [16]uint32
		j := 0
		for i := 0; i+4 <= len(key); i += 4 {
			w[j] = intutils.Le32(key, i)
			j++
		}
		if j < 8 {
			w[j] = 1
		}
		for i := 8; i < 16; i++ {
			x := w[i-8] ^ w[i-5] ^ w[i-3] ^ w[i-1] ^ constants.SerpentPHI ^ uint32(i-8)
			w[i] = intutils.RotL32(x, 11)
			rk[i-8] = w[i]
		}
		for i := 8; i < keyWords; i++ {
			x := rk[i-8] ^ rk[i-5] ^ rk[i-3] ^ rk[i-1] ^ constants.SerpentPHI ^ uint32(i)
			rk[i] = intutils.RotL32(x, 11)
		}
		intutils.ClearUint32(w[:])
	}

	// process the raw schedule through the S-boxes in the fixed order
	// 3,2,1,0,7,6,5,4 four words at a time, terminating with a final S3
	sboxOrder := [8]int{3, 2, 1, 0, 7, 6, 5, 4}
	cnt := 0
	for cnt < keyWords-4 {
		idx := sboxOrder[(cnt/4)%8]
		r0, r1, r2, r3 := serpent.V1(rk[cnt]), serpent.V1(rk[cnt+1]), serpent.V1(rk[cnt+2]), serpent.V1(rk[cnt+3])
		r0, r1, r2, r3 = applyScheduleSbox(idx, r0, r1, r2, r3)
		rk[cnt], rk[cnt+1], rk[cnt+2], rk[cnt+3] = uint32(r0), uint32(r1), uint32(r2), uint32(r3)
		cnt += 4
	}
	r0, r1, r2, r3 := serpent.Sb3(serpent.V1(rk[cnt]), serpent.V1(rk[cnt+1]), serpent.V1(rk[cnt+2]), serpent.V1(rk[cnt+3]))
	rk[cnt], rk[cnt+1], rk[cnt+2], rk[cnt+3] = uint32(r0), uint32(r1), uint32(r2), uint32(r3)

	c.expKey = rk
	return nil
}

func applyScheduleSbox(idx int, r0, r1, r2, r3 serpent.V1) (serpent.V1, serpent.V1, serpent.V1, serpent.V1) {
	switch idx {
	case 0:
		return serpent.Sb0(r0, r1, r2, r3)
	case 1:
		return serpent.Sb1(r0, r1, r2, r3)
	case 2:
		return serpent.Sb2(r0, r1, r2, r3)
	case 3:
		return serpent.Sb3(r0, r1, r2, r3)
	case 4:
		return serpent.Sb4(r0, r1, r2, r3)
	case 5:
		return serpent.Sb5(r0, r1, r2, r3)
	case 6:
		return serpent.Sb6(r0, r1, r2, r3)
	default:
		return serpent.Sb7(r0, r1, r2, r3)
	}
}

// checkBounds validates a transform request spanning n bytes.
func (c *Cipher) checkBounds(in []byte, inOff int, out []byte, outOff, n int) error {
	if !c.initialized {
		return qerrors.NewCryptoError("shx.Transform", qerrors.ErrNotInitialized)
	}
	if inOff < 0 || outOff < 0 || inOff+n > len(in) || outOff+n > len(out) {
		return qerrors.NewCryptoError("shx.Transform", qerrors.ErrInvalidLength)
	}
	return nil
}

// Transform processes one 16-byte block in the initialized direction.
func (c *Cipher) Transform(in []byte, inOff int, out []byte, outOff int) error {
	if err := c.checkBounds(in, inOff, out, outOff, BlockSize); err != nil {
		return err
	}
	if c.encrypting {
		serpent.Encrypt[serpent.V1](out, outOff, in, inOff, c.expKey)
	} else {
		serpent.Decrypt[serpent.V1](out, outOff, in, inOff, c.expKey)
	}
	return nil
}

// Transform512 processes 4 blocks (64 bytes) through the 4-lane path.
func (c *Cipher) Transform512(in []byte, inOff int, out []byte, outOff int) error {
	if err := c.checkBounds(in, inOff, out, outOff, 4*BlockSize); err != nil {
		return err
	}
	if c.encrypting {
		serpent.Encrypt[serpent.V4](out, outOff, in, inOff, c.expKey)
	} else {
		serpent.Decrypt[serpent.V4](out, outOff, in, inOff, c.expKey)
	}
	return nil
}

// Transform1024 processes 8 blocks (128 bytes) through the 8-lane path.
func (c *Cipher) Transform1024(in []byte, inOff int, out []byte, outOff int) error {
	if err := c.checkBounds(in, inOff, out, outOff, 8*BlockSize); err != nil {
		return err
	}
	if c.encrypting {
		serpent.Encrypt[serpent.V8](out, outOff, in, inOff, c.expKey)
	} else {
		serpent.Decrypt[serpent.V8](out, outOff, in, inOff, c.expKey)
	}
	return nil
}

// Transform2048 processes 16 blocks (256 bytes) through the 16-lane path.
func (c *Cipher) Transform2048(in []byte, inOff int, out []byte, outOff int) error {
	if err := c.checkBounds(in, inOff, out, outOff, 16*BlockSize); err != nil {
		return err
	}
	if c.encrypting {
		serpent.Encrypt[serpent.V16](out, outOff, in, inOff, c.expKey)
	} else {
		serpent.Decrypt[serpent.V16](out, outOff, in, inOff, c.expKey)
	}
	return nil
}

// EncryptBlock encrypts one block; the engine must be initialized for
// encryption.
func (c *Cipher) EncryptBlock(in []byte, inOff int, out []byte, outOff int) error {
	if c.initialized && !c.encrypting {
		return qerrors.NewCryptoError("shx.EncryptBlock", qerrors.ErrWrongDirection)
	}
	return c.Transform(in, inOff, out, outOff)
}

// DecryptBlock decrypts one block; the engine must be initialized for
// decryption.
func (c *Cipher) DecryptBlock(in []byte, inOff int, out []byte, outOff int) error {
	if c.initialized && c.encrypting {
		return qerrors.NewCryptoError("shx.DecryptBlock", qerrors.ErrWrongDirection)
	}
	return c.Transform(in, inOff, out, outOff)
}

// Clear zeroizes the key schedule and distribution code and returns the
// engine to the uninitialized state. The configured digest and rounds
// survive so the engine can be re-initialized.
func (c *Cipher) Clear() {
	intutils.ClearUint32(c.expKey)
	intutils.Clear(c.info)
	c.expKey = nil
	c.info = nil
	c.keyBits = 0
	c.encrypting = false
	c.initialized = false
}
