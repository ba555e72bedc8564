// Package aead implements authenticated encryption with associated data
// over the library's cipher engines.
//
// Two suites are provided:
//   - SHX-GCM: Galois/Counter Mode over the extended Serpent cipher
//   - ChaCha20-Poly1305: a stream-cipher suite without a block engine
//
// Both use 32-byte keys, 12-byte nonces, and 16-byte authentication
// tags. Decryption releases no plaintext on tag mismatch.
package aead

import (
	"crypto/cipher"
	"encoding/binary"
	"sync"

	"golang.org/x/crypto/chacha20poly1305"

	"github.com/qseclabs/cipherkit/internal/bufpool"
	"github.com/qseclabs/cipherkit/internal/constants"
	qerrors "github.com/qseclabs/cipherkit/internal/errors"
	"github.com/qseclabs/cipherkit/pkg/keymat"
	"github.com/qseclabs/cipherkit/pkg/shx"
)

// Suite identifies an AEAD construction.
type Suite uint16

const (
	// SuiteSHXGCM is GCM over the extended Serpent cipher.
	SuiteSHXGCM Suite = 0x0001

	// SuiteChaCha20Poly1305 is the RFC 8439 construction.
	SuiteChaCha20Poly1305 Suite = 0x0002
)

// String returns a human-readable name for the suite.
func (s Suite) String() string {
	switch s {
	case SuiteSHXGCM:
		return "SHX-GCM"
	case SuiteChaCha20Poly1305:
		return "ChaCha20-Poly1305"
	default:
		return "Unknown"
	}
}

// maxSeq bounds the nonce counter well below the 64-bit space so a rekey
// can happen before exhaustion.
const maxSeq = uint64(1) << 28

// AEAD is an authenticated cipher instance.
type AEAD struct {
	cipher cipher.AEAD
	suite  Suite

	// Nonce state management
	mu      sync.Mutex
	counter uint64
}

// New creates an AEAD with the given suite and 32-byte key.
func New(suite Suite, key []byte) (*AEAD, error) {
	if len(key) != constants.AEADKeySize {
		return nil, qerrors.NewCryptoError("aead.New", qerrors.ErrInvalidKeySize)
	}

	var inner cipher.AEAD
	switch suite {
	case SuiteSHXGCM:
		engine, err := shx.New()
		if err != nil {
			return nil, err
		}
		if err := engine.Initialize(true, keymat.KeyMaterial{Key: key}); err != nil {
			return nil, err
		}
		inner, err = cipher.NewGCM(engine.Block())
		if err != nil {
			return nil, qerrors.NewCryptoError("aead.New", err)
		}
	case SuiteChaCha20Poly1305:
		var err error
		inner, err = chacha20poly1305.New(key)
		if err != nil {
			return nil, qerrors.NewCryptoError("aead.New", err)
		}
	default:
		return nil, qerrors.NewCryptoError("aead.New", qerrors.ErrInvalidDigest)
	}

	return &AEAD{cipher: inner, suite: suite}, nil
}

// Seal encrypts and authenticates plaintext with an auto-incrementing
// counter nonce, returning nonce || ciphertext || tag.
func (a *AEAD) Seal(plaintext, additionalData []byte) ([]byte, error) {
	nonce, err := a.nextNonce()
	if err != nil {
		return nil, err
	}

	out := make([]byte, constants.AEADNonceSize+len(plaintext)+constants.AEADTagSize)
	copy(out[:constants.AEADNonceSize], nonce)
	a.cipher.Seal(out[constants.AEADNonceSize:constants.AEADNonceSize], nonce, plaintext, additionalData)
	return out, nil
}

// SealWithNonce encrypts using an explicit 12-byte nonce. The caller is
// responsible for nonce uniqueness.
func (a *AEAD) SealWithNonce(nonce, plaintext, additionalData []byte) ([]byte, error) {
	if len(nonce) != constants.AEADNonceSize {
		return nil, qerrors.NewCryptoError("aead.Seal", qerrors.ErrInvalidNonceSize)
	}
	return a.cipher.Seal(nil, nonce, plaintext, additionalData), nil
}

// Open verifies and decrypts nonce || ciphertext || tag.
func (a *AEAD) Open(ciphertext, additionalData []byte) ([]byte, error) {
	if len(ciphertext) < constants.AEADNonceSize+constants.AEADTagSize {
		return nil, qerrors.NewCryptoError("aead.Open", qerrors.ErrAuthenticationFailed)
	}
	nonce := ciphertext[:constants.AEADNonceSize]
	encrypted := ciphertext[constants.AEADNonceSize:]

	plaintext, err := a.cipher.Open(nil, nonce, encrypted, additionalData)
	if err != nil {
		return nil, qerrors.NewCryptoError("aead.Open", qerrors.ErrAuthenticationFailed)
	}
	return plaintext, nil
}

// OpenWithNonce verifies and decrypts using an explicit nonce.
func (a *AEAD) OpenWithNonce(nonce, ciphertext, additionalData []byte) ([]byte, error) {
	if len(nonce) != constants.AEADNonceSize {
		return nil, qerrors.NewCryptoError("aead.Open", qerrors.ErrInvalidNonceSize)
	}
	if len(ciphertext) < constants.AEADTagSize {
		return nil, qerrors.NewCryptoError("aead.Open", qerrors.ErrAuthenticationFailed)
	}
	plaintext, err := a.cipher.Open(nil, nonce, ciphertext, additionalData)
	if err != nil {
		return nil, qerrors.NewCryptoError("aead.Open", qerrors.ErrAuthenticationFailed)
	}
	return plaintext, nil
}

// SealPooled encrypts like Seal but places the result in a pooled
// buffer; the caller must return it with bufpool.Put when done. Useful
// for high-throughput callers sealing many short messages.
func (a *AEAD) SealPooled(plaintext, additionalData []byte) ([]byte, error) {
	nonce, err := a.nextNonce()
	if err != nil {
		return nil, err
	}

	out := bufpool.Get(constants.AEADNonceSize + len(plaintext) + constants.AEADTagSize)
	copy(out[:constants.AEADNonceSize], nonce)
	a.cipher.Seal(out[constants.AEADNonceSize:constants.AEADNonceSize], nonce, plaintext, additionalData)
	return out, nil
}

// nextNonce generates the next counter nonce.
func (a *AEAD) nextNonce() ([]byte, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.counter >= maxSeq {
		return nil, qerrors.NewCryptoError("aead.Seal", qerrors.ErrOutputExhausted)
	}

	nonce := make([]byte, constants.AEADNonceSize)
	binary.BigEndian.PutUint64(nonce[4:], a.counter)
	a.counter++
	return nonce, nil
}

// Counter returns the current nonce counter value.
func (a *AEAD) Counter() uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.counter
}

// NeedsRekey reports whether the suite is approaching nonce exhaustion.
func (a *AEAD) NeedsRekey() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.counter >= (maxSeq * 9 / 10)
}

// Suite returns the suite identifier.
func (a *AEAD) Suite() Suite { return a.suite }

// Overhead returns the bytes added by Seal: nonce plus tag.
func (a *AEAD) Overhead() int {
	return constants.AEADNonceSize + a.cipher.Overhead()
}

// NonceSize returns the required nonce length in bytes.
func (a *AEAD) NonceSize() int { return a.cipher.NonceSize() }
