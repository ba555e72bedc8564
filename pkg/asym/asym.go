// Package asym defines the adaptor surface the asymmetric constructions
// consume from this library: a PRNG contract for keystream and sampling,
// and an AEAD contract for authenticating exchanged secrets. The
// asymmetric ciphers themselves live outside the core; an ML-KEM-1024
// exchange is included as the reference consumer of both contracts.
package asym

import (
	"io"

	"github.com/cloudflare/circl/kem/mlkem/mlkem1024"

	qerrors "github.com/qseclabs/cipherkit/internal/errors"
	"github.com/qseclabs/cipherkit/pkg/aead"
	"github.com/qseclabs/cipherkit/pkg/bcr"
)

// PRNG is the generator contract consumed by the asymmetric layers.
type PRNG interface {
	GetBytes(out []byte) error
	GetBytesAt(out []byte, off, length int) error
	NextUInt16() (uint16, error)
	NextUInt32() (uint32, error)
	NextUInt64() (uint64, error)
}

// AEAD is the authenticated-encryption contract consumed by the
// asymmetric layers: 12-byte nonces, 16-byte tags, no plaintext release
// on tag mismatch.
type AEAD interface {
	SealWithNonce(nonce, plaintext, additionalData []byte) ([]byte, error)
	OpenWithNonce(nonce, ciphertext, additionalData []byte) ([]byte, error)
	NonceSize() int
	Overhead() int
}

// The library engines satisfy the contracts.
var (
	_ PRNG = (*bcr.Rng)(nil)
	_ AEAD = (*aead.AEAD)(nil)
)

// prngReader adapts a PRNG to io.Reader for key-generation APIs.
type prngReader struct {
	src PRNG
}

// Reader returns an io.Reader view over a PRNG.
func Reader(src PRNG) io.Reader {
	return &prngReader{src: src}
}

func (r *prngReader) Read(p []byte) (int, error) {
	if err := r.src.GetBytes(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// KeyPair holds an ML-KEM-1024 key pair.
type KeyPair struct {
	Public  *mlkem1024.PublicKey
	Private *mlkem1024.PrivateKey
}

// GenerateKeyPair generates an ML-KEM-1024 key pair drawing its
// randomness from the supplied PRNG.
func GenerateKeyPair(rng PRNG) (*KeyPair, error) {
	pk, sk, err := mlkem1024.GenerateKeyPair(Reader(rng))
	if err != nil {
		return nil, qerrors.NewCryptoError("asym.GenerateKeyPair", err)
	}
	return &KeyPair{Public: pk, Private: sk}, nil
}

// SealedSecret carries an encapsulated shared secret and its
// authenticated confirmation tag.
type SealedSecret struct {
	Ciphertext []byte
	Sealed     []byte
	Nonce      []byte
}

// Encapsulate derives a shared secret against the peer public key and
// seals a confirmation message under it with SHX-GCM. The PRNG supplies
// the encapsulation seed and nonce.
func Encapsulate(pub *mlkem1024.PublicKey, rng PRNG, confirm []byte) (*SealedSecret, []byte, error) {
	if pub == nil {
		return nil, nil, qerrors.NewCryptoError("asym.Encapsulate", qerrors.ErrInvalidKeySize)
	}

	ct := make([]byte, mlkem1024.CiphertextSize)
	ss := make([]byte, mlkem1024.SharedKeySize)
	seed := make([]byte, mlkem1024.EncapsulationSeedSize)
	if err := rng.GetBytes(seed); err != nil {
		return nil, nil, err
	}
	pub.EncapsulateTo(ct, ss, seed)

	sealer, err := aead.New(aead.SuiteSHXGCM, ss)
	if err != nil {
		return nil, nil, err
	}
	nonce := make([]byte, sealer.NonceSize())
	if err := rng.GetBytes(nonce); err != nil {
		return nil, nil, err
	}
	sealed, err := sealer.SealWithNonce(nonce, confirm, ct)
	if err != nil {
		return nil, nil, err
	}

	return &SealedSecret{Ciphertext: ct, Sealed: sealed, Nonce: nonce}, ss, nil
}

// Decapsulate recovers the shared secret and verifies the confirmation
// message. An AEAD tag mismatch surfaces as AuthenticationFailure and
// releases nothing.
func Decapsulate(priv *mlkem1024.PrivateKey, sealed *SealedSecret) ([]byte, []byte, error) {
	if priv == nil || sealed == nil {
		return nil, nil, qerrors.NewCryptoError("asym.Decapsulate", qerrors.ErrInvalidKeySize)
	}
	if len(sealed.Ciphertext) != mlkem1024.CiphertextSize {
		return nil, nil, qerrors.NewCryptoError("asym.Decapsulate", qerrors.ErrInvalidLength)
	}

	ss := make([]byte, mlkem1024.SharedKeySize)
	priv.DecapsulateTo(ss, sealed.Ciphertext)

	opener, err := aead.New(aead.SuiteSHXGCM, ss)
	if err != nil {
		return nil, nil, err
	}
	confirm, err := opener.OpenWithNonce(sealed.Nonce, sealed.Sealed, sealed.Ciphertext)
	if err != nil {
		return nil, nil, err
	}
	return ss, confirm, nil
}
