// Package kdf provides HKDF Extract-and-Expand (RFC 5869) over an injected
// digest, used by the extended ciphers to build their key schedules.
package kdf

import (
	"crypto/sha256"
	"crypto/sha512"
	"hash"

	"golang.org/x/crypto/hkdf"

	qerrors "github.com/qseclabs/cipherkit/internal/errors"
)

// Digest describes the hash an HKDF instance runs over.
type Digest struct {
	Name string
	New  func() hash.Hash

	// BlockSize is the HMAC block length; keys longer than this trigger
	// the Extract step in the extended cipher schedules.
	BlockSize int

	// Size is the digest output length.
	Size int

	// PadSize is the length-encoding trailer of the compression function;
	// together with the one-byte HKDF counter it bounds the usable info.
	PadSize int
}

// SHA256 is the HKDF-SHA-256 digest configuration.
var SHA256 = Digest{Name: "SHA256", New: sha256.New, BlockSize: 64, Size: 32, PadSize: 8}

// SHA512 is the HKDF-SHA-512 digest configuration.
var SHA512 = Digest{Name: "SHA512", New: sha512.New, BlockSize: 128, Size: 64, PadSize: 16}

// Valid reports whether the digest is usable.
func (d Digest) Valid() bool {
	return d.New != nil && d.BlockSize > 0 && d.Size > 0
}

// InfoMax returns the maximum distribution-code length usable with this
// digest: one HMAC block minus the finalizer padding and the HKDF counter.
func (d Digest) InfoMax() int {
	return d.BlockSize - (d.PadSize + 1)
}

// MaxOutput returns the RFC 5869 output bound, 255 times the digest size.
func (d Digest) MaxOutput() int {
	return 255 * d.Size
}

// Expand runs HKDF-Expand with prk as the pseudorandom key, filling out.
func Expand(d Digest, prk, info, out []byte) error {
	if !d.Valid() {
		return qerrors.NewCryptoError("kdf.Expand", qerrors.ErrInvalidDigest)
	}
	if len(out) > d.MaxOutput() {
		return qerrors.NewCryptoError("kdf.Expand", qerrors.ErrInvalidLength)
	}
	r := hkdf.Expand(d.New, prk, info)
	if _, err := r.Read(out); err != nil {
		return qerrors.NewCryptoError("kdf.Expand", err)
	}
	return nil
}

// Extract runs HKDF-Extract, returning the pseudorandom key.
func Extract(d Digest, secret, salt []byte) ([]byte, error) {
	if !d.Valid() {
		return nil, qerrors.NewCryptoError("kdf.Extract", qerrors.ErrInvalidDigest)
	}
	return hkdf.Extract(d.New, secret, salt), nil
}

// ExtractAndExpand chains Extract and Expand, filling out.
func ExtractAndExpand(d Digest, secret, salt, info, out []byte) error {
	prk, err := Extract(d, secret, salt)
	if err != nil {
		return err
	}
	err = Expand(d, prk, info, out)
	for i := range prk {
		prk[i] = 0
	}
	return err
}
