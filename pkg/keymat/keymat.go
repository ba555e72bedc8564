// Package keymat defines the key container shared by the cipher and
// generator engines: a (Key, Nonce, Info) triple plus the legal-size sets
// each consumer publishes.
package keymat

import (
	"github.com/qseclabs/cipherkit/internal/intutils"
)

// KeyMaterial is the keying triple consumed by an engine's Initialize.
// Nonce and Info may be empty.
type KeyMaterial struct {
	Key   []byte
	Nonce []byte
	Info  []byte
}

// Clone returns a deep copy of the material.
func (km KeyMaterial) Clone() KeyMaterial {
	c := KeyMaterial{}
	if km.Key != nil {
		c.Key = append([]byte(nil), km.Key...)
	}
	if km.Nonce != nil {
		c.Nonce = append([]byte(nil), km.Nonce...)
	}
	if km.Info != nil {
		c.Info = append([]byte(nil), km.Info...)
	}
	return c
}

// Zeroize overwrites all three fields with zero bytes.
func (km KeyMaterial) Zeroize() {
	intutils.Clear(km.Key)
	intutils.Clear(km.Nonce)
	intutils.Clear(km.Info)
}

// SymmetricKeySize describes one accepted (key, nonce, info) size triple.
// By convention the first entry of a legal-size set is the mandatory
// minimum, the second the recommended size, and the third the saturation
// size that triggers the extract step in HKDF/cSHAKE keying.
type SymmetricKeySize struct {
	KeySize   int
	NonceSize int
	InfoSize  int
}

// ContainsKey reports whether any entry of sizes accepts a key of length n.
func ContainsKey(sizes []SymmetricKeySize, n int) bool {
	for _, s := range sizes {
		if s.KeySize == n {
			return true
		}
	}
	return false
}
