// Package intutils provides the byte/word primitives shared by the cipher
// cores: endian conversion, rotates, constant-time comparison, and
// zeroization.
package intutils

import (
	"crypto/subtle"
	"encoding/binary"
	"math/bits"
)

// Le32 reads a little-endian uint32 at offset.
func Le32(b []byte, off int) uint32 {
	return binary.LittleEndian.Uint32(b[off:])
}

// PutLe32 writes v little-endian at offset.
func PutLe32(v uint32, b []byte, off int) {
	binary.LittleEndian.PutUint32(b[off:], v)
}

// Be32 reads a big-endian uint32 at offset.
func Be32(b []byte, off int) uint32 {
	return binary.BigEndian.Uint32(b[off:])
}

// PutBe32 writes v big-endian at offset.
func PutBe32(v uint32, b []byte, off int) {
	binary.BigEndian.PutUint32(b[off:], v)
}

// Le64 reads a little-endian uint64 at offset.
func Le64(b []byte, off int) uint64 {
	return binary.LittleEndian.Uint64(b[off:])
}

// PutLe64 writes v little-endian at offset.
func PutLe64(v uint64, b []byte, off int) {
	binary.LittleEndian.PutUint64(b[off:], v)
}

// Le16 reads a little-endian uint16 at offset.
func Le16(b []byte, off int) uint16 {
	return binary.LittleEndian.Uint16(b[off:])
}

// PutLe16 writes v little-endian at offset.
func PutLe16(v uint16, b []byte, off int) {
	binary.LittleEndian.PutUint16(b[off:], v)
}

// RotL32 rotates x left by k bits.
func RotL32(x uint32, k int) uint32 {
	return bits.RotateLeft32(x, k)
}

// RotL64 rotates x left by k bits.
func RotL64(x uint64, k int) uint64 {
	return bits.RotateLeft64(x, k)
}

// ConstantTimeEqual compares two equal-length slices in constant time.
// Slices of different lengths compare unequal without a timing guarantee
// on the length itself.
func ConstantTimeEqual(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}

// Clear zeroizes a byte slice.
func Clear(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// ClearUint32 zeroizes a uint32 slice.
func ClearUint32(w []uint32) {
	for i := range w {
		w[i] = 0
	}
}

// ClearUint64 zeroizes a uint64 slice.
func ClearUint64(w []uint64) {
	for i := range w {
		w[i] = 0
	}
}

// IncrementLE adds one to a little-endian counter block.
func IncrementLE(ctr []byte) {
	for i := 0; i < len(ctr); i++ {
		ctr[i]++
		if ctr[i] != 0 {
			return
		}
	}
}
