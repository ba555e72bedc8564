// Package serpent implements the Serpent S-boxes, linear transforms, and
// their inverses as branch-free bitwise circuits, together with the lane
// vectors used by the bulk cipher paths. A single generic realization of
// each circuit serves the scalar path (one block) and the wide paths
// (4/8/16 blocks), so wide output is identical to scalar by construction.
package serpent

import (
	"github.com/qseclabs/cipherkit/internal/intutils"
)

// Word is the register type a Serpent circuit operates on: a single
// 32-bit word or a vector of 32-bit lanes, one lane per block.
type Word[T any] interface {
	Xor(T) T
	And(T) T
	Or(T) T
	Not() T
	RotL(int) T
	ShL(int) T
}

// V1 is the scalar register: one 32-bit word, one block.
type V1 uint32

func (v V1) Xor(o V1) V1   { return v ^ o }
func (v V1) And(o V1) V1   { return v & o }
func (v V1) Or(o V1) V1    { return v | o }
func (v V1) Not() V1       { return ^v }
func (v V1) RotL(k int) V1 { return V1(intutils.RotL32(uint32(v), k)) }
func (v V1) ShL(k int) V1  { return v << k }

// V4 carries one 32-bit word from each of 4 blocks.
type V4 [4]uint32

func (v V4) Xor(o V4) V4 {
	for i := range v {
		v[i] ^= o[i]
	}
	return v
}

func (v V4) And(o V4) V4 {
	for i := range v {
		v[i] &= o[i]
	}
	return v
}

func (v V4) Or(o V4) V4 {
	for i := range v {
		v[i] |= o[i]
	}
	return v
}

func (v V4) Not() V4 {
	for i := range v {
		v[i] = ^v[i]
	}
	return v
}

func (v V4) RotL(k int) V4 {
	for i := range v {
		v[i] = intutils.RotL32(v[i], k)
	}
	return v
}

func (v V4) ShL(k int) V4 {
	for i := range v {
		v[i] <<= k
	}
	return v
}

// V8 carries one 32-bit word from each of 8 blocks.
type V8 [8]uint32

func (v V8) Xor(o V8) V8 {
	for i := range v {
		v[i] ^= o[i]
	}
	return v
}

func (v V8) And(o V8) V8 {
	for i := range v {
		v[i] &= o[i]
	}
	return v
}

func (v V8) Or(o V8) V8 {
	for i := range v {
		v[i] |= o[i]
	}
	return v
}

func (v V8) Not() V8 {
	for i := range v {
		v[i] = ^v[i]
	}
	return v
}

func (v V8) RotL(k int) V8 {
	for i := range v {
		v[i] = intutils.RotL32(v[i], k)
	}
	return v
}

func (v V8) ShL(k int) V8 {
	for i := range v {
		v[i] <<= k
	}
	return v
}

// V16 carries one 32-bit word from each of 16 blocks.
type V16 [16]uint32

func (v V16) Xor(o V16) V16 {
	for i := range v {
		v[i] ^= o[i]
	}
	return v
}

func (v V16) And(o V16) V16 {
	for i := range v {
		v[i] &= o[i]
	}
	return v
}

func (v V16) Or(o V16) V16 {
	for i := range v {
		v[i] |= o[i]
	}
	return v
}

func (v V16) Not() V16 {
	for i := range v {
		v[i] = ^v[i]
	}
	return v
}

func (v V16) RotL(k int) V16 {
	for i := range v {
		v[i] = intutils.RotL32(v[i], k)
	}
	return v
}

func (v V16) ShL(k int) V16 {
	for i := range v {
		v[i] <<= k
	}
	return v
}

// Lanes describes a Word type that can be filled from, and stored to,
// consecutive little-endian 16-byte blocks. Register i of the cipher state
// gathers word i of every block, so the wide round operates on all blocks
// at once with the subkey broadcast across lanes.
type Lanes[T any] interface {
	Word[T]
	Width() int
	Broadcast(uint32) T
	Gather(src []byte, off, word int) T
	Scatter(dst []byte, off, word int)
}

func (V1) Width() int            { return 1 }
func (V1) Broadcast(k uint32) V1 { return V1(k) }
func (V4) Width() int            { return 4 }
func (V4) Broadcast(k uint32) V4 { return V4{k, k, k, k} }
func (V8) Width() int            { return 8 }
func (V16) Width() int           { return 16 }

func (V8) Broadcast(k uint32) V8 {
	var v V8
	for i := range v {
		v[i] = k
	}
	return v
}

func (V16) Broadcast(k uint32) V16 {
	var v V16
	for i := range v {
		v[i] = k
	}
	return v
}

func (V1) Gather(src []byte, off, word int) V1 {
	return V1(intutils.Le32(src, off+4*word))
}

func (v V1) Scatter(dst []byte, off, word int) {
	intutils.PutLe32(uint32(v), dst, off+4*word)
}

func (V4) Gather(src []byte, off, word int) V4 {
	var v V4
	for i := range v {
		v[i] = intutils.Le32(src, off+16*i+4*word)
	}
	return v
}

func (v V4) Scatter(dst []byte, off, word int) {
	for i := range v {
		intutils.PutLe32(v[i], dst, off+16*i+4*word)
	}
}

func (V8) Gather(src []byte, off, word int) V8 {
	var v V8
	for i := range v {
		v[i] = intutils.Le32(src, off+16*i+4*word)
	}
	return v
}

func (v V8) Scatter(dst []byte, off, word int) {
	for i := range v {
		intutils.PutLe32(v[i], dst, off+16*i+4*word)
	}
}

func (V16) Gather(src []byte, off, word int) V16 {
	var v V16
	for i := range v {
		v[i] = intutils.Le32(src, off+16*i+4*word)
	}
	return v
}

func (v V16) Scatter(dst []byte, off, word int) {
	for i := range v {
		intutils.PutLe32(v[i], dst, off+16*i+4*word)
	}
}
