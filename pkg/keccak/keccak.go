// Package keccak implements the Keccak-f[1600] permutation and the sponge
// primitives built over it: block absorb/squeeze, the SP800-185 left-encode
// integer coding, and a one-shot Keccak-512 digest.
//
// The permutation is data-independent in time and memory access for all
// inputs. Multi-lane permutation of independent states is provided through
// PermuteAll, which dispatches to a SIMD implementation when the CPU
// supports it; the multi-lane result is byte-identical to permuting each
// state in sequence.
package keccak

import (
	"github.com/qseclabs/cipherkit/internal/constants"
	"github.com/qseclabs/cipherkit/internal/intutils"
)

// State is the 25-lane Keccak-f[1600] state, little-endian lane order.
type State [constants.KeccakStateSize]uint64

// rc holds the round constants for the iota step.
var rc = [constants.KeccakRounds]uint64{
	0x0000000000000001, 0x0000000000008082, 0x800000000000808A,
	0x8000000080008000, 0x000000000000808B, 0x0000000080000001,
	0x8000000080008081, 0x8000000000008009, 0x000000000000008A,
	0x0000000000000088, 0x0000000080008009, 0x000000008000000A,
	0x000000008000808B, 0x800000000000008B, 0x8000000000008089,
	0x8000000000008003, 0x8000000000008002, 0x8000000000000080,
	0x000000000000800A, 0x800000008000000A, 0x8000000080008081,
	0x8000000000008080, 0x0000000080000001, 0x8000000080008008,
}

// rotc holds the rho-step rotation offsets in pi-lane traversal order.
var rotc = [24]int{
	1, 3, 6, 10, 15, 21, 28, 36, 45, 55, 2, 14,
	27, 41, 56, 8, 25, 43, 62, 18, 39, 61, 20, 44,
}

// piln holds the pi-step lane traversal order.
var piln = [24]int{
	10, 7, 11, 17, 18, 3, 5, 16, 8, 21, 24, 4,
	15, 23, 19, 13, 12, 2, 20, 14, 22, 9, 6, 1,
}

// Permute applies the 24-round Keccak-f[1600] permutation to st.
func Permute(st *State) {
	var bc [5]uint64

	for r := 0; r < constants.KeccakRounds; r++ {
		// theta
		for i := 0; i < 5; i++ {
			bc[i] = st[i] ^ st[i+5] ^ st[i+10] ^ st[i+15] ^ st[i+20]
		}
		for i := 0; i < 5; i++ {
			t := bc[(i+4)%5] ^ intutils.RotL64(bc[(i+1)%5], 1)
			for j := 0; j < 25; j += 5 {
				st[j+i] ^= t
			}
		}

		// rho and pi
		t := st[1]
		for i := 0; i < 24; i++ {
			j := piln[i]
			bc[0] = st[j]
			st[j] = intutils.RotL64(t, rotc[i])
			t = bc[0]
		}

		// chi
		for j := 0; j < 25; j += 5 {
			for i := 0; i < 5; i++ {
				bc[i] = st[j+i]
			}
			for i := 0; i < 5; i++ {
				st[j+i] = bc[i] ^ ((^bc[(i+1)%5]) & bc[(i+2)%5])
			}
		}

		// iota
		st[0] ^= rc[r]
	}
}

// AbsorbBlock XORs a rate-sized block into the leading lanes of st.
// The block length must be a multiple of 8.
func AbsorbBlock(st *State, block []byte) {
	for i := 0; i < len(block)/8; i++ {
		st[i] ^= intutils.Le64(block, i*8)
	}
}

// SqueezeBlock serializes the leading rate/8 lanes of st into dst.
// The destination length must be a multiple of 8 and at most 200.
func SqueezeBlock(dst []byte, st *State) {
	for i := 0; i < len(dst)/8; i++ {
		intutils.PutLe64(st[i], dst, i*8)
	}
}

// Pad writes the domain-separated pad10*1 trailer into a rate-sized block
// buffer holding length bytes of residual input. The buffer is modified in
// place and becomes the full final block.
func Pad(block []byte, length int, domain byte) {
	for i := length; i < len(block); i++ {
		block[i] = 0
	}
	block[length] ^= domain
	block[len(block)-1] ^= 0x80
}

// Clear zeroizes the state.
func Clear(st *State) {
	for i := range st {
		st[i] = 0
	}
}

// LeftEncode writes the SP800-185 left_encode of v into dst and returns
// the number of bytes written: the minimal big-endian representation of v
// preceded by its byte length (minimum one).
func LeftEncode(dst []byte, v uint64) int {
	n := 0
	for x := v; x != 0 && n < 8; x >>= 8 {
		n++
	}
	if n == 0 {
		n = 1
	}
	for i := 1; i <= n; i++ {
		dst[i] = byte(v >> (8 * (n - i)))
	}
	dst[0] = byte(n)
	return n + 1
}

// Sum512 computes the 64-byte legacy Keccak-512 digest of data
// (pre-FIPS padding, domain byte 0x01, rate 72).
func Sum512(data []byte) [64]byte {
	var st State
	var block [constants.Rate512]byte

	for len(data) >= constants.Rate512 {
		AbsorbBlock(&st, data[:constants.Rate512])
		Permute(&st)
		data = data[constants.Rate512:]
	}

	copy(block[:], data)
	Pad(block[:], len(data), 0x01)
	AbsorbBlock(&st, block[:])
	Permute(&st)

	var digest [64]byte
	SqueezeBlock(digest[:], &st)
	Clear(&st)
	return digest
}
