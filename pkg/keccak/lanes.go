package keccak

import (
	"github.com/cloudflare/circl/simd/keccakf1600"
)

// simdLanes reports how many independent states the widest available
// permutation processes per dispatch. Four with AVX2 (or NEON via the
// two-way kernel run twice), one otherwise.
func simdLanes() int {
	if keccakf1600.IsEnabledX4() {
		return 4
	}
	return 1
}

// PermuteAll applies Keccak-f[1600] to every state in sts. Groups of four
// states are run through the four-way SIMD kernel when the CPU supports
// it; the remainder falls back to the scalar permutation. Output is
// byte-identical to calling Permute on each state in order.
func PermuteAll(sts []State) {
	i := 0
	if simdLanes() == 4 {
		var x4 keccakf1600.StateX4
		for ; i+4 <= len(sts); i += 4 {
			v := x4.Initialize(false)
			for j := 0; j < 25; j++ {
				v[4*j] = sts[i][j]
				v[4*j+1] = sts[i+1][j]
				v[4*j+2] = sts[i+2][j]
				v[4*j+3] = sts[i+3][j]
			}
			x4.Permute()
			for j := 0; j < 25; j++ {
				sts[i][j] = v[4*j]
				sts[i+1][j] = v[4*j+1]
				sts[i+2][j] = v[4*j+2]
				sts[i+3][j] = v[4*j+3]
			}
			for j := range v {
				v[j] = 0
			}
		}
	}
	for ; i < len(sts); i++ {
		Permute(&sts[i])
	}
}
