// Package benchmark provides performance benchmarks for the cipherkit
// engines.
//
// Run benchmarks with:
//
//	go test -bench=. -benchmem ./test/benchmark/
//
// For profiling:
//
//	go test -bench=. -cpuprofile=cpu.prof -memprofile=mem.prof ./test/benchmark/
package benchmark

import (
	"testing"

	"github.com/qseclabs/cipherkit/pkg/bcr"
	"github.com/qseclabs/cipherkit/pkg/csg"
	"github.com/qseclabs/cipherkit/pkg/keccak"
	"github.com/qseclabs/cipherkit/pkg/keymat"
	"github.com/qseclabs/cipherkit/pkg/provider"
	"github.com/qseclabs/cipherkit/pkg/shx"
)

// --- Permutation Benchmarks ---

func BenchmarkKeccakPermute(b *testing.B) {
	var st keccak.State
	b.SetBytes(200)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		keccak.Permute(&st)
	}
}

func BenchmarkKeccakPermuteX4(b *testing.B) {
	states := make([]keccak.State, 4)
	b.SetBytes(800)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		keccak.PermuteAll(states)
	}
}

// --- SHX Benchmarks ---

func newSHX(b *testing.B) *shx.Cipher {
	b.Helper()
	c, err := shx.New()
	if err != nil {
		b.Fatal(err)
	}
	if err := c.Initialize(true, keymat.KeyMaterial{Key: make([]byte, 32)}); err != nil {
		b.Fatal(err)
	}
	return c
}

func BenchmarkSHXTransform(b *testing.B) {
	c := newSHX(b)
	src := make([]byte, 16)
	dst := make([]byte, 16)
	b.SetBytes(16)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = c.Transform(src, 0, dst, 0)
	}
}

func BenchmarkSHXTransform2048(b *testing.B) {
	c := newSHX(b)
	src := make([]byte, 256)
	dst := make([]byte, 256)
	b.SetBytes(256)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = c.Transform2048(src, 0, dst, 0)
	}
}

// --- Generator Benchmarks ---

func BenchmarkCSGGenerate(b *testing.B) {
	g, err := csg.New(csg.SHAKE256)
	if err != nil {
		b.Fatal(err)
	}
	if err := g.Initialize(keymat.KeyMaterial{Key: make([]byte, 64)}); err != nil {
		b.Fatal(err)
	}
	buf := make([]byte, 4096)
	b.SetBytes(4096)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = g.Generate(buf)
	}
}

func BenchmarkBCRGetBytes(b *testing.B) {
	r, err := bcr.NewWithSeed(make([]byte, 48), bcr.AHX, true)
	if err != nil {
		b.Fatal(err)
	}
	buf := make([]byte, 4096)
	b.SetBytes(4096)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = r.GetBytes(buf)
	}
}

func BenchmarkBCRNextUInt64(b *testing.B) {
	r, err := bcr.NewWithSeed(make([]byte, 48), bcr.AHX, true)
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = r.NextUInt64()
	}
}

// --- Provider Benchmarks ---

func BenchmarkCSPGetBytes32(b *testing.B) {
	csp := provider.NewCSP()
	buf := make([]byte, 32)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = csp.GetBytes(buf)
	}
}

func BenchmarkACPGetBytes32(b *testing.B) {
	acp, err := provider.NewACP()
	if err != nil {
		b.Fatal(err)
	}
	buf := make([]byte, 32)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = acp.GetBytes(buf)
	}
}

func BenchmarkACPReset(b *testing.B) {
	acp, err := provider.NewACP()
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = acp.Reset()
	}
}
