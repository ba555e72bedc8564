package csg_test

import (
	"bytes"
	"testing"

	"golang.org/x/crypto/sha3"

	qerrors "github.com/qseclabs/cipherkit/internal/errors"
	"github.com/qseclabs/cipherkit/pkg/csg"
	"github.com/qseclabs/cipherkit/pkg/keymat"
)

func seed32(s string) []byte {
	key := make([]byte, 32)
	copy(key, s)
	return key
}

func newGen(t *testing.T, mode csg.ShakeMode, km keymat.KeyMaterial, opts ...csg.Option) *csg.Generator {
	t.Helper()
	g, err := csg.New(mode, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := g.Initialize(km); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	return g
}

// SHAKE mode output must equal the FIPS-202 XOF of the seed.
func TestSHAKEModeMatchesReference(t *testing.T) {
	key := seed32("test")
	g := newGen(t, csg.SHAKE256, keymat.KeyMaterial{Key: key})

	got := make([]byte, 512)
	if err := g.Generate(got); err != nil {
		t.Fatal(err)
	}

	want := make([]byte, 512)
	h := sha3.NewShake256()
	h.Write(key)
	h.Read(want)

	if !bytes.Equal(got, want) {
		t.Fatal("SHAKE-256 mode diverges from the reference XOF")
	}
}

func TestSHAKE128ModeMatchesReference(t *testing.T) {
	key := make([]byte, 16)
	copy(key, "shake-128-seed")
	g := newGen(t, csg.SHAKE128, keymat.KeyMaterial{Key: key})

	got := make([]byte, 400)
	if err := g.Generate(got); err != nil {
		t.Fatal(err)
	}

	want := make([]byte, 400)
	h := sha3.NewShake128()
	h.Write(key)
	h.Read(want)

	if !bytes.Equal(got, want) {
		t.Fatal("SHAKE-128 mode diverges from the reference XOF")
	}
}

// Simple-cSHAKE mode must match cSHAKE with an empty function name and
// the nonce as customization.
func TestSimpleCSHAKEMatchesReference(t *testing.T) {
	key := seed32("test")
	nonce := []byte("cust")
	g := newGen(t, csg.SHAKE256, keymat.KeyMaterial{Key: key, Nonce: nonce})

	got := make([]byte, 256)
	if err := g.Generate(got); err != nil {
		t.Fatal(err)
	}

	want := make([]byte, 256)
	h := sha3.NewCShake256(nil, nonce)
	h.Write(key)
	h.Read(want)

	if !bytes.Equal(got, want) {
		t.Fatal("simple-cSHAKE mode diverges from the reference")
	}
}

func TestCSHAKEMatchesReference(t *testing.T) {
	key := seed32("key-material")
	nonce := []byte("customization")
	info := []byte("function-name")
	g := newGen(t, csg.SHAKE256, keymat.KeyMaterial{Key: key, Nonce: nonce, Info: info})

	got := make([]byte, 256)
	if err := g.Generate(got); err != nil {
		t.Fatal(err)
	}

	want := make([]byte, 256)
	h := sha3.NewCShake256(info, nonce)
	h.Write(key)
	h.Read(want)

	if !bytes.Equal(got, want) {
		t.Fatal("cSHAKE mode diverges from the reference")
	}
}

func TestModesAreDisjoint(t *testing.T) {
	key := seed32("test")

	shake := newGen(t, csg.SHAKE256, keymat.KeyMaterial{Key: key})
	a := make([]byte, 64)
	_ = shake.Generate(a)

	cshake := newGen(t, csg.SHAKE256, keymat.KeyMaterial{Key: key, Nonce: []byte("cust")})
	b := make([]byte, 64)
	_ = cshake.Generate(b)

	if bytes.Equal(a, b) {
		t.Fatal("SHAKE and simple-cSHAKE outputs coincide")
	}
}

func TestDeterministicAcrossInstances(t *testing.T) {
	km := keymat.KeyMaterial{Key: seed32("determinism"), Nonce: []byte("n0")}

	a := newGen(t, csg.SHAKE256, km)
	b := newGen(t, csg.SHAKE256, km)

	bufA := make([]byte, 1<<20)
	bufB := make([]byte, 1<<20)
	for off := 0; off < len(bufA); off += 65536 {
		if err := a.GenerateAt(bufA, off, 65536); err != nil {
			t.Fatal(err)
		}
	}
	// different request chunking must not change the stream
	for off := 0; off < len(bufB); off += 1000 {
		n := 1000
		if off+n > len(bufB) {
			n = len(bufB) - off
		}
		if err := b.GenerateAt(bufB, off, n); err != nil {
			t.Fatal(err)
		}
	}
	if !bytes.Equal(bufA, bufB) {
		t.Fatal("identically seeded instances diverged")
	}
}

func TestRequestLimits(t *testing.T) {
	g := newGen(t, csg.SHAKE256, keymat.KeyMaterial{Key: seed32("limits")})

	if err := g.Generate(nil); err != nil {
		t.Errorf("zero-byte request: %v", err)
	}

	max := make([]byte, csg.MaxRequest)
	if err := g.Generate(max); err != nil {
		t.Errorf("request of exactly MaxRequest failed: %v", err)
	}

	over := make([]byte, csg.MaxRequest+1)
	if err := g.Generate(over); !qerrors.Is(err, qerrors.ErrRequestTooLarge) {
		t.Errorf("oversized request: got %v, want RequestTooLarge", err)
	}
}

func TestUninitializedGenerate(t *testing.T) {
	g, err := csg.New(csg.SHAKE256)
	if err != nil {
		t.Fatal(err)
	}
	if err := g.Generate(make([]byte, 16)); !qerrors.Is(err, qerrors.ErrNotInitialized) {
		t.Errorf("got %v, want NotInitialized", err)
	}
}

func TestInvalidSeedSize(t *testing.T) {
	g, err := csg.New(csg.SHAKE256)
	if err != nil {
		t.Fatal(err)
	}
	if err := g.Initialize(keymat.KeyMaterial{Key: make([]byte, 17)}); !qerrors.Is(err, qerrors.ErrInvalidSeedSize) {
		t.Errorf("got %v, want InvalidSeedSize", err)
	}
}

// constProvider returns a constant byte; deterministic reseeding for the
// boundary tests.
type constProvider struct{ b byte }

func (p *constProvider) GetBytes(out []byte) error {
	for i := range out {
		out[i] = p.b
	}
	return nil
}

func TestReseedBoundary(t *testing.T) {
	km := keymat.KeyMaterial{Key: seed32("reseed-test")}
	g := newGen(t, csg.SHAKE256, km,
		csg.WithProvider(&constProvider{b: 0xAA}),
		csg.WithReseedThreshold(1024))

	out := make([]byte, 3100)
	if err := g.Generate(out); err != nil {
		t.Fatal(err)
	}
	if g.ReseedCount() != 3 {
		t.Fatalf("reseeds = %d, want 3", g.ReseedCount())
	}

	// a reseeded stream must diverge from the unreseeded one
	plain := newGen(t, csg.SHAKE256, km)
	ref := make([]byte, 3100)
	if err := plain.Generate(ref); err != nil {
		t.Fatal(err)
	}
	if bytes.Equal(out[2048:3072], ref[2048:3072]) {
		t.Fatal("stream after reseeds equals the unreseeded stream")
	}
	// the segment before the first reseed boundary effect is shared
	if !bytes.Equal(out[:1024], ref[:1024]) {
		t.Fatal("stream before the first reseed diverged")
	}
}

func TestUpdateChangesStream(t *testing.T) {
	km := keymat.KeyMaterial{Key: seed32("update")}

	a := newGen(t, csg.SHAKE256, km)
	b := newGen(t, csg.SHAKE256, km)

	head := make([]byte, 100)
	_ = a.Generate(head)
	_ = b.Generate(head)

	if err := a.Update(seed32("fresh-seed-material")); err != nil {
		t.Fatal(err)
	}

	tailA := make([]byte, 100)
	tailB := make([]byte, 100)
	_ = a.Generate(tailA)
	_ = b.Generate(tailB)

	if bytes.Equal(tailA, tailB) {
		t.Fatal("Update did not change the stream")
	}

	if err := a.Update(make([]byte, 17)); !qerrors.Is(err, qerrors.ErrInvalidSeedSize) {
		t.Errorf("bad update seed: got %v, want InvalidSeedSize", err)
	}
}

// Parallel output must equal the rate-block interleave of sequential
// instances whose nonces differ in the low byte.
func TestParallelMatchesSequential(t *testing.T) {
	for _, lanes := range []int{4, 8} {
		key := seed32("parallel-equivalence")
		nonce := []byte{0x10, 0x52}

		par := newGen(t, csg.SHAKE256, keymat.KeyMaterial{Key: key, Nonce: nonce},
			csg.WithLanes(lanes))

		const blocks = 5
		rate := 136
		got := make([]byte, rate*lanes*blocks)
		if err := par.Generate(got); err != nil {
			t.Fatal(err)
		}

		streams := make([][]byte, lanes)
		for i := 0; i < lanes; i++ {
			laneNonce := append([]byte(nil), nonce...)
			laneNonce[0] += byte(i)
			seq := newGen(t, csg.SHAKE256, keymat.KeyMaterial{Key: key, Nonce: laneNonce})
			streams[i] = make([]byte, rate*blocks)
			if err := seq.Generate(streams[i]); err != nil {
				t.Fatal(err)
			}
		}

		for blk := 0; blk < blocks; blk++ {
			for lane := 0; lane < lanes; lane++ {
				gotBlock := got[(blk*lanes+lane)*rate : (blk*lanes+lane+1)*rate]
				wantBlock := streams[lane][blk*rate : (blk+1)*rate]
				if !bytes.Equal(gotBlock, wantBlock) {
					t.Fatalf("lanes=%d: block %d of lane %d diverged", lanes, blk, lane)
				}
			}
		}
	}
}

func TestParallelRequiresNonce(t *testing.T) {
	g, err := csg.New(csg.SHAKE256, csg.WithLanes(4))
	if err != nil {
		t.Fatal(err)
	}
	if err := g.Initialize(keymat.KeyMaterial{Key: seed32("x")}); !qerrors.Is(err, qerrors.ErrInvalidNonceSize) {
		t.Errorf("got %v, want InvalidNonceSize", err)
	}
}

func TestResetReturnsToUninitialized(t *testing.T) {
	g := newGen(t, csg.SHAKE256, keymat.KeyMaterial{Key: seed32("reset")})
	buf := make([]byte, 64)
	_ = g.Generate(buf)

	g.Reset()
	if g.IsInitialized() {
		t.Fatal("still initialized after Reset")
	}
	if err := g.Generate(buf); !qerrors.Is(err, qerrors.ErrNotInitialized) {
		t.Fatal("generate after Reset should fail NotInitialized")
	}

	// re-initialization restores the deterministic stream
	if err := g.Initialize(keymat.KeyMaterial{Key: seed32("reset")}); err != nil {
		t.Fatal(err)
	}
	again := make([]byte, 64)
	if err := g.Generate(again); err != nil {
		t.Fatal(err)
	}

	fresh := newGen(t, csg.SHAKE256, keymat.KeyMaterial{Key: seed32("reset")})
	want := make([]byte, 64)
	_ = fresh.Generate(want)
	if !bytes.Equal(again, want) {
		t.Fatal("stream after Reset+Initialize differs from a fresh instance")
	}
}
