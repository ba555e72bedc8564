package bcr_test

import (
	"bytes"
	"encoding/binary"
	"testing"

	qerrors "github.com/qseclabs/cipherkit/internal/errors"
	"github.com/qseclabs/cipherkit/pkg/bcr"
)

func seed48() []byte {
	s := make([]byte, 48)
	for i := range s {
		s[i] = byte(i*11 + 5)
	}
	return s
}

func TestDeterminism(t *testing.T) {
	a, err := bcr.NewWithSeed(seed48(), bcr.AHX, true)
	if err != nil {
		t.Fatal(err)
	}
	b, err := bcr.NewWithSeed(seed48(), bcr.AHX, true)
	if err != nil {
		t.Fatal(err)
	}

	bufA := make([]byte, 10000)
	bufB := make([]byte, 10000)
	if err := a.GetBytes(bufA); err != nil {
		t.Fatal(err)
	}
	if err := b.GetBytes(bufB); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(bufA, bufB) {
		t.Fatal("identically seeded PRNGs diverged over 10000 bytes")
	}
}

func TestSHXEngineDeterminism(t *testing.T) {
	a, err := bcr.NewWithSeed(seed48(), bcr.SHX, false)
	if err != nil {
		t.Fatal(err)
	}
	b, err := bcr.NewWithSeed(seed48(), bcr.SHX, false)
	if err != nil {
		t.Fatal(err)
	}
	bufA := make([]byte, 5000)
	bufB := make([]byte, 5000)
	_ = a.GetBytes(bufA)
	_ = b.GetBytes(bufB)
	if !bytes.Equal(bufA, bufB) {
		t.Fatal("SHX-powered PRNG is not deterministic")
	}

	if a.Name() != "BCR-SHX" {
		t.Errorf("name = %q, want BCR-SHX", a.Name())
	}
}

func TestParallelMatchesSequential(t *testing.T) {
	seq, err := bcr.NewWithSeed(seed48(), bcr.AHX, false)
	if err != nil {
		t.Fatal(err)
	}
	par, err := bcr.NewWithSeed(seed48(), bcr.AHX, true)
	if err != nil {
		t.Fatal(err)
	}
	bufSeq := make([]byte, 8192)
	bufPar := make([]byte, 8192)
	_ = seq.GetBytes(bufSeq)
	_ = par.GetBytes(bufPar)
	if !bytes.Equal(bufSeq, bufPar) {
		t.Fatal("parallel flag changed the output stream")
	}
}

func TestEnginesDisjoint(t *testing.T) {
	a, _ := bcr.NewWithSeed(seed48(), bcr.AHX, false)
	b, _ := bcr.NewWithSeed(seed48(), bcr.SHX, false)
	bufA := make([]byte, 64)
	bufB := make([]byte, 64)
	_ = a.GetBytes(bufA)
	_ = b.GetBytes(bufB)
	if bytes.Equal(bufA, bufB) {
		t.Fatal("different engines produced the same stream")
	}
}

func TestIntegerExtraction(t *testing.T) {
	ref, err := bcr.NewWithSeed(seed48(), bcr.AHX, false)
	if err != nil {
		t.Fatal(err)
	}
	raw := make([]byte, 14)
	if err := ref.GetBytes(raw); err != nil {
		t.Fatal(err)
	}

	r, _ := bcr.NewWithSeed(seed48(), bcr.AHX, false)
	v16, err := r.NextUInt16()
	if err != nil {
		t.Fatal(err)
	}
	v32, err := r.NextUInt32()
	if err != nil {
		t.Fatal(err)
	}
	v64, err := r.NextUInt64()
	if err != nil {
		t.Fatal(err)
	}

	if v16 != binary.LittleEndian.Uint16(raw[0:]) {
		t.Error("NextUInt16 is not the little-endian head of the stream")
	}
	if v32 != binary.LittleEndian.Uint32(raw[2:]) {
		t.Error("NextUInt32 is not little-endian stream order")
	}
	if v64 != binary.LittleEndian.Uint64(raw[6:]) {
		t.Error("NextUInt64 is not little-endian stream order")
	}
}

func TestFill(t *testing.T) {
	ref, _ := bcr.NewWithSeed(seed48(), bcr.AHX, false)
	raw := make([]byte, 10*4)
	_ = ref.GetBytes(raw)

	r, _ := bcr.NewWithSeed(seed48(), bcr.AHX, false)
	out := make([]uint32, 12)
	if err := bcr.Fill(r, out, 1, 10); err != nil {
		t.Fatal(err)
	}
	if out[0] != 0 || out[11] != 0 {
		t.Error("Fill wrote outside the requested range")
	}
	for i := 0; i < 10; i++ {
		want := binary.LittleEndian.Uint32(raw[i*4:])
		if out[1+i] != want {
			t.Fatalf("element %d = %08x, want %08x", i, out[1+i], want)
		}
	}

	var u64s [4]uint64
	if err := bcr.Fill(r, u64s[:], 0, 4); err != nil {
		t.Fatal(err)
	}

	if err := bcr.Fill(r, out, 10, 5); !qerrors.Is(err, qerrors.ErrInvalidLength) {
		t.Errorf("out-of-range fill: got %v, want InvalidLength", err)
	}
}

func TestResetRestartsStream(t *testing.T) {
	r, err := bcr.NewWithSeed(seed48(), bcr.AHX, false)
	if err != nil {
		t.Fatal(err)
	}
	first := make([]byte, 256)
	_ = r.GetBytes(first)

	if err := r.Reset(); err != nil {
		t.Fatal(err)
	}
	again := make([]byte, 256)
	_ = r.GetBytes(again)

	if !bytes.Equal(first, again) {
		t.Fatal("Reset did not restart the deterministic stream")
	}
}

func TestSeedValidation(t *testing.T) {
	if _, err := bcr.NewWithSeed(make([]byte, 47), bcr.AHX, false); !qerrors.Is(err, qerrors.ErrInvalidSeedSize) {
		t.Errorf("short seed: got %v, want InvalidSeedSize", err)
	}
}

func TestProviderSeeded(t *testing.T) {
	a, err := bcr.New(bcr.AHX, bcr.ProviderCSP, false)
	if err != nil {
		t.Fatal(err)
	}
	b, err := bcr.New(bcr.AHX, bcr.ProviderCSP, false)
	if err != nil {
		t.Fatal(err)
	}
	bufA := make([]byte, 64)
	bufB := make([]byte, 64)
	_ = a.GetBytes(bufA)
	_ = b.GetBytes(bufB)
	if bytes.Equal(bufA, bufB) {
		t.Fatal("independently seeded PRNGs produced identical output")
	}
}
