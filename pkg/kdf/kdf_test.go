package kdf_test

import (
	"bytes"
	"encoding/hex"
	"testing"

	qerrors "github.com/qseclabs/cipherkit/internal/errors"
	"github.com/qseclabs/cipherkit/pkg/kdf"
)

func fromHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("bad hex: %v", err)
	}
	return b
}

// RFC 5869 Appendix A, test case 1.
func TestHKDFSHA256Vector(t *testing.T) {
	ikm := fromHex(t, "0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b")
	salt := fromHex(t, "000102030405060708090a0b0c")
	info := fromHex(t, "f0f1f2f3f4f5f6f7f8f9")
	want := fromHex(t, "3cb25f25faacd57a90434f64d0362f2a"+
		"2d2d0a90cf1a5a4c5db02d56ecc4c5bf"+
		"34007208d5b887185865")

	out := make([]byte, 42)
	if err := kdf.ExtractAndExpand(kdf.SHA256, ikm, salt, info, out); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(out, want) {
		t.Fatalf("OKM mismatch:\n got %x\nwant %x", out, want)
	}
}

// RFC 5869 Appendix A, test case 3 (zero-length salt and info).
func TestHKDFSHA256VectorEmpty(t *testing.T) {
	ikm := fromHex(t, "0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b")
	want := fromHex(t, "8da4e775a563c18f715f802a063c5a31"+
		"b8a11f5c5ee1879ec3454e5f3c738d2d"+
		"9d201395faa4b61a96c8")

	out := make([]byte, 42)
	if err := kdf.ExtractAndExpand(kdf.SHA256, ikm, nil, nil, out); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(out, want) {
		t.Fatalf("OKM mismatch:\n got %x\nwant %x", out, want)
	}
}

func TestExpandDeterministic(t *testing.T) {
	prk := fromHex(t, "0102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f20")
	a := make([]byte, 128)
	b := make([]byte, 128)
	if err := kdf.Expand(kdf.SHA512, prk, []byte("ctx"), a); err != nil {
		t.Fatal(err)
	}
	if err := kdf.Expand(kdf.SHA512, prk, []byte("ctx"), b); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a, b) {
		t.Fatal("Expand is not deterministic")
	}

	c := make([]byte, 128)
	if err := kdf.Expand(kdf.SHA512, prk, []byte("other"), c); err != nil {
		t.Fatal(err)
	}
	if bytes.Equal(a, c) {
		t.Fatal("info did not alter the output")
	}
}

func TestDigestParameters(t *testing.T) {
	if got := kdf.SHA256.InfoMax(); got != 64-9 {
		t.Errorf("SHA256 InfoMax = %d, want %d", got, 64-9)
	}
	if got := kdf.SHA512.InfoMax(); got != 128-17 {
		t.Errorf("SHA512 InfoMax = %d, want %d", got, 128-17)
	}
	if got := kdf.SHA256.MaxOutput(); got != 255*32 {
		t.Errorf("SHA256 MaxOutput = %d, want %d", got, 255*32)
	}
}

func TestExpandBounds(t *testing.T) {
	prk := make([]byte, 32)
	out := make([]byte, kdf.SHA256.MaxOutput()+1)
	if err := kdf.Expand(kdf.SHA256, prk, nil, out); !qerrors.Is(err, qerrors.ErrInvalidLength) {
		t.Errorf("oversized expand: got %v, want InvalidLength", err)
	}

	var bad kdf.Digest
	if err := kdf.Expand(bad, prk, nil, make([]byte, 16)); !qerrors.Is(err, qerrors.ErrInvalidDigest) {
		t.Errorf("invalid digest: got %v, want InvalidDigest", err)
	}
}
