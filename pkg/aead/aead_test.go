package aead_test

import (
	"bytes"
	"testing"

	"github.com/qseclabs/cipherkit/internal/bufpool"
	qerrors "github.com/qseclabs/cipherkit/internal/errors"
	"github.com/qseclabs/cipherkit/pkg/aead"
)

func key32() []byte {
	k := make([]byte, 32)
	for i := range k {
		k[i] = byte(i ^ 0x5A)
	}
	return k
}

func TestSealOpenRoundTrip(t *testing.T) {
	for _, suite := range []aead.Suite{aead.SuiteSHXGCM, aead.SuiteChaCha20Poly1305} {
		t.Run(suite.String(), func(t *testing.T) {
			a, err := aead.New(suite, key32())
			if err != nil {
				t.Fatal(err)
			}

			pt := []byte("the quick brown fox jumps over the lazy dog")
			ad := []byte("header")

			ct, err := a.Seal(pt, ad)
			if err != nil {
				t.Fatal(err)
			}
			if len(ct) != len(pt)+a.Overhead() {
				t.Fatalf("ciphertext length %d, want %d", len(ct), len(pt)+a.Overhead())
			}

			got, err := a.Open(ct, ad)
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.Equal(got, pt) {
				t.Fatal("round trip failed")
			}
		})
	}
}

func TestTamperedTagFails(t *testing.T) {
	for _, suite := range []aead.Suite{aead.SuiteSHXGCM, aead.SuiteChaCha20Poly1305} {
		a, err := aead.New(suite, key32())
		if err != nil {
			t.Fatal(err)
		}

		ct, err := a.Seal([]byte("secret payload"), nil)
		if err != nil {
			t.Fatal(err)
		}
		ct[len(ct)-1] ^= 0x01

		if _, err := a.Open(ct, nil); !qerrors.Is(err, qerrors.ErrAuthenticationFailed) {
			t.Errorf("%s: got %v, want AuthenticationFailure", suite, err)
		}
	}
}

func TestWrongAdditionalDataFails(t *testing.T) {
	a, err := aead.New(aead.SuiteSHXGCM, key32())
	if err != nil {
		t.Fatal(err)
	}
	ct, _ := a.Seal([]byte("payload"), []byte("ad-1"))
	if _, err := a.Open(ct, []byte("ad-2")); !qerrors.Is(err, qerrors.ErrAuthenticationFailed) {
		t.Errorf("got %v, want AuthenticationFailure", err)
	}
}

func TestExplicitNonce(t *testing.T) {
	a, err := aead.New(aead.SuiteSHXGCM, key32())
	if err != nil {
		t.Fatal(err)
	}
	nonce := make([]byte, 12)
	nonce[0] = 0x42

	ct, err := a.SealWithNonce(nonce, []byte("msg"), nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(ct) != 3+16 {
		t.Fatalf("ciphertext length %d, want %d", len(ct), 3+16)
	}
	pt, err := a.OpenWithNonce(nonce, ct, nil)
	if err != nil {
		t.Fatal(err)
	}
	if string(pt) != "msg" {
		t.Fatal("explicit-nonce round trip failed")
	}

	if _, err := a.SealWithNonce(make([]byte, 11), nil, nil); !qerrors.Is(err, qerrors.ErrInvalidNonceSize) {
		t.Errorf("short nonce: got %v, want InvalidNonceSize", err)
	}
}

func TestNonceCounterAdvances(t *testing.T) {
	a, err := aead.New(aead.SuiteSHXGCM, key32())
	if err != nil {
		t.Fatal(err)
	}
	ct1, _ := a.Seal([]byte("same message"), nil)
	ct2, _ := a.Seal([]byte("same message"), nil)
	if bytes.Equal(ct1, ct2) {
		t.Fatal("two seals of the same message are identical; nonce reuse")
	}
	if a.Counter() != 2 {
		t.Fatalf("counter = %d, want 2", a.Counter())
	}
}

func TestSealPooled(t *testing.T) {
	a, err := aead.New(aead.SuiteSHXGCM, key32())
	if err != nil {
		t.Fatal(err)
	}
	pt := []byte("pooled payload")
	ct, err := a.SealPooled(pt, nil)
	if err != nil {
		t.Fatal(err)
	}
	got, err := a.Open(ct, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, pt) {
		t.Fatal("pooled round trip failed")
	}
	bufpool.Put(ct)
}

func TestBadKeySize(t *testing.T) {
	if _, err := aead.New(aead.SuiteSHXGCM, make([]byte, 16)); !qerrors.Is(err, qerrors.ErrInvalidKeySize) {
		t.Errorf("got %v, want InvalidKeySize", err)
	}
}

func TestSuitesDisjoint(t *testing.T) {
	nonce := make([]byte, 12)
	g, _ := aead.New(aead.SuiteSHXGCM, key32())
	c, _ := aead.New(aead.SuiteChaCha20Poly1305, key32())
	ctG, _ := g.SealWithNonce(nonce, []byte("payload"), nil)
	ctC, _ := c.SealWithNonce(nonce, []byte("payload"), nil)
	if bytes.Equal(ctG, ctC) {
		t.Fatal("different suites produced identical ciphertext")
	}
}
