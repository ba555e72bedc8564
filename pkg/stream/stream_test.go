package stream_test

import (
	"bytes"
	"testing"

	"github.com/qseclabs/cipherkit/pkg/keymat"
	"github.com/qseclabs/cipherkit/pkg/stream"
)

func TestWriterLayout(t *testing.T) {
	w := stream.NewWriter(32)
	w.WriteUint16(0x0201)
	w.WriteUint32(0x06050403)
	w.WriteUint64(0x0E0D0C0B0A090807)
	_ = w.WriteByte(0x0F)
	w.WriteString("AB")

	want := []byte{
		0x01, 0x02,
		0x03, 0x04, 0x05, 0x06,
		0x07, 0x08, 0x09, 0x0A, 0x0B, 0x0C, 0x0D, 0x0E,
		0x0F,
		'A', 'B',
	}
	if !bytes.Equal(w.Bytes(), want) {
		t.Fatalf("layout mismatch:\n got %x\nwant %x", w.Bytes(), want)
	}
}

func TestUint32SliceContiguous(t *testing.T) {
	w := stream.NewWriter(8)
	w.WriteUint32s([]uint32{0x04030201, 0x08070605})
	want := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	if !bytes.Equal(w.Bytes(), want) {
		t.Fatalf("got %x, want %x", w.Bytes(), want)
	}
}

func TestReaderRoundTrip(t *testing.T) {
	w := stream.NewWriter(64)
	w.WriteUint16(1000)
	w.WriteUint32(70000)
	w.WriteUint64(1 << 40)
	w.WriteBytes([]byte{9, 8, 7})

	r := stream.NewReader(w.Bytes())
	if v, _ := r.ReadUint16(); v != 1000 {
		t.Errorf("uint16 = %d", v)
	}
	if v, _ := r.ReadUint32(); v != 70000 {
		t.Errorf("uint32 = %d", v)
	}
	if v, _ := r.ReadUint64(); v != 1<<40 {
		t.Errorf("uint64 = %d", v)
	}
	b, err := r.ReadBytes(3)
	if err != nil || !bytes.Equal(b, []byte{9, 8, 7}) {
		t.Errorf("bytes = %x, err = %v", b, err)
	}
	if r.Remaining() != 0 {
		t.Errorf("remaining = %d", r.Remaining())
	}
	if _, err := r.ReadByte(); err == nil {
		t.Error("read past end should fail")
	}
}

func TestKeyMaterialBlobRoundTrip(t *testing.T) {
	km := keymat.KeyMaterial{
		Key:   []byte("0123456789abcdef0123456789abcdef"),
		Nonce: []byte("nonce-value"),
		Info:  []byte("distribution"),
	}
	blob := stream.MarshalKeyMaterial(km)
	got, err := stream.UnmarshalKeyMaterial(blob)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got.Key, km.Key) || !bytes.Equal(got.Nonce, km.Nonce) || !bytes.Equal(got.Info, km.Info) {
		t.Fatal("key blob round trip failed")
	}

	if _, err := stream.UnmarshalKeyMaterial(blob[:4]); err == nil {
		t.Fatal("truncated blob should fail")
	}
}

func TestEmptyFieldsBlob(t *testing.T) {
	km := keymat.KeyMaterial{Key: []byte{1, 2, 3}}
	got, err := stream.UnmarshalKeyMaterial(stream.MarshalKeyMaterial(km))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got.Key, km.Key) || len(got.Nonce) != 0 || len(got.Info) != 0 {
		t.Fatal("empty-field blob round trip failed")
	}
}
