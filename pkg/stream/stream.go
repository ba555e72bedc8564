// Package stream provides the little-endian writer and reader used to
// serialize key blobs. Multi-byte integers are written little-endian,
// typed slices as contiguous little-endian elements, and strings as raw
// bytes without a length prefix; lengths are carried by the enclosing
// structure.
package stream

import (
	qerrors "github.com/qseclabs/cipherkit/internal/errors"
	"github.com/qseclabs/cipherkit/internal/intutils"
)

// Writer appends little-endian encoded values to a growing byte buffer.
type Writer struct {
	state []byte
	pos   int
}

// NewWriter creates a writer with the given initial capacity.
func NewWriter(capacity int) *Writer {
	return &Writer{state: make([]byte, 0, capacity)}
}

// Bytes returns the written data.
func (w *Writer) Bytes() []byte { return w.state }

// Len returns the number of bytes written.
func (w *Writer) Len() int { return len(w.state) }

// WriteByte appends a single byte.
func (w *Writer) WriteByte(v byte) error {
	w.state = append(w.state, v)
	w.pos++
	return nil
}

// WriteUint16 appends v little-endian.
func (w *Writer) WriteUint16(v uint16) {
	var b [2]byte
	intutils.PutLe16(v, b[:], 0)
	w.state = append(w.state, b[:]...)
	w.pos += 2
}

// WriteUint32 appends v little-endian.
func (w *Writer) WriteUint32(v uint32) {
	var b [4]byte
	intutils.PutLe32(v, b[:], 0)
	w.state = append(w.state, b[:]...)
	w.pos += 4
}

// WriteUint64 appends v little-endian.
func (w *Writer) WriteUint64(v uint64) {
	var b [8]byte
	intutils.PutLe64(v, b[:], 0)
	w.state = append(w.state, b[:]...)
	w.pos += 8
}

// WriteBytes appends raw bytes without a length prefix.
func (w *Writer) WriteBytes(v []byte) {
	w.state = append(w.state, v...)
	w.pos += len(v)
}

// WriteString appends the raw bytes of s without a length prefix.
func (w *Writer) WriteString(s string) {
	w.state = append(w.state, s...)
	w.pos += len(s)
}

// WriteUint32s appends each element little-endian, contiguously.
func (w *Writer) WriteUint32s(v []uint32) {
	for _, x := range v {
		w.WriteUint32(x)
	}
}

// WriteUint64s appends each element little-endian, contiguously.
func (w *Writer) WriteUint64s(v []uint64) {
	for _, x := range v {
		w.WriteUint64(x)
	}
}

// Reader consumes little-endian encoded values from a byte buffer.
type Reader struct {
	state []byte
	pos   int
}

// NewReader creates a reader over data.
func NewReader(data []byte) *Reader {
	return &Reader{state: data}
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int { return len(r.state) - r.pos }

func (r *Reader) need(n int) error {
	if r.pos+n > len(r.state) {
		return qerrors.NewCryptoError("stream.Read", qerrors.ErrInvalidLength)
	}
	return nil
}

// ReadByte consumes one byte.
func (r *Reader) ReadByte() (byte, error) {
	if err := r.need(1); err != nil {
		return 0, err
	}
	v := r.state[r.pos]
	r.pos++
	return v, nil
}

// ReadUint16 consumes a little-endian uint16.
func (r *Reader) ReadUint16() (uint16, error) {
	if err := r.need(2); err != nil {
		return 0, err
	}
	v := intutils.Le16(r.state, r.pos)
	r.pos += 2
	return v, nil
}

// ReadUint32 consumes a little-endian uint32.
func (r *Reader) ReadUint32() (uint32, error) {
	if err := r.need(4); err != nil {
		return 0, err
	}
	v := intutils.Le32(r.state, r.pos)
	r.pos += 4
	return v, nil
}

// ReadUint64 consumes a little-endian uint64.
func (r *Reader) ReadUint64() (uint64, error) {
	if err := r.need(8); err != nil {
		return 0, err
	}
	v := intutils.Le64(r.state, r.pos)
	r.pos += 8
	return v, nil
}

// ReadBytes consumes n raw bytes.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, qerrors.NewCryptoError("stream.Read", qerrors.ErrInvalidLength)
	}
	if err := r.need(n); err != nil {
		return nil, err
	}
	v := append([]byte(nil), r.state[r.pos:r.pos+n]...)
	r.pos += n
	return v, nil
}
