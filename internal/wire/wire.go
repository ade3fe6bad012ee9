// Package wire owns the byte-level cursor primitives for the SDIF
// container: big-endian typed reads/writes and 8-byte pad accounting.
package wire

import (
	"encoding/binary"
	"errors"
	"math"
)

// Alignment is the SDIF padding boundary in bytes.
const Alignment = 8

var (
	ErrShortRead  = errors.New("wire: short read")
	ErrBadPadding = errors.New("wire: nonzero pad byte")
)

// PadLen returns the number of zero bytes needed after n payload bytes
// to reach the next alignment boundary.
func PadLen(n int) int {
	r := n % Alignment
	if r == 0 {
		return 0
	}
	return Alignment - r
}

// Reader is a cursor over a decoded chunk body.
type Reader struct {
	buf []byte
	off int
}

func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

func (r *Reader) Offset() int    { return r.off }
func (r *Reader) Remaining() int { return len(r.buf) - r.off }

func (r *Reader) take(n int) ([]byte, error) {
	if r.Remaining() < n {
		return nil, ErrShortRead
	}
	b := r.buf[r.off : r.off+n]
	r.off += n
	return b, nil
}

func (r *Reader) U32() (uint32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

func (r *Reader) F64() (float64, error) {
	b, err := r.take(8)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(binary.BigEndian.Uint64(b)), nil
}

// Tag4 reads a 4-character type tag as its packed big-endian value.
func (r *Reader) Tag4() (uint32, error) {
	return r.U32()
}

// Bytes reads n bytes and returns a copy that does not alias the
// underlying buffer.
func (r *Reader) Bytes(n int) ([]byte, error) {
	b, err := r.take(n)
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, b)
	return out, nil
}

// SkipPad consumes the pad bytes that follow a payload of the given
// length. Pad bytes must be zero on the wire.
func (r *Reader) SkipPad(payloadLen int) error {
	pad, err := r.take(PadLen(payloadLen))
	if err != nil {
		return err
	}
	for _, b := range pad {
		if b != 0 {
			return ErrBadPadding
		}
	}
	return nil
}

// Writer accumulates a chunk body before its size field is known.
type Writer struct {
	buf []byte
}

func NewWriter() *Writer {
	return &Writer{buf: make([]byte, 0, 64)}
}

func (w *Writer) Len() int { return len(w.buf) }

// Bytes returns the accumulated buffer. The Writer must not be reused
// after the buffer escapes.
func (w *Writer) Bytes() []byte { return w.buf }

func (w *Writer) U32(v uint32) {
	w.buf = binary.BigEndian.AppendUint32(w.buf, v)
}

func (w *Writer) F64(v float64) {
	w.buf = binary.BigEndian.AppendUint64(w.buf, math.Float64bits(v))
}

func (w *Writer) Tag4(v uint32) {
	w.U32(v)
}

func (w *Writer) Raw(b []byte) {
	w.buf = append(w.buf, b...)
}

// Pad emits the zero bytes that close out a payload of the given length.
func (w *Writer) Pad(payloadLen int) {
	for i := 0; i < PadLen(payloadLen); i++ {
		w.buf = append(w.buf, 0)
	}
}
