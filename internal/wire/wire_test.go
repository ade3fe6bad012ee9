package wire

import (
	"bytes"
	"errors"
	"testing"
)

func TestPadLen(t *testing.T) {
	cases := []struct{ n, want int }{
		{0, 0}, {1, 7}, {7, 1}, {8, 0}, {9, 7}, {16, 0}, {20, 4},
	}
	for _, c := range cases {
		if got := PadLen(c.n); got != c.want {
			t.Fatalf("PadLen(%d)=%d want=%d", c.n, got, c.want)
		}
	}
}

func TestReaderWriterRoundTrip(t *testing.T) {
	w := NewWriter()
	w.Tag4(0x31545243)
	w.U32(42)
	w.F64(1.25)
	w.Raw([]byte{0xAA, 0xBB, 0xCC})
	w.Pad(3)
	if w.Len()%Alignment != 0 {
		t.Fatalf("writer length %d not aligned", w.Len())
	}

	r := NewReader(w.Bytes())
	tag, err := r.Tag4()
	if err != nil || tag != 0x31545243 {
		t.Fatalf("tag=%#x err=%v", tag, err)
	}
	u, err := r.U32()
	if err != nil || u != 42 {
		t.Fatalf("u32=%d err=%v", u, err)
	}
	f, err := r.F64()
	if err != nil || f != 1.25 {
		t.Fatalf("f64=%v err=%v", f, err)
	}
	b, err := r.Bytes(3)
	if err != nil || !bytes.Equal(b, []byte{0xAA, 0xBB, 0xCC}) {
		t.Fatalf("bytes=%x err=%v", b, err)
	}
	if err := r.SkipPad(3); err != nil {
		t.Fatalf("skip pad: %v", err)
	}
	if r.Remaining() != 0 {
		t.Fatalf("remaining=%d", r.Remaining())
	}
}

func TestReaderShortRead(t *testing.T) {
	r := NewReader([]byte{1, 2, 3})
	if _, err := r.U32(); !errors.Is(err, ErrShortRead) {
		t.Fatalf("expected ErrShortRead, got %v", err)
	}
	if r.Offset() != 0 {
		t.Fatalf("cursor moved on failed read: off=%d", r.Offset())
	}
}

func TestSkipPadRejectsNonZero(t *testing.T) {
	r := NewReader([]byte{0, 0, 0, 0, 0, 1, 0})
	if err := r.SkipPad(1); !errors.Is(err, ErrBadPadding) {
		t.Fatalf("expected ErrBadPadding, got %v", err)
	}
}

func TestBytesCopyDoesNotAlias(t *testing.T) {
	src := []byte{9, 8, 7, 6}
	r := NewReader(src)
	b, err := r.Bytes(4)
	if err != nil {
		t.Fatalf("bytes: %v", err)
	}
	src[0] = 0
	if b[0] != 9 {
		t.Fatalf("returned slice aliases input")
	}
}
