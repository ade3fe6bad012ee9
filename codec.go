package sdif

import (
	"errors"
	"fmt"
	"io"

	"github.com/danmuck/sdif/internal/wire"
)

// File header chunk: magic, chunk size, format version, types version.
const (
	fileMagic       uint32 = 0x53444946 // "SDIF"
	fileHeaderLen          = 16
	headerChunkSize uint32 = 8
	formatVersion   uint32 = 3
	typesVersion    uint32 = 1
)

const (
	// Bytes of a frame body before the matrix blocks: time, stream id,
	// matrix count.
	frameFixedLen = 16
	matrixHdrLen  = 16
)

// Limits constrains decode/encode memory use.
type Limits struct {
	MaxFrameBytes  uint32
	MaxMatrixBytes uint32
}

func DefaultLimits() Limits {
	return Limits{
		MaxFrameBytes:  64 * 1024 * 1024,
		MaxMatrixBytes: 16 * 1024 * 1024,
	}
}

func (l Limits) withDefaults() Limits {
	d := DefaultLimits()
	if l.MaxFrameBytes == 0 {
		l.MaxFrameBytes = d.MaxFrameBytes
	}
	if l.MaxMatrixBytes == 0 {
		l.MaxMatrixBytes = d.MaxMatrixBytes
	}
	return l
}

func writeFileHeader(w io.Writer) error {
	b := wire.NewWriter()
	b.U32(fileMagic)
	b.U32(headerChunkSize)
	b.U32(formatVersion)
	b.U32(typesVersion)
	if _, err := w.Write(b.Bytes()); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	return nil
}

func readFileHeader(r io.Reader) error {
	var buf [fileHeaderLen]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return fmt.Errorf("%w: short file header", ErrMalformedHeader)
		}
		return err
	}
	rd := wire.NewReader(buf[:])
	magic, _ := rd.U32()
	chunkSize, _ := rd.U32()
	version, _ := rd.U32()
	if magic != fileMagic {
		return fmt.Errorf("%w: bad magic %#08x", ErrMalformedHeader, magic)
	}
	if chunkSize != headerChunkSize {
		return fmt.Errorf("%w: header chunk size %d", ErrMalformedHeader, chunkSize)
	}
	if version != formatVersion {
		return fmt.Errorf("%w: unsupported format version %d", ErrMalformedHeader, version)
	}
	return nil
}

// readFrame decodes the next frame from r. A clean end of stream
// returns io.EOF; any partial frame header is a truncation error.
func readFrame(r io.Reader, lim Limits) (Frame, error) {
	var fixed [8]byte
	n, err := io.ReadFull(r, fixed[:])
	if err != nil {
		if errors.Is(err, io.EOF) && n == 0 {
			return Frame{}, io.EOF
		}
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return Frame{}, fmt.Errorf("%w: partial frame header", ErrTruncated)
		}
		return Frame{}, err
	}

	hd := wire.NewReader(fixed[:])
	sig, _ := hd.Tag4()
	size, _ := hd.U32()

	if size < frameFixedLen {
		return Frame{}, fmt.Errorf("%w: frame %s declares %d bytes",
			ErrFrameSizeMismatch, Signature(sig), size)
	}
	if size > lim.MaxFrameBytes {
		return Frame{}, fmt.Errorf("%w: frame %s declares %d bytes",
			ErrFrameTooLarge, Signature(sig), size)
	}

	body := make([]byte, size)
	if _, err := io.ReadFull(r, body); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return Frame{}, fmt.Errorf("%w: frame %s body short of declared %d bytes",
				ErrTruncated, Signature(sig), size)
		}
		return Frame{}, err
	}

	return parseFrameBody(Signature(sig), body, lim)
}

func parseFrameBody(sig Signature, body []byte, lim Limits) (Frame, error) {
	rd := wire.NewReader(body)
	time, _ := rd.F64()
	streamID, _ := rd.U32()
	nMat, _ := rd.U32()

	f := Frame{Signature: sig, Time: time, StreamID: streamID}

	for i := uint32(0); i < nMat; i++ {
		if rd.Remaining() < matrixHdrLen {
			return Frame{}, fmt.Errorf("%w: frame %s matrix %d header past frame end",
				ErrFrameSizeMismatch, sig, i)
		}
		msig, _ := rd.Tag4()
		rawType, _ := rd.U32()
		rows, _ := rd.U32()
		cols, _ := rd.U32()

		dtype := DataType(rawType)
		elem := dtype.ElemSize()
		if elem == 0 {
			// Unknown element width: the matrix region cannot be walked,
			// so carry the whole frame through opaque by declared size.
			raw := make([]byte, len(body)-frameFixedLen)
			copy(raw, body[frameFixedLen:])
			f.Matrices = nil
			f.Raw = raw
			f.rawCount = nMat
			return f, nil
		}

		dataLen := uint64(rows) * uint64(cols) * uint64(elem)
		if dataLen > uint64(lim.MaxMatrixBytes) {
			return Frame{}, fmt.Errorf("%w: matrix %s %dx%d %s",
				ErrMatrixTooLarge, Signature(msig), rows, cols, dtype)
		}
		data, err := rd.Bytes(int(dataLen))
		if err != nil {
			return Frame{}, fmt.Errorf("%w: matrix %s payload past frame end",
				ErrFrameSizeMismatch, Signature(msig))
		}
		if err := rd.SkipPad(int(dataLen)); err != nil {
			if errors.Is(err, wire.ErrBadPadding) {
				return Frame{}, fmt.Errorf("%w: nonzero pad after matrix %s",
					ErrTrailingBytes, Signature(msig))
			}
			return Frame{}, fmt.Errorf("%w: pad after matrix %s past frame end",
				ErrFrameSizeMismatch, Signature(msig))
		}

		f.Matrices = append(f.Matrices, Matrix{
			Signature: Signature(msig),
			Type:      dtype,
			Rows:      int(rows),
			Cols:      int(cols),
			Data:      data,
		})
	}

	// Anything after the declared matrices must be frame tail padding.
	if rem := rd.Remaining(); rem > 0 {
		if rem >= wire.Alignment {
			return Frame{}, fmt.Errorf("%w: %d bytes after last matrix in frame %s",
				ErrTrailingBytes, rem, sig)
		}
		tail, _ := rd.Bytes(rem)
		for _, b := range tail {
			if b != 0 {
				return Frame{}, fmt.Errorf("%w: %d bytes after last matrix in frame %s",
					ErrTrailingBytes, rem, sig)
			}
		}
	}

	return f, nil
}

// encodeFrame serializes a frame, computing the size field from the
// accumulated body (two-pass encode).
func encodeFrame(f Frame, lim Limits) ([]byte, error) {
	body := wire.NewWriter()
	body.F64(f.Time)
	body.U32(f.StreamID)

	if f.Opaque() {
		body.U32(f.rawCount)
		body.Raw(f.Raw)
	} else {
		body.U32(uint32(len(f.Matrices)))
		for _, m := range f.Matrices {
			if err := m.validate(); err != nil {
				return nil, err
			}
			if uint64(len(m.Data)) > uint64(lim.MaxMatrixBytes) {
				return nil, fmt.Errorf("%w: matrix %s %dx%d %s",
					ErrMatrixTooLarge, m.Signature, m.Rows, m.Cols, m.Type)
			}
			body.Tag4(uint32(m.Signature))
			body.U32(uint32(m.Type))
			body.U32(uint32(m.Rows))
			body.U32(uint32(m.Cols))
			body.Raw(m.Data)
			body.Pad(len(m.Data))
		}
	}

	if uint64(body.Len()) > uint64(lim.MaxFrameBytes) {
		return nil, fmt.Errorf("%w: frame %s body is %d bytes",
			ErrFrameTooLarge, f.Signature, body.Len())
	}

	out := wire.NewWriter()
	out.Tag4(uint32(f.Signature))
	out.U32(uint32(body.Len()))
	out.Raw(body.Bytes())
	return out.Bytes(), nil
}
