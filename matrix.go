package sdif

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Matrix is one typed 2-D payload inside a Frame. Data holds the raw
// big-endian element bytes in row-major order, exactly as they appear
// on the wire (padding excluded).
type Matrix struct {
	Signature Signature
	Type      DataType
	Rows      int
	Cols      int
	Data      []byte
}

// DataLen returns the unpadded payload length implied by the header
// fields, or -1 when the element width is unknown.
func (m Matrix) DataLen() int {
	w := m.Type.ElemSize()
	if w == 0 {
		return -1
	}
	return m.Rows * m.Cols * w
}

func (m Matrix) validate() error {
	if m.Rows < 0 || m.Cols < 0 {
		return fmt.Errorf("%w: %dx%d", ErrDimensionMismatch, m.Rows, m.Cols)
	}
	want := m.DataLen()
	if want < 0 {
		return fmt.Errorf("%w: %s (raw %#x)", ErrTypeMismatch, m.Type, uint32(m.Type))
	}
	if len(m.Data) != want {
		return fmt.Errorf("%w: %dx%d %s needs %d bytes, have %d",
			ErrDimensionMismatch, m.Rows, m.Cols, m.Type, want, len(m.Data))
	}
	return nil
}

// NewFloat64Matrix builds a Float8 matrix from row-major values.
func NewFloat64Matrix(sig Signature, rows, cols int, vals []float64) (Matrix, error) {
	if len(vals) != rows*cols || rows < 0 || cols < 0 {
		return Matrix{}, fmt.Errorf("%w: %dx%d with %d values",
			ErrDimensionMismatch, rows, cols, len(vals))
	}
	data := make([]byte, 0, len(vals)*8)
	for _, v := range vals {
		data = binary.BigEndian.AppendUint64(data, math.Float64bits(v))
	}
	return Matrix{Signature: sig, Type: Float8, Rows: rows, Cols: cols, Data: data}, nil
}

// NewFloat32Matrix builds a Float4 matrix from row-major values.
func NewFloat32Matrix(sig Signature, rows, cols int, vals []float32) (Matrix, error) {
	if len(vals) != rows*cols || rows < 0 || cols < 0 {
		return Matrix{}, fmt.Errorf("%w: %dx%d with %d values",
			ErrDimensionMismatch, rows, cols, len(vals))
	}
	data := make([]byte, 0, len(vals)*4)
	for _, v := range vals {
		data = binary.BigEndian.AppendUint32(data, math.Float32bits(v))
	}
	return Matrix{Signature: sig, Type: Float4, Rows: rows, Cols: cols, Data: data}, nil
}

// NewTextMatrix builds a Text matrix holding s as a single column of
// bytes, the layout SDIF uses for name-value tables.
func NewTextMatrix(sig Signature, s string) Matrix {
	return Matrix{
		Signature: sig,
		Type:      Text,
		Rows:      len(s),
		Cols:      1,
		Data:      []byte(s),
	}
}

// Float64s decodes the payload of a Float8 matrix into row-major values.
func (m Matrix) Float64s() ([]float64, error) {
	if m.Type != Float8 {
		return nil, fmt.Errorf("%w: want %s, have %s", ErrTypeMismatch, Float8, m.Type)
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	out := make([]float64, m.Rows*m.Cols)
	for i := range out {
		out[i] = math.Float64frombits(binary.BigEndian.Uint64(m.Data[i*8:]))
	}
	return out, nil
}

// Float32s decodes the payload of a Float4 matrix into row-major values.
func (m Matrix) Float32s() ([]float32, error) {
	if m.Type != Float4 {
		return nil, fmt.Errorf("%w: want %s, have %s", ErrTypeMismatch, Float4, m.Type)
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	out := make([]float32, m.Rows*m.Cols)
	for i := range out {
		out[i] = math.Float32frombits(binary.BigEndian.Uint32(m.Data[i*4:]))
	}
	return out, nil
}

// TextString returns the payload of a Text matrix as a string.
func (m Matrix) TextString() (string, error) {
	if m.Type != Text {
		return "", fmt.Errorf("%w: want %s, have %s", ErrTypeMismatch, Text, m.Type)
	}
	if err := m.validate(); err != nil {
		return "", err
	}
	return string(m.Data), nil
}

// Row decodes one row of a Float8 matrix.
func (m Matrix) Row(i int) ([]float64, error) {
	if i < 0 || i >= m.Rows {
		return nil, fmt.Errorf("%w: row %d of %d", ErrDimensionMismatch, i, m.Rows)
	}
	vals, err := m.Float64s()
	if err != nil {
		return nil, err
	}
	return vals[i*m.Cols : (i+1)*m.Cols], nil
}
