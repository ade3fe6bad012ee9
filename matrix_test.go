package sdif

import (
	"errors"
	"testing"

	"github.com/danmuck/sdif/internal/testutil/testlog"
)

func TestFloat64MatrixAccessors(t *testing.T) {
	testlog.Start(t)
	vals := []float64{1, 440, 0.5, 0, 2, 880, 0.3, 1.57}
	m, err := NewFloat64Matrix(SigTRC, 2, 4, vals)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	got, err := m.Float64s()
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	for i := range vals {
		if got[i] != vals[i] {
			t.Fatalf("value[%d]=%v want %v", i, got[i], vals[i])
		}
	}
	row, err := m.Row(1)
	if err != nil {
		t.Fatalf("row: %v", err)
	}
	if row[1] != 880 {
		t.Fatalf("row[1][1]=%v", row[1])
	}
	if _, err := m.Row(2); !errors.Is(err, ErrDimensionMismatch) {
		t.Fatalf("out-of-range row: %v", err)
	}
}

func TestFloat32MatrixAccessors(t *testing.T) {
	testlog.Start(t)
	m, err := NewFloat32Matrix(SigHRM, 1, 2, []float32{1.5, -2.5})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	got, err := m.Float32s()
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got[0] != 1.5 || got[1] != -2.5 {
		t.Fatalf("values %v", got)
	}
	if _, err := m.Float64s(); !errors.Is(err, ErrTypeMismatch) {
		t.Fatalf("expected ErrTypeMismatch, got %v", err)
	}
}

func TestNewMatrixDimensionChecks(t *testing.T) {
	testlog.Start(t)
	if _, err := NewFloat64Matrix(SigTRC, 2, 2, []float64{1}); !errors.Is(err, ErrDimensionMismatch) {
		t.Fatalf("expected ErrDimensionMismatch, got %v", err)
	}
	if _, err := NewFloat32Matrix(SigTRC, -1, 2, nil); !errors.Is(err, ErrDimensionMismatch) {
		t.Fatalf("expected ErrDimensionMismatch for negative rows, got %v", err)
	}
}

func TestTextMatrix(t *testing.T) {
	testlog.Start(t)
	m := NewTextMatrix(SigNVT, "hello")
	if m.Rows != 5 || m.Cols != 1 {
		t.Fatalf("dims %dx%d", m.Rows, m.Cols)
	}
	s, err := m.TextString()
	if err != nil || s != "hello" {
		t.Fatalf("text=%q err=%v", s, err)
	}
}

func TestMatrixDataLenUnknownType(t *testing.T) {
	testlog.Start(t)
	m := Matrix{Signature: SigTRC, Type: DataType(0xBEEF), Rows: 2, Cols: 2}
	if m.DataLen() != -1 {
		t.Fatalf("DataLen=%d", m.DataLen())
	}
}
