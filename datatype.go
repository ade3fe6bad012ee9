package sdif

// DataType identifies the element encoding of a matrix. The raw values
// are the SDIF wire values: the low byte is the element width, the high
// byte the kind (0 float, 1 signed int, 2 unsigned int, 3 text).
type DataType uint32

const (
	Float4 DataType = 0x0004
	Float8 DataType = 0x0008
	Int1   DataType = 0x0101
	Int2   DataType = 0x0102
	Int4   DataType = 0x0104
	UInt1  DataType = 0x0201
	UInt2  DataType = 0x0202
	UInt4  DataType = 0x0204
	Text   DataType = 0x0301
)

// ElemSize returns the byte width of one element, or 0 when the type is
// not recognized. A zero width means the payload length cannot be
// computed and the surrounding frame must be skipped by declared size.
func (d DataType) ElemSize() int {
	switch d {
	case Float4, Int4, UInt4:
		return 4
	case Float8:
		return 8
	case Int1, UInt1, Text:
		return 1
	case Int2, UInt2:
		return 2
	}
	return 0
}

func (d DataType) IsFloat() bool {
	return d == Float4 || d == Float8
}

func (d DataType) IsInteger() bool {
	switch d {
	case Int1, Int2, Int4, UInt1, UInt2, UInt4:
		return true
	}
	return false
}

func (d DataType) IsSigned() bool {
	return d == Int1 || d == Int2 || d == Int4
}

func (d DataType) String() string {
	switch d {
	case Float4:
		return "float32"
	case Float8:
		return "float64"
	case Int1:
		return "int8"
	case Int2:
		return "int16"
	case Int4:
		return "int32"
	case UInt1:
		return "uint8"
	case UInt2:
		return "uint16"
	case UInt4:
		return "uint32"
	case Text:
		return "text"
	}
	return "unknown"
}
