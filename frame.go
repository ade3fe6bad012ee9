package sdif

// Frame is one timestamped container of matrices, the unit of transfer
// for a Session.
//
// When the decoder meets a matrix whose element width it cannot derive,
// the whole matrix region of the frame is preserved verbatim in Raw and
// Matrices stays nil. Opaque frames re-encode byte-identically, which
// keeps files carrying extension types intact across a copy.
type Frame struct {
	Signature Signature
	Time      float64
	StreamID  uint32
	Matrices  []Matrix

	// Raw holds the undecoded matrix block region of an opaque frame.
	// Nil for frames decoded matrix-by-matrix.
	Raw []byte

	// Matrix count declared by the original header, kept so opaque
	// frames re-encode byte-identically.
	rawCount uint32
}

// Opaque reports whether the frame's matrix region was carried through
// undecoded.
func (f Frame) Opaque() bool {
	return f.Raw != nil
}

// MatrixBySignature returns the first matrix with the given tag.
func (f Frame) MatrixBySignature(sig Signature) (Matrix, bool) {
	for _, m := range f.Matrices {
		if m.Signature == sig {
			return m, true
		}
	}
	return Matrix{}, false
}
