package sdif

import "fmt"

// Signature is a 4-character SDIF type tag packed big-endian into a
// uint32, e.g. "1TRC" == 0x31545243.
type Signature uint32

// Well-known frame/matrix signatures.
var (
	SigTRC = MustSignature("1TRC") // sinusoidal tracks
	SigHRM = MustSignature("1HRM") // harmonic partials
	SigFQ0 = MustSignature("1FQ0") // fundamental frequency
	SigRES = MustSignature("1RES") // resonances
	SigSTF = MustSignature("1STF") // short-time Fourier transform
	SigNVT = MustSignature("1NVT") // name-value table metadata
)

// ParseSignature converts a 4-character ASCII string into a Signature.
func ParseSignature(s string) (Signature, error) {
	if len(s) != 4 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSignature, s)
	}
	for i := 0; i < 4; i++ {
		if s[i] > 0x7F {
			return 0, fmt.Errorf("%w: %q", ErrInvalidSignature, s)
		}
	}
	return Signature(uint32(s[0])<<24 | uint32(s[1])<<16 | uint32(s[2])<<8 | uint32(s[3])), nil
}

// MustSignature is ParseSignature for compile-time-known tags.
func MustSignature(s string) Signature {
	sig, err := ParseSignature(s)
	if err != nil {
		panic(err)
	}
	return sig
}

// String renders the tag as 4 characters, replacing non-printable bytes
// with '?'.
func (s Signature) String() string {
	b := [4]byte{byte(s >> 24), byte(s >> 16), byte(s >> 8), byte(s)}
	for i, c := range b {
		if c < 0x20 || c > 0x7E {
			b[i] = '?'
		}
	}
	return string(b[:])
}
