package sdif

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// FrameType describes one registered frame signature.
type FrameType struct {
	Signature   Signature
	Description string
}

// MatrixType describes one registered matrix signature, including the
// conventional column names when the type defines them.
type MatrixType struct {
	Signature   Signature
	Description string
	Columns     []string
}

// Registry maps 4-character tags to their semantic descriptions. It is
// immutable once built: extension produces a new Registry, so sessions
// holding different extensions can coexist. Lookups never gate decoding,
// unknown tags stay decodable as opaque payloads.
type Registry struct {
	frames   map[Signature]FrameType
	matrices map[Signature]MatrixType
}

// NewRegistry builds a registry from explicit type lists.
func NewRegistry(frames []FrameType, matrices []MatrixType) *Registry {
	r := &Registry{
		frames:   make(map[Signature]FrameType, len(frames)),
		matrices: make(map[Signature]MatrixType, len(matrices)),
	}
	for _, ft := range frames {
		r.frames[ft.Signature] = ft
	}
	for _, mt := range matrices {
		r.matrices[mt.Signature] = mt
	}
	return r
}

// BuiltinRegistry returns the standard SDIF type registry.
func BuiltinRegistry() *Registry {
	return NewRegistry(
		[]FrameType{
			{SigTRC, "sinusoidal tracks"},
			{SigHRM, "harmonic partials"},
			{SigFQ0, "fundamental frequency"},
			{SigRES, "resonances"},
			{SigSTF, "short-time Fourier transform"},
			{SigNVT, "name-value table"},
		},
		[]MatrixType{
			{SigTRC, "sinusoidal tracks", []string{"Index", "Frequency", "Amplitude", "Phase"}},
			{SigHRM, "harmonic partials", []string{"Index", "Frequency", "Amplitude", "Phase"}},
			{SigFQ0, "fundamental frequency", []string{"Frequency", "Confidence", "Score", "RealAmplitude"}},
			{SigRES, "resonances", []string{"Frequency", "Amplitude", "DecayRate", "Phase"}},
			{SigSTF, "short-time Fourier transform", []string{"Real", "Imaginary"}},
			{SigNVT, "name-value table", nil},
		},
	)
}

// WithTypes returns a copy of the registry extended with the given
// types. Later entries win on tag collision; the receiver is unchanged.
func (r *Registry) WithTypes(frames []FrameType, matrices []MatrixType) *Registry {
	out := &Registry{
		frames:   make(map[Signature]FrameType, len(r.frames)+len(frames)),
		matrices: make(map[Signature]MatrixType, len(r.matrices)+len(matrices)),
	}
	for sig, ft := range r.frames {
		out.frames[sig] = ft
	}
	for sig, mt := range r.matrices {
		out.matrices[sig] = mt
	}
	for _, ft := range frames {
		out.frames[ft.Signature] = ft
	}
	for _, mt := range matrices {
		out.matrices[mt.Signature] = mt
	}
	return out
}

// FrameType looks up the description of a frame tag.
func (r *Registry) FrameType(sig Signature) (FrameType, bool) {
	ft, ok := r.frames[sig]
	return ft, ok
}

// MatrixType looks up the description of a matrix tag.
func (r *Registry) MatrixType(sig Signature) (MatrixType, bool) {
	mt, ok := r.matrices[sig]
	return mt, ok
}

type registryFile struct {
	Frames   []registryFrameEntry  `toml:"frame"`
	Matrices []registryMatrixEntry `toml:"matrix"`
}

type registryFrameEntry struct {
	Signature   string `toml:"signature"`
	Description string `toml:"description"`
}

type registryMatrixEntry struct {
	Signature   string   `toml:"signature"`
	Description string   `toml:"description"`
	Columns     []string `toml:"columns"`
}

// WithTOML returns a copy of the registry extended with the type
// declarations in a TOML extension file.
func (r *Registry) WithTOML(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("registry load failed (%s): %w", path, err)
	}
	var file registryFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("registry parse failed (%s): %w", path, err)
	}

	frames := make([]FrameType, 0, len(file.Frames))
	for i, e := range file.Frames {
		sig, err := ParseSignature(e.Signature)
		if err != nil {
			return nil, fmt.Errorf("registry frame[%d] invalid: %w", i, err)
		}
		frames = append(frames, FrameType{Signature: sig, Description: e.Description})
	}
	matrices := make([]MatrixType, 0, len(file.Matrices))
	for i, e := range file.Matrices {
		sig, err := ParseSignature(e.Signature)
		if err != nil {
			return nil, fmt.Errorf("registry matrix[%d] invalid: %w", i, err)
		}
		matrices = append(matrices, MatrixType{
			Signature:   sig,
			Description: e.Description,
			Columns:     e.Columns,
		})
	}
	return r.WithTypes(frames, matrices), nil
}
