package sdif

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/danmuck/sdif/internal/logging"
	"github.com/danmuck/sdif/internal/observability"
	"github.com/danmuck/sdif/internal/wire"
)

// Config carries the per-session registry and decode limits. The zero
// value selects the builtin registry and default limits.
type Config struct {
	Registry *Registry
	Limits   Limits
}

func (c Config) withDefaults() Config {
	if c.Registry == nil {
		c.Registry = BuiltinRegistry()
	}
	c.Limits = c.Limits.withDefaults()
	return c
}

type sessionState int

const (
	stateClosed sessionState = iota
	stateReading
	stateWriting
)

// Session owns exclusive access to one SDIF stream for its lifetime.
// Lifecycle: Closed -> Open(Reading|Writing) -> Closed. Any structural
// decode error forces the session Closed; it cannot be reused without
// reopening. A Session is not safe for concurrent use.
type Session struct {
	path   string
	file   *os.File
	br     *bufio.Reader
	bw     *bufio.Writer
	reg    *Registry
	limits Limits
	state  sessionState
	log    zerolog.Logger

	lastTime float64
	hasTime  bool
	frames   int
}

// OpenRead opens an SDIF file for sequential frame reading.
func OpenRead(path string) (*Session, error) {
	return OpenReadConfig(path, Config{})
}

// OpenReadConfig is OpenRead with an explicit registry and limits.
func OpenReadConfig(path string, cfg Config) (*Session, error) {
	cfg = cfg.withDefaults()
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("sdif: open %s: %w", path, err)
	}
	br := bufio.NewReader(f)
	if err := readFileHeader(br); err != nil {
		f.Close()
		return nil, fmt.Errorf("%w (%s)", err, path)
	}
	s := &Session{
		path:   path,
		file:   f,
		br:     br,
		reg:    cfg.Registry,
		limits: cfg.Limits,
		state:  stateReading,
		log:    logging.Component("session"),
	}
	s.log.Debug().Str("path", path).Msg("opened for reading")
	return s, nil
}

// OpenWrite creates an SDIF file and writes the file header chunk.
func OpenWrite(path string) (*Session, error) {
	return OpenWriteConfig(path, Config{})
}

// OpenWriteConfig is OpenWrite with an explicit registry and limits.
func OpenWriteConfig(path string, cfg Config) (*Session, error) {
	cfg = cfg.withDefaults()
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("sdif: create %s: %w", path, err)
	}
	bw := bufio.NewWriter(f)
	if err := writeFileHeader(bw); err != nil {
		f.Close()
		os.Remove(path)
		return nil, err
	}
	s := &Session{
		path:   path,
		file:   f,
		bw:     bw,
		reg:    cfg.Registry,
		limits: cfg.Limits,
		state:  stateWriting,
		log:    logging.Component("session"),
	}
	s.log.Debug().Str("path", path).Msg("opened for writing")
	return s, nil
}

// Registry returns the type registry the session resolves tags against.
func (s *Session) Registry() *Registry {
	return s.reg
}

// NextFrame returns the next frame of the stream. A clean end of stream
// returns io.EOF. Structural errors are surfaced to the caller and
// poison the session: every later call fails with ErrSessionClosed.
func (s *Session) NextFrame() (Frame, error) {
	switch s.state {
	case stateClosed:
		return Frame{}, ErrSessionClosed
	case stateWriting:
		return Frame{}, ErrNotReading
	}

	f, err := readFrame(s.br, s.limits)
	if err != nil {
		if err == io.EOF {
			return Frame{}, io.EOF
		}
		observability.RecordDecodeError()
		s.log.Error().Str("path", s.path).Int("frame", s.frames).Err(err).
			Msg("decode failed, session poisoned")
		s.poison()
		return Frame{}, err
	}

	s.frames++
	observability.RecordFrameRead(f.Signature.String(), frameWireLen(f))
	if _, known := s.reg.FrameType(f.Signature); !known {
		s.log.Debug().Str("signature", f.Signature.String()).
			Msg("unregistered frame tag, carried as-is")
	}
	return f, nil
}

// WriteFrame encodes and streams one frame immediately through the
// session's buffered writer. Frame times must be non-decreasing.
func (s *Session) WriteFrame(f Frame) error {
	switch s.state {
	case stateClosed:
		return ErrSessionClosed
	case stateReading:
		return ErrNotWriting
	}

	if s.hasTime && f.Time < s.lastTime {
		return fmt.Errorf("%w: %v after %v", ErrTimeNotIncreasing, f.Time, s.lastTime)
	}

	buf, err := encodeFrame(f, s.limits)
	if err != nil {
		return err
	}
	if _, err := s.bw.Write(buf); err != nil {
		s.poison()
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}

	s.lastTime = f.Time
	s.hasTime = true
	s.frames++
	observability.RecordFrameWritten(f.Signature.String(), len(buf))
	return nil
}

// Close flushes pending writes and releases the file handle. Closing a
// closed session is a no-op.
func (s *Session) Close() error {
	if s.state == stateClosed {
		return nil
	}
	var flushErr error
	if s.state == stateWriting {
		if err := s.bw.Flush(); err != nil {
			flushErr = fmt.Errorf("%w: %v", ErrWriteFailed, err)
		}
	}
	closeErr := s.file.Close()
	s.state = stateClosed
	s.log.Debug().Str("path", s.path).Int("frames", s.frames).Msg("closed")
	if flushErr != nil {
		return flushErr
	}
	if closeErr != nil {
		return fmt.Errorf("%w: %v", ErrWriteFailed, closeErr)
	}
	return nil
}

// poison force-closes the session after a structural error.
func (s *Session) poison() {
	if s.state == stateClosed {
		return
	}
	s.file.Close()
	s.state = stateClosed
}

// frameWireLen is the on-disk footprint of a decoded frame.
func frameWireLen(f Frame) int {
	n := 8 + frameFixedLen
	if f.Opaque() {
		return n + len(f.Raw)
	}
	for _, m := range f.Matrices {
		n += matrixHdrLen + len(m.Data) + wire.PadLen(len(m.Data))
	}
	return n
}

// ReadFile decodes every frame of an SDIF file. The session is closed
// on every return path.
func ReadFile(path string, cfg Config) ([]Frame, error) {
	s, err := OpenReadConfig(path, cfg)
	if err != nil {
		return nil, err
	}
	defer s.Close()

	var frames []Frame
	for {
		f, err := s.NextFrame()
		if err == io.EOF {
			return frames, nil
		}
		if err != nil {
			return nil, err
		}
		frames = append(frames, f)
	}
}

// WriteFile writes a frame sequence to path, creating the file header
// and flushing on close.
func WriteFile(path string, frames []Frame, cfg Config) error {
	s, err := OpenWriteConfig(path, cfg)
	if err != nil {
		return err
	}
	for _, f := range frames {
		if err := s.WriteFrame(f); err != nil {
			s.Close()
			return err
		}
	}
	return s.Close()
}
