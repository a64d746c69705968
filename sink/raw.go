package sink

import (
	"bufio"
	"encoding/binary"
	"io"
	"math"
)

// RawFloat32 writes interleaved little-endian float32 audio samples with
// no container framing, matching the reference decoder's RAW_FLOAT32
// output mode.
type RawFloat32 struct {
	w   *bufio.Writer
	c   io.Closer
	err error
}

// NewRawFloat32 wraps w (closed on Close if it implements io.Closer).
func NewRawFloat32(w io.Writer) *RawFloat32 {
	c, _ := w.(io.Closer)
	return &RawFloat32{w: bufio.NewWriter(w), c: c}
}

func (s *RawFloat32) Write(audio []float64) (bool, error) {
	var buf [4]byte
	for _, x := range audio {
		binary.LittleEndian.PutUint32(buf[:], math.Float32bits(float32(x)))
		if _, err := s.w.Write(buf[:]); err != nil {
			s.err = err
			return false, err
		}
	}
	return true, nil
}

func (s *RawFloat32) Close() error {
	if err := s.w.Flush(); err != nil {
		return err
	}
	if s.c != nil {
		return s.c.Close()
	}
	return nil
}

func (s *RawFloat32) Err() error { return s.err }

// RawS16LE writes interleaved little-endian signed 16-bit PCM, matching
// the reference decoder's RAW_INT16 output mode. Samples are clamped to
// the int16 range rather than wrapped.
type RawS16LE struct {
	w   *bufio.Writer
	c   io.Closer
	err error
}

// NewRawS16LE wraps w.
func NewRawS16LE(w io.Writer) *RawS16LE {
	c, _ := w.(io.Closer)
	return &RawS16LE{w: bufio.NewWriter(w), c: c}
}

func (s *RawS16LE) Write(audio []float64) (bool, error) {
	var buf [2]byte
	for _, x := range audio {
		v := x * 32767
		if v > 32767 {
			v = 32767
		}
		if v < -32768 {
			v = -32768
		}
		binary.LittleEndian.PutUint16(buf[:], uint16(int16(v)))
		if _, err := s.w.Write(buf[:]); err != nil {
			s.err = err
			return false, err
		}
	}
	return true, nil
}

func (s *RawS16LE) Close() error {
	if err := s.w.Flush(); err != nil {
		return err
	}
	if s.c != nil {
		return s.c.Close()
	}
	return nil
}

func (s *RawS16LE) Err() error { return s.err }
