package sink

import (
	"encoding/binary"
	"io"
)

// WAV writes a canonical 16-bit PCM WAV container, backfilling the RIFF
// and data chunk sizes on Close (the reference decoder instead uses
// libsndfile's SFC_SET_UPDATE_HEADER_AUTO; this package sticks to stdlib
// framing per this repo's choice to keep container formats outside the
// DSP core's dependency surface, see DESIGN.md).
type WAV struct {
	w          io.WriteSeeker
	channels   int
	sampleRate int
	dataBytes  uint32
	err        error
}

// NewWAV writes a WAV header for a channels-channel, sampleRate-Hz,
// 16-bit-PCM stream and returns a Writer. w must support Seek so the
// header can be backfilled on Close.
func NewWAV(w io.WriteSeeker, channels, sampleRate int) (*WAV, error) {
	s := &WAV{w: w, channels: channels, sampleRate: sampleRate}
	if err := s.writeHeader(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *WAV) writeHeader() error {
	byteRate := s.sampleRate * s.channels * 2
	blockAlign := s.channels * 2
	hdr := make([]byte, 44)
	copy(hdr[0:4], "RIFF")
	copy(hdr[8:12], "WAVE")
	copy(hdr[12:16], "fmt ")
	binary.LittleEndian.PutUint32(hdr[16:20], 16)
	binary.LittleEndian.PutUint16(hdr[20:22], 1) // PCM
	binary.LittleEndian.PutUint16(hdr[22:24], uint16(s.channels))
	binary.LittleEndian.PutUint32(hdr[24:28], uint32(s.sampleRate))
	binary.LittleEndian.PutUint32(hdr[28:32], uint32(byteRate))
	binary.LittleEndian.PutUint16(hdr[32:34], uint16(blockAlign))
	binary.LittleEndian.PutUint16(hdr[34:36], 16)
	copy(hdr[36:40], "data")
	_, err := s.w.Write(hdr)
	return err
}

func (s *WAV) Write(audio []float64) (bool, error) {
	buf := make([]byte, len(audio)*2)
	for i, x := range audio {
		v := x * 32767
		if v > 32767 {
			v = 32767
		}
		if v < -32768 {
			v = -32768
		}
		binary.LittleEndian.PutUint16(buf[i*2:], uint16(int16(v)))
	}
	if _, err := s.w.Write(buf); err != nil {
		s.err = err
		return false, err
	}
	s.dataBytes += uint32(len(buf))
	return true, nil
}

// Close backfills the RIFF and data chunk sizes.
func (s *WAV) Close() error {
	if _, err := s.w.Seek(4, io.SeekStart); err != nil {
		return err
	}
	var sz [4]byte
	binary.LittleEndian.PutUint32(sz[:], 36+s.dataBytes)
	if _, err := s.w.Write(sz[:]); err != nil {
		return err
	}
	if _, err := s.w.Seek(40, io.SeekStart); err != nil {
		return err
	}
	binary.LittleEndian.PutUint32(sz[:], s.dataBytes)
	_, err := s.w.Write(sz[:])
	return err
}

func (s *WAV) Err() error { return s.err }
