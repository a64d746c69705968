package sink

import "github.com/gordonklaus/portaudio"

// PortAudio plays audio live through the default (or a selected) output
// device, grounded on the reference decoder's PortAudioOutput: a blocking
// stream opened with a conservative minimum-latency suggestion, writing
// the out buffer synchronously rather than through a callback.
type PortAudio struct {
	stream   *portaudio.Stream
	out      []float32
	channels int
	err      error
}

// NewPortAudio opens a playback stream. deviceIndex < 0 selects the
// default output device.
func NewPortAudio(deviceIndex int, channels int, sampleRate float64) (*PortAudio, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, err
	}

	var dev *portaudio.DeviceInfo
	if deviceIndex >= 0 {
		devices, err := portaudio.Devices()
		if err != nil {
			return nil, err
		}
		if deviceIndex >= len(devices) {
			return nil, errInvalidDevice
		}
		dev = devices[deviceIndex]
	} else {
		d, err := portaudio.DefaultOutputDevice()
		if err != nil {
			return nil, err
		}
		dev = d
	}

	params := portaudio.LowLatencyParameters(nil, dev)
	params.Output.Channels = channels
	params.SampleRate = sampleRate
	params.FramesPerBuffer = 1024

	p := &PortAudio{channels: channels, out: make([]float32, 1024*channels)}
	stream, err := portaudio.OpenStream(params, &p.out)
	if err != nil {
		return nil, err
	}
	p.stream = stream
	if err := stream.Start(); err != nil {
		return nil, err
	}
	return p, nil
}

var errInvalidDevice = &deviceError{"portaudio: device index out of range"}

type deviceError struct{ msg string }

func (e *deviceError) Error() string { return e.msg }

// Write copies audio into the stream's output buffer, padding the final
// partial frame with silence, and blocks until PortAudio has consumed it.
func (p *PortAudio) Write(audio []float64) (bool, error) {
	for off := 0; off < len(audio); off += len(p.out) {
		n := copy(p.out, toFloat32(audio[off:]))
		for i := n; i < len(p.out); i++ {
			p.out[i] = 0
		}
		if err := p.stream.Write(); err != nil {
			p.err = err
			return false, err
		}
	}
	return true, nil
}

func toFloat32(in []float64) []float32 {
	out := make([]float32, len(in))
	for i, x := range in {
		out[i] = float32(x)
	}
	return out
}

func (p *PortAudio) Close() error {
	if p.stream == nil {
		return nil
	}
	if err := p.stream.Stop(); err != nil {
		return err
	}
	if err := p.stream.Close(); err != nil {
		return err
	}
	return portaudio.Terminate()
}

func (p *PortAudio) Err() error { return p.err }
