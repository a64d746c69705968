// Package decode orchestrates the dsp package's components into complete
// demodulators for each supported mode, grounded on the reference
// decoder's FmDecode/NbfmDecode/AmDecode classes.
package decode

// Mode selects the demodulation format, matching the reference decoder's
// ModType enum.
type Mode int

const (
	ModeFM Mode = iota
	ModeNBFM
	ModeAM
	ModeDSB
	ModeUSB
	ModeLSB
	ModeCW
	ModeWSPR
)

func (m Mode) String() string {
	switch m {
	case ModeFM:
		return "fm"
	case ModeNBFM:
		return "nbfm"
	case ModeAM:
		return "am"
	case ModeDSB:
		return "dsb"
	case ModeUSB:
		return "usb"
	case ModeLSB:
		return "lsb"
	case ModeCW:
		return "cw"
	case ModeWSPR:
		return "wspr"
	default:
		return "unknown"
	}
}

// Decoder is the common contract the pipeline driver uses to run any mode:
// consume an IF sample block, produce an audio sample block (interleaved
// stereo if applicable), and report whether output is stereo. Running
// signal statistics are not part of this contract; the driver reads them
// only from decoders that also provide the statistics methods.
type Decoder interface {
	Process(samplesIn []complex64) []float64
	Stereo() bool
}
