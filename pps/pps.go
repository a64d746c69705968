// Package pps writes pulse-per-second events emitted by the pilot PLL to
// a line-oriented text file, matching the reference decoder's PPS output
// option.
package pps

import (
	"bufio"
	"fmt"
	"io"
	"time"

	"github.com/hzradio/fmradion/dsp"
	"github.com/lestrrat-go/strftime"
)

// Writer appends one line per PPS event: "pps_index sample_index unix_time".
type Writer struct {
	w     *bufio.Writer
	c     io.Closer
	start time.Time
}

// NewWriter writes a header comment recording the wall-clock start time
// (strftime-formatted) before the first event line.
func NewWriter(w io.Writer, start time.Time) (*Writer, error) {
	c, _ := w.(io.Closer)
	out := &Writer{w: bufio.NewWriter(w), c: c, start: start}

	f, err := strftime.New("%Y-%m-%dT%H:%M:%S%z")
	if err != nil {
		return nil, err
	}
	var buf []byte
	buf, err = f.AppendFormat(buf, start)
	if err != nil {
		return nil, err
	}
	if _, err := fmt.Fprintf(out.w, "# pps start %s\n", buf); err != nil {
		return nil, err
	}
	return out, nil
}

// WriteEvent appends one PPS event line, anchoring its unix time to the
// writer's start time plus sampleIndex/sampleRate seconds.
func (w *Writer) WriteEvent(ev dsp.PPSEvent, sampleRate float64) error {
	t := w.start.Add(time.Duration(float64(ev.SampleIndex) / sampleRate * float64(time.Second)))
	_, err := fmt.Fprintf(w.w, "%d %d %d\n", ev.PPSIndex, ev.SampleIndex, t.Unix())
	return err
}

// Close flushes buffered output and closes the underlying writer if it
// implements io.Closer.
func (w *Writer) Close() error {
	if err := w.w.Flush(); err != nil {
		return err
	}
	if w.c != nil {
		return w.c.Close()
	}
	return nil
}
