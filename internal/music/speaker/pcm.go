package speaker

import (
	"encoding/binary"
	"errors"
	"io"
	"math"

	"github.com/gopxl/beep/v2"
	"github.com/keshon/jukebox/internal/music/parsers"
)

// SampleRate of the PCM produced by the parsers.
const SampleRate = beep.SampleRate(parsers.SampleRate)

// pcmStreamer adapts s16le stereo PCM to beep.Streamer.
type pcmStreamer struct {
	r       io.Reader
	buf     []byte
	err     error
	stopped bool
}

func newPCMStreamer(r io.Reader) *pcmStreamer {
	return &pcmStreamer{r: r, buf: make([]byte, parsers.FrameBytes)}
}

func (p *pcmStreamer) Stream(samples [][2]float64) (int, bool) {
	if p.stopped || p.err != nil {
		return 0, false
	}

	want := len(samples) * 4
	if want > len(p.buf) {
		p.buf = make([]byte, want)
	}

	n, err := io.ReadFull(p.r, p.buf[:want])
	frames := n / 4
	for i := 0; i < frames; i++ {
		l := int16(binary.LittleEndian.Uint16(p.buf[i*4:]))
		r := int16(binary.LittleEndian.Uint16(p.buf[i*4+2:]))
		samples[i][0] = float64(l) / (math.MaxInt16 + 1)
		samples[i][1] = float64(r) / (math.MaxInt16 + 1)
	}

	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) && !p.stopped {
		p.err = err
	}
	if err != nil {
		p.stopped = true
	}
	return frames, frames > 0
}

func (p *pcmStreamer) Err() error {
	return p.err
}

// volumeFor maps a linear gain to effects.Volume settings with base 2.
func volumeFor(gain float64) (volume float64, silent bool) {
	if gain <= 0 {
		return 0, true
	}
	return math.Log2(gain), false
}
