package parsers

import (
	"context"
	"io"
)

// Streamer opens a link as raw PCM: 48 kHz, stereo, signed 16-bit little
// endian. Closing the stream stops every process behind it.
type Streamer interface {
	Name() string
	Open(ctx context.Context, url string, seekSec float64) (io.ReadCloser, error)
}
