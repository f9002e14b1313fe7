package ffmpeg

import (
	"context"
	"io"

	"github.com/keshon/jukebox/internal/music/parsers"
)

// FFMPEGStreamer hands the link straight to ffmpeg. It covers radio streams
// and direct media files.
type FFMPEGStreamer struct{}

func New() *FFMPEGStreamer {
	return &FFMPEGStreamer{}
}

func (s *FFMPEGStreamer) Name() string {
	return "ffmpeg-link"
}

func (s *FFMPEGStreamer) Open(ctx context.Context, url string, seekSec float64) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return parsers.StartFFmpeg(url, nil, seekSec)
}
