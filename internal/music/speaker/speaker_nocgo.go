//go:build !((linux && cgo) || windows || darwin)

package speaker

import (
	"context"
	"errors"
	"io"

	"github.com/keshon/jukebox/internal/music/player"
)

// AudioAvailable indicates whether audio playback is supported in this build.
// Audio requires CGO for native sound libraries.
const AudioAvailable = false

var errNoAudio = errors.New("audio output requires a cgo build")

type Transport struct {
	opener Opener
}

func New(opener Opener) *Transport {
	return &Transport{opener: opener}
}

func (t *Transport) Join(context.Context, string, string) (player.Connection, error) {
	return nil, errNoAudio
}

func (t *Transport) OpenStream(ctx context.Context, ref string) (io.ReadCloser, error) {
	return t.opener.OpenStream(ctx, ref)
}
