//go:build (linux && cgo) || windows || darwin

package speaker

import (
	"context"
	"fmt"
	"io"
	"log"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/keshon/jukebox/internal/music/player"
)

// AudioAvailable indicates whether audio playback is supported in this build.
const AudioAvailable = true

var (
	initOnce sync.Once
	initErr  error
)

func initSpeaker() error {
	initOnce.Do(func() {
		initErr = speaker.Init(SampleRate, SampleRate.N(time.Second/10))
	})
	return initErr
}

// Transport plays tracks on the local sound card. There is a single output,
// so every guild id maps to it.
type Transport struct {
	opener Opener
}

func New(opener Opener) *Transport {
	return &Transport{opener: opener}
}

func (t *Transport) Join(ctx context.Context, guildID, channelID string) (player.Connection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := initSpeaker(); err != nil {
		return nil, fmt.Errorf("speaker init: %w", err)
	}
	log.Printf("[Speaker] Output ready for %s/%s", guildID, channelID)
	return &connection{}, nil
}

func (t *Transport) OpenStream(ctx context.Context, ref string) (io.ReadCloser, error) {
	return t.opener.OpenStream(ctx, ref)
}

type connection struct{}

func (c *connection) Play(stream io.ReadCloser, gain float64, onDone func(player.Completion)) player.Resource {
	pcm := newPCMStreamer(stream)
	vol := &effects.Volume{Streamer: pcm, Base: 2}
	vol.Volume, vol.Silent = volumeFor(gain)
	ctrl := &beep.Ctrl{Streamer: vol}

	r := &resource{stream: stream, pcm: pcm, vol: vol, ctrl: ctrl}
	speaker.Play(beep.Seq(ctrl, beep.Callback(func() {
		c := player.Completion{Outcome: player.OutcomeFinished}
		if err := pcm.Err(); err != nil {
			c = player.Completion{Outcome: player.OutcomeErrored, Err: err}
		}
		// off the speaker goroutine, the callback may start the next track
		go func() {
			r.close()
			onDone(c)
		}()
	})))
	return r
}

func (c *connection) Disconnect() error {
	return nil
}

type resource struct {
	stream io.Closer
	pcm    *pcmStreamer
	vol    *effects.Volume
	ctrl   *beep.Ctrl
	once   sync.Once
}

func (r *resource) SetGain(gain float64) {
	speaker.Lock()
	r.vol.Volume, r.vol.Silent = volumeFor(gain)
	speaker.Unlock()
}

func (r *resource) Pause() {
	speaker.Lock()
	r.ctrl.Paused = true
	speaker.Unlock()
}

func (r *resource) Resume() {
	speaker.Lock()
	r.ctrl.Paused = false
	speaker.Unlock()
}

// Stop ends the track; the completion callback fires on the next buffer.
func (r *resource) Stop() {
	speaker.Lock()
	r.pcm.stopped = true
	r.ctrl.Paused = false
	speaker.Unlock()
	r.close()
}

func (r *resource) close() {
	r.once.Do(func() { r.stream.Close() })
}
