package stream

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/keshon/jukebox/internal/music/parsers"
	"github.com/keshon/jukebox/internal/music/parsers/ffmpeg"
	"github.com/keshon/jukebox/internal/music/parsers/kkdai"
	"github.com/keshon/jukebox/internal/music/parsers/ytdlp"
	"github.com/keshon/jukebox/internal/music/player"
	"github.com/keshon/jukebox/internal/music/sources/youtube"
)

// Opener turns a track link into PCM, trying parsers in order until one
// produces audio.
type Opener struct {
	YouTube []parsers.Streamer
	Other   []parsers.Streamer
}

func NewOpener(proxy string) *Opener {
	return &Opener{
		YouTube: []parsers.Streamer{
			kkdai.New(proxy, false),
			ytdlp.New(proxy, false),
			kkdai.New(proxy, true),
			ytdlp.New(proxy, true),
		},
		Other: []parsers.Streamer{
			ffmpeg.New(),
			ytdlp.New(proxy, false),
		},
	}
}

func (o *Opener) parsersFor(url string) []parsers.Streamer {
	if youtube.IsYouTubeURL(url) {
		return o.YouTube
	}
	return o.Other
}

// OpenStream returns the first stream that yields a full PCM frame.
func (o *Opener) OpenStream(ctx context.Context, url string) (io.ReadCloser, error) {
	var errs []error
	for _, p := range o.parsersFor(url) {
		rc, err := p.Open(ctx, url, 0)
		if err == nil {
			rc, err = prime(ctx, rc)
		}
		if err == nil {
			log.Printf("[Stream] Opened %s with %s", url, p.Name())
			return rc, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		log.Printf("[Stream] Parser %s failed for %s: %v, trying next parser...", p.Name(), url, err)
		errs = append(errs, fmt.Errorf("parser %s failed: %w", p.Name(), err))
	}

	if len(errs) == 0 {
		return nil, fmt.Errorf("%w: no parser for %s", player.ErrStreamUnavailable, url)
	}
	return nil, fmt.Errorf("%w: %w", player.ErrStreamUnavailable, errors.Join(errs...))
}

type primed struct {
	*bufio.Reader
	io.Closer
}

// prime waits for the first frame so a dead link fails here rather than
// mid-playback.
func prime(ctx context.Context, rc io.ReadCloser) (io.ReadCloser, error) {
	br := bufio.NewReaderSize(rc, parsers.FrameBytes*4)
	done := make(chan error, 1)
	go func() {
		_, err := br.Peek(parsers.FrameBytes)
		done <- err
	}()

	select {
	case err := <-done:
		if err != nil {
			rc.Close()
			return nil, fmt.Errorf("no audio: %w", err)
		}
		return primed{Reader: br, Closer: rc}, nil
	case <-ctx.Done():
		rc.Close()
		<-done
		return nil, ctx.Err()
	}
}
