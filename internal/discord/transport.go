package discord

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/keshon/jukebox/internal/music/player"
	"github.com/keshon/jukebox/internal/music/stream"
	"github.com/keshon/jukebox/pkg/retrylimit"
)

var joinRetry = retrylimit.Config{MaxAttempts: 2, InitialDelay: time.Second, Name: "voice join"}

// Opener opens a PCM stream for a track reference.
type Opener interface {
	OpenStream(ctx context.Context, url string) (io.ReadCloser, error)
}

// Transport plays sessions into Discord voice channels.
type Transport struct {
	dg         *discordgo.Session
	opener     Opener
	newEncoder func() (stream.Encoder, error)
}

func NewTransport(dg *discordgo.Session, opener Opener) *Transport {
	return &Transport{dg: dg, opener: opener, newEncoder: stream.NewOpusEncoder}
}

// Join connects to the voice channel. A join that completes after ctx is
// done is disconnected in the background.
func (t *Transport) Join(ctx context.Context, guildID, channelID string) (player.Connection, error) {
	type joined struct {
		vc  *discordgo.VoiceConnection
		err error
	}
	done := make(chan joined, 1)
	go func() {
		var vc *discordgo.VoiceConnection
		err := retrylimit.Do(ctx, joinRetry, func(context.Context) error {
			var err error
			vc, err = t.dg.ChannelVoiceJoin(guildID, channelID, false, true)
			return err
		})
		done <- joined{vc, err}
	}()

	select {
	case j := <-done:
		if j.err != nil {
			return nil, fmt.Errorf("failed to join voice channel: %w", j.err)
		}
		log.Printf("[Discord] Joined voice channel %s on guild %s", channelID, guildID)
		return &connection{vc: j.vc, newEncoder: t.newEncoder}, nil
	case <-ctx.Done():
		go func() {
			if j := <-done; j.err == nil && j.vc != nil {
				if err := j.vc.Disconnect(); err != nil {
					log.Printf("[Discord] Failed to leave abandoned voice join on guild %s: %v", guildID, err)
				}
			}
		}()
		return nil, ctx.Err()
	}
}

func (t *Transport) OpenStream(ctx context.Context, ref string) (io.ReadCloser, error) {
	return t.opener.OpenStream(ctx, ref)
}

type connection struct {
	vc         *discordgo.VoiceConnection
	newEncoder func() (stream.Encoder, error)
}

func (c *connection) Play(pcm io.ReadCloser, gain float64, onDone func(player.Completion)) player.Resource {
	enc, err := c.newEncoder()
	if err != nil {
		pcm.Close()
		go onDone(player.Completion{Outcome: player.OutcomeErrored, Err: err})
		return idle{}
	}

	pb := stream.NewPlayback(pcm, enc, c.vc.OpusSend, gain, func(done player.Completion) {
		if err := c.vc.Speaking(false); err != nil {
			log.Printf("[Discord] Speaking(false) failed: %v", err)
		}
		onDone(done)
	})
	pb.Start()
	return pb
}

func (c *connection) Disconnect() error {
	if err := c.vc.Disconnect(); err != nil {
		return fmt.Errorf("failed to leave voice channel: %w", err)
	}
	return nil
}

// idle is the resource of a playback that never started.
type idle struct{}

func (idle) SetGain(float64) {}
func (idle) Pause()          {}
func (idle) Resume()         {}
func (idle) Stop()           {}
