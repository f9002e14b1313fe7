package discord

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/keshon/jukebox/internal/music/parsers"
	"github.com/keshon/jukebox/internal/music/player"
	"github.com/keshon/jukebox/internal/music/stream"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		content string
		prefix  string
		name    string
		args    []string
		ok      bool
	}{
		{"!play never gonna", "!", "play", []string{"never", "gonna"}, true},
		{"  !TOCAR  song ", "!", "tocar", []string{"song"}, true},
		{"!skip", "!", "skip", []string{}, true},
		{"! skip", "!", "skip", []string{}, true},
		{"!", "!", "", nil, false},
		{"play song", "!", "", nil, false},
		{"??volume 40", "??", "volume", []string{"40"}, true},
		{"!play", "", "", nil, false},
	}
	for _, tt := range tests {
		name, args, ok := ParseCommand(tt.content, tt.prefix)
		if ok != tt.ok || name != tt.name || strings.Join(args, "|") != strings.Join(tt.args, "|") {
			t.Errorf("ParseCommand(%q, %q) = %q, %v, %v", tt.content, tt.prefix, name, args, ok)
		}
	}
}

type copyEncoder struct{}

func (copyEncoder) Encode(pcm []int16, frameSize, maxDataBytes int) ([]byte, error) {
	return []byte{byte(len(pcm))}, nil
}

type closeTracker struct {
	io.Reader
	closed bool
}

func (c *closeTracker) Close() error {
	c.closed = true
	return nil
}

func waitCompletion(t *testing.T, ch <-chan player.Completion) player.Completion {
	t.Helper()
	select {
	case c := <-ch:
		return c
	case <-time.After(2 * time.Second):
		t.Fatal("no completion")
		return player.Completion{}
	}
}

func TestConnectionPlaySendsOpus(t *testing.T) {
	vc := &discordgo.VoiceConnection{OpusSend: make(chan []byte, 4)}
	conn := &connection{vc: vc, newEncoder: func() (stream.Encoder, error) { return copyEncoder{}, nil }}

	done := make(chan player.Completion, 1)
	pcm := &closeTracker{Reader: bytes.NewReader(make([]byte, 2*parsers.FrameBytes))}
	conn.Play(pcm, 1, func(c player.Completion) { done <- c })

	if c := waitCompletion(t, done); c.Outcome != player.OutcomeFinished {
		t.Fatalf("completion = %+v", c)
	}
	if len(vc.OpusSend) != 2 {
		t.Fatalf("sent %d packets, want 2", len(vc.OpusSend))
	}
	if !pcm.closed {
		t.Error("stream not closed")
	}
}

func TestConnectionPlayEncoderFailure(t *testing.T) {
	boom := errors.New("no opus")
	conn := &connection{
		vc:         &discordgo.VoiceConnection{OpusSend: make(chan []byte)},
		newEncoder: func() (stream.Encoder, error) { return nil, boom },
	}

	done := make(chan player.Completion, 1)
	pcm := &closeTracker{Reader: bytes.NewReader(nil)}
	res := conn.Play(pcm, 1, func(c player.Completion) { done <- c })
	res.Stop()

	c := waitCompletion(t, done)
	if c.Outcome != player.OutcomeErrored || !errors.Is(c.Err, boom) {
		t.Fatalf("completion = %+v", c)
	}
	if !pcm.closed {
		t.Error("stream not closed")
	}
}

func TestReplyEmbed(t *testing.T) {
	e := replyEmbed("🎵 **Queue:**\n1. A ◀ now\n2. B")
	if e.Title != "🎵 Queue:" || e.Description != "1. A ◀ now\n2. B" || e.Color != EmbedColor {
		t.Fatalf("embed = %+v", e)
	}

	e = replyEmbed("⏸️ Paused!")
	if e.Title != "" || e.Description != "⏸️ Paused!" {
		t.Fatalf("embed = %+v", e)
	}
}
