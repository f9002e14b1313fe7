package middleware

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/keshon/jukebox/internal/commands/music"
	"github.com/keshon/jukebox/pkg/cmd"
)

type stubCommand struct {
	runs int
	err  error
	fn   func()
}

func (s *stubCommand) Name() string        { return "play" }
func (s *stubCommand) Description() string { return "stub" }
func (s *stubCommand) Run(context.Context, *cmd.Invocation) error {
	s.runs++
	if s.fn != nil {
		s.fn()
	}
	return s.err
}

type logged struct {
	guildID, channelID, channelName, guildName, userID, username, command, param string
}

type stubLogger struct {
	entries []logged
	err     error
}

func (l *stubLogger) SetCommand(guildID, channelID, channelName, guildName, userID, username, command, param string) error {
	l.entries = append(l.entries, logged{guildID, channelID, channelName, guildName, userID, username, command, param})
	return l.err
}

func newRequest(guildID string, replies *[]string) *music.Request {
	return &music.Request{
		GuildID:   guildID,
		ChannelID: "c1",
		UserID:    "u1",
		Username:  "alice",
		Reply: func(s string) error {
			*replies = append(*replies, s)
			return nil
		},
	}
}

func TestWithGuildOnly(t *testing.T) {
	tests := []struct {
		name    string
		data    any
		runs    int
		replies int
	}{
		{"in guild", newRequest("g1", new([]string)), 1, 0},
		{"direct message", nil, 0, 1},
		{"foreign payload", "cli", 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var replies []string
			data := tt.data
			if data == nil {
				data = newRequest("", &replies)
			}
			inner := &stubCommand{}
			c := cmd.Apply(inner, WithGuildOnly())
			if err := c.Run(context.Background(), &cmd.Invocation{Data: data}); err != nil {
				t.Fatal(err)
			}
			if inner.runs != tt.runs || len(replies) != tt.replies {
				t.Fatalf("runs = %d, replies = %v", inner.runs, replies)
			}
		})
	}
}

func TestWithCommandLogger(t *testing.T) {
	store := &stubLogger{}
	names := func(g, ch string) (string, string) { return "Guild " + g, "#" + ch }
	boom := errors.New("boom")
	inner := &stubCommand{err: boom}
	c := cmd.Apply(inner, WithCommandLogger(store, names))

	var replies []string
	inv := &cmd.Invocation{Args: []string{"never", "gonna"}, Data: newRequest("g1", &replies)}
	if err := c.Run(context.Background(), inv); !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}

	want := logged{"g1", "c1", "#c1", "Guild g1", "u1", "alice", "play", "never gonna"}
	if len(store.entries) != 1 || store.entries[0] != want {
		t.Fatalf("entries = %+v", store.entries)
	}
}

func TestWithCommandLoggerSkipsWithoutGuild(t *testing.T) {
	store := &stubLogger{err: errors.New("disk full")}
	c := cmd.Apply(&stubCommand{}, WithCommandLogger(store, nil))

	var replies []string
	if err := c.Run(context.Background(), &cmd.Invocation{Data: newRequest("", &replies)}); err != nil {
		t.Fatal(err)
	}
	if len(store.entries) != 0 {
		t.Fatalf("entries = %+v", store.entries)
	}

	// storage failures are logged, not returned
	if err := c.Run(context.Background(), &cmd.Invocation{Data: newRequest("g1", &replies)}); err != nil {
		t.Fatal(err)
	}
	if len(store.entries) != 1 {
		t.Fatalf("entries = %+v", store.entries)
	}
}

func TestWithRecover(t *testing.T) {
	inner := &stubCommand{fn: func() { panic("kaboom") }}
	c := cmd.Apply(inner, WithRecover())
	err := c.Run(context.Background(), &cmd.Invocation{})
	if err == nil || !strings.Contains(err.Error(), "kaboom") {
		t.Fatalf("err = %v", err)
	}
}
