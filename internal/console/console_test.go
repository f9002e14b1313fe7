package console

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/keshon/jukebox/internal/commands/music"
	"github.com/keshon/jukebox/internal/music/player"
	"github.com/keshon/jukebox/pkg/cmd"
)

type echoCommand struct {
	mu   sync.Mutex
	reqs []*music.Request
	args [][]string
}

func (e *echoCommand) Name() string        { return "echo" }
func (e *echoCommand) Description() string { return "echo" }
func (e *echoCommand) Aliases() []string   { return []string{"say"} }
func (e *echoCommand) Run(ctx context.Context, inv *cmd.Invocation) error {
	req := inv.Data.(*music.Request)
	e.mu.Lock()
	e.reqs = append(e.reqs, req)
	e.args = append(e.args, inv.Args)
	e.mu.Unlock()
	return req.Reply("echo: " + strings.Join(inv.Args, " "))
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func newConsole() (*Console, *echoCommand, *syncBuffer) {
	reg := cmd.NewRegistry()
	echo := &echoCommand{}
	reg.Register(echo)
	out := &syncBuffer{}
	return &Console{Commands: reg, Prefix: "!", Username: "tester", Out: out}, echo, out
}

func TestRunExecutesLines(t *testing.T) {
	c, echo, out := newConsole()
	in := strings.NewReader("!echo hello world\n\nsay bye\nnope\nquit\n!echo unreachable\n")

	if err := c.Run(context.Background(), in); err != nil {
		t.Fatal(err)
	}
	if len(echo.reqs) != 2 {
		t.Fatalf("ran %d times, want 2", len(echo.reqs))
	}
	req := echo.reqs[0]
	if req.GuildID != GuildID || req.VoiceChannelID != VoiceID || req.Username != "tester" {
		t.Fatalf("request = %+v", req)
	}

	got := out.String()
	for _, want := range []string{"echo: hello world", "echo: bye", `Unknown command "nope"`} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "unreachable") {
		t.Error("lines after quit were executed")
	}
}

func TestRunStopsAtEOF(t *testing.T) {
	c, echo, _ := newConsole()
	if err := c.Run(context.Background(), strings.NewReader("echo one")); err != nil {
		t.Fatal(err)
	}
	if len(echo.reqs) != 1 || echo.args[0][0] != "one" {
		t.Fatalf("args = %v", echo.args)
	}
}

func TestRelay(t *testing.T) {
	c, _, out := newConsole()
	events := make(chan player.Event, 2)
	events <- player.Event{Kind: player.EventNowPlaying, Track: player.Track{Title: "Song"}}
	events <- player.Event{Kind: player.EventStopped}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		c.Relay(ctx, events)
		close(done)
	}()

	deadline := time.Now().Add(2 * time.Second)
	for !strings.Contains(out.String(), "Now playing: **Song**") {
		if time.Now().After(deadline) {
			t.Fatalf("output = %q", out.String())
		}
		time.Sleep(5 * time.Millisecond)
	}
	cancel()
	<-done
}
