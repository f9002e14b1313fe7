// Package console runs the music commands against stdin and stdout, with one
// local guild playing to the speaker.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"strings"
	"sync"

	"github.com/keshon/jukebox/internal/commands/music"
	"github.com/keshon/jukebox/internal/music/player"
	"github.com/keshon/jukebox/pkg/cmd"
)

const (
	GuildID   = "local"
	ChannelID = "console"
	VoiceID   = "speaker"
)

// Console reads one command per line.
type Console struct {
	Commands *cmd.Registry
	Prefix   string
	Username string
	Out      io.Writer

	mu sync.Mutex
}

// Run executes lines from in until EOF, "quit" or ctx is done.
func (c *Console) Run(ctx context.Context, in io.Reader) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- sc.Err()
		close(lines)
	}()

	c.printf("🎵 Type %shelp for the command list, quit to leave.\n", c.Prefix)
	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				return <-scanErr
			}
			if !c.exec(ctx, line) {
				return nil
			}
		}
	}
}

// exec runs one line and reports whether to keep reading.
func (c *Console) exec(ctx context.Context, line string) bool {
	line = strings.TrimSpace(line)
	switch strings.ToLower(line) {
	case "":
		return true
	case "quit", "exit":
		return false
	}

	fields := strings.Fields(strings.TrimPrefix(line, c.Prefix))
	if len(fields) == 0 {
		return true
	}
	command := c.Commands.Get(fields[0])
	if command == nil {
		c.printf("Unknown command %q, try %shelp\n", fields[0], c.Prefix)
		return true
	}

	req := &music.Request{
		GuildID:        GuildID,
		ChannelID:      ChannelID,
		UserID:         c.Username,
		Username:       c.Username,
		VoiceChannelID: VoiceID,
		Reply: func(text string) error {
			c.printf("%s\n", text)
			return nil
		},
	}
	if err := command.Run(ctx, &cmd.Invocation{Args: fields[1:], Data: req}); err != nil {
		log.Printf("[ERR] Error running command %s: %v", command.Name(), err)
		c.printf("Error running command: %v\n", err)
	}
	return true
}

// Relay prints session events until ctx is done.
func (c *Console) Relay(ctx context.Context, events <-chan player.Event) {
	for {
		select {
		case ev := <-events:
			if text, ok := music.Notice(ev); ok {
				c.printf("%s\n", text)
			}
		case <-ctx.Done():
			return
		}
	}
}

func (c *Console) printf(format string, a ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.Out, format, a...)
}
