package music

import (
	"context"
	"fmt"
	"strings"

	"github.com/keshon/jukebox/pkg/cmd"
)

// maxListed keeps the listing inside one chat message.
const maxListed = 20

type QueueCommand struct {
	Player Player
}

func (c *QueueCommand) Name() string        { return "queue" }
func (c *QueueCommand) Description() string { return "Show the queue" }
func (c *QueueCommand) Aliases() []string   { return []string{"fila", "list"} }
func (c *QueueCommand) Category() string    { return category }
func (c *QueueCommand) Usage() string       { return "queue" }

func (c *QueueCommand) Run(ctx context.Context, inv *cmd.Invocation) error {
	req, err := request(inv)
	if err != nil {
		return err
	}

	listing := c.Player.List(req.GuildID)
	if listing.Empty() {
		return req.Reply("🎵 The queue is empty right now.")
	}

	var sb strings.Builder
	sb.WriteString("🎵 **Queue:**\n")
	for i, e := range listing.Entries {
		if i == maxListed {
			fmt.Fprintf(&sb, "…and %d more", len(listing.Entries)-maxListed)
			break
		}
		if i == 0 {
			fmt.Fprintf(&sb, "%d. %s ◀ now\n", e.Position, e.Title)
			continue
		}
		fmt.Fprintf(&sb, "%d. %s\n", e.Position, e.Title)
	}
	return req.Reply(strings.TrimRight(sb.String(), "\n"))
}
