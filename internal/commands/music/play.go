package music

import (
	"context"
	"fmt"
	"strings"

	"github.com/keshon/jukebox/internal/music/player"
	"github.com/keshon/jukebox/pkg/cmd"
)

type PlayCommand struct {
	Player   Player
	Resolver player.Resolver
}

func (c *PlayCommand) Name() string        { return "play" }
func (c *PlayCommand) Description() string { return "Play or queue a track by name or link" }
func (c *PlayCommand) Aliases() []string   { return []string{"tocar", "p"} }
func (c *PlayCommand) Category() string    { return category }
func (c *PlayCommand) Usage() string       { return "play <song name | link>" }

func (c *PlayCommand) Run(ctx context.Context, inv *cmd.Invocation) error {
	req, err := request(inv)
	if err != nil {
		return err
	}

	query := strings.TrimSpace(strings.Join(inv.Args, " "))
	if query == "" {
		return req.Reply("🎵 Give me a song name or link after the command.")
	}
	if req.VoiceChannelID == "" {
		return req.Reply("🎵 You need to be in a voice channel first!")
	}

	track, err := c.Resolver.Resolve(ctx, query)
	if err != nil {
		return replyErr(req, err)
	}

	res, err := c.Player.Enqueue(ctx, player.EnqueueRequest{
		GuildID:        req.GuildID,
		VoiceChannelID: req.VoiceChannelID,
		TextChannelID:  req.ChannelID,
		Track:          track,
	})
	if err != nil {
		return replyErr(req, err)
	}

	if res.Started {
		// the now playing notice comes from the session events
		return nil
	}
	return req.Reply(fmt.Sprintf("➕ **%s** was added to the queue at position %d.", track.DisplayTitle(), res.Position))
}
