package middleware

import (
	"context"
	"log"
	"strings"

	"github.com/keshon/jukebox/pkg/cmd"
)

// CommandLogger persists command usage. *storage.Storage satisfies it.
type CommandLogger interface {
	SetCommand(guildID, channelID, channelName, guildName, userID, username, command, param string) error
}

// NameResolver turns guild and channel IDs into display names. Nil is fine.
type NameResolver func(guildID, channelID string) (guildName, channelName string)

// WithCommandLogger wraps a command to log its execution
func WithCommandLogger(store CommandLogger, names NameResolver) cmd.Middleware {
	return func(c cmd.Command) cmd.Command {
		return cmd.Wrap(c, func(ctx context.Context, inv *cmd.Invocation) error {
			err := c.Run(ctx, inv)

			req, ok := requestOf(inv)
			if !ok || req.GuildID == "" || store == nil {
				return err
			}
			var guildName, channelName string
			if names != nil {
				guildName, channelName = names(req.GuildID, req.ChannelID)
			}
			param := strings.Join(inv.Args, " ")
			if e := store.SetCommand(req.GuildID, req.ChannelID, channelName, guildName, req.UserID, req.Username, c.Name(), param); e != nil {
				log.Printf("[WARN] Failed to log command %s: %v", c.Name(), e)
			}
			return err
		})
	}
}
