package middleware

import (
	"context"

	"github.com/keshon/jukebox/pkg/cmd"
)

// WithGuildOnly wraps a command to enforce guild-only access
func WithGuildOnly() cmd.Middleware {
	return func(c cmd.Command) cmd.Command {
		return cmd.Wrap(c, func(ctx context.Context, inv *cmd.Invocation) error {
			if req, ok := requestOf(inv); ok && req.GuildID == "" {
				return req.Reply("🎵 Music commands only work inside a server.")
			}
			return c.Run(ctx, inv)
		})
	}
}
