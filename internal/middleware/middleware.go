// Package middleware holds the cmd.Middleware wrappers the adapters apply to
// every music command.
package middleware

import (
	"github.com/keshon/jukebox/internal/commands/music"
	"github.com/keshon/jukebox/pkg/cmd"
)

func requestOf(inv *cmd.Invocation) (*music.Request, bool) {
	req, ok := inv.Data.(*music.Request)
	return req, ok && req != nil
}
