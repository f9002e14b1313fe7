package sources

import (
	"context"

	"github.com/keshon/jukebox/internal/music/player"
)

type Source interface {
	// Match checks if this source can handle the given input
	Match(input string) bool

	// Resolve turns an input into a playable track
	Resolve(ctx context.Context, input string) (player.Track, error)

	// SourceName returns the string identifier ("youtube", "radio", etc.)
	SourceName() string
}
