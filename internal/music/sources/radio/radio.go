package radio

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/keshon/jukebox/internal/music/player"
	"github.com/keshon/jukebox/internal/music/sources"
)

type RadioSource struct {
	resolver *RadioResolver
}

func New() *RadioSource {
	return NewWithResolver(NewRadioResolver())
}

func NewWithResolver(resolver *RadioResolver) *RadioSource {
	return &RadioSource{resolver: resolver}
}

// Match accepts any http(s) link; the stream itself is probed in Resolve.
func (r *RadioSource) Match(input string) bool {
	return sources.IsURL(input)
}

func (r *RadioSource) Resolve(ctx context.Context, input string) (player.Track, error) {
	input = strings.TrimSpace(input)

	probe, err := r.resolver.Check(ctx, input)
	if errors.Is(err, ErrInvalidStream) {
		return player.Track{}, fmt.Errorf("%w: %w", player.ErrTrackNotFound, err)
	}
	if err != nil {
		return player.Track{}, err
	}

	return player.Track{
		Title:  probe.StationName,
		URL:    input,
		Source: sources.SourceRadio,
	}, nil
}

func (r *RadioSource) SourceName() string {
	return sources.SourceRadio
}
