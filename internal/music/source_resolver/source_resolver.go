package source_resolver

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/keshon/jukebox/internal/music/player"
	"github.com/keshon/jukebox/internal/music/sources"
	"github.com/keshon/jukebox/internal/music/sources/radio"
	"github.com/keshon/jukebox/internal/music/sources/youtube"
)

// SourceResolver turns user input into a track. Links are offered to the
// sources in order, free text goes to the title source.
type SourceResolver struct {
	Sources []sources.Source
	Search  sources.Source
}

func New(searchRate float64) *SourceResolver {
	yt := youtube.New(searchRate)
	return &SourceResolver{
		Sources: []sources.Source{yt, radio.New()},
		Search:  yt,
	}
}

func (r *SourceResolver) Resolve(ctx context.Context, query string) (player.Track, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return player.Track{}, fmt.Errorf("%w: empty query", player.ErrTrackNotFound)
	}

	src := r.pick(query)
	if src == nil {
		return player.Track{}, fmt.Errorf("%w: no source accepts %q", player.ErrTrackNotFound, query)
	}

	track, err := src.Resolve(ctx, query)
	switch {
	case err == nil:
		log.Printf("[Resolver] %q resolved by %s to %s", query, src.SourceName(), track.URL)
		return track, nil
	case errors.Is(err, player.ErrTrackNotFound), ctx.Err() != nil:
		return player.Track{}, err
	default:
		return player.Track{}, fmt.Errorf("%w: %s: %w", player.ErrTrackNotFound, src.SourceName(), err)
	}
}

func (r *SourceResolver) pick(query string) sources.Source {
	if !sources.IsURL(query) && !youtube.IsYouTubeURL(query) {
		return r.Search
	}
	for _, s := range r.Sources {
		if s.Match(query) {
			return s
		}
	}
	return nil
}
