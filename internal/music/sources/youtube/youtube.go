package youtube

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/keshon/jukebox/internal/music/player"
	"github.com/keshon/jukebox/internal/music/sources"
)

type YouTubeSource struct {
	resolver *YouTubeResolver
}

func New(searchRate float64) *YouTubeSource {
	return NewWithResolver(NewYouTubeResolver(searchRate))
}

func NewWithResolver(resolver *YouTubeResolver) *YouTubeSource {
	return &YouTubeSource{resolver: resolver}
}

func (y *YouTubeSource) Match(input string) bool {
	return IsYouTubeURL(input)
}

func (y *YouTubeSource) Resolve(ctx context.Context, input string) (player.Track, error) {
	input = strings.TrimSpace(input)

	if isYouTubeVideoURL(input) {
		id := ExtractVideoID(input)
		track := player.Track{URL: CleanVideoURL(input), Source: sources.SourceYouTube}
		// a missing title is not fatal, the url is shown instead
		if v, err := y.resolver.LookupVideo(ctx, id); err == nil {
			track.Title = v.Title
		} else {
			log.Printf("[YouTube] Title lookup for %s failed: %v", id, err)
		}
		return track, nil
	}

	if sources.IsURL(input) {
		return player.Track{}, fmt.Errorf("%w: unsupported YouTube link %q", player.ErrTrackNotFound, input)
	}

	v, err := y.resolver.SearchFirstVideo(ctx, input)
	if errors.Is(err, ErrNoVideoMatch) {
		return player.Track{}, fmt.Errorf("%w: %q", player.ErrTrackNotFound, input)
	}
	if err != nil {
		return player.Track{}, err
	}

	return player.Track{
		Title:  v.Title,
		URL:    WatchURL(v.ID),
		Source: sources.SourceYouTube,
	}, nil
}

func (y *YouTubeSource) SourceName() string {
	return sources.SourceYouTube
}
