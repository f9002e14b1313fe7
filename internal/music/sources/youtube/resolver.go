package youtube

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ppalone/ytsearch"
	"golang.org/x/time/rate"
)

var ErrNoVideoMatch = errors.New("no video found for the given title")

// Video is a search hit.
type Video struct {
	ID       string
	Title    string
	Channel  string
	Duration time.Duration
}

// SearchFunc queries YouTube for videos.
type SearchFunc func(ctx context.Context, query string) ([]Video, error)

// YouTubeResolver searches YouTube by title. All lookups share one rate
// limiter.
type YouTubeResolver struct {
	limiter *rate.Limiter
	search  SearchFunc
}

func NewYouTubeResolver(perSecond float64) *YouTubeResolver {
	client := ytsearch.NewClient(nil)
	return NewYouTubeResolverWith(perSecond, func(ctx context.Context, query string) ([]Video, error) {
		res, err := client.Search(ctx, query)
		if err != nil {
			return nil, err
		}
		videos := make([]Video, 0, len(res.Results))
		for _, v := range res.Results {
			videos = append(videos, Video{
				ID:       v.VideoID,
				Title:    v.Title,
				Channel:  v.Channel,
				Duration: parseDurationColon(v.Duration),
			})
		}
		return videos, nil
	})
}

// NewYouTubeResolverWith uses search instead of the live YouTube client.
func NewYouTubeResolverWith(perSecond float64, search SearchFunc) *YouTubeResolver {
	if perSecond <= 0 {
		perSecond = 1
	}
	return &YouTubeResolver{
		limiter: rate.NewLimiter(rate.Limit(perSecond), 1),
		search:  search,
	}
}

// SearchFirstVideo returns the first result for query.
func (r *YouTubeResolver) SearchFirstVideo(ctx context.Context, query string) (Video, error) {
	videos, err := r.query(ctx, query)
	if err != nil {
		return Video{}, fmt.Errorf("YouTube search failed: %w", err)
	}
	for _, v := range videos {
		if v.ID != "" {
			return v, nil
		}
	}
	return Video{}, ErrNoVideoMatch
}

// LookupVideo searches for a video id and returns the hit with that id.
func (r *YouTubeResolver) LookupVideo(ctx context.Context, id string) (Video, error) {
	videos, err := r.query(ctx, id)
	if err != nil {
		return Video{}, err
	}
	for _, v := range videos {
		if v.ID == id {
			return v, nil
		}
	}
	return Video{}, ErrNoVideoMatch
}

func (r *YouTubeResolver) query(ctx context.Context, q string) ([]Video, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return r.search(ctx, q)
}

// parseDurationColon parses "3:20" or "1:05:20".
func parseDurationColon(s string) time.Duration {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0
	}

	var total time.Duration
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return 0
		}
		total = total*60 + time.Duration(n)
	}
	return total * time.Second
}
