package source_resolver

import (
	"context"
	"errors"
	"testing"

	"github.com/keshon/jukebox/internal/music/player"
	"github.com/keshon/jukebox/internal/music/sources"
)

type stubSource struct {
	name    string
	match   func(string) bool
	err     error
	queries []string
}

func (s *stubSource) Match(input string) bool { return s.match(input) }

func (s *stubSource) Resolve(_ context.Context, input string) (player.Track, error) {
	s.queries = append(s.queries, input)
	if s.err != nil {
		return player.Track{}, s.err
	}
	return player.Track{Title: s.name + ":" + input, URL: input, Source: s.name}, nil
}

func (s *stubSource) SourceName() string { return s.name }

func newStubResolver() (*SourceResolver, *stubSource, *stubSource) {
	yt := &stubSource{name: "youtube", match: func(s string) bool { return s == "https://youtu.be/dQw4w9WgXcQ" }}
	rd := &stubSource{name: "radio", match: sources.IsURL}
	return &SourceResolver{Sources: []sources.Source{yt, rd}, Search: yt}, yt, rd
}

func TestResolveRouting(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		source string
	}{
		{"title goes to search", "lofi beats", "youtube"},
		{"youtube link", "https://youtu.be/dQw4w9WgXcQ", "youtube"},
		{"other link", "https://radio.example.com/live", "radio"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _, _ := newStubResolver()
			track, err := r.Resolve(context.Background(), "  "+tt.query+" ")
			if err != nil {
				t.Fatalf("Resolve: %v", err)
			}
			if track.Source != tt.source || track.URL != tt.query {
				t.Fatalf("got %+v, want source %s", track, tt.source)
			}
		})
	}
}

func TestResolveEmpty(t *testing.T) {
	r, yt, _ := newStubResolver()
	_, err := r.Resolve(context.Background(), "   ")
	if !errors.Is(err, player.ErrTrackNotFound) {
		t.Fatalf("err = %v, want ErrTrackNotFound", err)
	}
	if len(yt.queries) != 0 {
		t.Fatal("search called for empty query")
	}
}

func TestResolveWrapsSourceErrors(t *testing.T) {
	r, _, rd := newStubResolver()
	boom := errors.New("connection refused")
	rd.err = boom

	_, err := r.Resolve(context.Background(), "https://radio.example.com/live")
	if !errors.Is(err, player.ErrTrackNotFound) || !errors.Is(err, boom) {
		t.Fatalf("err = %v, want ErrTrackNotFound wrapping the cause", err)
	}
}

func TestResolveNoSource(t *testing.T) {
	r := &SourceResolver{Search: &stubSource{name: "youtube", match: func(string) bool { return false }}}
	_, err := r.Resolve(context.Background(), "https://example.com/a")
	if !errors.Is(err, player.ErrTrackNotFound) {
		t.Fatalf("err = %v, want ErrTrackNotFound", err)
	}
}

func TestResolveCancelled(t *testing.T) {
	r, yt, _ := newStubResolver()
	yt.err = context.Canceled
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Resolve(ctx, "title")
	if !errors.Is(err, context.Canceled) || errors.Is(err, player.ErrTrackNotFound) {
		t.Fatalf("err = %v, want bare cancellation", err)
	}
}
