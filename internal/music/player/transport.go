package player

import (
	"context"
	"io"
)

// Outcome is the terminal status of a playback resource.
type Outcome int

const (
	OutcomeFinished Outcome = iota
	OutcomeErrored
)

func (o Outcome) String() string {
	if o == OutcomeErrored {
		return "Errored"
	}
	return "Finished"
}

// Completion is reported exactly once per resource, after natural end of
// stream, an error, or Stop.
type Completion struct {
	Outcome Outcome
	Err     error
}

// Transport joins voice channels and opens audio streams.
type Transport interface {
	Join(ctx context.Context, guildID, channelID string) (Connection, error)
	OpenStream(ctx context.Context, ref string) (io.ReadCloser, error)
}

// Connection is a live voice connection owned by one session.
type Connection interface {
	// Play starts the stream at the given gain (0..1) and takes ownership of
	// it. onDone may be called from any goroutine, including from Stop.
	Play(stream io.ReadCloser, gain float64, onDone func(Completion)) Resource
	Disconnect() error
}

// Resource is the handle of the track currently being played.
type Resource interface {
	SetGain(gain float64)
	Pause()
	Resume()
	Stop()
}

// Resolver turns a free-text query or link into a track.
type Resolver interface {
	Resolve(ctx context.Context, query string) (Track, error)
}
