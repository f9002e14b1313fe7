package player

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"golang.org/x/sync/singleflight"
)

const enqueueAttempts = 3

// Options configures sessions created by a Registry. Use DefaultOptions as a
// base: the zero value starts sessions muted.
type Options struct {
	DefaultVolume int
	PinCurrent    bool
	EventBuffer   int
}

// DefaultOptions returns full volume, an unpinned shuffle and a 32 event buffer.
func DefaultOptions() Options {
	return Options{
		DefaultVolume: 100,
		EventBuffer:   32,
	}
}

// EnqueueRequest asks for a track to be queued in a guild, joining the voice
// channel first when the guild has no session.
type EnqueueRequest struct {
	GuildID        string
	VoiceChannelID string
	TextChannelID  string
	Track          Track
}

// EnqueueResult tells where the track landed.
type EnqueueResult struct {
	Position  int
	Started   bool
	SessionID string
}

// Registry maps guilds to their playback sessions. A guild has at most one
// session at a time.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	joining  map[string]context.CancelFunc

	transport Transport
	opts      Options
	joins     singleflight.Group
	events    chan Event
}

// NewRegistry creates an empty registry playing through transport.
func NewRegistry(transport Transport, opts Options) *Registry {
	if opts.DefaultVolume < 0 || opts.DefaultVolume > 100 {
		opts.DefaultVolume = 100
	}
	if opts.EventBuffer <= 0 {
		opts.EventBuffer = 32
	}
	return &Registry{
		sessions:  make(map[string]*Session),
		joining:   make(map[string]context.CancelFunc),
		transport: transport,
		opts:      opts,
		events:    make(chan Event, opts.EventBuffer),
	}
}

// Events returns the notification stream of every session.
func (r *Registry) Events() <-chan Event {
	return r.events
}

// Lookup returns the session of a guild.
func (r *Registry) Lookup(guildID string) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[guildID]
	return s, ok
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// CreateAndJoin joins the voice channel and registers a session seeded with
// first. Concurrent calls for one guild share a single join; seeded reports
// whether first was used to seed the queue. On failure nothing is registered.
func (r *Registry) CreateAndJoin(ctx context.Context, guildID, voiceChannelID, textChannelID string, first Track) (s *Session, seeded bool, err error) {
	v, err, _ := r.joins.Do(guildID, func() (any, error) {
		if existing, ok := r.Lookup(guildID); ok {
			return existing, nil
		}

		joinCtx, cancel := context.WithCancel(ctx)
		defer cancel()

		r.mu.Lock()
		r.joining[guildID] = cancel
		r.mu.Unlock()
		defer func() {
			r.mu.Lock()
			delete(r.joining, guildID)
			r.mu.Unlock()
		}()

		log.Printf("[Registry] Joining voice channel %s | guild=%s", voiceChannelID, guildID)
		conn, err := r.transport.Join(joinCtx, guildID, voiceChannelID)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrTransportJoin, err)
		}

		created := newSession(guildID, textChannelID, r.transport, conn, r.opts, r.emit, r.detach)

		created.queue.Push(first)

		r.mu.Lock()
		if joinCtx.Err() != nil {
			r.mu.Unlock()
			if err := conn.Disconnect(); err != nil {
				log.Printf("[Registry] Failed to release cancelled join | guild=%s: %v", guildID, err)
			}
			return nil, fmt.Errorf("%w: %w", ErrTransportJoin, joinCtx.Err())
		}
		r.sessions[guildID] = created
		delete(r.joining, guildID)
		r.mu.Unlock()

		seeded = true
		created.start()
		log.Printf("[Registry] Session %s created | guild=%s", created.ID(), guildID)
		return created, nil
	})
	if err != nil {
		return nil, false, err
	}
	return v.(*Session), seeded, nil
}

// Enqueue queues a track for the guild, creating and joining a session when
// there is none.
func (r *Registry) Enqueue(ctx context.Context, req EnqueueRequest) (EnqueueResult, error) {
	for range enqueueAttempts {
		if s, ok := r.Lookup(req.GuildID); ok {
			n, err := s.Enqueue(req.Track)
			if errors.Is(err, errSessionClosed) {
				r.detach(s)
				continue
			}
			return EnqueueResult{Position: n, SessionID: s.ID()}, err
		}

		s, seeded, err := r.CreateAndJoin(ctx, req.GuildID, req.VoiceChannelID, req.TextChannelID, req.Track)
		if err != nil {
			return EnqueueResult{}, err
		}
		if seeded {
			return EnqueueResult{Position: 1, Started: true, SessionID: s.ID()}, nil
		}

		n, err := s.Enqueue(req.Track)
		if errors.Is(err, errSessionClosed) {
			r.detach(s)
			continue
		}
		return EnqueueResult{Position: n, SessionID: s.ID()}, err
	}
	return EnqueueResult{}, fmt.Errorf("%w: session kept closing under enqueue", ErrNoActiveSession)
}

// Remove stops and forgets the guild's session. It is idempotent.
func (r *Registry) Remove(guildID string) {
	if err := r.Stop(guildID); err != nil && !errors.Is(err, ErrNoActiveSession) {
		log.Printf("[Registry] Remove failed | guild=%s: %v", guildID, err)
	}
}

// Stop ends playback in a guild, including a join still in flight.
func (r *Registry) Stop(guildID string) error {
	r.mu.Lock()
	s, ok := r.sessions[guildID]
	cancel, joining := r.joining[guildID]
	r.mu.Unlock()

	if !ok {
		if joining {
			cancel()
			log.Printf("[Registry] Cancelled join in flight | guild=%s", guildID)
			return nil
		}
		return ErrNoActiveSession
	}
	err := s.Stop()
	r.detach(s)
	return err
}

// Skip skips the current track of the guild.
func (r *Registry) Skip(guildID string) (Track, error) {
	s, ok := r.Lookup(guildID)
	if !ok {
		return Track{}, ErrNoActiveSession
	}
	return s.Skip()
}

// Pause pauses the guild's playback.
func (r *Registry) Pause(guildID string) error {
	s, ok := r.Lookup(guildID)
	if !ok {
		return ErrNoActiveSession
	}
	return s.Pause()
}

// Resume resumes the guild's playback.
func (r *Registry) Resume(guildID string) error {
	s, ok := r.Lookup(guildID)
	if !ok {
		return ErrNoActiveSession
	}
	return s.Resume()
}

// SetVolume sets the guild's volume in percent.
func (r *Registry) SetVolume(guildID string, percent int) error {
	s, ok := r.Lookup(guildID)
	if !ok {
		return ErrNoActiveSession
	}
	return s.SetVolume(percent)
}

// Shuffle shuffles the guild's queue.
func (r *Registry) Shuffle(guildID string) error {
	s, ok := r.Lookup(guildID)
	if !ok {
		return ErrNoActiveSession
	}
	return s.Shuffle()
}

// List returns the guild's queue; a guild without a session has an empty one.
func (r *Registry) List(guildID string) Listing {
	s, ok := r.Lookup(guildID)
	if !ok {
		return Listing{}
	}
	return s.List()
}

// NowPlaying returns the track at the head of the guild's queue.
func (r *Registry) NowPlaying(guildID string) (Track, bool) {
	s, ok := r.Lookup(guildID)
	if !ok {
		return Track{}, false
	}
	return s.NowPlaying()
}

// State returns the lifecycle state of the guild's playback.
func (r *Registry) State(guildID string) State {
	r.mu.RLock()
	_, joining := r.joining[guildID]
	s, ok := r.sessions[guildID]
	r.mu.RUnlock()

	switch {
	case joining:
		return StateJoining
	case ok:
		return s.State()
	default:
		return StateIdle
	}
}

// Close stops every session and cancels pending joins.
func (r *Registry) Close() {
	r.mu.Lock()
	for _, cancel := range r.joining {
		cancel()
	}
	sessions := make([]*Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		sessions = append(sessions, s)
	}
	r.mu.Unlock()

	for _, s := range sessions {
		if err := s.Stop(); err != nil && !errors.Is(err, ErrNoActiveSession) {
			log.Printf("[Registry] Failed to stop session %s: %v", s.ID(), err)
		}
		r.detach(s)
	}
	log.Printf("[Registry] Closed %d session(s)", len(sessions))
}

// detach removes s if it is still the guild's session.
func (r *Registry) detach(s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sessions[s.GuildID()] == s {
		delete(r.sessions, s.GuildID())
	}
}

func (r *Registry) emit(e Event) {
	select {
	case r.events <- e:
	default:
		log.Printf("[Registry] Event dropped (channel full) - %s | guild=%s", e.Kind, e.GuildID)
	}
}
