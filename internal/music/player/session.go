package player

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand/v2"
	"sync"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

var errSessionClosed = errors.New("session is closed")

// Entry is one line of a queue listing.
type Entry struct {
	Position int
	Title    string
}

// Listing is a read-only snapshot of a queue.
type Listing struct {
	Entries []Entry
}

// Empty reports whether the queue had no tracks.
func (l Listing) Empty() bool {
	return len(l.Entries) == 0
}

// Session owns the queue and the active playback resource of one guild.
// Every mutable field is guarded by mu.
type Session struct {
	mu sync.Mutex

	id            string
	guildID       string
	textChannelID string

	transport Transport
	conn      Connection
	resource  Resource
	queue     Queue
	volume    int
	state     State

	// gen identifies the current playback; completions carrying an older
	// value belong to a resource that was already skipped or stopped.
	gen        uint64
	cancelOpen context.CancelFunc
	opening    sync.WaitGroup

	pinCurrent bool
	rng        *rand.Rand

	emit     func(Event)
	onClosed func(*Session)
}

func newSession(guildID, textChannelID string, transport Transport, conn Connection, opts Options, emit func(Event), onClosed func(*Session)) *Session {
	return &Session{
		id:            uuid.NewString(),
		guildID:       guildID,
		textChannelID: textChannelID,
		transport:     transport,
		conn:          conn,
		volume:        opts.DefaultVolume,
		state:         StateIdle,
		pinCurrent:    opts.PinCurrent,
		rng:           rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		emit:          emit,
		onClosed:      onClosed,
	}
}

// ID returns the session's unique id.
func (s *Session) ID() string { return s.id }

// GuildID returns the guild the session belongs to.
func (s *Session) GuildID() string { return s.guildID }

// TextChannelID returns the channel notifications are relayed to.
func (s *Session) TextChannelID() string { return s.textChannelID }

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Volume returns the volume in percent.
func (s *Session) Volume() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.volume
}

// NowPlaying returns the head of the queue while playback is active.
func (s *Session) NowPlaying() (Track, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case StateLoading, StatePlaying, StatePaused:
		return s.queue.Front()
	default:
		return Track{}, false
	}
}

// Enqueue appends a track and returns the new queue length.
func (s *Session) Enqueue(t Track) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateClosed {
		return 0, errSessionClosed
	}
	n := s.queue.Push(t)
	log.Printf("[Player] Track %q queued | guild=%s QueueLen=%d", t.DisplayTitle(), s.guildID, n)

	if s.state == StateIdle {
		s.beginPlaybackLocked()
	}
	return n, nil
}

// start begins playback of a freshly seeded session.
func (s *Session) start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateIdle {
		s.beginPlaybackLocked()
	}
}

// Skip stops the current track. The queue advances through the completion
// path, so the head is popped exactly once.
func (s *Session) Skip() (Track, error) {
	s.mu.Lock()
	if s.state == StateClosed {
		s.mu.Unlock()
		return Track{}, ErrNoActiveSession
	}

	current, _ := s.queue.Front()
	r := s.resource
	if r == nil {
		// stream still opening; drop it and move on
		log.Printf("[Player] Skip while opening %q | guild=%s", current.DisplayTitle(), s.guildID)
		conn := s.advanceLocked()
		s.mu.Unlock()
		s.release(conn)
		return current, nil
	}
	s.mu.Unlock()

	log.Printf("[Player] Skip %q | guild=%s", current.DisplayTitle(), s.guildID)
	r.Stop()
	return current, nil
}

// Stop clears the queue, tears down playback and leaves the voice channel.
// No stream or connection opened by the session outlives the call.
func (s *Session) Stop() error {
	s.mu.Lock()
	if s.state == StateClosed {
		s.mu.Unlock()
		return ErrNoActiveSession
	}

	r := s.resource
	s.resource = nil
	current, _ := s.queue.Front()
	conn := s.closeLocked(EventStopped, current)
	s.mu.Unlock()

	log.Printf("[Player] Stop called | guild=%s", s.guildID)
	if r != nil {
		r.Stop()
	}
	s.opening.Wait()
	s.release(conn)
	return nil
}

// Pause holds the active resource. Pausing a paused session is a no-op.
func (s *Session) Pause() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case StatePlaying:
		s.resource.Pause()
		s.state = StatePaused
		return nil
	case StatePaused:
		return nil
	case StateClosed:
		return ErrNoActiveSession
	default:
		return fmt.Errorf("%w: nothing is playing", ErrNoActiveSession)
	}
}

// Resume continues a paused resource. Resuming a playing session is a no-op.
func (s *Session) Resume() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case StatePaused:
		s.resource.Resume()
		s.state = StatePlaying
		return nil
	case StatePlaying:
		return nil
	case StateClosed:
		return ErrNoActiveSession
	default:
		return fmt.Errorf("%w: nothing is playing", ErrNoActiveSession)
	}
}

// SetVolume sets the volume in percent and applies it to the active resource.
func (s *Session) SetVolume(percent int) error {
	if percent < 0 || percent > 100 {
		return fmt.Errorf("%w: got %d", ErrInvalidVolume, percent)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateClosed {
		return ErrNoActiveSession
	}
	s.volume = percent
	if s.resource != nil {
		s.resource.SetGain(gain(percent))
	}
	return nil
}

// Shuffle permutes the queue. The playing head takes part in the permutation
// unless the session pins it.
func (s *Session) Shuffle() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateClosed {
		return ErrNoActiveSession
	}

	from := 0
	if s.pinCurrent {
		from = 1
	}
	if s.queue.Len()-from <= 1 {
		return fmt.Errorf("%w: %d track(s) queued", ErrInsufficientTracks, s.queue.Len())
	}
	s.queue.Shuffle(s.rng, from)
	return nil
}

// List returns the queued titles with 1-based positions.
func (s *Session) List() Listing {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Listing{Entries: lo.Map(s.queue.Snapshot(), func(t Track, i int) Entry {
		return Entry{Position: i + 1, Title: t.DisplayTitle()}
	})}
}

// beginPlaybackLocked opens the head of the queue on a separate goroutine.
func (s *Session) beginPlaybackLocked() {
	track, ok := s.queue.Front()
	if !ok {
		return
	}
	if s.cancelOpen != nil {
		s.cancelOpen()
	}

	s.gen++
	gen := s.gen
	ctx, cancel := context.WithCancel(context.Background())
	s.cancelOpen = cancel
	s.resource = nil
	s.state = StateLoading

	s.opening.Add(1)
	go s.open(ctx, cancel, gen, track)
}

func (s *Session) open(ctx context.Context, cancel context.CancelFunc, gen uint64, track Track) {
	defer s.opening.Done()
	defer cancel()

	log.Printf("[Player] Opening stream for %q (%s) | guild=%s", track.DisplayTitle(), track.URL, s.guildID)
	stream, err := s.transport.OpenStream(ctx, track.URL)

	s.mu.Lock()
	if gen != s.gen || s.state == StateClosed {
		s.mu.Unlock()
		if stream != nil {
			stream.Close()
		}
		return
	}

	if err != nil {
		log.Printf("[Player] Failed to open stream for %q, skipping: %v", track.DisplayTitle(), err)
		s.emitLocked(EventTrackFailed, track, fmt.Errorf("%w: %w", ErrStreamUnavailable, err))
		conn := s.advanceLocked()
		s.mu.Unlock()
		s.release(conn)
		return
	}

	s.resource = s.conn.Play(stream, gain(s.volume), func(c Completion) {
		go s.onComplete(gen, c)
	})
	s.state = StatePlaying
	s.emitLocked(EventNowPlaying, track, nil)
	s.mu.Unlock()

	log.Printf("[Player] Now playing %q | guild=%s", track.DisplayTitle(), s.guildID)
}

// onComplete is the transport completion path for both finished and errored
// resources.
func (s *Session) onComplete(gen uint64, c Completion) {
	s.mu.Lock()
	if gen != s.gen || s.state == StateClosed {
		s.mu.Unlock()
		return
	}

	track, _ := s.queue.Front()
	if c.Outcome == OutcomeErrored {
		log.Printf("[Player] Playback error for %q: %v", track.DisplayTitle(), c.Err)
		s.emitLocked(EventTrackFailed, track, c.Err)
	} else {
		log.Printf("[Player] Playback finished for %q", track.DisplayTitle())
	}

	conn := s.advanceLocked()
	s.mu.Unlock()
	s.release(conn)
}

// advanceLocked retires the head and begins the next track. It returns the
// connection to release when the queue ran dry.
func (s *Session) advanceLocked() Connection {
	s.resource = nil
	last, _ := s.queue.PopFront()
	if s.queue.Len() == 0 {
		return s.closeLocked(EventQueueEnded, last)
	}
	s.beginPlaybackLocked()
	return nil
}

func (s *Session) closeLocked(kind EventKind, last Track) Connection {
	s.state = StateClosed
	s.gen++
	if s.cancelOpen != nil {
		s.cancelOpen()
		s.cancelOpen = nil
	}
	s.queue.Clear()

	conn := s.conn
	s.conn = nil
	s.emitLocked(kind, last, nil)
	return conn
}

// release disconnects and detaches a closed session. Must be called without mu.
func (s *Session) release(conn Connection) {
	if conn == nil {
		return
	}
	if err := conn.Disconnect(); err != nil {
		log.Printf("[Player] Failed to disconnect | guild=%s: %v", s.guildID, err)
	}
	if s.onClosed != nil {
		s.onClosed(s)
	}
	log.Printf("[Player] Session %s closed | guild=%s", s.id, s.guildID)
}

func (s *Session) emitLocked(kind EventKind, t Track, err error) {
	if s.emit == nil {
		return
	}
	s.emit(Event{
		Kind:          kind,
		GuildID:       s.guildID,
		TextChannelID: s.textChannelID,
		SessionID:     s.id,
		Track:         t,
		Err:           err,
	})
}

func gain(percent int) float64 {
	return float64(percent) / 100
}
