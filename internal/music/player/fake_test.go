package player

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"
)

type fakeTransport struct {
	mu sync.Mutex

	joinErr   error
	joinDelay time.Duration
	failRefs  map[string]bool
	blockRefs map[string]bool

	joins     int
	opened    []string
	conns     []*fakeConn
	resources []*fakeResource
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{
		failRefs:  make(map[string]bool),
		blockRefs: make(map[string]bool),
	}
}

func (f *fakeTransport) Join(ctx context.Context, guildID, channelID string) (Connection, error) {
	f.mu.Lock()
	f.joins++
	delay, joinErr := f.joinDelay, f.joinErr
	f.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if joinErr != nil {
		return nil, joinErr
	}

	c := &fakeConn{t: f, channelID: channelID}
	f.mu.Lock()
	f.conns = append(f.conns, c)
	f.mu.Unlock()
	return c, nil
}

func (f *fakeTransport) OpenStream(ctx context.Context, ref string) (io.ReadCloser, error) {
	f.mu.Lock()
	f.opened = append(f.opened, ref)
	fail, block := f.failRefs[ref], f.blockRefs[ref]
	f.mu.Unlock()

	if block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if fail {
		return nil, errors.New("video unavailable")
	}
	return io.NopCloser(strings.NewReader(ref)), nil
}

func (f *fakeTransport) openedRefs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.opened...)
}

func (f *fakeTransport) joinCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.joins
}

func (f *fakeTransport) lastResource(t *testing.T) *fakeResource {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.resources) == 0 {
		t.Fatal("no resource was played")
	}
	return f.resources[len(f.resources)-1]
}

type fakeConn struct {
	t         *fakeTransport
	channelID string

	mu           sync.Mutex
	disconnected int
}

func (c *fakeConn) Play(stream io.ReadCloser, gain float64, onDone func(Completion)) Resource {
	data, _ := io.ReadAll(stream)
	stream.Close()

	r := &fakeResource{ref: string(data), onDone: onDone}
	r.gains = append(r.gains, gain)
	c.t.mu.Lock()
	c.t.resources = append(c.t.resources, r)
	c.t.mu.Unlock()
	return r
}

func (c *fakeConn) Disconnect() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.disconnected++
	return nil
}

func (c *fakeConn) disconnects() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.disconnected
}

type fakeResource struct {
	ref    string
	onDone func(Completion)
	once   sync.Once

	mu      sync.Mutex
	gains   []float64
	pauses  int
	resumes int
	stopped bool
}

func (r *fakeResource) SetGain(g float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.gains = append(r.gains, g)
}

func (r *fakeResource) Pause() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pauses++
}

func (r *fakeResource) Resume() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resumes++
}

func (r *fakeResource) Stop() {
	r.mu.Lock()
	r.stopped = true
	r.mu.Unlock()
	r.complete(Completion{Outcome: OutcomeFinished})
}

func (r *fakeResource) Finish() { r.complete(Completion{Outcome: OutcomeFinished}) }

func (r *fakeResource) Fail(err error) {
	r.complete(Completion{Outcome: OutcomeErrored, Err: err})
}

func (r *fakeResource) complete(c Completion) {
	r.once.Do(func() { r.onDone(c) })
}

func (r *fakeResource) lastGain() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.gains[len(r.gains)-1]
}

func waitEvent(t *testing.T, r *Registry, kind EventKind) Event {
	t.Helper()
	timeout := time.After(2 * time.Second)
	for {
		select {
		case e := <-r.Events():
			if e.Kind == kind {
				return e
			}
		case <-timeout:
			t.Fatalf("timed out waiting for %q event", kind)
		}
	}
}

func eventually(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("condition never met: %s", what)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func track(title string) Track {
	return Track{Title: title, URL: "ref:" + title, Source: "test"}
}

func enqueue(t *testing.T, r *Registry, guildID string, tr Track) EnqueueResult {
	t.Helper()
	res, err := r.Enqueue(context.Background(), EnqueueRequest{
		GuildID:        guildID,
		VoiceChannelID: "voice-1",
		TextChannelID:  "text-1",
		Track:          tr,
	})
	if err != nil {
		t.Fatalf("Enqueue(%q) error = %v", tr.Title, err)
	}
	return res
}

func titles(l Listing) []string {
	out := make([]string, 0, len(l.Entries))
	for _, e := range l.Entries {
		out = append(out, e.Title)
	}
	return out
}
