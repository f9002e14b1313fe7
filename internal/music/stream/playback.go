package stream

import (
	"errors"
	"fmt"
	"io"
	"math"
	"sync"
	"sync/atomic"

	"github.com/keshon/jukebox/internal/music/parsers"
	"github.com/keshon/jukebox/internal/music/player"
	"layeh.com/gopus"
)

// Encoder turns one PCM frame into an opus packet.
type Encoder interface {
	Encode(pcm []int16, frameSize, maxDataBytes int) ([]byte, error)
}

func NewOpusEncoder() (Encoder, error) {
	enc, err := gopus.NewEncoder(parsers.SampleRate, parsers.Channels, gopus.Audio)
	if err != nil {
		return nil, fmt.Errorf("encoder error: %w", err)
	}
	return enc, nil
}

// Playback pumps a PCM stream into an opus packet channel, 20ms per packet.
// It implements player.Resource.
type Playback struct {
	stream io.ReadCloser
	enc    Encoder
	out    chan<- []byte
	onDone func(player.Completion)

	gain atomic.Uint64

	mu      sync.Mutex
	cond    *sync.Cond
	paused  bool
	stopped bool
	stop    chan struct{}

	closeOnce sync.Once
	doneOnce  sync.Once
}

func NewPlayback(stream io.ReadCloser, enc Encoder, out chan<- []byte, gain float64, onDone func(player.Completion)) *Playback {
	p := &Playback{
		stream: stream,
		enc:    enc,
		out:    out,
		onDone: onDone,
		stop:   make(chan struct{}),
	}
	p.cond = sync.NewCond(&p.mu)
	p.SetGain(gain)
	return p
}

// Start runs the pump on its own goroutine.
func (p *Playback) Start() {
	go p.run()
}

func (p *Playback) SetGain(g float64) {
	p.gain.Store(math.Float64bits(g))
}

func (p *Playback) Gain() float64 {
	return math.Float64frombits(p.gain.Load())
}

func (p *Playback) Pause() {
	p.mu.Lock()
	p.paused = true
	p.mu.Unlock()
}

func (p *Playback) Resume() {
	p.mu.Lock()
	p.paused = false
	p.mu.Unlock()
	p.cond.Broadcast()
}

func (p *Playback) Stop() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	close(p.stop)
	p.mu.Unlock()
	p.cond.Broadcast()

	// unblocks a pending read
	p.closeStream()
}

func (p *Playback) isStopped() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stopped
}

// waitWhilePaused blocks until resumed and reports whether to keep going.
func (p *Playback) waitWhilePaused() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	for p.paused && !p.stopped {
		p.cond.Wait()
	}
	return !p.stopped
}

func (p *Playback) run() {
	pcm := make([]byte, parsers.FrameBytes)
	samples := make([]int16, parsers.FrameSize*parsers.Channels)

	for {
		if !p.waitWhilePaused() {
			p.finish(player.Completion{Outcome: player.OutcomeFinished})
			return
		}

		if _, err := io.ReadFull(p.stream, pcm); err != nil {
			if p.isStopped() || errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				p.finish(player.Completion{Outcome: player.OutcomeFinished})
				return
			}
			p.finish(player.Completion{Outcome: player.OutcomeErrored, Err: fmt.Errorf("read error: %w", err)})
			return
		}

		decodePCM(pcm, samples)
		ApplyGain(samples, p.Gain())

		packet, err := p.enc.Encode(samples, parsers.FrameSize, len(pcm))
		if err != nil {
			p.finish(player.Completion{Outcome: player.OutcomeErrored, Err: fmt.Errorf("encode error: %w", err)})
			return
		}

		select {
		case p.out <- packet:
		case <-p.stop:
			p.finish(player.Completion{Outcome: player.OutcomeFinished})
			return
		}
	}
}

func (p *Playback) closeStream() {
	p.closeOnce.Do(func() { p.stream.Close() })
}

func (p *Playback) finish(c player.Completion) {
	p.doneOnce.Do(func() {
		p.closeStream()
		if p.onDone != nil {
			p.onDone(c)
		}
	})
}
