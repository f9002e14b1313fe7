package speaker

import (
	"bytes"
	"errors"
	"io"
	"math"
	"testing"
)

func TestPCMStreamerDecodes(t *testing.T) {
	// left = max, right = min, then one silent frame
	data := []byte{0xff, 0x7f, 0x00, 0x80, 0, 0, 0, 0}
	s := newPCMStreamer(bytes.NewReader(data))

	samples := make([][2]float64, 4)
	n, ok := s.Stream(samples)
	if n != 2 || !ok {
		t.Fatalf("Stream = %d, %v", n, ok)
	}
	if math.Abs(samples[0][0]-32767.0/32768) > 1e-9 || samples[0][1] != -1 {
		t.Fatalf("frame 0 = %v", samples[0])
	}
	if samples[1] != [2]float64{0, 0} {
		t.Fatalf("frame 1 = %v", samples[1])
	}

	if n, ok := s.Stream(samples); n != 0 || ok {
		t.Fatalf("after EOF Stream = %d, %v", n, ok)
	}
	if s.Err() != nil {
		t.Fatalf("Err = %v", s.Err())
	}
}

func TestPCMStreamerError(t *testing.T) {
	boom := errors.New("decoder died")
	s := newPCMStreamer(io.MultiReader(bytes.NewReader(make([]byte, 4)), &errReader{boom}))

	samples := make([][2]float64, 2)
	n, ok := s.Stream(samples)
	if n != 1 || !ok {
		t.Fatalf("Stream = %d, %v", n, ok)
	}
	if !errors.Is(s.Err(), boom) {
		t.Fatalf("Err = %v", s.Err())
	}
	if _, ok := s.Stream(samples); ok {
		t.Fatal("stream continued after error")
	}
}

func TestPCMStreamerStopped(t *testing.T) {
	s := newPCMStreamer(bytes.NewReader(make([]byte, 64)))
	s.stopped = true
	if n, ok := s.Stream(make([][2]float64, 4)); n != 0 || ok {
		t.Fatalf("Stream = %d, %v", n, ok)
	}
}

func TestVolumeFor(t *testing.T) {
	tests := []struct {
		gain   float64
		volume float64
		silent bool
	}{
		{1, 0, false},
		{0.5, -1, false},
		{0.25, -2, false},
		{0, 0, true},
	}
	for _, tt := range tests {
		v, silent := volumeFor(tt.gain)
		if v != tt.volume || silent != tt.silent {
			t.Errorf("volumeFor(%v) = %v, %v", tt.gain, v, silent)
		}
	}
}

type errReader struct{ err error }

func (e *errReader) Read([]byte) (int, error) { return 0, e.err }
