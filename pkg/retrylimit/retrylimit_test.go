package retrylimit

import (
	"context"
	"errors"
	"testing"
	"time"
)

func fastConfig(attempts int) Config {
	return Config{MaxAttempts: attempts, InitialDelay: time.Millisecond, Jitter: true, Name: "test"}
}

func TestDo(t *testing.T) {
	boom := errors.New("boom")
	tests := []struct {
		name     string
		failures int
		fatal    bool
		attempts int
		wantRuns int
		wantErr  bool
	}{
		{"first try", 0, false, 3, 1, false},
		{"recovers", 2, false, 3, 3, false},
		{"exhausted", 5, false, 3, 3, true},
		{"fatal stops", 5, true, 3, 1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runs := 0
			err := Do(context.Background(), fastConfig(tt.attempts), func(context.Context) error {
				runs++
				if runs <= tt.failures {
					if tt.fatal {
						return Fatal(boom)
					}
					return boom
				}
				return nil
			})
			if runs != tt.wantRuns {
				t.Errorf("runs = %d, want %d", runs, tt.wantRuns)
			}
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v", err)
			}
			if err != nil && !errors.Is(err, boom) {
				t.Errorf("err = %v, want it to wrap boom", err)
			}
		})
	}
}

func TestDoStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	runs := 0
	err := Do(ctx, Config{MaxAttempts: 5, InitialDelay: time.Hour}, func(context.Context) error {
		runs++
		cancel()
		return errors.New("boom")
	})
	if !errors.Is(err, context.Canceled) || runs != 1 {
		t.Fatalf("err = %v, runs = %d", err, runs)
	}
}

func TestFatalNil(t *testing.T) {
	if Fatal(nil) != nil {
		t.Fatal("Fatal(nil) should be nil")
	}
}
