// Package retrylimit retries flaky calls with exponential backoff.
//
// Example usage:
//
//	err := retrylimit.Do(ctx, retrylimit.Config{MaxAttempts: 3}, func(ctx context.Context) error {
//	    return join(ctx)
//	})
package retrylimit

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"
)

// FatalError wraps errors that should stop retries immediately.
type FatalError struct {
	Err error
}

func (f *FatalError) Error() string { return f.Err.Error() }
func (f *FatalError) Unwrap() error { return f.Err }

// Fatal marks err as not worth retrying.
func Fatal(err error) error {
	if err == nil {
		return nil
	}
	return &FatalError{Err: err}
}

// Config configures retry behavior. Zero fields take the defaults.
type Config struct {
	MaxAttempts  int           // Maximum number of attempts, default 3
	InitialDelay time.Duration // Delay before the second attempt, default 500ms
	MaxDelay     time.Duration // Cap on the delay, default 10s
	Multiplier   float64       // Delay multiplier, default 2
	Jitter       bool          // Add up to 25% random delay
	Name         string        // Used in log lines
}

func (c Config) withDefaults() Config {
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = 3
	}
	if c.InitialDelay <= 0 {
		c.InitialDelay = 500 * time.Millisecond
	}
	if c.MaxDelay <= 0 {
		c.MaxDelay = 10 * time.Second
	}
	if c.Multiplier < 1 {
		c.Multiplier = 2
	}
	if c.Name == "" {
		c.Name = "request"
	}
	return c
}

// Do runs fn until it succeeds, returns a FatalError, ctx is done or the
// attempts run out. The last error is returned wrapped.
func Do(ctx context.Context, cfg Config, fn func(ctx context.Context) error) error {
	cfg = cfg.withDefaults()
	delay := cfg.InitialDelay

	var err error
	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		err = fn(ctx)
		if err == nil {
			if attempt > 1 {
				log.Printf("[Retry] %s succeeded after %d attempts", cfg.Name, attempt)
			}
			return nil
		}

		var fatal *FatalError
		if errors.As(err, &fatal) {
			return fatal.Err
		}
		if attempt == cfg.MaxAttempts {
			break
		}

		wait := delay
		if cfg.Jitter {
			wait = addJitter(delay)
		}
		log.Printf("[Retry] %s failed (attempt %d): %v. Sleeping %v", cfg.Name, attempt, err, wait)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}

		delay = min(time.Duration(float64(delay)*cfg.Multiplier), cfg.MaxDelay)
	}

	return fmt.Errorf("%s failed after %d attempts: %w", cfg.Name, cfg.MaxAttempts, err)
}

// addJitter adds random jitter (0-25% of delay) to prevent thundering herd problem.
func addJitter(delay time.Duration) time.Duration {
	if delay < 4 {
		return delay
	}
	return delay + time.Duration(rand.Int63n(int64(delay/4)))
}
