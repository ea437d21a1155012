package utils

import (
	"context"
	"time"
)

// Backoff retries with exponentially growing pauses: base, 2*base, 4*base...
type Backoff struct {
	base       time.Duration
	maxRetries int
}

func NewBackoff(base time.Duration, maxRetries int) Backoff {
	if maxRetries < 0 {
		maxRetries = 0
	}
	return Backoff{base: base, maxRetries: maxRetries}
}

// Do calls fn until it succeeds, retry says stop, attempts run out or ctx is done.
// It returns the last error seen.
func (b Backoff) Do(ctx context.Context, retry func(error) bool, fn func(attempt int) error) error {
	var err error
	for i := 0; i <= b.maxRetries; i++ {
		err = fn(i)
		if err == nil {
			return nil
		}
		if i == b.maxRetries || (retry != nil && !retry(err)) {
			return err
		}
		t := time.NewTimer(time.Duration(1<<i) * b.base)
		select {
		case <-ctx.Done():
			t.Stop()
			return err
		case <-t.C:
		}
	}
	return err
}
