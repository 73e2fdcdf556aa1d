// Package retry repeats connection attempts to backing services at startup.
package retry

import (
	"context"
	"fmt"
	"log"
	"time"
)

// Connect calls fn until it succeeds, attempts run out or ctx is done. The
// last error of fn is returned.
func Connect(ctx context.Context, name string, attempts int, delay time.Duration, fn func(ctx context.Context) error) error {
	if attempts < 1 {
		attempts = 1
	}

	var err error

	for left := attempts; left > 0; left-- {
		if err = fn(ctx); err == nil {
			return nil
		}

		if left == 1 {
			break
		}

		log.Printf("%s is trying to connect, attempts left: %d", name, left-1)

		select {
		case <-ctx.Done():
			return fmt.Errorf("%s - connect: %w (last error: %w)", name, ctx.Err(), err)
		case <-time.After(delay):
		}
	}

	return fmt.Errorf("%s - connect - attempts == 0: %w", name, err)
}
