package generate

import (
	"context"
	"errors"
	"time"
)

// awaitOperation drives a long-running operation: sleep interval, poll,
// check done, repeat. A context deadline bounds the loop (surfaced as
// ErrTimedOut); any poll error terminates it immediately. The original UI
// polled forever, which could hang a session on a stuck operation.
func awaitOperation(ctx context.Context, interval time.Duration, done func() bool, poll func(context.Context) error) error {
	timer := time.NewTimer(interval)
	defer timer.Stop()

	for !done() {
		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return ErrTimedOut
			}
			return ctx.Err()
		case <-timer.C:
		}

		if err := poll(ctx); err != nil {
			return err
		}
		timer.Reset(interval)
	}
	return nil
}
