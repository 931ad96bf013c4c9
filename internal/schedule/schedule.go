package schedule

import (
	"context"
	"time"

	"codeberg.org/mutker/windsensor/internal/errors"
)

// Every runs fn once per period until ctx is done. With immediate set, fn
// also runs once before the first tick. A tick that fires while fn is still
// running is dropped by the ticker rather than queued.
func Every(ctx context.Context, period time.Duration, immediate bool, fn func(context.Context)) error {
	if period <= 0 {
		return errors.New().WithData(errors.ErrInvalidInterval, period.String())
	}

	ticker := time.NewTicker(period)
	defer ticker.Stop()

	if immediate {
		fn(ctx)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			fn(ctx)
		}
	}
}
