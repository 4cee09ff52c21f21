// Package retry provides the bounded-attempt wrapper used around link
// discovery and article extraction. It knows nothing about either; success
// is whatever the caller's operation reports.
package retry

import (
	"context"
	"log/slog"
	"time"
)

// Backoff is a linear backoff schedule: Base + attempt*Step.
type Backoff struct {
	Base time.Duration
	Step time.Duration
}

// Delay returns the sleep before retrying after the given zero-based
// attempt index.
func (b Backoff) Delay(attempt int) time.Duration {
	return b.Base + time.Duration(attempt)*b.Step
}

// Controller retries a fallible operation up to Attempts times.
type Controller struct {
	Attempts int
	Logger   *slog.Logger

	// Sleep is replaceable in tests. Nil means time.Sleep.
	Sleep func(time.Duration)
}

// New creates a Controller with the given attempt budget.
func New(attempts int, logger *slog.Logger) *Controller {
	return &Controller{
		Attempts: attempts,
		Logger:   logger.With("component", "retry"),
	}
}

// Do runs op until it reports success or the attempt budget is exhausted.
// After each failed attempt except the last it sleeps the backoff delay
// for that attempt index. Returns true if any attempt succeeded. On
// exhaustion it logs a warning and returns false; the caller proceeds with
// the zero result rather than aborting the run.
func (c *Controller) Do(ctx context.Context, label string, backoff Backoff, op func(ctx context.Context) (bool, error)) bool {
	sleep := c.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}

	for attempt := 0; attempt < c.Attempts; attempt++ {
		if ctx.Err() != nil {
			return false
		}

		ok, err := op(ctx)
		if ok {
			return true
		}

		if err != nil {
			c.Logger.Error("attempt failed", "op", label, "attempt", attempt+1, "error", err)
		} else {
			c.Logger.Warn("attempt produced no result", "op", label, "attempt", attempt+1)
		}

		if attempt < c.Attempts-1 {
			sleep(backoff.Delay(attempt))
		}
	}

	c.Logger.Warn("retries exhausted", "op", label, "attempts", c.Attempts)
	return false
}
