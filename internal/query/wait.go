package query

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mj1618/axquery/internal/ax"
)

// ErrTimeout is returned by Wait when the condition is not met in time.
var ErrTimeout = errors.New("timed out")

// WaitOptions configures Wait.
type WaitOptions struct {
	Timeout  time.Duration
	Interval time.Duration
	// Gone waits for the probe to stop matching instead.
	Gone bool
	// OnPoll, when set, observes every probe result.
	OnPoll func(poll int, els ax.Elements, err error)
}

// Outcome is what Wait observed.
type Outcome struct {
	Elements ax.Elements
	Polls    int
	Elapsed  time.Duration
}

// Wait polls probe until it returns at least one element (or none, with
// Gone), the timeout passes, or ctx ends. Probe errors count as "no match"
// so that a target that does not exist yet can be waited for.
func Wait(ctx context.Context, probe func() (ax.Elements, error), opts WaitOptions) (Outcome, error) {
	if opts.Interval <= 0 {
		opts.Interval = 500 * time.Millisecond
	}
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	start := time.Now()
	ticker := time.NewTicker(opts.Interval)
	defer ticker.Stop()

	var out Outcome
	var lastErr error
	for {
		els, err := probe()
		out.Polls++
		if opts.OnPoll != nil {
			opts.OnPoll(out.Polls, els, err)
		}
		lastErr = err
		if err != nil {
			els = nil
		}
		if met := len(els) > 0; met != opts.Gone {
			out.Elements = els
			out.Elapsed = time.Since(start)
			return out, nil
		}

		select {
		case <-ctx.Done():
			out.Elapsed = time.Since(start)
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				if lastErr != nil {
					return out, fmt.Errorf("%w after %s (last error: %v)", ErrTimeout, opts.Timeout, lastErr)
				}
				return out, fmt.Errorf("%w after %s", ErrTimeout, opts.Timeout)
			}
			return out, ctx.Err()
		case <-ticker.C:
		}
	}
}
