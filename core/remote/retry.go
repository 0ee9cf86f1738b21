package remote

import (
	"context"
	"time"
)

// RetryPolicy holds the parameters for the exponential backoff strategy.
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	Factor      float64
	MaxDelay    time.Duration
}

// DefaultRetryPolicy retries four times in total: after 1s, 2s and 4s.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 4,
		BaseDelay:   time.Second,
		Factor:      2,
		MaxDelay:    30 * time.Second,
	}
}

// Delay returns the wait before the retry that follows the given 1-based attempt.
func (p RetryPolicy) Delay(attempt int) time.Duration {
	factor := p.Factor
	if factor < 1 {
		factor = 1
	}
	d := float64(p.BaseDelay)
	for i := 1; i < attempt; i++ {
		d *= factor
	}
	delay := time.Duration(d)
	if p.MaxDelay > 0 && delay > p.MaxDelay {
		return p.MaxDelay
	}
	return delay
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
