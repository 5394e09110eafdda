package feed

import (
	"context"
	"errors"
	"time"

	"github.com/custodia-labs/hedwig/internal/core/domain"
)

// RetryDelay is the initial delay between retries; it doubles per attempt.
const RetryDelay = time.Second

// Retrier repeats a page request after transport failures.
// Zero retries means a single attempt. Only errors wrapping
// domain.ErrTransport are retried, and never once ctx is done.
type Retrier struct {
	Retries int
	Delay   time.Duration
}

// Do runs fn until it succeeds, fails permanently, or attempts run out.
func (r Retrier) Do(ctx context.Context, fn func() error) error {
	delay := r.Delay
	if delay <= 0 {
		delay = RetryDelay
	}

	var err error
	for attempt := 0; ; attempt++ {
		err = fn()
		if err == nil || attempt >= r.Retries || !retryable(ctx, err) {
			return err
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return err
		case <-timer.C:
		}
		delay *= 2
	}
}

func retryable(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return false
	}
	if !errors.Is(err, domain.ErrTransport) {
		return false
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode >= 500
	}
	return true
}
