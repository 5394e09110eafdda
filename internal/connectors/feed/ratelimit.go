package feed

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	// MinBuffer is the minimum remaining requests before waiting for reset.
	MinBuffer = 10

	// HeaderRateLimit is the rate limit header.
	HeaderRateLimit = "X-RateLimit-Limit"

	// HeaderRateRemaining is the remaining requests header.
	HeaderRateRemaining = "X-RateLimit-Remaining"

	// HeaderRateReset is the reset timestamp header (Unix seconds).
	HeaderRateReset = "X-RateLimit-Reset"
)

// Throttle tracks the upstream quota from response headers and, when enabled,
// paces requests ahead of the quota.
//
// A disabled Throttle never blocks; it still records quota headers so that a
// throttling response can report when the quota resets.
type Throttle struct {
	mu        sync.Mutex
	remaining int
	limit     int
	resetTime time.Time
	bucket    *rate.Limiter
	minBuffer int
}

// NewThrottle creates a throttle. requestsPerSecond <= 0 disables pacing.
func NewThrottle(requestsPerSecond float64) *Throttle {
	t := &Throttle{
		remaining: -1,
		limit:     -1,
		minBuffer: MinBuffer,
	}
	if requestsPerSecond > 0 {
		t.bucket = rate.NewLimiter(rate.Limit(requestsPerSecond), 1)
	}
	return t
}

// Enabled reports whether requests are paced.
func (t *Throttle) Enabled() bool {
	return t.bucket != nil
}

// Wait blocks until it's safe to make a request.
// It applies the token bucket, then waits for the quota reset when the
// known remaining quota has dropped below the buffer.
func (t *Throttle) Wait(ctx context.Context) error {
	if t.bucket == nil {
		return ctx.Err()
	}
	if err := t.bucket.Wait(ctx); err != nil {
		return err
	}

	t.mu.Lock()
	remaining := t.remaining
	resetTime := t.resetTime
	t.mu.Unlock()

	if remaining >= 0 && remaining < t.minBuffer && time.Now().Before(resetTime) {
		timer := time.NewTimer(time.Until(resetTime))
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}
	return nil
}

// UpdateFromResponse updates quota state from response headers.
func (t *Throttle) UpdateFromResponse(resp *http.Response) {
	if resp == nil {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if remaining := resp.Header.Get(HeaderRateRemaining); remaining != "" {
		if val, err := strconv.Atoi(remaining); err == nil {
			t.remaining = val
		}
	}
	if limit := resp.Header.Get(HeaderRateLimit); limit != "" {
		if val, err := strconv.Atoi(limit); err == nil {
			t.limit = val
		}
	}
	if reset := resp.Header.Get(HeaderRateReset); reset != "" {
		if val, err := strconv.ParseInt(reset, 10, 64); err == nil {
			t.resetTime = time.Unix(val, 0)
		}
	}
}

// Remaining returns the last seen remaining quota, or -1 if unknown.
func (t *Throttle) Remaining() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.remaining
}

// Limit returns the last seen quota size, or -1 if unknown.
func (t *Throttle) Limit() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.limit
}

// ResetTime returns the last seen quota reset time.
func (t *Throttle) ResetTime() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.resetTime
}
