package github

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	gh "github.com/google/go-github/v80/github"

	"github.com/custodia-labs/hedwig/internal/connectors/feed"
	"github.com/custodia-labs/hedwig/internal/core/domain"
)

// rateLimitSignal extracts a throttling signal from a go-github error.
func rateLimitSignal(err error) (*domain.RateLimitSignal, bool) {
	var rateErr *gh.RateLimitError
	if errors.As(err, &rateErr) {
		return &domain.RateLimitSignal{
			Message: rateErr.Message,
			ResetAt: rateErr.Rate.Reset.Time,
		}, true
	}

	var abuseErr *gh.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		signal := &domain.RateLimitSignal{Message: abuseErr.Message}
		if abuseErr.RetryAfter != nil {
			signal.ResetAt = time.Now().Add(*abuseErr.RetryAfter)
		}
		return signal, true
	}

	var ghErr *gh.ErrorResponse
	if !errors.As(err, &ghErr) {
		return nil, false
	}
	if ghErr.Response != nil && ghErr.Response.StatusCode == http.StatusTooManyRequests {
		signal := &domain.RateLimitSignal{Message: ghErr.Message}
		if signal.Message == "" {
			signal.Message = http.StatusText(http.StatusTooManyRequests)
		}
		signal.ResetAt = retryAfter(ghErr.Response.Header.Get("Retry-After"), time.Now())
		return signal, true
	}
	if feed.IsRateLimitMessage(ghErr.Message) {
		return &domain.RateLimitSignal{Message: ghErr.Message}, true
	}
	return nil, false
}

// retryAfter resolves a Retry-After header given as delay seconds or an
// HTTP date. It returns the zero time when the header is absent or invalid.
func retryAfter(value string, now time.Time) time.Time {
	if value == "" {
		return time.Time{}
	}
	if secs, err := strconv.Atoi(value); err == nil && secs >= 0 {
		return now.Add(time.Duration(secs) * time.Second)
	}
	if at, err := http.ParseTime(value); err == nil {
		return at
	}
	return time.Time{}
}

// wrapError converts go-github errors to feed errors.
func wrapError(err error, resp *gh.Response, operation string) error {
	var ghErr *gh.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		apiErr := &feed.APIError{
			StatusCode: ghErr.Response.StatusCode,
			Message:    ghErr.Message,
		}
		if ghErr.Response.Request != nil {
			apiErr.URL = ghErr.Response.Request.URL.String()
		}
		return fmt.Errorf("%s: %w", operation, apiErr)
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return feed.TransportError(operation, err)
	}

	// A 2xx response that failed to decode.
	if resp != nil && resp.Response != nil &&
		resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		return fmt.Errorf("%s: %w: %w", operation, domain.ErrMalformedResponse, err)
	}

	return feed.TransportError(operation, err)
}
