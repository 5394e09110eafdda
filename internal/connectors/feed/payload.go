package feed

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/custodia-labs/hedwig/internal/core/domain"
)

// rateLimitMarker is the phrase upstream error payloads use for throttling.
const rateLimitMarker = "rate limit"

// ErrorPayload is the object an API returns in place of a list on failure.
type ErrorPayload struct {
	Message          string `json:"message"`
	DocumentationURL string `json:"documentation_url,omitempty"`
}

// DetectRateLimit reports whether body is an error object announcing throttling.
func DetectRateLimit(body []byte) (*domain.RateLimitSignal, bool) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, false
	}
	var p ErrorPayload
	if err := json.Unmarshal(trimmed, &p); err != nil {
		return nil, false
	}
	if !IsRateLimitMessage(p.Message) {
		return nil, false
	}
	return &domain.RateLimitSignal{Message: p.Message}, true
}

// IsRateLimitMessage reports whether an upstream message signals throttling.
func IsRateLimitMessage(msg string) bool {
	return strings.Contains(strings.ToLower(msg), rateLimitMarker)
}

// DecodeCommitList decodes a page body into v, which must point to a slice.
//
// A throttling object yields a signal and no error. Any other object, an
// empty body or undecodable JSON wraps domain.ErrMalformedResponse.
func DecodeCommitList(body []byte, v any) (*domain.RateLimitSignal, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty body", domain.ErrMalformedResponse)
	}

	switch trimmed[0] {
	case '[':
		if err := json.Unmarshal(trimmed, v); err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrMalformedResponse, err)
		}
		return nil, nil
	case '{':
		if signal, ok := DetectRateLimit(trimmed); ok {
			return signal, nil
		}
		var p ErrorPayload
		if err := json.Unmarshal(trimmed, &p); err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrMalformedResponse, err)
		}
		if p.Message != "" {
			return nil, fmt.Errorf("%w: upstream error: %s", domain.ErrMalformedResponse, p.Message)
		}
		return nil, fmt.Errorf("%w: expected a commit list, got an object", domain.ErrMalformedResponse)
	}
	return nil, fmt.Errorf("%w: expected a commit list", domain.ErrMalformedResponse)
}
