package feed

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/hedwig/internal/core/domain"
)

func TestRetrier_Do(t *testing.T) {
	transient := TransportError("get page", errors.New("connection reset"))

	t.Run("no retries means one attempt", func(t *testing.T) {
		calls := 0
		err := Retrier{}.Do(context.Background(), func() error {
			calls++
			return transient
		})
		assert.ErrorIs(t, err, domain.ErrTransport)
		assert.Equal(t, 1, calls)
	})

	t.Run("retries transport failures until success", func(t *testing.T) {
		calls := 0
		err := Retrier{Retries: 3, Delay: time.Millisecond}.Do(context.Background(), func() error {
			calls++
			if calls < 3 {
				return transient
			}
			return nil
		})
		assert.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("gives up after the cap", func(t *testing.T) {
		calls := 0
		err := Retrier{Retries: 2, Delay: time.Millisecond}.Do(context.Background(), func() error {
			calls++
			return transient
		})
		assert.Error(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("does not retry malformed responses", func(t *testing.T) {
		calls := 0
		_ = Retrier{Retries: 3, Delay: time.Millisecond}.Do(context.Background(), func() error {
			calls++
			return domain.ErrMalformedResponse
		})
		assert.Equal(t, 1, calls)
	})

	t.Run("does not retry client errors", func(t *testing.T) {
		calls := 0
		_ = Retrier{Retries: 3, Delay: time.Millisecond}.Do(context.Background(), func() error {
			calls++
			return &APIError{StatusCode: http.StatusNotFound, Message: "Not Found"}
		})
		assert.Equal(t, 1, calls)
	})

	t.Run("retries server errors", func(t *testing.T) {
		calls := 0
		_ = Retrier{Retries: 1, Delay: time.Millisecond}.Do(context.Background(), func() error {
			calls++
			return &APIError{StatusCode: http.StatusBadGateway}
		})
		assert.Equal(t, 2, calls)
	})

	t.Run("stops when context is done", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		calls := 0
		_ = Retrier{Retries: 5, Delay: time.Millisecond}.Do(ctx, func() error {
			calls++
			cancel()
			return transient
		})
		assert.Equal(t, 1, calls)
	})
}

func TestAPIError(t *testing.T) {
	err := &APIError{StatusCode: 404, Message: "Not Found", URL: "https://x"}

	assert.ErrorIs(t, err, domain.ErrTransport)
	assert.True(t, IsNotFound(err))
	assert.False(t, IsUnauthorized(err))
	assert.True(t, IsUnauthorized(&APIError{StatusCode: 401}))
	assert.True(t, IsForbidden(&APIError{StatusCode: 403}))
	assert.Contains(t, err.Error(), "404")
}

func TestAPIError_Hint(t *testing.T) {
	tests := []struct {
		status int
		want   string
	}{
		{status: 404, want: "branch names"},
		{status: 401, want: "API token"},
		{status: 403, want: "lack access"},
		{status: 500, want: ""},
	}
	for _, tt := range tests {
		hint := (&APIError{StatusCode: tt.status}).Hint()
		if tt.want == "" {
			assert.Empty(t, hint, "status %d", tt.status)
			continue
		}
		assert.Contains(t, hint, tt.want, "status %d", tt.status)
	}
}
