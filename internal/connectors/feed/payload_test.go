package feed

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/hedwig/internal/core/domain"
)

type wireCommit struct {
	SHA    string `json:"sha"`
	Commit struct {
		Message string `json:"message"`
	} `json:"commit"`
}

func TestDetectRateLimit(t *testing.T) {
	tests := []struct {
		name string
		body string
		want bool
	}{
		{
			name: "primary rate limit",
			body: `{"message":"API rate limit exceeded for 1.2.3.4. (But here's the good news...)","documentation_url":"https://docs.github.com/rest"}`,
			want: true,
		},
		{name: "secondary rate limit", body: `{"message":"You have exceeded a secondary rate limit."}`, want: true},
		{name: "other error", body: `{"message":"Not Found"}`, want: false},
		{name: "commit list", body: `[{"sha":"a"}]`, want: false},
		{name: "not json", body: `<html>`, want: false},
		{name: "broken object", body: `{"message":`, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			signal, ok := DetectRateLimit([]byte(tt.body))
			assert.Equal(t, tt.want, ok)
			if tt.want {
				require.NotNil(t, signal)
				assert.NotEmpty(t, signal.Message)
			}
		})
	}
}

func TestDecodeCommitList(t *testing.T) {
	t.Run("decodes list", func(t *testing.T) {
		var commits []wireCommit
		signal, err := DecodeCommitList([]byte(` [{"sha":"abc","commit":{"message":"Added PNG support"}}]`), &commits)

		require.NoError(t, err)
		assert.Nil(t, signal)
		require.Len(t, commits, 1)
		assert.Equal(t, "Added PNG support", commits[0].Commit.Message)
	})

	t.Run("empty list", func(t *testing.T) {
		var commits []wireCommit
		_, err := DecodeCommitList([]byte(`[]`), &commits)
		require.NoError(t, err)
		assert.Empty(t, commits)
	})

	t.Run("rate limit object", func(t *testing.T) {
		var commits []wireCommit
		signal, err := DecodeCommitList([]byte(`{"message":"API rate limit exceeded"}`), &commits)

		require.NoError(t, err)
		require.NotNil(t, signal)
		assert.Equal(t, "API rate limit exceeded", signal.Message)
	})

	malformed := []struct {
		name string
		body string
		msg  string
	}{
		{name: "empty body", body: "  ", msg: "empty body"},
		{name: "error object", body: `{"message":"Git Repository is empty."}`, msg: "Git Repository is empty."},
		{name: "object without message", body: `{"sha":"x"}`, msg: "got an object"},
		{name: "html", body: `<html></html>`, msg: "expected a commit list"},
		{name: "truncated list", body: `[{"sha":`, msg: "malformed"},
	}
	for _, tt := range malformed {
		t.Run(tt.name, func(t *testing.T) {
			var commits []wireCommit
			_, err := DecodeCommitList([]byte(tt.body), &commits)

			assert.True(t, errors.Is(err, domain.ErrMalformedResponse))
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}
