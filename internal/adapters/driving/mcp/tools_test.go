package mcp

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/hedwig/internal/core/domain"
)

func doneReport() *domain.RunReport {
	start := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	return &domain.RunReport{
		ID:         "run-1",
		Project:    "wine",
		Backend:    domain.BackendGitHub,
		Repository: "wine-mirror/wine",
		StartedAt:  start,
		FinishedAt: start.Add(2 * time.Second),
		State:      domain.RunStateDone,
		Pages:      3,
		Commits:    90,
		Result: &domain.AggregateResult{
			Mode: domain.AggregationGroupCount,
			Groups: []domain.GroupCount{
				{Name: "PNG", Count: 2},
				{Name: "JPG", Count: 5},
			},
		},
	}
}

func TestServer_handleMonitor(t *testing.T) {
	ctx := context.Background()

	t.Run("runs the project and ranks groups", func(t *testing.T) {
		mon := &mockMonitor{report: doneReport()}
		server, err := NewServer(testPorts(mon))
		require.NoError(t, err)

		_, out, err := server.handleMonitor(ctx, nil, MonitorInput{Project: "wine"})
		require.NoError(t, err)

		assert.Equal(t, "run-1", out.ID)
		assert.Equal(t, "done", out.State)
		assert.Equal(t, 3, out.Pages)
		assert.Equal(t, 90, out.Commits)
		assert.Equal(t, "JPG:5 PNG:2", out.Summary)
		require.Len(t, out.Groups, 2)
		assert.Equal(t, GroupOutput{Name: "JPG", Count: 5}, out.Groups[0])

		assert.Equal(t, "wine-mirror", mon.got.Project.Owner)
		assert.Equal(t, domain.AggregationGroupCount, mon.got.Mode)
		assert.Equal(t, domain.AuthMethodNone, mon.got.Credentials.Method)
		assert.Len(t, mon.got.Keywords.Groups, 2)
	})

	t.Run("input overrides the project", func(t *testing.T) {
		mon := &mockMonitor{report: doneReport()}
		server, err := NewServer(testPorts(mon))
		require.NoError(t, err)

		_, _, err = server.handleMonitor(ctx, nil, MonitorInput{
			Project:       "wine",
			Mode:          "match-list",
			Pagination:    "link",
			SinceDays:     90,
			CaseSensitive: true,
		})
		require.NoError(t, err)

		assert.Equal(t, domain.AggregationMatchList, mon.got.Mode)
		assert.Equal(t, domain.PaginationLink, mon.got.Project.Pagination)
		assert.Equal(t, 90, mon.got.Project.SinceDays)
		assert.True(t, mon.got.CaseSensitive)
	})

	t.Run("credentials come from the resolver", func(t *testing.T) {
		mon := &mockMonitor{report: doneReport()}
		resolver := &mockResolver{creds: domain.TokenCredentials("secret")}
		ports := testPorts(mon)
		ports.Credentials = resolver
		server, err := NewServer(ports)
		require.NoError(t, err)

		_, _, err = server.handleMonitor(ctx, nil, MonitorInput{Project: "forgejo"})
		require.NoError(t, err)

		assert.Equal(t, domain.BackendGitea, resolver.backend)
		assert.Equal(t, "secret", mon.got.Credentials.Token)
	})

	t.Run("failed run returns the partial report", func(t *testing.T) {
		report := doneReport()
		report.State = domain.RunStateFailed
		report.Reason = "rate limited: API rate limit exceeded"
		mon := &mockMonitor{report: report, err: &domain.RateLimitError{Message: "API rate limit exceeded"}}
		server, err := NewServer(testPorts(mon))
		require.NoError(t, err)

		_, out, err := server.handleMonitor(ctx, nil, MonitorInput{Project: "wine"})
		require.NoError(t, err)
		assert.Equal(t, "failed", out.State)
		assert.Equal(t, report.Reason, out.Reason)
		assert.Equal(t, "JPG:5 PNG:2", out.Summary)
	})

	t.Run("match list output", func(t *testing.T) {
		report := doneReport()
		report.Result = &domain.AggregateResult{
			Mode: domain.AggregationMatchList,
			Matches: []domain.MatchEvent{{
				Group:   "PNG",
				Pattern: "PNG",
				Commit:  domain.CommitRecord{SHA: "abc", Message: "fix PNG decoder", URL: "https://example.test/c/abc"},
			}},
		}
		server, err := NewServer(testPorts(&mockMonitor{report: report}))
		require.NoError(t, err)

		_, out, err := server.handleMonitor(ctx, nil, MonitorInput{Project: "wine", Mode: "match-list"})
		require.NoError(t, err)
		require.Len(t, out.Matches, 1)
		assert.Equal(t, MatchOutput{
			Group:   "PNG",
			Pattern: "PNG",
			SHA:     "abc",
			Message: "fix PNG decoder",
			URL:     "https://example.test/c/abc",
		}, out.Matches[0])
	})

	t.Run("invalid input never reaches the monitor", func(t *testing.T) {
		tests := []MonitorInput{
			{},
			{Project: "missing"},
			{Project: "wine", Mode: "histogram"},
			{Project: "wine", Pagination: "cursor"},
			{Project: "wine", SinceDays: -1},
		}
		for _, input := range tests {
			mon := &mockMonitor{report: doneReport()}
			server, err := NewServer(testPorts(mon))
			require.NoError(t, err)

			_, _, err = server.handleMonitor(ctx, nil, input)
			require.Error(t, err, "input %+v", input)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Zero(t, mon.calls)
		}
	})

	t.Run("run that never started is a tool error", func(t *testing.T) {
		server, err := NewServer(testPorts(&mockMonitor{err: domain.ErrUnsupportedBackend}))
		require.NoError(t, err)

		_, _, err = server.handleMonitor(ctx, nil, MonitorInput{Project: "wine"})
		assert.ErrorIs(t, err, domain.ErrUnsupportedBackend)
	})
}

func TestServer_handleListProjects(t *testing.T) {
	server, err := NewServer(testPorts(&mockMonitor{}))
	require.NoError(t, err)

	_, out, err := server.handleListProjects(context.Background(), nil, ListProjectsInput{})
	require.NoError(t, err)
	require.Len(t, out.Projects, 2)

	assert.Equal(t, ProjectOutput{
		Name:       "forgejo",
		Backend:    "gitea",
		Host:       "codeberg.org",
		Repository: "forgejo/forgejo",
	}, out.Projects[0])
	assert.Equal(t, "api.github.com", out.Projects[1].Host)
	assert.Equal(t, "wine-mirror/wine", out.Projects[1].Repository)
	assert.Equal(t, 7, out.Projects[1].SinceDays)
}
