package domain

import (
	"fmt"
	"strings"
)

// Backend identifies a supported repository system.
type Backend string

const (
	// BackendGitHub covers github.com and GitHub Enterprise hosts.
	BackendGitHub Backend = "github"
	// BackendGitea covers Gitea and Forgejo hosts.
	BackendGitea Backend = "gitea"
)

// AllBackends returns every supported backend.
func AllBackends() []Backend {
	return []Backend{BackendGitHub, BackendGitea}
}

// ParseBackend maps a configuration value to a Backend.
func ParseBackend(s string) (Backend, error) {
	switch Backend(strings.ToLower(strings.TrimSpace(s))) {
	case BackendGitHub:
		return BackendGitHub, nil
	case BackendGitea:
		return BackendGitea, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedBackend, s)
}

// DefaultHost returns the public API host of the backend, if it has one.
func (b Backend) DefaultHost() string {
	switch b {
	case BackendGitHub:
		return "api.github.com"
	case BackendGitea:
		return "gitea.com"
	}
	return ""
}

// AggregationMode selects how matches are accumulated during a run.
type AggregationMode string

const (
	// AggregationGroupCount counts at most one hit per pattern per commit.
	AggregationGroupCount AggregationMode = "group-count"
	// AggregationMatchList keeps the first match of each commit.
	AggregationMatchList AggregationMode = "match-list"
)

// ParseAggregationMode maps a configuration value to an AggregationMode.
// Empty input selects group-count.
func ParseAggregationMode(s string) (AggregationMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "count", string(AggregationGroupCount):
		return AggregationGroupCount, nil
	case "list", string(AggregationMatchList):
		return AggregationMatchList, nil
	}
	return "", fmt.Errorf("%w: aggregation mode %q", ErrInvalidInput, s)
}

// PaginationMode selects how the next page is located.
type PaginationMode string

const (
	// PaginationPage recomputes the page index and uses the Link header only
	// as a continue/stop signal.
	PaginationPage PaginationMode = "page"
	// PaginationLink follows the "next" link verbatim.
	PaginationLink PaginationMode = "link"
)

// ParsePaginationMode maps a configuration value to a PaginationMode.
// Empty input selects page mode.
func ParsePaginationMode(s string) (PaginationMode, error) {
	switch PaginationMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", PaginationPage:
		return PaginationPage, nil
	case PaginationLink:
		return PaginationLink, nil
	}
	return "", fmt.Errorf("%w: pagination mode %q", ErrInvalidInput, s)
}

// RunState is the engine's lifecycle state.
type RunState string

const (
	RunStateRunning RunState = "running"
	RunStateDone    RunState = "done"
	RunStateFailed  RunState = "failed"
)
