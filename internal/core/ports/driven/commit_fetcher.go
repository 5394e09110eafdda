package driven

import (
	"context"

	"github.com/custodia-labs/hedwig/internal/core/domain"
)

// CommitFetcher issues one authenticated page request against a commit feed.
// Implementations exist per backend in internal/connectors.
type CommitFetcher interface {
	// FetchPage returns the decoded commits of one page and its continuation
	// metadata. A throttling payload is reported through
	// Page.Metadata.RateLimit rather than as an error.
	//
	// Errors wrap domain.ErrTransport or domain.ErrMalformedResponse.
	FetchPage(ctx context.Context, query domain.CommitQuery, req domain.PageRequest) (*domain.Page, error)
}

// FetcherOptions tunes a fetcher without changing its semantics.
type FetcherOptions struct {
	// RequestsPerSecond enables proactive throttling when > 0.
	RequestsPerSecond float64

	// Retries is the number of extra attempts after a transport failure.
	Retries int
}

// FetcherFactory builds the fetcher for a project's backend.
type FetcherFactory interface {
	// NewFetcher returns a fetcher for the project.
	// Returns domain.ErrUnsupportedBackend for an unknown backend.
	NewFetcher(ctx context.Context, project domain.Project, creds domain.Credentials, opts FetcherOptions) (CommitFetcher, error)
}
