package connectors

import (
	"context"
	"fmt"
	"net/http"

	"github.com/custodia-labs/hedwig/internal/connectors/gitea"
	"github.com/custodia-labs/hedwig/internal/connectors/github"
	"github.com/custodia-labs/hedwig/internal/core/domain"
	"github.com/custodia-labs/hedwig/internal/core/ports/driven"
)

// Ensure Factory implements the interface.
var _ driven.FetcherFactory = (*Factory)(nil)

// HTTPClientFunc builds an authenticated http.Client for a set of credentials.
type HTTPClientFunc func(ctx context.Context, creds domain.Credentials) (*http.Client, error)

// Factory creates commit fetchers by backend.
type Factory struct {
	httpClient HTTPClientFunc
}

// NewFactory creates a fetcher factory that authenticates through httpClient.
func NewFactory(httpClient HTTPClientFunc) *Factory {
	return &Factory{httpClient: httpClient}
}

// NewFetcher returns the fetcher for project.Backend.
func (f *Factory) NewFetcher(
	ctx context.Context,
	project domain.Project,
	creds domain.Credentials,
	opts driven.FetcherOptions,
) (driven.CommitFetcher, error) {
	switch project.Backend {
	case domain.BackendGitHub, domain.BackendGitea:
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedBackend, project.Backend)
	}

	client, err := f.httpClient(ctx, creds)
	if err != nil {
		return nil, fmt.Errorf("build transport: %w", err)
	}

	var fetcher driven.CommitFetcher
	switch project.Backend {
	case domain.BackendGitea:
		fetcher, err = gitea.NewClient(client, project.Host, opts)
	default:
		fetcher, err = github.NewClient(client, project.Host, opts)
	}
	if err != nil {
		return nil, err
	}
	return fetcher, nil
}
