package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	gh "github.com/google/go-github/v80/github"

	"github.com/custodia-labs/hedwig/internal/connectors/feed"
	"github.com/custodia-labs/hedwig/internal/core/domain"
	"github.com/custodia-labs/hedwig/internal/core/ports/driven"
)

// DefaultPerPage is the page size GitHub uses when none is requested.
const DefaultPerPage = 30

// Verify interface compliance.
var _ driven.CommitFetcher = (*Client)(nil)

// Client fetches commit pages through go-github.
type Client struct {
	gh       *gh.Client
	throttle *feed.Throttle
	retrier  feed.Retrier
}

// NewClient creates a GitHub commit fetcher over an authenticated http.Client.
//
// An empty host or api.github.com targets github.com. Any other host is
// treated as GitHub Enterprise; a bare host name gets an https scheme.
func NewClient(httpClient *http.Client, host string, opts driven.FetcherOptions) (*Client, error) {
	client := gh.NewClient(httpClient)

	if !isPublicHost(host) {
		base := host
		if !strings.Contains(base, "://") {
			base = "https://" + base
		}
		enterprise, err := client.WithEnterpriseURLs(base, base)
		if err != nil {
			return nil, fmt.Errorf("%w: github host %q: %w", domain.ErrInvalidInput, host, err)
		}
		client = enterprise
	}

	return &Client{
		gh:       client,
		throttle: feed.NewThrottle(opts.RequestsPerSecond),
		retrier:  feed.Retrier{Retries: opts.Retries},
	}, nil
}

func isPublicHost(host string) bool {
	h := strings.TrimSuffix(strings.TrimPrefix(host, "https://"), "/")
	return h == "" || h == domain.BackendGitHub.DefaultHost()
}

// Throttle returns the quota tracker for external access.
func (c *Client) Throttle() *feed.Throttle {
	return c.throttle
}

// FetchPage fetches one page of commits.
func (c *Client) FetchPage(
	ctx context.Context, query domain.CommitQuery, req domain.PageRequest,
) (*domain.Page, error) {
	target := req.URL
	if target == "" {
		target = commitsPath(query, req.Page)
	}

	var (
		raw  json.RawMessage
		resp *gh.Response
	)
	err := c.retrier.Do(ctx, func() error {
		if err := c.throttle.Wait(ctx); err != nil {
			return err
		}

		httpReq, err := c.gh.NewRequest(http.MethodGet, target, nil)
		if err != nil {
			return fmt.Errorf("%w: build request: %w", domain.ErrInvalidInput, err)
		}

		raw = nil
		resp, err = c.gh.Do(ctx, httpReq, &raw)
		if resp != nil {
			c.throttle.UpdateFromResponse(resp.Response)
		}
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if _, ok := rateLimitSignal(err); ok {
				return err
			}
			return wrapError(err, resp, "list commits")
		}
		return nil
	})
	if err != nil {
		if signal, ok := rateLimitSignal(err); ok {
			if signal.ResetAt.IsZero() {
				signal.ResetAt = c.throttle.ResetTime()
			}
			return &domain.Page{Metadata: domain.PageMetadata{RateLimit: signal}}, nil
		}
		return nil, err
	}

	var commits []*gh.RepositoryCommit
	signal, err := feed.DecodeCommitList(raw, &commits)
	if err != nil {
		return nil, fmt.Errorf("list commits: %w", err)
	}
	if signal != nil {
		if signal.ResetAt.IsZero() {
			signal.ResetAt = c.throttle.ResetTime()
		}
		return &domain.Page{Metadata: domain.PageMetadata{RateLimit: signal}}, nil
	}

	page := &domain.Page{Commits: make([]domain.CommitRecord, 0, len(commits))}
	for _, rc := range commits {
		if rc == nil {
			continue
		}
		page.Commits = append(page.Commits, toRecord(rc))
	}
	if resp != nil && resp.Response != nil {
		page.Metadata = feed.MetadataFromHeader(resp.Header)
	}
	return page, nil
}

// commitsPath builds the relative commit-list URL for a query.
func commitsPath(query domain.CommitQuery, page int) string {
	params := url.Values{}
	if query.Branch != "" {
		params.Set("sha", query.Branch)
	}
	if !query.Since.IsZero() {
		params.Set("since", query.Since.UTC().Format(time.RFC3339))
	}
	if query.PerPage > 0 {
		params.Set("per_page", strconv.Itoa(query.PerPage))
	}
	if page > 0 {
		params.Set("page", strconv.Itoa(page))
	}

	path := fmt.Sprintf("repos/%s/%s/commits", url.PathEscape(query.Owner), url.PathEscape(query.Repo))
	if len(params) == 0 {
		return path
	}
	return path + "?" + params.Encode()
}

func toRecord(rc *gh.RepositoryCommit) domain.CommitRecord {
	ref := rc.GetCommit().GetURL()
	if ref == "" {
		ref = rc.GetURL()
	}
	return domain.CommitRecord{
		SHA:     rc.GetSHA(),
		Message: rc.GetCommit().GetMessage(),
		URL:     ref,
		HTMLURL: rc.GetHTMLURL(),
	}
}

