package gitea

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/hedwig/internal/connectors/feed"
	"github.com/custodia-labs/hedwig/internal/core/domain"
	"github.com/custodia-labs/hedwig/internal/core/ports/driven"
)

const (
	// apiPrefix is the REST API root under the server URL.
	apiPrefix = "/api/v1/"

	// maxBodySize caps a page body read into memory.
	maxBodySize = 32 << 20
)

// Verify interface compliance.
var _ driven.CommitFetcher = (*Client)(nil)

// Client fetches commit pages from a Gitea server.
type Client struct {
	http     *http.Client
	baseURL  *url.URL
	throttle *feed.Throttle
	retrier  feed.Retrier
}

// commit is the subset of a Gitea commit object the fetcher reads.
type commit struct {
	SHA     string `json:"sha"`
	URL     string `json:"url"`
	HTMLURL string `json:"html_url"`
	Commit  struct {
		Message string `json:"message"`
		URL     string `json:"url"`
	} `json:"commit"`
}

// NewClient creates a Gitea commit fetcher. An empty host targets gitea.com.
func NewClient(httpClient *http.Client, host string, opts driven.FetcherOptions) (*Client, error) {
	if host == "" {
		host = domain.BackendGitea.DefaultHost()
	}
	if !strings.Contains(host, "://") {
		host = "https://" + host
	}
	base, err := url.Parse(strings.TrimSuffix(host, "/") + apiPrefix)
	if err != nil {
		return nil, fmt.Errorf("%w: gitea host %q: %w", domain.ErrInvalidInput, host, err)
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		http:     httpClient,
		baseURL:  base,
		throttle: feed.NewThrottle(opts.RequestsPerSecond),
		retrier:  feed.Retrier{Retries: opts.Retries},
	}, nil
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// FetchPage fetches one page of commits.
func (c *Client) FetchPage(
	ctx context.Context, query domain.CommitQuery, req domain.PageRequest,
) (*domain.Page, error) {
	target := req.URL
	if target == "" {
		target = c.commitsURL(query, req.Page)
	}

	var (
		body   []byte
		header http.Header
	)
	err := c.retrier.Do(ctx, func() error {
		if err := c.throttle.Wait(ctx); err != nil {
			return err
		}
		var err error
		body, header, err = c.get(ctx, target)
		return err
	})
	if err != nil {
		return nil, err
	}

	var commits []commit
	signal, err := feed.DecodeCommitList(body, &commits)
	if err != nil {
		return nil, fmt.Errorf("list commits: %w", err)
	}
	if signal != nil {
		signal.ResetAt = c.throttle.ResetTime()
		return &domain.Page{Metadata: domain.PageMetadata{RateLimit: signal}}, nil
	}

	page := &domain.Page{
		Commits:  make([]domain.CommitRecord, 0, len(commits)),
		Metadata: feed.MetadataFromHeader(header),
	}
	for _, cm := range commits {
		ref := cm.Commit.URL
		if ref == "" {
			ref = cm.URL
		}
		page.Commits = append(page.Commits, domain.CommitRecord{
			SHA:     cm.SHA,
			Message: cm.Commit.Message,
			URL:     ref,
			HTMLURL: cm.HTMLURL,
		})
	}
	return page, nil
}

// get performs one request. Throttling responses are returned as a body for
// the payload detector; other non-2xx responses become *feed.APIError.
func (c *Client) get(ctx context.Context, target string) ([]byte, http.Header, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: build request: %w", domain.ErrInvalidInput, err)
	}
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return nil, nil, ctx.Err()
		}
		return nil, nil, feed.TransportError("list commits", err)
	}
	defer resp.Body.Close()

	c.throttle.UpdateFromResponse(resp)

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		if ctx.Err() != nil {
			return nil, nil, ctx.Err()
		}
		return nil, nil, feed.TransportError("read commits", err)
	}

	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		return body, resp.Header, nil
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return []byte(`{"message":"rate limit exceeded"}`), resp.Header, nil
	}
	if _, ok := feed.DetectRateLimit(body); ok {
		return body, resp.Header, nil
	}

	return nil, nil, fmt.Errorf("list commits: %w", &feed.APIError{
		StatusCode: resp.StatusCode,
		Message:    errorMessage(body, resp.Status),
		URL:        target,
	})
}

func errorMessage(body []byte, status string) string {
	var p feed.ErrorPayload
	if err := json.Unmarshal(body, &p); err == nil && p.Message != "" {
		return p.Message
	}
	return status
}

// commitsURL builds the absolute commit-list URL for a query.
func (c *Client) commitsURL(query domain.CommitQuery, page int) string {
	params := url.Values{}
	if query.Branch != "" {
		params.Set("sha", query.Branch)
	}
	if !query.Since.IsZero() {
		params.Set("since", query.Since.UTC().Format(time.RFC3339))
	}
	if query.PerPage > 0 {
		params.Set("limit", strconv.Itoa(query.PerPage))
	}
	if page > 0 {
		params.Set("page", strconv.Itoa(page))
	}

	u := c.baseURL.JoinPath("repos", query.Owner, query.Repo, "commits")
	u.RawQuery = params.Encode()
	return u.String()
}
