// Package github fetches commit pages from the GitHub REST API.
//
// Requests go through go-github so that authentication, GitHub Enterprise
// base URLs and error classification follow the library's conventions.
// Pages are requested as raw JSON and classified before decoding, since a
// throttled request may answer with an error object instead of a list.
//
// # Pagination
//
// In page mode the client builds
//
//	GET repos/{owner}/{repo}/commits?sha={branch}&since={date}&per_page={n}&page={i}
//
// for every page. In link mode the first request is built the same way and
// every later request is the "next" URL of the Link header, unchanged.
//
// # Rate Limiting
//
//   - go-github *RateLimitError and *AbuseRateLimitError responses, and
//     error objects whose message mentions a rate limit, are reported as a
//     [domain.RateLimitSignal] on the page.
//   - Optional proactive throttling paces requests and waits for the quota
//     reset once X-RateLimit-Remaining runs low.
//
// # Example Usage
//
//	client, err := github.NewClient(httpClient, "", driven.FetcherOptions{})
//	page, err := client.FetchPage(ctx, query, domain.PageRequest{Page: 1})
package github
