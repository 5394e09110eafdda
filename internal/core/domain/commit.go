package domain

import "time"

// CommitRecord is one commit from the upstream feed. Immutable once fetched.
type CommitRecord struct {
	SHA     string `json:"sha"`
	Message string `json:"message"`

	// URL is the stable API reference of the commit.
	URL string `json:"url"`

	// HTMLURL is the browser link, when the backend provides one.
	HTMLURL string `json:"html_url,omitempty"`
}

// MatchEvent records a pattern accepted in a commit message.
type MatchEvent struct {
	Group   string       `json:"group"`
	Pattern string       `json:"pattern"`
	Commit  CommitRecord `json:"commit"`
}

// CommitQuery is the fixed part of every page request.
type CommitQuery struct {
	Owner  string
	Repo   string
	Branch string

	// Since is the earliest commit timestamp of interest. Zero means no cutoff.
	Since time.Time

	// PerPage is the requested page size; backends apply their own default when zero.
	PerPage int
}

// FullName returns owner/repo.
func (q CommitQuery) FullName() string {
	return q.Owner + "/" + q.Repo
}

// PageRequest is the cursor's next target.
// In link mode URL is the exact next request; in page mode Page is the page index.
type PageRequest struct {
	URL  string
	Page int
}

// RateLimitSignal is an upstream throttling indication found on a page.
type RateLimitSignal struct {
	Message string
	ResetAt time.Time
}

// PageMetadata carries continuation and throttling information for a page.
type PageMetadata struct {
	// NextLink is the "next" relation from the Link header, or empty.
	NextLink string

	// LastPage is the page number of the "last" relation, or 0 when unknown.
	LastPage int

	// RateLimit is set when the page carried a throttling payload instead of commits.
	RateLimit *RateLimitSignal
}

// HasNext reports whether a continuation marker was present.
func (m PageMetadata) HasNext() bool {
	return m.NextLink != ""
}

// RateLimited reports whether the page signalled throttling.
func (m PageMetadata) RateLimited() bool {
	return m.RateLimit != nil
}

// Page is one decoded page of the commit feed.
type Page struct {
	Commits  []CommitRecord
	Metadata PageMetadata
}
