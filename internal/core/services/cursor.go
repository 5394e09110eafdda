package services

import "github.com/custodia-labs/hedwig/internal/core/domain"

// Cursor decides which page to request next.
type Cursor interface {
	// Target returns the request for the current page.
	Target() domain.PageRequest

	// Advance consumes a page's metadata and reports whether another page follows.
	Advance(meta domain.PageMetadata) bool
}

// NewCursor returns the cursor for a pagination mode.
func NewCursor(mode domain.PaginationMode) Cursor {
	if mode == domain.PaginationLink {
		return &LinkCursor{}
	}
	return NewPageCursor()
}

// LinkCursor follows the "next" link verbatim. The first request uses the
// backend's base query; every later request is the exact returned URL.
type LinkCursor struct {
	target domain.PageRequest
}

// Target returns the current request.
func (c *LinkCursor) Target() domain.PageRequest {
	return c.target
}

// Advance replaces the target with the next link, if any.
func (c *LinkCursor) Advance(meta domain.PageMetadata) bool {
	if !meta.HasNext() {
		return false
	}
	c.target = domain.PageRequest{URL: meta.NextLink}
	return true
}

// PageCursor recomputes the page index itself and treats the next link only
// as a continue/stop signal. Some backends return next links that point at a
// different query than the one issued.
type PageCursor struct {
	page int
}

// NewPageCursor starts at page 1.
func NewPageCursor() *PageCursor {
	return &PageCursor{page: 1}
}

// Target returns the current page index.
func (c *PageCursor) Target() domain.PageRequest {
	return domain.PageRequest{Page: c.page}
}

// Advance moves to the following page while a continuation marker is present.
func (c *PageCursor) Advance(meta domain.PageMetadata) bool {
	if !meta.HasNext() {
		return false
	}
	c.page++
	return true
}
