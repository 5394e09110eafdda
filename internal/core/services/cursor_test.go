package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/hedwig/internal/core/domain"
)

func TestLinkCursor(t *testing.T) {
	c := NewCursor(domain.PaginationLink)

	assert.Equal(t, domain.PageRequest{}, c.Target())

	next := "https://api.github.com/repositories/1/commits?page=2&per_page=100&sha=main"
	assert.True(t, c.Advance(domain.PageMetadata{NextLink: next}))
	assert.Equal(t, domain.PageRequest{URL: next}, c.Target())

	assert.False(t, c.Advance(domain.PageMetadata{}))
	// target is kept when iteration ends
	assert.Equal(t, next, c.Target().URL)
}

func TestPageCursor(t *testing.T) {
	c := NewCursor(domain.PaginationPage)

	assert.Equal(t, domain.PageRequest{Page: 1}, c.Target())

	// the returned link is only a signal; its value is ignored
	assert.True(t, c.Advance(domain.PageMetadata{NextLink: "https://elsewhere/?page=99"}))
	assert.Equal(t, domain.PageRequest{Page: 2}, c.Target())

	assert.True(t, c.Advance(domain.PageMetadata{NextLink: "x"}))
	assert.Equal(t, 3, c.Target().Page)

	assert.False(t, c.Advance(domain.PageMetadata{}))
	assert.Equal(t, 3, c.Target().Page)
}
