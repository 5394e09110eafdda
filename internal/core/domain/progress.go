package domain

// PageEvent reports one processed page.
type PageEvent struct {
	// Index is the 1-based number of the page within the run.
	Index int

	// Request is the target the page was fetched from.
	Request PageRequest

	// Commits is the number of commits on the page.
	Commits int

	// Matched is the number of commits with at least one accepted match.
	Matched int

	// Matches holds the events recorded from this page in match-list mode.
	Matches []MatchEvent

	// HasNext reports whether the page carried a continuation marker.
	HasNext bool

	// LastPage is the feed's advertised final page number, or 0 when unknown.
	LastPage int
}

// PageObserver receives page progress from a running engine.
type PageObserver func(PageEvent)
