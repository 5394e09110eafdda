package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/hedwig/internal/core/domain"
	"github.com/custodia-labs/hedwig/internal/core/ports/driven"
)

// ErrEngineFinished is returned when Run is called on an engine that already ran.
var ErrEngineFinished = errors.New("engine: run already finished")

// RunStats counts what a run has processed so far.
type RunStats struct {
	Pages   int
	Commits int
	Matched int
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithAggregationMode selects group-count (default) or match-list aggregation.
// An empty mode keeps the default.
func WithAggregationMode(mode domain.AggregationMode) EngineOption {
	return func(e *Engine) {
		if mode != "" {
			e.mode = mode
		}
	}
}

// WithPaginationMode selects page-index (default) or link-following pagination.
func WithPaginationMode(mode domain.PaginationMode) EngineOption {
	return func(e *Engine) {
		e.cursor = NewCursor(mode)
	}
}

// WithCaseSensitive disables case-insensitive matching.
func WithCaseSensitive(caseSensitive bool) EngineOption {
	return func(e *Engine) {
		e.caseSensitive = caseSensitive
	}
}

// WithPageObserver registers a callback invoked after each scanned page.
func WithPageObserver(fn domain.PageObserver) EngineOption {
	return func(e *Engine) {
		e.observer = fn
	}
}

// Engine walks a commit feed page by page, matches every commit message
// against a keyword table and aggregates the results.
//
// An Engine is single-use and not safe for concurrent use: each page's
// cursor depends on the previous page, so pages are fetched strictly in order.
// The engine owns a private copy of the keyword table; results remain
// readable after the run, whether it finished or failed.
type Engine struct {
	fetcher       driven.CommitFetcher
	query         domain.CommitQuery
	table         *domain.KeywordTable
	matcher       *Matcher
	cursor        Cursor
	mode          domain.AggregationMode
	caseSensitive bool
	observer      domain.PageObserver

	state   domain.RunState
	err     error
	started bool
	stats   RunStats
	matches []domain.MatchEvent
}

// NewEngine creates an engine for one run over query.
// The table is cloned; the caller's counters are never modified.
func NewEngine(
	fetcher driven.CommitFetcher,
	query domain.CommitQuery,
	table *domain.KeywordTable,
	opts ...EngineOption,
) (*Engine, error) {
	if fetcher == nil {
		return nil, fmt.Errorf("%w: nil commit fetcher", domain.ErrInvalidInput)
	}

	e := &Engine{
		fetcher: fetcher,
		query:   query,
		table:   table.Clone(),
		cursor:  NewPageCursor(),
		mode:    domain.AggregationGroupCount,
		state:   domain.RunStateRunning,
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.mode != domain.AggregationGroupCount && e.mode != domain.AggregationMatchList {
		return nil, fmt.Errorf("%w: aggregation mode %q", domain.ErrInvalidInput, e.mode)
	}

	matcher, err := NewMatcher(e.table, e.caseSensitive)
	if err != nil {
		return nil, err
	}
	e.matcher = matcher
	return e, nil
}

// Run fetches, matches and aggregates until the cursor is exhausted (DONE)
// or a fatal condition occurs (FAILED). Cancelling ctx ends the run as
// FAILED with domain.ErrInterrupted; results gathered so far are kept.
func (e *Engine) Run(ctx context.Context) error {
	if e.started {
		return ErrEngineFinished
	}
	e.started = true

	for {
		if err := ctx.Err(); err != nil {
			return e.fail(fmt.Errorf("%w: %w", domain.ErrInterrupted, err))
		}

		req := e.cursor.Target()
		page, err := e.fetcher.FetchPage(ctx, e.query, req)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return e.fail(fmt.Errorf("%w: %w", domain.ErrInterrupted, ctxErr))
			}
			return e.fail(fmt.Errorf("page %d: %w", e.stats.Pages+1, err))
		}

		if rl := page.Metadata.RateLimit; rl != nil {
			return e.fail(&domain.RateLimitError{Message: rl.Message, ResetAt: rl.ResetAt})
		}

		event := e.scan(page.Commits)
		e.stats.Pages++
		event.Index = e.stats.Pages
		event.Request = req
		event.HasNext = page.Metadata.HasNext()
		event.LastPage = page.Metadata.LastPage
		if e.observer != nil {
			e.observer(event)
		}

		if !e.cursor.Advance(page.Metadata) {
			e.state = domain.RunStateDone
			return nil
		}
	}
}

// scan runs the matcher over every commit of a page.
func (e *Engine) scan(commits []domain.CommitRecord) domain.PageEvent {
	event := domain.PageEvent{Commits: len(commits)}

	for _, c := range commits {
		e.stats.Commits++

		switch e.mode {
		case domain.AggregationMatchList:
			hit, ok := e.matcher.MatchFirst(c.Message)
			if !ok {
				continue
			}
			g := e.table.Groups[hit.Group]
			m := domain.MatchEvent{Group: g.Name, Pattern: g.Patterns[hit.Pattern].Expr, Commit: c}
			e.matches = append(e.matches, m)
			event.Matches = append(event.Matches, m)
			event.Matched++

		default:
			hits := e.matcher.MatchAll(c.Message)
			if len(hits) == 0 {
				continue
			}
			for _, h := range hits {
				e.table.Increment(h.Group, h.Pattern)
			}
			event.Matched++
		}
	}

	e.stats.Matched += event.Matched
	return event
}

func (e *Engine) fail(err error) error {
	e.state = domain.RunStateFailed
	e.err = err
	return err
}

// State returns the current lifecycle state.
func (e *Engine) State() domain.RunState {
	return e.state
}

// Err returns the reason the run failed, or nil.
func (e *Engine) Err() error {
	return e.err
}

// Stats returns page and commit counters.
func (e *Engine) Stats() RunStats {
	return e.stats
}

// Result returns the aggregated result so far.
func (e *Engine) Result() *domain.AggregateResult {
	if e.mode == domain.AggregationMatchList {
		return &domain.AggregateResult{
			Mode:    domain.AggregationMatchList,
			Matches: append([]domain.MatchEvent(nil), e.matches...),
		}
	}
	return domain.NewCountResult(e.table)
}
