package domain

import (
	"fmt"
	"strings"
	"time"
)

// DefaultSinceDays is the look-back window used when a project sets none.
const DefaultSinceDays = 30

// Project describes one monitored repository.
type Project struct {
	// Name is the key the project is selected by.
	Name string

	// Backend selects the repository system.
	Backend Backend

	// Host is the API host; empty selects the backend's public host.
	Host string

	Owner  string
	Repo   string
	Branch string

	// SinceDays is the look-back window in days from the run date.
	SinceDays int

	// Pagination selects how pages are walked.
	Pagination PaginationMode

	// PerPage is the requested page size.
	PerPage int
}

// Validate checks the project has the coordinates a run needs.
func (p Project) Validate() error {
	var missing []string
	if p.Owner == "" {
		missing = append(missing, "owner")
	}
	if p.Repo == "" {
		missing = append(missing, "repo")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: project %q missing %s", ErrInvalidInput, p.Name, strings.Join(missing, ", "))
	}
	if p.SinceDays < 0 {
		return fmt.Errorf("%w: project %q has negative since_days", ErrInvalidInput, p.Name)
	}
	if _, err := ParseBackend(string(p.Backend)); err != nil {
		return err
	}
	return nil
}

// EffectiveHost returns Host or the backend's default host.
func (p Project) EffectiveHost() string {
	if p.Host != "" {
		return p.Host
	}
	return p.Backend.DefaultHost()
}

// SinceDate returns the cutoff timestamp: midnight UTC, SinceDays before now.
func (p Project) SinceDate(now time.Time) time.Time {
	days := p.SinceDays
	if days == 0 {
		days = DefaultSinceDays
	}
	y, m, d := now.UTC().AddDate(0, 0, -days).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Query builds the fixed commit query for a run starting at now.
func (p Project) Query(now time.Time) CommitQuery {
	return CommitQuery{
		Owner:   p.Owner,
		Repo:    p.Repo,
		Branch:  p.Branch,
		Since:   p.SinceDate(now),
		PerPage: p.PerPage,
	}
}
