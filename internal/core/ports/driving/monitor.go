package driving

import (
	"context"

	"github.com/custodia-labs/hedwig/internal/core/domain"
)

// MonitorRequest describes one monitoring run.
type MonitorRequest struct {
	Project       domain.Project
	Keywords      *domain.KeywordTable
	Credentials   domain.Credentials
	Mode          domain.AggregationMode
	CaseSensitive bool

	// Throttle enables proactive request throttling when > 0 (requests per second).
	Throttle float64

	// Retries is the number of extra attempts after a transport failure.
	Retries int

	// Observer receives per-page progress. May be nil.
	Observer domain.PageObserver
}

// Monitor runs keyword surveillance over a project's commit history.
type Monitor interface {
	// Run executes one monitoring run to completion or failure.
	// The returned report is non-nil whenever the run started, including
	// failed and interrupted runs; err then describes the failure.
	Run(ctx context.Context, req MonitorRequest) (*domain.RunReport, error)
}
