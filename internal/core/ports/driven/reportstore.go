package driven

import (
	"context"

	"github.com/custodia-labs/hedwig/internal/core/domain"
)

// ReportStore keeps the reports of recent runs for the lifetime of a process.
type ReportStore interface {
	// Save stores a report under its ID.
	Save(ctx context.Context, report *domain.RunReport) error

	// Get retrieves a report by run ID.
	Get(ctx context.Context, id string) (*domain.RunReport, error)

	// List returns the stored reports, newest first.
	List(ctx context.Context) ([]*domain.RunReport, error)
}
