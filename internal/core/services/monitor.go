package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/hedwig/internal/core/domain"
	"github.com/custodia-labs/hedwig/internal/core/ports/driven"
	"github.com/custodia-labs/hedwig/internal/core/ports/driving"
)

// Ensure MonitorService implements the interface.
var _ driving.Monitor = (*MonitorService)(nil)

// MonitorService builds a fetcher and an engine per request and runs it.
type MonitorService struct {
	factory driven.FetcherFactory
	now     func() time.Time
}

// NewMonitorService creates a monitor service backed by a fetcher factory.
func NewMonitorService(factory driven.FetcherFactory) *MonitorService {
	return &MonitorService{
		factory: factory,
		now:     time.Now,
	}
}

// Run executes one monitoring run.
func (s *MonitorService) Run(ctx context.Context, req driving.MonitorRequest) (*domain.RunReport, error) {
	if s.factory == nil {
		return nil, fmt.Errorf("create fetcher: fetcher factory not configured")
	}
	if err := req.Project.Validate(); err != nil {
		return nil, err
	}
	if err := req.Credentials.Validate(); err != nil {
		return nil, err
	}

	fetcher, err := s.factory.NewFetcher(ctx, req.Project, req.Credentials, driven.FetcherOptions{
		RequestsPerSecond: req.Throttle,
		Retries:           req.Retries,
	})
	if err != nil {
		return nil, fmt.Errorf("create fetcher: %w", err)
	}

	started := s.now()
	query := req.Project.Query(started)

	engine, err := NewEngine(fetcher, query, req.Keywords,
		WithAggregationMode(req.Mode),
		WithPaginationMode(req.Project.Pagination),
		WithCaseSensitive(req.CaseSensitive),
		WithPageObserver(req.Observer),
	)
	if err != nil {
		return nil, err
	}

	runErr := engine.Run(ctx)

	stats := engine.Stats()
	report := &domain.RunReport{
		ID:         uuid.NewString(),
		Project:    req.Project.Name,
		Backend:    req.Project.Backend,
		Repository: query.FullName(),
		Branch:     query.Branch,
		Since:      query.Since,
		StartedAt:  started,
		FinishedAt: s.now(),
		State:      engine.State(),
		Pages:      stats.Pages,
		Commits:    stats.Commits,
		Result:     engine.Result(),
	}
	if runErr != nil {
		report.Reason = runErr.Error()
		report.Failure = domain.ClassifyFailure(runErr)
	}
	return report, runErr
}
