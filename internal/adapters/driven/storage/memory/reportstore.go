// Package memory holds in-process stores.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/hedwig/internal/core/domain"
	"github.com/custodia-labs/hedwig/internal/core/ports/driven"
)

// DefaultReportCapacity is the number of reports kept when none is given.
const DefaultReportCapacity = 50

// Ensure ReportStore implements the interface.
var _ driven.ReportStore = (*ReportStore)(nil)

// ReportStore is a bounded in-memory implementation of driven.ReportStore.
// When full, saving a new report evicts the oldest one.
type ReportStore struct {
	mu       sync.RWMutex
	capacity int
	order    []string
	reports  map[string]*domain.RunReport
}

// NewReportStore creates a store holding at most capacity reports.
func NewReportStore(capacity int) *ReportStore {
	if capacity <= 0 {
		capacity = DefaultReportCapacity
	}
	return &ReportStore{
		capacity: capacity,
		reports:  make(map[string]*domain.RunReport),
	}
}

// Save stores or replaces a report.
func (s *ReportStore) Save(_ context.Context, report *domain.RunReport) error {
	if report == nil || report.ID == "" {
		return fmt.Errorf("%w: report without id", domain.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.reports[report.ID]; ok {
		s.remove(report.ID)
	}
	s.reports[report.ID] = report
	s.order = append(s.order, report.ID)

	for len(s.order) > s.capacity {
		delete(s.reports, s.order[0])
		s.order = s.order[1:]
	}
	return nil
}

// Get retrieves a report by run ID.
func (s *ReportStore) Get(_ context.Context, id string) (*domain.RunReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	report, ok := s.reports[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return report, nil
}

// List returns the stored reports, newest first.
func (s *ReportStore) List(_ context.Context) ([]*domain.RunReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*domain.RunReport, 0, len(s.order))
	for i := len(s.order) - 1; i >= 0; i-- {
		out = append(out, s.reports[s.order[i]])
	}
	return out, nil
}

func (s *ReportStore) remove(id string) {
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			return
		}
	}
}
