package tui

import (
	"bytes"
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/hedwig/internal/core/domain"
	"github.com/custodia-labs/hedwig/internal/core/ports/driving"
)

// scriptedMonitor emits pages then returns report.
type scriptedMonitor struct {
	pages  []domain.PageEvent
	block  bool
	report *domain.RunReport
	err    error
}

func (m *scriptedMonitor) Run(ctx context.Context, req driving.MonitorRequest) (*domain.RunReport, error) {
	for _, ev := range m.pages {
		req.Observer(ev)
	}
	if m.block {
		<-ctx.Done()
		return m.report, domain.ErrInterrupted
	}
	return m.report, m.err
}

func headless(out *bytes.Buffer) []tea.ProgramOption {
	return []tea.ProgramOption{tea.WithInput(nil), tea.WithOutput(out)}
}

func TestRunMonitor(t *testing.T) {
	report := &domain.RunReport{ID: "run-1", State: domain.RunStateDone, Pages: 2}
	mon := &scriptedMonitor{pages: []domain.PageEvent{pageEvent(1), pageEvent(2)}, report: report}

	var seen []int
	req := testRequest()
	req.Observer = func(ev domain.PageEvent) { seen = append(seen, ev.Index) }

	var out bytes.Buffer
	got, err := RunMonitor(context.Background(), &Ports{Monitor: mon}, req, headless(&out)...)

	require.NoError(t, err)
	assert.Same(t, report, got)
	assert.Equal(t, []int{1, 2}, seen)
}

func TestRunMonitor_ParentCancelled(t *testing.T) {
	report := &domain.RunReport{ID: "run-2", State: domain.RunStateFailed, Pages: 1}
	mon := &scriptedMonitor{pages: []domain.PageEvent{pageEvent(1)}, block: true, report: report}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	got, err := RunMonitor(ctx, &Ports{Monitor: mon}, testRequest(), headless(&out)...)

	assert.ErrorIs(t, err, domain.ErrInterrupted)
	assert.Same(t, report, got)
}

func TestRunMonitor_MissingMonitor(t *testing.T) {
	_, err := RunMonitor(context.Background(), &Ports{}, testRequest())

	assert.ErrorIs(t, err, ErrMissingMonitorService)
}
