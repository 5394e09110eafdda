package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/hedwig/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/hedwig/internal/core/domain"
	"github.com/custodia-labs/hedwig/internal/core/ports/driving"
)

// RunMonitor runs req through the monitor while a progress view renders.
// It returns what the monitor returned; pressing the cancel key interrupts
// the run and the partial report is returned with the interruption error.
func RunMonitor(
	ctx context.Context,
	ports *Ports,
	req driving.MonitorRequest,
	opts ...tea.ProgramOption,
) (*domain.RunReport, error) {
	if err := ports.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	app := NewApp(req, cancel)
	program := tea.NewProgram(app, opts...)

	observer := req.Observer
	req.Observer = func(ev domain.PageEvent) {
		if observer != nil {
			observer(ev)
		}
		program.Send(messages.PageFetched{Event: ev})
	}

	var (
		report *domain.RunReport
		runErr error
	)
	done := make(chan struct{})
	go func() {
		defer close(done)
		report, runErr = ports.Monitor.Run(ctx, req)
		program.Send(messages.RunFinished{Report: report, Err: runErr})
	}()

	_, viewErr := program.Run()
	cancel()
	<-done

	if viewErr != nil && !errors.Is(viewErr, tea.ErrInterrupted) {
		return report, fmt.Errorf("progress view: %w", viewErr)
	}
	return report, runErr
}
