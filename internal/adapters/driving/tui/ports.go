// Package tui shows a live progress view while a monitoring run walks the
// commit feed. It is a driving adapter: it calls the Monitor port and feeds
// page events into a Bubbletea program.
package tui

import (
	"github.com/custodia-labs/hedwig/internal/core/ports/driving"
)

// Ports aggregates the driving ports the progress view needs.
type Ports struct {
	// Monitor runs the scan.
	Monitor driving.Monitor
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Monitor == nil {
		return ErrMissingMonitorService
	}
	return nil
}
