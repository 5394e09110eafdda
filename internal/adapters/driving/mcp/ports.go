package mcp

import (
	"github.com/custodia-labs/hedwig/internal/core/domain"
	"github.com/custodia-labs/hedwig/internal/core/ports/driven"
	"github.com/custodia-labs/hedwig/internal/core/ports/driving"
)

// ProjectCatalog resolves project definitions by name.
type ProjectCatalog interface {
	Names() []string
	Lookup(name string) (domain.Project, error)
}

// Ports aggregates everything the MCP server needs.
type Ports struct {
	// Monitor runs the scans.
	Monitor driving.Monitor

	// Projects holds the repositories a client may scan.
	Projects ProjectCatalog

	// Keywords is the table every run starts from.
	Keywords *domain.KeywordTable

	// Credentials resolves upstream credentials per backend. Optional.
	Credentials driven.CredentialResolver

	// Runs keeps the reports of the session's runs. Optional.
	Runs driven.ReportStore
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Monitor == nil {
		return ErrMissingMonitorService
	}
	if p.Projects == nil {
		return ErrMissingProjects
	}
	if p.Keywords == nil {
		return ErrMissingKeywords
	}
	return nil
}
