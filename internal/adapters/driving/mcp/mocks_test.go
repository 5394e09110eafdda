package mcp

import (
	"context"
	"fmt"
	"sort"

	"github.com/custodia-labs/hedwig/internal/core/domain"
	"github.com/custodia-labs/hedwig/internal/core/ports/driving"
)

// mockMonitor is a mock implementation of driving.Monitor.
type mockMonitor struct {
	report *domain.RunReport
	err    error
	got    driving.MonitorRequest
	calls  int
}

func (m *mockMonitor) Run(_ context.Context, req driving.MonitorRequest) (*domain.RunReport, error) {
	m.calls++
	m.got = req
	return m.report, m.err
}

// mockCatalog is an in-memory ProjectCatalog.
type mockCatalog map[string]domain.Project

func (c mockCatalog) Names() []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (c mockCatalog) Lookup(name string) (domain.Project, error) {
	p, ok := c[name]
	if !ok {
		return domain.Project{}, fmt.Errorf("%w: unknown project %q", domain.ErrInvalidInput, name)
	}
	return p, nil
}

// mockResolver always answers with creds.
type mockResolver struct {
	creds   domain.Credentials
	backend domain.Backend
}

func (m *mockResolver) Resolve(backend domain.Backend, _ domain.Credentials) domain.Credentials {
	m.backend = backend
	return m.creds
}

func testCatalog() mockCatalog {
	return mockCatalog{
		"wine": {
			Name:       "wine",
			Backend:    domain.BackendGitHub,
			Owner:      "wine-mirror",
			Repo:       "wine",
			Branch:     "master",
			SinceDays:  7,
			Pagination: domain.PaginationPage,
		},
		"forgejo": {
			Name:    "forgejo",
			Backend: domain.BackendGitea,
			Host:    "codeberg.org",
			Owner:   "forgejo",
			Repo:    "forgejo",
		},
	}
}

func testKeywords() *domain.KeywordTable {
	t, err := domain.NewKeywordTable(
		domain.NewKeywordGroup("PNG", "PNG"),
		domain.NewKeywordGroup("JPG", "JPG|JPEG"),
	)
	if err != nil {
		panic(err)
	}
	return t
}

func testPorts(m *mockMonitor) *Ports {
	return &Ports{Monitor: m, Projects: testCatalog(), Keywords: testKeywords()}
}
