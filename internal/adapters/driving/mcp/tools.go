package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/hedwig/internal/core/domain"
	"github.com/custodia-labs/hedwig/internal/core/ports/driving"
	"github.com/custodia-labs/hedwig/internal/logger"
)

// MonitorInput is the input schema for the monitor tool.
type MonitorInput struct {
	Project       string `json:"project" jsonschema:"name of the project to scan"`
	Mode          string `json:"mode,omitempty" jsonschema:"aggregation mode: group-count (default) or match-list"`
	Pagination    string `json:"pagination,omitempty" jsonschema:"pagination mode: page or link (default from the project)"`
	SinceDays     int    `json:"since_days,omitempty" jsonschema:"look-back window in days (default from the project)"`
	CaseSensitive bool   `json:"case_sensitive,omitempty" jsonschema:"match keywords case-sensitively"`
}

// MonitorOutput is the output schema for the monitor tool.
type MonitorOutput struct {
	ID         string        `json:"id"`
	Project    string        `json:"project"`
	Repository string        `json:"repository"`
	State      string        `json:"state"`
	Reason     string        `json:"reason,omitempty"`
	Failure    string        `json:"failure,omitempty"`
	Pages      int           `json:"pages"`
	Commits    int           `json:"commits"`
	Summary    string        `json:"summary"`
	Groups     []GroupOutput `json:"groups,omitempty"`
	Matches    []MatchOutput `json:"matches,omitempty"`
}

// GroupOutput is one ranked keyword group.
type GroupOutput struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// MatchOutput is one commit recorded in match-list mode.
type MatchOutput struct {
	Group   string `json:"group"`
	Pattern string `json:"pattern"`
	SHA     string `json:"sha"`
	Message string `json:"message"`
	URL     string `json:"url"`
}

// ListProjectsInput is the (empty) input schema for the list_projects tool.
type ListProjectsInput struct{}

// ListProjectsOutput is the output schema for the list_projects tool.
type ListProjectsOutput struct {
	Projects []ProjectOutput `json:"projects"`
}

// ProjectOutput describes one configured project.
type ProjectOutput struct {
	Name       string `json:"name"`
	Backend    string `json:"backend"`
	Host       string `json:"host"`
	Repository string `json:"repository"`
	Branch     string `json:"branch,omitempty"`
	SinceDays  int    `json:"since_days,omitempty"`
}

func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "monitor",
		Description: "Scan a project's recent commits and count keyword group mentions",
	}, s.handleMonitor)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_projects",
		Description: "List the projects that can be scanned",
	}, s.handleListProjects)
}

// handleMonitor runs one scan. A failed or interrupted run is not a tool
// error: the partial report comes back with state "failed" and a reason.
func (s *Server) handleMonitor(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input MonitorInput,
) (*mcp.CallToolResult, MonitorOutput, error) {
	req, err := s.monitorRequest(input)
	if err != nil {
		return nil, MonitorOutput{}, err
	}

	report, err := s.ports.Monitor.Run(ctx, req)
	if report == nil {
		if err == nil {
			err = errors.New("monitor returned no report")
		}
		return nil, MonitorOutput{}, err
	}

	if s.ports.Runs != nil {
		if err := s.ports.Runs.Save(ctx, report); err != nil {
			logger.Warn("keep report %s: %v", report.ID, err)
		}
	}

	return nil, toMonitorOutput(report), nil
}

func (s *Server) monitorRequest(input MonitorInput) (driving.MonitorRequest, error) {
	if input.Project == "" {
		return driving.MonitorRequest{}, fmt.Errorf("%w: project is required", domain.ErrInvalidInput)
	}
	project, err := s.ports.Projects.Lookup(input.Project)
	if err != nil {
		return driving.MonitorRequest{}, err
	}

	if input.Pagination != "" {
		pm, err := domain.ParsePaginationMode(input.Pagination)
		if err != nil {
			return driving.MonitorRequest{}, err
		}
		project.Pagination = pm
	}
	if input.SinceDays < 0 {
		return driving.MonitorRequest{}, fmt.Errorf("%w: since_days must not be negative", domain.ErrInvalidInput)
	}
	if input.SinceDays > 0 {
		project.SinceDays = input.SinceDays
	}

	mode, err := domain.ParseAggregationMode(input.Mode)
	if err != nil {
		return driving.MonitorRequest{}, err
	}

	creds := domain.Credentials{Method: domain.AuthMethodNone}
	if s.ports.Credentials != nil {
		creds = s.ports.Credentials.Resolve(project.Backend, creds)
	}

	return driving.MonitorRequest{
		Project:       project,
		Keywords:      s.ports.Keywords,
		Credentials:   creds,
		Mode:          mode,
		CaseSensitive: input.CaseSensitive,
	}, nil
}

func toMonitorOutput(report *domain.RunReport) MonitorOutput {
	out := MonitorOutput{
		ID:         report.ID,
		Project:    report.Project,
		Repository: report.Repository,
		State:      string(report.State),
		Reason:     report.Reason,
		Failure:    string(report.Failure),
		Pages:      report.Pages,
		Commits:    report.Commits,
	}
	if report.Result == nil {
		return out
	}

	out.Summary = report.Result.Summary()
	for _, g := range report.Result.Ranked() {
		out.Groups = append(out.Groups, GroupOutput{Name: g.Name, Count: g.Count})
	}
	for _, m := range report.Result.Matches {
		out.Matches = append(out.Matches, MatchOutput{
			Group:   m.Group,
			Pattern: m.Pattern,
			SHA:     m.Commit.SHA,
			Message: m.Commit.Message,
			URL:     m.Commit.URL,
		})
	}
	return out
}

func (s *Server) handleListProjects(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ ListProjectsInput,
) (*mcp.CallToolResult, ListProjectsOutput, error) {
	out := ListProjectsOutput{Projects: []ProjectOutput{}}
	for _, name := range s.ports.Projects.Names() {
		p, err := s.ports.Projects.Lookup(name)
		if err != nil {
			return nil, ListProjectsOutput{}, err
		}
		out.Projects = append(out.Projects, toProjectOutput(p))
	}
	return nil, out, nil
}

func toProjectOutput(p domain.Project) ProjectOutput {
	return ProjectOutput{
		Name:       p.Name,
		Backend:    string(p.Backend),
		Host:       p.EffectiveHost(),
		Repository: p.Owner + "/" + p.Repo,
		Branch:     p.Branch,
		SinceDays:  p.SinceDays,
	}
}
