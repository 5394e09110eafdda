package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const uriScheme = "hedwig://"

func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "keywords",
		Name:        "keywords",
		Description: "Keyword groups and patterns every scan matches against",
		MIMEType:    "application/json",
	}, s.handleKeywordsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "projects/{name}",
		Name:        "project",
		Description: "Definition of a configured project",
		MIMEType:    "application/json",
	}, s.handleProjectResource)

	if s.ports.Runs == nil {
		return
	}

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "runs",
		Name:        "runs",
		Description: "Runs started in this session, newest first",
		MIMEType:    "application/json",
	}, s.handleRunsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "runs/{id}",
		Name:        "run",
		Description: "Full report of one run",
		MIMEType:    "application/json",
	}, s.handleRunResource)
}

type keywordGroupInfo struct {
	Name     string   `json:"name"`
	Patterns []string `json:"patterns"`
}

func (s *Server) handleKeywordsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	groups := make([]keywordGroupInfo, len(s.ports.Keywords.Groups))
	for i, g := range s.ports.Keywords.Groups {
		groups[i].Name = g.Name
		for _, p := range g.Patterns {
			groups[i].Patterns = append(groups[i].Patterns, p.Expr)
		}
	}
	return jsonResource(req.Params.URI, groups)
}

func (s *Server) handleProjectResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	name := extractProjectName(req.Params.URI)
	if name == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	p, err := s.ports.Projects.Lookup(name)
	if err != nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	return jsonResource(req.Params.URI, toProjectOutput(p))
}

type runInfo struct {
	ID      string `json:"id"`
	Project string `json:"project"`
	State   string `json:"state"`
	Summary string `json:"summary"`
}

func (s *Server) handleRunsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	reports, err := s.ports.Runs.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	infos := make([]runInfo, len(reports))
	for i, r := range reports {
		infos[i] = runInfo{ID: r.ID, Project: r.Project, State: string(r.State)}
		if r.Result != nil {
			infos[i].Summary = r.Result.Summary()
		}
	}
	return jsonResource(req.Params.URI, infos)
}

func (s *Server) handleRunResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	id := extractRunID(req.Params.URI)
	if id == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	report, err := s.ports.Runs.Get(ctx, id)
	if err != nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	return jsonResource(req.Params.URI, report)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractProjectName extracts the name from a URI like hedwig://projects/{name}.
func extractProjectName(uri string) string {
	return lastSegment(uri, uriScheme+"projects/")
}

// extractRunID extracts the id from a URI like hedwig://runs/{id}.
func extractRunID(uri string) string {
	return lastSegment(uri, uriScheme+"runs/")
}

func lastSegment(uri, prefix string) string {
	if !strings.HasPrefix(uri, prefix) {
		return ""
	}
	rest := strings.TrimPrefix(uri, prefix)
	if strings.Contains(rest, "/") {
		return ""
	}
	return rest
}
