package file

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/hedwig/internal/core/domain"
)

// DefaultProjectsFile is the repository definitions file read when none is given.
const DefaultProjectsFile = "repositories.toml"

// projectsFile is the TOML layout:
//
//	[projects.firefox]
//	backend = "github"
//	owner = "mozilla"
//	repo = "gecko-dev"
//	branch = "master"
//	since_days = 30
type projectsFile struct {
	Projects map[string]projectEntry `toml:"projects"`
}

type projectEntry struct {
	Backend    string `toml:"backend"`
	Host       string `toml:"host"`
	Owner      string `toml:"owner"`
	Repo       string `toml:"repo"`
	Branch     string `toml:"branch"`
	SinceDays  int    `toml:"since_days"`
	Pagination string `toml:"pagination"`
	PerPage    int    `toml:"per_page"`
}

// legacyEntry is one project of a repositories.json file:
// {"firefox": {"type": "github", "user": "mozilla", "repo": "gecko-dev", "branch": "master", "since": 30}}.
type legacyEntry struct {
	Type   string `json:"type"`
	User   string `json:"user"`
	Repo   string `json:"repo"`
	Branch string `json:"branch"`
	Since  int    `json:"since"`
	Host   string `json:"host"`
}

// Projects is a set of repository definitions keyed by project name.
type Projects map[string]domain.Project

// Names returns the project names in sorted order.
func (p Projects) Names() []string {
	names := make([]string, 0, len(p))
	for name := range p {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the named project.
func (p Projects) Lookup(name string) (domain.Project, error) {
	project, ok := p[name]
	if !ok {
		return domain.Project{}, fmt.Errorf("%w: project %q is not defined (known: %s)",
			domain.ErrInvalidInput, name, strings.Join(p.Names(), ", "))
	}
	return project, nil
}

// LoadProjects reads repository definitions. Files ending in .json use the
// legacy layout; anything else is parsed as TOML.
func LoadProjects(path string) (Projects, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read projects: %w", err)
	}

	if strings.EqualFold(filepath.Ext(path), ".json") {
		return ParseLegacyProjects(data)
	}
	return ParseProjects(data)
}

// ParseProjects parses the TOML layout.
func ParseProjects(data []byte) (Projects, error) {
	var f projectsFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: parse projects: %w", domain.ErrInvalidInput, err)
	}

	projects := make(Projects, len(f.Projects))
	for name, e := range f.Projects {
		project, err := buildProject(name, e)
		if err != nil {
			return nil, err
		}
		projects[name] = project
	}
	return projects, nil
}

// ParseLegacyProjects parses the repositories.json layout.
func ParseLegacyProjects(data []byte) (Projects, error) {
	var entries map[string]legacyEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("%w: parse projects: %w", domain.ErrInvalidInput, err)
	}

	projects := make(Projects, len(entries))
	for name, e := range entries {
		project, err := buildProject(name, projectEntry{
			Backend:   e.Type,
			Host:      e.Host,
			Owner:     e.User,
			Repo:      e.Repo,
			Branch:    e.Branch,
			SinceDays: e.Since,
		})
		if err != nil {
			return nil, err
		}
		projects[name] = project
	}
	return projects, nil
}

func buildProject(name string, e projectEntry) (domain.Project, error) {
	backend := e.Backend
	if backend == "" {
		backend = string(domain.BackendGitHub)
	}
	b, err := domain.ParseBackend(backend)
	if err != nil {
		return domain.Project{}, fmt.Errorf("project %q: %w", name, err)
	}
	pagination, err := domain.ParsePaginationMode(e.Pagination)
	if err != nil {
		return domain.Project{}, fmt.Errorf("project %q: %w", name, err)
	}

	project := domain.Project{
		Name:       name,
		Backend:    b,
		Host:       e.Host,
		Owner:      e.Owner,
		Repo:       e.Repo,
		Branch:     e.Branch,
		SinceDays:  e.SinceDays,
		Pagination: pagination,
		PerPage:    e.PerPage,
	}
	if err := project.Validate(); err != nil {
		return domain.Project{}, err
	}
	return project, nil
}
