package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/hedwig/internal/adapters/driven/config/file"
	"github.com/custodia-labs/hedwig/internal/adapters/driving/tui"
	"github.com/custodia-labs/hedwig/internal/core/domain"
	"github.com/custodia-labs/hedwig/internal/core/ports/driving"
	"github.com/custodia-labs/hedwig/internal/logger"
	"github.com/custodia-labs/hedwig/internal/metrics"
)

var (
	monitorRepositories  string
	monitorKeywords      string
	monitorMode          string
	monitorPagination    string
	monitorCaseSensitive bool
	monitorSinceDays     int
	monitorFormat        string
	monitorMetricsFile   string
	monitorThrottle      float64
	monitorRetries       int
	monitorToken         string
	monitorUsername      string
	monitorPassword      string
	progressFlag         bool
)

var monitorCmd = &cobra.Command{
	Use:   "monitor <project>",
	Short: "Scan a project's recent commits for keywords",
	Long: `Walks the commit history of a project defined in the repositories file,
page by page, and reports how many commits mention each keyword group.

The run stops at the last page, on upstream rate limiting, or on Ctrl-C.
Partial results are always printed; an incomplete run exits non-zero.`,
	Args: cobra.ExactArgs(1),
	RunE: runMonitor,
}

func init() {
	f := monitorCmd.Flags()
	f.StringVarP(&monitorRepositories, "repositories", "r", file.DefaultProjectsFile, "repository definitions (.toml or .json)")
	f.StringVarP(&monitorKeywords, "keywords", "k", "", "keyword table (.toml or .json); built-in table when empty")
	f.StringVarP(&monitorMode, "mode", "m", string(domain.AggregationGroupCount), "aggregation: group-count or match-list")
	f.StringVar(&monitorPagination, "pagination", "", "pagination: page or link (overrides the project)")
	f.BoolVar(&monitorCaseSensitive, "case-sensitive", false, "match keywords case-sensitively")
	f.IntVar(&monitorSinceDays, "since-days", 0, "look-back window in days (overrides the project)")
	f.StringVarP(&monitorFormat, "format", "o", formatSummary, "output: summary, table or json")
	f.StringVar(&monitorMetricsFile, "metrics-file", "", "write Prometheus textfile metrics to this path")
	f.Float64Var(&monitorThrottle, "throttle", 0, "max requests per second (0 disables)")
	f.IntVar(&monitorRetries, "retries", 0, "extra attempts after a transport failure")
	f.StringVar(&monitorToken, "token", "", "API token (default $HEDWIG_TOKEN)")
	f.StringVar(&monitorUsername, "username", "", "basic auth username")
	f.StringVar(&monitorPassword, "password", "", "basic auth password")
	f.BoolVar(&progressFlag, "progress", false, "show a live progress view on stderr (terminal only)")
	rootCmd.AddCommand(monitorCmd)
}

func runMonitor(cmd *cobra.Command, args []string) error {
	if monitorService == nil {
		return errors.New("monitor service not configured")
	}
	if err := validateFormat(monitorFormat); err != nil {
		return err
	}

	req, err := buildMonitorRequest(args[0])
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Section("Monitor " + req.Project.Name)
	logger.Info("repository %s/%s branch %q via %s (%s pagination, %s)",
		req.Project.Owner, req.Project.Repo, req.Project.Branch,
		req.Project.Backend, req.Project.Pagination, req.Credentials)

	report, runErr := runWithProgress(ctx, cmd, req)
	if report == nil {
		return withHint(runErr)
	}

	if err := renderReport(cmd.OutOrStdout(), report, monitorFormat); err != nil {
		return fmt.Errorf("render report: %w", err)
	}

	if monitorMetricsFile != "" {
		if err := metrics.WriteTextfile(monitorMetricsFile, report); err != nil {
			logger.Error(err, "write metrics to %s", monitorMetricsFile)
		}
	}

	if runErr != nil {
		return withHint(fmt.Errorf("run %s incomplete after %d pages: %w", report.ID, report.Pages, runErr))
	}
	logger.Info("run %s done: %d pages, %d commits", report.ID, report.Pages, report.Commits)
	return nil
}

// runWithProgress runs the monitor, behind the progress view when it was
// requested and stderr is a terminal.
func runWithProgress(ctx context.Context, cmd *cobra.Command, req driving.MonitorRequest) (*domain.RunReport, error) {
	if !progressFlag || terminalWidth(cmd.ErrOrStderr()) == 0 {
		return monitorService.Run(ctx, req)
	}

	req.Observer = nil
	return tui.RunMonitor(ctx, &tui.Ports{Monitor: monitorService}, req,
		tea.WithOutput(cmd.ErrOrStderr()))
}

// buildMonitorRequest resolves the project, keywords and credentials from
// files, flags, the environment and the config store.
func buildMonitorRequest(name string) (driving.MonitorRequest, error) {
	projects, err := file.LoadProjects(monitorRepositories)
	if err != nil {
		return driving.MonitorRequest{}, err
	}
	project, err := projects.Lookup(name)
	if err != nil {
		return driving.MonitorRequest{}, err
	}

	if monitorPagination != "" {
		mode, err := domain.ParsePaginationMode(monitorPagination)
		if err != nil {
			return driving.MonitorRequest{}, err
		}
		project.Pagination = mode
	}
	if monitorSinceDays > 0 {
		project.SinceDays = monitorSinceDays
	}

	mode, err := domain.ParseAggregationMode(monitorMode)
	if err != nil {
		return driving.MonitorRequest{}, err
	}

	keywords, err := file.LoadKeywords(monitorKeywords)
	if err != nil {
		return driving.MonitorRequest{}, err
	}

	return driving.MonitorRequest{
		Project:       project,
		Keywords:      keywords,
		Credentials:   resolveCredentials(project.Backend),
		Mode:          mode,
		CaseSensitive: monitorCaseSensitive,
		Throttle:      monitorThrottle,
		Retries:       monitorRetries,
		Observer:      logPage,
	}, nil
}

func resolveCredentials(backend domain.Backend) domain.Credentials {
	explicit := domain.TokenCredentials(monitorToken)
	if monitorToken == "" && monitorUsername != "" {
		explicit = domain.BasicCredentials(monitorUsername, monitorPassword)
	}
	if credentialResolver == nil {
		return explicit
	}
	return credentialResolver.Resolve(backend, explicit)
}

// logPage echoes page progress and match-list hits as they arrive. It is
// silent without --verbose; the hits are always part of the rendered report.
func logPage(ev domain.PageEvent) {
	target := ev.Request.URL
	if target == "" {
		target = fmt.Sprintf("page %d", ev.Request.Page)
	}
	logger.Debug("page %d (%s): %d commits, %d matched, more=%t",
		ev.Index, target, ev.Commits, ev.Matched, ev.HasNext)

	for _, m := range ev.Matches {
		logger.Info("%s [%s] %s %s", m.Group, m.Pattern, firstLine(m.Commit.Message), m.Commit.URL)
	}
}

// hinter is implemented by upstream errors that know a likely fix.
type hinter interface {
	Hint() string
}

// withHint appends the fix suggested by an upstream error, if any.
func withHint(err error) error {
	var h hinter
	if !errors.As(err, &h) {
		return err
	}
	if hint := h.Hint(); hint != "" {
		return fmt.Errorf("%w (%s)", err, hint)
	}
	return err
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
