package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/hedwig/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/hedwig/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/hedwig/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/hedwig/internal/core/domain"
	"github.com/custodia-labs/hedwig/internal/core/ports/driving"
)

// recentMatches is how many match-list hits the view keeps on screen.
const recentMatches = 5

// App is the progress model for one monitoring run.
type App struct {
	req    driving.MonitorRequest
	cancel context.CancelFunc

	styles  *styles.Styles
	keys    *keymap.KeyMap
	spinner spinner.Model

	pages    int
	lastPage int
	commits  int
	matched  int
	target   string
	recent   []domain.MatchEvent

	showMatches bool
	stopping    bool
	finished    bool
	report      *domain.RunReport
	err         error

	width int
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates the progress model. cancel interrupts the run; it may be nil.
func NewApp(req driving.MonitorRequest, cancel context.CancelFunc) *App {
	s := styles.DefaultStyles()
	return &App{
		req:    req,
		cancel: cancel,
		styles: s,
		keys:   keymap.DefaultKeyMap(),
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(s.Spinner),
		),
		showMatches: true,
	}
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return a.spinner.Tick
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		return a, nil

	case tea.KeyMsg:
		switch {
		case keymap.Matches(msg.String(), a.keys.Cancel):
			a.stop()
		case keymap.Matches(msg.String(), a.keys.Matches):
			a.showMatches = !a.showMatches
		}
		return a, nil

	case messages.PageFetched:
		a.record(msg.Event)
		return a, nil

	case messages.RunFinished:
		a.finished = true
		a.report = msg.Report
		a.err = msg.Err
		return a, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd
	}

	return a, nil
}

// stop asks the run to end. The program keeps running until RunFinished
// arrives so the partial report is not lost.
func (a *App) stop() {
	if a.stopping {
		return
	}
	a.stopping = true
	if a.cancel != nil {
		a.cancel()
	}
}

func (a *App) record(ev domain.PageEvent) {
	a.pages = ev.Index
	if ev.LastPage > a.lastPage {
		a.lastPage = ev.LastPage
	}
	a.commits += ev.Commits
	a.matched += ev.Matched
	a.target = ev.Request.URL
	if a.target == "" {
		a.target = fmt.Sprintf("page %d", ev.Request.Page)
	}

	a.recent = append(a.recent, ev.Matches...)
	if n := len(a.recent); n > recentMatches {
		a.recent = a.recent[n-recentMatches:]
	}
}

// View implements tea.Model. The view clears itself once the run finished;
// the caller renders the report.
func (a *App) View() string {
	if a.finished {
		return ""
	}

	var b strings.Builder
	p := a.req.Project
	b.WriteString(a.styles.Title.Render("hedwig " + p.Name))
	b.WriteString("  ")
	b.WriteString(a.styles.Subtitle.Render(p.Owner + "/" + p.Repo))
	if p.Branch != "" {
		b.WriteString(a.styles.Muted.Render(" @ " + p.Branch))
	}
	b.WriteString("\n\n")

	b.WriteString(a.spinner.View())
	b.WriteString(" ")
	if a.stopping {
		b.WriteString(a.styles.Warning.Render("stopping..."))
		b.WriteString(" ")
	}
	pages := fmt.Sprint(a.pages)
	if a.lastPage >= a.pages {
		pages = fmt.Sprintf("%d/%d", a.pages, a.lastPage)
	}
	fmt.Fprintf(&b, "%s pages  %s commits  %s matched\n",
		a.styles.Count.Render(pages),
		a.styles.Count.Render(fmt.Sprint(a.commits)),
		a.styles.Count.Render(fmt.Sprint(a.matched)))
	if a.target != "" {
		b.WriteString(a.styles.Muted.Render(truncate("  "+a.target, a.width)))
		b.WriteString("\n")
	}

	if a.showMatches && len(a.recent) > 0 {
		b.WriteString("\n")
		for _, m := range a.recent {
			b.WriteString(a.styles.Group.Render(m.Group))
			b.WriteString(" ")
			b.WriteString(truncate(firstLine(m.Commit.Message), a.width-len(m.Group)-1))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(a.help())
	return b.String()
}

func (a *App) help() string {
	parts := make([]string, 0, 2)
	for _, k := range a.keys.ShortHelp() {
		parts = append(parts, k.Help().Key+" "+k.Help().Desc)
	}
	return a.styles.Help.Render(strings.Join(parts, " • "))
}

// truncate cuts s to width runes; width <= 0 means unknown.
func truncate(s string, width int) string {
	r := []rune(s)
	if width <= 0 || len(r) <= width {
		return s
	}
	return string(r[:width])
}

// Report returns the final report once the run finished.
func (a *App) Report() *domain.RunReport {
	return a.report
}

// Err returns the run error once the run finished.
func (a *App) Err() error {
	return a.err
}

// Finished reports whether RunFinished was received.
func (a *App) Finished() bool {
	return a.finished
}

func firstLine(msg string) string {
	if i := strings.IndexByte(msg, '\n'); i >= 0 {
		return msg[:i]
	}
	return msg
}
