package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"golang.org/x/term"

	"github.com/custodia-labs/hedwig/internal/core/domain"
)

// Output formats for the monitor command.
const (
	formatSummary = "summary"
	formatTable   = "table"
	formatJSON    = "json"
)

// maxMessageWidth caps the first message line shown in tables.
const maxMessageWidth = 72

func validateFormat(f string) error {
	switch f {
	case formatSummary, formatTable, formatJSON:
		return nil
	}
	return fmt.Errorf("%w: output format %q (want summary, table or json)", domain.ErrInvalidInput, f)
}

// renderReport writes report to w in the given format.
func renderReport(w io.Writer, report *domain.RunReport, format string) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	case formatTable:
		return renderTable(w, report)
	default:
		return renderSummary(w, report)
	}
}

// renderSummary prints "group:count ..." in ranked order, or one line per
// match in match-list mode.
func renderSummary(w io.Writer, report *domain.RunReport) error {
	result := report.Result
	if result == nil {
		return nil
	}

	if result.Mode == domain.AggregationMatchList {
		for _, m := range result.Matches {
			if _, err := fmt.Fprintf(w, "%s\t%s\t%s\n", m.Group, firstLine(m.Commit.Message), m.Commit.URL); err != nil {
				return err
			}
		}
		return nil
	}

	_, err := fmt.Fprintln(w, result.Summary())
	return err
}

func renderTable(w io.Writer, report *domain.RunReport) error {
	r := lipgloss.NewRenderer(w)
	header := r.NewStyle().Bold(true).Padding(0, 1)
	cell := r.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(r.NewStyle().Faint(true)).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		})
	if width := terminalWidth(w); width > 0 {
		t = t.Width(width)
	}

	result := report.Result
	switch {
	case result == nil:
		t = t.Headers("GROUP", "COUNT")
	case result.Mode == domain.AggregationMatchList:
		t = t.Headers("GROUP", "PATTERN", "COMMIT", "MESSAGE")
		for _, m := range result.Matches {
			t = t.Row(m.Group, m.Pattern, shortSHA(m.Commit.SHA), truncate(firstLine(m.Commit.Message), maxMessageWidth))
		}
	default:
		t = t.Headers("GROUP", "COUNT", "PATTERNS")
		for _, g := range result.Ranked() {
			t = t.Row(g.Name, strconv.Itoa(g.Count), patternCounts(g.Patterns))
		}
	}

	if _, err := fmt.Fprintln(w, t.Render()); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%s %s: %d pages, %d commits, %s in %s\n",
		report.Repository, report.Branch, report.Pages, report.Commits, report.State, report.Duration().Round(time.Millisecond))
	return err
}

// terminalWidth returns the width of w when it is a terminal, else 0.
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}

func patternCounts(patterns map[string]int) string {
	exprs := make([]string, 0, len(patterns))
	for expr := range patterns {
		exprs = append(exprs, expr)
	}
	sort.Strings(exprs)

	parts := make([]string, 0, len(exprs))
	for _, expr := range exprs {
		parts = append(parts, expr+"="+strconv.Itoa(patterns[expr]))
	}
	return strings.Join(parts, ", ")
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}

func shortSHA(sha string) string {
	if len(sha) > 10 {
		return sha[:10]
	}
	return sha
}
