package services

import (
	"fmt"
	"regexp"

	"github.com/custodia-labs/hedwig/internal/core/domain"
)

// space matches Unicode whitespace. RE2 \s is ASCII only.
const space = `[\t-\r\x{1c}-\x{20}\x{85}\p{Z}]`

// boundaryTemplate wraps a pattern with optional leading whitespace and
// optional trailing whitespace, period, or colon-plus-whitespace.
var boundaryTemplate = space + `?(%s)(` + space + `|\.|:` + space + `)?`

// Hit identifies an accepted pattern by its position in the keyword table.
type Hit struct {
	Group   int
	Pattern int
}

type compiledPattern struct {
	group   int
	pattern int
	re      *regexp.Regexp
}

// Matcher applies the boundary heuristic for every pattern of a keyword table.
// It holds compiled expressions only; counters live in the table the caller owns.
type Matcher struct {
	patterns []compiledPattern
}

// NewMatcher compiles every pattern of the table in table order.
// Matching is case-insensitive unless caseSensitive is set.
func NewMatcher(table *domain.KeywordTable, caseSensitive bool) (*Matcher, error) {
	if err := table.Validate(); err != nil {
		return nil, err
	}

	m := &Matcher{}
	for gi, g := range table.Groups {
		for pi, p := range g.Patterns {
			expr := fmt.Sprintf(boundaryTemplate, p.Expr)
			if !caseSensitive {
				expr = "(?i)" + expr
			}
			re, err := regexp.Compile(expr)
			if err != nil {
				return nil, fmt.Errorf("%w: group %q pattern %q: %w", domain.ErrInvalidKeywords, g.Name, p.Expr, err)
			}
			m.patterns = append(m.patterns, compiledPattern{group: gi, pattern: pi, re: re})
		}
	}
	return m, nil
}

// accepts reports whether any occurrence of re in message consumed a context
// character on at least one side. An occurrence whose full span equals the
// pattern span is a substring of a longer token and is skipped.
func accepts(re *regexp.Regexp, message string) bool {
	for _, loc := range re.FindAllStringSubmatchIndex(message, -1) {
		if loc[0] != loc[2] || loc[1] != loc[3] {
			return true
		}
	}
	return false
}

// MatchAll returns one hit for every pattern accepted in message, in table order.
// Scanning a pattern stops at its first accepted occurrence.
func (m *Matcher) MatchAll(message string) []Hit {
	var hits []Hit
	for _, cp := range m.patterns {
		if accepts(cp.re, message) {
			hits = append(hits, Hit{Group: cp.group, Pattern: cp.pattern})
		}
	}
	return hits
}

// MatchFirst returns the first accepted pattern in table order.
func (m *Matcher) MatchFirst(message string) (Hit, bool) {
	for _, cp := range m.patterns {
		if accepts(cp.re, message) {
			return Hit{Group: cp.group, Pattern: cp.pattern}, true
		}
	}
	return Hit{}, false
}
