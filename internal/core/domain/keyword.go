package domain

import (
	"fmt"
	"strings"
)

// Pattern is one raw search expression and the number of commits it matched.
type Pattern struct {
	// Expr is a regular expression; alternation such as "JPG|JPEG" is allowed.
	Expr string `json:"expr" toml:"expr"`

	// Count is the number of commits this pattern was accepted in.
	Count int `json:"count" toml:"count"`
}

// KeywordGroup is a named set of patterns reported as a single unit.
type KeywordGroup struct {
	Name     string    `json:"name" toml:"name"`
	Patterns []Pattern `json:"patterns" toml:"patterns"`
}

// NewKeywordGroup creates a group with zeroed counters.
func NewKeywordGroup(name string, exprs ...string) KeywordGroup {
	g := KeywordGroup{Name: name, Patterns: make([]Pattern, 0, len(exprs))}
	for _, e := range exprs {
		g.Patterns = append(g.Patterns, Pattern{Expr: e})
	}
	return g
}

// Total returns the sum of the group's pattern counts.
func (g KeywordGroup) Total() int {
	total := 0
	for _, p := range g.Patterns {
		total += p.Count
	}
	return total
}

// KeywordTable is the ordered set of groups tracked by a run.
// Iteration order is table order, which makes first-match results reproducible.
type KeywordTable struct {
	Groups []KeywordGroup `json:"groups" toml:"groups"`
}

// NewKeywordTable builds a validated table from groups.
func NewKeywordTable(groups ...KeywordGroup) (*KeywordTable, error) {
	t := &KeywordTable{Groups: groups}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Validate checks names and patterns are present and unique.
func (t *KeywordTable) Validate() error {
	if t == nil || len(t.Groups) == 0 {
		return fmt.Errorf("%w: no keyword groups", ErrInvalidKeywords)
	}

	names := make(map[string]struct{}, len(t.Groups))
	for _, g := range t.Groups {
		if strings.TrimSpace(g.Name) == "" {
			return fmt.Errorf("%w: group with empty name", ErrInvalidKeywords)
		}
		if _, dup := names[g.Name]; dup {
			return fmt.Errorf("%w: duplicate group %q", ErrInvalidKeywords, g.Name)
		}
		names[g.Name] = struct{}{}

		if len(g.Patterns) == 0 {
			return fmt.Errorf("%w: group %q has no patterns", ErrInvalidKeywords, g.Name)
		}
		exprs := make(map[string]struct{}, len(g.Patterns))
		for _, p := range g.Patterns {
			if p.Expr == "" {
				return fmt.Errorf("%w: group %q has an empty pattern", ErrInvalidKeywords, g.Name)
			}
			if _, dup := exprs[p.Expr]; dup {
				return fmt.Errorf("%w: group %q repeats pattern %q", ErrInvalidKeywords, g.Name, p.Expr)
			}
			exprs[p.Expr] = struct{}{}
		}
	}
	return nil
}

// Clone returns a deep copy so a run can own its counters.
func (t *KeywordTable) Clone() *KeywordTable {
	if t == nil {
		return nil
	}
	c := &KeywordTable{Groups: make([]KeywordGroup, len(t.Groups))}
	for i, g := range t.Groups {
		c.Groups[i] = KeywordGroup{
			Name:     g.Name,
			Patterns: append([]Pattern(nil), g.Patterns...),
		}
	}
	return c
}

// Reset zeroes every counter.
func (t *KeywordTable) Reset() {
	for gi := range t.Groups {
		for pi := range t.Groups[gi].Patterns {
			t.Groups[gi].Patterns[pi].Count = 0
		}
	}
}

// Increment adds one to the counter at the given group and pattern index.
func (t *KeywordTable) Increment(group, pattern int) {
	t.Groups[group].Patterns[pattern].Count++
}

// Names returns the group names in table order.
func (t *KeywordTable) Names() []string {
	names := make([]string, len(t.Groups))
	for i, g := range t.Groups {
		names[i] = g.Name
	}
	return names
}
