package domain

import (
	"sort"
	"strconv"
	"strings"
)

// GroupCount is the reported total of one keyword group.
type GroupCount struct {
	Name     string         `json:"name"`
	Count    int            `json:"count"`
	Patterns map[string]int `json:"patterns,omitempty"`
}

// AggregateResult is the outcome of one run in its aggregation mode.
// Groups is populated in group-count mode, Matches in match-list mode.
type AggregateResult struct {
	Mode    AggregationMode `json:"mode"`
	Groups  []GroupCount    `json:"groups,omitempty"`
	Matches []MatchEvent    `json:"matches,omitempty"`
}

// NewCountResult builds a group-count result from a table, in table order.
func NewCountResult(t *KeywordTable) *AggregateResult {
	r := &AggregateResult{Mode: AggregationGroupCount}
	if t == nil {
		return r
	}
	r.Groups = make([]GroupCount, 0, len(t.Groups))
	for _, g := range t.Groups {
		gc := GroupCount{Name: g.Name, Patterns: make(map[string]int, len(g.Patterns))}
		for _, p := range g.Patterns {
			gc.Patterns[p.Expr] = p.Count
			gc.Count += p.Count
		}
		r.Groups = append(r.Groups, gc)
	}
	return r
}

// Ranked returns the groups ordered by count descending; ties keep table order.
func (r *AggregateResult) Ranked() []GroupCount {
	ranked := append([]GroupCount(nil), r.Groups...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	return ranked
}

// Summary renders "group:count group:count ..." in ranked order.
func (r *AggregateResult) Summary() string {
	ranked := r.Ranked()
	parts := make([]string, 0, len(ranked))
	for _, g := range ranked {
		parts = append(parts, g.Name+":"+strconv.Itoa(g.Count))
	}
	return strings.Join(parts, " ")
}

// Total returns the number of counted hits or recorded matches.
func (r *AggregateResult) Total() int {
	if r.Mode == AggregationMatchList {
		return len(r.Matches)
	}
	total := 0
	for _, g := range r.Groups {
		total += g.Count
	}
	return total
}
