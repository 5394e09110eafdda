package domain

import "time"

// RunReport describes one finished (or aborted) monitoring run.
type RunReport struct {
	ID         string           `json:"id"`
	Project    string           `json:"project"`
	Backend    Backend          `json:"backend"`
	Repository string           `json:"repository"`
	Branch     string           `json:"branch"`
	Since      time.Time        `json:"since"`
	StartedAt  time.Time        `json:"started_at"`
	FinishedAt time.Time        `json:"finished_at"`
	State      RunState         `json:"state"`
	Reason     string           `json:"reason,omitempty"`
	Failure    FailureKind      `json:"failure,omitempty"`
	Pages      int              `json:"pages"`
	Commits    int              `json:"commits"`
	Result     *AggregateResult `json:"result"`
}

// Duration returns how long the run took.
func (r *RunReport) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}
