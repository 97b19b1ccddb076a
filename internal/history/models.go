package history

import "time"

// Status is the outcome of a run.
type Status string

const (
	StatusSucceeded Status = "succeeded"
	// StatusPartial marks an organize pass where some files failed to move.
	StatusPartial Status = "partial"
	StatusFailed  Status = "failed"
)

// Run is one recorded tool invocation.
type Run struct {
	ID         int64     `json:"id"`
	RunID      string    `json:"run_id"`
	Tool       string    `json:"tool"`
	Status     Status    `json:"status"`
	Target     string    `json:"target,omitempty"`
	Summary    string    `json:"summary,omitempty"`
	Error      string    `json:"error,omitempty"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

// Duration returns how long the run took.
func (r Run) Duration() time.Duration {
	if r.FinishedAt.Before(r.StartedAt) {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
