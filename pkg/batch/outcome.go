package batch

import (
	"github.com/pyhub-apps/motopace/pkg/event"
)

// Status is the result of processing one event.
type Status string

const (
	// StatusOK means the event CSV was written.
	StatusOK Status = "ok"
	// StatusRaceFailed means the race classification could not be read.
	StatusRaceFailed Status = "race_failed"
	// StatusPracticeFailed means the practice lap table could not be read.
	StatusPracticeFailed Status = "practice_failed"
)

// Outcome describes what happened to one event.
type Outcome struct {
	Event  event.Key
	Status Status

	// Err is the cause of a failed status.
	Err error

	// Output is the CSV path of a successful event.
	Output string
	Pairs  int

	// Degenerate lists practice riders without a qualifying lap.
	Degenerate []string
}

// Report is the result of a Driver run.
type Report struct {
	RunID    string
	Outcomes []Outcome
}

// Count returns how many events ended with status.
func (r Report) Count(status Status) int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Status == status {
			n++
		}
	}
	return n
}
