package generator

import (
	"context"
	"errors"
	"time"

	"git.home.luguber.info/inful/optionbook/internal/metrics"
)

// SkipNoModules is the skip reason recorded when the catalog is empty.
const SkipNoModules = "no_modules"

// Report summarizes one run.
type Report struct {
	RunID          string
	Start          time.Time
	End            time.Time
	Modules        int
	Options        int
	Documents      int
	StageDurations map[StageName]time.Duration
	Outcome        metrics.BuildOutcomeLabel
	// SkipReason is set when the pipeline stopped early without failing.
	SkipReason string
}

func newReport(runID string) *Report {
	return &Report{
		RunID:          runID,
		Start:          time.Now(),
		StageDurations: map[StageName]time.Duration{},
	}
}

// Duration is the wall time of the run.
func (r *Report) Duration() time.Duration {
	if r.End.IsZero() {
		return time.Since(r.Start)
	}
	return r.End.Sub(r.Start)
}

func ctxErr(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
