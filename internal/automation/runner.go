package automation

import (
	"context"
	"log/slog"
)

// Signal is a completion report from the processing service for one job.
type Signal struct {
	JobID string
	Event Event
}

// Runner feeds signals from a channel into a Tracker.
type Runner struct {
	tracker *Tracker

	// Errors, if set, receives every rejected signal. Sends never block.
	Errors chan<- error
}

// NewRunner creates a runner for t.
func NewRunner(t *Tracker) *Runner {
	return &Runner{tracker: t}
}

// Run applies signals until the channel is closed or ctx is done.
// Rejected signals are logged and do not stop the runner.
func (r *Runner) Run(ctx context.Context, signals <-chan Signal) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case sig, ok := <-signals:
			if !ok {
				return nil
			}
			if _, err := r.tracker.Signal(sig.JobID, sig.Event); err != nil {
				slog.Warn("Automation signal rejected", "job_id", sig.JobID, "event", sig.Event, "error", err)
				r.report(err)
			}
		}
	}
}

func (r *Runner) report(err error) {
	if r.Errors == nil {
		return
	}
	select {
	case r.Errors <- err:
	default:
	}
}
