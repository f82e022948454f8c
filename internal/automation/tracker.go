package automation

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/mmynk/logflow/internal/collection"
)

// ErrJobNotFound is returned for unknown job IDs.
var ErrJobNotFound = errors.New("automation job not found")

// EventCreated is the Record.Event reported to observers when a job is
// registered. It never appears in a job's history.
const EventCreated = "created"

// Record is one applied transition in a job's history.
type Record struct {
	Event string
	From  State
	To    State
	At    int64
}

// Job is an automation run attached to a romaneio.
type Job struct {
	ID         string
	RomaneioID string
	Steps      Pipeline
	State      State
	CreatedAt  int64
	UpdatedAt  int64
	History    []Record
}

// Progress returns the job's completion percentage.
func (j Job) Progress() float64 {
	return j.Steps.Progress(j.State)
}

// CurrentStep returns the running (or failed) step name.
func (j Job) CurrentStep() string {
	return j.Steps.StepName(j.State)
}

func (j Job) clone() Job {
	out := j
	out.Steps = append(Pipeline(nil), j.Steps...)
	out.History = append([]Record(nil), j.History...)
	return out
}

// Observer is notified after every applied transition and after Create.
type Observer func(job Job, rec Record)

// Tracker keeps automation jobs in memory. It is safe for concurrent use.
type Tracker struct {
	mu       sync.Mutex
	jobs     map[string]*Job
	steps    Pipeline
	ids      collection.IDProvider
	now      func() time.Time
	observer Observer
}

// TrackerOption configures a Tracker.
type TrackerOption func(*Tracker)

// WithIDProvider overrides how job IDs are generated.
func WithIDProvider(ids collection.IDProvider) TrackerOption {
	return func(t *Tracker) { t.ids = ids }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) TrackerOption {
	return func(t *Tracker) { t.now = now }
}

// WithObserver registers a transition observer.
func WithObserver(o Observer) TrackerOption {
	return func(t *Tracker) { t.observer = o }
}

// NewTracker creates a tracker whose jobs run the given steps.
// An empty list selects DefaultSteps.
func NewTracker(steps []string, opts ...TrackerOption) *Tracker {
	if len(steps) == 0 {
		steps = DefaultSteps
	}
	t := &Tracker{
		jobs:  make(map[string]*Job),
		steps: append(Pipeline(nil), steps...),
		ids:   collection.UUIDProvider{},
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Steps returns the configured pipeline.
func (t *Tracker) Steps() Pipeline {
	return append(Pipeline(nil), t.steps...)
}

// Create registers an idle job for a romaneio.
func (t *Tracker) Create(romaneioID string) Job {
	t.mu.Lock()

	now := t.now().Unix()
	job := &Job{
		ID:         t.ids.NewID(),
		RomaneioID: romaneioID,
		Steps:      append(Pipeline(nil), t.steps...),
		State:      State{Phase: PhaseIdle},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	t.jobs[job.ID] = job
	out := job.clone()
	observer := t.observer
	t.mu.Unlock()

	slog.Info("Automation job created", "job_id", job.ID, "romaneio_id", romaneioID)
	if observer != nil {
		observer(out, Record{Event: EventCreated, To: out.State, At: now})
	}
	return out
}

// Signal applies ev to the job. On an invalid transition the job is unchanged.
func (t *Tracker) Signal(id string, ev Event) (Job, error) {
	t.mu.Lock()
	job, ok := t.jobs[id]
	if !ok {
		t.mu.Unlock()
		return Job{}, fmt.Errorf("%w: %s", ErrJobNotFound, id)
	}

	next, err := job.Steps.Transition(job.State, ev)
	if err != nil {
		t.mu.Unlock()
		return Job{}, err
	}

	rec := Record{Event: ev.String(), From: job.State, To: next, At: t.now().Unix()}
	job.State = next
	job.UpdatedAt = rec.At
	job.History = append(job.History, rec)
	out := job.clone()
	observer := t.observer
	t.mu.Unlock()

	slog.Info("Automation job transitioned",
		"job_id", id,
		"event", rec.Event,
		"phase", next.Phase,
		"step", out.CurrentStep(),
	)
	if observer != nil {
		observer(out, rec)
	}
	return out, nil
}

// Get returns a job by ID.
func (t *Tracker) Get(id string) (Job, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	job, ok := t.jobs[id]
	if !ok {
		return Job{}, fmt.Errorf("%w: %s", ErrJobNotFound, id)
	}
	return job.clone(), nil
}

// List returns every job, oldest first. An empty romaneioID lists all jobs.
func (t *Tracker) List(romaneioID string) []Job {
	t.mu.Lock()
	defer t.mu.Unlock()

	var out []Job
	for _, job := range t.jobs {
		if romaneioID != "" && job.RomaneioID != romaneioID {
			continue
		}
		out = append(out, job.clone())
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt != out[j].CreatedAt {
			return out[i].CreatedAt < out[j].CreatedAt
		}
		return out[i].ID < out[j].ID
	})
	return out
}
