// Package automation tracks the progress of automated romaneio processing.
//
// A job moves through an explicit state machine. Only completion signals from
// the external processing service advance it; nothing here waits on timers.
package automation

import (
	"errors"
	"fmt"
)

// ErrInvalidTransition is returned when an event is not legal in the current state.
var ErrInvalidTransition = errors.New("invalid automation transition")

// Phase is the coarse state of a job.
type Phase string

const (
	PhaseIdle      Phase = "idle"
	PhaseRunning   Phase = "running"
	PhaseCompleted Phase = "completed"
	PhaseFailed    Phase = "failed"
)

// Processing steps of the automated workflow, in order.
const (
	StepUpload        = "upload"
	StepAIProcessing  = "ai_processing"
	StepOCRValidation = "ocr_validation"
	StepCleaning      = "automatic_cleaning"
	StepVerification  = "final_verification"
)

// DefaultSteps is the pipeline used when none is configured.
var DefaultSteps = []string{
	StepUpload, StepAIProcessing, StepOCRValidation, StepCleaning, StepVerification,
}

// State is a point in the state machine.
//
//	Idle -> Running(step) -> Completed
//	             \-> Failed(reason)
type State struct {
	Phase Phase

	// Step is the index of the running step. For a failed job it is the
	// step that failed.
	Step int

	// Reason is set for failed jobs.
	Reason string
}

// Event drives a transition. The set of implementations is closed.
type Event interface {
	isEvent()
	String() string
}

// Start begins processing at the first step.
type Start struct{}

// StepDone reports that the named step finished.
type StepDone struct {
	Step string
}

// Fail aborts the running step.
type Fail struct {
	Reason string
}

// Reset returns a job to idle so it can be run again.
type Reset struct{}

func (Start) isEvent()    {}
func (StepDone) isEvent() {}
func (Fail) isEvent()     {}
func (Reset) isEvent()    {}

func (Start) String() string      { return "start" }
func (e StepDone) String() string { return "step_done(" + e.Step + ")" }
func (e Fail) String() string     { return "fail(" + e.Reason + ")" }
func (Reset) String() string      { return "reset" }

// Pipeline is an ordered list of step names.
type Pipeline []string

// Transition returns the state that follows s on ev.
func (p Pipeline) Transition(s State, ev Event) (State, error) {
	invalid := func(detail string) (State, error) {
		return s, fmt.Errorf("%w: %s in %s: %s", ErrInvalidTransition, ev, s.Phase, detail)
	}

	switch e := ev.(type) {
	case Start:
		if s.Phase != PhaseIdle {
			return invalid("job already started")
		}
		if len(p) == 0 {
			return invalid("pipeline has no steps")
		}
		return State{Phase: PhaseRunning, Step: 0}, nil

	case StepDone:
		if s.Phase != PhaseRunning {
			return invalid("job is not running")
		}
		if want := p[s.Step]; e.Step != want {
			return invalid(fmt.Sprintf("expected step %q", want))
		}
		if s.Step == len(p)-1 {
			return State{Phase: PhaseCompleted, Step: s.Step}, nil
		}
		return State{Phase: PhaseRunning, Step: s.Step + 1}, nil

	case Fail:
		if s.Phase != PhaseRunning {
			return invalid("job is not running")
		}
		if e.Reason == "" {
			return invalid("reason is required")
		}
		return State{Phase: PhaseFailed, Step: s.Step, Reason: e.Reason}, nil

	case Reset:
		if s.Phase == PhaseRunning {
			return invalid("fail the running step first")
		}
		return State{Phase: PhaseIdle}, nil
	}

	return invalid(fmt.Sprintf("unknown event %T", ev))
}

// Progress returns the completion percentage of s, from 0 to 100.
func (p Pipeline) Progress(s State) float64 {
	switch s.Phase {
	case PhaseCompleted:
		return 100
	case PhaseRunning, PhaseFailed:
		if len(p) == 0 {
			return 0
		}
		return float64(s.Step) / float64(len(p)) * 100
	default:
		return 0
	}
}

// StepName returns the name of the current step, or "" when no step applies.
func (p Pipeline) StepName(s State) string {
	if s.Phase == PhaseIdle || s.Step < 0 || s.Step >= len(p) {
		return ""
	}
	return p[s.Step]
}
