package submission

import "github.com/csheth/promptrefiner/internal/refine"

// Phase enumerates the controller states.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseSubmitting
	PhaseSucceeded
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseSubmitting:
		return "submitting"
	case PhaseSucceeded:
		return "succeeded"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// State is exactly one of Idle, Submitting, Succeeded(result) or
// Failed(message). The payload of one variant is never visible from another.
type State struct {
	phase   Phase
	result  refine.Result
	message string
}

func Idle() State { return State{phase: PhaseIdle} }

func Submitting() State { return State{phase: PhaseSubmitting} }

func Succeeded(result refine.Result) State {
	return State{phase: PhaseSucceeded, result: result}
}

func Failed(message string) State {
	return State{phase: PhaseFailed, message: message}
}

func (s State) Phase() Phase { return s.phase }

// Busy is true only while a request is in flight.
func (s State) Busy() bool { return s.phase == PhaseSubmitting }

// Result returns the payload of a Succeeded state.
func (s State) Result() (refine.Result, bool) {
	if s.phase != PhaseSucceeded {
		return refine.Result{}, false
	}
	return s.result, true
}

// Message returns the user-facing text of a Failed state.
func (s State) Message() (string, bool) {
	if s.phase != PhaseFailed {
		return "", false
	}
	return s.message, true
}
