// Package submission owns the submit lifecycle: at most one request in
// flight, and every request ends in exactly one of Succeeded or Failed.
package submission

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/csheth/promptrefiner/internal/input"
	"github.com/csheth/promptrefiner/internal/refine"
)

// GenericFailure is the only failure text ever shown to the user.
const GenericFailure = "Error connecting to server. Is the backend running on port 8080?"

var (
	// ErrNothingToSubmit is returned when neither text nor files are set.
	ErrNothingToSubmit = errors.New("nothing to submit")
	// ErrInFlight is returned while another submission is running.
	ErrInFlight = errors.New("submission already in flight")

	errAbandoned = errors.New("submission exited without an outcome")
)

// Outcome is what a ticket produced. Err carries the diagnostic detail.
type Outcome struct {
	TicketID uint64
	Result   refine.Result
	Err      error
}

// Ticket is the right to run the single in-flight request.
type Ticket struct {
	id      uint64
	input   input.State
	refiner refine.Refiner
}

func (t Ticket) ID() uint64 { return t.id }

// Run performs the request. A panic in the transport becomes a failed
// outcome so the controller can always leave Submitting.
func (t Ticket) Run(ctx context.Context) (out Outcome) {
	out.TicketID = t.id
	defer func() {
		if r := recover(); r != nil {
			out.Result = refine.Result{}
			out.Err = fmt.Errorf("refine panicked: %v", r)
		}
	}()
	out.Result, out.Err = t.refiner.Refine(ctx, t.input)
	return out
}

// Controller is the only writer of the submission state.
type Controller struct {
	refiner refine.Refiner

	mu             sync.Mutex
	state          State
	seq            uint64
	current        uint64
	lastDiagnostic error
}

func NewController(refiner refine.Refiner) *Controller {
	return &Controller{refiner: refiner, state: Idle()}
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// LastDiagnostic returns the detail behind the most recent failure.
func (c *Controller) LastDiagnostic() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastDiagnostic
}

// Begin moves to Submitting and hands out the ticket for the request. Any
// previous result or failure is cleared first.
func (c *Controller) Begin(in input.State) (Ticket, error) {
	if !in.CanSubmit() {
		return Ticket{}, ErrNothingToSubmit
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.Busy() {
		return Ticket{}, ErrInFlight
	}
	c.seq++
	c.current = c.seq
	c.state = Submitting()
	return Ticket{id: c.current, input: in, refiner: c.refiner}, nil
}

// Resolve applies an outcome. Outcomes for tickets other than the current
// one, or arriving when nothing is in flight, are dropped.
func (c *Controller) Resolve(out Outcome) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.state.Busy() || out.TicketID != c.current {
		return false
	}
	if out.Err != nil {
		c.lastDiagnostic = out.Err
		log.Printf("[submit] ticket=%d failed: %v", out.TicketID, out.Err)
		c.state = Failed(GenericFailure)
		return true
	}
	log.Printf("[submit] ticket=%d succeeded", out.TicketID)
	c.state = Succeeded(out.Result)
	return true
}

// Submit runs a whole cycle on the calling goroutine. The returned error is
// the diagnostic detail; the state only ever holds GenericFailure.
func (c *Controller) Submit(ctx context.Context, in input.State) error {
	ticket, err := c.Begin(in)
	if err != nil {
		return err
	}
	out := Outcome{TicketID: ticket.ID(), Err: errAbandoned}
	defer func() { c.Resolve(out) }()
	out = ticket.Run(ctx)
	return out.Err
}
