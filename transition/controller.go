// Package transition sequences the timed change between active reels.
package transition

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

const (
	DefaultOutDelay = 300 * time.Millisecond
	DefaultInDelay  = 500 * time.Millisecond
)

var ErrUnknownYear = errors.New("unknown reel year")

type Phase string

const (
	Idle             Phase = "idle"
	TransitioningOut Phase = "transitioning_out"
	TransitioningIn  Phase = "transitioning_in"
)

// State is a snapshot of the controller.
type State struct {
	ActiveYear      string `json:"active_year"`
	TargetYear      string `json:"target_year"`
	Phase           Phase  `json:"phase"`
	IsTransitioning bool   `json:"is_transitioning"`
	ScrollOffset    int    `json:"scroll_offset"`
	Generation      uint64 `json:"generation"`
}

// Timer is the handle of a scheduled callback.
type Timer interface {
	Stop() bool
}

// Scheduler runs f once after d.
type Scheduler func(d time.Duration, f func()) Timer

func afterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

type Options struct {
	OutDelay  time.Duration
	InDelay   time.Duration
	Schedule  Scheduler
	ValidYear func(string) bool
	// Observer receives every state change. It is called without the controller lock held.
	Observer func(State)
}

// Controller tracks the active year and the two-phase transition between years.
// Every new request bumps the generation; callbacks from an older generation
// are dropped.
type Controller struct {
	mu       sync.Mutex
	state    State
	pending  Timer
	outDelay time.Duration
	inDelay  time.Duration
	schedule Scheduler
	valid    func(string) bool
	observer func(State)
}

func NewController(initialYear string, opts Options) *Controller {
	if opts.OutDelay <= 0 {
		opts.OutDelay = DefaultOutDelay
	}
	if opts.InDelay <= 0 {
		opts.InDelay = DefaultInDelay
	}
	if opts.Schedule == nil {
		opts.Schedule = afterFunc
	}
	if opts.ValidYear == nil {
		opts.ValidYear = func(string) bool { return true }
	}
	return &Controller{
		state: State{
			ActiveYear: initialYear,
			TargetYear: initialYear,
			Phase:      Idle,
		},
		outDelay: opts.OutDelay,
		inDelay:  opts.InDelay,
		schedule: opts.Schedule,
		valid:    opts.ValidYear,
		observer: opts.Observer,
	}
}

// State returns the current snapshot.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// RequestYearChange starts a transition to year. Asking for the year the
// controller is already showing, or already heading to, does nothing.
func (c *Controller) RequestYearChange(year string) (State, error) {
	if !c.valid(year) {
		return c.State(), fmt.Errorf("request year change to %q: %w", year, ErrUnknownYear)
	}

	c.mu.Lock()
	if year == c.state.TargetYear {
		s := c.state
		c.mu.Unlock()
		return s, nil
	}

	if c.pending != nil {
		c.pending.Stop()
	}
	c.state.Generation++
	gen := c.state.Generation
	c.state.TargetYear = year
	c.state.Phase = TransitioningOut
	c.state.IsTransitioning = true
	c.pending = c.schedule(c.outDelay, func() { c.swap(gen) })
	s := c.state
	c.mu.Unlock()

	c.notify(s)
	return s, nil
}

func (c *Controller) swap(gen uint64) {
	c.mu.Lock()
	if gen != c.state.Generation || c.state.Phase != TransitioningOut {
		c.mu.Unlock()
		return
	}
	c.state.ActiveYear = c.state.TargetYear
	c.state.ScrollOffset = 0
	c.state.Phase = TransitioningIn
	c.pending = c.schedule(c.inDelay, func() { c.settle(gen) })
	s := c.state
	c.mu.Unlock()

	c.notify(s)
}

func (c *Controller) settle(gen uint64) {
	c.mu.Lock()
	if gen != c.state.Generation || c.state.Phase != TransitioningIn {
		c.mu.Unlock()
		return
	}
	c.state.Phase = Idle
	c.state.IsTransitioning = false
	c.pending = nil
	s := c.state
	c.mu.Unlock()

	c.notify(s)
}

// Scroll moves the reel horizontally by delta, never before the start.
func (c *Controller) Scroll(delta int) State {
	c.mu.Lock()
	if delta == 0 {
		s := c.state
		c.mu.Unlock()
		return s
	}
	c.state.ScrollOffset += delta
	if c.state.ScrollOffset < 0 {
		c.state.ScrollOffset = 0
	}
	s := c.state
	c.mu.Unlock()

	c.notify(s)
	return s
}

// ScrollToStart rewinds the reel to its first frame.
func (c *Controller) ScrollToStart() State {
	c.mu.Lock()
	c.state.ScrollOffset = 0
	s := c.state
	c.mu.Unlock()

	c.notify(s)
	return s
}

// Stop cancels any pending transition callback.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending != nil {
		c.pending.Stop()
		c.pending = nil
	}
}

func (c *Controller) notify(s State) {
	if c.observer != nil {
		c.observer(s)
	}
}
