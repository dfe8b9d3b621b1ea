package carousel

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

// Sentinel errors for the carousel.
var (
	// ErrSchedulerNil indicates New was called without a Scheduler.
	ErrSchedulerNil = errors.New("carousel: scheduler is nil")
	// ErrStepRange indicates a step outside [1, Steps].
	ErrStepRange = errors.New("carousel: step out of range")
	// ErrOptionViolation indicates an invalid Option value.
	ErrOptionViolation = errors.New("carousel: invalid option supplied")
)

// Defaults for the landing page walkthrough.
const (
	DefaultSteps       = 4
	DefaultInterval    = 5 * time.Second
	DefaultResumeDelay = 10 * time.Second
)

// Options configure New.
type Options struct {
	Steps       int
	Interval    time.Duration
	ResumeDelay time.Duration
}

// DefaultOptions returns 4 steps, 5 s auto-advance and a 10 s resume delay.
func DefaultOptions() Options {
	return Options{Steps: DefaultSteps, Interval: DefaultInterval, ResumeDelay: DefaultResumeDelay}
}

// Option mutates Options.
type Option func(*Options)

// WithSteps sets the number of steps.
func WithSteps(n int) Option { return func(o *Options) { o.Steps = n } }

// WithInterval sets the auto-advance period.
func WithInterval(d time.Duration) Option { return func(o *Options) { o.Interval = d } }

// WithResumeDelay sets how long manual navigation suspends auto-advance.
func WithResumeDelay(d time.Duration) Option { return func(o *Options) { o.ResumeDelay = d } }

// Carousel holds the active step and the auto-advance timers.
// It is safe for concurrent use.
type Carousel struct {
	mu        sync.Mutex
	opts      Options
	sched     Scheduler
	current   int
	auto      Timer
	pending   Timer
	observers map[int]func(int)
	nextID    int
	gen       int
}

// New returns a Carousel on step 1 with auto-advance stopped.
func New(sched Scheduler, opts ...Option) (*Carousel, error) {
	if sched == nil {
		return nil, fmt.Errorf("carousel.New: %w", ErrSchedulerNil)
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.Steps < 1 || o.Interval <= 0 || o.ResumeDelay < 0 {
		return nil, fmt.Errorf("carousel.New: %w: %+v", ErrOptionViolation, o)
	}
	return &Carousel{opts: o, sched: sched, current: 1, observers: make(map[int]func(int))}, nil
}

// Steps returns the step count.
func (c *Carousel) Steps() int { return c.opts.Steps }

// Current returns the active step.
func (c *Carousel) Current() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Running reports whether auto-advance is armed.
func (c *Carousel) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.auto != nil
}

// OnStep registers fn to receive every newly shown step.
func (c *Carousel) OnStep(fn func(step int)) (cancel func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.nextID
	c.nextID++
	c.observers[id] = fn
	return func() {
		c.mu.Lock()
		delete(c.observers, id)
		c.mu.Unlock()
	}
}

// Start shows step 1 and begins auto-advance.
func (c *Carousel) Start() {
	_ = c.Show(1) // 1 is always in range
	c.Resume()
}

// Show activates step n.
func (c *Carousel) Show(n int) error {
	c.mu.Lock()
	if n < 1 || n > c.opts.Steps {
		c.mu.Unlock()
		return fmt.Errorf("Show(%d): %w", n, ErrStepRange)
	}
	c.current = n
	fns := c.listeners()
	c.mu.Unlock()

	for _, fn := range fns {
		fn(n)
	}
	return nil
}

// Next advances one step, wrapping from the last to 1.
func (c *Carousel) Next() int {
	n := c.Current()%c.opts.Steps + 1
	_ = c.Show(n)
	return n
}

// Previous goes back one step, wrapping from 1 to the last.
func (c *Carousel) Previous() int {
	n := c.Current() - 1
	if n < 1 {
		n = c.opts.Steps
	}
	_ = c.Show(n)
	return n
}

// Pause stops auto-advance and any deferred resume.
func (c *Carousel) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
}

// Resume arms auto-advance unless it is already running. A deferred resume
// is cancelled.
func (c *Carousel) Resume() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resumeLocked()
}

func (c *Carousel) resumeLocked() {
	if c.pending != nil {
		c.pending.Stop()
		c.pending = nil
	}
	if c.auto == nil {
		c.auto = c.sched.Every(c.opts.Interval, func() { c.Next() })
	}
}

// Select shows step n and suspends auto-advance for ResumeDelay.
func (c *Carousel) Select(n int) error {
	if err := c.Show(n); err != nil {
		return err
	}
	c.suspend()
	return nil
}

// Key handles "ArrowLeft" and "ArrowRight" like Previous and Next followed
// by a suspend. Other keys are ignored and reported as false.
func (c *Carousel) Key(key string) bool {
	switch key {
	case "ArrowLeft":
		c.Previous()
	case "ArrowRight":
		c.Next()
	default:
		return false
	}
	c.suspend()
	return true
}

// Close stops every timer.
func (c *Carousel) Close() {
	c.Pause()
}

func (c *Carousel) suspend() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
	gen := c.gen
	c.pending = c.sched.After(c.opts.ResumeDelay, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.gen == gen {
			c.resumeLocked()
		}
	})
}

// stopLocked cancels both timers and invalidates deferred resumes already
// in flight. Caller holds mu.
func (c *Carousel) stopLocked() {
	c.gen++
	if c.auto != nil {
		c.auto.Stop()
		c.auto = nil
	}
	if c.pending != nil {
		c.pending.Stop()
		c.pending = nil
	}
}

// listeners returns observers in registration order. Caller holds mu.
func (c *Carousel) listeners() []func(int) {
	fns := make([]func(int), 0, len(c.observers))
	for id := 0; id < c.nextID; id++ {
		if fn, ok := c.observers[id]; ok {
			fns = append(fns, fn)
		}
	}
	return fns
}
