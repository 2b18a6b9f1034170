package timer

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/focusroom/go/internal/models"
	"github.com/rs/zerolog/log"
)

var (
	ErrInvalidDuration = errors.New("duration must be greater than 0")
	ErrSessionRunning  = errors.New("cannot change duration while session is running")
)

// Clock is the interface we use for time operations.
// In production, use clockwork.NewRealClock(). In tests, a FakeClock.
type Clock interface {
	Now() time.Time
	NewTicker(d time.Duration) clockwork.Ticker
}

// Action names a transition applied to a session.
type Action string

const (
	ActionStarted         Action = "STARTED"
	ActionPaused          Action = "PAUSED"
	ActionResumed         Action = "RESUMED"
	ActionReset           Action = "RESET"
	ActionTicked          Action = "TICKED"
	ActionCompleted       Action = "COMPLETED"
	ActionDurationChanged Action = "DURATION_CHANGED"
)

// Transition is delivered to OnChange after every state change and tick.
type Transition struct {
	Action   Action
	Snapshot Snapshot
	At       time.Time
}

// Options configures a Controller. Zero values get defaults.
type Options struct {
	Clock        Clock
	TickInterval time.Duration

	// OnChange and OnComplete run outside the controller lock, in the order the
	// transitions happened. They must not block and must not call back into
	// the controller synchronously.
	OnChange   func(Transition)
	OnComplete func(Snapshot)
}

// Controller counts a focus session down one second at a time.
//
// States: Idle -> Running <-> Paused, Running -> Completed, any -> Idle (reset).
// While Running the controller owns exactly one ticker; it is stopped on pause,
// reset, completion and Close.
type Controller struct {
	mu     sync.Mutex
	emitMu sync.Mutex

	clock      Clock
	interval   time.Duration
	onChange   func(Transition)
	onComplete func(Snapshot)

	durationSec     int
	remainingSec    int
	status          models.SessionStatus
	completionFired bool
	closed          bool

	// gen identifies the current run; ticks delivered for an older run are dropped.
	gen    uint64
	ticker clockwork.Ticker
	stopCh chan struct{}
}

// NewController creates an idle controller for a session of durationSec seconds.
func NewController(durationSec int, opts Options) (*Controller, error) {
	if durationSec <= 0 {
		return nil, fmt.Errorf("new controller: %w", ErrInvalidDuration)
	}
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	if opts.TickInterval <= 0 {
		opts.TickInterval = time.Second
	}

	return &Controller{
		clock:        opts.Clock,
		interval:     opts.TickInterval,
		onChange:     opts.OnChange,
		onComplete:   opts.OnComplete,
		durationSec:  durationSec,
		remainingSec: durationSec,
		status:       models.SessionStatusIdle,
	}, nil
}

// Start begins ticking from Idle or resumes from Paused.
// It is a no-op (false) when already Running, Completed or closed.
func (c *Controller) Start() bool {
	c.mu.Lock()
	return c.startAndUnlock()
}

// Pause suspends ticking and keeps the remaining whole seconds.
// It is a no-op (false) unless Running.
func (c *Controller) Pause() bool {
	c.mu.Lock()
	return c.pauseAndUnlock()
}

// Toggle starts or resumes when not running and pauses when running.
func (c *Controller) Toggle() bool {
	c.mu.Lock()
	if c.status == models.SessionStatusRunning {
		return c.pauseAndUnlock()
	}
	return c.startAndUnlock()
}

// Reset stops ticking and restores the full duration. Valid from any state.
func (c *Controller) Reset() {
	c.mu.Lock()
	c.stopTickerLocked()
	c.remainingSec = c.durationSec
	c.status = models.SessionStatusIdle
	c.completionFired = false
	t := c.transitionLocked(ActionReset)
	c.emitAndUnlock([]Transition{t}, nil)
}

// SetDuration reconfigures the session. Remaining time resets to the new
// duration and the session returns to Idle.
func (c *Controller) SetDuration(durationSec int) error {
	if durationSec <= 0 {
		return ErrInvalidDuration
	}

	c.mu.Lock()
	if c.status == models.SessionStatusRunning {
		c.mu.Unlock()
		return ErrSessionRunning
	}

	c.stopTickerLocked()
	c.durationSec = durationSec
	c.remainingSec = durationSec
	c.status = models.SessionStatusIdle
	c.completionFired = false
	t := c.transitionLocked(ActionDurationChanged)
	c.emitAndUnlock([]Transition{t}, nil)
	return nil
}

// Tick applies one elapsed second. It only has an effect while Running and
// before Close.
func (c *Controller) Tick() bool {
	return c.tick(0, false)
}

// Close stops the ticker on view teardown. Later Start and Tick calls are no-ops.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopTickerLocked()
	c.closed = true
}

// Snapshot returns the current session values.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) startAndUnlock() bool {
	var action Action
	switch {
	case c.closed || c.status.IsTerminal():
		c.mu.Unlock()
		return false
	case c.status == models.SessionStatusIdle:
		action = ActionStarted
	case c.status == models.SessionStatusPaused:
		action = ActionResumed
	default:
		c.mu.Unlock()
		return false
	}

	c.status = models.SessionStatusRunning
	c.startTickerLocked()
	t := c.transitionLocked(action)
	c.emitAndUnlock([]Transition{t}, nil)
	return true
}

func (c *Controller) pauseAndUnlock() bool {
	if c.status != models.SessionStatusRunning {
		c.mu.Unlock()
		return false
	}

	c.stopTickerLocked()
	c.status = models.SessionStatusPaused
	t := c.transitionLocked(ActionPaused)
	c.emitAndUnlock([]Transition{t}, nil)
	return true
}

func (c *Controller) tick(gen uint64, fromTicker bool) bool {
	c.mu.Lock()
	if c.closed || c.status != models.SessionStatusRunning || (fromTicker && gen != c.gen) {
		c.mu.Unlock()
		return false
	}

	c.remainingSec--
	transitions := []Transition{c.transitionLocked(ActionTicked)}

	var completed *Snapshot
	if c.remainingSec <= 0 {
		c.remainingSec = 0
		c.stopTickerLocked()
		c.status = models.SessionStatusCompleted
		t := c.transitionLocked(ActionCompleted)
		transitions = append(transitions, t)
		if !c.completionFired {
			c.completionFired = true
			snap := t.Snapshot
			completed = &snap
		}
	}

	c.emitAndUnlock(transitions, completed)
	return true
}

// run forwards ticker fires for a single run until stop is closed.
func (c *Controller) run(gen uint64, ticker clockwork.Ticker, stop <-chan struct{}) {
	for {
		select {
		case <-stop:
			return
		case <-ticker.Chan():
			c.tick(gen, true)
		}
	}
}

func (c *Controller) startTickerLocked() {
	c.stopTickerLocked()

	ticker := c.clock.NewTicker(c.interval)
	stop := make(chan struct{})
	c.ticker = ticker
	c.stopCh = stop

	go c.run(c.gen, ticker, stop)

	log.Debug().
		Uint64("run", c.gen).
		Int("remaining_sec", c.remainingSec).
		Msg("session ticker started")
}

func (c *Controller) stopTickerLocked() {
	if c.ticker != nil {
		c.ticker.Stop()
		close(c.stopCh)
		c.ticker = nil
		c.stopCh = nil
	}
	c.gen++
}

func (c *Controller) transitionLocked(action Action) Transition {
	return Transition{
		Action:   action,
		Snapshot: c.snapshotLocked(),
		At:       c.clock.Now(),
	}
}

func (c *Controller) snapshotLocked() Snapshot {
	return newSnapshot(c.durationSec, c.remainingSec, c.status)
}

// emitAndUnlock releases c.mu and delivers callbacks. emitMu is taken before
// c.mu is released so callbacks observe transitions in order.
func (c *Controller) emitAndUnlock(transitions []Transition, completed *Snapshot) {
	c.emitMu.Lock()
	c.mu.Unlock()
	defer c.emitMu.Unlock()

	if c.onChange != nil {
		for _, t := range transitions {
			c.onChange(t)
		}
	}
	if completed != nil && c.onComplete != nil {
		c.onComplete(*completed)
	}
}
