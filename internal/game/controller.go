// Package game ties the player's trigger to the timing engine and score keeper.
//
// The Controller is a three-phase state machine (Idle, Running, Reviewing)
// that owns the measured run, the session score board, the cosmetic theme
// index and the transient celebratory flag. Presentation layers observe it
// through snapshots and drive it through PerformAction and SetTargetTime;
// they hold no game state of their own.
package game

import (
	"errors"
	"fmt"
	"io"
	"math"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/temporal-precision/internal/clock"
	"github.com/vovakirdan/temporal-precision/internal/score"
	"github.com/vovakirdan/temporal-precision/internal/timing"
)

// Game policy constants.
const (
	DefaultTarget              = 3.0    // Seconds
	MaxTarget                  = 3600.0 // Seconds, inclusive
	DefaultCelebrationDuration = 1500 * time.Millisecond
)

// Rejection errors returned by SetTargetTime.
var (
	ErrTargetOutOfRange = errors.New("game: target time must be in (0, 3600] seconds")
	ErrTargetLocked     = errors.New("game: target time can only change while idle")
)

// ValidateTarget checks that v is a usable target time in seconds.
func ValidateTarget(v float64) error {
	if math.IsNaN(v) || v <= 0 || v > MaxTarget {
		return fmt.Errorf("%w: got %v", ErrTargetOutOfRange, v)
	}
	return nil
}

// Options configures a Controller. Zero values select defaults.
type Options struct {
	Target              float64           // Initial target time in seconds
	MaxHistory          int               // Attempts kept for display
	ThemeCount          int               // Number of cosmetic themes to cycle through
	StartTheme          int               // Initial theme index
	CelebrationDuration time.Duration     // How long the celebratory flag stays on
	CelebrationPolicy   CelebrationPolicy // Overlapping-record behavior

	Clock     clock.Clock          // Monotonic time source
	Scheduler clock.Scheduler      // One-shot callbacks (celebration clear)
	Frames    clock.FrameScheduler // Per-frame sampling callback
	Keeper    *score.Keeper        // Attempt recording (ids, timestamps)
	Logger    *log.Logger
}

// DefaultOptions returns options with the default game policy.
func DefaultOptions() Options {
	return Options{
		Target:              DefaultTarget,
		MaxHistory:          score.DefaultMaxHistory,
		ThemeCount:          1,
		CelebrationDuration: DefaultCelebrationDuration,
		CelebrationPolicy:   CelebrationRestart,
	}
}

// Outcome reports what a trigger did.
type Outcome struct {
	Kind      OutcomeKind
	Attempt   score.Attempt // Set when Kind is OutcomeStopped
	NewRecord bool          // Set when the stop beat the session best
}

// Snapshot is a point-in-time copy of the controller's observable state.
type Snapshot struct {
	Phase       Phase
	Elapsed     time.Duration // Last sample while Running, frozen while Reviewing, zero while Idle
	Target      float64
	Board       score.ScoreBoard
	ThemeIndex  int // Cosmetic only
	ThemeCount  int
	Celebrating bool
	Last        score.Attempt // Most recent attempt, valid when HasLast
	HasLast     bool
}

// Controller is the game state machine. All methods are safe for concurrent
// use; every mutation runs under one lock, so callbacks arriving on
// scheduler goroutines behave as a single logical thread.
type Controller struct {
	mu     sync.Mutex
	engine *timing.Engine
	keeper *score.Keeper
	sched  clock.Scheduler
	frames clock.FrameScheduler
	logger *log.Logger

	phase   Phase
	target  float64
	elapsed time.Duration
	board   score.ScoreBoard
	last    *score.Attempt

	themeIndex int
	themeCount int

	// Frame sampling; runGen invalidates callbacks from finished runs
	runGen     uint64
	stopFrames func()

	// Celebratory flag
	celebrating     bool
	celebrationDur  time.Duration
	policy          CelebrationPolicy
	celebrationGen  uint64
	celebration     clock.Timer            // restart policy
	celebrationTail map[uint64]clock.Timer // independent policy

	subs    map[uint64]*Subscription
	nextSub uint64
	closed  bool
}

// New creates an idle controller.
func New(opts Options) (*Controller, error) {
	if opts.Target == 0 {
		opts.Target = DefaultTarget
	}
	if err := ValidateTarget(opts.Target); err != nil {
		return nil, err
	}
	if opts.MaxHistory < 0 {
		return nil, fmt.Errorf("game: max history must not be negative, got %d", opts.MaxHistory)
	}
	if opts.ThemeCount < 0 {
		return nil, fmt.Errorf("game: theme count must not be negative, got %d", opts.ThemeCount)
	}
	if opts.ThemeCount == 0 {
		opts.ThemeCount = 1
	}
	if opts.CelebrationDuration < 0 {
		return nil, fmt.Errorf("game: celebration duration must not be negative, got %v", opts.CelebrationDuration)
	}
	if opts.CelebrationDuration == 0 {
		opts.CelebrationDuration = DefaultCelebrationDuration
	}
	if opts.CelebrationPolicy == "" {
		opts.CelebrationPolicy = CelebrationRestart
	}
	if !opts.CelebrationPolicy.Valid() {
		return nil, fmt.Errorf("game: unknown celebration policy %q", opts.CelebrationPolicy)
	}
	if opts.Clock == nil {
		opts.Clock = clock.System()
	}
	if opts.Scheduler == nil {
		opts.Scheduler = clock.SystemScheduler()
	}
	if opts.Frames == nil {
		opts.Frames = clock.NewTicker(clock.DefaultFrameRate)
	}
	if opts.Keeper == nil {
		opts.Keeper = score.NewKeeper(nil, nil)
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	start := opts.StartTheme % opts.ThemeCount
	if start < 0 {
		start += opts.ThemeCount
	}

	return &Controller{
		engine:          timing.NewEngine(opts.Clock),
		keeper:          opts.Keeper,
		sched:           opts.Scheduler,
		frames:          opts.Frames,
		logger:          opts.Logger,
		phase:           PhaseIdle,
		target:          opts.Target,
		board:           score.NewScoreBoard(opts.MaxHistory),
		themeIndex:      start,
		themeCount:      opts.ThemeCount,
		celebrationDur:  opts.CelebrationDuration,
		policy:          opts.CelebrationPolicy,
		celebrationTail: make(map[uint64]clock.Timer),
		subs:            make(map[uint64]*Subscription),
	}, nil
}

// PerformAction is the single trigger entry point. Keyboard and pointer
// input must both funnel here.
//
//	Idle      -> start the run                          -> Running
//	Running   -> stop, score, advance theme, celebrate  -> Reviewing
//	Reviewing -> clear the run                          -> Idle
func (c *Controller) PerformAction() Outcome {
	c.mu.Lock()
	defer c.mu.Unlock()

	var out Outcome
	switch c.phase {
	case PhaseIdle:
		out = c.start()
	case PhaseRunning:
		out = c.stop()
	default:
		out = c.reset()
	}

	c.publish()
	return out
}

func (c *Controller) start() Outcome {
	if !c.engine.Start() {
		// Engine out of step with the phase; discard and start clean
		c.logger.Warn("engine not idle at start, resetting")
		c.engine.Reset()
		c.engine.Start()
	}

	c.runGen++
	gen := c.runGen
	c.elapsed = 0
	c.phase = PhaseRunning

	if !c.closed {
		c.stopFrames = c.frames.StartFrames(func() {
			c.onFrame(gen)
		})
	}

	c.logger.Debug("run started", "target", c.target)
	return Outcome{Kind: OutcomeStarted}
}

func (c *Controller) stop() Outcome {
	final, _ := c.engine.Stop()
	c.cancelFrames()
	c.runGen++

	c.elapsed = final
	res := c.keeper.Record(c.board, c.target, final.Seconds())
	c.board = res.Board
	attempt := res.Attempt
	c.last = &attempt

	c.themeIndex = (c.themeIndex + 1) % c.themeCount
	c.phase = PhaseReviewing

	if res.NewRecord {
		c.celebrate()
	}

	c.logger.Debug("run stopped",
		"target", attempt.Target,
		"stopped", attempt.Stopped,
		"delta", attempt.Delta,
		"record", res.NewRecord,
	)

	return Outcome{
		Kind:      OutcomeStopped,
		Attempt:   attempt,
		NewRecord: res.NewRecord,
	}
}

func (c *Controller) reset() Outcome {
	c.engine.Reset()
	c.elapsed = 0
	c.phase = PhaseIdle

	c.logger.Debug("run reset")
	return Outcome{Kind: OutcomeReset}
}

// onFrame samples the running engine for display.
// Callbacks from a finished run, or arriving outside Running, are dropped.
func (c *Controller) onFrame(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase != PhaseRunning || gen != c.runGen {
		return
	}
	d, ok := c.engine.Sample()
	if !ok {
		return
	}
	c.elapsed = d
	c.publish()
}

func (c *Controller) cancelFrames() {
	if c.stopFrames != nil {
		c.stopFrames()
		c.stopFrames = nil
	}
}

// celebrate raises the celebratory flag and schedules its auto-clear.
func (c *Controller) celebrate() {
	c.celebrating = true
	if c.closed {
		return
	}

	c.celebrationGen++
	gen := c.celebrationGen

	switch c.policy {
	case CelebrationIndependent:
		c.celebrationTail[gen] = c.sched.AfterFunc(c.celebrationDur, func() {
			c.endIndependentCelebration(gen)
		})
	default:
		if c.celebration != nil {
			c.celebration.Stop()
		}
		c.celebration = c.sched.AfterFunc(c.celebrationDur, func() {
			c.endCelebration(gen)
		})
	}
}

func (c *Controller) endCelebration(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || gen != c.celebrationGen {
		return
	}
	c.celebration = nil
	c.celebrating = false
	c.publish()
}

func (c *Controller) endIndependentCelebration(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, pending := c.celebrationTail[gen]; !pending || c.closed {
		return
	}
	delete(c.celebrationTail, gen)
	c.celebrating = false
	c.publish()
}

// SetTargetTime changes the target. Rejected with ErrTargetOutOfRange for
// values outside (0, 3600] and with ErrTargetLocked unless the phase is Idle;
// the previous value is kept on rejection.
func (c *Controller) SetTargetTime(v float64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := ValidateTarget(v); err != nil {
		c.logger.Debug("target rejected", "value", v, "reason", "range")
		return err
	}
	if c.phase != PhaseIdle {
		c.logger.Debug("target rejected", "value", v, "phase", c.phase)
		return ErrTargetLocked
	}

	c.target = v
	c.publish()
	return nil
}

// Target returns the current target time in seconds.
func (c *Controller) Target() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.target
}

// Phase returns the current phase.
func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// Elapsed returns the displayed elapsed time.
func (c *Controller) Elapsed() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.elapsed
}

// Board returns the session score board.
func (c *Controller) Board() score.ScoreBoard {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.board
}

// ThemeIndex returns the cosmetic theme index. Presentation layers may ignore it.
func (c *Controller) ThemeIndex() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.themeIndex
}

// Celebrating reports whether the celebratory flag is on.
func (c *Controller) Celebrating() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.celebrating
}

// Snapshot returns a copy of the observable state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) snapshotLocked() Snapshot {
	snap := Snapshot{
		Phase:       c.phase,
		Elapsed:     c.elapsed,
		Target:      c.target,
		Board:       c.board,
		ThemeIndex:  c.themeIndex,
		ThemeCount:  c.themeCount,
		Celebrating: c.celebrating,
	}
	if c.last != nil {
		snap.Last = *c.last
		snap.HasLast = true
	}
	return snap
}

// Subscribe registers an observer. The current state is delivered immediately.
func (c *Controller) Subscribe() *Subscription {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.nextSub++
	sub := newSubscription(c.nextSub, c)
	if c.closed {
		sub.close()
		return sub
	}
	c.subs[sub.id] = sub
	sub.send(c.snapshotLocked())
	return sub
}

func (c *Controller) unsubscribe(id uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.subs, id)
}

// publish pushes the current state to every observer. Caller holds c.mu.
func (c *Controller) publish() {
	if len(c.subs) == 0 {
		return
	}
	snap := c.snapshotLocked()
	for _, sub := range c.subs {
		sub.send(snap)
	}
}

// Close stops frame sampling and pending timers and ends all subscriptions.
// The controller keeps answering accessors afterwards.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true

	c.cancelFrames()
	c.runGen++
	if c.celebration != nil {
		c.celebration.Stop()
		c.celebration = nil
	}
	for gen, t := range c.celebrationTail {
		t.Stop()
		delete(c.celebrationTail, gen)
	}
	for id, sub := range c.subs {
		sub.close()
		delete(c.subs, id)
	}
}
