package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"lumen/internal/modules/focus/domain"
	focusout "lumen/internal/modules/focus/port/out"
	"lumen/internal/platform/clock"
	"lumen/internal/platform/id"
)

// armed identifies one scheduled callback. A callback only acts while its
// handle is still the one stored in the controller's slot.
type armed struct {
	timer clock.Timer
}

// Controller owns the focus-session lifecycle: idle, pressing, focusing and
// completed. All timers are owned here and every state exit that supersedes
// one stops it first.
type Controller struct {
	mu    sync.Mutex
	clock clock.Clock
	sched clock.Scheduler
	ids   id.Generator
	store focusout.SessionStore
	log   *zap.Logger

	state        domain.State
	origin       domain.State
	active       *domain.FocusSession
	bound        int
	elapsed      time.Duration
	lastDuration int
	pressStarted time.Time

	press *armed
	tick  *armed
	done  *armed

	closed    bool
	observers map[int]func(domain.Snapshot)
	nextObs   int
}

func NewController(clk clock.Clock, sched clock.Scheduler, ids id.Generator, store focusout.SessionStore, log *zap.Logger) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	return &Controller{
		clock:     clk,
		sched:     sched,
		ids:       ids,
		store:     store,
		log:       log,
		observers: map[int]func(domain.Snapshot){},
	}
}

// Subscribe registers fn for every snapshot after a transition or tick. fn
// runs outside the controller lock and may call back into the controller.
func (c *Controller) Subscribe(fn func(domain.Snapshot)) (unsubscribe func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := c.nextObs
	c.nextObs++
	c.observers[key] = fn
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.observers, key)
	}
}

func (c *Controller) Snapshot() domain.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// BeginPress arms the hold deadline. Valid from idle, focusing and completed;
// a completed display is dismissed and the press starts from idle.
func (c *Controller) BeginPress() domain.Snapshot {
	return c.mutate(func() {
		switch c.state {
		case domain.StateIdle:
			c.origin = domain.StateIdle
		case domain.StateCompleted:
			c.stop(&c.done)
			c.resetDisplayLocked()
			c.origin = domain.StateIdle
		case domain.StateFocusing:
			c.origin = domain.StateFocusing
		default:
			return
		}
		c.state = domain.StatePressing
		c.pressStarted = c.clock.Now()
		c.stop(&c.press)
		c.press = c.arm(&c.press, domain.PressHold, c.pressCompleteLocked)
	})
}

// CancelPress abandons a hold before its deadline and returns to the state
// the press started from. It is a no-op outside Pressing.
func (c *Controller) CancelPress() domain.Snapshot {
	return c.mutate(func() {
		if c.state != domain.StatePressing {
			return
		}
		c.stop(&c.press)
		c.state = c.origin
		c.pressStarted = time.Time{}
	})
}

// Toggle starts or stops a session immediately, as the keyboard shortcut does.
func (c *Controller) Toggle() domain.Snapshot {
	return c.mutate(func() {
		if c.state == domain.StatePressing {
			c.stop(&c.press)
			c.state = c.origin
			c.pressStarted = time.Time{}
		}
		if c.active != nil {
			c.closeLocked(domain.ElapsedSeconds(c.active.StartTime, c.clock.Now()))
			return
		}
		c.stop(&c.done)
		c.startLocked()
	})
}

// SetBound sets the configured minutes (0 clears the bound). A running
// session picks it up at its next tick.
func (c *Controller) SetBound(minutes int) domain.Snapshot {
	return c.mutate(func() {
		c.bound = domain.ClampMinutes(minutes)
	})
}

// Restore resumes an open session left in storage by a previous run. Older
// open records beyond the most recent are closed with a zero duration so at
// most one session stays open.
func (c *Controller) Restore(ctx context.Context) domain.Snapshot {
	return c.mutate(func() {
		c.restoreLocked(ctx)
	})
}

// Refresh re-reads storage after another process changed it. A session
// closed elsewhere completes here with its stored duration; while idle, an
// open session started elsewhere is resumed.
func (c *Controller) Refresh(ctx context.Context) domain.Snapshot {
	return c.mutate(func() {
		if c.active == nil {
			c.restoreLocked(ctx)
			return
		}
		sessions, ok := c.loadLocked(ctx)
		if !ok {
			return
		}
		if idx := indexOf(sessions, c.active.ID); idx >= 0 && !sessions[idx].IsOpen() {
			if c.state == domain.StatePressing {
				c.stop(&c.press)
				c.pressStarted = time.Time{}
			}
			c.log.Info("focus session was closed elsewhere", zap.String("id", c.active.ID))
			c.completeLocked(sessions[idx])
		}
	})
}

func (c *Controller) restoreLocked(ctx context.Context) {
	if c.state != domain.StateIdle || c.active != nil {
		return
	}
	sessions, ok := c.loadLocked(ctx)
	if !ok {
		return
	}
	latest := -1
	for i, s := range sessions {
		if s.IsOpen() && (latest < 0 || s.StartTime.After(sessions[latest].StartTime)) {
			latest = i
		}
	}
	if latest < 0 {
		return
	}
	stale := 0
	for i := range sessions {
		if i != latest && sessions[i].IsOpen() {
			sessions[i].Close(sessions[i].StartTime, 0)
			stale++
		}
	}
	if stale > 0 {
		c.log.Warn("closed stale open focus sessions", zap.Int("count", stale))
		c.saveLocked(ctx, sessions)
	}
	resumed := sessions[latest]
	c.active = &resumed
	c.state = domain.StateFocusing
	c.elapsed = c.clock.Now().Sub(resumed.StartTime)
	c.log.Info("resumed focus session", zap.String("id", resumed.ID), zap.Time("started_at", resumed.StartTime))
	c.tick = c.arm(&c.tick, domain.TickInterval, c.tickLocked)
}

// Close cancels every timer. Callbacks that were already in flight are ignored.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.stop(&c.press)
	c.stop(&c.tick)
	c.stop(&c.done)
}

func (c *Controller) pressCompleteLocked() {
	if c.state != domain.StatePressing {
		return
	}
	c.pressStarted = time.Time{}
	if c.origin == domain.StateFocusing && c.active != nil {
		c.state = domain.StateFocusing
		c.closeLocked(domain.ElapsedSeconds(c.active.StartTime, c.clock.Now()))
		return
	}
	c.state = domain.StateIdle
	c.startLocked()
}

func (c *Controller) tickLocked() {
	if c.active == nil {
		return
	}
	c.elapsed = c.clock.Now().Sub(c.active.StartTime)
	if c.bound > 0 && domain.Progress(c.elapsed, c.bound) >= 100 {
		if c.state == domain.StatePressing {
			c.stop(&c.press)
			c.pressStarted = time.Time{}
		}
		c.closeLocked(c.bound * 60)
		return
	}
	c.tick = c.arm(&c.tick, domain.TickInterval, c.tickLocked)
}

func (c *Controller) completionElapsedLocked() {
	if c.state != domain.StateCompleted {
		return
	}
	c.state = domain.StateIdle
	c.resetDisplayLocked()
}

func (c *Controller) startLocked() {
	ctx := context.Background()
	now := c.clock.Now()
	session := domain.NewSession(c.ids.New(), now)

	// A failed read must not be answered with a write of a partial list.
	if sessions, ok := c.loadLocked(ctx); ok {
		c.saveLocked(ctx, append(sessions, session))
	}

	c.active = &session
	c.state = domain.StateFocusing
	c.elapsed = 0
	c.lastDuration = 0
	c.tick = c.arm(&c.tick, domain.TickInterval, c.tickLocked)
	c.log.Info("focus session started", zap.String("id", session.ID))
}

// closeLocked ends the active session with the given duration in seconds and
// enters Completed. A record already closed in storage keeps its values.
func (c *Controller) closeLocked(seconds int) {
	ctx := context.Background()
	closed := *c.active
	closed.Close(c.clock.Now(), seconds)

	if sessions, ok := c.loadLocked(ctx); ok {
		idx := indexOf(sessions, closed.ID)
		switch {
		case idx >= 0 && !sessions[idx].IsOpen():
			c.log.Info("focus session was closed elsewhere; keeping stored duration", zap.String("id", closed.ID))
			closed = sessions[idx]
		case idx >= 0:
			sessions[idx] = closed
			c.saveLocked(ctx, sessions)
		default:
			c.saveLocked(ctx, append(sessions, closed))
		}
	}
	c.completeLocked(closed)
}

// completeLocked enters Completed showing the duration of the closed record.
func (c *Controller) completeLocked(closed domain.FocusSession) {
	c.stop(&c.tick)
	seconds := 0
	if closed.Duration != nil {
		seconds = *closed.Duration
	}
	c.active = nil
	c.elapsed = time.Duration(seconds) * time.Second
	c.lastDuration = seconds
	c.state = domain.StateCompleted
	c.stop(&c.done)
	c.done = c.arm(&c.done, domain.CompletionWindow, c.completionElapsedLocked)
	c.log.Info("focus session completed", zap.String("id", closed.ID), zap.Int("duration_seconds", seconds))
}

func (c *Controller) resetDisplayLocked() {
	c.elapsed = 0
	c.lastDuration = 0
}

// loadLocked reports false when storage could not be read. Callers then keep
// the in-memory transition and skip their write.
func (c *Controller) loadLocked(ctx context.Context) ([]domain.FocusSession, bool) {
	sessions, err := c.store.LoadSessions(ctx)
	if err != nil {
		c.log.Warn("load focus sessions; skipping write", zap.Error(err))
		return nil, false
	}
	return sessions, true
}

func indexOf(sessions []domain.FocusSession, id string) int {
	for i := range sessions {
		if sessions[i].ID == id {
			return i
		}
	}
	return -1
}

func (c *Controller) saveLocked(ctx context.Context, sessions []domain.FocusSession) {
	if err := c.store.SaveSessions(ctx, sessions); err != nil {
		c.log.Warn("save focus sessions", zap.Error(err))
	}
}

func (c *Controller) snapshotLocked() domain.Snapshot {
	snap := domain.Snapshot{
		State:          c.state,
		Origin:         c.origin,
		Elapsed:        c.elapsed,
		BoundMinutes:   c.bound,
		LastDuration:   c.lastDuration,
		PressStartedAt: c.pressStarted,
	}
	if c.active != nil {
		snap.SessionID = c.active.ID
		snap.StartedAt = c.active.StartTime
		snap.Progress = domain.Progress(c.elapsed, c.bound)
	} else if c.state == domain.StateCompleted && c.bound > 0 {
		snap.Progress = domain.Progress(c.elapsed, c.bound)
	}
	return snap
}

// mutate runs fn under the lock and notifies observers afterwards.
func (c *Controller) mutate(fn func()) domain.Snapshot {
	c.mu.Lock()
	if c.closed {
		snap := c.snapshotLocked()
		c.mu.Unlock()
		return snap
	}
	fn()
	snap := c.snapshotLocked()
	observers := c.observersLocked()
	c.mu.Unlock()

	for _, fn := range observers {
		fn(snap)
	}
	return snap
}

func (c *Controller) observersLocked() []func(domain.Snapshot) {
	out := make([]func(domain.Snapshot), 0, len(c.observers))
	for _, fn := range c.observers {
		out = append(out, fn)
	}
	return out
}

// arm schedules fn to run under the lock after d, provided slot still holds
// the returned handle at that time. Callers hold the lock.
func (c *Controller) arm(slot **armed, d time.Duration, fn func()) *armed {
	a := &armed{}
	a.timer = c.sched.AfterFunc(d, func() {
		c.fire(slot, a, fn)
	})
	return a
}

func (c *Controller) fire(slot **armed, a *armed, fn func()) {
	c.mu.Lock()
	if c.closed || *slot != a {
		c.mu.Unlock()
		return
	}
	*slot = nil
	fn()
	snap := c.snapshotLocked()
	observers := c.observersLocked()
	c.mu.Unlock()

	for _, obs := range observers {
		obs(snap)
	}
}

func (c *Controller) stop(slot **armed) {
	if *slot == nil {
		return
	}
	(*slot).timer.Stop()
	*slot = nil
}
