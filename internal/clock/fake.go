package clock

import (
	"sort"
	"sync"
	"time"
)

// Fake is a manually driven Clock, Scheduler and FrameScheduler for tests.
// Time only moves on Advance; frames only fire on Frame.
// Callbacks run synchronously on the caller's goroutine with no lock held,
// so they may call back into the fake.
type Fake struct {
	mu     sync.Mutex
	now    time.Duration
	seq    uint64
	timers []*fakeTimer
	frames map[uint64]func()
}

// NewFake creates a fake clock starting at the given offset.
func NewFake(start time.Duration) *Fake {
	return &Fake{
		now:    start,
		frames: make(map[uint64]func()),
	}
}

// Now returns the current fake time.
func (f *Fake) Now() time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

// Advance moves time forward by d and fires every timer that became due,
// in deadline order. Timers scheduled by callbacks during Advance fire too
// if their deadline falls inside the window.
func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	target := f.now + d
	f.mu.Unlock()

	for {
		f.mu.Lock()
		next := f.nextDue(target)
		if next == nil {
			f.now = target
			f.mu.Unlock()
			return
		}
		f.now = next.at
		next.fired = true
		f.remove(next)
		fn := next.fn
		f.mu.Unlock()

		fn()
	}
}

// nextDue returns the earliest live timer due at or before target.
// Caller holds f.mu.
func (f *Fake) nextDue(target time.Duration) *fakeTimer {
	sort.SliceStable(f.timers, func(i, j int) bool {
		if f.timers[i].at == f.timers[j].at {
			return f.timers[i].id < f.timers[j].id
		}
		return f.timers[i].at < f.timers[j].at
	})
	if len(f.timers) == 0 || f.timers[0].at > target {
		return nil
	}
	return f.timers[0]
}

// remove drops t from the pending list. Caller holds f.mu.
func (f *Fake) remove(t *fakeTimer) bool {
	for i, p := range f.timers {
		if p == t {
			f.timers = append(f.timers[:i], f.timers[i+1:]...)
			return true
		}
	}
	return false
}

// AfterFunc schedules fn to run once fake time reaches now+d.
func (f *Fake) AfterFunc(d time.Duration, fn func()) Timer {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.seq++
	t := &fakeTimer{owner: f, id: f.seq, at: f.now + d, fn: fn}
	f.timers = append(f.timers, t)
	return t
}

// Pending returns the number of timers that have not fired or been stopped.
func (f *Fake) Pending() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.timers)
}

// StartFrames registers a frame callback until stop is called.
func (f *Fake) StartFrames(fn func()) (stop func()) {
	f.mu.Lock()
	f.seq++
	id := f.seq
	f.frames[id] = fn
	f.mu.Unlock()

	return func() {
		f.mu.Lock()
		delete(f.frames, id)
		f.mu.Unlock()
	}
}

// Frame fires every registered frame callback once.
func (f *Fake) Frame() {
	f.mu.Lock()
	ids := make([]uint64, 0, len(f.frames))
	for id := range f.frames {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	fns := make([]func(), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, f.frames[id])
	}
	f.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// Frames returns the number of active frame callbacks.
func (f *Fake) Frames() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.frames)
}

// fakeTimer is a pending callback on a Fake.
type fakeTimer struct {
	owner *Fake
	id    uint64
	at    time.Duration
	fn    func()
	fired bool
}

// Stop cancels the timer if it has not fired yet.
func (t *fakeTimer) Stop() bool {
	t.owner.mu.Lock()
	defer t.owner.mu.Unlock()
	if t.fired {
		return false
	}
	return t.owner.remove(t)
}
