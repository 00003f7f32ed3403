package game

import "sync"

// Subscription delivers controller snapshots to one observer.
// Delivery is latest-wins: a slow observer loses stale snapshots instead of
// blocking the controller.
type Subscription struct {
	id       uint64
	owner    *Controller
	updates  chan Snapshot
	done     chan struct{}
	doneOnce sync.Once
}

func newSubscription(id uint64, owner *Controller) *Subscription {
	return &Subscription{
		id:      id,
		owner:   owner,
		updates: make(chan Snapshot, 1),
		done:    make(chan struct{}),
	}
}

// Updates returns the channel snapshots arrive on.
func (s *Subscription) Updates() <-chan Snapshot {
	return s.updates
}

// Done returns a channel that closes when the subscription ends.
func (s *Subscription) Done() <-chan struct{} {
	return s.done
}

// Close detaches the subscription from its controller.
func (s *Subscription) Close() {
	if s.owner != nil {
		s.owner.unsubscribe(s.id)
	}
	s.close()
}

func (s *Subscription) close() {
	s.doneOnce.Do(func() {
		close(s.done)
	})
}

// send replaces any undelivered snapshot with snap.
func (s *Subscription) send(snap Snapshot) {
	select {
	case <-s.done:
		return
	default:
	}

	select {
	case s.updates <- snap:
		return
	default:
	}

	// Buffer full: drop the stale snapshot and retry
	select {
	case <-s.updates:
	default:
	}
	select {
	case s.updates <- snap:
	default:
	}
}
