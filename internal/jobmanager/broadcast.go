package jobmanager

import (
	"sync"
	"sync/atomic"
)

// EventJobUpdate is the name under which Events are pushed to observers.
const EventJobUpdate = "job_update"

// defaultSubscriberBuffer is the per-subscriber queue length. A subscriber
// that falls further behind than this loses events.
const defaultSubscriberBuffer = 256

// Event carries a snapshot of a job at the time it was published.
type Event struct {
	ID  string `json:"job_id"`
	Job Record `json:"status"`
}

// Broadcaster fans Events out to every current Subscription. Delivery is
// best-effort: Publish never blocks on a slow subscriber, and subscribers
// only see Events published after they subscribed.
type Broadcaster struct {
	subs       map[*Subscription]struct{}
	bufferSize int
	closed     bool

	mu sync.RWMutex
}

// NewBroadcaster creates a Broadcaster whose subscribers buffer up to
// bufferSize Events. A bufferSize <= 0 uses the default.
func NewBroadcaster(bufferSize int) *Broadcaster {
	if bufferSize <= 0 {
		bufferSize = defaultSubscriberBuffer
	}

	return &Broadcaster{
		subs:       make(map[*Subscription]struct{}),
		bufferSize: bufferSize,
	}
}

// Subscription is a registered observer of a Broadcaster.
type Subscription struct {
	jobID   string
	events  chan Event
	dropped atomic.Uint64

	b    *Broadcaster
	once sync.Once
}

// Subscribe registers a new observer. With a non-empty jobID only Events for
// that job are delivered.
func (b *Broadcaster) Subscribe(jobID string) *Subscription {
	s := &Subscription{
		jobID:  jobID,
		events: make(chan Event, b.bufferSize),
		b:      b,
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		s.once.Do(func() { close(s.events) })
		return s
	}

	b.subs[s] = struct{}{}

	return s
}

// Unsubscribe removes s and closes its Events channel. Safe to call more than
// once.
func (b *Broadcaster) Unsubscribe(s *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.subs[s]; !ok {
		return
	}

	delete(b.subs, s)
	s.once.Do(func() { close(s.events) })
}

// Publish delivers e to every matching subscriber that has room for it.
func (b *Broadcaster) Publish(e Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for s := range b.subs {
		if s.jobID != "" && s.jobID != e.ID {
			continue
		}

		select {
		case s.events <- e:
		default:
			s.dropped.Add(1)
		}
	}
}

// Subscribers returns the number of registered observers.
func (b *Broadcaster) Subscribers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return len(b.subs)
}

// Close unsubscribes everyone. Later subscriptions are closed immediately.
func (b *Broadcaster) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.closed = true

	for s := range b.subs {
		delete(b.subs, s)
		s.once.Do(func() { close(s.events) })
	}
}

// Events returns the channel Events are delivered on. It is closed when the
// subscription ends.
func (s *Subscription) Events() <-chan Event {
	return s.events
}

// Dropped returns how many Events were discarded because the subscriber's
// buffer was full.
func (s *Subscription) Dropped() uint64 {
	return s.dropped.Load()
}

// Close unsubscribes s.
func (s *Subscription) Close() {
	s.b.Unsubscribe(s)
}
