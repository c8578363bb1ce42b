package jobmanager

import (
	"cmp"
	"errors"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// maxIDAttempts bounds retries on the (practically impossible) event of a
// uuid collision.
const maxIDAttempts = 8

var errIDExhausted = errors.New("failed to generate unique job id")

type entry struct {
	mu  sync.Mutex
	rec Record
}

// Registry is a concurrency-safe store of job Records keyed by id.
//
// The map is guarded by its own lock and each entry by another, so mutating
// one job never blocks readers of a different job. Lock order is always map
// then entry.
type Registry struct {
	entries map[string]*entry
	now     func() time.Time
	newID   func() string

	mu sync.RWMutex
}

// NewRegistry creates an empty Registry that reads time from now. A nil now
// uses time.Now.
func NewRegistry(now func() time.Time) *Registry {
	if now == nil {
		now = time.Now
	}

	return &Registry{
		entries: make(map[string]*entry),
		now:     now,
		newID:   uuid.NewString,
	}
}

// Create records a new job in StatusStarted and returns its snapshot.
func (r *Registry) Create(
	jobType JobType,
	target string,
	estimate time.Duration,
) (Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for range maxIDAttempts {
		id := r.newID()
		if _, exists := r.entries[id]; exists {
			continue
		}

		rec := Record{
			ID:             id,
			Type:           jobType,
			Target:         target,
			Status:         StatusStarted,
			ExitCode:       -1,
			StartedAt:      r.now(),
			EstimatedTotal: estimate,
			Version:        1,
		}

		r.entries[id] = &entry{rec: rec}

		return rec.clone(), nil
	}

	return Record{}, errIDExhausted
}

// Get returns a snapshot of the job with the given id or ErrJobNotFound.
// Elapsed is refreshed while the job is not terminal.
func (r *Registry) Get(id string) (Record, error) {
	e, ok := r.lookup(id)
	if !ok {
		return Record{}, ErrJobNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	r.refresh(&e.rec)

	return e.rec.clone(), nil
}

// Mutate applies fn to a copy of the job's Record and commits the copy only
// if fn returns nil, so readers never observe a partial update. It returns
// the committed snapshot. fn must not block; callers publish the returned
// snapshot after Mutate returns.
func (r *Registry) Mutate(id string, fn func(*Record) error) (Record, error) {
	e, ok := r.lookup(id)
	if !ok {
		return Record{}, ErrJobNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	r.refresh(&e.rec)

	next := e.rec.clone()
	if err := fn(&next); err != nil {
		return e.rec.clone(), err
	}

	next.Version = e.rec.Version + 1
	e.rec = next

	return e.rec.clone(), nil
}

// Delete removes the job with the given id and reports whether it existed.
func (r *Registry) Delete(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[id]; !ok {
		return false
	}

	delete(r.entries, id)

	return true
}

// DeleteIf removes the job with the given id if pred holds for its current
// snapshot. The check and the removal are atomic.
func (r *Registry) DeleteIf(id string, pred func(Record) bool) (Record, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[id]
	if !ok {
		return Record{}, false
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if !pred(e.rec) {
		return Record{}, false
	}

	delete(r.entries, id)

	return e.rec.clone(), true
}

// DeleteWhere removes every job for which pred holds and returns the removed
// snapshots.
func (r *Registry) DeleteWhere(pred func(Record) bool) []Record {
	r.mu.Lock()
	defer r.mu.Unlock()

	var removed []Record

	for id, e := range r.entries {
		e.mu.Lock()
		rec := e.rec.clone()
		e.mu.Unlock()

		if pred(rec) {
			delete(r.entries, id)
			removed = append(removed, rec)
		}
	}

	return removed
}

// List returns a snapshot of every job ordered by start time.
func (r *Registry) List() []Record {
	r.mu.RLock()
	entries := slices.Collect(maps.Values(r.entries))
	r.mu.RUnlock()

	records := make([]Record, 0, len(entries))

	for _, e := range entries {
		e.mu.Lock()
		r.refresh(&e.rec)
		records = append(records, e.rec.clone())
		e.mu.Unlock()
	}

	slices.SortFunc(records, func(a, b Record) int {
		if c := a.StartedAt.Compare(b.StartedAt); c != 0 {
			return c
		}

		return cmp.Compare(a.ID, b.ID)
	})

	return records
}

// Len returns the number of jobs held.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.entries)
}

func (r *Registry) lookup(id string) (*entry, bool) {
	r.mu.RLock()
	e, ok := r.entries[id]
	r.mu.RUnlock()

	return e, ok
}

// refresh recomputes the derived Elapsed field. Must hold the entry lock.
func (r *Registry) refresh(rec *Record) {
	if rec.Status.Terminal() {
		return
	}

	rec.Elapsed = max(0, r.now().Sub(rec.StartedAt))
}
