package jobmanager

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/nixpig/slideworker/internal/artifact"
	"github.com/nixpig/slideworker/internal/jobmanager/cgroups"
	"golang.org/x/sync/semaphore"
)

// Resolver turns a submitted target into a local path a worker can open.
type Resolver interface {
	Resolve(ctx context.Context, target string) (string, error)
}

// Manager launches jobs, tracks them in a Registry and publishes their
// progress on a Broadcaster.
type Manager struct {
	registry    *Registry
	broadcaster *Broadcaster
	resolver    Resolver
	profiles    map[JobType]Profile
	logger      *slog.Logger
	now         func() time.Time

	cgroupRoot           string
	errorPublishInterval time.Duration
	slots                *semaphore.Weighted

	ctx    context.Context
	cancel context.CancelCauseFunc
	wg     sync.WaitGroup

	// submitMu makes dedup-then-create atomic with respect to other
	// submissions and orders every launch before Shutdown's Wait.
	submitMu sync.Mutex
}

// Option configures a Manager.
type Option func(*Manager)

func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) { m.logger = logger }
}

// WithClock replaces time.Now for every timestamp the Manager records.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithProfiles overrides the policy for the given job types. Types not in
// profiles keep their defaults.
func WithProfiles(profiles map[JobType]Profile) Option {
	return func(m *Manager) {
		for t, p := range profiles {
			m.profiles[t] = p
		}
	}
}

// WithMaxConcurrent bounds how many workers run at once. Zero means
// unbounded.
func WithMaxConcurrent(n int) Option {
	return func(m *Manager) {
		if n > 0 {
			m.slots = semaphore.NewWeighted(int64(n))
		}
	}
}

// WithCgroupRoot runs each worker with resource limits in its own cgroup
// under root.
func WithCgroupRoot(root string) Option {
	return func(m *Manager) { m.cgroupRoot = root }
}

// WithErrorPublishInterval sets the minimum gap between broadcasts caused by
// worker stderr.
func WithErrorPublishInterval(d time.Duration) Option {
	return func(m *Manager) { m.errorPublishInterval = d }
}

func WithBroadcaster(b *Broadcaster) Option {
	return func(m *Manager) { m.broadcaster = b }
}

// NewManager creates a Manager that resolves targets through resolver.
func NewManager(resolver Resolver, opts ...Option) (*Manager, error) {
	if resolver == nil {
		return nil, errors.New("resolver is required")
	}

	m := &Manager{
		resolver:             resolver,
		profiles:             DefaultProfiles(),
		logger:               slog.New(slog.DiscardHandler),
		now:                  time.Now,
		errorPublishInterval: time.Second,
	}

	for _, opt := range opts {
		opt(m)
	}

	for t, p := range m.profiles {
		if err := p.validate(); err != nil {
			return nil, fmt.Errorf("%s profile: %w", t, err)
		}
	}

	if m.cgroupRoot != "" {
		if err := cgroups.ValidateRoot(m.cgroupRoot); err != nil {
			return nil, err
		}
	}

	if m.broadcaster == nil {
		m.broadcaster = NewBroadcaster(0)
	}

	m.registry = NewRegistry(m.now)
	m.ctx, m.cancel = context.WithCancelCause(context.Background())

	return m, nil
}

// Submit validates the request, registers a Started job, starts its worker
// in the background and returns the job id without waiting for the worker.
func (m *Manager) Submit(
	ctx context.Context,
	jobType JobType,
	target string,
) (string, error) {
	profile, ok := m.profiles[jobType]
	if !ok {
		return "", &ValidationError{
			Field:  "job_type",
			Reason: fmt.Sprintf("unsupported job type %q", jobType),
		}
	}

	target = strings.TrimSpace(target)
	if target == "" {
		return "", &ValidationError{Field: "target", Reason: "target is required"}
	}

	path, err := m.resolver.Resolve(ctx, target)
	if err != nil {
		if errors.Is(err, artifact.ErrNotFound) || errors.Is(err, artifact.ErrInvalidName) {
			return "", &ValidationError{Field: "target", Reason: err.Error(), Err: err}
		}

		return "", fmt.Errorf("resolve target: %w", err)
	}

	m.submitMu.Lock()
	defer m.submitMu.Unlock()

	if m.ctx.Err() != nil {
		return "", ErrShuttingDown
	}

	if profile.Dedup {
		removed := m.registry.DeleteWhere(func(r Record) bool {
			return r.Type == jobType && r.Target == target
		})

		for _, r := range removed {
			m.logger.Info("replaced duplicate job", "id", r.ID, "type", jobType.String(), "target", target)
		}
	}

	rec, err := m.registry.Create(jobType, target, profile.EstimatedTotal)
	if err != nil {
		return "", err
	}

	m.logger.Info("job submitted", "id", rec.ID, "type", jobType.String(), "target", target)

	mon := m.newMonitor(rec, path, profile)

	// The initial Event goes out under the monitor lock so it cannot be
	// overtaken by the Running Event.
	mon.mu.Lock()
	m.broadcaster.Publish(Event{ID: rec.ID, Job: rec})
	mon.mu.Unlock()

	m.wg.Go(func() {
		if err := m.acquire(m.ctx); err != nil {
			mon.fail(fmt.Errorf("wait for worker slot: %w", err))
			return
		}
		defer m.release()

		mon.run(m.ctx)
	})

	return rec.ID, nil
}

// Query returns the job with the given id. A job whose retention has passed
// is evicted and returned one last time together with ErrJobExpired.
func (m *Manager) Query(id string) (Record, error) {
	if rec, evicted := m.SweepOne(id); evicted {
		return rec, ErrJobExpired
	}

	return m.registry.Get(id)
}

// List returns every job currently held, oldest first.
func (m *Manager) List() []Record {
	return m.registry.List()
}

// Subscribe registers an observer for Events of the given job, or of every
// job when jobID is empty.
func (m *Manager) Subscribe(jobID string) *Subscription {
	return m.broadcaster.Subscribe(jobID)
}

func (m *Manager) Broadcaster() *Broadcaster {
	return m.broadcaster
}

func (m *Manager) Registry() *Registry {
	return m.registry
}

// Profile returns the policy in force for jobType.
func (m *Manager) Profile(jobType JobType) (Profile, bool) {
	p, ok := m.profiles[jobType]
	return p, ok
}

// Shutdown kills every running worker, waits for their monitors to record the
// outcome and then closes all subscriptions.
func (m *Manager) Shutdown() {
	m.submitMu.Lock()
	m.cancel(ErrShuttingDown)
	m.submitMu.Unlock()

	m.wg.Wait()
	m.broadcaster.Close()
}

func (m *Manager) acquire(ctx context.Context) error {
	if m.slots == nil {
		return nil
	}

	return m.slots.Acquire(ctx, 1)
}

func (m *Manager) release() {
	if m.slots != nil {
		m.slots.Release(1)
	}
}
