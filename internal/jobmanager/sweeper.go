package jobmanager

import (
	"context"
	"time"
)

// SweepOne evicts the job with the given id if its retention has passed and
// returns the evicted snapshot.
func (m *Manager) SweepOne(id string) (Record, bool) {
	now := m.now()

	rec, ok := m.registry.DeleteIf(id, func(r Record) bool {
		return expired(r, now)
	})
	if ok {
		m.logger.Info("evicted expired job", "id", id)
	}

	return rec, ok
}

// SweepAll evicts every job whose retention has passed and returns how many
// were removed.
func (m *Manager) SweepAll() int {
	now := m.now()

	removed := m.registry.DeleteWhere(func(r Record) bool {
		return expired(r, now)
	})

	if len(removed) > 0 {
		m.logger.Info("evicted expired jobs", "count", len(removed))
	}

	return len(removed)
}

// RunSweeper calls SweepAll every interval until ctx is done.
func (m *Manager) RunSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.SweepAll()
		}
	}
}

// expired reports whether r is terminal and strictly past its ExpireAt.
func expired(r Record, now time.Time) bool {
	return r.Status.Terminal() && r.ExpireAt != nil && now.After(*r.ExpireAt)
}
