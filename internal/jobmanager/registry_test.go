package jobmanager_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/nixpig/slideworker/internal/jobmanager"
)

type fakeClock struct {
	now time.Time
	mu  sync.Mutex
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = c.now.Add(d)
}

func TestRegistry(t *testing.T) {
	t.Parallel()

	t.Run("Test create", func(t *testing.T) {
		t.Parallel()

		clock := newFakeClock()
		r := jobmanager.NewRegistry(clock.Now)

		rec, err := r.Create(jobmanager.JobTypePatching, "slide1.svs", 600*time.Second)
		if err != nil {
			t.Fatalf("expected not to receive error: got '%v'", err)
		}

		if rec.ID == "" {
			t.Errorf("expected job id")
		}

		if rec.Status != jobmanager.StatusStarted {
			t.Errorf("expected status: got '%s', want '%s'", rec.Status, jobmanager.StatusStarted)
		}

		if rec.ExitCode != -1 {
			t.Errorf("expected exit code: got '%d', want '%d'", rec.ExitCode, -1)
		}

		if !rec.StartedAt.Equal(clock.Now()) {
			t.Errorf("expected started at: got '%v', want '%v'", rec.StartedAt, clock.Now())
		}

		if rec.EstimatedTotalSeconds() != 600 {
			t.Errorf("expected estimate: got '%d', want '%d'", rec.EstimatedTotalSeconds(), 600)
		}

		if rec.ExpireAt != nil {
			t.Errorf("expected no expiry: got '%v'", rec.ExpireAt)
		}
	})

	t.Run("Test unique ids", func(t *testing.T) {
		t.Parallel()

		r := jobmanager.NewRegistry(nil)
		seen := make(map[string]bool)

		var (
			wg sync.WaitGroup
			mu sync.Mutex
		)

		for range 50 {
			wg.Go(func() {
				rec, err := r.Create(jobmanager.JobTypePrediction, "slide.svs", 0)
				if err != nil {
					t.Errorf("expected not to receive error: got '%v'", err)
					return
				}

				mu.Lock()
				defer mu.Unlock()

				if seen[rec.ID] {
					t.Errorf("expected unique id: got duplicate '%s'", rec.ID)
				}

				seen[rec.ID] = true
			})
		}

		wg.Wait()

		if r.Len() != 50 {
			t.Errorf("expected registry size: got '%d', want '%d'", r.Len(), 50)
		}
	})

	t.Run("Test get unknown", func(t *testing.T) {
		t.Parallel()

		r := jobmanager.NewRegistry(nil)

		if _, err := r.Get("missing"); !errors.Is(err, jobmanager.ErrJobNotFound) {
			t.Errorf("expected job not found error: got '%v'", err)
		}

		if _, err := r.Mutate("missing", func(*jobmanager.Record) error { return nil }); !errors.Is(err, jobmanager.ErrJobNotFound) {
			t.Errorf("expected job not found error: got '%v'", err)
		}
	})

	t.Run("Test elapsed refresh", func(t *testing.T) {
		t.Parallel()

		clock := newFakeClock()
		r := jobmanager.NewRegistry(clock.Now)

		rec, _ := r.Create(jobmanager.JobTypeMerging, "slide.svs", 0)

		clock.Advance(42 * time.Second)

		got, err := r.Get(rec.ID)
		if err != nil {
			t.Fatalf("expected not to receive error: got '%v'", err)
		}

		if got.ElapsedSeconds() != 42 {
			t.Errorf("expected elapsed: got '%d', want '%d'", got.ElapsedSeconds(), 42)
		}
	})

	t.Run("Test mutate commits and versions", func(t *testing.T) {
		t.Parallel()

		r := jobmanager.NewRegistry(nil)
		rec, _ := r.Create(jobmanager.JobTypePatching, "slide.svs", 0)

		got, err := r.Mutate(rec.ID, func(rec *jobmanager.Record) error {
			rec.Progress = 25
			rec.Output += "line\n"
			return nil
		})
		if err != nil {
			t.Fatalf("expected not to receive error: got '%v'", err)
		}

		if got.Progress != 25 || got.Output != "line\n" {
			t.Errorf("expected mutation applied: got '%v', '%q'", got.Progress, got.Output)
		}

		if got.Version != rec.Version+1 {
			t.Errorf("expected version: got '%d', want '%d'", got.Version, rec.Version+1)
		}
	})

	t.Run("Test mutate rolls back on error", func(t *testing.T) {
		t.Parallel()

		r := jobmanager.NewRegistry(nil)
		rec, _ := r.Create(jobmanager.JobTypePatching, "slide.svs", 0)

		errBoom := errors.New("boom")

		if _, err := r.Mutate(rec.ID, func(rec *jobmanager.Record) error {
			rec.Progress = 99
			return errBoom
		}); !errors.Is(err, errBoom) {
			t.Errorf("expected mutate error: got '%v'", err)
		}

		got, _ := r.Get(rec.ID)

		if got.Progress != 0 {
			t.Errorf("expected progress unchanged: got '%v', want '%v'", got.Progress, 0)
		}

		if got.Version != rec.Version {
			t.Errorf("expected version unchanged: got '%d', want '%d'", got.Version, rec.Version)
		}
	})

	t.Run("Test snapshots are copies", func(t *testing.T) {
		t.Parallel()

		r := jobmanager.NewRegistry(nil)
		rec, _ := r.Create(jobmanager.JobTypePatching, "slide.svs", 0)

		expireAt := time.Now()
		r.Mutate(rec.ID, func(rec *jobmanager.Record) error {
			rec.ExpireAt = &expireAt
			return nil
		})

		snapshot, _ := r.Get(rec.ID)
		*snapshot.ExpireAt = snapshot.ExpireAt.Add(time.Hour)

		again, _ := r.Get(rec.ID)
		if !again.ExpireAt.Equal(expireAt) {
			t.Errorf("expected stored expiry unchanged: got '%v', want '%v'", again.ExpireAt, expireAt)
		}
	})

	t.Run("Test delete", func(t *testing.T) {
		t.Parallel()

		r := jobmanager.NewRegistry(nil)
		a, _ := r.Create(jobmanager.JobTypePatching, "a.svs", 0)
		b, _ := r.Create(jobmanager.JobTypePatching, "b.svs", 0)
		c, _ := r.Create(jobmanager.JobTypeMerging, "a.svs", 0)

		if !r.Delete(a.ID) {
			t.Errorf("expected delete to report existing job")
		}

		if r.Delete(a.ID) {
			t.Errorf("expected second delete to report missing job")
		}

		if _, ok := r.DeleteIf(b.ID, func(jobmanager.Record) bool { return false }); ok {
			t.Errorf("expected delete if to keep job when predicate fails")
		}

		removed := r.DeleteWhere(func(rec jobmanager.Record) bool {
			return rec.Type == jobmanager.JobTypeMerging
		})

		if len(removed) != 1 || removed[0].ID != c.ID {
			t.Errorf("expected merging job removed: got '%v'", removed)
		}

		if r.Len() != 1 {
			t.Errorf("expected registry size: got '%d', want '%d'", r.Len(), 1)
		}
	})

	t.Run("Test list ordered by start", func(t *testing.T) {
		t.Parallel()

		clock := newFakeClock()
		r := jobmanager.NewRegistry(clock.Now)

		var want []string
		for range 3 {
			rec, _ := r.Create(jobmanager.JobTypePatching, "slide.svs", 0)
			want = append(want, rec.ID)
			clock.Advance(time.Second)
		}

		got := r.List()
		if len(got) != len(want) {
			t.Fatalf("expected list length: got '%d', want '%d'", len(got), len(want))
		}

		for i := range want {
			if got[i].ID != want[i] {
				t.Errorf("expected id at %d: got '%s', want '%s'", i, got[i].ID, want[i])
			}
		}
	})
}
