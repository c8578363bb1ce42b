package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/nixpig/slideworker/internal/artifact"
	"github.com/nixpig/slideworker/internal/jobmanager"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
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

type testStack struct {
	manager *jobmanager.Manager
	store   *artifact.LocalStore
	clock   *fakeClock
}

// newTestStack builds a Manager whose workers are the given shell script
// bodies. The artifact path is passed to each script as $1.
func newTestStack(t *testing.T, workers map[jobmanager.JobType]string) *testStack {
	t.Helper()

	store, err := artifact.NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create store: '%v'", err)
	}

	profiles := jobmanager.DefaultProfiles()
	for jobType, body := range workers {
		path := filepath.Join(t.TempDir(), jobType.String()+".sh")
		if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0755); err != nil {
			t.Fatalf("failed to write worker: '%v'", err)
		}

		p := profiles[jobType]
		p.Command = []string{"/bin/sh", path}
		profiles[jobType] = p
	}

	clock := &fakeClock{now: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)}

	manager, err := jobmanager.NewManager(
		store,
		jobmanager.WithClock(clock.Now),
		jobmanager.WithProfiles(profiles),
	)
	if err != nil {
		t.Fatalf("failed to create manager: '%v'", err)
	}

	t.Cleanup(manager.Shutdown)

	return &testStack{manager: manager, store: store, clock: clock}
}

func (s *testStack) slide(t *testing.T, name string) {
	t.Helper()

	if err := s.store.Put(context.Background(), name, strings.NewReader("pixels")); err != nil {
		t.Fatalf("failed to put slide: '%v'", err)
	}
}

func (s *testStack) waitForTerminal(t *testing.T, id string) jobmanager.Record {
	t.Helper()

	deadline := time.Now().Add(10 * time.Second)

	for time.Now().Before(deadline) {
		rec, err := s.manager.Registry().Get(id)
		if err != nil {
			t.Fatalf("expected not to get error: got '%v'", err)
		}

		if rec.Status.Terminal() {
			return rec
		}

		time.Sleep(10 * time.Millisecond)
	}

	t.Fatalf("timed out waiting for job %s", id)

	return jobmanager.Record{}
}

// waitForSubscribers blocks until at least n observers are registered.
func (s *testStack) waitForSubscribers(t *testing.T, n int) {
	t.Helper()

	deadline := time.Now().Add(5 * time.Second)

	for s.manager.Broadcaster().Subscribers() < n {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %d subscribers", n)
		}

		time.Sleep(5 * time.Millisecond)
	}
}

const (
	progressWorker = `echo "progress: 40%"
echo "progress: 80%"
echo "done"`

	// resultWorker leaves a result table and overlay next to the slide.
	resultWorker = `dir="$(dirname "$1")"
base="$(basename "$1")"
base="${base%.*}"
mkdir -p "$dir/${base}_Vaha"
echo "id,area" > "$dir/${base}_Vaha/nucleus_info_${base}_Vaha.csv"
printf 'png' > "$dir/${base}_Vaha/Merge_${base}_Vaha.png"
echo "progress: 100%"`

	failingWorker = `echo "boom" >&2
exit 2`
)
