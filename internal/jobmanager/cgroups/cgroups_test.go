package cgroups_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nixpig/slideworker/internal/jobmanager/cgroups"
)

func readLimit(t *testing.T, dir, file string) string {
	t.Helper()

	data, err := os.ReadFile(filepath.Join(dir, file))
	if err != nil {
		t.Fatalf("expected to read %s: got '%v'", file, err)
	}

	return strings.TrimSpace(string(data))
}

// NOTE: These run against a plain directory standing in for the cgroup v2
// mount so they don't need root. Kernel enforcement of the limits is not
// exercised.
func TestCgroups(t *testing.T) {
	t.Parallel()

	t.Run("Test lifecycle with limits", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()

		cg, err := cgroups.Create(root, "job-1", &cgroups.ResourceLimits{
			CPUMaxPercent:  50,
			MemoryMaxBytes: 536870912,
			PidsMax:        64,
		})
		if err != nil {
			t.Fatalf("expected not to receive error: got '%v'", err)
		}

		wantPath := filepath.Join(root, "slideworker-job-1")
		if cg.Path() != wantPath {
			t.Errorf("expected cgroup path: got '%s', want '%s'", cg.Path(), wantPath)
		}

		if cg.FD() < 0 {
			t.Errorf("expected valid cgroup fd: got '%d'", cg.FD())
		}

		scenarios := map[string]string{
			"cpu.max":    "50000 100000",
			"memory.max": "536870912",
			"pids.max":   "64",
		}

		for file, want := range scenarios {
			if got := readLimit(t, cg.Path(), file); got != want {
				t.Errorf("expected %s: got '%s', want '%s'", file, got, want)
			}
		}

		if err := cg.Destroy(); err != nil {
			t.Errorf("expected not to receive error: got '%v'", err)
		}

		if _, err := os.Stat(cg.Path()); !os.IsNotExist(err) {
			t.Errorf("expected cgroup to be removed: got '%v'", err)
		}
	})

	t.Run("Test no limits writes nothing", func(t *testing.T) {
		t.Parallel()

		cg, err := cgroups.Create(t.TempDir(), "job-2", nil)
		if err != nil {
			t.Fatalf("expected not to receive error: got '%v'", err)
		}
		defer cg.Destroy()

		entries, err := os.ReadDir(cg.Path())
		if err != nil {
			t.Fatalf("expected not to receive error: got '%v'", err)
		}

		if len(entries) != 0 {
			t.Errorf("expected empty cgroup dir: got '%d' entries", len(entries))
		}
	})

	t.Run("Test duplicate job id", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()

		cg, err := cgroups.Create(root, "job-3", nil)
		if err != nil {
			t.Fatalf("expected not to receive error: got '%v'", err)
		}
		defer cg.Destroy()

		if _, err := cgroups.Create(root, "job-3", nil); err == nil {
			t.Errorf("expected to receive error for existing cgroup")
		}
	})

	t.Run("Test validate root", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()

		if err := cgroups.ValidateRoot(root); err == nil {
			t.Errorf("expected to receive error for root without controllers")
		}

		if err := os.WriteFile(
			filepath.Join(root, "cgroup.controllers"),
			[]byte("cpu memory pids"),
			0644,
		); err != nil {
			t.Fatalf("failed to write controllers: '%v'", err)
		}

		if err := cgroups.ValidateRoot(root); err != nil {
			t.Errorf("expected not to receive error: got '%v'", err)
		}
	})

	t.Run("Test zero limits", func(t *testing.T) {
		t.Parallel()

		var nilLimits *cgroups.ResourceLimits
		if !nilLimits.IsZero() {
			t.Errorf("expected nil limits to be zero")
		}

		if (&cgroups.ResourceLimits{MemoryMaxBytes: 1}).IsZero() {
			t.Errorf("expected memory limit not to be zero")
		}
	})
}
