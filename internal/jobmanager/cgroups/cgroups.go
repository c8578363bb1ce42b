// Package cgroups places worker processes in per-job cgroup v2 directories
// with CPU, memory and pid limits.
package cgroups

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

const (
	cpuPeriodMicros = 100000
	namePrefix      = "slideworker-"
)

// ResourceLimits bounds a single worker. Zero fields are left unlimited.
type ResourceLimits struct {
	CPUMaxPercent  int64
	MemoryMaxBytes int64
	PidsMax        int64
}

// IsZero reports whether l sets no limit at all.
func (l *ResourceLimits) IsZero() bool {
	return l == nil ||
		(l.CPUMaxPercent <= 0 && l.MemoryMaxBytes <= 0 && l.PidsMax <= 0)
}

// Cgroup is a job's cgroup directory, held open so a process can be cloned
// straight into it.
type Cgroup struct {
	path string
	fd   *os.File
}

// Create makes the cgroup for job id under root and writes limits into it.
func Create(root, id string, limits *ResourceLimits) (*Cgroup, error) {
	path := filepath.Join(root, namePrefix+id)

	if err := os.Mkdir(path, 0755); err != nil {
		return nil, fmt.Errorf("make cgroup dir: %w", err)
	}

	cg := &Cgroup{path: path}

	if err := cg.apply(limits); err != nil {
		os.RemoveAll(path)
		return nil, fmt.Errorf("apply cgroup limits: %w", err)
	}

	fd, err := os.Open(path)
	if err != nil {
		os.RemoveAll(path)
		return nil, fmt.Errorf("open cgroup dir: %w", err)
	}

	cg.fd = fd

	return cg, nil
}

func (c *Cgroup) apply(limits *ResourceLimits) error {
	if limits.IsZero() {
		return nil
	}

	if limits.CPUMaxPercent > 0 {
		quota := limits.CPUMaxPercent * cpuPeriodMicros / 100
		if err := c.write("cpu.max", fmt.Sprintf("%d %d", quota, cpuPeriodMicros)); err != nil {
			return err
		}
	}

	if limits.MemoryMaxBytes > 0 {
		if err := c.write("memory.max", strconv.FormatInt(limits.MemoryMaxBytes, 10)); err != nil {
			return err
		}
	}

	if limits.PidsMax > 0 {
		if err := c.write("pids.max", strconv.FormatInt(limits.PidsMax, 10)); err != nil {
			return err
		}
	}

	return nil
}

func (c *Cgroup) write(file, value string) error {
	if err := os.WriteFile(filepath.Join(c.path, file), []byte(value), 0644); err != nil {
		return fmt.Errorf("write %s: %w", file, err)
	}

	return nil
}

// FD returns the open cgroup directory for use with SysProcAttr.CgroupFD.
func (c *Cgroup) FD() int {
	return int(c.fd.Fd())
}

// Path returns the cgroup directory.
func (c *Cgroup) Path() string {
	return c.path
}

// Destroy closes the directory handle and removes the cgroup. The cgroup must
// have no live processes.
func (c *Cgroup) Destroy() error {
	if c.fd != nil {
		c.fd.Close()
		c.fd = nil
	}

	if err := os.RemoveAll(c.path); err != nil {
		return fmt.Errorf("remove cgroup: %w", err)
	}

	return nil
}

// ValidateRoot checks that root is a cgroup v2 hierarchy.
func ValidateRoot(root string) error {
	controllers := filepath.Join(root, "cgroup.controllers")
	if _, err := os.Stat(controllers); err != nil {
		return fmt.Errorf("cgroup root not valid at %s: %w", root, err)
	}

	return nil
}
