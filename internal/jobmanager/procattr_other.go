//go:build !linux

package jobmanager

import (
	"errors"
	"os/exec"
)

func placeInCgroup(cmd *exec.Cmd, fd int) error {
	return errors.New("cgroup resource limits require linux")
}

func killGroupOnCancel(cmd *exec.Cmd) {}
