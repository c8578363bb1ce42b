//go:build linux

package jobmanager

import (
	"os"
	"os/exec"
	"syscall"
)

// placeInCgroup makes the worker start inside the cgroup open at fd, so it
// is never briefly outside its limits.
func placeInCgroup(cmd *exec.Cmd, fd int) error {
	if cmd.SysProcAttr == nil {
		cmd.SysProcAttr = &syscall.SysProcAttr{}
	}

	cmd.SysProcAttr.UseCgroupFD = true
	cmd.SysProcAttr.CgroupFD = fd

	return nil
}

// killGroupOnCancel starts the worker as the leader of a new process group
// and kills the whole group when its context is done, so helpers it forked
// release the output pipes too.
func killGroupOnCancel(cmd *exec.Cmd) {
	if cmd.SysProcAttr == nil {
		cmd.SysProcAttr = &syscall.SysProcAttr{}
	}

	cmd.SysProcAttr.Setpgid = true

	cmd.Cancel = func() error {
		err := syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
		if err == syscall.ESRCH {
			return os.ErrProcessDone
		}

		return err
	}
}
