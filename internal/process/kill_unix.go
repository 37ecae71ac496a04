//go:build !windows

// Package process starts external tools in their own process group so a
// timeout can stop the tool together with the browser it spawns.
package process

import (
	"os/exec"
	"syscall"
)

// Isolate makes cmd the leader of a new process group.
func Isolate(cmd *exec.Cmd) {
	if cmd.SysProcAttr == nil {
		cmd.SysProcAttr = &syscall.SysProcAttr{}
	}
	cmd.SysProcAttr.Setpgid = true
}

// KillProcessGroup kills a process and all its children by sending SIGKILL
// to the process group (negative PID).
func KillProcessGroup(pid int) {
	// Best-effort; cmd.Process.Kill in the caller covers the leader.
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
