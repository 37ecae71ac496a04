package process

import (
	"bytes"
	"context"
	"os/exec"
)

// ExecRunner runs a command in its own process group and kills the group
// when ctx ends. The zero value is ready to use.
type ExecRunner struct{}

// Run starts name with args and waits for it, returning what it wrote to
// stdout and stderr. When ctx ends first the error is ctx.Err().
func (ExecRunner) Run(ctx context.Context, name string, args ...string) (string, string, error) {
	cmd := exec.Command(name, args...) // #nosec G204 -- command comes from user configuration
	Isolate(cmd)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return "", "", err
	}

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	select {
	case err := <-done:
		return stdout.String(), stderr.String(), err
	case <-ctx.Done():
		KillProcessGroup(cmd.Process.Pid)
		_ = cmd.Process.Kill()
		<-done
		return stdout.String(), stderr.String(), ctx.Err()
	}
}
