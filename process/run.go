package process

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"syscall"
	"time"
)

// Run executes a subprocess and waits for it to complete.
// If the context is canceled, SIGTERM is sent first, then SIGKILL after GracePeriod.
// Streams redirected to files are not captured in the Result.
func Run(ctx context.Context, cmd Command) (*Result, error) {
	if cmd.Binary == "" {
		return nil, fmt.Errorf("process: binary is required")
	}

	gracePeriod := cmd.GracePeriod
	if gracePeriod == 0 {
		gracePeriod = 5 * time.Second
	}

	c := exec.CommandContext(ctx, cmd.Binary, cmd.Args...) //nolint:gosec // dynamic args are the purpose of this package
	c.Dir = cmd.Dir
	c.Env = mergeEnv(cmd.Env)

	var stdout, stderr bytes.Buffer
	var closers []io.Closer
	defer func() {
		for _, f := range closers {
			f.Close() //nolint:errcheck // best effort after the process exited
		}
	}()

	c.Stdout = &stdout
	if cmd.StdoutTo != "" {
		f, err := os.Create(cmd.StdoutTo)
		if err != nil {
			return nil, fmt.Errorf("process: redirect stdout: %w", err)
		}
		closers = append(closers, f)
		c.Stdout = f
	}
	c.Stderr = &stderr
	if cmd.StderrTo != "" {
		f, err := os.Create(cmd.StderrTo)
		if err != nil {
			return nil, fmt.Errorf("process: redirect stderr: %w", err)
		}
		closers = append(closers, f)
		c.Stderr = f
	}

	switch {
	case cmd.Stdin != nil:
		c.Stdin = cmd.Stdin
	case cmd.StdinFrom != "":
		f, err := os.Open(cmd.StdinFrom)
		if err != nil {
			return nil, fmt.Errorf("process: redirect stdin: %w", err)
		}
		closers = append(closers, f)
		c.Stdin = f
	}

	// Use process group so we can kill the entire tree
	c.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	// Don't let exec.CommandContext kill with SIGKILL immediately
	c.Cancel = func() error {
		if c.Process == nil {
			return nil
		}
		return syscall.Kill(-c.Process.Pid, syscall.SIGTERM)
	}
	c.WaitDelay = gracePeriod

	start := time.Now()
	err := c.Run()
	duration := time.Since(start)

	result := &Result{
		Stdout:   stdout.Bytes(),
		Stderr:   stderr.Bytes(),
		ExitCode: -1,
		Duration: duration,
	}
	if c.ProcessState != nil {
		result.ExitCode = c.ProcessState.ExitCode()
	}

	if err != nil {
		// Context cancellation is the expected way to kill a process
		if ctx.Err() != nil {
			return result, fmt.Errorf("process: killed by context: %w", ctx.Err())
		}
		return result, fmt.Errorf("process: exit code %d: %w", result.ExitCode, err)
	}

	return result, nil
}

// mergeEnv merges additional env vars with the current environment.
func mergeEnv(extra []string) []string {
	if len(extra) == 0 {
		return nil // inherit parent env
	}
	env := os.Environ()
	return append(env, extra...)
}
