package gitstats

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/pescuma/dailyloc/lib/consoles"
)

// Executor runs git commands inside a directory.
type Executor interface {
	Run(ctx context.Context, dir string, args ...string) (string, error)
}

type GitError struct {
	Dir      string
	Args     []string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *GitError) Error() string {
	cmd := "git " + strings.Join(e.Args, " ")

	if e.Stderr != "" {
		return fmt.Sprintf("%v: '%v' exited with code %d: %v", e.Dir, cmd, e.ExitCode, e.Stderr)
	}

	return fmt.Sprintf("%v: '%v' exited with code %d: %v", e.Dir, cmd, e.ExitCode, e.Err)
}

func (e *GitError) Unwrap() error {
	return e.Err
}

type execExecutor struct {
	timeout time.Duration
}

// NewExecExecutor returns an Executor that calls the git binary in PATH. A
// timeout of 0 means no timeout.
func NewExecExecutor(timeout time.Duration) Executor {
	return &execExecutor{
		timeout: timeout,
	}
}

func (e *execExecutor) Run(ctx context.Context, dir string, args ...string) (string, error) {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	var stdout, stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		exitCode := -1
		if cmd.ProcessState != nil {
			exitCode = cmd.ProcessState.ExitCode()
		}

		if ctx.Err() != nil {
			err = ctx.Err()
		}

		return "", &GitError{
			Dir:      dir,
			Args:     args,
			ExitCode: exitCode,
			Stderr:   strings.TrimSpace(stderr.String()),
			Err:      err,
		}
	}

	return stdout.String(), nil
}

type verboseExecutor struct {
	executor Executor
	console  consoles.Console
}

// NewVerboseExecutor prints every git command with its duration before returning its result.
func NewVerboseExecutor(executor Executor, console consoles.Console) Executor {
	return &verboseExecutor{
		executor: executor,
		console:  console,
	}
}

func (e *verboseExecutor) Run(ctx context.Context, dir string, args ...string) (string, error) {
	start := time.Now()

	output, err := e.executor.Run(ctx, dir, args...)

	status := "ok"
	if err != nil {
		status = "failed"
	}
	e.console.Printf("%v: git %v (%v, %v)\n", filepath.Base(dir), strings.Join(args, " "),
		time.Since(start).Round(time.Millisecond), status)

	return output, err
}
