// Package execx wraps external process execution for the installer.
//
// Commands either stream output to the terminal (user-visible builds) or run
// silently with captured output (status probes). A non-zero exit code is a
// normal result, never an error; errors are reserved for failures to start
// the process at all.
package execx

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"
)

var commandContext = exec.CommandContext

// Result captures the outcome of a captured command run.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
	// TimedOut reports that the run was cut off by its timeout. A timed-out
	// command may still be running; callers must follow up with a liveness
	// probe rather than assume the process is gone.
	TimedOut bool
}

// Runner executes external commands.
type Runner interface {
	// Run streams output to the runner's writers and returns the exit code.
	Run(ctx context.Context, argv []string, dir string, env []string) (int, error)
	// RunCapture runs silently and returns captured output. A zero timeout
	// means no bound.
	RunCapture(ctx context.Context, argv []string, dir string, timeout time.Duration) (Result, error)
}

// Local runs commands on the local host.
type Local struct {
	Stdout io.Writer
	Stderr io.Writer
}

// New returns a Local runner writing streamed output to the given writers.
func New(stdout, stderr io.Writer) *Local {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	return &Local{Stdout: stdout, Stderr: stderr}
}

// Run echoes the command line and streams its output.
func (l *Local) Run(ctx context.Context, argv []string, dir string, env []string) (int, error) {
	if len(argv) == 0 {
		return 0, errors.New("empty command")
	}
	fmt.Fprintf(l.Stdout, ">>> %s\n", strings.Join(argv, " "))

	cmd := commandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = dir
	if len(env) > 0 {
		cmd.Env = append(os.Environ(), env...)
	}
	cmd.Stdout = l.Stdout
	cmd.Stderr = l.Stderr

	return exitCode(cmd.Run())
}

// RunCapture runs the command silently, capturing stdout and stderr.
func (l *Local) RunCapture(ctx context.Context, argv []string, dir string, timeout time.Duration) (Result, error) {
	if len(argv) == 0 {
		return Result{}, errors.New("empty command")
	}
	runCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	var stdout, stderr bytes.Buffer
	cmd := commandContext(runCtx, argv[0], argv[1:]...)
	cmd.Dir = dir
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	code, err := exitCode(cmd.Run())
	result := Result{
		ExitCode: code,
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
	}
	if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		result.TimedOut = true
		result.ExitCode = -1
		return result, nil
	}
	return result, err
}

func exitCode(err error) (int, error) {
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	return -1, err
}
