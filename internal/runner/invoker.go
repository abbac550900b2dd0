package runner

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
)

// ProcessResult carries the outcome of one external process invocation.
type ProcessResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Invoker runs the solver binary as a blocking external process. It exists
// as a capability interface so tests can substitute a fake without spawning
// a real process. The default implementation has no timeout: it blocks
// until the child exits.
type Invoker interface {
	Invoke(ctx context.Context, binary string, args []string, dir string) (ProcessResult, error)
}

type execInvoker struct{}

// NewInvoker returns the os/exec-backed Invoker.
func NewInvoker() Invoker {
	return &execInvoker{}
}

// Invoke starts the binary with its working directory set to dir and waits
// for it to exit. A non-zero exit status is reported through the result,
// not the error; the error is reserved for failures to start the process.
func (e *execInvoker) Invoke(ctx context.Context, binary string, args []string, dir string) (ProcessResult, error) {
	var stdout, stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, binary, args...) // nolint:gosec
	cmd.Dir = dir
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := ProcessResult{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			return result, nil
		}
		return result, err
	}

	return result, nil
}
