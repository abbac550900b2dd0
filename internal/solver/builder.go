package solver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"

	"github.com/waverun-org/waverun/internal/logger"
)

// ErrNoSourcesRegistered is returned when the auto-builder is asked to
// compile a scenario that has no source-file binding.
var ErrNoSourcesRegistered = errors.New("no solver sources registered for scenario")

// BuildError reports a failed toolchain invocation. The attempted command
// line and the captured streams are carried so the failure can be diagnosed
// from the error alone.
type BuildError struct {
	Command []string
	Stdout  string
	Stderr  string
	Err     error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("solver build failed: %v (command: %s; stdout: %q; stderr: %q)",
		e.Err, strings.Join(e.Command, " "), e.Stdout, e.Stderr)
}

func (e *BuildError) Unwrap() error { return e.Err }

// ExecutableBuilder compiles a solver binary from a binding's source list.
// It exists as an interface so tests can substitute a fake toolchain.
type ExecutableBuilder interface {
	Build(ctx context.Context, binding Binding) (string, error)
}

// ToolchainBuilder compiles solver sources with a native compiler. The
// compiler and flags come from configuration (WAVERUN_FC / WAVERUN_FFLAGS,
// default optimized gfortran build); the binary lands in OutDir, which is
// also the default resolution directory.
type ToolchainBuilder struct {
	Compiler   string
	Flags      []string
	OutDir     string
	SourcesDir string
}

var _ ExecutableBuilder = (*ToolchainBuilder)(nil)

// Build compiles the binding's ordered source list and returns the path of
// the produced binary. Builds into the same output directory are serialized
// with a file lock so concurrent invocations do not clobber each other.
func (b *ToolchainBuilder) Build(ctx context.Context, binding Binding) (string, error) {
	if len(binding.Sources) == 0 {
		return "", fmt.Errorf("%w (binary %q)", ErrNoSourcesRegistered, binding.Name)
	}

	if err := os.MkdirAll(b.OutDir, 0750); err != nil {
		return "", fmt.Errorf("failed to create build output directory: %w", err)
	}

	lock := flock.New(filepath.Join(b.OutDir, ".build.lock"))
	if err := lock.Lock(); err != nil {
		return "", fmt.Errorf("failed to acquire build lock: %w", err)
	}
	defer func() {
		_ = lock.Unlock()
	}()

	output := filepath.Join(b.OutDir, binding.Name)

	args := append([]string{}, b.Flags...)
	args = append(args, "-o", output)
	for _, src := range binding.Sources {
		if filepath.IsAbs(src) {
			args = append(args, src)
		} else {
			args = append(args, filepath.Join(b.SourcesDir, src))
		}
	}

	cmdline := append([]string{b.Compiler}, args...)
	logger.Info(ctx, "Building solver", "command", strings.Join(cmdline, " "))

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, b.Compiler, args...) // nolint:gosec
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", &BuildError{
			Command: cmdline,
			Stdout:  stdout.String(),
			Stderr:  stderr.String(),
			Err:     err,
		}
	}

	logger.Info(ctx, "Solver built", "binary", output)
	return output, nil
}

// SplitFlags splits a compiler-flags string into arguments.
func SplitFlags(flags string) []string {
	return strings.Fields(flags)
}

// Ensure resolves the solver executable for a scenario, auto-building it
// when resolution fails and a source binding is registered. After a build,
// resolution is retried once; persistent failure is fatal.
func Ensure(ctx context.Context, resolver *Resolver, builder ExecutableBuilder, bindings *Bindings, scenarioID int, explicit string) (string, error) {
	binding, hasBinding := bindings.Get(scenarioID)
	name := DefaultBinaryName
	if hasBinding {
		name = binding.Name
	}

	path, err := resolver.Resolve(name, explicit)
	if err == nil {
		return path, nil
	}

	var resErr *ResolutionError
	if !errors.As(err, &resErr) {
		return "", err
	}

	if !hasBinding {
		return "", fmt.Errorf("%w: %w", ErrNoSourcesRegistered, err)
	}

	logger.Warn(ctx, "Solver not found, attempting auto-build",
		"binary", name, "candidates", resErr.Candidates)

	if _, err := builder.Build(ctx, binding); err != nil {
		return "", err
	}

	path, err = resolver.Resolve(name, explicit)
	if err != nil {
		return "", fmt.Errorf("solver still unresolvable after build: %w", err)
	}
	return path, nil
}
