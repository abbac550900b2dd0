// Package runner orchestrates solver runs: it prepares an isolated run
// directory, writes the input payload, makes sure the solver executable
// exists, invokes it as a blocking child process, and hands successful runs
// to the artifact manager.
package runner

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/waverun-org/waverun/internal/artifact"
	"github.com/waverun-org/waverun/internal/config"
	"github.com/waverun-org/waverun/internal/fileutil"
	"github.com/waverun-org/waverun/internal/logger"
	"github.com/waverun-org/waverun/internal/scenario"
	"github.com/waverun-org/waverun/internal/solver"
	"github.com/waverun-org/waverun/internal/stringutil"
)

// runLogName is the per-run log file written inside the run directory when
// the payload enables logging.
const runLogName = "run.log"

// ProcessFailureError reports a solver process that exited with a non-zero
// status. The command line, exit code and both captured streams are carried
// so the failure can be diagnosed from the error alone.
type ProcessFailureError struct {
	Command  []string
	ExitCode int
	Stdout   string
	Stderr   string
}

func (e *ProcessFailureError) Error() string {
	return fmt.Sprintf("solver exited with status %d (command: %s; stderr: %q)",
		e.ExitCode, strings.Join(e.Command, " "), e.Stderr)
}

// RunResult is the record of one completed (or failed) solver run.
type RunResult struct {
	RunID         string            `json:"run_id"`
	Label         string            `json:"label"`
	RunDir        string            `json:"run_dir"`
	InputPath     string            `json:"input_path"`
	SchemaVersion string            `json:"schema_version"`
	State         State             `json:"-"`
	Status        string            `json:"status"`
	ExitCode      int               `json:"exit_code"`
	Stdout        string            `json:"-"`
	Stderr        string            `json:"-"`
	Renamed       int               `json:"renamed_artifacts"`
	Outputs       *artifact.Outputs `json:"outputs,omitempty"`
	StartedAt     time.Time         `json:"started_at"`
	FinishedAt    time.Time         `json:"finished_at"`
}

// Orchestrator drives the whole run lifecycle. Process invocation, the
// build toolchain and the clock sit behind seams so tests can substitute
// fakes.
type Orchestrator struct {
	outputsDir string
	resolver   *solver.Resolver
	builder    solver.ExecutableBuilder
	bindings   *solver.Bindings
	invoker    Invoker
	now        func() time.Time

	logFormat string
	debug     bool
	quiet     bool
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithInvoker substitutes the process invoker.
func WithInvoker(inv Invoker) Option {
	return func(o *Orchestrator) { o.invoker = inv }
}

// WithBuilder substitutes the executable builder.
func WithBuilder(b solver.ExecutableBuilder) Option {
	return func(o *Orchestrator) { o.builder = b }
}

// WithBindings substitutes the scenario source bindings.
func WithBindings(b *solver.Bindings) Option {
	return func(o *Orchestrator) { o.bindings = b }
}

// WithClock substitutes the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) { o.now = now }
}

// New builds an Orchestrator from configuration. The bin directory is
// always searched for executables, ahead of any configured extra dirs.
func New(cfg *config.Config, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		outputsDir: cfg.Paths.OutputsDir,
		resolver: &solver.Resolver{
			Override:  cfg.Solver.Executable,
			ExtraDirs: append([]string{cfg.Paths.BinDir}, cfg.Solver.SearchDirs...),
		},
		builder: &solver.ToolchainBuilder{
			Compiler:   cfg.Solver.Compiler,
			Flags:      solver.SplitFlags(cfg.Solver.CompilerFlags),
			OutDir:     cfg.Paths.BinDir,
			SourcesDir: cfg.Paths.SourcesDir,
		},
		bindings:  solver.DefaultBindings(),
		invoker:   NewInvoker(),
		now:       time.Now,
		logFormat: cfg.Global.LogFormat,
		debug:     cfg.Global.Debug,
		quiet:     cfg.Global.Quiet,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// loggerOptions rebuilds the command's logging settings with the run log
// file attached as a secondary writer.
func (o *Orchestrator) loggerOptions(w io.Writer) []logger.Option {
	opts := []logger.Option{logger.WithWriter(w)}
	if o.debug {
		opts = append(opts, logger.WithDebug())
	}
	if o.quiet {
		opts = append(opts, logger.WithQuiet())
	}
	if o.logFormat != "" {
		opts = append(opts, logger.WithFormat(o.logFormat))
	}
	return opts
}

// Run executes one solver run for the given payload. The run directory is
// created under the outputs root as run-<label>-<timestamp>; the timestamp
// makes directories of repeated identical runs distinct. explicitExe, when
// non-empty, bypasses executable resolution.
//
// The call blocks until the solver exits. A non-zero exit status yields a
// *ProcessFailureError; the partial RunResult is returned alongside it so
// callers can still surface the captured streams.
func (o *Orchestrator) Run(ctx context.Context, p *scenario.Payload, explicitExe string) (*RunResult, error) {
	runID, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate run ID: %w", err)
	}

	label := Label(p)
	startedAt := o.now()
	runDir := filepath.Join(o.outputsDir, fmt.Sprintf("run-%s-%s", label, stringutil.FormatTimestamp(startedAt)))

	result := &RunResult{
		RunID:         runID.String(),
		Label:         label,
		RunDir:        runDir,
		SchemaVersion: p.SchemaVersion,
		State:         StateCreated,
		StartedAt:     startedAt,
	}

	if err := os.MkdirAll(runDir, 0750); err != nil {
		return result, fmt.Errorf("failed to create run directory: %w", err)
	}

	// When the payload asks for logging, every log record of this run is
	// additionally fanned out to a run.log inside the run directory.
	if p.LoggingEnabled {
		logFile, err := fileutil.OpenOrCreateFile(filepath.Join(runDir, runLogName))
		if err != nil {
			return result, fmt.Errorf("failed to open run log: %w", err)
		}
		defer func() {
			_ = logFile.Close()
		}()
		ctx = logger.WithLogger(ctx, logger.NewLogger(o.loggerOptions(logFile)...))
	}

	logger.Info(ctx, "Run directory created", "dir", runDir, "run-id", result.RunID)

	inputPath, err := p.WriteFile(runDir)
	if err != nil {
		return result, err
	}
	result.InputPath = inputPath
	if err := result.State.transition(StateParamsWritten); err != nil {
		return result, err
	}

	bin, err := solver.Ensure(ctx, o.resolver, o.builder, o.bindings, p.ScenarioID, explicitExe)
	if err != nil {
		return result, err
	}

	if err := result.State.transition(StateInvoked); err != nil {
		return result, err
	}
	logger.Info(ctx, "Invoking solver", "binary", bin, "dir", runDir)

	proc, err := o.invoker.Invoke(ctx, bin, []string{filepath.Base(inputPath)}, runDir)
	result.ExitCode = proc.ExitCode
	result.Stdout = proc.Stdout
	result.Stderr = proc.Stderr
	result.FinishedAt = o.now()

	if err != nil {
		_ = result.State.transition(StateFailed)
		result.Status = result.State.String()
		return result, fmt.Errorf("failed to start solver: %w", err)
	}
	if proc.ExitCode != 0 {
		_ = result.State.transition(StateFailed)
		result.Status = result.State.String()
		logger.Error(ctx, "Solver failed", "exit-code", proc.ExitCode, "stderr", proc.Stderr)
		return result, &ProcessFailureError{
			Command:  []string{bin, filepath.Base(inputPath)},
			ExitCode: proc.ExitCode,
			Stdout:   proc.Stdout,
			Stderr:   proc.Stderr,
		}
	}

	if err := result.State.transition(StateSucceeded); err != nil {
		return result, err
	}

	renamed, err := artifact.Rename(runDir, label)
	if err != nil {
		return result, err
	}
	result.Renamed = renamed

	outputs, err := artifact.Collect(runDir)
	if err != nil {
		return result, err
	}
	result.Outputs = outputs

	if err := result.State.transition(StateArtifactsRenamed); err != nil {
		return result, err
	}
	result.Status = "success"
	result.FinishedAt = o.now()

	logger.Info(ctx, "Run finished", "run-id", result.RunID, "dir", runDir, "renamed", renamed)
	return result, nil
}

// RunBatch executes the payloads sequentially, aborting at the first
// failure. The results of all completed runs, including the failed one, are
// returned alongside any error.
func (o *Orchestrator) RunBatch(ctx context.Context, payloads []*scenario.Payload, explicitExe string) ([]*RunResult, error) {
	results := make([]*RunResult, 0, len(payloads))
	for i, p := range payloads {
		result, err := o.Run(ctx, p, explicitExe)
		if result != nil {
			results = append(results, result)
		}
		if err != nil {
			return results, fmt.Errorf("batch aborted at run %d of %d: %w", i+1, len(payloads), err)
		}
	}
	return results, nil
}
