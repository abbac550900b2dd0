package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/waverun-org/waverun/internal/logger"
	"github.com/waverun-org/waverun/internal/output"
	"github.com/waverun-org/waverun/internal/scenario"
)

func CmdRun() *cobra.Command {
	return NewCommand(
		&cobra.Command{
			Use:   "run --scenario <id> [--set key=value ...]",
			Short: "Execute one solver run",
			Long: `Build the input payload for a scenario, launch the solver in a fresh
run directory and label the artifacts it produces.

Overrides merge onto the scenario defaults; the time step is derived from
the CFL condition unless overridden explicitly with --set dt=<value>.

Example:
  waverun run --scenario 1 --set nx=400 --set cfl=0.5
`,
			Args: cobra.NoArgs,
		},
		[]commandLineFlag{scenarioFlag, setFlag, executableFlag},
		runRun,
	)
}

func runRun(ctx *Context, _ []string) error {
	payload, err := buildPayloadFromFlags(ctx)
	if err != nil {
		return err
	}

	executable, err := ctx.StringParam("executable")
	if err != nil {
		return err
	}

	result, runErr := ctx.Orchestrator().Run(ctx, payload, executable)
	if result != nil && !ctx.Quiet {
		fmt.Println(output.RenderRunSummary(result))
		if runErr != nil && result.Stderr != "" {
			fmt.Print(result.Stderr)
		}
	}
	return runErr
}

// scenarioIDFromFlags reads the --scenario flag; a non-integer value is a
// validation error, not a parse failure.
func scenarioIDFromFlags(ctx *Context) (int, error) {
	raw, err := ctx.StringParam("scenario")
	if err != nil {
		return 0, err
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &scenario.ValidationError{
			Field:   "scenario",
			Message: fmt.Sprintf("expected an integer id, got %q", raw),
		}
	}
	return id, nil
}

// buildPayloadFromFlags assembles and normalizes a payload from the
// --scenario and --set flags. Parameter adjustments made during
// normalization are reported to the user.
func buildPayloadFromFlags(ctx *Context) (*scenario.Payload, error) {
	scenarioID, err := scenarioIDFromFlags(ctx)
	if err != nil {
		return nil, err
	}

	sets, err := ctx.Command.Flags().GetStringArray("set")
	if err != nil {
		return nil, fmt.Errorf("failed to get set flags: %w", err)
	}
	overrides, err := parseOverrides(sets)
	if err != nil {
		return nil, err
	}

	payload, err := scenario.BuildPayload(ctx.Registry(), scenarioID, overrides)
	if err != nil {
		return nil, err
	}

	notes, err := scenario.Normalize(payload)
	if err != nil {
		return nil, err
	}
	if len(notes) > 0 {
		for _, note := range notes {
			logger.Warn(ctx, note)
		}
		if !ctx.Quiet {
			fmt.Println("Parameter adjustments:")
			fmt.Print(output.RenderNotes(notes))
		}
	}

	return payload, nil
}
