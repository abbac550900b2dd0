package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/waverun-org/waverun/internal/logger"
	"github.com/waverun-org/waverun/internal/output"
	"github.com/waverun-org/waverun/internal/runner"
	"github.com/waverun-org/waverun/internal/scenario"
)

func CmdBatch() *cobra.Command {
	return NewCommand(
		&cobra.Command{
			Use:   "batch <plan-file>",
			Short: "Execute a batch of solver runs from a YAML plan",
			Long: `Run every entry of a YAML batch plan sequentially, aborting at the
first failure.

A plan file lists runs as scenario plus overrides:

  runs:
    - scenario: 1
      overrides:
        nx: 400
    - scenario: 3
`,
			Args: cobra.ExactArgs(1),
		},
		[]commandLineFlag{executableFlag},
		runBatch,
	)
}

func runBatch(ctx *Context, args []string) error {
	plan, err := runner.LoadPlan(args[0])
	if err != nil {
		return err
	}

	payloads, err := plan.Payloads(ctx.Registry())
	if err != nil {
		return err
	}
	for i, payload := range payloads {
		notes, err := scenario.Normalize(payload)
		if err != nil {
			return fmt.Errorf("batch plan run %d: %w", i+1, err)
		}
		for _, note := range notes {
			logger.Warn(ctx, note)
		}
	}

	executable, err := ctx.StringParam("executable")
	if err != nil {
		return err
	}

	logger.Info(ctx, "Starting batch", "plan", args[0], "runs", len(payloads))
	results, runErr := ctx.Orchestrator().RunBatch(ctx, payloads, executable)
	if len(results) > 0 && !ctx.Quiet {
		fmt.Println(output.RenderBatchSummary(results))
	}
	return runErr
}
