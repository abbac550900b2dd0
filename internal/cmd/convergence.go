package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/waverun-org/waverun/internal/diagnostics"
)

func CmdConvergence() *cobra.Command {
	return NewCommand(
		&cobra.Command{
			Use:   "convergence --file <samples>",
			Short: "Estimate a convergence rate from (step-size, error) samples",
			Long: `Read a two-column table of step sizes and error norms (finest last)
and report the observed convergence rate, the log-log slope between the
last two samples.
`,
			Args: cobra.NoArgs,
		},
		[]commandLineFlag{fileFlag},
		runConvergence,
	)
}

func runConvergence(ctx *Context, _ []string) error {
	file, err := ctx.StringParam("file")
	if err != nil {
		return err
	}

	steps, errs, err := diagnostics.LoadSamples(file)
	if err != nil {
		return err
	}

	rate, err := diagnostics.ConvergenceRate(steps, errs)
	if err != nil {
		return err
	}

	fmt.Printf("observed convergence rate: %.4f\n", rate)
	return nil
}
