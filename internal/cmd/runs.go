package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/waverun-org/waverun/internal/output"
	"github.com/waverun-org/waverun/internal/runner"
)

func CmdRuns() *cobra.Command {
	return NewCommand(
		&cobra.Command{
			Use:   "runs",
			Short: "List past run directories, newest first",
			Args:  cobra.NoArgs,
		},
		nil,
		runRuns,
	)
}

func runRuns(ctx *Context, _ []string) error {
	runs, err := runner.ListRuns(ctx.Config.Paths.OutputsDir)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found under", ctx.Config.Paths.OutputsDir)
		return nil
	}

	fmt.Println(output.RenderRunList(runs))
	return nil
}
