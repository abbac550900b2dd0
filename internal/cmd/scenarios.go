package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/waverun-org/waverun/internal/output"
)

func CmdScenarios() *cobra.Command {
	return NewCommand(
		&cobra.Command{
			Use:   "scenarios",
			Short: "List the supported scenarios and their defaults",
			Args:  cobra.NoArgs,
		},
		nil,
		runScenarios,
	)
}

func runScenarios(ctx *Context, _ []string) error {
	fmt.Println(output.RenderScenarios(ctx.Registry()))
	return nil
}
