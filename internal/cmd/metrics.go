package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/waverun-org/waverun/internal/diagnostics"
	"github.com/waverun-org/waverun/internal/output"
)

func CmdMetrics() *cobra.Command {
	return NewCommand(
		&cobra.Command{
			Use:   "metrics --file <solution> --ref <reference>",
			Short: "Compute error norms of a solution against a reference",
			Long: `Compare two solution tables sampled on the same grid and report the
L1 (mean absolute), L2 (root mean square) and Linf (maximum absolute)
error norms.
`,
			Args: cobra.NoArgs,
		},
		[]commandLineFlag{fileFlag, refFlag, jsonFlag},
		runMetrics,
	)
}

func runMetrics(ctx *Context, _ []string) error {
	file, err := ctx.StringParam("file")
	if err != nil {
		return err
	}
	ref, err := ctx.StringParam("ref")
	if err != nil {
		return err
	}

	_, u, err := diagnostics.LoadSamples(file)
	if err != nil {
		return err
	}
	_, uref, err := diagnostics.LoadSamples(ref)
	if err != nil {
		return err
	}

	metrics, err := diagnostics.ErrorMetrics(u, uref)
	if err != nil {
		return err
	}

	asJSON, err := ctx.Command.Flags().GetBool("json")
	if err != nil {
		return fmt.Errorf("failed to get json flag: %w", err)
	}
	if asJSON {
		data, err := json.Marshal(metrics)
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Println(output.RenderMetrics(metrics))
	return nil
}
