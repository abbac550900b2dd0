package cmd

import (
	"github.com/spf13/cobra"

	"github.com/waverun-org/waverun/internal/build"
)

var rootCmd = &cobra.Command{
	Use:   build.Slug,
	Short: "Waverun orchestrates 1D wave-equation solver runs",
	Long: `Waverun prepares, launches and post-processes runs of an external
finite-difference wave-equation solver.

It merges scenario defaults with parameter overrides into a schema-stable
input payload, derives a stable time step from the CFL condition, locates
(or compiles) the solver binary, invokes it in an isolated run directory,
labels the artifacts it leaves behind, and computes error norms and
convergence rates from its outputs.
`,
}

func init() {
	rootCmd.AddCommand(CmdRun())
	rootCmd.AddCommand(CmdBatch())
	rootCmd.AddCommand(CmdRuns())
	rootCmd.AddCommand(CmdScenarios())
	rootCmd.AddCommand(CmdResolve())
	rootCmd.AddCommand(CmdMetrics())
	rootCmd.AddCommand(CmdConvergence())
	rootCmd.AddCommand(CmdVersion())
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
