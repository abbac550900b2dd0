package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/waverun-org/waverun/internal/solver"
)

func CmdResolve() *cobra.Command {
	return NewCommand(
		&cobra.Command{
			Use:   "resolve --scenario <id>",
			Short: "Locate the solver executable for a scenario",
			Long: `Resolve the solver executable the way a run would: explicit path,
environment override, PATH lookup and configured search directories, in
that order. With --build, a missing binary is compiled from the
scenario's registered sources first.
`,
			Args: cobra.NoArgs,
		},
		[]commandLineFlag{scenarioFlag, executableFlag, buildFlag},
		runResolve,
	)
}

func runResolve(ctx *Context, _ []string) error {
	scenarioID, err := scenarioIDFromFlags(ctx)
	if err != nil {
		return err
	}

	executable, err := ctx.StringParam("executable")
	if err != nil {
		return err
	}
	build, err := ctx.Command.Flags().GetBool("build")
	if err != nil {
		return fmt.Errorf("failed to get build flag: %w", err)
	}

	resolver := &solver.Resolver{
		Override:  ctx.Config.Solver.Executable,
		ExtraDirs: append([]string{ctx.Config.Paths.BinDir}, ctx.Config.Solver.SearchDirs...),
	}
	bindings := solver.DefaultBindings()

	var path string
	if build {
		builder := &solver.ToolchainBuilder{
			Compiler:   ctx.Config.Solver.Compiler,
			Flags:      solver.SplitFlags(ctx.Config.Solver.CompilerFlags),
			OutDir:     ctx.Config.Paths.BinDir,
			SourcesDir: ctx.Config.Paths.SourcesDir,
		}
		path, err = solver.Ensure(ctx, resolver, builder, bindings, scenarioID, executable)
	} else {
		name := solver.DefaultBinaryName
		if binding, ok := bindings.Get(scenarioID); ok {
			name = binding.Name
		}
		path, err = resolver.Resolve(name, executable)
	}
	if err != nil {
		return err
	}

	fmt.Println(path)
	return nil
}
