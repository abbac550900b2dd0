package cmd_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waverun-org/waverun/internal/cmd"
	"github.com/waverun-org/waverun/internal/scenario"
	"github.com/waverun-org/waverun/internal/test"
)

// installFakeSolver drops a shell script into the bin directory that fakes a
// successful solver run by writing snapshot and energy files.
func installFakeSolver(t *testing.T, th test.Command) string {
	t.Helper()

	require.NoError(t, os.MkdirAll(th.Config.Paths.BinDir, 0750))
	path := filepath.Join(th.Config.Paths.BinDir, "wave_solver")
	script := `#!/bin/sh
echo "steps: 10"
printf '0.0,1.0\n' > snapshot_0000.csv
printf '0.0,0.5\n' > energy.csv
`
	require.NoError(t, os.WriteFile(path, []byte(script), 0755)) // nolint:gosec
	return path
}

func TestRunCommand(t *testing.T) {
	th := test.SetupCommand(t)
	installFakeSolver(t, th)

	// nx=100 makes the default dx inconsistent with L/nx, so normalization
	// reports an adjustment.
	th.RunCommand(t, cmd.CmdRun(), test.CmdTest{
		Args:        []string{"run", "--scenario", "1", "--set", "nx=100"},
		ExpectedOut: []string{"Succeeded", "s1-nx100", "Parameter adjustments:"},
	})

	// One run directory exists under the outputs root.
	entries, err := os.ReadDir(th.Config.Paths.OutputsDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	runDir := filepath.Join(th.Config.Paths.OutputsDir, entries[0].Name())
	assert.FileExists(t, filepath.Join(runDir, "input.json"))
}

func TestRunCommandSolverFailure(t *testing.T) {
	th := test.SetupCommand(t)

	require.NoError(t, os.MkdirAll(th.Config.Paths.BinDir, 0750))
	path := filepath.Join(th.Config.Paths.BinDir, "wave_solver")
	script := "#!/bin/sh\necho 'CFL violated' >&2\nexit 2\n"
	require.NoError(t, os.WriteFile(path, []byte(script), 0755)) // nolint:gosec

	out, err := th.RunCommandWithError(t, cmd.CmdRun(), test.CmdTest{
		Args: []string{"run", "--scenario", "1"},
	})
	require.Error(t, err)
	assert.Contains(t, out, "Failed")
}

func TestRunCommandScenarioNotInteger(t *testing.T) {
	th := test.SetupCommand(t)

	_, err := th.RunCommandWithError(t, cmd.CmdRun(), test.CmdTest{
		Args: []string{"run", "--scenario", "one"},
	})
	require.Error(t, err)

	var valErr *scenario.ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "scenario", valErr.Field)
}

func TestRunCommandUnknownScenario(t *testing.T) {
	th := test.SetupCommand(t)

	_, err := th.RunCommandWithError(t, cmd.CmdRun(), test.CmdTest{
		Args: []string{"run", "--scenario", "99"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown scenario id 99")
}

func TestBatchCommand(t *testing.T) {
	th := test.SetupCommand(t)
	installFakeSolver(t, th)

	plan := filepath.Join(th.Home, "plan.yaml")
	content := `runs:
  - scenario: 1
    overrides:
      nx: 100
  - scenario: 2
`
	require.NoError(t, os.WriteFile(plan, []byte(content), 0600))

	th.RunCommand(t, cmd.CmdBatch(), test.CmdTest{
		Args:        []string{"batch", plan},
		ExpectedOut: []string{"Succeeded", "s1-nx100", "s2-nx200"},
	})

	entries, err := os.ReadDir(th.Config.Paths.OutputsDir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestRunsCommand(t *testing.T) {
	th := test.SetupCommand(t)
	installFakeSolver(t, th)

	th.RunCommand(t, cmd.CmdRun(), test.CmdTest{
		Args: []string{"run", "--scenario", "1"},
	})

	th.RunCommand(t, cmd.CmdRuns(), test.CmdTest{
		Args:        []string{"runs"},
		ExpectedOut: []string{"s1-nx200", "run-s1-nx200"},
	})
}

func TestRunsCommandEmpty(t *testing.T) {
	th := test.SetupCommand(t)

	th.RunCommand(t, cmd.CmdRuns(), test.CmdTest{
		Args:        []string{"runs"},
		ExpectedOut: []string{"no runs found"},
	})
}

func TestScenariosCommand(t *testing.T) {
	th := test.SetupCommand(t)

	th.RunCommand(t, cmd.CmdScenarios(), test.CmdTest{
		Args:        []string{"scenarios"},
		ExpectedOut: []string{"Dirichlet", "Neumann", "Variable speed", "Damped"},
	})
}

func TestResolveCommand(t *testing.T) {
	th := test.SetupCommand(t)
	path := installFakeSolver(t, th)

	th.RunCommand(t, cmd.CmdResolve(), test.CmdTest{
		Args:        []string{"resolve", "--scenario", "1"},
		ExpectedOut: []string{path},
	})
}

func TestResolveCommandNotFound(t *testing.T) {
	th := test.SetupCommand(t)

	_, err := th.RunCommandWithError(t, cmd.CmdResolve(), test.CmdTest{
		Args: []string{"resolve", "--scenario", "1"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "wave_solver")
}

func TestMetricsCommand(t *testing.T) {
	th := test.SetupCommand(t)

	sol := filepath.Join(th.Home, "sol.csv")
	ref := filepath.Join(th.Home, "ref.csv")
	require.NoError(t, os.WriteFile(sol, []byte("0.0,1.0\n0.1,2.0\n0.2,3.0\n"), 0600))
	require.NoError(t, os.WriteFile(ref, []byte("0.0,1.0\n0.1,2.0\n0.2,4.0\n"), 0600))

	th.RunCommand(t, cmd.CmdMetrics(), test.CmdTest{
		Args:        []string{"metrics", "--file", sol, "--ref", ref},
		ExpectedOut: []string{"L1", "L2", "Linf"},
	})

	th.RunCommand(t, cmd.CmdMetrics(), test.CmdTest{
		Args:        []string{"metrics", "--file", sol, "--ref", ref, "--json"},
		ExpectedOut: []string{`"l1"`, `"l2"`, `"linf"`},
	})
}

func TestConvergenceCommand(t *testing.T) {
	th := test.SetupCommand(t)

	samples := filepath.Join(th.Home, "rates.csv")
	require.NoError(t, os.WriteFile(samples, []byte("0.1,1e-2\n0.05,2.5e-3\n"), 0600))

	th.RunCommand(t, cmd.CmdConvergence(), test.CmdTest{
		Args:        []string{"convergence", "--file", samples},
		ExpectedOut: []string{"observed convergence rate: 2.0000"},
	})
}

func TestVersionCommand(t *testing.T) {
	th := test.SetupCommand(t)

	_, err := th.RunCommandWithError(t, cmd.CmdVersion(), test.CmdTest{
		Args: []string{"version"},
	})
	require.NoError(t, err)
}
