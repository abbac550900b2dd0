package test

import (
	"io"
	"os"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

// CmdTest describes one command invocation and the output it must produce.
type CmdTest struct {
	Name        string   // Name of the test.
	Args        []string // Arguments to pass to the command.
	ExpectedOut []string // Substrings expected on stdout or stderr.
}

// Command wraps Helper with a cobra command runner.
type Command struct {
	Helper
}

// SetupCommand builds the fixtures for command tests.
func SetupCommand(t *testing.T) Command {
	t.Helper()
	return Command{Helper: Setup(t)}
}

// RunCommand executes the command and requires it to succeed and to print
// every expected substring.
func (th Command) RunCommand(t *testing.T, cmd *cobra.Command, testCase CmdTest) {
	t.Helper()

	out, err := th.runCapture(t, cmd, testCase.Args)
	require.NoError(t, err)
	for _, expected := range testCase.ExpectedOut {
		require.Contains(t, out, expected)
	}
}

// RunCommandWithError executes the command and returns its error, leaving
// the assertion to the caller. Captured output is returned either way.
func (th Command) RunCommandWithError(t *testing.T, cmd *cobra.Command, testCase CmdTest) (string, error) {
	t.Helper()
	return th.runCapture(t, cmd, testCase.Args)
}

// runCapture runs the command under a root shim with stdout and stderr
// redirected into a pipe so printed tables and log lines can be asserted on.
func (th Command) runCapture(t *testing.T, cmd *cobra.Command, args []string) (string, error) {
	t.Helper()

	cmdRoot := &cobra.Command{Use: "root"}
	cmdRoot.AddCommand(cmd)
	cmdRoot.SetArgs(args)

	r, w, err := os.Pipe()
	require.NoError(t, err)

	origStdout, origStderr := os.Stdout, os.Stderr
	os.Stdout, os.Stderr = w, w
	defer func() {
		os.Stdout, os.Stderr = origStdout, origStderr
	}()

	runErr := cmdRoot.ExecuteContext(th.Context)

	require.NoError(t, w.Close())
	data, err := io.ReadAll(r)
	require.NoError(t, err)
	require.NoError(t, r.Close())

	return string(data), runErr
}
