// Package output renders run summaries and tables for the terminal.
package output

import (
	"github.com/fatih/color"

	"github.com/waverun-org/waverun/internal/runner"
)

// Status symbols using Unicode characters for visual clarity.
const (
	SymbolSucceeded = "✓" // Check mark for success
	SymbolFailed    = "✗" // X mark for failure
	SymbolPending   = "○" // Empty circle for anything in flight
)

// StateSymbol returns the symbol for a run state.
func StateSymbol(state runner.State) string {
	switch state {
	case runner.StateSucceeded, runner.StateArtifactsRenamed:
		return SymbolSucceeded
	case runner.StateFailed:
		return SymbolFailed
	default:
		return SymbolPending
	}
}

// StateText returns human-readable text for a run state.
func StateText(state runner.State) string {
	switch state {
	case runner.StateCreated:
		return "Created"
	case runner.StateParamsWritten:
		return "Params Written"
	case runner.StateInvoked:
		return "Invoked"
	case runner.StateSucceeded:
		return "Succeeded"
	case runner.StateFailed:
		return "Failed"
	case runner.StateArtifactsRenamed:
		return "Succeeded"
	default:
		return state.String()
	}
}

// StateColorize applies color formatting to a string based on run state.
func StateColorize(s string, state runner.State) string {
	switch state {
	case runner.StateSucceeded, runner.StateArtifactsRenamed:
		return color.GreenString(s)
	case runner.StateFailed:
		return color.RedString(s)
	default:
		return color.YellowString(s)
	}
}
