package output

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/waverun-org/waverun/internal/diagnostics"
	"github.com/waverun-org/waverun/internal/runner"
	"github.com/waverun-org/waverun/internal/scenario"
)

func TestRenderRunSummary(t *testing.T) {
	result := &runner.RunResult{
		RunID:  "0198f1a2-7c3d-7e11-9a30-3f2b6c1d9e55",
		Label:  "s1-nx200-dx0p01-dt0p009-f10",
		RunDir: "/tmp/outputs/run-x",
		State:  runner.StateArtifactsRenamed,
	}

	out := RenderRunSummary(result)
	assert.Contains(t, out, "Succeeded")
	assert.Contains(t, out, "s1-nx200-dx0p01-dt0p009-f10")
	// Run IDs are shown truncated.
	assert.Contains(t, out, "0198f1a2")
	assert.NotContains(t, out, "0198f1a2-7c3d")
}

func TestRenderRunSummaryFailed(t *testing.T) {
	result := &runner.RunResult{State: runner.StateFailed, ExitCode: 2}

	out := RenderRunSummary(result)
	assert.Contains(t, out, "Failed")
	assert.Contains(t, out, "2")
}

func TestRenderScenarios(t *testing.T) {
	out := RenderScenarios(scenario.NewRegistry())
	assert.Contains(t, out, "Dirichlet")
	assert.Contains(t, out, "Damped")
	assert.Contains(t, out, "0.05")
}

func TestRenderRunList(t *testing.T) {
	runs := []runner.RunDirInfo{
		{
			Name:      "run-s2-nx200-20260823-110000",
			Label:     "s2-nx200",
			StartedAt: time.Date(2026, 8, 23, 11, 0, 0, 0, time.Local),
		},
	}

	out := RenderRunList(runs)
	assert.Contains(t, out, "2026-08-23 11:00:00")
	assert.Contains(t, out, "s2-nx200")
	assert.Contains(t, out, "run-s2-nx200-20260823-110000")
}

func TestRenderMetrics(t *testing.T) {
	out := RenderMetrics(diagnostics.Metrics{L1: 0.5, L2: 0.6, Linf: 1})
	assert.Contains(t, out, "Linf")
	assert.Contains(t, out, "5.000000e-01")
}

func TestStateSymbols(t *testing.T) {
	assert.Equal(t, SymbolSucceeded, StateSymbol(runner.StateArtifactsRenamed))
	assert.Equal(t, SymbolFailed, StateSymbol(runner.StateFailed))
	assert.Equal(t, SymbolPending, StateSymbol(runner.StateInvoked))
}
