package runner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waverun-org/waverun/internal/scenario"
)

func writePlan(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plan.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadPlan(t *testing.T) {
	path := writePlan(t, `
runs:
  - scenario: 1
    overrides:
      nx: 400
      cfl: 0.5
  - scenario: 3
`)

	plan, err := LoadPlan(path)
	require.NoError(t, err)
	require.Len(t, plan.Runs, 2)
	assert.Equal(t, 1, plan.Runs[0].Scenario)
	assert.Equal(t, 0.5, plan.Runs[0].Overrides["cfl"])
	assert.Equal(t, 3, plan.Runs[1].Scenario)
	assert.Nil(t, plan.Runs[1].Overrides)
}

func TestLoadPlanEmpty(t *testing.T) {
	path := writePlan(t, "runs: []\n")

	_, err := LoadPlan(path)
	assert.ErrorIs(t, err, ErrEmptyPlan)
}

func TestLoadPlanMalformed(t *testing.T) {
	path := writePlan(t, "runs: {not a list}\n")

	_, err := LoadPlan(path)
	assert.Error(t, err)
}

func TestPlanPayloads(t *testing.T) {
	plan := &Plan{Runs: []PlanEntry{
		{Scenario: 1, Overrides: map[string]any{"nx": 400}},
		{Scenario: 2},
	}}

	payloads, err := plan.Payloads(scenario.NewRegistry())
	require.NoError(t, err)
	require.Len(t, payloads, 2)
	assert.Equal(t, 400, payloads[0].NX)
	assert.Equal(t, 2, payloads[1].ScenarioID)
}

func TestPlanPayloadsUnknownScenario(t *testing.T) {
	plan := &Plan{Runs: []PlanEntry{{Scenario: 99}}}

	_, err := plan.Payloads(scenario.NewRegistry())
	require.Error(t, err)

	var notFound *scenario.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}
