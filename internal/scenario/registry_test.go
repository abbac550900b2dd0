package scenario

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryGridInvariant(t *testing.T) {
	reg := NewRegistry()
	for _, id := range reg.IDs() {
		d, err := reg.Get(id)
		require.NoError(t, err)
		assert.True(t, CheckGridInvariant(d.NX, d.DX, d.L),
			"scenario %d: nx*dx must equal L", id)
	}
}

func TestRegistryUnknownScenario(t *testing.T) {
	reg := NewRegistry()

	for _, id := range []int{0, 5, -1, 42} {
		_, err := reg.Get(id)
		require.Error(t, err)

		var notFound *NotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, id, notFound.ID)
		assert.Contains(t, err.Error(), "valid ids are 1 through 4")
	}
}

func TestRegistryStableAcrossCalls(t *testing.T) {
	reg := NewRegistry()

	first, err := reg.Get(ScenarioVariableSpeed)
	require.NoError(t, err)
	second, err := reg.Get(ScenarioVariableSpeed)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRegistryConservativeCFL(t *testing.T) {
	reg := NewRegistry()
	for _, id := range reg.IDs() {
		d, err := reg.Get(id)
		require.NoError(t, err)
		assert.LessOrEqual(t, d.CFL, 1.0, "scenario %d", id)
		assert.GreaterOrEqual(t, d.OutputFrequency, 1, "scenario %d", id)
	}
}

func TestComputeDT(t *testing.T) {
	assert.InDelta(t, 0.009, ComputeDT(ScenarioDirichlet, 0.01, 0.9, 1.0, 1.0), 1e-12)
	assert.InDelta(t, 0.010667, ComputeDT(ScenarioVariableSpeed, 0.02, 0.8, 1.0, 1.5), 1e-6)

	// Constant-speed scenarios ignore c_max even when it differs.
	assert.InDelta(t, 0.009, ComputeDT(ScenarioNeumann, 0.01, 0.9, 1.0, 2.5), 1e-12)
}

func TestScenarioNames(t *testing.T) {
	assert.Equal(t, "Dirichlet", Name(ScenarioDirichlet))
	assert.Equal(t, "Neumann", Name(ScenarioNeumann))
	assert.Equal(t, "Variable speed", Name(ScenarioVariableSpeed))
	assert.Equal(t, "Damped", Name(ScenarioDamped))
	assert.Equal(t, "Unknown", Name(99))
}
