package scenario

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Keys that must appear in the serialized payload regardless of which
// overrides were supplied or which scenario is selected.
var stableSchemaKeys = []string{
	"schema_version", "scenario_id", "nx", "dx", "L", "wave_speed", "c_max",
	"cfl", "dt", "t_final", "gamma", "output_type", "output_frequency",
	"snapshot_freq", "logging_enabled", "c_profile",
}

func TestBuildPayloadDefaults(t *testing.T) {
	reg := NewRegistry()

	p, err := BuildPayload(reg, ScenarioDirichlet, nil)
	require.NoError(t, err)

	assert.Equal(t, SchemaVersion, p.SchemaVersion)
	assert.Equal(t, ScenarioDirichlet, p.ScenarioID)
	assert.Equal(t, 200, p.NX)
	assert.InDelta(t, 0.009, p.DT, 1e-12)
	assert.Equal(t, p.OutputFrequency, p.SnapshotFreq)
	assert.NotNil(t, p.CProfile)
}

func TestBuildPayloadVariableSpeedDT(t *testing.T) {
	reg := NewRegistry()

	p, err := BuildPayload(reg, ScenarioVariableSpeed, map[string]any{
		"dx": 0.02, "cfl": 0.8, "c_max": 1.5,
	})
	require.NoError(t, err)

	assert.InDelta(t, 0.010667, p.DT, 1e-6)
}

func TestBuildPayloadOverrides(t *testing.T) {
	reg := NewRegistry()

	p, err := BuildPayload(reg, ScenarioNeumann, map[string]any{
		"nx":              400,
		"dx":              0.005,
		"output_type":     "hdf5",
		"logging_enabled": true,
	})
	require.NoError(t, err)

	assert.Equal(t, 400, p.NX)
	assert.InDelta(t, 0.005, p.DX, 1e-12)
	assert.Equal(t, OutputHDF5, p.OutputType)
	assert.True(t, p.LoggingEnabled)
	assert.InDelta(t, 0.9*0.005/1.0, p.DT, 1e-12)
}

func TestBuildPayloadExplicitDTWins(t *testing.T) {
	reg := NewRegistry()

	p, err := BuildPayload(reg, ScenarioDirichlet, map[string]any{"dt": 0.001})
	require.NoError(t, err)

	assert.InDelta(t, 0.001, p.DT, 1e-12)
}

func TestBuildPayloadUnknownKeysCarriedThrough(t *testing.T) {
	reg := NewRegistry()

	p, err := BuildPayload(reg, ScenarioDirichlet, map[string]any{
		"experimental_flux_limiter": "superbee",
		"nx":                        100,
	})
	require.NoError(t, err)
	assert.Equal(t, 100, p.NX)

	data, err := json.Marshal(p)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "superbee", decoded["experimental_flux_limiter"])
}

func TestBuildPayloadSchemaStableShape(t *testing.T) {
	reg := NewRegistry()

	for _, id := range reg.IDs() {
		p, err := BuildPayload(reg, id, map[string]any{"nx": 50})
		require.NoError(t, err)

		data, err := json.Marshal(p)
		require.NoError(t, err)

		var decoded map[string]any
		require.NoError(t, json.Unmarshal(data, &decoded))
		for _, key := range stableSchemaKeys {
			assert.Contains(t, decoded, key, "scenario %d missing %q", id, key)
		}
	}
}

func TestBuildPayloadMalformedOverrides(t *testing.T) {
	reg := NewRegistry()

	tests := []struct {
		name      string
		overrides map[string]any
	}{
		{"non-numeric nx", map[string]any{"nx": "many"}},
		{"non-numeric dx", map[string]any{"dx": "wide"}},
		{"fractional nx", map[string]any{"nx": 2.5}},
		{"bad output type", map[string]any{"output_type": "netcdf"}},
		{"zero frequency", map[string]any{"output_frequency": 0}},
		{"bad bool", map[string]any{"logging_enabled": "perhaps"}},
		{"bad profile", map[string]any{"c_profile": "1.0,fast"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildPayload(reg, ScenarioDirichlet, tt.overrides)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
		})
	}
}

func TestBuildPayloadUnknownScenario(t *testing.T) {
	reg := NewRegistry()

	_, err := BuildPayload(reg, 9, nil)
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestPayloadWriteFile(t *testing.T) {
	reg := NewRegistry()
	dir := t.TempDir()

	p, err := BuildPayload(reg, ScenarioDamped, nil)
	require.NoError(t, err)

	path, err := p.WriteFile(dir)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, SchemaVersion, decoded["schema_version"])
	assert.InDelta(t, 0.05, decoded["gamma"].(float64), 1e-12)
}

func TestNormalize(t *testing.T) {
	reg := NewRegistry()

	t.Run("rejects tiny grids", func(t *testing.T) {
		p, err := BuildPayload(reg, ScenarioDirichlet, map[string]any{"nx": 2})
		require.NoError(t, err)
		_, err = Normalize(p)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "nx", verr.Field)
	})

	t.Run("recomputes inconsistent dx from L", func(t *testing.T) {
		p, err := BuildPayload(reg, ScenarioDirichlet, map[string]any{
			"nx": 100, "dx": 0.01, // L=2.0 expects dx=0.02
		})
		require.NoError(t, err)

		notes, err := Normalize(p)
		require.NoError(t, err)
		require.NotEmpty(t, notes)
		assert.InDelta(t, 0.02, p.DX, 1e-12)
		assert.InDelta(t, 0.9*0.02/1.0, p.DT, 1e-12, "dt re-derived from the new dx")
	})

	t.Run("rounds t_final to a multiple of dt", func(t *testing.T) {
		p, err := BuildPayload(reg, ScenarioDirichlet, map[string]any{"t_final": 1.0043})
		require.NoError(t, err)

		_, err = Normalize(p)
		require.NoError(t, err)
		ratio := p.TFinal / p.DT
		assert.InDelta(t, ratio, float64(int64(ratio+0.5)), 1e-9)
	})

	t.Run("consistent payload untouched", func(t *testing.T) {
		// cfl=1.0 gives dt=0.01, which divides t_final=1.0 evenly.
		p, err := BuildPayload(reg, ScenarioDirichlet, map[string]any{"cfl": 1.0})
		require.NoError(t, err)
		before := *p

		notes, err := Normalize(p)
		require.NoError(t, err)
		assert.Empty(t, notes)
		assert.Equal(t, before.DX, p.DX)
		assert.Equal(t, before.TFinal, p.TFinal)
	})
}
