package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOverrides(t *testing.T) {
	tests := []struct {
		name  string
		pairs []string
		want  map[string]any
	}{
		{
			name: "empty",
		},
		{
			name:  "int",
			pairs: []string{"nx=400"},
			want:  map[string]any{"nx": 400},
		},
		{
			name:  "float",
			pairs: []string{"cfl=0.5"},
			want:  map[string]any{"cfl": 0.5},
		},
		{
			name:  "scientific notation",
			pairs: []string{"dt=1e-4"},
			want:  map[string]any{"dt": 1e-4},
		},
		{
			name:  "bool",
			pairs: []string{"logging_enabled=true"},
			want:  map[string]any{"logging_enabled": true},
		},
		{
			name:  "string",
			pairs: []string{"output_type=csv"},
			want:  map[string]any{"output_type": "csv"},
		},
		{
			name:  "float list",
			pairs: []string{"c_profile=1.0,1.1,1.25"},
			want:  map[string]any{"c_profile": []float64{1.0, 1.1, 1.25}},
		},
		{
			name:  "mixed list stays string",
			pairs: []string{"tags=a,b"},
			want:  map[string]any{"tags": "a,b"},
		},
		{
			name:  "multiple pairs",
			pairs: []string{"nx=100", "cfl=0.9"},
			want:  map[string]any{"nx": 100, "cfl": 0.9},
		},
		{
			name:  "value containing equals",
			pairs: []string{"note=a=b"},
			want:  map[string]any{"note": "a=b"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseOverrides(tc.pairs)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseOverridesInvalid(t *testing.T) {
	_, err := parseOverrides([]string{"no-separator"})
	assert.Error(t, err)

	_, err = parseOverrides([]string{"=value"})
	assert.Error(t, err)
}
