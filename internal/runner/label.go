package runner

import (
	"fmt"
	"strings"

	"github.com/waverun-org/waverun/internal/scenario"
	"github.com/waverun-org/waverun/internal/stringutil"
)

// Label constructs a concise filename-safe token summarizing a run's key
// parameters: scenario id, grid size, spatial and time steps, and the
// output frequency.
func Label(p *scenario.Payload) string {
	var parts []string

	parts = append(parts, fmt.Sprintf("s%d", p.ScenarioID))
	if p.NX > 0 {
		parts = append(parts, fmt.Sprintf("nx%d", p.NX))
	}
	parts = append(parts, "dx"+stringutil.FloatToken(p.DX))
	parts = append(parts, "dt"+stringutil.FloatToken(p.DT))
	if p.OutputFrequency > 0 {
		parts = append(parts, fmt.Sprintf("f%d", p.OutputFrequency))
	}

	return stringutil.SanitizeToken(strings.Join(parts, "-"))
}
