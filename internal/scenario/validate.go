package scenario

import (
	"fmt"
	"math"
)

// ValidationError reports malformed or out-of-range numeric input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// Tolerances for the caller-side consistency checks.
const (
	gridTolerance     = 1e-10
	timeStepTolerance = 1e-12
	gridInvariantEps  = 1e-9
	minSpatialPoints  = 3
)

// Normalize applies the caller-side consistency rules to a built payload and
// returns human-readable notes for every adjustment made:
//
//   - nx must be at least 3;
//   - when dx disagrees with L/nx beyond tolerance, dx is recomputed from the
//     domain length (and dt re-derived, since it depends on dx);
//   - when t_final is not an integer multiple of dt within tolerance, it is
//     rounded to the nearest multiple.
//
// The payload is adjusted in place; after Normalize it must not be mutated
// again before being handed to the orchestrator.
func Normalize(p *Payload) ([]string, error) {
	if p.NX < minSpatialPoints {
		return nil, &ValidationError{
			Field:   "nx",
			Message: fmt.Sprintf("need at least %d spatial points, got %d", minSpatialPoints, p.NX),
		}
	}

	var notes []string

	expectedDX := p.L / float64(p.NX)
	if math.Abs(expectedDX-p.DX) > gridTolerance {
		notes = append(notes, fmt.Sprintf(
			"adjusted dx to %g so that nx*dx equals domain length L=%g", expectedDX, p.L))
		p.DX = expectedDX
		p.DT = ComputeDT(p.ScenarioID, p.DX, p.CFL, p.WaveSpeed, p.CMax)
	}

	if p.DT <= 0 {
		return nil, &ValidationError{
			Field:   "dt",
			Message: fmt.Sprintf("time step must be positive, got %g", p.DT),
		}
	}

	ratio := p.TFinal / p.DT
	adjusted := math.Round(ratio) * p.DT
	if math.Abs(adjusted-p.TFinal) > timeStepTolerance {
		notes = append(notes, fmt.Sprintf(
			"adjusted t_final to %g (nearest integer multiple of dt=%g)", adjusted, p.DT))
		p.TFinal = adjusted
	}

	return notes, nil
}

// CheckGridInvariant verifies nx*dx == L within tolerance. Registry defaults
// satisfy this by construction; user-supplied grids go through Normalize.
func CheckGridInvariant(nx int, dx, l float64) bool {
	return math.Abs(float64(nx)*dx-l) <= gridInvariantEps
}
