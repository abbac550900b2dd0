// Package scenario defines the boundary-condition/physics scenarios the
// external wave solver supports, their default parameters, and the assembly
// of run payloads from defaults plus user overrides.
package scenario

import "fmt"

// SchemaVersion is written into every payload so the solver can detect
// incompatible parameter files.
const SchemaVersion = "1.0.0"

// Scenario identifiers. The variable-speed scenario uses the maximum
// propagation speed for its stability bound.
const (
	ScenarioDirichlet     = 1
	ScenarioNeumann       = 2
	ScenarioVariableSpeed = 3
	ScenarioDamped        = 4
)

// OutputType is the snapshot file format the solver is asked to write.
type OutputType string

const (
	OutputASCII OutputType = "ascii"
	OutputCSV   OutputType = "csv"
	OutputHDF5  OutputType = "hdf5"
)

// Defaults holds the default numerical and physical parameters for one
// scenario. Values are conservative (CFL <= 1) and are treated as immutable
// once the registry is built.
type Defaults struct {
	ScenarioID      int
	NX              int
	DX              float64
	L               float64
	WaveSpeed       float64
	CMax            float64
	CFL             float64
	TFinal          float64
	Gamma           float64
	OutputType      OutputType
	OutputFrequency int
	LoggingEnabled  bool
	CProfile        []float64
}

// NotFoundError is returned when a scenario id is not in the registry.
type NotFoundError struct {
	ID int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("unknown scenario id %d: valid ids are %d through %d", e.ID, ScenarioDirichlet, ScenarioDamped)
}

// Registry is the immutable table of scenario defaults. It is constructed
// once at process start and passed by reference into the builder and the
// orchestrator so that repeated lookups return identical values.
type Registry struct {
	defaults map[int]Defaults
}

// NewRegistry builds the default table for all supported scenarios (1-4).
func NewRegistry() *Registry {
	const (
		baseDX     = 0.01
		baseL      = 2.0
		baseNX     = int(baseL / baseDX) // keeps nx*dx equal to L
		baseC      = 1.0
		baseTFinal = 1.0
		baseCFL    = 0.9 // safely below the stability limit
		baseFreq   = 10
	)

	return &Registry{defaults: map[int]Defaults{
		ScenarioDirichlet: {
			ScenarioID:      ScenarioDirichlet,
			NX:              baseNX,
			DX:              baseDX,
			L:               baseL,
			WaveSpeed:       baseC,
			CMax:            baseC,
			CFL:             baseCFL,
			TFinal:          baseTFinal,
			OutputType:      OutputCSV,
			OutputFrequency: baseFreq,
			CProfile:        []float64{},
		},
		ScenarioNeumann: {
			ScenarioID:      ScenarioNeumann,
			NX:              baseNX,
			DX:              baseDX,
			L:               baseL,
			WaveSpeed:       baseC,
			CMax:            baseC,
			CFL:             baseCFL,
			TFinal:          baseTFinal,
			OutputType:      OutputCSV,
			OutputFrequency: baseFreq,
			CProfile:        []float64{},
		},
		ScenarioVariableSpeed: {
			ScenarioID:      ScenarioVariableSpeed,
			NX:              baseNX,
			DX:              baseDX,
			L:               baseL,
			WaveSpeed:       baseC,
			CMax:            1.5, // maximum of the profile, used for the CFL bound
			CFL:             0.8,
			TFinal:          baseTFinal,
			OutputType:      OutputCSV,
			OutputFrequency: baseFreq,
			CProfile:        []float64{1.0, 1.1, 1.25, 1.4, 1.5},
		},
		ScenarioDamped: {
			ScenarioID:      ScenarioDamped,
			NX:              baseNX,
			DX:              baseDX,
			L:               baseL,
			WaveSpeed:       baseC,
			CMax:            baseC,
			CFL:             0.7, // stricter bound for damping runs
			TFinal:          baseTFinal,
			Gamma:           0.05,
			OutputType:      OutputCSV,
			OutputFrequency: baseFreq,
			CProfile:        []float64{},
		},
	}}
}

// Get fetches defaults for a scenario.
func (r *Registry) Get(scenarioID int) (Defaults, error) {
	d, ok := r.defaults[scenarioID]
	if !ok {
		return Defaults{}, &NotFoundError{ID: scenarioID}
	}
	return d, nil
}

// IDs returns all registered scenario ids in ascending order.
func (r *Registry) IDs() []int {
	ids := make([]int, 0, len(r.defaults))
	for id := ScenarioDirichlet; id <= ScenarioDamped; id++ {
		if _, ok := r.defaults[id]; ok {
			ids = append(ids, id)
		}
	}
	return ids
}

// Name returns a short human-readable name for a scenario id.
func Name(scenarioID int) string {
	switch scenarioID {
	case ScenarioDirichlet:
		return "Dirichlet"
	case ScenarioNeumann:
		return "Neumann"
	case ScenarioVariableSpeed:
		return "Variable speed"
	case ScenarioDamped:
		return "Damped"
	default:
		return "Unknown"
	}
}

// ComputeDT derives the time step from CFL guidance. The variable-speed
// scenario uses the maximum propagation speed to bound the explicit-scheme
// stability limit; constant-speed scenarios use the wave speed itself.
// Stability requires cfl <= 1; the choice is the caller's responsibility.
func ComputeDT(scenarioID int, dx, cfl, waveSpeed, cMax float64) float64 {
	if scenarioID == ScenarioVariableSpeed {
		return cfl * dx / cMax
	}
	return cfl * dx / waveSpeed
}
