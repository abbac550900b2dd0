// Package solver locates the external wave-solver binary for a scenario and,
// when no binary can be found, compiles one from a registered source list.
package solver

import "github.com/waverun-org/waverun/internal/scenario"

// DefaultBinaryName is the solver binary looked up when a scenario binding
// does not override it.
const DefaultBinaryName = "wave_solver"

// Binding maps a scenario to its solver binary and the ordered source list
// the auto-builder compiles when the binary cannot be resolved.
type Binding struct {
	Name    string
	Sources []string
}

// Bindings is the scenario-to-binding registry.
type Bindings struct {
	byScenario map[int]Binding
}

// NewBindings returns an empty registry.
func NewBindings() *Bindings {
	return &Bindings{byScenario: map[int]Binding{}}
}

// DefaultBindings registers the stock solver build for every scenario. All
// scenarios share one binary; the boundary-condition module differs.
func DefaultBindings() *Bindings {
	b := NewBindings()
	common := []string{"params_io.f90", "grid.f90", "wave_core.f90"}
	for id, bc := range map[int]string{
		scenario.ScenarioDirichlet:     "bc_dirichlet.f90",
		scenario.ScenarioNeumann:       "bc_neumann.f90",
		scenario.ScenarioVariableSpeed: "bc_variable_speed.f90",
		scenario.ScenarioDamped:        "bc_damped.f90",
	} {
		sources := append(append([]string{}, common...), bc, "main.f90")
		b.Register(id, Binding{Name: DefaultBinaryName, Sources: sources})
	}
	return b
}

// Register adds or replaces the binding for a scenario.
func (b *Bindings) Register(scenarioID int, binding Binding) {
	if binding.Name == "" {
		binding.Name = DefaultBinaryName
	}
	b.byScenario[scenarioID] = binding
}

// Get returns the binding for a scenario.
func (b *Bindings) Get(scenarioID int) (Binding, bool) {
	binding, ok := b.byScenario[scenarioID]
	return binding, ok
}
