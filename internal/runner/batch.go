package runner

import (
	"errors"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/waverun-org/waverun/internal/scenario"
)

// ErrEmptyPlan is returned when a batch plan file contains no runs.
var ErrEmptyPlan = errors.New("batch plan contains no runs")

// PlanEntry is one run of a batch plan: a scenario and its parameter
// overrides.
type PlanEntry struct {
	Scenario  int            `yaml:"scenario"`
	Overrides map[string]any `yaml:"overrides"`
}

// Plan is a declarative batch of runs loaded from a YAML file.
type Plan struct {
	Runs []PlanEntry `yaml:"runs"`
}

// LoadPlan reads and parses a batch plan file.
func LoadPlan(path string) (*Plan, error) {
	data, err := os.ReadFile(path) // nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("failed to read batch plan: %w", err)
	}

	var plan Plan
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("failed to parse batch plan %s: %w", path, err)
	}
	if len(plan.Runs) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrEmptyPlan)
	}
	return &plan, nil
}

// Payloads builds the full payload for every plan entry against the given
// registry, in plan order.
func (p *Plan) Payloads(reg *scenario.Registry) ([]*scenario.Payload, error) {
	payloads := make([]*scenario.Payload, 0, len(p.Runs))
	for i, entry := range p.Runs {
		payload, err := scenario.BuildPayload(reg, entry.Scenario, entry.Overrides)
		if err != nil {
			return nil, fmt.Errorf("batch plan run %d: %w", i+1, err)
		}
		payloads = append(payloads, payload)
	}
	return payloads, nil
}
