package runner

import "fmt"

// State tracks a run through its lifecycle. Succeeded, Failed and
// ArtifactsRenamed are terminal in the sense that a run never re-enters an
// earlier state; the only transition out of Succeeded is the artifact
// renaming step.
type State int

const (
	StateCreated State = iota
	StateParamsWritten
	StateInvoked
	StateSucceeded
	StateFailed
	StateArtifactsRenamed
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateParamsWritten:
		return "params_written"
	case StateInvoked:
		return "invoked"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	case StateArtifactsRenamed:
		return "artifacts_renamed"
	default:
		return "unknown"
	}
}

var stateTransitions = map[State][]State{
	StateCreated:       {StateParamsWritten},
	StateParamsWritten: {StateInvoked},
	StateInvoked:       {StateSucceeded, StateFailed},
	StateSucceeded:     {StateArtifactsRenamed},
}

// transition advances the state, rejecting anything outside the lifecycle
// Created -> ParamsWritten -> Invoked -> {Succeeded | Failed} ->
// ArtifactsRenamed (success only).
func (s *State) transition(to State) error {
	for _, allowed := range stateTransitions[*s] {
		if allowed == to {
			*s = to
			return nil
		}
	}
	return fmt.Errorf("illegal run state transition %s -> %s", *s, to)
}
