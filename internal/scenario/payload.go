package scenario

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Payload is the merged, schema-stable parameter record handed to the
// solver. Every field is always present in the serialized form, even when
// the current scenario does not consume it, so the on-disk shape stays
// stable across scenarios and versions. Extra carries override keys outside
// the known schema verbatim (a forward-compatibility escape hatch).
type Payload struct {
	SchemaVersion   string         `json:"schema_version"`
	ScenarioID      int            `json:"scenario_id"`
	NX              int            `json:"nx"`
	DX              float64        `json:"dx"`
	L               float64        `json:"L"`
	WaveSpeed       float64        `json:"wave_speed"`
	CMax            float64        `json:"c_max"`
	CFL             float64        `json:"cfl"`
	DT              float64        `json:"dt"`
	TFinal          float64        `json:"t_final"`
	Gamma           float64        `json:"gamma"`
	OutputType      OutputType     `json:"output_type"`
	OutputFrequency int            `json:"output_frequency"`
	SnapshotFreq    int            `json:"snapshot_freq"`
	LoggingEnabled  bool           `json:"logging_enabled"`
	CProfile        []float64      `json:"c_profile"`
	Extra           map[string]any `json:"-"`
}

// knownOverrideKeys are the override keys applied onto typed payload fields.
// Anything else passes through into Extra untouched.
var knownOverrideKeys = map[string]struct{}{
	"nx": {}, "dx": {}, "L": {}, "wave_speed": {}, "c_max": {}, "cfl": {},
	"dt": {}, "t_final": {}, "gamma": {}, "output_type": {},
	"output_frequency": {}, "snapshot_freq": {}, "logging_enabled": {},
	"c_profile": {},
}

// BuildPayload merges overrides onto the scenario defaults, derives the time
// step from CFL guidance, and produces the stable-shaped parameter record.
// An explicit "dt" override wins over the derived value.
func BuildPayload(reg *Registry, scenarioID int, overrides map[string]any) (*Payload, error) {
	defaults, err := reg.Get(scenarioID)
	if err != nil {
		return nil, err
	}

	p := &Payload{
		SchemaVersion:   SchemaVersion,
		ScenarioID:      defaults.ScenarioID,
		NX:              defaults.NX,
		DX:              defaults.DX,
		L:               defaults.L,
		WaveSpeed:       defaults.WaveSpeed,
		CMax:            defaults.CMax,
		CFL:             defaults.CFL,
		TFinal:          defaults.TFinal,
		Gamma:           defaults.Gamma,
		OutputType:      defaults.OutputType,
		OutputFrequency: defaults.OutputFrequency,
		LoggingEnabled:  defaults.LoggingEnabled,
		CProfile:        append([]float64(nil), defaults.CProfile...),
	}

	var dtOverridden bool
	for key, value := range overrides {
		if _, known := knownOverrideKeys[key]; !known {
			if p.Extra == nil {
				p.Extra = map[string]any{}
			}
			p.Extra[key] = value
			continue
		}
		if key == "dt" {
			dtOverridden = true
		}
		if err := p.applyOverride(key, value); err != nil {
			return nil, err
		}
	}

	if !dtOverridden {
		p.DT = ComputeDT(p.ScenarioID, p.DX, p.CFL, p.WaveSpeed, p.CMax)
	}

	// Keep the schema shape stable regardless of scenario.
	p.SnapshotFreq = p.OutputFrequency
	if p.OutputType == "" {
		p.OutputType = OutputASCII
	}
	if p.OutputFrequency < 1 {
		p.OutputFrequency = 1
		p.SnapshotFreq = 1
	}
	if p.CProfile == nil {
		p.CProfile = []float64{}
	}

	return p, nil
}

func (p *Payload) applyOverride(key string, value any) error {
	switch key {
	case "nx":
		v, err := toInt(value)
		if err != nil {
			return &ValidationError{Field: key, Message: err.Error()}
		}
		p.NX = v
	case "dx":
		return p.setFloat(&p.DX, key, value)
	case "L":
		return p.setFloat(&p.L, key, value)
	case "wave_speed":
		return p.setFloat(&p.WaveSpeed, key, value)
	case "c_max":
		return p.setFloat(&p.CMax, key, value)
	case "cfl":
		return p.setFloat(&p.CFL, key, value)
	case "dt":
		return p.setFloat(&p.DT, key, value)
	case "t_final":
		return p.setFloat(&p.TFinal, key, value)
	case "gamma":
		return p.setFloat(&p.Gamma, key, value)
	case "output_type":
		s, ok := value.(string)
		if !ok {
			return &ValidationError{Field: key, Message: fmt.Sprintf("expected string, got %T", value)}
		}
		switch OutputType(s) {
		case OutputASCII, OutputCSV, OutputHDF5:
			p.OutputType = OutputType(s)
		default:
			return &ValidationError{Field: key, Message: fmt.Sprintf("unsupported output type %q", s)}
		}
	case "output_frequency", "snapshot_freq":
		v, err := toInt(value)
		if err != nil {
			return &ValidationError{Field: key, Message: err.Error()}
		}
		if v < 1 {
			return &ValidationError{Field: key, Message: "must be at least 1"}
		}
		p.OutputFrequency = v
	case "logging_enabled":
		v, err := toBool(value)
		if err != nil {
			return &ValidationError{Field: key, Message: err.Error()}
		}
		p.LoggingEnabled = v
	case "c_profile":
		v, err := toFloatSlice(value)
		if err != nil {
			return &ValidationError{Field: key, Message: err.Error()}
		}
		p.CProfile = v
	}
	return nil
}

func (p *Payload) setFloat(dst *float64, key string, value any) error {
	v, err := toFloat(value)
	if err != nil {
		return &ValidationError{Field: key, Message: err.Error()}
	}
	*dst = v
	return nil
}

// MarshalJSON flattens the typed fields and the Extra map into one object.
// Known fields win over colliding Extra keys.
func (p *Payload) MarshalJSON() ([]byte, error) {
	type alias Payload
	base, err := json.Marshal((*alias)(p))
	if err != nil {
		return nil, err
	}
	if len(p.Extra) == 0 {
		return base, nil
	}

	merged := make(map[string]json.RawMessage, len(p.Extra)+16)
	for key, value := range p.Extra {
		raw, err := json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal extra key %q: %w", key, err)
		}
		merged[key] = raw
	}
	var known map[string]json.RawMessage
	if err := json.Unmarshal(base, &known); err != nil {
		return nil, err
	}
	for key, value := range known {
		merged[key] = value
	}
	return json.Marshal(merged)
}

// WriteFile serializes the payload as indented JSON into dir and returns the
// file path. The resulting file is what the solver receives as its single
// positional argument.
func (p *Payload) WriteFile(dir string) (string, error) {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to serialize payload: %w", err)
	}
	path := filepath.Join(dir, "input.json")
	if err := os.WriteFile(path, append(data, '\n'), 0600); err != nil {
		return "", fmt.Errorf("failed to write payload file: %w", err)
	}
	return path, nil
}

func toInt(value any) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		if v != float64(int(v)) {
			return 0, fmt.Errorf("expected integer, got %v", v)
		}
		return int(v), nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, fmt.Errorf("expected integer, got %q", v)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("expected integer, got %T", value)
	}
}

func toFloat(value any) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, fmt.Errorf("expected number, got %q", v)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("expected number, got %T", value)
	}
}

func toBool(value any) (bool, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return false, fmt.Errorf("expected boolean, got %q", v)
		}
		return b, nil
	default:
		return false, fmt.Errorf("expected boolean, got %T", value)
	}
}

func toFloatSlice(value any) ([]float64, error) {
	switch v := value.(type) {
	case []float64:
		return v, nil
	case []any:
		out := make([]float64, 0, len(v))
		for _, item := range v {
			f, err := toFloat(item)
			if err != nil {
				return nil, err
			}
			out = append(out, f)
		}
		return out, nil
	case string:
		if strings.TrimSpace(v) == "" {
			return []float64{}, nil
		}
		parts := strings.Split(v, ",")
		out := make([]float64, 0, len(parts))
		for _, part := range parts {
			f, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
			if err != nil {
				return nil, fmt.Errorf("expected comma-separated numbers, got %q", v)
			}
			out = append(out, f)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("expected list of numbers, got %T", value)
	}
}
