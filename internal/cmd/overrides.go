package cmd

import (
	"fmt"
	"strconv"
	"strings"
)

// parseOverrides turns repeated key=value flags into an override map. Values
// are coerced by shape: integers, floats, booleans and comma-separated float
// lists are recognized; everything else stays a string.
func parseOverrides(pairs []string) (map[string]any, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	overrides := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, raw, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid override %q: expected key=value", pair)
		}
		overrides[key] = coerceValue(strings.TrimSpace(raw))
	}
	return overrides, nil
}

func coerceValue(raw string) any {
	if v, err := strconv.Atoi(raw); err == nil {
		return v
	}
	if v, err := strconv.ParseFloat(raw, 64); err == nil {
		return v
	}
	if raw == "true" || raw == "false" {
		return raw == "true"
	}
	if strings.Contains(raw, ",") {
		if list, ok := parseFloatList(raw); ok {
			return list
		}
	}
	return raw
}

func parseFloatList(raw string) ([]float64, bool) {
	fields := strings.Split(raw, ",")
	list := make([]float64, 0, len(fields))
	for _, field := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return nil, false
		}
		list = append(list, v)
	}
	return list, true
}
