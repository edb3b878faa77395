package store

import (
	"encoding/json"
	"fmt"

	"github.com/roach88/bindcheck/internal/canonical"
)

// marshalNames converts lesson names to canonical JSON TEXT.
func marshalNames(names []string) (string, error) {
	if names == nil {
		names = []string{}
	}
	data, err := canonical.Marshal(names)
	if err != nil {
		return "", fmt.Errorf("marshal names: %w", err)
	}
	return string(data), nil
}

// marshalLines converts printed lines to canonical JSON TEXT.
func marshalLines(lines []string) (string, error) {
	if lines == nil {
		lines = []string{}
	}
	data, err := canonical.Marshal(lines)
	if err != nil {
		return "", fmt.Errorf("marshal lines: %w", err)
	}
	return string(data), nil
}

// marshalDetails converts fault details to canonical JSON TEXT.
func marshalDetails(details map[string]string) (string, error) {
	if details == nil {
		details = map[string]string{}
	}
	data, err := canonical.Marshal(details)
	if err != nil {
		return "", fmt.Errorf("marshal details: %w", err)
	}
	return string(data), nil
}

// unmarshalStrings parses a JSON array of strings. Empty TEXT yields an empty slice.
func unmarshalStrings(data string) ([]string, error) {
	out := []string{}
	if data == "" {
		return out, nil
	}
	if err := json.Unmarshal([]byte(data), &out); err != nil {
		return nil, fmt.Errorf("unmarshal strings: %w", err)
	}
	return out, nil
}

// unmarshalDetails parses a JSON object of strings. Empty objects yield nil.
func unmarshalDetails(data string) (map[string]string, error) {
	if data == "" || data == "{}" {
		return nil, nil
	}
	var out map[string]string
	if err := json.Unmarshal([]byte(data), &out); err != nil {
		return nil, fmt.Errorf("unmarshal details: %w", err)
	}
	return out, nil
}
