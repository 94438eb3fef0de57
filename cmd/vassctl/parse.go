package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// parseEntities converts repeated --entity key=value flags into a skill
// entity map. Values that parse as JSON (numbers, booleans, objects) keep
// their type; anything else is a string.
func parseEntities(pairs []string) (map[string]any, error) {
	entities := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid entity %q: expected key=value", pair)
		}
		entities[key] = parseValue(value)
	}
	return entities, nil
}

func parseValue(raw string) any {
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err == nil && v != nil {
		return v
	}
	return raw
}

// parseSwitch accepts the usual spellings of on and off
func parseSwitch(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "on", "yes", "mute", "muted":
		return true, nil
	case "off", "no", "unmute", "unmuted":
		return false, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid value %q: use on or off", raw)
	}
	return b, nil
}

// parseVolume parses a volume level, accepting relative +N and -N steps
// against current.
func parseVolume(raw string, current int) (int, error) {
	raw = strings.TrimSpace(raw)
	relative := strings.HasPrefix(raw, "+") || strings.HasPrefix(raw, "-")

	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid volume %q: expected a number between 0 and 100", raw)
	}
	if relative {
		n = current + n
		if n < 0 {
			n = 0
		}
		if n > 100 {
			n = 100
		}
	}
	return n, nil
}

// parseConfigDocument decodes a configuration document, which must be a JSON
// object.
func parseConfigDocument(data []byte) (map[string]any, error) {
	var cfg map[string]any
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("configuration must be a JSON object: %w", err)
	}
	if cfg == nil {
		return nil, fmt.Errorf("configuration must be a JSON object, got null")
	}
	return cfg, nil
}
