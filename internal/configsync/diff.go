package configsync

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// Diff compares two configuration documents and returns one line per
// differing leaf, addressed by dotted path. Numbers are compared by value,
// so 5 and 5.0 are equal.
func Diff(expected, actual map[string]any) []string {
	var out []string
	diffValue("", normalize(expected), normalize(actual), &out)
	return out
}

func diffValue(path string, expected, actual any, out *[]string) {
	em, eok := expected.(map[string]any)
	am, aok := actual.(map[string]any)
	if eok && aok {
		keys := make(map[string]struct{}, len(em)+len(am))
		for k := range em {
			keys[k] = struct{}{}
		}
		for k := range am {
			keys[k] = struct{}{}
		}
		sorted := make([]string, 0, len(keys))
		for k := range keys {
			sorted = append(sorted, k)
		}
		sort.Strings(sorted)

		for _, k := range sorted {
			child := k
			if path != "" {
				child = path + "." + k
			}
			ev, inExpected := em[k]
			av, inActual := am[k]
			switch {
			case !inActual:
				*out = append(*out, fmt.Sprintf("%s: missing (expected %s)", child, render(ev)))
			case !inExpected:
				*out = append(*out, fmt.Sprintf("%s: unexpected %s", child, render(av)))
			default:
				diffValue(child, ev, av, out)
			}
		}
		return
	}

	if !reflect.DeepEqual(expected, actual) {
		if path == "" {
			path = "(root)"
		}
		*out = append(*out, fmt.Sprintf("%s: expected %s, got %s", path, render(expected), render(actual)))
	}
}

// normalize round-trips v through JSON so documents built in Go compare
// equal to ones decoded from the wire.
func normalize(v map[string]any) any {
	if v == nil {
		return map[string]any{}
	}
	data, err := json.Marshal(v)
	if err != nil {
		return v
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return v
	}
	return out
}

func render(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(data)
}

// formatMismatches creates a human-readable summary of mismatches
func formatMismatches(mismatches []string) string {
	switch len(mismatches) {
	case 0:
		return "none"
	case 1:
		return mismatches[0]
	}
	return fmt.Sprintf("%d mismatches: %s", len(mismatches), strings.Join(mismatches, "; "))
}
