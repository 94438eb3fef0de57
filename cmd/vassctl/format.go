package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/muurk/vassapi/assistant"
	"github.com/muurk/vassapi/internal/discovery"
)

// Output formats
const (
	formatDetailed = "detailed"
	formatCompact  = "compact"
	formatJSON     = "json"
)

func validFormat(format string) error {
	switch format {
	case formatDetailed, formatCompact, formatJSON:
		return nil
	}
	return fmt.Errorf("unknown output format %q (use detailed, compact or json)", format)
}

// writeJSON writes v as indented JSON
func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// banner returns the boxed title used by detailed output
func banner(title string) string {
	const inner = 64
	pad := inner - len(title)
	if pad < 0 {
		pad = 0
	}
	left := pad / 2
	var b strings.Builder
	b.WriteString("╔" + strings.Repeat("═", inner) + "╗\n")
	b.WriteString("║" + strings.Repeat(" ", left) + title + strings.Repeat(" ", pad-left) + "║\n")
	b.WriteString("╚" + strings.Repeat("═", inner) + "╝\n")
	return b.String()
}

// formatInfo renders the assistant's identity
func formatInfo(w io.Writer, info assistant.DeviceInfo, format string) error {
	switch format {
	case formatJSON:
		return writeJSON(w, info)
	case formatCompact:
		_, err := fmt.Fprintln(w, info.Summary())
		return err
	}

	var b strings.Builder
	b.WriteString(banner("ASSISTANT INFORMATION"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Name:      %s\n", info.Name))
	b.WriteString(fmt.Sprintf("Version:   %s\n", info.Version))
	b.WriteString(fmt.Sprintf("UUID:      %s\n", info.UUID))
	if _, err := info.ParseUUID(); err != nil && info.UUID != "" {
		b.WriteString("           (not a valid UUID)\n")
	}
	b.WriteString(fmt.Sprintf("Language:  %s\n", info.Language))
	area := info.Area
	if area == "" {
		area = "(none)"
	}
	b.WriteString(fmt.Sprintf("Area:      %s\n", area))
	_, err := io.WriteString(w, b.String())
	return err
}

// formatStates renders the mute and volume state
func formatStates(w io.Writer, states assistant.DeviceStates, format string) error {
	switch format {
	case formatJSON:
		return writeJSON(w, states)
	case formatCompact:
		_, err := fmt.Fprintln(w, states.String())
		return err
	}

	var b strings.Builder
	b.WriteString("=== Assistant State ===\n")
	b.WriteString(fmt.Sprintf("Microphone: %s\n", muteWord(states.InputMuted)))
	b.WriteString(fmt.Sprintf("Speaker:    %s\n", muteWord(states.OutputMuted)))
	b.WriteString(fmt.Sprintf("Volume:     %s %d\n", volumeBar(states.OutputVolume, 20), states.OutputVolume))
	_, err := io.WriteString(w, b.String())
	return err
}

// formatStatus renders the result of a liveness probe
func formatStatus(w io.Writer, address string, running bool, format string) error {
	switch format {
	case formatJSON:
		return writeJSON(w, map[string]any{"address": address, "running": running})
	case formatCompact:
		_, err := fmt.Fprintln(w, runningWord(running))
		return err
	}
	_, err := fmt.Fprintf(w, "Assistant at %s is %s\n", address, runningWord(running))
	return err
}

// formatSkills renders the skill list in device order
func formatSkills(w io.Writer, skills []string, format string) error {
	switch format {
	case formatJSON:
		if skills == nil {
			skills = []string{}
		}
		return writeJSON(w, skills)
	case formatCompact:
		_, err := fmt.Fprintln(w, strings.Join(skills, " "))
		return err
	}

	if len(skills) == 0 {
		_, err := fmt.Fprintln(w, "No skills installed.")
		return err
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%d skill(s):\n", len(skills)))
	for _, skill := range skills {
		b.WriteString("  • " + skill + "\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// formatConfig renders the assistant configuration document
func formatConfig(w io.Writer, cfg map[string]any, format string) error {
	if format != formatCompact {
		return writeJSON(w, cfg)
	}
	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// formatDevices renders mDNS scan results
func formatDevices(w io.Writer, devices []*discovery.Device, format string) error {
	switch format {
	case formatJSON:
		type entry struct {
			Name     string            `json:"name"`
			Hostname string            `json:"hostname"`
			IP       string            `json:"ip"`
			Port     int               `json:"port"`
			Metadata map[string]string `json:"metadata,omitempty"`
		}
		out := make([]entry, 0, len(devices))
		for _, d := range devices {
			out = append(out, entry{d.Name, d.Hostname, d.IP, d.Port, d.Metadata})
		}
		return writeJSON(w, out)
	case formatCompact:
		for _, d := range devices {
			if _, err := fmt.Fprintf(w, "%s\t%s\n", d.Address(), d.Name); err != nil {
				return err
			}
		}
		return nil
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Found %d assistant(s):\n\n", len(devices)))
	for i, d := range devices {
		b.WriteString(fmt.Sprintf("%d. %s\n", i+1, d.Name))
		b.WriteString(fmt.Sprintf("   Host:    %s\n", d.Hostname))
		b.WriteString(fmt.Sprintf("   Address: %s\n", d.Address()))
		if v := d.GetMetadata("version"); v != "" {
			b.WriteString(fmt.Sprintf("   Version: %s\n", v))
		}
		if len(d.Metadata) > 0 {
			keys := make([]string, 0, len(d.Metadata))
			for k := range d.Metadata {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			pairs := make([]string, 0, len(keys))
			for _, k := range keys {
				pairs = append(pairs, k+"="+d.Metadata[k])
			}
			b.WriteString(fmt.Sprintf("   TXT:     %s\n", strings.Join(pairs, " ")))
		}
		b.WriteString("\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func muteWord(muted bool) string {
	if muted {
		return "muted"
	}
	return "live"
}

func runningWord(running bool) string {
	if running {
		return "running"
	}
	return "not running"
}

// volumeBar draws level (0-100) as a bar of width cells
func volumeBar(level, width int) string {
	if level < 0 {
		level = 0
	}
	if level > 100 {
		level = 100
	}
	filled := level * width / 100
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + "]"
}
