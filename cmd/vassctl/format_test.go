package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/muurk/vassapi/assistant"
	"github.com/muurk/vassapi/internal/discovery"
)

var testInfo = assistant.DeviceInfo{
	Name:     "Kitchen",
	Version:  "1.4.2",
	UUID:     "6f1c3c1e-8d1a-4a7e-9a59-2f0c1b7f4f10",
	Language: "en",
	Area:     "kitchen",
}

func TestFormatInfo(t *testing.T) {
	tests := []struct {
		format string
		want   []string
	}{
		{formatDetailed, []string{"ASSISTANT INFORMATION", "Name:      Kitchen", "Version:   1.4.2", "Area:      kitchen"}},
		{formatCompact, []string{"Kitchen", "1.4.2"}},
		{formatJSON, []string{`"name": "Kitchen"`, `"uuid": "6f1c3c1e-8d1a-4a7e-9a59-2f0c1b7f4f10"`}},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var buf bytes.Buffer
			if err := formatInfo(&buf, testInfo, tt.format); err != nil {
				t.Fatalf("formatInfo() error = %v", err)
			}
			for _, want := range tt.want {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("output missing %q:\n%s", want, buf.String())
				}
			}
		})
	}
}

func TestFormatInfo_InvalidUUIDAndNoArea(t *testing.T) {
	info := testInfo
	info.UUID = "not-a-uuid"
	info.Area = ""

	var buf bytes.Buffer
	if err := formatInfo(&buf, info, formatDetailed); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "not a valid UUID") {
		t.Error("detailed output should flag the invalid UUID")
	}
	if !strings.Contains(buf.String(), "(none)") {
		t.Error("detailed output should show (none) for an empty area")
	}
}

func TestFormatStates(t *testing.T) {
	states := assistant.DeviceStates{InputMuted: true, OutputVolume: 50}

	var buf bytes.Buffer
	if err := formatStates(&buf, states, formatDetailed); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"Microphone: muted", "Speaker:    live", "Volume:", " 50"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	if err := formatStates(&buf, states, formatJSON); err != nil {
		t.Fatal(err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("json output invalid: %v", err)
	}
	if decoded["input_muted"] != true || decoded["output_volume"] != float64(50) {
		t.Errorf("json = %v", decoded)
	}
}

func TestFormatSkills(t *testing.T) {
	var buf bytes.Buffer
	if err := formatSkills(&buf, []string{"weather", "lights_on", "timer"}, formatDetailed); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "3 skill(s)") {
		t.Errorf("output = %s", out)
	}
	if strings.Index(out, "weather") > strings.Index(out, "timer") {
		t.Error("skills should keep device order")
	}

	buf.Reset()
	if err := formatSkills(&buf, nil, formatJSON); err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(buf.String()) != "[]" {
		t.Errorf("json for no skills = %q, want []", buf.String())
	}

	buf.Reset()
	if err := formatSkills(&buf, nil, formatDetailed); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "No skills") {
		t.Errorf("output = %s", buf.String())
	}
}

func TestFormatDevices(t *testing.T) {
	devices := []*discovery.Device{
		{Name: "Kitchen", Hostname: "kitchen.local.", IP: "192.168.1.40", Port: 1507, Metadata: map[string]string{"version": "1.4.2", "a": "b"}},
	}

	var buf bytes.Buffer
	if err := formatDevices(&buf, devices, formatDetailed); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"Found 1 assistant(s)", "192.168.1.40:1507", "TXT:     a=b version=1.4.2"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("output missing %q:\n%s", want, buf.String())
		}
	}

	buf.Reset()
	if err := formatDevices(&buf, devices, formatCompact); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "192.168.1.40:1507\tKitchen\n" {
		t.Errorf("compact = %q", buf.String())
	}
}

func TestVolumeBar(t *testing.T) {
	tests := []struct {
		level int
		want  string
	}{
		{0, "[░░░░░░░░░░]"},
		{50, "[█████░░░░░]"},
		{100, "[██████████]"},
		{120, "[██████████]"},
	}
	for _, tt := range tests {
		if got := volumeBar(tt.level, 10); got != tt.want {
			t.Errorf("volumeBar(%d) = %s, want %s", tt.level, got, tt.want)
		}
	}
}

func TestValidFormat(t *testing.T) {
	for _, f := range []string{formatDetailed, formatCompact, formatJSON} {
		if err := validFormat(f); err != nil {
			t.Errorf("validFormat(%q) = %v", f, err)
		}
	}
	if err := validFormat("yaml"); err == nil {
		t.Error("validFormat(yaml) should fail")
	}
}

func TestProfileName(t *testing.T) {
	tests := []struct {
		device discovery.Device
		want   string
	}{
		{discovery.Device{Name: "Kitchen Assistant"}, "kitchen-assistant"},
		{discovery.Device{Name: "Büro #2"}, "büro-2"},
		{discovery.Device{Hostname: "attic-pi.local."}, "attic-pi"},
		{discovery.Device{Name: "!!!", IP: "192.168.1.9"}, "192-168-1-9"},
	}
	for _, tt := range tests {
		d := tt.device
		if got := profileName(&d); got != tt.want {
			t.Errorf("profileName(%+v) = %q, want %q", tt.device, got, tt.want)
		}
	}
}
