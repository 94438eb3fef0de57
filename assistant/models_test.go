package assistant

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestDeviceInfo_RoundTrip(t *testing.T) {
	original := DeviceInfo{
		Name:     "Living Room",
		Version:  "2.0.1",
		UUID:     "0d5e8f8a-3b1f-4c36-9d0f-1e2a3b4c5d6e",
		Language: "de",
		Area:     "living_room",
	}

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var decoded DeviceInfo
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if decoded != original {
		t.Errorf("round trip = %+v, want %+v", decoded, original)
	}
}

func TestDeviceInfo_WireNames(t *testing.T) {
	var info DeviceInfo
	if err := json.Unmarshal([]byte(mockInfoResponse), &info); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if info.Name != "Kitchen" || info.Version != "1.4.2" || info.Language != "en" || info.Area != "kitchen" {
		t.Errorf("decoded = %+v", info)
	}
}

func TestDeviceInfo_MissingFields(t *testing.T) {
	var info DeviceInfo
	err := json.Unmarshal([]byte(`{"name":"Kitchen","uuid":"x"}`), &info)
	if err == nil {
		t.Fatal("Unmarshal() should fail when fields are missing")
	}
	for _, field := range []string{"version", "language", "area"} {
		if !strings.Contains(err.Error(), field) {
			t.Errorf("error %q should mention %s", err, field)
		}
	}
}

func TestDeviceInfo_EmptyStringsAllowed(t *testing.T) {
	var info DeviceInfo
	err := json.Unmarshal([]byte(`{"name":"","version":"","uuid":"","language":"","area":""}`), &info)
	if err != nil {
		t.Errorf("Unmarshal() error = %v, want nil for present empty fields", err)
	}
}

func TestDeviceInfo_ParseUUID(t *testing.T) {
	info := DeviceInfo{UUID: "6f1c3c1e-8d1a-4a7e-9a59-2f0c1b7f4f10"}
	id, err := info.ParseUUID()
	if err != nil {
		t.Fatalf("ParseUUID() error = %v", err)
	}
	if id.String() != info.UUID {
		t.Errorf("ParseUUID() = %s, want %s", id, info.UUID)
	}

	if _, err := (DeviceInfo{UUID: "not-a-uuid"}).ParseUUID(); err == nil {
		t.Error("ParseUUID() should fail for invalid UUID")
	}
}

func TestDeviceStates_RoundTrip(t *testing.T) {
	for _, original := range []DeviceStates{
		{InputMuted: true, OutputMuted: false, OutputVolume: 80},
		{InputMuted: false, OutputMuted: true, OutputVolume: 0},
	} {
		data, err := json.Marshal(original)
		if err != nil {
			t.Fatalf("Marshal() error = %v", err)
		}

		var decoded DeviceStates
		if err := json.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("Unmarshal() error = %v", err)
		}
		if decoded != original {
			t.Errorf("round trip = %+v, want %+v", decoded, original)
		}
	}
}

func TestDeviceStates_WireNames(t *testing.T) {
	data, err := json.Marshal(DeviceStates{InputMuted: true, OutputMuted: true, OutputVolume: 12})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	want := `{"input_muted":true,"output_muted":true,"output_volume":12}`
	if string(data) != want {
		t.Errorf("Marshal() = %s, want %s", data, want)
	}
}

func TestDeviceStates_MissingFields(t *testing.T) {
	var states DeviceStates
	if err := json.Unmarshal([]byte(`{"output_volume":10}`), &states); err == nil {
		t.Error("Unmarshal() should fail when mute flags are missing")
	}
}

func TestDeviceStates_String(t *testing.T) {
	s := DeviceStates{InputMuted: true, OutputMuted: false, OutputVolume: 42}
	if got, want := s.String(), "mic off, speaker on, volume 42"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
