package assistant

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// DeviceInfo identifies the host device the assistant runs on.
// All fields are required in the /info payload.
type DeviceInfo struct {
	Name     string `json:"name"`
	Version  string `json:"version"`
	UUID     string `json:"uuid"`
	Language string `json:"language"`
	Area     string `json:"area"`
}

// UnmarshalJSON rejects payloads that omit any field.
func (d *DeviceInfo) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name     *string `json:"name"`
		Version  *string `json:"version"`
		UUID     *string `json:"uuid"`
		Language *string `json:"language"`
		Area     *string `json:"area"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var missing []string
	if raw.Name == nil {
		missing = append(missing, "name")
	}
	if raw.Version == nil {
		missing = append(missing, "version")
	}
	if raw.UUID == nil {
		missing = append(missing, "uuid")
	}
	if raw.Language == nil {
		missing = append(missing, "language")
	}
	if raw.Area == nil {
		missing = append(missing, "area")
	}
	if len(missing) > 0 {
		return fmt.Errorf("device info missing fields: %s", strings.Join(missing, ", "))
	}

	*d = DeviceInfo{
		Name:     *raw.Name,
		Version:  *raw.Version,
		UUID:     *raw.UUID,
		Language: *raw.Language,
		Area:     *raw.Area,
	}
	return nil
}

// ParseUUID parses the UUID reported by the device.
func (d DeviceInfo) ParseUUID() (uuid.UUID, error) {
	return uuid.Parse(d.UUID)
}

// Summary returns a one-line summary of the device
func (d DeviceInfo) Summary() string {
	return fmt.Sprintf("%s (%s) v%s [%s]", d.Name, d.Area, d.Version, d.Language)
}

// DeviceStates is a snapshot of the assistant's audio state.
// All fields are required in the /states payload.
type DeviceStates struct {
	InputMuted   bool `json:"input_muted"`
	OutputMuted  bool `json:"output_muted"`
	OutputVolume int  `json:"output_volume"`
}

// UnmarshalJSON rejects payloads that omit any field.
func (s *DeviceStates) UnmarshalJSON(data []byte) error {
	var raw struct {
		InputMuted   *bool `json:"input_muted"`
		OutputMuted  *bool `json:"output_muted"`
		OutputVolume *int  `json:"output_volume"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var missing []string
	if raw.InputMuted == nil {
		missing = append(missing, stateInputMuted)
	}
	if raw.OutputMuted == nil {
		missing = append(missing, stateOutputMuted)
	}
	if raw.OutputVolume == nil {
		missing = append(missing, stateOutputVolume)
	}
	if len(missing) > 0 {
		return fmt.Errorf("device states missing fields: %s", strings.Join(missing, ", "))
	}

	*s = DeviceStates{
		InputMuted:   *raw.InputMuted,
		OutputMuted:  *raw.OutputMuted,
		OutputVolume: *raw.OutputVolume,
	}
	return nil
}

// String returns a compact one-line rendering of the states
func (s DeviceStates) String() string {
	return fmt.Sprintf("mic %s, speaker %s, volume %d", onOff(!s.InputMuted), onOff(!s.OutputMuted), s.OutputVolume)
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

// sayRequest is the POST /say body
type sayRequest struct {
	Text  string `json:"text"`
	Cache bool   `json:"cache"`
}

// runSkillRequest is the GET /skills body that switches the endpoint into run mode
type runSkillRequest struct {
	Name     string         `json:"name"`
	Entities map[string]any `json:"entities"`
}
