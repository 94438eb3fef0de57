package assistant

import "time"

const (
	// DefaultPort is the port the assistant API listens on
	DefaultPort = 1507

	// APIPath is prefixed to every endpoint
	APIPath = "/api"

	// StatusActive is the /status body of a running assistant
	StatusActive = "active"

	// DefaultStatusTimeout bounds the liveness probe
	DefaultStatusTimeout = 1 * time.Second
)

// Endpoint is a fixed API path relative to APIPath.
type Endpoint string

const (
	EndpointStatus  Endpoint = "/status"
	EndpointTrigger Endpoint = "/trigger"
	EndpointReload  Endpoint = "/reload"
	EndpointSay     Endpoint = "/say"
	EndpointSkills  Endpoint = "/skills"
	EndpointConfig  Endpoint = "/config"
	EndpointInfo    Endpoint = "/info"
	EndpointStates  Endpoint = "/states"
)

// State attribute names accepted by POST /states.
const (
	stateInputMuted   = "input_muted"
	stateOutputMuted  = "output_muted"
	stateOutputVolume = "output_volume"
)
