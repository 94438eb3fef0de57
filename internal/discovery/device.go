package discovery

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/muurk/vassapi/assistant"
)

// Device represents an assistant discovered on the network
type Device struct {
	// Name is the mDNS instance name (e.g., "Kitchen Assistant")
	Name string

	// Hostname is the mDNS hostname (e.g., "kitchen-pi.local.")
	Hostname string

	// IP is the advertised address, IPv4 preferred
	IP string

	// Port is the API port (typically 1507)
	Port int

	// Metadata contains the mDNS TXT record data
	// Common fields: "version=1.4.2", "uuid=..."
	Metadata map[string]string

	// DiscoveredAt is when the device was discovered
	DiscoveredAt time.Time
}

// String returns a human-readable string representation of the device
func (d *Device) String() string {
	return fmt.Sprintf("%s (%s) at %s", d.Name, d.Hostname, d.Address())
}

// Address returns host:port
func (d *Device) Address() string {
	return net.JoinHostPort(d.IP, strconv.Itoa(d.Port))
}

// Config returns client settings for this device using token
func (d *Device) Config(token string) assistant.Config {
	return assistant.Config{Host: d.IP, Port: d.Port, Token: token}
}

// GetMetadata retrieves a metadata value by key, or returns empty string if not found
func (d *Device) GetMetadata(key string) string {
	if d.Metadata == nil {
		return ""
	}
	return d.Metadata[key]
}
