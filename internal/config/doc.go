// Package config provides user configuration management for vassctl.
//
// This package manages a YAML-based configuration file that stores named
// assistant profiles (host, port, nickname and what the assistant last
// reported about itself) and application preferences. The configuration
// follows OS-specific conventions for storage location.
//
// # Configuration File Location
//
// The configuration file is stored in platform-appropriate locations:
//   - Linux: $XDG_CONFIG_HOME/vassapi/config.yaml or $HOME/.config/vassapi/config.yaml
//   - macOS: $HOME/.config/vassapi/config.yaml
//   - Windows: %LOCALAPPDATA%\vassapi\config.yaml
//
// # Security
//
// IMPORTANT: This package NEVER stores the assistant API token. It is read
// from --token or VASS_TOKEN, or prompted for when a terminal is attached.
//
// # Resolution Order
//
// Resolve combines flags, VASS_* environment variables (via viper) and the
// registry: an explicit host or port always wins, then the selected profile,
// then the API defaults.
//
// # Usage Example
//
//	registry, err := config.LoadRegistry("")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	registry.SetProfile("kitchen", "192.168.1.40", 0, "Kitchen speaker")
//	if err := registry.Save(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Thread Safety
//
// File operations are protected by a mutex to ensure atomic writes.
package config
