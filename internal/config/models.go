package config

import (
	"sort"
	"time"
)

// Registry represents the entire user configuration file.
// It stores named assistant profiles and application preferences.
type Registry struct {
	Version        int                 `yaml:"version"`
	DefaultProfile string              `yaml:"default_profile,omitempty"`
	Profiles       map[string]*Profile `yaml:"profiles,omitempty"` // Keyed by profile name
	Preferences    *Preferences        `yaml:"preferences,omitempty"`

	// path is where the registry was loaded from and will be saved to
	path string
}

// Profile describes how to reach one assistant.
// The API token is never part of a profile.
type Profile struct {
	Host        string    `yaml:"host"`
	Port        int       `yaml:"port,omitempty"`         // 0 means the API default
	Nickname    string    `yaml:"nickname,omitempty"`     // User-friendly name
	LastSeen    time.Time `yaml:"last_seen,omitempty"`    // Last successful info fetch
	LastUUID    string    `yaml:"last_uuid,omitempty"`    // Device UUID reported by /info
	LastVersion string    `yaml:"last_version,omitempty"` // Assistant version reported by /info
}

// Preferences represents application-wide user preferences.
type Preferences struct {
	DiscoverTimeout int    `yaml:"discover_timeout"`        // mDNS discovery timeout in seconds
	OutputFormat    string `yaml:"output_format,omitempty"` // detailed, compact or json
}

func defaultPreferences() *Preferences {
	return &Preferences{
		DiscoverTimeout: 5,
		OutputFormat:    "detailed",
	}
}

// NewRegistry creates a new Registry with default values.
func NewRegistry() *Registry {
	return &Registry{
		Version:     1,
		Profiles:    make(map[string]*Profile),
		Preferences: defaultPreferences(),
	}
}

// Path returns the file the registry is bound to
func (r *Registry) Path() string {
	return r.path
}

// GetProfile retrieves a profile by name.
// Returns nil if the profile doesn't exist in the registry.
func (r *Registry) GetProfile(name string) *Profile {
	return r.Profiles[name]
}

// EnsureProfile ensures a profile entry exists in the registry.
// Returns the profile entry (existing or newly created).
func (r *Registry) EnsureProfile(name string) *Profile {
	if r.Profiles == nil {
		r.Profiles = make(map[string]*Profile)
	}

	if profile, exists := r.Profiles[name]; exists {
		return profile
	}

	profile := &Profile{}
	r.Profiles[name] = profile
	return profile
}

// SetProfile creates or updates the connection details of a profile.
// The first profile added becomes the default.
func (r *Registry) SetProfile(name, host string, port int, nickname string) {
	profile := r.EnsureProfile(name)
	profile.Host = host
	profile.Port = port
	if nickname != "" {
		profile.Nickname = nickname
	}
	if r.DefaultProfile == "" {
		r.DefaultProfile = name
	}
}

// RemoveProfile deletes a profile. Removing the default clears it.
func (r *Registry) RemoveProfile(name string) bool {
	if _, ok := r.Profiles[name]; !ok {
		return false
	}
	delete(r.Profiles, name)
	if r.DefaultProfile == name {
		r.DefaultProfile = ""
	}
	return true
}

// UseProfile makes name the default profile.
func (r *Registry) UseProfile(name string) error {
	if _, ok := r.Profiles[name]; !ok {
		return &UnknownProfileError{Name: name}
	}
	r.DefaultProfile = name
	return nil
}

// RecordDeviceInfo stores what the assistant reported about itself.
func (r *Registry) RecordDeviceInfo(name, uuid, version string) {
	profile := r.EnsureProfile(name)
	profile.LastSeen = time.Now()
	profile.LastUUID = uuid
	profile.LastVersion = version
}

// ProfileNames returns profile names in sorted order.
func (r *Registry) ProfileNames() []string {
	names := make([]string, 0, len(r.Profiles))
	for name := range r.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// UnknownProfileError is returned when a named profile does not exist.
type UnknownProfileError struct {
	Name string
}

func (e *UnknownProfileError) Error() string {
	return "unknown profile " + `"` + e.Name + `"`
}
