package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/muurk/vassapi/assistant"
)

// EnvPrefix is prepended to every environment variable vassctl reads
// (VASS_HOST, VASS_PORT, VASS_TOKEN, VASS_PROFILE, VASS_CONFIG).
const EnvPrefix = "VASS"

// Setting keys shared by flags, environment and viper.
const (
	KeyHost    = "host"
	KeyPort    = "port"
	KeyToken   = "token"
	KeyProfile = "profile"
	KeyConfig  = "config"
	KeyFormat  = "format"
)

// Connection is the fully resolved target of a command.
type Connection struct {
	Profile string
	Host    string
	Port    int
	Token   string
}

// AssistantConfig converts the connection into client settings
func (c Connection) AssistantConfig() assistant.Config {
	return assistant.Config{Host: c.Host, Port: c.Port, Token: c.Token}
}

// NewViper returns a viper instance reading VASS_* environment variables and
// the given flags. Flags win over the environment when both are set.
func NewViper(flags *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	for _, key := range []string{KeyHost, KeyPort, KeyToken, KeyProfile, KeyConfig, KeyFormat} {
		if flag := flags.Lookup(key); flag != nil {
			if err := v.BindPFlag(key, flag); err != nil {
				return nil, fmt.Errorf("bind flag %s: %w", key, err)
			}
		}
	}
	return v, nil
}

// Resolve determines which assistant to talk to.
//
// Host and port come from flags or the environment when given, otherwise
// from the selected profile (--profile / VASS_PROFILE, else the registry
// default). The token only ever comes from flags or the environment.
func Resolve(v *viper.Viper, reg *Registry) (Connection, error) {
	conn := Connection{
		Profile: strings.TrimSpace(v.GetString(KeyProfile)),
		Host:    strings.TrimSpace(v.GetString(KeyHost)),
		Port:    v.GetInt(KeyPort),
		Token:   v.GetString(KeyToken),
	}

	explicitProfile := conn.Profile != ""
	if !explicitProfile && reg != nil {
		conn.Profile = reg.DefaultProfile
	}

	if conn.Profile != "" && reg != nil {
		profile := reg.GetProfile(conn.Profile)
		switch {
		case profile != nil:
			if conn.Host == "" {
				conn.Host = profile.Host
			}
			if conn.Port == 0 {
				conn.Port = profile.Port
			}
		case explicitProfile:
			return Connection{}, &UnknownProfileError{Name: conn.Profile}
		}
	}

	if conn.Host == "" {
		return Connection{}, fmt.Errorf("no assistant host: use --host, VASS_HOST or 'vassctl profile add'")
	}
	if conn.Port == 0 {
		conn.Port = assistant.DefaultPort
	}
	return conn, nil
}
