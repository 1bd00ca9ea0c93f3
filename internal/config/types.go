package config

// RzdioConfig is the top-level configuration structure for rzdio.
type RzdioConfig struct {
	Channel      string             `yaml:"channel"`
	LogLevel     string             `yaml:"logLevel,omitempty"`
	Platform     PlatformConfig     `yaml:"platform,omitempty"`
	Capabilities CapabilitiesConfig `yaml:"capabilities,omitempty"`
	Server       ServerConfig       `yaml:"server,omitempty"`
	Updates      UpdatesConfig      `yaml:"updates,omitempty"`
}

// PlatformConfig overrides what the platform capabilities report
type PlatformConfig struct {
	Label string `yaml:"label,omitempty"`
}

// CapabilitiesConfig selects which capabilities are registered on the channel
type CapabilitiesConfig struct {
	Disabled []string `yaml:"disabled,omitempty"`
}

// IsDisabled reports whether the capability with this exact name is disabled
func (c CapabilitiesConfig) IsDisabled(name string) bool {
	for _, d := range c.Disabled {
		if d == name {
			return true
		}
	}
	return false
}

// Transport names accepted in ServerConfig.Transport
const (
	TransportStdio = "stdio"
	TransportSSE   = "sse"
)

// ServerConfig defines how the channel is exposed to the host runtime
type ServerConfig struct {
	Transport string `yaml:"transport,omitempty"`
	Host      string `yaml:"host,omitempty"`
	Port      int    `yaml:"port,omitempty"`
}

// UpdatesConfig configures the self-update command
type UpdatesConfig struct {
	// Repository is the GitHub "owner/name" slug releases are fetched from
	Repository string `yaml:"repository,omitempty"`
}
