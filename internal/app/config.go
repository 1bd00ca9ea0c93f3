package app

import (
	"io"

	"rzdio/internal/config"
	"rzdio/internal/platform"
)

// Config holds the application configuration
type Config struct {
	// ConfigPath selects a single configuration directory instead of the
	// layered user/project lookup
	ConfigPath string

	// Debug forces debug logging regardless of the configured level
	Debug bool

	// Channel overrides the configured channel name when set
	Channel string

	// Version is the build version reported to hosts
	Version string

	// LogOutput receives CLI log output; defaults to os.Stderr
	LogOutput io.Writer

	// VersionSource replaces the detected platform source, mainly for tests
	VersionSource platform.VersionSource

	// Settings is filled in by NewApplication after loading
	Settings *config.RzdioConfig
}

// NewConfig creates a new application configuration
func NewConfig(configPath string, debug bool, version string) *Config {
	return &Config{
		ConfigPath: configPath,
		Debug:      debug,
		Version:    version,
	}
}
