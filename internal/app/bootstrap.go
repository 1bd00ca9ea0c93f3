package app

import (
	"context"
	"fmt"
	"os"

	"rzdio/internal/bridge"
	"rzdio/internal/channel"
	"rzdio/internal/config"
	"rzdio/internal/platform"
	"rzdio/internal/server"
	"rzdio/pkg/logging"
)

// Application is the main application structure that bootstraps and runs rzdio
type Application struct {
	config       *Config
	registrar    *channel.Registrar
	registration *channel.Registration
	logLevel     logging.LogLevel
}

// NewApplication loads configuration, initializes logging and performs the
// one-time channel registration
func NewApplication(cfg *Config) (*Application, error) {
	settings, err := loadSettings(cfg)
	if err != nil {
		return nil, err
	}
	cfg.Settings = &settings

	logLevel, _ := logging.ParseLevel(settings.LogLevel)
	if cfg.Debug {
		logLevel = logging.LevelDebug
	}
	output := cfg.LogOutput
	if output == nil {
		output = os.Stderr
	}
	logging.InitForCLI(logLevel, output)

	src := cfg.VersionSource
	if src == nil {
		src = platform.Current()
	}
	src = platform.WithLabel(src, settings.Platform.Label)

	dispatcher, err := BuildDispatcher(src, settings.Capabilities)
	if err != nil {
		logging.Error("Bootstrap", err, "Failed to build dispatcher")
		return nil, fmt.Errorf("failed to build dispatcher: %w", err)
	}

	channelName := settings.Channel
	if cfg.Channel != "" {
		channelName = cfg.Channel
	}

	registrar := channel.NewRegistrar()
	registration, err := registrar.Register(channelName, dispatcher)
	if err != nil {
		return nil, fmt.Errorf("failed to register channel %s: %w", channelName, err)
	}

	return &Application{
		config:       cfg,
		registrar:    registrar,
		registration: registration,
		logLevel:     logLevel,
	}, nil
}

func loadSettings(cfg *Config) (config.RzdioConfig, error) {
	if cfg.ConfigPath != "" {
		settings, err := config.LoadConfigFromPath(cfg.ConfigPath)
		if err != nil {
			return config.RzdioConfig{}, fmt.Errorf("failed to load rzdio configuration from path %s: %w", cfg.ConfigPath, err)
		}
		return settings, nil
	}

	settings, err := config.LoadConfig()
	if err != nil {
		return config.RzdioConfig{}, fmt.Errorf("failed to load rzdio configuration: %w", err)
	}
	return settings, nil
}

// BuildDispatcher creates the dispatcher for src, leaving out disabled capabilities
func BuildDispatcher(src platform.VersionSource, caps config.CapabilitiesConfig) (*bridge.Dispatcher, error) {
	var enabled []bridge.Capability
	for _, c := range platform.Capabilities(src) {
		if caps.IsDisabled(c.Name) {
			logging.Debug("Bootstrap", "Capability %s disabled by configuration", c.Name)
			continue
		}
		enabled = append(enabled, c)
	}
	return bridge.NewDispatcher(enabled...)
}

// Registration returns the channel registration created at startup
func (a *Application) Registration() *channel.Registration {
	return a.registration
}

// Registrar returns the registrar holding the application's channel
func (a *Application) Registrar() *channel.Registrar {
	return a.registrar
}

// LogLevel returns the level from logLevel, or debug when Debug is set
func (a *Application) LogLevel() logging.LogLevel {
	return a.logLevel
}

// Settings returns the loaded configuration
func (a *Application) Settings() config.RzdioConfig {
	return *a.config.Settings
}

// NewServer creates the MCP server for the application's channel. Non-zero
// fields of overrides replace the configured server settings.
func (a *Application) NewServer(overrides config.ServerConfig) *server.ChannelServer {
	sc := a.config.Settings.Server
	if overrides.Transport != "" {
		sc.Transport = overrides.Transport
	}
	if overrides.Host != "" {
		sc.Host = overrides.Host
	}
	if overrides.Port != 0 {
		sc.Port = overrides.Port
	}
	return server.New(a.registration, server.OptionsFromConfig(sc, a.config.Version))
}

// Call dispatches a single call on the application's channel
func (a *Application) Call(ctx context.Context, call bridge.Call) bridge.Result {
	return a.registration.Invoke(ctx, call)
}
