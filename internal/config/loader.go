package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"rzdio/pkg/logging"

	"gopkg.in/yaml.v3"
)

// For mocking in tests
var osUserHomeDir = os.UserHomeDir
var osGetwd = os.Getwd

const (
	userConfigDir    = ".config/rzdio"
	projectConfigDir = ".rzdio"
	configFileName   = "config.yaml"
)

// ErrInvalidConfig is wrapped by all validation errors
var ErrInvalidConfig = errors.New("invalid configuration")

// LoadConfig loads the rzdio configuration by layering default, user, and project settings.
func LoadConfig() (RzdioConfig, error) {
	config := GetDefaultConfig()

	userConfigPath, err := getUserConfigPath()
	if err != nil {
		// User config is optional
		fmt.Fprintf(os.Stderr, "Warning: Could not determine user config path: %v\n", err)
	} else {
		config, err = layerFile(config, userConfigPath)
		if err != nil {
			return RzdioConfig{}, fmt.Errorf("error loading user config from %s: %w", userConfigPath, err)
		}
	}

	projectConfigPath, err := getProjectConfigPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not determine project config path: %v\n", err)
	} else {
		config, err = layerFile(config, projectConfigPath)
		if err != nil {
			return RzdioConfig{}, fmt.Errorf("error loading project config from %s: %w", projectConfigPath, err)
		}
	}

	if err := Validate(config); err != nil {
		return RzdioConfig{}, err
	}
	return config, nil
}

// LoadConfigFromPath layers <configPath>/config.yaml over the defaults. The
// file is optional; the directory must exist.
func LoadConfigFromPath(configPath string) (RzdioConfig, error) {
	info, err := os.Stat(configPath)
	if err != nil {
		return RzdioConfig{}, fmt.Errorf("config directory %s: %w", configPath, err)
	}
	if !info.IsDir() {
		return RzdioConfig{}, fmt.Errorf("config path %s is not a directory", configPath)
	}

	filePath := filepath.Join(configPath, configFileName)
	config, err := layerFile(GetDefaultConfig(), filePath)
	if err != nil {
		return RzdioConfig{}, fmt.Errorf("error loading config from %s: %w", filePath, err)
	}

	if err := Validate(config); err != nil {
		return RzdioConfig{}, err
	}
	return config, nil
}

var getUserConfigPath = func() (string, error) {
	homeDir, err := osUserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, userConfigDir, configFileName), nil
}

var getProjectConfigPath = func() (string, error) {
	wd, err := osGetwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(wd, projectConfigDir, configFileName), nil
}

func layerFile(base RzdioConfig, filePath string) (RzdioConfig, error) {
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return base, nil
	}
	overlay, err := loadConfigFromFile(filePath)
	if err != nil {
		return RzdioConfig{}, err
	}
	return mergeConfigs(base, overlay), nil
}

// loadConfigFromFile loads an RzdioConfig from a YAML file.
func loadConfigFromFile(filePath string) (RzdioConfig, error) {
	var config RzdioConfig
	data, err := os.ReadFile(filePath)
	if err != nil {
		return RzdioConfig{}, err
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return RzdioConfig{}, err
	}
	return config, nil
}

// mergeConfigs merges 'overlay' config into 'base' config.
func mergeConfigs(base, overlay RzdioConfig) RzdioConfig {
	merged := base

	if overlay.Channel != "" {
		merged.Channel = overlay.Channel
	}
	if overlay.LogLevel != "" {
		merged.LogLevel = overlay.LogLevel
	}
	if overlay.Platform.Label != "" {
		merged.Platform.Label = overlay.Platform.Label
	}

	// Disabled capabilities accumulate across layers
	seen := make(map[string]bool)
	merged.Capabilities.Disabled = nil
	for _, name := range append(append([]string{}, base.Capabilities.Disabled...), overlay.Capabilities.Disabled...) {
		if !seen[name] {
			seen[name] = true
			merged.Capabilities.Disabled = append(merged.Capabilities.Disabled, name)
		}
	}

	if overlay.Server.Transport != "" {
		merged.Server.Transport = overlay.Server.Transport
	}
	if overlay.Server.Host != "" {
		merged.Server.Host = overlay.Server.Host
	}
	if overlay.Server.Port != 0 {
		merged.Server.Port = overlay.Server.Port
	}

	if overlay.Updates.Repository != "" {
		merged.Updates.Repository = overlay.Updates.Repository
	}

	return merged
}

// Validate checks a merged configuration
func Validate(c RzdioConfig) error {
	if c.Channel == "" {
		return fmt.Errorf("%w: channel must not be empty", ErrInvalidConfig)
	}
	switch c.Server.Transport {
	case TransportStdio, TransportSSE:
	default:
		return fmt.Errorf("%w: unsupported transport %q (supported: stdio, sse)", ErrInvalidConfig, c.Server.Transport)
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("%w: server port %d out of range", ErrInvalidConfig, c.Server.Port)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// GetUserConfigDir returns the user configuration directory path
func GetUserConfigDir() (string, error) {
	homeDir, err := osUserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, userConfigDir), nil
}
