package config

// GetDefaultConfig returns the configuration used when no file overrides it
func GetDefaultConfig() RzdioConfig {
	return RzdioConfig{
		Channel:  "rz_dio_client",
		LogLevel: "info",
		Server: ServerConfig{
			Transport: TransportStdio,
			Host:      "localhost",
			Port:      8091,
		},
	}
}
