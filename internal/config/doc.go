// Package config provides configuration management for rzdio.
//
// Configuration is layered. Later sources override earlier ones:
//
//  1. Default Configuration (embedded in binary)
//     - channel "rz_dio_client", stdio transport, info logging
//
//  2. User Configuration (~/.config/rzdio/config.yaml)
//
//  3. Project Configuration (./.rzdio/config.yaml)
//
// A single directory can be given instead with LoadConfigFromPath, in which
// case only <dir>/config.yaml is layered over the defaults.
//
// # Configuration Structure
//
//	channel: rz_dio_client
//	logLevel: info
//	platform:
//	  label: ""           # overrides the detected label, e.g. "Ubuntu"
//	capabilities:
//	  disabled:
//	    - getPlatformInfo
//	server:
//	  transport: stdio    # or "sse"
//	  host: localhost
//	  port: 8091
//	updates:
//	  repository: owner/name
package config
