// Package config manages the lightssdp configuration file.
//
// The configuration is a small YAML document holding search defaults, the
// network interface to use and the log level. Command-line flags override
// whatever the file says.
//
// # Configuration File Location
//
// The configuration file is stored in platform-appropriate locations:
//   - Linux: $XDG_CONFIG_HOME/lightssdp/config.yaml or $HOME/.config/lightssdp/config.yaml
//   - macOS: $HOME/.config/lightssdp/config.yaml
//   - Windows: %LOCALAPPDATA%\lightssdp\config.yaml
//
// A missing file is not an error; Default values are used instead.
//
// # Example
//
//	version: 1
//	search:
//	  timeout_ms: 3000
//	  retransmits: 2
//	  mx: 3
//	  filter: ALL
//	network:
//	  interface: eth0
//	  ttl: 2
//	  loopback: true
//	logging:
//	  level: info
//
// # Thread Safety
//
// File writes are serialized by a mutex and replace the file atomically.
package config
