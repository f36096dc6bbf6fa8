package config

import (
	"fmt"
	"time"

	"github.com/muurk/lightssdp/internal/device"
	"github.com/muurk/lightssdp/internal/logging"
)

// CurrentVersion is the only configuration version understood
const CurrentVersion = 1

// Config represents the entire configuration file
type Config struct {
	Version int          `yaml:"version"`
	Search  SearchPrefs  `yaml:"search"`
	Network NetworkPrefs `yaml:"network"`
	Logging LoggingPrefs `yaml:"logging"`
}

// SearchPrefs holds search defaults
type SearchPrefs struct {
	TimeoutMS   int    `yaml:"timeout_ms"`  // Collection window in milliseconds
	Retransmits int    `yaml:"retransmits"` // How many times the query is sent
	MX          int    `yaml:"mx"`          // Maximum response delay requested from devices, seconds
	Filter      string `yaml:"filter"`      // Device type name or ALL
}

// NetworkPrefs holds multicast transport settings
type NetworkPrefs struct {
	Interface string `yaml:"interface,omitempty"` // Empty means every multicast interface
	TTL       int    `yaml:"ttl"`
	Loopback  bool   `yaml:"loopback"`
}

// LoggingPrefs holds the log level. Empty keeps logging silent.
type LoggingPrefs struct {
	Level string `yaml:"level,omitempty"`
}

// Default returns the configuration used when no file exists
func Default() *Config {
	return &Config{
		Version: CurrentVersion,
		Search: SearchPrefs{
			TimeoutMS:   3000,
			Retransmits: 2,
			MX:          3,
			Filter:      "ALL",
		},
		Network: NetworkPrefs{
			TTL:      2,
			Loopback: true,
		},
	}
}

// Validate checks every field and returns the first problem found
func (c *Config) Validate() error {
	if c.Version != CurrentVersion {
		return fmt.Errorf("unsupported config version: %d (expected %d)", c.Version, CurrentVersion)
	}
	if c.Search.TimeoutMS <= 0 {
		return fmt.Errorf("search.timeout_ms must be positive, got %d", c.Search.TimeoutMS)
	}
	if c.Search.Retransmits < 1 || c.Search.Retransmits > 10 {
		return fmt.Errorf("search.retransmits must be between 1 and 10, got %d", c.Search.Retransmits)
	}
	if c.Search.MX < 1 || c.Search.MX > 120 {
		return fmt.Errorf("search.mx must be between 1 and 120, got %d", c.Search.MX)
	}
	if _, err := device.ParseFilter(c.Search.Filter); err != nil {
		return fmt.Errorf("search.filter: %w", err)
	}
	if c.Network.TTL < 1 || c.Network.TTL > 255 {
		return fmt.Errorf("network.ttl must be between 1 and 255, got %d", c.Network.TTL)
	}
	if c.Logging.Level != "" {
		if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
			return fmt.Errorf("logging.level: %w", err)
		}
	}
	return nil
}

// Timeout returns the search window as a duration
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Search.TimeoutMS) * time.Millisecond
}

// FilterType returns the parsed search filter, TypeAll when it does not parse
func (c *Config) FilterType() device.Type {
	t, err := device.ParseFilter(c.Search.Filter)
	if err != nil {
		return device.TypeAll
	}
	return t
}
