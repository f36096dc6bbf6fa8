// Lightssdp discovers cameras and home hubs on the local network.
//
// It multicasts an SSDP M-SEARCH query, collects responses and NOTIFY
// announcements for a bounded window, and prints each device once.
//
// Usage:
//
//	lightssdp [command] [flags]
//
// Running without arguments performs a search for every device type.
// See 'lightssdp --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/muurk/lightssdp/internal/config"
	"github.com/muurk/lightssdp/internal/logging"
	"github.com/muurk/lightssdp/internal/version"
)

// Global flags
var (
	configPath string
	logLevel   string
)

// cfg is the loaded configuration, set before any command runs
var cfg *config.Config

func main() {
	err := rootCmd.Execute()
	logging.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "lightssdp",
	Short: "SSDP device discovery for IP cameras and home hubs",
	Long: `A lightweight SSDP discovery client.

Sends an M-SEARCH query to 239.255.255.250:1900, listens for responses and
NOTIFY announcements, and lists every device that answered, once per MAC.

If no command is specified, a search for all device types runs.`,
	Version:           version.Version,
	SilenceUsage:      true,
	PersistentPreRunE: loadSettings,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSearch(cmd, args)
	},
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default: OS config dir)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error); silent when unset")

	rootCmd.AddCommand(versionCmd)
}

// loadSettings reads the config file and starts logging.
// The log level comes from --log-level, then LIGHTSSDP_LOG_LEVEL, then the config file.
func loadSettings(cmd *cobra.Command, args []string) error {
	// These must work even when the existing file is broken
	if cmd == configInitCmd || cmd == configPathCmd {
		cfg = config.Default()
		return logging.Initialize(logLevel)
	}

	var err error
	if configPath != "" {
		cfg, err = config.LoadFile(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return err
	}

	level := logLevel
	if level == "" && os.Getenv(logging.LogLevelEnvVar) == "" {
		level = cfg.Logging.Level
	}
	if err := logging.Initialize(level); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	return nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("lightssdp %s (commit: %s)\n", version.Version, version.Commit)
		fmt.Println(version.UserAgent())
	},
}
