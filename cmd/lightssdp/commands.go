package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/muurk/lightssdp/internal/config"
	"github.com/muurk/lightssdp/internal/device"
	"github.com/muurk/lightssdp/internal/discovery"
	"github.com/muurk/lightssdp/internal/logging"
	"github.com/muurk/lightssdp/internal/metrics"
	"github.com/muurk/lightssdp/internal/ssdp"
	"github.com/muurk/lightssdp/internal/ui"
)

// Search command flags
var (
	deviceType   string
	timeout      time.Duration
	retransmits  int
	ifaceName    string
	outputFormat string
	metricsFile  string
	forceInit    bool
)

func init() {
	for _, cmd := range []*cobra.Command{rootCmd, searchCmd} {
		f := cmd.Flags()
		f.StringVarP(&deviceType, "type", "t", "ALL", "Device type to search for ("+strings.Join(device.FilterNames(), ", ")+")")
		f.DurationVar(&timeout, "timeout", 3*time.Second, "How long to collect responses")
		f.IntVar(&retransmits, "retransmits", discovery.DefaultRetransmits, "Number of times the query is sent")
		f.StringVarP(&ifaceName, "interface", "i", "", "Network interface to search on (default: all multicast interfaces)")
		f.StringVarP(&outputFormat, "format", "f", "detailed", "Output format (detailed, compact, json)")
		f.StringVar(&metricsFile, "metrics-file", "", "Write Prometheus textfile metrics to this path")
	}

	configInitCmd.Flags().BoolVar(&forceInit, "force", false, "Overwrite an existing config file")
	configCmd.AddCommand(configInitCmd, configShowCmd, configPathCmd)

	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(typesCmd)
	rootCmd.AddCommand(configCmd)
}

// searchCmd discovers devices on the network
var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search for devices on the local network",
	Long: `Search for devices using SSDP multicast discovery.

The query is sent to 239.255.255.250:1900 and every response or NOTIFY
announcement received before the timeout is collected. Devices are listed
in the order they answered, once per MAC address.`,
	Example: `  # Search for every device type (default 3 seconds)
  lightssdp search

  # Cameras only, compact output
  lightssdp search --type IPC --format compact

  # Longer window on a specific interface
  lightssdp search --timeout 10s --interface eth0

  # JSON output for scripting
  lightssdp search --format json`,
	RunE: runSearch,
}

// searchSettings are the effective search parameters after merging flags over config
type searchSettings struct {
	filter      device.Type
	timeout     time.Duration
	retransmits int
	mx          int
	transport   ssdp.Options
	format      string
}

// resolveSearch merges flags explicitly set on cmd over the loaded config
func resolveSearch(cmd *cobra.Command, c *config.Config) (searchSettings, error) {
	s := searchSettings{
		filter:      c.FilterType(),
		timeout:     c.Timeout(),
		retransmits: c.Search.Retransmits,
		mx:          c.Search.MX,
		transport: ssdp.Options{
			Interface: c.Network.Interface,
			TTL:       c.Network.TTL,
			Loopback:  c.Network.Loopback,
		},
		format: strings.ToLower(outputFormat),
	}

	flags := cmd.Flags()
	if flags.Changed("type") {
		t, err := device.ParseFilter(deviceType)
		if err != nil {
			return s, &discovery.SearchError{Kind: discovery.ErrKindFilter, Err: err}
		}
		s.filter = t
	}
	if flags.Changed("timeout") {
		if timeout <= 0 {
			return s, fmt.Errorf("--timeout must be positive, got %s", timeout)
		}
		s.timeout = timeout
	}
	if flags.Changed("retransmits") {
		if retransmits < 1 {
			return s, fmt.Errorf("--retransmits must be at least 1, got %d", retransmits)
		}
		s.retransmits = retransmits
	}
	if flags.Changed("interface") {
		s.transport.Interface = ifaceName
	}
	return s, nil
}

func runSearch(cmd *cobra.Command, args []string) error {
	printer := ui.NewPrinter(os.Stdout)

	settings, err := resolveSearch(cmd, cfg)
	if err != nil {
		printer.PrintError("Invalid search options", err, discovery.Troubleshooting(err))
		return err
	}

	var layout ui.Layout
	if settings.format != "json" {
		layout, err = ui.ParseLayout(settings.format)
		if err != nil {
			return err
		}
	}

	var collector *metrics.Collector
	if metricsFile != "" {
		collector = metrics.NewCollector()
	}

	searcher := discovery.NewSearcher(
		discovery.WithRetransmits(settings.retransmits),
		discovery.WithMX(settings.mx),
		discovery.WithTransportOptions(settings.transport),
		discovery.WithMetrics(collector),
	)

	search := func() (*discovery.Result, error) {
		return searcher.Search(settings.filter, settings.timeout)
	}

	var result *discovery.Result
	if settings.format == "json" {
		result, err = search()
	} else {
		iface := settings.transport.Interface
		if iface == "" {
			iface = "all"
		}
		printer.PrintHeader("Device Discovery", "lightssdp search", map[string]string{
			"Filter":    settings.filter.String(),
			"Timeout":   settings.timeout.String(),
			"Interface": iface,
		})
		result, err = ui.RunSearch("Searching for devices...", settings.timeout, search)
	}

	if collector != nil {
		if werr := collector.WriteTextfile(metricsFile); werr != nil {
			logging.Warn("Failed to write metrics file", zap.String("path", metricsFile), zap.Error(werr))
		}
	}

	if err != nil {
		if settings.format != "json" {
			printer.PrintError("Search failed", err, discovery.Troubleshooting(err))
		}
		return err
	}
	defer result.Release()

	if settings.format == "json" {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	printer.PrintDevices(result.Devices(), layout)
	return nil
}

// typesCmd lists the device types a search can filter on
var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "List device types",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Device types:")
		for _, t := range device.Types() {
			desc := ""
			switch t {
			case device.TypeCamera:
				desc = "IP camera, announces an RTSP port"
			case device.TypeHomeHub:
				desc = "home automation hub"
			case device.TypeUnknown:
				desc = "declared but unsupported, never listed"
			}
			fmt.Printf("  %-8s %s\n", t, desc)
		}
		fmt.Printf("  %-8s %s\n", device.TypeAll, "every supported type (default)")
	},
}

// configCmd groups config file commands
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the lightssdp config file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with default values",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := targetConfigPath()
		if err != nil {
			return err
		}
		if _, err := os.Stat(path); err == nil && !forceInit {
			return fmt.Errorf("config file already exists: %s (use --force to overwrite)", path)
		}
		if err := config.Default().SaveFile(path); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
		fmt.Print(string(data))
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := targetConfigPath()
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	},
}

func targetConfigPath() (string, error) {
	if configPath != "" {
		return configPath, nil
	}
	return config.GetConfigPath()
}
