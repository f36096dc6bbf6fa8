package main

import (
	"testing"
	"time"

	"github.com/spf13/cobra"

	"github.com/muurk/lightssdp/internal/config"
	"github.com/muurk/lightssdp/internal/device"
	"github.com/muurk/lightssdp/internal/discovery"
)

// newSearchFlags returns a fresh command carrying the search flags
func newSearchFlags() *cobra.Command {
	cmd := &cobra.Command{Use: "search"}
	f := cmd.Flags()
	f.StringVar(&deviceType, "type", "ALL", "")
	f.DurationVar(&timeout, "timeout", 3*time.Second, "")
	f.IntVar(&retransmits, "retransmits", discovery.DefaultRetransmits, "")
	f.StringVar(&ifaceName, "interface", "", "")
	return cmd
}

func TestResolveSearch_ConfigDefaults(t *testing.T) {
	c := config.Default()
	c.Search.Filter = "IHOME"
	c.Search.TimeoutMS = 1500
	c.Network.Interface = "wlan0"

	got, err := resolveSearch(newSearchFlags(), c)
	if err != nil {
		t.Fatalf("resolveSearch() error = %v", err)
	}
	if got.filter != device.TypeHomeHub {
		t.Errorf("filter = %v, want IHOME", got.filter)
	}
	if got.timeout != 1500*time.Millisecond {
		t.Errorf("timeout = %v, want 1.5s", got.timeout)
	}
	if got.transport.Interface != "wlan0" {
		t.Errorf("interface = %q, want wlan0", got.transport.Interface)
	}
}

func TestResolveSearch_FlagsOverride(t *testing.T) {
	cmd := newSearchFlags()
	for name, value := range map[string]string{
		"type":        "ipc",
		"timeout":     "750ms",
		"retransmits": "4",
		"interface":   "eth1",
	} {
		if err := cmd.Flags().Set(name, value); err != nil {
			t.Fatalf("Set(%q) error = %v", name, err)
		}
	}

	got, err := resolveSearch(cmd, config.Default())
	if err != nil {
		t.Fatalf("resolveSearch() error = %v", err)
	}
	if got.filter != device.TypeCamera {
		t.Errorf("filter = %v, want IPC", got.filter)
	}
	if got.timeout != 750*time.Millisecond {
		t.Errorf("timeout = %v, want 750ms", got.timeout)
	}
	if got.retransmits != 4 {
		t.Errorf("retransmits = %d, want 4", got.retransmits)
	}
	if got.transport.Interface != "eth1" {
		t.Errorf("interface = %q, want eth1", got.transport.Interface)
	}
}

func TestResolveSearch_Invalid(t *testing.T) {
	tests := []struct {
		flag, value string
		filterErr   bool
	}{
		{"type", "toaster", true},
		{"timeout", "0s", false},
		{"retransmits", "0", false},
	}

	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			cmd := newSearchFlags()
			if err := cmd.Flags().Set(tt.flag, tt.value); err != nil {
				t.Fatalf("Set() error = %v", err)
			}
			_, err := resolveSearch(cmd, config.Default())
			if err == nil {
				t.Fatal("resolveSearch() error = nil, want error")
			}
			if got := discovery.IsFilterError(err); got != tt.filterErr {
				t.Errorf("IsFilterError(%v) = %v, want %v", err, got, tt.filterErr)
			}
		})
	}
}
