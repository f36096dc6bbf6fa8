package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/muurk/lightssdp/internal/device"
)

func TestGetConfigDir(t *testing.T) {
	configDir, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() error = %v", err)
	}

	if !strings.Contains(configDir, "lightssdp") {
		t.Errorf("GetConfigDir() = %v, should contain 'lightssdp'", configDir)
	}

	switch runtime.GOOS {
	case "windows":
		if !strings.Contains(configDir, "AppData") && !strings.Contains(configDir, "Local") {
			t.Errorf("Windows config dir should contain 'AppData' or 'Local', got: %v", configDir)
		}
	case "darwin":
		if !strings.Contains(configDir, ".config") {
			t.Errorf("macOS config dir should contain '.config', got: %v", configDir)
		}
	}
}

func TestGetConfigDir_XDG(t *testing.T) {
	if runtime.GOOS == "windows" || runtime.GOOS == "darwin" {
		t.Skip("XDG_CONFIG_HOME only applies on Linux and other Unix systems")
	}
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	got, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() error = %v", err)
	}
	if want := filepath.Join(dir, "lightssdp"); got != want {
		t.Errorf("GetConfigDir() = %v, want %v", got, want)
	}
}

func TestGetConfigPath(t *testing.T) {
	configPath, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath() error = %v", err)
	}

	if filepath.Base(configPath) != "config.yaml" {
		t.Errorf("GetConfigPath() should end with 'config.yaml', got: %v", configPath)
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() error = %v", err)
	}
	if cfg.Timeout() != 3*time.Second {
		t.Errorf("Default().Timeout() = %v, want 3s", cfg.Timeout())
	}
	if cfg.Search.Retransmits != 2 {
		t.Errorf("Default().Search.Retransmits = %d, want 2", cfg.Search.Retransmits)
	}
	if cfg.FilterType() != device.TypeAll {
		t.Errorf("Default().FilterType() = %v, want ALL", cfg.FilterType())
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"camera filter", func(c *Config) { c.Search.Filter = "ipc" }, false},
		{"bad version", func(c *Config) { c.Version = 2 }, true},
		{"zero timeout", func(c *Config) { c.Search.TimeoutMS = 0 }, true},
		{"no retransmits", func(c *Config) { c.Search.Retransmits = 0 }, true},
		{"too many retransmits", func(c *Config) { c.Search.Retransmits = 11 }, true},
		{"bad mx", func(c *Config) { c.Search.MX = 0 }, true},
		{"bad filter", func(c *Config) { c.Search.Filter = "fridge" }, true},
		{"bad ttl", func(c *Config) { c.Network.TTL = 0 }, true},
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }, true},
		{"debug log level", func(c *Config) { c.Logging.Level = "debug" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadFile_Missing(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if cfg.Search.TimeoutMS != Default().Search.TimeoutMS {
		t.Errorf("missing file should load defaults, got %+v", cfg)
	}
}

func TestLoadFile_PartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "version: 1\nsearch:\n  timeout_ms: 500\n  filter: IHOME\n"
	if err := os.WriteFile(path, []byte(data), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if cfg.Timeout() != 500*time.Millisecond {
		t.Errorf("cfg.Timeout() = %v, want 500ms", cfg.Timeout())
	}
	if cfg.FilterType() != device.TypeHomeHub {
		t.Errorf("cfg.FilterType() = %v, want IHOME", cfg.FilterType())
	}
	if cfg.Search.Retransmits != 2 || cfg.Network.TTL != 2 {
		t.Errorf("unset fields should keep defaults, got %+v", cfg)
	}
}

func TestLoadFile_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"unsupported version", "version: 7\n"},
		{"not yaml", "search: [unterminated\n"},
		{"bad value", "version: 1\nnetwork:\n  ttl: 900\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.data), 0600); err != nil {
				t.Fatalf("WriteFile() error = %v", err)
			}
			if _, err := LoadFile(path); err == nil {
				t.Error("LoadFile() error = nil, want error")
			}
		})
	}
}

func TestSaveFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Search.TimeoutMS = 1200
	cfg.Search.Filter = "IPC"
	cfg.Network.Interface = "eth0"
	cfg.Logging.Level = "info"

	if err := cfg.SaveFile(path); err != nil {
		t.Fatalf("SaveFile() error = %v", err)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temporary file should not remain after save")
	}

	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("LoadFile() = %+v, want %+v", loaded, cfg)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.HasPrefix(string(data), "# lightssdp Configuration File") {
		t.Error("saved file should start with the header comment")
	}
}

func TestSaveFile_RejectsInvalid(t *testing.T) {
	cfg := Default()
	cfg.Search.Retransmits = 0

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := cfg.SaveFile(path); err == nil {
		t.Error("SaveFile() error = nil, want error")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("invalid config should not be written")
	}
}

func BenchmarkGetConfigDir(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = GetConfigDir()
	}
}
