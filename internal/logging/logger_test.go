package logging

import (
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observe(t *testing.T, level zapcore.Level) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(level)
	SetLogger(zap.New(core))
	t.Cleanup(func() { SetLogger(nil) })
	return logs
}

func TestInitialize_SilentByDefault(t *testing.T) {
	t.Setenv(LogLevelEnvVar, "")
	if err := Initialize(""); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	t.Cleanup(func() { SetLogger(nil) })

	if GetLogger().Core().Enabled(zapcore.ErrorLevel) {
		t.Error("logger should be silent when no level is set")
	}
}

func TestInitialize_FromEnv(t *testing.T) {
	t.Setenv(LogLevelEnvVar, "warn")
	if err := InitializeFromEnv(); err != nil {
		t.Fatalf("InitializeFromEnv() error = %v", err)
	}
	t.Cleanup(func() { SetLogger(nil) })

	core := GetLogger().Core()
	if core.Enabled(zapcore.InfoLevel) {
		t.Error("info should be disabled at warn level")
	}
	if !core.Enabled(zapcore.WarnLevel) {
		t.Error("warn should be enabled at warn level")
	}
}

func TestInitialize_UnknownLevel(t *testing.T) {
	if err := Initialize("chatty"); err == nil {
		t.Error("Initialize(chatty) error = nil, want error")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    zapcore.Level
		wantErr bool
	}{
		{"debug", zapcore.DebugLevel, false},
		{"INFO", zapcore.InfoLevel, false},
		{"warning", zapcore.WarnLevel, false},
		{" error ", zapcore.ErrorLevel, false},
		{"trace", zapcore.InfoLevel, true},
	}

	for _, tt := range tests {
		got, err := ParseLevel(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestLogShortWrite(t *testing.T) {
	logs := observe(t, zapcore.DebugLevel)

	LogShortWrite(2, 10, 96, errors.New("sendto: no buffer space"))

	entries := logs.FilterLevelExact(zapcore.WarnLevel).All()
	if len(entries) != 1 {
		t.Fatalf("got %d warn entries, want 1", len(entries))
	}
	ctx := entries[0].ContextMap()
	if ctx["written"] != int64(10) || ctx["expected"] != int64(96) {
		t.Errorf("fields = %v, want written=10 expected=96", ctx)
	}
	if _, ok := ctx["error"]; !ok {
		t.Error("short write entry should carry the error")
	}
}

func TestLogDevice_Levels(t *testing.T) {
	logs := observe(t, zapcore.DebugLevel)

	LogDevice("device_discovered", "IPC", "AA:BB", "10.0.0.5")
	LogDevice("device_duplicate", "IPC", "AA:BB", "10.0.0.5")

	if n := logs.FilterLevelExact(zapcore.InfoLevel).Len(); n != 1 {
		t.Errorf("info entries = %d, want 1", n)
	}
	if n := logs.FilterLevelExact(zapcore.DebugLevel).Len(); n != 1 {
		t.Errorf("debug entries = %d, want 1", n)
	}
}

func TestLogDatagram_SkippedAboveDebug(t *testing.T) {
	logs := observe(t, zapcore.InfoLevel)

	LogDatagram("10.0.0.5:1900", "response", 3, []byte("abc"))

	if logs.Len() != 0 {
		t.Errorf("got %d entries at info level, want 0", logs.Len())
	}
}

func TestDumps(t *testing.T) {
	if got := hexDump([]byte{0x0d, 0x0a}); got != "0d0a" {
		t.Errorf("hexDump() = %q, want 0d0a", got)
	}
	if got := asciiDump([]byte("OK\r\n")); got != "OK.." {
		t.Errorf("asciiDump() = %q, want OK..", got)
	}

	long := make([]byte, maxDumpBytes+10)
	if got := hexDump(long); !strings.HasSuffix(got, "...") || len(got) != maxDumpBytes*2+3 {
		t.Errorf("hexDump(long) length = %d, want %d with ellipsis", len(got), maxDumpBytes*2+3)
	}
	if got := asciiDump(long); len(got) != maxDumpBytes {
		t.Errorf("asciiDump(long) length = %d, want %d", len(got), maxDumpBytes)
	}
}
