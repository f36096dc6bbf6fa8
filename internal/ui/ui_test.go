package ui

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/muurk/lightssdp/internal/device"
	"github.com/muurk/lightssdp/internal/discovery"
)

func testDevices(t *testing.T) []device.Device {
	t.Helper()
	cam, err := device.New(device.TypeCamera, "Front Door", "10.0.0.5", "AA:BB:CC:DD:EE:FF")
	if err != nil {
		t.Fatalf("device.New() error = %v", err)
	}
	cam.(*device.Camera).Port = 554

	hub, err := device.New(device.TypeHomeHub, "", "10.0.0.6", "11:22:33:44:55:66")
	if err != nil {
		t.Fatalf("device.New() error = %v", err)
	}
	return []device.Device{cam, hub}
}

func TestParseLayout(t *testing.T) {
	tests := []struct {
		in      string
		want    Layout
		wantErr bool
	}{
		{"", LayoutDetailed, false},
		{"detailed", LayoutDetailed, false},
		{"Compact", LayoutCompact, false},
		{"json", LayoutDetailed, true},
		{"table", LayoutDetailed, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLayout(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLayout(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLayout(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestRenderDevices(t *testing.T) {
	devices := testDevices(t)

	tests := []struct {
		name   string
		layout Layout
		want   []string
	}{
		{"detailed", LayoutDetailed, []string{"Front Door", "10.0.0.5", "rtsp://10.0.0.5:554/", "(unnamed)", "11:22:33:44:55:66"}},
		{"compact", LayoutCompact, []string{"Front Door", "10.0.0.6", "rtsp:554", "IHOME"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RenderDevices(devices, tt.layout, 80)
			for _, want := range tt.want {
				if !strings.Contains(got, want) {
					t.Errorf("RenderDevices() missing %q in:\n%s", want, got)
				}
			}
		})
	}
}

func TestRenderDevices_Empty(t *testing.T) {
	got := RenderDevices(nil, LayoutDetailed, 80)
	if !strings.Contains(got, "No devices responded") {
		t.Errorf("RenderDevices(nil) = %q, want empty notice", got)
	}
}

func TestRenderDevices_CompactKeepsOrder(t *testing.T) {
	got := RenderDevices(testDevices(t), LayoutCompact, 80)
	lines := strings.Split(got, "\n")
	if len(lines) != 2 {
		t.Fatalf("RenderDevices() produced %d lines, want 2", len(lines))
	}
	if !strings.Contains(lines[0], "10.0.0.5") || !strings.Contains(lines[1], "10.0.0.6") {
		t.Errorf("RenderDevices() order wrong:\n%s", got)
	}
}

func TestSummary(t *testing.T) {
	got := Summary(testDevices(t))
	want := map[string]string{"Devices": "2", "IPC": "1", "IHOME": "1"}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("Summary()[%q] = %q, want %q", k, got[k], v)
		}
	}
}

func TestRenderErrorBox(t *testing.T) {
	got := RenderErrorBox("Search failed", errors.New("bind: address already in use"), []string{"Stop the other SSDP listener"}, 80)

	for _, want := range []string{"FAILED", "Search failed", "address already in use", "Troubleshooting:", "Stop the other SSDP listener"} {
		if !strings.Contains(got, want) {
			t.Errorf("RenderErrorBox() missing %q", want)
		}
	}
}

func TestResult_DetailsSorted(t *testing.T) {
	got := NewSuccessResult("Search complete", map[string]string{"b": "2", "a": "1"}).SetWidth(80).Render()
	if strings.Index(got, "a:") > strings.Index(got, "b:") {
		t.Errorf("details should be sorted by key:\n%s", got)
	}
}

func TestHeader_Render(t *testing.T) {
	h := NewHeader("Device discovery", "lightssdp search", map[string]string{"Filter": "IPC", "Timeout": "3s"}).SetWidth(80)
	got := h.Render()
	for _, want := range []string{"DEVICE DISCOVERY", "lightssdp search", "Filter:", "IPC", "Timeout:"} {
		if !strings.Contains(got, want) {
			t.Errorf("Header.Render() missing %q", want)
		}
	}
	if strings.Index(got, "Filter:") > strings.Index(got, "Timeout:") {
		t.Error("Header.Render() params should be sorted")
	}
}

func TestPrinter_PrintDevices(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf).SetWidth(80)

	p.PrintDevices(nil, LayoutCompact)
	if !strings.Contains(buf.String(), "No devices found") {
		t.Errorf("PrintDevices(nil) output = %q, want warning box", buf.String())
	}

	buf.Reset()
	p.PrintDevices(testDevices(t), LayoutCompact)
	if !strings.Contains(buf.String(), "Search complete") {
		t.Errorf("PrintDevices() output = %q, want success box", buf.String())
	}
}

func TestRunSearch_NonInteractive(t *testing.T) {
	wantErr := errors.New("boom")
	calls := 0

	var buf bytes.Buffer
	result, err := runSearch(&buf, false, "Searching", time.Second, func() (*discovery.Result, error) {
		calls++
		return nil, wantErr
	})

	if calls != 1 {
		t.Errorf("search called %d times, want 1", calls)
	}
	if !errors.Is(err, wantErr) {
		t.Errorf("runSearch() error = %v, want %v", err, wantErr)
	}
	if result != nil {
		t.Errorf("runSearch() result = %v, want nil", result)
	}
	if buf.Len() != 0 {
		t.Errorf("non-interactive search should not draw, got %q", buf.String())
	}
}

func TestSearchModel_Update(t *testing.T) {
	m := newSearchModel("Searching for devices", 3*time.Second, nil)

	if view := m.View(); !strings.Contains(view, "Searching for devices") {
		t.Errorf("View() = %q, want label", view)
	}

	wantErr := errors.New("no interfaces")
	next, cmd := m.Update(searchDoneMsg{err: wantErr})
	if cmd == nil {
		t.Fatal("Update(searchDoneMsg) should return a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("Update(searchDoneMsg) command should quit the program")
	}

	done := next.(searchModel)
	if !done.done || !errors.Is(done.err, wantErr) {
		t.Errorf("model after done = %+v", done)
	}
	if done.View() != "" {
		t.Errorf("View() after done = %q, want empty", done.View())
	}
}

func TestSearchModel_IgnoresKeys(t *testing.T) {
	m := newSearchModel("Searching", time.Second, nil)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd != nil {
		t.Error("key input should not produce a command")
	}
	if next.(searchModel).done {
		t.Error("key input should not end the search")
	}
}
