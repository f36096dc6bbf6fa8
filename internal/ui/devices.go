package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muurk/lightssdp/internal/device"
)

// Layout selects how a device list is rendered
type Layout int

const (
	// LayoutDetailed renders one bordered card per device
	LayoutDetailed Layout = iota
	// LayoutCompact renders one line per device
	LayoutCompact
)

// ParseLayout maps a --format value to a Layout. "json" is handled by the caller.
func ParseLayout(s string) (Layout, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "detailed":
		return LayoutDetailed, nil
	case "compact":
		return LayoutCompact, nil
	}
	return LayoutDetailed, fmt.Errorf("unknown output format %q (expected detailed, compact or json)", s)
}

// RenderDevices renders devices in discovery order
func RenderDevices(devices []device.Device, layout Layout, width int) string {
	if width < MinTerminalWidth {
		width = MinTerminalWidth
	}
	if len(devices) == 0 {
		return EmptyStyle.Render("No devices responded.")
	}

	parts := make([]string, 0, len(devices))
	for i, d := range devices {
		if layout == LayoutCompact {
			parts = append(parts, renderCompact(d))
		} else {
			parts = append(parts, renderCard(i+1, d, width))
		}
	}
	return strings.Join(parts, "\n")
}

func renderCompact(d device.Device) string {
	typeName := d.Type().String()
	line := fmt.Sprintf("  %s %-15s %-17s %s",
		TypeBadgeStyle(typeName).Render(typeName),
		d.IP(),
		d.MAC(),
		DeviceNameStyle.Render(displayName(d)))
	if port := device.ServicePort(d); port != 0 {
		line += " " + DeviceLabelStyle.UnsetWidth().Render(fmt.Sprintf("rtsp:%d", port))
	}
	return line
}

func renderCard(n int, d device.Device, width int) string {
	typeName := d.Type().String()
	title := fmt.Sprintf("%d. %s %s", n, TypeBadgeStyle(typeName).Render(typeName), DeviceNameStyle.Render(displayName(d)))

	lines := []string{
		title,
		DeviceLabelStyle.Render("IP") + DeviceFieldStyle.Render(d.IP()),
		DeviceLabelStyle.Render("MAC") + DeviceFieldStyle.Render(d.MAC()),
	}
	if cam, ok := d.(*device.Camera); ok && cam.Port != 0 {
		lines = append(lines, DeviceLabelStyle.Render("RTSP")+DeviceFieldStyle.Render(cam.RTSPURL()))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(MutedColor).
		Width(width-4).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}

func displayName(d device.Device) string {
	if d.Name() == "" {
		return "(unnamed)"
	}
	return d.Name()
}

// Summary returns the per-type counts shown in the success box
func Summary(devices []device.Device) map[string]string {
	counts := make(map[device.Type]int)
	for _, d := range devices {
		counts[d.Type()]++
	}
	details := map[string]string{
		"Devices": fmt.Sprintf("%d", len(devices)),
	}
	for t, n := range counts {
		details[t.String()] = fmt.Sprintf("%d", n)
	}
	return details
}
