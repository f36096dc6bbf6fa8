package device

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Field bounds in bytes. Longer values are truncated.
const (
	MaxNameLen = 64
	MaxIPLen   = 46 // long enough for any textual IPv6 address
	MaxMACLen  = 32
)

// ErrUnsupportedType is returned by New for a type with no concrete variant
var ErrUnsupportedType = errors.New("unsupported device type")

// Device is a discovered device. It is implemented by *Generic, *Camera and
// *HomeHub only.
type Device interface {
	Type() Type
	Name() string
	IP() string
	MAC() string
	String() string

	generic() *Generic
}

// Generic is the identity record shared by every device variant
type Generic struct {
	DeviceType  Type   `json:"type"`
	DisplayName string `json:"name"`
	IPAddr      string `json:"ip"`
	MACAddr     string `json:"mac"`
}

// Type returns the announced device type
func (g *Generic) Type() Type { return g.DeviceType }

// Name returns the normalized display name
func (g *Generic) Name() string { return g.DisplayName }

// IP returns the announced IP address
func (g *Generic) IP() string { return g.IPAddr }

// MAC returns the hardware address, the device's identity key
func (g *Generic) MAC() string { return g.MACAddr }

// String returns a human-readable representation of the device
func (g *Generic) String() string {
	return fmt.Sprintf("%s %q (%s) at %s", g.DeviceType, g.DisplayName, g.MACAddr, g.IPAddr)
}

func (g *Generic) generic() *Generic { return g }

// Camera is an IP camera
type Camera struct {
	Generic
	// Port is the RTSP streaming port, 0 when the device did not announce one
	Port int `json:"rtsp_port"`
}

// String includes the RTSP port when known
func (c *Camera) String() string {
	if c.Port == 0 {
		return c.Generic.String()
	}
	return fmt.Sprintf("%s, rtsp port %d", c.Generic.String(), c.Port)
}

// RTSPURL returns the stream base URL, or "" when no port was announced
func (c *Camera) RTSPURL() string {
	if c.Port == 0 || c.IPAddr == "" {
		return ""
	}
	return fmt.Sprintf("rtsp://%s:%d/", c.IPAddr, c.Port)
}

// ServicePort returns the streaming port of a camera and 0 for every other device
func ServicePort(d Device) int {
	if cam, ok := d.(*Camera); ok {
		return cam.Port
	}
	return 0
}

// HomeHub is a home automation hub
type HomeHub struct {
	Generic
}

// Factory creates devices, normalizing their names with Normalizer
type Factory struct {
	Normalizer Normalizer
}

var defaultFactory = &Factory{Normalizer: DefaultNormalizer}

// New creates a device of type t using the default name normalizer
func New(t Type, name, ip, mac string) (Device, error) {
	return defaultFactory.New(t, name, ip, mac)
}

// New allocates the variant that matches t.
// It returns ErrUnsupportedType when t has no concrete variant.
func (f *Factory) New(t Type, name, ip, mac string) (Device, error) {
	var dev Device
	switch t {
	case TypeCamera:
		dev = &Camera{}
	case TypeHomeHub:
		dev = &HomeHub{}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, t)
	}

	g := dev.generic()
	g.DeviceType = t
	g.DisplayName = truncateRunes(f.normalize(name), MaxNameLen)
	g.IPAddr = truncate(ip, MaxIPLen)
	g.MACAddr = truncate(mac, MaxMACLen)
	return dev, nil
}

func (f *Factory) normalize(name string) string {
	if name == "" || f == nil || f.Normalizer == nil {
		return name
	}
	out, err := f.Normalizer.Normalize(name)
	if err != nil {
		return name
	}
	return out
}

// SameMAC reports whether two hardware addresses identify the same device.
// An empty address identifies nothing and never matches.
func SameMAC(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return strings.EqualFold(a, b)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

// truncateRunes cuts s to at most max bytes without splitting a UTF-8
// sequence. Invalid UTF-8 is cut at the byte bound.
func truncateRunes(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if !utf8.ValidString(s) {
		return s[:max]
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
