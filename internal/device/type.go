package device

import (
	"fmt"
	"strings"
)

// Type identifies the kind of device announced in a discovery message
type Type int

const (
	// TypeUnknown is any device that does not announce a recognised type
	TypeUnknown Type = iota
	// TypeCamera is an IP camera ("IPC")
	TypeCamera
	// TypeHomeHub is a home automation hub ("IHOME")
	TypeHomeHub
	// TypeAll matches every type in a search filter. It never labels a device.
	TypeAll
)

// typeNames is indexed by Type and covers [TypeUnknown, TypeAll)
var typeNames = [...]string{
	TypeUnknown: "UNKNOWN",
	TypeCamera:  "IPC",
	TypeHomeHub: "IHOME",
}

// allName is accepted by ParseFilter only
const allName = "ALL"

// TypeString returns the canonical wire name of t.
// ok is false when t is not a device type (including TypeAll).
func TypeString(t Type) (name string, ok bool) {
	if t < TypeUnknown || t >= TypeAll {
		return "", false
	}
	return typeNames[t], true
}

// String returns the canonical name, "ALL" for the filter wildcard, or
// Type(n) for anything out of range
func (t Type) String() string {
	if name, ok := TypeString(t); ok {
		return name
	}
	if t == TypeAll {
		return allName
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// Valid reports whether t can label a concrete device
func (t Type) Valid() bool {
	return t >= TypeUnknown && t < TypeAll
}

// ParseType maps a wire name to a Type, ignoring case.
// Unmatched or empty text yields TypeUnknown.
func ParseType(s string) Type {
	s = strings.TrimSpace(s)
	for i, name := range typeNames {
		if strings.EqualFold(name, s) {
			return Type(i)
		}
	}
	return TypeUnknown
}

// ParseFilter parses a search filter: any device type name or "ALL".
// Unlike ParseType it rejects text that names nothing.
func ParseFilter(s string) (Type, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, allName) {
		return TypeAll, nil
	}
	for i, name := range typeNames {
		if strings.EqualFold(name, s) {
			return Type(i), nil
		}
	}
	return TypeUnknown, fmt.Errorf("unknown device type %q (valid: %s)", s, strings.Join(FilterNames(), ", "))
}

// FilterNames lists every name accepted by ParseFilter
func FilterNames() []string {
	names := make([]string, 0, len(typeNames)+1)
	names = append(names, allName)
	names = append(names, typeNames[:]...)
	return names
}

// Types returns every concrete device type in enumeration order
func Types() []Type {
	types := make([]Type, 0, len(typeNames))
	for i := range typeNames {
		types = append(types, Type(i))
	}
	return types
}

// MarshalText implements encoding.TextMarshaler
func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}
