package discovery

import (
	"errors"
	"fmt"
	"syscall"

	"github.com/muurk/lightssdp/internal/ssdp"
)

// ErrorKind represents the category of a search failure
type ErrorKind int

const (
	// ErrKindTransport indicates the multicast transport could not be opened
	ErrKindTransport ErrorKind = iota
	// ErrKindFilter indicates the requested filter is not a device type or ALL
	ErrKindFilter
)

// String returns a human-readable name for the error kind
func (k ErrorKind) String() string {
	switch k {
	case ErrKindTransport:
		return "Transport Error"
	case ErrKindFilter:
		return "Invalid Filter"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// SearchError is returned when a search cannot produce a result
type SearchError struct {
	Kind ErrorKind
	Err  error
}

// Error implements the error interface
func (e *SearchError) Error() string {
	if e.Err == nil {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

// Unwrap returns the underlying error for error chain inspection
func (e *SearchError) Unwrap() error {
	return e.Err
}

// IsTransportError checks if err is a search failure caused by the transport
func IsTransportError(err error) bool {
	var se *SearchError
	return errors.As(err, &se) && se.Kind == ErrKindTransport
}

// IsFilterError checks if err is a search failure caused by a bad filter
func IsFilterError(err error) bool {
	var se *SearchError
	return errors.As(err, &se) && se.Kind == ErrKindFilter
}

// Troubleshooting returns user-facing hints for a search failure
func Troubleshooting(err error) []string {
	switch {
	case errors.Is(err, syscall.EADDRINUSE):
		return []string{
			"Another program holds UDP port 1900 without sharing it",
			"Stop other SSDP/UPnP listeners or run them with SO_REUSEPORT",
		}
	case errors.Is(err, syscall.EACCES), errors.Is(err, syscall.EPERM):
		return []string{
			"The socket was refused by the operating system",
			"Check firewall rules for UDP port 1900",
		}
	case errors.Is(err, ssdp.ErrNoInterfaces):
		return []string{
			"No network interface is up with multicast enabled",
			"Check your network connection",
			"Use --interface to pick an interface explicitly",
		}
	case IsFilterError(err):
		return []string{"Run 'lightssdp types' to list valid device types"}
	case IsTransportError(err):
		return []string{
			"Ensure the host is connected to the devices' network",
			"Use --interface to pick an interface explicitly",
		}
	default:
		return nil
	}
}
