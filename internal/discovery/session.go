package discovery

import (
	"strconv"
	"sync"

	"github.com/muurk/lightssdp/internal/device"
	"github.com/muurk/lightssdp/internal/logging"
	"github.com/muurk/lightssdp/internal/ssdp"
)

// InsertResult reports what InsertIfAbsent did
type InsertResult int

const (
	// Inserted means the device was appended to the session
	Inserted InsertResult = iota
	// AlreadyPresent means a device with the same MAC was already collected
	// and the new one was discarded
	AlreadyPresent
)

// Outcome describes how Handle dealt with one message
type Outcome int

const (
	OutcomeInserted    Outcome = iota // new device collected
	OutcomeDuplicate                  // MAC already collected
	OutcomeInvalidType                // announced type cannot label a device
	OutcomeNotAnnounce                // a query, not an announcement
	OutcomeFiltered                   // type does not match the search filter
	OutcomeUnsupported                // no device variant for the type
)

// String returns the outcome as a metrics label
func (o Outcome) String() string {
	switch o {
	case OutcomeInserted:
		return "inserted"
	case OutcomeDuplicate:
		return "duplicate"
	case OutcomeInvalidType:
		return "invalid_type"
	case OutcomeNotAnnounce:
		return "not_announcement"
	case OutcomeFiltered:
		return "filtered"
	case OutcomeUnsupported:
		return "unsupported"
	default:
		return "unknown"
	}
}

// Session collects the devices found by one search
type Session struct {
	filter  device.Type
	factory *device.Factory

	mu      sync.Mutex
	devices []device.Device
}

// NewSession creates a session that keeps devices matching filter.
// A nil factory uses the default name normalizer.
func NewSession(filter device.Type, factory *device.Factory) *Session {
	if factory == nil {
		factory = &device.Factory{Normalizer: device.DefaultNormalizer}
	}
	return &Session{
		filter:  filter,
		factory: factory,
	}
}

// Filter returns the device type the session collects
func (s *Session) Filter() device.Type {
	return s.filter
}

// InsertIfAbsent appends dev unless a device with the same MAC is already
// collected. The scan and the append happen under one lock. A device
// without a MAC matches nothing and is always inserted.
func (s *Session) InsertIfAbsent(dev device.Device) InsertResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.devices {
		if device.SameMAC(existing.MAC(), dev.MAC()) {
			return AlreadyPresent
		}
	}
	s.devices = append(s.devices, dev)
	return Inserted
}

// Len returns the number of devices collected so far
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.devices)
}

// Snapshot drains the session, returning its devices in discovery order
func (s *Session) Snapshot() []device.Device {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := s.devices
	s.devices = nil
	return out
}

// Close drops anything still held by the session
func (s *Session) Close() {
	s.mu.Lock()
	s.devices = nil
	s.mu.Unlock()
}

// Handle classifies one message and collects the device it describes
func (s *Session) Handle(msg *ssdp.Message) Outcome {
	typ := device.ParseType(msg.Get(ssdp.HeaderDeviceType))
	// ParseType never yields an invalid type today; this guards parser changes
	if !typ.Valid() {
		return OutcomeInvalidType
	}
	if !msg.IsAnnouncement() {
		return OutcomeNotAnnounce
	}
	if s.filter != device.TypeAll && s.filter != typ {
		return OutcomeFiltered
	}

	dev, err := s.factory.New(typ,
		msg.Get(ssdp.HeaderName),
		msg.Get(ssdp.HeaderIPAddr),
		msg.Get(ssdp.HeaderMAC),
	)
	if err != nil {
		return OutcomeUnsupported
	}
	if cam, ok := dev.(*device.Camera); ok {
		cam.Port = parsePort(msg.Get(ssdp.HeaderRTSPPort))
	}

	if s.InsertIfAbsent(dev) == AlreadyPresent {
		logging.LogDevice("device_duplicate", typ.String(), dev.MAC(), dev.IP())
		return OutcomeDuplicate
	}
	logging.LogDevice("device_discovered", typ.String(), dev.MAC(), dev.IP())
	return OutcomeInserted
}

// parsePort returns 0 for anything that is not a valid port number
func parsePort(s string) int {
	port, err := strconv.Atoi(s)
	if err != nil || port < 0 || port > 65535 {
		return 0
	}
	return port
}
