package discovery

import (
	"encoding/json"

	"github.com/muurk/lightssdp/internal/device"
)

// Result is the immutable outcome of one search. It owns its devices until
// Release is called. Release must not race with the other methods.
type Result struct {
	devices  []device.Device
	released bool
}

// newResult copies devices into a result of exactly that size
func newResult(devices []device.Device) *Result {
	r := &Result{devices: make([]device.Device, len(devices))}
	copy(r.devices, devices)
	return r
}

// Len returns the number of devices found
func (r *Result) Len() int {
	if r == nil {
		return 0
	}
	return len(r.devices)
}

// At returns the i-th device in discovery order, or nil when out of range
func (r *Result) At(i int) device.Device {
	if r == nil || i < 0 || i >= len(r.devices) {
		return nil
	}
	return r.devices[i]
}

// Devices returns the devices in discovery order. The slice is a copy.
func (r *Result) Devices() []device.Device {
	if r == nil {
		return nil
	}
	out := make([]device.Device, len(r.devices))
	copy(out, r.devices)
	return out
}

// OfType returns the devices of one type in discovery order
func (r *Result) OfType(t device.Type) []device.Device {
	if r == nil {
		return nil
	}
	var out []device.Device
	for _, d := range r.devices {
		if d.Type() == t {
			out = append(out, d)
		}
	}
	return out
}

// Released reports whether Release has been called
func (r *Result) Released() bool {
	return r == nil || r.released
}

// Release drops every device. It is safe to call more than once.
func (r *Result) Release() {
	if r == nil || r.released {
		return
	}
	for i := range r.devices {
		r.devices[i] = nil
	}
	r.devices = nil
	r.released = true
}

// MarshalJSON encodes the devices as a JSON array
func (r *Result) MarshalJSON() ([]byte, error) {
	devices := r.Devices()
	if devices == nil {
		devices = []device.Device{}
	}
	return json.Marshal(devices)
}
