// Package device defines the devices that lightssdp can discover.
//
// A discovered device is one of a small closed set of variants. Every variant
// carries the same identity record (type, display name, IP address and MAC
// address) and some variants add fields of their own:
//
//   - Generic: the common identity record, embedded by every variant
//   - Camera: an IP camera ("IPC"), adds the RTSP streaming port
//   - HomeHub: a home automation hub ("IHOME")
//
// # Device Types
//
// Type is the closed enumeration announced by devices in the DEVICE-TYPE
// header. TypeAll is a search filter wildcard and never labels a device.
//
//	t := device.ParseType("ipc")    // TypeCamera
//	t = device.ParseType("printer") // TypeUnknown
//
// # Creating Devices
//
// New allocates the variant that matches a type:
//
//	dev, err := device.New(device.TypeCamera, "Front Door", "10.0.0.5", "AA:BB:CC:DD:EE:FF")
//	if err != nil {
//	    // device.ErrUnsupportedType
//	}
//	if cam, ok := dev.(*device.Camera); ok {
//	    cam.Port = 554
//	}
//
// Names are passed through a Normalizer that converts them to NFC UTF-8 on a
// best-effort basis. When conversion fails the raw name is kept.
//
// # Field Bounds
//
// Names, IP addresses and MAC addresses are bounded by MaxNameLen, MaxIPLen
// and MaxMACLen bytes. Longer values are truncated, never rejected.
package device
