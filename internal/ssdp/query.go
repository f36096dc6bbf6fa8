package ssdp

import (
	"fmt"
	"net"
)

// Multicast group and port used for discovery
const (
	MulticastAddr = "239.255.255.250"
	Port          = 1900

	// DefaultMX is the maximum response delay, in seconds, requested from devices
	DefaultMX = 3

	// MaxDatagramSize bounds a single read
	MaxDatagramSize = 65536
)

// GroupAddr returns the multicast group as a UDP address
func GroupAddr() *net.UDPAddr {
	return &net.UDPAddr{IP: net.ParseIP(MulticastAddr).To4(), Port: Port}
}

// SearchRequest builds the M-SEARCH discovery query. mx <= 0 uses DefaultMX.
func SearchRequest(mx int) []byte {
	if mx <= 0 {
		mx = DefaultMX
	}
	return []byte(fmt.Sprintf("M-SEARCH * HTTP/1.1\r\n"+
		"ST:UPnP:rootdevice\r\n"+
		"MX:%d\r\n"+
		"Man:ssdp:discover\r\n"+
		"HOST:%s:%d\r\n"+
		"\r\n", mx, MulticastAddr, Port))
}
