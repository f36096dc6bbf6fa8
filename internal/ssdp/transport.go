package ssdp

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"go.uber.org/zap"
	"golang.org/x/net/ipv4"

	"github.com/muurk/lightssdp/internal/logging"
)

// DefaultTTL keeps queries on the local segment plus one router hop
const DefaultTTL = 2

// ErrNoInterfaces is returned by Open when the group could not be joined on any interface
var ErrNoInterfaces = errors.New("no multicast interface available")

// Transport is the socket a search runs over
type Transport interface {
	// Send multicasts b to the discovery group and returns the bytes written
	Send(b []byte) (int, error)
	// ReadFrom reads one datagram
	ReadFrom(b []byte) (int, net.Addr, error)
	// SetReadDeadline bounds every subsequent ReadFrom
	SetReadDeadline(t time.Time) error
	Close() error
}

// Options configures the multicast transport
type Options struct {
	// Interface restricts the transport to one named interface. Empty means
	// every up, multicast-capable interface.
	Interface string
	// TTL is the multicast TTL of outgoing queries. Zero uses DefaultTTL.
	TTL int
	// Loopback delivers our own multicasts back to us, which lets a search
	// see responders running on this host
	Loopback bool
}

// MulticastConn is a UDP socket bound to the SSDP port and joined to the
// discovery group
type MulticastConn struct {
	pc     *ipv4.PacketConn
	group  *net.UDPAddr
	joined []string
}

// Open binds the SSDP port and joins the discovery group.
// Nothing is left open when it fails.
func Open(opts Options) (*MulticastConn, error) {
	ifaces, err := multicastInterfaces(opts.Interface)
	if err != nil {
		return nil, err
	}

	lc := net.ListenConfig{Control: reuseAddr}
	conn, err := lc.ListenPacket(context.Background(), "udp4", fmt.Sprintf("0.0.0.0:%d", Port))
	if err != nil {
		return nil, fmt.Errorf("failed to bind SSDP port %d: %w", Port, err)
	}

	mc := &MulticastConn{
		pc:    ipv4.NewPacketConn(conn),
		group: GroupAddr(),
	}

	for i := range ifaces {
		ifi := ifaces[i]
		if err := mc.pc.JoinGroup(&ifi, mc.group); err != nil {
			logging.Warn("Failed to join multicast group",
				zap.String("interface", ifi.Name),
				zap.Error(err),
			)
			continue
		}
		mc.joined = append(mc.joined, ifi.Name)
	}

	if len(mc.joined) == 0 {
		mc.pc.Close()
		return nil, ErrNoInterfaces
	}

	ttl := opts.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if err := mc.pc.SetMulticastTTL(ttl); err != nil {
		logging.Warn("Failed to set multicast TTL", zap.Int("ttl", ttl), zap.Error(err))
	}
	if err := mc.pc.SetMulticastLoopback(opts.Loopback); err != nil {
		logging.Warn("Failed to set multicast loopback", zap.Error(err))
	}
	if opts.Interface != "" {
		if err := mc.pc.SetMulticastInterface(&ifaces[0]); err != nil {
			mc.pc.Close()
			return nil, fmt.Errorf("failed to select interface %s: %w", opts.Interface, err)
		}
	}

	logging.Debug("Multicast transport open",
		zap.String("group", mc.group.String()),
		zap.Strings("interfaces", mc.joined),
	)

	return mc, nil
}

// Interfaces lists the interfaces the group was joined on
func (c *MulticastConn) Interfaces() []string {
	return append([]string(nil), c.joined...)
}

// Send implements Transport
func (c *MulticastConn) Send(b []byte) (int, error) {
	return c.pc.WriteTo(b, nil, c.group)
}

// ReadFrom implements Transport
func (c *MulticastConn) ReadFrom(b []byte) (int, net.Addr, error) {
	n, _, src, err := c.pc.ReadFrom(b)
	return n, src, err
}

// SetReadDeadline implements Transport
func (c *MulticastConn) SetReadDeadline(t time.Time) error {
	return c.pc.SetReadDeadline(t)
}

// Close closes the socket, which drops its group memberships
func (c *MulticastConn) Close() error {
	return c.pc.Close()
}

func multicastInterfaces(name string) ([]net.Interface, error) {
	if name != "" {
		ifi, err := net.InterfaceByName(name)
		if err != nil {
			return nil, fmt.Errorf("failed to find interface %s: %w", name, err)
		}
		if ifi.Flags&net.FlagMulticast == 0 {
			return nil, fmt.Errorf("interface %s does not support multicast", name)
		}
		return []net.Interface{*ifi}, nil
	}

	all, err := net.Interfaces()
	if err != nil {
		return nil, fmt.Errorf("failed to list network interfaces: %w", err)
	}

	var ifaces []net.Interface
	for _, ifi := range all {
		if ifi.Flags&net.FlagUp == 0 || ifi.Flags&net.FlagMulticast == 0 {
			continue
		}
		ifaces = append(ifaces, ifi)
	}
	if len(ifaces) == 0 {
		return nil, ErrNoInterfaces
	}
	return ifaces, nil
}
