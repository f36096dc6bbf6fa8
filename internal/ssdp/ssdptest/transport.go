// Package ssdptest provides an in-memory ssdp.Transport and datagram builders
// for tests that must not touch the network.
package ssdptest

import (
	"fmt"
	"net"
	"os"
	"strings"
	"sync"
	"time"
)

// Datagram is a scripted inbound datagram
type Datagram struct {
	Data []byte
	From net.Addr
	// Delay is how long the datagram takes to arrive after the previous read
	Delay time.Duration
}

// Transport replays scripted datagrams and records everything sent.
// Once the script is exhausted reads block until the read deadline.
type Transport struct {
	// ShortBy makes every Send report that many bytes fewer than asked
	ShortBy int
	// SendErr is returned by every Send when set
	SendErr error
	// ReadErr is returned once the script is exhausted instead of blocking
	ReadErr error

	mu       sync.Mutex
	queue    []Datagram
	sent     [][]byte
	deadline time.Time
	closed   bool
	closes   int
}

// New returns a transport that will deliver datagrams in order
func New(datagrams ...Datagram) *Transport {
	return &Transport{queue: datagrams}
}

// Send implements ssdp.Transport
func (t *Transport) Send(b []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return 0, net.ErrClosed
	}
	t.sent = append(t.sent, append([]byte(nil), b...))
	if t.SendErr != nil {
		return 0, t.SendErr
	}
	n := len(b) - t.ShortBy
	if n < 0 {
		n = 0
	}
	return n, nil
}

// ReadFrom implements ssdp.Transport
func (t *Transport) ReadFrom(b []byte) (int, net.Addr, error) {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return 0, nil, net.ErrClosed
	}
	deadline := t.deadline

	if len(t.queue) == 0 {
		readErr := t.ReadErr
		t.mu.Unlock()
		if readErr != nil {
			return 0, nil, readErr
		}
		sleepUntil(deadline)
		return 0, nil, os.ErrDeadlineExceeded
	}

	next := t.queue[0]
	t.queue = t.queue[1:]
	t.mu.Unlock()

	if next.Delay > 0 {
		arrival := time.Now().Add(next.Delay)
		if !deadline.IsZero() && arrival.After(deadline) {
			sleepUntil(deadline)
			return 0, nil, os.ErrDeadlineExceeded
		}
		time.Sleep(next.Delay)
	}

	n := copy(b, next.Data)
	return n, next.From, nil
}

// SetReadDeadline implements ssdp.Transport
func (t *Transport) SetReadDeadline(d time.Time) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.deadline = d
	return nil
}

// Close implements ssdp.Transport
func (t *Transport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closed = true
	t.closes++
	return nil
}

// Sent returns copies of every datagram sent
func (t *Transport) Sent() [][]byte {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([][]byte, len(t.sent))
	for i, b := range t.sent {
		out[i] = append([]byte(nil), b...)
	}
	return out
}

// Closed reports whether Close was called
func (t *Transport) Closed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.closed
}

// CloseCount reports how many times Close was called
func (t *Transport) CloseCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.closes
}

func sleepUntil(deadline time.Time) {
	if deadline.IsZero() {
		// no deadline would block forever on a real socket
		return
	}
	if d := time.Until(deadline); d > 0 {
		time.Sleep(d)
	}
}

// Addr returns a UDP source address for scripted datagrams
func Addr(ip string) net.Addr {
	return &net.UDPAddr{IP: net.ParseIP(ip), Port: 1900}
}

// Response builds a search response carrying the given header name/value pairs
func Response(headers ...string) []byte {
	return build("HTTP/1.1 200 OK", headers)
}

// Notify builds a NOTIFY announcement carrying the given header name/value pairs
func Notify(headers ...string) []byte {
	return build("NOTIFY * HTTP/1.1", append([]string{"HOST", "239.255.255.250:1900"}, headers...))
}

func build(startLine string, headers []string) []byte {
	if len(headers)%2 != 0 {
		panic("ssdptest: headers must be name/value pairs")
	}
	var b strings.Builder
	b.WriteString(startLine + "\r\n")
	for i := 0; i < len(headers); i += 2 {
		fmt.Fprintf(&b, "%s: %s\r\n", headers[i], headers[i+1])
	}
	b.WriteString("\r\n")
	return []byte(b.String())
}
