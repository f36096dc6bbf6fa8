package ssdp

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
)

// Header names announced by devices
const (
	HeaderDeviceType = "DEVICE-TYPE"
	HeaderIPAddr     = "IPADDR"
	HeaderMAC        = "MAC"
	HeaderName       = "DNAME"
	HeaderRTSPPort   = "RTSP-PORT"
)

// Kind classifies a parsed message
type Kind int

const (
	// KindSearch is an M-SEARCH query, usually our own echoed back
	KindSearch Kind = iota
	// KindNotify is an unsolicited NOTIFY announcement
	KindNotify
	// KindResponse is a reply to an M-SEARCH query
	KindResponse
)

// String returns a human-readable name for the kind
func (k Kind) String() string {
	switch k {
	case KindSearch:
		return "search"
	case KindNotify:
		return "notify"
	case KindResponse:
		return "response"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ErrUnsupportedMethod is returned by Parse for requests other than M-SEARCH and NOTIFY
var ErrUnsupportedMethod = errors.New("unsupported SSDP method")

// Message is a parsed SSDP datagram
type Message struct {
	Kind Kind
	// StatusCode is set for responses only
	StatusCode int
	// Source is the sender, when known
	Source net.Addr

	header http.Header
}

// Parse parses a raw datagram into a Message
func Parse(data []byte) (*Message, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("empty datagram")
	}

	r := bufio.NewReader(bytes.NewReader(data))

	if bytes.HasPrefix(data, []byte("HTTP/")) {
		resp, err := http.ReadResponse(r, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to parse response: %w", err)
		}
		resp.Body.Close()
		return &Message{Kind: KindResponse, StatusCode: resp.StatusCode, header: resp.Header}, nil
	}

	req, err := http.ReadRequest(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse request: %w", err)
	}
	req.Body.Close()

	msg := &Message{header: req.Header}
	switch strings.ToUpper(req.Method) {
	case "M-SEARCH":
		msg.Kind = KindSearch
	case "NOTIFY":
		msg.Kind = KindNotify
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedMethod, req.Method)
	}
	return msg, nil
}

// Header returns the trimmed value of the named header, ignoring case.
// ok is false when the header is absent.
func (m *Message) Header(name string) (value string, ok bool) {
	if m == nil || m.header == nil {
		return "", false
	}
	values := m.header.Values(name)
	if len(values) == 0 {
		return "", false
	}
	return strings.TrimSpace(values[0]), true
}

// Get returns the named header or "" when absent
func (m *Message) Get(name string) string {
	v, _ := m.Header(name)
	return v
}

// IsAnnouncement reports whether the message describes a device, i.e. it is a
// NOTIFY or a response rather than a query
func (m *Message) IsAnnouncement() bool {
	return m.Kind == KindNotify || m.Kind == KindResponse
}
