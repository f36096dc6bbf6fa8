package ssdp

import (
	"errors"
	"fmt"
	"net"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/muurk/lightssdp/internal/logging"
)

// Handler is called once for every datagram that parses
type Handler func(msg *Message)

// ReceiveUntil reads from t until timeout has elapsed, passing every parsed
// datagram to h. The timeout is a single deadline across all reads. It
// returns nil when the deadline passes and an error only when the transport
// itself fails.
func ReceiveUntil(t Transport, h Handler, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	if err := t.SetReadDeadline(deadline); err != nil {
		return fmt.Errorf("failed to set read deadline: %w", err)
	}

	buf := make([]byte, MaxDatagramSize)
	for time.Now().Before(deadline) {
		n, src, err := t.ReadFrom(buf)
		if err != nil {
			if isTimeout(err) {
				return nil
			}
			return fmt.Errorf("failed to read datagram: %w", err)
		}

		data := buf[:n]
		msg, err := Parse(data)
		if err != nil {
			logging.Debug("Skipping unparseable datagram",
				zap.String("remote_addr", addrString(src)),
				zap.Int("length", n),
				zap.Error(err),
			)
			continue
		}
		msg.Source = src
		logging.LogDatagram(addrString(src), msg.Kind.String(), n, data)

		h(msg)
	}
	return nil
}

func isTimeout(err error) bool {
	if errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

func addrString(addr net.Addr) string {
	if addr == nil {
		return ""
	}
	return addr.String()
}
