package discovery

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/muurk/lightssdp/internal/device"
	"github.com/muurk/lightssdp/internal/logging"
	"github.com/muurk/lightssdp/internal/metrics"
	"github.com/muurk/lightssdp/internal/ssdp"
)

const (
	// DefaultTimeout is the default collection window
	DefaultTimeout = 3 * time.Second

	// DefaultRetransmits is how many times the query is sent
	DefaultRetransmits = 2
)

// Opener acquires the transport for one search
type Opener func() (ssdp.Transport, error)

// Searcher runs discovery searches
type Searcher struct {
	// Retransmits is how many times the query is sent. Zero uses DefaultRetransmits.
	Retransmits int
	// MX is the maximum response delay requested from devices, in seconds
	MX int
	// Open acquires the transport. Defaults to a multicast socket.
	Open Opener
	// Factory creates devices. Nil uses the default name normalizer.
	Factory *device.Factory
	// Metrics records search counters when set
	Metrics *metrics.Collector
	// OnState is called on every state transition
	OnState func(from, to State)
}

// Option configures a Searcher
type Option func(*Searcher)

// WithRetransmits sets how many times the query is sent
func WithRetransmits(n int) Option {
	return func(s *Searcher) { s.Retransmits = n }
}

// WithMX sets the maximum response delay requested from devices
func WithMX(mx int) Option {
	return func(s *Searcher) { s.MX = mx }
}

// WithTransportOptions opens a multicast transport with opts
func WithTransportOptions(opts ssdp.Options) Option {
	return func(s *Searcher) { s.Open = multicastOpener(opts) }
}

// WithOpener replaces the transport entirely
func WithOpener(open Opener) Option {
	return func(s *Searcher) { s.Open = open }
}

// WithNormalizer sets the device name normalizer
func WithNormalizer(n device.Normalizer) Option {
	return func(s *Searcher) { s.Factory = &device.Factory{Normalizer: n} }
}

// WithMetrics records search counters in c
func WithMetrics(c *metrics.Collector) Option {
	return func(s *Searcher) { s.Metrics = c }
}

// WithStateHook calls fn on every state transition
func WithStateHook(fn func(from, to State)) Option {
	return func(s *Searcher) { s.OnState = fn }
}

// NewSearcher creates a searcher with default settings
func NewSearcher(opts ...Option) *Searcher {
	s := &Searcher{
		Retransmits: DefaultRetransmits,
		MX:          ssdp.DefaultMX,
		Open:        multicastOpener(ssdp.Options{Loopback: true}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func multicastOpener(opts ssdp.Options) Opener {
	return func() (ssdp.Transport, error) {
		conn, err := ssdp.Open(opts)
		if err != nil {
			return nil, err
		}
		return conn, nil
	}
}

// Search discovers devices matching filter for the duration of timeout.
// A zero or negative timeout uses DefaultTimeout. Once the query is sent the
// search runs to its deadline unless the transport fails while reading, in
// which case the devices collected so far are returned.
func (s *Searcher) Search(filter device.Type, timeout time.Duration) (*Result, error) {
	if filter != device.TypeAll && !filter.Valid() {
		return nil, &SearchError{Kind: ErrKindFilter, Err: fmt.Errorf("%s is not a device type", filter)}
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	started := time.Now()
	r := &run{searcher: s, state: StateInit}

	logging.Info("Starting device search",
		zap.String("filter", filter.String()),
		zap.Duration("timeout", timeout),
	)

	conn, err := s.open()
	if err != nil {
		r.transition(StateFailed)
		s.Metrics.SearchFailed()
		logging.Error("Search failed", zap.Error(err))
		return nil, &SearchError{Kind: ErrKindTransport, Err: err}
	}
	released := false
	defer func() {
		if !released {
			conn.Close()
		}
	}()
	r.transition(StateSocketReady)

	s.sendQuery(conn)
	r.transition(StateQuerySent)

	session := NewSession(filter, s.Factory)
	defer session.Close()

	r.transition(StateCollecting)
	err = ssdp.ReceiveUntil(conn, func(msg *ssdp.Message) {
		outcome := session.Handle(msg)
		s.Metrics.Datagram(outcome.String())
		if outcome == OutcomeInserted {
			s.Metrics.DeviceDiscovered(device.ParseType(msg.Get(ssdp.HeaderDeviceType)).String())
		}
	}, timeout)
	if err != nil {
		logging.Warn("Receive loop stopped before the deadline", zap.Error(err))
	}

	result := newResult(session.Snapshot())
	r.transition(StateSnapshotReady)

	session.Close()
	if err := conn.Close(); err != nil {
		logging.Debug("Failed to close transport", zap.Error(err))
	}
	released = true
	r.transition(StateDone)

	elapsed := time.Since(started)
	s.Metrics.SearchCompleted(result.Len(), elapsed)
	logging.Info("Device search complete",
		zap.Int("devices", result.Len()),
		zap.Duration("elapsed", elapsed),
	)

	return result, nil
}

func (s *Searcher) open() (ssdp.Transport, error) {
	open := s.Open
	if open == nil {
		open = multicastOpener(ssdp.Options{Loopback: true})
	}
	conn, err := open()
	if err != nil {
		return nil, err
	}
	if conn == nil {
		return nil, fmt.Errorf("transport opener returned no transport")
	}
	return conn, nil
}

// sendQuery transmits the query Retransmits times. Failures are logged only.
func (s *Searcher) sendQuery(conn ssdp.Transport) {
	count := s.Retransmits
	if count <= 0 {
		count = DefaultRetransmits
	}

	query := ssdp.SearchRequest(s.MX)
	for attempt := 1; attempt <= count; attempt++ {
		n, err := conn.Send(query)
		short := err != nil || n != len(query)
		if short {
			logging.LogShortWrite(attempt, n, len(query), err)
		}
		s.Metrics.QuerySent(short)
	}
}

// run tracks the state of one search
type run struct {
	searcher *Searcher
	state    State
}

func (r *run) transition(to State) {
	from := r.state
	r.state = to
	logging.LogStateChange(from.String(), to.String())
	if r.searcher.OnState != nil {
		r.searcher.OnState(from, to)
	}
}

// Search discovers devices with a default searcher
func Search(filter device.Type, timeout time.Duration) (*Result, error) {
	return NewSearcher().Search(filter, timeout)
}

// QuickScan searches every device type for one second
func QuickScan() (*Result, error) {
	return Search(device.TypeAll, time.Second)
}
