package discovery

import "fmt"

// State is a step in the search lifecycle
type State int

const (
	StateInit State = iota
	StateSocketReady
	StateQuerySent
	StateCollecting
	StateSnapshotReady
	StateDone
	StateFailed
)

// String returns the state name used in logs
func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateSocketReady:
		return "socket_ready"
	case StateQuerySent:
		return "query_sent"
	case StateCollecting:
		return "collecting"
	case StateSnapshotReady:
		return "snapshot_ready"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Terminal reports whether no further transition can follow s
func (s State) Terminal() bool {
	return s == StateDone || s == StateFailed
}
