package realtime

// State is the lifecycle state of the client's connection
type State int

const (
	StateDisconnected State = iota
	StateConnecting
	StateConnected
	StateReconnecting
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateReconnecting:
		return "reconnecting"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// Status is a snapshot of the connection for UI display
type Status struct {
	State State
	// Attempt is the number of reconnects scheduled since the last successful open
	Attempt   int
	LastError error
	Message   string
}
