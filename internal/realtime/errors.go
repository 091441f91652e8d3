package realtime

import "errors"

var (
	// ErrReconnectExhausted is the terminal error once every reconnect attempt failed
	ErrReconnectExhausted = errors.New("reconnect attempts exhausted")
	// ErrUnknownFrameType means the frame's type is outside the known set
	ErrUnknownFrameType = errors.New("unknown frame type")
	// ErrMalformedFrame means the frame is not a JSON object with a string type
	ErrMalformedFrame = errors.New("malformed frame")
	// ErrNotConnected is returned by Send when no socket is open
	ErrNotConnected = errors.New("not connected")
	// ErrInvalidOrigin is returned by EndpointFromOrigin for non-http(s) origins
	ErrInvalidOrigin = errors.New("origin must be an absolute http or https URL")
)
