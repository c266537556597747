package transport

import (
	"fmt"
)

// TransportError reports a failed round trip: network failure,
// non-success HTTP status or a body that is not valid JSON.
type TransportError struct {
	Op         string // "load", "move" or "reset"
	URL        string
	StatusCode int // 0 when no response was received
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("transport: %s %s: status %d: %v", e.Op, e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("transport: %s %s: %v", e.Op, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ProtocolError reports a well-formed JSON response that does not match
// the board schema (missing rows or score, ragged grid, negative tile).
type ProtocolError struct {
	Op     string
	Field  string
	Reason string
}

func (e *ProtocolError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("transport: %s: protocol violation: %s", e.Op, e.Reason)
	}
	return fmt.Sprintf("transport: %s: protocol violation on %q: %s", e.Op, e.Field, e.Reason)
}
