package transport

import "fmt"

// TransportError reports a request that never produced a usable response:
// network failures (DNS, connect, timeout) have Status 0, HTTP failures carry
// the terminal status code. URI is the last URI that was attempted.
type TransportError struct {
	URI    string
	Status int
	Err    error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("request failed with status %d: %s", e.Status, e.URI)
	}
	if e.Err != nil {
		return fmt.Sprintf("request failed: %s: %v", e.URI, e.Err)
	}
	return "request failed: " + e.URI
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
