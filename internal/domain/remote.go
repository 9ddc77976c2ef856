package domain

import "fmt"

// RemoteError describes a failed call to the ledger service.
// A zero StatusCode means the request never produced an HTTP response
// (connection failure or timeout).
type RemoteError struct {
	Op         string
	StatusCode int
	Message    string
}

func (e *RemoteError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}

	return fmt.Sprintf("%s: status %d: %s", e.Op, e.StatusCode, e.Message)
}

// Transient reports whether the call may succeed if repeated.
// Client errors (4xx) are terminal; server errors and transport failures are not.
func (e *RemoteError) Transient() bool {
	return e.StatusCode == 0 || e.StatusCode >= 500
}
