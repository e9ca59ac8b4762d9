package registry

import "fmt"

// TransportError wraps a failure to reach the registry at all, as opposed to
// a successful call that found no record. Backends wrap every error from the
// underlying client in a TransportError.
type TransportError struct {
	// Op names the failing operation: "lookup", "self", or "shutdown".
	Op string
	// Err is the underlying transport error.
	Err error
}

// Error returns the string representation of the error.
func (e *TransportError) Error() string {
	return fmt.Sprintf("registry %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *TransportError) Unwrap() error { return e.Err }

// Transport wraps err in a TransportError for the given operation.
// Returns nil if err is nil.
func Transport(op string, err error) error {
	if err == nil {
		return nil
	}
	return &TransportError{Op: op, Err: err}
}
