package daemon

import "fmt"

// ConnectionError ends Run when the display server connection is lost.
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("display server connection lost: %v", e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }
