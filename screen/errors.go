package screen

import (
	"errors"
	"fmt"
)

// ErrOutOfMemory is returned when a screen of the requested size would not
// fit in MaxCells.
var ErrOutOfMemory = errors.New("screen: out of memory")

// SystemError wraps a failure reported by the terminal driver.
type SystemError struct {
	Op  string
	Err error
}

func (e *SystemError) Error() string {
	return fmt.Sprintf("screen: %s: %v", e.Op, e.Err)
}

func (e *SystemError) Unwrap() error {
	return e.Err
}

func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	var se *SystemError
	if errors.As(err, &se) {
		return err
	}
	return &SystemError{Op: op, Err: err}
}
