package props

import (
	"errors"
	"fmt"
)

// ErrPropsShape is wrapped by every PropsShapeError.
var ErrPropsShape = errors.New("props: invalid props shape")

// PropsShapeError reports a props value, or a key inside one, that cannot
// be converted to host props.
type PropsShapeError struct {
	// Value is the offending props value or key.
	Value any

	// Key is set when a single key was rejected.
	Key bool
}

// Error implements the error interface.
func (e *PropsShapeError) Error() string {
	if e.Key {
		return fmt.Sprintf("props: unsupported key %v (%T)", e.Value, e.Value)
	}
	return fmt.Sprintf("props: expected a props map, got %T", e.Value)
}

// Unwrap returns ErrPropsShape.
func (e *PropsShapeError) Unwrap() error {
	return ErrPropsShape
}
