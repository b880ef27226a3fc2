package host

import (
	"errors"
	"fmt"
	"strings"

	hxerrors "github.com/vango-dev/hx/internal/errors"
)

// Phase identifies where a component error was raised.
type Phase string

const (
	PhaseRender Phase = "render"
	PhaseEffect Phase = "effect"
	// PhaseCleanup marks a cleanup that panicked during unmount. It is
	// logged and counted but never returned as an error.
	PhaseCleanup Phase = "cleanup"
)

// ErrUpdateLoop is returned by Flush when components keep scheduling
// updates past the pass limit.
var ErrUpdateLoop = hxerrors.New("E004")

// ErrUnmounted is returned when rendering into an unmounted root.
var ErrUnmounted = hxerrors.New("E005")

// RenderError is an error raised while rendering a component or running
// one of its effects. Boundaries receive the underlying Err; a RenderError
// that no boundary catches is returned from Root.Flush.
type RenderError struct {
	// Phase is where the error was raised.
	Phase Phase

	// Component is the display name of the component that failed.
	Component string

	// ComponentStack lists component names from the root to the failing
	// component.
	ComponentStack []string

	// Err is the error the component raised. Non-error panic values are
	// wrapped with fmt.Errorf.
	Err error
}

// Error implements the error interface.
func (e *RenderError) Error() string {
	return fmt.Sprintf("hx: %s error in %s: %v", e.Phase, e.Component, e.Err)
}

// Unwrap returns the underlying error.
func (e *RenderError) Unwrap() error {
	return e.Err
}

// Info returns the ErrorInfo handed to boundaries for this error.
func (e *RenderError) Info() ErrorInfo {
	return ErrorInfo{Phase: e.Phase, ComponentStack: append([]string(nil), e.ComponentStack...)}
}

// ErrorInfo describes where a caught error came from.
type ErrorInfo struct {
	Phase          Phase
	ComponentStack []string
}

// String formats the component stack innermost first.
func (i ErrorInfo) String() string {
	var b strings.Builder
	for j := len(i.ComponentStack) - 1; j >= 0; j-- {
		b.WriteString("\n    in ")
		b.WriteString(i.ComponentStack[j])
	}
	return b.String()
}

// asError converts a recovered panic value to an error.
func asError(v any) error {
	if err, ok := v.(error); ok {
		return err
	}
	return fmt.Errorf("%v", v)
}

// newRenderError builds a RenderError for inst from a recovered value.
func newRenderError(inst *Instance, phase Phase, v any) *RenderError {
	var re *RenderError
	if err, ok := v.(error); ok && errors.As(err, &re) {
		return re
	}
	return &RenderError{
		Phase:          phase,
		Component:      inst.Name(),
		ComponentStack: inst.stack(),
		Err:            asError(v),
	}
}

// hookPanic panics with a coded hook misuse error.
func hookPanic(code, detail string) {
	panic(hxerrors.New(code).WithDetail(detail))
}
