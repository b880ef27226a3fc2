package host

import "github.com/vango-dev/hx/pkg/vdom"

// Boundary is the capability set of a class component that takes part in
// error capture. The host creates one Boundary per mount.
//
// When a render or effect error propagates out of the subtree below a
// mounted boundary, the host calls DeriveStateFromError during the render
// pass, re-renders the boundary, and calls ComponentDidCatch once the
// result commits. A boundary captures at most one error per mount; errors
// raised while it renders its own output propagate to the next boundary up.
type Boundary interface {
	DeriveStateFromError(err error)
	ComponentDidCatch(err error, info ErrorInfo)
	Render(props vdom.Props) *vdom.VNode
}

// classComponent is a component type whose instances carry a Boundary.
type classComponent struct {
	name  string
	newFn func() Boundary
}

// Class returns a component type whose mounts each get a fresh Boundary
// from newFn. The returned value has pointer identity: create it once and
// reuse it so that re-renders keep the mounted instance.
func Class(name string, newFn func() Boundary) vdom.Component {
	return &classComponent{name: name, newFn: newFn}
}

// Render renders a throwaway instance. The host never calls this; it
// renders the per-mount Boundary instead.
func (c *classComponent) Render(props vdom.Props) *vdom.VNode {
	return c.newFn().Render(props)
}

// Name implements vdom.Named.
func (c *classComponent) Name() string {
	return c.name
}
