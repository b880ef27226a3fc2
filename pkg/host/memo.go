package host

import "github.com/vango-dev/hx/pkg/vdom"

// PropsComparer is implemented by component types that let the host skip
// re-rendering a mounted instance whose parent re-rendered with equal
// props. An instance that scheduled its own update always re-renders.
type PropsComparer interface {
	PropsEqual(prev, next vdom.Props) bool
}

// memoComponent skips renders when equal reports unchanged props.
type memoComponent struct {
	inner vdom.Component
	equal func(prev, next vdom.Props) bool
}

// Memo wraps c so that re-renders driven by the parent are skipped while
// equal(prev, next) holds. A nil equal uses vdom.ShallowEqual.
func Memo(c vdom.Component, equal func(prev, next vdom.Props) bool) vdom.Component {
	if equal == nil {
		equal = vdom.ShallowEqual
	}
	return &memoComponent{inner: c, equal: equal}
}

// Render implements vdom.Component.
func (m *memoComponent) Render(props vdom.Props) *vdom.VNode {
	return m.inner.Render(props)
}

// PropsEqual implements PropsComparer.
func (m *memoComponent) PropsEqual(prev, next vdom.Props) bool {
	return m.equal(prev, next)
}

// Name implements vdom.Named.
func (m *memoComponent) Name() string {
	return "Memo(" + vdom.ComponentName(m.inner) + ")"
}
