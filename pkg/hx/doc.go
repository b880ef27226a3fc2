// Package hx lets components written as plain functions of props
// subscribe to reference cells (see package cell) and re-render exactly
// when those cells change. Rendering is delegated to package host.
//
// # Hooks
//
// UseState and UseVar expose the host's state and ref slots through one
// Ref interface. UseValue subscribes the rendering component to a cell:
//
//	var counter = cell.NewAtom(0)
//
//	var Counter = vdom.Func("Counter", func(p vdom.Props) *vdom.VNode {
//	    n := hx.UseValue[int](counter)
//	    return vdom.H("span", vdom.Textf("%d", n))
//	})
//
// Each mounted instance installs exactly one watch per cell when it
// commits and removes it when it unmounts or switches to another cell.
//
// # Wrappers
//
// Memo, WithErrorBoundary, Deferred and Throttle take a component and
// return a component, so they compose:
//
//	Board := hx.WithErrorBoundary(
//	    hx.Throttle(hx.Memo(BoardView, nil), 100*time.Millisecond),
//	    hx.BoundaryOptions{Fallback: func(err error) *vdom.VNode { return vdom.Text("board unavailable") }},
//	)
//
// Create wrapped components once, at package level or in a constructor.
// The host matches mounted instances by component identity, so wrapping
// inside a render function remounts the subtree on every render.
package hx
