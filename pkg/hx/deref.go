package hx

import (
	"github.com/google/uuid"

	"github.com/vango-dev/hx/pkg/cell"
	"github.com/vango-dev/hx/pkg/host"
)

// UseValue returns c's current value and re-renders the calling component
// whenever c changes.
//
// The watch is added when the render commits, under a key unique to this
// subscription, and removed on unmount or before subscribing to a
// different cell. A change landing between the render and the commit is
// caught when the watch is installed. A nil cell yields the zero value and
// subscribes to nothing.
func UseValue[T any](c cell.Cell[T]) T {
	_, setTick := host.UseState(0)

	var rendered T
	if c != nil {
		rendered = c.Deref()
	}

	host.UseEffect(func() host.Cleanup {
		if c == nil {
			return nil
		}
		bump := func() {
			setTick(func(n int) int { return n + 1 })
		}
		metrics := host.CurrentRoot().Metrics()

		key := "hx/" + uuid.NewString()
		c.AddWatch(key, func(string, T, T) { bump() })
		metrics.SubscriptionAdded()

		if !cell.DefaultEquals(rendered, c.Deref()) {
			bump()
		}
		return func() {
			c.RemoveWatch(key)
			metrics.SubscriptionRemoved()
		}
	}, Deps(c))

	return rendered
}
