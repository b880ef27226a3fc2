// Package vtest provides testing helpers for hx components.
//
// # Quick Start
//
//	func TestCounter(t *testing.T) {
//	    h := vtest.New(t)
//	    h.Mount(vdom.Comp(Counter, nil))
//	    h.ExpectHTML(`<span>0</span>`)
//
//	    counter.Reset(3)
//	    h.Flush()
//	    h.ExpectContains("3")
//	}
//
// # Time
//
// A Harness drives its root with a host.ManualClock, so throttle windows
// and timer fallbacks only move when the test calls Advance:
//
//	h.Advance(100 * time.Millisecond) // fires due timers, then flushes
//
// # Metrics
//
// Each Harness registers its host metrics on a fresh Prometheus registry,
// so tests can read collectors without interfering with each other:
//
//	assert.Equal(t, 1.0, h.Gather("hx_bridge_subscriptions"))
//
// # Render Assertions
//
// The package-level helpers assert on any committed tree:
//
//	vtest.ExpectContains(t, root.Tree(), "Welcome")
//	vtest.ExpectNotContains(t, root.Tree(), "Error")
package vtest
