package hx

import (
	"reflect"
	"sync"
	"time"

	"github.com/vango-dev/hx/pkg/host"
	"github.com/vango-dev/hx/pkg/vdom"
)

// Throttle returns c wrapped so that it re-renders with new props at most
// once per interval. The first render uses the incoming props and opens a
// window; props arriving while a window is open are held, and when the
// window elapses the most recent of them are applied and a new window
// opens. Intermediate props are dropped. Unmount cancels the pending
// window.
func Throttle(c vdom.Component, interval time.Duration) vdom.Component {
	name := "Throttle(" + vdom.ComponentName(c) + ")"
	return vdom.Func(name, func(p vdom.Props) *vdom.VNode {
		applied, setApplied := host.UseState(p)
		offer := UseVar[*throttler](nil)

		host.UseEffect(func() host.Cleanup {
			t := newThrottler(CurrentConfig().clock(), interval, applied, func(next vdom.Props) {
				setApplied(func(vdom.Props) vdom.Props { return next })
			})
			offer.Reset(t)
			return t.stop
		}, []any{})

		host.UseEffect(func() host.Cleanup {
			if t := offer.Deref(); t != nil {
				t.offer(p)
			}
			return nil
		}, nil)

		return vdom.Comp(c, applied)
	})
}

// throttler applies offered props at most once per interval, trailing
// edge.
type throttler struct {
	mu       sync.Mutex
	clock    host.Clock
	interval time.Duration
	apply    func(vdom.Props)

	applied    vdom.Props
	pending    vdom.Props
	hasPending bool
	timer      host.Timer
	stopped    bool
}

// newThrottler is replaced in tests to count constructions.
var newThrottler = func(clock host.Clock, interval time.Duration, applied vdom.Props, apply func(vdom.Props)) *throttler {
	t := &throttler{
		clock:    clock,
		interval: interval,
		apply:    apply,
		applied:  applied,
	}
	t.mu.Lock()
	t.open()
	t.mu.Unlock()
	return t
}

// open starts a window. Caller holds t.mu.
func (t *throttler) open() {
	t.timer = t.clock.AfterFunc(t.interval, t.elapse)
}

// offer records p as the latest props. Outside a window p is applied
// at once, unless it equals what is already applied.
func (t *throttler) offer(p vdom.Props) {
	t.mu.Lock()
	if t.stopped {
		t.mu.Unlock()
		return
	}
	if t.timer != nil {
		t.pending, t.hasPending = p, true
		t.mu.Unlock()
		return
	}
	if reflect.DeepEqual(p, t.applied) {
		t.mu.Unlock()
		return
	}
	t.applied = p
	t.open()
	t.mu.Unlock()
	t.apply(p)
}

// elapse closes the window, applying held props that differ from the
// applied ones and opening the next window if it did.
func (t *throttler) elapse() {
	t.mu.Lock()
	if t.stopped {
		t.mu.Unlock()
		return
	}
	t.timer = nil
	if !t.hasPending || reflect.DeepEqual(t.pending, t.applied) {
		t.pending, t.hasPending = nil, false
		t.mu.Unlock()
		return
	}
	next := t.pending
	t.pending, t.hasPending = nil, false
	t.applied = next
	t.open()
	t.mu.Unlock()
	t.apply(next)
}

// stop cancels the window; later offers and timer firings do nothing.
func (t *throttler) stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopped = true
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.pending, t.hasPending = nil, false
}
