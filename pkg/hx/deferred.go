package hx

import (
	"sync"

	"github.com/vango-dev/hx/pkg/host"
	"github.com/vango-dev/hx/pkg/vdom"
)

// Deferred returns c wrapped so that it renders nothing on mount and
// renders c with the current props once schedule calls back. schedule is
// called exactly once per mount; a nil schedule uses Config.Schedule.
// Callbacks after unmount, and repeated callbacks, have no effect.
func Deferred(c vdom.Component, schedule ScheduleFunc) vdom.Component {
	name := "Deferred(" + vdom.ComponentName(c) + ")"
	return vdom.Func(name, func(p vdom.Props) *vdom.VNode {
		ready, setReady := host.UseState(false)

		host.UseEffect(func() host.Cleanup {
			sched := schedule
			if sched == nil {
				sched = CurrentConfig().Schedule
			}
			var once sync.Once
			sched(func() {
				once.Do(func() {
					setReady(func(bool) bool { return true })
				})
			})
			return nil
		}, []any{})

		if !ready {
			return nil
		}
		return vdom.Comp(c, p)
	})
}
