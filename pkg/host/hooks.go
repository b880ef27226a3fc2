package host

import (
	"fmt"
	"sync"

	"github.com/vango-dev/hx/pkg/vdom"
)

// Cleanup is returned by effects and runs before the effect re-runs and
// when the instance unmounts. A panic before a re-run is an effect error
// that boundaries can catch. A panic during unmount has no caller to
// return to: it is logged, counted under PhaseCleanup, and the remaining
// cleanups still run.
type Cleanup func()

// mustRendering returns the rendering instance or panics with E001.
func mustRendering(hook string) *Instance {
	inst := renderingInstance()
	if inst == nil {
		hookPanic("E001", hook+" called outside a component render")
	}
	return inst
}

// slotAs reads a hook slot, panicking with E003 on a type mismatch.
func slotAs[S any](inst *Instance, ht HookType) (S, bool) {
	var zero S
	v := inst.useHookSlot(ht)
	if v == nil {
		return zero, false
	}
	s, ok := v.(S)
	if !ok {
		hookPanic("E003", fmt.Sprintf("%s: %s slot holds %T", inst.Name(), ht, v))
	}
	return s, true
}

// stateSlot is the storage behind UseState.
type stateSlot[T any] struct {
	mu    sync.Mutex
	value T
	queue []func(T) T
	set   func(func(T) T)
}

// UseState returns the instance's state value and a stable setter. The
// setter takes a functional update; updates are queued and applied in
// order against the latest value when the instance next renders, so
// batched updates never see a stale snapshot. Calling the setter schedules
// a render; after unmount it is a no-op.
//
// Example:
//
//	count, setCount := host.UseState(0)
//	onClick := func() { setCount(func(n int) int { return n + 1 }) }
func UseState[T any](initial T) (T, func(update func(T) T)) {
	inst := mustRendering("UseState")

	slot, ok := slotAs[*stateSlot[T]](inst, HookState)
	if !ok {
		slot = &stateSlot[T]{value: initial}
		slot.set = func(update func(T) T) {
			if update == nil {
				return
			}
			if inst.disposed.Load() {
				inst.root.suppressStale(inst)
				return
			}
			slot.mu.Lock()
			slot.queue = append(slot.queue, update)
			slot.mu.Unlock()
			inst.root.scheduleRender(inst)
		}
		inst.setHookSlot(slot)
	}

	slot.mu.Lock()
	for _, update := range slot.queue {
		slot.value = update(slot.value)
	}
	slot.queue = nil
	value := slot.value
	slot.mu.Unlock()

	return value, slot.set
}

// UseRef returns a Ref whose identity is stable for the life of the
// instance. Writing to it does not schedule a render.
func UseRef[T any](initial T) *Ref[T] {
	inst := mustRendering("UseRef")

	ref, ok := slotAs[*Ref[T]](inst, HookRef)
	if !ok {
		ref = NewRef(initial)
		inst.setHookSlot(ref)
	}
	return ref
}

// effectSlot is the storage behind UseEffect.
type effectSlot struct {
	deps    []any
	fn      func() Cleanup
	cleanup Cleanup
	queued  bool
}

// UseEffect schedules fn to run after the render commits. It re-runs
// when any dependency differs from the previous render by shallow slot
// comparison; nil deps re-run after every render, empty deps run once per
// mount. The cleanup returned by the previous run executes right before
// the next run and on unmount.
func UseEffect(fn func() Cleanup, deps []any) {
	inst := mustRendering("UseEffect")

	slot, ok := slotAs[*effectSlot](inst, HookEffect)
	if !ok {
		slot = &effectSlot{}
		inst.setHookSlot(slot)
	} else if deps != nil && !DepsChanged(slot.deps, deps) {
		return
	}
	slot.deps = append([]any(nil), deps...)
	slot.fn = fn
	inst.queueEffect(slot)
}

// memoSlot is the storage behind UseMemo.
type memoSlot[T any] struct {
	deps  []any
	value T
}

// UseMemo returns compute's result, recomputing only when deps change.
// nil deps recompute on every render.
func UseMemo[T any](compute func() T, deps []any) T {
	inst := mustRendering("UseMemo")

	slot, ok := slotAs[*memoSlot[T]](inst, HookMemo)
	if !ok {
		slot = &memoSlot[T]{}
		inst.setHookSlot(slot)
	} else if deps != nil && !DepsChanged(slot.deps, deps) {
		return slot.value
	}
	slot.value = compute()
	slot.deps = append([]any(nil), deps...)
	return slot.value
}

// DepsChanged reports whether next differs from prev under the host's
// fixed-length shallow comparison.
func DepsChanged(prev, next []any) bool {
	if next == nil || len(prev) != len(next) {
		return true
	}
	for i := range next {
		if !vdom.SameValue(prev[i], next[i]) {
			return true
		}
	}
	return false
}

// CurrentRoot returns the root of the instance rendering or running
// effects on this goroutine, or nil.
func CurrentRoot() *Root {
	if inst := currentInstance(); inst != nil {
		return inst.root
	}
	return nil
}

// RequestFrame runs fn after the current root's next commit. It reports
// false when called outside a render or effect, where no frame source
// exists.
func RequestFrame(fn func()) bool {
	r := CurrentRoot()
	if r == nil {
		return false
	}
	r.RequestFrame(fn)
	return true
}
