package host

import (
	"fmt"
	"sync/atomic"

	"github.com/vango-dev/hx/pkg/vdom"
)

// HookType identifies the type of hook call for order validation.
type HookType uint8

const (
	HookState HookType = iota + 1
	HookRef
	HookEffect
	HookMemo
)

// String returns a human-readable name for the hook type.
func (h HookType) String() string {
	switch h {
	case HookState:
		return "State"
	case HookRef:
		return "Ref"
	case HookEffect:
		return "Effect"
	case HookMemo:
		return "Memo"
	default:
		return "Unknown"
	}
}

// Instance is a mounted component. It owns the hook slots, effects and
// child instances of one position in the tree. Disposing an instance
// disposes its children first, then runs its effect cleanups.
type Instance struct {
	id     uint64
	root   *Root
	parent *Instance
	comp   vdom.Component
	key    string
	props  vdom.Props
	depth  int

	// children are the mounted child instances, in the order their
	// component nodes appear in output.
	children []*Instance

	// output is the tree returned by the last successful render.
	output *vdom.VNode

	// boundary is the per-instance state of a class component.
	boundary Boundary

	// caught is set once a boundary has captured an error. A boundary
	// catches at most one error per mount.
	caught bool

	// Hook slot storage for stable identity across renders.
	hookSlots []any
	hookTypes []HookType
	slotIdx   int
	rendered  bool

	// pendingEffects run after the next commit, in call order.
	pendingEffects []*effectSlot

	dirty    atomic.Bool
	disposed atomic.Bool
}

// ID returns the unique identifier for this instance.
func (inst *Instance) ID() uint64 {
	return inst.id
}

// Name returns the display name of the instance's component.
func (inst *Instance) Name() string {
	return vdom.ComponentName(inst.comp)
}

// Root returns the root the instance is mounted in.
func (inst *Instance) Root() *Root {
	return inst.root
}

// IsDisposed returns true once the instance has been unmounted.
func (inst *Instance) IsDisposed() bool {
	return inst.disposed.Load()
}

// stack returns component names from the outermost mounted component down
// to inst.
func (inst *Instance) stack() []string {
	var names []string
	for i := inst; i != nil && i.parent != nil; i = i.parent {
		names = append(names, i.Name())
	}
	for l, r := 0, len(names)-1; l < r; l, r = l+1, r-1 {
		names[l], names[r] = names[r], names[l]
	}
	return names
}

// beginRender resets the hook slot index. An instance whose first render
// never completed starts over with fresh slots.
func (inst *Instance) beginRender() {
	inst.slotIdx = 0
	if !inst.rendered {
		inst.hookSlots = inst.hookSlots[:0]
		inst.hookTypes = inst.hookTypes[:0]
		inst.pendingEffects = nil
	}
}

// endRender validates that all expected hooks were called.
func (inst *Instance) endRender() {
	if !inst.rendered {
		inst.rendered = true
		return
	}
	if inst.slotIdx < len(inst.hookTypes) {
		hookPanic("E002", fmt.Sprintf("%s: expected %d hooks, got %d",
			inst.Name(), len(inst.hookTypes), inst.slotIdx))
	}
}

// useHookSlot returns the stored value for the current hook slot, or nil
// on first render. It validates the hook kind against the first render.
func (inst *Instance) useHookSlot(ht HookType) any {
	idx := inst.slotIdx
	inst.slotIdx++

	if !inst.rendered {
		inst.hookTypes = append(inst.hookTypes, ht)
		return nil
	}
	if idx >= len(inst.hookTypes) {
		hookPanic("E002", fmt.Sprintf("%s: extra %s hook at index %d", inst.Name(), ht, idx))
	}
	if expected := inst.hookTypes[idx]; expected != ht {
		hookPanic("E002", fmt.Sprintf("%s: hook %d was %s, now %s", inst.Name(), idx, expected, ht))
	}
	return inst.hookSlots[idx]
}

// setHookSlot stores a value in the slot just claimed by useHookSlot.
func (inst *Instance) setHookSlot(value any) {
	inst.hookSlots = append(inst.hookSlots, value)
}

// queueEffect schedules e to run after the next commit.
func (inst *Instance) queueEffect(e *effectSlot) {
	if e.queued {
		return
	}
	e.queued = true
	inst.pendingEffects = append(inst.pendingEffects, e)
}

// dispose unmounts the instance: children first (last created first), then
// the instance's own effect cleanups in call order.
func (inst *Instance) dispose() {
	if inst.disposed.Swap(true) {
		return
	}

	for i := len(inst.children) - 1; i >= 0; i-- {
		inst.children[i].dispose()
	}
	inst.children = nil

	for _, slot := range inst.hookSlots {
		e, ok := slot.(*effectSlot)
		if !ok || e.cleanup == nil {
			continue
		}
		cleanup := e.cleanup
		e.cleanup = nil
		inst.root.runCleanup(inst, cleanup)
	}
	inst.pendingEffects = nil

	if inst.parent != nil {
		inst.root.metrics.mountedDelta(-1)
	}
}
