package host

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"sync"

	"github.com/vango-dev/hx/pkg/vdom"
	"go.opentelemetry.io/otel/trace"
)

// Root is a mounted component tree. Renders, commits, effects and cleanups
// run on the goroutine that calls Flush; state setters and frame requests
// may come from any goroutine and only enqueue work.
type Root struct {
	id        uint64
	clock     Clock
	logger    *slog.Logger
	metrics   *Metrics
	tracer    trace.Tracer
	maxPasses int

	// flushMu serializes Flush and Unmount.
	flushMu  sync.Mutex
	flushCtx context.Context
	top      *Instance
	tree     *vdom.VNode
	catches  []caughtError

	commitMu        sync.Mutex
	commitListeners map[uint64]func(*vdom.VNode)

	// queueMu guards the work queues filled from other goroutines.
	queueMu   sync.Mutex
	topNode   *vdom.VNode
	dirty     []*Instance
	frames    []func()
	unmounted bool
	wake      chan struct{}
}

// caughtError is a boundary capture waiting for ComponentDidCatch.
type caughtError struct {
	inst *Instance
	err  *RenderError
}

// topComponent renders whatever was last passed to Root.Render.
type topComponent struct {
	root *Root
}

func (t *topComponent) Render(vdom.Props) *vdom.VNode {
	t.root.queueMu.Lock()
	defer t.root.queueMu.Unlock()
	return t.root.topNode
}

func (t *topComponent) Name() string { return "Root" }

// NewRoot creates an empty root.
func NewRoot(opts ...Option) *Root {
	r := &Root{
		id:              nextID(),
		clock:           SystemClock(),
		logger:          slog.Default(),
		tracer:          defaultTracer(),
		maxPasses:       defaultMaxPasses,
		commitListeners: make(map[uint64]func(*vdom.VNode)),
		wake:            make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.top = &Instance{id: nextID(), root: r}
	r.top.comp = &topComponent{root: r}
	return r
}

// ID returns the root's unique identifier.
func (r *Root) ID() uint64 { return r.id }

// Clock returns the root's time source.
func (r *Root) Clock() Clock { return r.clock }

// Logger returns the root's logger.
func (r *Root) Logger() *slog.Logger { return r.logger }

// Metrics returns the root's collectors, or nil.
func (r *Root) Metrics() *Metrics { return r.metrics }

// Render replaces the root's element tree. The change is applied by the
// next Flush.
func (r *Root) Render(node *vdom.VNode) error {
	r.queueMu.Lock()
	if r.unmounted {
		r.queueMu.Unlock()
		return ErrUnmounted
	}
	r.topNode = node
	r.queueMu.Unlock()

	r.scheduleRender(r.top)
	return nil
}

// Updates returns a channel that receives a value whenever work is queued.
// Drivers select on it and call Flush.
func (r *Root) Updates() <-chan struct{} {
	return r.wake
}

// Pending reports whether renders or frame callbacks are queued.
func (r *Root) Pending() bool {
	r.queueMu.Lock()
	defer r.queueMu.Unlock()
	return len(r.dirty) > 0 || len(r.frames) > 0
}

// Tree returns the last committed tree with every component expanded to
// its rendered output.
func (r *Root) Tree() *vdom.VNode {
	r.flushMu.Lock()
	defer r.flushMu.Unlock()
	return r.tree
}

// OnCommit registers fn to run with the expanded tree after every commit.
// The returned function removes it.
func (r *Root) OnCommit(fn func(tree *vdom.VNode)) (remove func()) {
	id := nextID()
	r.commitMu.Lock()
	r.commitListeners[id] = fn
	r.commitMu.Unlock()
	return func() {
		r.commitMu.Lock()
		delete(r.commitListeners, id)
		r.commitMu.Unlock()
	}
}

// RequestFrame runs fn once the current flush has committed and has no
// renders left, or during the next Flush if none is running.
func (r *Root) RequestFrame(fn func()) {
	r.queueMu.Lock()
	r.frames = append(r.frames, fn)
	r.queueMu.Unlock()
	r.signal()
}

// Unmount disposes every instance. Pending updates become no-ops.
func (r *Root) Unmount() {
	r.flushMu.Lock()
	defer r.flushMu.Unlock()

	r.queueMu.Lock()
	r.unmounted = true
	r.topNode = nil
	r.dirty = nil
	r.frames = nil
	r.queueMu.Unlock()

	r.top.dispose()
	r.tree = nil
}

// scheduleRender marks inst dirty and queues it for the next pass.
func (r *Root) scheduleRender(inst *Instance) bool {
	if inst.disposed.Load() {
		r.suppressStale(inst)
		return false
	}
	if inst.dirty.CompareAndSwap(false, true) {
		r.queueMu.Lock()
		r.dirty = append(r.dirty, inst)
		r.queueMu.Unlock()
	}
	r.signal()
	return true
}

// suppressStale records an update aimed at an unmounted instance.
func (r *Root) suppressStale(inst *Instance) {
	r.metrics.incStale()
	r.logger.Debug("hx: update dropped for unmounted instance",
		"instance", inst.id,
		"component", inst.Name(),
	)
}

// SuppressStale records a callback that fired after its instance
// unmounted. Wrappers call it when they drop such callbacks themselves.
func (r *Root) SuppressStale(inst *Instance) {
	r.suppressStale(inst)
}

func (r *Root) signal() {
	select {
	case r.wake <- struct{}{}:
	default:
	}
}

func (r *Root) takeDirty() []*Instance {
	r.queueMu.Lock()
	defer r.queueMu.Unlock()
	dirty := r.dirty
	r.dirty = nil
	return dirty
}

func (r *Root) takeFrames() []func() {
	r.queueMu.Lock()
	defer r.queueMu.Unlock()
	frames := r.frames
	r.frames = nil
	return frames
}

// Flush renders every dirty instance, commits, runs effects and frame
// callbacks, and repeats until no work is left. It returns a *RenderError
// when an error escapes every boundary; the tree is unmounted in that
// case.
func (r *Root) Flush(ctx context.Context) error {
	r.flushMu.Lock()
	defer r.flushMu.Unlock()

	ctx, fs := r.startFlushSpan(ctx)
	r.flushCtx = ctx
	err := r.flush(ctx, fs)
	r.flushCtx = nil
	fs.end(err)
	return err
}

// Context returns the context of the Flush in progress, carrying the
// hx.flush span. Outside a flush it returns context.Background. Renders
// and effects reach it through CurrentRoot.
func (r *Root) Context() context.Context {
	if r.flushCtx != nil {
		return r.flushCtx
	}
	return context.Background()
}

func (r *Root) flush(ctx context.Context, fs *flushSpan) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		dirty := r.takeDirty()
		if len(dirty) == 0 {
			frames := r.takeFrames()
			if len(frames) == 0 {
				return nil
			}
			for _, fn := range frames {
				r.runFrame(fn)
			}
			continue
		}

		if fs.passes >= r.maxPasses {
			for _, inst := range dirty {
				inst.dirty.Store(false)
			}
			return fmt.Errorf("%w: %d passes", ErrUpdateLoop, fs.passes)
		}
		fs.passes++

		sort.SliceStable(dirty, func(i, j int) bool {
			return dirty[i].depth < dirty[j].depth
		})
		for _, inst := range dirty {
			if inst.disposed.Load() || !inst.dirty.Load() {
				continue
			}
			if err := r.renderInstance(inst, fs); err != nil {
				if err = r.catchAbove(inst, err, fs); err != nil {
					return r.fail(err)
				}
			}
		}
		if err := r.commit(fs); err != nil {
			return r.fail(err)
		}
	}
}

// fail unmounts the tree after an error no boundary caught.
func (r *Root) fail(err *RenderError) error {
	r.metrics.renderError(err.Phase, false)
	r.logger.Error("hx: uncaught component error",
		"component", err.Component,
		"phase", err.Phase,
		"error", err.Err,
	)
	r.top.disposeChildren()
	r.tree = nil
	r.catches = nil
	for _, inst := range r.takeDirty() {
		inst.dirty.Store(false)
	}
	return err
}

// disposeChildren unmounts everything below the synthetic top instance.
func (inst *Instance) disposeChildren() {
	for i := len(inst.children) - 1; i >= 0; i-- {
		inst.children[i].dispose()
	}
	inst.children = nil
	inst.output = nil
}

// renderInstance renders inst and reconciles its children. A boundary
// that catches an error from its subtree re-renders in place.
func (r *Root) renderInstance(inst *Instance, fs *flushSpan) *RenderError {
	inst.dirty.Store(false)
	fs.renders++
	r.metrics.incRenders()

	out, err := r.invokeRender(inst)
	if err != nil {
		return err
	}
	inst.output = out

	if err := r.reconcile(inst, out, fs); err != nil {
		if r.tryCatch(inst, err) {
			fs.caught++
			return r.renderInstance(inst, fs)
		}
		return err
	}
	return nil
}

// invokeRender calls the component's render function with inst tracked as
// the rendering instance.
func (r *Root) invokeRender(inst *Instance) (out *vdom.VNode, rerr *RenderError) {
	defer func() {
		if v := recover(); v != nil {
			rerr = newRenderError(inst, PhaseRender, v)
		}
	}()
	withInstance(inst, true, func() {
		inst.beginRender()
		if inst.boundary != nil {
			out = inst.boundary.Render(inst.props)
		} else {
			out = inst.comp.Render(inst.props)
		}
		inst.endRender()
	})
	return out, nil
}

// tryCatch lets inst capture err if it is a boundary that has not caught
// anything yet.
func (r *Root) tryCatch(inst *Instance, err *RenderError) bool {
	if inst == nil || inst.boundary == nil || inst.caught || inst.disposed.Load() {
		return false
	}
	inst.caught = true
	inst.boundary.DeriveStateFromError(err.Err)
	r.catches = append(r.catches, caughtError{inst: inst, err: err})
	r.metrics.renderError(err.Phase, true)
	r.logger.Warn("hx: component error caught by boundary",
		"boundary", inst.Name(),
		"component", err.Component,
		"phase", err.Phase,
		"error", err.Err,
	)
	return true
}

// catchAbove offers err, raised by re-rendering inst on its own, to the
// boundaries above inst. A boundary that catches it re-renders in place;
// if that render fails the search continues above the boundary.
func (r *Root) catchAbove(inst *Instance, err *RenderError, fs *flushSpan) *RenderError {
	for b := inst.parent; b != nil; b = b.parent {
		if !r.tryCatch(b, err) {
			continue
		}
		fs.caught++
		if err = r.renderInstance(b, fs); err == nil {
			return nil
		}
	}
	return err
}

// collectComponents appends the component nodes of n in depth-first
// order. Component nodes are not descended into; their children belong
// to the component's own output.
func collectComponents(n *vdom.VNode, dst []*vdom.VNode) []*vdom.VNode {
	if n == nil {
		return dst
	}
	if n.Kind == vdom.KindComponent {
		return append(dst, n)
	}
	for _, c := range n.Children {
		dst = collectComponents(c, dst)
	}
	return dst
}

// sameComponent reports whether a mounted instance of a can be reused for b.
func sameComponent(a, b vdom.Component) bool {
	return vdom.SameValue(a, b)
}

// reconcile matches the component nodes in out against inst's mounted
// children by key (or position among unkeyed nodes) and component
// identity, rendering matched and new children and unmounting the rest.
// On error inst keeps its previous children and anything mounted during
// the failed pass is disposed.
func (r *Root) reconcile(inst *Instance, out *vdom.VNode, fs *flushSpan) *RenderError {
	nodes := collectComponents(out, nil)

	old := make(map[string]*Instance, len(inst.children))
	for _, c := range inst.children {
		old[c.key] = c
	}

	next := make([]*Instance, 0, len(nodes))
	var created []*Instance
	abort := func() {
		for i := len(created) - 1; i >= 0; i-- {
			created[i].dispose()
		}
	}

	unkeyed := 0
	for _, node := range nodes {
		key := "k:" + node.Key
		if node.Key == "" {
			key = "i:" + strconv.Itoa(unkeyed)
			unkeyed++
		}

		child := old[key]
		if child != nil && sameComponent(child.comp, node.Comp) {
			delete(old, key)
			prev := child.props
			child.props = node.Props
			next = append(next, child)
			if !child.dirty.Load() && child.rendered && propsUnchanged(child.comp, prev, node.Props) {
				continue
			}
		} else {
			child = r.newInstance(inst, node, key)
			created = append(created, child)
			next = append(next, child)
		}
		if err := r.renderInstance(child, fs); err != nil {
			abort()
			return err
		}
	}

	kept := make(map[*Instance]bool, len(next))
	for _, c := range next {
		kept[c] = true
	}
	for i := len(inst.children) - 1; i >= 0; i-- {
		if c := inst.children[i]; !kept[c] {
			c.dispose()
		}
	}
	inst.children = next
	return nil
}

func propsUnchanged(c vdom.Component, prev, next vdom.Props) bool {
	pc, ok := c.(PropsComparer)
	return ok && pc.PropsEqual(prev, next)
}

// newInstance creates a child of parent for node.
func (r *Root) newInstance(parent *Instance, node *vdom.VNode, key string) *Instance {
	inst := &Instance{
		id:     nextID(),
		root:   r,
		parent: parent,
		comp:   node.Comp,
		key:    key,
		props:  node.Props,
		depth:  parent.depth + 1,
	}
	comp := node.Comp
	if m, ok := comp.(*memoComponent); ok {
		comp = m.inner
	}
	if cc, ok := comp.(*classComponent); ok {
		inst.boundary = cc.newFn()
	}
	r.metrics.mountedDelta(1)
	return inst
}

// commit publishes the expanded tree, delivers caught errors, then runs
// pending effects children first.
func (r *Root) commit(fs *flushSpan) *RenderError {
	r.tree = expand(r.top)
	r.metrics.incCommits()

	catches := r.catches
	r.catches = nil
	for _, c := range catches {
		r.didCatch(c)
	}

	if err := r.runEffects(r.top, fs); err != nil {
		return err
	}

	r.commitMu.Lock()
	listeners := make([]func(*vdom.VNode), 0, len(r.commitListeners))
	for _, fn := range r.commitListeners {
		listeners = append(listeners, fn)
	}
	r.commitMu.Unlock()
	for _, fn := range listeners {
		fn(r.tree)
	}
	return nil
}

func (r *Root) didCatch(c caughtError) {
	defer func() {
		if v := recover(); v != nil {
			r.logger.Error("hx: ComponentDidCatch panicked",
				"boundary", c.inst.Name(),
				"error", asError(v),
			)
		}
	}()
	if c.inst.disposed.Load() {
		return
	}
	c.inst.boundary.ComponentDidCatch(c.err.Err, c.err.Info())
}

// runEffects runs pending effects of inst's subtree in post-order. An
// effect error is offered to the enclosing boundaries; the first one that
// catches it re-renders on the next pass.
func (r *Root) runEffects(inst *Instance, fs *flushSpan) *RenderError {
	for _, c := range inst.children {
		if err := r.runEffects(c, fs); err != nil {
			return err
		}
	}
	if inst.disposed.Load() {
		return nil
	}
	pending := inst.pendingEffects
	inst.pendingEffects = nil
	for _, e := range pending {
		e.queued = false
		err := r.runEffect(inst, e)
		fs.effectRun++
		if err == nil {
			continue
		}
		caught := false
		for b := inst.parent; b != nil; b = b.parent {
			if r.tryCatch(b, err) {
				fs.caught++
				r.scheduleRender(b)
				caught = true
				break
			}
		}
		if !caught {
			return err
		}
	}
	return nil
}

// runEffect runs the previous cleanup, then the effect body.
func (r *Root) runEffect(inst *Instance, e *effectSlot) (rerr *RenderError) {
	r.metrics.incEffects()
	defer func() {
		if v := recover(); v != nil {
			rerr = newRenderError(inst, PhaseEffect, v)
		}
	}()
	withInstance(inst, false, func() {
		if e.cleanup != nil {
			cleanup := e.cleanup
			e.cleanup = nil
			cleanup()
		}
		e.cleanup = e.fn()
	})
	return nil
}

// runCleanup runs an unmount cleanup. Panics are logged and counted, not
// rethrown, so one failing cleanup cannot block the rest of the unmount.
func (r *Root) runCleanup(inst *Instance, cleanup Cleanup) {
	defer func() {
		if v := recover(); v != nil {
			r.metrics.renderError(PhaseCleanup, false)
			r.logger.Error("hx: effect cleanup panicked",
				"component", inst.Name(),
				"error", asError(v),
			)
		}
	}()
	withInstance(inst, false, cleanup)
}

func (r *Root) runFrame(fn func()) {
	defer func() {
		if v := recover(); v != nil {
			r.logger.Error("hx: frame callback panicked", "error", asError(v))
		}
	}()
	fn()
}

// expand returns inst's output with every component node replaced by the
// expanded output of the matching child instance.
func expand(inst *Instance) *vdom.VNode {
	i := 0
	var walk func(n *vdom.VNode) *vdom.VNode
	walk = func(n *vdom.VNode) *vdom.VNode {
		if n == nil {
			return nil
		}
		switch n.Kind {
		case vdom.KindComponent:
			if i >= len(inst.children) {
				return nil
			}
			child := inst.children[i]
			i++
			return expand(child)
		case vdom.KindElement, vdom.KindFragment:
			cp := *n
			cp.Children = make([]*vdom.VNode, 0, len(n.Children))
			for _, c := range n.Children {
				if e := walk(c); e != nil {
					cp.Children = append(cp.Children, e)
				}
			}
			return &cp
		default:
			return n
		}
	}
	return walk(inst.output)
}
