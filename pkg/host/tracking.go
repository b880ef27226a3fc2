package host

import (
	"runtime"
	"sync"
)

// trackingContext holds the render state for a goroutine.
type trackingContext struct {
	// current is the instance whose render or effect is running.
	current *Instance

	// inRender is true while a render function executes. Hooks are only
	// valid then; effects see current but not inRender.
	inRender bool
}

// trackingContexts stores per-goroutine tracking contexts.
var trackingContexts sync.Map

// getGoroutineID returns a unique identifier for the current goroutine,
// parsed from the runtime stack header ("goroutine <id> ").
func getGoroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)

	var id uint64
	for i := 10; i < n; i++ { // Skip "goroutine "
		if buf[i] == ' ' {
			break
		}
		id = id*10 + uint64(buf[i]-'0')
	}
	return id
}

// getTrackingContext returns the tracking context for the current goroutine,
// creating it on first use.
func getTrackingContext() *trackingContext {
	gid := getGoroutineID()
	if ctx, ok := trackingContexts.Load(gid); ok {
		return ctx.(*trackingContext)
	}
	ctx := &trackingContext{}
	trackingContexts.Store(gid, ctx)
	return ctx
}

// withInstance runs fn with inst as the current instance.
func withInstance(inst *Instance, inRender bool, fn func()) {
	ctx := getTrackingContext()
	oldInst, oldRender := ctx.current, ctx.inRender
	ctx.current, ctx.inRender = inst, inRender
	defer func() {
		ctx.current, ctx.inRender = oldInst, oldRender
		if ctx.current == nil {
			trackingContexts.Delete(getGoroutineID())
		}
	}()
	fn()
}

// currentInstance returns the instance rendering or committing on this
// goroutine, or nil.
func currentInstance() *Instance {
	if ctx, ok := trackingContexts.Load(getGoroutineID()); ok {
		return ctx.(*trackingContext).current
	}
	return nil
}

// renderingInstance returns the instance whose render function is running
// on this goroutine, or nil.
func renderingInstance() *Instance {
	if ctx, ok := trackingContexts.Load(getGoroutineID()); ok {
		tc := ctx.(*trackingContext)
		if tc.inRender {
			return tc.current
		}
	}
	return nil
}
