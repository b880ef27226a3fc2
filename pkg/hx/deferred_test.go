package hx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/hx/pkg/host"
	"github.com/vango-dev/hx/pkg/vdom"
	"github.com/vango-dev/hx/pkg/vtest"
)

func TestDeferredWaitsForSchedule(t *testing.T) {
	renders := 0
	heavy := vdom.Func("Heavy", func(p vdom.Props) *vdom.VNode {
		renders++
		return vdom.H("section", p["title"].(string))
	})
	var ready []func()
	lazy := Deferred(heavy, func(fn func()) { ready = append(ready, fn) })

	h := vtest.New(t)
	h.Mount(vdom.Comp(lazy, vdom.Props{"title": "first"}))
	h.ExpectHTML("")
	require.Len(t, ready, 1)
	assert.Equal(t, 0, renders)

	// Props given before ready are the ones rendered.
	h.Mount(vdom.Comp(lazy, vdom.Props{"title": "latest"}))
	assert.Len(t, ready, 1, "schedule runs once per mount")

	ready[0]()
	ready[0]()
	h.Flush()
	h.ExpectHTML("<section>latest</section>")
	assert.Equal(t, 1, renders)
	assert.Equal(t, "Deferred(Heavy)", vdom.ComponentName(lazy))
}

func TestDeferredReadyAfterUnmountIsNoop(t *testing.T) {
	renders := 0
	heavy := vdom.Func("Heavy", func(vdom.Props) *vdom.VNode {
		renders++
		return vdom.Text("heavy")
	})
	var ready func()
	lazy := Deferred(heavy, func(fn func()) { ready = fn })

	h := vtest.New(t)
	h.Mount(vdom.Comp(lazy, nil))
	h.Mount(nil)

	assert.NotPanics(t, ready)
	assert.False(t, h.Root.Pending())
	h.Flush()
	assert.Equal(t, 0, renders)
	assert.Equal(t, float64(1), h.Gather("hx_stale_updates_suppressed_total"))
}

func TestDeferredDefaultsToNextFrame(t *testing.T) {
	heavy := vdom.Func("Heavy", func(vdom.Props) *vdom.VNode { return vdom.Text("heavy") })
	lazy := Deferred(heavy, nil)

	h := vtest.New(t)
	var commits []string
	h.Root.OnCommit(func(tree *vdom.VNode) {
		commits = append(commits, vtest.RenderToString(tree))
	})
	h.Mount(vdom.Comp(lazy, nil))

	assert.Equal(t, []string{"", "heavy"}, commits)
}

func TestNextFrameFallsBackToTimer(t *testing.T) {
	prev := CurrentConfig()
	t.Cleanup(func() { SetConfig(prev) })

	clock := host.NewManualClock(vtest.Epoch)
	SetConfig(Config{Clock: clock, FrameInterval: 10 * time.Millisecond})

	ran := false
	NextFrame(func() { ran = true })
	clock.Advance(9 * time.Millisecond)
	assert.False(t, ran)
	clock.Advance(time.Millisecond)
	assert.True(t, ran)
}

func TestSetConfigFillsDefaults(t *testing.T) {
	prev := CurrentConfig()
	t.Cleanup(func() { SetConfig(prev) })

	SetConfig(Config{})
	c := CurrentConfig()
	assert.NotNil(t, c.Schedule)
	assert.Equal(t, DefaultFrameInterval, c.FrameInterval)
	assert.Nil(t, c.Clock)
	assert.NotNil(t, c.logger())
	assert.NotNil(t, c.clock())
}
