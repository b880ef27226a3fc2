package hx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/hx/pkg/cell"
	"github.com/vango-dev/hx/pkg/host"
	"github.com/vango-dev/hx/pkg/vdom"
	"github.com/vango-dev/hx/pkg/vtest"
)

// reader renders the value of the cell passed in the "cell" prop.
var reader = vdom.Func("Reader", func(p vdom.Props) *vdom.VNode {
	c, _ := p["cell"].(cell.Cell[int])
	return vdom.H("b", vdom.Textf("%d", UseValue(c)))
})

func TestUseValueFollowsMutations(t *testing.T) {
	src := cell.NewAtom(1)
	h := vtest.New(t)
	h.Mount(vdom.Comp(reader, vdom.Props{"cell": src}))
	h.ExpectHTML("<b>1</b>")
	assert.Equal(t, 1, src.WatchCount())
	assert.Equal(t, float64(1), h.Gather("hx_bridge_subscriptions"))

	for i := 2; i <= 5; i++ {
		src.Reset(i)
	}
	h.Flush()
	h.ExpectHTML("<b>5</b>")

	src.Swap(func(n int) int { return n * 10 })
	h.Flush()
	h.ExpectHTML("<b>50</b>")
}

func TestUseValueUnmountRemovesWatch(t *testing.T) {
	src := cell.NewAtom(0)
	h := vtest.New(t)
	h.Mount(vdom.Comp(reader, vdom.Props{"cell": src}))
	require.Equal(t, 1, src.WatchCount())

	h.Unmount()
	assert.Equal(t, 0, src.WatchCount())
	assert.Equal(t, float64(0), h.Gather("hx_bridge_subscriptions"))

	src.Reset(9)
	assert.False(t, h.Root.Pending())
}

func TestUseValueSwitchingCellsKeepsOneWatch(t *testing.T) {
	a, b := cell.NewAtom(1), cell.NewAtom(2)

	var counts [][2]int
	h := vtest.New(t)
	h.Root.OnCommit(func(*vdom.VNode) {
		counts = append(counts, [2]int{a.WatchCount(), b.WatchCount()})
	})

	h.Mount(vdom.Comp(reader, vdom.Props{"cell": a}))
	h.Mount(vdom.Comp(reader, vdom.Props{"cell": b}))
	h.ExpectHTML("<b>2</b>")
	h.Mount(vdom.Comp(reader, vdom.Props{"cell": a}))
	h.ExpectHTML("<b>1</b>")

	assert.Equal(t, [][2]int{{1, 0}, {0, 1}, {1, 0}}, counts)

	// The old cell no longer drives renders.
	b.Reset(20)
	assert.False(t, h.Root.Pending())
}

func TestUseValueCatchesChangeBeforeCommit(t *testing.T) {
	src := cell.NewAtom(1)
	mutator := vdom.Func("Mutator", func(vdom.Props) *vdom.VNode {
		host.UseEffect(func() host.Cleanup {
			src.Reset(2)
			return nil
		}, []any{})
		return nil
	})
	var seen []int
	parent := vdom.Func("Parent", func(vdom.Props) *vdom.VNode {
		v := UseValue[int](src)
		seen = append(seen, v)
		return vdom.Fragment(vdom.Textf("%d", v), vdom.Comp(mutator, nil))
	})

	h := vtest.New(t)
	h.Mount(vdom.Comp(parent, nil))

	// The child's effect runs before the parent subscribes.
	assert.Equal(t, []int{1, 2}, seen)
	h.ExpectHTML("2")
}

func TestUseValueIndependentInstances(t *testing.T) {
	src := cell.NewAtom(3)
	h := vtest.New(t)
	h.Mount(vdom.H("div",
		vdom.Comp(reader, vdom.Props{"cell": src}),
		vdom.Comp(reader, vdom.Props{"cell": src}),
	))
	assert.Equal(t, 2, src.WatchCount())

	src.Reset(4)
	h.Flush()
	h.ExpectHTML("<div><b>4</b><b>4</b></div>")
}

func TestUseValueNilCell(t *testing.T) {
	h := vtest.New(t)
	h.Mount(vdom.Comp(reader, nil))
	h.ExpectHTML("<b>0</b>")
	assert.Equal(t, float64(0), h.Gather("hx_bridge_subscriptions"))
}
