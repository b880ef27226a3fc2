package hx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/hx/pkg/vdom"
	"github.com/vango-dev/hx/pkg/vtest"
)

func TestUseStateSwapAppliesToLatestValue(t *testing.T) {
	var states []*State[int]
	comp := vdom.Func("Counter", func(vdom.Props) *vdom.VNode {
		s := UseState(0)
		states = append(states, s)
		return vdom.H("span", vdom.Textf("%d", s.Deref()))
	})

	h := vtest.New(t)
	h.Mount(vdom.Comp(comp, nil))
	s := states[0]

	s.Swap(func(n int) int { return n + 1 })
	s.Swap(func(n int) int { return n + 1 })
	assert.Equal(t, 0, s.Deref(), "Deref reports the rendered value until the owner renders")

	h.Flush()
	h.ExpectHTML("<span>2</span>")
	assert.Equal(t, 2, s.Deref())

	s.Reset(7)
	h.Flush()
	h.ExpectHTML("<span>7</span>")

	require.Len(t, states, 3)
	assert.Same(t, states[0], states[2])
}

func TestUseStateAfterUnmountIsDropped(t *testing.T) {
	var s *State[string]
	comp := vdom.Func("Name", func(vdom.Props) *vdom.VNode {
		s = UseState("a")
		return vdom.Text(s.Deref())
	})

	h := vtest.New(t)
	h.Mount(vdom.Comp(comp, nil))
	h.Unmount()

	s.Reset("b")
	assert.False(t, h.Root.Pending())
	assert.Equal(t, "a", s.Deref())
	assert.Equal(t, float64(1), h.Gather("hx_stale_updates_suppressed_total"))
}

func TestUseVarIsStableAndSilent(t *testing.T) {
	renders := 0
	var vars []*Var[int]
	var bump *State[int]
	comp := vdom.Func("Vars", func(vdom.Props) *vdom.VNode {
		renders++
		v := UseVar(10)
		bump = UseState(0)
		vars = append(vars, v)
		return vdom.Textf("%d", v.Deref())
	})

	h := vtest.New(t)
	h.Mount(vdom.Comp(comp, nil))

	vars[0].Reset(11)
	vars[0].Swap(func(n int) int { return n * 2 })
	h.Flush()
	assert.Equal(t, 1, renders)
	h.ExpectHTML("10")

	bump.Swap(func(n int) int { return n + 1 })
	h.Flush()
	assert.Equal(t, 2, renders)
	h.ExpectHTML("22")
	assert.Same(t, vars[0], vars[1])
}

func TestRefImplementations(t *testing.T) {
	var v Ref[int] = &Var[int]{}
	v.Reset(3)
	v.Swap(func(n int) int { return n + 1 })
	assert.Equal(t, 4, v.Deref())
}
