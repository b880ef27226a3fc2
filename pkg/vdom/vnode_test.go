package vdom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVKindString(t *testing.T) {
	tests := []struct {
		kind VKind
		want string
	}{
		{KindElement, "Element"},
		{KindText, "Text"},
		{KindFragment, "Fragment"},
		{KindComponent, "Component"},
		{KindRaw, "Raw"},
		{VKind(255), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.kind.String())
		})
	}
}

func TestSameValue(t *testing.T) {
	fn := func() {}
	m := map[string]int{"a": 1}
	kids := []*VNode{Text("a")}

	assert.True(t, SameValue(nil, nil))
	assert.False(t, SameValue(nil, 1))
	assert.True(t, SameValue(1, 1))
	assert.False(t, SameValue(1, int64(1)))
	assert.True(t, SameValue("x", "x"))
	assert.True(t, SameValue(fn, fn))
	assert.True(t, SameValue(m, m))
	assert.False(t, SameValue(m, map[string]int{"a": 1}))
	assert.True(t, SameValue(kids, append([]*VNode(nil), kids...)))
}

type boxed struct{ V any }

func TestSameValueWithUncomparableInterfaceField(t *testing.T) {
	a, b := boxed{V: []int{1}}, boxed{V: []int{1}}

	assert.NotPanics(t, func() {
		assert.False(t, SameValue(a, b))
		assert.False(t, SameValue(a, a))
		assert.False(t, SameValue([1]any{map[string]int{}}, [1]any{map[string]int{}}))
	})
	assert.True(t, SameValue(boxed{V: 1}, boxed{V: 1}))
	assert.False(t, ShallowEqual(Props{"k": a}, Props{"k": b}))
}

func TestShallowEqual(t *testing.T) {
	a := Props{"n": 1, "s": "x"}
	assert.True(t, ShallowEqual(a, Props{"n": 1, "s": "x"}))
	assert.False(t, ShallowEqual(a, Props{"n": 2, "s": "x"}))
	assert.False(t, ShallowEqual(a, Props{"n": 1}))
	assert.True(t, ShallowEqual(nil, Props{}))
}

func TestComponentName(t *testing.T) {
	assert.Equal(t, "Counter", ComponentName(Func("Counter", func(Props) *VNode { return nil })))
	assert.Equal(t, "vdom.ComponentFunc", ComponentName(ComponentFunc(func(Props) *VNode { return nil })))
	assert.Equal(t, "<nil>", ComponentName(nil))
}
