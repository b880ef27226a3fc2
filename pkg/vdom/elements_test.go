package vdom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHBuildsElement(t *testing.T) {
	node := H("div",
		Class("card"),
		Key(7),
		nil,
		"hello",
		42,
		H("span", "inner"),
		[]*VNode{Text("a"), nil, Text("b")},
	)

	assert.Equal(t, KindElement, node.Kind)
	assert.Equal(t, "div", node.Tag)
	assert.Equal(t, "card", node.Props["className"])
	assert.Equal(t, "7", node.Key)
	_, hasKey := node.Props["key"]
	assert.False(t, hasKey)
	require.Len(t, node.Children, 5)
	assert.Equal(t, "hello", node.Children[0].Text)
	assert.Equal(t, "42", node.Children[1].Text)
	assert.Equal(t, "span", node.Children[2].Tag)
}

func TestCompCarriesChildrenAndKey(t *testing.T) {
	c := Func("Box", func(p Props) *VNode { return Fragment(p.Children()) })
	props := Props{"key": "k1", "title": "t"}
	node := Comp(c, props, "one", Text("two"))

	assert.Equal(t, KindComponent, node.Kind)
	assert.Equal(t, "k1", node.Key)
	assert.Equal(t, "t", node.Props["title"])
	require.Len(t, node.Props.Children(), 2)
	// the caller's map is not mutated
	assert.Equal(t, "k1", props["key"])
}

func TestIsVoidElement(t *testing.T) {
	assert.True(t, IsVoidElement("br"))
	assert.False(t, IsVoidElement("div"))
}

func TestRange(t *testing.T) {
	nodes := Range([]string{"a", "", "c"}, func(s string, _ int) *VNode {
		if s == "" {
			return nil
		}
		return Text(s)
	})
	assert.Len(t, nodes, 2)
}

func TestKeyed(t *testing.T) {
	nodes := Keyed([]string{"x", "y"}, func(s string) string { return "id-" + s }, func(s string, i int) *VNode {
		if i == 1 {
			return H("li", Key("own"), s)
		}
		return H("li", s)
	})
	require.Len(t, nodes, 2)
	assert.Equal(t, "id-x", nodes[0].Key)
	assert.Equal(t, "own", nodes[1].Key)
}
