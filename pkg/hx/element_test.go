package hx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/hx/pkg/host"
	"github.com/vango-dev/hx/pkg/names"
	"github.com/vango-dev/hx/pkg/props"
	"github.com/vango-dev/hx/pkg/vdom"
	"github.com/vango-dev/hx/pkg/vtest"
)

func TestElementWithSemanticProps(t *testing.T) {
	n, err := Element("label", props.Map{"class": "field", names.K("for"): "email", "key": "k1"}, "Email", 3, nil)
	require.NoError(t, err)

	assert.Equal(t, vdom.KindElement, n.Kind)
	assert.Equal(t, "k1", n.Key)
	assert.Equal(t, vdom.Props{"className": "field", "htmlFor": "email"}, n.Props)
	assert.Equal(t, `<label class="field" for="email">Email3</label>`, vtest.RenderToString(n))
}

func TestElementAcceptsHostAndNilProps(t *testing.T) {
	n, err := Element("br", nil)
	require.NoError(t, err)
	assert.Equal(t, "<br>", vtest.RenderToString(n))

	n, err = Element("p", vdom.Props{"className": "x"}, []*vdom.VNode{vdom.Text("a"), vdom.Text("b")})
	require.NoError(t, err)
	assert.Equal(t, `<p class="x">ab</p>`, vtest.RenderToString(n))
}

func TestElementRejectsBadProps(t *testing.T) {
	_, err := Element("div", []string{"class"})
	var shape *props.PropsShapeError
	require.ErrorAs(t, err, &shape)
	assert.ErrorIs(t, err, props.ErrPropsShape)

	assert.Panics(t, func() { MustElement("div", 42) })
}

func TestElementRejectsBadType(t *testing.T) {
	_, err := Element(42, nil)
	assert.ErrorIs(t, err, ErrElementType)
}

func TestFnReceivesSemanticProps(t *testing.T) {
	var got props.Map
	badge := Fn("Badge", func(p props.Map) *vdom.VNode {
		got = p
		return vdom.H("span", p.String("class"), vdom.Fragment(p.Get("children")))
	})

	h := vtest.New(t)
	h.Mount(MustElement(badge, props.Map{"class": "new", "on-click": "noop"}, "!"))

	h.ExpectHTML("<span>new!</span>")
	assert.Equal(t, "noop", got["on-click"])
	assert.Equal(t, "Badge", vdom.ComponentName(badge))
}

func TestBadPropsInsideRenderAreCaught(t *testing.T) {
	broken := vdom.Func("Broken", func(vdom.Props) *vdom.VNode {
		return MustElement("div", "not props")
	})
	var caught error
	safe := WithErrorBoundary(broken, BoundaryOptions{
		Fallback: func(err error) *vdom.VNode { return vdom.Text("bad props") },
		OnError:  func(err error, _ host.ErrorInfo) { caught = err },
	})

	h := vtest.New(t)
	h.Mount(vdom.Comp(safe, nil))
	h.ExpectHTML("bad props")
	assert.ErrorIs(t, caught, props.ErrPropsShape)
}
