package props

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/hx/pkg/names"
	"github.com/vango-dev/hx/pkg/vdom"
)

func TestToHostConvertsNames(t *testing.T) {
	handler := func() {}
	got, err := ToHost(Map{
		"class":            "card",
		"for":              "email",
		"on-click":         handler,
		"tab-index":        2,
		"data-user-id":     "7",
		"aria-label":       "Close",
		names.K("hidden"):  true,
		names.K("ui/role"): "dialog",
		"style":            Map{"background-color": "red", names.K("margin-top"): "1px"},
	})
	require.NoError(t, err)

	assert.Equal(t, "card", got["className"])
	assert.Equal(t, "email", got["htmlFor"])
	assert.NotNil(t, got["onClick"])
	assert.Equal(t, 2, got["tabIndex"])
	assert.Equal(t, "7", got["data-user-id"])
	assert.Equal(t, "Close", got["aria-label"])
	assert.Equal(t, true, got["hidden"])
	assert.Equal(t, "dialog", got["role"])
	assert.Equal(t, map[string]any{"backgroundColor": "red", "marginTop": "1px"}, got["style"])
}

func TestToHostShapes(t *testing.T) {
	p, err := ToHost(nil)
	require.NoError(t, err)
	assert.Nil(t, p)

	host := vdom.Props{"className": "x"}
	p, err = ToHost(host)
	require.NoError(t, err)
	assert.Equal(t, host, p)

	p, err = ToHost(map[string]any{"class": "y"})
	require.NoError(t, err)
	assert.Equal(t, vdom.Props{"className": "y"}, p)

	for _, bad := range []any{42, "class", []string{"a"}} {
		_, err := ToHost(bad)
		var shape *PropsShapeError
		require.ErrorAs(t, err, &shape)
		assert.ErrorIs(t, err, ErrPropsShape)
		assert.False(t, shape.Key)
	}
}

func TestToHostRejectsBadKeys(t *testing.T) {
	_, err := ToHost(Map{3: "x"})
	var shape *PropsShapeError
	require.ErrorAs(t, err, &shape)
	assert.True(t, shape.Key)
	assert.Contains(t, err.Error(), "unsupported key 3")
}

func TestFromHostInvertsToHost(t *testing.T) {
	in := Map{
		"class":      "card",
		"on-click":   "h",
		"data-x":     1,
		"aria-label": "l",
		"style":      Map{"font-size": "2em"},
	}
	host, err := ToHost(in)
	require.NoError(t, err)

	assert.Equal(t, in, FromHost(host))
	assert.Nil(t, FromHost(nil))
}

func TestMapGet(t *testing.T) {
	m := Map{names.K("title"): "hello", "id": "x"}
	assert.Equal(t, "hello", m.Get("title"))
	assert.Equal(t, "x", m.String("id"))
	assert.Nil(t, m.Get("missing"))
	assert.Equal(t, "", m.String("missing"))
}

func TestNameConversions(t *testing.T) {
	assert.Equal(t, "onMouseEnter", HostName("on-mouse-enter"))
	assert.Equal(t, "onClick", HostName("onClick"))
	assert.Equal(t, "on-mouse-enter", SemanticName("onMouseEnter"))
	assert.Equal(t, "for", SemanticName("htmlFor"))
	assert.Equal(t, "data-fooBar", HostName("data-fooBar"))
}
