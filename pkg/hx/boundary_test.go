package hx

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/hx/pkg/host"
	"github.com/vango-dev/hx/pkg/vdom"
	"github.com/vango-dev/hx/pkg/vtest"
)

var bomb = vdom.Func("Bomb", func(vdom.Props) *vdom.VNode {
	panic(errors.New("boom"))
})

func TestErrorBoundaryRendersFallbackOncePerMount(t *testing.T) {
	fallbacks := 0
	var caught []error
	var infos []host.ErrorInfo
	safe := WithErrorBoundary(bomb, BoundaryOptions{
		Fallback: func(err error) *vdom.VNode {
			fallbacks++
			return vdom.H("p", "fallback: "+err.Error())
		},
		OnError: func(err error, info host.ErrorInfo) {
			caught = append(caught, err)
			infos = append(infos, info)
		},
	})

	h := vtest.New(t)
	h.Mount(vdom.Comp(safe, nil))
	h.ExpectHTML("<p>fallback: boom</p>")
	assert.Equal(t, 1, fallbacks)
	require.Len(t, caught, 1)
	assert.EqualError(t, caught[0], "boom")
	assert.Equal(t, []string{"ErrorBoundary(Bomb)", "Bomb"}, infos[0].ComponentStack)

	// A later independent mount starts clean and catches once more.
	h.Mount(nil)
	h.Mount(vdom.Comp(safe, nil))
	h.ExpectHTML("<p>fallback: boom</p>")
	assert.Equal(t, 2, fallbacks)
	assert.Len(t, caught, 2)
}

func TestErrorBoundaryPassesPropsAndChildren(t *testing.T) {
	greet := vdom.Func("Greet", func(p vdom.Props) *vdom.VNode {
		return vdom.H("div", "hi "+p["name"].(string), vdom.Fragment(p.Children()))
	})
	safe := WithErrorBoundary(greet, BoundaryOptions{})

	h := vtest.New(t)
	h.Mount(vdom.Comp(safe, vdom.Props{"name": "ann"}, vdom.H("i", "x")))
	h.ExpectHTML("<div>hi ann<i>x</i></div>")
}

func TestErrorBoundaryCatchesEffectErrors(t *testing.T) {
	failing := vdom.Func("Failing", func(vdom.Props) *vdom.VNode {
		host.UseEffect(func() host.Cleanup { panic("effect broke") }, []any{})
		return vdom.Text("ok")
	})
	var caught []error
	safe := WithErrorBoundary(failing, BoundaryOptions{
		Fallback: func(err error) *vdom.VNode { return vdom.Text("down") },
		OnError:  func(err error, info host.ErrorInfo) { caught = append(caught, err) },
	})

	h := vtest.New(t)
	h.Mount(vdom.Comp(safe, nil))
	h.ExpectHTML("down")
	require.Len(t, caught, 1)
	assert.EqualError(t, caught[0], "effect broke")
}

func TestErrorBoundaryOnErrorPanicIsLogged(t *testing.T) {
	var logs bytes.Buffer
	safe := WithErrorBoundary(bomb, BoundaryOptions{
		Fallback: func(error) *vdom.VNode { return vdom.Text("fallback") },
		OnError:  func(error, host.ErrorInfo) { panic("reporter down") },
	})

	h := vtest.New(t, host.WithLogger(slog.New(slog.NewTextHandler(&logs, nil))))
	h.Mount(vdom.Comp(safe, nil))
	h.ExpectHTML("fallback")
	assert.Contains(t, logs.String(), "OnError panicked")
	assert.Contains(t, logs.String(), "reporter down")
}

func TestErrorBoundaryDefaultOnErrorLogs(t *testing.T) {
	var logs bytes.Buffer
	safe := WithErrorBoundary(bomb, BoundaryOptions{})

	h := vtest.New(t, host.WithLogger(slog.New(slog.NewTextHandler(&logs, nil))))
	h.Mount(vdom.Comp(safe, nil))
	h.ExpectHTML("")
	assert.Contains(t, logs.String(), "level=ERROR")
	assert.Contains(t, logs.String(), "boom")
}

func TestErrorBoundaryFallbackErrorsGoUp(t *testing.T) {
	inner := WithErrorBoundary(bomb, BoundaryOptions{
		Fallback: func(error) *vdom.VNode { panic(errors.New("fallback broke")) },
	})
	var outerCaught []error
	outer := WithErrorBoundary(inner, BoundaryOptions{
		Fallback: func(err error) *vdom.VNode { return vdom.Text("outer: " + err.Error()) },
		OnError:  func(err error, _ host.ErrorInfo) { outerCaught = append(outerCaught, err) },
	})

	h := vtest.New(t)
	h.Mount(vdom.Comp(outer, nil))
	h.ExpectHTML("outer: fallback broke")
	require.Len(t, outerCaught, 1)
}

func TestUncaughtErrorReachesFlush(t *testing.T) {
	h := vtest.New(t)
	require.NoError(t, h.Root.Render(vdom.Comp(bomb, nil)))

	err := h.FlushErr()
	var re *host.RenderError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, "Bomb", re.Component)
	assert.EqualError(t, re.Err, "boom")
}
