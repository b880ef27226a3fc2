package demo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/hx/pkg/vtest"
)

func mount(t *testing.T, opts Options) (*vtest.Harness, *App) {
	t.Helper()
	if opts.ThrottleInterval == 0 {
		opts.ThrottleInterval = 100 * time.Millisecond
	}
	h := vtest.New(t)
	app := New(opts)
	h.Mount(app.Node())
	return h, app
}

func TestAppInitialRender(t *testing.T) {
	h, _ := mount(t, Options{Title: "Demo"})

	html := h.HTML()
	assert.Contains(t, html, "<h1>Demo</h1>")
	assert.Contains(t, html, "ticks: 0")
	assert.Contains(t, html, "clicks: 0")
	assert.Contains(t, html, `<ul class="board"></ul>`)
	assert.Contains(t, html, "0 ticks, 0 on board")
	assert.Contains(t, html, "widget ok at 0")
}

func TestAppTickThrottlesBoard(t *testing.T) {
	h, app := mount(t, Options{})

	app.Tick(h.Clock.Now())
	h.Flush()
	h.ExpectContains("ticks: 1")
	h.ExpectContains("1 ticks, 1 on board")
	assert.NotContains(t, h.HTML(), "<li>")

	h.Advance(100 * time.Millisecond)
	h.ExpectContains("<li>tick 1 at 00:00:00.000</li>")
}

func TestAppBoardKeepsNewestEntries(t *testing.T) {
	h, app := mount(t, Options{})

	for i := 0; i < BoardSize+2; i++ {
		app.Tick(h.Clock.Now())
	}
	assert.Len(t, app.Board.Deref(), BoardSize)
	assert.Contains(t, app.Board.Deref()[0], "tick 7")

	h.Advance(100 * time.Millisecond)
	h.ExpectContains("7 ticks, 5 on board")
}

func TestAppWidgetFallsBack(t *testing.T) {
	h, app := mount(t, Options{FailAt: 2})

	app.Tick(h.Clock.Now())
	h.Flush()
	h.ExpectContains("widget ok at 1")

	app.Tick(h.Clock.Now())
	h.Flush()
	html := h.HTML()
	assert.Contains(t, html, "widget unavailable")
	assert.Contains(t, html, "widget cannot show tick 2")
	assert.Contains(t, html, "ticks: 2")

	app.Tick(h.Clock.Now())
	h.Flush()
	assert.Contains(t, h.HTML(), "widget unavailable")
	assert.Equal(t, float64(1), h.Gather("hx_render_errors_total"))
}

func TestAppStatsWaitForSchedule(t *testing.T) {
	var ready func()
	h, _ := mount(t, Options{Schedule: func(fn func()) { ready = fn }})

	assert.NotContains(t, h.HTML(), "on board")
	require.NotNil(t, ready)

	ready()
	h.Flush()
	h.ExpectContains("0 ticks, 0 on board")
}
