package demo

import (
	"fmt"
	"time"

	"github.com/vango-dev/hx/pkg/cell"
	"github.com/vango-dev/hx/pkg/hx"
	"github.com/vango-dev/hx/pkg/names"
	"github.com/vango-dev/hx/pkg/props"
	"github.com/vango-dev/hx/pkg/vdom"
)

// BoardSize is how many ticks the board keeps.
const BoardSize = 5

// Options configures an App.
type Options struct {
	// Title is the heading text.
	Title string

	// ThrottleInterval is the board's throttle window.
	ThrottleInterval time.Duration

	// FailAt is the tick at which the widget starts failing. Zero never
	// fails.
	FailAt int

	// Schedule is the stats panel scheduler. Default: hx.NextFrame.
	Schedule hx.ScheduleFunc
}

// App owns the demo cells and the component tree that reads them.
type App struct {
	// Ticks is the clock cell.
	Ticks *cell.Atom[int]

	// Board holds the most recent ticks, newest first.
	Board *cell.Atom[[]string]

	opts Options
	root vdom.Component
}

// New builds the demo app.
func New(opts Options) *App {
	if opts.Title == "" {
		opts.Title = "hx demo"
	}
	a := &App{
		Ticks: cell.NewAtom(0),
		Board: cell.NewAtom[[]string](nil),
		opts:  opts,
	}
	a.root = a.build()
	return a
}

// Node returns the root element to mount.
func (a *App) Node() *vdom.VNode {
	return vdom.Comp(a.root, nil)
}

// Tick advances the clock cell and records the tick on the board.
func (a *App) Tick(now time.Time) {
	n := 0
	a.Ticks.Swap(func(t int) int {
		n = t + 1
		return n
	})
	entry := fmt.Sprintf("tick %d at %s", n, now.Format("15:04:05.000"))
	a.Board.Swap(func(b []string) []string {
		next := append([]string{entry}, b...)
		if len(next) > BoardSize {
			next = next[:BoardSize]
		}
		return next
	})
}

func (a *App) build() vdom.Component {
	clock := vdom.Func("Clock", func(vdom.Props) *vdom.VNode {
		return vdom.H("p", vdom.Class("clock"), vdom.Textf("ticks: %d", hx.UseValue[int](a.Ticks)))
	})

	counter := hx.Fn("Counter", func(p props.Map) *vdom.VNode {
		clicks := hx.UseState(0)
		renders := hx.UseVar(0)
		renders.Swap(func(n int) int { return n + 1 })

		return hx.MustElement("section", props.Map{"class": "counter"},
			hx.MustElement("button", props.Map{
				"id":       p.String("id"),
				"on-click": func() { clicks.Swap(func(n int) int { return n + 1 }) },
			}, "+1"),
			hx.MustElement("span", props.Map{names.K("data-clicks"): clicks.Deref()},
				fmt.Sprintf("clicks: %d", clicks.Deref())),
			hx.MustElement("small", nil, fmt.Sprintf("renders: %d", renders.Deref())),
		)
	})

	board := hx.Throttle(hx.Memo(hx.Fn("Board", func(p props.Map) *vdom.VNode {
		entries, _ := p.Get("entries").([]string)
		items := vdom.Keyed(entries, func(e string) string { return e }, func(e string, _ int) *vdom.VNode {
			return vdom.H("li", e)
		})
		return vdom.H("ul", vdom.Class("board"), items)
	}), nil), a.opts.ThrottleInterval)

	stats := hx.Deferred(vdom.Func("Stats", func(vdom.Props) *vdom.VNode {
		ticks := hx.UseValue[int](a.Ticks)
		entries := hx.UseValue[[]string](a.Board)
		return vdom.H("aside", vdom.Class("stats"),
			vdom.Textf("%d ticks, %d on board", ticks, len(entries)))
	}), a.opts.Schedule)

	widget := hx.WithErrorBoundary(vdom.Func("Widget", func(vdom.Props) *vdom.VNode {
		n := hx.UseValue[int](a.Ticks)
		if a.opts.FailAt > 0 && n >= a.opts.FailAt {
			panic(fmt.Errorf("widget cannot show tick %d", n))
		}
		return vdom.H("div", vdom.Class("widget"), vdom.Textf("widget ok at %d", n))
	}), hx.BoundaryOptions{
		Fallback: func(err error) *vdom.VNode {
			return vdom.H("div", vdom.Class("widget-error"), "widget unavailable: "+err.Error())
		},
	})

	title := a.opts.Title
	return vdom.Func("App", func(vdom.Props) *vdom.VNode {
		entries := hx.UseValue[[]string](a.Board)
		return vdom.H("main",
			vdom.H("h1", title),
			vdom.Comp(clock, nil),
			vdom.Comp(counter, vdom.Props{"id": "increment"}),
			vdom.Comp(board, vdom.Props{"entries": entries}),
			vdom.Comp(stats, nil),
			vdom.Comp(widget, nil),
		)
	})
}
