package vtest

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/hx/pkg/host"
	"github.com/vango-dev/hx/pkg/render"
	"github.com/vango-dev/hx/pkg/vdom"
)

// Epoch is the start time of every Harness clock.
var Epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// Harness is a root under test with a manual clock and its own metrics
// registry. The root is unmounted when the test finishes.
type Harness struct {
	T        testing.TB
	Root     *host.Root
	Clock    *host.ManualClock
	Registry *prometheus.Registry
	Metrics  *host.Metrics
}

// New creates a Harness. opts are applied after the harness defaults, so
// they may replace the clock or logger.
func New(t testing.TB, opts ...host.Option) *Harness {
	t.Helper()

	clock := host.NewManualClock(Epoch)
	reg := prometheus.NewRegistry()
	metrics := host.NewMetrics(host.WithRegistry(reg))
	base := []host.Option{
		host.WithClock(clock),
		host.WithMetrics(metrics),
		host.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	}

	h := &Harness{
		T:        t,
		Root:     host.NewRoot(append(base, opts...)...),
		Clock:    clock,
		Registry: reg,
		Metrics:  metrics,
	}
	t.Cleanup(h.Root.Unmount)
	return h
}

// Mount renders node into the root and flushes.
func (h *Harness) Mount(node *vdom.VNode) {
	h.T.Helper()
	require.NoError(h.T, h.Root.Render(node))
	h.Flush()
}

// Flush flushes the root, failing the test on error.
func (h *Harness) Flush() {
	h.T.Helper()
	require.NoError(h.T, h.Root.Flush(context.Background()))
}

// FlushErr flushes the root and returns its error.
func (h *Harness) FlushErr() error {
	return h.Root.Flush(context.Background())
}

// Advance moves the clock forward, firing due timers, then flushes.
func (h *Harness) Advance(d time.Duration) {
	h.T.Helper()
	h.Clock.Advance(d)
	h.Flush()
}

// Unmount unmounts the root.
func (h *Harness) Unmount() {
	h.Root.Unmount()
}

// HTML renders the committed tree.
func (h *Harness) HTML() string {
	h.T.Helper()
	html, err := render.NewRenderer(render.RendererConfig{}).RenderToString(h.Root.Tree())
	require.NoError(h.T, err)
	return html
}

// ExpectHTML asserts the committed tree renders exactly to want.
func (h *Harness) ExpectHTML(want string) {
	h.T.Helper()
	require.Equal(h.T, want, h.HTML())
}

// ExpectContains asserts the committed tree's HTML contains s.
func (h *Harness) ExpectContains(s string) {
	h.T.Helper()
	ExpectContains(h.T, h.Root.Tree(), s)
}

// Gather returns the summed value of every sample of the named metric,
// or 0 if it has not been recorded.
func (h *Harness) Gather(name string) float64 {
	h.T.Helper()
	families, err := h.Registry.Gather()
	require.NoError(h.T, err)

	var sum float64
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			switch {
			case m.GetCounter() != nil:
				sum += m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				sum += m.GetGauge().GetValue()
			}
		}
	}
	return sum
}

// RenderToString renders a committed tree and returns the HTML string, or
// "" if it cannot be rendered.
//
// Example:
//
//	html := vtest.RenderToString(root.Tree())
func RenderToString(node *vdom.VNode) string {
	r := render.NewRenderer(render.RendererConfig{})
	html, err := r.RenderToString(node)
	if err != nil {
		return ""
	}
	return html
}

// ExpectContains asserts that rendered output contains expected substring.
//
// Example:
//
//	vtest.ExpectContains(t, root.Tree(), "Welcome Admin")
func ExpectContains(t testing.TB, node *vdom.VNode, expected string) {
	t.Helper()
	html := RenderToString(node)
	if !strings.Contains(html, expected) {
		t.Errorf("expected rendered output to contain %q, got:\n%s", expected, truncate(html, 500))
	}
}

// ExpectNotContains asserts that rendered output does not contain substring.
//
// Example:
//
//	vtest.ExpectNotContains(t, root.Tree(), "Error")
func ExpectNotContains(t testing.TB, node *vdom.VNode, unexpected string) {
	t.Helper()
	html := RenderToString(node)
	if strings.Contains(html, unexpected) {
		t.Errorf("expected rendered output to NOT contain %q, got:\n%s", unexpected, truncate(html, 500))
	}
}

// ExpectElement asserts that rendered output contains a specific tag.
func ExpectElement(t testing.TB, node *vdom.VNode, tag string) {
	t.Helper()
	html := RenderToString(node)
	if !strings.Contains(html, "<"+tag) {
		t.Errorf("expected rendered output to contain <%s> element, got:\n%s", tag, truncate(html, 500))
	}
}

// ExpectAttribute asserts that rendered output contains an attribute value.
//
// Example:
//
//	vtest.ExpectAttribute(t, root.Tree(), "class", "btn-primary")
func ExpectAttribute(t testing.TB, node *vdom.VNode, attr, value string) {
	t.Helper()
	html := RenderToString(node)
	needle := attr + `="` + value + `"`
	if !strings.Contains(html, needle) {
		t.Errorf("expected attribute %s=%q not found, got:\n%s", attr, value, truncate(html, 500))
	}
}

// truncate truncates a string to max length with ellipsis.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
