package demo

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/hx/pkg/vtest"
)

func newServer(t *testing.T) (*vtest.Harness, *Server) {
	t.Helper()
	h := vtest.New(t)
	s, err := NewServer(New(Options{ThrottleInterval: time.Second}), h.Root, ServerOptions{
		Title:       "Demo",
		MetricsPath: "/metrics",
		Gatherer:    h.Registry,
	})
	require.NoError(t, err)
	h.Flush()
	return h, s
}

func get(t *testing.T, srv *httptest.Server, path string) (int, string) {
	t.Helper()
	resp, err := http.Get(srv.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestServerRoutes(t *testing.T) {
	_, s := newServer(t)
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	code, body := get(t, srv, "/healthz")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body)

	code, body = get(t, srv, "/")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "<title>Demo</title>")
	assert.Contains(t, body, `<div id="hx-app">`)
	assert.Contains(t, body, `data-hid="h1"`)
	assert.Contains(t, body, "ticks: 0")

	code, body = get(t, srv, "/metrics")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "hx_renders_total")
}

func TestServerDispatchClick(t *testing.T) {
	h, s := newServer(t)

	assert.False(t, s.Dispatch(Event{HID: "h9", Event: "click"}))
	assert.True(t, s.Dispatch(Event{HID: "h1", Event: "click"}))
	h.Flush()
	h.ExpectContains("clicks: 1")
	h.ExpectContains(`data-clicks="1"`)
	h.ExpectContains("renders: 2")
}

func TestServerWebSocketRoundTrip(t *testing.T) {
	h, s := newServer(t)
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteJSON(Event{HID: "h1", Event: "click"}))
	require.Eventually(t, h.Root.Pending, time.Second, 5*time.Millisecond)
	h.Flush()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))
	_, frame, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Contains(t, string(frame), "clicks: 1")
	assert.NotContains(t, string(frame), "<html")
}
