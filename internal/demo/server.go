package demo

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vango-dev/hx/pkg/host"
	"github.com/vango-dev/hx/pkg/render"
	"github.com/vango-dev/hx/pkg/vdom"
)

// bodyID is the id of the element live updates replace.
const bodyID = "hx-app"

// clientScript replaces the app body on every pushed frame and forwards
// clicks on elements carrying a data-hid.
const clientScript = `(function () {
  var root = document.getElementById("` + bodyID + `");
  var ws = new WebSocket((location.protocol === "https:" ? "wss://" : "ws://") + location.host + "/ws");
  ws.onmessage = function (e) { root.innerHTML = e.data; };
  root.addEventListener("click", function (e) {
    var el = e.target.closest("[data-hid]");
    if (el) ws.send(JSON.stringify({hid: el.getAttribute("data-hid"), event: "click"}));
  });
})();`

// ServerOptions configures a Server.
type ServerOptions struct {
	// Title is the page title.
	Title string

	// Pretty enables indented HTML.
	Pretty bool

	// MetricsPath serves Gatherer when both are set.
	MetricsPath string
	Gatherer    prometheus.Gatherer

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Event is a DOM event sent by the browser.
type Event struct {
	HID   string `json:"hid"`
	Event string `json:"event"`
}

// Server serves one App over HTTP. Every connected browser sees the same
// root; commits are pushed to all of them.
type Server struct {
	app      *App
	root     *host.Root
	opts     ServerOptions
	logger   *slog.Logger
	upgrader websocket.Upgrader

	mu       sync.Mutex
	renderer *render.Renderer
	tree     *vdom.VNode
	clients  map[*client]struct{}

	stopCommit func()
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// NewServer mounts app into root and returns a server for it.
func NewServer(app *App, root *host.Root, opts ServerOptions) (*Server, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		app:    app,
		root:   root,
		opts:   opts,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
		renderer: render.NewRenderer(render.RendererConfig{Pretty: opts.Pretty}),
		clients:  make(map[*client]struct{}),
	}
	s.stopCommit = root.OnCommit(s.commit)
	if err := root.Render(app.Node()); err != nil {
		s.stopCommit()
		return nil, err
	}
	return s, nil
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Get("/", s.servePage)
	r.Get("/ws", s.serveWebSocket)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if s.opts.MetricsPath != "" && s.opts.Gatherer != nil {
		r.Handle(s.opts.MetricsPath, promhttp.HandlerFor(s.opts.Gatherer, promhttp.HandlerOpts{}))
	}
	return r
}

// Run flushes the root whenever work is queued and ticks the app every
// interval on the root's clock, until ctx is done.
func (s *Server) Run(ctx context.Context, interval time.Duration) error {
	clock := s.root.Clock()
	var (
		tickMu sync.Mutex
		timer  host.Timer
		tick   func()
	)
	tick = func() {
		s.app.Tick(clock.Now())
		tickMu.Lock()
		defer tickMu.Unlock()
		if ctx.Err() == nil {
			timer = clock.AfterFunc(interval, tick)
		}
	}
	tickMu.Lock()
	timer = clock.AfterFunc(interval, tick)
	tickMu.Unlock()
	defer func() {
		tickMu.Lock()
		timer.Stop()
		tickMu.Unlock()
	}()

	if err := s.root.Flush(ctx); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-s.root.Updates():
			if err := s.root.Flush(ctx); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return err
			}
		}
	}
}

// Close unmounts the root and disconnects every client.
func (s *Server) Close() {
	s.stopCommit()
	s.root.Unmount()

	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.clients {
		close(c.send)
		delete(s.clients, c)
	}
}

// Dispatch runs the handler registered for ev in the last rendered frame.
// It reports whether one was found.
func (s *Server) Dispatch(ev Event) bool {
	s.mu.Lock()
	h, ok := s.renderer.Handler(ev.HID, ev.Event)
	s.mu.Unlock()
	if !ok {
		return false
	}
	switch fn := h.(type) {
	case func():
		fn()
	case func(Event):
		fn(ev)
	default:
		s.logger.Warn("demo: unsupported handler", "hid", ev.HID, "event", ev.Event)
		return false
	}
	return true
}

// commit renders the new tree and pushes it to every client.
func (s *Server) commit(tree *vdom.VNode) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tree = tree
	s.renderer.Reset()
	html, err := s.renderer.RenderToString(tree)
	if err != nil {
		s.logger.Error("demo: render failed", "error", err)
		return
	}
	frame := []byte(html)
	for c := range s.clients {
		select {
		case c.send <- frame:
		default:
			s.logger.Debug("demo: client is slow, dropping frame")
		}
	}
}

func (s *Server) servePage(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer

	s.mu.Lock()
	s.renderer.Reset()
	err := s.renderer.RenderPage(&buf, render.PageData{
		Body:    s.tree,
		Title:   s.opts.Title,
		BodyID:  bodyID,
		Scripts: []render.ScriptTag{{Inline: clientScript}},
	})
	s.mu.Unlock()

	if err != nil {
		s.logger.Error("demo: page render failed", "error", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) serveWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Debug("demo: websocket upgrade failed", "error", err)
		return
	}
	c := &client{conn: conn, send: make(chan []byte, 8)}

	s.mu.Lock()
	s.clients[c] = struct{}{}
	s.mu.Unlock()

	go s.writeLoop(c)
	s.readLoop(c)
}

func (s *Server) writeLoop(c *client) {
	defer c.conn.Close()
	for frame := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
			s.logger.Debug("demo: websocket write failed", "error", err)
			return
		}
	}
	_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

func (s *Server) readLoop(c *client) {
	defer s.drop(c)
	for {
		var ev Event
		if err := c.conn.ReadJSON(&ev); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Debug("demo: websocket read failed", "error", err)
			}
			return
		}
		if !s.Dispatch(ev) {
			s.logger.Debug("demo: no handler", "hid", ev.HID, "event", ev.Event)
		}
	}
}

func (s *Server) drop(c *client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.clients[c]; ok {
		delete(s.clients, c)
		close(c.send)
	}
}
