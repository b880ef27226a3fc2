package render

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/vango-dev/hx/pkg/props"
	"github.com/vango-dev/hx/pkg/vdom"
)

// ErrUnexpandedComponent is returned for component nodes. Components are
// rendered by a host.Root; pass the committed tree instead.
var ErrUnexpandedComponent = errors.New("render: component node in tree; render the committed tree of a host.Root")

// RendererConfig configures the HTML renderer.
type RendererConfig struct {
	// Pretty enables indented output.
	Pretty bool

	// Indent is one indentation level in pretty mode. Default: two spaces.
	Indent string
}

// Renderer writes committed VNode trees as HTML. Elements with event
// handler props get a data-hid attribute, and the handlers are kept so a
// client event naming that hid can be dispatched back. A Renderer is not
// safe for concurrent use.
type Renderer struct {
	config   RendererConfig
	hids     int
	handlers map[string]any
}

// NewRenderer creates a Renderer.
func NewRenderer(config RendererConfig) *Renderer {
	if config.Indent == "" {
		config.Indent = "  "
	}
	return &Renderer{
		config:   config,
		handlers: make(map[string]any),
	}
}

// RenderToString renders node to a string.
func (r *Renderer) RenderToString(node *vdom.VNode) (string, error) {
	var buf bytes.Buffer
	if err := r.RenderToWriter(&buf, node); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderToWriter renders node to w.
func (r *Renderer) RenderToWriter(w io.Writer, node *vdom.VNode) error {
	hw := r.writer(w)
	if err := r.node(hw, node, 0); err != nil {
		return err
	}
	return hw.err()
}

// Handlers returns the handlers collected so far, keyed "hid_propName"
// (e.g. "h1_onClick").
func (r *Renderer) Handlers() map[string]any {
	return r.handlers
}

// Handler returns the handler for event (e.g. "click") on the element
// rendered with hid.
func (r *Renderer) Handler(hid, event string) (any, bool) {
	h, ok := r.handlers[hid+"_"+props.HostName("on-"+event)]
	return h, ok
}

// Reset forgets collected handlers and restarts hid numbering. Rendering
// the same tree after Reset assigns the same hids.
func (r *Renderer) Reset() {
	r.hids = 0
	r.handlers = make(map[string]any)
}

func (r *Renderer) writer(w io.Writer) *htmlWriter {
	return &htmlWriter{w: w, indent: r.config.Indent, pretty: r.config.Pretty}
}

func (r *Renderer) node(hw *htmlWriter, n *vdom.VNode, depth int) error {
	if n == nil {
		return nil
	}
	switch n.Kind {
	case vdom.KindElement:
		return r.element(hw, n, depth)
	case vdom.KindText:
		hw.str(escapeHTML(n.Text))
	case vdom.KindRaw:
		hw.str(n.Text)
	case vdom.KindFragment:
		for _, c := range n.Children {
			if err := r.node(hw, c, depth); err != nil {
				return err
			}
		}
	case vdom.KindComponent:
		return fmt.Errorf("%w: %s", ErrUnexpandedComponent, vdom.ComponentName(n.Comp))
	default:
		return fmt.Errorf("render: unknown node kind: %d", n.Kind)
	}
	return nil
}

func (r *Renderer) element(hw *htmlWriter, n *vdom.VNode, depth int) error {
	hw.pad(depth)
	hw.str("<" + n.Tag)
	r.attributes(hw, n)
	if events := eventProps(n); len(events) > 0 {
		r.hids++
		hid := "h" + strconv.Itoa(r.hids)
		hw.printf(` data-hid="%s"`, hid)
		for _, key := range events {
			r.handlers[hid+"_"+key] = n.Props[key]
		}
	}
	hw.str(">")

	if vdom.IsVoidElement(n.Tag) {
		hw.newline()
		return nil
	}

	if inner, ok := n.Props["dangerouslySetInnerHTML"].(string); ok {
		hw.str(inner)
	} else {
		block := len(n.Children) > 0 && !isInlineElement(n.Tag)
		if block {
			hw.newline()
		}
		for _, c := range n.Children {
			if err := r.node(hw, c, depth+1); err != nil {
				return err
			}
		}
		if block {
			hw.pad(depth)
		}
	}

	hw.str("</" + n.Tag + ">")
	hw.newline()
	return nil
}

// attributes writes n's host props in key order. Handlers, key, children
// and props starting with "_" are not attributes.
func (r *Renderer) attributes(hw *htmlWriter, n *vdom.VNode) {
	keys := make([]string, 0, len(n.Props))
	for key, value := range n.Props {
		if strings.HasPrefix(key, "_") || isEventProp(key, value) {
			continue
		}
		switch key {
		case "key", vdom.ChildrenKey, "dangerouslySetInnerHTML":
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := n.Props[key]
		name := attrName(key)

		if style, ok := value.(map[string]any); ok && name == "style" {
			value = styleString(style)
		}
		if b, ok := value.(bool); ok && isBooleanAttr(name) {
			if b {
				hw.str(" " + name)
			}
			continue
		}
		if s := attrToString(value); s != "" {
			hw.printf(` %s="%s"`, name, escapeAttr(s))
		}
	}
}

// attrName maps a host prop name to its HTML attribute.
func attrName(key string) string {
	switch key {
	case "className":
		return "class"
	case "htmlFor":
		return "for"
	default:
		return key
	}
}

// styleString formats a host style map as CSS declarations.
func styleString(style map[string]any) string {
	keys := make([]string, 0, len(style))
	for k := range style {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	decls := make([]string, 0, len(keys))
	for _, k := range keys {
		if v := attrToString(style[k]); v != "" {
			decls = append(decls, props.SemanticName(k)+":"+v)
		}
	}
	return strings.Join(decls, ";")
}

// eventProps returns the sorted handler prop names of n.
func eventProps(n *vdom.VNode) []string {
	var keys []string
	for key, value := range n.Props {
		if isEventProp(key, value) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys
}

// isEventProp reports whether key/value is a handler such as onClick.
func isEventProp(key string, value any) bool {
	if len(key) < 3 || !strings.HasPrefix(key, "on") || key[2] < 'A' || key[2] > 'Z' {
		return false
	}
	return value != nil && reflect.TypeOf(value).Kind() == reflect.Func
}

// attrToString formats an attribute value.
func attrToString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
