package props

import (
	"strings"

	"github.com/vango-dev/hx/pkg/names"
	"github.com/vango-dev/hx/pkg/vdom"
)

// Map holds semantic props. Keys are strings or names.Keyword values.
type Map map[any]any

// Get returns the value stored under name, looking it up as a string key
// first and then as a keyword with that name.
func (m Map) Get(name string) any {
	if v, ok := m[name]; ok {
		return v
	}
	for k, v := range m {
		if s, ok := keyName(k); ok && s == name {
			return v
		}
	}
	return nil
}

// String returns the string stored under name, or "".
func (m Map) String(name string) string {
	s, _ := m.Get(name).(string)
	return s
}

// hostAliases are semantic names whose host name is not their camelCase
// form.
var hostAliases = map[string]string{
	"class": "className",
	"for":   "htmlFor",
}

// semanticAliases is the inverse of hostAliases.
var semanticAliases = map[string]string{
	"className": "class",
	"htmlFor":   "for",
}

// ToHost converts v to host props. v may be nil, vdom.Props (returned as
// is), Map, map[string]any or map[any]any. Any other shape, or a key that
// is neither a string nor a keyword, yields a *PropsShapeError.
func ToHost(v any) (vdom.Props, error) {
	switch p := v.(type) {
	case nil:
		return nil, nil
	case vdom.Props:
		return p, nil
	case Map:
		return convertAny(p)
	case map[any]any:
		return convertAny(p)
	case map[string]any:
		out := make(vdom.Props, len(p))
		for k, val := range p {
			hk := HostName(k)
			out[hk] = hostValue(hk, val)
		}
		return out, nil
	default:
		return nil, &PropsShapeError{Value: v}
	}
}

func convertAny(p map[any]any) (vdom.Props, error) {
	out := make(vdom.Props, len(p))
	for k, val := range p {
		name, ok := keyName(k)
		if !ok {
			return nil, &PropsShapeError{Value: k, Key: true}
		}
		hk := HostName(name)
		out[hk] = hostValue(hk, val)
	}
	return out, nil
}

// FromHost converts host props back to semantic props with string keys.
func FromHost(p vdom.Props) Map {
	if p == nil {
		return nil
	}
	out := make(Map, len(p))
	for k, v := range p {
		sk := SemanticName(k)
		if sk == "style" {
			if style, ok := v.(map[string]any); ok {
				v = semanticStyle(style)
			}
		}
		out[sk] = v
	}
	return out
}

// keyName returns the string form of a semantic key.
func keyName(k any) (string, bool) {
	switch key := k.(type) {
	case string:
		return key, true
	case *names.Keyword:
		if key == nil {
			return "", false
		}
		return key.Name, true
	case names.Keyword:
		return key.Name, true
	default:
		return "", false
	}
}

// hostValue converts style maps; other values pass through.
func hostValue(hostKey string, v any) any {
	if hostKey != "style" {
		return v
	}
	switch style := v.(type) {
	case Map:
		out := make(map[string]any, len(style))
		for k, sv := range style {
			if name, ok := keyName(k); ok {
				out[camel(name)] = sv
			}
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(style))
		for k, sv := range style {
			out[camel(k)] = sv
		}
		return out
	default:
		return v
	}
}

func semanticStyle(style map[string]any) Map {
	out := make(Map, len(style))
	for k, v := range style {
		out[kebab(k)] = v
	}
	return out
}

// HostName converts a semantic prop name to its host name: aliases first,
// data-* and aria-* verbatim, everything else from kebab-case to
// camelCase.
func HostName(name string) string {
	if alias, ok := hostAliases[name]; ok {
		return alias
	}
	if strings.HasPrefix(name, "data-") || strings.HasPrefix(name, "aria-") {
		return name
	}
	return camel(name)
}

// SemanticName converts a host prop name back to its semantic name.
func SemanticName(name string) string {
	if alias, ok := semanticAliases[name]; ok {
		return alias
	}
	if strings.HasPrefix(name, "data-") || strings.HasPrefix(name, "aria-") {
		return name
	}
	return kebab(name)
}

// camel converts "on-click" to "onClick". Names without dashes are
// returned unchanged.
func camel(s string) string {
	if !strings.Contains(s, "-") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	upper := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '-' {
			upper = b.Len() > 0
			continue
		}
		if upper && c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		upper = false
		b.WriteByte(c)
	}
	return b.String()
}

// kebab converts "onClick" to "on-click".
func kebab(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'A' && c <= 'Z' {
			if i > 0 {
				b.WriteByte('-')
			}
			c += 'a' - 'A'
		}
		b.WriteByte(c)
	}
	return b.String()
}
