package hx

import (
	"errors"
	"fmt"

	"github.com/vango-dev/hx/pkg/props"
	"github.com/vango-dev/hx/pkg/vdom"
)

// ErrElementType is returned by Element for a type that is neither a tag
// name nor a component.
var ErrElementType = errors.New("hx: element type must be a tag name or a component")

// Element creates a node. typ is a tag name or a vdom.Component; p is
// nil, vdom.Props, or semantic props accepted by props.ToHost. A props
// value of any other shape yields a *props.PropsShapeError. Children may
// be nodes, node slices, strings, numbers or nil.
func Element(typ any, p any, children ...any) (*vdom.VNode, error) {
	hp, err := props.ToHost(p)
	if err != nil {
		return nil, err
	}
	switch t := typ.(type) {
	case string:
		args := make([]any, 0, len(children)+1)
		if hp != nil {
			args = append(args, hp)
		}
		args = append(args, children...)
		return vdom.H(t, args...), nil
	case vdom.Component:
		return vdom.Comp(t, hp, children...), nil
	default:
		return nil, fmt.Errorf("%w: got %T", ErrElementType, typ)
	}
}

// MustElement is Element panicking on error. Inside a render the panic
// becomes a render error that boundaries catch.
func MustElement(typ any, p any, children ...any) *vdom.VNode {
	n, err := Element(typ, p, children...)
	if err != nil {
		panic(err)
	}
	return n
}

// fnComponent adapts a function of semantic props.
type fnComponent struct {
	name string
	fn   func(props.Map) *vdom.VNode
}

// Fn returns a component that renders fn with its props converted to
// semantic form. Call it once per component, not per render.
func Fn(name string, fn func(props.Map) *vdom.VNode) vdom.Component {
	return &fnComponent{name: name, fn: fn}
}

func (f *fnComponent) Render(p vdom.Props) *vdom.VNode {
	return f.fn(props.FromHost(p))
}

func (f *fnComponent) Name() string {
	return f.name
}
