package vdom

import "reflect"

// VKind is the node type discriminator.
type VKind uint8

const (
	KindElement   VKind = iota // <div>, <button>, etc.
	KindText                   // Plain text node
	KindFragment               // Grouping without wrapper
	KindComponent              // Nested component
	KindRaw                    // Raw HTML (dangerous)
)

// String returns the string representation of the VKind.
func (k VKind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindFragment:
		return "Fragment"
	case KindComponent:
		return "Component"
	case KindRaw:
		return "Raw"
	default:
		return "Unknown"
	}
}

// VNode is the virtual DOM node.
type VNode struct {
	Kind     VKind     // Node type
	Tag      string    // Element tag name (e.g., "div")
	Props    Props     // Host props: attributes, handlers, component props
	Children []*VNode  // Child nodes
	Key      string    // Reconciliation key
	Text     string    // For KindText and KindRaw
	Comp     Component // For KindComponent
}

// Props holds host props for elements and components.
type Props map[string]any

// ChildrenKey is the props key under which a component receives the
// children it was given at element creation.
const ChildrenKey = "children"

// Children returns the children passed to a component element.
func (p Props) Children() []*VNode {
	if p == nil {
		return nil
	}
	children, _ := p[ChildrenKey].([]*VNode)
	return children
}

// Clone returns a shallow copy of the props.
func (p Props) Clone() Props {
	if p == nil {
		return nil
	}
	out := make(Props, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// ShallowEqual reports whether both prop maps have the same keys and each
// value compares equal with ==. Values of non-comparable dynamic types are
// never equal unless both are nil.
func ShallowEqual(a, b Props) bool {
	if len(a) != len(b) {
		return false
	}
	for k, av := range a {
		bv, ok := b[k]
		if !ok || !SameValue(av, bv) {
			return false
		}
	}
	return true
}

// SameValue is the host's per-slot identity comparison.
func SameValue(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	if ta.Comparable() {
		return safeEqual(a, b)
	}
	// Slices of children are compared element-wise by pointer.
	if av, ok := a.([]*VNode); ok {
		bv := b.([]*VNode)
		if len(av) != len(bv) {
			return false
		}
		for i := range av {
			if av[i] != bv[i] {
				return false
			}
		}
		return true
	}
	// Functions and maps only compare equal to themselves.
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	switch va.Kind() {
	case reflect.Func, reflect.Map, reflect.Slice:
		return va.Pointer() == vb.Pointer() && (va.Kind() != reflect.Slice || va.Len() == vb.Len())
	}
	return false
}

// safeEqual is a == b, reporting false where the comparison would panic:
// a comparable struct or array type may still hold a slice, map or func
// in an interface field.
func safeEqual(a, b any) (eq bool) {
	defer func() {
		if recover() != nil {
			eq = false
		}
	}()
	return a == b
}

// Attr represents a single host prop.
type Attr struct {
	Key   string
	Value any
}

// IsEmpty returns true if this is an empty/nil attribute.
func (a Attr) IsEmpty() bool {
	return a.Key == ""
}

// Component is anything the host can mount and render with props.
type Component interface {
	Render(props Props) *VNode
}

// ComponentFunc adapts a render function to Component.
type ComponentFunc func(props Props) *VNode

// Render implements Component.
func (f ComponentFunc) Render(props Props) *VNode {
	return f(props)
}

// Named is implemented by components that report a display name for
// component stacks and logs.
type Named interface {
	Name() string
}

// NamedFunc is a render function with a display name.
type NamedFunc struct {
	Label string
	Fn    func(props Props) *VNode
}

// Render implements Component.
func (f *NamedFunc) Render(props Props) *VNode {
	return f.Fn(props)
}

// Name implements Named.
func (f *NamedFunc) Name() string {
	return f.Label
}

// Func creates a named component from a render function. The returned
// value has pointer identity, so it can be used as a stable component type.
func Func(name string, fn func(props Props) *VNode) Component {
	return &NamedFunc{Label: name, Fn: fn}
}

// ComponentName returns the display name for a component.
func ComponentName(c Component) string {
	if c == nil {
		return "<nil>"
	}
	if n, ok := c.(Named); ok {
		return n.Name()
	}
	return reflect.TypeOf(c).String()
}
