package vdom

import "fmt"

// voidElements are elements that cannot have children.
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"param":  true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// IsVoidElement returns true if the tag is a void element.
func IsVoidElement(tag string) bool {
	return voidElements[tag]
}

// H creates an element node.
// Arguments can be: nil, Attr, []Attr, Props, *VNode, []*VNode, string,
// fmt.Stringer or a number.
func H(tag string, args ...any) *VNode {
	node := &VNode{
		Kind:  KindElement,
		Tag:   tag,
		Props: make(Props),
	}
	for _, arg := range args {
		switch v := arg.(type) {
		case Attr:
			node.setAttr(v)
		case []Attr:
			for _, a := range v {
				node.setAttr(a)
			}
		case Props:
			for k, val := range v {
				node.setAttr(Attr{Key: k, Value: val})
			}
		default:
			node.Children = appendChild(node.Children, arg)
		}
	}
	return node
}

func (v *VNode) setAttr(a Attr) {
	if a.IsEmpty() {
		return
	}
	if a.Key == "key" {
		v.Key = fmt.Sprint(a.Value)
		return
	}
	v.Props[a.Key] = a.Value
}

// Comp creates a component node. The children are handed to the component
// under ChildrenKey.
func Comp(c Component, props Props, children ...any) *VNode {
	node := &VNode{
		Kind:  KindComponent,
		Comp:  c,
		Props: props.Clone(),
	}
	if node.Props == nil {
		node.Props = make(Props)
	}
	if k, ok := node.Props["key"]; ok {
		node.Key = fmt.Sprint(k)
		delete(node.Props, "key")
	}
	var kids []*VNode
	for _, child := range children {
		kids = appendChild(kids, child)
	}
	if len(kids) > 0 {
		node.Props[ChildrenKey] = kids
	}
	return node
}

// appendChild converts a child argument to nodes and appends them.
func appendChild(dst []*VNode, child any) []*VNode {
	switch v := child.(type) {
	case nil:
		return dst
	case *VNode:
		if v != nil {
			dst = append(dst, v)
		}
	case []*VNode:
		for _, c := range v {
			if c != nil {
				dst = append(dst, c)
			}
		}
	case string:
		dst = append(dst, Text(v))
	case Component:
		dst = append(dst, Comp(v, nil))
	case fmt.Stringer:
		dst = append(dst, Text(v.String()))
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64, bool:
		dst = append(dst, Text(fmt.Sprint(v)))
	}
	return dst
}

// Text creates a text node.
func Text(content string) *VNode {
	return &VNode{
		Kind: KindText,
		Text: content,
	}
}

// Textf creates a formatted text node.
func Textf(format string, args ...any) *VNode {
	return Text(fmt.Sprintf(format, args...))
}

// Raw creates an unescaped HTML node.
// Use with caution - can lead to XSS if content is user-provided.
func Raw(html string) *VNode {
	return &VNode{
		Kind: KindRaw,
		Text: html,
	}
}

// Fragment groups children without a wrapper element.
func Fragment(children ...any) *VNode {
	node := &VNode{Kind: KindFragment}
	for _, child := range children {
		node.Children = appendChild(node.Children, child)
	}
	return node
}

// Key creates a key attribute for reconciliation.
// The key is converted to a string using fmt.Sprint.
func Key(key any) Attr {
	return Attr{Key: "key", Value: fmt.Sprint(key)}
}

// Class sets the className host prop.
func Class(name string) Attr {
	return Attr{Key: "className", Value: name}
}
