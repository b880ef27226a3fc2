// Package vdom provides the element model shared by the hx host runtime.
//
// A VNode is an immutable description of UI: elements, text, fragments,
// raw HTML and component nodes. Component nodes carry the component value
// and its host props; the host expands them into instances when it
// reconciles a tree.
//
// # Element API
//
// Elements are created using variadic factory functions:
//
//	H("div", Attr{Key: "className", Value: "card"},
//	    H("h1", "Title"),
//	    Comp(Counter, Props{"start": 3}),
//	)
//
// Host props use the host naming (className, htmlFor, onClick). Semantic
// kebab-case props are converted by package props before they get here.
package vdom
