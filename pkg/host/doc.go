// Package host is the component runtime that hx adapts to.
//
// A Root owns a tree of mounted Instances. Components are values
// implementing vdom.Component; their render functions call hooks to keep
// state across renders:
//
//	UseState  value + functional setter; setting schedules a render
//	UseRef    stable mutable box; writing does not schedule a render
//	UseEffect post-commit side effect with cleanup and dependency list
//	UseMemo   cached computation keyed by a dependency list
//
// Dependency lists are compared slot by slot with vdom.SameValue: values of
// comparable types with ==, everything else by identity. A nil list means
// "every render", an empty list means "once per mount".
//
// # Render cycle
//
// Setters and frame requests only enqueue work. Flush renders dirty
// instances shallowest first, reconciles child component nodes by key or
// position and component identity, commits the expanded tree, delivers
// caught errors to boundaries, runs effects children first, then runs
// frame callbacks, and repeats until nothing is queued.
//
// # Errors
//
// A panic in a render function or effect becomes a *RenderError. The
// nearest enclosing Boundary (see Class) that has not caught anything yet
// captures it and renders its fallback; otherwise Flush unmounts the tree
// and returns the error.
package host
