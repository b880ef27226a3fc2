// Package render prints committed hx trees as HTML.
//
// The input is the expanded tree a host.Root publishes after a commit
// (Root.Tree or an OnCommit listener), so it contains only element, text,
// fragment and raw nodes:
//
//	renderer := render.NewRenderer(render.RendererConfig{})
//	html, err := renderer.RenderToString(root.Tree())
//
// Host prop names are mapped back to HTML attributes: className becomes
// class, htmlFor becomes for, style maps become CSS declarations and
// boolean attributes are printed bare. Event handlers are not printed;
// each element carrying one gets a data-hid attribute and its handlers are
// collected in the renderer's registry (see Handlers), which the demo
// server uses to dispatch browser events.
//
// # Full Page Rendering
//
//	err := renderer.RenderPage(w, render.PageData{Title: "hx", Body: tree})
//
// # Security
//
// All text and attribute values are escaped. Raw nodes are written as is
// and must only carry trusted content.
package render
