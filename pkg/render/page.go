package render

import (
	"io"

	"github.com/vango-dev/hx/pkg/vdom"
)

// PageData contains everything needed to render a complete HTML page.
type PageData struct {
	// Body is the committed tree for the page content.
	Body *vdom.VNode

	// Title is the page title.
	Title string

	// Lang is the language attribute for the html element.
	// Defaults to "en" if not specified.
	Lang string

	// Meta contains meta tags for the page.
	Meta []MetaTag

	// StyleSheets contains paths to external stylesheets.
	StyleSheets []string

	// Styles contains inline CSS.
	Styles []string

	// Scripts are written at the end of the body.
	Scripts []ScriptTag

	// BodyID is set as the id of the element wrapping Body, so live
	// updates can replace its content.
	BodyID string
}

// MetaTag represents a meta element in the document head.
type MetaTag struct {
	Name    string // name attribute
	Content string // content attribute
}

// ScriptTag represents a script element.
type ScriptTag struct {
	Src    string // src attribute
	Defer  bool   // defer attribute
	Module bool   // type="module"
	Inline string // inline script content
}

// RenderPage renders a complete HTML document to w.
func (r *Renderer) RenderPage(w io.Writer, page PageData) error {
	lang := page.Lang
	if lang == "" {
		lang = "en"
	}

	hw := r.writer(w)
	hw.printf("<!DOCTYPE html>\n<html lang=\"%s\">\n", escapeAttr(lang))
	writeHead(hw, page)

	hw.str("<body>\n")
	if page.BodyID != "" {
		hw.printf(`<div id="%s">`, escapeAttr(page.BodyID))
	}
	if err := r.node(hw, page.Body, 0); err != nil {
		return err
	}
	if page.BodyID != "" {
		hw.str("</div>\n")
	}
	for _, script := range page.Scripts {
		writeScript(hw, script)
	}
	hw.str("</body>\n</html>\n")
	return hw.err()
}

func writeHead(hw *htmlWriter, page PageData) {
	hw.str("<head>\n")
	hw.str(`  <meta charset="utf-8">` + "\n")
	hw.str(`  <meta name="viewport" content="width=device-width, initial-scale=1">` + "\n")
	if page.Title != "" {
		hw.printf("  <title>%s</title>\n", escapeHTML(page.Title))
	}
	for _, meta := range page.Meta {
		hw.printf(`  <meta name="%s" content="%s">`+"\n", escapeAttr(meta.Name), escapeAttr(meta.Content))
	}
	for _, href := range page.StyleSheets {
		hw.printf(`  <link rel="stylesheet" href="%s">`+"\n", escapeAttr(href))
	}
	for _, style := range page.Styles {
		hw.printf("  <style>%s</style>\n", style)
	}
	hw.str("</head>\n")
}

func writeScript(hw *htmlWriter, script ScriptTag) {
	hw.str("<script")
	if script.Src != "" {
		hw.printf(` src="%s"`, escapeAttr(script.Src))
	}
	if script.Module {
		hw.str(` type="module"`)
	}
	if script.Defer {
		hw.str(" defer")
	}
	hw.printf(">%s</script>\n", script.Inline)
}
