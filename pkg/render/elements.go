package render

// tagSet is a set of lower-case tag or attribute names.
type tagSet map[string]struct{}

func newTagSet(names ...string) tagSet {
	s := make(tagSet, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}

func (s tagSet) has(name string) bool {
	_, ok := s[name]
	return ok
}

// inlineElements stay on one line in pretty output.
var inlineElements = newTagSet(
	"a", "abbr", "b", "bdi", "bdo", "br", "cite", "code", "data", "dfn",
	"em", "i", "kbd", "mark", "q", "rb", "rp", "rt", "rtc", "ruby", "s",
	"samp", "small", "span", "strong", "sub", "sup", "time", "u", "var",
	"wbr", "button", "label",
)

// booleanAttrs render as a bare name when true and are omitted when false.
var booleanAttrs = newTagSet(
	"allowfullscreen", "async", "autofocus", "autoplay", "checked",
	"controls", "default", "defer", "disabled", "formnovalidate", "hidden",
	"inert", "ismap", "itemscope", "loop", "multiple", "muted", "nomodule",
	"novalidate", "open", "playsinline", "readonly", "required", "reversed",
	"selected",
)

func isInlineElement(tag string) bool {
	return inlineElements.has(tag)
}

func isBooleanAttr(name string) bool {
	return booleanAttrs.has(name)
}
