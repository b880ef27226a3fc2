// Package props converts between semantic props and host props.
//
// Semantic props (Map) use kebab-case string or names.Keyword keys, the
// way component authors write them:
//
//	props.Map{"class": "card", "on-click": handler, names.K("data-id"): 7}
//
// Host props (vdom.Props) use the host's attribute names: "className",
// "htmlFor", camelCase event handlers, with data-* and aria-* attributes
// kept verbatim. ToHost and FromHost convert in each direction.
package props
