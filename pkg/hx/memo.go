package hx

import (
	"github.com/vango-dev/hx/pkg/host"
	"github.com/vango-dev/hx/pkg/props"
	"github.com/vango-dev/hx/pkg/vdom"
)

// Memo returns c wrapped so that a parent re-render with equal props does
// not re-render it. equals receives the semantic props; nil equals uses
// the host's shallow comparison.
func Memo(c vdom.Component, equals func(prev, next props.Map) bool) vdom.Component {
	if equals == nil {
		return host.Memo(c, nil)
	}
	return host.Memo(c, func(prev, next vdom.Props) bool {
		return equals(props.FromHost(prev), props.FromHost(next))
	})
}
