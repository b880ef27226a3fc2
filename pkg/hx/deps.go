package hx

import (
	"github.com/google/uuid"

	"github.com/vango-dev/hx/pkg/names"
)

// Deps builds a dependency list for host.UseEffect and host.UseMemo.
// Keywords and UUIDs become their canonical strings, so two values naming
// the same thing compare equal under the host's shallow comparison even
// when they are different pointers. Other items pass through.
//
// Deps is idempotent, and Deps() returns an empty, non-nil list.
func Deps(items ...any) []any {
	out := make([]any, len(items))
	for i, item := range items {
		out[i] = normalize(item)
	}
	return out
}

func normalize(item any) any {
	switch v := item.(type) {
	case *names.Keyword:
		if v == nil {
			return nil
		}
		return v.String()
	case names.Keyword:
		return v.String()
	case uuid.UUID:
		return v.String()
	case *uuid.UUID:
		if v == nil {
			return nil
		}
		return v.String()
	default:
		return item
	}
}
