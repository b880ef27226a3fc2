// Package names provides Keyword, a namespaced name value used as a prop
// key and as a dependency-list entry.
//
// Keywords are not interned: two *Keyword values with the same namespace
// and name are different pointers. Code that needs value semantics compares
// their String forms, which is what hx.Deps does.
package names

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidKeyword is returned by Parse for malformed input.
var ErrInvalidKeyword = errors.New("names: invalid keyword")

// Keyword is an optionally namespaced name, printed as ":ns/name" or
// ":name".
type Keyword struct {
	Namespace string
	Name      string
}

// K creates a keyword from "name" or "ns/name". A leading colon is
// accepted and dropped.
func K(s string) *Keyword {
	s = strings.TrimPrefix(s, ":")
	if i := strings.LastIndexByte(s, '/'); i > 0 && i < len(s)-1 {
		return &Keyword{Namespace: s[:i], Name: s[i+1:]}
	}
	return &Keyword{Name: s}
}

// NewKeyword creates a keyword in namespace ns. An empty ns creates an
// unqualified keyword.
func NewKeyword(ns, name string) *Keyword {
	return &Keyword{Namespace: ns, Name: name}
}

// Parse parses the printed form ":name" or ":ns/name".
func Parse(s string) (*Keyword, error) {
	if len(s) < 2 || s[0] != ':' || strings.ContainsAny(s, " \t\n") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidKeyword, s)
	}
	k := K(s)
	if k.Name == "" || strings.HasSuffix(s, "/") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidKeyword, s)
	}
	return k, nil
}

// String returns the printed form.
func (k Keyword) String() string {
	if k.Namespace == "" {
		return ":" + k.Name
	}
	return ":" + k.Namespace + "/" + k.Name
}

// Qualified reports whether the keyword has a namespace.
func (k Keyword) Qualified() bool {
	return k.Namespace != ""
}

// Equal reports whether k and other print the same.
func (k Keyword) Equal(other Keyword) bool {
	return k.Namespace == other.Namespace && k.Name == other.Name
}
