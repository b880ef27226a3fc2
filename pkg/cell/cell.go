// Package cell defines the reference-cell protocol that hx components
// subscribe to, and Atom, an in-process implementation of it.
//
// A reference cell is a mutable box owned outside the component tree. It
// can be read at any time and notifies registered watches synchronously on
// every change:
//
//	board := cell.NewAtom([]string{})
//	board.AddWatch("log", func(key string, old, new []string) {
//	    log.Printf("%s: %d -> %d", key, len(old), len(new))
//	})
//	board.Swap(func(b []string) []string { return append(b, "x") })
package cell

// Watch is called with the key it was registered under and the values
// before and after a change.
type Watch[T any] func(key string, old, new T)

// Cell is a mutable reference whose changes can be watched.
//
// Implementations invoke every registered watch synchronously on every
// value change. Keys are unique per cell; adding a watch under an existing
// key replaces it.
type Cell[T any] interface {
	// Deref returns the current value.
	Deref() T

	// AddWatch registers fn under key.
	AddWatch(key string, fn Watch[T])

	// RemoveWatch removes the watch registered under key, if any.
	RemoveWatch(key string)

	// Reset replaces the value.
	Reset(v T)

	// Swap replaces the value with fn applied to the current value.
	Swap(fn func(T) T)
}
