package cell

// Option configures an Atom.
type Option[T any] func(*Atom[T])

// WithEquals sets the equality used to decide whether a write changed the
// value. Writes equal to the current value do not notify watches.
func WithEquals[T any](fn func(a, b T) bool) Option[T] {
	return func(a *Atom[T]) {
		a.equal = fn
	}
}

// WithValidator rejects writes for which fn returns an error. A rejected
// write leaves the value unchanged and notifies nobody.
func WithValidator[T any](fn func(T) error) Option[T] {
	return func(a *Atom[T]) {
		a.validate = fn
	}
}
