package cell

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
)

// ErrInvalidValue is wrapped by errors from writes a validator rejected.
var ErrInvalidValue = errors.New("cell: invalid value")

// watchEntry is a registered watch.
type watchEntry[T any] struct {
	key string
	fn  Watch[T]
}

// Atom is a Cell backed by a mutex-protected value.
//
// Watches run in registration order on the goroutine that made the write,
// after the value lock is released, so a watch may read the atom or write
// to it again. A panicking watch propagates to the writer and the remaining
// watches for that write are skipped.
//
// Atom[T] is safe for concurrent use.
type Atom[T any] struct {
	mu       sync.RWMutex
	value    T
	equal    func(a, b T) bool
	validate func(T) error

	watchMu sync.RWMutex
	watches []watchEntry[T]
}

// NewAtom creates an atom holding initial.
func NewAtom[T any](initial T, opts ...Option[T]) *Atom[T] {
	a := &Atom[T]{value: initial}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Deref returns the current value.
func (a *Atom[T]) Deref() T {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.value
}

// AddWatch registers fn under key, replacing any watch with the same key
// in place.
func (a *Atom[T]) AddWatch(key string, fn Watch[T]) {
	if fn == nil {
		return
	}
	a.watchMu.Lock()
	defer a.watchMu.Unlock()

	for i := range a.watches {
		if a.watches[i].key == key {
			a.watches[i].fn = fn
			return
		}
	}
	a.watches = append(a.watches, watchEntry[T]{key: key, fn: fn})
}

// RemoveWatch removes the watch registered under key.
func (a *Atom[T]) RemoveWatch(key string) {
	a.watchMu.Lock()
	defer a.watchMu.Unlock()

	for i := range a.watches {
		if a.watches[i].key == key {
			a.watches = append(a.watches[:i], a.watches[i+1:]...)
			return
		}
	}
}

// WatchCount returns the number of registered watches.
func (a *Atom[T]) WatchCount() int {
	a.watchMu.RLock()
	defer a.watchMu.RUnlock()
	return len(a.watches)
}

// Reset replaces the value. It panics with an error wrapping
// ErrInvalidValue if the validator rejects v; use TryReset to get the
// error instead.
func (a *Atom[T]) Reset(v T) {
	if err := a.TryReset(v); err != nil {
		panic(err)
	}
}

// Swap replaces the value with fn(current). fn runs under the atom's lock
// and must not access the atom. Like Reset, it panics if the validator
// rejects the result.
func (a *Atom[T]) Swap(fn func(T) T) {
	if err := a.TrySwap(fn); err != nil {
		panic(err)
	}
}

// TryReset is Reset returning the validation error.
func (a *Atom[T]) TryReset(v T) error {
	return a.TrySwap(func(T) T { return v })
}

// TrySwap is Swap returning the validation error.
func (a *Atom[T]) TrySwap(fn func(T) T) error {
	if fn == nil {
		return nil
	}
	old, next, changed, err := a.apply(fn)
	if err != nil {
		return err
	}
	if changed {
		a.notify(old, next)
	}
	return nil
}

// apply computes and stores fn(current) under the value lock.
func (a *Atom[T]) apply(fn func(T) T) (old, next T, changed bool, err error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	old = a.value
	next = fn(old)
	if a.validate != nil {
		if verr := a.validate(next); verr != nil {
			return old, next, false, fmt.Errorf("%w: %v", ErrInvalidValue, verr)
		}
	}
	if a.equals(old, next) {
		return old, next, false, nil
	}
	a.value = next
	return old, next, true, nil
}

// notify calls every watch with the change. The watch list is copied
// first so watches may add or remove watches.
func (a *Atom[T]) notify(old, next T) {
	a.watchMu.RLock()
	watches := make([]watchEntry[T], len(a.watches))
	copy(watches, a.watches)
	a.watchMu.RUnlock()

	for _, w := range watches {
		w.fn(w.key, old, next)
	}
}

func (a *Atom[T]) equals(x, y T) bool {
	if a.equal != nil {
		return a.equal(x, y)
	}
	return DefaultEquals(x, y)
}

// DefaultEquals compares scalars and strings with ==, pointers and
// channels by identity, and everything else with reflect.DeepEqual.
// Functions are never equal unless both are nil.
func DefaultEquals[T any](x, y T) bool {
	xv, yv := any(x), any(y)
	xt, yt := reflect.TypeOf(xv), reflect.TypeOf(yv)
	if xt == nil || yt == nil {
		return xt == yt
	}
	if xt != yt {
		return false
	}
	switch xt.Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128,
		reflect.Pointer, reflect.Chan, reflect.UnsafePointer:
		return xv == yv
	default:
		return reflect.DeepEqual(xv, yv)
	}
}

var _ Cell[int] = (*Atom[int])(nil)
