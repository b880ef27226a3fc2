package hx

import (
	"sync"

	"github.com/vango-dev/hx/pkg/cell"
	"github.com/vango-dev/hx/pkg/host"
)

// Ref is the read/write protocol shared by hook state, hook variables and
// reference cells.
type Ref[T any] interface {
	Deref() T
	Reset(v T)
	Swap(fn func(T) T)
}

var (
	_ Ref[int] = (*State[int])(nil)
	_ Ref[int] = (*Var[int])(nil)
	_ Ref[int] = (cell.Cell[int])(nil)
)

// State is component state that re-renders its owner when written.
type State[T any] struct {
	mu    sync.RWMutex
	value T
	set   func(func(T) T)
}

// UseState returns the instance's state. The pointer is stable across
// renders.
//
// Deref returns the value of the owner's most recent render. Swap queues
// fn and applies it to the latest value, including updates queued before
// it, when the owner next renders. Writes after unmount are dropped.
func UseState[T any](initial T) *State[T] {
	value, set := host.UseState(initial)
	ref := host.UseRef[*State[T]](nil)
	s := ref.Current()
	if s == nil {
		s = &State[T]{set: set}
		ref.Set(s)
	}
	s.mu.Lock()
	s.value = value
	s.mu.Unlock()
	return s
}

// Deref returns the rendered value.
func (s *State[T]) Deref() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Reset schedules a render with v as the new value.
func (s *State[T]) Reset(v T) {
	s.Swap(func(T) T { return v })
}

// Swap schedules a render with fn applied to the latest value.
func (s *State[T]) Swap(fn func(T) T) {
	s.set(fn)
}

// Var is a per-instance variable. Writing it never re-renders.
type Var[T any] struct {
	mu    sync.RWMutex
	value T
}

// UseVar returns the instance's variable, the same pointer on every
// render.
func UseVar[T any](initial T) *Var[T] {
	ref := host.UseRef[*Var[T]](nil)
	v := ref.Current()
	if v == nil {
		v = &Var[T]{value: initial}
		ref.Set(v)
	}
	return v
}

// Deref returns the current value.
func (v *Var[T]) Deref() T {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.value
}

// Reset replaces the value.
func (v *Var[T]) Reset(value T) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.value = value
}

// Swap replaces the value with fn applied to it.
func (v *Var[T]) Swap(fn func(T) T) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.value = fn(v.value)
}
