package cell

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type change struct {
	key      string
	old, new int
}

func TestAtomNotifiesWatchesInOrder(t *testing.T) {
	a := NewAtom(1)
	var got []change
	a.AddWatch("first", func(key string, old, new int) { got = append(got, change{key, old, new}) })
	a.AddWatch("second", func(key string, old, new int) { got = append(got, change{key, old, new}) })

	a.Reset(2)
	a.Swap(func(n int) int { return n * 10 })

	assert.Equal(t, []change{
		{"first", 1, 2}, {"second", 1, 2},
		{"first", 2, 20}, {"second", 2, 20},
	}, got)
	assert.Equal(t, 20, a.Deref())
}

func TestAtomEqualWritesDoNotNotify(t *testing.T) {
	a := NewAtom([]int{1, 2})
	calls := 0
	a.AddWatch("w", func(string, []int, []int) { calls++ })

	a.Reset([]int{1, 2})
	assert.Equal(t, 0, calls)

	a.Reset([]int{1, 2, 3})
	assert.Equal(t, 1, calls)
}

func TestAtomWithEquals(t *testing.T) {
	type point struct{ x, y int }
	a := NewAtom(point{1, 1}, WithEquals(func(p, q point) bool { return p.x == q.x }))
	calls := 0
	a.AddWatch("w", func(string, point, point) { calls++ })

	a.Reset(point{1, 9})
	assert.Equal(t, 0, calls)
	assert.Equal(t, point{1, 1}, a.Deref())

	a.Reset(point{2, 9})
	assert.Equal(t, 1, calls)
}

func TestAtomValidator(t *testing.T) {
	a := NewAtom(1, WithValidator(func(n int) error {
		if n < 0 {
			return errors.New("negative")
		}
		return nil
	}))
	calls := 0
	a.AddWatch("w", func(string, int, int) { calls++ })

	err := a.TryReset(-1)
	require.ErrorIs(t, err, ErrInvalidValue)
	assert.Contains(t, err.Error(), "negative")
	assert.Equal(t, 1, a.Deref())
	assert.Equal(t, 0, calls)

	assert.Panics(t, func() { a.Swap(func(int) int { return -5 }) })
	assert.Equal(t, 1, a.Deref())
}

func TestAtomWatchKeysAreUnique(t *testing.T) {
	a := NewAtom("a")
	var got []string
	a.AddWatch("k", func(_ string, _, new string) { got = append(got, "old:"+new) })
	a.AddWatch("k", func(_ string, _, new string) { got = append(got, "new:"+new) })
	assert.Equal(t, 1, a.WatchCount())

	a.Reset("b")
	assert.Equal(t, []string{"new:b"}, got)

	a.RemoveWatch("k")
	a.RemoveWatch("missing")
	assert.Equal(t, 0, a.WatchCount())
	a.Reset("c")
	assert.Equal(t, []string{"new:b"}, got)
}

func TestAtomWatchMayRemoveItself(t *testing.T) {
	a := NewAtom(0)
	calls := 0
	a.AddWatch("once", func(string, int, int) {
		calls++
		a.RemoveWatch("once")
	})
	a.Reset(1)
	a.Reset(2)
	assert.Equal(t, 1, calls)
}

func TestAtomWatchPanicPropagates(t *testing.T) {
	a := NewAtom(0)
	a.AddWatch("bad", func(string, int, int) { panic("watch failed") })

	assert.PanicsWithValue(t, "watch failed", func() { a.Reset(1) })
	// The write itself is kept and the atom is still usable.
	assert.Equal(t, 1, a.Deref())
	a.RemoveWatch("bad")
	a.Reset(2)
	assert.Equal(t, 2, a.Deref())
}

func TestAtomSwapPanicReleasesLock(t *testing.T) {
	a := NewAtom(0)
	assert.Panics(t, func() { a.Swap(func(int) int { panic("boom") }) })
	a.Reset(3)
	assert.Equal(t, 3, a.Deref())
}

func TestAtomConcurrentSwaps(t *testing.T) {
	a := NewAtom(0)
	var mu sync.Mutex
	notified := 0
	a.AddWatch("count", func(string, int, int) {
		mu.Lock()
		notified++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			a.Swap(func(n int) int { return n + 1 })
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, a.Deref())
	assert.Equal(t, 50, notified)
}

func TestDefaultEquals(t *testing.T) {
	x, y := 1, 1
	assert.True(t, DefaultEquals(1, 1))
	assert.True(t, DefaultEquals("a", "a"))
	assert.False(t, DefaultEquals(&x, &y))
	assert.True(t, DefaultEquals(&x, &x))
	assert.True(t, DefaultEquals(map[string]int{"a": 1}, map[string]int{"a": 1}))
	assert.True(t, DefaultEquals[any](nil, nil))
	assert.False(t, DefaultEquals[any](1, "1"))
	assert.False(t, DefaultEquals(func() {}, func() {}))
}
