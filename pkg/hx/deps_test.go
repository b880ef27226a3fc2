package hx

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/vango-dev/hx/pkg/host"
	"github.com/vango-dev/hx/pkg/names"
)

func TestDepsNormalizesNames(t *testing.T) {
	id := uuid.New()
	idCopy := id
	a, b := names.K("user/id"), names.K("user/id")

	got := Deps(a, *b, id, &idCopy, 3, "x", nil)
	assert.Equal(t, []any{":user/id", ":user/id", id.String(), id.String(), 3, "x", nil}, got)

	// Distinct pointers with the same name do not change the deps.
	assert.False(t, host.DepsChanged(Deps(a), Deps(b)))
	assert.True(t, host.DepsChanged(Deps(a), Deps(names.K("user/name"))))
}

func TestDepsIsIdempotent(t *testing.T) {
	fn := func() {}
	items := []any{names.K("a"), uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8"), 1.5, fn}
	once := Deps(items...)
	assert.False(t, host.DepsChanged(once, Deps(once...)))
}

func TestDepsEmptyIsNotNil(t *testing.T) {
	d := Deps()
	assert.NotNil(t, d)
	assert.Empty(t, d)

	var nilKeyword *names.Keyword
	var nilID *uuid.UUID
	assert.Equal(t, []any{nil, nil}, Deps(nilKeyword, nilID))
}

type wrapped struct{ V any }

func TestDepsWithUncomparableValuesCountAsChanged(t *testing.T) {
	assert.NotPanics(t, func() {
		assert.True(t, host.DepsChanged(Deps(wrapped{V: []int{1}}), Deps(wrapped{V: []int{1}})))
	})
	assert.False(t, host.DepsChanged(Deps(wrapped{V: "x"}), Deps(wrapped{V: "x"})))
}
