package di

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLazy_Get(t *testing.T) {
	c := New()
	calls := 0

	require.NoError(t, c.SetRule("svc", func(c *Container, _ ...any) (any, error) {
		calls++
		return &testService{value: "lazy"}, nil
	}))

	lazy := NewLazy[*testService](c, "svc")
	assert.Equal(t, "svc", lazy.Name())
	assert.False(t, lazy.IsResolved())
	assert.Equal(t, 0, calls)

	first, err := lazy.Get()
	require.NoError(t, err)
	assert.Equal(t, "lazy", first.value)
	assert.True(t, lazy.IsResolved())

	// The wrapper caches even though the rule is transient
	second, err := lazy.Get()
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, 1, calls)
}

func TestLazy_CachesError(t *testing.T) {
	c := New()

	lazy := NewLazy[*testService](c, "svc")

	_, err := lazy.Get()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownIdentifierSentinel)
	assert.Contains(t, err.Error(), "lazy dependency svc")

	// Registering the rule afterwards does not clear the cached failure
	require.NoError(t, c.StoreObject("svc", &testService{}))

	_, err = lazy.Get()
	assert.Error(t, err)
	assert.False(t, lazy.IsResolved())

	assert.Panics(t, func() {
		lazy.MustGet()
	})
}

func TestLazyKey(t *testing.T) {
	c := New()

	object := &testService{}
	require.NoError(t, StoreWithKey(c, testServiceKey, object))

	lazy := LazyKey(c, testServiceKey)
	assert.Same(t, object, lazy.MustGet())
}

type cycleParent struct {
	child *cycleChild
}

type cycleChild struct {
	parent *Lazy[*cycleParent]
}

func TestLazy_BreaksCycle(t *testing.T) {
	c := New()

	require.NoError(t, c.SetSingletonRule("parent", func(c *Container, _ ...any) (any, error) {
		child, err := Resolve[*cycleChild](c, "child")
		if err != nil {
			return nil, err
		}
		return &cycleParent{child: child}, nil
	}))

	require.NoError(t, c.SetSingletonRule("child", func(c *Container, _ ...any) (any, error) {
		return &cycleChild{parent: NewLazy[*cycleParent](c, "parent")}, nil
	}))

	parent := Must[*cycleParent](c, "parent")
	assert.Same(t, parent, parent.child.parent.MustGet())
}
