package di

import (
	"fmt"
)

// Lazy wraps a dependency that is resolved on first access.
// The container does not detect dependency cycles; a Lazy is how a caller
// breaks one, by deferring one side of the cycle until after construction.
type Lazy[T any] struct {
	container *Container
	name      string
	value     T
	err       error
	resolved  bool
	attempted bool
}

// NewLazy creates a new lazy dependency wrapper.
func NewLazy[T any](container *Container, name string) *Lazy[T] {
	return &Lazy[T]{
		container: container,
		name:      name,
	}
}

// LazyKey creates a lazy wrapper for a typed key.
func LazyKey[T any](container *Container, key Key[T]) *Lazy[T] {
	return NewLazy[T](container, key.name)
}

// Get resolves the dependency and returns it.
// The resolution happens only once; subsequent calls return the cached value
// or the cached error.
func (l *Lazy[T]) Get() (T, error) {
	if l.attempted {
		return l.value, l.err
	}

	l.attempted = true

	value, err := Resolve[T](l.container, l.name)
	if err != nil {
		l.err = fmt.Errorf("lazy dependency %s: %w", l.name, err)
		return l.value, l.err
	}

	l.value = value
	l.resolved = true

	return l.value, nil
}

// MustGet resolves the dependency and returns it, panicking on error.
func (l *Lazy[T]) MustGet() T {
	value, err := l.Get()
	if err != nil {
		panic(err)
	}

	return value
}

// IsResolved returns whether the dependency has been resolved successfully.
func (l *Lazy[T]) IsResolved() bool {
	return l.resolved
}

// Name returns the identifier of the dependency.
func (l *Lazy[T]) Name() string {
	return l.name
}
