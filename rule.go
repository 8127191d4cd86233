package di

// Rule produces an instance for an identifier. args are the caller's extra
// arguments to GetObject.
type Rule interface {
	Resolve(args ...any) (any, error)
}

// Factory creates an instance. It receives the container, so it can resolve
// other identifiers, followed by the caller's extra arguments.
type Factory func(c *Container, args ...any) (any, error)

// CallbackRule calls its factory on every resolution.
type CallbackRule struct {
	container *Container
	factory   Factory
}

// NewCallbackRule creates a rule around factory.
func NewCallbackRule(c *Container, factory Factory) *CallbackRule {
	return &CallbackRule{container: c, factory: factory}
}

// Resolve implements Rule.
func (r *CallbackRule) Resolve(args ...any) (any, error) {
	return r.factory(r.container, args...)
}

// SingletonCallbackRule calls its factory once and returns the cached result
// afterwards. Arguments passed after the first resolution are ignored.
type SingletonCallbackRule struct {
	CallbackRule

	store InstanceStore
}

// NewSingletonCallbackRule creates a memoizing rule around factory.
func NewSingletonCallbackRule(c *Container, factory Factory) *SingletonCallbackRule {
	return &SingletonCallbackRule{CallbackRule: CallbackRule{container: c, factory: factory}}
}

// Resolve implements Rule.
func (r *SingletonCallbackRule) Resolve(args ...any) (any, error) {
	return memoize(&r.store, func() (any, error) {
		return r.CallbackRule.Resolve(args...)
	})
}

// StoredObjectRule always returns the instance it was created with.
type StoredObjectRule struct {
	store InstanceStore
}

// NewStoredObjectRule wraps a pre-built instance.
func NewStoredObjectRule(instance any) *StoredObjectRule {
	r := &StoredObjectRule{}
	r.store.Store(instance)

	return r
}

// Resolve implements Rule. Arguments are ignored.
func (r *StoredObjectRule) Resolve(_ ...any) (any, error) {
	return r.store.Get(), nil
}

// memoize returns the stored value, or runs resolve and stores its result.
// Failures are not cached.
func memoize(store *InstanceStore, resolve func() (any, error)) (any, error) {
	if store.Has() {
		return store.Get(), nil
	}

	instance, err := resolve()
	if err != nil {
		return nil, err
	}

	store.Store(instance)

	return instance, nil
}
