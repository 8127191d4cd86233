package di

// Key provides type-safe rule identification.
// Use NewKey to create typed keys for your rules.
type Key[T any] struct {
	name string
}

// NewKey creates a new typed key.
//
// Example:
//
//	var DatabaseKey = di.NewKey[*Database]("database")
func NewKey[T any](name string) Key[T] {
	return Key[T]{name: name}
}

// Name returns the string identifier of the key.
func (k Key[T]) Name() string {
	return k.name
}

// SetRuleWithKey registers a typed factory under a key.
//
// Example:
//
//	di.SetRuleWithKey(c, DatabaseKey, func(c *di.Container, _ ...any) (*Database, error) {
//	    return &Database{}, nil
//	}, di.Singleton())
func SetRuleWithKey[T any](c *Container, key Key[T], factory func(*Container, ...any) (T, error), opts ...RuleOption) error {
	return SetTypedRule(c, key.name, factory, opts...)
}

// StoreWithKey registers a pre-built instance under a key.
func StoreWithKey[T any](c *Container, key Key[T], instance T) error {
	return c.StoreObject(key.name, instance)
}

// BindWithKey registers a class binding for the class of T under a key.
func BindWithKey[T any](c *Container, key Key[T], singleton bool) error {
	if singleton {
		return c.BindSingletonRuleToClass(key.name, ClassOf[T](c))
	}
	return c.BindRuleToClass(key.name, ClassOf[T](c))
}

// GetWithKey resolves a key with type safety.
//
// Example:
//
//	db, err := di.GetWithKey(c, DatabaseKey)
func GetWithKey[T any](c *Container, key Key[T], args ...any) (T, error) {
	return Resolve[T](c, key.name, args...)
}

// MustWithKey resolves a key and panics on error.
func MustWithKey[T any](c *Container, key Key[T], args ...any) T {
	return Must[T](c, key.name, args...)
}

// HasKey checks if a rule is registered under a key.
func HasKey[T any](c *Container, key Key[T]) bool {
	return c.Has(key.name)
}

// InspectKey returns diagnostic information about the rule under a key.
func InspectKey[T any](c *Container, key Key[T]) (RuleInfo, bool) {
	return c.Inspect(key.name)
}
