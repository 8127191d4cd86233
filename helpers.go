package di

import (
	"fmt"
	"reflect"
)

// Resolve with type safety.
func Resolve[T any](c *Container, identifier string, args ...any) (T, error) {
	var zero T

	instance, err := c.GetObject(identifier, args...)
	if err != nil {
		return zero, err
	}

	typed, ok := instance.(T)
	if !ok {
		return zero, ErrTypeMismatch(identifier, instance)
	}

	return typed, nil
}

// Must resolves or panics - use only during startup.
func Must[T any](c *Container, identifier string, args ...any) T {
	instance, err := Resolve[T](c, identifier, args...)
	if err != nil {
		panic(fmt.Sprintf("failed to resolve %s: %v", identifier, err))
	}

	return instance
}

// ClassOf returns the class name of T in c: the name it was defined under,
// or its canonical name if it was never defined.
func ClassOf[T any](c *Container) string {
	return c.types.nameOf(reflect.TypeOf((*T)(nil)).Elem()) // Get the type even for interfaces
}

// Make resolves the class of T, autowiring it when no rule exists yet.
//
// Example:
//
//	svc, err := di.Make[*UserService](c)
func Make[T any](c *Container, args ...any) (T, error) {
	return Resolve[T](c, ClassOf[T](c), args...)
}

// MustMake resolves the class of T, panicking on error.
func MustMake[T any](c *Container, args ...any) T {
	result, err := Make[T](c, args...)
	if err != nil {
		panic(fmt.Sprintf("MustMake failed: %v", err))
	}
	return result
}

// DefineInterfaceOf makes the interface type T known as a class.
func DefineInterfaceOf[T any](c *Container, opts ...ClassOption) (string, error) {
	return c.DefineInterface((*T)(nil), opts...)
}

// Alias binds the class of T to the class of A, so building T builds A.
//
// Example:
//
//	di.Alias[Mailer, *SMTPMailer](c)
func Alias[T, A any](c *Container) error {
	return c.BindClassToAlias(ClassOf[T](c), ClassOf[A](c))
}

// Parameter returns a parameter with type safety.
func Parameter[T any](c *Container, identifier string) (T, error) {
	var zero T

	value, err := c.GetParameter(identifier)
	if err != nil {
		return zero, err
	}

	typed, ok := value.(T)
	if !ok {
		return zero, ErrTypeMismatch(identifier, value)
	}

	return typed, nil
}

// SetTypedRule is a convenience wrapper registering a typed factory.
func SetTypedRule[T any](c *Container, identifier string, factory func(*Container, ...any) (T, error), opts ...RuleOption) error {
	if factory == nil {
		return c.SetRule(identifier, nil, opts...)
	}

	return c.SetRule(identifier, func(c *Container, args ...any) (any, error) {
		return factory(c, args...)
	}, opts...)
}
