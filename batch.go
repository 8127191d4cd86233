package di

import (
	"go.uber.org/multierr"
)

// ClassBinding holds configuration for a class binding to be registered.
type ClassBinding struct {
	Identifier string
	Class      string
	Singleton  bool
}

// Binding creates a ClassBinding for batch registration.
func Binding(identifier, className string) ClassBinding {
	return ClassBinding{Identifier: identifier, Class: className}
}

// SingletonBinding creates a singleton ClassBinding for batch registration.
func SingletonBinding(identifier, className string) ClassBinding {
	return ClassBinding{Identifier: identifier, Class: className, Singleton: true}
}

// Bind registers multiple class bindings in a single call. Every binding is
// attempted; the result combines the errors of all failing ones. Successful
// bindings stay registered.
//
// Example:
//
//	err := di.Bind(c,
//	    di.SingletonBinding("db", "*app.Database"),
//	    di.Binding("request", "*app.Request"),
//	)
func Bind(c *Container, bindings ...ClassBinding) error {
	var err error

	for _, b := range bindings {
		if b.Singleton {
			err = multierr.Append(err, c.BindSingletonRuleToClass(b.Identifier, b.Class))
		} else {
			err = multierr.Append(err, c.BindRuleToClass(b.Identifier, b.Class))
		}
	}

	return err
}

// RegisterClasses registers each class under its own name.
func RegisterClasses(c *Container, classNames ...string) error {
	var err error

	for _, className := range classNames {
		err = multierr.Append(err, c.RegisterClass(className))
	}

	return err
}

// Preload resolves every singleton class binding and singleton callback rule
// that has not been built yet, in identifier order. Failures do not stop the
// remaining rules; the result combines all of them.
func Preload(c *Container) error {
	cached := false

	pending := c.Query(RuleQuery{
		Kinds:  []RuleKind{RuleKindSingletonCallback, RuleKindSingletonClassBinding},
		Cached: &cached,
	})

	var err error

	for _, info := range pending {
		// An earlier build may have cached this one as a dependency
		if current, _ := c.Inspect(info.Identifier); current.Cached {
			continue
		}

		_, resolveErr := c.Get(info.Identifier)
		err = multierr.Append(err, resolveErr)
	}

	return err
}
