package di

import (
	"reflect"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Option configures a Container.
type Option func(*Container)

// WithLogger sets the logger used for registration diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Container) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithIDGenerator sets the generator for identifiers of rules synthesized
// during autowiring. Generated identifiers must never repeat.
func WithIDGenerator(next func() string) Option {
	return func(c *Container) {
		if next != nil {
			c.newID = next
		}
	}
}

// WithMiddleware adds resolution middleware.
func WithMiddleware(middleware ...Middleware) Option {
	return func(c *Container) {
		for _, mw := range middleware {
			c.middleware.add(mw)
		}
	}
}

func defaultIDGenerator() string {
	return uuid.NewString()
}

// RuleOption configures SetRule and SetSingletonRule.
type RuleOption func(*ruleConfig)

type ruleConfig struct {
	singleton bool
	force     bool
}

// Singleton makes SetRule register a singleton callback rule.
func Singleton() RuleOption {
	return func(c *ruleConfig) {
		c.singleton = true
	}
}

// Force lets a singleton rule replace an existing rule.
func Force() RuleOption {
	return func(c *ruleConfig) {
		c.force = true
	}
}

func mergeRuleOptions(opts []RuleOption) ruleConfig {
	var config ruleConfig
	for _, opt := range opts {
		opt(&config)
	}

	return config
}

// ClassOption configures DefineClass and DefineInterface.
type ClassOption func(*classConfig)

type classConfig struct {
	name       string
	implements []reflect.Type
}

// WithClassName names the class instead of using its canonical type name.
//
// Example:
//
//	c.DefineClass(NewMailer, di.WithClassName("mailer.SMTP"))
func WithClassName(name string) ClassOption {
	return func(c *classConfig) {
		c.name = name
	}
}

// Implements aliases each given interface class to the class being defined,
// so building the interface builds this class. Pass interfaces as typed nil
// pointers; they must already be defined.
//
// Example:
//
//	c.DefineInterface((*Mailer)(nil))
//	c.DefineClass(NewSMTPMailer, di.Implements((*Mailer)(nil)))
func Implements(ifaces ...any) ClassOption {
	return func(c *classConfig) {
		for _, iface := range ifaces {
			t := reflect.TypeOf(iface)
			if t != nil && t.Kind() == reflect.Ptr {
				t = t.Elem()
			}
			c.implements = append(c.implements, t)
		}
	}
}

func mergeClassOptions(opts []ClassOption) classConfig {
	var config classConfig
	for _, opt := range opts {
		opt(&config)
	}

	return config
}
