package di

import (
	"fmt"
	"reflect"

	"go.uber.org/zap"
)

// Container owns the rule table, the parameter table and the class index,
// and resolves identifiers into instances.
//
// A Container is meant to be configured and used from a single goroutine
// during application bootstrap. It does no locking; callers serialize
// access themselves. Factories may call back into the container while they
// are being resolved.
type Container struct {
	rules      map[string]Rule
	parameters map[string]any
	classIndex *ClassIndex
	types      *typeRegistry
	middleware *middlewareChain
	logger     *zap.Logger
	newID      func() string
}

// New creates a new container.
func New(opts ...Option) *Container {
	types := newTypeRegistry()

	c := &Container{
		rules:      make(map[string]Rule),
		parameters: make(map[string]any),
		classIndex: newClassIndex(types),
		types:      types,
		middleware: newMiddlewareChain(),
		logger:     zap.NewNop(),
		newID:      defaultIDGenerator,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// ClassIndex returns the container's class index.
func (c *Container) ClassIndex() *ClassIndex {
	return c.classIndex
}

// =============================================================================
// CLASSES
// =============================================================================

// DefineClass makes the type returned by constructor known under a class
// name and returns that name. The constructor may return the instance alone
// or followed by an error.
func (c *Container) DefineClass(constructor any, opts ...ClassOption) (string, error) {
	info, err := analyzeConstructor(constructor)
	if err != nil {
		return "", ErrInvalidBinding(fmt.Sprintf("%T", constructor), err.Error())
	}

	return c.define(info.result, info, mergeClassOptions(opts))
}

// DefineInterface makes an interface type known as a class. iface is a typed
// nil pointer such as (*Mailer)(nil). Interface classes cannot be built
// directly; alias them to a concrete class.
func (c *Container) DefineInterface(iface any, opts ...ClassOption) (string, error) {
	t := reflect.TypeOf(iface)
	if t == nil || t.Kind() != reflect.Ptr || t.Elem().Kind() != reflect.Interface {
		return "", ErrInvalidBinding(fmt.Sprintf("%T", iface), "expected a pointer to an interface")
	}

	return c.define(t.Elem(), nil, mergeClassOptions(opts))
}

func (c *Container) define(t reflect.Type, info *constructorInfo, config classConfig) (string, error) {
	name := config.name
	if name == "" {
		name = canonicalName(t)
	}

	// Check the aliases before registering so a bad option leaves no trace
	bases := make([]*classEntry, 0, len(config.implements))
	for _, iface := range config.implements {
		if iface == nil {
			return "", ErrInvalidBinding(name, "implements requires an interface")
		}

		base, ok := c.types.byType[iface]
		if !ok {
			return "", ErrInvalidBinding(canonicalName(iface), "unknown class")
		}

		if iface.Kind() != reflect.Interface || !t.Implements(iface) || t == iface {
			return "", ErrInvalidBinding(name, "must be a subtype of "+base.name)
		}

		bases = append(bases, base)
	}

	if err := c.types.register(&classEntry{name: name, typ: t, constructor: info}); err != nil {
		return "", err
	}

	for _, base := range bases {
		if err := c.classIndex.BindClassToAlias(base.name, name); err != nil {
			return "", err
		}
	}

	c.logger.Debug("class defined",
		fieldClass(name),
		zap.Stringer("type", t),
		zap.Bool("instantiable", info != nil),
	)

	return name, nil
}

// HasClass reports whether className is a defined class.
func (c *Container) HasClass(className string) bool {
	return c.types.has(className)
}

// Classes returns all defined class names, sorted.
func (c *Container) Classes() []string {
	return c.types.names()
}

// =============================================================================
// PARAMETERS
// =============================================================================

// SetParameter stores a plain value. Parameters are never autowired.
func (c *Container) SetParameter(identifier string, value any) {
	c.parameters[identifier] = value
}

// GetParameter returns a stored parameter.
func (c *Container) GetParameter(identifier string) (any, error) {
	value, ok := c.parameters[identifier]
	if !ok {
		return nil, ErrUnknownParameter(identifier)
	}

	return value, nil
}

// HasParameter reports whether a parameter is stored under identifier.
func (c *Container) HasParameter(identifier string) bool {
	_, ok := c.parameters[identifier]
	return ok
}

// =============================================================================
// RULES
// =============================================================================

// SetRule registers factory under identifier, replacing any existing rule.
// With the Singleton option it behaves like SetSingletonRule.
func (c *Container) SetRule(identifier string, factory Factory, opts ...RuleOption) error {
	config := mergeRuleOptions(opts)

	if config.singleton {
		return c.setSingletonRule(identifier, factory, config.force)
	}

	if err := validateRule(identifier, factory); err != nil {
		return err
	}

	c.setRule(identifier, NewCallbackRule(c, factory), RuleKindCallback)

	return nil
}

// SetSingletonRule registers a factory whose first result is cached. It fails
// with a duplicate singleton error when identifier already has a rule, unless
// the Force option is given, since the replaced rule's instance may already be
// held elsewhere.
func (c *Container) SetSingletonRule(identifier string, factory Factory, opts ...RuleOption) error {
	return c.setSingletonRule(identifier, factory, mergeRuleOptions(opts).force)
}

func (c *Container) setSingletonRule(identifier string, factory Factory, force bool) error {
	if err := validateRule(identifier, factory); err != nil {
		return err
	}

	if _, exists := c.rules[identifier]; exists && !force {
		return ErrDuplicateSingleton(identifier)
	}

	c.setRule(identifier, NewSingletonCallbackRule(c, factory), RuleKindSingletonCallback)

	return nil
}

// StoreObject registers a pre-built instance returned verbatim on every
// resolution. The instance must be a non-nil pointer, struct, map, func or
// channel value.
func (c *Container) StoreObject(identifier string, instance any) error {
	if identifier == "" {
		return ErrInvalidBinding(identifier, "rule identifier cannot be empty")
	}

	if !isObject(instance) {
		return ErrInvalidBinding(identifier, fmt.Sprintf("%T is not an object", instance))
	}

	c.setRule(identifier, NewStoredObjectRule(instance), RuleKindStoredObject)

	return nil
}

// BindRuleToClass registers a class binding rule for className under
// identifier. Every resolution builds a new instance.
func (c *Container) BindRuleToClass(identifier, className string) error {
	if err := c.classIndex.BindRuleToClass(identifier, className); err != nil {
		return err
	}

	c.setRule(identifier, NewClassBindingRule(c, className), RuleKindClassBinding)

	return nil
}

// BindSingletonRuleToClass registers a class binding rule for className under
// identifier whose first instance is cached.
func (c *Container) BindSingletonRuleToClass(identifier, className string) error {
	if err := c.classIndex.BindRuleToClass(identifier, className); err != nil {
		return err
	}

	c.setRule(identifier, NewSingletonClassBindingRule(c, className), RuleKindSingletonClassBinding)

	return nil
}

// BindClassToRule makes requests for className use the existing rule
// identifier.
func (c *Container) BindClassToRule(className, identifier string) error {
	if _, exists := c.rules[identifier]; !exists {
		return ErrInvalidBinding(className, fmt.Sprintf("rule '%s' does not exist", identifier))
	}

	if err := c.classIndex.BindClassToRule(identifier, className); err != nil {
		return err
	}

	c.logger.Debug("class bound to rule", fieldClass(className), fieldIdentifier(identifier))

	return nil
}

// BindClassToAlias makes every build of className build aliasClassName
// instead. aliasClassName must be a proper subtype of className.
func (c *Container) BindClassToAlias(className, aliasClassName string) error {
	if err := c.classIndex.BindClassToAlias(className, aliasClassName); err != nil {
		return err
	}

	c.logger.Debug("class aliased", fieldClass(className), zap.String("alias", aliasClassName))

	return nil
}

// RegisterClass binds className to a class binding rule of the same name.
func (c *Container) RegisterClass(className string) error {
	return c.BindRuleToClass(className, className)
}

// Has reports whether a rule is registered under identifier. It does not
// check whether identifier is a class that GetObject could build.
func (c *Container) Has(identifier string) bool {
	_, exists := c.rules[identifier]
	return exists
}

func (c *Container) setRule(identifier string, rule Rule, kind RuleKind) {
	c.rules[identifier] = rule

	c.logger.Debug("rule registered", fieldIdentifier(identifier), zap.Stringer("kind", kind))
}

// =============================================================================
// RESOLUTION
// =============================================================================

// GetObject resolves identifier into an instance.
//
// A registered rule is used directly. Otherwise, for a class name, the rule
// bound to the class is used, or a class binding rule is synthesized and
// registered under identifier: a singleton when no args are given, a new
// instance per call when they are. args bind to the trailing constructor
// parameters.
func (c *Container) GetObject(identifier string, args ...any) (any, error) {
	// Call middleware before resolve
	if err := c.middleware.beforeResolve(identifier); err != nil {
		return nil, err
	}

	instance, err := c.resolveInternal(identifier, args)

	// Call middleware after resolve
	if mwErr := c.middleware.afterResolve(identifier, instance, err); mwErr != nil {
		return nil, mwErr
	}

	return instance, err
}

// Get resolves identifier without extra arguments.
func (c *Container) Get(identifier string) (any, error) {
	return c.GetObject(identifier)
}

// resolveInternal performs the actual resolution without middleware.
func (c *Container) resolveInternal(identifier string, args []any) (any, error) {
	rule, err := c.ruleFor(identifier, len(args) > 0)
	if err != nil {
		return nil, err
	}

	return rule.Resolve(args...)
}

// ruleFor finds or synthesizes the rule for identifier.
func (c *Container) ruleFor(identifier string, withArgs bool) (Rule, error) {
	if rule, exists := c.rules[identifier]; exists {
		return rule, nil
	}

	if !c.types.has(identifier) {
		return nil, ErrUnknownIdentifier(identifier)
	}

	if bound, ok := c.classIndex.ResolveClassToRule(identifier); ok {
		if rule, exists := c.rules[bound]; exists {
			return rule, nil
		}

		return nil, ErrUnknownIdentifier(bound)
	}

	// Explicit arguments mean the call site wants its own instance
	if withArgs {
		rule := NewClassBindingRule(c, identifier)
		c.setRule(identifier, rule, RuleKindClassBinding)

		return rule, nil
	}

	rule := NewSingletonClassBindingRule(c, identifier)
	c.setRule(identifier, rule, RuleKindSingletonClassBinding)

	// Let autowiring of the same class share the singleton
	if err := c.classIndex.BindClassToRule(identifier, c.classIndex.ResolveAliasToClass(identifier)); err != nil {
		return nil, err
	}

	return rule, nil
}

func validateRule(identifier string, factory Factory) error {
	if identifier == "" {
		return ErrInvalidBinding(identifier, "rule identifier cannot be empty")
	}

	if factory == nil {
		return ErrInvalidBinding(identifier, "factory cannot be nil")
	}

	return nil
}

// isObject reports whether instance is a value with identity or structure,
// as opposed to a scalar.
func isObject(instance any) bool {
	if instance == nil {
		return false
	}

	v := reflect.ValueOf(instance)

	switch v.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Func, reflect.Chan:
		return !v.IsNil()
	case reflect.Struct:
		return true
	default:
		return false
	}
}

func fieldIdentifier(identifier string) zap.Field {
	return zap.String("identifier", identifier)
}

func fieldClass(className string) zap.Field {
	return zap.String("class", className)
}
