package di

// ClassBindingRule builds a class by autowiring its constructor: every
// leading class-typed parameter is resolved through the container, and the
// caller's extra arguments fill the trailing parameters.
type ClassBindingRule struct {
	container    *Container
	className    string
	dependencies []string
}

// NewClassBindingRule creates a rule building className.
func NewClassBindingRule(c *Container, className string) *ClassBindingRule {
	return &ClassBindingRule{container: c, className: className}
}

// ClassName returns the class the rule was bound to, before alias substitution.
func (r *ClassBindingRule) ClassName() string {
	return r.className
}

// Dependencies returns the rule identifiers injected by the last resolution.
func (r *ClassBindingRule) Dependencies() []string {
	return r.dependencies
}

// Resolve implements Rule.
func (r *ClassBindingRule) Resolve(args ...any) (any, error) {
	c := r.container

	className := c.classIndex.ResolveClassToAlias(r.className)

	entry, ok := c.types.get(className)
	if !ok {
		return nil, ErrInvalidBinding(className, "unknown class")
	}

	params, err := entry.introspect()
	if err != nil {
		return nil, err
	}

	// Explicit arguments bind to the trailing parameters
	leading := params
	if len(args) > 0 {
		leading = params[:max(0, len(params)-len(args))]
	}

	resolved := make([]any, 0, len(params)+len(args))
	dependencies := make([]string, 0, len(leading))

	for _, param := range leading {
		if !param.nominal {
			if param.optional {
				break
			}

			return nil, ErrUnresolvableParameter(className, param.index)
		}

		identifier, err := r.dependencyRule(c.types.nameOf(param.typ))
		if err != nil {
			return nil, err
		}

		instance, err := c.GetObject(identifier)
		if err != nil {
			return nil, err
		}

		resolved = append(resolved, instance)
		dependencies = append(dependencies, identifier)
	}

	r.dependencies = dependencies

	return entry.construct(append(resolved, args...))
}

// dependencyRule finds the rule serving dependency, synthesizing a singleton
// class binding under a fresh identifier when none exists yet. The binding
// goes to the class the index looks up for dependency, so later requests for
// the same class converge on the synthesized rule.
func (r *ClassBindingRule) dependencyRule(dependency string) (string, error) {
	c := r.container

	if identifier, ok := c.classIndex.ResolveClassToRule(dependency); ok {
		return identifier, nil
	}

	identifier := c.newID()
	if err := c.BindSingletonRuleToClass(identifier, c.classIndex.ResolveAliasToClass(dependency)); err != nil {
		return "", err
	}

	c.logger.Debug("dependency rule synthesized", fieldIdentifier(identifier), fieldClass(dependency))

	return identifier, nil
}

// SingletonClassBindingRule autowires its class once and returns the cached
// instance afterwards. Arguments passed after the first resolution are ignored.
type SingletonClassBindingRule struct {
	ClassBindingRule

	store InstanceStore
}

// NewSingletonClassBindingRule creates a memoizing rule building className.
func NewSingletonClassBindingRule(c *Container, className string) *SingletonClassBindingRule {
	return &SingletonClassBindingRule{ClassBindingRule: ClassBindingRule{container: c, className: className}}
}

// Resolve implements Rule.
func (r *SingletonClassBindingRule) Resolve(args ...any) (any, error) {
	return memoize(&r.store, func() (any, error) {
		return r.ClassBindingRule.Resolve(args...)
	})
}
