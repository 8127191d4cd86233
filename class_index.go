package di

// ClassIndex keeps the bidirectional mappings between rule identifiers, class
// names and alias substitutions.
//
// An alias replaces a class with one of its subtypes: after
// BindClassToAlias("Mailer", "SMTPMailer"), building "Mailer" builds
// "SMTPMailer", and a rule bound to "Mailer" also serves requests for
// "SMTPMailer".
type ClassIndex struct {
	classToRule  map[string]string
	ruleToClass  map[string]string
	classToAlias map[string]string
	aliasToClass map[string]string
	types        *typeRegistry
}

// newClassIndex creates an empty index validating class names against types.
func newClassIndex(types *typeRegistry) *ClassIndex {
	return &ClassIndex{
		classToRule:  make(map[string]string),
		ruleToClass:  make(map[string]string),
		classToAlias: make(map[string]string),
		aliasToClass: make(map[string]string),
		types:        types,
	}
}

// BindRuleToClass records that the rule identifier builds className, in both
// directions.
func (x *ClassIndex) BindRuleToClass(identifier, className string) error {
	if err := x.validate(identifier, className); err != nil {
		return err
	}

	x.classToRule[className] = identifier
	x.ruleToClass[identifier] = className

	return nil
}

// BindClassToRule points className at an existing rule without recording the
// inverse, since the rule may build something else entirely.
func (x *ClassIndex) BindClassToRule(identifier, className string) error {
	if err := x.validate(identifier, className); err != nil {
		return err
	}

	x.classToRule[className] = identifier

	return nil
}

// BindClassToAlias substitutes aliasClassName whenever className is built.
// aliasClassName must be a proper subtype of className; on failure the index
// is left untouched.
func (x *ClassIndex) BindClassToAlias(className, aliasClassName string) error {
	base, ok := x.types.get(className)
	if !ok {
		return ErrInvalidBinding(className, "unknown class")
	}

	alias, ok := x.types.get(aliasClassName)
	if !ok {
		return ErrInvalidBinding(aliasClassName, "unknown class")
	}

	if !alias.isProperSubtypeOf(base) {
		return ErrInvalidBinding(aliasClassName, "must be a subtype of "+className)
	}

	x.classToAlias[className] = aliasClassName
	x.aliasToClass[aliasClassName] = className

	return nil
}

// ResolveAliasToClass maps an alias target back to the class it stands in
// for, or returns className unchanged.
func (x *ClassIndex) ResolveAliasToClass(className string) string {
	if original, ok := x.aliasToClass[className]; ok {
		return original
	}

	return className
}

// ResolveClassToAlias returns the alias registered for className, or
// className unchanged.
func (x *ClassIndex) ResolveClassToAlias(className string) string {
	if alias, ok := x.classToAlias[className]; ok {
		return alias
	}

	return className
}

// ResolveClassToRule returns the rule identifier bound to className after
// alias substitution. A false result means no rule is registered; it is not
// an error.
func (x *ClassIndex) ResolveClassToRule(className string) (string, bool) {
	identifier, ok := x.classToRule[x.ResolveAliasToClass(className)]
	return identifier, ok
}

// ResolveRuleToClass returns the class a rule identifier was bound to.
func (x *ClassIndex) ResolveRuleToClass(identifier string) (string, bool) {
	className, ok := x.ruleToClass[identifier]
	return className, ok
}

func (x *ClassIndex) validate(identifier, className string) error {
	if identifier == "" {
		return ErrInvalidBinding(className, "rule identifier cannot be empty")
	}

	if className == "" {
		return ErrInvalidBinding(identifier, "class name cannot be empty")
	}

	if !x.types.has(className) {
		return ErrInvalidBinding(className, "unknown class")
	}

	return nil
}
