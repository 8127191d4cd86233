package di

import (
	"fmt"
	"reflect"
	"sort"
)

// classEntry is a class known to the container: a Go type plus the constructor
// that builds it. Interface classes have no constructor.
type classEntry struct {
	name        string
	typ         reflect.Type
	constructor *constructorInfo
}

// typeRegistry maps class names to Go types. It stands in for the runtime
// lookup of a type by name, which Go does not offer.
type typeRegistry struct {
	byName map[string]*classEntry
	byType map[reflect.Type]*classEntry
}

// newTypeRegistry creates a new type registry
func newTypeRegistry() *typeRegistry {
	return &typeRegistry{
		byName: make(map[string]*classEntry),
		byType: make(map[reflect.Type]*classEntry),
	}
}

// register adds a class, refusing a second definition of the same name or type
func (r *typeRegistry) register(entry *classEntry) error {
	if entry.name == "" {
		return ErrInvalidBinding(entry.typ.String(), "class name cannot be empty")
	}

	if _, exists := r.byName[entry.name]; exists {
		return ErrInvalidBinding(entry.name, "class already defined")
	}

	if existing, exists := r.byType[entry.typ]; exists {
		return ErrInvalidBinding(entry.name,
			fmt.Sprintf("type %s already defined as '%s'", entry.typ, existing.name))
	}

	r.byName[entry.name] = entry
	r.byType[entry.typ] = entry

	return nil
}

// get retrieves a class by name
func (r *typeRegistry) get(name string) (*classEntry, bool) {
	entry, ok := r.byName[name]
	return entry, ok
}

// has checks if a class name is known
func (r *typeRegistry) has(name string) bool {
	_, ok := r.byName[name]
	return ok
}

// nameOf returns the class name registered for t, or its canonical name when
// t was never defined. The canonical name of an undefined type fails every
// later lookup, which surfaces as an unknown class.
func (r *typeRegistry) nameOf(t reflect.Type) string {
	if entry, ok := r.byType[t]; ok {
		return entry.name
	}

	return canonicalName(t)
}

// names returns all class names in sorted order
func (r *typeRegistry) names() []string {
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// introspect returns the ordered constructor parameters of the class
func (e *classEntry) introspect() ([]paramInfo, error) {
	if e.constructor == nil {
		return nil, ErrNotInstantiable(e.name)
	}

	return e.constructor.params, nil
}

// construct builds an instance from a complete argument list
func (e *classEntry) construct(args []any) (any, error) {
	if e.constructor == nil {
		return nil, ErrNotInstantiable(e.name)
	}

	return e.constructor.call(e.name, args)
}

// isProperSubtypeOf reports whether instances of e can stand in for base.
// Go has no class inheritance, so only interface classes have subtypes.
func (e *classEntry) isProperSubtypeOf(base *classEntry) bool {
	if e.typ == base.typ || base.typ.Kind() != reflect.Interface {
		return false
	}

	return e.typ.Implements(base.typ)
}
