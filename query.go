package di

import (
	"fmt"
	"sort"
)

// RuleKind identifies the strategy a rule uses to produce instances.
type RuleKind int

const (
	RuleKindCallback RuleKind = iota
	RuleKindSingletonCallback
	RuleKindClassBinding
	RuleKindSingletonClassBinding
	RuleKindStoredObject
)

// String implements fmt.Stringer.
func (k RuleKind) String() string {
	switch k {
	case RuleKindCallback:
		return "callback"
	case RuleKindSingletonCallback:
		return "singleton_callback"
	case RuleKindClassBinding:
		return "class_binding"
	case RuleKindSingletonClassBinding:
		return "singleton_class_binding"
	case RuleKindStoredObject:
		return "stored_object"
	default:
		return fmt.Sprintf("RuleKind(%d)", int(k))
	}
}

// IsSingleton reports whether rules of this kind return one instance.
func (k RuleKind) IsSingleton() bool {
	return k != RuleKindCallback && k != RuleKindClassBinding
}

// RuleInfo contains diagnostic information about a registered rule.
type RuleInfo struct {
	Identifier string
	Kind       RuleKind

	// Class is the class a class binding rule builds, before alias substitution.
	Class string

	// Cached reports whether a singleton rule holds its instance.
	Cached bool

	// Type is the dynamic type of the cached instance, empty when none.
	Type string

	// Dependencies are the rule identifiers injected by the last build of a
	// class binding rule.
	Dependencies []string
}

// Identifiers returns all rule identifiers, sorted.
func (c *Container) Identifiers() []string {
	identifiers := make([]string, 0, len(c.rules))
	for identifier := range c.rules {
		identifiers = append(identifiers, identifier)
	}

	sort.Strings(identifiers)

	return identifiers
}

// Inspect returns diagnostic information about a rule. The second result is
// false when no rule is registered under identifier.
func (c *Container) Inspect(identifier string) (RuleInfo, bool) {
	rule, exists := c.rules[identifier]
	if !exists {
		return RuleInfo{Identifier: identifier}, false
	}

	info := RuleInfo{Identifier: identifier}

	var store *InstanceStore

	switch r := rule.(type) {
	case *SingletonCallbackRule:
		info.Kind = RuleKindSingletonCallback
		store = &r.store
	case *CallbackRule:
		info.Kind = RuleKindCallback
	case *SingletonClassBindingRule:
		info.Kind = RuleKindSingletonClassBinding
		info.Class = r.className
		info.Dependencies = r.dependencies
		store = &r.store
	case *ClassBindingRule:
		info.Kind = RuleKindClassBinding
		info.Class = r.className
		info.Dependencies = r.dependencies
	case *StoredObjectRule:
		info.Kind = RuleKindStoredObject
		store = &r.store
	}

	if store != nil && store.Has() {
		info.Cached = true
		info.Type = typeName(store.Get())
	}

	return info, true
}

// RuleQuery defines criteria for querying rules.
type RuleQuery struct {
	// Kinds filters by rule kind. Empty matches all kinds.
	Kinds []RuleKind

	// Class filters class binding rules by the class they build.
	// Empty string matches all rules.
	Class string

	// Cached filters by whether a singleton holds its instance.
	// nil matches all rules.
	Cached *bool
}

// Query returns information about rules matching the query criteria, sorted
// by identifier.
//
// Example:
//
//	// Find singleton class bindings that have not been built yet
//	cached := false
//	pending := c.Query(di.RuleQuery{
//	    Kinds:  []di.RuleKind{di.RuleKindSingletonClassBinding},
//	    Cached: &cached,
//	})
func (c *Container) Query(query RuleQuery) []RuleInfo {
	var results []RuleInfo

	for _, identifier := range c.Identifiers() {
		info, _ := c.Inspect(identifier)

		if len(query.Kinds) > 0 && !containsKind(query.Kinds, info.Kind) {
			continue
		}

		if query.Class != "" && info.Class != query.Class {
			continue
		}

		if query.Cached != nil && info.Cached != *query.Cached {
			continue
		}

		results = append(results, info)
	}

	return results
}

// FindByKind returns all rules of the given kinds.
func (c *Container) FindByKind(kinds ...RuleKind) []RuleInfo {
	return c.Query(RuleQuery{Kinds: kinds})
}

func containsKind(kinds []RuleKind, kind RuleKind) bool {
	for _, k := range kinds {
		if k == kind {
			return true
		}
	}
	return false
}

func typeName(instance any) string {
	if instance == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%T", instance)
}
