// Package di resolves named identifiers and classes into fully constructed
// instances, supplying each instance's own dependencies by inspecting its
// constructor.
//
// Classes are Go types made known to a container with DefineClass (a
// constructor function) or DefineInterface. Rules decide how an identifier
// produces a value: a callback factory, a class binding that autowires a
// constructor, or a stored object, each optionally memoized as a singleton.
//
//	c := di.New()
//	c.DefineClass(NewDatabase)
//	name, _ := c.DefineClass(NewUserService) // func NewUserService(*Database) *UserService
//
//	instance, err := c.Get(name) // builds *Database once and injects it
//
// Resolving a class name without a rule synthesizes one: a singleton when no
// extra arguments are given, a fresh instance per call when they are. Extra
// arguments fill the trailing constructor parameters; the leading ones are
// autowired.
//
// Singleton rules ignore the arguments of every call after the first.
//
// A Container is not safe for concurrent use and does not detect dependency
// cycles. Use Lazy to defer one side of a cycle.
package di
