package di

import (
	"errors"
	"fmt"
	"reflect"
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// constructorInfo holds analyzed constructor metadata
type constructorInfo struct {
	fn       reflect.Value
	fnType   reflect.Type
	result   reflect.Type
	params   []paramInfo
	hasError bool
}

// paramInfo describes a constructor parameter
type paramInfo struct {
	typ      reflect.Type // Declared type, the element type for a variadic parameter
	index    int          // Position in function parameters
	nominal  bool         // Whether typ names a class that can be autowired
	optional bool         // Only the trailing variadic parameter is optional
}

// analyzeConstructor inspects a constructor function and extracts its
// parameter list and the class it produces.
func analyzeConstructor(constructor any) (*constructorInfo, error) {
	if constructor == nil {
		return nil, errors.New("constructor cannot be nil")
	}

	fnValue := reflect.ValueOf(constructor)
	fnType := fnValue.Type()

	if fnType.Kind() != reflect.Func {
		return nil, errors.New("constructor must be a function")
	}

	info := &constructorInfo{
		fn:     fnValue,
		fnType: fnType,
	}

	// Analyze parameters
	for i := 0; i < fnType.NumIn(); i++ {
		paramType := fnType.In(i)
		optional := fnType.IsVariadic() && i == fnType.NumIn()-1
		if optional {
			paramType = paramType.Elem()
		}

		info.params = append(info.params, paramInfo{
			typ:      paramType,
			index:    i,
			nominal:  isNominal(paramType),
			optional: optional,
		})
	}

	// Analyze results
	switch fnType.NumOut() {
	case 1:
	case 2:
		if fnType.Out(1) != errorType {
			return nil, errors.New("second return value must be error")
		}
		info.hasError = true
	default:
		return nil, errors.New("constructor must return an instance and an optional error")
	}

	info.result = fnType.Out(0)
	if info.result == errorType {
		return nil, errors.New("constructor must return at least one non-error value")
	}

	return info, nil
}

// isNominal reports whether t is a class type: a named struct, a pointer to a
// named struct, or a named interface declared in a package.
func isNominal(t reflect.Type) bool {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
		return t.Kind() == reflect.Struct && t.Name() != "" && t.PkgPath() != ""
	}

	switch t.Kind() {
	case reflect.Struct, reflect.Interface:
		return t.Name() != "" && t.PkgPath() != ""
	default:
		return false
	}
}

// canonicalName returns the default class name of t.
func canonicalName(t reflect.Type) string {
	if t.Kind() == reflect.Ptr {
		return "*" + canonicalName(t.Elem())
	}

	if t.Name() != "" && t.PkgPath() != "" {
		return t.PkgPath() + "." + t.Name()
	}

	return t.String()
}

// argType returns the type the argument at position i must be assignable to.
func (c *constructorInfo) argType(i int) reflect.Type {
	last := c.fnType.NumIn() - 1
	if c.fnType.IsVariadic() && i >= last {
		return c.fnType.In(last).Elem()
	}

	return c.fnType.In(i)
}

// call invokes the constructor with args, converting them to reflect values
// and checking the arity first so a bad argument list fails instead of panicking.
func (c *constructorInfo) call(className string, args []any) (any, error) {
	numIn := c.fnType.NumIn()

	if c.fnType.IsVariadic() {
		if len(args) < numIn-1 {
			return nil, ErrArgumentMismatch(className,
				fmt.Sprintf("expected at least %d arguments, got %d", numIn-1, len(args)))
		}
	} else if len(args) != numIn {
		return nil, ErrArgumentMismatch(className,
			fmt.Sprintf("expected %d arguments, got %d", numIn, len(args)))
	}

	in := make([]reflect.Value, len(args))

	for i, arg := range args {
		want := c.argType(i)

		value, err := argValue(arg, want)
		if err != nil {
			return nil, ErrArgumentMismatch(className, fmt.Sprintf("argument %d: %v", i, err))
		}

		in[i] = value
	}

	results := c.fn.Call(in)

	// Handle error return
	if c.hasError {
		if errResult := results[1]; !errResult.IsNil() {
			return nil, NewConstructionError(className, errResult.Interface().(error))
		}
	}

	return results[0].Interface(), nil
}

// argValue converts a caller supplied argument into a value of type want.
func argValue(arg any, want reflect.Type) (reflect.Value, error) {
	if arg == nil {
		switch want.Kind() {
		case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
			return reflect.Zero(want), nil
		default:
			return reflect.Value{}, fmt.Errorf("nil is not assignable to %s", want)
		}
	}

	value := reflect.ValueOf(arg)
	if !value.Type().AssignableTo(want) {
		return reflect.Value{}, fmt.Errorf("%s is not assignable to %s", value.Type(), want)
	}

	return value, nil
}
