package di

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeConstructor_Params(t *testing.T) {
	info, err := analyzeConstructor(func(
		a *classA,
		g greeter,
		ctx context.Context,
		name string,
		tags []string,
		err error,
		opts ...*classB,
	) *classC {
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, reflect.TypeOf(&classC{}), info.result)
	assert.False(t, info.hasError)
	require.Len(t, info.params, 7)

	expected := []struct {
		nominal  bool
		optional bool
	}{
		{true, false},  // *classA
		{true, false},  // greeter
		{true, false},  // context.Context
		{false, false}, // string
		{false, false}, // []string
		{false, false}, // error is predeclared
		{true, true},   // ...*classB
	}

	for i, want := range expected {
		assert.Equal(t, i, info.params[i].index)
		assert.Equal(t, want.nominal, info.params[i].nominal, "param %d nominal", i)
		assert.Equal(t, want.optional, info.params[i].optional, "param %d optional", i)
	}

	// The variadic parameter reports its element type
	assert.Equal(t, reflect.TypeOf(&classB{}), info.params[6].typ)
}

func TestAnalyzeConstructor_ErrorResult(t *testing.T) {
	info, err := analyzeConstructor(newClassFailing)
	require.NoError(t, err)

	assert.True(t, info.hasError)
	assert.Equal(t, reflect.TypeOf(&classFailing{}), info.result)
}

func TestAnalyzeConstructor_Invalid(t *testing.T) {
	tests := []struct {
		name        string
		constructor any
	}{
		{"nil", nil},
		{"not a function", "newClassA"},
		{"no results", func(*classA) {}},
		{"only error", func() error { return nil }},
		{"error first", func() (error, *classA) { return nil, nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := analyzeConstructor(tt.constructor)
			assert.Error(t, err)
		})
	}
}

func TestIsNominal(t *testing.T) {
	type localStruct struct{}

	assert.True(t, isNominal(reflect.TypeOf(classA{})))
	assert.True(t, isNominal(reflect.TypeOf(&classA{})))
	assert.True(t, isNominal(reflect.TypeOf(localStruct{})))
	assert.True(t, isNominal(reflect.TypeOf((*greeter)(nil)).Elem()))

	assert.False(t, isNominal(reflect.TypeOf(0)))
	assert.False(t, isNominal(reflect.TypeOf("")))
	assert.False(t, isNominal(reflect.TypeOf(struct{}{})))
	assert.False(t, isNominal(reflect.TypeOf(map[string]int{})))
	assert.False(t, isNominal(reflect.TypeOf(func() {})))
	assert.False(t, isNominal(reflect.TypeOf((*error)(nil)).Elem()))
	assert.False(t, isNominal(reflect.TypeOf(new(int))))
}

func TestCanonicalName(t *testing.T) {
	assert.Equal(t, "github.com/liftkit/dependency-injection.classA", canonicalName(reflect.TypeOf(classA{})))
	assert.Equal(t, "*github.com/liftkit/dependency-injection.classA", canonicalName(reflect.TypeOf(&classA{})))
	assert.Equal(t, "context.Context", canonicalName(reflect.TypeOf((*context.Context)(nil)).Elem()))
	assert.Equal(t, "[]string", canonicalName(reflect.TypeOf([]string{})))
}

func TestConstructorCall(t *testing.T) {
	info, err := analyzeConstructor(newClassF)
	require.NoError(t, err)

	a := &classA{id: 7}

	obj, err := info.call("ClassF", []any{a})
	require.NoError(t, err)
	assert.Same(t, a, obj.(*classF).a)
	assert.True(t, obj.(*classF).param)

	obj, err = info.call("ClassF", []any{a, false})
	require.NoError(t, err)
	assert.False(t, obj.(*classF).param)

	_, err = info.call("ClassF", nil)
	assert.ErrorIs(t, err, ErrArgumentMismatchSentinel)

	_, err = info.call("ClassF", []any{a, "not a bool"})
	assert.ErrorIs(t, err, ErrArgumentMismatchSentinel)

	_, err = info.call("ClassF", []any{a, nil})
	assert.ErrorIs(t, err, ErrArgumentMismatchSentinel)
}

func TestConstructorCall_InterfaceArgument(t *testing.T) {
	info, err := analyzeConstructor(newWelcome)
	require.NoError(t, err)

	obj, err := info.call("Welcome", []any{englishGreeter{}})
	require.NoError(t, err)
	assert.Equal(t, "hello", obj.(*welcome).g.Greet())
}

func TestConstructorCall_Error(t *testing.T) {
	info, err := analyzeConstructor(newClassFailing)
	require.NoError(t, err)

	_, err = info.call("ClassFailing", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConstructionFailedSentinel)
	assert.True(t, errors.Is(err, errFailingConstructor))
}
