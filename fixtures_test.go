package di

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

// Test classes for autowiring
type classA struct {
	id int
}

type classB struct{}

type classC struct {
	a *classA
}

type classD struct {
	c *classC
	a *classA
}

type classE struct {
	a *classA
	b *classB
}

type classF struct {
	a     *classA
	param bool
}

type classG struct {
	a     *classA
	param bool
}

type classNamed struct {
	name string
}

type classFailing struct{}

type classNeedsFailing struct {
	f *classFailing
}

type greeter interface {
	Greet() string
}

type englishGreeter struct{}

func (englishGreeter) Greet() string { return "hello" }

type welcome struct {
	g greeter
}

var errFailingConstructor = errors.New("failing constructor")

func newClassA() *classA { return &classA{} }
func newClassB() *classB { return &classB{} }
func newClassC(a *classA) *classC { return &classC{a: a} }
func newClassD(c *classC, a *classA) *classD { return &classD{c: c, a: a} }
func newClassE(a *classA, b *classB) *classE { return &classE{a: a, b: b} }
func newClassNamed(name string) *classNamed { return &classNamed{name: name} }
func newEnglishGreeter() *englishGreeter { return &englishGreeter{} }
func newWelcome(g greeter) *welcome { return &welcome{g: g} }
func newClassNeedsFailing(f *classFailing) *classNeedsFailing { return &classNeedsFailing{f: f} }

func newClassF(a *classA, param ...bool) *classF {
	p := true
	if len(param) > 0 {
		p = param[0]
	}
	return &classF{a: a, param: p}
}

func newClassG(a *classA, param ...bool) *classG {
	p := true
	if len(param) > 0 {
		p = param[0]
	}
	return &classG{a: a, param: p}
}

func newClassFailing() (*classFailing, error) {
	return nil, errFailingConstructor
}

// sequentialIDs returns a deterministic identifier generator.
func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("rule-%d", n)
	}
}

// newTestContainer creates a container with the test classes defined under
// short names.
func newTestContainer(t *testing.T, opts ...Option) *Container {
	t.Helper()

	c := New(append([]Option{WithIDGenerator(sequentialIDs())}, opts...)...)

	classes := []struct {
		name        string
		constructor any
	}{
		{"ClassA", newClassA},
		{"ClassB", newClassB},
		{"ClassC", newClassC},
		{"ClassD", newClassD},
		{"ClassE", newClassE},
		{"ClassF", newClassF},
		{"ClassG", newClassG},
		{"ClassNamed", newClassNamed},
		{"ClassFailing", newClassFailing},
		{"ClassNeedsFailing", newClassNeedsFailing},
		{"EnglishGreeter", newEnglishGreeter},
		{"Welcome", newWelcome},
	}

	for _, class := range classes {
		_, err := c.DefineClass(class.constructor, WithClassName(class.name))
		require.NoError(t, err)
	}

	_, err := c.DefineInterface((*greeter)(nil), WithClassName("Greeter"))
	require.NoError(t, err)

	return c
}
