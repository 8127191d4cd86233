package di

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestMiddleware_NestedOrder(t *testing.T) {
	var calls []string

	c := newTestContainer(t, WithMiddleware(&FuncMiddleware{
		BeforeResolveFunc: func(identifier string) error {
			calls = append(calls, "before:"+identifier)
			return nil
		},
		AfterResolveFunc: func(identifier string, instance any, err error) error {
			calls = append(calls, "after:"+identifier)
			return nil
		},
	}))

	_, err := c.Get("ClassC")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"before:ClassC",
		"before:rule-1",
		"after:rule-1",
		"after:ClassC",
	}, calls)
}

func TestMiddleware_ChainOrder(t *testing.T) {
	var calls []string

	record := func(name string) Middleware {
		return &FuncMiddleware{
			BeforeResolveFunc: func(string) error {
				calls = append(calls, name)
				return nil
			},
		}
	}

	c := New()
	c.Use(record("first"))
	c.Use(record("second"))

	require.NoError(t, c.StoreObject("svc", &testService{}))

	_, err := c.Get("svc")
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, calls)
}

func TestMiddleware_BeforeResolveAborts(t *testing.T) {
	c := New()
	calls := 0
	abort := errors.New("aborted")

	require.NoError(t, c.SetRule("svc", func(c *Container, _ ...any) (any, error) {
		calls++
		return &testService{}, nil
	}))

	c.Use(&FuncMiddleware{
		BeforeResolveFunc: func(string) error { return abort },
	})

	_, err := c.Get("svc")
	assert.ErrorIs(t, err, abort)
	assert.Equal(t, 0, calls)
}

func TestMiddleware_AfterResolveSeesError(t *testing.T) {
	c := New()

	var seen error

	c.Use(&FuncMiddleware{
		AfterResolveFunc: func(identifier string, instance any, err error) error {
			seen = err
			return nil
		},
	})

	_, err := c.Get("missing")
	require.Error(t, err)
	assert.ErrorIs(t, seen, ErrUnknownIdentifierSentinel)
}

func TestMiddleware_AfterResolveReplacesResult(t *testing.T) {
	c := New()
	rejected := errors.New("rejected")

	require.NoError(t, c.StoreObject("svc", &testService{}))

	c.Use(&FuncMiddleware{
		AfterResolveFunc: func(string, any, error) error { return rejected },
	})

	obj, err := c.Get("svc")
	assert.ErrorIs(t, err, rejected)
	assert.Nil(t, obj)
}

func TestLoggingMiddleware(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)

	c := newTestContainer(t, WithMiddleware(LoggingMiddleware(zap.New(core))))

	_, err := c.Get("ClassC")
	require.NoError(t, err)

	resolved := logs.FilterMessage("resolved").All()
	require.Len(t, resolved, 2)

	// The dependency finishes first
	assert.Equal(t, "rule-1", resolved[0].ContextMap()["identifier"])
	assert.Equal(t, "*di.classA", resolved[0].ContextMap()["type"])
	assert.Equal(t, "ClassC", resolved[1].ContextMap()["identifier"])

	_, err = c.Get("missing")
	require.Error(t, err)

	failed := logs.FilterMessage("resolution failed").All()
	require.Len(t, failed, 1)
	assert.Equal(t, zapcore.WarnLevel, failed[0].Level)
	assert.Equal(t, "missing", failed[0].ContextMap()["identifier"])
}
