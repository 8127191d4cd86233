package di

import (
	"time"

	"go.uber.org/zap"
)

// Middleware provides hooks around every GetObject call, including the
// nested calls autowiring makes for constructor dependencies.
type Middleware interface {
	// BeforeResolve is called before resolving an identifier.
	// Return error to abort resolution.
	BeforeResolve(identifier string) error

	// AfterResolve is called after resolving an identifier.
	// Called even if resolution failed (instance and err may both be set).
	AfterResolve(identifier string, instance any, err error) error
}

// middlewareChain manages multiple middleware.
type middlewareChain struct {
	middleware []Middleware
}

// newMiddlewareChain creates a new middleware chain.
func newMiddlewareChain() *middlewareChain {
	return &middlewareChain{
		middleware: make([]Middleware, 0),
	}
}

// add appends middleware to the chain.
func (m *middlewareChain) add(middleware Middleware) {
	m.middleware = append(m.middleware, middleware)
}

// beforeResolve calls BeforeResolve on all middleware.
func (m *middlewareChain) beforeResolve(identifier string) error {
	for _, mw := range m.middleware {
		if err := mw.BeforeResolve(identifier); err != nil {
			return err
		}
	}
	return nil
}

// afterResolve calls AfterResolve on all middleware.
func (m *middlewareChain) afterResolve(identifier string, instance any, err error) error {
	for _, mw := range m.middleware {
		if mwErr := mw.AfterResolve(identifier, instance, err); mwErr != nil {
			return mwErr
		}
	}
	return nil
}

// Use adds middleware to the container.
// Middleware is called in the order they are added.
func (c *Container) Use(middleware Middleware) {
	c.middleware.add(middleware)
}

// FuncMiddleware wraps functions as Middleware.
type FuncMiddleware struct {
	BeforeResolveFunc func(identifier string) error
	AfterResolveFunc  func(identifier string, instance any, err error) error
}

// BeforeResolve implements Middleware.
func (f *FuncMiddleware) BeforeResolve(identifier string) error {
	if f.BeforeResolveFunc != nil {
		return f.BeforeResolveFunc(identifier)
	}
	return nil
}

// AfterResolve implements Middleware.
func (f *FuncMiddleware) AfterResolve(identifier string, instance any, err error) error {
	if f.AfterResolveFunc != nil {
		return f.AfterResolveFunc(identifier, instance, err)
	}
	return nil
}

// LoggingMiddleware logs every resolution with its duration. Nested
// resolutions are timed individually, so a parent's duration includes its
// dependencies.
func LoggingMiddleware(logger *zap.Logger) Middleware {
	return &loggingMiddleware{
		logger: logger,
		starts: make(map[string][]time.Time),
	}
}

type loggingMiddleware struct {
	logger *zap.Logger
	starts map[string][]time.Time
}

func (l *loggingMiddleware) BeforeResolve(identifier string) error {
	l.starts[identifier] = append(l.starts[identifier], time.Now())
	return nil
}

func (l *loggingMiddleware) AfterResolve(identifier string, instance any, err error) error {
	var elapsed time.Duration

	// Resolutions of one identifier nest, so the latest start is ours
	if starts := l.starts[identifier]; len(starts) > 0 {
		elapsed = time.Since(starts[len(starts)-1])
		if len(starts) == 1 {
			delete(l.starts, identifier)
		} else {
			l.starts[identifier] = starts[:len(starts)-1]
		}
	}

	if err != nil {
		l.logger.Warn("resolution failed",
			fieldIdentifier(identifier),
			zap.Duration("duration", elapsed),
			zap.Error(err),
		)

		return nil
	}

	l.logger.Debug("resolved",
		fieldIdentifier(identifier),
		zap.String("type", typeName(instance)),
		zap.Duration("duration", elapsed),
	)

	return nil
}
