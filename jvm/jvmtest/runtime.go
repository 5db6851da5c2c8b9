// Package jvmtest provides an in-process fake of the managed runtime
// for tests: classes and static methods are registered as Go functions,
// and row/set bridge stand-ins capture what crosses the boundary.
package jvmtest

import (
	"context"
	"fmt"
	"sync"

	"github.com/Sednai/pljava/jvm"
)

// StaticFunc is the Go body of a registered static method.
type StaticFunc func(args []jvm.Value) (jvm.Value, error)

// Method is a registered static target.
type Method struct {
	name string
	sig  string
	fn   StaticFunc
}

// Name implements jvm.Method.
func (m *Method) Name() string { return m.name }

// Descriptor implements jvm.Method.
func (m *Method) Descriptor() string { return m.sig }

// Class is a registered class with its static methods keyed by name and
// signature.
type Class struct {
	path    string
	methods map[string]*Method
}

// Name implements jvm.Class.
func (c *Class) Name() string { return c.path }

// Static registers a static method body under a name and signature.
// It returns the class for chaining.
func (c *Class) Static(name, sig string, fn StaticFunc) *Class {
	c.methods[name+sig] = &Method{name: name, sig: sig, fn: fn}
	return c
}

type loader string

// Runtime is a fake jvm.Runtime backed by registered Go functions.
type Runtime struct {
	mu      sync.Mutex
	classes map[string]*Class

	// Schemas records every schema a loader was requested for, in order.
	Schemas []string
	// Calls counts CallStatic invocations.
	Calls int
}

// NewRuntime builds an empty fake runtime.
func NewRuntime() *Runtime {
	return &Runtime{classes: make(map[string]*Class)}
}

// DefineClass registers a class under a slash-separated path.
func (r *Runtime) DefineClass(path string) *Class {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := &Class{path: path, methods: make(map[string]*Method)}
	r.classes[path] = c
	return c
}

// SchemaLoader implements jvm.Runtime.
func (r *Runtime) SchemaLoader(ctx context.Context, schema string) (jvm.Loader, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Schemas = append(r.Schemas, schema)
	return loader(schema), nil
}

// LoadClass implements jvm.Runtime.
func (r *Runtime) LoadClass(ctx context.Context, _ jvm.Loader, path string) (jvm.Class, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.classes[path]
	if !ok {
		return nil, fmt.Errorf("%w: %s", jvm.ErrClassNotFound, path)
	}
	return c, nil
}

// StaticMethod implements jvm.Runtime.
func (r *Runtime) StaticMethod(cls jvm.Class, name, sig string) (jvm.Method, error) {
	c, ok := cls.(*Class)
	if !ok {
		return nil, fmt.Errorf("%w: foreign class handle", jvm.ErrMethodNotFound)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := c.methods[name+sig]
	if !ok {
		return nil, fmt.Errorf("%w: %s.%s%s", jvm.ErrMethodNotFound, c.path, name, sig)
	}
	return m, nil
}

// CallStatic implements jvm.Runtime.
func (r *Runtime) CallStatic(ctx context.Context, _ jvm.Class, m jvm.Method, args []jvm.Value) (jvm.Value, error) {
	fm, ok := m.(*Method)
	if !ok {
		return jvm.Value{}, fmt.Errorf("%w: foreign method handle", jvm.ErrMethodNotFound)
	}
	r.mu.Lock()
	r.Calls++
	r.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return jvm.Value{}, err
	}
	return fm.fn(args)
}
