package jvm

import "context"

// Loader is an opaque class-loading context. Each schema resolves to its
// own loader.
type Loader interface {
	any
}

// Class is an opaque handle to a loaded managed class.
type Class interface {
	Name() string
}

// Method is an opaque handle to a resolved callable target.
type Method interface {
	Name() string
	Descriptor() string
}

// Runtime is the embedding layer of the managed object runtime. The
// bridge consumes it; bootstrapping and teardown are someone else's
// concern.
//
// Any call may report a pending foreign exception as a *Throwable error,
// or ErrAbort when a fatal native unwind is already in progress. ErrAbort
// must be propagated by callers without wrapping.
type Runtime interface {
	// SchemaLoader resolves the loading context for routines declared in
	// the given schema.
	SchemaLoader(ctx context.Context, schema string) (Loader, error)

	// LoadClass loads a class by slash-separated path within a loading
	// context.
	LoadClass(ctx context.Context, loader Loader, path string) (Class, error)

	// StaticMethod resolves a static callable target by name and
	// signature. A missing member is reported as ErrMethodNotFound
	// (possibly wrapped); the binder retries with a boxed return
	// signature before giving up.
	StaticMethod(cls Class, name, sig string) (Method, error)

	// CallStatic invokes a resolved target with a packed argument list.
	CallStatic(ctx context.Context, cls Class, m Method, args []Value) (Value, error)
}
