// Package types implements the type-coercion subsystem: descriptors for
// every convertible type, the registry that interns them, replacement
// rules for caller-declared types, and array marshaling with null
// bitmaps.
package types

import (
	"errors"
	"fmt"

	"github.com/Sednai/pljava/catalog"
	"github.com/Sednai/pljava/datum"
	"github.com/Sednai/pljava/jvm"
	"github.com/Sednai/pljava/mem"
)

// ErrNoSuchType is returned when a managed type name has no descriptor.
var ErrNoSuchType = errors.New("types: no such managed type")

// Layout describes the fixed storage layout of a native type as used by
// array packing: storage length in bytes (-1 for variable length),
// alignment class, and pass-by-value flag.
type Layout struct {
	Length  int16
	Align   catalog.Alignment
	ByValue bool
}

// RowBridge constructs and inspects managed row accessors for composite
// values. It is an external collaborator; the bridge only consumes it.
type RowBridge interface {
	// NewRowReader wraps a native composite value in a managed
	// read-only row accessor.
	NewRowReader(d datum.Datum) (jvm.Object, error)

	// NewRowWriter creates an empty managed writable row of the given
	// native row type, used as the trailing out-parameter of
	// complex-returning routines.
	NewRowWriter(rowType datum.Oid) (jvm.Object, error)

	// WriterRow extracts the committed native row from a writer, with
	// its null indicator. The row must be allocated so it outlives the
	// call frame.
	WriterRow(w jvm.Object) (datum.Datum, bool, error)
}

// SetBridge hands a returned result-set provider to the engine's
// set-returning machinery.
type SetBridge interface {
	ProviderResult(rowType datum.Oid, provider jvm.Object) (datum.Datum, bool, error)
}

// Context carries the per-call state coercions need: the invocation's
// memory regions and the row/set collaborators.
type Context struct {
	Inv  *mem.Invocation
	Rows RowBridge
	Sets SetBridge
}

// Upper returns the region that engine-visible results are built in.
func (c *Context) Upper() *mem.Region {
	if c == nil || c.Inv == nil {
		return nil
	}
	return c.Inv.Upper()
}

// Type describes one convertible type: how a native value becomes a
// managed value and back, plus the metadata signature matching and array
// packing need.
//
// Descriptors are interned by the Registry and shared; they are never
// mutated after construction except to attach a lazily-built array
// variant.
type Type interface {
	// Oid is the native type identifier the descriptor is bound to.
	Oid() datum.Oid

	// JavaName is the fully qualified managed-type name, the token used
	// in explicit parameter declarations.
	JavaName() string

	// JNISignature is the compact signature token used for callable
	// matching.
	JNISignature() string

	// Kind is the managed slot type values of this descriptor occupy.
	Kind() jvm.Kind

	// IsPrimitive reports whether the managed side is an unboxed
	// primitive.
	IsPrimitive() bool

	// ObjectType returns the boxed counterpart for primitives and
	// primitive arrays, nil otherwise.
	ObjectType() Type

	// ElementType returns the element descriptor for arrays, nil
	// otherwise.
	ElementType() Type

	// Layout returns the native storage layout.
	Layout() Layout

	// CanReplace decides whether this (caller-declared) type may stand
	// in for the given catalog-inferred default type.
	CanReplace(other Type) bool

	// CoerceDatum converts a non-null native value to a managed value.
	CoerceDatum(cx *Context, d datum.Datum) (jvm.Value, error)

	// CoerceValue converts a managed value back to a native value,
	// reporting whether the result is null. Out-of-line results are
	// allocated in the context's upper region.
	CoerceValue(cx *Context, v jvm.Value) (datum.Datum, bool, error)
}

// CanReplace reports whether candidate may stand in for declared.
func CanReplace(candidate, declared Type) bool {
	return candidate.CanReplace(declared)
}

func coerceRoleError(t Type, dir string) error {
	return fmt.Errorf("types: %s cannot be coerced %s", t.JavaName(), dir)
}
