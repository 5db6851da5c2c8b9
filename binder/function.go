package binder

import (
	"github.com/Sednai/pljava/datum"
	"github.com/Sednai/pljava/jvm"
	"github.com/Sednai/pljava/types"
)

// Function is a resolved callable: the loaded class and method handles
// plus the coercion plan for every parameter and the return value. A
// Function is immutable once built and safe to share across calls.
type Function struct {
	oid       datum.Oid
	class     string
	signature string

	params []types.Type
	ret    types.Type

	isTrigger     bool
	returnsSet    bool
	complexReturn bool
	rowType       datum.Oid

	cls    jvm.Class
	method jvm.Method
}

// Oid returns the bound routine's catalog key.
func (f *Function) Oid() datum.Oid { return f.oid }

// ClassName returns the dotted name of the implementing class.
func (f *Function) ClassName() string { return f.class }

// Signature returns the resolved method signature.
func (f *Function) Signature() string { return f.signature }

// Params returns the parameter descriptors in call order, including the
// synthetic trailing writer of complex-returning routines.
func (f *Function) Params() []types.Type { return f.params }

// Return returns the return descriptor.
func (f *Function) Return() types.Type { return f.ret }

// IsTrigger reports whether the function is bound for trigger calls.
func (f *Function) IsTrigger() bool { return f.isTrigger }

// ReturnsSet reports whether the function produces a row set through a
// provider.
func (f *Function) ReturnsSet() bool { return f.returnsSet }

// ComplexReturn reports whether the function writes its composite result
// through a trailing writer parameter instead of returning it.
func (f *Function) ComplexReturn() bool { return f.complexReturn }

// RowType returns the composite row type of a complex or set-returning
// function, InvalidOid otherwise.
func (f *Function) RowType() datum.Oid { return f.rowType }

// Class returns the loaded class handle.
func (f *Function) Class() jvm.Class { return f.cls }

// Method returns the resolved method handle.
func (f *Function) Method() jvm.Method { return f.method }
