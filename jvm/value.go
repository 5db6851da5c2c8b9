package jvm

import "math"

// Value is a managed value slot: one primitive payload or one object
// reference, tagged by Kind. The zero Value is void.
type Value struct {
	kind Kind
	bits uint64
	obj  Object
}

// Void returns the no-value slot.
func Void() Value { return Value{} }

// Boolean builds a boolean primitive value.
func Boolean(v bool) Value {
	var b uint64
	if v {
		b = 1
	}
	return Value{kind: KindBoolean, bits: b}
}

// Short builds a 16-bit primitive value.
func Short(v int16) Value { return Value{kind: KindShort, bits: uint64(uint16(v))} }

// Int builds a 32-bit primitive value.
func Int(v int32) Value { return Value{kind: KindInt, bits: uint64(uint32(v))} }

// Long builds a 64-bit primitive value.
func Long(v int64) Value { return Value{kind: KindLong, bits: uint64(v)} }

// Float builds a 32-bit floating-point primitive value.
func Float(v float32) Value { return Value{kind: KindFloat, bits: uint64(math.Float32bits(v))} }

// Double builds a 64-bit floating-point primitive value.
func Double(v float64) Value { return Value{kind: KindDouble, bits: math.Float64bits(v)} }

// Ref builds a reference value. A nil object is the managed null.
func Ref(o Object) Value { return Value{kind: KindObject, obj: o} }

// Null returns the managed null reference.
func Null() Value { return Value{kind: KindObject} }

// Zero returns the zero slot for the given kind: numeric zero for
// primitives, null for references, void for void. This is what null
// engine arguments are substituted with.
func Zero(k Kind) Value { return Value{kind: k} }

// Kind returns the slot type.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is a null reference or void.
func (v Value) IsNull() bool {
	return v.kind == KindVoid || (v.kind == KindObject && v.obj == nil)
}

// Bool extracts a boolean payload.
func (v Value) Bool() bool { return v.bits != 0 }

// Int16 extracts a 16-bit payload.
func (v Value) Int16() int16 { return int16(uint16(v.bits)) }

// Int32 extracts a 32-bit payload.
func (v Value) Int32() int32 { return int32(uint32(v.bits)) }

// Int64 extracts a 64-bit payload.
func (v Value) Int64() int64 { return int64(v.bits) }

// Float32 extracts a 32-bit floating-point payload.
func (v Value) Float32() float32 { return math.Float32frombits(uint32(v.bits)) }

// Float64 extracts a 64-bit floating-point payload.
func (v Value) Float64() float64 { return math.Float64frombits(v.bits) }

// Object extracts the reference payload, nil for managed null.
func (v Value) Object() Object { return v.obj }
