// Package datum models values in the engine's native representation.
//
// A Datum is an opaque handle: fixed-width scalars are carried by value,
// out-of-line payloads (text, arrays) by reference. Nullness is not a
// property of the Datum itself; callers carry it alongside, the way the
// engine's call frames do (see NullableDatum).
package datum

import "math"

// Oid is an opaque catalog key identifying a native type, routine or
// namespace.
type Oid uint32

// InvalidOid marks the absence of a catalog key.
const InvalidOid Oid = 0

// Datum is an opaque native value handle. The zero Datum is the "zero
// slot" substituted for null arguments.
type Datum struct {
	imm uint64
	ref any
}

// FromBool builds a boolean datum.
func FromBool(v bool) Datum {
	if v {
		return Datum{imm: 1}
	}
	return Datum{}
}

// FromInt16 builds a 2-byte integer datum.
func FromInt16(v int16) Datum { return Datum{imm: uint64(uint16(v))} }

// FromInt32 builds a 4-byte integer datum.
func FromInt32(v int32) Datum { return Datum{imm: uint64(uint32(v))} }

// FromInt64 builds an 8-byte integer datum.
func FromInt64(v int64) Datum { return Datum{imm: uint64(v)} }

// FromFloat32 builds a 4-byte float datum.
func FromFloat32(v float32) Datum { return Datum{imm: uint64(math.Float32bits(v))} }

// FromFloat64 builds an 8-byte float datum.
func FromFloat64(v float64) Datum { return Datum{imm: math.Float64bits(v)} }

// FromRaw builds a datum from raw fixed-layout payload bits, as read out
// of a packed array. The bits must have come from Raw on a datum of the
// same native type.
func FromRaw(bits uint64) Datum { return Datum{imm: bits} }

// Raw returns the fixed-layout payload bits of a by-value datum.
func (d Datum) Raw() uint64 { return d.imm }

// FromBytes builds a variable-length datum referencing b.
func FromBytes(b []byte) Datum { return Datum{ref: b} }

// FromArray builds an array datum referencing a.
func FromArray(a *Array) Datum { return Datum{ref: a} }

// FromRow builds a composite-row datum referencing an engine row handle.
func FromRow(row any) Datum { return Datum{ref: row} }

// Bool extracts a boolean payload.
func (d Datum) Bool() bool { return d.imm != 0 }

// Int16 extracts a 2-byte integer payload.
func (d Datum) Int16() int16 { return int16(uint16(d.imm)) }

// Int32 extracts a 4-byte integer payload.
func (d Datum) Int32() int32 { return int32(uint32(d.imm)) }

// Int64 extracts an 8-byte integer payload.
func (d Datum) Int64() int64 { return int64(d.imm) }

// Float32 extracts a 4-byte float payload.
func (d Datum) Float32() float32 { return math.Float32frombits(uint32(d.imm)) }

// Float64 extracts an 8-byte float payload.
func (d Datum) Float64() float64 { return math.Float64frombits(d.imm) }

// Bytes extracts a variable-length payload.
func (d Datum) Bytes() ([]byte, bool) {
	b, ok := d.ref.([]byte)
	return b, ok
}

// Array extracts an array payload.
func (d Datum) Array() (*Array, bool) {
	a, ok := d.ref.(*Array)
	return a, ok
}

// Row extracts a composite-row payload.
func (d Datum) Row() (any, bool) {
	if d.ref == nil {
		return nil, false
	}
	if _, isBytes := d.ref.([]byte); isBytes {
		return nil, false
	}
	if _, isArray := d.ref.(*Array); isArray {
		return nil, false
	}
	return d.ref, true
}

// NullableDatum pairs a datum with its null indicator, mirroring the
// engine's argument slots.
type NullableDatum struct {
	Value  Datum
	IsNull bool
}

// Null returns a null argument slot.
func Null() NullableDatum { return NullableDatum{IsNull: true} }

// NonNull wraps a datum in a non-null argument slot.
func NonNull(d Datum) NullableDatum { return NullableDatum{Value: d} }
