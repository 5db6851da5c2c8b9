package types

import (
	"math"

	"github.com/Sednai/pljava/catalog"
	"github.com/Sednai/pljava/datum"
	"github.com/Sednai/pljava/jvm"
)

// scalarConv holds the per-kind datum conversions shared by a primitive
// descriptor and its boxed counterpart.
type scalarConv struct {
	toValue   func(d datum.Datum) jvm.Value
	fromValue func(v jvm.Value) datum.Datum
}

var scalarConvs = map[jvm.Kind]scalarConv{
	jvm.KindBoolean: {
		toValue:   func(d datum.Datum) jvm.Value { return jvm.Boolean(d.Bool()) },
		fromValue: func(v jvm.Value) datum.Datum { return datum.FromBool(v.Bool()) },
	},
	jvm.KindShort: {
		toValue:   func(d datum.Datum) jvm.Value { return jvm.Short(d.Int16()) },
		fromValue: func(v jvm.Value) datum.Datum { return datum.FromInt16(v.Int16()) },
	},
	jvm.KindInt: {
		toValue:   func(d datum.Datum) jvm.Value { return jvm.Int(d.Int32()) },
		fromValue: func(v jvm.Value) datum.Datum { return datum.FromInt32(v.Int32()) },
	},
	jvm.KindLong: {
		toValue:   func(d datum.Datum) jvm.Value { return jvm.Long(d.Int64()) },
		fromValue: func(v jvm.Value) datum.Datum { return datum.FromInt64(v.Int64()) },
	},
	jvm.KindFloat: {
		toValue:   func(d datum.Datum) jvm.Value { return jvm.Float(d.Float32()) },
		fromValue: func(v jvm.Value) datum.Datum { return datum.FromFloat32(v.Float32()) },
	},
	jvm.KindDouble: {
		toValue:   func(d datum.Datum) jvm.Value { return jvm.Double(d.Float64()) },
		fromValue: func(v jvm.Value) datum.Datum { return datum.FromFloat64(v.Float64()) },
	},
}

// primType is an unboxed primitive descriptor (boolean, short, int,
// long, float, double).
type primType struct {
	oid    datum.Oid
	name   string
	kind   jvm.Kind
	layout Layout
	boxed  *boxedType
}

func (t *primType) Oid() datum.Oid       { return t.oid }
func (t *primType) JavaName() string     { return t.name }
func (t *primType) JNISignature() string { return t.kind.Signature() }
func (t *primType) Kind() jvm.Kind       { return t.kind }
func (t *primType) IsPrimitive() bool    { return true }
func (t *primType) ObjectType() Type     { return t.boxed }
func (t *primType) ElementType() Type    { return nil }
func (t *primType) Layout() Layout       { return t.layout }

// A primitive replaces only itself.
func (t *primType) CanReplace(other Type) bool { return Type(t) == other }

func (t *primType) CoerceDatum(cx *Context, d datum.Datum) (jvm.Value, error) {
	return scalarConvs[t.kind].toValue(d), nil
}

func (t *primType) CoerceValue(cx *Context, v jvm.Value) (datum.Datum, bool, error) {
	return scalarConvs[t.kind].fromValue(v), false, nil
}

// boxedType is the object wrapper of a primitive (java.lang.Integer and
// friends). It shares the primitive's datum conversions but traffics in
// nullable object slots.
type boxedType struct {
	oid    datum.Oid
	name   string
	kind   jvm.Kind
	layout Layout
	prim   *primType
}

func (t *boxedType) Oid() datum.Oid       { return t.oid }
func (t *boxedType) JavaName() string     { return t.name }
func (t *boxedType) JNISignature() string { return jvm.BoxedSignature(t.kind) }
func (t *boxedType) Kind() jvm.Kind       { return jvm.KindObject }
func (t *boxedType) IsPrimitive() bool    { return false }
func (t *boxedType) ObjectType() Type     { return nil }
func (t *boxedType) ElementType() Type    { return nil }
func (t *boxedType) Layout() Layout       { return t.layout }

// A boxed type replaces itself or its own primitive.
func (t *boxedType) CanReplace(other Type) bool {
	return Type(t) == other || Type(t.prim) == other
}

func (t *boxedType) CoerceDatum(cx *Context, d datum.Datum) (jvm.Value, error) {
	return jvm.Ref(&jvm.Boxed{Val: scalarConvs[t.kind].toValue(d)}), nil
}

func (t *boxedType) CoerceValue(cx *Context, v jvm.Value) (datum.Datum, bool, error) {
	if v.IsNull() {
		return datum.Datum{}, true, nil
	}
	box, ok := v.Object().(*jvm.Boxed)
	if !ok {
		return datum.Datum{}, false, coerceRoleError(t, "from a non-boxed object")
	}
	return scalarConvs[t.kind].fromValue(box.Val), false, nil
}

// newScalarPair builds a primitive descriptor and its boxed counterpart,
// cross-linked.
func newScalarPair(oid datum.Oid, primName, boxedName string, kind jvm.Kind, layout Layout) (*primType, *boxedType) {
	p := &primType{oid: oid, name: primName, kind: kind, layout: layout}
	b := &boxedType{oid: oid, name: boxedName, kind: kind, layout: layout, prim: p}
	p.boxed = b
	return p, b
}

var (
	layoutBool   = Layout{Length: 1, Align: catalog.AlignChar, ByValue: true}
	layoutInt2   = Layout{Length: 2, Align: catalog.AlignShort, ByValue: true}
	layoutInt4   = Layout{Length: 4, Align: catalog.AlignInt, ByValue: true}
	layoutInt8   = Layout{Length: 8, Align: catalog.AlignDouble, ByValue: true}
	layoutFloat4 = Layout{Length: 4, Align: catalog.AlignInt, ByValue: true}
	layoutFloat8 = Layout{Length: 8, Align: catalog.AlignDouble, ByValue: true}
)

// nullPlaceholder is the managed stand-in for a null array element when
// the element slot is an unboxed primitive: NaN for the floating kinds,
// zero otherwise.
func nullPlaceholder(kind jvm.Kind) jvm.Value {
	switch kind {
	case jvm.KindFloat:
		return jvm.Float(float32(math.NaN()))
	case jvm.KindDouble:
		return jvm.Double(math.NaN())
	default:
		return jvm.Zero(kind)
	}
}
