package types

import (
	"fmt"
	"strings"

	"github.com/Sednai/pljava/datum"
	"github.com/Sednai/pljava/jvm"
)

// primArrayType is an array whose managed elements are unboxed
// primitives. The managed slice has no null slot, so null native
// elements are substituted with a placeholder on the way in: NaN for the
// floating kinds, zero otherwise. The managed side can never produce a
// null element, so the outbound path packs densely with no bitmap.
type primArrayType struct {
	oid   datum.Oid
	elem  *primType
	boxed *objectArrayType
}

func (t *primArrayType) Oid() datum.Oid       { return t.oid }
func (t *primArrayType) JavaName() string     { return t.elem.JavaName() + "[]" }
func (t *primArrayType) JNISignature() string { return "[" + t.elem.JNISignature() }
func (t *primArrayType) Kind() jvm.Kind       { return jvm.KindObject }
func (t *primArrayType) IsPrimitive() bool    { return false }
func (t *primArrayType) ObjectType() Type     { return t.boxed }
func (t *primArrayType) ElementType() Type    { return t.elem }
func (t *primArrayType) Layout() Layout       { return arrayLayout }

// A primitive array replaces an array with replaceable elements, and its
// own boxed counterpart.
func (t *primArrayType) CanReplace(other Type) bool {
	if Type(t) == other {
		return true
	}
	if oe := other.ElementType(); oe != nil && t.elem.CanReplace(oe) {
		return true
	}
	return t.boxed != nil && Type(t.boxed) == other
}

func (t *primArrayType) CoerceDatum(cx *Context, d datum.Datum) (jvm.Value, error) {
	a, ok := d.Array()
	if !ok {
		return jvm.Value{}, coerceRoleError(t, "from a non-array value")
	}
	if a.NDim() == 2 {
		outer := &jvm.ObjectArray{ElemSig: t.JNISignature(), Elems: make([]jvm.Object, a.Dim(0))}
		off, idx := 0, 0
		for i := range outer.Elems {
			var inner jvm.Object
			inner, off, idx = t.sliceToManaged(a, idx, a.Dim(1), off)
			outer.Elems[i] = inner
		}
		return jvm.Ref(outer), nil
	}
	arr, _, _ := t.sliceToManaged(a, 0, a.Len(), 0)
	return jvm.Ref(arr), nil
}

// sliceToManaged converts count elements starting at element idx and
// payload offset off into a managed primitive array. The payload offset
// advances only past present elements; null slots take the placeholder.
func (t *primArrayType) sliceToManaged(a *datum.Array, idx, count, off int) (jvm.Object, int, int) {
	width := int(t.elem.layout.Length)
	data := a.Data()
	vals := make([]jvm.Value, count)
	for i := 0; i < count; i++ {
		if a.IsNull(idx) {
			vals[i] = nullPlaceholder(t.elem.kind)
		} else {
			var bits uint64
			bits, off = readBits(data, off, width)
			vals[i] = scalarConvs[t.elem.kind].toValue(datum.FromRaw(bits))
		}
		idx++
	}
	return primArrayObject(t.elem.kind, vals), off, idx
}

func (t *primArrayType) CoerceValue(cx *Context, v jvm.Value) (datum.Datum, bool, error) {
	if v.IsNull() {
		return datum.Datum{}, true, nil
	}
	width := int(t.elem.layout.Length)

	if oa, ok := v.Object().(*jvm.ObjectArray); ok {
		if strings.HasPrefix(oa.ElemSig, "[[") {
			return datum.Datum{}, false, datum.ErrTooManyDims
		}
		if oa.ElemSig != t.JNISignature() {
			return datum.Datum{}, false, fmt.Errorf("types: %s cannot pack elements of signature %s", t.JavaName(), oa.ElemSig)
		}
		rows := make([][]jvm.Value, len(oa.Elems))
		for i, o := range oa.Elems {
			vals, ok := primArrayValues(o)
			if !ok {
				return datum.Datum{}, false, fmt.Errorf("types: %s requires non-null inner arrays", t.JavaName())
			}
			if i > 0 && len(vals) != len(rows[0]) {
				return datum.Datum{}, false, fmt.Errorf("types: %s requires rectangular arrays", t.JavaName())
			}
			rows[i] = vals
		}
		dim2 := 0
		if len(rows) > 0 {
			dim2 = len(rows[0])
		}
		a, err := datum.New2DArray(cx.Upper(), len(rows), dim2, len(rows)*dim2*width, t.elem.oid, false)
		if err != nil {
			return datum.Datum{}, false, err
		}
		off := 0
		for _, row := range rows {
			for _, val := range row {
				off = writeBits(a.Data(), off, width, scalarConvs[t.elem.kind].fromValue(val).Raw())
			}
		}
		return datum.FromArray(a), false, nil
	}

	vals, ok := primArrayValues(v.Object())
	if !ok {
		return datum.Datum{}, false, coerceRoleError(t, "from a non-array object")
	}
	a, err := datum.NewArray(cx.Upper(), len(vals), len(vals)*width, t.elem.oid, false)
	if err != nil {
		return datum.Datum{}, false, err
	}
	off := 0
	for _, val := range vals {
		off = writeBits(a.Data(), off, width, scalarConvs[t.elem.kind].fromValue(val).Raw())
	}
	return datum.FromArray(a), false, nil
}

// primArrayObject builds the concrete managed array object of the given
// kind from value slots.
func primArrayObject(kind jvm.Kind, vals []jvm.Value) jvm.Object {
	switch kind {
	case jvm.KindBoolean:
		es := make([]bool, len(vals))
		for i, v := range vals {
			es[i] = v.Bool()
		}
		return &jvm.BooleanArray{Elems: es}
	case jvm.KindShort:
		es := make([]int16, len(vals))
		for i, v := range vals {
			es[i] = v.Int16()
		}
		return &jvm.ShortArray{Elems: es}
	case jvm.KindInt:
		es := make([]int32, len(vals))
		for i, v := range vals {
			es[i] = v.Int32()
		}
		return &jvm.IntArray{Elems: es}
	case jvm.KindLong:
		es := make([]int64, len(vals))
		for i, v := range vals {
			es[i] = v.Int64()
		}
		return &jvm.LongArray{Elems: es}
	case jvm.KindFloat:
		es := make([]float32, len(vals))
		for i, v := range vals {
			es[i] = v.Float32()
		}
		return &jvm.FloatArray{Elems: es}
	default:
		es := make([]float64, len(vals))
		for i, v := range vals {
			es[i] = v.Float64()
		}
		return &jvm.DoubleArray{Elems: es}
	}
}

// primArrayValues unpacks a concrete managed primitive array into value
// slots. It reports false for anything that is not one.
func primArrayValues(o jvm.Object) ([]jvm.Value, bool) {
	switch arr := o.(type) {
	case *jvm.BooleanArray:
		vals := make([]jvm.Value, len(arr.Elems))
		for i, e := range arr.Elems {
			vals[i] = jvm.Boolean(e)
		}
		return vals, true
	case *jvm.ShortArray:
		vals := make([]jvm.Value, len(arr.Elems))
		for i, e := range arr.Elems {
			vals[i] = jvm.Short(e)
		}
		return vals, true
	case *jvm.IntArray:
		vals := make([]jvm.Value, len(arr.Elems))
		for i, e := range arr.Elems {
			vals[i] = jvm.Int(e)
		}
		return vals, true
	case *jvm.LongArray:
		vals := make([]jvm.Value, len(arr.Elems))
		for i, e := range arr.Elems {
			vals[i] = jvm.Long(e)
		}
		return vals, true
	case *jvm.FloatArray:
		vals := make([]jvm.Value, len(arr.Elems))
		for i, e := range arr.Elems {
			vals[i] = jvm.Float(e)
		}
		return vals, true
	case *jvm.DoubleArray:
		vals := make([]jvm.Value, len(arr.Elems))
		for i, e := range arr.Elems {
			vals[i] = jvm.Double(e)
		}
		return vals, true
	default:
		return nil, false
	}
}
