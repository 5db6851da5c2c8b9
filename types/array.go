package types

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/Sednai/pljava/catalog"
	"github.com/Sednai/pljava/datum"
	"github.com/Sednai/pljava/internal/conv"
	"github.com/Sednai/pljava/jvm"
)

// alignUp rounds off up to the next multiple of a.
func alignUp(off, a int) int {
	return (off + a - 1) &^ (a - 1)
}

// readBits reads a width-byte little-endian payload at off, returning
// the zero-extended bits and the advanced offset.
func readBits(buf []byte, off, width int) (uint64, int) {
	switch width {
	case 1:
		return uint64(buf[off]), off + 1
	case 2:
		return uint64(binary.LittleEndian.Uint16(buf[off:])), off + 2
	case 4:
		return uint64(binary.LittleEndian.Uint32(buf[off:])), off + 4
	default:
		return binary.LittleEndian.Uint64(buf[off:]), off + 8
	}
}

// writeBits writes the low width bytes of bits at off, returning the
// advanced offset.
func writeBits(buf []byte, off, width int, bits uint64) int {
	switch width {
	case 1:
		buf[off] = byte(bits)
		return off + 1
	case 2:
		binary.LittleEndian.PutUint16(buf[off:], uint16(bits))
		return off + 2
	case 4:
		binary.LittleEndian.PutUint32(buf[off:], uint32(bits))
		return off + 4
	default:
		binary.LittleEndian.PutUint64(buf[off:], bits)
		return off + 8
	}
}

// objectArrayType is an array whose managed elements are references:
// boxed primitives or strings. Managed nulls map to clear bitmap bits;
// no placeholder substitution happens on either path.
type objectArrayType struct {
	oid  datum.Oid
	elem Type
	prim *primArrayType
}

func (t *objectArrayType) Oid() datum.Oid       { return t.oid }
func (t *objectArrayType) JavaName() string     { return t.elem.JavaName() + "[]" }
func (t *objectArrayType) JNISignature() string { return "[" + t.elem.JNISignature() }
func (t *objectArrayType) Kind() jvm.Kind       { return jvm.KindObject }
func (t *objectArrayType) IsPrimitive() bool    { return false }
func (t *objectArrayType) ObjectType() Type     { return nil }
func (t *objectArrayType) ElementType() Type    { return t.elem }
func (t *objectArrayType) Layout() Layout       { return arrayLayout }

var arrayLayout = Layout{Length: -1, Align: catalog.AlignInt, ByValue: false}

// An object array replaces another array when its element type can
// replace the other's.
func (t *objectArrayType) CanReplace(other Type) bool {
	if Type(t) == other {
		return true
	}
	if oe := other.ElementType(); oe != nil {
		return t.elem.CanReplace(oe)
	}
	return false
}

func (t *objectArrayType) CoerceDatum(cx *Context, d datum.Datum) (jvm.Value, error) {
	a, ok := d.Array()
	if !ok {
		return jvm.Value{}, coerceRoleError(t, "from a non-array value")
	}
	if a.NDim() == 2 {
		outer := &jvm.ObjectArray{ElemSig: t.JNISignature(), Elems: make([]jvm.Object, a.Dim(0))}
		off, idx := 0, 0
		for i := range outer.Elems {
			inner, nextOff, nextIdx, err := t.sliceToManaged(cx, a, idx, a.Dim(1), off)
			if err != nil {
				return jvm.Value{}, err
			}
			outer.Elems[i], off, idx = inner, nextOff, nextIdx
		}
		return jvm.Ref(outer), nil
	}
	arr, _, _, err := t.sliceToManaged(cx, a, 0, a.Len(), 0)
	if err != nil {
		return jvm.Value{}, err
	}
	return jvm.Ref(arr), nil
}

// sliceToManaged converts count elements starting at element idx and
// payload offset off into a managed object array.
func (t *objectArrayType) sliceToManaged(cx *Context, a *datum.Array, idx, count, off int) (*jvm.ObjectArray, int, int, error) {
	out := &jvm.ObjectArray{ElemSig: t.elem.JNISignature(), Elems: make([]jvm.Object, count)}
	lay := t.elem.Layout()
	data := a.Data()
	for i := 0; i < count; i++ {
		if a.IsNull(idx) {
			idx++
			continue
		}
		var ed datum.Datum
		if lay.Length >= 0 {
			var bits uint64
			off = alignUp(off, lay.Align.Width())
			bits, off = readBits(data, off, int(lay.Length))
			ed = datum.FromRaw(bits)
		} else {
			off = alignUp(off, lay.Align.Width())
			n := int(binary.LittleEndian.Uint32(data[off:]))
			off += 4
			ed = datum.FromBytes(data[off : off+n])
			off += n
		}
		v, err := t.elem.CoerceDatum(cx, ed)
		if err != nil {
			return nil, 0, 0, err
		}
		out.Elems[i] = v.Object()
		idx++
	}
	return out, off, idx, nil
}

func (t *objectArrayType) CoerceValue(cx *Context, v jvm.Value) (datum.Datum, bool, error) {
	if v.IsNull() {
		return datum.Datum{}, true, nil
	}
	oa, ok := v.Object().(*jvm.ObjectArray)
	if !ok {
		return datum.Datum{}, false, coerceRoleError(t, "from a non-array object")
	}
	if strings.HasPrefix(oa.ElemSig, "[[") {
		return datum.Datum{}, false, datum.ErrTooManyDims
	}
	switch oa.ElemSig {
	case t.elem.JNISignature():
		return t.managedToNative(cx, [][]jvm.Object{oa.Elems}, 1)
	case t.JNISignature():
		rows, err := innerObjectRows(t, oa)
		if err != nil {
			return datum.Datum{}, false, err
		}
		return t.managedToNative(cx, rows, 2)
	default:
		return datum.Datum{}, false, fmt.Errorf("types: %s cannot pack elements of signature %s", t.JavaName(), oa.ElemSig)
	}
}

// innerObjectRows unpacks a two-dimensional managed array into its inner
// element slices, checking that it is rectangular.
func innerObjectRows(t Type, oa *jvm.ObjectArray) ([][]jvm.Object, error) {
	rows := make([][]jvm.Object, len(oa.Elems))
	for i, o := range oa.Elems {
		inner, ok := o.(*jvm.ObjectArray)
		if !ok {
			return nil, fmt.Errorf("types: %s requires non-null inner arrays", t.JavaName())
		}
		if i > 0 && len(inner.Elems) != len(rows[0]) {
			return nil, fmt.Errorf("types: %s requires rectangular arrays", t.JavaName())
		}
		rows[i] = inner.Elems
	}
	return rows, nil
}

// managedToNative packs the element rows into a native array in the
// result region. The payload is sized by a planning pass; a null bitmap
// is allocated only when at least one element is null.
func (t *objectArrayType) managedToNative(cx *Context, rows [][]jvm.Object, ndim int) (datum.Datum, bool, error) {
	lay := t.elem.Layout()
	width := lay.Align.Width()

	dataSize, nulls := 0, 0
	for _, row := range rows {
		for _, o := range row {
			if o == nil {
				nulls++
				continue
			}
			dataSize = alignUp(dataSize, width)
			if lay.Length >= 0 {
				dataSize += int(lay.Length)
			} else {
				s, ok := o.(jvm.String)
				if !ok {
					return datum.Datum{}, false, coerceRoleError(t, "from non-string variable-length elements")
				}
				dataSize += 4 + len(s)
			}
		}
	}

	var a *datum.Array
	var err error
	if ndim == 2 {
		dim2 := 0
		if len(rows) > 0 {
			dim2 = len(rows[0])
		}
		a, err = datum.New2DArray(cx.Upper(), len(rows), dim2, dataSize, t.elem.Oid(), nulls > 0)
	} else {
		a, err = datum.NewArray(cx.Upper(), len(rows[0]), dataSize, t.elem.Oid(), nulls > 0)
	}
	if err != nil {
		return datum.Datum{}, false, err
	}

	off, idx := 0, 0
	data := a.Data()
	for _, row := range rows {
		for _, o := range row {
			if o == nil {
				a.SetNull(idx, true)
				idx++
				continue
			}
			a.SetNull(idx, false)
			off = alignUp(off, width)
			if lay.Length >= 0 {
				ed, isNull, err := t.elem.CoerceValue(cx, jvm.Ref(o))
				if err != nil {
					return datum.Datum{}, false, err
				}
				if isNull {
					return datum.Datum{}, false, coerceRoleError(t, "from an element that coerced to null")
				}
				off = writeBits(data, off, int(lay.Length), ed.Raw())
			} else {
				s := o.(jvm.String)
				n, err := conv.IntToUint32(len(s))
				if err != nil {
					return datum.Datum{}, false, err
				}
				binary.LittleEndian.PutUint32(data[off:], n)
				off += 4
				copy(data[off:], s)
				off += len(s)
			}
			idx++
		}
	}
	a.ShrinkData(off)
	return datum.FromArray(a), false, nil
}
