package types

import (
	"github.com/Sednai/pljava/catalog"
	"github.com/Sednai/pljava/datum"
	"github.com/Sednai/pljava/jvm"
)

// stringType converts between native text values and managed strings.
// It also serves as the fallback descriptor for scalar types no
// dedicated descriptor exists for; the engine's text conversion makes
// any value presentable as a string.
type stringType struct {
	oid  datum.Oid
	name string
}

func (t *stringType) Oid() datum.Oid       { return t.oid }
func (t *stringType) JavaName() string     { return t.name }
func (t *stringType) JNISignature() string { return "Ljava/lang/String;" }
func (t *stringType) Kind() jvm.Kind       { return jvm.KindObject }
func (t *stringType) IsPrimitive() bool    { return false }
func (t *stringType) ObjectType() Type     { return nil }
func (t *stringType) ElementType() Type    { return nil }

func (t *stringType) Layout() Layout {
	return Layout{Length: -1, Align: catalog.AlignInt, ByValue: false}
}

func (t *stringType) CanReplace(other Type) bool { return Type(t) == other }

func (t *stringType) CoerceDatum(cx *Context, d datum.Datum) (jvm.Value, error) {
	b, ok := d.Bytes()
	if !ok {
		return jvm.Value{}, coerceRoleError(t, "from a non-text value")
	}
	return jvm.Ref(jvm.String(b)), nil
}

func (t *stringType) CoerceValue(cx *Context, v jvm.Value) (datum.Datum, bool, error) {
	if v.IsNull() {
		return datum.Datum{}, true, nil
	}
	s, ok := v.Object().(jvm.String)
	if !ok {
		return datum.Datum{}, false, coerceRoleError(t, "from a non-string object")
	}
	// The payload must outlive the call frame, so it is copied into the
	// result region rather than referencing managed memory.
	b, err := cx.Upper().Dup([]byte(s))
	if err != nil {
		return datum.Datum{}, false, err
	}
	return datum.FromBytes(b), false, nil
}
