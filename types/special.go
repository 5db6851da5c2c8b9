package types

import (
	"github.com/Sednai/pljava/catalog"
	"github.com/Sednai/pljava/datum"
	"github.com/Sednai/pljava/jvm"
)

// Fully qualified names and signature tokens of the interface types the
// dispatch surface traffics in.
const (
	TriggerDataName       = "org.postgresql.pljava.TriggerData"
	ResultSetProviderName = "org.postgresql.pljava.ResultSetProvider"
	SingleRowReaderName   = "org.postgresql.pljava.jdbc.SingleRowReader"
	SingleRowWriterName   = "org.postgresql.pljava.jdbc.SingleRowWriter"

	TriggerDataSig       = "Lorg/postgresql/pljava/TriggerData;"
	ResultSetProviderSig = "Lorg/postgresql/pljava/ResultSetProvider;"
	SingleRowReaderSig   = "Lorg/postgresql/pljava/jdbc/SingleRowReader;"
	SingleRowWriterSig   = "Lorg/postgresql/pljava/jdbc/SingleRowWriter;"
)

// voidType is the descriptor of a void return. It produces no value and
// accepts any managed result, discarding it.
type voidType struct{}

func (voidType) Oid() datum.Oid           { return datum.InvalidOid }
func (voidType) JavaName() string         { return "void" }
func (voidType) JNISignature() string     { return "V" }
func (voidType) Kind() jvm.Kind           { return jvm.KindVoid }
func (voidType) IsPrimitive() bool        { return true }
func (voidType) ObjectType() Type         { return nil }
func (voidType) ElementType() Type        { return nil }
func (voidType) Layout() Layout           { return Layout{Align: catalog.AlignChar} }
func (t voidType) CanReplace(o Type) bool { return Type(t) == o }

func (t voidType) CoerceDatum(cx *Context, d datum.Datum) (jvm.Value, error) {
	return jvm.Value{}, coerceRoleError(t, "to a managed value")
}

func (voidType) CoerceValue(cx *Context, v jvm.Value) (datum.Datum, bool, error) {
	return datum.Datum{}, true, nil
}

// refType is a reference-typed descriptor whose conversions are supplied
// per role. It backs the dispatch-surface interface types, which exist
// in a handful of variants keyed by a row-type oid.
type refType struct {
	oid       datum.Oid
	name      string
	sig       string
	toValue   func(cx *Context, d datum.Datum) (jvm.Value, error)
	fromValue func(cx *Context, v jvm.Value) (datum.Datum, bool, error)
}

func (t *refType) Oid() datum.Oid       { return t.oid }
func (t *refType) JavaName() string     { return t.name }
func (t *refType) JNISignature() string { return t.sig }
func (t *refType) Kind() jvm.Kind       { return jvm.KindObject }
func (t *refType) IsPrimitive() bool    { return false }
func (t *refType) ObjectType() Type     { return nil }
func (t *refType) ElementType() Type    { return nil }

func (t *refType) Layout() Layout {
	return Layout{Length: -1, Align: catalog.AlignDouble, ByValue: false}
}

func (t *refType) CanReplace(other Type) bool { return Type(t) == other }

func (t *refType) CoerceDatum(cx *Context, d datum.Datum) (jvm.Value, error) {
	if t.toValue == nil {
		return jvm.Value{}, coerceRoleError(t, "to a managed value")
	}
	return t.toValue(cx, d)
}

func (t *refType) CoerceValue(cx *Context, v jvm.Value) (datum.Datum, bool, error) {
	if t.fromValue == nil {
		return datum.Datum{}, false, coerceRoleError(t, "to a native value")
	}
	return t.fromValue(cx, v)
}

// newTriggerDataType builds the descriptor of the trigger-call argument.
// The datum's row payload is the already-wrapped managed trigger object;
// the invoker constructs it before coercion.
func newTriggerDataType() *refType {
	t := &refType{name: TriggerDataName, sig: TriggerDataSig}
	t.toValue = func(cx *Context, d datum.Datum) (jvm.Value, error) {
		row, ok := d.Row()
		if !ok {
			return jvm.Value{}, coerceRoleError(t, "from a non-trigger value")
		}
		obj, ok := row.(jvm.Object)
		if !ok {
			return jvm.Value{}, coerceRoleError(t, "from a non-trigger value")
		}
		return jvm.Ref(obj), nil
	}
	return t
}

// newCompositeType builds the descriptor wrapping a composite value of
// the given row type in a read-only managed row accessor.
func newCompositeType(rowType datum.Oid) *refType {
	t := &refType{oid: rowType, name: SingleRowReaderName, sig: SingleRowReaderSig}
	t.toValue = func(cx *Context, d datum.Datum) (jvm.Value, error) {
		if cx == nil || cx.Rows == nil {
			return jvm.Value{}, coerceRoleError(t, "without a row bridge")
		}
		obj, err := cx.Rows.NewRowReader(d)
		if err != nil {
			return jvm.Value{}, err
		}
		return jvm.Ref(obj), nil
	}
	return t
}

// newRowWriterType builds the descriptor of the synthetic trailing
// out-parameter of complex-returning routines. Coercing back extracts
// the committed row from the writer.
func newRowWriterType(rowType datum.Oid) *refType {
	t := &refType{oid: rowType, name: SingleRowWriterName, sig: SingleRowWriterSig}
	t.fromValue = func(cx *Context, v jvm.Value) (datum.Datum, bool, error) {
		if v.IsNull() {
			return datum.Datum{}, true, nil
		}
		if cx == nil || cx.Rows == nil {
			return datum.Datum{}, false, coerceRoleError(t, "without a row bridge")
		}
		return cx.Rows.WriterRow(v.Object())
	}
	return t
}

// newProviderType builds the return descriptor of a set-returning
// routine: the managed provider is handed to the set bridge, keyed by
// the result row type.
func newProviderType(rowType datum.Oid) *refType {
	t := &refType{oid: rowType, name: ResultSetProviderName, sig: ResultSetProviderSig}
	t.fromValue = func(cx *Context, v jvm.Value) (datum.Datum, bool, error) {
		if v.IsNull() {
			return datum.Datum{}, true, nil
		}
		if cx == nil || cx.Sets == nil {
			return datum.Datum{}, false, coerceRoleError(t, "without a set bridge")
		}
		return cx.Sets.ProviderResult(rowType, v.Object())
	}
	return t
}
