package jvmtest

import (
	"fmt"

	"github.com/Sednai/pljava/datum"
	"github.com/Sednai/pljava/jvm"
)

// RowReader is the managed accessor stand-in for a native composite
// value.
type RowReader struct {
	Row datum.Datum
}

// Signature implements jvm.Object.
func (*RowReader) Signature() string { return "Lorg/postgresql/pljava/jdbc/SingleRowReader;" }

// RowWriter is the managed writable-row stand-in. A method body under
// test commits its result by setting Committed.
type RowWriter struct {
	RowType   datum.Oid
	Committed datum.Datum
	Null      bool
}

// Signature implements jvm.Object.
func (*RowWriter) Signature() string { return "Lorg/postgresql/pljava/jdbc/SingleRowWriter;" }

// Rows is a fake row bridge handing out RowReader and RowWriter
// stand-ins.
type Rows struct{}

// NewRowReader implements the row bridge.
func (Rows) NewRowReader(d datum.Datum) (jvm.Object, error) {
	return &RowReader{Row: d}, nil
}

// NewRowWriter implements the row bridge.
func (Rows) NewRowWriter(rowType datum.Oid) (jvm.Object, error) {
	return &RowWriter{RowType: rowType}, nil
}

// WriterRow implements the row bridge.
func (Rows) WriterRow(w jvm.Object) (datum.Datum, bool, error) {
	rw, ok := w.(*RowWriter)
	if !ok {
		return datum.Datum{}, false, fmt.Errorf("jvmtest: not a RowWriter: %T", w)
	}
	return rw.Committed, rw.Null, nil
}

// Sets is a fake set bridge recording the provider handed to it. The
// result datum references the provider so tests can assert on it.
type Sets struct {
	RowType  datum.Oid
	Provider jvm.Object
}

// ProviderResult implements the set bridge.
func (s *Sets) ProviderResult(rowType datum.Oid, provider jvm.Object) (datum.Datum, bool, error) {
	s.RowType = rowType
	s.Provider = provider
	return datum.FromRow(provider), false, nil
}
