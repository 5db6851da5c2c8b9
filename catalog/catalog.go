// Package catalog defines the lookup surface the bridge consumes from the
// engine's persisted catalog, and an in-memory implementation for tests
// and embedding.
package catalog

import (
	"errors"

	"github.com/Sednai/pljava/datum"
)

// ErrNotFound is returned when a catalog entry does not exist.
var ErrNotFound = errors.New("catalog: not found")

// Alignment classifies element alignment of a native type's storage.
type Alignment byte

const (
	// AlignChar is single-byte alignment.
	AlignChar Alignment = 'c'
	// AlignShort is 2-byte alignment.
	AlignShort Alignment = 's'
	// AlignInt is 4-byte alignment.
	AlignInt Alignment = 'i'
	// AlignDouble is 8-byte alignment.
	AlignDouble Alignment = 'd'
)

// Width returns the alignment in bytes.
func (a Alignment) Width() int {
	switch a {
	case AlignShort:
		return 2
	case AlignInt:
		return 4
	case AlignDouble:
		return 8
	default:
		return 1
	}
}

// TypeInfo is the storage description of a native type: length in bytes
// (-1 for variable length), alignment class, pass-by-value flag, whether
// the type is a composite row type, and the element type for array types.
type TypeInfo struct {
	Oid       datum.Oid
	Length    int16
	Align     Alignment
	ByValue   bool
	Composite bool
	Element   datum.Oid
}

// Routine is the declared shape of an externally-implemented routine:
// its source text (the qualified target declaration), namespace, and the
// catalog-resolved parameter and return types.
type Routine struct {
	Oid        datum.Oid
	Namespace  datum.Oid
	Source     string
	ReturnsSet bool
	ReturnType datum.Oid
	ArgTypes   []datum.Oid
}

// Catalog resolves persisted routine, type and namespace entries.
type Catalog interface {
	Routine(oid datum.Oid) (*Routine, error)
	Type(oid datum.Oid) (*TypeInfo, error)
	NamespaceName(oid datum.Oid) (string, error)
}
