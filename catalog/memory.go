package catalog

import (
	"fmt"

	"github.com/Sednai/pljava/datum"
)

// Memory is an in-memory Catalog. It is seeded with the built-in types
// and grows through the Add methods. Not safe for concurrent mutation;
// the bridge runs single-threaded within a backend.
type Memory struct {
	routines   map[datum.Oid]*Routine
	types      map[datum.Oid]*TypeInfo
	namespaces map[datum.Oid]string
}

// NewMemory creates a memory catalog seeded with the built-in types.
func NewMemory() *Memory {
	m := &Memory{
		routines:   make(map[datum.Oid]*Routine),
		types:      make(map[datum.Oid]*TypeInfo),
		namespaces: make(map[datum.Oid]string),
	}
	for _, ti := range BuiltinTypes() {
		info := ti
		m.types[info.Oid] = &info
	}
	return m
}

// AddRoutine registers a routine declaration.
func (m *Memory) AddRoutine(r Routine) {
	c := r
	m.routines[r.Oid] = &c
}

// AddType registers a type description.
func (m *Memory) AddType(t TypeInfo) {
	c := t
	m.types[t.Oid] = &c
}

// AddNamespace registers a namespace name.
func (m *Memory) AddNamespace(oid datum.Oid, name string) {
	m.namespaces[oid] = name
}

// Routine implements Catalog.
func (m *Memory) Routine(oid datum.Oid) (*Routine, error) {
	r, ok := m.routines[oid]
	if !ok {
		return nil, fmt.Errorf("%w: routine %d", ErrNotFound, oid)
	}
	return r, nil
}

// Type implements Catalog.
func (m *Memory) Type(oid datum.Oid) (*TypeInfo, error) {
	t, ok := m.types[oid]
	if !ok {
		return nil, fmt.Errorf("%w: type %d", ErrNotFound, oid)
	}
	return t, nil
}

// NamespaceName implements Catalog.
func (m *Memory) NamespaceName(oid datum.Oid) (string, error) {
	n, ok := m.namespaces[oid]
	if !ok {
		return "", fmt.Errorf("%w: namespace %d", ErrNotFound, oid)
	}
	return n, nil
}
