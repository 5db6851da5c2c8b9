package types

import (
	"fmt"
	"strings"
	"sync"

	"github.com/Sednai/pljava/catalog"
	"github.com/Sednai/pljava/datum"
	"github.com/Sednai/pljava/jvm"
)

// Registry interns type descriptors and resolves them by managed name or
// native oid. Descriptors are interned so that replacement checks can
// rely on identity; a given (oid, name) pair always yields the same
// descriptor.
type Registry struct {
	cat catalog.Catalog

	mu             sync.RWMutex
	byName         map[string]Type
	byOid          map[datum.Oid]Type
	arrayOidByElem map[datum.Oid]datum.Oid

	trigger    *refType
	writers    map[datum.Oid]*refType
	providers  map[datum.Oid]*refType
	composites map[datum.Oid]*refType
}

// NewRegistry builds a registry seeded with the built-in scalar, string
// and array descriptors, consulting cat for everything else.
func NewRegistry(cat catalog.Catalog) *Registry {
	r := &Registry{
		cat:            cat,
		byName:         make(map[string]Type),
		byOid:          make(map[datum.Oid]Type),
		arrayOidByElem: make(map[datum.Oid]datum.Oid),
		trigger:        newTriggerDataType(),
		writers:        make(map[datum.Oid]*refType),
		providers:      make(map[datum.Oid]*refType),
		composites:     make(map[datum.Oid]*refType),
	}
	r.seedScalar(catalog.BoolOid, catalog.BoolArrayOid, "boolean", "java.lang.Boolean", jvm.KindBoolean, layoutBool)
	r.seedScalar(catalog.Int2Oid, catalog.Int2ArrayOid, "short", "java.lang.Short", jvm.KindShort, layoutInt2)
	r.seedScalar(catalog.Int4Oid, catalog.Int4ArrayOid, "int", "java.lang.Integer", jvm.KindInt, layoutInt4)
	r.seedScalar(catalog.Int8Oid, catalog.Int8ArrayOid, "long", "java.lang.Long", jvm.KindLong, layoutInt8)
	r.seedScalar(catalog.Float4Oid, catalog.Float4ArrayOid, "float", "java.lang.Float", jvm.KindFloat, layoutFloat4)
	r.seedScalar(catalog.Float8Oid, catalog.Float8ArrayOid, "double", "java.lang.Double", jvm.KindDouble, layoutFloat8)

	str := &stringType{oid: catalog.TextOid, name: "java.lang.String"}
	strArr := &objectArrayType{oid: catalog.TextArrayOid, elem: str}
	r.byName[str.name] = str
	r.byName[strArr.JavaName()] = strArr
	r.byOid[catalog.TextOid] = str
	r.byOid[catalog.VarcharOid] = &stringType{oid: catalog.VarcharOid, name: "java.lang.String"}
	r.byOid[catalog.TextArrayOid] = strArr
	r.arrayOidByElem[catalog.TextOid] = catalog.TextArrayOid

	r.byName["void"] = voidType{}
	r.byOid[catalog.VoidOid] = voidType{}
	r.byName[TriggerDataName] = r.trigger
	return r
}

// seedScalar interns a primitive/boxed pair and both array variants,
// cross-linked so ObjectType navigation works on the array level too.
func (r *Registry) seedScalar(oid, arrayOid datum.Oid, primName, boxedName string, kind jvm.Kind, layout Layout) {
	p, b := newScalarPair(oid, primName, boxedName, kind, layout)
	oa := &objectArrayType{oid: arrayOid, elem: b}
	pa := &primArrayType{oid: arrayOid, elem: p, boxed: oa}
	oa.prim = pa

	r.byName[primName] = p
	r.byName[boxedName] = b
	r.byName[pa.JavaName()] = pa
	r.byName[oa.JavaName()] = oa
	r.byOid[oid] = p
	r.byOid[arrayOid] = pa
	r.arrayOidByElem[oid] = arrayOid
}

// Register interns a custom descriptor under its managed name, and as
// the default for its oid when no default exists yet. A name already
// bound to a different descriptor is rejected; bindings created before
// the call would otherwise keep the old descriptor while later ones get
// the new, and replacement checks compare descriptors by identity.
func (r *Registry) Register(t Type) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if prev, ok := r.byName[t.JavaName()]; ok {
		if prev == t {
			return nil
		}
		return fmt.Errorf("types: %s is already bound to a different descriptor", t.JavaName())
	}
	r.byName[t.JavaName()] = t
	if oid := t.Oid(); oid != datum.InvalidOid {
		if _, ok := r.byOid[oid]; !ok {
			r.byOid[oid] = t
		}
	}
	return nil
}

// Resolve returns the descriptor for a managed type name, deriving array
// descriptors for names ending in [].
func (r *Registry) Resolve(name string) (Type, error) {
	r.mu.RLock()
	t, ok := r.byName[name]
	r.mu.RUnlock()
	if ok {
		return t, nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.resolveLocked(name)
}

func (r *Registry) resolveLocked(name string) (Type, error) {
	if t, ok := r.byName[name]; ok {
		return t, nil
	}
	base, isArray := strings.CutSuffix(name, "[]")
	if !isArray {
		return nil, fmt.Errorf("%w: %s", ErrNoSuchType, name)
	}
	elem, err := r.resolveLocked(base)
	if err != nil {
		return nil, err
	}
	t := r.deriveArrayLocked(elem)
	r.byName[name] = t
	return t, nil
}

func (r *Registry) deriveArrayLocked(elem Type) Type {
	arrayOid := r.arrayOidByElem[elem.Oid()]
	if p, ok := elem.(*primType); ok {
		oa := &objectArrayType{oid: arrayOid, elem: p.boxed}
		pa := &primArrayType{oid: arrayOid, elem: p, boxed: oa}
		oa.prim = pa
		return pa
	}
	return &objectArrayType{oid: arrayOid, elem: elem}
}

// TypeForOid returns the default descriptor for a native type. Unknown
// scalar types fall back to the string descriptor; composite types get a
// row-accessor descriptor; array types derive from their element.
func (r *Registry) TypeForOid(oid datum.Oid) (Type, error) {
	r.mu.RLock()
	t, ok := r.byOid[oid]
	r.mu.RUnlock()
	if ok {
		return t, nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.typeForOidLocked(oid)
}

func (r *Registry) typeForOidLocked(oid datum.Oid) (Type, error) {
	if t, ok := r.byOid[oid]; ok {
		return t, nil
	}
	var t Type
	info, err := r.cat.Type(oid)
	switch {
	case err != nil:
		// Not in the catalog; the string rendering still works.
		t = &stringType{oid: oid, name: "java.lang.String"}
	case info.Composite:
		t = r.compositeLocked(oid)
	case info.Element != datum.InvalidOid:
		elem, err := r.typeForOidLocked(info.Element)
		if err != nil {
			return nil, err
		}
		r.arrayOidByElem[info.Element] = oid
		t = r.deriveArrayLocked(elem)
	default:
		t = &stringType{oid: oid, name: "java.lang.String"}
	}
	r.byOid[oid] = t
	return t, nil
}

func (r *Registry) compositeLocked(rowType datum.Oid) *refType {
	if t, ok := r.composites[rowType]; ok {
		return t
	}
	t := newCompositeType(rowType)
	r.composites[rowType] = t
	return t
}

// CompositeType returns the row-accessor descriptor for a composite
// parameter of the given row type.
func (r *Registry) CompositeType(rowType datum.Oid) Type {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.compositeLocked(rowType)
}

// TriggerData returns the descriptor of the trigger-call argument.
func (r *Registry) TriggerData() Type { return r.trigger }

// WriterType returns the descriptor of the synthetic trailing writer
// parameter of routines returning the given composite row type.
func (r *Registry) WriterType(rowType datum.Oid) Type {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.writers[rowType]; ok {
		return t
	}
	t := newRowWriterType(rowType)
	r.writers[rowType] = t
	return t
}

// ProviderType returns the return descriptor of set-returning routines
// producing the given row type.
func (r *Registry) ProviderType(rowType datum.Oid) Type {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.providers[rowType]; ok {
		return t
	}
	t := newProviderType(rowType)
	r.providers[rowType] = t
	return t
}
