package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sednai/pljava/catalog"
	"github.com/Sednai/pljava/datum"
	"github.com/Sednai/pljava/mem"
)

func testContext(t *testing.T) *Context {
	t.Helper()
	upper, err := mem.NewRegion("upper", 1<<16, nil)
	require.NoError(t, err)
	current, err := mem.NewRegion("current", 1<<16, nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		upper.Free()
		current.Free()
	})
	return &Context{Inv: mem.NewInvocation(upper, current)}
}

func TestRegistryResolveBuiltins(t *testing.T) {
	r := NewRegistry(catalog.NewMemory())

	for _, name := range []string{
		"boolean", "short", "int", "long", "float", "double",
		"java.lang.Boolean", "java.lang.Short", "java.lang.Integer",
		"java.lang.Long", "java.lang.Float", "java.lang.Double",
		"java.lang.String", "void",
		"int[]", "java.lang.Integer[]", "double[]", "java.lang.String[]",
	} {
		tp, err := r.Resolve(name)
		require.NoError(t, err, name)
		assert.Equal(t, name, tp.JavaName())
	}

	_, err := r.Resolve("com.example.NoSuch")
	assert.ErrorIs(t, err, ErrNoSuchType)
}

func TestRegistryRegisterConflict(t *testing.T) {
	r := NewRegistry(catalog.NewMemory())

	custom := &stringType{oid: 17000, name: "com.example.Point"}
	require.NoError(t, r.Register(custom))
	require.NoError(t, r.Register(custom), "re-registering the same descriptor is idempotent")

	// A different descriptor under a taken name is rejected, so every
	// binding made before and after resolves to the same descriptor.
	other := &stringType{oid: 17001, name: "com.example.Point"}
	assert.Error(t, r.Register(other))
	assert.Error(t, r.Register(&stringType{oid: 17002, name: "java.lang.String"}))

	got, err := r.Resolve("com.example.Point")
	require.NoError(t, err)
	assert.Same(t, custom, got)
}

func TestRegistryInterning(t *testing.T) {
	r := NewRegistry(catalog.NewMemory())

	a, err := r.Resolve("int")
	require.NoError(t, err)
	b, err := r.TypeForOid(catalog.Int4Oid)
	require.NoError(t, err)
	assert.Same(t, a, b)

	// Lazily derived array descriptors are interned too.
	x, err := r.Resolve("java.lang.String[]")
	require.NoError(t, err)
	y, err := r.TypeForOid(catalog.TextArrayOid)
	require.NoError(t, err)
	assert.Same(t, x, y)
}

func TestCanReplaceRules(t *testing.T) {
	r := NewRegistry(catalog.NewMemory())

	intT, _ := r.Resolve("int")
	integerT, _ := r.Resolve("java.lang.Integer")
	longT, _ := r.Resolve("long")
	intArr, _ := r.Resolve("int[]")
	integerArr, _ := r.Resolve("java.lang.Integer[]")

	assert.True(t, intT.CanReplace(intT))
	assert.True(t, integerT.CanReplace(intT), "box replaces its primitive")
	assert.True(t, integerT.CanReplace(integerT))
	assert.False(t, intT.CanReplace(integerT), "primitive replaces only itself")
	assert.False(t, integerT.CanReplace(longT))

	assert.True(t, integerArr.CanReplace(intArr), "boxed elements replace primitive elements")
	assert.True(t, intArr.CanReplace(integerArr), "primitive array replaces its boxed counterpart")
	assert.False(t, intArr.CanReplace(longT))
}

func TestTypeForOidFallbacks(t *testing.T) {
	cat := catalog.NewMemory()
	const numericOid = datum.Oid(1700)
	cat.AddType(catalog.TypeInfo{Oid: numericOid, Length: -1, Align: catalog.AlignInt})
	const rowOid = datum.Oid(16384)
	cat.AddType(catalog.TypeInfo{Oid: rowOid, Length: -1, Align: catalog.AlignDouble, Composite: true})

	r := NewRegistry(cat)

	tp, err := r.TypeForOid(numericOid)
	require.NoError(t, err)
	assert.Equal(t, "java.lang.String", tp.JavaName())
	assert.Equal(t, numericOid, tp.Oid())

	// Types absent from the catalog entirely also fall back to string.
	tp, err = r.TypeForOid(datum.Oid(99999))
	require.NoError(t, err)
	assert.Equal(t, "java.lang.String", tp.JavaName())

	tp, err = r.TypeForOid(rowOid)
	require.NoError(t, err)
	assert.Equal(t, SingleRowReaderName, tp.JavaName())
	again, err := r.TypeForOid(rowOid)
	require.NoError(t, err)
	assert.Same(t, tp, again)
}

func TestSpecialDescriptorInterning(t *testing.T) {
	r := NewRegistry(catalog.NewMemory())
	const rowOid = datum.Oid(16385)

	assert.Same(t, r.WriterType(rowOid), r.WriterType(rowOid))
	assert.Same(t, r.ProviderType(rowOid), r.ProviderType(rowOid))
	assert.Same(t, r.CompositeType(rowOid), r.CompositeType(rowOid))
	assert.Equal(t, "V", Type(voidType{}).JNISignature())

	td, err := r.Resolve(TriggerDataName)
	require.NoError(t, err)
	assert.Same(t, r.TriggerData(), td)
}
