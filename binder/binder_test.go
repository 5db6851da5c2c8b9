package binder

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sednai/pljava/catalog"
	"github.com/Sednai/pljava/datum"
	"github.com/Sednai/pljava/jvm"
	"github.com/Sednai/pljava/jvm/jvmtest"
	"github.com/Sednai/pljava/types"
)

const (
	nsOid      = datum.Oid(2200)
	addOneOid  = datum.Oid(16500)
	rowRetOid  = datum.Oid(16501)
	setRetOid  = datum.Oid(16502)
	trigOid    = datum.Oid(16503)
	personsOid = datum.Oid(16600)
)

func testBinder(t *testing.T) (*Binder, *catalog.Memory, *jvmtest.Runtime) {
	t.Helper()
	cat := catalog.NewMemory()
	cat.AddNamespace(nsOid, "public")
	cat.AddType(catalog.TypeInfo{Oid: personsOid, Length: -1, Align: catalog.AlignDouble, Composite: true})
	rt := jvmtest.NewRuntime()
	return New(cat, types.NewRegistry(cat), rt), cat, rt
}

func addOneRoutine(source string) catalog.Routine {
	return catalog.Routine{
		Oid:        addOneOid,
		Namespace:  nsOid,
		Source:     source,
		ReturnType: catalog.Int4Oid,
		ArgTypes:   []datum.Oid{catalog.Int4Oid},
	}
}

func TestBindStaticMethod(t *testing.T) {
	b, cat, rt := testBinder(t)
	cat.AddRoutine(addOneRoutine("pkg.Util.addOne"))
	rt.DefineClass("pkg/Util").Static("addOne", "(I)I", func(args []jvm.Value) (jvm.Value, error) {
		return jvm.Int(args[0].Int32() + 1), nil
	})

	f, err := b.Bind(context.Background(), addOneOid, false)
	require.NoError(t, err)
	assert.Equal(t, "pkg.Util", f.ClassName())
	assert.Equal(t, "(I)I", f.Signature())
	assert.Equal(t, "addOne", f.Method().Name())
	require.Len(t, f.Params(), 1)
	assert.Equal(t, "int", f.Params()[0].JavaName())
	assert.Equal(t, "int", f.Return().JavaName())
	assert.Equal(t, []string{"public"}, rt.Schemas)
}

func TestBindExplicitDeclaration(t *testing.T) {
	b, cat, rt := testBinder(t)
	cat.AddRoutine(addOneRoutine("pkg.Util.addOne(java.lang.Integer)"))
	rt.DefineClass("pkg/Util").Static("addOne", "(Ljava/lang/Integer;)I", func(args []jvm.Value) (jvm.Value, error) {
		return jvm.Void(), nil
	})

	f, err := b.Bind(context.Background(), addOneOid, false)
	require.NoError(t, err)
	assert.Equal(t, "(Ljava/lang/Integer;)I", f.Signature())
	assert.Equal(t, "java.lang.Integer", f.Params()[0].JavaName())
}

func TestBindDeclarationErrors(t *testing.T) {
	tests := []struct {
		name   string
		source string
		reason string
	}{
		{"count mismatch", "pkg.Util.addOne(int,int)", "routine has 1"},
		{"whitespace in type", "pkg.Util.addOne(ja va.lang.Integer)", "whitespace"},
		{"bad replacement", "pkg.Util.addOne(long)", "cannot be used in place of"},
		{"unknown type", "pkg.Util.addOne(com.example.Missing)", "unknown type"},
		{"no class name", "addOne", "missing a class name"},
		{"junk after method", "pkg.Util.add One(int)", "extraneous characters"},
		{"empty param", "pkg.Util.addOne(int,)", "empty parameter type"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, cat, _ := testBinder(t)
			cat.AddRoutine(addOneRoutine(tt.source))
			_, err := b.Bind(context.Background(), addOneOid, false)
			var se *SyntaxError
			require.ErrorAs(t, err, &se)
			assert.Contains(t, err.Error(), tt.reason)
		})
	}
}

func TestBindBoxedReturnFallback(t *testing.T) {
	b, cat, rt := testBinder(t)
	cat.AddRoutine(addOneRoutine("pkg.Util.addOne"))
	// Only the boxed-return signature exists.
	rt.DefineClass("pkg/Util").Static("addOne", "(I)Ljava/lang/Integer;", func(args []jvm.Value) (jvm.Value, error) {
		return jvm.Ref(&jvm.Boxed{Val: jvm.Int(args[0].Int32() + 1)}), nil
	})

	f, err := b.Bind(context.Background(), addOneOid, false)
	require.NoError(t, err)
	assert.Equal(t, "(I)Ljava/lang/Integer;", f.Signature())
	assert.Equal(t, "java.lang.Integer", f.Return().JavaName())
}

func TestBindMemberError(t *testing.T) {
	b, cat, rt := testBinder(t)
	cat.AddRoutine(addOneRoutine("pkg.Util.addOne"))
	rt.DefineClass("pkg/Util")

	_, err := b.Bind(context.Background(), addOneOid, false)
	var me *MemberError
	require.ErrorAs(t, err, &me)
	assert.Equal(t, "pkg.Util", me.Class)
	assert.Equal(t, "addOne", me.Method)
	assert.Equal(t, "(I)I", me.Signature)
	assert.ErrorIs(t, err, jvm.ErrMethodNotFound)
	assert.Contains(t, err.Error(), "(I)I")
}

func TestBindMissingClass(t *testing.T) {
	b, cat, _ := testBinder(t)
	cat.AddRoutine(addOneRoutine("pkg.Util.addOne"))

	_, err := b.Bind(context.Background(), addOneOid, false)
	assert.ErrorIs(t, err, jvm.ErrClassNotFound)
}

func TestBindTrigger(t *testing.T) {
	b, cat, rt := testBinder(t)
	cat.AddRoutine(catalog.Routine{
		Oid:       trigOid,
		Namespace: nsOid,
		Source:    "pkg.Audit.onChange",
	})
	rt.DefineClass("pkg/Audit").Static("onChange", "(Lorg/postgresql/pljava/TriggerData;)V", func(args []jvm.Value) (jvm.Value, error) {
		return jvm.Void(), nil
	})

	f, err := b.Bind(context.Background(), trigOid, true)
	require.NoError(t, err)
	assert.True(t, f.IsTrigger())
	assert.Equal(t, "(Lorg/postgresql/pljava/TriggerData;)V", f.Signature())
	require.Len(t, f.Params(), 1)
	assert.Equal(t, types.TriggerDataName, f.Params()[0].JavaName())
	assert.Equal(t, "void", f.Return().JavaName())
}

func TestBindTriggerRejectsDeclaration(t *testing.T) {
	b, cat, _ := testBinder(t)
	cat.AddRoutine(catalog.Routine{
		Oid:       trigOid,
		Namespace: nsOid,
		Source:    "pkg.Audit.onChange(int)",
	})

	_, err := b.Bind(context.Background(), trigOid, true)
	var se *SyntaxError
	require.ErrorAs(t, err, &se)
	assert.Contains(t, err.Error(), "triggers can not have a parameter declaration")
}

func TestBindComplexReturn(t *testing.T) {
	b, cat, rt := testBinder(t)
	cat.AddRoutine(catalog.Routine{
		Oid:        rowRetOid,
		Namespace:  nsOid,
		Source:     "pkg.People.lookup(java.lang.String)",
		ReturnType: personsOid,
		ArgTypes:   []datum.Oid{catalog.TextOid},
	})
	sig := "(Ljava/lang/String;Lorg/postgresql/pljava/jdbc/SingleRowWriter;)Z"
	rt.DefineClass("pkg/People").Static("lookup", sig, func(args []jvm.Value) (jvm.Value, error) {
		return jvm.Boolean(true), nil
	})

	f, err := b.Bind(context.Background(), rowRetOid, false)
	require.NoError(t, err)
	assert.True(t, f.ComplexReturn())
	assert.Equal(t, personsOid, f.RowType())
	assert.Equal(t, sig, f.Signature())
	// The declaration names only the real parameter; the writer is
	// appended after reconciliation.
	require.Len(t, f.Params(), 2)
	assert.Equal(t, "java.lang.String", f.Params()[0].JavaName())
	assert.Equal(t, types.SingleRowWriterName, f.Params()[1].JavaName())
	assert.Equal(t, "boolean", f.Return().JavaName())
}

func TestBindSetReturning(t *testing.T) {
	b, cat, rt := testBinder(t)
	cat.AddRoutine(catalog.Routine{
		Oid:        setRetOid,
		Namespace:  nsOid,
		Source:     "pkg.People.listAll",
		ReturnsSet: true,
		ReturnType: personsOid,
	})
	sig := "()Lorg/postgresql/pljava/ResultSetProvider;"
	rt.DefineClass("pkg/People").Static("listAll", sig, func(args []jvm.Value) (jvm.Value, error) {
		return jvm.Null(), nil
	})

	f, err := b.Bind(context.Background(), setRetOid, false)
	require.NoError(t, err)
	assert.True(t, f.ReturnsSet())
	assert.Equal(t, personsOid, f.RowType())
	assert.Equal(t, sig, f.Signature())
	assert.Equal(t, types.ResultSetProviderName, f.Return().JavaName())
}

func TestParseTarget(t *testing.T) {
	tg, err := parseTarget("  org.example.deep.Util.work ( int , long )  ")
	require.NoError(t, err)
	assert.Equal(t, "org.example.deep.Util", tg.class)
	assert.Equal(t, "work", tg.method)
	assert.True(t, tg.hasDecl)
	assert.Equal(t, " int , long ", tg.decl)

	tg, err = parseTarget("org.example.Util.work")
	require.NoError(t, err)
	assert.False(t, tg.hasDecl)

	// An empty declaration is distinct from no declaration.
	tg, err = parseTarget("org.example.Util.work()")
	require.NoError(t, err)
	assert.True(t, tg.hasDecl)
	assert.Empty(t, tg.decl)

	_, err = parseTarget("   ")
	assert.Error(t, err)
}

func TestParseTargetMethodNameCharacters(t *testing.T) {
	// Letters and digits only; '_' and '$' are managed-identifier
	// characters but the declaration grammar rejects them.
	for _, src := range []string{
		"org.example.Util.do_work",
		"org.example.Util.work$inner",
		"org.example.Util.do_work(int)",
	} {
		_, err := parseTarget(src)
		assert.ErrorContains(t, err, "extraneous characters", src)
	}

	tg, err := parseTarget("org.example.Util.work2")
	require.NoError(t, err)
	assert.Equal(t, "work2", tg.method)
}
