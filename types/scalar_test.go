package types

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sednai/pljava/catalog"
	"github.com/Sednai/pljava/datum"
	"github.com/Sednai/pljava/jvm"
)

func TestPrimitiveCoercion(t *testing.T) {
	r := NewRegistry(catalog.NewMemory())
	cx := testContext(t)

	intT, err := r.Resolve("int")
	require.NoError(t, err)

	v, err := intT.CoerceDatum(cx, datum.FromInt32(41))
	require.NoError(t, err)
	assert.Equal(t, jvm.KindInt, v.Kind())
	assert.Equal(t, int32(41), v.Int32())

	d, isNull, err := intT.CoerceValue(cx, jvm.Int(42))
	require.NoError(t, err)
	assert.False(t, isNull)
	assert.Equal(t, int32(42), d.Int32())

	dblT, err := r.Resolve("double")
	require.NoError(t, err)
	v, err = dblT.CoerceDatum(cx, datum.FromFloat64(2.718))
	require.NoError(t, err)
	assert.Equal(t, 2.718, v.Float64())
}

func TestBoxedCoercion(t *testing.T) {
	r := NewRegistry(catalog.NewMemory())
	cx := testContext(t)

	integerT, err := r.Resolve("java.lang.Integer")
	require.NoError(t, err)

	v, err := integerT.CoerceDatum(cx, datum.FromInt32(7))
	require.NoError(t, err)
	require.Equal(t, jvm.KindObject, v.Kind())
	box, ok := v.Object().(*jvm.Boxed)
	require.True(t, ok)
	assert.Equal(t, int32(7), box.Val.Int32())

	d, isNull, err := integerT.CoerceValue(cx, v)
	require.NoError(t, err)
	assert.False(t, isNull)
	assert.Equal(t, int32(7), d.Int32())

	// A managed null box becomes a native null.
	_, isNull, err = integerT.CoerceValue(cx, jvm.Null())
	require.NoError(t, err)
	assert.True(t, isNull)

	_, _, err = integerT.CoerceValue(cx, jvm.Ref(jvm.String("x")))
	assert.Error(t, err)
}

func TestStringCoercion(t *testing.T) {
	r := NewRegistry(catalog.NewMemory())
	cx := testContext(t)

	strT, err := r.Resolve("java.lang.String")
	require.NoError(t, err)

	v, err := strT.CoerceDatum(cx, datum.FromBytes([]byte("hello")))
	require.NoError(t, err)
	assert.Equal(t, jvm.String("hello"), v.Object())

	d, isNull, err := strT.CoerceValue(cx, jvm.Ref(jvm.String("world")))
	require.NoError(t, err)
	assert.False(t, isNull)
	b, ok := d.Bytes()
	require.True(t, ok)
	assert.Equal(t, []byte("world"), b)

	_, isNull, err = strT.CoerceValue(cx, jvm.Null())
	require.NoError(t, err)
	assert.True(t, isNull)

	_, err = strT.CoerceDatum(cx, datum.FromInt32(1))
	assert.Error(t, err)
}

func TestNullPlaceholders(t *testing.T) {
	assert.True(t, math.IsNaN(float64(nullPlaceholder(jvm.KindFloat).Float32())))
	assert.True(t, math.IsNaN(nullPlaceholder(jvm.KindDouble).Float64()))
	assert.Equal(t, int32(0), nullPlaceholder(jvm.KindInt).Int32())
	assert.Equal(t, int64(0), nullPlaceholder(jvm.KindLong).Int64())
	assert.False(t, nullPlaceholder(jvm.KindBoolean).Bool())
}
