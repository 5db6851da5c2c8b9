package jvm

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValueRoundTrip(t *testing.T) {
	assert.True(t, Boolean(true).Bool())
	assert.False(t, Boolean(false).Bool())
	assert.Equal(t, int16(-3), Short(-3).Int16())
	assert.Equal(t, int32(42), Int(42).Int32())
	assert.Equal(t, int64(math.MaxInt64), Long(math.MaxInt64).Int64())
	assert.Equal(t, float32(1.5), Float(1.5).Float32())
	assert.Equal(t, 2.25, Double(2.25).Float64())
	assert.True(t, math.IsNaN(Double(math.NaN()).Float64()))
}

func TestValueNull(t *testing.T) {
	assert.True(t, Void().IsNull())
	assert.True(t, Null().IsNull())
	assert.False(t, Int(0).IsNull())
	assert.False(t, Ref(String("x")).IsNull())
}

func TestZero(t *testing.T) {
	assert.Equal(t, int32(0), Zero(KindInt).Int32())
	assert.Equal(t, KindInt, Zero(KindInt).Kind())
	assert.True(t, Zero(KindObject).IsNull())
}

func TestSignatures(t *testing.T) {
	assert.Equal(t, "I", KindInt.Signature())
	assert.Equal(t, "V", KindVoid.Signature())
	assert.Equal(t, "Ljava/lang/String;", String("s").Signature())
	assert.Equal(t, "[D", (&DoubleArray{}).Signature())
	assert.Equal(t, "[[I", (&ObjectArray{ElemSig: "[I"}).Signature())

	b := &Boxed{Val: Int(5)}
	assert.Equal(t, "Ljava/lang/Integer;", b.Signature())
	assert.Equal(t, "Ljava/lang/Double;", BoxedSignature(KindDouble))
}

func TestThrowable(t *testing.T) {
	err := error(&Throwable{ClassName: "java.lang.RuntimeException", Message: "boom"})
	th, ok := AsThrowable(err)
	assert.True(t, ok)
	assert.Equal(t, "boom", th.Message)
	assert.Contains(t, err.Error(), "RuntimeException")
	assert.False(t, IsAbort(err))
	assert.True(t, IsAbort(ErrAbort))
}
