package mem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sednai/pljava/internal/resource"
)

func TestRegionAlloc(t *testing.T) {
	r, err := NewRegion("upper", 4096, nil)
	require.NoError(t, err)
	defer r.Free()

	b, err := r.AllocBytes(64)
	require.NoError(t, err)
	assert.Len(t, b, 64)

	d, err := r.Dup([]byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), d)

	assert.Equal(t, "upper", r.Name())
}

func TestRegionBudget(t *testing.T) {
	ctrl := resource.NewController(resource.Config{MemoryLimitBytes: 4096})
	r, err := NewRegion("upper", 4096, ctrl)
	require.NoError(t, err)
	defer r.Free()

	// Budget is fully consumed by the initial chunk; growth must fail.
	_, err = r.AllocBytes(4096)
	require.NoError(t, err)
	_, err = r.AllocBytes(4096)
	assert.Error(t, err)
}

func TestInvocationScratch(t *testing.T) {
	upper, err := NewRegion("upper", 4096, nil)
	require.NoError(t, err)
	defer upper.Free()
	scratch, err := NewRegion("scratch", 4096, nil)
	require.NoError(t, err)
	defer scratch.Free()

	inv := NewInvocation(upper, scratch)
	assert.Same(t, upper, inv.Upper())
	assert.Same(t, scratch, inv.Current())

	_, err = inv.Current().AllocBytes(100)
	require.NoError(t, err)
	assert.NotZero(t, scratch.Stats().BytesUsed)

	inv.ReleaseScratch()
	assert.Zero(t, scratch.Stats().BytesUsed)
}

func TestNestedInvocationsShareScratch(t *testing.T) {
	scratch, err := NewRegion("scratch", 4096, nil)
	require.NoError(t, err)
	defer scratch.Free()

	// A managed routine reentering the bridge opens an inner invocation
	// over the same scratch region while the outer one is still live.
	outer := NewInvocation(nil, scratch)
	_, err = scratch.AllocBytes(64)
	require.NoError(t, err)

	inner := NewInvocation(nil, scratch)
	_, err = scratch.AllocBytes(32)
	require.NoError(t, err)

	inner.ReleaseScratch()
	assert.NotZero(t, scratch.Stats().BytesUsed, "inner release keeps the outer call's scratch")

	// Repeated release of the same invocation holds no extra claim.
	inner.ReleaseScratch()
	assert.NotZero(t, scratch.Stats().BytesUsed)

	outer.ReleaseScratch()
	assert.Zero(t, scratch.Stats().BytesUsed)
}

func TestInvocationForeignDepth(t *testing.T) {
	inv := NewInvocation(nil, nil)
	assert.False(t, inv.InForeign())

	leave := inv.EnterForeign()
	assert.True(t, inv.InForeign())

	// Nested crossing.
	leave2 := inv.EnterForeign()
	leave2()
	assert.True(t, inv.InForeign())

	leave()
	assert.False(t, inv.InForeign())
}
