package datum

import (
	"errors"
	"fmt"

	"github.com/Sednai/pljava/mem"
)

// MaxDim is the maximum supported array dimensionality. The coercion
// paths handle one and two dimensions; anything higher is rejected
// explicitly rather than truncated.
const MaxDim = 2

// ErrTooManyDims is returned for arrays beyond MaxDim dimensions.
var ErrTooManyDims = errors.New("arrays of more than two dimensions are not supported")

// Array is a native array value: up to two dimension extents, lower
// bounds fixed at 1, an optional null bitmap and a packed payload of the
// non-null elements.
type Array struct {
	ndim    int
	dims    [MaxDim]int
	lbounds [MaxDim]int
	elemOid Oid
	nulls   []byte
	data    []byte
}

// NewArray allocates a one-dimensional array in region r with a payload
// of dataSize bytes for nElems elements. When withNulls is set a null
// bitmap is allocated alongside, initially marking every element null.
func NewArray(r *mem.Region, nElems, dataSize int, elemOid Oid, withNulls bool) (*Array, error) {
	if nElems < 0 {
		return nil, fmt.Errorf("datum: negative element count %d", nElems)
	}
	a := &Array{ndim: 1, elemOid: elemOid}
	a.dims[0] = nElems
	a.lbounds[0] = 1
	return a, a.allocPayload(r, nElems, dataSize, withNulls)
}

// New2DArray allocates a two-dimensional array in region r. The payload
// is flattened row-major; both lower bounds are 1.
func New2DArray(r *mem.Region, dim1, dim2, dataSize int, elemOid Oid, withNulls bool) (*Array, error) {
	if dim1 < 0 || dim2 < 0 {
		return nil, fmt.Errorf("datum: negative dimension extents %d x %d", dim1, dim2)
	}
	a := &Array{ndim: 2, elemOid: elemOid}
	a.dims[0] = dim1
	a.dims[1] = dim2
	a.lbounds[0] = 1
	a.lbounds[1] = 1
	return a, a.allocPayload(r, dim1*dim2, dataSize, withNulls)
}

func (a *Array) allocPayload(r *mem.Region, nElems, dataSize int, withNulls bool) error {
	var err error
	a.data, err = r.AllocBytes(dataSize)
	if err != nil {
		return err
	}
	if withNulls {
		a.nulls, err = r.AllocBytes((nElems + 7) / 8)
	}
	return err
}

// NDim returns the number of dimensions.
func (a *Array) NDim() int { return a.ndim }

// Dim returns the extent of dimension i.
func (a *Array) Dim(i int) int { return a.dims[i] }

// LBound returns the lower bound of dimension i.
func (a *Array) LBound(i int) int { return a.lbounds[i] }

// Len returns the total element count across all dimensions.
func (a *Array) Len() int {
	n := 1
	for i := 0; i < a.ndim; i++ {
		n *= a.dims[i]
	}
	return n
}

// ElemOid returns the native type of the elements.
func (a *Array) ElemOid() Oid { return a.elemOid }

// HasNulls reports whether the array carries a null bitmap.
func (a *Array) HasNulls() bool { return a.nulls != nil }

// Bitmap returns the null bitmap, or nil when every element is present.
func (a *Array) Bitmap() []byte { return a.nulls }

// Data returns the packed payload of the non-null elements.
func (a *Array) Data() []byte { return a.data }

// ShrinkData trims the payload to size bytes, after packing fewer
// elements than the allocation was sized for.
func (a *Array) ShrinkData(size int) { a.data = a.data[:size] }

// IsNull reports whether element idx is null.
func (a *Array) IsNull(idx int) bool { return BitmapIsNull(a.nulls, idx) }

// SetNull records the null state of element idx in the bitmap.
func (a *Array) SetNull(idx int, isNull bool) { BitmapSetNull(a.nulls, idx, isNull) }

// BitmapIsNull reads element idx from a null bitmap. A nil bitmap means
// no element is null. A set bit marks a present element.
func BitmapIsNull(bitmap []byte, idx int) bool {
	if bitmap == nil {
		return false
	}
	return bitmap[idx/8]&(1<<(idx%8)) == 0
}

// BitmapSetNull writes the null state of element idx into the bitmap.
// A nil bitmap is a no-op.
func BitmapSetNull(bitmap []byte, idx int, isNull bool) {
	if bitmap == nil {
		return
	}
	mask := byte(1 << (idx % 8))
	if isNull {
		bitmap[idx/8] &^= mask
	} else {
		bitmap[idx/8] |= mask
	}
}
