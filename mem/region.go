// Package mem models the memory-region discipline of an engine call.
//
// Two regions matter to the bridge. The upper region holds engine-visible
// results, which must outlive the call frame that produced them. The
// current region holds transient coercion scratch and is reset when the
// outermost call returns. An Invocation carries both through a call and
// tracks nesting into the foreign runtime.
package mem

import (
	"context"

	"github.com/Sednai/pljava/internal/arena"
	"github.com/Sednai/pljava/internal/resource"
)

// Region is a lifetime-scoped allocator for native value payloads.
type Region struct {
	name string
	a    *arena.Arena

	// Count of live invocations using this region as scratch. Nested
	// calls share the region, so it resets only when the outermost
	// invocation releases.
	borrows int
}

// NewRegion creates a region with the given chunk size. The controller
// may be nil, in which case reservation is unbounded.
func NewRegion(name string, chunkSize int, ctrl *resource.Controller) (*Region, error) {
	var opts []arena.Option
	if ctrl != nil {
		opts = append(opts, arena.WithMemoryAcquirer(regionAcquirer{ctrl}))
	}
	a, err := arena.New(chunkSize, opts...)
	if err != nil {
		return nil, err
	}
	return &Region{name: name, a: a}, nil
}

type regionAcquirer struct {
	ctrl *resource.Controller
}

func (r regionAcquirer) AcquireMemory(ctx context.Context, amount int64) error {
	return r.ctrl.AcquireMemory(ctx, amount)
}

func (r regionAcquirer) ReleaseMemory(amount int64) {
	r.ctrl.ReleaseMemory(amount)
}

// Name returns the region's diagnostic name.
func (r *Region) Name() string { return r.name }

// AllocBytes allocates a zeroed slice whose lifetime is the region's.
func (r *Region) AllocBytes(size int) ([]byte, error) {
	return r.a.AllocBytes(size)
}

// Dup copies b into the region.
func (r *Region) Dup(b []byte) ([]byte, error) {
	out, err := r.a.AllocBytes(len(b))
	if err != nil {
		return nil, err
	}
	copy(out, b)
	return out, nil
}

// Reset discards everything allocated from the region.
func (r *Region) Reset() { r.a.Reset() }

// Free releases the region's memory. The region cannot be reused.
func (r *Region) Free() { r.a.Free() }

// Stats reports the backing allocator's statistics.
func (r *Region) Stats() arena.Stats { return r.a.Stats() }
