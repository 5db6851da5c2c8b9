package pljava

import (
	"context"
	"sync/atomic"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/Sednai/pljava/binder"
	"github.com/Sednai/pljava/cache"
	"github.com/Sednai/pljava/catalog"
	"github.com/Sednai/pljava/datum"
	"github.com/Sednai/pljava/internal/resource"
	"github.com/Sednai/pljava/invoke"
	"github.com/Sednai/pljava/jvm"
	"github.com/Sednai/pljava/mem"
	"github.com/Sednai/pljava/types"
)

const defaultChunkSize = 1 << 20

// Bridge is the dispatch surface between the engine and the managed
// runtime: it binds declared routines to managed static methods, caches
// the bindings, and executes calls with full argument and result
// coercion.
//
// A Bridge serves one backend. Calls are single-threaded but may nest;
// cache lookups tolerate concurrent first use.
type Bridge struct {
	log     *Logger
	cat     catalog.Catalog
	reg     *types.Registry
	cache   *cache.Cache
	invoker *invoke.Invoker

	ctrl    *resource.Controller
	upper   *mem.Region
	current *mem.Region

	closed atomic.Bool
}

// New builds a bridge over an engine catalog and a managed runtime.
func New(cat catalog.Catalog, rt jvm.Runtime, optFns ...Option) (*Bridge, error) {
	o := applyOptions(optFns)

	var ctrl *resource.Controller
	if o.memoryLimit > 0 {
		ctrl = resource.NewController(resource.Config{
			MemoryLimitBytes:       o.memoryLimit,
			GrowthLimitBytesPerSec: o.growthLimit,
		})
	}
	upper, err := mem.NewRegion("upper", o.chunkSize, ctrl)
	if err != nil {
		return nil, err
	}
	current, err := mem.NewRegion("current", o.chunkSize, ctrl)
	if err != nil {
		upper.Free()
		return nil, err
	}

	reg := types.NewRegistry(cat)
	return &Bridge{
		log:     o.logger,
		cat:     cat,
		reg:     reg,
		cache:   cache.New(binder.New(cat, reg, rt)),
		invoker: invoke.New(rt, o.rows, o.sets, o.triggers),
		ctrl:    ctrl,
		upper:   upper,
		current: current,
	}, nil
}

// Registry exposes the type registry, for registering custom
// descriptors before first use.
func (b *Bridge) Registry() *types.Registry { return b.reg }

// Call executes the routine bound to oid with the given argument slots
// and returns the result slot. A foreign exception is logged and
// reported as a null result, matching how the engine expects failed
// managed calls to surface; a pending abort is returned untouched.
func (b *Bridge) Call(ctx context.Context, oid datum.Oid, args ...datum.NullableDatum) (datum.NullableDatum, error) {
	if b.closed.Load() {
		return datum.Null(), ErrClosed
	}
	f, err := b.cache.Get(ctx, oid, false)
	if err != nil {
		return datum.Null(), translateError(err)
	}

	call := &invoke.Call{Args: args}
	d, err := b.invoker.Invoke(ctx, mem.NewInvocation(b.upper, b.current), f, call)
	if err != nil {
		if jvm.IsAbort(err) {
			return datum.Null(), err
		}
		if th, ok := jvm.AsThrowable(err); ok {
			b.log.WithRoutine(oid).Warn("foreign exception during call",
				"class", th.ClassName, "message", th.Message)
			return datum.Null(), nil
		}
		return datum.Null(), translateError(err)
	}
	return datum.NullableDatum{Value: d, IsNull: call.IsNull}, nil
}

// CallTrigger executes the trigger routine bound to oid for one firing
// event and returns the possibly modified row. A foreign exception is
// logged and reported as a null row without extraction.
func (b *Bridge) CallTrigger(ctx context.Context, oid datum.Oid, ev *invoke.TriggerEvent) (datum.NullableDatum, error) {
	if b.closed.Load() {
		return datum.Null(), ErrClosed
	}
	f, err := b.cache.Get(ctx, oid, true)
	if err != nil {
		return datum.Null(), translateError(err)
	}

	d, isNull, err := b.invoker.InvokeTrigger(ctx, mem.NewInvocation(b.upper, b.current), f, ev)
	if err != nil {
		if jvm.IsAbort(err) {
			return datum.Null(), err
		}
		if th, ok := jvm.AsThrowable(err); ok {
			b.log.WithRoutine(oid).Warn("foreign exception during trigger",
				"class", th.ClassName, "message", th.Message)
			return datum.Null(), nil
		}
		return datum.Null(), translateError(err)
	}
	return datum.NullableDatum{Value: d, IsNull: isNull}, nil
}

// Invalidate evicts the cached binding of one routine after a catalog
// change.
func (b *Bridge) Invalidate(oid datum.Oid) {
	b.cache.Invalidate(oid)
}

// InvalidateSet evicts every cached binding named in a batch of changed
// routine oids.
func (b *Bridge) InvalidateSet(set *roaring.Bitmap) {
	b.cache.InvalidateSet(set)
}

// Close releases the call memory regions. The bridge cannot be used
// afterwards.
func (b *Bridge) Close() error {
	if b.closed.Swap(true) {
		return nil
	}
	b.current.Free()
	b.upper.Free()
	return nil
}
