// Package pljava bridges a relational engine's native values to a
// managed object runtime: it binds catalog-declared routines to static
// methods, marshals arguments and results in both directions (including
// one- and two-dimensional arrays with null bitmaps), and dispatches
// ordinary, composite-returning, set-returning and trigger calls.
//
// # Quick Start
//
//	ctx := context.Background()
//	b, _ := pljava.New(cat, rt)
//	defer b.Close()
//
//	// Routine declared in the catalog as "pkg.Util.addOne(int)".
//	out, _ := b.Call(ctx, routineOid, datum.NonNull(datum.FromInt32(41)))
//	fmt.Println(out.Value.Int32()) // 42
//
// # Calling Conventions
//
// Three conventions are supported, chosen by the routine's catalog
// shape:
//
//   - Ordinary: arguments coerce to managed values (null slots become
//     zero slots), the return value coerces back.
//   - Complex return: a routine returning a composite row gets a
//     trailing writable-row parameter; the method returns whether it
//     filled the writer.
//   - Trigger: a single synthetic trigger-context argument, void
//     return, with the possibly modified row extracted afterwards.
//
// # Collaborators
//
// The catalog, the managed runtime, and the row/set/trigger bridges are
// consumed through interfaces (catalog.Catalog, jvm.Runtime,
// types.RowBridge, types.SetBridge, invoke.TriggerBridge); the package
// owns binding, caching, coercion and memory-region discipline.
//
// # Memory Model
//
// Engine-visible results are built in an upper region that outlives the
// call frame; transient coercion scratch uses a current region released
// on every exit path. Both are chunked off-heap arenas, optionally
// bounded by a memory budget (WithMemoryLimit).
package pljava
