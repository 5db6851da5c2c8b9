// Package invoke executes bound functions: it coerces native arguments
// into managed values, dispatches across the runtime boundary, and
// coerces the result back, handling the complex-return and trigger
// calling conventions.
package invoke

import (
	"context"
	"fmt"

	"github.com/Sednai/pljava/binder"
	"github.com/Sednai/pljava/datum"
	"github.com/Sednai/pljava/jvm"
	"github.com/Sednai/pljava/mem"
	"github.com/Sednai/pljava/types"
)

// Call is one engine call frame: the argument slots and the null-result
// flag. The flag is cleared before dispatch and re-set only when the
// callable legitimately produces no value.
type Call struct {
	Args   []datum.NullableDatum
	IsNull bool
}

// TriggerOp is the statement kind that fired a trigger.
type TriggerOp uint8

const (
	TriggerInsert TriggerOp = iota
	TriggerUpdate
	TriggerDelete
	TriggerTruncate
)

// TriggerWhen is the firing time relative to the statement.
type TriggerWhen uint8

const (
	TriggerBefore TriggerWhen = iota
	TriggerAfter
)

// TriggerEvent is the fixed-shape description of a firing event the
// engine hands over; the bridge wraps it into the single synthetic
// trigger-context argument.
type TriggerEvent struct {
	Name     string
	Relation string
	Op       TriggerOp
	When     TriggerWhen
	PerRow   bool
	OldRow   datum.NullableDatum
	NewRow   datum.NullableDatum
}

// TriggerBridge constructs the managed trigger-context value and
// extracts the possibly modified row after the call. External
// collaborator, like the row bridge.
type TriggerBridge interface {
	NewTriggerData(ev *TriggerEvent) (jvm.Object, error)

	// ExtractRow reads the row the trigger call produced, allocated in
	// region r so it outlives the call frame.
	ExtractRow(td jvm.Object, r *mem.Region) (datum.Datum, bool, error)
}

// Invoker dispatches bound functions over a runtime and its
// collaborating bridges.
type Invoker struct {
	rt       jvm.Runtime
	rows     types.RowBridge
	sets     types.SetBridge
	triggers TriggerBridge
}

// New builds an invoker. The trigger bridge may be nil when trigger
// dispatch is not used.
func New(rt jvm.Runtime, rows types.RowBridge, sets types.SetBridge, triggers TriggerBridge) *Invoker {
	return &Invoker{rt: rt, rows: rows, sets: sets, triggers: triggers}
}

// Invoke executes an ordinary (non-trigger) call. Null arguments are
// substituted with the zero slot of the parameter's kind. The result
// datum is built in the invocation's upper region; call.IsNull reports a
// null result. A foreign exception is returned as a *jvm.Throwable with
// call.IsNull set, so the caller can log it and hand the engine a null
// outcome. Transient scratch is released on every exit path.
func (iv *Invoker) Invoke(ctx context.Context, inv *mem.Invocation, f *binder.Function, call *Call) (datum.Datum, error) {
	defer inv.ReleaseScratch()
	if f.IsTrigger() {
		return datum.Datum{}, fmt.Errorf("invoke: function %d is bound for trigger calls", f.Oid())
	}
	cx := &types.Context{Inv: inv, Rows: iv.rows, Sets: iv.sets}

	params := f.Params()
	nDeclared := len(params)
	if f.ComplexReturn() {
		nDeclared--
	}
	if len(call.Args) != nDeclared {
		return datum.Datum{}, fmt.Errorf("invoke: function %d takes %d arguments, got %d", f.Oid(), nDeclared, len(call.Args))
	}

	args := make([]jvm.Value, len(params))
	for i := 0; i < nDeclared; i++ {
		if call.Args[i].IsNull {
			args[i] = jvm.Zero(params[i].Kind())
			continue
		}
		v, err := params[i].CoerceDatum(cx, call.Args[i].Value)
		if err != nil {
			return datum.Datum{}, fmt.Errorf("invoke: argument %d: %w", i, err)
		}
		args[i] = v
	}

	var writer jvm.Object
	if f.ComplexReturn() {
		if iv.rows == nil {
			return datum.Datum{}, fmt.Errorf("invoke: function %d needs a row bridge for its composite result", f.Oid())
		}
		var err error
		writer, err = iv.rows.NewRowWriter(f.RowType())
		if err != nil {
			return datum.Datum{}, err
		}
		args[len(args)-1] = jvm.Ref(writer)
	}

	call.IsNull = false
	ret, err := iv.callStatic(ctx, inv, f, args)
	if err != nil {
		if _, ok := jvm.AsThrowable(err); ok {
			call.IsNull = true
		}
		return datum.Datum{}, err
	}

	if f.ComplexReturn() {
		// The return only says whether the writer was filled. It goes
		// through the return descriptor because method resolution may
		// have fallen back to the boxed Boolean signature.
		filled, filledNull, err := f.Return().CoerceValue(cx, ret)
		if err != nil {
			return datum.Datum{}, err
		}
		if filledNull || !filled.Bool() {
			call.IsNull = true
			return datum.Datum{}, nil
		}
		d, isNull, err := params[len(params)-1].CoerceValue(cx, jvm.Ref(writer))
		if err != nil {
			return datum.Datum{}, err
		}
		call.IsNull = isNull
		return d, nil
	}

	d, isNull, err := f.Return().CoerceValue(cx, ret)
	if err != nil {
		return datum.Datum{}, err
	}
	call.IsNull = isNull
	return d, nil
}

// InvokeTrigger executes a trigger call: one synthetic trigger-context
// argument, void return, and post-call extraction of the possibly
// modified row into the upper region. A foreign exception yields a null
// outcome without extracting a row.
func (iv *Invoker) InvokeTrigger(ctx context.Context, inv *mem.Invocation, f *binder.Function, ev *TriggerEvent) (datum.Datum, bool, error) {
	defer inv.ReleaseScratch()
	if !f.IsTrigger() {
		return datum.Datum{}, true, fmt.Errorf("invoke: function %d is not bound for trigger calls", f.Oid())
	}
	if iv.triggers == nil {
		return datum.Datum{}, true, fmt.Errorf("invoke: no trigger bridge configured")
	}
	cx := &types.Context{Inv: inv, Rows: iv.rows, Sets: iv.sets}

	td, err := iv.triggers.NewTriggerData(ev)
	if err != nil {
		return datum.Datum{}, true, err
	}
	arg, err := f.Params()[0].CoerceDatum(cx, datum.FromRow(td))
	if err != nil {
		return datum.Datum{}, true, err
	}

	if _, err := iv.callStatic(ctx, inv, f, []jvm.Value{arg}); err != nil {
		return datum.Datum{}, true, err
	}
	return iv.triggers.ExtractRow(td, inv.Upper())
}

// callStatic crosses into the runtime with foreign-depth tracking. An
// abort already in progress is handed upward untouched.
func (iv *Invoker) callStatic(ctx context.Context, inv *mem.Invocation, f *binder.Function, args []jvm.Value) (jvm.Value, error) {
	leave := inv.EnterForeign()
	defer leave()
	ret, err := iv.rt.CallStatic(ctx, f.Class(), f.Method(), args)
	if err != nil {
		if jvm.IsAbort(err) {
			return jvm.Value{}, err
		}
		if _, ok := jvm.AsThrowable(err); ok {
			return jvm.Value{}, err
		}
		return jvm.Value{}, fmt.Errorf("invoke: function %d: %w", f.Oid(), err)
	}
	return ret, nil
}
