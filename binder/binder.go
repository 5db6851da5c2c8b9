package binder

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Sednai/pljava/catalog"
	"github.com/Sednai/pljava/datum"
	"github.com/Sednai/pljava/jvm"
	"github.com/Sednai/pljava/types"
)

// SyntaxError reports a malformed routine declaration.
type SyntaxError struct {
	Source string
	Reason string
}

// Error implements error.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("binder: syntax error in declaration %q: %s", e.Source, e.Reason)
}

// MemberError reports that no static method matched the name and
// signature a declaration resolved to.
type MemberError struct {
	Class     string
	Method    string
	Signature string
	Err       error
}

// Error implements error.
func (e *MemberError) Error() string {
	return fmt.Sprintf("binder: unable to find static method %s.%s with signature %s",
		e.Class, e.Method, e.Signature)
}

// Unwrap exposes the runtime resolution failure.
func (e *MemberError) Unwrap() error { return e.Err }

// Binder resolves catalog routines into Functions.
type Binder struct {
	cat catalog.Catalog
	reg *types.Registry
	rt  jvm.Runtime
}

// New builds a binder over a catalog, a type registry and the managed
// runtime.
func New(cat catalog.Catalog, reg *types.Registry, rt jvm.Runtime) *Binder {
	return &Binder{cat: cat, reg: reg, rt: rt}
}

// Bind resolves the routine with the given oid into a callable Function.
// forTrigger binds the trigger calling convention regardless of the
// declared parameter types.
func (b *Binder) Bind(ctx context.Context, oid datum.Oid, forTrigger bool) (*Function, error) {
	routine, err := b.cat.Routine(oid)
	if err != nil {
		return nil, fmt.Errorf("binder: routine %d: %w", oid, err)
	}
	tg, err := parseTarget(routine.Source)
	if err != nil {
		return nil, err
	}

	f := &Function{oid: oid, class: tg.class, isTrigger: forTrigger}
	if forTrigger {
		if tg.hasDecl {
			return nil, &SyntaxError{Source: routine.Source, Reason: "triggers can not have a parameter declaration"}
		}
		f.params = []types.Type{b.reg.TriggerData()}
		f.ret, err = b.reg.Resolve("void")
		if err != nil {
			return nil, err
		}
	} else if err := b.planCall(routine, f); err != nil {
		return nil, err
	}

	if tg.hasDecl && !forTrigger {
		if err := b.applyDecl(routine.Source, tg.decl, f); err != nil {
			return nil, err
		}
	}

	cls, err := b.loadClass(ctx, routine.Namespace, tg.class)
	if err != nil {
		return nil, err
	}
	f.cls = cls
	if err := b.resolveMethod(cls, tg.method, f); err != nil {
		return nil, err
	}
	return f, nil
}

// planCall derives the default parameter and return descriptors from the
// catalog types.
func (b *Binder) planCall(routine *catalog.Routine, f *Function) error {
	f.params = make([]types.Type, 0, len(routine.ArgTypes)+1)
	for _, argOid := range routine.ArgTypes {
		t, err := b.reg.TypeForOid(argOid)
		if err != nil {
			return err
		}
		f.params = append(f.params, t)
	}

	if routine.ReturnsSet {
		f.returnsSet = true
		f.rowType = routine.ReturnType
		f.ret = b.reg.ProviderType(routine.ReturnType)
		return nil
	}

	if info, err := b.cat.Type(routine.ReturnType); err == nil && info.Composite {
		// Composite results are written through a trailing writer
		// parameter; the method itself returns whether a row was
		// produced.
		f.complexReturn = true
		f.rowType = routine.ReturnType
		f.params = append(f.params, b.reg.WriterType(routine.ReturnType))
		var rerr error
		f.ret, rerr = b.reg.Resolve("boolean")
		return rerr
	}

	var err error
	f.ret, err = b.reg.TypeForOid(routine.ReturnType)
	return err
}

// applyDecl reconciles an explicit parameter declaration against the
// catalog defaults. The declaration never names the synthetic writer
// parameter of a complex-returning routine.
func (b *Binder) applyDecl(source, decl string, f *Function) error {
	tokens, err := parseParamDecl(decl)
	if err != nil {
		return err
	}
	declared := f.params
	if f.complexReturn {
		declared = declared[:len(declared)-1]
	}
	if len(tokens) != len(declared) {
		return &SyntaxError{
			Source: source,
			Reason: fmt.Sprintf("declaration lists %d parameter types, routine has %d", len(tokens), len(declared)),
		}
	}
	for i, tok := range tokens {
		def := declared[i]
		if tok == def.JavaName() {
			continue
		}
		repl, err := b.reg.Resolve(tok)
		if err != nil {
			return &SyntaxError{Source: source, Reason: fmt.Sprintf("unknown type %s in declaration", tok)}
		}
		if !repl.CanReplace(def) {
			return &SyntaxError{
				Source: source,
				Reason: fmt.Sprintf("type %s cannot be used in place of %s", tok, def.JavaName()),
			}
		}
		declared[i] = repl
	}
	return nil
}

func (b *Binder) loadClass(ctx context.Context, nsOid datum.Oid, class string) (jvm.Class, error) {
	schema, err := b.cat.NamespaceName(nsOid)
	if err != nil {
		return nil, fmt.Errorf("binder: namespace %d: %w", nsOid, err)
	}
	loader, err := b.rt.SchemaLoader(ctx, schema)
	if err != nil {
		return nil, err
	}
	cls, err := b.rt.LoadClass(ctx, loader, classPath(class))
	if err != nil {
		if jvm.IsAbort(err) {
			return nil, err
		}
		return nil, fmt.Errorf("binder: class %s: %w", class, err)
	}
	return cls, nil
}

// resolveMethod finds the static target matching the planned signature.
// When the exact signature with a primitive return has no member, the
// boxed return signature is tried before giving up, and the return
// descriptor follows the match.
func (b *Binder) resolveMethod(cls jvm.Class, method string, f *Function) error {
	sig := buildSignature(f.params, f.ret)
	m, err := b.rt.StaticMethod(cls, method, sig)
	if err == nil {
		f.method, f.signature = m, sig
		return nil
	}
	if jvm.IsAbort(err) {
		return err
	}
	if errors.Is(err, jvm.ErrMethodNotFound) && f.ret.IsPrimitive() {
		if boxed := f.ret.ObjectType(); boxed != nil {
			boxedSig := buildSignature(f.params, boxed)
			if m, retryErr := b.rt.StaticMethod(cls, method, boxedSig); retryErr == nil {
				f.ret, f.method, f.signature = boxed, m, boxedSig
				return nil
			}
		}
	}
	return &MemberError{Class: f.class, Method: method, Signature: sig, Err: err}
}

// buildSignature assembles the method descriptor from the parameter and
// return descriptors.
func buildSignature(params []types.Type, ret types.Type) string {
	var sb strings.Builder
	sb.WriteByte('(')
	for _, p := range params {
		sb.WriteString(p.JNISignature())
	}
	sb.WriteByte(')')
	sb.WriteString(ret.JNISignature())
	return sb.String()
}
