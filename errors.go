package pljava

import (
	"errors"
	"fmt"

	"github.com/Sednai/pljava/binder"
	"github.com/Sednai/pljava/catalog"
	"github.com/Sednai/pljava/jvm"
)

var (
	// ErrRoutineNotFound is returned when the catalog has no routine for
	// the given oid.
	ErrRoutineNotFound = errors.New("routine not found")

	// ErrClosed is returned when the bridge is used after Close.
	ErrClosed = errors.New("bridge is closed")
)

// ErrInvalidDeclaration indicates a malformed routine declaration.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrInvalidDeclaration struct {
	Source string
	cause  error
}

func (e *ErrInvalidDeclaration) Error() string {
	return fmt.Sprintf("invalid routine declaration %q", e.Source)
}

func (e *ErrInvalidDeclaration) Unwrap() error { return e.cause }

// ErrBinding indicates that a declaration parsed but its managed target
// could not be resolved.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrBinding struct {
	Class     string
	Method    string
	Signature string
	cause     error
}

func (e *ErrBinding) Error() string {
	if e.Method == "" {
		return "unable to bind managed target"
	}
	return fmt.Sprintf("unable to bind %s.%s with signature %s", e.Class, e.Method, e.Signature)
}

func (e *ErrBinding) Unwrap() error { return e.cause }

func translateError(err error) error {
	if err == nil {
		return nil
	}

	// A pending abort continues untouched; wrapping it would turn a
	// native unwind into an ordinary call failure.
	if jvm.IsAbort(err) {
		return err
	}

	if errors.Is(err, catalog.ErrNotFound) {
		return fmt.Errorf("%w: %w", ErrRoutineNotFound, err)
	}

	var se *binder.SyntaxError
	if errors.As(err, &se) {
		return &ErrInvalidDeclaration{Source: se.Source, cause: err}
	}
	var me *binder.MemberError
	if errors.As(err, &me) {
		return &ErrBinding{Class: me.Class, Method: me.Method, Signature: me.Signature, cause: err}
	}
	if errors.Is(err, jvm.ErrClassNotFound) || errors.Is(err, jvm.ErrMethodNotFound) {
		return &ErrBinding{cause: err}
	}

	return err
}
