package jvm

import (
	"errors"
	"fmt"
)

// ErrMethodNotFound is reported by Runtime.StaticMethod when no member
// matches the requested name and signature.
var ErrMethodNotFound = errors.New("jvm: method not found")

// ErrClassNotFound is reported by Runtime.LoadClass when the class cannot
// be resolved in the given loading context.
var ErrClassNotFound = errors.New("jvm: class not found")

// ErrAbort marks a fatal native unwind already in progress. It is never
// an ordinary failure: every layer must hand it upward unwrapped so the
// unwind continues instead of being reported as a bind or call error.
var ErrAbort = errors.New("jvm: abort in progress")

// IsAbort reports whether err continues a pending native unwind.
func IsAbort(err error) bool { return errors.Is(err, ErrAbort) }

// Throwable describes a foreign exception raised during a cross-runtime
// call. Ordinary invocations turn it into a null result; trigger
// invocations suppress row extraction.
type Throwable struct {
	ClassName string
	Message   string
}

// Error implements error.
func (t *Throwable) Error() string {
	if t.Message == "" {
		return fmt.Sprintf("foreign exception %s", t.ClassName)
	}
	return fmt.Sprintf("foreign exception %s: %s", t.ClassName, t.Message)
}

// AsThrowable extracts a foreign exception from an error chain.
func AsThrowable(err error) (*Throwable, bool) {
	var t *Throwable
	ok := errors.As(err, &t)
	return t, ok
}
