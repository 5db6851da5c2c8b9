package mem

// Invocation carries the region pair for one engine call and tracks
// nesting into the foreign runtime.
//
// Binding and invocation may nest when a managed routine triggers another
// bound call, so the zero point for "current" is per-invocation, not
// global.
type Invocation struct {
	upper   *Region
	current *Region

	foreignDepth int
	released     bool
}

// NewInvocation pairs an upper (caller-visible) region with the current
// (transient) region for one call. The invocation holds a claim on the
// transient region until ReleaseScratch.
func NewInvocation(upper, current *Region) *Invocation {
	if current != nil {
		current.borrows++
	}
	return &Invocation{upper: upper, current: current}
}

// Upper returns the region whose allocations outlive the call frame.
// Engine-visible results must be built here.
func (i *Invocation) Upper() *Region { return i.upper }

// Current returns the transient scratch region for this call.
func (i *Invocation) Current() *Region { return i.current }

// EnterForeign marks a crossing into the managed runtime and returns the
// matching leave function. The depth lets error handling distinguish a
// fault raised while foreign code was on the stack.
func (i *Invocation) EnterForeign() func() {
	i.foreignDepth++
	return func() { i.foreignDepth-- }
}

// InForeign reports whether the invocation is currently inside a
// foreign-runtime call.
func (i *Invocation) InForeign() bool { return i.foreignDepth > 0 }

// ReleaseScratch ends this invocation's claim on the transient region
// and resets it once no enclosing invocation still holds a claim.
// Callers run this on every exit path, including error paths; repeated
// calls are no-ops.
func (i *Invocation) ReleaseScratch() {
	if i.current == nil || i.released {
		return
	}
	i.released = true
	i.current.borrows--
	if i.current.borrows == 0 {
		i.current.Reset()
	}
}
