package jvm

// Object is a managed reference value. Every object knows its signature
// token, which is what signature-based method matching keys on.
type Object interface {
	Signature() string
}

// String is a managed string.
type String string

// Signature implements Object.
func (String) Signature() string { return "Ljava/lang/String;" }

// Boxed wraps a primitive value in its object counterpart
// (java.lang.Integer and friends).
type Boxed struct {
	Val Value
}

// Signature implements Object.
func (b *Boxed) Signature() string { return BoxedSignature(b.Val.Kind()) }

// BoxedSignature returns the signature token of the box class wrapping
// the given primitive kind.
func BoxedSignature(k Kind) string {
	switch k {
	case KindBoolean:
		return "Ljava/lang/Boolean;"
	case KindShort:
		return "Ljava/lang/Short;"
	case KindInt:
		return "Ljava/lang/Integer;"
	case KindLong:
		return "Ljava/lang/Long;"
	case KindFloat:
		return "Ljava/lang/Float;"
	case KindDouble:
		return "Ljava/lang/Double;"
	default:
		return "Ljava/lang/Object;"
	}
}

// BooleanArray is a managed boolean[].
type BooleanArray struct {
	Elems []bool
}

// Signature implements Object.
func (*BooleanArray) Signature() string { return "[Z" }

// ShortArray is a managed short[].
type ShortArray struct {
	Elems []int16
}

// Signature implements Object.
func (*ShortArray) Signature() string { return "[S" }

// IntArray is a managed int[].
type IntArray struct {
	Elems []int32
}

// Signature implements Object.
func (*IntArray) Signature() string { return "[I" }

// LongArray is a managed long[].
type LongArray struct {
	Elems []int64
}

// Signature implements Object.
func (*LongArray) Signature() string { return "[J" }

// FloatArray is a managed float[].
type FloatArray struct {
	Elems []float32
}

// Signature implements Object.
func (*FloatArray) Signature() string { return "[F" }

// DoubleArray is a managed double[].
type DoubleArray struct {
	Elems []float64
}

// Signature implements Object.
func (*DoubleArray) Signature() string { return "[D" }

// ObjectArray is a managed array of references. ElemSig is the signature
// token of the element type; a nil element is a managed null.
type ObjectArray struct {
	ElemSig string
	Elems   []Object
}

// Signature implements Object.
func (a *ObjectArray) Signature() string { return "[" + a.ElemSig }
