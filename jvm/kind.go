// Package jvm models values and callable targets on the managed side of
// the bridge, and defines the Runtime interface through which the bridge
// reaches the embedded object runtime.
package jvm

// Kind identifies the slot type of a managed value, mirroring the
// runtime's primitive/reference duality.
type Kind uint8

const (
	// KindVoid marks the absence of a value.
	KindVoid Kind = iota
	// KindBoolean is the boolean primitive.
	KindBoolean
	// KindShort is the 16-bit integer primitive.
	KindShort
	// KindInt is the 32-bit integer primitive.
	KindInt
	// KindLong is the 64-bit integer primitive.
	KindLong
	// KindFloat is the 32-bit floating-point primitive.
	KindFloat
	// KindDouble is the 64-bit floating-point primitive.
	KindDouble
	// KindObject is any reference value, including boxes and arrays.
	KindObject
)

// Signature returns the kind's signature token. Object kinds have no
// fixed token; their signature comes from the concrete object type.
func (k Kind) Signature() string {
	switch k {
	case KindVoid:
		return "V"
	case KindBoolean:
		return "Z"
	case KindShort:
		return "S"
	case KindInt:
		return "I"
	case KindLong:
		return "J"
	case KindFloat:
		return "F"
	case KindDouble:
		return "D"
	default:
		return ""
	}
}

func (k Kind) String() string {
	switch k {
	case KindVoid:
		return "void"
	case KindBoolean:
		return "boolean"
	case KindShort:
		return "short"
	case KindInt:
		return "int"
	case KindLong:
		return "long"
	case KindFloat:
		return "float"
	case KindDouble:
		return "double"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}
