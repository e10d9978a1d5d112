package types

import "fmt"

// Kind enumerates the wire type kinds a workflow interface may declare.
type Kind int

const (
	// KindInvalid is the zero value and never a valid declared type.
	KindInvalid Kind = iota
	// KindInt is a 64-bit signed integer.
	KindInt
	// KindFloat is a 64-bit float.
	KindFloat
	// KindString is a UTF-8 string.
	KindString
	// KindBool is a boolean.
	KindBool
	// KindDuration is a time.Duration.
	KindDuration
	// KindBlob is an opaque byte slice.
	KindBlob
	// KindCollection is an ordered list of a single element type.
	KindCollection
	// KindMap is a string-keyed map of a single value type.
	KindMap
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindDuration:
		return "duration"
	case KindBlob:
		return "blob"
	case KindCollection:
		return "collection"
	case KindMap:
		return "map"
	default:
		return "invalid"
	}
}

// Type is a wire type descriptor. Scalar types are constructed with the
// kind functions (Int, String, ...); aggregate types wrap an element type
// via CollectionOf and MapOf.
//
// Type is a small value type and is compared with ==  for scalar kinds.
type Type struct {
	kind Kind
	elem *Type
}

// Int returns the integer type descriptor.
func Int() Type { return Type{kind: KindInt} }

// Float returns the float type descriptor.
func Float() Type { return Type{kind: KindFloat} }

// String returns the string type descriptor.
func String() Type { return Type{kind: KindString} }

// Bool returns the boolean type descriptor.
func Bool() Type { return Type{kind: KindBool} }

// Duration returns the duration type descriptor.
func Duration() Type { return Type{kind: KindDuration} }

// Blob returns the opaque byte-slice type descriptor.
func Blob() Type { return Type{kind: KindBlob} }

// CollectionOf returns a collection type with the given element type.
func CollectionOf(elem Type) Type {
	return Type{kind: KindCollection, elem: &elem}
}

// MapOf returns a string-keyed map type with the given value type.
func MapOf(value Type) Type {
	return Type{kind: KindMap, elem: &value}
}

// Kind returns the type's kind.
func (t Type) Kind() Kind { return t.kind }

// Elem returns the element type for collection and map kinds.
// The second return is false for scalar kinds.
func (t Type) Elem() (Type, bool) {
	if t.elem == nil {
		return Type{}, false
	}
	return *t.elem, true
}

// IsValid reports whether the descriptor was built by one of the
// constructors rather than being a zero value.
func (t Type) IsValid() bool { return t.kind != KindInvalid }

// Name returns the canonical textual form, e.g. "int" or "collection<string>".
func (t Type) Name() string {
	switch t.kind {
	case KindCollection:
		return fmt.Sprintf("collection<%s>", t.elem.Name())
	case KindMap:
		return fmt.Sprintf("map<%s>", t.elem.Name())
	default:
		return t.kind.String()
	}
}

// MarshalYAML serializes the type as its canonical textual form.
func (t Type) MarshalYAML() (any, error) {
	return t.Name(), nil
}
