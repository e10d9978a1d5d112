package types

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors for literal conversion.
var (
	// ErrUnsupportedType indicates a declared type the converter cannot handle.
	ErrUnsupportedType = errors.New("unsupported declared type")

	// ErrValueMismatch indicates a native value that does not fit the declared type.
	ErrValueMismatch = errors.New("value does not match declared type")
)

// ConversionError carries context when a native value cannot cross the
// native/wire boundary.
type ConversionError struct {
	// Value is the offending native value.
	Value any
	// Declared is the declared wire type.
	Declared Type
	// Err is the underlying sentinel.
	Err error
}

// Error implements the error interface.
func (e *ConversionError) Error() string {
	return fmt.Sprintf("cannot convert %T to %s: %v", e.Value, e.Declared.Name(), e.Err)
}

// Unwrap returns the underlying sentinel for errors.Is support.
func (e *ConversionError) Unwrap() error {
	return e.Err
}

// Literal is a wire-format value. Exactly one representation is populated,
// selected by Kind: scalar kinds use Scalar, KindCollection uses Collection,
// KindMap uses Map.
//
// Literals are immutable once constructed. They are produced only by
// ToLiteral and consumed by FromLiteral.
type Literal struct {
	Kind       Kind               `yaml:"kind"`
	Scalar     any                `yaml:"scalar,omitempty"`
	Collection []Literal          `yaml:"collection,omitempty"`
	Map        map[string]Literal `yaml:"map,omitempty"`
}

// IsScalar reports whether the literal holds a scalar value.
func (l Literal) IsScalar() bool {
	switch l.Kind {
	case KindCollection, KindMap, KindInvalid:
		return false
	}
	return true
}

// literalYAML is Literal without its marshaller, for default field encoding.
type literalYAML Literal

// MarshalYAML emits duration scalars in their string form ("30s") instead
// of raw nanoseconds, matching how exported node timeouts are written.
func (l Literal) MarshalYAML() (any, error) {
	if d, ok := l.Scalar.(time.Duration); ok && l.Kind == KindDuration {
		cp := l
		cp.Scalar = d.String()
		return literalYAML(cp), nil
	}
	return literalYAML(l), nil
}
