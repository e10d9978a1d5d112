package types

import (
	"fmt"
	"reflect"
	"time"
)

// ToLiteral converts a native value to a wire literal according to the
// declared type. Integer and float widths are normalized to int64 and
// float64; FromLiteral returns the normalized widths.
//
// Conversion is strict: a value that does not fit the declared type is a
// ConversionError, never a silent coercion.
func ToLiteral(v any, t Type) (Literal, error) {
	switch t.Kind() {
	case KindInt:
		n, ok := asInt64(v)
		if !ok {
			return Literal{}, &ConversionError{Value: v, Declared: t, Err: ErrValueMismatch}
		}
		return Literal{Kind: KindInt, Scalar: n}, nil

	case KindFloat:
		f, ok := asFloat64(v)
		if !ok {
			return Literal{}, &ConversionError{Value: v, Declared: t, Err: ErrValueMismatch}
		}
		return Literal{Kind: KindFloat, Scalar: f}, nil

	case KindString:
		s, ok := v.(string)
		if !ok {
			return Literal{}, &ConversionError{Value: v, Declared: t, Err: ErrValueMismatch}
		}
		return Literal{Kind: KindString, Scalar: s}, nil

	case KindBool:
		b, ok := v.(bool)
		if !ok {
			return Literal{}, &ConversionError{Value: v, Declared: t, Err: ErrValueMismatch}
		}
		return Literal{Kind: KindBool, Scalar: b}, nil

	case KindDuration:
		switch d := v.(type) {
		case time.Duration:
			return Literal{Kind: KindDuration, Scalar: d}, nil
		case string:
			parsed, err := time.ParseDuration(d)
			if err != nil {
				return Literal{}, &ConversionError{Value: v, Declared: t, Err: ErrValueMismatch}
			}
			return Literal{Kind: KindDuration, Scalar: parsed}, nil
		}
		return Literal{}, &ConversionError{Value: v, Declared: t, Err: ErrValueMismatch}

	case KindBlob:
		b, ok := v.([]byte)
		if !ok {
			return Literal{}, &ConversionError{Value: v, Declared: t, Err: ErrValueMismatch}
		}
		cp := make([]byte, len(b))
		copy(cp, b)
		return Literal{Kind: KindBlob, Scalar: cp}, nil

	case KindCollection:
		elem, _ := t.Elem()
		items, ok := asSlice(v)
		if !ok {
			return Literal{}, &ConversionError{Value: v, Declared: t, Err: ErrValueMismatch}
		}
		lits := make([]Literal, 0, len(items))
		for _, item := range items {
			lit, err := ToLiteral(item, elem)
			if err != nil {
				return Literal{}, err
			}
			lits = append(lits, lit)
		}
		return Literal{Kind: KindCollection, Collection: lits}, nil

	case KindMap:
		elem, _ := t.Elem()
		entries, ok := asStringMap(v)
		if !ok {
			return Literal{}, &ConversionError{Value: v, Declared: t, Err: ErrValueMismatch}
		}
		lits := make(map[string]Literal, len(entries))
		for k, item := range entries {
			lit, err := ToLiteral(item, elem)
			if err != nil {
				return Literal{}, err
			}
			lits[k] = lit
		}
		return Literal{Kind: KindMap, Map: lits}, nil
	}

	return Literal{}, &ConversionError{Value: v, Declared: t, Err: ErrUnsupportedType}
}

// FromLiteral converts a wire literal back to a native value according to
// the declared type. Scalars come back as int64, float64, string, bool,
// time.Duration, or []byte; collections as []any; maps as map[string]any.
func FromLiteral(l Literal, t Type) (any, error) {
	if l.Kind != t.Kind() {
		return nil, &ConversionError{Value: l.Scalar, Declared: t, Err: ErrValueMismatch}
	}

	switch t.Kind() {
	case KindInt, KindFloat, KindString, KindBool, KindDuration, KindBlob:
		return l.Scalar, nil

	case KindCollection:
		elem, _ := t.Elem()
		out := make([]any, 0, len(l.Collection))
		for _, item := range l.Collection {
			v, err := FromLiteral(item, elem)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil

	case KindMap:
		elem, _ := t.Elem()
		out := make(map[string]any, len(l.Map))
		for k, item := range l.Map {
			v, err := FromLiteral(item, elem)
			if err != nil {
				return nil, err
			}
			out[k] = v
		}
		return out, nil
	}

	return nil, &ConversionError{Value: l.Scalar, Declared: t, Err: ErrUnsupportedType}
}

// asInt64 widens any signed integer to int64.
// Durations are excluded; they have their own kind.
func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case time.Duration:
		return 0, false
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	}
	return 0, false
}

// asFloat64 widens floats to float64.
func asFloat64(v any) (float64, bool) {
	switch f := v.(type) {
	case float32:
		return float64(f), true
	case float64:
		return f, true
	}
	return 0, false
}

// asSlice flattens any slice (except []byte, which is a blob) to []any.
func asSlice(v any) ([]any, bool) {
	if items, ok := v.([]any); ok {
		return items, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice || rv.Type().Elem().Kind() == reflect.Uint8 {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// asStringMap flattens any string-keyed map to map[string]any.
func asStringMap(v any) (map[string]any, bool) {
	if m, ok := v.(map[string]any); ok {
		return m, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	out := make(map[string]any, rv.Len())
	for _, k := range rv.MapKeys() {
		out[fmt.Sprint(k.Interface())] = rv.MapIndex(k).Interface()
	}
	return out, true
}
