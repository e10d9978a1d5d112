package types

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// TestLiteral_DurationYAML verifies duration scalars serialize in their
// string form rather than raw nanoseconds.
func TestLiteral_DurationYAML(t *testing.T) {
	lit, err := ToLiteral(90*time.Second, Duration())
	require.NoError(t, err)

	data, err := yaml.Marshal(lit)
	require.NoError(t, err)
	assert.Contains(t, string(data), "scalar: 1m30s")

	// Durations nested in collections get the same treatment.
	col, err := ToLiteral([]any{time.Second}, CollectionOf(Duration()))
	require.NoError(t, err)
	data, err = yaml.Marshal(col)
	require.NoError(t, err)
	assert.Contains(t, string(data), "scalar: 1s")

	// Other scalar kinds are untouched.
	num, err := ToLiteral(int64(7), Int())
	require.NoError(t, err)
	data, err = yaml.Marshal(num)
	require.NoError(t, err)
	assert.Contains(t, string(data), "scalar: 7")
}

// TestType_Name verifies canonical textual forms.
func TestType_Name(t *testing.T) {
	testCases := []struct {
		typ  Type
		want string
	}{
		{Int(), "int"},
		{Float(), "float"},
		{String(), "string"},
		{Bool(), "bool"},
		{Duration(), "duration"},
		{Blob(), "blob"},
		{CollectionOf(Int()), "collection<int>"},
		{MapOf(String()), "map<string>"},
		{CollectionOf(CollectionOf(Bool())), "collection<collection<bool>>"},
	}

	for _, tc := range testCases {
		t.Run(tc.want, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.typ.Name())
		})
	}
}

// TestType_ZeroValueInvalid verifies the zero Type is not valid.
func TestType_ZeroValueInvalid(t *testing.T) {
	var zero Type
	assert.False(t, zero.IsValid())
	assert.True(t, Int().IsValid())
}

// TestType_Elem verifies element access for aggregates and scalars.
func TestType_Elem(t *testing.T) {
	elem, ok := CollectionOf(String()).Elem()
	require.True(t, ok)
	assert.Equal(t, KindString, elem.Kind())

	_, ok = Int().Elem()
	assert.False(t, ok)
}

// TestRoundTrip verifies that every supported kind survives
// native -> literal -> native conversion unchanged.
func TestRoundTrip(t *testing.T) {
	testCases := []struct {
		name string
		typ  Type
		in   any
		want any
	}{
		{"int", Int(), int64(42), int64(42)},
		{"int widened", Int(), 42, int64(42)},
		{"negative int", Int(), int32(-7), int64(-7)},
		{"float", Float(), 3.25, 3.25},
		{"float widened", Float(), float32(1.5), 1.5},
		{"string", String(), "hello", "hello"},
		{"empty string", String(), "", ""},
		{"bool true", Bool(), true, true},
		{"bool false", Bool(), false, false},
		{"duration", Duration(), 5 * time.Second, 5 * time.Second},
		{"blob", Blob(), []byte{1, 2, 3}, []byte{1, 2, 3}},
		{"collection", CollectionOf(Int()), []any{int64(1), int64(2)}, []any{int64(1), int64(2)}},
		{"typed slice", CollectionOf(Int()), []int{1, 2}, []any{int64(1), int64(2)}},
		{"map", MapOf(String()), map[string]any{"a": "x"}, map[string]any{"a": "x"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			lit, err := ToLiteral(tc.in, tc.typ)
			require.NoError(t, err)

			out, err := FromLiteral(lit, tc.typ)
			require.NoError(t, err)
			assert.Equal(t, tc.want, out)
		})
	}
}

// TestToLiteral_Mismatch verifies strict conversion failures.
func TestToLiteral_Mismatch(t *testing.T) {
	testCases := []struct {
		name string
		typ  Type
		in   any
	}{
		{"string for int", Int(), "5"},
		{"int for string", String(), 5},
		{"float for int", Int(), 5.0},
		{"int for bool", Bool(), 1},
		{"duration for int", Int(), time.Second},
		{"bad duration string", Duration(), "not-a-duration"},
		{"scalar for collection", CollectionOf(Int()), 5},
		{"mixed collection element", CollectionOf(Int()), []any{1, "two"}},
		{"scalar for map", MapOf(Int()), 5},
		{"invalid declared type", Type{}, 5},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ToLiteral(tc.in, tc.typ)
			require.Error(t, err)

			var convErr *ConversionError
			assert.ErrorAs(t, err, &convErr)
		})
	}
}

// TestFromLiteral_KindMismatch verifies that a literal read against the
// wrong declared type is rejected.
func TestFromLiteral_KindMismatch(t *testing.T) {
	lit, err := ToLiteral(int64(1), Int())
	require.NoError(t, err)

	_, err = FromLiteral(lit, String())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValueMismatch))
}

// TestToLiteral_BlobCopied verifies the literal does not alias caller memory.
func TestToLiteral_BlobCopied(t *testing.T) {
	src := []byte{1, 2, 3}
	lit, err := ToLiteral(src, Blob())
	require.NoError(t, err)

	src[0] = 9
	out, err := FromLiteral(lit, Blob())
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, out)
}
