package weft

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weftlabs/weft/pkg/weft/types"
)

// TestPromise_LiteralState tests a resolved promise.
func TestPromise_LiteralState(t *testing.T) {
	lit, err := types.ToLiteral(42, types.Int())
	require.NoError(t, err)

	p := NewLiteralPromise("n", lit)
	assert.Equal(t, "n", p.Var())
	assert.True(t, p.IsReady())

	got, ok := p.Literal()
	require.True(t, ok)
	assert.Equal(t, int64(42), got.Scalar)

	_, ok = p.Reference()
	assert.False(t, ok)
}

// TestPromise_ReferenceState tests a deferred promise.
func TestPromise_ReferenceState(t *testing.T) {
	p := NewReferencePromise("out", NodeOutput{NodeID: "node-3", Var: "out"})
	assert.False(t, p.IsReady())

	ref, ok := p.Reference()
	require.True(t, ok)
	assert.Equal(t, "node-3", ref.NodeID)
	assert.Equal(t, "out", ref.Var)

	_, ok = p.Literal()
	assert.False(t, ok)
}

// TestPromise_WithVar tests renaming leaves the original untouched.
func TestPromise_WithVar(t *testing.T) {
	p := NewReferencePromise("out", NodeOutput{NodeID: "node-0", Var: "out"})
	renamed := p.WithVar("result")

	assert.Equal(t, "result", renamed.Var())
	assert.Equal(t, "out", p.Var())

	ref, ok := renamed.Reference()
	require.True(t, ok)
	assert.Equal(t, "out", ref.Var)
}

// TestWrapOutputs tests the nil / bare / tuple convention.
func TestWrapOutputs(t *testing.T) {
	assert.Nil(t, wrapOutputs(nil))

	one := NewReferencePromise("a", NodeOutput{NodeID: "node-0", Var: "a"})
	assert.Same(t, one, wrapOutputs([]*Promise{one}))

	two := NewReferencePromise("b", NodeOutput{NodeID: "node-0", Var: "b"})
	out := wrapOutputs([]*Promise{one, two})
	tup, ok := out.(Tuple)
	require.True(t, ok)
	require.Len(t, tup, 2)
	assert.Same(t, one, tup[0])
	assert.Same(t, two, tup[1])
}
