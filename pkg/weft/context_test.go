package weft

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewContext_Defaults tests the generated run ID and default logger.
func TestNewContext_Defaults(t *testing.T) {
	ctx := NewContext(context.Background())

	assert.NotEmpty(t, ctx.RunID())
	assert.NotNil(t, ctx.Logger())
	assert.False(t, ctx.InCompilation())
	assert.False(t, ctx.InLocalExecution())
	assert.Nil(t, ctx.Compilation())
}

// TestNewContext_Options tests logger and run ID injection.
func TestNewContext_Options(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)
	ctx := NewContext(context.Background(),
		WithLogger(logger),
		WithRunID("run-42"))

	assert.Same(t, logger, ctx.Logger())
	assert.Equal(t, "run-42", ctx.RunID())
}

// TestContext_ModeExclusivity tests that compilation and local-execution
// scopes displace each other.
func TestContext_ModeExclusivity(t *testing.T) {
	ctx := testCtx()

	cctx := ctx.WithCompilation()
	assert.True(t, cctx.InCompilation())
	assert.False(t, cctx.InLocalExecution())
	require.NotNil(t, cctx.Compilation())

	lctx := cctx.WithLocalExecution()
	assert.False(t, lctx.InCompilation())
	assert.True(t, lctx.InLocalExecution())
	assert.Nil(t, lctx.Compilation())

	back := lctx.WithCompilation()
	assert.True(t, back.InCompilation())
	assert.False(t, back.InLocalExecution())
}

// TestContext_ScopesDoNotMutateParent tests immutability under derivation.
func TestContext_ScopesDoNotMutateParent(t *testing.T) {
	ctx := testCtx()
	_ = ctx.WithCompilation()
	_ = ctx.WithLocalExecution()

	assert.False(t, ctx.InCompilation())
	assert.False(t, ctx.InLocalExecution())
}

// TestContext_FreshCompilationScopes tests that each derivation gets its
// own node accumulator.
func TestContext_FreshCompilationScopes(t *testing.T) {
	ctx := testCtx()

	c1 := ctx.WithCompilation()
	c1.Compilation().add(&Node{ID: "node-0"})

	c2 := ctx.WithCompilation()
	assert.Equal(t, 1, c1.Compilation().Len())
	assert.Equal(t, 0, c2.Compilation().Len())
}

// TestContext_Detach tests that detach clears both scopes but keeps
// identity fields.
func TestContext_Detach(t *testing.T) {
	ctx := NewContext(context.Background(), WithRunID("run-7"))
	cctx := ctx.WithCompilation()

	d := cctx.detach()
	assert.False(t, d.InCompilation())
	assert.False(t, d.InLocalExecution())
	assert.Equal(t, "run-7", d.RunID())
	assert.Same(t, ctx.Logger(), d.Logger())
}

// TestCompilationState_NodesIsolated tests the snapshot accessor.
func TestCompilationState_NodesIsolated(t *testing.T) {
	s := &CompilationState{}
	s.add(&Node{ID: "node-0"})

	nodes := s.Nodes()
	nodes[0] = nil

	again := s.Nodes()
	require.NotNil(t, again[0])
	assert.Equal(t, "node-0", again[0].ID)
}
