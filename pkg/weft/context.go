package weft

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// Context carries the ambient state that decides how workflow and task
// calls behave: a compilation scope while a trace is running, or a
// local-execution marker while a workflow body runs with concrete values.
//
// Context is immutable. WithCompilation and WithLocalExecution return
// derived child contexts; the parent is never mutated, so scopes unwind
// unconditionally when the call that created them returns, including on
// error. This keeps dispatch a pure function of the context rather than
// of process-global state.
type Context struct {
	context.Context

	logger *slog.Logger
	runID  string
	comp   *CompilationState
	local  bool
}

// CompilationState accumulates the ordered list of nodes created while a
// workflow function body executes under a trace. It is scoped to exactly
// one Compile invocation.
type CompilationState struct {
	nodes []*Node
}

// Nodes returns the recorded nodes in trace order.
func (s *CompilationState) Nodes() []*Node {
	out := make([]*Node, len(s.nodes))
	copy(out, s.nodes)
	return out
}

// Len returns the number of recorded nodes.
func (s *CompilationState) Len() int {
	return len(s.nodes)
}

// add appends a node. Tracing is single-threaded within one compile, so
// no locking is needed.
func (s *CompilationState) add(n *Node) {
	s.nodes = append(s.nodes, n)
}

// ContextOption configures a Context.
type ContextOption func(*Context)

// WithLogger sets the logger for the context.
func WithLogger(logger *slog.Logger) ContextOption {
	return func(c *Context) {
		c.logger = logger
	}
}

// WithRunID sets the run identifier for the context.
// If not set, a UUID is auto-generated.
func WithRunID(id string) ContextOption {
	return func(c *Context) {
		c.runID = id
	}
}

// NewContext creates a compiler context from a standard context.
//
// Example:
//
//	ctx := weft.NewContext(context.Background(),
//	    weft.WithLogger(myLogger))
func NewContext(ctx context.Context, opts ...ContextOption) *Context {
	c := &Context{
		Context: ctx,
		logger:  slog.Default(),
		runID:   uuid.New().String(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Logger returns the configured logger. Never nil.
func (c *Context) Logger() *slog.Logger {
	return c.logger
}

// RunID returns the run identifier.
func (c *Context) RunID() string {
	return c.runID
}

// Compilation returns the active compilation scope, or nil when no trace
// is running.
func (c *Context) Compilation() *CompilationState {
	return c.comp
}

// InCompilation reports whether a compilation scope is active.
func (c *Context) InCompilation() bool {
	return c.comp != nil
}

// InLocalExecution reports whether a local-execution marker is active.
func (c *Context) InLocalExecution() bool {
	return c.local
}

// WithCompilation returns a child context with a fresh compilation scope.
// Any local-execution marker is cleared: under an active trace, calls link
// nodes rather than execute.
func (c *Context) WithCompilation() *Context {
	child := *c
	child.comp = &CompilationState{}
	child.local = false
	return &child
}

// WithLocalExecution returns a child context with the local-execution
// marker set.
func (c *Context) WithLocalExecution() *Context {
	child := *c
	child.comp = nil
	child.local = true
	return &child
}

// detach returns a child context with no compilation scope and no
// local-execution marker, used when a sub-workflow needs its own
// independent compile during an enclosing trace.
func (c *Context) detach() *Context {
	child := *c
	child.comp = nil
	child.local = false
	return &child
}
