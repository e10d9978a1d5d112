package weft

import (
	"context"
	"strings"

	"github.com/weftlabs/weft/pkg/weft/registry"
	"github.com/weftlabs/weft/pkg/weft/types"
)

// Shared fixtures. Every test entity registers into a throwaway registry
// so tests never touch the process-wide one.

// testCtx creates a plain context with no active scope.
func testCtx() *Context {
	return NewContext(context.Background())
}

// testRegistry creates an isolated entity registry.
func testRegistry() *registry.Registry[Entity] {
	return registry.New[Entity]()
}

// newDoubleTask defines a task that doubles an integer.
func newDoubleTask(r *registry.Registry[Entity]) *Task {
	return NewTask("double",
		NewInterface().
			In("n", types.Int()).
			Out("out", types.Int()),
		func(ctx *Context, in map[string]any) (map[string]any, error) {
			return map[string]any{"out": in["n"].(int64) * 2}, nil
		},
		WithRegistry(r))
}

// newAddTask defines a task that adds two integers.
func newAddTask(r *registry.Registry[Entity]) *Task {
	return NewTask("add",
		NewInterface().
			In("a", types.Int()).
			In("b", types.Int()).
			Out("sum", types.Int()),
		func(ctx *Context, in map[string]any) (map[string]any, error) {
			return map[string]any{"sum": in["a"].(int64) + in["b"].(int64)}, nil
		},
		WithRegistry(r))
}

// newSplitTask defines a task with two outputs.
func newSplitTask(r *registry.Registry[Entity]) *Task {
	return NewTask("split",
		NewInterface().
			In("s", types.String()).
			Out("head", types.String()).
			Out("tail", types.String()),
		func(ctx *Context, in map[string]any) (map[string]any, error) {
			s := in["s"].(string)
			head, tail, _ := strings.Cut(s, " ")
			return map[string]any{"head": head, "tail": tail}, nil
		},
		WithRegistry(r))
}

// newSinkTask defines a task with no outputs.
func newSinkTask(r *registry.Registry[Entity]) *Task {
	return NewTask("sink",
		NewInterface().
			In("n", types.Int()),
		func(ctx *Context, in map[string]any) (map[string]any, error) {
			return map[string]any{}, nil
		},
		WithRegistry(r))
}

// newLinearWorkflow defines a one-task workflow: result = double(n).
func newLinearWorkflow(r *registry.Registry[Entity]) (*Workflow, *Task) {
	double := newDoubleTask(r)
	wf := NewWorkflow("linear",
		NewInterface().
			In("n", types.Int()).
			Out("result", types.Int()),
		func(ctx *Context, in Inputs) (any, error) {
			return double.Call(ctx, Args{"n": in["n"]})
		},
		WithRegistry(r))
	return wf, double
}

// newChainWorkflow defines a two-task workflow: result = add(double(n), n).
func newChainWorkflow(r *registry.Registry[Entity]) *Workflow {
	double := newDoubleTask(r)
	add := newAddTask(r)
	return NewWorkflow("chain",
		NewInterface().
			In("n", types.Int()).
			Out("result", types.Int()),
		func(ctx *Context, in Inputs) (any, error) {
			doubled, err := double.Call(ctx, Args{"n": in["n"]})
			if err != nil {
				return nil, err
			}
			return add.Call(ctx, Args{"a": doubled, "b": in["n"]})
		},
		WithRegistry(r))
}
