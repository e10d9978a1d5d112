package weft

import (
	"sort"

	"github.com/weftlabs/weft/pkg/weft/types"
)

// TaskFunc is the body of a task. It receives native values for every
// declared input and must return a native value for every declared output.
type TaskFunc func(ctx *Context, in map[string]any) (map[string]any, error)

// Task is a remote-executable unit of work. Inside a traced workflow a
// task call links a node; outside a trace it executes its body locally.
//
// Tasks are immutable after construction and register themselves into the
// entity registry at definition time.
type Task struct {
	name  string
	iface *Interface
	fn    TaskFunc
	meta  Metadata
}

// NewTask defines a task with an explicit typed interface.
//
// Panics if name is empty, iface is nil, or fn is nil: the definition
// itself is broken and nothing sensible can run.
func NewTask(name string, iface *Interface, fn TaskFunc, opts ...EntityOption) *Task {
	if name == "" {
		panic("weft: task name cannot be empty")
	}
	if iface == nil {
		panic("weft: task interface cannot be nil")
	}
	if fn == nil {
		panic("weft: task function cannot be nil")
	}

	cfg := defaultEntityConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	t := &Task{
		name:  name,
		iface: iface,
		fn:    fn,
		meta:  Metadata{Name: name, Timeout: cfg.timeout, Retries: cfg.retries},
	}
	cfg.registry.Append(t)
	return t
}

// Name returns the task name.
func (t *Task) Name() string { return t.name }

// Interface returns the declared typed interface.
func (t *Task) Interface() *Interface { return t.iface }

// Metadata returns the task's node metadata.
func (t *Task) Metadata() Metadata { return t.meta }

// Call invokes the task. Under an active trace it links a node and
// returns deferred promises; during a local workflow execution it runs
// the body and returns literal promises; at top level it runs the body
// and returns native values.
func (t *Task) Call(ctx *Context, args ...any) (any, error) {
	if ctx == nil {
		return nil, ErrNilContext
	}
	kwargs, err := keywordArgs(t.name, args)
	if err != nil {
		return nil, err
	}

	if ctx.InCompilation() {
		return createAndLinkNode(ctx, t, kwargs)
	}

	if ctx.InLocalExecution() {
		promises, err := t.localExecute(ctx, kwargs)
		if err != nil {
			return nil, err
		}
		return wrapOutputs(promises), nil
	}

	// Top-level call: only concrete native values may cross in.
	if err := rejectPromises(t.name, kwargs); err != nil {
		return nil, err
	}
	promises, err := t.localExecute(ctx.WithLocalExecution(), kwargs)
	if err != nil {
		return nil, err
	}
	return promisesToNative(t.name, t.iface, promises)
}

// localExecute runs the task body with native inputs and wraps every
// declared output as a literal promise, in interface order.
func (t *Task) localExecute(ctx *Context, args Args) ([]*Promise, error) {
	if err := validateArgs(t.name, t.iface, args); err != nil {
		return nil, err
	}

	natives := make(map[string]any, len(args))
	for _, variable := range t.iface.Inputs() {
		v := args[variable.Name]
		if b, ok := v.(*Branch); ok {
			resolved, err := b.Resolve()
			if err != nil {
				return nil, &InputError{Entity: t.name, Vars: []string{variable.Name}, Err: err}
			}
			v = resolved
		}

		// Every value is round-tripped through the wire codec so task
		// bodies always see normalized widths, promise or not.
		var lit types.Literal
		if p, ok := v.(*Promise); ok {
			var ready bool
			lit, ready = p.Literal()
			if !ready {
				return nil, &InputError{Entity: t.name, Vars: []string{variable.Name}, Err: ErrPromiseNotReady}
			}
		} else {
			var err error
			lit, err = types.ToLiteral(v, variable.Type)
			if err != nil {
				return nil, err
			}
		}
		native, err := types.FromLiteral(lit, variable.Type)
		if err != nil {
			return nil, err
		}
		natives[variable.Name] = native
	}

	out, err := t.fn(ctx, natives)
	if err != nil {
		return nil, err
	}

	outputs := t.iface.Outputs()
	if len(out) != len(outputs) {
		return nil, &OutputError{
			Workflow: t.name,
			Declared: len(outputs),
			Received: len(out),
			Err:      ErrOutputMismatch,
		}
	}

	promises := make([]*Promise, 0, len(outputs))
	for _, variable := range outputs {
		v, ok := out[variable.Name]
		if !ok {
			return nil, &OutputError{
				Workflow: t.name,
				Declared: len(outputs),
				Received: len(out),
				Err:      ErrOutputMismatch,
			}
		}
		lit, err := types.ToLiteral(v, variable.Type)
		if err != nil {
			return nil, err
		}
		promises = append(promises, NewLiteralPromise(variable.Name, lit))
	}
	return promises, nil
}

// rejectPromises enforces the top-level contract: a deferred value at the
// outermost call is always an author mistake, including one buried inside
// an aggregate argument.
func rejectPromises(entity string, args Args) error {
	var offending []string
	for name, v := range args {
		if containsPromise(v) {
			offending = append(offending, name)
		}
	}
	if len(offending) > 0 {
		sort.Strings(offending)
		return &InputError{Entity: entity, Vars: offending, Err: ErrPromiseArgument}
	}
	return nil
}

// containsPromise walks aggregates the way containsDeferred does, but only
// for promises: branches stay untouched so they resolve normally at the
// call boundary.
func containsPromise(v any) bool {
	switch val := v.(type) {
	case *Promise:
		return true
	case Tuple:
		for _, item := range val {
			if containsPromise(item) {
				return true
			}
		}
	case []any:
		for _, item := range val {
			if containsPromise(item) {
				return true
			}
		}
	}
	return false
}
