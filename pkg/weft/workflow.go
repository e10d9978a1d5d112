package weft

import (
	"sync"
	"time"

	"github.com/weftlabs/weft/pkg/weft/observability"
	"github.com/weftlabs/weft/pkg/weft/types"
)

// WorkflowFunc is the body of a workflow. It receives one promise per
// declared input and returns its outputs: nil for zero declared outputs,
// a single value for one, an ordered Tuple for several. Values may be
// promises produced by task calls, branch constructs terminated with
// Else, or concrete values.
type WorkflowFunc func(ctx *Context, in Inputs) (any, error)

// Workflow owns a workflow function and its declared interface, and
// dispatches every call to one of three mutually exclusive modes decided
// by the ambient context:
//
//   - Link: a trace is active; the call records a node and returns
//     deferred promises without running the body.
//   - Local-nested: a local execution is active; the body runs directly
//     with promise inputs.
//   - Local-root: a top-level call; arguments must be concrete native
//     values, the body runs under a fresh local-execution scope, and the
//     resulting promises convert back to native values.
//
// Compile is a distinct, explicit operation that traces the body once and
// freezes the observed call graph. A Workflow is either uncompiled (no
// nodes, no output bindings) or compiled (both frozen); the transition
// happens exactly once.
type Workflow struct {
	name  string
	iface *Interface
	fn    WorkflowFunc
	meta  Metadata

	mu             sync.Mutex
	compiled       bool
	nodes          []*Node
	outputBindings []Binding
	registerable   *RegisterableWorkflow
}

// NewWorkflow defines a workflow with an explicit typed interface.
//
// Panics if name is empty, iface is nil, or fn is nil.
func NewWorkflow(name string, iface *Interface, fn WorkflowFunc, opts ...EntityOption) *Workflow {
	if name == "" {
		panic("weft: workflow name cannot be empty")
	}
	if iface == nil {
		panic("weft: workflow interface cannot be nil")
	}
	if fn == nil {
		panic("weft: workflow function cannot be nil")
	}

	cfg := defaultEntityConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	w := &Workflow{
		name:  name,
		iface: iface,
		fn:    fn,
		meta:  Metadata{Name: name, Timeout: cfg.timeout, Retries: cfg.retries},
	}
	cfg.registry.Append(w)
	return w
}

// Name returns the workflow name.
func (w *Workflow) Name() string { return w.name }

// Interface returns the declared typed interface.
func (w *Workflow) Interface() *Interface { return w.iface }

// Metadata returns the workflow's node metadata.
func (w *Workflow) Metadata() Metadata { return w.meta }

// Compiled reports whether the workflow has been compiled.
func (w *Workflow) Compiled() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.compiled
}

// Nodes returns the frozen node list, or nil if the workflow is
// uncompiled.
func (w *Workflow) Nodes() []*Node {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.compiled {
		return nil
	}
	out := make([]*Node, len(w.nodes))
	copy(out, w.nodes)
	return out
}

// OutputBindings returns the frozen output bindings, or nil if the
// workflow is uncompiled.
func (w *Workflow) OutputBindings() []Binding {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.compiled {
		return nil
	}
	out := make([]Binding, len(w.outputBindings))
	copy(out, w.outputBindings)
	return out
}

// globalInputPromises binds every declared input to the global start
// node, the placeholder the orchestration engine fills at run time.
func (w *Workflow) globalInputPromises() Inputs {
	in := make(Inputs, w.iface.NumInputs())
	for _, v := range w.iface.Inputs() {
		in[v.Name] = NewReferencePromise(v.Name, NodeOutput{NodeID: StartNodeID, Var: v.Name})
	}
	return in
}

// Compile traces the workflow body once under a fresh compilation scope
// and freezes the observed graph: nodes in call order, output bindings
// resolved against the declared interface.
//
// Overrides supply concrete values for inputs during the trace instead of
// global-input placeholders; pass nil for the usual case. Compiling an
// already-compiled workflow is a no-op: the frozen graph is kept, and a
// fresh Workflow over the same function compiles to a structurally
// identical graph.
func (w *Workflow) Compile(ctx *Context, overrides Args) error {
	if ctx == nil {
		return ErrNilContext
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.compiled {
		return nil
	}

	logger := ctx.Logger()
	observability.LogCompileStart(logger, w.name)
	sctx, span := observability.StartCompileSpan(ctx, w.name)
	start := time.Now()

	nodes, bindings, err := w.trace(ctx, overrides)

	duration := time.Since(start)
	observability.EndSpanWithError(span, err)
	observability.NewMetricsRecorder().RecordCompile(sctx, w.name, len(nodes), duration, err)
	if err != nil {
		observability.LogCompileError(logger, w.name, err)
		return err
	}

	w.nodes = nodes
	w.outputBindings = bindings
	w.compiled = true
	observability.LogCompileComplete(logger, w.name, len(nodes), len(bindings), duration)
	return nil
}

// trace runs the body under a fresh compilation scope and resolves the
// output bindings. Nodes accumulated in a failed trace are discarded with
// the scope.
func (w *Workflow) trace(ctx *Context, overrides Args) ([]*Node, []Binding, error) {
	cctx := ctx.WithCompilation()

	inputs := w.globalInputPromises()
	for name, v := range overrides {
		variable, ok := w.iface.Input(name)
		if !ok {
			return nil, nil, &InputError{Entity: w.name, Vars: []string{name}, Err: ErrUnknownInput}
		}
		if p, isPromise := v.(*Promise); isPromise {
			inputs[name] = p.WithVar(name)
			continue
		}
		lit, err := types.ToLiteral(v, variable.Type)
		if err != nil {
			return nil, nil, err
		}
		inputs[name] = NewLiteralPromise(name, lit)
	}

	out, err := w.fn(cctx, inputs)
	if err != nil {
		return nil, nil, err
	}

	bindings, err := w.resolveOutputBindings(out)
	if err != nil {
		return nil, nil, err
	}
	return cctx.Compilation().Nodes(), bindings, nil
}

// resolveOutputBindings maps the traced return value onto the declared
// output interface. Output cardinality comes from the interface alone;
// any disagreement with the returned shape is an error, never a guess.
func (w *Workflow) resolveOutputBindings(out any) ([]Binding, error) {
	outputs := w.iface.Outputs()

	switch len(outputs) {
	case 0:
		if out != nil {
			return nil, &OutputError{Workflow: w.name, Declared: 0, Received: 1, Err: ErrOutputMismatch}
		}
		return nil, nil

	case 1:
		if tup, ok := out.(Tuple); ok {
			if len(tup) != 1 {
				return nil, &OutputError{Workflow: w.name, Declared: 1, Received: len(tup), Err: ErrOutputMismatch}
			}
			out = tup[0]
		}
		b, err := bindingFromValue(w.name, outputs[0].Name, outputs[0].Type, out)
		if err != nil {
			return nil, err
		}
		return []Binding{b}, nil

	default:
		tup, ok := out.(Tuple)
		if !ok {
			return nil, &OutputError{Workflow: w.name, Declared: len(outputs), Received: 1, Err: ErrOutputMismatch}
		}
		if len(tup) != len(outputs) {
			return nil, &OutputError{Workflow: w.name, Declared: len(outputs), Received: len(tup), Err: ErrOutputMismatch}
		}
		bindings := make([]Binding, 0, len(outputs))
		for i, variable := range outputs {
			b, err := bindingFromValue(w.name, variable.Name, variable.Type, tup[i])
			if err != nil {
				return nil, err
			}
			bindings = append(bindings, b)
		}
		return bindings, nil
	}
}

// Call invokes the workflow, dispatching on the ambient context. See the
// Workflow type documentation for the three modes.
func (w *Workflow) Call(ctx *Context, args ...any) (any, error) {
	if ctx == nil {
		return nil, ErrNilContext
	}
	kwargs, err := keywordArgs(w.name, args)
	if err != nil {
		return nil, err
	}

	// Link: a sub-workflow call inside an enclosing trace. The body is
	// not re-traced here; if this workflow has never produced its own
	// frozen graph, that happens first, independently of the enclosing
	// scope.
	if ctx.InCompilation() {
		if !w.Compiled() {
			if err := w.Compile(ctx.detach(), nil); err != nil {
				return nil, err
			}
		}
		return createAndLinkNode(ctx, w, kwargs)
	}

	// Local-nested: continue the caller's execution directly.
	if ctx.InLocalExecution() {
		promises, err := w.localExecute(ctx, kwargs)
		if err != nil {
			return nil, err
		}
		return wrapOutputs(promises), nil
	}

	return w.localRoot(ctx, kwargs)
}

// localRoot handles a top-level call: concrete native arguments in,
// concrete native results out.
func (w *Workflow) localRoot(ctx *Context, kwargs Args) (any, error) {
	for name := range kwargs {
		if _, ok := w.iface.Input(name); !ok {
			return nil, &InputError{Entity: w.name, Vars: []string{name}, Err: ErrUnknownInput}
		}
	}
	if err := rejectPromises(w.name, kwargs); err != nil {
		return nil, err
	}

	logger := ctx.Logger()
	observability.LogLocalRunStart(logger, w.name, ctx.RunID())
	sctx, span := observability.StartLocalRunSpan(ctx, w.name, ctx.RunID())
	start := time.Now()

	promises, err := w.localExecute(ctx.WithLocalExecution(), kwargs)

	duration := time.Since(start)
	observability.EndSpanWithError(span, err)
	observability.NewMetricsRecorder().RecordLocalRun(sctx, w.name, duration, err)
	if err != nil {
		observability.LogLocalRunError(logger, w.name, ctx.RunID(), err)
		return nil, err
	}
	observability.LogLocalRunComplete(logger, w.name, ctx.RunID(), duration)

	return promisesToNative(w.name, w.iface, promises)
}

// localExecute runs the body with promise inputs, coercing any concrete
// argument to a literal promise first, and maps the returned values onto
// the declared outputs.
func (w *Workflow) localExecute(ctx *Context, args Args) ([]*Promise, error) {
	if err := validateArgs(w.name, w.iface, args); err != nil {
		return nil, err
	}

	inputs := make(Inputs, len(args))
	for _, variable := range w.iface.Inputs() {
		v := args[variable.Name]
		if b, ok := v.(*Branch); ok {
			resolved, err := b.Resolve()
			if err != nil {
				return nil, &InputError{Entity: w.name, Vars: []string{variable.Name}, Err: err}
			}
			v = resolved
		}
		if p, ok := v.(*Promise); ok {
			inputs[variable.Name] = p.WithVar(variable.Name)
			continue
		}
		lit, err := types.ToLiteral(v, variable.Type)
		if err != nil {
			return nil, err
		}
		inputs[variable.Name] = NewLiteralPromise(variable.Name, lit)
	}

	out, err := w.fn(ctx, inputs)
	if err != nil {
		return nil, err
	}
	return w.outputsToPromises(out)
}

// outputsToPromises recasts the body's return value into one promise per
// declared output, renaming task-output promises to the workflow's own
// output names and converting concrete values through the wire codec.
func (w *Workflow) outputsToPromises(out any) ([]*Promise, error) {
	outputs := w.iface.Outputs()

	switch len(outputs) {
	case 0:
		if out != nil {
			return nil, &OutputError{Workflow: w.name, Declared: 0, Received: 1, Err: ErrOutputMismatch}
		}
		return nil, nil

	case 1:
		if tup, ok := out.(Tuple); ok {
			if len(tup) != 1 {
				return nil, &OutputError{Workflow: w.name, Declared: 1, Received: len(tup), Err: ErrOutputMismatch}
			}
			out = tup[0]
		}
		p, err := w.outputPromise(outputs[0], out)
		if err != nil {
			return nil, err
		}
		return []*Promise{p}, nil

	default:
		tup, ok := out.(Tuple)
		if !ok {
			return nil, &OutputError{Workflow: w.name, Declared: len(outputs), Received: 1, Err: ErrOutputMismatch}
		}
		if len(tup) != len(outputs) {
			return nil, &OutputError{Workflow: w.name, Declared: len(outputs), Received: len(tup), Err: ErrOutputMismatch}
		}
		promises := make([]*Promise, 0, len(outputs))
		for i, variable := range outputs {
			p, err := w.outputPromise(variable, tup[i])
			if err != nil {
				return nil, err
			}
			promises = append(promises, p)
		}
		return promises, nil
	}
}

// outputPromise recasts one returned value as a promise named after the
// declared output variable.
func (w *Workflow) outputPromise(variable Variable, v any) (*Promise, error) {
	if b, ok := v.(*Branch); ok {
		resolved, err := b.Resolve()
		if err != nil {
			return nil, &OutputError{Workflow: w.name, Declared: w.iface.NumOutputs(), Received: w.iface.NumOutputs(), Err: err}
		}
		v = resolved
	}
	if p, ok := v.(*Promise); ok {
		return p.WithVar(variable.Name), nil
	}
	lit, err := types.ToLiteral(v, variable.Type)
	if err != nil {
		return nil, err
	}
	return NewLiteralPromise(variable.Name, lit), nil
}
