package weft

import (
	"fmt"

	"github.com/weftlabs/weft/pkg/weft/types"
)

// NodeOutput references one named output of a recorded node. For workflow
// global inputs the NodeID is StartNodeID and the node pointer is nil.
type NodeOutput struct {
	// NodeID identifies the producing node within the trace.
	NodeID string `yaml:"node_id"`
	// Var is the output variable name on that node.
	Var string `yaml:"var"`

	node *Node
}

// Node returns the live node behind the reference, or nil for a workflow
// global input.
func (o NodeOutput) Node() *Node {
	return o.node
}

// Promise is the deferred-value primitive: either a concrete wire literal
// or a reference to a specific node's named output, never both.
//
// Promises referencing a node are produced only while linking a call
// during a trace, one per declared output. Literal promises wrap concrete
// values so that every value crossing a node boundary has the same shape.
type Promise struct {
	varName string
	lit     *types.Literal
	ref     *NodeOutput
}

// NewLiteralPromise creates a resolved promise holding a concrete literal.
func NewLiteralPromise(varName string, lit types.Literal) *Promise {
	return &Promise{varName: varName, lit: &lit}
}

// NewReferencePromise creates a deferred promise referencing a node output.
func NewReferencePromise(varName string, ref NodeOutput) *Promise {
	return &Promise{varName: varName, ref: &ref}
}

// Var returns the variable name the promise is bound to.
func (p *Promise) Var() string {
	return p.varName
}

// IsReady reports whether the promise holds a concrete literal.
func (p *Promise) IsReady() bool {
	return p.lit != nil
}

// Literal returns the concrete literal, if the promise is resolved.
func (p *Promise) Literal() (types.Literal, bool) {
	if p.lit == nil {
		return types.Literal{}, false
	}
	return *p.lit, true
}

// Reference returns the node-output reference, if the promise is deferred.
func (p *Promise) Reference() (NodeOutput, bool) {
	if p.ref == nil {
		return NodeOutput{}, false
	}
	return *p.ref, true
}

// WithVar returns a copy of the promise bound to a different variable
// name. Used when a node output is re-bound as a workflow output.
func (p *Promise) WithVar(name string) *Promise {
	cp := *p
	cp.varName = name
	return &cp
}

// String renders the promise for debugging.
func (p *Promise) String() string {
	if p.ref != nil {
		return fmt.Sprintf("Promise(%s <- %s.%s)", p.varName, p.ref.NodeID, p.ref.Var)
	}
	return fmt.Sprintf("Promise(%s = %v)", p.varName, p.lit.Scalar)
}

// Tuple is the ordered aggregate a workflow body returns when its
// interface declares multiple outputs.
type Tuple []any

// Args carries the keyword arguments of a workflow or task call. Values
// are either promises or concrete native values.
type Args map[string]any

// Inputs is the promise set handed to a workflow function body: one
// promise per declared input.
type Inputs map[string]*Promise

// wrapOutputs wraps per-output promises into the calling convention a
// workflow body expects: nil for zero outputs, the bare promise for one,
// an ordered Tuple otherwise.
func wrapOutputs(promises []*Promise) any {
	switch len(promises) {
	case 0:
		return nil
	case 1:
		return promises[0]
	default:
		out := make(Tuple, len(promises))
		for i, p := range promises {
			out[i] = p
		}
		return out
	}
}
