package weft

import (
	"fmt"

	"github.com/weftlabs/weft/pkg/weft/observability"
)

// createAndLinkNode records one call observed during a trace: it validates
// the keyword-argument set against the callee's interface, builds input
// bindings in lexicographic variable order, derives the upstream node set
// from those bindings, appends the node to the active compilation scope,
// and returns one deferred promise per declared output.
func createAndLinkNode(ctx *Context, e Entity, args Args) (any, error) {
	comp := ctx.Compilation()
	iface := e.Interface()

	if err := validateArgs(e.Name(), iface, args); err != nil {
		return nil, err
	}

	bindings := make([]Binding, 0, iface.NumInputs())
	for _, name := range iface.sortedInputNames() {
		variable, _ := iface.Input(name)
		b, err := bindingFromValue(e.Name(), name, variable.Type, args[name])
		if err != nil {
			return nil, err
		}
		bindings = append(bindings, b)
	}

	upstream := upstreamFromBindings(bindings)

	node := &Node{
		ID:       fmt.Sprintf("node-%d", comp.Len()),
		Metadata: e.Metadata(),
		Bindings: bindings,
		Upstream: upstream,
		Entity:   e,
	}
	comp.add(node)

	observability.LogNodeLinked(ctx.Logger(), node.ID, e.Name(), len(upstream))

	outputs := iface.Outputs()
	promises := make([]*Promise, 0, len(outputs))
	for _, v := range outputs {
		promises = append(promises, NewReferencePromise(v.Name, NodeOutput{
			NodeID: node.ID,
			Var:    v.Name,
			node:   node,
		}))
	}
	return wrapOutputs(promises), nil
}
