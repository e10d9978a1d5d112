package weft

import "time"

// StartNodeID is the pseudo-node identifier carrying a workflow's global
// inputs. Bindings referencing it depend on the workflow's own inputs, not
// on any recorded node.
const StartNodeID = "start-node"

// Metadata carries display and scheduling hints for a recorded node.
type Metadata struct {
	// Name is the display name, defaulting to the entity name.
	Name string
	// Timeout bounds a single execution attempt. Zero means none.
	Timeout time.Duration
	// Retries is the retry count the orchestration engine should apply.
	Retries int
}

// Node is one recorded invocation (task or sub-workflow) within a traced
// graph. Nodes are created only while a compilation scope is active and
// are never mutated afterward.
type Node struct {
	// ID is unique within the owning trace, assigned in call order.
	ID string
	// Metadata is the display and scheduling metadata.
	Metadata Metadata
	// Bindings are the input bindings, sorted by variable name.
	Bindings []Binding
	// Upstream is the distinct set of nodes whose outputs this node
	// consumes. Always derived from Bindings, never hand-maintained.
	Upstream []*Node
	// Entity is the task or workflow this node represents.
	Entity Entity
}

// UpstreamIDs returns the IDs of the upstream nodes, in first-reference
// order.
func (n *Node) UpstreamIDs() []string {
	ids := make([]string, len(n.Upstream))
	for i, up := range n.Upstream {
		ids[i] = up.ID
	}
	return ids
}
