package weft

import (
	"fmt"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/weftlabs/weft/pkg/weft/config"
)

// Identifier locates a registered workflow within a control plane.
type Identifier struct {
	Project string `yaml:"project" json:"project"`
	Domain  string `yaml:"domain" json:"domain"`
	Name    string `yaml:"name" json:"name"`
	Version string `yaml:"version" json:"version"`
}

// String renders the identifier as project:domain:name:version.
func (id Identifier) String() string {
	return fmt.Sprintf("%s:%s:%s:%s", id.Project, id.Domain, id.Name, id.Version)
}

// NodeSpec is the serialized form of one compiled node. References to
// other entities are by name only; the registration consumer resolves
// them against its own catalog.
type NodeSpec struct {
	ID       string    `yaml:"id"`
	Name     string    `yaml:"name"`
	Entity   string    `yaml:"entity"`
	Kind     string    `yaml:"kind"`
	Timeout  string    `yaml:"timeout,omitempty"`
	Retries  int       `yaml:"retries,omitempty"`
	Upstream []string  `yaml:"upstream,omitempty"`
	Inputs   []Binding `yaml:"inputs,omitempty"`
}

// InterfaceSpec is the serialized form of a typed interface.
type InterfaceSpec struct {
	Inputs  []Variable `yaml:"inputs,omitempty"`
	Outputs []Variable `yaml:"outputs,omitempty"`
}

// RegisterableWorkflow is the admin-facing registration form of a
// compiled workflow: a stable identifier plus the frozen graph, ready to
// serialize and ship to a control plane.
type RegisterableWorkflow struct {
	ID        Identifier    `yaml:"id"`
	Interface InterfaceSpec `yaml:"interface"`
	Nodes     []NodeSpec    `yaml:"nodes"`
	Outputs   []Binding     `yaml:"outputs,omitempty"`
}

// ToYAML serializes the registration form.
func (r *RegisterableWorkflow) ToYAML() ([]byte, error) {
	return yaml.Marshal(r)
}

// Registerable converts the compiled workflow into its registration form
// under the given project settings. Nodes whose entities declare no
// timeout or retries take the settings defaults. The result is built once
// and cached;
// later calls return the same form regardless of the settings passed, so
// a workflow registers under exactly one identity per process.
//
// Returns ErrNotCompiled if Compile has not run.
func (w *Workflow) Registerable(settings config.Settings) (*RegisterableWorkflow, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.compiled {
		return nil, fmt.Errorf("workflow %s: %w", w.name, ErrNotCompiled)
	}
	if w.registerable != nil {
		return w.registerable, nil
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	version := settings.Version
	if version == "" {
		version = uuid.NewString()
	}

	nodes := make([]NodeSpec, 0, len(w.nodes))
	for _, n := range w.nodes {
		// Entity metadata wins; settings defaults fill the gaps.
		timeout := n.Metadata.Timeout
		if timeout == 0 {
			timeout = settings.Defaults.Timeout
		}
		retries := n.Metadata.Retries
		if retries == 0 {
			retries = settings.Defaults.Retries
		}

		spec := NodeSpec{
			ID:       n.ID,
			Name:     n.Metadata.Name,
			Entity:   n.Entity.Name(),
			Kind:     entityKind(n.Entity),
			Retries:  retries,
			Upstream: n.UpstreamIDs(),
			Inputs:   n.Bindings,
		}
		if timeout > 0 {
			spec.Timeout = timeout.String()
		}
		nodes = append(nodes, spec)
	}

	w.registerable = &RegisterableWorkflow{
		ID: Identifier{
			Project: settings.Project,
			Domain:  settings.Domain,
			Name:    w.name,
			Version: version,
		},
		Interface: InterfaceSpec{
			Inputs:  w.iface.Inputs(),
			Outputs: w.iface.Outputs(),
		},
		Nodes:   nodes,
		Outputs: w.outputBindings,
	}
	return w.registerable, nil
}

func entityKind(e Entity) string {
	switch e.(type) {
	case *Task:
		return "task"
	case *Workflow:
		return "workflow"
	default:
		return "entity"
	}
}
