package weft

import (
	"fmt"
	"sort"

	"github.com/weftlabs/weft/pkg/weft/types"
)

// Variable is one named, typed input or output of an interface.
type Variable struct {
	Name string     `yaml:"name"`
	Type types.Type `yaml:"type"`
}

// Interface is the declared typed interface of a workflow or task:
// ordered named inputs and ordered named outputs.
//
// Interfaces are built explicitly rather than introspected, so an
// undeclarable type fails at definition time, not deep inside a trace.
// Builder misuse (duplicate or empty names, invalid types) panics, since
// it is a programming error in the entity definition itself.
//
// Example:
//
//	iface := weft.NewInterface().
//	    In("n", types.Int()).
//	    Out("out", types.Int())
type Interface struct {
	inputs  []Variable
	outputs []Variable

	inputIndex  map[string]int
	outputIndex map[string]int
}

// NewInterface creates an empty interface descriptor.
func NewInterface() *Interface {
	return &Interface{
		inputIndex:  make(map[string]int),
		outputIndex: make(map[string]int),
	}
}

// In declares an input. Returns the interface for method chaining.
//
// Panics if the name is empty or duplicated, or the type is invalid.
func (i *Interface) In(name string, t types.Type) *Interface {
	i.validateVariable("input", i.inputIndex, name, t)
	i.inputIndex[name] = len(i.inputs)
	i.inputs = append(i.inputs, Variable{Name: name, Type: t})
	return i
}

// Out declares an output. Returns the interface for method chaining.
//
// Panics if the name is empty or duplicated, or the type is invalid.
func (i *Interface) Out(name string, t types.Type) *Interface {
	i.validateVariable("output", i.outputIndex, name, t)
	i.outputIndex[name] = len(i.outputs)
	i.outputs = append(i.outputs, Variable{Name: name, Type: t})
	return i
}

func (i *Interface) validateVariable(role string, index map[string]int, name string, t types.Type) {
	if name == "" {
		panic(fmt.Sprintf("weft: %s name cannot be empty", role))
	}
	if _, exists := index[name]; exists {
		panic(fmt.Sprintf("weft: duplicate %s name: %s", role, name))
	}
	if !t.IsValid() {
		panic(fmt.Sprintf("weft: %s %s has an invalid type", role, name))
	}
}

// Inputs returns the declared inputs in declaration order.
func (i *Interface) Inputs() []Variable {
	out := make([]Variable, len(i.inputs))
	copy(out, i.inputs)
	return out
}

// Outputs returns the declared outputs in declaration order.
func (i *Interface) Outputs() []Variable {
	out := make([]Variable, len(i.outputs))
	copy(out, i.outputs)
	return out
}

// Input returns the declared input with the given name.
func (i *Interface) Input(name string) (Variable, bool) {
	idx, ok := i.inputIndex[name]
	if !ok {
		return Variable{}, false
	}
	return i.inputs[idx], true
}

// Output returns the declared output with the given name.
func (i *Interface) Output(name string) (Variable, bool) {
	idx, ok := i.outputIndex[name]
	if !ok {
		return Variable{}, false
	}
	return i.outputs[idx], true
}

// NumInputs returns the declared input count.
func (i *Interface) NumInputs() int { return len(i.inputs) }

// NumOutputs returns the declared output count.
func (i *Interface) NumOutputs() int { return len(i.outputs) }

// sortedInputNames returns input names in lexicographic order. Input
// bindings are recorded in this order so graph serialization is stable
// regardless of keyword-argument order at the call site.
func (i *Interface) sortedInputNames() []string {
	names := make([]string, 0, len(i.inputs))
	for _, v := range i.inputs {
		names = append(names, v.Name)
	}
	sort.Strings(names)
	return names
}
