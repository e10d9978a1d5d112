package weft

import (
	"fmt"

	"github.com/weftlabs/weft/pkg/weft/types"
)

// Binding records the source for one named variable: a node input or a
// workflow output.
type Binding struct {
	// Var is the target variable name.
	Var string `yaml:"var"`
	// Data is the bound payload.
	Data BindingData `yaml:"data"`
}

// BindingData is a binding payload. Exactly one of Literal, Reference, or
// Collection is set.
type BindingData struct {
	// Literal is a concrete wire value.
	Literal *types.Literal `yaml:"literal,omitempty"`
	// Reference points at another node's named output.
	Reference *NodeOutput `yaml:"reference,omitempty"`
	// Collection nests binding data for aggregate values whose elements
	// mix literals and references.
	Collection []BindingData `yaml:"collection,omitempty"`
}

// bindingFromValue converts one call argument (or workflow return value)
// into a Binding against the declared type. Promises bind as references or
// literals depending on their state; branch constructs must already be
// terminated with an Else arm; aggregates containing promises become
// nested collections; anything else converts through the wire literal
// codec.
func bindingFromValue(entity, varName string, declared types.Type, v any) (Binding, error) {
	data, err := bindingDataFromValue(entity, varName, declared, v)
	if err != nil {
		return Binding{}, err
	}
	return Binding{Var: varName, Data: data}, nil
}

func bindingDataFromValue(entity, varName string, declared types.Type, v any) (BindingData, error) {
	switch val := v.(type) {
	case *Promise:
		if ref, ok := val.Reference(); ok {
			return BindingData{Reference: &ref}, nil
		}
		lit, _ := val.Literal()
		return BindingData{Literal: &lit}, nil

	case *Branch:
		resolved, err := val.Resolve()
		if err != nil {
			return BindingData{}, &InputError{Entity: entity, Vars: []string{varName}, Err: err}
		}
		return bindingDataFromValue(entity, varName, declared, resolved)

	case Tuple:
		return collectionBindingData(entity, varName, declared, val)

	case []any:
		return collectionBindingData(entity, varName, declared, val)
	}

	lit, err := types.ToLiteral(v, declared)
	if err != nil {
		return BindingData{}, fmt.Errorf("%s: input %s: %w", entity, varName, err)
	}
	return BindingData{Literal: &lit}, nil
}

// collectionBindingData builds a nested collection when the aggregate
// contains deferred values; a plain aggregate of concrete values converts
// to a single collection literal instead.
func collectionBindingData(entity, varName string, declared types.Type, items []any) (BindingData, error) {
	if !containsDeferred(items) {
		lit, err := types.ToLiteral(items, declared)
		if err != nil {
			return BindingData{}, fmt.Errorf("%s: input %s: %w", entity, varName, err)
		}
		return BindingData{Literal: &lit}, nil
	}

	elemType := declared
	if et, ok := declared.Elem(); ok {
		elemType = et
	}

	nested := make([]BindingData, 0, len(items))
	for _, item := range items {
		data, err := bindingDataFromValue(entity, varName, elemType, item)
		if err != nil {
			return BindingData{}, err
		}
		nested = append(nested, data)
	}
	return BindingData{Collection: nested}, nil
}

func containsDeferred(items []any) bool {
	for _, item := range items {
		switch v := item.(type) {
		case *Promise:
			return true
		case *Branch:
			return true
		case Tuple:
			if containsDeferred(v) {
				return true
			}
		case []any:
			if containsDeferred(v) {
				return true
			}
		}
	}
	return false
}

// upstreamFromBindings derives the distinct upstream node set reachable
// through the bindings, in first-reference order. References to the
// global start node carry no live node and are excluded.
func upstreamFromBindings(bindings []Binding) []*Node {
	var upstream []*Node
	seen := make(map[*Node]bool)

	var walk func(data BindingData)
	walk = func(data BindingData) {
		if data.Reference != nil && data.Reference.node != nil && !seen[data.Reference.node] {
			seen[data.Reference.node] = true
			upstream = append(upstream, data.Reference.node)
		}
		for _, nested := range data.Collection {
			walk(nested)
		}
	}

	for _, b := range bindings {
		walk(b.Data)
	}
	return upstream
}
