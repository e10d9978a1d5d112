package weft

import (
	"sort"

	"github.com/weftlabs/weft/pkg/weft/types"
)

// keywordArgs extracts the Args map from a variadic call. Calls are
// keyword-only: anything other than zero arguments or a single Args map
// is a positional-argument usage error.
func keywordArgs(entity string, args []any) (Args, error) {
	switch len(args) {
	case 0:
		return Args{}, nil
	case 1:
		if kwargs, ok := args[0].(Args); ok {
			return kwargs, nil
		}
	}
	return nil, &InputError{Entity: entity, Err: ErrPositionalArguments}
}

// validateArgs checks that the keyword-argument set exactly matches the
// declared input names: no missing, no extra.
func validateArgs(entity string, iface *Interface, args Args) error {
	var missing []string
	for _, v := range iface.Inputs() {
		if _, ok := args[v.Name]; !ok {
			missing = append(missing, v.Name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return &InputError{Entity: entity, Vars: missing, Err: ErrMissingInput}
	}

	var extra []string
	for name := range args {
		if _, ok := iface.Input(name); !ok {
			extra = append(extra, name)
		}
	}
	if len(extra) > 0 {
		sort.Strings(extra)
		return &InputError{Entity: entity, Vars: extra, Err: ErrTooManyInputs}
	}
	return nil
}

// promisesToNative converts the promises produced by a local execution
// back into native values for a top-level caller: nil for zero outputs,
// a bare value for one, an ordered Tuple otherwise.
func promisesToNative(entity string, iface *Interface, promises []*Promise) (any, error) {
	outputs := iface.Outputs()
	if len(outputs) == 0 {
		return nil, nil
	}

	natives := make(Tuple, len(promises))
	for i, p := range promises {
		lit, ok := p.Literal()
		if !ok {
			return nil, &OutputError{
				Workflow: entity,
				Declared: len(outputs),
				Received: len(promises),
				Err:      ErrPromiseNotReady,
			}
		}
		v, err := types.FromLiteral(lit, outputs[i].Type)
		if err != nil {
			return nil, err
		}
		natives[i] = v
	}

	if len(natives) == 1 {
		return natives[0], nil
	}
	return natives, nil
}
