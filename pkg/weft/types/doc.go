// Package types defines the wire type system used by compiled workflow
// graphs and the bidirectional converter between native Go values and
// wire-format literals.
//
// Every workflow and task interface declares its inputs and outputs with
// Type descriptors. Whenever a concrete value crosses a node boundary it is
// converted to a Literal keyed by the declared type, and converted back when
// a local execution returns to native code.
//
// Conversion is strict and lossless for every supported kind:
//
//	lit, err := types.ToLiteral(5, types.Int())
//	v, err := types.FromLiteral(lit, types.Int()) // int64(5)
//
// Integer and float widths normalize to int64 and float64 on the way in.
package types
