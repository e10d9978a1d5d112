package weft

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for workflow and task calls. All of them are author
// errors: the workflow definition or the call site is wrong, and nothing
// is retried or defaulted.
var (
	// ErrNilContext indicates Call or Compile was called with a nil context.
	ErrNilContext = errors.New("context cannot be nil")

	// ErrPositionalArguments indicates a call supplied values outside an Args map.
	ErrPositionalArguments = errors.New("only keyword arguments are supported")

	// ErrUnknownInput indicates a keyword argument name not in the declared interface.
	ErrUnknownInput = errors.New("unknown input")

	// ErrMissingInput indicates a declared input was not supplied.
	ErrMissingInput = errors.New("input was not specified")

	// ErrTooManyInputs indicates extra, undeclared keyword arguments.
	ErrTooManyInputs = errors.New("too many inputs")

	// ErrPromiseArgument indicates a Promise where a top-level call expects
	// concrete native values.
	ErrPromiseArgument = errors.New("received a promise when expecting a native value")

	// ErrPromiseNotReady indicates a deferred promise was read during local
	// execution before it held a concrete value.
	ErrPromiseNotReady = errors.New("promise has no concrete value")

	// ErrOutputMismatch indicates the traced return value's shape does not
	// match the declared output interface.
	ErrOutputMismatch = errors.New("returned outputs do not match declared interface")

	// ErrUnresolvedBranch indicates a branch construct was read as a value
	// without a terminal Else arm.
	ErrUnresolvedBranch = errors.New("branch must end with an Else arm")

	// ErrNotCompiled indicates the registerable form was requested from an
	// uncompiled workflow.
	ErrNotCompiled = errors.New("workflow is not compiled")
)

// InputError reports an invalid keyword-argument set on a workflow or task
// call. It names the entity and the offending variables so the author can
// locate the call site.
type InputError struct {
	// Entity is the workflow or task being called.
	Entity string
	// Vars are the offending variable names, sorted.
	Vars []string
	// Err is the underlying sentinel.
	Err error
}

// Error implements the error interface.
func (e *InputError) Error() string {
	if len(e.Vars) == 0 {
		return fmt.Sprintf("%s: %v", e.Entity, e.Err)
	}
	return fmt.Sprintf("%s: %v: %s", e.Entity, e.Err, strings.Join(e.Vars, ", "))
}

// Unwrap returns the underlying sentinel for errors.Is support.
func (e *InputError) Unwrap() error {
	return e.Err
}

// OutputError reports a mismatch between a workflow's declared outputs and
// the value its traced body returned.
type OutputError struct {
	// Workflow is the workflow whose return value was wrong.
	Workflow string
	// Declared is the number of declared outputs.
	Declared int
	// Received is the number of returned values.
	Received int
	// Err is the underlying sentinel.
	Err error
}

// Error implements the error interface.
func (e *OutputError) Error() string {
	return fmt.Sprintf("%s: %v: declared %d, received %d", e.Workflow, e.Err, e.Declared, e.Received)
}

// Unwrap returns the underlying sentinel for errors.Is support.
func (e *OutputError) Unwrap() error {
	return e.Err
}
