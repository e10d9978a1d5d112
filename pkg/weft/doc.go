/*
Package weft compiles workflow functions into static execution graphs.

# Overview

weft is a Go library for defining workflows as ordinary functions and
turning them into registerable directed acyclic graphs. A workflow
function is written once and serves two purposes: traced under a
compilation scope it yields a frozen graph of nodes and bindings, and
run locally it executes its tasks in-process with real values.

The core mechanic is tracing. Compile runs the workflow body exactly
once with placeholder promises for every declared input. Task calls
inside the body do not execute; each call links a node into the graph
and hands back deferred promises for its outputs. Data dependencies
fall out of which promises flow into which calls, so the author never
wires edges by hand.

# Basic Usage

Declare tasks and workflows with explicit typed interfaces, then
compile or run:

	double := weft.NewTask("double",
	    weft.NewInterface().
	        In("n", types.Int()).
	        Out("out", types.Int()),
	    func(ctx *weft.Context, in map[string]any) (map[string]any, error) {
	        return map[string]any{"out": in["n"].(int64) * 2}, nil
	    })

	wf := weft.NewWorkflow("pipeline",
	    weft.NewInterface().
	        In("n", types.Int()).
	        Out("result", types.Int()),
	    func(ctx *weft.Context, in weft.Inputs) (any, error) {
	        return double.Call(ctx, weft.Args{"n": in["n"]})
	    })

	ctx := weft.NewContext(context.Background())

	// Run locally with concrete values.
	result, err := wf.Call(ctx, weft.Args{"n": int64(21)})

	// Or compile to a static graph.
	err = wf.Compile(ctx, nil)
	nodes := wf.Nodes()

# Execution Modes

Every call dispatches on the ambient context, never on global state:

  - Under an active trace, calls link nodes and return deferred
    promises.
  - Inside a local execution, calls run their bodies directly.
  - At top level, calls accept only concrete values, run under a fresh
    local scope, and convert results back to native values.

The three modes are mutually exclusive. Passing a promise to a
top-level call is an error, as is calling with positional arguments
anywhere: arguments are always a single Args map.

# Conditional Values

Branches defer a choice between values until binding time:

	v := weft.NewBranch("pick").
	    When(useFast, fastResult).
	    Else(slowResult)

A branch without an Else that reaches binding with no true arm fails
compilation rather than guessing.

# Registration

A compiled workflow exports a registration form under project settings:

	settings, err := config.FromFile("weft.yaml")
	reg, err := wf.Registerable(settings)
	data, err := reg.ToYAML()

The form carries a stable project:domain:name:version identifier,
the typed interface, every node with its bindings and upstream edges,
and the workflow output bindings. Serialized forms can be kept in a
catalog.Store for later retrieval.

# Observability

Compilation and local runs emit structured slog events and
OpenTelemetry spans and metrics: weft.compile.count,
weft.compile.latency_ms, weft.local.runs, and friends. Pass a logger
through the context:

	ctx := weft.NewContext(context.Background(),
	    weft.WithLogger(logger),
	    weft.WithRunID("run-123"))

# Thread Safety

  - Workflow and Task are safe for concurrent use after construction.
  - Context is immutable; derived scopes never mutate their parent.
  - Tracing within one Compile is single-threaded.
  - Registries and catalog stores are safe for concurrent use.

# Subpackages

  - types: declared type system and the literal wire codec
  - registry: ordered append-only entity registry
  - config: project settings for registration
  - catalog: storage for serialized workflow specs (memory, SQLite)
  - observability: logging, metrics, and tracing helpers
*/
package weft
