package weft

import (
	"time"

	"github.com/weftlabs/weft/pkg/weft/registry"
)

// Entity is anything callable from a workflow body: a task or a nested
// workflow. Under an active trace a call links a node against the entity;
// outside a trace the entity executes locally.
type Entity interface {
	// Name returns the entity's unique name.
	Name() string
	// Interface returns the declared typed interface.
	Interface() *Interface
	// Metadata returns display and scheduling metadata.
	Metadata() Metadata
	// Call invokes the entity. The arguments must be a single Args map;
	// positional values are a usage error.
	Call(ctx *Context, args ...any) (any, error)
}

// Entities is the process-wide registry of every workflow and task
// defined in the process, in definition order. It is append-only and read
// at registration-export time.
var Entities = registry.New[Entity]()

// entityConfig holds construction options shared by workflows and tasks.
type entityConfig struct {
	timeout  time.Duration
	retries  int
	registry *registry.Registry[Entity]
}

func defaultEntityConfig() entityConfig {
	return entityConfig{registry: Entities}
}

// EntityOption configures a workflow or task at definition time.
type EntityOption func(*entityConfig)

// WithTimeout sets the per-attempt execution timeout recorded in node
// metadata. The orchestration engine enforces it; local execution does not.
func WithTimeout(d time.Duration) EntityOption {
	return func(c *entityConfig) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithRetries sets the retry count recorded in node metadata.
func WithRetries(n int) EntityOption {
	return func(c *entityConfig) {
		if n > 0 {
			c.retries = n
		}
	}
}

// WithRegistry overrides the registry the entity registers into.
// Tests use this to avoid touching the process-wide registry.
func WithRegistry(r *registry.Registry[Entity]) EntityOption {
	return func(c *entityConfig) {
		if r != nil {
			c.registry = r
		}
	}
}
