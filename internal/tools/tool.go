// Package tools implements the workshop tool catalog: calculator and math
// tools, web search and fetch, the mock client database, portfolio
// read/write operations, deliberately confusing market-data tools, report
// generators, and the simulated security tools.
package tools

import (
	"context"
	"encoding/json"

	"github.com/finlabs/agent-workshop/internal/llm"
	"github.com/finlabs/agent-workshop/internal/logging"
)

// Tool is a capability the agent can invoke during a conversation.
type Tool interface {
	// Name returns the tool's identifier.
	Name() string

	// Description returns a human-readable description for the model.
	Description() string

	// InputSchema returns the JSON Schema for the tool's input.
	InputSchema() string

	// Execute runs the tool. The returned value is serialized to JSON
	// before being handed back to the model. Tools report domain
	// failures inside the payload; an error return means the input
	// could not be processed at all.
	Execute(ctx context.Context, input json.RawMessage) (any, error)
}

// funcTool adapts a function to the Tool interface. All catalog tools are
// built this way.
type funcTool struct {
	name        string
	description string
	schema      string
	run         func(ctx context.Context, input json.RawMessage) (any, error)
}

func newTool(name, description, schema string, run func(ctx context.Context, input json.RawMessage) (any, error)) Tool {
	return &funcTool{name: name, description: description, schema: schema, run: run}
}

func (t *funcTool) Name() string        { return t.name }
func (t *funcTool) Description() string { return t.description }
func (t *funcTool) InputSchema() string { return t.schema }
func (t *funcTool) Execute(ctx context.Context, input json.RawMessage) (any, error) {
	return t.run(ctx, input)
}

// Registry holds the full tool catalog.
type Registry struct {
	tools map[string]Tool
	log   *logging.Logger
}

// NewRegistry creates an empty tool registry.
func NewRegistry(log *logging.Logger) *Registry {
	return &Registry{tools: make(map[string]Tool), log: log.Sub("tools")}
}

// Register adds a tool to the catalog.
func (r *Registry) Register(t Tool) {
	r.tools[t.Name()] = t
}

// Get returns a tool by name.
func (r *Registry) Get(name string) (Tool, bool) {
	t, ok := r.tools[name]
	return t, ok
}

// Len returns the number of registered tools.
func (r *Registry) Len() int { return len(r.tools) }

// Scope returns the named tools in order. Names missing from the catalog
// are logged and skipped; a scoped set never fails.
func (r *Registry) Scope(names []string) []Tool {
	scoped := make([]Tool, 0, len(names))
	for _, name := range names {
		t, ok := r.tools[name]
		if !ok {
			r.log.Warn().Str("tool", name).Msg("tool not found in registry")
			continue
		}
		scoped = append(scoped, t)
	}
	return scoped
}

// Definitions converts tools to model-ready definitions.
func Definitions(ts []Tool) []llm.ToolDefinition {
	defs := make([]llm.ToolDefinition, 0, len(ts))
	for _, t := range ts {
		defs = append(defs, llm.ToolDefinition{
			Name:        t.Name(),
			Description: t.Description(),
			InputSchema: t.InputSchema(),
		})
	}
	return defs
}
