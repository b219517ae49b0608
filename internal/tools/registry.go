package tools

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Registry manages the fixed tool catalog and dispatches calls by name.
// It is built once at startup and treated as immutable afterwards.
type Registry struct {
	tools  map[string]*Tool
	order  []string // registration order, for a stable tools/list
	logger *slog.Logger
}

// NewRegistry creates an empty tool registry.
func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{
		tools:  make(map[string]*Tool),
		logger: logger,
	}
}

// Register adds a tool to the registry. Names must be unique.
func (r *Registry) Register(tool *Tool) error {
	if tool.Name == "" {
		return fmt.Errorf("tool name cannot be empty")
	}
	if tool.Handler == nil {
		return fmt.Errorf("tool handler cannot be nil: %s", tool.Name)
	}
	if _, exists := r.tools[tool.Name]; exists {
		return fmt.Errorf("tool %s already registered", tool.Name)
	}

	r.tools[tool.Name] = tool
	r.order = append(r.order, tool.Name)
	r.logger.Info("Registered tool", "name", tool.Name)
	return nil
}

// RegisterAll registers every tool, stopping at the first failure.
func (r *Registry) RegisterAll(tools ...*Tool) error {
	for _, tool := range tools {
		if err := r.Register(tool); err != nil {
			return err
		}
	}
	return nil
}

// Get retrieves a tool by name.
func (r *Registry) Get(name string) (*Tool, bool) {
	tool, ok := r.tools[name]
	return tool, ok
}

// List returns all registered tools in registration order.
func (r *Registry) List() []*Tool {
	out := make([]*Tool, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.tools[name])
	}
	return out
}

// Len returns the number of registered tools.
func (r *Registry) Len() int {
	return len(r.tools)
}

// Execute runs a tool by name. Every fault — unknown name, handler error,
// handler panic — is converted into a failure-shaped result; Execute never
// lets a lower-layer fault escape to the protocol layer.
func (r *Registry) Execute(ctx context.Context, name string, args map[string]any) (result map[string]any) {
	start := time.Now()

	tool, ok := r.tools[name]
	if !ok {
		r.logger.WarnContext(ctx, "Unknown tool requested", "name", name)
		return Failure(ErrTypeToolNotFound, "Unknown tool: %s", name)
	}

	defer func() {
		if rec := recover(); rec != nil {
			r.logger.ErrorContext(ctx, "Tool handler panicked", "name", name, "panic", rec)
			result = Failure(ErrTypeExecution, "tool %s panicked: %v", name, rec)
		}
	}()

	res, err := tool.Handler(ctx, args)
	elapsed := time.Since(start).Milliseconds()

	if err != nil {
		r.logger.ErrorContext(ctx, "Tool execution failed", "name", name, "error", err, "execution_time_ms", elapsed)
		return Failure(ErrTypeExecution, "%v", err)
	}

	r.logger.InfoContext(ctx, "Tool executed", "name", name, "execution_time_ms", elapsed)
	return res
}
