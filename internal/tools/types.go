package tools

import (
	"context"
	"fmt"
)

// Handler executes a tool with raw JSON-decoded arguments. Handlers fold
// tool-level faults into the returned result map; a non-nil error is reserved
// for faults the handler could not report itself.
type Handler func(ctx context.Context, args map[string]any) (map[string]any, error)

// Tool represents a single invocable tool with its metadata and handler.
type Tool struct {
	Name        string
	Description string
	InputSchema map[string]any
	Handler     Handler
}

// Error types attached to failure-shaped results.
const (
	ErrTypeToolNotFound   = "tool_not_found"
	ErrTypeExecution      = "execution_error"
	ErrTypeValidation     = "validation_error"
	ErrTypeDisambiguation = "disambiguation_error"
	ErrTypeNotFound       = "not_found"
	ErrTypeUpstream       = "upstream_error"
)

// Failure builds a failure-shaped tool result.
func Failure(errType, format string, args ...any) map[string]any {
	return map[string]any{
		"success":    false,
		"error":      fmt.Sprintf(format, args...),
		"error_type": errType,
	}
}

// MissingParameter reports an absent required argument.
func MissingParameter(name string) map[string]any {
	return Failure(ErrTypeValidation, "Missing required parameter: %s", name)
}

// Upstream reports a store or model fault.
func Upstream(err error) map[string]any {
	return Failure(ErrTypeUpstream, "%v", err)
}
