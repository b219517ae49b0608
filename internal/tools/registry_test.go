package tools

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// RegistryTestSuite is the test suite for Registry
type RegistryTestSuite struct {
	suite.Suite
	registry *Registry
	ctx      context.Context
}

// SetupTest runs before each test
func (s *RegistryTestSuite) SetupTest() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError, // Quiet during tests
	}))

	s.registry = NewRegistry(logger)
	s.ctx = context.Background()
}

func (s *RegistryTestSuite) echoTool(name string) *Tool {
	return &Tool{
		Name:        name,
		Description: "Test tool",
		InputSchema: map[string]any{"type": "object"},
		Handler: func(ctx context.Context, args map[string]any) (map[string]any, error) {
			return map[string]any{"success": true, "input": args["value"]}, nil
		},
	}
}

// TestRegister tests tool registration
func (s *RegistryTestSuite) TestRegister() {
	err := s.registry.Register(s.echoTool("test_tool"))
	require.NoError(s.T(), err)

	registered, ok := s.registry.Get("test_tool")
	require.True(s.T(), ok)
	require.Equal(s.T(), "test_tool", registered.Name)
}

// TestRegister_EmptyName tests registration with empty name
func (s *RegistryTestSuite) TestRegister_EmptyName() {
	err := s.registry.Register(s.echoTool(""))
	require.Error(s.T(), err)
	require.Contains(s.T(), err.Error(), "tool name cannot be empty")
}

// TestRegister_NilHandler tests registration without a handler
func (s *RegistryTestSuite) TestRegister_NilHandler() {
	tool := s.echoTool("test_tool")
	tool.Handler = nil

	err := s.registry.Register(tool)
	require.Error(s.T(), err)
	require.Contains(s.T(), err.Error(), "handler cannot be nil")
}

// TestRegister_Duplicate tests duplicate tool registration
func (s *RegistryTestSuite) TestRegister_Duplicate() {
	err := s.registry.Register(s.echoTool("test_tool"))
	require.NoError(s.T(), err)

	err = s.registry.Register(s.echoTool("test_tool"))
	require.Error(s.T(), err)
	require.Contains(s.T(), err.Error(), "already registered")
}

// TestGet_NotFound tests getting non-existent tool
func (s *RegistryTestSuite) TestGet_NotFound() {
	_, ok := s.registry.Get("nonexistent")
	require.False(s.T(), ok)
}

// TestList tests that listing preserves registration order
func (s *RegistryTestSuite) TestList() {
	names := []string{"zeta_tool", "alpha_tool", "mid_tool"}
	for _, name := range names {
		require.NoError(s.T(), s.registry.Register(s.echoTool(name)))
	}

	listed := s.registry.List()
	require.Len(s.T(), listed, 3)
	for i, name := range names {
		require.Equal(s.T(), name, listed[i].Name)
	}
	require.Equal(s.T(), 3, s.registry.Len())
}

// TestExecute tests tool execution
func (s *RegistryTestSuite) TestExecute() {
	require.NoError(s.T(), s.registry.Register(s.echoTool("test_tool")))

	result := s.registry.Execute(s.ctx, "test_tool", map[string]any{"value": "test"})
	require.Equal(s.T(), true, result["success"])
	require.Equal(s.T(), "test", result["input"])
}

// TestExecute_NotFound tests execution of non-existent tool
func (s *RegistryTestSuite) TestExecute_NotFound() {
	result := s.registry.Execute(s.ctx, "nonexistent", map[string]any{})
	require.Equal(s.T(), false, result["success"])
	require.Equal(s.T(), ErrTypeToolNotFound, result["error_type"])
	require.Contains(s.T(), result["error"], "Unknown tool: nonexistent")
}

// TestExecute_HandlerError tests that handler errors become execution failures
func (s *RegistryTestSuite) TestExecute_HandlerError() {
	tool := s.echoTool("failing_tool")
	tool.Handler = func(ctx context.Context, args map[string]any) (map[string]any, error) {
		return nil, fmt.Errorf("backend unavailable")
	}
	require.NoError(s.T(), s.registry.Register(tool))

	result := s.registry.Execute(s.ctx, "failing_tool", map[string]any{})
	require.Equal(s.T(), false, result["success"])
	require.Equal(s.T(), ErrTypeExecution, result["error_type"])
	require.Contains(s.T(), result["error"], "backend unavailable")
}

// TestExecute_HandlerPanic tests that a panicking handler is recovered
func (s *RegistryTestSuite) TestExecute_HandlerPanic() {
	tool := s.echoTool("panicking_tool")
	tool.Handler = func(ctx context.Context, args map[string]any) (map[string]any, error) {
		panic("index out of range")
	}
	require.NoError(s.T(), s.registry.Register(tool))

	result := s.registry.Execute(s.ctx, "panicking_tool", map[string]any{})
	require.Equal(s.T(), false, result["success"])
	require.Equal(s.T(), ErrTypeExecution, result["error_type"])
	require.Contains(s.T(), result["error"], "index out of range")
}

// TestRegisterAll tests bulk registration
func (s *RegistryTestSuite) TestRegisterAll() {
	err := s.registry.RegisterAll(s.echoTool("tool_a"), s.echoTool("tool_b"))
	require.NoError(s.T(), err)
	require.Equal(s.T(), 2, s.registry.Len())

	err = s.registry.RegisterAll(s.echoTool("tool_a"))
	require.Error(s.T(), err)
}

// TestRegistryTestSuite runs the test suite
func TestRegistryTestSuite(t *testing.T) {
	suite.Run(t, new(RegistryTestSuite))
}
