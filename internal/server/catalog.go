package server

import (
	"log/slog"

	"github.com/radutopala/knowledge-mcp/internal/embeddings"
	"github.com/radutopala/knowledge-mcp/internal/neo4jtools"
	"github.com/radutopala/knowledge-mcp/internal/qdranttools"
	"github.com/radutopala/knowledge-mcp/internal/tools"
)

// Backends holds the shared per-process collaborators: one graph connection,
// one vector-store connection, one embedding gateway. Built once at startup
// and passed by reference into every handler.
type Backends struct {
	Graph   neo4jtools.Runner
	Vector  qdranttools.Client
	Gateway *embeddings.Gateway
}

// NewRegistry builds the fixed catalog of 11 tools over the given backends.
func NewRegistry(b Backends, logger *slog.Logger) (*tools.Registry, error) {
	registry := tools.NewRegistry(logger)

	catalog := neo4jtools.Tools(b.Graph, b.Gateway)
	catalog = append(catalog, embeddings.GenerateTool(b.Gateway), embeddings.ModelInfoTool(b.Gateway))
	catalog = append(catalog, qdranttools.Tools(b.Vector, b.Gateway)...)

	if err := registry.RegisterAll(catalog...); err != nil {
		return nil, err
	}
	return registry, nil
}
