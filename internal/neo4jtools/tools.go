package neo4jtools

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/radutopala/knowledge-mcp/internal/embeddings"
	"github.com/radutopala/knowledge-mcp/internal/tools"
)

// Tools returns all four graph tools wired to runner and gw.
func Tools(runner Runner, gw *embeddings.Gateway) []*tools.Tool {
	return []*tools.Tool{
		QueryTool(runner),
		CreateNodeTool(runner, gw),
		CreateRelationshipTool(runner),
		VectorSearchTool(runner, gw),
	}
}

// QueryTool returns neo4j_query: run a caller-supplied Cypher statement
// verbatim with bound parameters.
func QueryTool(runner Runner) *tools.Tool {
	return &tools.Tool{
		Name:        "neo4j_query",
		Description: "Execute Cypher queries on Neo4j database",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"query": map[string]any{
					"type":        "string",
					"description": "The Cypher query to execute",
				},
				"parameters": map[string]any{
					"type":        "object",
					"description": "Query parameters",
				},
			},
			"required": []string{"query"},
		},
		Handler: func(ctx context.Context, args map[string]any) (map[string]any, error) {
			query, ok := tools.StringArg(args, "query")
			if !ok {
				if _, present := args["query"]; present {
					return tools.Failure(tools.ErrTypeValidation, "Query must be a string"), nil
				}
				return tools.MissingParameter("query"), nil
			}

			params, ok := tools.MapArg(args, "parameters")
			if !ok {
				return tools.Failure(tools.ErrTypeValidation, "Parameters must be an object"), nil
			}

			rows, err := runner.Run(ctx, query, params)
			if err != nil {
				return tools.Upstream(err), nil
			}

			if rows == nil {
				rows = []map[string]any{}
			}
			return map[string]any{
				"success": true,
				"data":    rows,
			}, nil
		},
	}
}

// CreateNodeTool returns neo4j_create_node. When create_embedding is set, the
// string-valued properties are concatenated as "key: value" in sorted key
// order (excluding the target property), embedded once, and stored under the
// embedding property before the node is created.
func CreateNodeTool(runner Runner, gw *embeddings.Gateway) *tools.Tool {
	return &tools.Tool{
		Name:        "neo4j_create_node",
		Description: "Create a node in Neo4j with optional embedding generation",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"labels": map[string]any{
					"type":        "array",
					"items":       map[string]any{"type": "string"},
					"description": "Node labels",
				},
				"properties": map[string]any{
					"type":        "object",
					"description": "Node properties",
				},
				"create_embedding": map[string]any{
					"type":        "boolean",
					"description": "Whether to create an embedding from content",
					"default":     false,
				},
				"embedding_property": map[string]any{
					"type":        "string",
					"description": "Property name for storing the embedding",
					"default":     "embedding",
				},
			},
			"required": []string{"labels"},
		},
		Handler: func(ctx context.Context, args map[string]any) (map[string]any, error) {
			labels, ok := tools.StringListArg(args, "labels")
			if !ok {
				if _, present := args["labels"]; present {
					return tools.Failure(tools.ErrTypeValidation, "Labels must be a list of strings"), nil
				}
				return tools.MissingParameter("labels"), nil
			}
			if len(labels) == 0 {
				return tools.Failure(tools.ErrTypeValidation, "At least one label is required"), nil
			}
			if err := ValidateLabels(labels); err != nil {
				return tools.Failure(tools.ErrTypeValidation, "%v", err), nil
			}

			properties, ok := tools.MapArg(args, "properties")
			if !ok {
				return tools.Failure(tools.ErrTypeValidation, "Properties must be an object"), nil
			}
			createEmbedding := tools.BoolArgOr(args, "create_embedding", false)
			embeddingProperty := tools.StringArgOr(args, "embedding_property", "embedding")

			if createEmbedding && gw != nil {
				if text := embeddingText(properties, embeddingProperty); text != "" {
					vector, err := gw.Embed(text)
					if err != nil {
						return tools.Upstream(err), nil
					}
					properties[embeddingProperty] = vectorParam(vector)
				}
			}

			cypher := fmt.Sprintf(`
CREATE (n:%s)
SET n = $properties
RETURN id(n) AS id, labels(n) AS labels, properties(n) AS properties
`, strings.Join(labels, ":"))

			rows, err := runner.Run(ctx, cypher, map[string]any{"properties": properties})
			if err != nil {
				return tools.Upstream(err), nil
			}
			if len(rows) == 0 {
				return tools.Failure(tools.ErrTypeUpstream, "Failed to create node"), nil
			}

			row := rows[0]
			return map[string]any{
				"success": true,
				"node": map[string]any{
					"id":         row["id"],
					"labels":     row["labels"],
					"properties": row["properties"],
				},
			}, nil
		},
	}
}

// CreateRelationshipTool returns neo4j_create_relationship. Both endpoints
// are matched by store-assigned identity; a missing endpoint yields a
// distinct not-found result.
func CreateRelationshipTool(runner Runner) *tools.Tool {
	return &tools.Tool{
		Name:        "neo4j_create_relationship",
		Description: "Create a relationship between two nodes in Neo4j",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"start_node_id": map[string]any{
					"type":        "integer",
					"description": "ID of the start node",
				},
				"end_node_id": map[string]any{
					"type":        "integer",
					"description": "ID of the end node",
				},
				"relationship_type": map[string]any{
					"type":        "string",
					"description": "Type of the relationship",
				},
				"properties": map[string]any{
					"type":        "object",
					"description": "Relationship properties",
				},
			},
			"required": []string{"start_node_id", "end_node_id", "relationship_type"},
		},
		Handler: func(ctx context.Context, args map[string]any) (map[string]any, error) {
			startID, ok := tools.IntArg(args, "start_node_id")
			if !ok {
				return tools.MissingParameter("start_node_id"), nil
			}
			endID, ok := tools.IntArg(args, "end_node_id")
			if !ok {
				return tools.MissingParameter("end_node_id"), nil
			}
			relType, ok := tools.StringArg(args, "relationship_type")
			if !ok {
				return tools.MissingParameter("relationship_type"), nil
			}
			if err := ValidateIdentifier(relType); err != nil {
				return tools.Failure(tools.ErrTypeValidation, "%v", err), nil
			}
			properties, ok := tools.MapArg(args, "properties")
			if !ok {
				return tools.Failure(tools.ErrTypeValidation, "Properties must be an object"), nil
			}

			cypher := fmt.Sprintf(`
MATCH (a), (b)
WHERE id(a) = $start_id AND id(b) = $end_id
CREATE (a)-[rel:%s]->(b)
SET rel = $properties
RETURN type(rel) AS type, properties(rel) AS properties, labels(a) AS start_labels, labels(b) AS end_labels
`, relType)

			rows, err := runner.Run(ctx, cypher, map[string]any{
				"start_id":   startID,
				"end_id":     endID,
				"properties": properties,
			})
			if err != nil {
				return tools.Upstream(err), nil
			}
			if len(rows) == 0 {
				return tools.Failure(tools.ErrTypeNotFound, "Failed to create relationship - nodes not found"), nil
			}

			row := rows[0]
			return map[string]any{
				"success": true,
				"relationship": map[string]any{
					"type":       row["type"],
					"properties": row["properties"],
				},
				"start_node": map[string]any{
					"id":     startID,
					"labels": row["start_labels"],
				},
				"end_node": map[string]any{
					"id":     endID,
					"labels": row["end_labels"],
				},
			}, nil
		},
	}
}

// VectorSearchTool returns neo4j_vector_search: exact cosine-similarity scan
// over every node with the label, computed store-side with a reduce-based
// dot-product/norm expression. This store has no vector index, so the scan is
// O(n) in the labeled nodes.
func VectorSearchTool(runner Runner, gw *embeddings.Gateway) *tools.Tool {
	return &tools.Tool{
		Name:        "neo4j_vector_search",
		Description: "Search for similar nodes using vector similarity",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"label": map[string]any{
					"type":        "string",
					"description": "Node label to search within",
				},
				"query_text": map[string]any{
					"type":        "string",
					"description": "Text to search for",
				},
				"query_vector": map[string]any{
					"type":        "array",
					"items":       map[string]any{"type": "number"},
					"description": "Pre-computed query vector (alternative to query_text)",
				},
				"embedding_property": map[string]any{
					"type":        "string",
					"description": "Property containing the embedding",
					"default":     "embedding",
				},
				"limit": map[string]any{
					"type":        "integer",
					"description": "Maximum number of results",
					"default":     10,
				},
				"min_similarity": map[string]any{
					"type":        "number",
					"description": "Minimum similarity score (0-1)",
					"default":     0.0,
				},
			},
			"required": []string{"label"},
		},
		Handler: func(ctx context.Context, args map[string]any) (map[string]any, error) {
			label, ok := tools.StringArg(args, "label")
			if !ok {
				return tools.MissingParameter("label"), nil
			}
			if err := ValidateIdentifier(label); err != nil {
				return tools.Failure(tools.ErrTypeValidation, "%v", err), nil
			}
			embeddingProperty := tools.StringArgOr(args, "embedding_property", "embedding")
			if err := ValidateIdentifier(embeddingProperty); err != nil {
				return tools.Failure(tools.ErrTypeValidation, "%v", err), nil
			}
			limit := tools.IntArgOr(args, "limit", 10)
			minSimilarity, _ := tools.FloatArg(args, "min_similarity")

			var queryVector []float32
			if text, ok := tools.StringArg(args, "query_text"); ok && gw != nil {
				vec, err := gw.Embed(text)
				if err != nil {
					return tools.Upstream(err), nil
				}
				queryVector = vec
			} else if vec, ok := tools.VectorArg(args, "query_vector"); ok {
				queryVector = vec
			} else {
				return tools.Failure(tools.ErrTypeDisambiguation, "Either query_text or query_vector must be provided"), nil
			}

			p := embeddingProperty
			cypher := fmt.Sprintf(`
MATCH (n:%s)
WHERE n.%s IS NOT NULL
WITH n,
     reduce(dot = 0.0, i IN range(0, size(n.%s)-1) |
            dot + n.%s[i] * $query_vector[i]) /
     (sqrt(reduce(sum1 = 0.0, i IN range(0, size(n.%s)-1) |
            sum1 + n.%s[i] * n.%s[i])) *
      sqrt(reduce(sum2 = 0.0, i IN range(0, size($query_vector)-1) |
            sum2 + $query_vector[i] * $query_vector[i]))) AS similarity
WHERE similarity >= $min_similarity
RETURN id(n) AS id, labels(n) AS labels, properties(n) AS properties, similarity
ORDER BY similarity DESC
LIMIT $limit
`, label, p, p, p, p, p, p)

			rows, err := runner.Run(ctx, cypher, map[string]any{
				"query_vector":   vectorParam(queryVector),
				"min_similarity": minSimilarity,
				"limit":          limit,
			})
			if err != nil {
				return tools.Upstream(err), nil
			}

			results := make([]map[string]any, 0, len(rows))
			for _, row := range rows {
				results = append(results, map[string]any{
					"node": map[string]any{
						"id":         row["id"],
						"labels":     row["labels"],
						"properties": row["properties"],
					},
					"similarity": row["similarity"],
				})
			}

			return map[string]any{
				"success": true,
				"results": results,
			}, nil
		},
	}
}

// embeddingText concatenates string-valued properties as "key: value" in
// sorted key order, excluding the embedding target property.
func embeddingText(properties map[string]any, embeddingProperty string) string {
	keys := make([]string, 0, len(properties))
	for key := range properties {
		if key == embeddingProperty {
			continue
		}
		if _, ok := properties[key].(string); ok {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", key, properties[key]))
	}
	return strings.Join(parts, " ")
}

// vectorParam converts a vector into a Bolt-friendly float64 list.
func vectorParam(vec []float32) []float64 {
	out := make([]float64, len(vec))
	for i, v := range vec {
		out[i] = float64(v)
	}
	return out
}
