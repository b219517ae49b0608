package embeddings

import (
	"context"

	"github.com/radutopala/knowledge-mcp/internal/tools"
)

// GenerateTool returns the embeddings_generate tool: text in, vector out,
// single or batched.
func GenerateTool(gw *Gateway) *tools.Tool {
	return &tools.Tool{
		Name:        "embeddings_generate",
		Description: "Generate embeddings for text using the unified model",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"text": map[string]any{
					"type":        "string",
					"description": "Single text to generate embedding for",
				},
				"texts": map[string]any{
					"type":        "array",
					"items":       map[string]any{"type": "string"},
					"description": "Multiple texts to generate embeddings for",
				},
			},
		},
		Handler: func(ctx context.Context, args map[string]any) (map[string]any, error) {
			if text, ok := tools.StringArg(args, "text"); ok {
				embedding, err := gw.Embed(text)
				if err != nil {
					return tools.Upstream(err), nil
				}
				return map[string]any{
					"success":   true,
					"embedding": embedding,
					"model":     gw.ModelName(),
					"dimension": gw.Dimension(),
				}, nil
			}

			if texts, ok := tools.StringListArg(args, "texts"); ok {
				embeddings, err := gw.EmbedBatch(texts, 0)
				if err != nil {
					return tools.Upstream(err), nil
				}
				return map[string]any{
					"success":    true,
					"embeddings": embeddings,
					"model":      gw.ModelName(),
					"dimension":  gw.Dimension(),
				}, nil
			}

			return tools.Failure(tools.ErrTypeDisambiguation, "Either 'text' or 'texts' must be provided"), nil
		},
	}
}

// ModelInfoTool returns the embeddings_model_info tool.
func ModelInfoTool(gw *Gateway) *tools.Tool {
	return &tools.Tool{
		Name:        "embeddings_model_info",
		Description: "Get information about the embeddings model",
		InputSchema: map[string]any{
			"type":       "object",
			"properties": map[string]any{},
		},
		Handler: func(ctx context.Context, args map[string]any) (map[string]any, error) {
			return map[string]any{
				"success":             true,
				"model_name":          gw.ModelName(),
				"embedding_dimension": gw.Dimension(),
				"normalized":          gw.Normalized(),
			}, nil
		},
	}
}
