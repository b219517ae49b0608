package qdranttools

import (
	"context"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"

	"github.com/radutopala/knowledge-mcp/internal/embeddings"
	"github.com/radutopala/knowledge-mcp/internal/tools"
)

// Tools returns all five vector-store tools wired to client and gw.
func Tools(client Client, gw *embeddings.Gateway) []*tools.Tool {
	return []*tools.Tool{
		CreateCollectionTool(client),
		UpsertPointsTool(client, gw),
		SearchTool(client, gw),
		GetCollectionInfoTool(client),
		DeletePointsTool(client),
	}
}

// CreateCollectionTool returns qdrant_create_collection.
func CreateCollectionTool(client Client) *tools.Tool {
	return &tools.Tool{
		Name:        "qdrant_create_collection",
		Description: "Create a new vector collection in Qdrant",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"collection_name": map[string]any{
					"type":        "string",
					"description": "Name of the collection to create",
				},
				"vector_size": map[string]any{
					"type":        "integer",
					"description": "Dimension of vectors",
				},
				"distance": map[string]any{
					"type":        "string",
					"description": "Distance metric",
					"enum":        []string{"Cosine", "Euclidean", "Dot"},
					"default":     "Cosine",
				},
			},
			"required": []string{"collection_name", "vector_size"},
		},
		Handler: func(ctx context.Context, args map[string]any) (map[string]any, error) {
			collectionName, ok := tools.StringArg(args, "collection_name")
			if !ok {
				return tools.MissingParameter("collection_name"), nil
			}
			vectorSize, ok := tools.IntArg(args, "vector_size")
			if !ok {
				return tools.MissingParameter("vector_size"), nil
			}
			if vectorSize <= 0 {
				return tools.Failure(tools.ErrTypeValidation, "vector_size must be a positive integer"), nil
			}
			distance := distanceFromString(tools.StringArgOr(args, "distance", "Cosine"))

			err := client.CreateCollection(ctx, &qdrant.CreateCollection{
				CollectionName: collectionName,
				VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
					Size:     uint64(vectorSize),
					Distance: distance,
				}),
			})
			if err != nil {
				return tools.Upstream(err), nil
			}

			return map[string]any{
				"success":         true,
				"collection_name": collectionName,
				"vector_size":     vectorSize,
				"distance":        distanceToString(distance),
			}, nil
		},
	}
}

// UpsertPointsTool returns qdrant_upsert_points. Every text-bearing point in
// a call is embedded in one batch, then spliced back by index. A point with
// neither vector nor text fails the whole call before anything is written.
func UpsertPointsTool(client Client, gw *embeddings.Gateway) *tools.Tool {
	return &tools.Tool{
		Name:        "qdrant_upsert_points",
		Description: "Insert or update points in a Qdrant collection",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"collection_name": map[string]any{
					"type":        "string",
					"description": "Name of the collection",
				},
				"points": map[string]any{
					"type":        "array",
					"description": "Array of points to upsert",
					"items": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"id": map[string]any{
								"description": "Point ID (optional, generated if not provided)",
							},
							"vector": map[string]any{
								"type":        "array",
								"items":       map[string]any{"type": "number"},
								"description": "Vector data (if not using text)",
							},
							"text": map[string]any{
								"type":        "string",
								"description": "Text to generate embedding from",
							},
							"payload": map[string]any{
								"type":        "object",
								"description": "Additional metadata",
							},
						},
					},
				},
				"wait": map[string]any{
					"type":        "boolean",
					"description": "Wait for the write to be applied",
					"default":     true,
				},
			},
			"required": []string{"collection_name", "points"},
		},
		Handler: func(ctx context.Context, args map[string]any) (map[string]any, error) {
			collectionName, ok := tools.StringArg(args, "collection_name")
			if !ok {
				return tools.MissingParameter("collection_name"), nil
			}
			rawPoints, ok := args["points"].([]any)
			if !ok {
				if _, present := args["points"]; present {
					return tools.Failure(tools.ErrTypeValidation, "Points must be an array"), nil
				}
				return tools.MissingParameter("points"), nil
			}
			wait := tools.BoolArgOr(args, "wait", true)

			points := make([]*qdrant.PointStruct, len(rawPoints))
			var textsToEmbed []string
			var textIndices []int

			for i, rawPoint := range rawPoints {
				spec, ok := rawPoint.(map[string]any)
				if !ok {
					return tools.Failure(tools.ErrTypeValidation, "Point at index %d must be an object", i), nil
				}

				id, err := pointID(spec)
				if err != nil {
					return tools.Failure(tools.ErrTypeValidation, "Point at index %d: %v", i, err), nil
				}
				payload, ok := tools.MapArg(spec, "payload")
				if !ok {
					return tools.Failure(tools.ErrTypeValidation, "Point at index %d has a non-object payload", i), nil
				}

				if vector, ok := tools.VectorArg(spec, "vector"); ok {
					points[i] = &qdrant.PointStruct{
						Id:      id,
						Vectors: qdrant.NewVectors(vector...),
						Payload: qdrant.NewValueMap(payload),
					}
				} else if text, ok := tools.StringArg(spec, "text"); ok && gw != nil {
					textsToEmbed = append(textsToEmbed, text)
					textIndices = append(textIndices, i)
					points[i] = &qdrant.PointStruct{
						Id:      id,
						Payload: qdrant.NewValueMap(payload),
					}
				} else {
					return tools.Failure(tools.ErrTypeValidation, "Point at index %d must have either 'text' or 'vector'", i), nil
				}
			}

			if len(textsToEmbed) > 0 {
				vectors, err := gw.EmbedBatch(textsToEmbed, 0)
				if err != nil {
					return tools.Upstream(err), nil
				}
				for batchIdx, pointIdx := range textIndices {
					points[pointIdx].Vectors = qdrant.NewVectors(vectors[batchIdx]...)
				}
			}

			_, err := client.Upsert(ctx, &qdrant.UpsertPoints{
				CollectionName: collectionName,
				Points:         points,
				Wait:           &wait,
			})
			if err != nil {
				return tools.Upstream(err), nil
			}

			return map[string]any{
				"success":         true,
				"collection_name": collectionName,
				"count":           len(points),
			}, nil
		},
	}
}

// SearchTool returns qdrant_search. Text and vector input are mutually
// exclusive; the optional filter is a conjunctive exact-match filter.
// Results are relayed ranked exactly as the store returns them.
func SearchTool(client Client, gw *embeddings.Gateway) *tools.Tool {
	return &tools.Tool{
		Name:        "qdrant_search",
		Description: "Search for similar vectors in a Qdrant collection",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"collection_name": map[string]any{
					"type":        "string",
					"description": "Name of the collection to search",
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
				"filter": map[string]any{
					"type":        "object",
					"description": "Conjunctive exact-match filter conditions",
				},
				"limit": map[string]any{
					"type":        "integer",
					"description": "Maximum number of results",
					"default":     10,
				},
				"score_threshold": map[string]any{
					"type":        "number",
					"description": "Minimum similarity score",
				},
			},
			"required": []string{"collection_name"},
		},
		Handler: func(ctx context.Context, args map[string]any) (map[string]any, error) {
			collectionName, ok := tools.StringArg(args, "collection_name")
			if !ok {
				return tools.MissingParameter("collection_name"), nil
			}

			queryText, hasText := tools.StringArg(args, "query_text")
			queryVec, hasVector := tools.VectorArg(args, "query_vector")
			if hasText && hasVector {
				return tools.Failure(tools.ErrTypeDisambiguation, "query_text and query_vector are mutually exclusive"), nil
			}

			var vector []float32
			switch {
			case hasText && gw != nil:
				vec, err := gw.Embed(queryText)
				if err != nil {
					return tools.Upstream(err), nil
				}
				vector = vec
			case hasVector:
				vector = queryVec
			default:
				return tools.Failure(tools.ErrTypeDisambiguation, "Either query_text or query_vector must be provided"), nil
			}

			limit := uint64(tools.IntArgOr(args, "limit", 10))
			query := &qdrant.QueryPoints{
				CollectionName: collectionName,
				Query:          qdrant.NewQuery(vector...),
				Limit:          &limit,
				WithPayload:    qdrant.NewWithPayload(true),
			}
			if threshold, ok := tools.FloatArg(args, "score_threshold"); ok {
				t := float32(threshold)
				query.ScoreThreshold = &t
			}
			if rawFilter, ok := args["filter"]; ok {
				filter, err := filterFromArg(rawFilter)
				if err != nil {
					return tools.Failure(tools.ErrTypeValidation, "%v", err), nil
				}
				query.Filter = filter
			}

			hits, err := client.Query(ctx, query)
			if err != nil {
				return tools.Upstream(err), nil
			}

			results := make([]map[string]any, len(hits))
			for i, hit := range hits {
				results[i] = map[string]any{
					"id":      pointIDValue(hit.GetId()),
					"score":   hit.GetScore(),
					"payload": payloadToMap(hit.GetPayload()),
				}
			}

			return map[string]any{
				"success": true,
				"results": results,
			}, nil
		},
	}
}

// GetCollectionInfoTool returns qdrant_get_collection_info, a read-only
// introspection call.
func GetCollectionInfoTool(client Client) *tools.Tool {
	return &tools.Tool{
		Name:        "qdrant_get_collection_info",
		Description: "Get information about a Qdrant collection",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"collection_name": map[string]any{
					"type":        "string",
					"description": "Name of the collection",
				},
			},
			"required": []string{"collection_name"},
		},
		Handler: func(ctx context.Context, args map[string]any) (map[string]any, error) {
			collectionName, ok := tools.StringArg(args, "collection_name")
			if !ok {
				return tools.MissingParameter("collection_name"), nil
			}

			info, err := client.GetCollectionInfo(ctx, collectionName)
			if err != nil {
				return tools.Upstream(err), nil
			}

			result := map[string]any{
				"success":       true,
				"status":        info.GetStatus().String(),
				"vectors_count": info.GetVectorsCount(),
				"points_count":  info.GetPointsCount(),
			}
			if params := info.GetConfig().GetParams().GetVectorsConfig().GetParams(); params != nil {
				result["vector_size"] = params.GetSize()
				result["distance"] = distanceToString(params.GetDistance())
			}
			return result, nil
		},
	}
}

// DeletePointsTool returns qdrant_delete_points. The reported deleted_count
// is the requested id count, not a store-confirmed count; callers relying on
// confirmed deletion must verify separately.
func DeletePointsTool(client Client) *tools.Tool {
	return &tools.Tool{
		Name:        "qdrant_delete_points",
		Description: "Delete points from a Qdrant collection",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"collection_name": map[string]any{
					"type":        "string",
					"description": "Name of the collection",
				},
				"point_ids": map[string]any{
					"type":        "array",
					"description": "IDs of points to delete",
				},
			},
			"required": []string{"collection_name", "point_ids"},
		},
		Handler: func(ctx context.Context, args map[string]any) (map[string]any, error) {
			collectionName, ok := tools.StringArg(args, "collection_name")
			if !ok {
				return tools.MissingParameter("collection_name"), nil
			}
			rawIDs, ok := args["point_ids"].([]any)
			if !ok {
				if _, present := args["point_ids"]; present {
					return tools.Failure(tools.ErrTypeValidation, "point_ids must be an array"), nil
				}
				return tools.MissingParameter("point_ids"), nil
			}

			ids := make([]*qdrant.PointId, len(rawIDs))
			for i, rawID := range rawIDs {
				id, err := pointIDFromValue(rawID)
				if err != nil {
					return tools.Failure(tools.ErrTypeValidation, "point_ids[%d]: %v", i, err), nil
				}
				ids[i] = id
			}

			wait := true
			_, err := client.Delete(ctx, &qdrant.DeletePoints{
				CollectionName: collectionName,
				Points:         qdrant.NewPointsSelector(ids...),
				Wait:           &wait,
			})
			if err != nil {
				return tools.Upstream(err), nil
			}

			return map[string]any{
				"success":         true,
				"collection_name": collectionName,
				"deleted_count":   len(ids),
			}, nil
		},
	}
}

// pointID returns the caller-supplied id for a point spec, or a generated
// UUID when absent.
func pointID(spec map[string]any) (*qdrant.PointId, error) {
	raw, ok := spec["id"]
	if !ok || raw == nil {
		return qdrant.NewID(uuid.NewString()), nil
	}
	return pointIDFromValue(raw)
}
