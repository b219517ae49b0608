package qdranttools

import (
	"fmt"

	"github.com/qdrant/go-client/qdrant"
)

// distanceFromString maps the wire metric names onto the store's enum.
// Unrecognized strings fall back to Cosine; that is the documented default,
// not a validation failure.
func distanceFromString(s string) qdrant.Distance {
	switch s {
	case "Euclid", "Euclidean":
		return qdrant.Distance_Euclid
	case "Dot":
		return qdrant.Distance_Dot
	default:
		return qdrant.Distance_Cosine
	}
}

func distanceToString(d qdrant.Distance) string {
	switch d {
	case qdrant.Distance_Euclid:
		return "Euclidean"
	case qdrant.Distance_Dot:
		return "Dot"
	case qdrant.Distance_Cosine:
		return "Cosine"
	default:
		return d.String()
	}
}

// pointIDFromValue builds a point id from a caller-supplied string or number.
func pointIDFromValue(v any) (*qdrant.PointId, error) {
	switch id := v.(type) {
	case string:
		return qdrant.NewID(id), nil
	case float64:
		return qdrant.NewIDNum(uint64(id)), nil
	case int:
		return qdrant.NewIDNum(uint64(id)), nil
	case int64:
		return qdrant.NewIDNum(uint64(id)), nil
	}
	return nil, fmt.Errorf("point id must be a string or integer, got %T", v)
}

// pointIDValue converts a store point id back to its wire shape.
func pointIDValue(id *qdrant.PointId) any {
	if id == nil {
		return nil
	}
	if uuid, ok := id.GetPointIdOptions().(*qdrant.PointId_Uuid); ok {
		return uuid.Uuid
	}
	return id.GetNum()
}

// payloadToMap converts a store payload into plain JSON-friendly values.
func payloadToMap(payload map[string]*qdrant.Value) map[string]any {
	out := make(map[string]any, len(payload))
	for k, v := range payload {
		out[k] = valueToAny(v)
	}
	return out
}

func valueToAny(v *qdrant.Value) any {
	switch kind := v.GetKind().(type) {
	case *qdrant.Value_NullValue:
		return nil
	case *qdrant.Value_BoolValue:
		return kind.BoolValue
	case *qdrant.Value_IntegerValue:
		return kind.IntegerValue
	case *qdrant.Value_DoubleValue:
		return kind.DoubleValue
	case *qdrant.Value_StringValue:
		return kind.StringValue
	case *qdrant.Value_ListValue:
		values := kind.ListValue.GetValues()
		out := make([]any, len(values))
		for i, item := range values {
			out[i] = valueToAny(item)
		}
		return out
	case *qdrant.Value_StructValue:
		return payloadToMap(kind.StructValue.GetFields())
	default:
		return nil
	}
}

// filterFromArg translates the tool-level conjunctive exact-match filter
// ({"must": [{"key": ..., "match": {"value": ...}}]}) into the store's
// filter grammar.
func filterFromArg(v any) (*qdrant.Filter, error) {
	filterMap, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("filter must be an object")
	}

	rawMust, ok := filterMap["must"]
	if !ok {
		return nil, nil
	}
	mustList, ok := rawMust.([]any)
	if !ok {
		return nil, fmt.Errorf("filter.must must be an array")
	}

	conditions := make([]*qdrant.Condition, 0, len(mustList))
	for i, rawCond := range mustList {
		cond, ok := rawCond.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("filter condition %d must be an object", i)
		}
		key, ok := cond["key"].(string)
		if !ok {
			return nil, fmt.Errorf("filter condition %d is missing a string key", i)
		}
		match, ok := cond["match"].(map[string]any)
		if !ok {
			return nil, fmt.Errorf("filter condition %d is missing a match object", i)
		}

		switch value := match["value"].(type) {
		case string:
			conditions = append(conditions, qdrant.NewMatch(key, value))
		case bool:
			conditions = append(conditions, qdrant.NewMatchBool(key, value))
		case float64:
			conditions = append(conditions, qdrant.NewMatchInt(key, int64(value)))
		default:
			return nil, fmt.Errorf("filter condition %d has an unsupported match value type %T", i, value)
		}
	}

	return &qdrant.Filter{Must: conditions}, nil
}
