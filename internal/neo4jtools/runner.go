package neo4jtools

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// Runner executes a single Cypher statement and returns every result row as a
// map keyed by variable name. Tools depend on this interface so tests can
// substitute the store.
type Runner interface {
	Run(ctx context.Context, cypher string, params map[string]any) ([]map[string]any, error)
}

// SessionRunner runs statements over a shared Bolt driver, opening a session
// per call. The driver pools connections and is safe for concurrent use.
type SessionRunner struct {
	driver   neo4j.DriverWithContext
	database string
}

// NewSessionRunner wraps driver. database may be empty for the default.
func NewSessionRunner(driver neo4j.DriverWithContext, database string) *SessionRunner {
	return &SessionRunner{driver: driver, database: database}
}

// Run executes cypher with params and collects all rows. Graph entities in
// the results are converted to plain maps.
func (r *SessionRunner) Run(ctx context.Context, cypher string, params map[string]any) ([]map[string]any, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{DatabaseName: r.database})
	defer session.Close(ctx)

	result, err := session.Run(ctx, cypher, params)
	if err != nil {
		return nil, err
	}

	var rows []map[string]any
	for result.Next(ctx) {
		record := result.Record()
		row := make(map[string]any, len(record.Keys))
		for i, key := range record.Keys {
			row[key] = recordValue(record.Values[i])
		}
		rows = append(rows, row)
	}
	if err := result.Err(); err != nil {
		return nil, err
	}

	return rows, nil
}

// recordValue converts driver-specific values into JSON-friendly shapes.
func recordValue(v any) any {
	switch val := v.(type) {
	case neo4j.Node:
		return map[string]any{
			"id":         val.Id,
			"labels":     val.Labels,
			"properties": recordMap(val.Props),
		}
	case neo4j.Relationship:
		return map[string]any{
			"id":            val.Id,
			"type":          val.Type,
			"start_node_id": val.StartId,
			"end_node_id":   val.EndId,
			"properties":    recordMap(val.Props),
		}
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = recordValue(item)
		}
		return out
	case map[string]any:
		return recordMap(val)
	default:
		return v
	}
}

func recordMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = recordValue(v)
	}
	return out
}
