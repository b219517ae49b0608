package tools

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStringArg(t *testing.T) {
	args := map[string]any{"name": "alice", "count": float64(3)}

	s, ok := StringArg(args, "name")
	require.True(t, ok)
	require.Equal(t, "alice", s)

	_, ok = StringArg(args, "missing")
	require.False(t, ok)

	_, ok = StringArg(args, "count")
	require.False(t, ok, "non-string value should not coerce")

	require.Equal(t, "fallback", StringArgOr(args, "missing", "fallback"))
	require.Equal(t, "fallback", StringArgOr(map[string]any{"name": ""}, "name", "fallback"))
}

func TestIntArg(t *testing.T) {
	// JSON numbers decode as float64
	args := map[string]any{"limit": float64(10), "bad": "ten"}

	n, ok := IntArg(args, "limit")
	require.True(t, ok)
	require.Equal(t, int64(10), n)

	_, ok = IntArg(args, "bad")
	require.False(t, ok)

	require.Equal(t, int64(5), IntArgOr(args, "missing", 5))
	require.Equal(t, int64(10), IntArgOr(args, "limit", 5))
}

func TestFloatArg(t *testing.T) {
	args := map[string]any{"threshold": 0.7, "whole": float64(2)}

	f, ok := FloatArg(args, "threshold")
	require.True(t, ok)
	require.InDelta(t, 0.7, f, 1e-9)

	f, ok = FloatArg(args, "whole")
	require.True(t, ok)
	require.Equal(t, 2.0, f)

	_, ok = FloatArg(args, "missing")
	require.False(t, ok)
}

func TestBoolArgOr(t *testing.T) {
	args := map[string]any{"wait": false, "bad": "yes"}

	require.False(t, BoolArgOr(args, "wait", true))
	require.True(t, BoolArgOr(args, "missing", true))
	require.True(t, BoolArgOr(args, "bad", true))
}

func TestMapArg(t *testing.T) {
	args := map[string]any{
		"properties": map[string]any{"name": "alice"},
		"bad":        "not a map",
	}

	m, ok := MapArg(args, "properties")
	require.True(t, ok)
	require.Equal(t, "alice", m["name"])

	// Absent object arguments default to an empty map
	m, ok = MapArg(args, "missing")
	require.True(t, ok)
	require.Empty(t, m)

	_, ok = MapArg(args, "bad")
	require.False(t, ok)
}

func TestStringListArg(t *testing.T) {
	args := map[string]any{
		"labels": []any{"Person", "Employee"},
		"typed":  []string{"Person"},
		"mixed":  []any{"Person", float64(1)},
	}

	ss, ok := StringListArg(args, "labels")
	require.True(t, ok)
	require.Equal(t, []string{"Person", "Employee"}, ss)

	ss, ok = StringListArg(args, "typed")
	require.True(t, ok)
	require.Equal(t, []string{"Person"}, ss)

	_, ok = StringListArg(args, "mixed")
	require.False(t, ok)

	_, ok = StringListArg(args, "missing")
	require.False(t, ok)
}

func TestToVector(t *testing.T) {
	v, ok := ToVector([]any{0.1, 0.2, 0.3})
	require.True(t, ok)
	require.Len(t, v, 3)
	require.InDelta(t, 0.2, v[1], 1e-6)

	v, ok = ToVector([]float64{1, 2})
	require.True(t, ok)
	require.Equal(t, []float32{1, 2}, v)

	v, ok = ToVector([]float32{1, 2})
	require.True(t, ok)
	require.Equal(t, []float32{1, 2}, v)

	_, ok = ToVector([]any{0.1, "x"})
	require.False(t, ok)

	_, ok = ToVector("nope")
	require.False(t, ok)
}

func TestFailureShapes(t *testing.T) {
	res := Failure(ErrTypeValidation, "bad value: %d", 7)
	require.Equal(t, false, res["success"])
	require.Equal(t, "bad value: 7", res["error"])
	require.Equal(t, ErrTypeValidation, res["error_type"])

	res = MissingParameter("collection_name")
	require.Equal(t, "Missing required parameter: collection_name", res["error"])
	require.Equal(t, ErrTypeValidation, res["error_type"])
}
