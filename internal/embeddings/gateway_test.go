package embeddings

import (
	"fmt"
	"log/slog"
	"math"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// stubEncoder is a deterministic Encoder for gateway tests.
type stubEncoder struct {
	dim         int
	encodeFunc  func(text string) ([]float32, error)
	batchCalls  [][]string
	encodeCalls int
}

func (e *stubEncoder) Encode(text string) ([]float32, error) {
	e.encodeCalls++
	if e.encodeFunc != nil {
		return e.encodeFunc(text)
	}
	// A vector whose components encode the text length, so distinct
	// inputs produce distinct vectors.
	vec := make([]float32, e.dim)
	for i := range vec {
		vec[i] = float32(len(text) + i)
	}
	return vec, nil
}

func (e *stubEncoder) EncodeBatch(texts []string) ([][]float32, error) {
	e.batchCalls = append(e.batchCalls, texts)
	out := make([][]float32, len(texts))
	for i, text := range texts {
		vec, err := e.Encode(text)
		if err != nil {
			return nil, err
		}
		out[i] = vec
	}
	return out, nil
}

func (e *stubEncoder) Dimension() int { return e.dim }
func (e *stubEncoder) Name() string   { return "stub-model" }

// GatewayTestSuite is the test suite for Gateway.
type GatewayTestSuite struct {
	suite.Suite
	logger *slog.Logger
}

// SetupTest runs before each test
func (s *GatewayTestSuite) SetupTest() {
	s.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
}

// TestEmbed tests single-text embedding
func (s *GatewayTestSuite) TestEmbed() {
	gw := NewGateway(&stubEncoder{dim: 4}, false, s.logger)

	vec, err := gw.Embed("hello")
	require.NoError(s.T(), err)
	require.Len(s.T(), vec, 4)
	require.Equal(s.T(), float32(5), vec[0])
}

// TestEmbed_MatchesBatch tests that a single call and a batch of one agree
func (s *GatewayTestSuite) TestEmbed_MatchesBatch() {
	gw := NewGateway(&stubEncoder{dim: 4}, true, s.logger)

	single, err := gw.Embed("same text")
	require.NoError(s.T(), err)

	batch, err := gw.EmbedBatch([]string{"same text"}, 0)
	require.NoError(s.T(), err)
	require.Len(s.T(), batch, 1)
	require.Equal(s.T(), single, batch[0])
}

// TestEmbed_Normalized tests unit-norm scaling
func (s *GatewayTestSuite) TestEmbed_Normalized() {
	gw := NewGateway(&stubEncoder{dim: 8}, true, s.logger)

	vec, err := gw.Embed("normalize me")
	require.NoError(s.T(), err)

	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	norm = math.Sqrt(norm)
	require.InDelta(s.T(), 1.0, norm, 0.01, "Normalized embedding should have unit norm")
}

// TestEmbed_ZeroVectorStaysZero tests that normalization leaves a zero vector alone
func (s *GatewayTestSuite) TestEmbed_ZeroVectorStaysZero() {
	enc := &stubEncoder{
		dim: 3,
		encodeFunc: func(text string) ([]float32, error) {
			return make([]float32, 3), nil
		},
	}
	gw := NewGateway(enc, true, s.logger)

	vec, err := gw.Embed("out of vocabulary")
	require.NoError(s.T(), err)
	require.Equal(s.T(), []float32{0, 0, 0}, vec)
}

// TestEmbed_ModelFailure tests error wrapping on model fault
func (s *GatewayTestSuite) TestEmbed_ModelFailure() {
	enc := &stubEncoder{
		dim: 3,
		encodeFunc: func(text string) ([]float32, error) {
			return nil, fmt.Errorf("model not loaded")
		},
	}
	gw := NewGateway(enc, false, s.logger)

	_, err := gw.Embed("anything")
	require.Error(s.T(), err)
	require.Contains(s.T(), err.Error(), "embedding model failure")
	require.Contains(s.T(), err.Error(), "model not loaded")
}

// TestEmbedBatch_Chunking tests that inputs are chunked and order preserved
func (s *GatewayTestSuite) TestEmbedBatch_Chunking() {
	enc := &stubEncoder{dim: 2}
	gw := NewGateway(enc, false, s.logger)

	texts := []string{"a", "bb", "ccc", "dddd", "eeeee"}
	vecs, err := gw.EmbedBatch(texts, 2)
	require.NoError(s.T(), err)
	require.Len(s.T(), vecs, 5)

	// Chunks of 2, 2, 1
	require.Len(s.T(), enc.batchCalls, 3)
	require.Equal(s.T(), []string{"a", "bb"}, enc.batchCalls[0])
	require.Equal(s.T(), []string{"eeeee"}, enc.batchCalls[2])

	// Order preserved across chunk boundaries
	for i, text := range texts {
		require.Equal(s.T(), float32(len(text)), vecs[i][0])
	}
}

// TestEmbedBatch_Empty tests an empty batch
func (s *GatewayTestSuite) TestEmbedBatch_Empty() {
	gw := NewGateway(&stubEncoder{dim: 2}, false, s.logger)

	vecs, err := gw.EmbedBatch(nil, 0)
	require.NoError(s.T(), err)
	require.Empty(s.T(), vecs)
}

// TestMetadata tests dimension, name and normalization reporting
func (s *GatewayTestSuite) TestMetadata() {
	gw := NewGateway(&stubEncoder{dim: 16}, true, s.logger)

	require.Equal(s.T(), 16, gw.Dimension())
	require.Equal(s.T(), "stub-model", gw.ModelName())
	require.True(s.T(), gw.Normalized())
}

// TestGatewayTestSuite runs the test suite
func TestGatewayTestSuite(t *testing.T) {
	suite.Run(t, new(GatewayTestSuite))
}
