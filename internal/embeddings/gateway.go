package embeddings

import (
	"fmt"
	"log/slog"
	"math"
)

// DefaultBatchSize is used when a batch caller does not specify one.
const DefaultBatchSize = 32

// Gateway wraps the single process-wide embedding model. Batching is a
// performance knob only: batched and single-item calls are numerically
// identical for a fixed model and normalization flag.
type Gateway struct {
	enc       Encoder
	normalize bool
	logger    *slog.Logger
}

// NewGateway creates a gateway over enc. When normalize is set, every
// returned vector is scaled to unit Euclidean norm; zero vectors are left
// unchanged.
func NewGateway(enc Encoder, normalize bool, logger *slog.Logger) *Gateway {
	return &Gateway{
		enc:       enc,
		normalize: normalize,
		logger:    logger,
	}
}

// Embed computes the embedding for a single text. A model fault fails the
// whole call; there are no retries.
func (g *Gateway) Embed(text string) ([]float32, error) {
	vec, err := g.enc.Encode(text)
	if err != nil {
		return nil, fmt.Errorf("embedding model failure: %w", err)
	}
	if g.normalize {
		normalizeVector(vec)
	}
	return vec, nil
}

// EmbedBatch computes one embedding per input text, preserving input order.
// Inputs are chunked into batches of batchSize (DefaultBatchSize when <= 0).
func (g *Gateway) EmbedBatch(texts []string, batchSize int) ([][]float32, error) {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	out := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += batchSize {
		end := start + batchSize
		if end > len(texts) {
			end = len(texts)
		}

		vecs, err := g.enc.EncodeBatch(texts[start:end])
		if err != nil {
			return nil, fmt.Errorf("embedding model failure: %w", err)
		}
		if len(vecs) != end-start {
			return nil, fmt.Errorf("embedding model returned %d vectors for %d texts", len(vecs), end-start)
		}

		if g.normalize {
			for _, vec := range vecs {
				normalizeVector(vec)
			}
		}
		out = append(out, vecs...)
	}

	return out, nil
}

// Dimension returns the model's fixed output dimension.
func (g *Gateway) Dimension() int {
	return g.enc.Dimension()
}

// ModelName returns the model identity.
func (g *Gateway) ModelName() string {
	return g.enc.Name()
}

// Normalized reports whether vectors are scaled to unit norm.
func (g *Gateway) Normalized() bool {
	return g.normalize
}

// normalizeVector scales vec to unit Euclidean norm in place. A zero vector
// stays zero.
func normalizeVector(vec []float32) {
	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	norm := math.Sqrt(sum)
	if norm == 0 {
		return
	}
	for i := range vec {
		vec[i] = float32(float64(vec[i]) / norm)
	}
}
