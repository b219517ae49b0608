package embeddings

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// WordVectorEncoder embeds text by averaging pre-trained word vectors loaded
// from a GloVe-format text file ("word v1 v2 ... vN" per line). The file is
// provisioned at deploy time and loaded once at startup.
type WordVectorEncoder struct {
	name    string
	vectors map[string][]float32
	dim     int
	logger  *slog.Logger
}

// NewWordVectorEncoder loads word vectors from path. The dimension is taken
// from the first well-formed line; every later line must match it.
func NewWordVectorEncoder(name, path string, logger *slog.Logger) (*WordVectorEncoder, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open word vectors: %w", err)
	}
	defer file.Close()

	vectors := make(map[string][]float32)
	dim := 0

	scanner := bufio.NewScanner(file)
	// Long lines: 300d vectors exceed the default buffer
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	for scanner.Scan() {
		parts := strings.Fields(scanner.Text())
		if len(parts) < 2 {
			continue // skip malformed lines
		}

		word := parts[0]
		vec := make([]float32, len(parts)-1)
		ok := true
		for i, s := range parts[1:] {
			val, err := strconv.ParseFloat(s, 32)
			if err != nil {
				ok = false
				break
			}
			vec[i] = float32(val)
		}
		if !ok {
			continue
		}

		if dim == 0 {
			dim = len(vec)
		} else if len(vec) != dim {
			continue
		}

		vectors[word] = vec
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read word vectors: %w", err)
	}
	if dim == 0 {
		return nil, fmt.Errorf("no usable vectors in %s", path)
	}

	logger.Info("Word vectors loaded", "model", name, "vocabulary_size", len(vectors), "dimension", dim)

	return &WordVectorEncoder{
		name:    name,
		vectors: vectors,
		dim:     dim,
		logger:  logger,
	}, nil
}

// Encode averages the vectors of the known tokens in text. Text with no known
// tokens embeds as the zero vector.
func (e *WordVectorEncoder) Encode(text string) ([]float32, error) {
	embedding := make([]float32, e.dim)
	count := 0

	for _, word := range tokenize(text) {
		if vec, ok := e.vectors[word]; ok {
			for i := 0; i < e.dim; i++ {
				embedding[i] += vec[i]
			}
			count++
		}
	}

	if count > 0 {
		for i := range embedding {
			embedding[i] /= float32(count)
		}
	}

	return embedding, nil
}

// EncodeBatch encodes each text independently; batching carries no model
// state, so results are identical to single-item calls.
func (e *WordVectorEncoder) EncodeBatch(texts []string) ([][]float32, error) {
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

// Dimension returns the loaded vector dimension.
func (e *WordVectorEncoder) Dimension() int {
	return e.dim
}

// Name returns the configured model name.
func (e *WordVectorEncoder) Name() string {
	return e.name
}

// VocabularySize returns the number of loaded word vectors.
func (e *WordVectorEncoder) VocabularySize() int {
	return len(e.vectors)
}

// tokenize splits text into lowercase alphanumeric words.
func tokenize(text string) []string {
	text = strings.ToLower(text)
	return strings.FieldsFunc(text, func(r rune) bool {
		return !((r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'))
	})
}
