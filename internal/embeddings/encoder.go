package embeddings

// Encoder is the opaque text-to-vector model behind the gateway. Exactly one
// encoder is active per process, so its dimension is fixed for the process
// lifetime.
type Encoder interface {
	// Encode computes the raw embedding for a single text.
	Encode(text string) ([]float32, error)

	// EncodeBatch computes raw embeddings for multiple texts, one vector per
	// input, in input order.
	EncodeBatch(texts []string) ([][]float32, error)

	// Dimension returns the fixed output dimension.
	Dimension() int

	// Name returns the model identity.
	Name() string
}
