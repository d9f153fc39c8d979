// Package llm provides access to an OpenAI-compatible sentence-embedding
// endpoint. The pipeline uses embeddings only; there is no generative path.
package llm

import "context"

// EmbeddingClient produces dense vectors for question text.
// Use this interface for dependency injection to enable mocking in tests.
type EmbeddingClient interface {
	// Embed generates an embedding vector for a single input.
	Embed(ctx context.Context, input string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple inputs in one call.
	// Used once at startup to embed the reference corpus.
	EmbedBatch(ctx context.Context, inputs []string) ([][]float32, error)

	// Model returns the configured model name.
	Model() string
}

// Ensure Client implements EmbeddingClient at compile time.
var _ EmbeddingClient = (*Client)(nil)
