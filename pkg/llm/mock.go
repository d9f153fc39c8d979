package llm

import "context"

// MockEmbeddingClient is a configurable mock for testing embedding consumers.
// Set the function fields to control behavior in tests.
type MockEmbeddingClient struct {
	// EmbedFunc is called when Embed is invoked.
	// If nil, returns nil slice and nil error.
	EmbedFunc func(ctx context.Context, input string) ([]float32, error)

	// EmbedBatchFunc is called when EmbedBatch is invoked.
	// If nil, returns nil slice and nil error.
	EmbedBatchFunc func(ctx context.Context, inputs []string) ([][]float32, error)

	// ModelName is returned by Model. Defaults to "mock-model".
	ModelName string

	// Call tracking for verification
	EmbedCalls      int
	EmbedBatchCalls int
}

// NewMockEmbeddingClient creates a new mock with sensible defaults.
func NewMockEmbeddingClient() *MockEmbeddingClient {
	return &MockEmbeddingClient{ModelName: "mock-model"}
}

// Embed implements EmbeddingClient.
func (m *MockEmbeddingClient) Embed(ctx context.Context, input string) ([]float32, error) {
	m.EmbedCalls++
	if m.EmbedFunc != nil {
		return m.EmbedFunc(ctx, input)
	}
	return nil, nil
}

// EmbedBatch implements EmbeddingClient.
func (m *MockEmbeddingClient) EmbedBatch(ctx context.Context, inputs []string) ([][]float32, error) {
	m.EmbedBatchCalls++
	if m.EmbedBatchFunc != nil {
		return m.EmbedBatchFunc(ctx, inputs)
	}
	return nil, nil
}

// Model implements EmbeddingClient.
func (m *MockEmbeddingClient) Model() string {
	if m.ModelName == "" {
		return "mock-model"
	}
	return m.ModelName
}

var _ EmbeddingClient = (*MockEmbeddingClient)(nil)
