package nlp

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BananaScripts/insights-engine/pkg/llm"
)

func writeCorpusFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "perguntas.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadCorpus_DropsIncompleteRows(t *testing.T) {
	path := writeCorpusFile(t, `pergunta,intent
Qual o faturamento total?,TOTAL_REVENUE
,TOTAL_REVENUE
Quantos itens em estoque?,
Quantos produtos distintos?,DISTINCT_PRODUCT_COUNT
`)

	c := LoadCorpus(context.Background(), path, nil, zap.NewNop())
	require.Equal(t, 2, c.Len())
	assert.Equal(t, "qual o faturamento total", c.Entry(0).Normalized)
	assert.Equal(t, "TOTAL_REVENUE", c.Entry(0).Label)
	assert.Equal(t, "DISTINCT_PRODUCT_COUNT", c.Entry(1).Label)
}

func TestLoadCorpus_MissingFileYieldsEmptyCorpus(t *testing.T) {
	c := LoadCorpus(context.Background(), "/nonexistent/perguntas.csv", nil, zap.NewNop())
	assert.Zero(t, c.Len())
}

func TestLoadCorpus_EmbedsNormalizedQuestions(t *testing.T) {
	path := writeCorpusFile(t, `pergunta,intent
Qual o faturamento total?,TOTAL_REVENUE
Top 5 cidades por faturamento,TOP_CITIES_BY_REVENUE
`)

	mock := llm.NewMockEmbeddingClient()
	var batched []string
	mock.EmbedBatchFunc = func(_ context.Context, inputs []string) ([][]float32, error) {
		batched = inputs
		vecs := make([][]float32, len(inputs))
		for i := range inputs {
			vecs[i] = []float32{float32(i), 1}
		}
		return vecs, nil
	}

	c := LoadCorpus(context.Background(), path, mock, zap.NewNop())
	require.Equal(t, 2, c.Len())
	assert.Equal(t, 1, mock.EmbedBatchCalls)
	assert.Equal(t, []string{"qual o faturamento total", "top 5 cidades por faturamento"}, batched)
	assert.Len(t, c.embeddings, 2)
}

func TestLoadCorpus_EmbeddingFailureDegradesToLexical(t *testing.T) {
	path := writeCorpusFile(t, `pergunta,intent
Qual o faturamento total?,TOTAL_REVENUE
`)

	mock := llm.NewMockEmbeddingClient()
	mock.EmbedBatchFunc = func(context.Context, []string) ([][]float32, error) {
		return nil, fmt.Errorf("endpoint unreachable")
	}

	c := LoadCorpus(context.Background(), path, mock, zap.NewNop())
	require.Equal(t, 1, c.Len())
	assert.Nil(t, c.embeddings)
	assert.NotNil(t, c.lexical)
}
