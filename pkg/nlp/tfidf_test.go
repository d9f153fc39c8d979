package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTFIDF_ExactMatchWins(t *testing.T) {
	space := newTFIDFSpace([]string{
		"qual o total de itens em estoque",
		"qual o faturamento total",
		"quais os produtos mais vendidos",
	})

	idx, score := space.bestMatch("qual o faturamento total")
	assert.Equal(t, 1, idx)
	assert.InDelta(t, 1.0, score, 1e-9)
}

func TestTFIDF_PartialOverlap(t *testing.T) {
	space := newTFIDFSpace([]string{
		"total de itens em estoque",
		"faturamento da cidade",
	})

	idx, score := space.bestMatch("itens em estoque hoje")
	assert.Equal(t, 0, idx)
	assert.Greater(t, score, 0.0)
	assert.Less(t, score, 1.0)
}

func TestTFIDF_UnknownTerms(t *testing.T) {
	space := newTFIDFSpace([]string{"faturamento total"})

	idx, score := space.bestMatch("previsao do tempo amanha")
	assert.Equal(t, -1, idx)
	assert.Zero(t, score)
}

func TestTFIDF_TieBreaksOnFirstIndex(t *testing.T) {
	// Two identical corpus questions: argmax must settle on the first.
	space := newTFIDFSpace([]string{
		"faturamento total",
		"faturamento total",
	})

	idx, score := space.bestMatch("faturamento total")
	assert.Equal(t, 0, idx)
	assert.InDelta(t, 1.0, score, 1e-9)
}

func TestCosine32(t *testing.T) {
	assert.InDelta(t, 1.0, cosine32([]float32{1, 0}, []float32{2, 0}), 1e-9)
	assert.InDelta(t, 0.0, cosine32([]float32{1, 0}, []float32{0, 3}), 1e-9)
	assert.Zero(t, cosine32([]float32{1, 0}, []float32{1}))
	assert.Zero(t, cosine32(nil, nil))
}
