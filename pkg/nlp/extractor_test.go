package nlp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BananaScripts/insights-engine/pkg/models"
)

// Tuesday, 2026-09-01.
func fixedClock() time.Time {
	return time.Date(2026, time.September, 1, 15, 4, 5, 0, time.UTC)
}

func newTestExtractor() *Extractor {
	return NewExtractorAt(fixedClock)
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestExtract_EmptyQuestion(t *testing.T) {
	out := newTestExtractor().Extract("   ")
	assert.False(t, out.OutOfScope)
	assert.Empty(t, out.Filters)
	assert.False(t, out.Modifiers.Distinct)
	assert.Equal(t, models.DefaultTopN, out.NTop)
}

func TestExtract_OutOfScopeShortCircuits(t *testing.T) {
	for _, q := range []string{
		"Quantos pedidos não faturados temos?",
		"Qual o total de itens cancelados do cliente 123?",
		"Produtos devolvidos da cidade de Recife",
	} {
		out := newTestExtractor().Extract(q)
		assert.True(t, out.OutOfScope, "question %q must be out of scope", q)
		assert.Empty(t, out.Filters, "out-of-scope questions must extract nothing")
	}
}

func TestExtract_DistinctModifier(t *testing.T) {
	out := newTestExtractor().Extract("Quantos produtos distintos estão registrados?")
	assert.True(t, out.Modifiers.Distinct)

	out = newTestExtractor().Extract("Quantos produtos estão registrados?")
	assert.False(t, out.Modifiers.Distinct)
}

func TestExtract_DateRanges(t *testing.T) {
	tests := []struct {
		name       string
		question   string
		wantStart  time.Time
		wantEnd    time.Time
	}{
		{"today", "faturamento de hoje", day(2026, 9, 1), day(2026, 9, 1)},
		{"yesterday", "faturamento de ontem", day(2026, 8, 31), day(2026, 8, 31)},
		// The week before the current Mon-Sun week: Aug 24 to Aug 30.
		{"last week", "faturamento da semana passada", day(2026, 8, 24), day(2026, 8, 30)},
		{"last month", "faturamento do mês passado", day(2026, 8, 1), day(2026, 8, 31)},
		{"explicit range", "faturamento entre 01/02/2026 e 28/02/2026", day(2026, 2, 1), day(2026, 2, 28)},
		{"two digit years", "faturamento entre 1/2/26 e 28/2/26", day(2026, 2, 1), day(2026, 2, 28)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := newTestExtractor().Extract(tt.question)
			require.Len(t, out.Filters, 1)
			f := out.Filters[0]
			require.Equal(t, models.FilterDateRange, f.Type)
			require.NotNil(t, f.Range)
			assert.Equal(t, tt.wantStart, f.Range.Start)
			assert.Equal(t, tt.wantEnd, f.Range.End)
		})
	}
}

func TestExtract_InvertedExplicitRangeIgnored(t *testing.T) {
	out := newTestExtractor().Extract("faturamento entre 28/02/2026 e 01/02/2026")
	assert.Empty(t, out.Filters)
}

func TestExtract_EntityFilters(t *testing.T) {
	out := newTestExtractor().Extract("Qual o faturamento do cliente 123 e da cidade de Recife?")
	require.Len(t, out.Filters, 2)

	assert.Equal(t, models.FilterClient, out.Filters[0].Type)
	assert.Equal(t, "cod_cliente", out.Filters[0].Column)
	assert.Equal(t, "00123", out.Filters[0].Value, "numeric client codes are padded to five digits")

	assert.Equal(t, models.FilterCity, out.Filters[1].Type)
	assert.Equal(t, "zs_cidade", out.Filters[1].Column)
	assert.Equal(t, "recife", out.Filters[1].Value)
}

func TestExtract_ProductFilter(t *testing.T) {
	out := newTestExtractor().Extract("Qual o faturamento do produto arroz integral?")
	require.Len(t, out.Filters, 1)
	assert.Equal(t, models.FilterProduct, out.Filters[0].Type)
	assert.Equal(t, "produto", out.Filters[0].Column)
	assert.Equal(t, "arroz integral", out.Filters[0].Value)
}

func TestExtract_StopWordsRejectGenericPhrasing(t *testing.T) {
	// "do produto mais vendido" names no concrete product.
	out := newTestExtractor().Extract("Qual o faturamento do produto mais vendido?")
	assert.Empty(t, out.Filters)
}

func TestExtract_RedundancyGuard(t *testing.T) {
	// The client rule claims "123" first; the product rule must not produce
	// a duplicate filter on the same token.
	out := newTestExtractor().Extract("Vendas do cliente 123 e do produto 123")
	require.Len(t, out.Filters, 1)
	assert.Equal(t, models.FilterClient, out.Filters[0].Type)
}

func TestExtract_TopN(t *testing.T) {
	out := newTestExtractor().Extract("Top 3 produtos em estoque")
	assert.Equal(t, 3, out.NTop)

	out = newTestExtractor().Extract("Quais os produtos mais vendidos?")
	assert.Equal(t, models.DefaultTopN, out.NTop)
}
