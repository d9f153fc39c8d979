package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"whitespace only", "   \t  ", ""},
		{"lowercases", "Qual O Faturamento", "qual o faturamento"},
		{"strips diacritics", "qual é o preço médio de açúcar?", "qual e o preco medio de acucar"},
		{"removes punctuation", "top 5 produtos!!! (em estoque)", "top 5 produtos em estoque"},
		{"keeps slashes for dates", "entre 01/02/2024 e 28/02/2024", "entre 01/02/2024 e 28/02/2024"},
		{"collapses whitespace", "faturamento   total \t de  hoje", "faturamento total de hoje"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		"Faturamento de SÃO PAULO!",
		"top 3 produtos em estoque",
		"entre 01/02/24 e 28/02/24",
		"çãõáéíóú",
	}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "normalize must be idempotent for %q", in)
	}
}

func TestStripDiacritics(t *testing.T) {
	assert.Equal(t, "Sao Paulo", StripDiacritics("São Paulo"))
	assert.Equal(t, "acucar", StripDiacritics("açúcar"))
	assert.Equal(t, "unchanged 123", StripDiacritics("unchanged 123"))
}
