// Package query compiles resolved question components into parameterized
// aggregation queries, executes them against the relational store and renders
// the result into response lines.
package query

import (
	"fmt"

	"github.com/BananaScripts/insights-engine/pkg/apperrors"
	"github.com/BananaScripts/insights-engine/pkg/models"
)

// ValueKind selects how an aggregate value is rendered.
type ValueKind int

const (
	KindInteger ValueKind = iota
	KindCurrency
	KindDecimal
)

// Template is the static per-intent metadata that drives query compilation.
// GroupBy empty means a scalar aggregation; DateColumn empty means date-range
// filters are silently dropped for this intent.
type Template struct {
	Table           string
	AggFunc         string
	AggColumn       string
	GroupBy         string
	DateColumn      string
	DefaultDistinct bool
	Description     string
	Kind            ValueKind
}

// templates maps every business intent to its query shape. System intents
// (UNKNOWN, OUT_OF_SCOPE) deliberately have no entry.
var templates = map[models.Intent]Template{
	models.IntentTotalStockItems: {
		Table: "estoque", AggFunc: "SUM", AggColumn: "es_totalestoque",
		Description: "O total de itens em estoque", Kind: KindInteger,
	},
	models.IntentDistinctProductCount: {
		Table: "estoque", AggFunc: "COUNT", AggColumn: "sku", DefaultDistinct: true,
		Description: "O total de produtos distintos", Kind: KindInteger,
	},
	models.IntentTotalRevenue: {
		Table: "vendas", AggFunc: "SUM", AggColumn: "zs_faturamento", DateColumn: "zs_data",
		Description: "O faturamento total", Kind: KindCurrency,
	},
	models.IntentTopStockProducts: {
		Table: "estoque", AggFunc: "SUM", AggColumn: "es_totalestoque", GroupBy: "produto",
		Description: "produtos em estoque", Kind: KindInteger,
	},
	models.IntentTopSoldProducts: {
		Table: "vendas", AggFunc: "SUM", AggColumn: "giro_sku_cliente", GroupBy: "produto", DateColumn: "zs_data",
		Description: "produtos mais vendidos", Kind: KindInteger,
	},
	models.IntentTopCitiesByRevenue: {
		Table: "vendas", AggFunc: "SUM", AggColumn: "zs_faturamento", GroupBy: "zs_cidade", DateColumn: "zs_data",
		Description: "cidades por faturamento", Kind: KindCurrency,
	},
	models.IntentTopClientsByRevenue: {
		Table: "vendas", AggFunc: "SUM", AggColumn: "zs_faturamento", GroupBy: "cod_cliente", DateColumn: "zs_data",
		Description: "clientes por faturamento", Kind: KindCurrency,
	},
	models.IntentRevenueByCity: {
		Table: "vendas", AggFunc: "SUM", AggColumn: "zs_faturamento", DateColumn: "zs_data",
		Description: "O faturamento", Kind: KindCurrency,
	},
	models.IntentRevenueByProduct: {
		Table: "vendas", AggFunc: "SUM", AggColumn: "zs_faturamento", DateColumn: "zs_data",
		Description: "O faturamento", Kind: KindCurrency,
	},
	models.IntentRevenueByClient: {
		Table: "vendas", AggFunc: "SUM", AggColumn: "zs_faturamento", DateColumn: "zs_data",
		Description: "O faturamento", Kind: KindCurrency,
	},
	models.IntentDateFilteredRevenue: {
		Table: "vendas", AggFunc: "SUM", AggColumn: "zs_faturamento", DateColumn: "zs_data",
		Description: "O faturamento", Kind: KindCurrency,
	},
}

// TemplateFor returns the query template for an intent. A missing template
// for a business intent is a configuration gap; callers surface it as a
// "not yet supported" answer, never a crash.
func TemplateFor(intent models.Intent) (Template, bool) {
	t, ok := templates[intent]
	return t, ok
}

// ValidateTemplates verifies at startup that every business intent has a
// template and no system intent does. Adding an Intent variant without a
// template becomes a boot failure instead of a silent runtime fallback.
func ValidateTemplates() error {
	for _, intent := range models.BusinessIntents() {
		if _, ok := templates[intent]; !ok {
			return fmt.Errorf("%w: %s", apperrors.ErrNoTemplate, intent)
		}
	}
	for intent := range templates {
		if intent.IsSystem() {
			return fmt.Errorf("system intent %s must not have a query template", intent)
		}
	}
	return nil
}
