package query

import (
	"fmt"
	"strings"

	"github.com/BananaScripts/insights-engine/pkg/models"
)

// Fixed user-facing lines. The caller never sees raw errors.
const (
	MsgUnknown        = "Desculpe, não entendi a sua pergunta. Poderia tentar reformular?"
	MsgOutOfScope     = "Não tenho informações sobre pedidos não faturados, cancelados ou devolvidos."
	MsgNotImplemented = "Entendi o que você pediu, mas ainda não sei como responder a isso."
	MsgTechnicalError = "Ocorreu um erro ao tentar processar sua solicitação."
)

// formatValue renders an aggregate per the template's declared kind, using
// pt-BR conventions: dot-grouped thousands and comma decimals.
func formatValue(kind ValueKind, v float64) string {
	switch kind {
	case KindInteger:
		return groupThousands(fmt.Sprintf("%.0f", v))
	case KindCurrency:
		return "R$ " + formatDecimal(v)
	default:
		return formatDecimal(v)
	}
}

func formatDecimal(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	parts := strings.SplitN(s, ".", 2)
	return groupThousands(parts[0]) + "," + parts[1]
}

func groupThousands(digits string) string {
	neg := strings.HasPrefix(digits, "-")
	if neg {
		digits = digits[1:]
	}
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

// filterPhrase builds the human clause for one filter.
func filterPhrase(f models.Filter) string {
	switch f.Type {
	case models.FilterClient:
		return "para o cliente " + f.Value
	case models.FilterCity:
		return "para a cidade " + f.Value
	case models.FilterProduct:
		return "para o produto " + f.Value
	case models.FilterDateRange:
		if f.Range == nil {
			return ""
		}
		return fmt.Sprintf("no período de %s a %s",
			f.Range.Start.Format("02/01/2006"), f.Range.End.Format("02/01/2006"))
	}
	return ""
}

// describeFilters joins every filter's human phrase, in extraction order.
func describeFilters(filters []models.Filter) string {
	var phrases []string
	for _, f := range filters {
		if p := filterPhrase(f); p != "" {
			phrases = append(phrases, p)
		}
	}
	return strings.Join(phrases, " e ")
}

// formatScalar renders a single-value answer as one sentence.
func formatScalar(tpl Template, comps models.QueryComponents, value float64) string {
	sentence := tpl.Description
	if clause := describeFilters(comps.Filters); clause != "" {
		sentence += " " + clause
	}
	return fmt.Sprintf("%s é %s.", sentence, formatValue(tpl.Kind, value))
}

// groupedRow is one (label, aggregate) pair of a ranking result.
type groupedRow struct {
	Label string
	Total float64
}

// formatGrouped renders a ranking: a header stating how many rows came back
// relative to the requested top-N, then one line per row in query order.
func formatGrouped(tpl Template, comps models.QueryComponents, rows []groupedRow) []string {
	var lines []string
	if len(rows) < comps.NTop {
		lines = append(lines, fmt.Sprintf("Encontrei %d dos %d solicitados para %s:",
			len(rows), comps.NTop, tpl.Description))
	} else {
		lines = append(lines, fmt.Sprintf("Os %d principais %s são:", comps.NTop, tpl.Description))
	}
	for _, row := range rows {
		lines = append(lines, fmt.Sprintf("- %s: %s", row.Label, formatValue(tpl.Kind, row.Total)))
	}
	return lines
}

// formatNoData renders the data-absence line, naming the filters when any
// were bound.
func formatNoData(filters []models.Filter) string {
	if clause := describeFilters(filters); clause != "" {
		return fmt.Sprintf("Não encontrei dados %s.", clause)
	}
	return "Não encontrei dados para a sua consulta."
}
