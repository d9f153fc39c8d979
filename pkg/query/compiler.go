package query

import (
	"fmt"
	"regexp"
	"strings"

	libinjection "github.com/corazawaf/libinjection-go"

	"github.com/BananaScripts/insights-engine/pkg/apperrors"
	"github.com/BananaScripts/insights-engine/pkg/models"
)

// CompiledQuery is a parameterized SELECT ready for execution.
type CompiledQuery struct {
	SQL     string
	Args    []any
	Grouped bool
}

var numericValue = regexp.MustCompile(`^\d+$`)

// Compile builds the parameterized query for one set of components against
// its template. Every string filter value is screened with libinjection
// before it is bound; a hit aborts compilation.
func Compile(tpl Template, comps models.QueryComponents) (*CompiledQuery, error) {
	if err := screenFilters(comps.Filters); err != nil {
		return nil, err
	}

	var (
		clauses []string
		args    []any
	)
	bind := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	for _, f := range comps.Filters {
		if f.Type == models.FilterDateRange {
			// Intents without a date column ignore date filters.
			if tpl.DateColumn == "" || f.Range == nil {
				continue
			}
			start := bind(f.Range.Start.Format("2006-01-02"))
			end := bind(f.Range.End.Format("2006-01-02"))
			clauses = append(clauses, fmt.Sprintf("%s BETWEEN %s AND %s", tpl.DateColumn, start, end))
			continue
		}

		if numericValue.MatchString(f.Value) {
			clauses = append(clauses, fmt.Sprintf("%s = %s", f.Column, bind(f.Value)))
		} else {
			clauses = append(clauses, fmt.Sprintf("%s ILIKE %s", f.Column, bind("%"+f.Value+"%")))
		}
	}

	whereSQL := ""
	if len(clauses) > 0 {
		whereSQL = " WHERE " + strings.Join(clauses, " AND ")
	}

	aggExpr := tpl.AggColumn
	if comps.Modifiers.Distinct || tpl.DefaultDistinct {
		aggExpr = "DISTINCT " + tpl.AggColumn
	}

	// A filter that already pins the group column turns the ranking into a
	// scalar question ("top cities" about one named city is just a sum).
	grouped := tpl.GroupBy != ""
	for _, f := range comps.Filters {
		if f.Column == tpl.GroupBy && tpl.GroupBy != "" {
			grouped = false
		}
	}

	if grouped {
		limit := bind(comps.NTop)
		sql := fmt.Sprintf(
			"SELECT %s, %s(%s) AS total FROM %s%s GROUP BY %s ORDER BY total DESC LIMIT %s",
			tpl.GroupBy, tpl.AggFunc, aggExpr, tpl.Table, whereSQL, tpl.GroupBy, limit)
		return &CompiledQuery{SQL: sql, Args: args, Grouped: true}, nil
	}

	sql := fmt.Sprintf("SELECT %s(%s) FROM %s%s", tpl.AggFunc, aggExpr, tpl.Table, whereSQL)
	return &CompiledQuery{SQL: sql, Args: args}, nil
}

// screenFilters rejects filter values carrying SQL injection patterns.
// Rule-extracted free text never reaches a query unchecked, even though
// values are only ever bound as parameters.
func screenFilters(filters []models.Filter) error {
	for _, f := range filters {
		if f.Type == models.FilterDateRange || f.Value == "" {
			continue
		}
		if isSQLi, fingerprint := libinjection.IsSQLi(f.Value); isSQLi {
			return fmt.Errorf("%w: column %s, fingerprint %s",
				apperrors.ErrSuspiciousFilter, f.Column, fingerprint)
		}
	}
	return nil
}

// StripFilterAccents returns a copy of the components with diacritics
// removed from every non-numeric entity filter value, for the single
// accent-insensitive retry. The second return reports whether any value
// actually qualified.
func StripFilterAccents(comps models.QueryComponents, strip func(string) string) (models.QueryComponents, bool) {
	qualified := false
	filters := make([]models.Filter, len(comps.Filters))
	copy(filters, comps.Filters)
	for i, f := range filters {
		if f.Type == models.FilterDateRange || numericValue.MatchString(f.Value) {
			continue
		}
		filters[i].Value = strip(f.Value)
		qualified = true
	}
	comps.Filters = filters
	return comps, qualified
}
