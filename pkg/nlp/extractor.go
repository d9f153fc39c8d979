package nlp

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/BananaScripts/insights-engine/pkg/models"
)

// Extraction is everything the rule engine pulled out of one question.
type Extraction struct {
	// OutOfScope short-circuits the whole pipeline when set: the question is
	// about unbilled/cancelled/returned orders, which the system refuses to
	// answer, and no other component is populated.
	OutOfScope bool
	Filters    []models.Filter
	Modifiers  models.Modifiers
	NTop       int
}

var (
	outOfScopePattern = regexp.MustCompile(`nao faturado|cancelado|devolvido`)
	distinctPattern   = regexp.MustCompile(`distintos|diferentes|unicos`)
	firstInteger      = regexp.MustCompile(`\d+`)
	digitsOnly        = regexp.MustCompile(`^\d+$`)
	betweenPattern    = regexp.MustCompile(`entre (\d{1,2}/\d{1,2}/\d{2,4}) e (\d{1,2}/\d{1,2}/\d{2,4})`)
	todayPattern      = regexp.MustCompile(`\bhoje\b`)
	yesterdayPattern  = regexp.MustCompile(`\bontem\b`)
)

// entityRules are evaluated in priority order: client > city > product.
// A value captured by a later rule that overlaps an earlier capture is
// discarded, so "do cliente X" never also yields a product filter on X.
type entityRule struct {
	ftype   models.FilterType
	column  string
	pattern *regexp.Regexp
}

var entityRules = []entityRule{
	{models.FilterClient, "cod_cliente", regexp.MustCompile(`do cliente (.+?)(?: e |$)`)},
	{models.FilterCity, "zs_cidade", regexp.MustCompile(`da cidade de (.+?)(?: e |$)`)},
	{models.FilterProduct, "produto", regexp.MustCompile(`do produto (.+?)(?: e |$)`)},
}

// stopWords are generic domain nouns that must never be captured as an
// entity value; "o faturamento do produto mais vendido" mentions no concrete
// product.
var stopWords = map[string]struct{}{
	"estoque": {}, "estoques": {},
	"produto": {}, "produtos": {},
	"cliente": {}, "clientes": {},
	"cidade": {}, "cidades": {},
	"faturamento": {}, "venda": {}, "vendas": {},
	"total": {}, "itens": {}, "item": {},
	"mais": {}, "vendido": {}, "vendidos": {},
}

// Extractor pulls structured filters, modifiers and the top-N limit out of a
// raw question via ordered pattern matching. It never fails: absence of a
// match simply yields no filter of that type.
type Extractor struct {
	now func() time.Time
}

// NewExtractor creates an extractor using the wall clock for relative dates.
func NewExtractor() *Extractor {
	return &Extractor{now: time.Now}
}

// NewExtractorAt creates an extractor with a fixed clock. Used by tests to
// pin "ontem"/"semana passada" computations.
func NewExtractorAt(now func() time.Time) *Extractor {
	return &Extractor{now: now}
}

// Extract runs the rule ladder over the question. The text is normalized
// internally; callers pass the raw question.
func (e *Extractor) Extract(question string) Extraction {
	norm := Normalize(question)
	out := Extraction{NTop: models.DefaultTopN}
	if norm == "" {
		return out
	}

	if outOfScopePattern.MatchString(norm) {
		out.OutOfScope = true
		return out
	}

	if distinctPattern.MatchString(norm) {
		out.Modifiers.Distinct = true
	}

	if dr := e.extractDateRange(norm); dr != nil {
		out.Filters = append(out.Filters, models.Filter{
			Type:  models.FilterDateRange,
			Range: dr,
		})
	}

	for _, rule := range entityRules {
		m := rule.pattern.FindStringSubmatch(norm)
		if m == nil {
			continue
		}
		value := strings.TrimSpace(m[1])
		if value == "" || hitsStopWord(value) || overlapsExisting(out.Filters, value) {
			continue
		}
		if rule.ftype == models.FilterClient && digitsOnly.MatchString(value) {
			// Client codes are stored zero-padded to five digits.
			for len(value) < 5 {
				value = "0" + value
			}
		}
		out.Filters = append(out.Filters, models.Filter{
			Type:   rule.ftype,
			Column: rule.column,
			Value:  value,
		})
	}

	if m := firstInteger.FindString(norm); m != "" {
		if n, err := strconv.Atoi(m); err == nil && n > 0 {
			out.NTop = n
		}
	}

	return out
}

func hitsStopWord(value string) bool {
	for _, word := range strings.Fields(value) {
		if _, ok := stopWords[word]; ok {
			return true
		}
	}
	return false
}

// overlapsExisting rejects a candidate that duplicates a value an earlier,
// higher-priority rule already claimed, in either containment direction.
func overlapsExisting(filters []models.Filter, value string) bool {
	for _, f := range filters {
		if f.Value == "" {
			continue
		}
		if strings.Contains(f.Value, value) || strings.Contains(value, f.Value) {
			return true
		}
	}
	return false
}

func (e *Extractor) extractDateRange(norm string) *models.DateRange {
	today := dateOnly(e.now())

	switch {
	case todayPattern.MatchString(norm):
		return &models.DateRange{Start: today, End: today}
	case yesterdayPattern.MatchString(norm):
		y := today.AddDate(0, 0, -1)
		return &models.DateRange{Start: y, End: y}
	case strings.Contains(norm, "semana passada"):
		// The Monday-to-Sunday week before the current one.
		wd := int(today.Weekday())
		if wd == 0 {
			wd = 7
		}
		start := today.AddDate(0, 0, -(wd-1)-7)
		return &models.DateRange{Start: start, End: start.AddDate(0, 0, 6)}
	case strings.Contains(norm, "mes passado"):
		firstOfMonth := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
		end := firstOfMonth.AddDate(0, 0, -1)
		start := time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, end.Location())
		return &models.DateRange{Start: start, End: end}
	}

	if m := betweenPattern.FindStringSubmatch(norm); m != nil {
		start, ok1 := parseDayMonthYear(m[1])
		end, ok2 := parseDayMonthYear(m[2])
		if ok1 && ok2 && !end.Before(start) {
			return &models.DateRange{Start: start, End: end}
		}
	}
	return nil
}

// parseDayMonthYear accepts dd/mm with either a four- or two-digit year.
func parseDayMonthYear(s string) (time.Time, bool) {
	for _, layout := range []string{"2/1/2006", "2/1/06"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
