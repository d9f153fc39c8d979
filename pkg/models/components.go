package models

import "time"

// DefaultTopN is the ranking size used when a question carries no number.
const DefaultTopN = 5

// FilterType identifies what kind of constraint a filter carries.
type FilterType string

const (
	FilterClient    FilterType = "client"
	FilterCity      FilterType = "city"
	FilterProduct   FilterType = "product"
	FilterDateRange FilterType = "date_range"
)

// DateRange is an inclusive calendar interval.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Filter is a single structured constraint extracted from the question.
// Column is the target attribute for entity filters; date-range filters leave
// it empty because the query template decides which date column applies.
type Filter struct {
	Type   FilterType
	Column string
	Value  string
	Range  *DateRange
}

// Modifiers are flag toggles that alter aggregation behavior.
type Modifiers struct {
	Distinct bool
}

// QueryComponents is the immutable result of resolving one question.
// Produced once per question and consumed exactly once by the query compiler.
type QueryComponents struct {
	Intent     Intent
	Filters    []Filter
	Modifiers  Modifiers
	NTop       int
	Confidence float64
}

// NewComponents returns components with defaults applied.
func NewComponents(intent Intent) QueryComponents {
	return QueryComponents{Intent: intent, NTop: DefaultTopN}
}

// ChatAnswer is what the pipeline hands back to the transport for one question.
type ChatAnswer struct {
	Lines      []string `json:"resposta"`
	Intent     Intent   `json:"intencao"`
	Confidence float64  `json:"confianca"`
}
