// Package services wires the language pipeline together: a resolver that
// turns a raw question into query components, and a chat service that runs
// the full question-to-answer flow.
package services

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/BananaScripts/insights-engine/pkg/models"
	"github.com/BananaScripts/insights-engine/pkg/nlp"
)

// IntentClassifier scores a normalized question against the reference corpus.
type IntentClassifier interface {
	Classify(ctx context.Context, normalized string) (models.Intent, float64)
}

// EntityExtractor pulls filters, modifiers and the top-N limit from a raw
// question.
type EntityExtractor interface {
	Extract(question string) nlp.Extraction
}

// Resolver combines classification and extraction into final query
// components, applying the override ladder that reconciles the two when they
// disagree.
type Resolver struct {
	classifier IntentClassifier
	extractor  EntityExtractor
	logger     *zap.Logger
}

// NewResolver creates a resolver over the given classifier and extractor.
func NewResolver(classifier IntentClassifier, extractor EntityExtractor, logger *zap.Logger) *Resolver {
	return &Resolver{
		classifier: classifier,
		extractor:  extractor,
		logger:     logger.Named("resolver"),
	}
}

var rankingWords = []string{"top ", "mais ", "maiores ", "melhores "}

// Resolve turns one raw question into query components. It never fails: an
// unintelligible question resolves to UNKNOWN and the caller renders the
// fixed fallback answer.
func (r *Resolver) Resolve(ctx context.Context, question string) models.QueryComponents {
	normalized := nlp.Normalize(question)
	if normalized == "" {
		return models.NewComponents(models.IntentUnknown)
	}

	extraction := r.extractor.Extract(question)
	if extraction.OutOfScope {
		return models.NewComponents(models.IntentOutOfScope)
	}

	intent, confidence := r.classifier.Classify(ctx, normalized)
	intent = r.override(normalized, intent, extraction)

	comps := models.QueryComponents{
		Intent:     intent,
		Filters:    extraction.Filters,
		Modifiers:  extraction.Modifiers,
		NTop:       extraction.NTop,
		Confidence: confidence,
	}

	r.logger.Debug("question resolved",
		zap.String("intent", string(comps.Intent)),
		zap.Float64("confidence", comps.Confidence),
		zap.Int("filters", len(comps.Filters)))
	return comps
}

// override reconciles the statistical classification with the deterministic
// extraction. Rule evidence wins over similarity scores: a ranking keyword
// names its subject directly, and a concrete filter implies the filtered
// variant of a revenue question.
func (r *Resolver) override(normalized string, intent models.Intent, extraction nlp.Extraction) models.Intent {
	if hasRankingWord(normalized) {
		switch {
		case strings.Contains(normalized, "estoque"):
			return models.IntentTopStockProducts
		case strings.Contains(normalized, "produto"):
			return models.IntentTopSoldProducts
		case strings.Contains(normalized, "cliente"):
			return models.IntentTopClientsByRevenue
		case strings.Contains(normalized, "cidade"), strings.Contains(normalized, "regiao"):
			return models.IntentTopCitiesByRevenue
		}
	}

	if intent == models.IntentUnknown {
		if byFilter, ok := intentFromFilters(extraction.Filters); ok {
			return byFilter
		}
		return intent
	}

	// The date-only revenue intent holds when the date is the sole
	// constraint; with further filters the question is the general revenue
	// total and every filter still binds.
	if intent == models.IntentDateFilteredRevenue && len(extraction.Filters) > 1 {
		return models.IntentTotalRevenue
	}

	return intent
}

func hasRankingWord(normalized string) bool {
	padded := " " + normalized + " "
	for _, w := range rankingWords {
		if strings.Contains(padded, " "+w) {
			return true
		}
	}
	return false
}

// intentFromFilters maps the first entity filter to its revenue intent. Date
// ranges alone imply the date-filtered total.
func intentFromFilters(filters []models.Filter) (models.Intent, bool) {
	for _, f := range filters {
		switch f.Type {
		case models.FilterCity:
			return models.IntentRevenueByCity, true
		case models.FilterProduct:
			return models.IntentRevenueByProduct, true
		case models.FilterClient:
			return models.IntentRevenueByClient, true
		}
	}
	for _, f := range filters {
		if f.Type == models.FilterDateRange {
			return models.IntentDateFilteredRevenue, true
		}
	}
	return models.IntentUnknown, false
}
