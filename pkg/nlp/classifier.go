package nlp

import (
	"context"

	"go.uber.org/zap"

	"github.com/BananaScripts/insights-engine/pkg/llm"
	"github.com/BananaScripts/insights-engine/pkg/models"
)

// ClassifierConfig holds the tunable ensemble constants. These are heuristic
// settings, not learned values.
type ClassifierConfig struct {
	// SemanticWeight is the share of the combined score taken by the
	// embedding similarity; the lexical similarity gets the remainder.
	SemanticWeight float64

	// ConfidenceThreshold is the combined score above which a match is
	// accepted outright.
	ConfidenceThreshold float64

	// FallbackThreshold is the combined score above which the semantic-only
	// match is accepted as a lower-confidence fallback.
	FallbackThreshold float64
}

// Classifier maps a normalized question to an intent and a confidence score
// by combining semantic and lexical similarity against the reference corpus.
// Stateless per call; safe for concurrent use once constructed.
type Classifier struct {
	corpus   *Corpus
	embedder llm.EmbeddingClient
	cfg      ClassifierConfig
	logger   *zap.Logger
}

// NewClassifier creates a classifier over an already-loaded corpus.
func NewClassifier(corpus *Corpus, embedder llm.EmbeddingClient, cfg ClassifierConfig, logger *zap.Logger) *Classifier {
	return &Classifier{
		corpus:   corpus,
		embedder: embedder,
		cfg:      cfg,
		logger:   logger.Named("classifier"),
	}
}

// Classify returns the best-matching intent for an already-normalized
// question plus the combined confidence score. Given an unchanged corpus the
// result is deterministic; similarity ties resolve to the first corpus index.
func (c *Classifier) Classify(ctx context.Context, normalized string) (models.Intent, float64) {
	if normalized == "" || c.corpus.Len() == 0 {
		return models.IntentUnknown, 0
	}

	lexIdx, lexScore := c.corpus.lexical.bestMatch(normalized)
	semIdx, semScore, semOK := c.semanticMatch(ctx, normalized)

	var combined float64
	if semOK {
		combined = c.cfg.SemanticWeight*semScore + (1-c.cfg.SemanticWeight)*lexScore
	} else {
		// Embedding path unavailable: score on the lexical side alone
		// rather than failing the question.
		combined = lexScore
		semIdx, semScore = lexIdx, lexScore
	}

	var matchIdx int
	switch {
	case combined > c.cfg.ConfidenceThreshold:
		// Confident: trust whichever representation matched harder.
		matchIdx = semIdx
		if lexScore > semScore {
			matchIdx = lexIdx
		}
	case combined > c.cfg.FallbackThreshold:
		// Middle band: the lexical match is too noisy here; take the
		// semantic match as a lower-confidence fallback.
		matchIdx = semIdx
	default:
		c.logger.Debug("similarity below fallback threshold",
			zap.Float64("combined", combined))
		return models.IntentUnknown, combined
	}

	if matchIdx < 0 || matchIdx >= c.corpus.Len() {
		return models.IntentUnknown, combined
	}

	entry := c.corpus.Entry(matchIdx)
	intent, ok := models.ParseIntent(entry.Label)
	if !ok {
		c.logger.Error("corpus label is not a valid intent",
			zap.String("label", entry.Label),
			zap.String("question", entry.Question))
		return models.IntentUnknown, combined
	}

	c.logger.Debug("intent classified",
		zap.String("intent", string(intent)),
		zap.Float64("combined", combined),
		zap.Float64("semantic", semScore),
		zap.Float64("lexical", lexScore))
	return intent, combined
}

// semanticMatch embeds the question and scans the corpus embeddings for the
// highest cosine similarity. The third return is false when the semantic path
// is unavailable (no corpus embeddings, or the embedding call failed).
func (c *Classifier) semanticMatch(ctx context.Context, normalized string) (int, float64, bool) {
	if c.embedder == nil || len(c.corpus.embeddings) == 0 {
		return -1, 0, false
	}

	vec, err := c.embedder.Embed(ctx, normalized)
	if err != nil {
		c.logger.Warn("question embedding failed, degrading to lexical similarity",
			zap.Error(err))
		return -1, 0, false
	}

	bestIdx, bestScore := 0, cosine32(vec, c.corpus.embeddings[0])
	for i := 1; i < len(c.corpus.embeddings); i++ {
		if score := cosine32(vec, c.corpus.embeddings[i]); score > bestScore {
			bestIdx, bestScore = i, score
		}
	}
	return bestIdx, bestScore, true
}
