package nlp

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/BananaScripts/insights-engine/pkg/llm"
)

// ReferenceEntry is one (question, intent label) pair from the reference
// dataset. The label stays a raw string here; it is resolved against the
// intent enumeration at classification time so a bad row degrades a single
// answer instead of poisoning the load.
type ReferenceEntry struct {
	Question   string
	Normalized string
	Label      string
}

// Corpus is the immutable reference set the classifier matches against,
// together with its two vector representations. Built once at startup and
// shared read-only across concurrent questions.
type Corpus struct {
	entries    []ReferenceEntry
	lexical    *tfidfSpace
	embeddings [][]float32
}

// LoadCorpus reads the reference CSV (columns "pergunta" and "intent"),
// drops incomplete rows, normalizes the retained questions and builds the
// TF-IDF space and the embedding matrix. An unreadable or empty dataset is
// not fatal: the corpus comes back empty and the classifier degrades to
// UNKNOWN. A failed embedding batch is logged and leaves the corpus
// lexical-only.
func LoadCorpus(ctx context.Context, path string, embedder llm.EmbeddingClient, logger *zap.Logger) *Corpus {
	entries, err := readReferenceCSV(path)
	if err != nil {
		logger.Error("failed to load reference corpus, classifier will return UNKNOWN",
			zap.String("path", path),
			zap.Error(err))
		return &Corpus{}
	}
	if len(entries) == 0 {
		logger.Warn("reference corpus has no usable rows", zap.String("path", path))
		return &Corpus{}
	}

	normalized := make([]string, len(entries))
	for i, e := range entries {
		normalized[i] = e.Normalized
	}

	c := &Corpus{
		entries: entries,
		lexical: newTFIDFSpace(normalized),
	}

	if embedder != nil {
		embeddings, err := embedder.EmbedBatch(ctx, normalized)
		if err != nil {
			logger.Error("failed to embed reference corpus, falling back to lexical matching",
				zap.String("model", embedder.Model()),
				zap.Error(err))
		} else {
			c.embeddings = embeddings
		}
	}

	logger.Info("reference corpus loaded",
		zap.String("path", path),
		zap.Int("entries", len(entries)),
		zap.Bool("embeddings", c.embeddings != nil))
	return c
}

// Len returns the number of reference entries.
func (c *Corpus) Len() int {
	return len(c.entries)
}

// Entry returns the reference entry at index i.
func (c *Corpus) Entry(i int) ReferenceEntry {
	return c.entries[i]
}

func readReferenceCSV(path string) ([]ReferenceEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open corpus: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read corpus header: %w", err)
	}
	questionCol, intentCol := -1, -1
	for i, name := range header {
		switch strings.TrimSpace(strings.ToLower(name)) {
		case "pergunta":
			questionCol = i
		case "intent":
			intentCol = i
		}
	}
	if questionCol == -1 || intentCol == -1 {
		return nil, fmt.Errorf("corpus header missing pergunta/intent columns: %v", header)
	}

	var entries []ReferenceEntry
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read corpus row: %w", err)
		}
		if questionCol >= len(record) || intentCol >= len(record) {
			continue
		}
		question := strings.TrimSpace(record[questionCol])
		label := strings.TrimSpace(record[intentCol])
		if question == "" || label == "" {
			continue
		}
		entries = append(entries, ReferenceEntry{
			Question:   question,
			Normalized: Normalize(question),
			Label:      label,
		})
	}
	return entries, nil
}
