package nlp

import (
	"math"
	"strings"
)

// tfidfSpace is a sparse lexical vector space over the normalized reference
// questions: raw term counts weighted by smoothed inverse document frequency,
// L2-normalized so cosine similarity reduces to a dot product. Built once at
// corpus load time and read-only afterwards.
type tfidfSpace struct {
	vocab map[string]int
	idf   []float64
	docs  []map[int]float64
}

func newTFIDFSpace(docs []string) *tfidfSpace {
	s := &tfidfSpace{vocab: make(map[string]int)}

	counts := make([]map[int]float64, len(docs))
	docFreq := make(map[int]int)
	for i, doc := range docs {
		counts[i] = make(map[int]float64)
		for _, term := range strings.Fields(doc) {
			id, ok := s.vocab[term]
			if !ok {
				id = len(s.vocab)
				s.vocab[term] = id
			}
			counts[i][id]++
		}
		for id := range counts[i] {
			docFreq[id]++
		}
	}

	// Smoothed IDF: ln((1+N)/(1+df)) + 1. Keeps corpus-wide terms nonzero.
	n := float64(len(docs))
	s.idf = make([]float64, len(s.vocab))
	for id := range s.idf {
		s.idf[id] = math.Log((1+n)/(1+float64(docFreq[id]))) + 1
	}

	s.docs = make([]map[int]float64, len(docs))
	for i, c := range counts {
		s.docs[i] = s.weigh(c)
	}
	return s
}

// vectorize maps a normalized question into the fitted space. Terms outside
// the corpus vocabulary are ignored.
func (s *tfidfSpace) vectorize(text string) map[int]float64 {
	counts := make(map[int]float64)
	for _, term := range strings.Fields(text) {
		if id, ok := s.vocab[term]; ok {
			counts[id]++
		}
	}
	return s.weigh(counts)
}

func (s *tfidfSpace) weigh(counts map[int]float64) map[int]float64 {
	vec := make(map[int]float64, len(counts))
	var norm float64
	for id, c := range counts {
		w := c * s.idf[id]
		vec[id] = w
		norm += w * w
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for id := range vec {
			vec[id] /= norm
		}
	}
	return vec
}

// bestMatch returns the index and cosine similarity of the most similar
// corpus question. Ties resolve to the first index. Returns (-1, 0) for a
// question with no known terms or an empty space.
func (s *tfidfSpace) bestMatch(text string) (int, float64) {
	q := s.vectorize(text)
	if len(q) == 0 || len(s.docs) == 0 {
		return -1, 0
	}

	bestIdx, bestScore := -1, 0.0
	for i, doc := range s.docs {
		var dot float64
		for id, w := range q {
			dot += w * doc[id]
		}
		if dot > bestScore {
			bestIdx, bestScore = i, dot
		}
	}
	if bestIdx == -1 {
		// All similarities were zero; ties resolve to the first entry.
		bestIdx = 0
	}
	return bestIdx, bestScore
}

// cosine32 is the dense counterpart used for the embedding vectors.
func cosine32(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
