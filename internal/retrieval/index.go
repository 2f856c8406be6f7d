package retrieval

import (
	"math"
	"sort"

	"github.com/SatyajitKumarKhawas/Krishi-Ai/internal/domain"
)

// MetadataSimilarityKey is the metadata field carrying the per-query score.
const MetadataSimilarityKey = "similarity"

// Match pairs a corpus document with its similarity score for one query.
// The embedded document carries a copied metadata map, so annotating it
// never leaks into the shared corpus.
type Match struct {
	Document domain.Document
	Score    float64
}

// Index holds the corpus, its vocabulary, and precomputed document vectors.
// Construct it once during service startup; it is immutable afterwards.
type Index struct {
	docs    []domain.Document
	vocab   Vocabulary
	vectors [][]float64
}

// NewIndex builds the vocabulary and precomputes one term-frequency vector
// per document. An empty corpus produces a valid index that matches nothing.
func NewIndex(docs []domain.Document) *Index {
	vocab := BuildVocabulary(docs)
	vectors := make([][]float64, len(docs))
	for i, d := range docs {
		vectors[i] = Vectorize(d.Text, vocab)
	}
	return &Index{docs: docs, vocab: vocab, vectors: vectors}
}

// Size returns the number of documents in the corpus.
func (ix *Index) Size() int { return len(ix.docs) }

// VocabularySize returns the vector dimension.
func (ix *Index) VocabularySize() int { return len(ix.vocab) }

// Query vectorizes the text, scores it against every document, and returns
// the topK matches ordered by descending similarity. Ties break by ascending
// corpus index so identical inputs always produce identical orderings. When
// topK exceeds the corpus size all documents are returned ranked.
func (ix *Index) Query(text string, topK int) []Match {
	if topK <= 0 || len(ix.docs) == 0 {
		return nil
	}

	qv := Vectorize(text, ix.vocab)

	type scored struct {
		score float64
		idx   int
	}
	ranked := make([]scored, len(ix.vectors))
	for i, dv := range ix.vectors {
		ranked[i] = scored{score: cosine(qv, dv), idx: i}
	}
	sort.Slice(ranked, func(a, b int) bool {
		if ranked[a].score != ranked[b].score {
			return ranked[a].score > ranked[b].score
		}
		return ranked[a].idx < ranked[b].idx
	})

	if topK > len(ranked) {
		topK = len(ranked)
	}

	matches := make([]Match, 0, topK)
	for _, r := range ranked[:topK] {
		doc := ix.docs[r.idx]
		meta := doc.CloneMetadata()
		meta[MetadataSimilarityKey] = r.score
		doc.Metadata = meta
		matches = append(matches, Match{Document: doc, Score: r.score})
	}
	return matches
}

// cosine computes the cosine similarity of two equal-length vectors.
// A zero-norm vector on either side yields 0.0, never NaN.
func cosine(a, b []float64) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0.0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
