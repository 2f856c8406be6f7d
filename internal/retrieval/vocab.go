// Package retrieval implements the in-process document retriever: a
// bag-of-words vectorizer over a fixed vocabulary with cosine-similarity
// ranking. The index is built once at startup and is read-only afterwards,
// so it is safe to share across concurrent requests without locking.
package retrieval

import (
	"strings"

	"github.com/SatyajitKumarKhawas/Krishi-Ai/internal/domain"
)

// Vocabulary maps each distinct corpus token to a dense vector index.
// Every index in [0, len(vocabulary)) belongs to exactly one token.
type Vocabulary map[string]int

// tokenize lowercases the text and splits it on whitespace runs.
// No stemming, no punctuation stripping, no stopword removal — the corpus
// and queries must agree on this exact rule for vectors to align.
func tokenize(text string) []string {
	return strings.Fields(strings.ToLower(text))
}

// BuildVocabulary assigns indices to every distinct token across the corpus
// in first-seen order. Deterministic: the same corpus in the same order
// always yields the same assignment. An empty corpus yields an empty
// vocabulary.
func BuildVocabulary(docs []domain.Document) Vocabulary {
	vocab := make(Vocabulary)
	for _, d := range docs {
		for _, tok := range tokenize(d.Text) {
			if _, ok := vocab[tok]; !ok {
				vocab[tok] = len(vocab)
			}
		}
	}
	return vocab
}
