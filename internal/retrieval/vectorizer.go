package retrieval

// Vectorize converts text into a term-frequency vector over the vocabulary.
// The result always has length len(vocab); position i counts occurrences of
// the token whose index is i. Tokens absent from the vocabulary contribute
// nothing — the vocabulary is never extended at query time.
func Vectorize(text string, vocab Vocabulary) []float64 {
	vec := make([]float64, len(vocab))
	for _, tok := range tokenize(text) {
		idx, ok := vocab[tok]
		if !ok {
			continue
		}
		vec[idx]++
	}
	return vec
}
