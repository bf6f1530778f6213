package tfidf

import (
	"errors"
	"math"
	"sort"
)

var (
	// ErrNoDocuments is returned when fitting zero documents.
	ErrNoDocuments = errors.New("no documents to vectorize")

	// ErrEmptyVocabulary is returned when every document is made only of
	// stop words or punctuation.
	ErrEmptyVocabulary = errors.New("empty vocabulary: documents contain only stop words")
)

// Vectorizer learns a vocabulary and IDF weights from a corpus.
type Vectorizer struct {
	stopWords map[string]struct{}
	vocab     map[string]int
	terms     []string
	idf       []float64
}

// NewVectorizer returns a Vectorizer excluding the given stop words. A nil
// set disables stop-word filtering.
func NewVectorizer(stopWords map[string]struct{}) *Vectorizer {
	return &Vectorizer{stopWords: stopWords}
}

// NewEnglishVectorizer returns a Vectorizer excluding English stop words.
func NewEnglishVectorizer() *Vectorizer {
	return NewVectorizer(EnglishStopWords())
}

func (v *Vectorizer) analyze(doc string) []string {
	tokens := Tokenize(doc)
	if v.stopWords == nil {
		return tokens
	}
	kept := tokens[:0]
	for _, t := range tokens {
		if _, stop := v.stopWords[t]; !stop {
			kept = append(kept, t)
		}
	}
	return kept
}

// FitTransform learns the vocabulary from docs and returns one normalized
// vector per document, in input order.
func (v *Vectorizer) FitTransform(docs []string) ([]Vector, error) {
	if len(docs) == 0 {
		return nil, ErrNoDocuments
	}

	analyzed := make([][]string, len(docs))
	df := map[string]int{}
	for i, doc := range docs {
		analyzed[i] = v.analyze(doc)
		seen := map[string]struct{}{}
		for _, t := range analyzed[i] {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			df[t]++
		}
	}
	if len(df) == 0 {
		return nil, ErrEmptyVocabulary
	}

	// Indices follow alphabetical order so vectors are reproducible.
	v.terms = make([]string, 0, len(df))
	for t := range df {
		v.terms = append(v.terms, t)
	}
	sort.Strings(v.terms)

	n := float64(len(docs))
	v.vocab = make(map[string]int, len(v.terms))
	v.idf = make([]float64, len(v.terms))
	for i, t := range v.terms {
		v.vocab[t] = i
		v.idf[i] = math.Log((1+n)/(1+float64(df[t]))) + 1
	}

	vectors := make([]Vector, len(docs))
	for i, tokens := range analyzed {
		vectors[i] = v.weigh(tokens)
	}
	return vectors, nil
}

// Transform vectorizes doc against the fitted vocabulary. Unknown terms are
// dropped.
func (v *Vectorizer) Transform(doc string) Vector {
	return v.weigh(v.analyze(doc))
}

func (v *Vectorizer) weigh(tokens []string) Vector {
	counts := map[int]float64{}
	for _, t := range tokens {
		if idx, ok := v.vocab[t]; ok {
			counts[idx]++
		}
	}
	if len(counts) == 0 {
		return nil
	}

	vec := make(Vector, 0, len(counts))
	for idx, tf := range counts {
		vec = append(vec, Term{Index: idx, Weight: tf * v.idf[idx]})
	}
	sort.Slice(vec, func(i, j int) bool { return vec[i].Index < vec[j].Index })

	norm := vec.Norm()
	for i := range vec {
		vec[i].Weight /= norm
	}
	return vec
}

// Vocabulary returns the fitted terms in index order.
func (v *Vectorizer) Vocabulary() []string {
	out := make([]string, len(v.terms))
	copy(out, v.terms)
	return out
}

// IDF returns the inverse document frequency of term.
func (v *Vectorizer) IDF(term string) (float64, bool) {
	idx, ok := v.vocab[term]
	if !ok {
		return 0, false
	}
	return v.idf[idx], true
}
