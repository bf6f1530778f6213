// Package tfidf turns short documents into L2-normalized TF-IDF vectors.
//
// Tokens are lowercase runs of two or more letters, digits or underscores.
// IDF is smoothed: ln((1+n)/(1+df)) + 1, so a term present in every
// document still carries weight 1.
package tfidf

import "math"

// Term is a single term-weight pair in a sparse vector.
type Term struct {
	Index  int
	Weight float64
}

// Vector is a sparse vector, always sorted by Index for merge-join
// operations.
type Vector []Term

// Norm returns the Euclidean length of v.
func (v Vector) Norm() float64 {
	var sum float64
	for _, t := range v {
		sum += t.Weight * t.Weight
	}
	return math.Sqrt(sum)
}

// Dot returns the inner product of two sorted sparse vectors.
func Dot(a, b Vector) float64 {
	var dot float64
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i].Index == b[j].Index:
			dot += a[i].Weight * b[j].Weight
			i++
			j++
		case a[i].Index < b[j].Index:
			i++
		default:
			j++
		}
	}
	return dot
}

// CosineSimilarity returns the cosine of the angle between a and b, or 0
// when either vector is empty.
func CosineSimilarity(a, b Vector) float64 {
	denom := a.Norm() * b.Norm()
	if denom == 0 {
		return 0
	}
	return Dot(a, b) / denom
}
