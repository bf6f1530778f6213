// Package similarity builds the dense pairwise cosine similarity matrix over
// a catalog and answers nearest-neighbor queries against it.
package similarity

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"runtime"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/papercomputeco/marquee/pkg/tfidf"
)

// ErrEmptyCatalog is returned when building an index over zero records.
var ErrEmptyCatalog = errors.New("cannot build similarity index over an empty catalog")

// Matrix is a dense, symmetric n×n similarity matrix. It is immutable once
// built.
type Matrix struct {
	n    int
	data []float64
}

// Neighbor is a catalog position and its similarity to the query record.
type Neighbor struct {
	Index int
	Score float64
}

// BuildFromDocuments vectorizes docs with English stop words excluded and
// builds the matrix.
func BuildFromDocuments(ctx context.Context, docs []string) (*Matrix, error) {
	if len(docs) == 0 {
		return nil, ErrEmptyCatalog
	}

	vectors, err := tfidf.NewEnglishVectorizer().FitTransform(docs)
	if err != nil {
		return nil, fmt.Errorf("vectorizing catalog: %w", err)
	}
	return Build(ctx, vectors)
}

// Build computes the cosine similarity of every pair of vectors. Rows are
// computed in parallel; the matrix is only returned once complete.
func Build(ctx context.Context, vectors []tfidf.Vector) (*Matrix, error) {
	n := len(vectors)
	if n == 0 {
		return nil, ErrEmptyCatalog
	}

	m := &Matrix{n: n, data: make([]float64, n*n)}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	// Row i owns cells (i, j) and (j, i) for j >= i, so no two rows write
	// the same cell.
	for i := range n {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			m.fillRow(vectors, i)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("building similarity matrix: %w", err)
	}
	return m, nil
}

func (m *Matrix) fillRow(vectors []tfidf.Vector, i int) {
	vi := vectors[i]
	if len(vi) > 0 {
		m.data[i*m.n+i] = 1
	}
	for j := i + 1; j < m.n; j++ {
		score := tfidf.CosineSimilarity(vi, vectors[j])
		// Rounding can push near-duplicates past the diagonal.
		score = min(score, 1)
		m.data[i*m.n+j] = score
		m.data[j*m.n+i] = score
	}
}

// Size returns n.
func (m *Matrix) Size() int {
	return m.n
}

// At returns the similarity between records i and j.
func (m *Matrix) At(i, j int) float64 {
	return m.data[i*m.n+j]
}

// Row returns a copy of row i.
func (m *Matrix) Row(i int) []float64 {
	row := make([]float64, m.n)
	copy(row, m.data[i*m.n:(i+1)*m.n])
	return row
}

// Nearest returns up to k records most similar to record i, highest score
// first, ties in catalog order. Record i itself is never included.
func (m *Matrix) Nearest(i, k int) []Neighbor {
	if k <= 0 || m.n <= 1 {
		return []Neighbor{}
	}

	row := m.data[i*m.n : (i+1)*m.n]
	neighbors := make([]Neighbor, 0, m.n-1)
	for j, score := range row {
		if j == i {
			continue
		}
		neighbors = append(neighbors, Neighbor{Index: j, Score: score})
	}

	slices.SortStableFunc(neighbors, func(a, b Neighbor) int {
		return cmp.Compare(b.Score, a.Score)
	})

	return neighbors[:min(k, len(neighbors))]
}
