// Package recommend serves content-based movie recommendations.
//
// A Recommender owns an immutable catalog and the similarity index derived
// from it. The index is built at most once, on first use or through Warm,
// and shared read-only by every query afterwards.
package recommend

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/papercomputeco/marquee/pkg/catalog"
	"github.com/papercomputeco/marquee/pkg/similarity"
)

// DefaultTopN is the number of recommendations returned when the caller
// does not choose.
const DefaultTopN = 6

// Builder builds a similarity matrix from catalog documents.
type Builder func(ctx context.Context, docs []string) (*similarity.Matrix, error)

// Config configures a Recommender.
type Config struct {
	// Catalog is the corpus. Required.
	Catalog *catalog.Catalog

	// Builder overrides how the index is built. Defaults to
	// similarity.BuildFromDocuments.
	Builder Builder

	// Logger is the provided slog logger. Defaults to slog.Default().
	Logger *slog.Logger
}

// Recommender answers "more like this" queries over a catalog.
type Recommender struct {
	catalog *catalog.Catalog
	builder Builder
	logger  *slog.Logger

	buildMu sync.Mutex
	index   atomic.Pointer[similarity.Matrix]
}

// Recommendation is a recommended movie with its similarity score.
type Recommendation struct {
	Movie    catalog.Movie `json:"movie"`
	Position int           `json:"position"`
	Score    float64       `json:"score"`
}

// Result is the outcome of a successful query. Recommendations is never nil;
// it is empty when the catalog has no other movies.
type Result struct {
	Query           string           `json:"query"`
	Match           catalog.Movie    `json:"match"`
	MatchPosition   int              `json:"match_position"`
	Recommendations []Recommendation `json:"recommendations"`
	Count           int              `json:"count"`
}

// New creates a Recommender. The index is not built until first use.
func New(c Config) (*Recommender, error) {
	if c.Catalog == nil {
		return nil, fmt.Errorf("%w: catalog is required", catalog.ErrConfiguration)
	}
	if c.Builder == nil {
		c.Builder = similarity.BuildFromDocuments
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}

	return &Recommender{
		catalog: c.Catalog,
		builder: c.Builder,
		logger:  c.Logger,
	}, nil
}

// Catalog returns the catalog the recommender serves.
func (r *Recommender) Catalog() *catalog.Catalog {
	return r.catalog
}

// Ready reports whether the index has been built.
func (r *Recommender) Ready() bool {
	return r.index.Load() != nil
}

// Warm builds the index if it has not been built yet.
func (r *Recommender) Warm(ctx context.Context) error {
	_, err := r.ensureIndex(ctx)
	return err
}

// ensureIndex returns the published index, building it under buildMu if
// needed. Reads after the first successful build are lock-free. A failed
// build publishes nothing.
func (r *Recommender) ensureIndex(ctx context.Context) (*similarity.Matrix, error) {
	if m := r.index.Load(); m != nil {
		return m, nil
	}

	r.buildMu.Lock()
	defer r.buildMu.Unlock()

	if m := r.index.Load(); m != nil {
		return m, nil
	}

	start := time.Now()
	r.logger.Info("building similarity index", "movies", r.catalog.Len())

	m, err := r.builder(ctx, r.catalog.Documents())
	if err != nil {
		r.logger.Error("similarity index build failed", "error", err)
		return nil, err
	}

	r.index.Store(m)
	r.logger.Info("similarity index ready",
		"movies", m.Size(),
		"elapsed", time.Since(start),
	)
	return m, nil
}

// Recommend finds the first movie whose title contains query
// (case-insensitively) and returns up to topN other movies ranked by
// descending similarity. Surrounding whitespace in query is ignored. It
// returns ErrInvalidArgument for topN <= 0 or a blank query and ErrNotFound
// when no title matches.
func (r *Recommender) Recommend(ctx context.Context, query string, topN int) (*Result, error) {
	if topN <= 0 {
		return nil, fmt.Errorf("%w: top_n must be a positive integer, got %d", ErrInvalidArgument, topN)
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: query must not be empty", ErrInvalidArgument)
	}

	pos, ok := r.catalog.FindTitle(query)
	if !ok {
		r.logger.Debug("no title match", "query", query)
		return nil, fmt.Errorf("%w: %q", ErrNotFound, query)
	}

	return r.recommendAt(ctx, query, pos, topN)
}

func (r *Recommender) recommendAt(ctx context.Context, query string, pos, topN int) (*Result, error) {
	m, err := r.ensureIndex(ctx)
	if err != nil {
		return nil, err
	}

	neighbors := m.Nearest(pos, topN)
	recs := make([]Recommendation, len(neighbors))
	for i, n := range neighbors {
		recs[i] = Recommendation{
			Movie:    r.catalog.At(n.Index),
			Position: n.Index,
			Score:    n.Score,
		}
	}

	r.logger.Debug("recommendations served",
		"query", query,
		"match", r.catalog.At(pos).PrimaryTitle,
		"count", len(recs),
	)

	return &Result{
		Query:           query,
		Match:           r.catalog.At(pos),
		MatchPosition:   pos,
		Recommendations: recs,
		Count:           len(recs),
	}, nil
}
