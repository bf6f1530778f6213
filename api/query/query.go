// Package query holds the recommendation request and response types shared
// by the REST endpoints and the MCP tools, plus the logic that runs them.
package query

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/papercomputeco/marquee/pkg/catalog"
	"github.com/papercomputeco/marquee/pkg/recommend"
	"github.com/papercomputeco/marquee/pkg/utils"
)

// maxLoggedQuery bounds query text in debug logs.
const maxLoggedQuery = 80

// ErrInvalidTopN is returned for a top_n that is not a positive integer.
var ErrInvalidTopN = fmt.Errorf("%w: top_n must be a positive integer", recommend.ErrInvalidArgument)

// RecommendInput represents the input arguments for a recommend request.
type RecommendInput struct {
	Query string `json:"query" jsonschema:"a movie title or part of one; the first catalog title containing it (case-insensitive) is used"`
	TopN  int    `json:"top_n,omitempty" jsonschema:"number of recommendations to return (default: 6)"`
}

// SurpriseInput represents the input arguments for a surprise request.
type SurpriseInput struct {
	TopN int `json:"top_n,omitempty" jsonschema:"number of recommendations to return (default: 6)"`
}

// Movie is the display form of a catalog movie.
type Movie struct {
	Title          string  `json:"title"`
	Genres         string  `json:"genres"`
	Directors      string  `json:"directors"`
	Writers        string  `json:"writers"`
	AverageRating  float64 `json:"average_rating"`
	Stars          int     `json:"stars"`
	StartYear      int     `json:"start_year,omitempty"`
	RuntimeMinutes int     `json:"runtime_minutes,omitempty"`
}

// Recommendation is a recommended movie and its similarity to the match.
type Recommendation struct {
	Movie    Movie   `json:"movie"`
	Position int     `json:"position"`
	Score    float64 `json:"score"`
}

// Output represents the output of a recommend or surprise request.
type Output struct {
	Query           string           `json:"query"`
	Match           Movie            `json:"match"`
	Surprise        bool             `json:"surprise,omitempty"`
	Recommendations []Recommendation `json:"recommendations"`
	Count           int              `json:"count"`
}

// NewMovie converts a catalog movie to its display form.
func NewMovie(m catalog.Movie) Movie {
	return Movie{
		Title:          m.PrimaryTitle,
		Genres:         m.Genres,
		Directors:      m.Directors,
		Writers:        m.Writers,
		AverageRating:  m.AverageRating,
		Stars:          m.Stars(),
		StartYear:      m.StartYear,
		RuntimeMinutes: m.RuntimeMinutes,
	}
}

// NewOutput converts a recommender result.
func NewOutput(r *recommend.Result) *Output {
	recs := make([]Recommendation, len(r.Recommendations))
	for i, rec := range r.Recommendations {
		recs[i] = Recommendation{
			Movie:    NewMovie(rec.Movie),
			Position: rec.Position,
			Score:    rec.Score,
		}
	}

	return &Output{
		Query:           r.Query,
		Match:           NewMovie(r.Match),
		Recommendations: recs,
		Count:           len(recs),
	}
}

// ResolveTopN returns topN, or def when topN is zero. Negative values are
// rejected.
func ResolveTopN(topN, def int) (int, error) {
	switch {
	case topN == 0:
		if def <= 0 {
			def = recommend.DefaultTopN
		}
		return def, nil
	case topN < 0:
		return 0, ErrInvalidTopN
	default:
		return topN, nil
	}
}

// Recommend runs a recommendation query.
func Recommend(ctx context.Context, r *recommend.Recommender, in RecommendInput, defTopN int, logger *slog.Logger) (*Output, error) {
	topN, err := ResolveTopN(in.TopN, defTopN)
	if err != nil {
		return nil, err
	}

	logger.Debug("recommend request", "query", utils.Truncate(in.Query, maxLoggedQuery), "top_n", topN)

	result, err := r.Recommend(ctx, in.Query, topN)
	if err != nil {
		return nil, err
	}
	return NewOutput(result), nil
}

// Surprise picks a random movie and recommends movies like it.
func Surprise(ctx context.Context, r *recommend.Recommender, picker *recommend.Picker, in SurpriseInput, defTopN int, logger *slog.Logger) (*Output, error) {
	if picker == nil {
		return nil, errors.New("surprise picker is not configured")
	}

	topN, err := ResolveTopN(in.TopN, defTopN)
	if err != nil {
		return nil, err
	}

	result, err := r.Surprise(ctx, picker, topN)
	if err != nil {
		return nil, err
	}
	logger.Debug("surprise request", "pick", result.Match.PrimaryTitle, "top_n", topN)

	out := NewOutput(result)
	out.Surprise = true
	return out, nil
}

// CatalogMovie converts the display form back to a catalog movie.
func (m Movie) CatalogMovie() catalog.Movie {
	return catalog.Movie{
		PrimaryTitle:   m.Title,
		Genres:         m.Genres,
		Directors:      m.Directors,
		Writers:        m.Writers,
		AverageRating:  m.AverageRating,
		StartYear:      m.StartYear,
		RuntimeMinutes: m.RuntimeMinutes,
	}
}

// Result converts the output back to a recommender result, e.g. after it
// crossed the wire.
func (o *Output) Result() *recommend.Result {
	recs := make([]recommend.Recommendation, len(o.Recommendations))
	for i, rec := range o.Recommendations {
		recs[i] = recommend.Recommendation{
			Movie:    rec.Movie.CatalogMovie(),
			Position: rec.Position,
			Score:    rec.Score,
		}
	}

	return &recommend.Result{
		Query:           o.Query,
		Match:           o.Match.CatalogMovie(),
		Recommendations: recs,
		Count:           len(recs),
	}
}
