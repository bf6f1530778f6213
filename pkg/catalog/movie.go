// Package catalog loads the movie catalog the recommender indexes.
//
// A Catalog is an ordered, immutable list of movies. Positions are stable for
// the lifetime of the process: the similarity matrix addresses movies by
// their catalog position.
package catalog

import (
	"math"
	"strings"
)

// Unknown replaces missing genres, directors and writers so that every movie
// contributes vocabulary to the vectorizer.
const Unknown = "Unknown"

// MaxStars is the number of stars a perfect 10 rating renders as.
const MaxStars = 5

// Movie is a single catalog record.
type Movie struct {
	PrimaryTitle   string  `json:"primaryTitle"`
	Genres         string  `json:"genres"`
	Directors      string  `json:"directors"`
	Writers        string  `json:"writers"`
	AverageRating  float64 `json:"averageRating"`
	StartYear      int     `json:"startYear"`
	RuntimeMinutes int     `json:"runtimeMinutes"`

	// Combined is genres, directors and writers joined by single spaces,
	// in that order. It is the movie's similarity fingerprint.
	Combined string `json:"-"`
}

// normalize fills missing text fields with Unknown and derives Combined.
func (m *Movie) normalize() {
	m.Genres = orUnknown(m.Genres)
	m.Directors = orUnknown(m.Directors)
	m.Writers = orUnknown(m.Writers)
	m.Combined = m.Genres + " " + m.Directors + " " + m.Writers
}

// Stars returns the rating scaled onto MaxStars discrete stars. Halves round
// to even, so a 5.0 rating is two stars and a 7.0 rating is four.
func (m Movie) Stars() int {
	if m.AverageRating <= 0 || math.IsNaN(m.AverageRating) {
		return 0
	}
	stars := int(math.RoundToEven(m.AverageRating / 2))
	return min(stars, MaxStars)
}

func orUnknown(s string) string {
	s = strings.TrimSpace(s)
	if isMissing(s) {
		return Unknown
	}
	return s
}

// naValues are the markers treated as missing, matching the defaults most
// CSV tooling (pandas in particular) recognizes.
var naValues = map[string]struct{}{
	"":         {},
	"#N/A":     {},
	"#N/A N/A": {},
	"#NA":      {},
	"-1.#IND":  {},
	"-1.#QNAN": {},
	"-NaN":     {},
	"-nan":     {},
	"1.#IND":   {},
	"1.#QNAN":  {},
	"<NA>":     {},
	"N/A":      {},
	"NA":       {},
	"NULL":     {},
	"NaN":      {},
	"None":     {},
	"n/a":      {},
	"nan":      {},
	"null":     {},
}

func isMissing(s string) bool {
	_, ok := naValues[s]
	return ok
}
