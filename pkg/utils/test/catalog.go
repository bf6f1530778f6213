// Package testutils holds fixtures shared across marquee test suites.
package testutils

import (
	"strings"

	"github.com/papercomputeco/marquee/pkg/catalog"
)

// CatalogCSV is a small catalog in the CSV layout the loader expects. The
// Nolan films share a director and writer, the Wachowski films share both,
// and Arrival and Sicario share a director.
const CatalogCSV = `primaryTitle,genres,directors,writers,averageRating,startYear,runtimeMinutes
Inception,"Action,Adventure,Sci-Fi",Christopher Nolan,Christopher Nolan,8.8,2010,148
The Matrix,"Action,Sci-Fi",Lana Wachowski,Lana Wachowski,8.7,1999,136
Interstellar,"Adventure,Drama,Sci-Fi",Christopher Nolan,Jonathan Nolan,8.7,2014,169
The Matrix Reloaded,"Action,Sci-Fi",Lana Wachowski,Lana Wachowski,7.2,2003,138
Arrival,"Drama,Mystery,Sci-Fi",Denis Villeneuve,Eric Heisserer,7.9,2016,116
Sicario,"Action,Crime,Drama",Denis Villeneuve,Taylor Sheridan,7.6,2015,121
Amelie,"Comedy,Romance",,,8.3,2001,122
`

// NewTestCatalog parses CatalogCSV.
func NewTestCatalog() *catalog.Catalog {
	c, err := catalog.ReadCSV(strings.NewReader(CatalogCSV))
	if err != nil {
		panic(err)
	}
	return c
}

// NewTestMovie returns a movie with the given title and text fields.
func NewTestMovie(title, genres, directors, writers string) catalog.Movie {
	return catalog.Movie{
		PrimaryTitle:   title,
		Genres:         genres,
		Directors:      directors,
		Writers:        writers,
		AverageRating:  7.0,
		StartYear:      2000,
		RuntimeMinutes: 100,
	}
}
