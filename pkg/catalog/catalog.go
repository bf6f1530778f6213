package catalog

import "strings"

// Catalog is an immutable, position-indexed list of movies.
type Catalog struct {
	movies []Movie
}

// New builds a Catalog from movies, normalizing every record. The input
// slice is copied.
func New(movies []Movie) *Catalog {
	c := &Catalog{movies: make([]Movie, len(movies))}
	copy(c.movies, movies)
	for i := range c.movies {
		c.movies[i].normalize()
	}
	return c
}

// Len returns the number of movies.
func (c *Catalog) Len() int {
	return len(c.movies)
}

// At returns the movie at position i. It panics if i is out of range.
func (c *Catalog) At(i int) Movie {
	return c.movies[i]
}

// Movies returns a copy of every movie in catalog order.
func (c *Catalog) Movies() []Movie {
	out := make([]Movie, len(c.movies))
	copy(out, c.movies)
	return out
}

// Slice returns a copy of the movies in [offset, offset+limit), clamped to
// the catalog bounds.
func (c *Catalog) Slice(offset, limit int) []Movie {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(c.movies) || limit <= 0 {
		return []Movie{}
	}
	end := min(offset+limit, len(c.movies))
	out := make([]Movie, end-offset)
	copy(out, c.movies[offset:end])
	return out
}

// Documents returns the combined text field of every movie in catalog order.
func (c *Catalog) Documents() []string {
	docs := make([]string, len(c.movies))
	for i, m := range c.movies {
		docs[i] = m.Combined
	}
	return docs
}

// FindTitle returns the position of the first movie, in catalog order, whose
// title contains fragment case-insensitively.
func (c *Catalog) FindTitle(fragment string) (int, bool) {
	needle := strings.ToLower(fragment)
	for i, m := range c.movies {
		if strings.Contains(strings.ToLower(m.PrimaryTitle), needle) {
			return i, true
		}
	}
	return -1, false
}
