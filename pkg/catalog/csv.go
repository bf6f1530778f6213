package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// Column names required in every catalog source.
const (
	ColumnPrimaryTitle   = "primaryTitle"
	ColumnGenres         = "genres"
	ColumnDirectors      = "directors"
	ColumnWriters        = "writers"
	ColumnAverageRating  = "averageRating"
	ColumnStartYear      = "startYear"
	ColumnRuntimeMinutes = "runtimeMinutes"
)

// Columns lists the required columns in canonical order.
var Columns = []string{
	ColumnPrimaryTitle,
	ColumnGenres,
	ColumnDirectors,
	ColumnWriters,
	ColumnAverageRating,
	ColumnStartYear,
	ColumnRuntimeMinutes,
}

// CheckColumns returns a *MissingColumnsError naming every required column
// absent from header, or nil. It also returns the position of each required
// column in header.
func CheckColumns(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		if _, dup := index[name]; !dup {
			index[name] = i
		}
	}

	var missing []string
	for _, col := range Columns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingColumnsError{Columns: missing}
	}
	return index, nil
}

// ReadCSV parses a comma-separated catalog with a header row. Extra columns
// are ignored; missing required columns are a configuration error. Rows may
// be short, in which case the absent cells load as missing values, and bare
// quotes inside unquoted fields are kept as text.
func ReadCSV(r io.Reader) (*Catalog, error) {
	reader := csv.NewReader(r)
	reader.ReuseRecord = true
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, &MissingColumnsError{Columns: Columns}
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	index, err := CheckColumns(header)
	if err != nil {
		return nil, err
	}

	var movies []Movie
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row %d: %w", len(movies)+2, err)
		}

		field := func(col string) string {
			i := index[col]
			if i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}

		movies = append(movies, Movie{
			PrimaryTitle:   field(ColumnPrimaryTitle),
			Genres:         field(ColumnGenres),
			Directors:      field(ColumnDirectors),
			Writers:        field(ColumnWriters),
			AverageRating:  ParseFloat(field(ColumnAverageRating)),
			StartYear:      ParseInt(field(ColumnStartYear)),
			RuntimeMinutes: ParseInt(field(ColumnRuntimeMinutes)),
		})
	}

	return New(movies), nil
}

// ParseFloat parses a numeric cell, returning 0 for missing or malformed
// values.
func ParseFloat(s string) float64 {
	if isMissing(s) {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// ParseInt parses an integer cell. Float spellings such as "142.0" are
// accepted since numeric columns with gaps are often exported as floats.
// Values outside the int range load as 0.
func ParseInt(s string) int {
	if isMissing(s) {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	f := ParseFloat(s)
	if f >= math.MaxInt64 || f < math.MinInt64 {
		return 0
	}
	return int(f)
}
