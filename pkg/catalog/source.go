package catalog

import (
	"context"
	"fmt"
	"os"
)

// Source loads a Catalog from some backing store.
type Source interface {
	Load(ctx context.Context) (*Catalog, error)
}

// CSVSource loads a catalog from a CSV file on disk.
type CSVSource struct {
	Path string
}

var _ Source = (*CSVSource)(nil)

// Load reads and parses the CSV file.
func (s *CSVSource) Load(_ context.Context) (*Catalog, error) {
	if s.Path == "" {
		return nil, fmt.Errorf("%w: csv path is required", ErrConfiguration)
	}

	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening catalog: %w", ErrConfiguration, err)
	}
	defer f.Close()

	c, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", s.Path, err)
	}
	return c, nil
}
