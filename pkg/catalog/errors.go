package catalog

import (
	"errors"
	"strings"
)

// ErrConfiguration marks fatal catalog source problems: the data cannot be
// served and the process should not proceed.
var ErrConfiguration = errors.New("catalog configuration error")

// MissingColumnsError is returned when a catalog source lacks required
// columns.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return "catalog is missing required columns: " + strings.Join(e.Columns, ", ")
}

// Is reports MissingColumnsError as a configuration error.
func (e *MissingColumnsError) Is(target error) bool {
	return target == ErrConfiguration
}
