package recommend

import "errors"

var (
	// ErrNotFound is returned when no catalog title contains the query.
	ErrNotFound = errors.New("movie not found")

	// ErrInvalidArgument is returned for a non-positive top_n or an empty
	// query. It is raised before any index work happens.
	ErrInvalidArgument = errors.New("invalid argument")
)
