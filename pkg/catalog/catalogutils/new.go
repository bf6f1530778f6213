// Package catalogutils opens catalog sources by provider name.
package catalogutils

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/papercomputeco/marquee/pkg/catalog"
	"github.com/papercomputeco/marquee/pkg/catalog/sqlstore"
	"github.com/papercomputeco/marquee/pkg/catalog/sqlstore/postgres"
	"github.com/papercomputeco/marquee/pkg/catalog/sqlstore/sqlite"
)

// Supported catalog providers.
const (
	ProviderCSV      = "csv"
	ProviderSQLite   = "sqlite"
	ProviderPostgres = "postgres"
)

// Providers lists every supported provider name.
var Providers = []string{ProviderCSV, ProviderSQLite, ProviderPostgres}

type LoadCatalogOpts struct {
	// ProviderType selects the backing store. Empty means csv.
	ProviderType string

	// Path is the CSV file for the csv provider.
	Path string

	// DSN is the database path or connection string for SQL providers.
	DSN string

	// Table is the SQL table. Empty means sqlstore.DefaultTable.
	Table string

	Logger *slog.Logger
}

// OpenStore opens a SQL catalog store for the sqlite or postgres provider.
func OpenStore(ctx context.Context, o *LoadCatalogOpts) (*sqlstore.Store, error) {
	if o.DSN == "" {
		return nil, fmt.Errorf("%w: dsn is required for provider %q", catalog.ErrConfiguration, o.ProviderType)
	}

	switch o.ProviderType {
	case ProviderSQLite:
		return sqlite.NewStore(ctx, o.DSN, o.Table)
	case ProviderPostgres:
		return postgres.NewStore(ctx, o.DSN, o.Table)
	default:
		return nil, fmt.Errorf("%w: unsupported catalog store provider: %s", catalog.ErrConfiguration, o.ProviderType)
	}
}

// LoadCatalog loads the whole catalog from the configured provider.
func LoadCatalog(ctx context.Context, o *LoadCatalogOpts) (*catalog.Catalog, error) {
	logger := o.Logger
	if logger == nil {
		logger = slog.Default()
	}

	switch o.ProviderType {
	case "", ProviderCSV:
		logger.Debug("loading catalog", "provider", ProviderCSV, "path", o.Path)
		src := &catalog.CSVSource{Path: o.Path}
		return src.Load(ctx)

	case ProviderSQLite, ProviderPostgres:
		logger.Debug("loading catalog", "provider", o.ProviderType, "table", o.Table)
		store, err := OpenStore(ctx, o)
		if err != nil {
			return nil, err
		}
		defer store.Close()
		return store.Load(ctx)

	default:
		return nil, fmt.Errorf("%w: unsupported catalog provider: %s", catalog.ErrConfiguration, o.ProviderType)
	}
}
