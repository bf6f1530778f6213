// Package sqlite opens a catalog store backed by SQLite.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	_ "github.com/mattn/go-sqlite3"

	"github.com/papercomputeco/marquee/pkg/catalog/sqlstore"
)

// NewStore opens a SQLite catalog store. The dbPath can be a file path or
// ":memory:" for an in-memory database.
func NewStore(ctx context.Context, dbPath, table string) (*sqlstore.Store, error) {
	// Open the database using the github.com/mattn/go-sqlite3 driver (registered as "sqlite3")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Every pooled connection to ":memory:" would get its own empty database.
	db.SetMaxOpenConns(1)

	store, err := sqlstore.New(ctx, entsql.OpenDB(dialect.SQLite, db), table)
	if err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}
