// Package sqlstore persists a movie catalog in a SQL table.
//
// Queries are built with ent's dialect-aware SQL builder, so the same Store
// runs against SQLite and PostgreSQL. Provider packages open the database
// and hand the wrapped driver to New.
package sqlstore

import (
	"context"
	"errors"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/papercomputeco/marquee/pkg/catalog"
)

// DefaultTable is the table used when none is configured.
const DefaultTable = "movies"

// insertBatch bounds the rows per INSERT so the bound-parameter count stays
// under SQLite's limit.
const insertBatch = 100

const colPosition = "position"

// columns is the stored column order: position, then the catalog columns.
var columns = append([]string{colPosition}, catalog.Columns...)

// Store reads and writes a catalog table.
type Store struct {
	drv   *entsql.Driver
	table string
}

var _ catalog.Source = (*Store)(nil)

// New wraps an ent SQL driver and creates the catalog table if it does not
// exist yet.
func New(ctx context.Context, drv *entsql.Driver, table string) (*Store, error) {
	if drv == nil {
		return nil, errors.New("sqlstore: nil driver")
	}
	if table == "" {
		table = DefaultTable
	}

	s := &Store{drv: drv, table: table}
	if err := s.migrate(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Table returns the table name.
func (s *Store) Table() string {
	return s.table
}

// Dialect returns the SQL dialect of the underlying driver.
func (s *Store) Dialect() string {
	return s.drv.Dialect()
}

func (s *Store) builder() *entsql.DialectBuilder {
	return entsql.Dialect(s.drv.Dialect())
}

func (s *Store) migrate(ctx context.Context) error {
	b := s.builder()
	query, args := b.CreateTable(s.table).
		IfNotExists().
		Columns(
			b.Column(colPosition).Type("INTEGER").Attr("NOT NULL"),
			b.Column(catalog.ColumnPrimaryTitle).Type("TEXT").Attr("NOT NULL"),
			b.Column(catalog.ColumnGenres).Type("TEXT").Attr("NOT NULL"),
			b.Column(catalog.ColumnDirectors).Type("TEXT").Attr("NOT NULL"),
			b.Column(catalog.ColumnWriters).Type("TEXT").Attr("NOT NULL"),
			b.Column(catalog.ColumnAverageRating).Type("DOUBLE PRECISION").Attr("NOT NULL DEFAULT 0"),
			b.Column(catalog.ColumnStartYear).Type("INTEGER").Attr("NOT NULL DEFAULT 0"),
			b.Column(catalog.ColumnRuntimeMinutes).Type("INTEGER").Attr("NOT NULL DEFAULT 0"),
		).
		PrimaryKey(colPosition).
		Query()

	if err := s.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("failed to create table %s: %w", s.table, err)
	}
	return nil
}

// Load reads every movie ordered by catalog position.
func (s *Store) Load(ctx context.Context) (*catalog.Catalog, error) {
	query, args := s.builder().
		Select(columns...).
		From(entsql.Table(s.table)).
		OrderBy(colPosition).
		Query()

	var rows entsql.Rows
	if err := s.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("failed to query catalog: %w", err)
	}
	defer rows.Close()

	var movies []catalog.Movie
	for rows.Next() {
		var (
			pos int
			m   catalog.Movie
		)
		if err := rows.Scan(
			&pos,
			&m.PrimaryTitle,
			&m.Genres,
			&m.Directors,
			&m.Writers,
			&m.AverageRating,
			&m.StartYear,
			&m.RuntimeMinutes,
		); err != nil {
			return nil, fmt.Errorf("failed to scan movie: %w", err)
		}
		movies = append(movies, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read catalog rows: %w", err)
	}

	return catalog.New(movies), nil
}

// Count returns the number of stored movies.
func (s *Store) Count(ctx context.Context) (int, error) {
	query, args := s.builder().
		Select(entsql.Count("*")).
		From(entsql.Table(s.table)).
		Query()

	var rows entsql.Rows
	if err := s.drv.Query(ctx, query, args, &rows); err != nil {
		return 0, fmt.Errorf("failed to count movies: %w", err)
	}
	defer rows.Close()

	var n int
	if rows.Next() {
		if err := rows.Scan(&n); err != nil {
			return 0, fmt.Errorf("failed to scan count: %w", err)
		}
	}
	return n, rows.Err()
}

// Replace swaps the stored catalog for c in a single transaction. Catalog
// positions are preserved so a later Load returns movies in the same order.
func (s *Store) Replace(ctx context.Context, c *catalog.Catalog) error {
	if c == nil {
		return errors.New("cannot store nil catalog")
	}

	tx, err := s.drv.Tx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := s.replace(ctx, tx, c); err != nil {
		if rerr := tx.Rollback(); rerr != nil {
			err = errors.Join(err, fmt.Errorf("rollback: %w", rerr))
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit catalog: %w", err)
	}
	return nil
}

func (s *Store) replace(ctx context.Context, tx execer, c *catalog.Catalog) error {
	query, args := s.builder().Delete(s.table).Query()
	if err := tx.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("failed to clear catalog: %w", err)
	}

	for start := 0; start < c.Len(); start += insertBatch {
		end := min(start+insertBatch, c.Len())

		insert := s.builder().
			Insert(s.table).
			Columns(columns...)
		for i := start; i < end; i++ {
			m := c.At(i)
			insert.Values(
				i,
				m.PrimaryTitle,
				m.Genres,
				m.Directors,
				m.Writers,
				m.AverageRating,
				m.StartYear,
				m.RuntimeMinutes,
			)
		}

		query, args := insert.Query()
		if err := tx.Exec(ctx, query, args, nil); err != nil {
			return fmt.Errorf("failed to insert movies %d-%d: %w", start, end-1, err)
		}
	}
	return nil
}

type execer interface {
	Exec(ctx context.Context, query string, args, v any) error
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.drv.Close()
}
