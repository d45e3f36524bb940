// Package postgres implements the storage interface over PostgreSQL
// using database/sql with the pgx driver.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/courtshot/courtshot/internal/dbx"
	"github.com/courtshot/courtshot/internal/storage"
	"github.com/courtshot/courtshot/internal/storage/postgres/migrations"
)

// Storage is the PostgreSQL-backed implementation of the storage
// interface
type Storage struct {
	db dbx.DBTX
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// New opens a connection pool for the given DSN and runs the embedded
// migrations
func New(ctx context.Context, dsn string) (*Storage, *sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("db open error: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, nil, fmt.Errorf("db ping error: %w", err)
	}
	if err := RunMigrations(ctx, db); err != nil {
		return nil, nil, fmt.Errorf("migration error: %w", err)
	}
	return NewWithDB(db), db, nil
}

// NewWithDB creates a Storage bound to an existing handle (for testing)
func NewWithDB(db dbx.DBTX) *Storage {
	return &Storage{db: db}
}

// RunMigrations applies the embedded goose migrations
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	return goose.UpContext(ctx, db, ".")
}

// uniqueViolation is the PostgreSQL error code for duplicate keys
const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
