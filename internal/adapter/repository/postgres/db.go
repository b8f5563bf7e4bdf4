package postgres

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// DB wraps the database connection
type DB struct {
	*sql.DB
}

// NewDB creates a new database connection
// connectionString should be in the format: "host=localhost port=5432 user=postgres password=postgres dbname=foliodash sslmode=disable"
func NewDB(connectionString string) (*DB, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{DB: db}, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.DB.Close()
}

// EnsureSchema creates the tables used by the repositories if they do
// not exist yet
func (db *DB) EnsureSchema(ctx context.Context) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS assets (
			id   TEXT PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			type TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS prices (
			id    TEXT PRIMARY KEY,
			asset TEXT NOT NULL,
			price DECIMAL NOT NULL,
			as_of DATE NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS prices_as_of_asset_idx ON prices (as_of, asset)`,
		`CREATE TABLE IF NOT EXISTS portfolios (
			id    TEXT PRIMARY KEY,
			as_of DATE NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS positions (
			id           BIGINT NOT NULL,
			portfolio_id TEXT NOT NULL REFERENCES portfolios (id),
			asset        TEXT NOT NULL,
			quantity     DECIMAL NOT NULL,
			as_of        DATE NOT NULL,
			price        DECIMAL NOT NULL,
			PRIMARY KEY (portfolio_id, id)
		)`,
	}

	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
	}
	return nil
}
