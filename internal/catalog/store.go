// Package catalog implements the retrieval side of the search pipeline over
// the pharmacy ERP database: the two candidate retrieval channels, stock and
// price annotation, and the classification lookups.
package catalog

import (
	"database/sql"
	"errors"
	"log/slog"
	"sync"

	"github.com/lib/pq"
)

// Store runs catalog queries against Postgres.
type Store struct {
	db     *sql.DB
	logger *slog.Logger

	// classification source discovery is computed once per process and
	// reused; see ClassificationSource.
	sourceMu    sync.Mutex
	source      *Source
	sourceKnown bool
}

// NewStore creates a Store. A nil logger falls back to slog.Default().
func NewStore(db *sql.DB, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{db: db, logger: logger}
}

// Open connects to Postgres using a lib/pq connection string or URL.
func Open(databaseURL string) (*sql.DB, error) {
	return sql.Open("postgres", databaseURL)
}

// isUndefinedTable reports whether err is Postgres "relation does not exist"
// (42P01). Optional tables are allowed to be missing; queries against them
// are treated as "no data" instead of failures.
func isUndefinedTable(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "42P01"
}
