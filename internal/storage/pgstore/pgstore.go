// Package pgstore keeps forwarded submissions in Postgres using pgxpool.
package pgstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"sqlgate/internal/storage"
)

const schema = `
CREATE TABLE IF NOT EXISTS submissions (
	id         TEXT PRIMARY KEY,
	owner      TEXT NOT NULL,
	kind       TEXT NOT NULL,
	statement  TEXT NOT NULL,
	command    TEXT NOT NULL DEFAULT '',
	table_name TEXT NOT NULL DEFAULT '',
	hub_id     TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS submissions_owner_created_idx ON submissions (owner, created_at DESC);
`

const selectColumns = `id, owner, kind, statement, command, table_name, hub_id, created_at`

// Store implements storage.Store on top of a pgx connection pool.
type Store struct {
	pool *pgxpool.Pool
}

var _ storage.Store = (*Store)(nil)

// New wraps an existing pool.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Open connects to dsn and verifies the connection.
func Open(ctx context.Context, dsn string) (*Store, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("pgstore: connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pgstore: ping: %w", err)
	}
	return New(pool), nil
}

// Migrate creates the submissions table and its index if missing.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("pgstore: migrate: %w", err)
	}
	return nil
}

// Close releases the pool.
func (s *Store) Close() {
	s.pool.Close()
}

// Save inserts sub. Ids are unique, so saving the same id twice fails.
func (s *Store) Save(ctx context.Context, sub storage.Submission) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO submissions (`+selectColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		sub.ID, sub.Owner, string(sub.Kind), sub.Statement, sub.Command, sub.Table, sub.HubID, sub.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("pgstore: save %s: %w", sub.ID, err)
	}
	return nil
}

// Get returns the submission with the given id. A missing row is reported
// as storage.ErrNotFound.
func (s *Store) Get(ctx context.Context, id string) (storage.Submission, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+selectColumns+` FROM submissions WHERE id = $1`, id)
	sub, err := scanSubmission(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return storage.Submission{}, fmt.Errorf("get %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return storage.Submission{}, fmt.Errorf("pgstore: get %s: %w", id, err)
	}
	return sub, nil
}

// ListByOwner returns the owner's submissions, newest first. Ties on
// created_at are broken by id, which sorts by time as well.
func (s *Store) ListByOwner(ctx context.Context, owner string) ([]storage.Submission, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+selectColumns+` FROM submissions WHERE owner = $1 ORDER BY created_at DESC, id DESC`,
		owner,
	)
	if err != nil {
		return nil, fmt.Errorf("pgstore: list %s: %w", owner, err)
	}

	subs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (storage.Submission, error) {
		return scanSubmission(row)
	})
	if err != nil {
		return nil, fmt.Errorf("pgstore: list %s: %w", owner, err)
	}
	return subs, nil
}

// scanSubmission reads one row in selectColumns order.
func scanSubmission(row pgx.Row) (storage.Submission, error) {
	var (
		sub  storage.Submission
		kind string
	)
	err := row.Scan(&sub.ID, &sub.Owner, &kind, &sub.Statement, &sub.Command, &sub.Table, &sub.HubID, &sub.CreatedAt)
	sub.Kind = storage.Kind(kind)
	return sub, err
}
