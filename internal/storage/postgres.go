package storage

import (
	"context"
	stderrors "errors"
	"fmt"

	"cvoptimizer/internal/config"
	"cvoptimizer/internal/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// pgPool is the part of *pgxpool.Pool the store uses.
type pgPool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Close()
}

// PostgresStore keeps the slots as rows keyed by kind.
type PostgresStore struct {
	pool  pgPool
	name  string
	table string // quoted identifier
}

// NewPostgresStore connects and creates the slot table when missing.
func NewPostgresStore(ctx context.Context, cfg config.PostgresConfig) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, cfg.DSN)
	if err != nil {
		return nil, errors.NewConfigError(errors.ErrCodeInvalidConfig, "invalid postgres dsn", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, errors.NewStorageError(errors.ErrCodeStorageFailed, "postgres ping failed", err)
	}

	store := newPostgresStore(pool, cfg.Table)
	if err := store.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return store, nil
}

func newPostgresStore(pool pgPool, table string) *PostgresStore {
	if table == "" {
		table = "cv_slots"
	}
	return &PostgresStore{pool: pool, name: table, table: pgx.Identifier{table}.Sanitize()}
}

func (s *PostgresStore) migrate(ctx context.Context) error {
	ddl := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	kind       TEXT PRIMARY KEY,
	body       TEXT NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`, s.table)
	if _, err := s.pool.Exec(ctx, ddl); err != nil {
		return errors.NewStorageError(errors.ErrCodeStorageFailed, "failed to create slot table", err)
	}
	return nil
}

func (s *PostgresStore) Save(ctx context.Context, kind Kind, text string) (string, error) {
	if !kind.valid() {
		return "", invalidKind(kind)
	}
	query := fmt.Sprintf(`INSERT INTO %s (kind, body, updated_at) VALUES ($1, $2, now())
ON CONFLICT (kind) DO UPDATE SET body = EXCLUDED.body, updated_at = EXCLUDED.updated_at`, s.table)
	if _, err := s.pool.Exec(ctx, query, string(kind), text); err != nil {
		return "", saveError(kind, err)
	}
	return fmt.Sprintf("postgres://%s/%s", s.name, kind), nil
}

func (s *PostgresStore) Get(ctx context.Context, kind Kind) (string, error) {
	if !kind.valid() {
		return "", invalidKind(kind)
	}
	var body string
	query := fmt.Sprintf(`SELECT body FROM %s WHERE kind = $1`, s.table)
	err := s.pool.QueryRow(ctx, query, string(kind)).Scan(&body)
	if stderrors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", readError(kind, err)
	}
	return body, nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
