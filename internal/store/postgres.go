package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	createTableSQL = `
		CREATE TABLE IF NOT EXISTS solve_records (
			id           TEXT PRIMARY KEY,
			magnitudes   BIGINT[] NOT NULL,
			target       BIGINT NOT NULL,
			result       BOOLEAN NOT NULL,
			cells        BIGINT NOT NULL,
			duration_us  BIGINT NOT NULL,
			source       TEXT NOT NULL,
			api_key_hash TEXT NOT NULL DEFAULT '',
			created_at   TIMESTAMPTZ NOT NULL
		)`

	createIndexSQL = `
		CREATE INDEX IF NOT EXISTS solve_records_created_at_idx ON solve_records (created_at DESC)`

	insertSQL = `
		INSERT INTO solve_records (id, magnitudes, target, result, cells, duration_us, source, api_key_hash, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	selectColumns = `id, magnitudes, target, result, cells, duration_us, source, api_key_hash, created_at`
)

// PostgresStore persists records in PostgreSQL through a pgx pool.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore connects to connString and creates the records table if needed.
func NewPostgresStore(ctx context.Context, connString string) (*PostgresStore, error) {
	if connString == "" {
		return nil, errors.New("postgres: connection string is empty")
	}
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("postgres: create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres: ping database: %w", err)
	}

	s := &PostgresStore{pool: pool}
	if err := s.ensureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

func (s *PostgresStore) ensureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, createTableSQL); err != nil {
		return fmt.Errorf("postgres: create table: %w", err)
	}
	if _, err := s.pool.Exec(ctx, createIndexSQL); err != nil {
		return fmt.Errorf("postgres: create index: %w", err)
	}
	return nil
}

func (s *PostgresStore) Save(ctx context.Context, rec *SolveRecord) error {
	if rec == nil || rec.ID == "" {
		return fmt.Errorf("save: record id is required")
	}
	_, err := s.pool.Exec(ctx, insertSQL,
		rec.ID,
		toInt64s(rec.Magnitudes),
		int64(rec.Target),
		rec.Result,
		int64(rec.Cells),
		rec.Duration.Microseconds(),
		rec.Source,
		rec.APIKeyHash,
		rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("postgres: insert record: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, id string) (*SolveRecord, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+selectColumns+` FROM solve_records WHERE id = $1`, id)
	rec, err := scanRecord(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: get record: %w", err)
	}
	return rec, nil
}

func (s *PostgresStore) Recent(ctx context.Context, limit int) ([]*SolveRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.pool.Query(ctx, `SELECT `+selectColumns+` FROM solve_records ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("postgres: list records: %w", err)
	}
	defer rows.Close()

	var out []*SolveRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres: scan record: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func scanRecord(row pgx.Row) (*SolveRecord, error) {
	var (
		rec        SolveRecord
		magnitudes []int64
		target     int64
		cells      int64
		durationUs int64
		createdAt  time.Time
	)
	err := row.Scan(&rec.ID, &magnitudes, &target, &rec.Result, &cells, &durationUs, &rec.Source, &rec.APIKeyHash, &createdAt)
	if err != nil {
		return nil, err
	}
	rec.Magnitudes = make([]int, len(magnitudes))
	for i, v := range magnitudes {
		rec.Magnitudes[i] = int(v)
	}
	rec.Target = int(target)
	rec.Cells = int(cells)
	rec.Duration = time.Duration(durationUs) * time.Microsecond
	rec.CreatedAt = createdAt
	return &rec, nil
}

func toInt64s(in []int) []int64 {
	out := make([]int64, len(in))
	for i, v := range in {
		out[i] = int64(v)
	}
	return out
}
