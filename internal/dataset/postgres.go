package dataset

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/sfdata-tools/rentmap/internal/model"
)

// Pool is the subset of pgxpool.Pool the store uses. pgxmock satisfies it
// in tests.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error)
	Close()
}

// PostgresStore implements Store using a pgx connection pool.
type PostgresStore struct {
	pool Pool
}

// NewPostgres connects a PostgresStore to the given database URL.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: connect")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool}, nil
}

// NewPostgresFromPool wraps an existing pool, mainly for tests.
func NewPostgresFromPool(pool Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS listings (
	id             BIGSERIAL PRIMARY KEY,
	block_address  TEXT NOT NULL,
	block_num      INTEGER,
	monthly_rent   DOUBLE PRECISION NOT NULL,
	square_footage DOUBLE PRECISION NOT NULL,
	bedrooms       DOUBLE PRECISION NOT NULL,
	bathrooms      DOUBLE PRECISION NOT NULL,
	unit_count     INTEGER NOT NULL,
	latitude       DOUBLE PRECISION,
	longitude      DOUBLE PRECISION
);

CREATE INDEX IF NOT EXISTS idx_listings_block_address ON listings(block_address)
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

var listingColumns = []string{
	"block_address", "block_num", "monthly_rent", "square_footage",
	"bedrooms", "bathrooms", "unit_count", "latitude", "longitude",
}

func (s *PostgresStore) ImportRecords(ctx context.Context, records []model.RentalRecord) (int, error) {
	if _, err := s.pool.Exec(ctx, `TRUNCATE listings`); err != nil {
		return 0, eris.Wrap(err, "postgres: clear listings")
	}

	rows := make([][]any, 0, len(records))
	for _, rec := range records {
		rows = append(rows, []any{
			rec.BlockAddress, rec.BlockNum, rec.MonthlyRent, rec.SquareFootage,
			rec.Bedrooms, rec.Bathrooms, rec.UnitCount, rec.Latitude, rec.Longitude,
		})
	}

	n, err := s.pool.CopyFrom(ctx, pgx.Identifier{"listings"}, listingColumns, pgx.CopyFromRows(rows))
	if err != nil {
		return 0, eris.Wrap(err, "postgres: copy listings")
	}
	return int(n), nil
}

func (s *PostgresStore) LoadRecords(ctx context.Context) ([]model.RentalRecord, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT block_address, block_num, monthly_rent, square_footage, bedrooms, bathrooms, unit_count, latitude, longitude
		FROM listings ORDER BY id`)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: load listings")
	}
	defer rows.Close()

	var records []model.RentalRecord
	for rows.Next() {
		var rec model.RentalRecord
		if err := rows.Scan(
			&rec.BlockAddress, &rec.BlockNum, &rec.MonthlyRent, &rec.SquareFootage,
			&rec.Bedrooms, &rec.Bathrooms, &rec.UnitCount, &rec.Latitude, &rec.Longitude,
		); err != nil {
			return nil, eris.Wrap(err, "postgres: scan listing")
		}
		records = append(records, rec)
	}
	return records, eris.Wrap(rows.Err(), "postgres: load listings iterate")
}

func (s *PostgresStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM listings`).Scan(&n)
	return n, eris.Wrap(err, "postgres: count listings")
}
