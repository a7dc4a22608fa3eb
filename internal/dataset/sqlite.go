package dataset

import (
	"context"
	"database/sql"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sfdata-tools/rentmap/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS listings (
	id             INTEGER PRIMARY KEY AUTOINCREMENT,
	block_address  TEXT NOT NULL,
	block_num      INTEGER,
	monthly_rent   REAL NOT NULL,
	square_footage REAL NOT NULL,
	bedrooms       REAL NOT NULL,
	bathrooms      REAL NOT NULL,
	unit_count     INTEGER NOT NULL,
	latitude       REAL,
	longitude      REAL
);

CREATE INDEX IF NOT EXISTS idx_listings_block_address ON listings(block_address);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) ImportRecords(ctx context.Context, records []model.RentalRecord) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: begin import")
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM listings`); err != nil {
		return 0, eris.Wrap(err, "sqlite: clear listings")
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO listings (block_address, block_num, monthly_rent, square_footage, bedrooms, bathrooms, unit_count, latitude, longitude)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: prepare insert")
	}
	defer stmt.Close()

	for _, rec := range records {
		_, err := stmt.ExecContext(ctx,
			rec.BlockAddress, rec.BlockNum, rec.MonthlyRent, rec.SquareFootage,
			rec.Bedrooms, rec.Bathrooms, rec.UnitCount, rec.Latitude, rec.Longitude,
		)
		if err != nil {
			return 0, eris.Wrapf(err, "sqlite: insert listing %q", rec.BlockAddress)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, eris.Wrap(err, "sqlite: commit import")
	}
	return len(records), nil
}

func (s *SQLiteStore) LoadRecords(ctx context.Context) ([]model.RentalRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT block_address, block_num, monthly_rent, square_footage, bedrooms, bathrooms, unit_count, latitude, longitude
		FROM listings ORDER BY id`)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: load listings")
	}
	defer rows.Close()

	var records []model.RentalRecord
	for rows.Next() {
		var (
			rec      model.RentalRecord
			blockNum sql.NullInt64
			lat, lon sql.NullFloat64
		)
		if err := rows.Scan(
			&rec.BlockAddress, &blockNum, &rec.MonthlyRent, &rec.SquareFootage,
			&rec.Bedrooms, &rec.Bathrooms, &rec.UnitCount, &lat, &lon,
		); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan listing")
		}
		if blockNum.Valid {
			n := int(blockNum.Int64)
			rec.BlockNum = &n
		}
		if lat.Valid {
			rec.Latitude = &lat.Float64
		}
		if lon.Valid {
			rec.Longitude = &lon.Float64
		}
		records = append(records, rec)
	}
	return records, eris.Wrap(rows.Err(), "sqlite: load listings iterate")
}

func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM listings`).Scan(&n)
	return n, eris.Wrap(err, "sqlite: count listings")
}
