package dataset

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sfdata-tools/rentmap/internal/model"
)

// Store persists the imported listings table between the import command and
// the serving processes.
type Store interface {
	// ImportRecords replaces the stored dataset with records and returns
	// the number written.
	ImportRecords(ctx context.Context, records []model.RentalRecord) (int, error)

	// LoadRecords reads the full dataset back.
	LoadRecords(ctx context.Context) ([]model.RentalRecord, error)

	// Count returns the number of stored records.
	Count(ctx context.Context) (int, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}

// Open constructs the store named by driver: "sqlite" (default) or "postgres".
func Open(ctx context.Context, driver, databaseURL string) (Store, error) {
	switch driver {
	case "", "sqlite":
		return NewSQLite(databaseURL)
	case "postgres":
		return NewPostgres(ctx, databaseURL)
	default:
		return nil, eris.Errorf("dataset: unknown store driver %q", driver)
	}
}

// LoadSnapshot migrates if needed and reads the full dataset into a snapshot.
func LoadSnapshot(ctx context.Context, s Store) (*Snapshot, error) {
	if err := s.Migrate(ctx); err != nil {
		return nil, err
	}
	records, err := s.LoadRecords(ctx)
	if err != nil {
		return nil, err
	}
	return NewSnapshot(records), nil
}
