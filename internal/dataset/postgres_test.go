package dataset

import (
	"context"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgres_ImportRecords(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store := NewPostgresFromPool(mock)
	records := SampleRecords()

	mock.ExpectExec("TRUNCATE listings").
		WillReturnResult(pgxmock.NewResult("TRUNCATE", 0))
	mock.ExpectCopyFrom(pgx.Identifier{"listings"}, listingColumns).
		WillReturnResult(int64(len(records)))

	n, err := store.ImportRecords(context.Background(), records)
	require.NoError(t, err)
	assert.Equal(t, len(records), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_ImportRecords_CopyError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store := NewPostgresFromPool(mock)

	mock.ExpectExec("TRUNCATE listings").
		WillReturnResult(pgxmock.NewResult("TRUNCATE", 0))
	mock.ExpectCopyFrom(pgx.Identifier{"listings"}, listingColumns).
		WillReturnError(fmt.Errorf("connection refused"))

	_, err = store.ImportRecords(context.Background(), SampleRecords())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "copy listings")
}

func TestPostgres_LoadRecords(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store := NewPostgresFromPool(mock)

	blockNum := 100
	lat, lon := 37.7793, -122.4163
	rows := pgxmock.NewRows(listingColumns).
		AddRow("100 Block of Larkin St", &blockNum, 2000.0, 700.0, 1.0, 1.0, 12, &lat, &lon)

	mock.ExpectQuery("SELECT block_address").WillReturnRows(rows)

	records, err := store.LoadRecords(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "100 Block of Larkin St", records[0].BlockAddress)
	require.NotNil(t, records[0].BlockNum)
	assert.Equal(t, 100, *records[0].BlockNum)
	assert.True(t, records[0].HasCoordinates())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_Count(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store := NewPostgresFromPool(mock)

	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(7))

	n, err := store.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, n)
}

func TestPostgres_Migrate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store := NewPostgresFromPool(mock)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS listings").
		WillReturnResult(pgxmock.NewResult("CREATE", 0))

	require.NoError(t, store.Migrate(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
