package dataset

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const csvHeader = "block_address,block_num,cleaned_monthly_rent,cleaned_square_footage,cleaned_bedroom_count,cleaned_bathroom_count,unit_count,latitude,longitude\n"

func TestReadCSV_MapsColumns(t *testing.T) {
	input := csvHeader +
		"100 Block of Larkin St,100,2000,700,1,1,12,37.7793,-122.4163\n" +
		"200 Block of Larkin St,200,2500.50,900.25,2,1.5,8,37.7810,-122.4170\n"

	res, err := ReadCSV(context.Background(), strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 0, res.Skipped)
	require.Len(t, res.Records, 2)

	first := res.Records[0]
	assert.Equal(t, "100 Block of Larkin St", first.BlockAddress)
	require.NotNil(t, first.BlockNum)
	assert.Equal(t, 100, *first.BlockNum)
	assert.Equal(t, 2000.0, first.MonthlyRent)
	assert.Equal(t, 700.0, first.SquareFootage)
	assert.Equal(t, 12, first.UnitCount)
	require.NotNil(t, first.Latitude)
	assert.Equal(t, 37.7793, *first.Latitude)

	second := res.Records[1]
	assert.Equal(t, 2500.50, second.MonthlyRent)
	assert.Equal(t, 1.5, second.Bathrooms)
}

func TestReadCSV_BlankOptionalCellsBecomeNil(t *testing.T) {
	input := csvHeader + "100 Block of Larkin St,,2000,700,1,1,12,,\n"

	res, err := ReadCSV(context.Background(), strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, res.Records, 1)

	rec := res.Records[0]
	assert.Nil(t, rec.BlockNum)
	assert.Nil(t, rec.Latitude)
	assert.Nil(t, rec.Longitude)
	assert.False(t, rec.HasCoordinates())
}

func TestReadCSV_SkipsMalformedRows(t *testing.T) {
	input := csvHeader +
		",100,2000,700,1,1,12,37.77,-122.41\n" + // no address
		"100 Block of Larkin St,100,not-a-number,700,1,1,12,37.77,-122.41\n" + // bad rent
		"100 Block of Larkin St,100,2000,700,1,1,12,37.77,-122.41\n"

	res, err := ReadCSV(context.Background(), strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 2, res.Skipped)
	assert.Len(t, res.Records, 1)
}

func TestReadCSV_ColumnOrderIrrelevant(t *testing.T) {
	input := "latitude,block_address,unit_count,cleaned_monthly_rent,cleaned_square_footage,cleaned_bedroom_count,cleaned_bathroom_count,longitude,block_num\n" +
		"37.77,100 Block of Larkin St,12,2000,700,1,1,-122.41,100\n"

	res, err := ReadCSV(context.Background(), strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, res.Records, 1)
	assert.Equal(t, "100 Block of Larkin St", res.Records[0].BlockAddress)
	assert.Equal(t, 2000.0, res.Records[0].MonthlyRent)
}

func TestReadCSV_MissingRequiredColumn(t *testing.T) {
	input := "block_address,unit_count\n100 Block of Larkin St,12\n"

	_, err := ReadCSV(context.Background(), strings.NewReader(input))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cleaned_monthly_rent")
}

func TestReadCSV_EmptyInput(t *testing.T) {
	_, err := ReadCSV(context.Background(), strings.NewReader(""))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptyCSV)
}
