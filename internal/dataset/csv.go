package dataset

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sfdata-tools/rentmap/internal/model"
)

// Expected header columns of the pre-cleaned listings export. Column order
// is free; unknown columns are ignored.
const (
	colBlockAddress = "block_address"
	colBlockNum     = "block_num"
	colRent         = "cleaned_monthly_rent"
	colSqft         = "cleaned_square_footage"
	colBedrooms     = "cleaned_bedroom_count"
	colBathrooms    = "cleaned_bathroom_count"
	colUnitCount    = "unit_count"
	colLatitude     = "latitude"
	colLongitude    = "longitude"
)

// LoadResult reports what a CSV load produced.
type LoadResult struct {
	Records []model.RentalRecord
	Skipped int // rows dropped for a missing address or unparsable required field
}

// ReadCSV streams the listings CSV and maps rows to records. Rows without a
// block address or with unparsable required numerics are skipped and
// counted, not repaired: cleaning is upstream's job. Blank optional cells
// (block_num, latitude, longitude) become nil.
func ReadCSV(ctx context.Context, r io.Reader) (*LoadResult, error) {
	rowCh := make(chan []string, 64)
	headerCh := make(chan []string, 1)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(rowCh)
		defer close(headerCh)
		return streamRows(ctx, r, headerCh, rowCh)
	})

	var res LoadResult
	g.Go(func() error {
		header, ok := <-headerCh
		if !ok {
			return eris.Wrap(ErrEmptyCSV, "dataset: read header")
		}
		cols, err := columnIndex(header)
		if err != nil {
			return err
		}
		for row := range rowCh {
			rec, ok := parseRow(cols, row)
			if !ok {
				res.Skipped++
				continue
			}
			res.Records = append(res.Records, rec)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if res.Skipped > 0 {
		zap.L().Warn("dataset: skipped malformed rows", zap.Int("skipped", res.Skipped))
	}
	return &res, nil
}

// ErrEmptyCSV means the input had no header row.
var ErrEmptyCSV = eris.New("empty csv input")

// streamRows reads CSV rows and sends the header then each data row.
func streamRows(ctx context.Context, r io.Reader, headerCh, rowCh chan<- []string) error {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // allow variable fields

	first := true
	for {
		if ctx.Err() != nil {
			return eris.Wrap(ctx.Err(), "dataset: csv cancelled")
		}

		row, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return eris.Wrap(err, "dataset: csv read row")
		}
		for i, field := range row {
			row[i] = strings.TrimSpace(field)
		}

		if first {
			first = false
			select {
			case headerCh <- row:
			case <-ctx.Done():
				return eris.Wrap(ctx.Err(), "dataset: csv cancelled sending header")
			}
			continue
		}

		select {
		case rowCh <- row:
		case <-ctx.Done():
			return eris.Wrap(ctx.Err(), "dataset: csv cancelled")
		}
	}
}

// columnIndex maps the known column names to their positions.
func columnIndex(header []string) (map[string]int, error) {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(name)] = i
	}
	for _, required := range []string{colBlockAddress, colRent, colSqft, colBedrooms, colBathrooms, colUnitCount} {
		if _, ok := cols[required]; !ok {
			return nil, eris.Errorf("dataset: csv missing column %q", required)
		}
	}
	return cols, nil
}

func parseRow(cols map[string]int, row []string) (model.RentalRecord, bool) {
	field := func(name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	rec := model.RentalRecord{BlockAddress: field(colBlockAddress)}
	if rec.BlockAddress == "" {
		return rec, false
	}

	var err error
	if rec.MonthlyRent, err = strconv.ParseFloat(field(colRent), 64); err != nil {
		return rec, false
	}
	if rec.SquareFootage, err = strconv.ParseFloat(field(colSqft), 64); err != nil {
		return rec, false
	}
	if rec.Bedrooms, err = strconv.ParseFloat(field(colBedrooms), 64); err != nil {
		return rec, false
	}
	if rec.Bathrooms, err = strconv.ParseFloat(field(colBathrooms), 64); err != nil {
		return rec, false
	}
	if rec.UnitCount, err = strconv.Atoi(field(colUnitCount)); err != nil {
		return rec, false
	}

	// Optional fields: blank or unparsable stays nil, the row is still usable.
	if v, err := strconv.Atoi(field(colBlockNum)); err == nil {
		rec.BlockNum = &v
	}
	if v, err := strconv.ParseFloat(field(colLatitude), 64); err == nil {
		rec.Latitude = &v
	}
	if v, err := strconv.ParseFloat(field(colLongitude), 64); err == nil {
		rec.Longitude = &v
	}

	return rec, true
}
