package aggregate

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sfdata-tools/rentmap/internal/model"
)

func fptr(v float64) *float64 { return &v }

func row(rent, sqft, beds, baths float64, units int, lat, lon float64) model.RentalRecord {
	return model.RentalRecord{
		BlockAddress:  "100 Block of Larkin St",
		MonthlyRent:   rent,
		SquareFootage: sqft,
		Bedrooms:      beds,
		Bathrooms:     baths,
		UnitCount:     units,
		Latitude:      fptr(lat),
		Longitude:     fptr(lon),
	}
}

func TestSummarize_SingleRow(t *testing.T) {
	block := &model.ResolvedBlock{
		BlockAddress: "100 Block of Larkin St",
		Records:      []model.RentalRecord{row(2000, 700, 1, 1, 12, 37.78, -122.41)},
	}

	s := Summarize(block)
	assert.Equal(t, "100 Block of Larkin St", s.BlockAddress)
	assert.Equal(t, 2000.0, s.AvgMonthlyRent)
	assert.Equal(t, 700.0, s.MedianSquareFootage)
	assert.Equal(t, 1.0, s.MedianBedrooms)
	assert.Equal(t, 1.0, s.MedianBathrooms)
	assert.Equal(t, 12, s.TotalUnits)
	assert.Equal(t, 37.78, s.Latitude)
	assert.Equal(t, -122.41, s.Longitude)
}

func TestSummarize_MeanAndMedian(t *testing.T) {
	block := &model.ResolvedBlock{
		BlockAddress: "100 Block of Larkin St",
		Records: []model.RentalRecord{
			row(1000, 500, 0, 1, 4, 37.70, -122.40),
			row(2000, 700, 1, 1, 6, 37.80, -122.42),
			row(3000, 1200, 3, 2, 10, 37.90, -122.44),
		},
	}

	s := Summarize(block)
	assert.InDelta(t, 2000.0, s.AvgMonthlyRent, 1e-9)
	assert.Equal(t, 700.0, s.MedianSquareFootage) // odd count: middle value
	assert.Equal(t, 1.0, s.MedianBedrooms)
	assert.Equal(t, 1.0, s.MedianBathrooms)
	assert.Equal(t, 20, s.TotalUnits)
	assert.InDelta(t, 37.80, s.Latitude, 1e-9)
	assert.InDelta(t, -122.42, s.Longitude, 1e-9)
}

func TestSummarize_EvenCountMedianAveragesMiddlePair(t *testing.T) {
	block := &model.ResolvedBlock{
		BlockAddress: "100 Block of Larkin St",
		Records: []model.RentalRecord{
			row(1000, 400, 1, 1, 1, 37.78, -122.41),
			row(1000, 600, 1, 1, 1, 37.78, -122.41),
			row(1000, 900, 2, 2, 1, 37.78, -122.41),
			row(1000, 1100, 3, 2, 1, 37.78, -122.41),
		},
	}

	s := Summarize(block)
	assert.Equal(t, 750.0, s.MedianSquareFootage)
	assert.Equal(t, 1.5, s.MedianBedrooms)
	assert.Equal(t, 1.5, s.MedianBathrooms)
}

func TestSummarize_OrderIndependent(t *testing.T) {
	records := []model.RentalRecord{
		row(1800, 550, 1, 1, 3, 37.71, -122.40),
		row(2400, 820, 2, 1, 5, 37.72, -122.41),
		row(2900, 980, 2, 2, 7, 37.73, -122.42),
		row(3500, 1300, 3, 2, 2, 37.74, -122.43),
	}
	want := Summarize(&model.ResolvedBlock{BlockAddress: "b", Records: records})

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 10; i++ {
		shuffled := make([]model.RentalRecord, len(records))
		copy(shuffled, records)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})

		got := Summarize(&model.ResolvedBlock{BlockAddress: "b", Records: shuffled})
		assert.InDelta(t, want.AvgMonthlyRent, got.AvgMonthlyRent, 1e-9)
		assert.Equal(t, want.MedianSquareFootage, got.MedianSquareFootage)
		assert.Equal(t, want.MedianBedrooms, got.MedianBedrooms)
		assert.Equal(t, want.MedianBathrooms, got.MedianBathrooms)
		assert.Equal(t, want.TotalUnits, got.TotalUnits)
		assert.InDelta(t, want.Latitude, got.Latitude, 1e-9)
		assert.InDelta(t, want.Longitude, got.Longitude, 1e-9)
	}
}

func TestMedian_DoesNotModifyInput(t *testing.T) {
	vs := []float64{3, 1, 2}
	_ = median(vs)
	assert.Equal(t, []float64{3, 1, 2}, vs)
}
