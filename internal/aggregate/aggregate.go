// Package aggregate reduces a resolved block's rows to one summary row.
package aggregate

import (
	"sort"

	"github.com/sfdata-tools/rentmap/internal/model"
)

// Summarize computes the block summary: mean rent and coordinates, median
// square footage and bedroom/bathroom counts, summed units. The resolver
// guarantees a non-empty block with coordinates on every row, so the
// reductions never divide by zero. Order-independent: medians are computed
// on sorted copies.
func Summarize(block *model.ResolvedBlock) model.BlockSummary {
	n := float64(len(block.Records))

	var (
		rentSum, latSum, lonSum float64
		sqft, beds, baths       []float64
		units                   int
	)
	for _, rec := range block.Records {
		rentSum += rec.MonthlyRent
		latSum += *rec.Latitude
		lonSum += *rec.Longitude
		sqft = append(sqft, rec.SquareFootage)
		beds = append(beds, rec.Bedrooms)
		baths = append(baths, rec.Bathrooms)
		units += rec.UnitCount
	}

	return model.BlockSummary{
		BlockAddress:        block.BlockAddress,
		AvgMonthlyRent:      rentSum / n,
		MedianSquareFootage: median(sqft),
		MedianBedrooms:      median(beds),
		MedianBathrooms:     median(baths),
		TotalUnits:          units,
		Latitude:            latSum / n,
		Longitude:           lonSum / n,
	}
}

// median returns the middle value of vs, averaging the two middle values for
// an even count. vs must be non-empty; it is not modified.
func median(vs []float64) float64 {
	sorted := make([]float64, len(vs))
	copy(sorted, vs)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}
