// Package model defines the rental listing records and derived block
// summaries shared across the resolver, aggregator, and presentation layers.
package model

import (
	"regexp"
	"strconv"
)

// RentalRecord is one listing row in the pre-cleaned dataset. One record can
// represent multiple physical units (UnitCount). BlockNum and the coordinate
// pair are optional in the source data, hence pointers.
type RentalRecord struct {
	BlockAddress  string   `json:"block_address" yaml:"block_address"`
	BlockNum      *int     `json:"block_num,omitempty" yaml:"block_num,omitempty"`
	MonthlyRent   float64  `json:"monthly_rent" yaml:"monthly_rent"`
	SquareFootage float64  `json:"square_footage" yaml:"square_footage"`
	Bedrooms      float64  `json:"bedrooms" yaml:"bedrooms"`
	Bathrooms     float64  `json:"bathrooms" yaml:"bathrooms"`
	UnitCount     int      `json:"unit_count" yaml:"unit_count"`
	Latitude      *float64 `json:"latitude,omitempty" yaml:"latitude,omitempty"`
	Longitude     *float64 `json:"longitude,omitempty" yaml:"longitude,omitempty"`
}

var leadingNumberRe = regexp.MustCompile(`(\d+)`)

// LeadingNumber extracts the first integer embedded in the block address
// ("100 Block of Larkin St" -> 100). Returns false when the address carries
// no digits.
func (r RentalRecord) LeadingNumber() (int, bool) {
	m := leadingNumberRe.FindString(r.BlockAddress)
	if m == "" {
		return 0, false
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return n, true
}

// HasCoordinates reports whether both latitude and longitude are present.
func (r RentalRecord) HasCoordinates() bool {
	return r.Latitude != nil && r.Longitude != nil
}

// ResolvedBlock is the set of records sharing the single block address chosen
// by the resolver for one query. Ephemeral: scoped to one request cycle.
type ResolvedBlock struct {
	BlockAddress string         `json:"block_address"`
	Records      []RentalRecord `json:"records"`
}

// BlockSummary holds the aggregated statistics for one resolved block.
// Computed fresh on every query, never persisted.
type BlockSummary struct {
	BlockAddress        string  `json:"block_address"`
	AvgMonthlyRent      float64 `json:"avg_monthly_rent"`
	MedianSquareFootage float64 `json:"median_square_footage"`
	MedianBedrooms      float64 `json:"median_bedrooms"`
	MedianBathrooms     float64 `json:"median_bathrooms"`
	TotalUnits          int     `json:"total_units"`
	Latitude            float64 `json:"latitude"`
	Longitude           float64 `json:"longitude"`
}
