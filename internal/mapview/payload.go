// Package mapview converts block summaries and resolution failures into map
// visualization payloads for the frontend map library.
package mapview

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Civic Center, the default map location when resolution fails.
const (
	defaultLatitude  = 37.7793
	defaultLongitude = -122.4163
)

const (
	defaultZoom  = 15
	mapStyle     = "streets"
	markerSymbol = "lodging"
)

// Marker is a single map marker sized by unit count and colored by rent.
type Marker struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Size      int     `json:"size"`
	Color     float64 `json:"color"`
	Symbol    string  `json:"symbol"`
	HoverText string  `json:"hover_text"`
}

// Payload is the map state handed to the visualization layer. A failed
// resolution produces a marker-less payload centered on the default location.
type Payload struct {
	Title     string   `json:"title"`
	Style     string   `json:"style"`
	Zoom      int      `json:"zoom"`
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	Markers   []Marker `json:"markers"`
}

var currencyPrinter = message.NewPrinter(language.AmericanEnglish)

// hoverText formats the five aggregated metrics for the marker tooltip,
// matching the map's hover template: currency-prefixed rent and square
// footage to two decimals, bedroom/bathroom counts as given, units whole.
func hoverText(address string, rent, sqft, beds, baths float64, units int) string {
	return fmt.Sprintf("%s\nTotal Rental Units: %d\nAverage Monthly Rent: %s\nAverage Square Footage: %.2f\nAverage Bedroom Count: %v\nAverage Bathroom Count: %v",
		address,
		units,
		currencyPrinter.Sprintf("$%.2f", rent),
		sqft,
		beds,
		baths,
	)
}
