package mapview

import (
	"fmt"

	"github.com/rotisserie/eris"

	"github.com/sfdata-tools/rentmap/internal/model"
	"github.com/sfdata-tools/rentmap/internal/resolve"
)

// Status messages shown next to the map on resolution failure.
const (
	statusInvalidStreet = "Invalid input. Please enter a valid street name."
	statusMissingNumber = "Missing block number. Please include a street number (ex. 100 Larkin St)."
	statusNoData        = "No valid data found. Please check the address format."
)

// Presenter renders summaries and failures. DefaultQuery appears in the
// fallback map title so users see what a working query looks like.
type Presenter struct {
	DefaultQuery string
}

// Present maps the resolve/aggregate outcome to a payload plus status text.
// Exactly two states: success gives a single-marker map and an empty status,
// failure gives the default map and a human-readable message. The fallback
// is a plain branch; it never re-resolves the default query.
func (p Presenter) Present(summary *model.BlockSummary, resolveErr error) (Payload, string) {
	if resolveErr != nil {
		return p.fallback(), statusFor(resolveErr)
	}

	return Payload{
		Title:     "Clustered Data for the Address",
		Style:     mapStyle,
		Zoom:      defaultZoom,
		Latitude:  summary.Latitude,
		Longitude: summary.Longitude,
		Markers: []Marker{{
			Latitude:  summary.Latitude,
			Longitude: summary.Longitude,
			Size:      summary.TotalUnits,
			Color:     summary.AvgMonthlyRent,
			Symbol:    markerSymbol,
			HoverText: hoverText(
				summary.BlockAddress,
				summary.AvgMonthlyRent,
				summary.MedianSquareFootage,
				summary.MedianBedrooms,
				summary.MedianBathrooms,
				summary.TotalUnits,
			),
		}},
	}, ""
}

// fallback is the safe default view: marker-less, centered on the default
// location, titled with the default query.
func (p Presenter) fallback() Payload {
	return Payload{
		Title:     fmt.Sprintf("Default Search: %s", p.DefaultQuery),
		Style:     mapStyle,
		Zoom:      defaultZoom,
		Latitude:  defaultLatitude,
		Longitude: defaultLongitude,
	}
}

// statusFor maps each resolution failure kind to its user-facing message.
func statusFor(err error) string {
	switch {
	case eris.Is(err, resolve.ErrInvalidStreetName):
		return statusInvalidStreet
	case eris.Is(err, resolve.ErrMissingBlockNumber):
		return statusMissingNumber
	default:
		return statusNoData
	}
}
