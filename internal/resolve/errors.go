package resolve

import "github.com/rotisserie/eris"

// Resolution failures are recoverable: each maps to a user-facing status
// message in the mapview package and never aborts the process.
var (
	// ErrInvalidStreetName means the query parsed to an empty street fragment.
	ErrInvalidStreetName = eris.New("invalid street name")

	// ErrMissingBlockNumber means the query had no leading number, so
	// block-distance disambiguation is impossible.
	ErrMissingBlockNumber = eris.New("missing block number")

	// ErrNoCandidateMatch means no record's address contains the street fragment.
	ErrNoCandidateMatch = eris.New("no candidate match")

	// ErrNoValidCoordinates means the winning block has no rows, or at least
	// one row is missing latitude or longitude.
	ErrNoValidCoordinates = eris.New("no valid coordinates")
)
