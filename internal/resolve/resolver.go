// Package resolve turns free-text address queries into the single
// best-matching block of rental records: substring containment, then fuzzy
// narrowing, then numeric block-distance scoring.
package resolve

import (
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sfdata-tools/rentmap/internal/model"
)

// Resolver matches queries against a read-only record set. Resolution is a
// pure function of (query, records): no retries, no partial results.
type Resolver struct {
	DefaultQuery        string
	SimilarityThreshold float64
}

// New creates a Resolver with the given fallback query and fuzzy threshold.
// A zero threshold falls back to DefaultSimilarityThreshold.
func New(defaultQuery string, threshold float64) *Resolver {
	if threshold == 0 {
		threshold = DefaultSimilarityThreshold
	}
	return &Resolver{DefaultQuery: defaultQuery, SimilarityThreshold: threshold}
}

// Resolve finds the block whose rounded number is numerically closest to the
// query among addresses containing the street fragment. Empty or
// whitespace-only input is replaced by the configured default query.
func (r *Resolver) Resolve(records []model.RentalRecord, query string) (*model.ResolvedBlock, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		query = r.DefaultQuery
	}

	q, err := ParseQuery(query)
	if err != nil {
		return nil, err
	}

	candidates := containing(records, q.Street)
	if len(candidates) == 0 {
		return nil, eris.Wrapf(ErrNoCandidateMatch, "resolve: street %q", q.Street)
	}

	// Fuzzy pass: narrow to the single closest address string when it is
	// similar enough, otherwise keep the whole containment set.
	if best, score, ok := BestMatch(q.Street, distinctAddresses(candidates)); ok && score >= r.SimilarityThreshold {
		zap.L().Debug("resolve: fuzzy narrowed",
			zap.String("street", q.Street),
			zap.String("address", best),
			zap.Float64("score", score),
		)
		candidates = withAddress(candidates, best)
	}

	if q.Number == nil {
		return nil, eris.Wrapf(ErrMissingBlockNumber, "resolve: query %q", query)
	}
	target := HundredBlock(*q.Number)

	winner, found := closestAddress(candidates, target)
	if !found {
		// Every candidate lacked an extractable block number.
		return nil, eris.Wrapf(ErrNoValidCoordinates, "resolve: street %q", q.Street)
	}

	block := &model.ResolvedBlock{
		BlockAddress: winner,
		Records:      withAddress(candidates, winner),
	}
	for _, rec := range block.Records {
		if !rec.HasCoordinates() {
			return nil, eris.Wrapf(ErrNoValidCoordinates, "resolve: block %q", winner)
		}
	}
	return block, nil
}

// containing filters records whose address contains street as a
// case-insensitive substring. Deliberately not tokenized: "Larkin" matches
// any address with that substring, a forgiving approximate filter.
func containing(records []model.RentalRecord, street string) []model.RentalRecord {
	needle := strings.ToLower(street)
	var out []model.RentalRecord
	for _, rec := range records {
		if strings.Contains(strings.ToLower(rec.BlockAddress), needle) {
			out = append(out, rec)
		}
	}
	return out
}

// distinctAddresses returns the unique address strings in first-encountered order.
func distinctAddresses(records []model.RentalRecord) []string {
	seen := make(map[string]bool, len(records))
	var out []string
	for _, rec := range records {
		if !seen[rec.BlockAddress] {
			seen[rec.BlockAddress] = true
			out = append(out, rec.BlockAddress)
		}
	}
	return out
}

// withAddress returns the records matching one exact address string.
func withAddress(records []model.RentalRecord, address string) []model.RentalRecord {
	var out []model.RentalRecord
	for _, rec := range records {
		if rec.BlockAddress == address {
			out = append(out, rec)
		}
	}
	return out
}

// closestAddress picks the address whose hundred-block is nearest to target.
// Records without an extractable leading number are unusable and skipped.
// Ties keep the first-encountered address.
func closestAddress(records []model.RentalRecord, target int) (string, bool) {
	var (
		winner   string
		bestDist int
		found    bool
	)
	for _, rec := range records {
		n, ok := rec.LeadingNumber()
		if !ok {
			continue
		}
		dist := HundredBlock(n) - target
		if dist < 0 {
			dist = -dist
		}
		if !found || dist < bestDist {
			winner, bestDist, found = rec.BlockAddress, dist, true
		}
	}
	return winner, found
}
