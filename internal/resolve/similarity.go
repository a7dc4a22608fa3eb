package resolve

import (
	"strings"

	"github.com/agext/levenshtein"
)

// DefaultSimilarityThreshold is the minimum normalized similarity score at
// which the fuzzy pass narrows the candidate set to a single address.
const DefaultSimilarityThreshold = 0.7

var similarityParams = levenshtein.NewParams()

// Similarity returns a normalized Levenshtein similarity in [0,1] between
// the street fragment and a candidate address. Case-insensitive.
func Similarity(street, address string) float64 {
	return levenshtein.Similarity(strings.ToLower(street), strings.ToLower(address), similarityParams)
}

// BestMatch returns the candidate with the highest similarity to street and
// its score. Ties keep the earliest candidate. Returns ok=false for an empty
// candidate list.
func BestMatch(street string, candidates []string) (best string, score float64, ok bool) {
	for _, c := range candidates {
		s := Similarity(street, c)
		if !ok || s > score {
			best, score, ok = c, s, true
		}
	}
	return best, score, ok
}
