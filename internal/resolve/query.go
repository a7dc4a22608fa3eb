package resolve

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
)

// queryRe splits a query into an optional leading run of digits and the
// remainder as the street fragment ("120 Larkin St" -> 120, "Larkin St").
// The remainder is .* rather than .+ so a digits-only query like "100"
// yields an empty street fragment instead of backtracking into the number.
var queryRe = regexp.MustCompile(`^(\d+)?\s*(.*)$`)

// Query is a parsed search query.
type Query struct {
	Number *int   // leading block number, nil when absent
	Street string // trimmed street fragment, never empty
}

// ParseQuery splits raw input into an optional block number and a street
// fragment. The raw string must already be trimmed and non-empty.
func ParseQuery(raw string) (Query, error) {
	m := queryRe.FindStringSubmatch(raw)
	if m == nil {
		return Query{}, eris.Wrapf(ErrInvalidStreetName, "resolve: parse %q", raw)
	}

	street := strings.TrimSpace(m[2])
	if street == "" {
		return Query{}, eris.Wrapf(ErrInvalidStreetName, "resolve: parse %q", raw)
	}

	q := Query{Street: street}
	if m[1] != "" {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return Query{}, eris.Wrapf(err, "resolve: parse block number %q", m[1])
		}
		q.Number = &n
	}
	return q, nil
}

// HundredBlock floors n to its hundred-block (standard US block addressing:
// 150 and 199 both belong to the 100 block).
func HundredBlock(n int) int {
	return n / 100 * 100
}
