// Package dataset loads and holds the pre-cleaned rental listing table: a
// streaming CSV reader, a SQLite/Postgres store, and the immutable in-memory
// snapshot that requests resolve against.
package dataset

import (
	"github.com/sfdata-tools/rentmap/internal/model"
)

// Snapshot is the read-only record set for the process lifetime. It is built
// once at startup and passed explicitly to the resolver; requests never
// mutate it, so no locking is needed.
type Snapshot struct {
	records []model.RentalRecord
}

// NewSnapshot wraps records in a snapshot. The caller must not modify the
// slice afterwards.
func NewSnapshot(records []model.RentalRecord) *Snapshot {
	return &Snapshot{records: records}
}

// Records returns the underlying record slice. Read-only by convention.
func (s *Snapshot) Records() []model.RentalRecord {
	return s.records
}

// Len returns the number of records.
func (s *Snapshot) Len() int {
	return len(s.records)
}

// Stats summarizes the snapshot for the stats command and startup logs.
type Stats struct {
	Records            int `json:"records"`
	Blocks             int `json:"blocks"`
	MissingCoordinates int `json:"missing_coordinates"`
	MissingBlockNum    int `json:"missing_block_num"`
}

// Stats counts records, distinct block addresses, and rows with missing
// optional fields.
func (s *Snapshot) Stats() Stats {
	blocks := make(map[string]bool, len(s.records))
	st := Stats{Records: len(s.records)}
	for _, rec := range s.records {
		blocks[rec.BlockAddress] = true
		if !rec.HasCoordinates() {
			st.MissingCoordinates++
		}
		if rec.BlockNum == nil {
			st.MissingBlockNum++
		}
	}
	st.Blocks = len(blocks)
	return st
}
