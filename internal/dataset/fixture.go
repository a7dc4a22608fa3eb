package dataset

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/sfdata-tools/rentmap/internal/model"
)

// fixture is the on-disk shape of a sample dataset file.
type fixture struct {
	Records []model.RentalRecord `yaml:"records"`
}

// LoadFixture reads a YAML sample dataset, used by `import --sample` for
// local development without the full listings export.
func LoadFixture(path string) ([]model.RentalRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "dataset: read fixture %s", path)
	}

	var f fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, eris.Wrap(err, "dataset: parse fixture")
	}
	if len(f.Records) == 0 {
		return nil, eris.Errorf("dataset: fixture %s has no records", path)
	}
	return f.Records, nil
}

// SampleRecords returns a small built-in dataset covering a few Civic Center
// blocks. Enough to exercise lookup and the map end to end.
func SampleRecords() []model.RentalRecord {
	f64 := func(v float64) *float64 { return &v }
	i := func(v int) *int { return &v }

	return []model.RentalRecord{
		{BlockAddress: "100 Block of Larkin St", BlockNum: i(100), MonthlyRent: 2000, SquareFootage: 700, Bedrooms: 1, Bathrooms: 1, UnitCount: 12, Latitude: f64(37.7793), Longitude: f64(-122.4163)},
		{BlockAddress: "100 Block of Larkin St", BlockNum: i(100), MonthlyRent: 2200, SquareFootage: 810, Bedrooms: 2, Bathrooms: 1, UnitCount: 8, Latitude: f64(37.7795), Longitude: f64(-122.4161)},
		{BlockAddress: "200 Block of Larkin St", BlockNum: i(200), MonthlyRent: 2500, SquareFootage: 900, Bedrooms: 2, Bathrooms: 2, UnitCount: 10, Latitude: f64(37.7810), Longitude: f64(-122.4170)},
		{BlockAddress: "700 Block of Market St", BlockNum: i(700), MonthlyRent: 3100, SquareFootage: 950, Bedrooms: 2, Bathrooms: 2, UnitCount: 24, Latitude: f64(37.7870), Longitude: f64(-122.4030)},
		{BlockAddress: "1100 Block of Mission St", BlockNum: i(1100), MonthlyRent: 2700, SquareFootage: 850, Bedrooms: 1, Bathrooms: 1, UnitCount: 16, Latitude: f64(37.7770), Longitude: f64(-122.4130)},
	}
}
