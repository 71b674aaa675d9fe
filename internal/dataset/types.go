package dataset

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// DefaultURL is the public population dataset the dashboard renders.
const DefaultURL = "https://raw.githubusercontent.com/datasets/population/master/data/population.csv"

// WorldName is the aggregate row-set label for global totals.
const WorldName = "World"

// Column headers read from the CSV.
const (
	ColumnCountryName = "Country Name"
	ColumnCountryCode = "Country Code"
	ColumnYear        = "Year"
	ColumnValue       = "Value"
)

// Record is one population figure for one country in one year.
type Record struct {
	CountryName string  `json:"country_name"`
	CountryCode string  `json:"country_code,omitempty"`
	Year        int     `json:"year"`
	Value       float64 `json:"value"`
}

// Snapshot is the immutable, parsed dataset.
// Records keep the order they had in the source file.
type Snapshot struct {
	ID       uuid.UUID
	Source   string
	LoadedAt time.Time

	records   []Record
	byCountry map[string][]int
	catalog   []string
}

// NewSnapshot indexes records into a snapshot. The slice is copied.
func NewSnapshot(source string, records []Record) *Snapshot {
	s := &Snapshot{
		ID:        uuid.New(),
		Source:    source,
		LoadedAt:  time.Now().UTC(),
		records:   slices.Clone(records),
		byCountry: make(map[string][]int),
	}

	for i, r := range s.records {
		if _, seen := s.byCountry[r.CountryName]; !seen {
			s.catalog = append(s.catalog, r.CountryName)
		}
		s.byCountry[r.CountryName] = append(s.byCountry[r.CountryName], i)
	}
	slices.Sort(s.catalog)

	return s
}

// Len returns the number of records.
func (s *Snapshot) Len() int {
	return len(s.records)
}

// Records returns a copy of all records in source order.
func (s *Snapshot) Records() []Record {
	return slices.Clone(s.records)
}

// Country returns the records for one country in source order.
// Unknown names yield an empty, non-nil slice.
func (s *Snapshot) Country(name string) []Record {
	idx := s.byCountry[name]
	out := make([]Record, 0, len(idx))
	for _, i := range idx {
		out = append(out, s.records[i])
	}
	return out
}

// World returns the "World" aggregate rows in source order.
func (s *Snapshot) World() []Record {
	return s.Country(WorldName)
}

// Catalog returns the distinct country names, sorted lexicographically.
func (s *Snapshot) Catalog() []string {
	return slices.Clone(s.catalog)
}

// HasCountry reports whether name appears in the catalog.
func (s *Snapshot) HasCountry(name string) bool {
	_, ok := s.byCountry[name]
	return ok
}
