package domain

import (
	"sort"

	"github.com/shopspring/decimal"
)

// YearSeries is a year-indexed series of decimal values. It backs every
// time series in the engine: COLA rates, AWI values, taxable maximums,
// earnings, indexed earnings and cached benefits. Within its populated
// domain every year has a value; lookups outside the domain return the
// zero sentinel so callers can range-check against Bounds.
type YearSeries map[int]decimal.Decimal

// NewYearSeries returns an empty series.
func NewYearSeries() YearSeries {
	return make(YearSeries)
}

// Get returns the value for a year and whether the year is populated.
func (s YearSeries) Get(year int) (decimal.Decimal, bool) {
	v, ok := s[year]
	return v, ok
}

// Value returns the value for a year, or decimal zero if the year is not
// populated. Callers that must distinguish "no data" from a legitimate
// zero should use Get.
func (s YearSeries) Value(year int) decimal.Decimal {
	return s[year]
}

// Set stores a value for a year.
func (s YearSeries) Set(year int, v decimal.Decimal) {
	s[year] = v
}

// Has reports whether the year is populated.
func (s YearSeries) Has(year int) bool {
	_, ok := s[year]
	return ok
}

// Years returns the populated years in ascending order.
func (s YearSeries) Years() []int {
	years := make([]int, 0, len(s))
	for y := range s {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

// Bounds returns the first and last populated years. The third return is
// false for an empty series.
func (s YearSeries) Bounds() (first, last int, ok bool) {
	if len(s) == 0 {
		return 0, 0, false
	}
	years := s.Years()
	return years[0], years[len(years)-1], true
}

// Clone returns a copy of the series.
func (s YearSeries) Clone() YearSeries {
	out := make(YearSeries, len(s))
	for y, v := range s {
		out[y] = v
	}
	return out
}

// Merge copies every entry of other into s, overwriting on conflict.
func (s YearSeries) Merge(other YearSeries) {
	for y, v := range other {
		s[y] = v
	}
}
