package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/ssgo/internal/domain"
)

var (
	decimalOne    = decimal.NewFromInt(1)
	decimalTwelve = decimal.NewFromInt(12)
	decimalTen    = decimal.NewFromInt(10)
)

// floorDime rounds a dollar amount down to the nearest ten cents, the
// truncation statute applies after every benefit computation stage.
func floorDime(v decimal.Decimal) decimal.Decimal {
	return v.Mul(decimalTen).Floor().Div(decimalTen)
}

// ResolveProjection expands a projection input into a contiguous series
// covering every year from start through end inclusive. Years missing from
// the input are filled with the most recent earlier resolved value; years
// before the first resolved value take def. A list shorter than the range
// forward-fills its last element; a scalar applies to every year. The
// resolver is pure: malformed or empty inputs degrade to def throughout
// rather than erroring.
func ResolveProjection(start, end int, proj domain.Projection, def decimal.Decimal) domain.YearSeries {
	out := domain.NewYearSeries()

	switch proj.Kind() {
	case domain.ProjectionScalar:
		for year := start; year <= end; year++ {
			out.Set(year, proj.Scalar())
		}
		return out
	case domain.ProjectionValues:
		year := start
		for _, v := range proj.Values() {
			if year > end {
				break
			}
			out.Set(year, v)
			year++
		}
	case domain.ProjectionByYear:
		for year, v := range proj.ByYear() {
			if year >= start && year <= end {
				out.Set(year, v)
			}
		}
	}

	recent := start
	for year := start; year <= end; year++ {
		if out.Has(year) {
			recent = year
			continue
		}
		if v, ok := out.Get(recent); ok {
			out.Set(year, v)
		} else {
			out.Set(year, def)
		}
	}
	return out
}
