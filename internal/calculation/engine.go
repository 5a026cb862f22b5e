package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/ssgo/internal/domain"
)

// Engine holds the global, non-worker configuration of a computation
// session: the current year and the COLA and AWI sub-engines. One Engine
// is constructed per session and shared read-only by its workers; callers
// must not interleave projection changes with concurrent worker reads.
type Engine struct {
	currentYear int
	cola        *COLAEngine
	awi         *AWIEngine
}

// NewEngine builds a session from historical series and projections. The
// current year is the latest year for which an actual taxable maximum
// exists. Construction is a two-phase pipeline: COLA first (with no AWI to
// replay), then AWI over the settled COLA series.
func NewEngine(maxWageHistory, colaHistory, awiHistory domain.YearSeries, colaProj, wageGrowthProj domain.Projection) (*Engine, error) {
	_, currentYear, ok := maxWageHistory.Bounds()
	if !ok {
		return nil, fmt.Errorf("calculation: empty taxable maximum history")
	}
	if len(colaHistory) == 0 {
		return nil, fmt.Errorf("calculation: empty COLA history")
	}
	if len(awiHistory) == 0 {
		return nil, fmt.Errorf("calculation: empty AWI history")
	}

	e := &Engine{currentYear: currentYear}
	e.cola = newCOLAEngine(e, colaHistory, colaProj)
	e.awi = newAWIEngine(e, awiHistory, maxWageHistory, wageGrowthProj)
	return e, nil
}

// awiEngine exposes the AWI sub-engine to the COLA engine. It is nil
// during phase one of construction, which is what suppresses the AWI
// replay on the very first COLA derivation.
func (e *Engine) awiEngine() *AWIEngine {
	return e.awi
}

// CurrentYear returns the latest year with actual taxable-maximum data.
func (e *Engine) CurrentYear() int {
	return e.currentYear
}

// MaxTaxableWage returns the taxable maximum for a year: actual through
// the current year, projected beyond, zero outside the populated domain.
func (e *Engine) MaxTaxableWage(year int) decimal.Decimal {
	return e.awi.MaxTaxableWage(year)
}

// MaxTaxableWages returns the full taxable-maximum series (read-only).
func (e *Engine) MaxTaxableWages() domain.YearSeries {
	return e.awi.MaxTaxableWages()
}

// AWIValue returns the Average Wage Index for a year, or zero outside the
// populated domain.
func (e *Engine) AWIValue(year int) decimal.Decimal {
	return e.awi.Value(year)
}

// IncomeIndexFactors returns the wage-indexing factor series for a birth
// year. See AWIEngine.IncomeIndexFactors.
func (e *Engine) IncomeIndexFactors(birthYear int) domain.YearSeries {
	return e.awi.IncomeIndexFactors(birthYear)
}

// BaseBenefit computes the bend-point benefit for a birth year and AIME,
// returning the benefit and both bend points.
func (e *Engine) BaseBenefit(birthYear int, aime decimal.Decimal) (benefit, bp1, bp2 decimal.Decimal) {
	return e.awi.BaseBenefit(birthYear, aime)
}

// COLAAdjust applies COLA to a value from baseYear through benefitYear,
// flooring to the nearest dime at each step.
func (e *Engine) COLAAdjust(base decimal.Decimal, baseYear, benefitYear int) decimal.Decimal {
	return e.cola.Adjust(base, baseYear, benefitYear)
}

// ValueInCurrentDollars converts a value between baseYear dollars and
// current-year dollars.
func (e *Engine) ValueInCurrentDollars(base decimal.Decimal, baseYear int) decimal.Decimal {
	return e.cola.ValueInCurrentDollars(base, baseYear)
}

// COLAHistory returns the full COLA series, actuals and projections, as a
// read-only view.
func (e *Engine) COLAHistory() domain.YearSeries {
	return e.cola.History()
}

// SetCOLAProjection replaces the COLA projection in place and re-derives
// the COLA series and, transitively, the AWI and taxable-maximum series.
// Workers constructed against this Engine must be re-queried afterwards;
// their caches are not aware of engine-level changes.
func (e *Engine) SetCOLAProjection(proj domain.Projection) {
	e.cola.SetProjection(proj)
}

// SetWageGrowthProjection replaces the AWI growth projection in place and
// re-derives the AWI and taxable-maximum series.
func (e *Engine) SetWageGrowthProjection(proj domain.Projection) {
	e.awi.SetProjection(proj)
}
