package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/ssgo/internal/domain"
)

// DefaultWageGrowthRate is the projected AWI growth used when no
// projection covers a year (compound annual average of the last 20 years).
var DefaultWageGrowthRate = decimal.NewFromFloat(0.036)

const (
	// AWIMaxWageOffset is the number of years the taxable maximum lags
	// the AWI series: the maximum for year Y is derived from AWI[Y-2].
	AWIMaxWageOffset = 2

	// EligibilityAge is the age whose AWI anchors wage indexing and bend
	// points: earnings are indexed to the AWI of the year the worker
	// turns 60.
	EligibilityAge = domain.BenefitAge - AWIMaxWageOffset
)

var (
	maxWageNumerator   = decimal.NewFromInt(60600)
	maxWageDenominator = decimal.NewFromFloat(22935.42)
	maxWageStep        = decimal.NewFromInt(300)

	bendPoint1Numerator = decimal.NewFromInt(180)
	bendPoint2Numerator = decimal.NewFromInt(1085)
	bendDenominator     = decimal.NewFromFloat(9779.44)

	rate90 = decimal.NewFromFloat(0.90)
	rate32 = decimal.NewFromFloat(0.32)
	rate15 = decimal.NewFromFloat(0.15)
)

// maxWageFormula returns the statutory taxable maximum implied by an AWI
// value, rounded to the nearest $300.
func maxWageFormula(awi decimal.Decimal) decimal.Decimal {
	return awi.Mul(maxWageNumerator).Div(maxWageDenominator).Div(maxWageStep).Round(0).Mul(maxWageStep)
}

func bendPoint1Formula(awi decimal.Decimal) decimal.Decimal {
	return awi.Mul(bendPoint1Numerator).Div(bendDenominator).Round(0)
}

func bendPoint2Formula(awi decimal.Decimal) decimal.Decimal {
	return awi.Mul(bendPoint2Numerator).Div(bendDenominator).Round(0)
}

// AWIEngine owns the Average Wage Index series and the taxable-maximum
// series derived from it. It must be constructed after the COLA engine:
// the maximum-wage freeze rule reads the COLA published one year earlier.
type AWIEngine struct {
	engine      *Engine
	currentYear int
	proj        domain.Projection
	awi         domain.YearSeries
	maxWage     domain.YearSeries
}

func newAWIEngine(engine *Engine, awiHistory, maxWageHistory domain.YearSeries, proj domain.Projection) *AWIEngine {
	a := &AWIEngine{
		engine:      engine,
		currentYear: engine.currentYear,
		awi:         awiHistory.Clone(),
		maxWage:     maxWageHistory.Clone(),
	}
	a.SetProjection(proj)
	return a
}

// SetProjection replaces the wage growth projection and re-derives the
// projected AWI and taxable-maximum series.
func (a *AWIEngine) SetProjection(proj domain.Projection) {
	a.proj = proj
	a.rederive()
}

// rederive recomputes the projected AWI chain and, for each projected
// year, the taxable maximum two years out. It runs on every wage growth
// projection change and again whenever the COLA projection changes, since
// the freeze rule below depends on the published COLA.
func (a *AWIEngine) rederive() {
	growth := ResolveProjection(
		a.currentYear+1-AWIMaxWageOffset,
		a.currentYear+domain.MaxLifespan,
		a.proj, DefaultWageGrowthRate)

	for _, year := range growth.Years() {
		prev := a.awi.Value(year - 1)
		a.awi.Set(year, prev.Mul(decimalOne.Add(growth.Value(year))).Round(2))
		mwYear := year + AWIMaxWageOffset
		a.maxWage.Set(mwYear, a.calcMaxWage(mwYear))
	}
}

// calcMaxWage applies the statutory maximum-wage formula for a year, with
// two freeze rules: the maximum never increases in a year whose prior-year
// COLA was zero, and it never decreases year over year. Must run after the
// COLA series is settled and after the prior year's maximum is known.
func (a *AWIEngine) calcMaxWage(mwYear int) decimal.Decimal {
	awiValue, ok := a.awi.Get(mwYear - AWIMaxWageOffset)
	if !ok {
		return decimal.Zero
	}
	maxWage := maxWageFormula(awiValue)

	colaValue, hasCOLA := a.engine.COLAHistory().Get(mwYear - COLAMaxWageOffset)
	prev, hasPrev := a.maxWage.Get(mwYear - 1)
	if hasCOLA && hasPrev && (colaValue.IsZero() || maxWage.LessThan(prev)) {
		return prev
	}
	return maxWage
}

// MaxTaxableWage returns the taxable maximum for a year: an actual through
// the current year, a projection beyond it, and zero outside the populated
// domain.
func (a *AWIEngine) MaxTaxableWage(year int) decimal.Decimal {
	return a.maxWage.Value(year)
}

// MaxTaxableWages returns the full taxable-maximum series as a read-only
// view.
func (a *AWIEngine) MaxTaxableWages() domain.YearSeries {
	return a.maxWage
}

// Value returns the AWI for a year, or zero outside the populated domain.
func (a *AWIEngine) Value(year int) decimal.Decimal {
	return a.awi.Value(year)
}

// bendPoints returns the two AIME bend points for a claimant, anchored to
// the AWI of the year the worker turns 60.
func (a *AWIEngine) bendPoints(birthYear int) (decimal.Decimal, decimal.Decimal) {
	awiValue := a.awi.Value(birthYear + EligibilityAge)
	return bendPoint1Formula(awiValue), bendPoint2Formula(awiValue)
}

// IncomeIndexFactors returns the wage-indexing factor for every year of a
// worker's statutory lifespan. Earnings before 1951 are not indexed at
// all (factor zero); earnings at or after age 60 are taken at face value
// (factor one); in between, earnings are scaled to the age-60 AWI. COLA
// plays no part here: wage inflation and cost-of-living inflation are
// deliberately decoupled.
func (a *AWIEngine) IncomeIndexFactors(birthYear int) domain.YearSeries {
	anchor, okAnchor := a.awi.Get(birthYear + EligibilityAge)
	factors := domain.NewYearSeries()
	for year := birthYear; year < birthYear+domain.MaxLifespan; year++ {
		switch {
		case year < 1951:
			factors.Set(year, decimal.Zero)
		case year-birthYear < EligibilityAge:
			v, ok := a.awi.Get(year)
			if okAnchor && ok && !v.IsZero() {
				factors.Set(year, anchor.Div(v))
			} else {
				factors.Set(year, decimal.Zero)
			}
		default:
			factors.Set(year, decimalOne)
		}
	}
	return factors
}

// BaseBenefit computes the bend-point benefit for an AIME: 90% of AIME up
// to the first bend point, 32% of the slice up to the second, 15% beyond,
// floored to the nearest dime. The result is expressed in the dollars of
// the worker's age-62 year; COLA and the claiming multiplier apply later.
func (a *AWIEngine) BaseBenefit(birthYear int, aime decimal.Decimal) (benefit, bp1, bp2 decimal.Decimal) {
	bp1, bp2 = a.bendPoints(birthYear)

	switch {
	case aime.LessThan(bp1):
		benefit = aime.Mul(rate90)
	case aime.LessThan(bp2):
		benefit = bp1.Mul(rate90).
			Add(aime.Sub(bp1).Mul(rate32))
	default:
		benefit = bp1.Mul(rate90).
			Add(bp2.Sub(bp1).Mul(rate32)).
			Add(aime.Sub(bp2).Mul(rate15))
	}
	return floorDime(benefit), bp1, bp2
}
