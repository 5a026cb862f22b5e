package calculation

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/ssgo/internal/domain"
)

// DefaultPersonalWageGrowth is the growth rate applied to extrapolated
// personal earnings when none is supplied (compound annual average AWI
// growth of the last 20 years; most workers see less than SSA's 3.6%
// projection).
var DefaultPersonalWageGrowth = decimal.NewFromFloat(0.02912)

// StartMaxIncomeAge is the age the "use_max" earnings shorthand starts
// crediting the taxable maximum. Used to reproduce SSA's published
// maximum-earner benefit tables.
const StartMaxIncomeAge = 22

// Earnings maintains one worker's earnings history and projections and
// derives the AIME from them. "Covered earnings" are capped at each
// year's taxable maximum; "total earnings" are uncapped and matter only
// for prorating the retirement year.
type Earnings struct {
	engine          *Engine
	birthYear       int
	benefitBirthday time.Time
	maxIndexedYears int
	currentYear     int
	retirementAge   domain.Age

	totalHistory domain.YearSeries
	ssHistory    domain.YearSeries

	totalFuture domain.YearSeries
	ssFuture    domain.YearSeries

	// history and future combined, before retirement truncation; history
	// wins on overlap
	totalAll domain.YearSeries
	ssAll    domain.YearSeries

	// combined earnings truncated at retirement, with the retirement year
	// prorated by elapsed months
	totalToRetirement domain.YearSeries
	ssToRetirement    domain.YearSeries

	wageGrowth   domain.YearSeries
	indexFactors domain.YearSeries

	aime decimal.Decimal
}

// newEarnings builds the four derived series and the AIME for a worker.
func newEarnings(engine *Engine, spec domain.WorkerSpec, retirementAge domain.Age) *Earnings {
	e := &Earnings{
		engine:          engine,
		birthYear:       spec.BirthDate.Year(),
		benefitBirthday: spec.CalcBenefitBirthday(),
		maxIndexedYears: spec.MaxIndexedYears(),
		currentYear:     engine.CurrentYear(),
		retirementAge:   retirementAge,
	}
	e.indexFactors = engine.IncomeIndexFactors(e.benefitBirthday.Year())

	e.setIncomeHistory(spec.IncomeHistory)
	if spec.FutureEarnings != nil && spec.FutureEarnings.Profile != nil {
		e.setFutureByProfile(*spec.FutureEarnings.Profile)
	} else {
		next := domain.NextEarnings{}
		if spec.FutureEarnings != nil && spec.FutureEarnings.Next != nil {
			next = *spec.FutureEarnings.Next
		}
		e.setFutureByNext(next)
	}
	e.combine()
	e.applyRetirement()
	e.calcAIME()
	return e
}

// AIME returns the average indexed monthly earnings in whole dollars.
// Always valid: it is recomputed on construction and on every mutator.
func (e *Earnings) AIME() decimal.Decimal {
	return e.aime
}

// TotalEarningsInYear returns the worker's total (uncapped) income for a
// year, after retirement truncation. Zero outside the populated domain.
func (e *Earnings) TotalEarningsInYear(year int) decimal.Decimal {
	return e.totalToRetirement.Value(year)
}

// CoveredEarningsInYear returns the taxable-capped earnings for a year,
// after retirement truncation.
func (e *Earnings) CoveredEarningsInYear(year int) decimal.Decimal {
	return e.ssToRetirement.Value(year)
}

// SetRetirementAge re-truncates earnings at a new retirement age and
// recomputes the AIME. Cheaper than rebuilding the whole entity.
func (e *Earnings) SetRetirementAge(age domain.Age) {
	e.retirementAge = age
	e.applyRetirement()
	e.calcAIME()
}

// SetFutureByProfile replaces the projected income with an explicit
// profile and recomputes the AIME.
func (e *Earnings) SetFutureByProfile(profile domain.EarningsProfile) {
	e.setFutureByProfile(profile)
	e.combine()
	e.applyRetirement()
	e.calcAIME()
}

// SetFutureByNext replaces the projected income with a next-year amount
// plus growth extrapolation and recomputes the AIME.
func (e *Earnings) SetFutureByNext(next domain.NextEarnings) {
	e.setFutureByNext(next)
	e.combine()
	e.applyRetirement()
	e.calcAIME()
}

// setIncomeHistory loads the historical earnings. Supplied values above a
// year's taxable maximum are assumed to be total income and capped for
// the covered series. Every year from birth through currentYear-1 gets a
// covered value, zero when no income was reported.
func (e *Earnings) setIncomeHistory(profile domain.EarningsProfile) {
	switch {
	case profile.ByYear != nil:
		e.totalHistory = domain.YearSeries(profile.ByYear).Clone()
	case profile.Values != nil:
		// list is indexed from the actual birth year
		e.totalHistory = domain.NewYearSeries()
		for i, v := range profile.Values {
			e.totalHistory.Set(e.birthYear+i, v)
		}
	case profile.UseMax:
		e.totalHistory = domain.NewYearSeries()
		for year := e.birthYear + StartMaxIncomeAge; year < e.currentYear; year++ {
			e.totalHistory.Set(year, e.engine.MaxTaxableWage(year))
		}
	default:
		e.totalHistory = domain.NewYearSeries()
	}

	e.ssHistory = domain.NewYearSeries()
	for year := e.birthYear; year < e.currentYear; year++ {
		total, ok := e.totalHistory.Get(year)
		if !ok {
			e.ssHistory.Set(year, decimal.Zero)
			continue
		}
		e.ssHistory.Set(year, decimal.Min(total, e.engine.MaxTaxableWage(year)))
	}
}

// setFutureByProfile loads projected income from an explicit profile.
func (e *Earnings) setFutureByProfile(profile domain.EarningsProfile) {
	finalYear := e.currentYear + domain.MaxLifespan
	switch {
	case profile.ByYear != nil:
		e.totalFuture = domain.YearSeries(profile.ByYear).Clone()
	case profile.Values != nil:
		// list is indexed from the current year
		e.totalFuture = domain.NewYearSeries()
		for i, v := range profile.Values {
			e.totalFuture.Set(e.currentYear+i, v)
		}
	case profile.UseMax:
		e.totalFuture = domain.NewYearSeries()
		for year := e.currentYear; year <= finalYear; year++ {
			e.totalFuture.Set(year, e.engine.MaxTaxableWage(year))
		}
	default:
		e.totalFuture = domain.NewYearSeries()
	}

	for year := e.currentYear; year <= finalYear; year++ {
		if !e.totalFuture.Has(year) {
			e.totalFuture.Set(year, decimal.Zero)
		}
	}
	e.capFuture()
}

// setFutureByNext extrapolates projected income from a starting year and
// amount, growing each subsequent year by the personal wage growth rate.
func (e *Earnings) setFutureByNext(next domain.NextEarnings) {
	e.setPersonalWageGrowth(next.Growth)
	e.totalFuture = domain.NewYearSeries()

	nextYear := next.Year
	if nextYear == 0 {
		nextYear = e.currentYear
	}
	finalYear := next.FinalYear
	if finalYear == 0 {
		finalYear = e.benefitBirthday.Year() + domain.MaxLifespan
	}

	var income decimal.Decimal
	switch {
	case next.Amount.Extrapolate:
		if prev, ok := e.totalHistory.Get(nextYear - 1); ok {
			income = prev.Mul(decimalOne.Add(e.wageGrowth.Value(nextYear)))
		}
	case next.Amount.UseMax:
		income = e.engine.MaxTaxableWage(nextYear)
	case next.Amount.Value != nil:
		income = *next.Amount.Value
	}
	e.totalFuture.Set(nextYear, income)

	for year := nextYear + 1; year <= finalYear; year++ {
		if next.Amount.UseMax {
			income = e.engine.MaxTaxableWage(year)
		} else {
			income = e.totalFuture.Value(year - 1).Mul(decimalOne.Add(e.wageGrowth.Value(year)))
		}
		e.totalFuture.Set(year, income)
	}

	for year := e.currentYear; year <= finalYear; year++ {
		if !e.totalFuture.Has(year) {
			e.totalFuture.Set(year, decimal.Zero)
		}
	}
	e.capFuture()
}

// capFuture derives covered future earnings by capping totals at each
// year's taxable maximum.
func (e *Earnings) capFuture() {
	e.ssFuture = domain.NewYearSeries()
	for year, total := range e.totalFuture {
		e.ssFuture.Set(year, decimal.Min(total, e.engine.MaxTaxableWage(year)))
	}
}

// setPersonalWageGrowth resolves the personal wage growth input over the
// worker's lifespan. A scalar applies to every year; a list is indexed
// from the current year; unspecified years are zero growth. An empty
// input means DefaultPersonalWageGrowth throughout.
func (e *Earnings) setPersonalWageGrowth(proj domain.Projection) {
	endYear := e.birthYear + domain.MaxLifespan
	e.wageGrowth = domain.NewYearSeries()
	switch proj.Kind() {
	case domain.ProjectionEmpty:
		for year := e.birthYear; year <= endYear; year++ {
			e.wageGrowth.Set(year, DefaultPersonalWageGrowth)
		}
		return
	case domain.ProjectionScalar:
		for year := e.birthYear; year <= endYear; year++ {
			e.wageGrowth.Set(year, proj.Scalar())
		}
		return
	case domain.ProjectionValues:
		for i, v := range proj.Values() {
			e.wageGrowth.Set(e.currentYear+i, v)
		}
	case domain.ProjectionByYear:
		e.wageGrowth = proj.ByYear().Clone()
	}
	for year := e.birthYear; year <= endYear; year++ {
		if !e.wageGrowth.Has(year) {
			e.wageGrowth.Set(year, decimal.Zero)
		}
	}
}

// combine merges history and future into the consolidated series; history
// takes precedence on any overlapping year. Total history may be
// unavailable (only covered earnings are on record at SSA), so the
// covered history stands in for totals on historical years; the
// difference only matters in a future retirement year.
func (e *Earnings) combine() {
	e.ssAll = domain.NewYearSeries()
	e.ssAll.Merge(e.ssFuture)
	e.ssAll.Merge(e.ssHistory)

	e.totalAll = domain.NewYearSeries()
	e.totalAll.Merge(e.totalFuture)
	e.totalAll.Merge(e.ssHistory)
}

// applyRetirement truncates the combined series at the retirement date:
// the retirement year is prorated by elapsed months (income stops the
// month before the retirement date) and every later year is zero.
func (e *Earnings) applyRetirement() {
	e.totalToRetirement = e.totalAll.Clone()
	e.ssToRetirement = e.ssAll.Clone()

	retireStart := e.retirementAge.DateAt(e.benefitBirthday)
	retireYear := retireStart.Year()
	retireMonth := int(retireStart.Month())
	finalYear := e.birthYear + domain.MaxLifespan

	for year := retireYear; year <= finalYear; year++ {
		if year == retireYear && e.totalAll.Has(year) {
			partial := e.totalAll.Value(year).
				Mul(decimal.NewFromInt(int64(retireMonth - 1))).
				Div(decimalTwelve).Floor()
			e.totalToRetirement.Set(year, partial)
			e.ssToRetirement.Set(year, decimal.Min(e.ssToRetirement.Value(year), partial))
			continue
		}
		e.totalToRetirement.Set(year, decimal.Zero)
		e.ssToRetirement.Set(year, decimal.Zero)
	}
}

// calcAIME indexes each year's covered, retirement-truncated earnings by
// the wage-indexing factor, sums the top N years and divides by N*12,
// floored to whole dollars. The indexed list is regenerated in full each
// time: a worker who keeps earning after benefits start can still push
// out a lower year and raise the AIME.
func (e *Earnings) calcAIME() {
	indexed := make([]decimal.Decimal, 0, len(e.ssToRetirement))
	for year, income := range e.ssToRetirement {
		factor, ok := e.indexFactors.Get(year)
		if !ok {
			indexed = append(indexed, decimal.Zero)
			continue
		}
		indexed = append(indexed, income.Mul(factor))
	}
	sort.Slice(indexed, func(i, j int) bool {
		return indexed[i].GreaterThan(indexed[j])
	})

	n := e.maxIndexedYears
	if len(indexed) > n {
		indexed = indexed[:n]
	}
	sum := decimal.Zero
	for _, v := range indexed {
		sum = sum.Add(v)
	}
	e.aime = sum.Div(decimal.NewFromInt(int64(n))).Div(decimalTwelve).Floor()
}
