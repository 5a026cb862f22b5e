package calculation

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/ssgo/internal/domain"
)

// delayedCreditByBirthYear is the per-year delayed retirement credit,
// phased in by birth cohort. Years outside the table clamp to its edges.
var delayedCreditByBirthYear = map[int]decimal.Decimal{
	1924: decimal.NewFromFloat(0.030),
	1925: decimal.NewFromFloat(0.035),
	1926: decimal.NewFromFloat(0.035),
	1927: decimal.NewFromFloat(0.040),
	1928: decimal.NewFromFloat(0.040),
	1929: decimal.NewFromFloat(0.045),
	1930: decimal.NewFromFloat(0.045),
	1931: decimal.NewFromFloat(0.050),
	1932: decimal.NewFromFloat(0.050),
	1933: decimal.NewFromFloat(0.055),
	1934: decimal.NewFromFloat(0.055),
	1935: decimal.NewFromFloat(0.060),
	1936: decimal.NewFromFloat(0.060),
	1937: decimal.NewFromFloat(0.065),
	1938: decimal.NewFromFloat(0.065),
	1939: decimal.NewFromFloat(0.070),
	1940: decimal.NewFromFloat(0.070),
	1941: decimal.NewFromFloat(0.075),
	1942: decimal.NewFromFloat(0.075),
	1943: decimal.NewFromFloat(0.080),
}

const (
	delayedCreditFirstYear = 1924
	delayedCreditLastYear  = 1943
)

var (
	ratePoint8       = decimal.NewFromFloat(0.8)
	ratePoint2       = decimal.NewFromFloat(0.2)
	ratePoint05      = decimal.NewFromFloat(0.05)
	decimalThree     = decimal.NewFromInt(3)
	decimalThirtySix = decimal.NewFromInt(36)
)

// Worker computes and caches benefit figures for one individual against a
// shared Engine. Workers are independent of each other; the Engine must
// not be mutated while its workers are being read.
type Worker struct {
	engine *Engine
	spec   domain.WorkerSpec

	calcBenefitBirthday time.Time
	collectionStartAge  domain.Age
	benefitMultiplier   decimal.Decimal
	earnings            *Earnings

	baseBenefit decimal.Decimal
	bendPoint1  decimal.Decimal
	bendPoint2  decimal.Decimal

	// benefitCOLA is the COLA-adjusted base benefit by year, anchored at
	// the age-62 year and extended monotonically; benefit is the final
	// multiplier-applied monthly amount by year. Both are cleared on any
	// parameter change.
	benefitCOLA domain.YearSeries
	benefit     domain.YearSeries
}

// NewWorker builds a worker against a shared engine. Collection start age
// and retirement age default to the full retirement age when the spec
// leaves them unset.
func NewWorker(engine *Engine, spec domain.WorkerSpec) (*Worker, error) {
	if spec.BirthDate.IsZero() {
		return nil, fmt.Errorf("calculation: worker %q has no birth date", spec.Name)
	}

	fra := spec.FullRetirementAge()
	collection := fra
	if spec.CollectionStartAge != nil {
		collection = *spec.CollectionStartAge
	}
	retirement := fra
	if spec.RetirementAge != nil {
		retirement = *spec.RetirementAge
	}

	w := &Worker{
		engine:              engine,
		spec:                spec,
		calcBenefitBirthday: spec.CalcBenefitBirthday(),
		collectionStartAge:  collection,
		benefitCOLA:         domain.NewYearSeries(),
		benefit:             domain.NewYearSeries(),
	}
	w.benefitMultiplier = w.BenefitMultiplier(collection)
	w.earnings = newEarnings(engine, spec, retirement)
	w.recalcBaseBenefit()
	return w, nil
}

// Name returns the worker's name.
func (w *Worker) Name() string { return w.spec.Name }

// FullRetirementAge returns the worker's FRA.
func (w *Worker) FullRetirementAge() domain.Age { return w.spec.FullRetirementAge() }

// CollectionStartAge returns the age benefits are currently set to start.
func (w *Worker) CollectionStartAge() domain.Age { return w.collectionStartAge }

// AIME returns the worker's average indexed monthly earnings.
func (w *Worker) AIME() decimal.Decimal { return w.earnings.AIME() }

// Earnings returns the worker's earnings entity.
func (w *Worker) Earnings() *Earnings { return w.earnings }

// BaseBenefit returns the bend-point benefit and the two bend points it
// was computed from.
func (w *Worker) BaseBenefit() (benefit, bp1, bp2 decimal.Decimal) {
	return w.baseBenefit, w.bendPoint1, w.bendPoint2
}

// BenefitStartDate returns the first day of the first month of benefit
// collection for the current collection start age.
func (w *Worker) BenefitStartDate() time.Time {
	return w.collectionStartAge.DateAt(w.calcBenefitBirthday)
}

func (w *Worker) recalcBaseBenefit() {
	w.baseBenefit, w.bendPoint1, w.bendPoint2 = w.engine.BaseBenefit(
		w.calcBenefitBirthday.Year(), w.earnings.AIME())
}

func (w *Worker) clearBenefitCaches() {
	w.benefitCOLA = domain.NewYearSeries()
	w.benefit = domain.NewYearSeries()
}

// SetRetirementAge changes when the worker stops earning, invalidates the
// benefit caches and recomputes the base benefit.
func (w *Worker) SetRetirementAge(age domain.Age) {
	w.clearBenefitCaches()
	w.earnings.SetRetirementAge(age)
	w.recalcBaseBenefit()
}

// SetCollectionStartAge changes when benefits begin, invalidates the
// benefit caches and recomputes the claiming multiplier and base benefit.
func (w *Worker) SetCollectionStartAge(age domain.Age) {
	w.clearBenefitCaches()
	w.collectionStartAge = age
	w.benefitMultiplier = w.BenefitMultiplier(age)
	w.recalcBaseBenefit()
}

// SetFutureEarningsProfile replaces the projected income profile,
// invalidates the benefit caches and recomputes the base benefit.
func (w *Worker) SetFutureEarningsProfile(profile domain.EarningsProfile) {
	w.clearBenefitCaches()
	w.earnings.SetFutureByProfile(profile)
	w.recalcBaseBenefit()
}

// SetFutureEarningsNext replaces the projected income extrapolation,
// invalidates the benefit caches and recomputes the base benefit.
func (w *Worker) SetFutureEarningsNext(next domain.NextEarnings) {
	w.clearBenefitCaches()
	w.earnings.SetFutureByNext(next)
	w.recalcBaseBenefit()
}

// BenefitMultiplier returns the claiming-age multiplier for this worker.
// Ages at or beyond (70,0) clamp to (70,0). Claiming below (62,0) is
// ineligible. Claiming at exactly (62,0) is only possible for workers
// whose calculation birthday falls on the 1st of a month (an actual
// birthday on the 2nd); everyone else must wait until (62,1), because
// eligibility requires being 62 for every day of the month.
func (w *Worker) BenefitMultiplier(startAge domain.Age) decimal.Decimal {
	seventy := domain.Age{Years: 70}
	if startAge.AtLeast(seventy) {
		startAge = seventy
	}

	eligible := domain.Age{Years: domain.BenefitAge}
	if startAge.Cmp(eligible) < 0 {
		return decimal.Zero
	}
	if startAge.Cmp(eligible) == 0 && w.calcBenefitBirthday.Day() != 1 {
		return decimal.Zero
	}

	birthYear := w.calcBenefitBirthday.Year()
	credit, ok := delayedCreditByBirthYear[birthYear]
	if !ok {
		if birthYear < delayedCreditFirstYear {
			credit = delayedCreditByBirthYear[delayedCreditFirstYear]
		} else {
			credit = delayedCreditByBirthYear[delayedCreditLastYear]
		}
	}

	fra := w.spec.FullRetirementAge()
	aboveFRA := startAge.Sub(fra)
	if aboveFRA.TotalMonths() >= 0 {
		return decimalOne.
			Add(credit.Mul(decimal.NewFromInt(int64(aboveFRA.Years)))).
			Add(credit.Mul(decimal.NewFromInt(int64(aboveFRA.Months))).Div(decimalTwelve))
	}

	// reduction is 5/9 of a percent per month for the 36 months before
	// FRA and 5/12 of a percent per month before that, expressed here as
	// the equivalent piecewise-linear bands
	band := fra.Sub(domain.Age{Years: 3})
	aboveBand := startAge.Sub(band)
	if aboveBand.TotalMonths() >= 0 {
		return ratePoint8.
			Add(ratePoint2.Mul(decimal.NewFromInt(int64(aboveBand.Years))).Div(decimalThree)).
			Add(ratePoint2.Mul(decimal.NewFromInt(int64(aboveBand.Months))).Div(decimalThirtySix))
	}

	belowBand := band.Sub(startAge)
	return ratePoint8.
		Sub(ratePoint05.Mul(decimal.NewFromInt(int64(belowBand.Years)))).
		Sub(ratePoint05.Mul(decimal.NewFromInt(int64(belowBand.Months))).Div(decimalTwelve))
}

// extendBenefitCOLA ensures the COLA-adjusted base benefit is computed
// through benefitYear. The chain anchors at the age-62 year in that
// year's dollars and only ever extends forward; it is never recomputed
// from scratch while the caches are valid.
func (w *Worker) extendBenefitCOLA(benefitYear int) {
	if len(w.benefitCOLA) == 0 {
		anchor := w.calcBenefitBirthday.Year() + domain.BenefitAge
		w.benefitCOLA.Set(anchor, w.baseBenefit)
	}
	_, last, _ := w.benefitCOLA.Bounds()
	for year := last + 1; year <= benefitYear; year++ {
		w.benefitCOLA.Set(year, w.engine.COLAAdjust(w.benefitCOLA.Value(year-1), year-1, year))
	}
}

// MonthlyBenefit returns the benefit in whole dollars for a given year
// and month. Months before the benefit start date return zero and are not
// cached. The cache is keyed per year, not per month: within a benefit
// year the amount is constant, so finer granularity buys nothing.
func (w *Worker) MonthlyBenefit(year, month int) decimal.Decimal {
	eligible := domain.Age{Years: domain.BenefitAge}
	if w.collectionStartAge.Cmp(eligible) == 0 && w.calcBenefitBirthday.Day() != 1 {
		// must wait until (62,1) unless born on the 2nd
		return decimal.Zero
	}

	start := w.BenefitStartDate()
	if year < start.Year() || (year == start.Year() && month < int(start.Month())) {
		return decimal.Zero
	}

	if cached, ok := w.benefit.Get(year); ok {
		return cached
	}

	w.extendBenefitCOLA(year)
	amount := w.benefitCOLA.Value(year).Mul(w.benefitMultiplier).Floor()
	w.benefit.Set(year, amount)
	return amount
}

// MonthlyBenefitAtStart returns the benefit for the first month of
// collection.
func (w *Worker) MonthlyBenefitAtStart() decimal.Decimal {
	start := w.BenefitStartDate()
	return w.MonthlyBenefit(start.Year(), int(start.Month()))
}

// MonthlyBenefitAt returns the first-month benefit were the worker to
// start collecting at the given age, then restores the current collection
// start age. Convenience for claiming-age comparisons.
func (w *Worker) MonthlyBenefitAt(age domain.Age) decimal.Decimal {
	current := w.collectionStartAge
	w.SetCollectionStartAge(age)
	benefit := w.MonthlyBenefitAtStart()
	w.SetCollectionStartAge(current)
	return benefit
}
