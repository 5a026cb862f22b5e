package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/ssgo/internal/domain"
)

// DefaultCOLARate is the projected cost-of-living adjustment used when no
// projection covers a year (compound annual average of the last 20 years).
var DefaultCOLARate = decimal.NewFromFloat(0.024)

// COLAMaxWageOffset is the number of years the taxable maximum lags the
// COLA series: the maximum for year Y depends on the COLA published for
// Y-1.
const COLAMaxWageOffset = 1

// COLAEngine owns the cost-of-living adjustment series: historical actuals
// through currentYear-1 merged with resolved projections out to the
// statutory maximum lifespan. Nothing worker-specific lives here.
type COLAEngine struct {
	engine      *Engine
	currentYear int
	proj        domain.Projection
	cola        domain.YearSeries
}

// newCOLAEngine builds the COLA series from historical actuals and a
// projection. It must be constructed before the AWI engine: the maximum
// wage derivation reads the published COLA for the prior year.
func newCOLAEngine(engine *Engine, history domain.YearSeries, proj domain.Projection) *COLAEngine {
	c := &COLAEngine{
		engine:      engine,
		currentYear: engine.currentYear,
		cola:        history.Clone(),
	}
	c.SetProjection(proj)
	return c
}

// SetProjection replaces the COLA projection, merges it over the series
// and re-applies the statutory carry-forward rule. If the AWI engine has
// already derived once, it is re-derived, since its maximum-wage freeze
// rule depends on the published COLA.
func (c *COLAEngine) SetProjection(proj domain.Projection) {
	c.proj = proj
	start := c.currentYear + 1 - COLAMaxWageOffset
	end := c.currentYear + domain.MaxLifespan - COLAMaxWageOffset
	c.cola.Merge(ResolveProjection(start, end, proj, DefaultCOLARate))
	c.carryForward()

	if awi := c.engine.awiEngine(); awi != nil {
		awi.rederive()
	}
}

// carryForward walks the merged series left to right enforcing the
// statutory floor: a negative cost-of-living change never publishes as a
// negative COLA. Instead it compounds into a running basis index and is
// released as a reduced increase once the cumulative index exceeds 1.0
// again. Published values are rounded to three decimals.
func (c *COLAEngine) carryForward() {
	years := c.cola.Years()
	if len(years) == 0 {
		return
	}
	basisYear := years[0] - 1
	basisIndex := decimalOne
	for _, year := range years {
		raw := c.cola.Value(year)
		switch {
		case raw.IsNegative():
			basisIndex = basisIndex.Mul(decimalOne.Add(raw))
			c.cola.Set(year, decimal.Zero)
			// basis year stays unsettled
		case basisYear < year-1:
			basisIndex = basisIndex.Mul(decimalOne.Add(raw))
			if basisIndex.GreaterThan(decimalOne) {
				c.cola.Set(year, basisIndex.Sub(decimalOne).Round(3))
				basisYear = year
				basisIndex = decimalOne
			} else {
				c.cola.Set(year, decimal.Zero)
			}
		default:
			c.cola.Set(year, raw.Round(3))
			basisYear = year
			basisIndex = decimalOne
		}
	}
}

// Rate returns the published COLA for a year, falling back to
// DefaultCOLARate outside the populated domain.
func (c *COLAEngine) Rate(year int) decimal.Decimal {
	if v, ok := c.cola.Get(year); ok {
		return v
	}
	return DefaultCOLARate
}

// Adjust applies COLA to a value from baseYear through benefitYear,
// compounding one year at a time and flooring to the nearest dime after
// each step. Single-shot compounding diverges from this after a decade or
// so; the per-step floor is the statutory behavior.
func (c *COLAEngine) Adjust(base decimal.Decimal, baseYear, benefitYear int) decimal.Decimal {
	if benefitYear < baseYear {
		panic("calculation: COLA adjust benefit year precedes base year")
	}
	value := floorDime(base)
	if value.IsZero() {
		return decimal.Zero
	}
	for year := baseYear; year < benefitYear; year++ {
		value = floorDime(value.Mul(decimalOne.Add(c.Rate(year))))
	}
	return value
}

// ValueInCurrentDollars converts a value between baseYear dollars and
// current-year dollars, in either direction. The result is not rounded.
func (c *COLAEngine) ValueInCurrentDollars(base decimal.Decimal, baseYear int) decimal.Decimal {
	factor := decimalOne
	earlier, later := baseYear, c.currentYear
	if earlier > later {
		earlier, later = later, earlier
	}
	for year := earlier; year < later; year++ {
		factor = factor.Mul(decimalOne.Add(c.Rate(year)))
	}
	if baseYear < c.currentYear {
		return base.Mul(factor)
	}
	return base.Div(factor)
}

// History returns the full COLA series, actuals and projections. The
// returned series is a read-only view; callers must not mutate it.
func (c *COLAEngine) History() domain.YearSeries {
	return c.cola
}
