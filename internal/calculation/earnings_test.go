package calculation

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/ssgo/internal/domain"
)

func birthday(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

func testWorkerSpec(history domain.EarningsProfile) domain.WorkerSpec {
	return domain.WorkerSpec{
		Name:          "test worker",
		BirthDate:     birthday(1960, 1, 15),
		IncomeHistory: history,
	}
}

func TestEarningsHistoryCapping(t *testing.T) {
	engine := newTestEngine(t)
	spec := testWorkerSpec(domain.EarningsProfile{ByYear: map[int]decimal.Decimal{
		2000: dec("120000"),
		2001: dec("50000"),
	}})
	e := newEarnings(engine, spec, spec.FullRetirementAge())

	assert.True(t, e.CoveredEarningsInYear(2000).Equal(dec("100000")),
		"income above the taxable maximum must be capped")
	assert.True(t, e.CoveredEarningsInYear(2001).Equal(dec("50000")))
	assert.True(t, e.CoveredEarningsInYear(1999).IsZero(), "unreported history years are zero")
	assert.True(t, e.CoveredEarningsInYear(2023).IsZero(), "no projected income was supplied")
}

func TestEarningsUseMaxHistory(t *testing.T) {
	engine := newTestEngine(t)
	spec := testWorkerSpec(domain.EarningsProfile{UseMax: true})
	e := newEarnings(engine, spec, spec.FullRetirementAge())

	// maximum earnings start at age 22
	assert.True(t, e.CoveredEarningsInYear(1981).IsZero())
	assert.True(t, e.CoveredEarningsInYear(1982).Equal(dec("100000")))
	assert.True(t, e.CoveredEarningsInYear(2022).Equal(dec("100000")))

	// 35 top years of 100,000 at factor one: 3,500,000 / 35 / 12 = 8333.33
	assert.True(t, e.AIME().Equal(dec("8333")), "got %s", e.AIME())
}

func TestEarningsRetirementProration(t *testing.T) {
	engine := newTestEngine(t)
	spec := testWorkerSpec(domain.EarningsProfile{ByYear: map[int]decimal.Decimal{
		2022: dec("24000"),
	}})

	// retirement at 62y5m lands on 2022-06-01: five elapsed months
	e := newEarnings(engine, spec, domain.Age{Years: 62, Months: 5})

	assert.True(t, e.TotalEarningsInYear(2022).Equal(dec("10000")), "got %s", e.TotalEarningsInYear(2022))
	assert.True(t, e.CoveredEarningsInYear(2022).Equal(dec("10000")))
	assert.True(t, e.CoveredEarningsInYear(2023).IsZero())
	assert.True(t, e.CoveredEarningsInYear(2030).IsZero())
}

func TestEarningsRetirementProrationFloors(t *testing.T) {
	engine := newTestEngine(t)
	spec := testWorkerSpec(domain.EarningsProfile{ByYear: map[int]decimal.Decimal{
		2022: dec("10000"),
	}})

	e := newEarnings(engine, spec, domain.Age{Years: 62, Months: 5})

	// 10000 * 5 / 12 = 4166.66..., floored to whole dollars
	assert.True(t, e.TotalEarningsInYear(2022).Equal(dec("4166")), "got %s", e.TotalEarningsInYear(2022))
}

func TestEarningsFutureExtrapolation(t *testing.T) {
	engine := newTestEngine(t)
	spec := testWorkerSpec(domain.EarningsProfile{ByYear: map[int]decimal.Decimal{
		2022: dec("100000"),
	}})
	spec.FutureEarnings = &domain.FutureEarnings{Next: &domain.NextEarnings{
		Amount: domain.NextAmount{Extrapolate: true},
		Growth: domain.ScalarProjection(dec("0.05")),
	}}
	e := newEarnings(engine, spec, spec.FullRetirementAge())

	assert.True(t, e.TotalEarningsInYear(2023).Equal(dec("105000")))
	assert.True(t, e.TotalEarningsInYear(2024).Equal(dec("110250")))
	// covered earnings stay capped while totals keep growing
	assert.True(t, e.CoveredEarningsInYear(2023).Equal(dec("100000")))
	assert.True(t, e.CoveredEarningsInYear(2024).Equal(dec("100000")))
	// FRA retirement lands on 2027-01-01: nothing earned that year
	assert.True(t, e.TotalEarningsInYear(2027).IsZero())
}

func TestEarningsFutureUseMax(t *testing.T) {
	engine := newTestEngine(t)
	spec := testWorkerSpec(domain.EarningsProfile{ByYear: map[int]decimal.Decimal{
		2022: dec("50000"),
	}})
	spec.FutureEarnings = &domain.FutureEarnings{Next: &domain.NextEarnings{
		Amount: domain.NextAmount{UseMax: true},
	}}
	e := newEarnings(engine, spec, spec.FullRetirementAge())

	for year := 2023; year <= 2026; year++ {
		assert.True(t, e.CoveredEarningsInYear(year).Equal(dec("100000")), "year %d", year)
	}
}

func TestEarningsFutureProfileValues(t *testing.T) {
	engine := newTestEngine(t)
	spec := testWorkerSpec(domain.EarningsProfile{ByYear: map[int]decimal.Decimal{
		2022: dec("50000"),
	}})
	spec.FutureEarnings = &domain.FutureEarnings{Profile: &domain.EarningsProfile{
		Values: []decimal.Decimal{dec("50000"), dec("60000")},
	}}
	e := newEarnings(engine, spec, spec.FullRetirementAge())

	// list is indexed from the current year
	assert.True(t, e.TotalEarningsInYear(2023).Equal(dec("50000")))
	assert.True(t, e.TotalEarningsInYear(2024).Equal(dec("60000")))
	assert.True(t, e.TotalEarningsInYear(2025).IsZero())
}

func TestEarningsHistoryWinsOnOverlap(t *testing.T) {
	engine := newTestEngine(t)
	spec := testWorkerSpec(domain.EarningsProfile{ByYear: map[int]decimal.Decimal{
		2022: dec("40000"),
	}})
	spec.FutureEarnings = &domain.FutureEarnings{Profile: &domain.EarningsProfile{
		ByYear: map[int]decimal.Decimal{2022: dec("99000"), 2023: dec("45000")},
	}}
	e := newEarnings(engine, spec, spec.FullRetirementAge())

	assert.True(t, e.CoveredEarningsInYear(2022).Equal(dec("40000")),
		"reported history beats a projection for the same year")
	assert.True(t, e.CoveredEarningsInYear(2023).Equal(dec("45000")))
}

func TestAIMEProperties(t *testing.T) {
	engine := newTestEngine(t)

	t.Run("whole dollars", func(t *testing.T) {
		spec := testWorkerSpec(domain.EarningsProfile{ByYear: map[int]decimal.Decimal{
			2000: dec("12345.67"),
		}})
		e := newEarnings(engine, spec, spec.FullRetirementAge())
		assert.True(t, e.AIME().Equal(e.AIME().Floor()))
	})

	t.Run("more earnings never lower it", func(t *testing.T) {
		base := testWorkerSpec(domain.EarningsProfile{ByYear: map[int]decimal.Decimal{
			2000: dec("50000"),
		}})
		more := testWorkerSpec(domain.EarningsProfile{ByYear: map[int]decimal.Decimal{
			2000: dec("50000"),
			2001: dec("50000"),
		}})
		eBase := newEarnings(engine, base, base.FullRetirementAge())
		eMore := newEarnings(engine, more, more.FullRetirementAge())
		assert.True(t, eMore.AIME().GreaterThan(eBase.AIME()))
	})

	t.Run("earlier retirement never raises it", func(t *testing.T) {
		spec := testWorkerSpec(domain.EarningsProfile{UseMax: true})
		spec.FutureEarnings = &domain.FutureEarnings{Next: &domain.NextEarnings{
			Amount: domain.NextAmount{UseMax: true},
		}}
		e := newEarnings(engine, spec, domain.Age{Years: 70})
		atSeventy := e.AIME()
		e.SetRetirementAge(domain.Age{Years: 62})
		atSixtyTwo := e.AIME()
		assert.False(t, atSixtyTwo.GreaterThan(atSeventy))
	})
}

func TestEarningsSetRetirementAgeRecomputes(t *testing.T) {
	engine := newTestEngine(t)
	spec := testWorkerSpec(domain.EarningsProfile{ByYear: map[int]decimal.Decimal{
		2022: dec("24000"),
	}})
	e := newEarnings(engine, spec, spec.FullRetirementAge())
	require.True(t, e.TotalEarningsInYear(2022).Equal(dec("24000")))

	e.SetRetirementAge(domain.Age{Years: 62, Months: 5})
	assert.True(t, e.TotalEarningsInYear(2022).Equal(dec("10000")))

	e.SetRetirementAge(spec.FullRetirementAge())
	assert.True(t, e.TotalEarningsInYear(2022).Equal(dec("24000")))
}
