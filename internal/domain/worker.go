package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	// BenefitAge is the age at which retirement benefits first become
	// available.
	BenefitAge = 62

	// MaxLifespan caps every projected series at birth year + 130.
	MaxLifespan = 130
)

// WorkerSpec is the input description of a single worker as supplied by
// the session file. BirthDate is the actual civil birthday; the statutory
// one-day-earlier calculation birthday is derived, never stored.
type WorkerSpec struct {
	Name               string          `yaml:"name" json:"name"`
	BirthDate          time.Time       `yaml:"birth_date" json:"birth_date"`
	CollectionStartAge *Age            `yaml:"collection_start_age,omitempty" json:"collection_start_age,omitempty"`
	RetirementAge      *Age            `yaml:"retirement_age,omitempty" json:"retirement_age,omitempty"`
	IncomeHistory      EarningsProfile `yaml:"income_history" json:"income_history"`
	FutureEarnings     *FutureEarnings `yaml:"future_earnings,omitempty" json:"future_earnings,omitempty"`
}

// EarningsProfile specifies per-year earnings: an explicit year mapping, an
// ordered list, or the "always at the statutory maximum" shorthand used to
// reproduce SSA's published maximum-earner figures. Values supplied above
// a year's taxable maximum are treated as total income and capped.
type EarningsProfile struct {
	ByYear map[int]decimal.Decimal `yaml:"by_year,omitempty" json:"by_year,omitempty"`
	Values []decimal.Decimal       `yaml:"values,omitempty" json:"values,omitempty"`
	UseMax bool                    `yaml:"use_max,omitempty" json:"use_max,omitempty"`
}

// IsZero reports whether no earnings input was supplied at all.
func (p EarningsProfile) IsZero() bool {
	return !p.UseMax && p.ByYear == nil && p.Values == nil
}

// FutureEarnings specifies projected income either as an explicit profile
// or as a next-year amount extrapolated by a personal wage growth rate.
// Profile wins when both are present.
type FutureEarnings struct {
	Profile *EarningsProfile `yaml:"profile,omitempty" json:"profile,omitempty"`
	Next    *NextEarnings    `yaml:"next,omitempty" json:"next,omitempty"`
}

// NextEarnings extrapolates future income from a starting year and amount.
// Year zero means the configuration's current year. FinalYear zero means
// the year the worker turns MaxLifespan.
type NextEarnings struct {
	Year      int        `yaml:"year,omitempty" json:"year,omitempty"`
	Amount    NextAmount `yaml:"amount" json:"amount"`
	Growth    Projection `yaml:"growth,omitempty" json:"growth,omitempty"`
	FinalYear int        `yaml:"final_year,omitempty" json:"final_year,omitempty"`
}

// NextAmount is the income for the first extrapolated year: an explicit
// value, the statutory maximum, or extrapolation from the last history
// year grown by the personal wage growth rate.
type NextAmount struct {
	Value       *decimal.Decimal `yaml:"value,omitempty" json:"value,omitempty"`
	UseMax      bool             `yaml:"use_max,omitempty" json:"use_max,omitempty"`
	Extrapolate bool             `yaml:"extrapolate,omitempty" json:"extrapolate,omitempty"`
}

// CalcBenefitBirthday returns the birthday used for benefit calculation,
// one day before the actual birthday. A January 1 birth therefore counts
// as the prior year for every birth-year-dependent rule.
func (w WorkerSpec) CalcBenefitBirthday() time.Time {
	return w.BirthDate.AddDate(0, 0, -1)
}

// FullRetirementAge returns the birth-year-dependent age at which the
// unreduced benefit is paid.
func (w WorkerSpec) FullRetirementAge() Age {
	birthYear := w.CalcBenefitBirthday().Year()
	switch {
	case birthYear <= 1937:
		return Age{Years: 65}
	case birthYear < 1943:
		return Age{Years: 65, Months: 2 * (birthYear - 1937)}
	case birthYear <= 1954:
		return Age{Years: 66}
	case birthYear < 1960:
		return Age{Years: 66, Months: 2 * (birthYear - 1954)}
	default:
		return Age{Years: 67}
	}
}

// MaxIndexedYears returns how many top indexed-earnings years feed the
// AIME: 35 for anyone born 1929 or later, fewer for earlier cohorts.
func (w WorkerSpec) MaxIndexedYears() int {
	n := w.CalcBenefitBirthday().Year() - 1894
	if n > 35 {
		return 35
	}
	return n
}
