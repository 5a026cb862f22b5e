package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func specBorn(year, month, day int) WorkerSpec {
	return WorkerSpec{BirthDate: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

func TestCalcBenefitBirthday(t *testing.T) {
	spec := specBorn(1960, 1, 15)
	assert.Equal(t, time.Date(1960, time.January, 14, 0, 0, 0, 0, time.UTC), spec.CalcBenefitBirthday())

	// a January 1 birth counts as the prior year
	spec = specBorn(1960, 1, 1)
	assert.Equal(t, time.Date(1959, time.December, 31, 0, 0, 0, 0, time.UTC), spec.CalcBenefitBirthday())
}

func TestFullRetirementAge(t *testing.T) {
	tests := []struct {
		name      string
		birthYear int
		want      Age
	}{
		{"1937 and earlier", 1936, Age{Years: 65}},
		{"boundary 1937", 1937, Age{Years: 65}},
		{"phase-in to 66", 1938, Age{Years: 65, Months: 2}},
		{"late phase-in to 66", 1941, Age{Years: 65, Months: 8}},
		{"1943 through 1954", 1943, Age{Years: 66}},
		{"end of plateau", 1954, Age{Years: 66}},
		{"phase-in to 67", 1955, Age{Years: 66, Months: 2}},
		{"late phase-in to 67", 1958, Age{Years: 66, Months: 8}},
		{"1960 and later", 1960, Age{Years: 67}},
		{"far future", 1990, Age{Years: 67}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, specBorn(tt.birthYear, 6, 15).FullRetirementAge())
		})
	}

	// the one-day shift moves a January 1 birth into the earlier cohort
	assert.Equal(t, Age{Years: 66, Months: 10}, specBorn(1960, 1, 1).FullRetirementAge())
}

func TestMaxIndexedYears(t *testing.T) {
	assert.Equal(t, 35, specBorn(1960, 6, 15).MaxIndexedYears())
	assert.Equal(t, 35, specBorn(1929, 6, 15).MaxIndexedYears())
	assert.Equal(t, 26, specBorn(1920, 6, 15).MaxIndexedYears())
}

func TestEarningsProfileIsZero(t *testing.T) {
	assert.True(t, EarningsProfile{}.IsZero())
	assert.False(t, EarningsProfile{UseMax: true}.IsZero())
	assert.False(t, EarningsProfile{ByYear: map[int]decimal.Decimal{}}.IsZero())
}
