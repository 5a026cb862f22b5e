package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewAgeNormalizes(t *testing.T) {
	assert.Equal(t, Age{Years: 63, Months: 2}, NewAge(62, 14))
	assert.Equal(t, Age{Years: 62, Months: 0}, NewAge(62, 0))
	assert.Equal(t, Age{Years: 63, Months: 0}, NewAge(62, 12))
}

func TestAgeSubBorrowsMonths(t *testing.T) {
	tests := []struct {
		name string
		a, b Age
		want Age
	}{
		{"no borrow", Age{Years: 67}, Age{Years: 62}, Age{Years: 5}},
		{"borrow a year", Age{Years: 67}, Age{Years: 62, Months: 1}, Age{Years: 4, Months: 11}},
		{"months only", Age{Years: 62, Months: 6}, Age{Years: 62, Months: 1}, Age{Years: 0, Months: 5}},
		{"negative result", Age{Years: 62}, Age{Years: 64}, Age{Years: -2, Months: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Sub(tt.b))
		})
	}
}

func TestAgeCompare(t *testing.T) {
	younger := Age{Years: 62, Months: 1}
	older := Age{Years: 62, Months: 2}

	assert.Equal(t, -1, younger.Cmp(older))
	assert.Equal(t, 1, older.Cmp(younger))
	assert.Equal(t, 0, younger.Cmp(younger))
	assert.True(t, older.AtLeast(younger))
	assert.True(t, younger.AtLeast(younger))
	assert.False(t, younger.AtLeast(older))
}

func TestAgeDateAt(t *testing.T) {
	birthday := time.Date(1960, time.January, 14, 0, 0, 0, 0, time.UTC)

	got := Age{Years: 62, Months: 1}.DateAt(birthday)
	assert.Equal(t, time.Date(2022, time.February, 1, 0, 0, 0, 0, time.UTC), got)

	// month component past December rolls into the next year
	got = Age{Years: 0, Months: 13}.DateAt(time.Date(1960, time.December, 31, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(1962, time.January, 1, 0, 0, 0, 0, time.UTC), got)

	// a day-31 birthday must not spill into the following month
	got = Age{Years: 0, Months: 1}.DateAt(time.Date(2020, time.January, 31, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2020, time.February, 1, 0, 0, 0, 0, time.UTC), got)
}

func TestAgeString(t *testing.T) {
	assert.Equal(t, "62y1m", Age{Years: 62, Months: 1}.String())
	assert.Equal(t, "67y0m", Age{Years: 67}.String())
}
