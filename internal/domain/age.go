package domain

import (
	"fmt"
	"time"
)

// Age is a duration expressed in whole years and months, the granularity
// at which Social Security claiming rules operate.
type Age struct {
	Years  int `yaml:"years" json:"years"`
	Months int `yaml:"months" json:"months"`
}

// NewAge returns an Age normalized so that Months is in 0-11.
func NewAge(years, months int) Age {
	total := years*12 + months
	return Age{Years: total / 12, Months: total % 12}
}

// TotalMonths returns the age as a month count.
func (a Age) TotalMonths() int {
	return a.Years*12 + a.Months
}

// Cmp compares two ages: -1 if a is younger than b, 0 if equal, 1 if older.
func (a Age) Cmp(b Age) int {
	switch {
	case a.TotalMonths() < b.TotalMonths():
		return -1
	case a.TotalMonths() > b.TotalMonths():
		return 1
	default:
		return 0
	}
}

// AtLeast reports whether a is b or older.
func (a Age) AtLeast(b Age) bool {
	return a.Cmp(b) >= 0
}

// Sub returns a minus b as a duration in years and months, borrowing from
// years when the month component goes negative. Years is negative when b
// is the larger age.
func (a Age) Sub(b Age) Age {
	total := a.TotalMonths() - b.TotalMonths()
	years := total / 12
	months := total % 12
	if months < 0 {
		years--
		months += 12
	}
	return Age{Years: years, Months: months}
}

// DateAt returns the first day of the month in which a person born on
// birthday reaches this age. Statute pins benefit events to the first of
// the month.
func (a Age) DateAt(birthday time.Time) time.Time {
	// year/month arithmetic only: adding via AddDate would let a day-31
	// birthday overflow into the following month
	year := birthday.Year() + a.Years
	month := int(birthday.Month()) + a.Months
	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, birthday.Location())
}

func (a Age) String() string {
	return fmt.Sprintf("%dy%dm", a.Years, a.Months)
}
