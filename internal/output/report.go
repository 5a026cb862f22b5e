// Package output renders engine results for the console: per-worker
// benefit reports and derived-series tables in aligned or CSV form.
package output

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/rgehrsitz/ssgo/internal/calculation"
)

// FormatWorkerReport renders a summary of one worker's computed figures:
// AIME, bend points, base benefit, claiming multiplier and the monthly
// benefit for the requested year and month (the first collection month
// when year is zero).
func FormatWorkerReport(w *calculation.Worker, year, month int) string {
	var b strings.Builder

	base, bp1, bp2 := w.BaseBenefit()
	fra := w.FullRetirementAge()
	start := w.BenefitStartDate()
	if year == 0 {
		year = start.Year()
		month = int(start.Month())
	}
	benefit := w.MonthlyBenefit(year, month)

	fmt.Fprintf(&b, "%s\n", w.Name())
	fmt.Fprintf(&b, "%s\n", strings.Repeat("=", len(w.Name())))
	fmt.Fprintf(&b, "  Full retirement age:   %s\n", fra)
	fmt.Fprintf(&b, "  Collection starts:     %s (%s)\n", w.CollectionStartAge(), start.Format("January 2006"))
	fmt.Fprintf(&b, "  AIME:                  $%s\n", w.AIME().StringFixed(0))
	fmt.Fprintf(&b, "  Bend points:           $%s / $%s\n", bp1.StringFixed(0), bp2.StringFixed(0))
	fmt.Fprintf(&b, "  Base benefit:          $%s\n", base.StringFixed(2))
	fmt.Fprintf(&b, "  Multiplier:            %s\n", w.BenefitMultiplier(w.CollectionStartAge()).StringFixed(6))
	fmt.Fprintf(&b, "  Monthly benefit %d-%02d: $%s\n", year, month, benefit.StringFixed(0))
	return b.String()
}

// FormatSeriesTable renders the derived max-wage, AWI and COLA series for
// a year range as an aligned table.
func FormatSeriesTable(engine *calculation.Engine, from, to int) string {
	var b strings.Builder
	tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', tabwriter.AlignRight)

	fmt.Fprintln(tw, "Year\tMax Wage\tAWI\tCOLA\t")
	cola := engine.COLAHistory()
	for year := from; year <= to; year++ {
		colaCell := ""
		if v, ok := cola.Get(year); ok {
			colaCell = v.StringFixed(3)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t\n",
			year,
			engine.MaxTaxableWage(year).StringFixed(0),
			engine.AWIValue(year).StringFixed(2),
			colaCell)
	}
	tw.Flush()
	return b.String()
}

// FormatSeriesCSV renders the same series as CSV with the interchange
// column names.
func FormatSeriesCSV(engine *calculation.Engine, from, to int) string {
	var b strings.Builder
	b.WriteString("Year,Max_Wages,AWI,COLA\n")
	cola := engine.COLAHistory()
	for year := from; year <= to; year++ {
		colaCell := ""
		if v, ok := cola.Get(year); ok {
			colaCell = v.String()
		}
		fmt.Fprintf(&b, "%d,%s,%s,%s\n",
			year,
			engine.MaxTaxableWage(year).StringFixed(0),
			engine.AWIValue(year).StringFixed(2),
			colaCell)
	}
	return b.String()
}
