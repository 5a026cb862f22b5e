// Package dataset loads the tabular interchange files the engine consumes:
// the historical index table (taxable maximums, COLA, AWI) and the
// projection table (COLA and AWI growth defaults). Validation of the
// year-boundary invariants happens here, once, at load time; the engine
// does not re-check them.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/ssgo/internal/domain"
)

// History is the parsed historical index table. CurrentYear is the latest
// year with an actual taxable maximum; COLA actuals end one year earlier
// and AWI actuals two years earlier, reflecting SSA publication lag.
type History struct {
	MaxWages    domain.YearSeries
	COLA        domain.YearSeries
	AWI         domain.YearSeries
	CurrentYear int
}

// LoadHistory reads a historical table from a CSV file with columns
// Year, Max_Wages, COLA, AWI. Empty cells mean the value is not defined
// for that year.
func LoadHistory(path string) (*History, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history file: %w", err)
	}
	defer f.Close()
	h, err := ReadHistory(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse history file %s: %w", path, err)
	}
	return h, nil
}

// ReadHistory parses and validates a historical table from a reader.
func ReadHistory(r io.Reader) (*History, error) {
	rows, header, err := readTable(r, []string{"Year", "Max_Wages", "COLA", "AWI"})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("history table has no rows")
	}

	h := &History{
		MaxWages: domain.NewYearSeries(),
		COLA:     domain.NewYearSeries(),
		AWI:      domain.NewYearSeries(),
	}
	for _, row := range rows {
		if row.year > h.CurrentYear {
			h.CurrentYear = row.year
		}
		setCell(h.MaxWages, row, header["Max_Wages"])
		setCell(h.COLA, row, header["COLA"])
		setCell(h.AWI, row, header["AWI"])
	}

	if err := h.validate(); err != nil {
		return nil, err
	}
	return h, nil
}

// validate enforces the load-time boundary invariants: taxable maximums
// defined through the current year, COLA through currentYear-1, AWI
// through currentYear-2, and nothing defined beyond those boundaries.
func (h *History) validate() error {
	if !h.MaxWages.Has(h.CurrentYear) {
		return fmt.Errorf("history: Max_Wages missing for current year %d", h.CurrentYear)
	}
	if !h.COLA.Has(h.CurrentYear - 1) {
		return fmt.Errorf("history: COLA missing for year %d", h.CurrentYear-1)
	}
	if !h.AWI.Has(h.CurrentYear - 2) {
		return fmt.Errorf("history: AWI missing for year %d", h.CurrentYear-2)
	}
	for _, year := range h.COLA.Years() {
		if year > h.CurrentYear-1 {
			return fmt.Errorf("history: COLA defined for %d, beyond actuals boundary %d", year, h.CurrentYear-1)
		}
	}
	for _, year := range h.AWI.Years() {
		if year > h.CurrentYear-2 {
			return fmt.Errorf("history: AWI defined for %d, beyond actuals boundary %d", year, h.CurrentYear-2)
		}
	}
	return nil
}

type tableRow struct {
	year  int
	cells []string
}

// readTable reads a CSV with a header line naming at least the wanted
// columns, returning rows keyed by the Year column and a name-to-index
// map for the rest.
func readTable(r io.Reader, want []string) ([]tableRow, map[string]int, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("empty CSV")
	}

	header := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		header[name] = i
	}
	for _, name := range want {
		if _, ok := header[name]; !ok {
			return nil, nil, fmt.Errorf("missing column %q", name)
		}
	}

	rows := make([]tableRow, 0, len(records)-1)
	for i, rec := range records[1:] {
		year, err := strconv.Atoi(rec[header["Year"]])
		if err != nil {
			return nil, nil, fmt.Errorf("row %d: bad year %q: %w", i+2, rec[header["Year"]], err)
		}
		rows = append(rows, tableRow{year: year, cells: rec})
	}
	return rows, header, nil
}

// setCell stores a decimal cell into a series, skipping empty cells.
// A malformed number is treated as undefined rather than failing the
// whole load; the boundary validation catches missing required years.
func setCell(s domain.YearSeries, row tableRow, col int) {
	if col >= len(row.cells) || row.cells[col] == "" {
		return
	}
	v, err := decimal.NewFromString(row.cells[col])
	if err != nil {
		return
	}
	s.Set(row.year, v)
}
