package dataset

import (
	"fmt"
	"io"
	"os"

	"github.com/rgehrsitz/ssgo/internal/domain"
)

// Projections is the parsed projection table: SSA's own COLA and AWI
// growth forecasts, used as projection defaults unless the session file
// overrides them.
type Projections struct {
	COLA        domain.YearSeries
	AWIIncrease domain.YearSeries
}

// LoadProjections reads a projection table from a CSV file with columns
// Year, COLA, AWI_Increase.
func LoadProjections(path string) (*Projections, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open projections file: %w", err)
	}
	defer f.Close()
	p, err := ReadProjections(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse projections file %s: %w", path, err)
	}
	return p, nil
}

// ReadProjections parses a projection table from a reader.
func ReadProjections(r io.Reader) (*Projections, error) {
	rows, header, err := readTable(r, []string{"Year", "COLA", "AWI_Increase"})
	if err != nil {
		return nil, err
	}

	p := &Projections{
		COLA:        domain.NewYearSeries(),
		AWIIncrease: domain.NewYearSeries(),
	}
	for _, row := range rows {
		setCell(p.COLA, row, header["COLA"])
		setCell(p.AWIIncrease, row, header["AWI_Increase"])
	}
	return p, nil
}
