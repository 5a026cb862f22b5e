package config

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/ssgo/internal/domain"
)

const testHistoryCSV = `Year,Max_Wages,COLA,AWI
2019,132900,0.016,54099.99
2020,137700,0.013,55628.60
2021,142800,0.059,60575.07
2022,147000,0.087,
2023,160200,,
`

const testProjectionsCSV = `Year,COLA,AWI_Increase
2024,0.026,0.045
2025,0.022,0.038
`

const testSessionYAML = `history_file: %s
projections_file: %s
assumptions:
  cola_projection: 0.024
workers:
  - name: Alex
    birth_date: 1960-01-15
    collection_start_age:
      years: 62
      months: 1
    income_history:
      by_year:
        2021: 48000
        2022: 50000
`

func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func writeTestSession(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	history := writeTestFile(t, dir, "history.csv", testHistoryCSV)
	projections := writeTestFile(t, dir, "projections.csv", testProjectionsCSV)
	return writeTestFile(t, dir, "session.yaml", fmt.Sprintf(testSessionYAML, history, projections))
}

func TestLoadFromFile(t *testing.T) {
	session, err := NewInputParser().LoadFromFile(writeTestSession(t))
	require.NoError(t, err)

	require.Len(t, session.Workers, 1)
	w := session.Workers[0]
	assert.Equal(t, "Alex", w.Name)
	assert.Equal(t, time.Date(1960, time.January, 15, 0, 0, 0, 0, time.UTC), w.BirthDate)
	require.NotNil(t, w.CollectionStartAge)
	assert.Equal(t, domain.Age{Years: 62, Months: 1}, *w.CollectionStartAge)
	assert.True(t, w.IncomeHistory.ByYear[2022].Equal(decimal.NewFromInt(50000)))

	assert.Equal(t, domain.ProjectionScalar, session.Assumptions.COLAProjection.Kind())
	assert.True(t, session.Assumptions.COLAProjection.Scalar().Equal(decimal.NewFromFloat(0.024)))
	assert.True(t, session.Assumptions.WageGrowthProjection.IsEmpty())
}

func TestLoadFromFileMissing(t *testing.T) {
	_, err := NewInputParser().LoadFromFile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestValidateSession(t *testing.T) {
	age := func(years, months int) *domain.Age {
		return &domain.Age{Years: years, Months: months}
	}
	worker := func(mutate func(*domain.WorkerSpec)) []domain.WorkerSpec {
		w := domain.WorkerSpec{
			Name:          "Alex",
			BirthDate:     time.Date(1960, 1, 15, 0, 0, 0, 0, time.UTC),
			IncomeHistory: domain.EarningsProfile{UseMax: true},
		}
		if mutate != nil {
			mutate(&w)
		}
		return []domain.WorkerSpec{w}
	}

	tests := []struct {
		name      string
		session   Session
		errSubstr string
	}{
		{
			"missing history file",
			Session{Workers: worker(nil)},
			"history_file is required",
		},
		{
			"no workers",
			Session{HistoryFile: "h.csv"},
			"at least one worker",
		},
		{
			"worker without name",
			Session{HistoryFile: "h.csv", Workers: worker(func(w *domain.WorkerSpec) { w.Name = "" })},
			"name is required",
		},
		{
			"worker without birth date",
			Session{HistoryFile: "h.csv", Workers: worker(func(w *domain.WorkerSpec) { w.BirthDate = time.Time{} })},
			"birth_date is required",
		},
		{
			"worker without earnings",
			Session{HistoryFile: "h.csv", Workers: worker(func(w *domain.WorkerSpec) {
				w.IncomeHistory = domain.EarningsProfile{}
			})},
			"income_history or future_earnings",
		},
		{
			"months out of range",
			Session{HistoryFile: "h.csv", Workers: worker(func(w *domain.WorkerSpec) {
				w.CollectionStartAge = age(62, 12)
			})},
			"invalid age",
		},
		{
			"age beyond lifespan",
			Session{HistoryFile: "h.csv", Workers: worker(func(w *domain.WorkerSpec) {
				w.RetirementAge = age(140, 0)
			})},
			"exceeds maximum lifespan",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewInputParser().ValidateSession(&tt.session)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errSubstr)
		})
	}

	t.Run("valid session passes", func(t *testing.T) {
		s := Session{HistoryFile: "h.csv", Workers: worker(nil)}
		assert.NoError(t, NewInputParser().ValidateSession(&s))
	})
}

func TestBuildEngine(t *testing.T) {
	session, err := NewInputParser().LoadFromFile(writeTestSession(t))
	require.NoError(t, err)

	engine, workers, err := BuildEngine(session)
	require.NoError(t, err)
	require.Len(t, workers, 1)

	assert.Equal(t, 2023, engine.CurrentYear())
	assert.Equal(t, "Alex", workers[0].Name())
	assert.Equal(t, domain.Age{Years: 62, Months: 1}, workers[0].CollectionStartAge())
	assert.False(t, workers[0].AIME().IsZero())

	// the wage growth assumption was left empty, so the projection
	// table's 2024 rate applies to the 2024 link of the AWI chain
	want := engine.AWIValue(2023).Mul(decimal.NewFromFloat(1.045)).Round(2)
	assert.True(t, engine.AWIValue(2024).Equal(want), "got %s want %s", engine.AWIValue(2024), want)
}
