package config

import (
	"fmt"

	"github.com/rgehrsitz/ssgo/internal/calculation"
	"github.com/rgehrsitz/ssgo/internal/dataset"
	"github.com/rgehrsitz/ssgo/internal/domain"
)

// BuildEngine loads the session's interchange tables and constructs the
// calculation engine and its workers. Projection precedence: session
// assumptions override the projection table, which overrides the
// statutory defaults.
func BuildEngine(session *Session) (*calculation.Engine, []*calculation.Worker, error) {
	history, err := dataset.LoadHistory(session.HistoryFile)
	if err != nil {
		return nil, nil, err
	}

	colaProj := session.Assumptions.COLAProjection
	wageProj := session.Assumptions.WageGrowthProjection
	if (colaProj.IsEmpty() || wageProj.IsEmpty()) && session.ProjectionsFile != "" {
		projections, err := dataset.LoadProjections(session.ProjectionsFile)
		if err != nil {
			return nil, nil, err
		}
		if colaProj.IsEmpty() {
			colaProj = domain.ByYearProjection(projections.COLA)
		}
		if wageProj.IsEmpty() {
			wageProj = domain.ByYearProjection(projections.AWIIncrease)
		}
	}

	engine, err := calculation.NewEngine(history.MaxWages, history.COLA, history.AWI, colaProj, wageProj)
	if err != nil {
		return nil, nil, err
	}

	workers := make([]*calculation.Worker, 0, len(session.Workers))
	for i := range session.Workers {
		w, err := calculation.NewWorker(engine, session.Workers[i])
		if err != nil {
			return nil, nil, fmt.Errorf("worker %q: %w", session.Workers[i].Name, err)
		}
		workers = append(workers, w)
	}
	return engine, workers, nil
}
