package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rgehrsitz/ssgo/internal/domain"
)

// Session is the complete input configuration for one computation
// session: the two interchange tables, optional projection overrides and
// the workers to evaluate.
type Session struct {
	HistoryFile     string              `yaml:"history_file" json:"history_file"`
	ProjectionsFile string              `yaml:"projections_file,omitempty" json:"projections_file,omitempty"`
	Assumptions     Assumptions         `yaml:"assumptions,omitempty" json:"assumptions,omitempty"`
	Workers         []domain.WorkerSpec `yaml:"workers" json:"workers"`
}

// Assumptions carries caller-supplied projection overrides. When a field
// is absent the projection table's series applies, and failing that the
// statutory defaults.
type Assumptions struct {
	COLAProjection       domain.Projection `yaml:"cola_projection,omitempty" json:"cola_projection,omitempty"`
	WageGrowthProjection domain.Projection `yaml:"wage_growth_projection,omitempty" json:"wage_growth_projection,omitempty"`
}

// InputParser handles parsing of session input files.
type InputParser struct{}

// NewInputParser creates a new input parser.
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a session configuration from a YAML file.
func (ip *InputParser) LoadFromFile(filename string) (*Session, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var session Session
	if err := yaml.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateSession(&session); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &session, nil
}

// ValidateSession validates the loaded session configuration.
func (ip *InputParser) ValidateSession(session *Session) error {
	if session.HistoryFile == "" {
		return fmt.Errorf("history_file is required")
	}
	if len(session.Workers) == 0 {
		return fmt.Errorf("at least one worker is required")
	}
	for i := range session.Workers {
		if err := ip.validateWorker(&session.Workers[i]); err != nil {
			return fmt.Errorf("worker %d: %w", i, err)
		}
	}
	return nil
}

func (ip *InputParser) validateWorker(w *domain.WorkerSpec) error {
	if w.Name == "" {
		return fmt.Errorf("name is required")
	}
	if w.BirthDate.IsZero() {
		return fmt.Errorf("birth_date is required")
	}
	if err := validateAge("collection_start_age", w.CollectionStartAge); err != nil {
		return err
	}
	if err := validateAge("retirement_age", w.RetirementAge); err != nil {
		return err
	}
	if w.IncomeHistory.IsZero() && w.FutureEarnings == nil {
		return fmt.Errorf("income_history or future_earnings is required")
	}
	return nil
}

func validateAge(field string, age *domain.Age) error {
	if age == nil {
		return nil
	}
	if age.Years < 0 || age.Months < 0 || age.Months > 11 {
		return fmt.Errorf("%s: invalid age %d years %d months", field, age.Years, age.Months)
	}
	if age.Years > domain.MaxLifespan {
		return fmt.Errorf("%s: age %d years exceeds maximum lifespan", field, age.Years)
	}
	return nil
}
