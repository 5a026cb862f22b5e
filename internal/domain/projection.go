package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// ProjectionKind discriminates the accepted shapes of a projection input.
type ProjectionKind int

const (
	// ProjectionEmpty is the zero value: no projection supplied. The
	// resolver falls back to its default rate for every year.
	ProjectionEmpty ProjectionKind = iota
	// ProjectionScalar applies a single rate to every year in range.
	ProjectionScalar
	// ProjectionValues is a year-ordered list beginning at the range start.
	ProjectionValues
	// ProjectionByYear is a sparse year-to-rate mapping.
	ProjectionByYear
)

// Projection is the tagged union accepted at the projection resolver
// boundary: a single scalar rate, an ordered list of per-year values, or a
// sparse year mapping. In YAML it is written as a plain number, a
// sequence, or a mapping respectively.
type Projection struct {
	kind   ProjectionKind
	scalar decimal.Decimal
	values []decimal.Decimal
	byYear YearSeries
}

// ScalarProjection returns a projection applying rate to every year.
func ScalarProjection(rate decimal.Decimal) Projection {
	return Projection{kind: ProjectionScalar, scalar: rate}
}

// ValuesProjection returns a projection from a year-ordered list of rates
// beginning at the resolver's start year.
func ValuesProjection(values []decimal.Decimal) Projection {
	return Projection{kind: ProjectionValues, values: values}
}

// ByYearProjection returns a projection from a sparse year mapping.
func ByYearProjection(byYear YearSeries) Projection {
	return Projection{kind: ProjectionByYear, byYear: byYear}
}

// Kind returns the union discriminator.
func (p Projection) Kind() ProjectionKind { return p.kind }

// Scalar returns the scalar rate; meaningful only for ProjectionScalar.
func (p Projection) Scalar() decimal.Decimal { return p.scalar }

// Values returns the ordered rate list; meaningful only for
// ProjectionValues.
func (p Projection) Values() []decimal.Decimal { return p.values }

// ByYear returns the sparse mapping; meaningful only for ProjectionByYear.
func (p Projection) ByYear() YearSeries { return p.byYear }

// IsEmpty reports whether no projection input was supplied.
func (p Projection) IsEmpty() bool { return p.kind == ProjectionEmpty }

// UnmarshalYAML accepts a scalar number, a sequence of numbers, or a
// mapping of year to number.
func (p *Projection) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var rate decimal.Decimal
		if err := node.Decode(&rate); err != nil {
			return fmt.Errorf("projection scalar: %w", err)
		}
		*p = ScalarProjection(rate)
	case yaml.SequenceNode:
		var values []decimal.Decimal
		if err := node.Decode(&values); err != nil {
			return fmt.Errorf("projection sequence: %w", err)
		}
		*p = ValuesProjection(values)
	case yaml.MappingNode:
		byYear := make(map[int]decimal.Decimal)
		if err := node.Decode(&byYear); err != nil {
			return fmt.Errorf("projection mapping: %w", err)
		}
		*p = ByYearProjection(YearSeries(byYear))
	default:
		return fmt.Errorf("projection: unsupported YAML node kind %v", node.Kind)
	}
	return nil
}
