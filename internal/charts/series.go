// Package charts turns the report dataset into ordered chart series. The
// records it produces are the only contract with a charting library.
package charts

import (
	"errors"
	"fmt"
	"strings"

	"github.com/AngelCh415/bcm-report/internal/models"
	"github.com/AngelCh415/bcm-report/internal/store"
)

type Kind string

const (
	KindBar Kind = "bar"
	KindPie Kind = "pie"
)

type Dimension string

const (
	// ByMetric makes one category per field, valued from period totals.
	ByMetric Dimension = "by-metric"
	// ByPlatform makes one category per platform for a single field.
	ByPlatform Dimension = "by-platform"
)

var (
	ErrUnknownChart = errors.New("unknown chart")
	ErrInvalidSpec  = errors.New("invalid chart spec")
)

type SeriesRef struct {
	Name   string        `json:"name" yaml:"name"`
	Source models.Source `json:"source" yaml:"source"`
}

type ChartSpec struct {
	ID        string         `json:"id" yaml:"id"`
	Title     string         `json:"title" yaml:"title"`
	Kind      Kind           `json:"kind" yaml:"kind"`
	Dimension Dimension      `json:"dimension" yaml:"dimension"`
	Fields    []models.Field `json:"fields" yaml:"fields"`
	Series    []SeriesRef    `json:"series" yaml:"series"`
}

// Record is one category with a value per series name.
type Record struct {
	Category string             `json:"category" yaml:"category"`
	Values   map[string]float64 `json:"values" yaml:"values"`
}

// Series is the built chart: Names fixes the series order that Values' map lacks.
type Series struct {
	Spec    ChartSpec `json:"spec" yaml:"spec"`
	Names   []string  `json:"names" yaml:"names"`
	Records []Record  `json:"records" yaml:"records"`
}

type Builder struct{ ds *store.Dataset }

func NewBuilder(ds *store.Dataset) *Builder { return &Builder{ds: ds} }

func (b *Builder) Build(spec ChartSpec) (Series, error) {
	if err := checkSpec(spec); err != nil {
		return Series{}, err
	}
	out := Series{Spec: spec, Names: make([]string, 0, len(spec.Series))}
	for _, s := range spec.Series {
		out.Names = append(out.Names, s.Name)
	}

	switch spec.Dimension {
	case ByMetric:
		recs, err := b.byMetric(spec)
		if err != nil {
			return Series{}, err
		}
		out.Records = recs
	case ByPlatform:
		recs, err := b.byPlatform(spec)
		if err != nil {
			return Series{}, err
		}
		out.Records = recs
	}
	return out, nil
}

// BuildID builds one of the catalog charts.
func (b *Builder) BuildID(id string) (Series, error) {
	spec, ok := Lookup(b.ds, id)
	if !ok {
		return Series{}, fmt.Errorf("%w: %q", ErrUnknownChart, id)
	}
	return b.Build(spec)
}

func (b *Builder) byMetric(spec ChartSpec) ([]Record, error) {
	recs := make([]Record, 0, len(spec.Fields))
	for _, f := range spec.Fields {
		recs = append(recs, Record{Category: f.Label(), Values: make(map[string]float64, len(spec.Series))})
	}
	for _, s := range spec.Series {
		t, err := b.ds.Totals(s.Source)
		if err != nil {
			return nil, err
		}
		for i, f := range spec.Fields {
			recs[i].Values[s.Name] = f.OfTotals(t).InexactFloat64()
		}
	}
	return recs, nil
}

func (b *Builder) byPlatform(spec ChartSpec) ([]Record, error) {
	field := spec.Fields[0]
	var recs []Record
	index := map[string]int{}
	for _, s := range spec.Series {
		ps, err := b.ds.Platforms(s.Source)
		if err != nil {
			return nil, err
		}
		for _, p := range ps {
			key := strings.ToLower(p.Platform)
			i, ok := index[key]
			if !ok {
				i = len(recs)
				index[key] = i
				recs = append(recs, Record{Category: p.Platform, Values: map[string]float64{}})
			}
			recs[i].Values[s.Name] = field.Of(p).InexactFloat64()
		}
	}
	// platforms absent from a source chart as zero
	for i := range recs {
		for _, s := range spec.Series {
			if _, ok := recs[i].Values[s.Name]; !ok {
				recs[i].Values[s.Name] = 0
			}
		}
	}
	return recs, nil
}

func checkSpec(spec ChartSpec) error {
	if len(spec.Series) == 0 {
		return fmt.Errorf("%w: %s: no series", ErrInvalidSpec, spec.ID)
	}
	if len(spec.Fields) == 0 {
		return fmt.Errorf("%w: %s: no fields", ErrInvalidSpec, spec.ID)
	}
	names := map[string]struct{}{}
	for _, s := range spec.Series {
		if s.Name == "" {
			return fmt.Errorf("%w: %s: unnamed series", ErrInvalidSpec, spec.ID)
		}
		if _, dup := names[s.Name]; dup {
			return fmt.Errorf("%w: %s: duplicate series %q", ErrInvalidSpec, spec.ID, s.Name)
		}
		names[s.Name] = struct{}{}
	}
	switch spec.Dimension {
	case ByMetric:
	case ByPlatform:
		if len(spec.Fields) != 1 {
			return fmt.Errorf("%w: %s: by-platform charts take exactly one field", ErrInvalidSpec, spec.ID)
		}
	default:
		return fmt.Errorf("%w: %s: dimension %q", ErrInvalidSpec, spec.ID, spec.Dimension)
	}
	if spec.Kind == KindPie && (spec.Dimension != ByPlatform || len(spec.Series) != 1) {
		return fmt.Errorf("%w: %s: pie charts need one by-platform series", ErrInvalidSpec, spec.ID)
	}
	return nil
}
