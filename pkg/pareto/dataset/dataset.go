// Package dataset reads the per-generation record stream an optimizer run
// writes and the plain front files of finished runs, and writes the frontier
// and hypervolume artifacts.
package dataset

import (
	"fmt"
	"slices"

	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/paretoscope/paretoscope/pkg/pareto/framework"
	"github.com/paretoscope/paretoscope/pkg/pareto/normalize"
)

// Record is one row of the evolution stream, in raw orientation.
type Record struct {
	Generation int
	Index      string
	// IsPareto is the non-dominance flag computed upstream for the record's
	// generation.
	IsPareto bool
	Values   []float64
}

// Dataset is an evolution stream grouped by generation. It is built once by a
// Builder and read-only afterwards.
type Dataset struct {
	source       string
	objectives   []string
	records      []Record
	byGeneration map[int][]int
	generations  []int
}

// Source returns the name the data was read from.
func (d *Dataset) Source() string {
	return d.source
}

// Objectives returns the objective column names, in axis order.
func (d *Dataset) Objectives() []string {
	return slices.Clone(d.objectives)
}

// Dimensions returns the number of objectives.
func (d *Dataset) Dimensions() int {
	return len(d.objectives)
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	return len(d.records)
}

// Records returns every record in input order.
func (d *Dataset) Records() []Record {
	return slices.Clone(d.records)
}

// Generations returns the distinct generation indices, ascending.
func (d *Dataset) Generations() []int {
	return slices.Clone(d.generations)
}

// Generation returns the records of generation g in input order.
func (d *Dataset) Generation(g int) ([]Record, error) {
	idx, ok := d.byGeneration[g]
	if !ok {
		return nil, fmt.Errorf("%s: generation %d: %w", d.source, g, framework.ErrNoData)
	}
	out := make([]Record, len(idx))
	for i, j := range idx {
		out[i] = d.records[j]
	}
	return out, nil
}

// Positions returns where the records of generation g sit in Records.
func (d *Dataset) Positions(g int) []int {
	return slices.Clone(d.byGeneration[g])
}

// Select projects the dataset onto the given 1-based objective columns, in
// the order given. An empty selection keeps every column.
func (d *Dataset) Select(cols []int) (*Dataset, error) {
	if len(cols) == 0 {
		return d, nil
	}
	for _, c := range cols {
		if c < 1 || c > len(d.objectives) {
			return nil, fmt.Errorf("%w: %s: objective %d requested, only %d present", framework.ErrSchema, d.source, c, len(d.objectives))
		}
	}

	b := NewBuilder(d.source, pick(d.objectives, cols))
	for _, r := range d.records {
		r.Values = pick(r.Values, cols)
		if err := b.Add(r); err != nil {
			return nil, err
		}
	}
	return b.Build()
}

func pick[T any](in []T, cols []int) []T {
	out := make([]T, len(cols))
	for i, c := range cols {
		out[i] = in[c-1]
	}
	return out
}

// Raw converts records for normalize.Normalizer, tagged with the dataset
// source.
func (d *Dataset) Raw(records []Record) []normalize.Raw {
	out := make([]normalize.Raw, len(records))
	for i, r := range records {
		out[i] = normalize.Raw{
			Values:     r.Values,
			Generation: r.Generation,
			Index:      r.Index,
			Source:     d.source,
		}
	}
	return out
}

// Builder accumulates records into a Dataset. The Builder owns the dataset
// until Build hands it over; it must not be used afterwards.
type Builder struct {
	ds   *Dataset
	gens sets.Set[int]
}

// NewBuilder starts a dataset with the given objective columns.
func NewBuilder(source string, objectives []string) *Builder {
	return &Builder{
		ds: &Dataset{
			source:       source,
			objectives:   slices.Clone(objectives),
			byGeneration: map[int][]int{},
		},
		gens: sets.New[int](),
	}
}

// Add appends a record.
func (b *Builder) Add(r Record) error {
	if b.ds == nil {
		return fmt.Errorf("dataset builder used after Build")
	}
	if len(r.Values) != len(b.ds.objectives) {
		return fmt.Errorf("%w: %s: record %q of generation %d has %d objectives, want %d",
			framework.ErrDimensionMismatch, b.ds.source, r.Index, r.Generation, len(r.Values), len(b.ds.objectives))
	}
	b.ds.byGeneration[r.Generation] = append(b.ds.byGeneration[r.Generation], len(b.ds.records))
	b.ds.records = append(b.ds.records, r)
	b.gens.Insert(r.Generation)
	return nil
}

// Build returns the dataset. An empty dataset is ErrNoData.
func (b *Builder) Build() (*Dataset, error) {
	ds := b.ds
	b.ds = nil
	if ds == nil {
		return nil, fmt.Errorf("dataset builder used after Build")
	}
	if len(ds.records) == 0 {
		return nil, fmt.Errorf("%s: %w", ds.source, framework.ErrNoData)
	}
	ds.generations = sets.List(b.gens)
	return ds, nil
}
