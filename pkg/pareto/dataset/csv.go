package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/paretoscope/paretoscope/pkg/pareto/framework"
	"github.com/paretoscope/paretoscope/pkg/pareto/hypervolume"
	"github.com/paretoscope/paretoscope/pkg/pareto/normalize"
)

const (
	ColumnGeneration = "generation"
	ColumnIndex      = "solution_index"
	ColumnIsPareto   = "is_pareto"
	ColumnRank       = "rank"
	ColumnVolume     = "hypervolume"
)

var objectiveColumn = regexp.MustCompile(`^obj([0-9]+)$`)

// ReadEvolution reads a `generation,solution_index,is_pareto,obj1..objK`
// stream. Extra columns are ignored; K must be at least 2.
func ReadEvolution(r io.Reader, source string) (*Dataset, error) {
	cr := newReader(r)

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%s: %w", source, framework.ErrNoData)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}

	cols := map[string]int{}
	type objCol struct{ n, pos int }
	var objs []objCol
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		header[i] = name
		cols[name] = i
		if m := objectiveColumn.FindStringSubmatch(name); m != nil {
			n, _ := strconv.Atoi(m[1])
			objs = append(objs, objCol{n: n, pos: i})
		}
	}
	for _, required := range []string{ColumnGeneration, ColumnIndex, ColumnIsPareto} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("%w: %s: missing column %q", framework.ErrSchema, source, required)
		}
	}
	if len(objs) < 2 {
		return nil, fmt.Errorf("%w: %s: found %d objective columns, need at least 2", framework.ErrSchema, source, len(objs))
	}
	sort.Slice(objs, func(i, j int) bool { return objs[i].n < objs[j].n })
	names := make([]string, len(objs))
	for i, o := range objs {
		if o.n != i+1 {
			return nil, fmt.Errorf("%w: %s: objective columns must be numbered obj1..obj%d, found obj%d", framework.ErrSchema, source, len(objs), o.n)
		}
		names[i] = header[o.pos]
	}

	b := NewBuilder(source, names)
	for line := 2; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", source, err)
		}

		gen, err := strconv.Atoi(strings.TrimSpace(row[cols[ColumnGeneration]]))
		if err != nil {
			return nil, fmt.Errorf("%s:%d: invalid generation: %w", source, line, err)
		}
		flag, err := parseFlag(row[cols[ColumnIsPareto]])
		if err != nil {
			return nil, fmt.Errorf("%s:%d: invalid %s: %w", source, line, ColumnIsPareto, err)
		}
		values := make([]float64, len(objs))
		for i, o := range objs {
			if values[i], err = parseValue(row[o.pos]); err != nil {
				return nil, fmt.Errorf("%s:%d: %s: %w", source, line, names[i], err)
			}
		}
		rec := Record{
			Generation: gen,
			Index:      strings.TrimSpace(row[cols[ColumnIndex]]),
			IsPareto:   flag,
			Values:     values,
		}
		if err := b.Add(rec); err != nil {
			return nil, err
		}
	}
	return b.Build()
}

// ReadPool reads a plain numeric CSV holding one point per row, such as the
// final front of one run. A first row in which no field is numeric is
// taken as a header. Rows are tagged with source and their 0-based row number.
func ReadPool(r io.Reader, source string) ([]normalize.Raw, error) {
	cr := newReader(r)

	var out []normalize.Raw
	for line := 1; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", source, err)
		}

		if line == 1 && isHeader(row) {
			continue
		}
		values := make([]float64, len(row))
		for i, field := range row {
			if values[i], err = parseValue(field); err != nil {
				return nil, fmt.Errorf("%s:%d: %w", source, line, err)
			}
		}
		out = append(out, normalize.Raw{
			Values:     values,
			Generation: -1,
			Index:      strconv.Itoa(len(out)),
			Source:     source,
		})
	}
	return out, nil
}

// ReadFront reads a front file, such as one written by WriteFront, as plain
// points.
func ReadFront(r io.Reader, source string) ([][]float64, error) {
	pool, err := ReadPool(r, source)
	if err != nil {
		return nil, err
	}
	if len(pool) == 0 {
		return nil, fmt.Errorf("%s: %w", source, framework.ErrNoData)
	}
	out := make([][]float64, len(pool))
	for i, p := range pool {
		out[i] = p.Values
	}
	return out, nil
}

// WriteFront writes points under an `f1,...,fd` header.
func WriteFront(w io.Writer, points [][]float64) error {
	if len(points) == 0 {
		return fmt.Errorf("write front: %w", framework.ErrNoData)
	}
	cw := csv.NewWriter(w)
	header := make([]string, len(points[0]))
	for i := range header {
		header[i] = "f" + strconv.Itoa(i+1)
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	row := make([]string, len(header))
	for _, p := range points {
		if len(p) != len(header) {
			return fmt.Errorf("%w: front point has %d values, header has %d", framework.ErrDimensionMismatch, len(p), len(header))
		}
		for i, v := range p {
			row[i] = formatValue(v)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteSeries writes a `generation,hypervolume` table.
func WriteSeries(w io.Writer, records []hypervolume.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{ColumnGeneration, ColumnVolume}); err != nil {
		return err
	}
	for _, r := range records {
		if err := cw.Write([]string{strconv.Itoa(r.Generation), formatValue(r.Volume)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadSeries reads a table written by WriteSeries.
func ReadSeries(r io.Reader, source string) ([]hypervolume.Record, error) {
	cr := newReader(r)
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%s: %w", source, framework.ErrNoData)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	if len(header) != 2 || strings.TrimSpace(header[0]) != ColumnGeneration || strings.TrimSpace(header[1]) != ColumnVolume {
		return nil, fmt.Errorf("%w: %s: want header %s,%s", framework.ErrSchema, source, ColumnGeneration, ColumnVolume)
	}

	var out []hypervolume.Record
	for line := 2; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", source, err)
		}
		gen, err := strconv.Atoi(strings.TrimSpace(row[0]))
		if err != nil {
			return nil, fmt.Errorf("%s:%d: invalid generation: %w", source, line, err)
		}
		vol, err := parseValue(row[1])
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", source, line, err)
		}
		out = append(out, hypervolume.Record{Generation: gen, Volume: vol})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%s: %w", source, framework.ErrNoData)
	}
	return out, nil
}

// WriteEvolution writes ds back as an evolution stream with the given
// non-dominance flags and a trailing rank column, one entry per record.
func WriteEvolution(w io.Writer, ds *Dataset, flags []bool, ranks []int) error {
	records := ds.Records()
	if len(flags) != len(records) || len(ranks) != len(records) {
		return fmt.Errorf("write evolution: %d records, %d flags, %d ranks", len(records), len(flags), len(ranks))
	}

	cw := csv.NewWriter(w)
	header := append([]string{ColumnGeneration, ColumnIndex, ColumnIsPareto}, ds.Objectives()...)
	header = append(header, ColumnRank)
	if err := cw.Write(header); err != nil {
		return err
	}
	for i, r := range records {
		row := make([]string, 0, len(header))
		row = append(row, strconv.Itoa(r.Generation), r.Index, formatFlag(flags[i]))
		for _, v := range r.Values {
			row = append(row, formatValue(v))
		}
		row = append(row, strconv.Itoa(ranks[i]))
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteTable writes a header and string rows.
func WriteTable(w io.Writer, header []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	if err := cw.WriteAll(rows); err != nil {
		return err
	}
	return cw.Error()
}

// FormatValue renders a float the way every artifact of this package does.
func FormatValue(v float64) string {
	return formatValue(v)
}

func newReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	return cr
}

// isHeader reports whether no field of row reads as a number.
func isHeader(row []string) bool {
	for _, field := range row {
		if _, err := strconv.ParseFloat(strings.TrimSpace(field), 64); err == nil {
			return false
		}
	}
	return true
}

func parseValue(field string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid value %q: %w", field, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: non-finite value %q", framework.ErrSchema, field)
	}
	return v, nil
}

func parseFlag(field string) (bool, error) {
	field = strings.TrimSpace(field)
	if b, err := strconv.ParseBool(field); err == nil {
		return b, nil
	}
	v, err := strconv.ParseFloat(field, 64)
	if err != nil {
		return false, fmt.Errorf("not a boolean: %q", field)
	}
	return v != 0, nil
}

func formatFlag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
