// Package normalize turns a mixed minimize/maximize objective space into pure
// minimization by negating maximized axes. It is the only place raw objective
// values become framework.Solution values, so nothing downstream can mix
// raw and normalized numbers.
package normalize

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/paretoscope/paretoscope/pkg/pareto/framework"
)

// Normalizer applies one ObjectiveSpace's sign convention.
type Normalizer struct {
	space framework.ObjectiveSpace
}

// New returns a Normalizer for the given space.
func New(space framework.ObjectiveSpace) *Normalizer {
	return &Normalizer{space: space}
}

// Space returns the space the normalizer was built for.
func (n *Normalizer) Space() framework.ObjectiveSpace {
	return n.space
}

// Point returns raw in minimization orientation. It serves solution vectors,
// reference points and axis bounds alike.
func (n *Normalizer) Point(raw []float64) (framework.ObjectiveSpacePoint, error) {
	if len(raw) != n.space.Dimensions() {
		return nil, fmt.Errorf("%w: got %d values, objective space has %d axes", framework.ErrDimensionMismatch, len(raw), n.space.Dimensions())
	}
	out := make(framework.ObjectiveSpacePoint, len(raw))
	for i, v := range raw {
		if n.space.Orientations[i] == framework.Maximize {
			v = -v
		}
		out[i] = v
	}
	return out, nil
}

// Restore maps a normalized point back to the raw orientation.
func (n *Normalizer) Restore(p framework.ObjectiveSpacePoint) []float64 {
	out := make([]float64, len(p))
	for i, v := range p {
		if i < n.space.Dimensions() && n.space.Orientations[i] == framework.Maximize {
			v = -v
		}
		out[i] = v
	}
	return out
}

// Describe pairs each axis name with its orientation, e.g. "obj1=maximize".
// Axes without a name are numbered from 1.
func (n *Normalizer) Describe(names []string) []string {
	out := make([]string, n.space.Dimensions())
	for i, o := range n.space.Orientations {
		name := "obj" + strconv.Itoa(i+1)
		if i < len(names) {
			name = names[i]
		}
		out[i] = name + "=" + o.String()
	}
	return out
}

// Raw is an objective vector as read from input, with its tags.
type Raw struct {
	Values     []float64
	Generation int
	Index      string
	Source     string
}

// Solutions normalizes a pool of raw vectors.
func (n *Normalizer) Solutions(pool []Raw) ([]framework.Solution, error) {
	out := make([]framework.Solution, len(pool))
	for i, r := range pool {
		p, err := n.Point(r.Values)
		if err != nil {
			return nil, fmt.Errorf("solution %d: %w", i, err)
		}
		out[i] = framework.Solution{
			Objectives: p,
			Generation: r.Generation,
			Index:      r.Index,
			Source:     r.Source,
		}
	}
	return out, nil
}

// SpaceFor builds a d-axis space maximizing the given 1-based axes.
func SpaceFor(d int, maximize []int) (framework.ObjectiveSpace, error) {
	space := framework.NewObjectiveSpace(d)
	for _, idx := range maximize {
		if idx < 1 || idx > d {
			return framework.ObjectiveSpace{}, fmt.Errorf("%w: maximize index %d out of range, have %d objectives", framework.ErrSchema, idx, d)
		}
		space.Orientations[idx-1] = framework.Maximize
	}
	return space, nil
}

// ParseIndices parses a comma-separated list of integers such as "1,3".
// Empty entries are skipped.
func ParseIndices(list string) ([]int, error) {
	var out []int
	for _, field := range strings.Split(list, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		idx, err := strconv.Atoi(field)
		if err != nil {
			return nil, fmt.Errorf("invalid objective index %q: %w", field, err)
		}
		out = append(out, idx)
	}
	return out, nil
}

// ParseMaximize builds a d-axis space from a comma-separated list of 1-based
// axis indices to maximize, e.g. "1,3".
func ParseMaximize(list string, d int) (framework.ObjectiveSpace, error) {
	indices, err := ParseIndices(list)
	if err != nil {
		return framework.ObjectiveSpace{}, err
	}
	return SpaceFor(d, indices)
}

// ParsePoint parses a comma-separated list of reals, e.g. "1,2.5,3".
func ParsePoint(list string) ([]float64, error) {
	fields := strings.Split(list, ",")
	out := make([]float64, 0, len(fields))
	for _, field := range fields {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid coordinate %q: %w", field, err)
		}
		out = append(out, v)
	}
	return out, nil
}
