package framework

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrSchema is returned when the input does not carry the objective columns
	// a computation asks for.
	ErrSchema = errors.New("schema error")
	// ErrDimensionMismatch is returned when points of different dimensionality
	// meet in the same comparison.
	ErrDimensionMismatch = errors.New("dimensionality mismatch")
	// ErrNoData is returned when there is nothing to compute on.
	ErrNoData = errors.New("no data")
)

// ObjectiveSpacePoint represents an N-dimensional point in the objective space.
// As an example, for a problem with 2 objective functions f1 and f2, a point
// in the objective space could be [f1(x'), f2(x')], for the input of x'.
//
// Every ObjectiveSpacePoint handed to this package is in minimization orientation.
type ObjectiveSpacePoint []float64

// Clone returns a copy that does not share the backing array.
func (p ObjectiveSpacePoint) Clone() ObjectiveSpacePoint {
	out := make(ObjectiveSpacePoint, len(p))
	copy(out, p)
	return out
}

func (p ObjectiveSpacePoint) String() string {
	parts := make([]string, len(p))
	for i, v := range p {
		parts[i] = fmt.Sprintf("%g", v)
	}
	return "(" + strings.Join(parts, ",") + ")"
}

// Solution is one scored candidate read from an optimizer run.
type Solution struct {
	Objectives ObjectiveSpacePoint

	// Generation is the optimizer iteration the solution belongs to, or -1
	// when the source has no generation column.
	Generation int
	// Index identifies the solution within its generation.
	Index string
	// Source is the file or run the solution came from.
	Source string
}

// Orientation tells whether an objective axis is minimized or maximized.
type Orientation int

const (
	Minimize Orientation = iota
	Maximize
)

func (o Orientation) String() string {
	if o == Maximize {
		return "maximize"
	}
	return "minimize"
}

// ObjectiveSpace is the dimensionality and per-axis orientation shared by
// every solution of an analysis.
type ObjectiveSpace struct {
	Orientations []Orientation
}

// NewObjectiveSpace returns a space of d minimized axes.
func NewObjectiveSpace(d int) ObjectiveSpace {
	return ObjectiveSpace{Orientations: make([]Orientation, d)}
}

// Dimensions returns d.
func (s ObjectiveSpace) Dimensions() int {
	return len(s.Orientations)
}

// Points extracts the objective vectors of a pool, keeping pool order.
func Points(pool []Solution) []ObjectiveSpacePoint {
	out := make([]ObjectiveSpacePoint, len(pool))
	for i := range pool {
		out[i] = pool[i].Objectives
	}
	return out
}

// FromPoints wraps bare points into untagged solutions.
func FromPoints(points []ObjectiveSpacePoint) []Solution {
	out := make([]Solution, len(points))
	for i, p := range points {
		out[i] = Solution{Objectives: p, Generation: -1}
	}
	return out
}
