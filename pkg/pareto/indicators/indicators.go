// Package indicators scores run fronts against an approximate frontier.
package indicators

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/paretoscope/paretoscope/pkg/pareto/framework"
)

// Bounds holds per-axis minima and maxima of a front.
type Bounds struct {
	Lower, Upper []float64
}

// BoundsOf returns the per-axis bounds of a non-empty front.
func BoundsOf(front []framework.ObjectiveSpacePoint) (Bounds, error) {
	if len(front) == 0 {
		return Bounds{}, fmt.Errorf("bounds: %w", framework.ErrNoData)
	}
	d := len(front[0])
	b := Bounds{Lower: make([]float64, d), Upper: make([]float64, d)}
	column := make([]float64, len(front))
	for i := 0; i < d; i++ {
		for j, p := range front {
			if len(p) != d {
				return Bounds{}, fmt.Errorf("%w: point %d has %d objectives, want %d", framework.ErrDimensionMismatch, j, len(p), d)
			}
			column[j] = p[i]
		}
		b.Lower[i], b.Upper[i] = floats.Min(column), floats.Max(column)
	}
	return b, nil
}

// Normalize maps front into the unit box spanned by b. An axis without range
// maps to 0.
func (b Bounds) Normalize(front []framework.ObjectiveSpacePoint) ([]framework.ObjectiveSpacePoint, error) {
	out := make([]framework.ObjectiveSpacePoint, len(front))
	for j, p := range front {
		if len(p) != len(b.Lower) {
			return nil, fmt.Errorf("%w: point %d has %d objectives, bounds have %d", framework.ErrDimensionMismatch, j, len(p), len(b.Lower))
		}
		q := make(framework.ObjectiveSpacePoint, len(p))
		for i, v := range p {
			if span := b.Upper[i] - b.Lower[i]; span > 0 {
				q[i] = (v - b.Lower[i]) / span
			}
		}
		out[j] = q
	}
	return out, nil
}

// ErrorRatio is the share of front points that are not members of the
// reference front.
func ErrorRatio(front, reference []framework.ObjectiveSpacePoint) (float64, error) {
	if len(front) == 0 {
		return 0, fmt.Errorf("error ratio: %w", framework.ErrNoData)
	}
	misses := 0
	for _, p := range front {
		found := false
		for _, r := range reference {
			if floats.Equal(p, r) {
				found = true
				break
			}
		}
		if !found {
			misses++
		}
	}
	return float64(misses) / float64(len(front)), nil
}

// GenerationalDistance is sqrt(sum of squared nearest distances) / n, where
// each distance runs from a front point to the closest reference point.
func GenerationalDistance(front, reference []framework.ObjectiveSpacePoint) (float64, error) {
	if len(front) == 0 || len(reference) == 0 {
		return 0, fmt.Errorf("generational distance: %w", framework.ErrNoData)
	}
	sum := 0.0
	for j, p := range front {
		nearest := math.Inf(1)
		for _, r := range reference {
			if len(r) != len(p) {
				return 0, fmt.Errorf("%w: point %d has %d objectives, reference has %d", framework.ErrDimensionMismatch, j, len(p), len(r))
			}
			nearest = math.Min(nearest, floats.Distance(p, r, 2))
		}
		sum += nearest * nearest
	}
	return math.Sqrt(sum) / float64(len(front)), nil
}

// GeneralizedSpread measures how evenly front covers reference, from the
// distance of each reference extreme to the front and the deviation of the
// front's nearest-neighbour distances from their mean. 0 is a perfect spread.
// A front whose points all coincide scores 1.
func GeneralizedSpread(front, reference []framework.ObjectiveSpacePoint) (float64, error) {
	if len(front) == 0 || len(reference) == 0 {
		return 0, fmt.Errorf("generalized spread: %w", framework.ErrNoData)
	}
	d := len(reference[0])
	for j, p := range front {
		if len(p) != d {
			return 0, fmt.Errorf("%w: point %d has %d objectives, reference has %d", framework.ErrDimensionMismatch, j, len(p), d)
		}
	}

	// The extreme of axis i is the last reference point holding its maximum.
	extremes := make([]framework.ObjectiveSpacePoint, d)
	for i := range extremes {
		for _, r := range reference {
			if len(r) != d {
				return 0, fmt.Errorf("%w: reference point has %d objectives, want %d", framework.ErrDimensionMismatch, len(r), d)
			}
			if extremes[i] == nil || r[i] >= extremes[i][i] {
				extremes[i] = r
			}
		}
	}

	coincident := true
	for _, p := range front[1:] {
		if !floats.Equal(p, front[0]) {
			coincident = false
			break
		}
	}
	if coincident {
		return 1, nil
	}

	nearest := make([]float64, len(front))
	for j, p := range front {
		nearest[j] = math.Inf(1)
		for _, q := range front {
			if dist := floats.Distance(p, q, 2); dist > 0 && dist < nearest[j] {
				nearest[j] = dist
			}
		}
	}
	mean := stat.Mean(nearest, nil)

	extremeDistance := 0.0
	for _, e := range extremes {
		closest := math.Inf(1)
		for _, p := range front {
			closest = math.Min(closest, floats.Distance(e, p, 2))
		}
		extremeDistance += closest
	}
	deviation := 0.0
	for _, v := range nearest {
		deviation += math.Abs(v - mean)
	}
	return (extremeDistance + deviation) / (extremeDistance + float64(len(front))*mean), nil
}

// Summary describes a sample of indicator values.
type Summary struct {
	Count  int
	Mean   float64
	Best   float64
	Worst  float64
	StdDev float64
}

// Summarize returns mean, best, worst and sample standard deviation. Best is
// the maximum when higherIsBetter, the minimum otherwise.
func Summarize(values []float64, higherIsBetter bool) (Summary, error) {
	if len(values) == 0 {
		return Summary{}, fmt.Errorf("summary: %w", framework.ErrNoData)
	}
	s := Summary{
		Count: len(values),
		Mean:  stat.Mean(values, nil),
		Best:  floats.Min(values),
		Worst: floats.Max(values),
	}
	if higherIsBetter {
		s.Best, s.Worst = s.Worst, s.Best
	}
	if len(values) > 1 {
		s.StdDev = stat.StdDev(values, nil)
	}
	return s, nil
}

// SummarizeChunks summarizes consecutive groups of size values, e.g. the
// repetitions of one parameter configuration. The last group may be shorter.
func SummarizeChunks(values []float64, size int, higherIsBetter bool) ([]Summary, error) {
	if size < 1 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", size)
	}
	var out []Summary
	for start := 0; start < len(values); start += size {
		end := min(start+size, len(values))
		s, err := Summarize(values[start:end], higherIsBetter)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if out == nil {
		return nil, fmt.Errorf("summary: %w", framework.ErrNoData)
	}
	return out, nil
}
