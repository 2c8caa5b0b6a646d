package benchmarks

import (
	"math"
	"testing"

	"github.com/paretoscope/paretoscope/pkg/pareto/framework"
	"github.com/paretoscope/paretoscope/pkg/pareto/hypervolume"
)

func TestFrontIsNonDominated(t *testing.T) {
	front := framework.FromPoints(ZDT1{Variables: 30}.Front(100))

	got, err := framework.NonDominated(front)
	if err != nil {
		t.Fatalf("NonDominated: %v", err)
	}
	if len(got) != len(front) {
		t.Errorf("Expected all %d points of the true front to be non-dominated, got %d", len(front), len(got))
	}
}

func TestEvaluateOnFront(t *testing.T) {
	z := ZDT1{Variables: 3}
	got := z.Evaluate([]float64{0.25, 0, 0})
	if math.Abs(got[0]-0.25) > 1e-12 || math.Abs(got[1]-0.5) > 1e-12 {
		t.Errorf("Expected (0.25, 0.5), got %v", got)
	}
}

func TestSampledPointsAreNotBetterThanFront(t *testing.T) {
	r := hypervolume.NewRand(3)
	for _, p := range (ZDT1{Variables: 30}).Sample(r, 500) {
		limit := 1.0 - math.Sqrt(p[0])
		if p[1] < limit-1e-12 {
			t.Fatalf("sample %v lies below the true front (%g)", p, limit)
		}
	}
}

func TestFrontHypervolume(t *testing.T) {
	z := ZDT1{Variables: 30}

	got, err := hypervolume.Estimate(z.Front(200), framework.ObjectiveSpacePoint{1, 1}, 200000, hypervolume.DefaultSeed)
	if err != nil {
		t.Fatalf("Estimate: %v", err)
	}
	if math.Abs(got-z.Hypervolume()) > 0.015 {
		t.Errorf("Expected hypervolume close to %.4f, got %.4f", z.Hypervolume(), got)
	}
}
