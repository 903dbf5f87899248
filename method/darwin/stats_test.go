package darwin

import (
	"math"
	"testing"

	"github.com/aldermoss/genlab/cell"
)

func TestAverageComputeFoldsWeightedMean(t *testing.T) {
	var a averageCompute
	a.addEl(cell.Genome{0, 0}, 1)
	result := a.addEl(cell.Genome{2, 4}, 1)
	if result[0] != 1 || result[1] != 2 {
		t.Fatalf("expected equal-weight mean [1,2], got %v", result)
	}
}

func TestEliteWeightClampsNonPositiveScore(t *testing.T) {
	w := eliteWeight(2.0, -5)
	if math.IsNaN(w) || math.IsInf(w, 0) {
		t.Fatalf("expected finite weight for non-positive elite score, got %v", w)
	}
}

func TestValidateEliteBaseRejectsDegenerateBases(t *testing.T) {
	for _, base := range []float64{0, 1, -3} {
		if err := validateEliteBase(base); err == nil {
			t.Fatalf("expected error for bestScore=%v", base)
		}
	}
	if err := validateEliteBase(2.0); err != nil {
		t.Fatalf("expected no error for a valid base, got %v", err)
	}
}

func TestEliteMeanAndStddevPropagatesDegenerateBaseError(t *testing.T) {
	elites := []cell.CellData{{Genome: cell.Genome{0.5}, Score: 1}}
	_, _, err := eliteMeanAndStddev(elites, 1.0)
	if err == nil {
		t.Fatalf("expected CodeError for bestScore == 1, per spec open question (a)")
	}
}

func TestEliteMeanAndStddevShape(t *testing.T) {
	elites := []cell.CellData{
		{Genome: cell.Genome{0.2, 0.8}, Score: 10},
		{Genome: cell.Genome{0.4, 0.6}, Score: 5},
	}
	mean, stddev, err := eliteMeanAndStddev(elites, 10.0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mean) != 2 || len(stddev) != 2 {
		t.Fatalf("expected per-gene mean/stddev of length 2, got %d/%d", len(mean), len(stddev))
	}
	for i, s := range stddev {
		if s < 0 {
			t.Fatalf("stddev %d negative: %v", i, s)
		}
	}
}
