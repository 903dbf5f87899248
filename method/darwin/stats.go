package darwin

import (
	"math"

	"github.com/aldermoss/genlab/cell"
	"github.com/aldermoss/genlab/errcode"
)

// averageCompute is a running weighted mean accumulator, grounded on
// original_source's utils.rs AverageCompute: each add_el call folds one
// more (element, weight) pair into the running result without storing
// history.
type averageCompute struct {
	sumWeights float64
	result     cell.Genome
}

func (a *averageCompute) addEl(element cell.Genome, weight float64) cell.Genome {
	if a.result == nil {
		a.result = make(cell.Genome, len(element))
	}
	newSum := a.sumWeights + weight
	for i := range a.result {
		a.result[i] = (a.result[i]*a.sumWeights + element[i]*weight) / newSum
	}
	a.sumWeights = newSum
	return a.result.Clone()
}

// eliteWeight computes w(e) = log_base(bestScore)(e.score), clamping the
// log argument away from non-positive values so the result stays finite.
func eliteWeight(bestScore, eliteScore float64) float64 {
	const eps = 1e-12
	if eliteScore <= 0 {
		eliteScore = eps
	}
	return math.Log(eliteScore) / math.Log(bestScore)
}

// validateEliteBase implements spec §9's open question (a): the weighting
// is only well-defined when bestScore is a positive real not equal to 1.
func validateEliteBase(bestScore float64) error {
	if bestScore <= 0 || bestScore == 1 {
		return &errcode.CodeError{Label: "darwin: elite weighting base must be > 0 and != 1"}
	}
	return nil
}

// eliteMeanAndStddev computes the weight-normalized mean
// m = sum(e.genome*w(e)) / sum(w(e)) and the weighted stddev of e.genome
// around m, using bestScore as the log base (spec §4.3 "Elite
// statistics").
func eliteMeanAndStddev(elites []cell.CellData, bestScore float64) (mean, stddev cell.Genome, err error) {
	if err := validateEliteBase(bestScore); err != nil {
		return nil, nil, err
	}

	n := len(elites[0].Genome)
	weights := make([]float64, len(elites))
	sumW := 0.0
	for i, e := range elites {
		weights[i] = eliteWeight(bestScore, e.Score)
		sumW += weights[i]
	}
	if sumW == 0 {
		// Degenerate: the weights sum to zero. Fall back to a uniform
		// average rather than dividing by zero.
		for i := range weights {
			weights[i] = 1.0
		}
		sumW = float64(len(weights))
	}

	mean = make(cell.Genome, n)
	for i, e := range elites {
		w := weights[i] / sumW
		for g := range mean {
			mean[g] += e.Genome[g] * w
		}
	}

	variance := make(cell.Genome, n)
	for i, e := range elites {
		w := weights[i] / sumW
		for g := range variance {
			d := e.Genome[g] - mean[g]
			variance[g] += w * d * d
		}
	}
	stddev = make(cell.Genome, n)
	for g := range stddev {
		stddev[g] = math.Sqrt(variance[g])
	}
	return mean, stddev, nil
}
