package darwin

import (
	"math/rand"

	"github.com/aldermoss/genlab/cell"
)

// BreedingMethod selects how give_birth blends two parent genomes.
type BreedingMethod int

const (
	// ScoreBasedChoose picks, per gene, the first parent's gene with
	// probability p1.score/(p1.score+p2.score).
	ScoreBasedChoose BreedingMethod = iota
	// ScoreBasedAverage takes the score-weighted mean of the two genes.
	ScoreBasedAverage
)

// giveBirth crosses two parents of equal genome length using method.
// Guards against both scores being zero or negative by falling back to an
// even 0.5/0.5 split (spec §4.3).
func giveBirth(p1, p2 cell.CellData, method BreedingMethod, rng *rand.Rand) cell.Genome {
	w1, w2 := breedingWeights(p1.Score, p2.Score)

	child := make(cell.Genome, len(p1.Genome))
	switch method {
	case ScoreBasedChoose:
		for i := range child {
			if rng.Float64() < w1 {
				child[i] = p1.Genome[i]
			} else {
				child[i] = p2.Genome[i]
			}
		}
	case ScoreBasedAverage:
		for i := range child {
			child[i] = p1.Genome[i]*w1 + p2.Genome[i]*w2
		}
	}
	return child
}

// breedingWeights returns the normalized (p1, p2) selection/averaging
// weights, falling back to an even split when both scores are
// non-positive.
func breedingWeights(s1, s2 float64) (float64, float64) {
	total := s1 + s2
	if s1 <= 0 && s2 <= 0 {
		return 0.5, 0.5
	}
	if total <= 0 {
		return 0.5, 0.5
	}
	return s1 / total, s2 / total
}
