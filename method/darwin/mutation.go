package darwin

import (
	"math/rand"

	"github.com/aldermoss/genlab/cell"
)

// mutateGenome is the "proba mutation" operator (spec §4.3): for each gene,
// draw u; reroll when u < rate*pReroll, else perturb when
// u < rate*(1-pReroll), otherwise leave the gene untouched. The perturb
// probability is therefore rate*(1-2*pReroll) for pReroll < 0.5, and zero
// otherwise.
func mutateGenome(g cell.Genome, rate, pReroll float64, rng *rand.Rand) cell.Genome {
	out := make(cell.Genome, len(g))
	for i, gene := range g {
		u := rng.Float64()
		switch {
		case u < rate*pReroll:
			out[i] = rng.Float64()
		case u < rate*(1-pReroll):
			out[i] = wrap01(gene * (1 + (u-0.5)*(1+rate)))
		default:
			out[i] = gene
		}
	}
	return out
}

// mutateGenomeDirect is the "direct mutation" operator (spec §4.3): every
// gene is either rerolled (probability pReroll) or perturbed, never left
// untouched.
func mutateGenomeDirect(g cell.Genome, rate, pReroll float64, rng *rand.Rand) cell.Genome {
	out := make(cell.Genome, len(g))
	for i, gene := range g {
		u := rng.Float64()
		if u < pReroll {
			out[i] = rng.Float64()
		} else {
			out[i] = wrap01(gene * (1 + (u-0.5)*(1+rate)))
		}
	}
	return out
}

// wrap01 implements the "mod 1" wraparound from the spec's mutation
// formulas, which must stay well-defined for slightly negative inputs too.
func wrap01(x float64) float64 {
	y := x - float64(int(x))
	if y < 0 {
		y += 1
	}
	if y >= 1 {
		y -= 1
	}
	return y
}
