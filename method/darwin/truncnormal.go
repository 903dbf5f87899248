package darwin

import (
	"math/rand"

	"github.com/aldermoss/genlab/cell"
)

// maxRejectionAttempts bounds the truncated-normal rejection loop per gene
// (spec §9: "implementers must bound the attempt count and fall back to a
// clamp when sigma is tiny relative to (0,1)").
const maxRejectionAttempts = 64

// sampleTruncatedNormal draws one genome from the per-dimension normal
// N(mean[i], stddev[i]), rejecting and redrawing until each value lies
// strictly in (0,1). Falls back to a clamp after maxRejectionAttempts.
func sampleTruncatedNormal(mean, stddev cell.Genome, rng *rand.Rand) cell.Genome {
	out := make(cell.Genome, len(mean))
	for i := range out {
		sigma := stddev[i]
		if !(sigma > 0) {
			sigma = 1e-6
		}
		out[i] = drawTruncated(mean[i], sigma, rng)
	}
	return out
}

func drawTruncated(mu, sigma float64, rng *rand.Rand) float64 {
	for attempt := 0; attempt < maxRejectionAttempts; attempt++ {
		v := rng.NormFloat64()*sigma + mu
		if v > 0 && v < 1 {
			return v
		}
	}
	// Fall back to a clamp rather than looping forever when sigma is tiny
	// relative to (0,1) and mu sits near an edge.
	return clamp01Open(mu)
}

// clamp01Open clamps into (0,1), nudging away from the exact boundaries so
// the genome-domain invariant (strictly < 1, >= 0) still holds.
func clamp01Open(x float64) float64 {
	const eps = 1e-9
	if x <= 0 {
		return eps
	}
	if x >= 1 {
		return 1 - eps
	}
	return x
}
