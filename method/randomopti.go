package method

import (
	"encoding/json"
	"math/rand"

	"github.com/aldermoss/genlab/cell"
)

// RandomOpti is the simplest Method: it always emits uniform random
// genomes of the observed length, ignoring elites entirely. Its
// InitPopulation also ignores bestGenome (no seeding, no length check),
// so every initial genome is random. It backs the
// LabMap Wheel builder's random-source node (spec §4.6).
type RandomOpti struct {
	rng *rand.Rand
}

// NewRandomOpti satisfies Factory.
func NewRandomOpti(rng *rand.Rand) Method {
	return &RandomOpti{rng: rng}
}

func (m *RandomOpti) LoadConfig(options json.RawMessage) error { return nil }

func (m *RandomOpti) ValidateConfig() error { return nil }

func (m *RandomOpti) Reset() {}

func (m *RandomOpti) InitPopulation(bestGenome cell.Genome, genomeLength, popSize, nelite int) ([]cell.Genome, error) {
	out := make([]cell.Genome, popSize)
	for i := range out {
		out[i] = cell.RandomGenome(m.rng, genomeLength)
	}
	return out, nil
}

func (m *RandomOpti) ProcessResults(elites, fullSortedPop []cell.CellData) ([]cell.Genome, error) {
	n := len(fullSortedPop)
	length := 0
	if n > 0 {
		length = len(fullSortedPop[0].Genome)
	}
	out := make([]cell.Genome, n)
	for i := range out {
		out[i] = cell.RandomGenome(m.rng, length)
	}
	return out, nil
}
